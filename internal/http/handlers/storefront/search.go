package storefront

import (
	"errors"

	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/http/response"
	"github.com/trustcart/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchRequest 搜索请求
type SearchRequest struct {
	Prompt    string   `json:"prompt" binding:"required"`
	Latitude  *float64 `json:"userLatitude"`
	Longitude *float64 `json:"userLongitude"`
}

// Search 执行一次自然语言搜索并写入结果槽位
func (h *Handler) Search(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "prompt is required", err)
		return
	}

	products, err := h.SearchService.Search(c.Request.Context(), deviceID, engine.SearchInput{
		Prompt:    req.Prompt,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPromptRequired):
			respondError(c, response.CodeBadRequest, "prompt is required", nil)
		case errors.Is(err, engine.ErrResponseInvalid):
			respondError(c, response.CodeUpstream, err.Error(), nil)
		case errors.Is(err, engine.ErrRequestFailed):
			respondError(c, response.CodeUpstream, "search backend unavailable, try again later", err)
		default:
			respondError(c, response.CodeInternal, "search failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// Results 读取最近一次搜索结果
// 槽位为空说明本会话尚未搜索，前端应回到搜索入口页。
func (h *Handler) Results(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	products, err := h.SearchService.Results(c.Request.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSearchResults):
			response.NotFound(c, "no search results yet")
		default:
			respondError(c, response.CodeInternal, "load results failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"products": products,
		"count":    len(products),
	})
}

package storefront

import (
	"errors"

	"github.com/trustcart/internal/http/response"
	"github.com/trustcart/internal/models"
	"github.com/trustcart/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求（商品候选快照）
type AddCartItemRequest struct {
	Product models.Product `json:"product" binding:"required"`
}

// UpdateCartItemRequest 修改条目数量请求
type UpdateCartItemRequest struct {
	URL      string `json:"url" binding:"required"`
	Quantity int    `json:"quantity"`
}

// RemoveCartItemRequest 删除条目请求
type RemoveCartItemRequest struct {
	URL string `json:"url" binding:"required"`
}

// GetCart 获取当前设备购物车
func (h *Handler) GetCart(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	summary, err := h.CartService.Get(deviceID)
	if err != nil {
		respondError(c, response.CodeInternal, "load cart failed", err)
		return
	}
	response.Success(c, summary)
}

// AddCartItem 将商品加入购物车，已存在则数量加一
func (h *Handler) AddCartItem(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid cart item", err)
		return
	}
	summary, err := h.CartService.AddProduct(deviceID, req.Product)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCartItem):
			respondError(c, response.CodeBadRequest, "product url is required", nil)
		default:
			respondError(c, response.CodeInternal, "add cart item failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "added", summary)
}

// UpdateCartItem 修改条目数量，数量低于 1 即删除该条目
func (h *Handler) UpdateCartItem(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "url is required", err)
		return
	}
	summary, err := h.CartService.SetQuantity(deviceID, req.URL, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCartItem):
			respondError(c, response.CodeBadRequest, "url is required", nil)
		default:
			respondError(c, response.CodeInternal, "update cart item failed", err)
		}
		return
	}
	response.Success(c, summary)
}

// RemoveCartItem 删除条目，条目不存在时静默成功
func (h *Handler) RemoveCartItem(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	var req RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "url is required", err)
		return
	}
	summary, err := h.CartService.Remove(deviceID, req.URL)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCartItem):
			respondError(c, response.CodeBadRequest, "url is required", nil)
		default:
			respondError(c, response.CodeInternal, "remove cart item failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "removed", summary)
}

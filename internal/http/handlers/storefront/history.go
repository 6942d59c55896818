package storefront

import (
	"errors"

	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/http/response"
	"github.com/trustcart/internal/service"

	"github.com/gin-gonic/gin"
)

// CommitSelectionRequest 提交历史选中请求
type CommitSelectionRequest struct {
	SelectedIDs []int64 `json:"selectedIds"`
}

// History 拉取搜索历史（含选中标记与当前派生商品视图）
func (h *Handler) History(c *gin.Context) {
	if _, ok := getDeviceID(c); !ok {
		return
	}
	items, err := h.HistoryService.History(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrResponseInvalid):
			respondError(c, response.CodeUpstream, err.Error(), nil)
		case errors.Is(err, engine.ErrRequestFailed):
			respondError(c, response.CodeUpstream, "history backend unavailable, try again later", err)
		default:
			respondError(c, response.CodeInternal, "load history failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"history":  items,
		"selected": h.HistoryService.Selection(),
		"view":     h.HistoryService.View(),
	})
}

// CommitSelection 提交选中集合并返回派生商品视图
// 同一时刻只允许一次提交在途，并发请求返回冲突。
func (h *Handler) CommitSelection(c *gin.Context) {
	if _, ok := getDeviceID(c); !ok {
		return
	}
	var req CommitSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid selection payload", err)
		return
	}
	result, err := h.HistoryService.CommitSelection(c.Request.Context(), req.SelectedIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelectionBusy):
			respondError(c, response.CodeConflict, "a selection commit is already in progress", nil)
		case errors.Is(err, engine.ErrResponseInvalid):
			respondError(c, response.CodeUpstream, err.Error(), nil)
		case errors.Is(err, engine.ErrRequestFailed):
			respondError(c, response.CodeUpstream, "history backend unavailable, try again later", err)
		default:
			respondError(c, response.CodeInternal, "commit selection failed", err)
		}
		return
	}
	response.Success(c, result)
}

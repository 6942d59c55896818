package storefront

import (
	"errors"

	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/http/response"
	"github.com/trustcart/internal/service"

	"github.com/gin-gonic/gin"
)

// Checkout 以当前购物车发起结算并返回收银台跳转句柄
// 购物车在整个结算过程中不发生变更，失败后可直接重试。
func (h *Handler) Checkout(c *gin.Context) {
	deviceID, ok := getDeviceID(c)
	if !ok {
		return
	}
	handle, err := h.CheckoutService.Checkout(c.Request.Context(), deviceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartEmpty):
			respondError(c, response.CodeBadRequest, "cart is empty", nil)
		case errors.Is(err, service.ErrNoSession):
			respondError(c, response.CodeUpstream, "checkout session rejected by backend", err)
		case errors.Is(err, service.ErrPaymentUnavailable):
			respondError(c, response.CodeInternal, "payment client unavailable", err)
		case errors.Is(err, service.ErrRedirectFailed):
			respondError(c, response.CodeInternal, "payment redirect failed", err)
		case errors.Is(err, engine.ErrRequestFailed):
			respondError(c, response.CodeUpstream, "checkout backend unavailable, try again later", err)
		default:
			respondError(c, response.CodeInternal, "checkout failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"session_id":   handle.SessionID,
		"redirect_url": handle.URL,
	})
}

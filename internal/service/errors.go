package service

import "errors"

var (
	// ErrCartEmpty 空购物车发起结算（本地校验，不出网络）
	ErrCartEmpty = errors.New("cart is empty")
	// ErrInvalidCartItem 购物车操作入参非法
	ErrInvalidCartItem = errors.New("cart item invalid")
	// ErrNoSession 后端响应中缺少支付会话标识
	ErrNoSession = errors.New("checkout session missing")
	// ErrPaymentUnavailable 支付跳转客户端未初始化或配置无效
	ErrPaymentUnavailable = errors.New("payment client unavailable")
	// ErrRedirectFailed 支付跳转在导航发生前出错
	ErrRedirectFailed = errors.New("checkout redirect failed")
	// ErrSelectionBusy 已有一次选中提交在途，新的提交被拒绝
	ErrSelectionBusy = errors.New("selection commit in flight")
	// ErrNoSearchResults 结果槽位为空（尚未搜索或会话已过期）
	ErrNoSearchResults = errors.New("no search results")
	// ErrPromptRequired 搜索提示词为空
	ErrPromptRequired = errors.New("prompt is required")
)

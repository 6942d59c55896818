package storefront

import "github.com/trustcart/internal/provider"

// Handler 店面接口处理器入口
// 说明：该处理器只覆盖买家侧 API（搜索、结果、购物车、历史、结算）。
type Handler struct {
	*provider.Container
}

// New 创建店面处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

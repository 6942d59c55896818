package service

import (
	"strings"

	"github.com/trustcart/internal/models"
	"github.com/trustcart/internal/repository"
)

// CartSummary 购物车概览（条目 + 展示用合计）
type CartSummary struct {
	Items     models.Cart  `json:"items"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"item_count"`
}

// CartService 购物车服务
// 纯合并函数负责计算，存储负责持久化；每次变更读出整车、
// 合并后整体写回（单设备单写者，读写回路无需加锁）。
type CartService struct {
	store repository.CartStore
}

// NewCartService 创建购物车服务
func NewCartService(store repository.CartStore) *CartService {
	return &CartService{store: store}
}

// Get 获取设备购物车概览
func (s *CartService) Get(deviceID string) (*CartSummary, error) {
	cart, err := s.store.Load(deviceID)
	if err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

// AddProduct 将商品候选加入购物车（已存在则数量加一）
func (s *CartService) AddProduct(deviceID string, product models.Product) (*CartSummary, error) {
	if strings.TrimSpace(product.URL) == "" {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.store.Load(deviceID)
	if err != nil {
		return nil, err
	}
	cart = AddOrIncrement(cart, product)
	if err := s.store.Save(deviceID, cart); err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

// SetQuantity 修改条目数量，数量低于 1 即删除该条目
func (s *CartService) SetQuantity(deviceID, url string, quantity int) (*CartSummary, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.store.Load(deviceID)
	if err != nil {
		return nil, err
	}
	cart = SetQuantity(cart, url, quantity)
	if err := s.store.Save(deviceID, cart); err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

// Remove 删除条目，条目不存在时不视为错误
func (s *CartService) Remove(deviceID, url string) (*CartSummary, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrInvalidCartItem
	}
	cart, err := s.store.Load(deviceID)
	if err != nil {
		return nil, err
	}
	cart = RemoveEntry(cart, url)
	if err := s.store.Save(deviceID, cart); err != nil {
		return nil, err
	}
	return summarize(cart), nil
}

func summarize(cart models.Cart) *CartSummary {
	if cart == nil {
		cart = models.Cart{}
	}
	return &CartSummary{
		Items:     cart,
		Total:     CartTotal(cart),
		ItemCount: CartItemCount(cart),
	}
}

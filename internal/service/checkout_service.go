package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/logger"
	"github.com/trustcart/internal/payment/stripe"
	"github.com/trustcart/internal/repository"
)

// CheckoutService 结算编排
// 流水线：Idle → AwaitingSession → AwaitingRedirect。
// 任何一步失败都直接上抛给调用方人工重试，购物车在整个
// 过程中不发生本地变更，因此无需回滚状态。
type CheckoutService struct {
	store     repository.CartStore
	engine    EngineAPI
	stripeCfg *stripe.Config
}

// NewCheckoutService 创建结算服务（stripeCfg 为 nil 表示支付跳转不可用）
func NewCheckoutService(store repository.CartStore, engineAPI EngineAPI, stripeCfg *stripe.Config) *CheckoutService {
	return &CheckoutService{
		store:     store,
		engine:    engineAPI,
		stripeCfg: stripeCfg,
	}
}

// Checkout 以当前购物车发起结算，返回托管收银台跳转句柄
func (s *CheckoutService) Checkout(ctx context.Context, deviceID string) (*stripe.RedirectHandle, error) {
	cart, err := s.store.Load(deviceID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrCartEmpty
	}

	sessionID, err := s.engine.CreateCheckoutSession(ctx, cart)
	if err != nil {
		if errors.Is(err, engine.ErrResponseInvalid) {
			return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
		}
		return nil, err
	}
	logger.Infow("checkout_session_created", "device_id", deviceID, "session_id", sessionID, "items", len(cart))

	if s.stripeCfg == nil {
		return nil, ErrPaymentUnavailable
	}
	if err := stripe.ValidateConfig(s.stripeCfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}
	handle, err := stripe.BuildRedirect(s.stripeCfg, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedirectFailed, err)
	}
	return handle, nil
}

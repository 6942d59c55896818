package stripe

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrConfigInvalid   = errors.New("stripe config invalid")
	ErrRedirectInvalid = errors.New("stripe redirect invalid")
)

const defaultCheckoutBaseURL = "https://checkout.stripe.com"

// Config Stripe 跳转配置。
// 支付会话由搜索引擎后端创建，本包只负责把会话标识
// 转换为托管收银台的整页跳转句柄。
type Config struct {
	PublishableKey  string `json:"publishable_key"`
	CheckoutBaseURL string `json:"checkout_base_url"`
}

// RedirectHandle 托管收银台跳转句柄。
type RedirectHandle struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PublishableKey) == "" {
		return fmt.Errorf("%w: publishable_key is required", ErrConfigInvalid)
	}
	baseURL := strings.TrimSpace(cfg.CheckoutBaseURL)
	if baseURL == "" {
		baseURL = defaultCheckoutBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return fmt.Errorf("%w: checkout_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// BuildRedirect 依据会话标识构造托管收银台跳转句柄。
func BuildRedirect(cfg *Config, sessionID string) (*RedirectHandle, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is empty", ErrRedirectInvalid)
	}
	if strings.ContainsAny(sessionID, " /?#") {
		return nil, fmt.Errorf("%w: session id is malformed", ErrRedirectInvalid)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.CheckoutBaseURL), "/")
	if baseURL == "" {
		baseURL = defaultCheckoutBaseURL
	}
	return &RedirectHandle{
		SessionID: sessionID,
		URL:       fmt.Sprintf("%s/c/pay/%s", baseURL, url.PathEscape(sessionID)),
	}, nil
}

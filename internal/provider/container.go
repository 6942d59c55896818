package provider

import (
	"strings"

	"github.com/trustcart/internal/cache"
	"github.com/trustcart/internal/config"
	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/logger"
	"github.com/trustcart/internal/models"
	"github.com/trustcart/internal/payment/stripe"
	"github.com/trustcart/internal/repository"
	"github.com/trustcart/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// 基础设施
	CartStore   repository.CartStore
	Engine      service.EngineAPI
	ResultCache *cache.ResultCache

	// Services
	CartService     *service.CartService
	SearchService   *service.SearchService
	HistoryService  *service.HistoryService
	CheckoutService *service.CheckoutService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	engineClient, err := engine.NewClient(engine.Config{
		BaseURL:   cfg.Engine.BaseURL,
		TimeoutMS: cfg.Engine.TimeoutMS,
	})
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:      cfg,
		Engine:      engineClient,
		ResultCache: cache.NewResultCache(cfg.ResultCache.TTLSeconds),
	}

	// 购物车存储：数据库可用时落库，否则退化为进程内存
	if models.DB != nil {
		c.CartStore = repository.NewCartStore(models.DB)
	} else {
		logger.Warnw("provider_cart_store_memory_fallback")
		c.CartStore = repository.NewMemoryCartStore()
	}

	// Stripe 跳转配置：未配置 publishable key 时结算返回支付客户端不可用
	var stripeCfg *stripe.Config
	if strings.TrimSpace(cfg.Stripe.PublishableKey) != "" {
		stripeCfg = &stripe.Config{
			PublishableKey:  cfg.Stripe.PublishableKey,
			CheckoutBaseURL: cfg.Stripe.CheckoutBaseURL,
		}
	}

	c.CartService = service.NewCartService(c.CartStore)
	c.SearchService = service.NewSearchService(c.Engine, c.ResultCache)
	c.HistoryService = service.NewHistoryService(c.Engine)
	c.CheckoutService = service.NewCheckoutService(c.CartStore, c.Engine, stripeCfg)

	return c, nil
}

package service

import (
	"context"

	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/models"
)

// EngineAPI 搜索引擎后端访问接口（测试中以假实现替换）
type EngineAPI interface {
	Search(ctx context.Context, input engine.SearchInput) ([]models.Product, error)
	FetchHistory(ctx context.Context) ([]models.SearchHistoryItem, error)
	SaveSelection(ctx context.Context, selectedIDs []int64) error
	ResolveProducts(ctx context.Context, prompts []string) ([]models.Product, error)
	CreateCheckoutSession(ctx context.Context, items []models.CartEntry) (string, error)
}

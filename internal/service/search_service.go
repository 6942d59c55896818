package service

import (
	"context"
	"strings"

	"github.com/trustcart/internal/cache"
	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/models"
)

// SearchService 搜索服务
// 每次搜索的结果集写入设备的一次性结果槽位，
// 结果页从槽位读取；槽位为空说明尚无搜索，应回到入口页。
type SearchService struct {
	engine  EngineAPI
	results *cache.ResultCache
}

// NewSearchService 创建搜索服务
func NewSearchService(engineAPI EngineAPI, results *cache.ResultCache) *SearchService {
	return &SearchService{engine: engineAPI, results: results}
}

// Search 执行搜索并覆盖结果槽位
func (s *SearchService) Search(ctx context.Context, deviceID string, input engine.SearchInput) ([]models.Product, error) {
	input.Prompt = strings.TrimSpace(input.Prompt)
	if input.Prompt == "" {
		return nil, ErrPromptRequired
	}
	products, err := s.engine.Search(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.results.Put(ctx, deviceID, products); err != nil {
		return nil, err
	}
	return products, nil
}

// Results 读取设备的最近一次搜索结果（不清除槽位）
func (s *SearchService) Results(ctx context.Context, deviceID string) ([]models.Product, error) {
	products, ok, err := s.results.Peek(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSearchResults
	}
	return products, nil
}

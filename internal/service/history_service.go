package service

import (
	"context"
	"sort"
	"sync"

	"github.com/trustcart/internal/logger"
	"github.com/trustcart/internal/models"
)

// DerivedProductsView 由选中历史提示词并集解析出的商品视图
// Failed 为 true 表示选中已保存但商品解析失败，视图为空而非陈旧数据。
type DerivedProductsView struct {
	Products []models.Product `json:"products"`
	Failed   bool             `json:"failed"`
}

// SelectionCommitResult 选中提交结果
type SelectionCommitResult struct {
	Saved bool                `json:"saved"`
	View  DerivedProductsView `json:"view"`
}

// HistoryService 搜索历史选中管理
// 历史记录本体归搜索引擎后端所有，这里只保留镜像、
// 本地选中集合与派生商品视图。提交为两步依赖操作，
// 同一时刻只允许一次提交在途（拒绝而非排队）。
type HistoryService struct {
	engine EngineAPI

	mu         sync.Mutex
	committing bool
	items      []models.SearchHistoryItem
	selected   map[int64]struct{}
	view       DerivedProductsView
}

// NewHistoryService 创建搜索历史服务
func NewHistoryService(engineAPI EngineAPI) *HistoryService {
	return &HistoryService{
		engine:   engineAPI,
		selected: make(map[int64]struct{}),
		view:     DerivedProductsView{Products: []models.Product{}},
	}
}

// History 刷新镜像并返回带选中标记的历史记录
// 选中集合以后端落盘的标记为准重新播种（对应页面加载语义）。
func (s *HistoryService) History(ctx context.Context) ([]models.SearchHistoryItem, error) {
	items, err := s.engine.FetchHistory(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = items
	s.selected = make(map[int64]struct{}, len(items))
	for _, item := range items {
		if item.Selected {
			s.selected[item.ID] = struct{}{}
		}
	}
	s.mu.Unlock()
	return items, nil
}

// Toggle 翻转某条历史的选中状态（纯本地操作，不出网络）
func (s *HistoryService) Toggle(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// Selection 返回当前选中的历史 id（升序）
func (s *HistoryService) Selection() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// View 返回当前派生商品视图
func (s *HistoryService) View() DerivedProductsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// CommitSelection 提交选中集合
// 第一步向后端持久化选中；失败则整体中止，派生视图保持原值。
// 第二步仅在选中非空时解析提示词并集；选中为空则清空视图且不发起解析。
// 第一步成功而第二步失败时，选中视为已保存，视图置为带失败标记的空视图。
func (s *HistoryService) CommitSelection(ctx context.Context, selectedIDs []int64) (*SelectionCommitResult, error) {
	s.mu.Lock()
	if s.committing {
		s.mu.Unlock()
		return nil, ErrSelectionBusy
	}
	s.committing = true
	prompts := s.promptsForLocked(selectedIDs)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.committing = false
		s.mu.Unlock()
	}()

	// 镜像尚未加载时先补一次拉取，保证第二步有提示词可用
	if len(prompts) == 0 && len(selectedIDs) > 0 {
		if items, err := s.engine.FetchHistory(ctx); err == nil {
			s.mu.Lock()
			s.items = items
			prompts = s.promptsForLocked(selectedIDs)
			s.mu.Unlock()
		}
	}

	if err := s.engine.SaveSelection(ctx, selectedIDs); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.selected = make(map[int64]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		s.selected[id] = struct{}{}
	}
	s.mu.Unlock()

	if len(selectedIDs) == 0 {
		view := DerivedProductsView{Products: []models.Product{}}
		s.setView(view)
		return &SelectionCommitResult{Saved: true, View: view}, nil
	}

	products, err := s.engine.ResolveProducts(ctx, prompts)
	if err != nil {
		logger.Warnw("history_products_resolve_failed", "selected", len(selectedIDs), "error", err)
		view := DerivedProductsView{Products: []models.Product{}, Failed: true}
		s.setView(view)
		return &SelectionCommitResult{Saved: true, View: view}, nil
	}

	view := DerivedProductsView{Products: products}
	s.setView(view)
	return &SelectionCommitResult{Saved: true, View: view}, nil
}

func (s *HistoryService) setView(view DerivedProductsView) {
	s.mu.Lock()
	s.view = view
	s.mu.Unlock()
}

// promptsForLocked 从镜像中取出选中 id 对应的提示词（调用方需持有锁）
func (s *HistoryService) promptsForLocked(selectedIDs []int64) []string {
	prompts := make([]string, 0, len(selectedIDs))
	seen := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		for _, item := range s.items {
			if item.ID != id {
				continue
			}
			if _, ok := seen[item.Prompt]; ok {
				break
			}
			seen[item.Prompt] = struct{}{}
			prompts = append(prompts, item.Prompt)
			break
		}
	}
	return prompts
}

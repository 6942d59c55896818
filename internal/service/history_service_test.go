package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/trustcart/internal/engine"
	"github.com/trustcart/internal/models"
)

// fakeEngine 搜索引擎后端假实现，按需注入错误并统计调用次数
type fakeEngine struct {
	mu sync.Mutex

	searchErr   error
	historyErr  error
	saveErr     error
	resolveErr  error
	checkoutErr error

	history   []models.SearchHistoryItem
	products  []models.Product
	sessionID string

	saveCalls     int
	resolveCalls  int
	checkoutCalls int
	savedIDs      []int64
	resolved      []string

	saveStarted chan struct{}
	saveRelease chan struct{}
}

func (f *fakeEngine) Search(ctx context.Context, input engine.SearchInput) ([]models.Product, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.products, nil
}

func (f *fakeEngine) FetchHistory(ctx context.Context) ([]models.SearchHistoryItem, error) {
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeEngine) SaveSelection(ctx context.Context, selectedIDs []int64) error {
	f.mu.Lock()
	f.saveCalls++
	f.savedIDs = append([]int64(nil), selectedIDs...)
	f.mu.Unlock()
	if f.saveStarted != nil {
		f.saveStarted <- struct{}{}
		<-f.saveRelease
	}
	return f.saveErr
}

func (f *fakeEngine) ResolveProducts(ctx context.Context, prompts []string) ([]models.Product, error) {
	f.mu.Lock()
	f.resolveCalls++
	f.resolved = append([]string(nil), prompts...)
	f.mu.Unlock()
	if f.resolveErr != nil {
		return nil, f.resolveErr
	}
	return f.products, nil
}

func (f *fakeEngine) CreateCheckoutSession(ctx context.Context, items []models.CartEntry) (string, error) {
	f.mu.Lock()
	f.checkoutCalls++
	f.mu.Unlock()
	if f.checkoutErr != nil {
		return "", f.checkoutErr
	}
	return f.sessionID, nil
}

func historyFixture() []models.SearchHistoryItem {
	return []models.SearchHistoryItem{
		{ID: 1, Prompt: "wireless earbuds", ProductCount: 5, Timestamp: time.Now()},
		{ID: 2, Prompt: "mechanical keyboard", ProductCount: 3, Timestamp: time.Now(), Selected: true},
		{ID: 3, Prompt: "wireless earbuds", ProductCount: 4, Timestamp: time.Now()},
	}
}

func TestHistorySeedsSelectionFromBackend(t *testing.T) {
	eng := &fakeEngine{history: historyFixture()}
	svc := NewHistoryService(eng)

	items, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("history entries want 3 got %d", len(items))
	}
	selection := svc.Selection()
	if len(selection) != 1 || selection[0] != 2 {
		t.Fatalf("selection should seed from backend flags, got %v", selection)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	svc := NewHistoryService(&fakeEngine{})

	svc.Toggle(7)
	if ids := svc.Selection(); len(ids) != 1 || ids[0] != 7 {
		t.Fatalf("selection want [7] got %v", ids)
	}
	svc.Toggle(7)
	if ids := svc.Selection(); len(ids) != 0 {
		t.Fatalf("second toggle should deselect, got %v", ids)
	}
}

func TestCommitSelectionResolvesUnion(t *testing.T) {
	eng := &fakeEngine{
		history:  historyFixture(),
		products: []models.Product{testProduct("https://a.example/p1", moneyPtr(10))},
	}
	svc := NewHistoryService(eng)
	if _, err := svc.History(context.Background()); err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}

	result, err := svc.CommitSelection(context.Background(), []int64{1, 3})
	if err != nil {
		t.Fatalf("commit selection failed: %v", err)
	}
	if !result.Saved || result.View.Failed {
		t.Fatalf("want saved view, got %+v", result)
	}
	if len(result.View.Products) != 1 {
		t.Fatalf("derived products want 1 got %d", len(result.View.Products))
	}
	// id 1 和 3 的提示词相同，解析请求应去重为单个提示词
	if len(eng.resolved) != 1 || eng.resolved[0] != "wireless earbuds" {
		t.Fatalf("prompt union should dedupe, got %v", eng.resolved)
	}
}

func TestCommitSelectionEmptyClearsWithoutResolve(t *testing.T) {
	eng := &fakeEngine{history: historyFixture()}
	svc := NewHistoryService(eng)
	if _, err := svc.History(context.Background()); err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}

	result, err := svc.CommitSelection(context.Background(), nil)
	if err != nil {
		t.Fatalf("commit empty selection failed: %v", err)
	}
	if !result.Saved {
		t.Fatalf("empty selection should still persist")
	}
	if len(result.View.Products) != 0 || result.View.Failed {
		t.Fatalf("empty selection should clear view, got %+v", result.View)
	}
	if eng.resolveCalls != 0 {
		t.Fatalf("empty selection must not resolve, calls got %d", eng.resolveCalls)
	}
}

func TestCommitSelectionSaveFailureRetainsView(t *testing.T) {
	eng := &fakeEngine{
		history:  historyFixture(),
		products: []models.Product{testProduct("https://a.example/p1", moneyPtr(10))},
	}
	svc := NewHistoryService(eng)
	if _, err := svc.History(context.Background()); err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}
	if _, err := svc.CommitSelection(context.Background(), []int64{1}); err != nil {
		t.Fatalf("first commit failed: %v", err)
	}
	before := svc.View()

	eng.saveErr = engine.ErrRequestFailed
	if _, err := svc.CommitSelection(context.Background(), []int64{2}); !errors.Is(err, engine.ErrRequestFailed) {
		t.Fatalf("save failure should propagate, got %v", err)
	}
	after := svc.View()
	if len(after.Products) != len(before.Products) || after.Failed != before.Failed {
		t.Fatalf("view must not change after step-one failure: %+v -> %+v", before, after)
	}
	if eng.resolveCalls != 1 {
		t.Fatalf("no resolve after step-one failure, calls got %d", eng.resolveCalls)
	}
}

func TestCommitSelectionResolveFailureYieldsFailedView(t *testing.T) {
	eng := &fakeEngine{
		history:    historyFixture(),
		resolveErr: engine.ErrRequestFailed,
	}
	svc := NewHistoryService(eng)
	if _, err := svc.History(context.Background()); err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}

	result, err := svc.CommitSelection(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("step-two failure must not surface an error: %v", err)
	}
	if !result.Saved {
		t.Fatalf("selection should count as saved")
	}
	if !result.View.Failed || len(result.View.Products) != 0 {
		t.Fatalf("want failed empty view, got %+v", result.View)
	}
	if ids := svc.Selection(); len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("selection want [1] got %v", ids)
	}
}

func TestCommitSelectionRejectsConcurrent(t *testing.T) {
	eng := &fakeEngine{
		history:     historyFixture(),
		saveStarted: make(chan struct{}, 1),
		saveRelease: make(chan struct{}),
	}
	svc := NewHistoryService(eng)
	if _, err := svc.History(context.Background()); err != nil {
		t.Fatalf("fetch history failed: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := svc.CommitSelection(context.Background(), []int64{1})
		done <- err
	}()
	<-eng.saveStarted

	if _, err := svc.CommitSelection(context.Background(), []int64{2}); !errors.Is(err, ErrSelectionBusy) {
		t.Fatalf("want ErrSelectionBusy got %v", err)
	}

	close(eng.saveRelease)
	if err := <-done; err != nil {
		t.Fatalf("in-flight commit failed: %v", err)
	}

	eng.saveStarted = nil
	if _, err := svc.CommitSelection(context.Background(), []int64{2}); err != nil {
		t.Fatalf("commit after release failed: %v", err)
	}
}

func TestCommitSelectionRefreshesUnloadedMirror(t *testing.T) {
	eng := &fakeEngine{
		history:  historyFixture(),
		products: []models.Product{testProduct("https://a.example/p1", moneyPtr(10))},
	}
	svc := NewHistoryService(eng)

	// 镜像尚未加载，提交前应先补一次拉取以取得提示词
	result, err := svc.CommitSelection(context.Background(), []int64{1})
	if err != nil {
		t.Fatalf("commit selection failed: %v", err)
	}
	if len(eng.resolved) != 1 || eng.resolved[0] != "wireless earbuds" {
		t.Fatalf("resolved prompts want [wireless earbuds] got %v", eng.resolved)
	}
	if !result.Saved {
		t.Fatalf("selection should be saved")
	}
}

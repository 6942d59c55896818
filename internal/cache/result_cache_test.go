package cache

import (
	"context"
	"testing"
	"time"

	"github.com/trustcart/internal/models"
)

func cacheProducts() []models.Product {
	price := models.NewMoneyFromFloat(10)
	return []models.Product{
		{URL: "https://a.example/p1", ProductName: "first", Price: &price},
		{URL: "https://a.example/p2", ProductName: "second"},
	}
}

func TestResultCachePutAndPeek(t *testing.T) {
	c := NewResultCache(60)
	ctx := context.Background()

	if _, ok, err := c.Peek(ctx, "device-1"); err != nil || ok {
		t.Fatalf("empty slot want miss, ok=%v err=%v", ok, err)
	}

	if err := c.Put(ctx, "device-1", cacheProducts()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	products, ok, err := c.Peek(ctx, "device-1")
	if err != nil || !ok {
		t.Fatalf("peek failed: ok=%v err=%v", ok, err)
	}
	if len(products) != 2 {
		t.Fatalf("products want 2 got %d", len(products))
	}

	if _, ok, _ := c.Peek(ctx, "device-1"); !ok {
		t.Fatalf("peek must not clear the slot")
	}
}

func TestResultCacheOverwrite(t *testing.T) {
	c := NewResultCache(60)
	ctx := context.Background()

	if err := c.Put(ctx, "device-1", cacheProducts()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := c.Put(ctx, "device-1", nil); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	products, ok, err := c.Peek(ctx, "device-1")
	if err != nil || !ok {
		t.Fatalf("peek failed: ok=%v err=%v", ok, err)
	}
	if len(products) != 0 {
		t.Fatalf("slot want empty result set got %d", len(products))
	}
}

func TestResultCacheTake(t *testing.T) {
	c := NewResultCache(60)
	ctx := context.Background()

	if err := c.Put(ctx, "device-1", cacheProducts()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	products, ok, err := c.Take(ctx, "device-1")
	if err != nil || !ok {
		t.Fatalf("take failed: ok=%v err=%v", ok, err)
	}
	if len(products) != 2 {
		t.Fatalf("products want 2 got %d", len(products))
	}
	if _, ok, _ := c.Peek(ctx, "device-1"); ok {
		t.Fatalf("take should clear the slot")
	}
}

func TestResultCacheDeviceIsolation(t *testing.T) {
	c := NewResultCache(60)
	ctx := context.Background()

	if err := c.Put(ctx, "device-1", cacheProducts()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok, _ := c.Peek(ctx, "device-2"); ok {
		t.Fatalf("slots should be isolated per device")
	}
}

func TestResultCacheExpiry(t *testing.T) {
	c := NewResultCache(60)
	ctx := context.Background()

	if err := c.Put(ctx, "device-1", cacheProducts()); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	// 手工把过期时间拨到过去，模拟 TTL 到期
	c.mu.Lock()
	slot := c.slots["device-1"]
	slot.expiresAt = time.Now().Add(-time.Second)
	c.slots["device-1"] = slot
	c.mu.Unlock()

	if _, ok, _ := c.Peek(ctx, "device-1"); ok {
		t.Fatalf("expired slot want miss")
	}
}

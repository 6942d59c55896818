package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trustcart/internal/models"
)

const defaultResultTTL = 30 * time.Minute

// ResultCache 一次性搜索结果缓存
// 每台设备只有一个结果槽位，存放最近一次搜索的结果集；
// 槽位随会话过期，与持久化购物车互不相干。
// Redis 启用时走 Redis，否则退化为进程内存。
type ResultCache struct {
	ttl time.Duration

	mu    sync.Mutex
	slots map[string]memorySlot
}

type memorySlot struct {
	products  []models.Product
	expiresAt time.Time
}

// NewResultCache 创建搜索结果缓存
func NewResultCache(ttlSeconds int) *ResultCache {
	ttl := defaultResultTTL
	if ttlSeconds > 0 {
		ttl = time.Duration(ttlSeconds) * time.Second
	}
	return &ResultCache{
		ttl:   ttl,
		slots: make(map[string]memorySlot),
	}
}

// Put 覆盖写入设备的结果槽位
func (c *ResultCache) Put(ctx context.Context, deviceID string, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	if Enabled() {
		return SetJSON(ctx, resultKey(deviceID), products, c.ttl)
	}
	c.mu.Lock()
	c.slots[deviceID] = memorySlot{products: products, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Peek 读取槽位内容但不清除，第二个返回值表示槽位是否存在
func (c *ResultCache) Peek(ctx context.Context, deviceID string) ([]models.Product, bool, error) {
	if Enabled() {
		var products []models.Product
		hit, err := GetJSON(ctx, resultKey(deviceID), &products)
		if err != nil || !hit {
			return nil, false, err
		}
		return products, true, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	slot, ok := c.slots[deviceID]
	if !ok {
		return nil, false, nil
	}
	if time.Now().After(slot.expiresAt) {
		delete(c.slots, deviceID)
		return nil, false, nil
	}
	return slot.products, true, nil
}

// Take 读取并清除槽位内容
func (c *ResultCache) Take(ctx context.Context, deviceID string) ([]models.Product, bool, error) {
	products, ok, err := c.Peek(ctx, deviceID)
	if err != nil || !ok {
		return nil, false, err
	}
	if Enabled() {
		if err := Del(ctx, resultKey(deviceID)); err != nil {
			return nil, false, err
		}
	} else {
		c.mu.Lock()
		delete(c.slots, deviceID)
		c.mu.Unlock()
	}
	return products, true, nil
}

func resultKey(deviceID string) string {
	return fmt.Sprintf("result:%s", deviceID)
}

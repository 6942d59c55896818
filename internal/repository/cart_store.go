package repository

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/trustcart/internal/logger"
	"github.com/trustcart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartStore 购物车存储接口
// 整车以 JSON 形式存于设备键下；Load 对缺失或损坏的内容一律回退为空车。
type CartStore interface {
	Load(deviceID string) (models.Cart, error)
	Save(deviceID string, cart models.Cart) error
}

// GormCartStore GORM 实现
type GormCartStore struct {
	db *gorm.DB
}

// NewCartStore 创建购物车存储
func NewCartStore(db *gorm.DB) *GormCartStore {
	return &GormCartStore{db: db}
}

// Load 读取设备购物车，缺失或无法解析时返回空车
func (s *GormCartStore) Load(deviceID string) (models.Cart, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return models.Cart{}, nil
	}
	var record models.CartRecord
	err := s.db.Where("device_id = ?", deviceID).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCartPayload(deviceID, record.Payload), nil
}

// Save 整体覆盖写入设备购物车（单条 upsert）
func (s *GormCartStore) Save(deviceID string, cart models.Cart) error {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return errors.New("device id is empty")
	}
	if cart == nil {
		cart = models.Cart{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	record := models.CartRecord{
		DeviceID:  deviceID,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "device_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
}

// MemoryCartStore 内存实现（测试与未启用数据库的部署使用）
type MemoryCartStore struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryCartStore 创建内存购物车存储
func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{records: make(map[string]string)}
}

// Load 读取设备购物车
func (s *MemoryCartStore) Load(deviceID string) (models.Cart, error) {
	s.mu.RLock()
	payload, ok := s.records[deviceID]
	s.mu.RUnlock()
	if !ok {
		return models.Cart{}, nil
	}
	return decodeCartPayload(deviceID, payload), nil
}

// Save 整体覆盖写入设备购物车
func (s *MemoryCartStore) Save(deviceID string, cart models.Cart) error {
	if strings.TrimSpace(deviceID) == "" {
		return errors.New("device id is empty")
	}
	if cart == nil {
		cart = models.Cart{}
	}
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[deviceID] = string(payload)
	s.mu.Unlock()
	return nil
}

// decodeCartPayload 解析购物车 JSON；损坏的内容视为可恢复状态，回退为空车
func decodeCartPayload(deviceID, payload string) models.Cart {
	if strings.TrimSpace(payload) == "" {
		return models.Cart{}
	}
	var cart models.Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		logger.Warnw("cart_payload_invalid", "device_id", deviceID, "error", err)
		return models.Cart{}
	}
	return cart
}

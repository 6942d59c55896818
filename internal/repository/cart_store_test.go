package repository

import (
	"fmt"
	"testing"

	"github.com/trustcart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.CartRecord{}); err != nil {
		t.Fatalf("migrate cart records failed: %v", err)
	}
	return db
}

func sampleCart() models.Cart {
	price := models.NewMoneyFromFloat(19.9)
	return models.Cart{
		{
			URL:         "https://a.example/p1",
			ProductName: "sample product",
			CompanyName: "sample vendor",
			Price:       &price,
			Quantity:    2,
		},
	}
}

func TestGormCartStoreRoundTrip(t *testing.T) {
	store := NewCartStore(newTestDB(t))

	if err := store.Save("device-1", sampleCart()); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	cart, err := store.Load("device-1")
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(cart) != 1 || cart[0].URL != "https://a.example/p1" || cart[0].Quantity != 2 {
		t.Fatalf("cart mismatch: %+v", cart)
	}
	if cart[0].Price == nil || cart[0].Price.String() != "19.90" {
		t.Fatalf("price snapshot mismatch: %v", cart[0].Price)
	}
}

func TestGormCartStoreUpsertOverwrites(t *testing.T) {
	store := NewCartStore(newTestDB(t))

	if err := store.Save("device-1", sampleCart()); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	if err := store.Save("device-1", models.Cart{}); err != nil {
		t.Fatalf("overwrite save failed: %v", err)
	}
	cart, err := store.Load("device-1")
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("cart want empty got %d entries", len(cart))
	}
}

func TestGormCartStoreMissingDeviceIsEmptyCart(t *testing.T) {
	store := NewCartStore(newTestDB(t))

	cart, err := store.Load("device-unknown")
	if err != nil {
		t.Fatalf("load unknown device failed: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("cart want empty got %d entries", len(cart))
	}
}

func TestGormCartStoreCorruptPayloadFailsSoft(t *testing.T) {
	db := newTestDB(t)
	store := NewCartStore(db)

	// 损坏的 JSON 属于可恢复状态，读取应回退为空车而非报错
	record := models.CartRecord{DeviceID: "device-1", Payload: "{not json"}
	if err := db.Create(&record).Error; err != nil {
		t.Fatalf("insert corrupt record failed: %v", err)
	}
	cart, err := store.Load("device-1")
	if err != nil {
		t.Fatalf("corrupt payload should fail soft: %v", err)
	}
	if len(cart) != 0 {
		t.Fatalf("cart want empty got %d entries", len(cart))
	}
}

func TestMemoryCartStoreRoundTrip(t *testing.T) {
	store := NewMemoryCartStore()

	if err := store.Save("device-1", sampleCart()); err != nil {
		t.Fatalf("save cart failed: %v", err)
	}
	cart, err := store.Load("device-1")
	if err != nil {
		t.Fatalf("load cart failed: %v", err)
	}
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("cart mismatch: %+v", cart)
	}

	other, err := store.Load("device-2")
	if err != nil {
		t.Fatalf("load other device failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("carts should be isolated per device, got %d entries", len(other))
	}
}

func TestMemoryCartStoreRejectsEmptyDevice(t *testing.T) {
	store := NewMemoryCartStore()
	if err := store.Save("  ", sampleCart()); err == nil {
		t.Fatalf("blank device id should be rejected")
	}
}

package models

import "time"

// CartRecord 按设备存储的购物车记录（整车 JSON 存于单一键下）
type CartRecord struct {
	DeviceID  string    `gorm:"primaryKey;size:64" json:"device_id"`
	Payload   string    `gorm:"type:text" json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 表名
func (CartRecord) TableName() string {
	return "cart_records"
}

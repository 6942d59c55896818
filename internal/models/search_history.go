package models

import "time"

// SearchHistoryItem 搜索历史记录（由搜索引擎后端持有，本服务只读并维护选中标记）
type SearchHistoryItem struct {
	ID           int64     `json:"id"`
	Prompt       string    `json:"prompt"`
	ProductCount int       `json:"productCount"`
	Timestamp    time.Time `json:"timestamp"`
	Selected     bool      `json:"selected,omitempty"`
}

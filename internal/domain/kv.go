package domain

import (
	"time"
)

// KVEntry is one key of a namespaced key/value store kept in SQL.
type KVEntry struct {
	Namespace string    `gorm:"primaryKey;size:128" json:"namespace"`
	EntryKey  string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (KVEntry) TableName() string {
	return "kv_entry"
}

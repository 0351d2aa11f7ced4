package models

import "time"

// KVEntry is one value of a namespaced key-value store. A namespace is either
// a customer session or the shop itself.
type KVEntry struct {
	Namespace string    `gorm:"primaryKey;size:128"`
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName pins the table name.
func (KVEntry) TableName() string {
	return "kv_entries"
}

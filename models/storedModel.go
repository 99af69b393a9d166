package models

import "time"

// StoredCollection is one serialized collection in the SQL-backed durable state.
type StoredCollection struct {
	Key       string    `gorm:"primaryKey;column:storage_key;size:191" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (StoredCollection) TableName() string {
	return "stored_collection"
}

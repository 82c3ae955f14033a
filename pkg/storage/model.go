package storage

import "time"

type Blob struct {
	Key       string `gorm:"primaryKey;column:key"`
	Value     []byte `gorm:"column:value"`
	UpdatedAt time.Time
}

func (Blob) TableName() string { return "storage_blobs" }

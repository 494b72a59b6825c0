package schema

import "time"

// SyncCursor is the last successful run of a sync stream
type SyncCursor struct {
	Stream        string    `gorm:"primaryKey;type:text"`
	LastSuccessAt time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (SyncCursor) TableName() string {
	return "sync_cursors"
}

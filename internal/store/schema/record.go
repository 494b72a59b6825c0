package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Record is one document of a logical collection
type Record struct {
	ID         uint64            `gorm:"primaryKey;autoIncrement"`
	Collection string            `gorm:"type:text;not null;index"`
	Data       datatypes.JSONMap `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time         `gorm:"autoCreateTime"`
}

func (Record) TableName() string {
	return "crm_records"
}

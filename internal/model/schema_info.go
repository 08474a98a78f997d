package model

import "time"

// SchemaInfo records which dataset version was loaded into the store.
type SchemaInfo struct {
	ID           uint      `json:"_id" gorm:"primaryKey"`
	Version      string    `json:"version" gorm:"size:32;not null"`
	LoadDateTime time.Time `json:"load_date_time"`
}

// TableName pins the table name.
func (SchemaInfo) TableName() string {
	return "schema_info"
}

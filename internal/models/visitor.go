package models

import "time"

// Visitor is one row of the visitor log. Rows are written by the detection
// pipeline and never updated afterwards; the assistant only reads them.
type Visitor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Purpose   string    `gorm:"size:255" json:"purpose"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

func (Visitor) TableName() string {
	return "visitor_logs"
}

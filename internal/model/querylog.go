package model

import (
	"time"
)

// QueryLogPG model for PostgreSQL storage of processed natural language queries
type QueryLogPG struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	SessionID string    `gorm:"size:32;index"`
	Query     string    `gorm:"type:text;not null"`
	Attribute string    `gorm:"size:64"`
	Operator  string    `gorm:"size:8"`
	Value     string    `gorm:"size:255"`
	Matches   int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName overrides the table name
func (QueryLogPG) TableName() string {
	return "query_logs"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	ID        string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID    string `gorm:"type:uuid;index;not null"`
	Type      string
	Title     string
	Message   string
	Data      datatypes.JSON `gorm:"type:jsonb"`
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog - запись действия администратора над сущностью платформы.
type AuditLog struct {
	ID          string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	AdminUserID string `gorm:"type:uuid;index;not null"`
	Action      string `gorm:"not null"`
	EntityType  string
	EntityID    string
	Detail      datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time
}

package models

import "time"

type TheaterProfile struct {
	ID           string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       string `gorm:"type:uuid;uniqueIndex;not null"`
	CompanyName  string
	ContactEmail string
	City         string
	Description  string
	Website      string
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

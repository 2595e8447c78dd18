package models

import "time"

// EmailQueue - документ исходящего письма. Письма только ставятся в очередь
// (fire-and-forget), доставкой занимается фоновый воркер.
type EmailQueue struct {
	ID        string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ToEmail   string `gorm:"not null"`
	Subject   string
	TextBody  string
	HTMLBody  string
	Status    EmailStatus `gorm:"type:varchar(16);index;default:'queued'"`
	Attempts  int
	LastError string
	SentAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

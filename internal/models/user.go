package models

type User struct {
	BaseModel
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"not null"`
	Status       UserStatus `gorm:"not null;default:'active'"`
	IsVerified   bool
}

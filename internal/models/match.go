package models

import "time"

// TheaterTalentMatch - запись интереса между ролью и талантом.
// Ключ - тройка (production_id, role_id, talent_user_id): на тройку существует
// не более одной записи, повторный create трактуется как ответ на первую.
type TheaterTalentMatch struct {
	ID            string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProductionID  string `gorm:"type:uuid;uniqueIndex:idx_match_triple;not null"`
	RoleID        string `gorm:"uniqueIndex:idx_match_triple;not null"`
	TalentUserID  string `gorm:"type:uuid;uniqueIndex:idx_match_triple;not null"`
	TheaterUserID string `gorm:"type:uuid;index;not null"`
	Status        bool   // true = интерес/принято, false = отклонено
	InitiatedBy   MatchParty
	ConfirmedBy   *MatchParty
	RejectedBy    *MatchParty
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsResolved сообщает, терминален ли матч: одна из сторон уже ответила.
func (m *TheaterTalentMatch) IsResolved() bool {
	return m.ConfirmedBy != nil || m.RejectedBy != nil
}

package models

import "time"

// MessageThread - переписка между театром и талантом. На пару аккаунтов
// существует один тред: повторная отправка переиспользует существующий.
type MessageThread struct {
	ID            string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TheaterUserID string `gorm:"type:uuid;uniqueIndex:idx_thread_pair;not null"`
	TalentUserID  string `gorm:"type:uuid;uniqueIndex:idx_thread_pair;not null"`
	LastMessage   string
	LastSenderID  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsParticipant проверяет принадлежность пользователя к треду
func (t *MessageThread) IsParticipant(userID string) bool {
	return t.TheaterUserID == userID || t.TalentUserID == userID
}

type ThreadMessage struct {
	ID        string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ThreadID  string `gorm:"type:uuid;index;not null"`
	SenderID  string `gorm:"type:uuid;not null"`
	Body      string
	CreatedAt time.Time
}

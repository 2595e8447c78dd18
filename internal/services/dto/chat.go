package dto

import (
	"time"

	"stagematch_backend/internal/models"
)

// SendMessageRequest - отправка сообщения в тред
type SendMessageRequest struct {
	Body string `json:"body" binding:"required,max=5000"`
}

// StartThreadRequest - открытие переписки с пользователем.
// Если тред на пару уже существует, сообщение уходит в него.
type StartThreadRequest struct {
	RecipientID string `json:"recipient_id" binding:"required"`
	Body        string `json:"body" binding:"required,max=5000"`
}

// ThreadResponse - представление треда
type ThreadResponse struct {
	ID            string    `json:"id"`
	TheaterUserID string    `json:"theater_user_id"`
	TalentUserID  string    `json:"talent_user_id"`
	LastMessage   string    `json:"last_message"`
	LastSenderID  string    `json:"last_sender_id"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewThreadResponse собирает ThreadResponse из модели
func NewThreadResponse(t *models.MessageThread) ThreadResponse {
	return ThreadResponse{
		ID:            t.ID,
		TheaterUserID: t.TheaterUserID,
		TalentUserID:  t.TalentUserID,
		LastMessage:   t.LastMessage,
		LastSenderID:  t.LastSenderID,
		UpdatedAt:     t.UpdatedAt,
	}
}

// MessageResponse - представление сообщения
type MessageResponse struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMessageResponse собирает MessageResponse из модели
func NewMessageResponse(m *models.ThreadMessage) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		ThreadID:  m.ThreadID,
		SenderID:  m.SenderID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}

// MessageListResponse - страница сообщений треда
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

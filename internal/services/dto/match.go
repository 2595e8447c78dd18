package dto

import (
	"time"

	"stagematch_backend/internal/models"
)

// ExpressInterestRequest - заявка интереса к тройке (постановка, роль, талант).
// Талант не передает talent_user_id, он берется из токена.
type ExpressInterestRequest struct {
	ProductionID string `json:"production_id" binding:"required"`
	RoleID       string `json:"role_id" binding:"required"`
	TalentUserID string `json:"talent_user_id,omitempty"`
}

// RespondToMatchRequest - ответ второй стороны на матч
type RespondToMatchRequest struct {
	Accept bool `json:"accept"`
}

// MatchResponse - представление матча
type MatchResponse struct {
	ID            string             `json:"id"`
	ProductionID  string             `json:"production_id"`
	RoleID        string             `json:"role_id"`
	TalentUserID  string             `json:"talent_user_id"`
	TheaterUserID string             `json:"theater_user_id"`
	Status        bool               `json:"status"`
	InitiatedBy   models.MatchParty  `json:"initiated_by"`
	ConfirmedBy   *models.MatchParty `json:"confirmed_by,omitempty"`
	RejectedBy    *models.MatchParty `json:"rejected_by,omitempty"`
	IsConfirmed   bool               `json:"is_confirmed"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
	// ThreadID передается при подтвержденном матче, если тред уже создан
	ThreadID string `json:"thread_id,omitempty"`
	// NotificationFailed выставляется, когда матч записан,
	// но уведомления доставить не удалось
	NotificationFailed bool `json:"notification_failed,omitempty"`
}

// NewMatchResponse собирает MatchResponse из модели
func NewMatchResponse(m *models.TheaterTalentMatch) MatchResponse {
	return MatchResponse{
		ID:            m.ID,
		ProductionID:  m.ProductionID,
		RoleID:        m.RoleID,
		TalentUserID:  m.TalentUserID,
		TheaterUserID: m.TheaterUserID,
		Status:        m.Status,
		InitiatedBy:   m.InitiatedBy,
		ConfirmedBy:   m.ConfirmedBy,
		RejectedBy:    m.RejectedBy,
		IsConfirmed:   m.ConfirmedBy != nil,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// MatchListResponse - список матчей пользователя
type MatchListResponse struct {
	Matches []MatchResponse `json:"matches"`
	Total   int             `json:"total"`
}

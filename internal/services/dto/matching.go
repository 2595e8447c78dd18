package dto

import (
	"time"

	"stagematch_backend/internal/models"
)

// FindTalentRequest - параметры подбора талантов под роль
type FindTalentRequest struct {
	ProductionID string `form:"production_id" binding:"required"`
	RoleID       string `form:"role_id" binding:"required"`
	// MatchStatus сужает выборку до талантов с матчем по роли в этом
	// статусе: "true" или "false". Пусто - без фильтра.
	MatchStatus *bool `form:"match_status"`
}

// TalentMatchResult - один подобранный талант
type TalentMatchResult struct {
	Profile TalentProfileResponse `json:"profile"`
	// HasMatch и MatchStatus присутствуют только при фильтре по статусу
	HasMatch    bool  `json:"has_match,omitempty"`
	MatchStatus *bool `json:"match_status,omitempty"`
}

// FindTalentResponse - результат подбора талантов под роль
type FindTalentResponse struct {
	ProductionID string              `json:"production_id"`
	RoleID       string              `json:"role_id"`
	Talents      []TalentMatchResult `json:"talents"`
	Total        int                 `json:"total"`
}

// RoleMatchResult - одна подходящая роль для таланта
type RoleMatchResult struct {
	ProductionID    string                  `json:"production_id"`
	ProductionTitle string                  `json:"production_title"`
	TheaterID       string                  `json:"theater_id"`
	Status          models.ProductionStatus `json:"production_status"`
	Role            models.Role             `json:"role"`
	PostedAt        time.Time               `json:"posted_at"`
}

// FindRolesResponse - результат подбора ролей для таланта
type FindRolesResponse struct {
	Roles []RoleMatchResult `json:"roles"`
	Total int               `json:"total"`
}

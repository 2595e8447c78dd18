package dto

import (
	"encoding/json"
	"time"

	"stagematch_backend/internal/models"
)

// SuspendUserRequest - блокировка пользователя с причиной для аудита
type SuspendUserRequest struct {
	Reason string `json:"reason" binding:"required,max=1000"`
}

// ForceProductionStatusRequest - принудительная смена статуса постановки
type ForceProductionStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"is-production-status"`
	Reason string `json:"reason" binding:"required,max=1000"`
}

// ListUsersRequest - параметры выборки пользователей
type ListUsersRequest struct {
	Role     string `form:"role" validate:"omitempty,is-account-role"`
	Status   string `form:"status" binding:"omitempty,oneof=active suspended"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// UserListResponse - страница пользователей
type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// AuditLogResponse - запись журнала действий администраторов
type AuditLogResponse struct {
	ID          string          `json:"id"`
	AdminUserID string          `json:"admin_user_id"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Detail      json.RawMessage `json:"detail,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewAuditLogResponse собирает AuditLogResponse из модели
func NewAuditLogResponse(entry *models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          entry.ID,
		AdminUserID: entry.AdminUserID,
		Action:      entry.Action,
		EntityType:  entry.EntityType,
		EntityID:    entry.EntityID,
		Detail:      json.RawMessage(entry.Detail),
		CreatedAt:   entry.CreatedAt,
	}
}

// AuditLogListResponse - страница журнала аудита
type AuditLogListResponse struct {
	Entries  []AuditLogResponse `json:"entries"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

package dto

import (
	"time"

	"stagematch_backend/internal/models"
)

// RoleRequest - роль внутри запроса создания/обновления постановки
type RoleRequest struct {
	RoleID                 string   `json:"role_id" binding:"required"`
	Name                   string   `json:"name" binding:"required"`
	Type                   string   `json:"type" binding:"required" validate:"is-role-type"`
	OffstageRole           string   `json:"offstage_role,omitempty"`
	GenderIdentity         []string `json:"gender_identity"`
	Ethnicities            []string `json:"ethnicities"`
	AgeRanges              []string `json:"age_ranges"`
	LGBTQOnly              bool     `json:"lgbtq_only"`
	IncludeNonbinary       bool     `json:"include_nonbinary"`
	AdditionalRequirements []string `json:"additional_requirements"`
	Unions                 []string `json:"unions"`
}

// ToModel переводит запрос во встроенную роль
func (r *RoleRequest) ToModel() models.Role {
	return models.Role{
		RoleID:                 r.RoleID,
		Name:                   r.Name,
		Type:                   r.Type,
		OffstageRole:           r.OffstageRole,
		GenderIdentity:         r.GenderIdentity,
		Ethnicities:            r.Ethnicities,
		AgeRanges:              r.AgeRanges,
		LGBTQOnly:              r.LGBTQOnly,
		IncludeNonbinary:       r.IncludeNonbinary,
		AdditionalRequirements: r.AdditionalRequirements,
		Unions:                 r.Unions,
	}
}

// CreateProductionRequest - запрос создания постановки
type CreateProductionRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description" binding:"max=5000"`
	Status      string        `json:"status" binding:"required" validate:"is-production-status"`
	Roles       []RoleRequest `json:"roles" binding:"dive"`
}

// UpdateProductionRequest - запрос обновления постановки.
// Roles перезаписывает весь список целиком.
type UpdateProductionRequest struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description" binding:"max=5000"`
	Status      string        `json:"status" binding:"required" validate:"is-production-status"`
	Roles       []RoleRequest `json:"roles" binding:"dive"`
}

// UpdateProductionStatusRequest - запрос смены статуса постановки
type UpdateProductionStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"is-production-status"`
}

// ProductionResponse - представление постановки с ролями
type ProductionResponse struct {
	ID          string                  `json:"id"`
	TheaterID   string                  `json:"theater_id"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Status      models.ProductionStatus `json:"status"`
	Roles       []models.Role           `json:"roles"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// NewProductionResponse собирает ProductionResponse из модели
func NewProductionResponse(p *models.Production) ProductionResponse {
	roles := p.GetRoles()
	if roles == nil {
		roles = []models.Role{}
	}
	return ProductionResponse{
		ID:          p.ID,
		TheaterID:   p.TheaterID,
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Roles:       roles,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProductionListResponse - страница постановок
type ProductionListResponse struct {
	Productions []ProductionResponse `json:"productions"`
	Total       int64                `json:"total"`
	Page        int                  `json:"page"`
	PageSize    int                  `json:"page_size"`
}

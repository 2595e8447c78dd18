package dto

import (
	"time"

	"stagematch_backend/internal/models"
)

// UpsertTalentProfileRequest - создание или обновление анкеты таланта
type UpsertTalentProfileRequest struct {
	Name           string   `json:"name" binding:"required"`
	ContactEmail   string   `json:"contact_email" binding:"omitempty,email"`
	StageRole      string   `json:"stage_role" binding:"required" validate:"is-stage-role"`
	Ethnicities    []string `json:"ethnicities"`
	AgeRanges      []string `json:"age_ranges"`
	GenderIdentity string   `json:"gender_identity" binding:"required" validate:"is-gender-identity"`
	GenderRoles    []string `json:"gender_roles"`
	LGBTQIA        string   `json:"lgbtqia"`
	Skills         []string `json:"skills"`
	UnionStatuses  []string `json:"union_statuses"`
	Bio            string   `json:"bio" binding:"max=2000"`
	City           string   `json:"city"`
	Website        string   `json:"website" binding:"omitempty,url"`
	IsPublic       *bool    `json:"is_public"`
}

// UpsertTheaterProfileRequest - создание или обновление анкеты театра
type UpsertTheaterProfileRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	City         string `json:"city"`
	Description  string `json:"description" binding:"max=2000"`
	Website      string `json:"website" binding:"omitempty,url"`
}

// TalentProfileResponse - публичное представление анкеты таланта
type TalentProfileResponse struct {
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	ContactEmail   string    `json:"contact_email,omitempty"`
	StageRole      string    `json:"stage_role"`
	Ethnicities    []string  `json:"ethnicities"`
	AgeRanges      []string  `json:"age_ranges"`
	GenderIdentity string    `json:"gender_identity"`
	GenderRoles    []string  `json:"gender_roles"`
	LGBTQIA        string    `json:"lgbtqia"`
	Skills         []string  `json:"skills"`
	UnionStatuses  []string  `json:"union_statuses"`
	Bio            string    `json:"bio"`
	City           string    `json:"city"`
	Website        string    `json:"website"`
	PhotoURL       string    `json:"photo_url,omitempty"`
	PhotoThumbURL  string    `json:"photo_thumbnail_url,omitempty"`
	ProfileViews   int       `json:"profile_views"`
	IsPublic       bool      `json:"is_public"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewTalentProfileResponse собирает TalentProfileResponse из модели
func NewTalentProfileResponse(p *models.TalentProfile) TalentProfileResponse {
	return TalentProfileResponse{
		UserID:         p.UserID,
		Name:           p.Name,
		ContactEmail:   p.ContactEmail,
		StageRole:      p.StageRole,
		Ethnicities:    p.Ethnicities,
		AgeRanges:      p.AgeRanges,
		GenderIdentity: p.GenderIdentity,
		GenderRoles:    p.GenderRoles,
		LGBTQIA:        p.LGBTQIA,
		Skills:         p.Skills,
		UnionStatuses:  p.UnionStatuses,
		Bio:            p.Bio,
		City:           p.City,
		Website:        p.Website,
		PhotoURL:       p.PhotoURL,
		PhotoThumbURL:  p.PhotoThumbnailURL,
		ProfileViews:   p.ProfileViews,
		IsPublic:       p.IsPublic,
		UpdatedAt:      p.UpdatedAt,
	}
}

// TheaterProfileResponse - публичное представление анкеты театра
type TheaterProfileResponse struct {
	UserID       string    `json:"user_id"`
	CompanyName  string    `json:"company_name"`
	ContactEmail string    `json:"contact_email,omitempty"`
	City         string    `json:"city"`
	Description  string    `json:"description"`
	Website      string    `json:"website"`
	IsVerified   bool      `json:"is_verified"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTheaterProfileResponse собирает TheaterProfileResponse из модели
func NewTheaterProfileResponse(p *models.TheaterProfile) TheaterProfileResponse {
	return TheaterProfileResponse{
		UserID:       p.UserID,
		CompanyName:  p.CompanyName,
		ContactEmail: p.ContactEmail,
		City:         p.City,
		Description:  p.Description,
		Website:      p.Website,
		IsVerified:   p.IsVerified,
		UpdatedAt:    p.UpdatedAt,
	}
}

// TalentProfileListResponse - страница результатов поиска талантов
type TalentProfileListResponse struct {
	Profiles []TalentProfileResponse `json:"profiles"`
	Total    int64                   `json:"total"`
	Page     int                     `json:"page"`
	PageSize int                     `json:"page_size"`
}

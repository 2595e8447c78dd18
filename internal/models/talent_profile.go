package models

import (
	"time"

	"github.com/lib/pq"
)

// Значения gender_identity профиля (single select)
const (
	GenderCisWoman       = "Cis Woman"
	GenderCisMan         = "Cis Man"
	GenderTransNonbinary = "Trans/Nonbinary"
	GenderNoResponse     = "I choose not to respond"
)

// Значения stage_role профиля
const (
	StageRoleOnStage  = "On-Stage"
	StageRoleOffStage = "Off-Stage"
	StageRoleBoth     = "Both"
)

// Значения gender_roles (типы ролей, на которые открыт Trans/Nonbinary профиль)
const (
	GenderRoleWoman     = "Woman"
	GenderRoleMan       = "Man"
	GenderRoleNonbinary = "Nonbinary"
)

// Навыки профиля
const (
	SkillSinging = "Singing"
	SkillDancing = "Dancing"
)

const LGBTQIAYes = "Yes"

type TalentProfile struct {
	ID             string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID         string `gorm:"type:uuid;uniqueIndex;not null"`
	Name           string
	ContactEmail   string
	StageRole      string         // On-Stage | Off-Stage | Both (сравнение без учета регистра)
	Ethnicities    pq.StringArray `gorm:"type:text[]" json:"ethnicities" swaggerignore:"true"`
	AgeRanges      pq.StringArray `gorm:"type:text[]" json:"age_ranges" swaggerignore:"true"`
	GenderIdentity string
	GenderRoles    pq.StringArray `gorm:"type:text[]" json:"gender_roles" swaggerignore:"true"`
	LGBTQIA        string
	Skills         pq.StringArray `gorm:"type:text[]" json:"skills" swaggerignore:"true"`
	UnionStatuses  pq.StringArray `gorm:"type:text[]" json:"union_statuses" swaggerignore:"true"`
	Bio            string
	City           string
	Website        string
	// URL рендеров хедшота (заполняет ProfileService при загрузке)
	PhotoURL          string
	PhotoThumbnailURL string
	ProfileViews   int
	IsPublic       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasSkill проверяет наличие навыка в профиле
func (p *TalentProfile) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// OpenToGenderRole проверяет, открыт ли профиль на указанный тип роли
func (p *TalentProfile) OpenToGenderRole(role string) bool {
	for _, r := range p.GenderRoles {
		if r == role {
			return true
		}
	}
	return false
}

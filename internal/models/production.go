package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Сентинелы "без ограничений" в требованиях роли
const (
	OpenToAllGenders     = "Open to all genders"
	OpenToAllEthnicities = "Open to all ethnicities"
	OpenToAllAges        = "Open to all ages"
)

// Значения additional_requirements роли
const (
	RequiresSinging = "Requires singing"
	RequiresDancing = "Requires dancing"
)

// Значения type роли
const (
	RoleTypeOnStage  = "On-Stage"
	RoleTypeOffStage = "Off-Stage"
)

// Role - позиция внутри постановки. Хранится только внутри Production.Roles
// (jsonb): роли не являются самостоятельными сущностями, любое изменение
// списка ролей - это перезапись всего списка владельцем-агрегатом.
type Role struct {
	RoleID                 string   `json:"role_id"` // назначается клиентом, стабилен после создания
	Name                   string   `json:"name"`
	Type                   string   `json:"type"` // On-Stage | Off-Stage
	OffstageRole           string   `json:"offstage_role,omitempty"`
	GenderIdentity         []string `json:"gender_identity"` // по факту single select, массив для legacy данных
	Ethnicities            []string `json:"ethnicities"`
	AgeRanges              []string `json:"age_ranges"`
	LGBTQOnly              bool     `json:"lgbtq_only"`
	IncludeNonbinary       bool     `json:"include_nonbinary"`
	AdditionalRequirements []string `json:"additional_requirements"`
	Unions                 []string `json:"unions"`
}

// RequiresSkill проверяет наличие требования в additional_requirements
func (r *Role) RequiresSkill(requirement string) bool {
	for _, req := range r.AdditionalRequirements {
		if req == requirement {
			return true
		}
	}
	return false
}

type Production struct {
	ID          string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	TheaterID   string `gorm:"type:uuid;index;not null"` // user_id владельца-театра
	Title       string
	Description string
	Status      ProductionStatus `gorm:"type:varchar(32);index"`
	Roles       datatypes.JSON   `gorm:"type:jsonb"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GetRoles декодирует встроенный список ролей
func (p *Production) GetRoles() []Role {
	var roles []Role
	if len(p.Roles) > 0 {
		if err := json.Unmarshal(p.Roles, &roles); err != nil {
			return nil
		}
	}
	return roles
}

// SetRoles перезаписывает весь список ролей целиком
func (p *Production) SetRoles(roles []Role) error {
	data, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	p.Roles = datatypes.JSON(data)
	return nil
}

// FindRole возвращает роль по role_id или nil
func (p *Production) FindRole(roleID string) *Role {
	for _, role := range p.GetRoles() {
		if role.RoleID == roleID {
			r := role
			return &r
		}
	}
	return nil
}

package algorithms

import (
	"testing"

	"stagematch_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// eligibleRole and eligibleProfile form a pair that passes every gate.
// Individual tests mutate one dimension at a time.
func eligibleRole() *models.Role {
	return &models.Role{
		RoleID:                 "role-1",
		Name:                   "Ensemble",
		Type:                   models.RoleTypeOnStage,
		GenderIdentity:         []string{models.GenderRoleWoman},
		Ethnicities:            []string{"Asian"},
		AgeRanges:              []string{"18-25", "26-35"},
		LGBTQOnly:              true,
		AdditionalRequirements: []string{models.RequiresSinging},
		Unions:                 []string{"AEA"},
	}
}

func eligibleProfile() *models.TalentProfile {
	return &models.TalentProfile{
		UserID:         "talent-1",
		StageRole:      "on-stage", // нижний регистр нарочно: сравнение case-insensitive
		GenderIdentity: models.GenderCisWoman,
		Ethnicities:    []string{"East Asian (ex. China, Korea, Japan)"},
		AgeRanges:      []string{"26-35"},
		LGBTQIA:        models.LGBTQIAYes,
		Skills:         []string{models.SkillSinging, models.SkillDancing},
		UnionStatuses:  []string{"AEA"},
	}
}

func TestIsEligible_FullMatch(t *testing.T) {
	assert.True(t, IsEligible(eligibleRole(), eligibleProfile()))
}

// Каждый гейт независим: порча одного измерения валит весь предикат.
func TestIsEligible_SingleGateFlipsResult(t *testing.T) {
	tests := []struct {
		name    string
		role    func(*models.Role)
		profile func(*models.TalentProfile)
	}{
		{
			name:    "stage type mismatch",
			profile: func(p *models.TalentProfile) { p.StageRole = models.StageRoleOffStage },
		},
		{
			name:    "ethnicity disjoint",
			profile: func(p *models.TalentProfile) { p.Ethnicities = []string{"Persian"} },
		},
		{
			name:    "gender mismatch",
			role:    func(r *models.Role) { r.GenderIdentity = []string{models.GenderRoleMan} },
		},
		{
			name:    "age ranges disjoint",
			profile: func(p *models.TalentProfile) { p.AgeRanges = []string{"46-55"} },
		},
		{
			name:    "lgbtq only against non-lgbtq profile",
			profile: func(p *models.TalentProfile) { p.LGBTQIA = "No" },
		},
		{
			name:    "missing required skill",
			profile: func(p *models.TalentProfile) { p.Skills = []string{models.SkillDancing} },
		},
		{
			name:    "union mismatch",
			profile: func(p *models.TalentProfile) { p.UnionStatuses = []string{"Non-union"} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role := eligibleRole()
			profile := eligibleProfile()
			if tt.role != nil {
				tt.role(role)
			}
			if tt.profile != nil {
				tt.profile(profile)
			}
			assert.False(t, IsEligible(role, profile))
		})
	}
}

// Сентинел "open to all" никогда не исключает профиль по своему измерению.
func TestIsEligible_SentinelsBypassGates(t *testing.T) {
	role := eligibleRole()
	role.GenderIdentity = []string{models.OpenToAllGenders}
	role.Ethnicities = []string{models.OpenToAllEthnicities}
	role.AgeRanges = []string{models.OpenToAllAges}

	profile := eligibleProfile()
	profile.GenderIdentity = models.GenderNoResponse
	profile.Ethnicities = nil
	profile.AgeRanges = nil

	assert.True(t, IsEligible(role, profile))
}

func TestIsEligible_EmptyRequirementListsSkipGates(t *testing.T) {
	role := eligibleRole()
	role.GenderIdentity = nil
	role.Ethnicities = nil
	role.AgeRanges = nil
	role.Unions = nil
	role.AdditionalRequirements = nil
	role.LGBTQOnly = false

	profile := eligibleProfile()
	profile.Ethnicities = nil
	profile.AgeRanges = nil
	profile.UnionStatuses = nil
	profile.Skills = nil
	profile.LGBTQIA = ""

	assert.True(t, IsEligible(role, profile))
}

// Роль с зонтичной категорией матчит профиль с узкой подкатегорией
// (раскрытие только в сторону роль -> профиль).
func TestIsEligible_UmbrellaEthnicityMatchesSubcategory(t *testing.T) {
	role := eligibleRole()
	role.Ethnicities = []string{"Asian"}

	profile := eligibleProfile()
	profile.Ethnicities = []string{"East Asian (ex. China, Korea, Japan)"}

	assert.True(t, IsEligible(role, profile))

	// Обратное направление не раскрывается: профиль с зонтичной категорией
	// не матчит роль с узкой подкатегорией.
	role.Ethnicities = []string{"East Asian (ex. China, Korea, Japan)"}
	profile.Ethnicities = []string{"Asian"}
	assert.False(t, IsEligible(role, profile))
}

func TestIsEligible_TransNonbinaryGenderRules(t *testing.T) {
	// Роль "Woman", профиль Trans/Nonbinary с интересом только к "Man" - отказ
	role := eligibleRole()
	role.GenderIdentity = []string{models.GenderRoleWoman}

	profile := eligibleProfile()
	profile.GenderIdentity = models.GenderTransNonbinary
	profile.GenderRoles = []string{models.GenderRoleMan}
	assert.False(t, IsEligible(role, profile))

	// С заявленным интересом к "Woman" - проходит
	profile.GenderRoles = []string{models.GenderRoleWoman}
	assert.True(t, IsEligible(role, profile))

	// include_nonbinary открывает роль любого гендера при заявленном "Nonbinary"
	role.GenderIdentity = []string{models.GenderRoleMan}
	role.IncludeNonbinary = true
	profile.GenderRoles = []string{models.GenderRoleNonbinary}
	assert.True(t, IsEligible(role, profile))

	// Без include_nonbinary интерес "Nonbinary" сам по себе не матчит
	role.IncludeNonbinary = false
	assert.False(t, IsEligible(role, profile))
}

func TestIsEligible_NoResponseNeverMatchesSpecificGender(t *testing.T) {
	role := eligibleRole()
	role.GenderIdentity = []string{models.GenderRoleWoman}

	profile := eligibleProfile()
	profile.GenderIdentity = models.GenderNoResponse

	assert.False(t, IsEligible(role, profile))
}

func TestIsEligible_SingingAndDancingAreConjunctive(t *testing.T) {
	role := eligibleRole()
	role.AdditionalRequirements = []string{models.RequiresSinging, models.RequiresDancing}

	profile := eligibleProfile()
	profile.Skills = []string{models.SkillSinging}

	// Только пение - недостаточно
	assert.False(t, IsEligible(role, profile))

	profile.Skills = []string{models.SkillSinging, models.SkillDancing}
	assert.True(t, IsEligible(role, profile))
}

func TestIsEligible_BothStageRoleMatchesEitherType(t *testing.T) {
	role := eligibleRole()
	role.Type = models.RoleTypeOffStage

	profile := eligibleProfile()
	profile.StageRole = models.StageRoleBoth

	assert.True(t, IsEligible(role, profile))
}

package algorithms

import (
	"strings"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/taxonomy"
)

// IsEligible decides whether a talent profile qualifies for a role.
// Conjunction of independent gates, fail-fast: the first failing gate
// returns false. Pure, no I/O.
func IsEligible(role *models.Role, profile *models.TalentProfile) bool {
	if !stageTypeMatches(role, profile) {
		return false
	}
	if !ethnicityMatches(role, profile) {
		return false
	}
	if !genderMatches(role, profile) {
		return false
	}
	if !ageMatches(role, profile) {
		return false
	}
	if role.LGBTQOnly && profile.LGBTQIA != models.LGBTQIAYes {
		return false
	}
	if !skillsMatch(role, profile) {
		return false
	}
	if !unionMatches(role, profile) {
		return false
	}
	return true
}

// stageTypeMatches: профиль "Both" подходит на любой тип роли, иначе
// тип должен совпасть без учета регистра.
func stageTypeMatches(role *models.Role, profile *models.TalentProfile) bool {
	if strings.EqualFold(profile.StageRole, models.StageRoleBoth) {
		return true
	}
	return strings.EqualFold(profile.StageRole, role.Type)
}

// ethnicityMatches: список роли раскрывается по таксономии (только в одну
// сторону, роль -> профиль), дальше достаточно одного пересечения.
// Пустой список или сентинел - без ограничений.
func ethnicityMatches(role *models.Role, profile *models.TalentProfile) bool {
	if len(role.Ethnicities) == 0 || contains(role.Ethnicities, models.OpenToAllEthnicities) {
		return true
	}
	expanded := taxonomy.ExpandEthnicities(role.Ethnicities)
	return overlaps(expanded, profile.Ethnicities)
}

// genderMatches реализует гендерные правила:
//   - сентинел или пустой список - без ограничений;
//   - "I choose not to respond" не матчится на роль с конкретным гендером;
//   - Cis Woman -> "Woman", Cis Man -> "Man";
//   - Trans/Nonbinary матчится на "Woman"/"Man" только при явно заявленном
//     интересе в gender_roles, и на любую роль с include_nonbinary при
//     заявленном "Nonbinary".
func genderMatches(role *models.Role, profile *models.TalentProfile) bool {
	if len(role.GenderIdentity) == 0 || contains(role.GenderIdentity, models.OpenToAllGenders) {
		return true
	}

	if profile.GenderIdentity == models.GenderNoResponse {
		return false
	}

	if role.IncludeNonbinary &&
		profile.GenderIdentity == models.GenderTransNonbinary &&
		profile.OpenToGenderRole(models.GenderRoleNonbinary) {
		return true
	}

	// gender_identity роли - по факту single select, но legacy данные могут
	// содержать несколько значений; принимаем любое совпадение.
	for _, roleGender := range role.GenderIdentity {
		switch profile.GenderIdentity {
		case models.GenderCisWoman:
			if roleGender == models.GenderRoleWoman {
				return true
			}
		case models.GenderCisMan:
			if roleGender == models.GenderRoleMan {
				return true
			}
		case models.GenderTransNonbinary:
			if roleGender == models.GenderRoleWoman && profile.OpenToGenderRole(models.GenderRoleWoman) {
				return true
			}
			if roleGender == models.GenderRoleMan && profile.OpenToGenderRole(models.GenderRoleMan) {
				return true
			}
		}
	}

	return false
}

func ageMatches(role *models.Role, profile *models.TalentProfile) bool {
	if len(role.AgeRanges) == 0 || contains(role.AgeRanges, models.OpenToAllAges) {
		return true
	}
	return overlaps(role.AgeRanges, profile.AgeRanges)
}

// skillsMatch: требования пения и танца независимы и комбинируются по AND.
func skillsMatch(role *models.Role, profile *models.TalentProfile) bool {
	if role.RequiresSkill(models.RequiresSinging) && !profile.HasSkill(models.SkillSinging) {
		return false
	}
	if role.RequiresSkill(models.RequiresDancing) && !profile.HasSkill(models.SkillDancing) {
		return false
	}
	return true
}

func unionMatches(role *models.Role, profile *models.TalentProfile) bool {
	if len(role.Unions) == 0 {
		return true
	}
	return overlaps(role.Unions, profile.UnionStatuses)
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, va := range a {
		for _, vb := range b {
			if va == vb {
				return true
			}
		}
	}
	return false
}

package services

import (
	"context"
	"errors"
	"sort"
	"testing"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRole(roleID string) models.Role {
	return models.Role{
		RoleID:         roleID,
		Name:           "Ensemble",
		Type:           models.RoleTypeOnStage,
		GenderIdentity: []string{models.OpenToAllGenders},
		Ethnicities:    []string{models.OpenToAllEthnicities},
		AgeRanges:      []string{models.OpenToAllAges},
	}
}

func productionWithRoles(id string, roles ...models.Role) *models.Production {
	p := &models.Production{
		ID:        id,
		TheaterID: "theater-1",
		Title:     "Test Production",
		Status:    models.ProductionStatusCasting,
	}
	if err := p.SetRoles(roles); err != nil {
		panic(err)
	}
	return p
}

func eligibleTalent(userID string) models.TalentProfile {
	return models.TalentProfile{
		UserID:         userID,
		Name:           "Talent " + userID,
		StageRole:      models.StageRoleBoth,
		GenderIdentity: models.GenderCisWoman,
		IsPublic:       true,
	}
}

func TestFindTalentForRole_MissingProductionReturnsEmpty(t *testing.T) {
	svc := NewMatchingService(
		&mockProfileRepo{},
		&mockProductionRepo{findByID: func(string) (*models.Production, error) {
			return nil, repositories.ErrProductionNotFound
		}},
		&mockMatchRepo{},
	)

	resp, err := svc.FindTalentForRole(context.Background(), nil, &dto.FindTalentRequest{
		ProductionID: "missing",
		RoleID:       "r1",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Talents)
	assert.Equal(t, 0, resp.Total)
}

func TestFindTalentForRole_MissingRoleReturnsEmpty(t *testing.T) {
	production := productionWithRoles("p1", openRole("r1"))
	svc := NewMatchingService(
		&mockProfileRepo{},
		&mockProductionRepo{findByID: func(string) (*models.Production, error) { return production, nil }},
		&mockMatchRepo{},
	)

	resp, err := svc.FindTalentForRole(context.Background(), nil, &dto.FindTalentRequest{
		ProductionID: "p1",
		RoleID:       "no-such-role",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Talents)
}

// Кандидаты - строгое пересечение результатов под-запросов,
// затем точная проверка соответствия.
func TestFindTalentForRole_IntersectsSubqueryResults(t *testing.T) {
	role := openRole("r1")
	role.GenderIdentity = []string{models.GenderRoleWoman}
	production := productionWithRoles("p1", role)

	profiles := map[string]models.TalentProfile{
		"b": eligibleTalent("b"),
		"c": func() models.TalentProfile {
			p := eligibleTalent("c")
			p.GenderIdentity = models.GenderCisMan // мок пропускает, отсекает точная проверка
			return p
		}(),
	}

	profileRepo := &mockProfileRepo{
		equalityCandidateIDs: func(equals map[string]interface{}) ([]string, error) {
			assert.Empty(t, equals)
			return []string{"a", "b", "c"}, nil
		},
		candidateIDsByFilter: func(filter repositories.ArrayFilter) ([]string, error) {
			assert.Equal(t, "gender_identity", filter.Column)
			assert.Equal(t, repositories.FilterKindIn, filter.Kind)
			assert.Contains(t, filter.Values, models.GenderCisWoman)
			assert.Contains(t, filter.Values, models.GenderTransNonbinary)
			return []string{"b", "c", "d"}, nil
		},
		findProfilesByUserIDs: func(userIDs []string) ([]models.TalentProfile, error) {
			sort.Strings(userIDs)
			assert.Equal(t, []string{"b", "c"}, userIDs)
			var result []models.TalentProfile
			for _, id := range userIDs {
				result = append(result, profiles[id])
			}
			return result, nil
		},
	}

	svc := NewMatchingService(
		profileRepo,
		&mockProductionRepo{findByID: func(string) (*models.Production, error) { return production, nil }},
		&mockMatchRepo{},
	)

	resp, err := svc.FindTalentForRole(context.Background(), nil, &dto.FindTalentRequest{
		ProductionID: "p1",
		RoleID:       "r1",
	})

	require.NoError(t, err)
	// "c" пережил SQL-фильтры в моке, но точная проверка его отсекает
	require.Len(t, resp.Talents, 1)
	assert.Equal(t, "b", resp.Talents[0].Profile.UserID)
}

func TestFindTalentForRole_SubqueryErrorPropagates(t *testing.T) {
	role := openRole("r1")
	role.Unions = []string{"AEA"}
	production := productionWithRoles("p1", role)

	profileRepo := &mockProfileRepo{
		equalityCandidateIDs: func(map[string]interface{}) ([]string, error) {
			return []string{"a"}, nil
		},
		candidateIDsByFilter: func(repositories.ArrayFilter) ([]string, error) {
			return nil, errors.New("connection reset")
		},
	}

	svc := NewMatchingService(
		profileRepo,
		&mockProductionRepo{findByID: func(string) (*models.Production, error) { return production, nil }},
		&mockMatchRepo{},
	)

	_, err := svc.FindTalentForRole(context.Background(), nil, &dto.FindTalentRequest{
		ProductionID: "p1",
		RoleID:       "r1",
	})

	assert.Error(t, err)
}

func TestFindTalentForRole_MatchStatusNarrowsCandidates(t *testing.T) {
	production := productionWithRoles("p1", openRole("r1"))
	status := true

	profileRepo := &mockProfileRepo{
		equalityCandidateIDs: func(map[string]interface{}) ([]string, error) {
			return []string{"a", "b"}, nil
		},
		findProfilesByUserIDs: func(userIDs []string) ([]models.TalentProfile, error) {
			assert.Equal(t, []string{"a"}, userIDs)
			p := eligibleTalent("a")
			return []models.TalentProfile{p}, nil
		},
	}

	matchRepo := &mockMatchRepo{
		talentIDsByRole: func(productionID, roleID string, got bool) ([]string, error) {
			assert.Equal(t, "p1", productionID)
			assert.Equal(t, "r1", roleID)
			assert.True(t, got)
			return []string{"a", "z"}, nil
		},
	}

	svc := NewMatchingService(
		profileRepo,
		&mockProductionRepo{findByID: func(string) (*models.Production, error) { return production, nil }},
		matchRepo,
	)

	resp, err := svc.FindTalentForRole(context.Background(), nil, &dto.FindTalentRequest{
		ProductionID: "p1",
		RoleID:       "r1",
		MatchStatus:  &status,
	})

	require.NoError(t, err)
	require.Len(t, resp.Talents, 1)
	assert.Equal(t, "a", resp.Talents[0].Profile.UserID)
	assert.True(t, resp.Talents[0].HasMatch)
}

// Скан отказоустойчив: недоступная анкета или постановки дают пустую
// выдачу, не ошибку.
func TestFindRolesForTalent_FailsOpenToEmpty(t *testing.T) {
	svc := NewMatchingService(
		&mockProfileRepo{findTalentByUserID: func(string) (*models.TalentProfile, error) {
			return nil, repositories.ErrProfileNotFound
		}},
		&mockProductionRepo{},
		&mockMatchRepo{},
	)

	resp, err := svc.FindRolesForTalent(context.Background(), nil, "talent-1")

	require.NoError(t, err)
	assert.Empty(t, resp.Roles)
}

func TestFindRolesForTalent_ProductionLoadFailureIsEmpty(t *testing.T) {
	profile := eligibleTalent("talent-1")
	svc := NewMatchingService(
		&mockProfileRepo{findTalentByUserID: func(string) (*models.TalentProfile, error) { return &profile, nil }},
		&mockProductionRepo{findAllByStatuses: func([]models.ProductionStatus) ([]models.Production, error) {
			return nil, errors.New("db down")
		}},
		&mockMatchRepo{},
	)

	resp, err := svc.FindRolesForTalent(context.Background(), nil, "talent-1")

	require.NoError(t, err)
	assert.Empty(t, resp.Roles)
}

func TestFindRolesForTalent_ReturnsOnlyEligibleRoles(t *testing.T) {
	profile := eligibleTalent("talent-1")

	womanRole := openRole("r-open")
	manOnly := openRole("r-man")
	manOnly.GenderIdentity = []string{models.GenderRoleMan}

	p1 := productionWithRoles("p1", womanRole, manOnly)
	p2 := productionWithRoles("p2", openRole("r-other"))

	svc := NewMatchingService(
		&mockProfileRepo{findTalentByUserID: func(string) (*models.TalentProfile, error) { return &profile, nil }},
		&mockProductionRepo{findAllByStatuses: func(statuses []models.ProductionStatus) ([]models.Production, error) {
			assert.ElementsMatch(t, models.ActiveProductionStatuses, statuses)
			return []models.Production{*p1, *p2}, nil
		}},
		&mockMatchRepo{},
	)

	resp, err := svc.FindRolesForTalent(context.Background(), nil, "talent-1")

	require.NoError(t, err)
	require.Len(t, resp.Roles, 2)
	roleIDs := []string{resp.Roles[0].Role.RoleID, resp.Roles[1].Role.RoleID}
	assert.ElementsMatch(t, []string{"r-open", "r-other"}, roleIDs)
}

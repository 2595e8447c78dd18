package services

import (
	"context"
	"errors"
	"sync"

	"stagematch_backend/internal/algorithms"
	"stagematch_backend/internal/logger"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/internal/taxonomy"
	"stagematch_backend/pkg/apperrors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type MatchingService interface {
	// FindTalentForRole подбирает публичные анкеты талантов под роль
	FindTalentForRole(ctx context.Context, db *gorm.DB, req *dto.FindTalentRequest) (*dto.FindTalentResponse, error)

	// FindRolesForTalent сканирует активные постановки и возвращает роли,
	// на которые проходит анкета таланта
	FindRolesForTalent(ctx context.Context, db *gorm.DB, talentUserID string) (*dto.FindRolesResponse, error)
}

type matchingService struct {
	profileRepo    repositories.ProfileRepository
	productionRepo repositories.ProductionRepository
	matchRepo      repositories.MatchRepository
}

func NewMatchingService(
	profileRepo repositories.ProfileRepository,
	productionRepo repositories.ProductionRepository,
	matchRepo repositories.MatchRepository,
) MatchingService {
	return &matchingService{
		profileRepo:    profileRepo,
		productionRepo: productionRepo,
		matchRepo:      matchRepo,
	}
}

// FindTalentForRole - планировщик запроса роль -> таланты.
//
// Требования роли раскладываются на необходимые условия: скалярные
// предикаты уходят одним equality-запросом, каждый массивный фильтр -
// отдельным запросом. Запросы выполняются конкурентно, затем множества
// user_id пересекаются, и выжившие анкеты прогоняются через точную
// проверку соответствия. Точная проверка обязательна: фильтры нижнего
// слоя шире настоящих правил (гендер, регистр типа сцены, AND навыков).
//
// Отсутствующая постановка или роль дает пустой результат, не ошибку.
// Ошибка любого под-запроса поднимается наверх.
func (s *matchingService) FindTalentForRole(ctx context.Context, db *gorm.DB, req *dto.FindTalentRequest) (*dto.FindTalentResponse, error) {
	empty := &dto.FindTalentResponse{
		ProductionID: req.ProductionID,
		RoleID:       req.RoleID,
		Talents:      []dto.TalentMatchResult{},
	}

	production, err := s.productionRepo.FindByID(db, req.ProductionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductionNotFound) {
			return empty, nil
		}
		return nil, apperrors.InternalError(err)
	}

	role := production.FindRole(req.RoleID)
	if role == nil {
		return empty, nil
	}

	equals, filters := buildCandidateFilters(role)

	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex
	idSets := make([][]string, 0, len(filters)+2)

	g.Go(func() error {
		ids, err := s.profileRepo.EqualityCandidateIDs(db, equals)
		if err != nil {
			return err
		}
		mu.Lock()
		idSets = append(idSets, ids)
		mu.Unlock()
		return nil
	})

	for _, f := range filters {
		filter := f
		g.Go(func() error {
			ids, err := s.profileRepo.CandidateIDsByArrayFilter(db, filter)
			if err != nil {
				return err
			}
			mu.Lock()
			idSets = append(idSets, ids)
			mu.Unlock()
			return nil
		})
	}

	if req.MatchStatus != nil {
		g.Go(func() error {
			ids, err := s.matchRepo.TalentIDsByRoleAndStatus(db, req.ProductionID, req.RoleID, *req.MatchStatus)
			if err != nil {
				return err
			}
			mu.Lock()
			idSets = append(idSets, ids)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, apperrors.InternalError(err)
	}

	candidateIDs := intersectIDSets(idSets)
	if len(candidateIDs) == 0 {
		return empty, nil
	}

	profiles, err := s.profileRepo.FindTalentProfilesByUserIDs(db, candidateIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	results := make([]dto.TalentMatchResult, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]
		if !algorithms.IsEligible(role, profile) {
			continue
		}
		result := dto.TalentMatchResult{Profile: dto.NewTalentProfileResponse(profile)}
		if req.MatchStatus != nil {
			result.HasMatch = true
			result.MatchStatus = req.MatchStatus
		}
		results = append(results, result)
	}

	return &dto.FindTalentResponse{
		ProductionID: req.ProductionID,
		RoleID:       req.RoleID,
		Talents:      results,
		Total:        len(results),
	}, nil
}

// FindRolesForTalent - скан талант -> роли по активным постановкам.
// Любой сбой на пути дает пустой результат с записью в лог, не ошибку:
// лента ролей не должна падать из-за одной кривой записи.
func (s *matchingService) FindRolesForTalent(ctx context.Context, db *gorm.DB, talentUserID string) (*dto.FindRolesResponse, error) {
	empty := &dto.FindRolesResponse{Roles: []dto.RoleMatchResult{}}

	profile, err := s.profileRepo.FindTalentProfileByUserID(db, talentUserID)
	if err != nil {
		logger.Warn("Скан ролей: анкета таланта недоступна", "user_id", talentUserID, "error", err)
		return empty, nil
	}

	productions, err := s.productionRepo.FindAllByStatuses(db, models.ActiveProductionStatuses)
	if err != nil {
		logger.Warn("Скан ролей: не удалось загрузить активные постановки", "error", err)
		return empty, nil
	}

	results := make([]dto.RoleMatchResult, 0)
	for i := range productions {
		production := &productions[i]
		roles := production.GetRoles()
		if roles == nil && len(production.Roles) > 0 {
			logger.Warn("Скан ролей: нечитаемый список ролей постановки", "production_id", production.ID)
			continue
		}
		for _, role := range roles {
			if !algorithms.IsEligible(&role, profile) {
				continue
			}
			results = append(results, dto.RoleMatchResult{
				ProductionID:    production.ID,
				ProductionTitle: production.Title,
				TheaterID:       production.TheaterID,
				Status:          production.Status,
				Role:            role,
				PostedAt:        production.CreatedAt,
			})
		}
	}

	return &dto.FindRolesResponse{Roles: results, Total: len(results)}, nil
}

// buildCandidateFilters раскладывает требования роли на запросы нижнего
// слоя. Каждый фильтр - необходимое условие соответствия, поэтому
// пересечение результатов не теряет подходящих кандидатов. Тип сцены
// в фильтры не попадает: сравнение без учета регистра и wildcard "Both"
// не выражаются через IN, его закрывает точная проверка.
func buildCandidateFilters(role *models.Role) (map[string]interface{}, []repositories.ArrayFilter) {
	equals := make(map[string]interface{})
	var filters []repositories.ArrayFilter

	if role.LGBTQOnly {
		equals["lgbtqia"] = models.LGBTQIAYes
	}

	if genders := plannerGenderIdentities(role); genders != nil {
		filters = append(filters, repositories.ArrayFilter{
			Column: "gender_identity",
			Values: genders,
			Kind:   repositories.FilterKindIn,
		})
	}

	if len(role.Ethnicities) > 0 && !containsValue(role.Ethnicities, models.OpenToAllEthnicities) {
		filters = append(filters, repositories.ArrayFilter{
			Column: "ethnicities",
			Values: taxonomy.ExpandEthnicities(role.Ethnicities),
			Kind:   repositories.FilterKindOverlap,
		})
	}

	if len(role.AgeRanges) > 0 && !containsValue(role.AgeRanges, models.OpenToAllAges) {
		filters = append(filters, repositories.ArrayFilter{
			Column: "age_ranges",
			Values: role.AgeRanges,
			Kind:   repositories.FilterKindOverlap,
		})
	}

	// Каждый требуемый навык - отдельный фильтр: требования комбинируются
	// по AND, а overlap-запрос выражает только OR
	if role.RequiresSkill(models.RequiresSinging) {
		filters = append(filters, repositories.ArrayFilter{
			Column: "skills",
			Values: []string{models.SkillSinging},
			Kind:   repositories.FilterKindOverlap,
		})
	}
	if role.RequiresSkill(models.RequiresDancing) {
		filters = append(filters, repositories.ArrayFilter{
			Column: "skills",
			Values: []string{models.SkillDancing},
			Kind:   repositories.FilterKindOverlap,
		})
	}

	if len(role.Unions) > 0 {
		filters = append(filters, repositories.ArrayFilter{
			Column: "union_statuses",
			Values: role.Unions,
			Kind:   repositories.FilterKindOverlap,
		})
	}

	return equals, filters
}

// plannerGenderIdentities возвращает значения gender_identity профиля,
// при которых соответствие в принципе возможно, или nil если роль
// открыта для всех. Trans/Nonbinary попадает всегда: точные условия
// (gender_roles, include_nonbinary) проверяет финальный проход.
func plannerGenderIdentities(role *models.Role) []string {
	if len(role.GenderIdentity) == 0 || containsValue(role.GenderIdentity, models.OpenToAllGenders) {
		return nil
	}

	values := []string{models.GenderTransNonbinary}
	for _, g := range role.GenderIdentity {
		switch g {
		case models.GenderRoleWoman:
			values = append(values, models.GenderCisWoman)
		case models.GenderRoleMan:
			values = append(values, models.GenderCisMan)
		}
	}
	return values
}

// intersectIDSets пересекает множества идентификаторов. Пустой входной
// набор дает пустой результат.
func intersectIDSets(sets [][]string) []string {
	if len(sets) == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, set := range sets {
		seen := make(map[string]bool, len(set))
		for _, id := range set {
			if seen[id] {
				continue
			}
			seen[id] = true
			counts[id]++
		}
	}

	var result []string
	for id, n := range counts {
		if n == len(sets) {
			result = append(result, id)
		}
	}
	return result
}

func containsValue(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

package repositories

import (
	"errors"
	"fmt"
	"time"

	"stagematch_backend/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileAlreadyExists = errors.New("profile already exists for this user")
)

// FilterKind - вид фильтра по массиву значений.
// Нижний слой запросов не умеет комбинировать membership-фильтр ("in")
// с overlap-фильтром ("&&") в одном запросе, поэтому каждый массивный
// фильтр уходит отдельным запросом, а пересечение делается в памяти.
type FilterKind string

const (
	// FilterKindIn - массив значений против скалярной колонки (SQL IN)
	FilterKindIn FilterKind = "in"
	// FilterKindOverlap - массив значений против text[] колонки (SQL &&)
	FilterKindOverlap FilterKind = "overlap"
)

// ArrayFilter - один массивный фильтр кандидатов
type ArrayFilter struct {
	Column string
	Values []string
	Kind   FilterKind
}

type ProfileRepository interface {
	// TalentProfile operations
	CreateTalentProfile(db *gorm.DB, profile *models.TalentProfile) error
	FindTalentProfileByUserID(db *gorm.DB, userID string) (*models.TalentProfile, error)
	UpdateTalentProfile(db *gorm.DB, profile *models.TalentProfile) error
	IncrementTalentProfileViews(db *gorm.DB, userID string) error
	UpdateTalentProfilePhoto(db *gorm.DB, userID, photoURL, thumbnailURL string) error
	SearchTalentProfiles(db *gorm.DB, criteria TalentSearchCriteria) ([]models.TalentProfile, int64, error)

	// Примитивы для планировщика запросов матчинга
	EqualityCandidateIDs(db *gorm.DB, equals map[string]interface{}) ([]string, error)
	CandidateIDsByArrayFilter(db *gorm.DB, filter ArrayFilter) ([]string, error)
	FindTalentProfilesByUserIDs(db *gorm.DB, userIDs []string) ([]models.TalentProfile, error)

	// TheaterProfile operations
	CreateTheaterProfile(db *gorm.DB, profile *models.TheaterProfile) error
	FindTheaterProfileByUserID(db *gorm.DB, userID string) (*models.TheaterProfile, error)
	UpdateTheaterProfile(db *gorm.DB, profile *models.TheaterProfile) error
}

type TalentSearchCriteria struct {
	Query    string `form:"query"`
	City     string `form:"city"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

// --- TalentProfile operations ---

func (r *profileRepository) CreateTalentProfile(db *gorm.DB, profile *models.TalentProfile) error {
	var existing models.TalentProfile
	if err := db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}
	return db.Create(profile).Error
}

func (r *profileRepository) FindTalentProfileByUserID(db *gorm.DB, userID string) (*models.TalentProfile, error) {
	var profile models.TalentProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateTalentProfile(db *gorm.DB, profile *models.TalentProfile) error {
	result := db.Model(&models.TalentProfile{}).Where("user_id = ?", profile.UserID).Updates(map[string]interface{}{
		"name":            profile.Name,
		"contact_email":   profile.ContactEmail,
		"stage_role":      profile.StageRole,
		"ethnicities":     profile.Ethnicities,
		"age_ranges":      profile.AgeRanges,
		"gender_identity": profile.GenderIdentity,
		"gender_roles":    profile.GenderRoles,
		"lgbtqia":         profile.LGBTQIA,
		"skills":          profile.Skills,
		"union_statuses":  profile.UnionStatuses,
		"bio":             profile.Bio,
		"city":            profile.City,
		"website":         profile.Website,
		"is_public":       profile.IsPublic,
		"updated_at":      time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) IncrementTalentProfileViews(db *gorm.DB, userID string) error {
	return db.Model(&models.TalentProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error
}

func (r *profileRepository) UpdateTalentProfilePhoto(db *gorm.DB, userID, photoURL, thumbnailURL string) error {
	result := db.Model(&models.TalentProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"photo_url":           photoURL,
			"photo_thumbnail_url": thumbnailURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) SearchTalentProfiles(db *gorm.DB, criteria TalentSearchCriteria) ([]models.TalentProfile, int64, error) {
	query := db.Model(&models.TalentProfile{}).Where("is_public = ?", true)

	if criteria.Query != "" {
		query = query.Where("name ILIKE ?", "%"+criteria.Query+"%")
	}
	if criteria.City != "" {
		query = query.Where("city = ?", criteria.City)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var profiles []models.TalentProfile
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}

	return profiles, total, nil
}

// --- Примитивы планировщика ---

// EqualityCandidateIDs выполняет один запрос со всеми equality-предикатами
// сразу и возвращает user_id публичных профилей-кандидатов.
func (r *profileRepository) EqualityCandidateIDs(db *gorm.DB, equals map[string]interface{}) ([]string, error) {
	query := db.Model(&models.TalentProfile{}).Where("is_public = ?", true)
	for column, value := range equals {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var ids []string
	if err := query.Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CandidateIDsByArrayFilter выполняет ровно один массивный фильтр против
// всей коллекции кандидатов.
func (r *profileRepository) CandidateIDsByArrayFilter(db *gorm.DB, filter ArrayFilter) ([]string, error) {
	query := db.Model(&models.TalentProfile{}).Where("is_public = ?", true)

	switch filter.Kind {
	case FilterKindIn:
		query = query.Where(fmt.Sprintf("%s IN ?", filter.Column), filter.Values)
	case FilterKindOverlap:
		query = query.Where(fmt.Sprintf("%s && ?", filter.Column), pq.Array(filter.Values))
	default:
		return nil, fmt.Errorf("unknown array filter kind: %s", filter.Kind)
	}

	var ids []string
	if err := query.Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *profileRepository) FindTalentProfilesByUserIDs(db *gorm.DB, userIDs []string) ([]models.TalentProfile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []models.TalentProfile
	err := db.Where("user_id IN ?", userIDs).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// --- TheaterProfile operations ---

func (r *profileRepository) CreateTheaterProfile(db *gorm.DB, profile *models.TheaterProfile) error {
	var existing models.TheaterProfile
	if err := db.Where("user_id = ?", profile.UserID).First(&existing).Error; err == nil {
		return ErrProfileAlreadyExists
	}
	return db.Create(profile).Error
}

func (r *profileRepository) FindTheaterProfileByUserID(db *gorm.DB, userID string) (*models.TheaterProfile, error) {
	var profile models.TheaterProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateTheaterProfile(db *gorm.DB, profile *models.TheaterProfile) error {
	result := db.Model(&models.TheaterProfile{}).Where("user_id = ?", profile.UserID).Updates(map[string]interface{}{
		"company_name":  profile.CompanyName,
		"contact_email": profile.ContactEmail,
		"city":          profile.City,
		"description":   profile.Description,
		"website":       profile.Website,
		"updated_at":    time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

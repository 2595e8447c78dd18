package repositories

import (
	"errors"
	"time"

	"stagematch_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchAlreadyExists = errors.New("match already exists for this role and talent")
)

type MatchRepository interface {
	Create(db *gorm.DB, match *models.TheaterTalentMatch) error
	FindByID(db *gorm.DB, id string) (*models.TheaterTalentMatch, error)
	FindByTriple(db *gorm.DB, productionID, roleID, talentUserID string) (*models.TheaterTalentMatch, error)
	Update(db *gorm.DB, match *models.TheaterTalentMatch) error
	FindByTalent(db *gorm.DB, talentUserID string) ([]models.TheaterTalentMatch, error)
	FindByTheater(db *gorm.DB, theaterUserID string) ([]models.TheaterTalentMatch, error)
	FindByProduction(db *gorm.DB, productionID string) ([]models.TheaterTalentMatch, error)
	TalentIDsByRoleAndStatus(db *gorm.DB, productionID, roleID string, status bool) ([]string, error)
}

type matchRepository struct{}

func NewMatchRepository() MatchRepository {
	return &matchRepository{}
}

func (r *matchRepository) Create(db *gorm.DB, match *models.TheaterTalentMatch) error {
	var existing models.TheaterTalentMatch
	err := db.Where("production_id = ? AND role_id = ? AND talent_user_id = ?",
		match.ProductionID, match.RoleID, match.TalentUserID).First(&existing).Error
	if err == nil {
		return ErrMatchAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(match).Error
}

func (r *matchRepository) FindByID(db *gorm.DB, id string) (*models.TheaterTalentMatch, error) {
	var match models.TheaterTalentMatch
	err := db.Where("id = ?", id).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) FindByTriple(db *gorm.DB, productionID, roleID, talentUserID string) (*models.TheaterTalentMatch, error) {
	var match models.TheaterTalentMatch
	err := db.Where("production_id = ? AND role_id = ? AND talent_user_id = ?",
		productionID, roleID, talentUserID).First(&match).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) Update(db *gorm.DB, match *models.TheaterTalentMatch) error {
	result := db.Model(&models.TheaterTalentMatch{}).Where("id = ?", match.ID).Updates(map[string]interface{}{
		"status":       match.Status,
		"confirmed_by": match.ConfirmedBy,
		"rejected_by":  match.RejectedBy,
		"updated_at":   time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *matchRepository) FindByTalent(db *gorm.DB, talentUserID string) ([]models.TheaterTalentMatch, error) {
	var matches []models.TheaterTalentMatch
	err := db.Where("talent_user_id = ?", talentUserID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) FindByTheater(db *gorm.DB, theaterUserID string) ([]models.TheaterTalentMatch, error) {
	var matches []models.TheaterTalentMatch
	err := db.Where("theater_user_id = ?", theaterUserID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *matchRepository) FindByProduction(db *gorm.DB, productionID string) ([]models.TheaterTalentMatch, error) {
	var matches []models.TheaterTalentMatch
	err := db.Where("production_id = ?", productionID).
		Order("created_at DESC").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// TalentIDsByRoleAndStatus возвращает user_id талантов с матчем по роли
// в указанном статусе. Используется планировщиком для фильтра по статусу.
func (r *matchRepository) TalentIDsByRoleAndStatus(db *gorm.DB, productionID, roleID string, status bool) ([]string, error) {
	var ids []string
	err := db.Model(&models.TheaterTalentMatch{}).
		Where("production_id = ? AND role_id = ? AND status = ?", productionID, roleID, status).
		Pluck("talent_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

package repositories

import (
	"errors"
	"time"

	"stagematch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProductionNotFound = errors.New("production not found")

type ProductionRepository interface {
	Create(db *gorm.DB, production *models.Production) error
	FindByID(db *gorm.DB, id string) (*models.Production, error)
	Update(db *gorm.DB, production *models.Production) error
	UpdateStatus(db *gorm.DB, id string, status models.ProductionStatus) error
	FindByTheater(db *gorm.DB, theaterID string) ([]models.Production, error)
	FindByStatuses(db *gorm.DB, statuses []models.ProductionStatus, page, pageSize int) ([]models.Production, int64, error)
	FindAllByStatuses(db *gorm.DB, statuses []models.ProductionStatus) ([]models.Production, error)
	Delete(db *gorm.DB, id string) error
}

type productionRepository struct{}

func NewProductionRepository() ProductionRepository {
	return &productionRepository{}
}

func (r *productionRepository) Create(db *gorm.DB, production *models.Production) error {
	return db.Create(production).Error
}

func (r *productionRepository) FindByID(db *gorm.DB, id string) (*models.Production, error) {
	var production models.Production
	err := db.Where("id = ?", id).First(&production).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductionNotFound
		}
		return nil, err
	}
	return &production, nil
}

func (r *productionRepository) Update(db *gorm.DB, production *models.Production) error {
	result := db.Model(&models.Production{}).Where("id = ?", production.ID).Updates(map[string]interface{}{
		"title":       production.Title,
		"description": production.Description,
		"status":      production.Status,
		"roles":       production.Roles,
		"updated_at":  time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductionNotFound
	}
	return nil
}

func (r *productionRepository) UpdateStatus(db *gorm.DB, id string, status models.ProductionStatus) error {
	result := db.Model(&models.Production{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductionNotFound
	}
	return nil
}

func (r *productionRepository) FindByTheater(db *gorm.DB, theaterID string) ([]models.Production, error) {
	var productions []models.Production
	err := db.Where("theater_id = ?", theaterID).
		Order("created_at DESC").
		Find(&productions).Error
	if err != nil {
		return nil, err
	}
	return productions, nil
}

func (r *productionRepository) FindByStatuses(db *gorm.DB, statuses []models.ProductionStatus, page, pageSize int) ([]models.Production, int64, error) {
	query := db.Model(&models.Production{}).Where("status IN ?", statuses)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var productions []models.Production
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&productions).Error
	if err != nil {
		return nil, 0, err
	}

	return productions, total, nil
}

// FindAllByStatuses возвращает все постановки в указанных статусах без
// пагинации. Используется сканом подбора ролей для таланта.
func (r *productionRepository) FindAllByStatuses(db *gorm.DB, statuses []models.ProductionStatus) ([]models.Production, error) {
	var productions []models.Production
	err := db.Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&productions).Error
	if err != nil {
		return nil, err
	}
	return productions, nil
}

func (r *productionRepository) Delete(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Production{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductionNotFound
	}
	return nil
}

package repositories

import (
	"stagematch_backend/internal/models"

	"gorm.io/gorm"
)

type AuditRepository interface {
	Create(db *gorm.DB, entry *models.AuditLog) error
	FindByEntity(db *gorm.DB, entityType, entityID string) ([]models.AuditLog, error)
	FindRecent(db *gorm.DB, page, pageSize int) ([]models.AuditLog, int64, error)
}

type auditRepository struct{}

func NewAuditRepository() AuditRepository {
	return &auditRepository{}
}

func (r *auditRepository) Create(db *gorm.DB, entry *models.AuditLog) error {
	return db.Create(entry).Error
}

func (r *auditRepository) FindByEntity(db *gorm.DB, entityType, entityID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *auditRepository) FindRecent(db *gorm.DB, page, pageSize int) ([]models.AuditLog, int64, error) {
	query := db.Model(&models.AuditLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	var entries []models.AuditLog
	err := query.Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

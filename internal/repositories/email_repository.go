package repositories

import (
	"time"

	"stagematch_backend/internal/models"

	"gorm.io/gorm"
)

type EmailRepository interface {
	Enqueue(db *gorm.DB, email *models.EmailQueue) error
	FindPending(db *gorm.DB, limit int) ([]models.EmailQueue, error)
	MarkSent(db *gorm.DB, id string) error
	MarkFailed(db *gorm.DB, id string, attempts int, lastError string, terminal bool) error
}

type emailRepository struct{}

func NewEmailRepository() EmailRepository {
	return &emailRepository{}
}

func (r *emailRepository) Enqueue(db *gorm.DB, email *models.EmailQueue) error {
	return db.Create(email).Error
}

func (r *emailRepository) FindPending(db *gorm.DB, limit int) ([]models.EmailQueue, error) {
	if limit < 1 {
		limit = 20
	}
	var emails []models.EmailQueue
	err := db.Where("status = ?", models.EmailStatusQueued).
		Order("created_at ASC").
		Limit(limit).
		Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func (r *emailRepository) MarkSent(db *gorm.DB, id string) error {
	now := time.Now()
	return db.Model(&models.EmailQueue{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     models.EmailStatusSent,
		"sent_at":    &now,
		"updated_at": now,
	}).Error
}

// MarkFailed сохраняет ошибку попытки. При terminal письмо
// больше не попадет в выборку FindPending.
func (r *emailRepository) MarkFailed(db *gorm.DB, id string, attempts int, lastError string, terminal bool) error {
	status := models.EmailStatusQueued
	if terminal {
		status = models.EmailStatusFailed
	}
	return db.Model(&models.EmailQueue{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"attempts":   attempts,
		"last_error": lastError,
		"updated_at": time.Now(),
	}).Error
}

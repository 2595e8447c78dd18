package repositories

import (
	"errors"
	"time"

	"stagematch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrThreadNotFound = errors.New("thread not found")

type ThreadRepository interface {
	Create(db *gorm.DB, thread *models.MessageThread) error
	FindByID(db *gorm.DB, id string) (*models.MessageThread, error)
	FindByPair(db *gorm.DB, theaterUserID, talentUserID string) (*models.MessageThread, error)
	FindByUser(db *gorm.DB, userID string) ([]models.MessageThread, error)
	UpdateLastMessage(db *gorm.DB, threadID, lastMessage, senderID string) error
	AddMessage(db *gorm.DB, message *models.ThreadMessage) error
	FindMessages(db *gorm.DB, threadID string, page, pageSize int) ([]models.ThreadMessage, int64, error)
}

type threadRepository struct{}

func NewThreadRepository() ThreadRepository {
	return &threadRepository{}
}

func (r *threadRepository) Create(db *gorm.DB, thread *models.MessageThread) error {
	return db.Create(thread).Error
}

func (r *threadRepository) FindByID(db *gorm.DB, id string) (*models.MessageThread, error) {
	var thread models.MessageThread
	err := db.Where("id = ?", id).First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

// FindByPair ищет тред по паре участников. Пара уникальна,
// на ней держится переиспользование треда при повторных матчах.
func (r *threadRepository) FindByPair(db *gorm.DB, theaterUserID, talentUserID string) (*models.MessageThread, error) {
	var thread models.MessageThread
	err := db.Where("theater_user_id = ? AND talent_user_id = ?", theaterUserID, talentUserID).
		First(&thread).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThreadNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) FindByUser(db *gorm.DB, userID string) ([]models.MessageThread, error) {
	var threads []models.MessageThread
	err := db.Where("theater_user_id = ? OR talent_user_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, err
	}
	return threads, nil
}

func (r *threadRepository) UpdateLastMessage(db *gorm.DB, threadID, lastMessage, senderID string) error {
	result := db.Model(&models.MessageThread{}).Where("id = ?", threadID).Updates(map[string]interface{}{
		"last_message":   lastMessage,
		"last_sender_id": senderID,
		"updated_at":     time.Now(),
	})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrThreadNotFound
	}
	return nil
}

func (r *threadRepository) AddMessage(db *gorm.DB, message *models.ThreadMessage) error {
	return db.Create(message).Error
}

func (r *threadRepository) FindMessages(db *gorm.DB, threadID string, page, pageSize int) ([]models.ThreadMessage, int64, error) {
	query := db.Model(&models.ThreadMessage{}).Where("thread_id = ?", threadID)

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

	var messages []models.ThreadMessage
	err := query.Order("created_at ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

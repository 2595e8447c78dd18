package services

import (
	"encoding/json"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Типы уведомлений
const (
	NotificationTypeInterest       = "match_interest"
	NotificationTypeMatchConfirmed = "match_confirmed"
	NotificationTypeNewMessage     = "new_message"
	NotificationTypeAccountStatus  = "account_status"
)

type NotificationService interface {
	NotifyInterest(db *gorm.DB, recipientID, productionID, productionTitle, roleID, roleName string) error
	NotifyMatchConfirmed(db *gorm.DB, recipientID, productionID, productionTitle, roleID, roleName, threadID string) error
	NotifyNewMessage(db *gorm.DB, recipientID, threadID, senderName string) error
	NotifyAccountStatus(db *gorm.DB, recipientID string, status models.UserStatus) error

	List(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error)
	MarkRead(db *gorm.DB, userID, notificationID string) error
	MarkAllRead(db *gorm.DB, userID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) NotifyInterest(db *gorm.DB, recipientID, productionID, productionTitle, roleID, roleName string) error {
	return s.create(db, recipientID, NotificationTypeInterest,
		"New interest",
		"Someone expressed interest in the role "+roleName+" for "+productionTitle,
		map[string]string{
			"production_id": productionID,
			"role_id":       roleID,
		})
}

func (s *notificationService) NotifyMatchConfirmed(db *gorm.DB, recipientID, productionID, productionTitle, roleID, roleName, threadID string) error {
	return s.create(db, recipientID, NotificationTypeMatchConfirmed,
		"Match confirmed",
		"Your match for the role "+roleName+" in "+productionTitle+" is confirmed",
		map[string]string{
			"production_id": productionID,
			"role_id":       roleID,
			"thread_id":     threadID,
		})
}

func (s *notificationService) NotifyNewMessage(db *gorm.DB, recipientID, threadID, senderName string) error {
	return s.create(db, recipientID, NotificationTypeNewMessage,
		"New message",
		"New message from "+senderName,
		map[string]string{
			"thread_id": threadID,
		})
}

func (s *notificationService) NotifyAccountStatus(db *gorm.DB, recipientID string, status models.UserStatus) error {
	message := "Your account has been reactivated"
	if status == models.UserStatusSuspended {
		message = "Your account has been suspended"
	}
	return s.create(db, recipientID, NotificationTypeAccountStatus, "Account status", message, nil)
}

func (s *notificationService) create(db *gorm.DB, userID, notifType, title, message string, data map[string]string) error {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		notification.Data = datatypes.JSON(raw)
	}
	return s.notificationRepo.Create(db, notification)
}

func (s *notificationService) List(db *gorm.DB, userID string, page, pageSize int) (*dto.NotificationListResponse, error) {
	notifications, total, err := s.notificationRepo.FindByUser(db, userID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	unread, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, dto.NewNotificationResponse(&notifications[i]))
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.NotificationListResponse{
		Notifications: items,
		Total:         total,
		UnreadCount:   unread,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *notificationService) MarkRead(db *gorm.DB, userID, notificationID string) error {
	err := s.notificationRepo.MarkRead(db, userID, notificationID)
	if err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

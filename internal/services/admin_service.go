package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"stagematch_backend/internal/logger"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Действия журнала аудита
const (
	AuditActionSuspendUser     = "user.suspend"
	AuditActionReactivateUser  = "user.reactivate"
	AuditActionForceProduction = "production.force_status"
)

type AdminService interface {
	SuspendUser(db *gorm.DB, adminID, targetUserID, reason string) error
	ReactivateUser(db *gorm.DB, adminID, targetUserID, reason string) error
	ForceProductionStatus(db *gorm.DB, adminID, productionID string, req *dto.ForceProductionStatusRequest) error
	ListUsers(db *gorm.DB, req *dto.ListUsersRequest) (*dto.UserListResponse, error)
	GetAuditLog(db *gorm.DB, page, pageSize int) (*dto.AuditLogListResponse, error)
	GetEntityAuditLog(db *gorm.DB, entityType, entityID string) ([]dto.AuditLogResponse, error)
}

type adminService struct {
	userRepo        repositories.UserRepository
	productionRepo  repositories.ProductionRepository
	auditRepo       repositories.AuditRepository
	notificationSvc NotificationService
}

func NewAdminService(
	userRepo repositories.UserRepository,
	productionRepo repositories.ProductionRepository,
	auditRepo repositories.AuditRepository,
	notificationSvc NotificationService,
) AdminService {
	return &adminService{
		userRepo:        userRepo,
		productionRepo:  productionRepo,
		auditRepo:       auditRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *adminService) SuspendUser(db *gorm.DB, adminID, targetUserID, reason string) error {
	return s.setUserStatus(db, adminID, targetUserID, reason, models.UserStatusSuspended, AuditActionSuspendUser)
}

func (s *adminService) ReactivateUser(db *gorm.DB, adminID, targetUserID, reason string) error {
	return s.setUserStatus(db, adminID, targetUserID, reason, models.UserStatusActive, AuditActionReactivateUser)
}

// setUserStatus меняет статус аккаунта с обязательной записью в аудит.
// Администратора заблокировать нельзя.
func (s *adminService) setUserStatus(db *gorm.DB, adminID, targetUserID, reason string, status models.UserStatus, action string) error {
	target, err := s.userRepo.FindByID(db, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if target.Role == models.UserRoleAdmin {
		return apperrors.NewForbiddenError("Admin accounts cannot be suspended")
	}

	if target.Status == status {
		return apperrors.ErrInvalidStatus("admin", fmt.Sprintf("User is already %s", status))
	}

	if err := s.userRepo.UpdateStatus(db, targetUserID, status); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.writeAudit(db, adminID, action, "user", targetUserID, map[string]string{
		"reason":     reason,
		"new_status": string(status),
	}); err != nil {
		return apperrors.InternalError(err)
	}

	// Уведомление вторично, его сбой не откатывает модерацию
	if err := s.notificationSvc.NotifyAccountStatus(db, targetUserID, status); err != nil {
		logger.WithError(err).Warn("Не удалось уведомить пользователя о смене статуса", "user_id", targetUserID)
	}

	logger.Info("Статус пользователя изменен администратором",
		"admin_id", adminID, "user_id", targetUserID, "status", status)
	return nil
}

func (s *adminService) ForceProductionStatus(db *gorm.DB, adminID, productionID string, req *dto.ForceProductionStatusRequest) error {
	if !models.ValidProductionStatus(req.Status) {
		return apperrors.ErrInvalidStatus("production", fmt.Sprintf("Unknown production status: %s", req.Status))
	}

	production, err := s.productionRepo.FindByID(db, productionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductionNotFound) {
			return apperrors.ErrProductionNotFound
		}
		return apperrors.InternalError(err)
	}

	previous := production.Status
	if err := s.productionRepo.UpdateStatus(db, productionID, models.ProductionStatus(req.Status)); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.writeAudit(db, adminID, AuditActionForceProduction, "production", productionID, map[string]string{
		"reason":          req.Reason,
		"previous_status": string(previous),
		"new_status":      req.Status,
	}); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("Статус постановки изменен администратором",
		"admin_id", adminID, "production_id", productionID, "status", req.Status)
	return nil
}

func (s *adminService) ListUsers(db *gorm.DB, req *dto.ListUsersRequest) (*dto.UserListResponse, error) {
	criteria := repositories.UserCriteria{
		Role:     models.UserRole(req.Role),
		Status:   models.UserStatus(req.Status),
		Search:   req.Search,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	users, total, err := s.userRepo.FindAll(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.UserListResponse{
		Users:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *adminService) GetAuditLog(db *gorm.DB, page, pageSize int) (*dto.AuditLogListResponse, error) {
	entries, total, err := s.auditRepo.FindRecent(db, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewAuditLogResponse(&entries[i]))
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 50
	}

	return &dto.AuditLogListResponse{
		Entries:  items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *adminService) GetEntityAuditLog(db *gorm.DB, entityType, entityID string) ([]dto.AuditLogResponse, error) {
	entries, err := s.auditRepo.FindByEntity(db, entityType, entityID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.AuditLogResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewAuditLogResponse(&entries[i]))
	}
	return items, nil
}

func (s *adminService) writeAudit(db *gorm.DB, adminID, action, entityType, entityID string, detail map[string]string) error {
	entry := &models.AuditLog{
		AdminUserID: adminID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
	}
	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			return err
		}
		entry.Detail = datatypes.JSON(raw)
	}
	return s.auditRepo.Create(db, entry)
}

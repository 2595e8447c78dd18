package services

import (
	"fmt"

	"stagematch_backend/internal/config"
	"stagematch_backend/internal/email"
	"stagematch_backend/internal/imageprocessor"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/storage"
	"stagematch_backend/internal/ws"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService         AuthService
	ProfileService      ProfileService
	ProductionService   ProductionService
	MatchingService     MatchingService
	MatchService        MatchService
	ChatService         ChatService
	NotificationService NotificationService
	AdminService        AdminService
	EmailProvider       email.Provider
	Hub                 *ws.Hub
}

// NewServiceContainer собирает сервисы и их зависимости.
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	productionRepo := repositories.NewProductionRepository()
	matchRepo := repositories.NewMatchRepository()
	threadRepo := repositories.NewThreadRepository()
	notificationRepo := repositories.NewNotificationRepository()
	emailRepo := repositories.NewEmailRepository()
	auditRepo := repositories.NewAuditRepository()

	fileStore, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init file storage: %w", err)
	}
	images := imageprocessor.NewProcessor(cfg.Storage.JPEGQuality)

	hub := ws.NewHub()
	notificationSvc := NewNotificationService(notificationRepo)
	chatSvc := NewChatService(threadRepo, userRepo, notificationSvc, hub)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, profileRepo),
		ProfileService:      NewProfileService(profileRepo, userRepo, fileStore, images),
		ProductionService:   NewProductionService(productionRepo, userRepo),
		MatchingService:     NewMatchingService(profileRepo, productionRepo, matchRepo),
		MatchService:        NewMatchService(matchRepo, productionRepo, profileRepo, userRepo, emailRepo, chatSvc, notificationSvc),
		ChatService:         chatSvc,
		NotificationService: notificationSvc,
		AdminService:        NewAdminService(userRepo, productionRepo, auditRepo, notificationSvc),
		EmailProvider:       email.NewSMTPProvider(&cfg.Email),
		Hub:                 hub,
	}, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stagematch_backend/internal/config"
	"stagematch_backend/internal/handlers"
	"stagematch_backend/internal/logger"
	"stagematch_backend/internal/middleware"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/routes"
	"stagematch_backend/internal/services"
	"stagematch_backend/internal/storage"
	"stagematch_backend/internal/validator"
	"stagematch_backend/internal/workers"
	"stagematch_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, serviceContainer, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to build service container", "error", err)
	}

	// Фоновые воркеры живут до остановки процесса
	go serviceContainer.Hub.Run(context.Background())
	emailWorker := workers.NewEmailWorker(
		gormDB,
		repositories.NewEmailRepository(),
		serviceContainer.EmailProvider,
		time.Duration(cfg.Email.QueuePollSeconds)*time.Second,
		cfg.Email.MaxAttempts,
	)
	emailWorker.Start(context.Background())

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, *services.ServiceContainer, error) {
	serviceContainer, err := services.NewServiceContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)

	// Локальное хранилище отдаем прямо из процесса, в остальных
	// случаях файлы раздает CDN
	if cfg.Storage.Type == "" || cfg.Storage.Type == storage.TypeLocal {
		basePath := cfg.Storage.BasePath
		if basePath == "" {
			basePath = "./uploads"
		}
		ginRouter.Static("/uploads", basePath)
	}

	return ginRouter, serviceContainer, nil
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		ProfileHandler:      handlers.NewProfileHandler(baseHandler, services.ProfileService),
		ProductionHandler:   handlers.NewProductionHandler(baseHandler, services.ProductionService),
		MatchingHandler:     handlers.NewMatchingHandler(baseHandler, services.MatchingService),
		MatchHandler:        handlers.NewMatchHandler(baseHandler, services.MatchService),
		ChatHandler:         handlers.NewChatHandler(baseHandler, services.ChatService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
		AdminHandler:        handlers.NewAdminHandler(baseHandler, services.AdminService),
		WSHandler:           ws.NewHandler(services.Hub),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func migrate(db *gorm.DB) error {
	// uuid_generate_v4 в default-ах моделей
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.TalentProfile{},
		&models.TheaterProfile{},
		&models.Production{},
		&models.TheaterTalentMatch{},
		&models.MessageThread{},
		&models.ThreadMessage{},
		&models.Notification{},
		&models.EmailQueue{},
		&models.AuditLog{},
	)
}

// seedFirstAdmin создает первого администратора из конфигурации.
// Повторный запуск ничего не меняет.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.FirstAdminEmail
	adminPassword := cfg.Admin.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("First admin credentials are not configured. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("Successfully created first admin user", "email", adminEmail)
	return tx.Commit().Error
}

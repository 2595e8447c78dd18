package services

import (
	"errors"

	"stagematch_backend/internal/auth"
	"stagematch_backend/internal/logger"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewAuthService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

// Register создает аккаунт и пустую анкету соответствующего типа
func (s *authService) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if req.Role != models.UserRoleTalent && req.Role != models.UserRoleTheater {
		return nil, apperrors.ErrInvalidAccountRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Анкета создается сразу, непубличной, до заполнения владельцем
	switch req.Role {
	case models.UserRoleTalent:
		profile := &models.TalentProfile{
			UserID:   user.ID,
			Name:     req.Name,
			IsPublic: false,
		}
		if err := s.profileRepo.CreateTalentProfile(db, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	case models.UserRoleTheater:
		profile := &models.TheaterProfile{
			UserID:      user.ID,
			CompanyName: req.CompanyName,
		}
		if err := s.profileRepo.CreateTheaterProfile(db, profile); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	logger.Info("Пользователь зарегистрирован", "user_id", user.ID, "role", user.Role)

	return s.buildAuthResponse(user)
}

func (s *authService) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.NewForbiddenError("Account is suspended")
	}

	return s.buildAuthResponse(user)
}

func (s *authService) GetMe(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        dto.NewUserResponse(user),
	}, nil
}

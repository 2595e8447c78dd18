package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"stagematch_backend/internal/imageprocessor"
	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/internal/storage"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// Лимит размера загружаемого хедшота
const maxPhotoSizeBytes = 10 << 20

type ProfileService interface {
	// Talent
	UpsertTalentProfile(db *gorm.DB, userID string, req *dto.UpsertTalentProfileRequest) (*dto.TalentProfileResponse, error)
	GetTalentProfile(db *gorm.DB, viewerID, targetUserID string) (*dto.TalentProfileResponse, error)
	SearchTalentProfiles(db *gorm.DB, criteria repositories.TalentSearchCriteria) (*dto.TalentProfileListResponse, error)
	UploadTalentPhoto(ctx context.Context, db *gorm.DB, userID string, file io.Reader) (*dto.TalentProfileResponse, error)

	// Theater
	UpsertTheaterProfile(db *gorm.DB, userID string, req *dto.UpsertTheaterProfileRequest) (*dto.TheaterProfileResponse, error)
	GetTheaterProfile(db *gorm.DB, targetUserID string) (*dto.TheaterProfileResponse, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	fileStore   storage.Storage
	images      *imageprocessor.Processor
}

func NewProfileService(
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	fileStore storage.Storage,
	images *imageprocessor.Processor,
) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		fileStore:   fileStore,
		images:      images,
	}
}

// UpsertTalentProfile создает или обновляет анкету таланта
func (s *profileService) UpsertTalentProfile(db *gorm.DB, userID string, req *dto.UpsertTalentProfileRequest) (*dto.TalentProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.ErrProfileNotFound
	}
	if user.Role != models.UserRoleTalent {
		return nil, apperrors.ErrInvalidAccountRole
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	profile := &models.TalentProfile{
		UserID:         userID,
		Name:           req.Name,
		ContactEmail:   req.ContactEmail,
		StageRole:      req.StageRole,
		Ethnicities:    req.Ethnicities,
		AgeRanges:      req.AgeRanges,
		GenderIdentity: req.GenderIdentity,
		GenderRoles:    req.GenderRoles,
		LGBTQIA:        req.LGBTQIA,
		Skills:         req.Skills,
		UnionStatuses:  req.UnionStatuses,
		Bio:            req.Bio,
		City:           req.City,
		Website:        req.Website,
		IsPublic:       isPublic,
	}

	err = s.profileRepo.UpdateTalentProfile(db, profile)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		err = s.profileRepo.CreateTalentProfile(db, profile)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	saved, err := s.profileRepo.FindTalentProfileByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewTalentProfileResponse(saved)
	return &resp, nil
}

// GetTalentProfile возвращает анкету. Непубличная анкета видна только владельцу.
// Просмотр чужой публичной анкеты увеличивает счетчик просмотров.
func (s *profileService) GetTalentProfile(db *gorm.DB, viewerID, targetUserID string) (*dto.TalentProfileResponse, error) {
	profile, err := s.profileRepo.FindTalentProfileByUserID(db, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if !profile.IsPublic && viewerID != targetUserID {
		return nil, apperrors.ErrProfileNotFound
	}

	if viewerID != targetUserID {
		// Ошибка счетчика не должна ломать просмотр
		_ = s.profileRepo.IncrementTalentProfileViews(db, targetUserID)
	}

	resp := dto.NewTalentProfileResponse(profile)
	return &resp, nil
}

func (s *profileService) SearchTalentProfiles(db *gorm.DB, criteria repositories.TalentSearchCriteria) (*dto.TalentProfileListResponse, error) {
	profiles, total, err := s.profileRepo.SearchTalentProfiles(db, criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.TalentProfileResponse, 0, len(profiles))
	for i := range profiles {
		items = append(items, dto.NewTalentProfileResponse(&profiles[i]))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.TalentProfileListResponse{
		Profiles: items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// UploadTalentPhoto принимает хедшот, готовит рендеры display и
// thumbnail и прописывает их URL в анкету. Старые файлы перезаписываются,
// пути рендеров стабильны для userID.
func (s *profileService) UploadTalentPhoto(ctx context.Context, db *gorm.DB, userID string, file io.Reader) (*dto.TalentProfileResponse, error) {
	if _, err := s.profileRepo.FindTalentProfileByUserID(db, userID); err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	// Два рендера из одного источника, поэтому читаем файл целиком
	raw, err := io.ReadAll(io.LimitReader(file, maxPhotoSizeBytes+1))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(raw) > maxPhotoSizeBytes {
		return nil, apperrors.ErrInvalidOperation("profile", "Photo exceeds the 10 MB limit")
	}

	var photoURL, thumbURL string
	for _, size := range []imageprocessor.ImageSize{imageprocessor.SizeDisplay, imageprocessor.SizeThumbnail} {
		rendered, contentType, err := s.images.Process(bytes.NewReader(raw), size)
		if err != nil {
			return nil, apperrors.ErrInvalidOperation("profile", "Photo must be a JPEG or PNG image")
		}

		path := photoPath(userID, size, contentType)
		if err := s.fileStore.Save(ctx, path, rendered, contentType); err != nil {
			return nil, apperrors.InternalError(err)
		}

		if size.Name == imageprocessor.SizeThumbnail.Name {
			thumbURL = s.fileStore.GetURL(path)
		} else {
			photoURL = s.fileStore.GetURL(path)
		}
	}

	if err := s.profileRepo.UpdateTalentProfilePhoto(db, userID, photoURL, thumbURL); err != nil {
		return nil, apperrors.InternalError(err)
	}

	saved, err := s.profileRepo.FindTalentProfileByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewTalentProfileResponse(saved)
	return &resp, nil
}

func photoPath(userID string, size imageprocessor.ImageSize, contentType string) string {
	ext := "jpg"
	if contentType == "image/png" {
		ext = "png"
	}
	return fmt.Sprintf("headshots/%s/%s.%s", userID, size.Name, ext)
}

// UpsertTheaterProfile создает или обновляет анкету театра
func (s *profileService) UpsertTheaterProfile(db *gorm.DB, userID string, req *dto.UpsertTheaterProfileRequest) (*dto.TheaterProfileResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.ErrProfileNotFound
	}
	if user.Role != models.UserRoleTheater {
		return nil, apperrors.ErrInvalidAccountRole
	}

	profile := &models.TheaterProfile{
		UserID:       userID,
		CompanyName:  req.CompanyName,
		ContactEmail: req.ContactEmail,
		City:         req.City,
		Description:  req.Description,
		Website:      req.Website,
	}

	err = s.profileRepo.UpdateTheaterProfile(db, profile)
	if errors.Is(err, repositories.ErrProfileNotFound) {
		err = s.profileRepo.CreateTheaterProfile(db, profile)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	saved, err := s.profileRepo.FindTheaterProfileByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewTheaterProfileResponse(saved)
	return &resp, nil
}

func (s *profileService) GetTheaterProfile(db *gorm.DB, targetUserID string) (*dto.TheaterProfileResponse, error) {
	profile, err := s.profileRepo.FindTheaterProfileByUserID(db, targetUserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.ErrProfileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewTheaterProfileResponse(profile)
	return &resp, nil
}

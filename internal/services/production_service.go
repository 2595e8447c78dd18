package services

import (
	"errors"
	"fmt"

	"stagematch_backend/internal/models"
	"stagematch_backend/internal/repositories"
	"stagematch_backend/internal/services/dto"
	"stagematch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProductionService interface {
	Create(db *gorm.DB, theaterUserID string, req *dto.CreateProductionRequest) (*dto.ProductionResponse, error)
	Update(db *gorm.DB, theaterUserID, productionID string, req *dto.UpdateProductionRequest) (*dto.ProductionResponse, error)
	UpdateStatus(db *gorm.DB, theaterUserID, productionID string, status string) (*dto.ProductionResponse, error)
	Get(db *gorm.DB, productionID string) (*dto.ProductionResponse, error)
	ListByTheater(db *gorm.DB, theaterUserID string) ([]dto.ProductionResponse, error)
	ListActive(db *gorm.DB, page, pageSize int) (*dto.ProductionListResponse, error)
	Delete(db *gorm.DB, theaterUserID, productionID string) error
}

type productionService struct {
	productionRepo repositories.ProductionRepository
	userRepo       repositories.UserRepository
}

func NewProductionService(productionRepo repositories.ProductionRepository, userRepo repositories.UserRepository) ProductionService {
	return &productionService{
		productionRepo: productionRepo,
		userRepo:       userRepo,
	}
}

func (s *productionService) Create(db *gorm.DB, theaterUserID string, req *dto.CreateProductionRequest) (*dto.ProductionResponse, error) {
	user, err := s.userRepo.FindByID(db, theaterUserID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if user.Role != models.UserRoleTheater {
		return nil, apperrors.ErrInvalidAccountRole
	}

	roles, err := rolesFromRequest(req.Roles)
	if err != nil {
		return nil, err
	}

	production := &models.Production{
		TheaterID:   theaterUserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.ProductionStatus(req.Status),
	}
	if err := production.SetRoles(roles); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.productionRepo.Create(db, production); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

// Update перезаписывает постановку целиком, включая весь список ролей
func (s *productionService) Update(db *gorm.DB, theaterUserID, productionID string, req *dto.UpdateProductionRequest) (*dto.ProductionResponse, error) {
	production, err := s.findOwned(db, theaterUserID, productionID)
	if err != nil {
		return nil, err
	}

	roles, err := rolesFromRequest(req.Roles)
	if err != nil {
		return nil, err
	}

	production.Title = req.Title
	production.Description = req.Description
	production.Status = models.ProductionStatus(req.Status)
	if err := production.SetRoles(roles); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := s.productionRepo.Update(db, production); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

func (s *productionService) UpdateStatus(db *gorm.DB, theaterUserID, productionID string, status string) (*dto.ProductionResponse, error) {
	if !models.ValidProductionStatus(status) {
		return nil, apperrors.ErrInvalidStatus("production", fmt.Sprintf("Unknown production status: %s", status))
	}

	production, err := s.findOwned(db, theaterUserID, productionID)
	if err != nil {
		return nil, err
	}

	if err := s.productionRepo.UpdateStatus(db, productionID, models.ProductionStatus(status)); err != nil {
		return nil, apperrors.InternalError(err)
	}

	production.Status = models.ProductionStatus(status)
	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

func (s *productionService) Get(db *gorm.DB, productionID string) (*dto.ProductionResponse, error) {
	production, err := s.productionRepo.FindByID(db, productionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductionNotFound) {
			return nil, apperrors.ErrProductionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewProductionResponse(production)
	return &resp, nil
}

func (s *productionService) ListByTheater(db *gorm.DB, theaterUserID string) ([]dto.ProductionResponse, error) {
	productions, err := s.productionRepo.FindByTheater(db, theaterUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProductionResponse, 0, len(productions))
	for i := range productions {
		items = append(items, dto.NewProductionResponse(&productions[i]))
	}
	return items, nil
}

// ListActive возвращает постановки в статусах, открытых для матчинга
func (s *productionService) ListActive(db *gorm.DB, page, pageSize int) (*dto.ProductionListResponse, error) {
	productions, total, err := s.productionRepo.FindByStatuses(db, models.ActiveProductionStatuses, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProductionResponse, 0, len(productions))
	for i := range productions {
		items = append(items, dto.NewProductionResponse(&productions[i]))
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.ProductionListResponse{
		Productions: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *productionService) Delete(db *gorm.DB, theaterUserID, productionID string) error {
	if _, err := s.findOwned(db, theaterUserID, productionID); err != nil {
		return err
	}
	if err := s.productionRepo.Delete(db, productionID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// findOwned загружает постановку и проверяет владение
func (s *productionService) findOwned(db *gorm.DB, theaterUserID, productionID string) (*models.Production, error) {
	production, err := s.productionRepo.FindByID(db, productionID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductionNotFound) {
			return nil, apperrors.ErrProductionNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if production.TheaterID != theaterUserID {
		return nil, apperrors.ErrNotProductionOwner
	}
	return production, nil
}

// rolesFromRequest валидирует роли и проверяет уникальность role_id
func rolesFromRequest(reqs []dto.RoleRequest) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(reqs))
	seen := make(map[string]bool, len(reqs))
	for _, r := range reqs {
		if seen[r.RoleID] {
			return nil, apperrors.ErrInvalidOperation("production", fmt.Sprintf("Duplicate role_id: %s", r.RoleID))
		}
		seen[r.RoleID] = true
		roles = append(roles, r.ToModel())
	}
	return roles, nil
}

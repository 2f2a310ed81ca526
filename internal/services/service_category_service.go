package services

import (
	"context"

	"ca-backend/internal/models"
	"ca-backend/internal/repositories"
)

type ServiceCategoryService struct {
	Repo    *repositories.ServiceCategoryRepository
	SOPRepo *repositories.SOPRepository
}

func NewServiceCategoryService(repo *repositories.ServiceCategoryRepository, sopRepo *repositories.SOPRepository) *ServiceCategoryService {
	return &ServiceCategoryService{Repo: repo, SOPRepo: sopRepo}
}

func (s *ServiceCategoryService) CreateCategory(ctx context.Context, req *models.CreateServiceCategoryRequest) (*models.ServiceCategory, error) {
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "name is required"
	}
	if req.SOPID <= 0 {
		fields["sop_id"] = "sop_id is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.SOPRepo.Get(ctx, req.SOPID); err != nil {
		return nil, NewValidationError("sop_id", "unknown SOP")
	}

	status := models.StatusActive
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}

	category := &models.ServiceCategory{
		SOPID:  req.SOPID,
		Name:   req.Name,
		Status: status,
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *ServiceCategoryService) GetCategory(ctx context.Context, id int) (*models.ServiceCategory, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ServiceCategoryService) ListCategories(ctx context.Context, status string, limit, offset int) ([]*models.ServiceCategory, int, error) {
	if status != "" {
		normalized, ok := models.NormalizeStatus(status)
		if !ok {
			return nil, 0, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}
	return s.Repo.List(ctx, status, limit, offset)
}

func (s *ServiceCategoryService) UpdateCategory(ctx context.Context, id int, req *models.UpdateServiceCategoryRequest) (*models.ServiceCategory, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}

	sopID := existing.SOPID
	if req.SOPID > 0 && req.SOPID != sopID {
		if _, err := s.SOPRepo.Get(ctx, req.SOPID); err != nil {
			return nil, NewValidationError("sop_id", "unknown SOP")
		}
		sopID = req.SOPID
	}

	status := existing.Status
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}

	category := &models.ServiceCategory{
		ID:     id,
		SOPID:  sopID,
		Name:   req.Name,
		Status: status,
	}
	if err := s.Repo.Update(ctx, category); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *ServiceCategoryService) DeleteCategory(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

package services

import (
	"context"

	"ca-backend/internal/auth"
	"ca-backend/internal/models"
	"ca-backend/internal/repositories"
)

type ServiceAgentService struct {
	Repo         *repositories.ServiceAgentRepository
	CategoryRepo *repositories.ServiceCategoryRepository
}

func NewServiceAgentService(repo *repositories.ServiceAgentRepository, categoryRepo *repositories.ServiceCategoryRepository) *ServiceAgentService {
	return &ServiceAgentService{Repo: repo, CategoryRepo: categoryRepo}
}

func validateAgentFields(firstName, email, phone string) map[string]string {
	fields := map[string]string{}
	if firstName == "" {
		fields["first_name"] = "first name is required"
	}
	if email == "" {
		fields["email"] = "email is required"
	} else if !emailPattern.MatchString(email) {
		fields["email"] = "invalid email address"
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		fields["phone"] = "phone must be exactly 10 digits"
	}
	return fields
}

// verifyCategories checks every expert_at id against the category table.
func (s *ServiceAgentService) verifyCategories(ctx context.Context, ids models.CategoryIDList) error {
	for _, id := range ids {
		if _, err := s.CategoryRepo.Get(ctx, id); err != nil {
			return NewValidationError("expert_at", "unknown service category")
		}
	}
	return nil
}

func (s *ServiceAgentService) CreateAgent(ctx context.Context, req *models.CreateServiceAgentRequest) (*models.ServiceAgent, error) {
	fields := validateAgentFields(req.FirstName, req.Email, req.Phone)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if err := s.verifyCategories(ctx, req.ExpertAt); err != nil {
		return nil, err
	}

	status := models.StatusActive
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}

	agent := &models.ServiceAgent{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		ExpertAt:          req.ExpertAt,
		Status:            status,
		AllowPortalAccess: req.AllowPortalAccess,
	}
	if agent.ExpertAt == nil {
		agent.ExpertAt = models.CategoryIDList{}
	}

	if req.AllowPortalAccess {
		if req.Password == "" {
			return nil, NewValidationError("password", "password is required when portal access is enabled")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		agent.PasswordHash = hash
	}

	if err := s.Repo.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *ServiceAgentService) GetAgent(ctx context.Context, id int) (*models.ServiceAgent, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ServiceAgentService) ListAgents(ctx context.Context, status string, limit, offset int) ([]*models.ServiceAgent, int, error) {
	if status != "" {
		normalized, ok := models.NormalizeStatus(status)
		if !ok {
			return nil, 0, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}
	return s.Repo.List(ctx, status, limit, offset)
}

func (s *ServiceAgentService) UpdateAgent(ctx context.Context, id int, req *models.UpdateServiceAgentRequest) (*models.ServiceAgent, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := validateAgentFields(req.FirstName, req.Email, req.Phone)
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	if err := s.verifyCategories(ctx, req.ExpertAt); err != nil {
		return nil, err
	}

	status := existing.Status
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}

	agent := &models.ServiceAgent{
		ID:                id,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		ExpertAt:          req.ExpertAt,
		Status:            status,
		AllowPortalAccess: req.AllowPortalAccess,
		PasswordHash:      existing.PasswordHash,
	}
	if agent.ExpertAt == nil {
		agent.ExpertAt = models.CategoryIDList{}
	}

	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		agent.PasswordHash = hash
	}

	if err := s.Repo.Update(ctx, agent); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *ServiceAgentService) DeleteAgent(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

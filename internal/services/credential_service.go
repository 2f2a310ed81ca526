package services

import (
	"context"

	"ca-backend/internal/models"
	"ca-backend/internal/repositories"
)

type CredentialService struct {
	Repo     *repositories.CredentialRepository
	TypeRepo *repositories.CredentialTypeRepository
}

func NewCredentialService(repo *repositories.CredentialRepository, typeRepo *repositories.CredentialTypeRepository) *CredentialService {
	return &CredentialService{Repo: repo, TypeRepo: typeRepo}
}

func (s *CredentialService) CreateCredential(ctx context.Context, req *models.CreateCredentialRequest) (*models.Credential, error) {
	fields := map[string]string{}
	if req.CustomerID <= 0 {
		fields["customer_id"] = "customer_id is required"
	}
	if req.CredentialTypeID <= 0 {
		fields["credential_type_id"] = "credential_type_id is required"
	}
	if req.Username == "" {
		fields["username"] = "username is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.TypeRepo.Get(ctx, req.CredentialTypeID); err != nil {
		return nil, NewValidationError("credential_type_id", "unknown credential type")
	}

	cred := &models.Credential{
		CustomerID:       req.CustomerID,
		CredentialTypeID: req.CredentialTypeID,
		Username:         req.Username,
		Password:         req.Password,
		OTPEmail:         req.OTPEmail,
		OTPPhone:         req.OTPPhone,
		Notes:            req.Notes,
	}
	if err := s.Repo.Create(ctx, cred); err != nil {
		return nil, err
	}
	return cred, nil
}

func (s *CredentialService) GetCredential(ctx context.Context, id int) (*models.Credential, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CredentialService) ListCredentials(ctx context.Context, customerID, typeID, limit, offset int) ([]*models.Credential, int, error) {
	return s.Repo.List(ctx, customerID, typeID, limit, offset)
}

func (s *CredentialService) ListByCustomer(ctx context.Context, customerID int) ([]*models.Credential, error) {
	return s.Repo.ListByCustomer(ctx, customerID)
}

func (s *CredentialService) UpdateCredential(ctx context.Context, id int, req *models.UpdateCredentialRequest) (*models.Credential, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Username == "" {
		return nil, NewValidationError("username", "username is required")
	}

	existing.CredentialTypeID = req.CredentialTypeID
	existing.Username = req.Username
	existing.Password = req.Password
	existing.OTPEmail = req.OTPEmail
	existing.OTPPhone = req.OTPPhone
	existing.Notes = req.Notes
	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CredentialService) DeleteCredential(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *CredentialService) CreateCredentialType(ctx context.Context, req *models.CreateCredentialTypeRequest) (*models.CredentialType, error) {
	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	t := &models.CredentialType{Name: req.Name, Description: req.Description}
	if err := s.TypeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *CredentialService) ListCredentialTypes(ctx context.Context) ([]*models.CredentialType, error) {
	return s.TypeRepo.List(ctx)
}

func (s *CredentialService) UpdateCredentialType(ctx context.Context, id int, req *models.CreateCredentialTypeRequest) (*models.CredentialType, error) {
	if req.Name == "" {
		return nil, NewValidationError("name", "name is required")
	}
	t := &models.CredentialType{ID: id, Name: req.Name, Description: req.Description}
	if err := s.TypeRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.TypeRepo.Get(ctx, id)
}

func (s *CredentialService) DeleteCredentialType(ctx context.Context, id int) error {
	return s.TypeRepo.Delete(ctx, id)
}

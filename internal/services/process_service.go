package services

import (
	"context"
	"fmt"
	"log"

	"ca-backend/internal/metrics"
	"ca-backend/internal/models"
)

// ProcessStore is the repository surface for processes themselves.
type ProcessStore interface {
	Create(ctx context.Context, p *models.Process) error
	Get(ctx context.Context, id int) (*models.Process, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.Process, int, error)
	Update(ctx context.Context, p *models.Process) error
	Delete(ctx context.Context, id int) error
}

// CascadeSOPStore is the slice of the SOP repository the cascade needs.
type CascadeSOPStore interface {
	ListByProcess(ctx context.Context, processID int) ([]*models.SOP, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

// CascadeCategoryStore is the slice of the service category repository the
// cascade needs.
type CascadeCategoryStore interface {
	ListBySOPIDs(ctx context.Context, sopIDs []int) ([]*models.ServiceCategory, error)
	UpdateStatus(ctx context.Context, id int, status string) error
}

type ProcessService struct {
	Repo         ProcessStore
	SOPRepo      CascadeSOPStore
	CategoryRepo CascadeCategoryStore
}

func NewProcessService(repo ProcessStore, sopRepo CascadeSOPStore, categoryRepo CascadeCategoryStore) *ProcessService {
	return &ProcessService{Repo: repo, SOPRepo: sopRepo, CategoryRepo: categoryRepo}
}

func validateProcess(p *models.Process) error {
	fields := map[string]string{}
	if p.Name == "" {
		fields["name"] = "name is required"
	}
	validAudience := false
	for _, a := range models.ProcessAudiences {
		if p.Audience == a {
			validAudience = true
			break
		}
	}
	if !validAudience {
		fields["audience"] = fmt.Sprintf("audience must be one of %v", models.ProcessAudiences)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *ProcessService) CreateProcess(ctx context.Context, req *models.CreateProcessRequest) (*models.Process, error) {
	status := models.StatusActive
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}

	process := &models.Process{
		Name:     req.Name,
		Audience: req.Audience,
		Status:   status,
	}
	if err := validateProcess(process); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, process); err != nil {
		return nil, err
	}
	return process, nil
}

func (s *ProcessService) GetProcess(ctx context.Context, id int) (*models.Process, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ProcessService) ListProcesses(ctx context.Context, status string, limit, offset int) ([]*models.Process, int, error) {
	if status != "" {
		normalized, ok := models.NormalizeStatus(status)
		if !ok {
			return nil, 0, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}
	return s.Repo.List(ctx, status, limit, offset)
}

// UpdateProcess updates the process row and, on a status change, sweeps the
// dependent SOPs and service categories to the same status. Deactivation
// always cascades; reactivation cascades only when the request opts in, so a
// process can be brought back without reviving everything under it.
func (s *ProcessService) UpdateProcess(ctx context.Context, id int, req *models.UpdateProcessRequest) (*models.Process, *models.CascadeResult, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	status, ok := models.NormalizeStatus(req.Status)
	if !ok {
		return nil, nil, NewValidationError("status", "status must be Active or Inactive")
	}

	process := &models.Process{
		ID:       id,
		Name:     req.Name,
		Audience: req.Audience,
		Status:   status,
	}
	if err := validateProcess(process); err != nil {
		return nil, nil, err
	}

	if err := s.Repo.Update(ctx, process); err != nil {
		return nil, nil, err
	}

	result := &models.CascadeResult{Failed: []models.CascadeFailure{}}
	statusChanged := existing.Status != status
	shouldCascade := statusChanged && (status == models.StatusInactive || req.Cascade)
	if shouldCascade {
		s.cascadeStatus(ctx, id, status, result)
	}

	updated, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, result, nil
}

// cascadeStatus is best effort. The process update has already committed, so
// a failed dependent is recorded and skipped rather than aborting the sweep.
func (s *ProcessService) cascadeStatus(ctx context.Context, processID int, status string, result *models.CascadeResult) {
	sops, err := s.SOPRepo.ListByProcess(ctx, processID)
	if err != nil {
		log.Printf("[Process] Cascade aborted for process %d: failed to list SOPs: %v", processID, err)
		result.Failed = append(result.Failed, models.CascadeFailure{
			Kind: "sop", ID: 0, Error: fmt.Sprintf("failed to list SOPs: %v", err),
		})
		return
	}

	sopIDs := make([]int, 0, len(sops))
	for _, sop := range sops {
		sopIDs = append(sopIDs, sop.ID)
		if sop.Status == status {
			continue
		}
		if err := s.SOPRepo.UpdateStatus(ctx, sop.ID, status); err != nil {
			metrics.CascadeUpdatesTotal.WithLabelValues("sop", "error").Inc()
			result.Failed = append(result.Failed, models.CascadeFailure{
				Kind: "sop", ID: sop.ID, Error: err.Error(),
			})
			continue
		}
		metrics.CascadeUpdatesTotal.WithLabelValues("sop", "success").Inc()
		result.SOPsUpdated++
	}

	if len(sopIDs) == 0 {
		return
	}

	categories, err := s.CategoryRepo.ListBySOPIDs(ctx, sopIDs)
	if err != nil {
		log.Printf("[Process] Cascade for process %d: failed to list categories: %v", processID, err)
		result.Failed = append(result.Failed, models.CascadeFailure{
			Kind: "service_category", ID: 0, Error: fmt.Sprintf("failed to list service categories: %v", err),
		})
		return
	}

	for _, cat := range categories {
		if cat.Status == status {
			continue
		}
		if err := s.CategoryRepo.UpdateStatus(ctx, cat.ID, status); err != nil {
			metrics.CascadeUpdatesTotal.WithLabelValues("service_category", "error").Inc()
			result.Failed = append(result.Failed, models.CascadeFailure{
				Kind: "service_category", ID: cat.ID, Error: err.Error(),
			})
			continue
		}
		metrics.CascadeUpdatesTotal.WithLabelValues("service_category", "success").Inc()
		result.CategoriesUpdated++
	}
}

func (s *ProcessService) DeleteProcess(ctx context.Context, id int) error {
	sops, err := s.SOPRepo.ListByProcess(ctx, id)
	if err != nil {
		return err
	}
	if len(sops) > 0 {
		return NewValidationError("process", fmt.Sprintf("process has %d dependent SOPs and cannot be deleted", len(sops)))
	}
	return s.Repo.Delete(ctx, id)
}

package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"ca-backend/internal/models"
	"ca-backend/internal/storage"
)

const minutesPerDay = 8 * 60 // one working day

// SOPStore is the repository surface for SOPs.
type SOPStore interface {
	Create(ctx context.Context, s *models.SOP) error
	Get(ctx context.Context, id int) (*models.SOP, error)
	NameVersionExists(ctx context.Context, name string, version, excludeID int) (bool, error)
	List(ctx context.Context, f models.SOPFilter, limit, offset int) ([]*models.SOP, int, error)
	Update(ctx context.Context, s *models.SOP) error
	Delete(ctx context.Context, id int) error
}

// SOPStepStore is the repository surface for SOP steps.
type SOPStepStore interface {
	Create(ctx context.Context, s *models.SOPStep) error
	Get(ctx context.Context, id int) (*models.SOPStep, error)
	ListBySOP(ctx context.Context, sopID int) ([]*models.SOPStep, error)
	Update(ctx context.Context, s *models.SOPStep) error
	Reorder(ctx context.Context, sopID int, order []models.StepOrder) error
	Delete(ctx context.Context, id int) error
}

type SOPService struct {
	Repo     SOPStore
	StepRepo SOPStepStore
	Files    storage.FileStore
}

func NewSOPService(repo SOPStore, stepRepo SOPStepStore, files storage.FileStore) *SOPService {
	return &SOPService{Repo: repo, StepRepo: stepRepo, Files: files}
}

func (s *SOPService) validateSOP(ctx context.Context, sop *models.SOP, excludeID int) error {
	fields := map[string]string{}
	if sop.Name == "" {
		fields["name"] = "name is required"
	}
	if sop.ProcessID <= 0 {
		fields["process_id"] = "process_id is required"
	}
	if sop.Version <= 0 {
		fields["version"] = "version must be a positive integer"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	exists, err := s.Repo.NameVersionExists(ctx, sop.Name, sop.Version, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return NewValidationError("version", fmt.Sprintf("SOP %q version %d already exists", sop.Name, sop.Version))
	}
	return nil
}

func (s *SOPService) CreateSOP(ctx context.Context, req *models.CreateSOPRequest) (*models.SOP, error) {
	status := models.StatusActive
	if req.Status != "" {
		normalized, ok := models.NormalizeStatus(req.Status)
		if !ok {
			return nil, NewValidationError("status", "status must be Active or Inactive")
		}
		status = normalized
	}
	version := req.Version
	if version == 0 {
		version = 1
	}

	sop := &models.SOP{
		ProcessID: req.ProcessID,
		Name:      req.Name,
		Version:   version,
		Status:    status,
	}
	if err := s.validateSOP(ctx, sop, 0); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, sop); err != nil {
		return nil, err
	}
	return sop, nil
}

func (s *SOPService) GetSOP(ctx context.Context, id int) (*models.SOP, error) {
	return s.Repo.Get(ctx, id)
}

func (s *SOPService) ListSOPs(ctx context.Context, f models.SOPFilter, limit, offset int) ([]*models.SOP, int, error) {
	if f.Status != "" {
		normalized, ok := models.NormalizeStatus(f.Status)
		if !ok {
			return nil, 0, NewValidationError("status", "status must be Active or Inactive")
		}
		f.Status = normalized
	}
	return s.Repo.List(ctx, f, limit, offset)
}

func (s *SOPService) UpdateSOP(ctx context.Context, id int, req *models.UpdateSOPRequest) (*models.SOP, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	status, ok := models.NormalizeStatus(req.Status)
	if !ok {
		return nil, NewValidationError("status", "status must be Active or Inactive")
	}

	sop := &models.SOP{
		ID:        id,
		ProcessID: existing.ProcessID,
		Name:      req.Name,
		Version:   req.Version,
		Status:    status,
	}
	if err := s.validateSOP(ctx, sop, id); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, sop); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

func (s *SOPService) DeleteSOP(ctx context.Context, id int) error {
	steps, err := s.StepRepo.ListBySOP(ctx, id)
	if err != nil {
		return err
	}
	if len(steps) > 0 {
		return NewValidationError("sop", fmt.Sprintf("SOP has %d steps and cannot be deleted", len(steps)))
	}
	return s.Repo.Delete(ctx, id)
}

// durationToMinutes converts the request duration into the stored unit.
func durationToMinutes(duration int, unit string) (int, error) {
	switch unit {
	case "", models.DurationUnitMinutes:
		return duration, nil
	case models.DurationUnitDays:
		return duration * minutesPerDay, nil
	default:
		return 0, NewValidationError("duration_unit", "duration_unit must be minutes or days")
	}
}

func validateStep(title string, duration int) error {
	fields := map[string]string{}
	if title == "" {
		fields["title"] = "title is required"
	}
	if duration < 0 {
		fields["duration"] = "duration cannot be negative"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// CreateStep appends a step at the end of the SOP's sequence.
func (s *SOPService) CreateStep(ctx context.Context, sopID int, req *models.CreateSOPStepRequest) (*models.SOPStep, error) {
	if _, err := s.Repo.Get(ctx, sopID); err != nil {
		return nil, err
	}
	if err := validateStep(req.Title, req.Duration); err != nil {
		return nil, err
	}
	minutes, err := durationToMinutes(req.Duration, req.DurationUnit)
	if err != nil {
		return nil, err
	}

	step := &models.SOPStep{
		SOPID:           sopID,
		Title:           req.Title,
		Description:     req.Description,
		URL:             req.URL,
		DurationMinutes: minutes,
	}
	if err := s.StepRepo.Create(ctx, step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *SOPService) ListSteps(ctx context.Context, sopID int) ([]*models.SOPStep, error) {
	return s.StepRepo.ListBySOP(ctx, sopID)
}

func (s *SOPService) UpdateStep(ctx context.Context, id int, req *models.UpdateSOPStepRequest) (*models.SOPStep, error) {
	existing, err := s.StepRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateStep(req.Title, req.Duration); err != nil {
		return nil, err
	}
	minutes, err := durationToMinutes(req.Duration, req.DurationUnit)
	if err != nil {
		return nil, err
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.URL = req.URL
	existing.DurationMinutes = minutes
	if err := s.StepRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// AttachStepFile uploads a file for a step and records the object key.
func (s *SOPService) AttachStepFile(ctx context.Context, id int, filename, contentType string, body io.Reader) (*models.SOPStep, error) {
	existing, err := s.StepRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("sop-steps/%d/%d%s", existing.SOPID, time.Now().UnixNano(), path.Ext(filename))
	if err := s.Files.Upload(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}
	existing.AttachmentKey = key
	existing.AttachmentName = filename
	if err := s.StepRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ReorderSteps applies a batch reorder. The payload must mention every step
// of the SOP exactly once with sequences forming 1..n, otherwise nothing is
// written.
func (s *SOPService) ReorderSteps(ctx context.Context, sopID int, order []models.StepOrder) ([]*models.SOPStep, error) {
	steps, err := s.StepRepo.ListBySOP(ctx, sopID)
	if err != nil {
		return nil, err
	}
	if len(order) != len(steps) {
		return nil, NewValidationError("order",
			fmt.Sprintf("payload has %d entries but SOP has %d steps", len(order), len(steps)))
	}

	known := make(map[int]bool, len(steps))
	for _, step := range steps {
		known[step.ID] = true
	}

	seenStep := make(map[int]bool, len(order))
	seenSeq := make(map[int]bool, len(order))
	for _, o := range order {
		if !known[o.StepID] {
			return nil, NewValidationError("order", fmt.Sprintf("step %d does not belong to this SOP", o.StepID))
		}
		if seenStep[o.StepID] {
			return nil, NewValidationError("order", fmt.Sprintf("step %d appears more than once", o.StepID))
		}
		seenStep[o.StepID] = true
		if o.Sequence < 1 || o.Sequence > len(order) {
			return nil, NewValidationError("order", fmt.Sprintf("sequence %d is out of range", o.Sequence))
		}
		if seenSeq[o.Sequence] {
			return nil, NewValidationError("order", fmt.Sprintf("sequence %d appears more than once", o.Sequence))
		}
		seenSeq[o.Sequence] = true
	}

	if err := s.StepRepo.Reorder(ctx, sopID, order); err != nil {
		return nil, err
	}
	return s.StepRepo.ListBySOP(ctx, sopID)
}

func (s *SOPService) DeleteStep(ctx context.Context, id int) error {
	return s.StepRepo.Delete(ctx, id)
}

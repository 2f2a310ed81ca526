package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"ca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSOPStore struct {
	CreateFn            func(ctx context.Context, s *models.SOP) error
	GetFn               func(ctx context.Context, id int) (*models.SOP, error)
	NameVersionExistsFn func(ctx context.Context, name string, version, excludeID int) (bool, error)
	UpdateFn            func(ctx context.Context, s *models.SOP) error
	DeleteFn            func(ctx context.Context, id int) error
}

func (m *mockSOPStore) Create(ctx context.Context, s *models.SOP) error { return m.CreateFn(ctx, s) }
func (m *mockSOPStore) Get(ctx context.Context, id int) (*models.SOP, error) {
	return m.GetFn(ctx, id)
}
func (m *mockSOPStore) NameVersionExists(ctx context.Context, name string, version, excludeID int) (bool, error) {
	if m.NameVersionExistsFn == nil {
		return false, nil
	}
	return m.NameVersionExistsFn(ctx, name, version, excludeID)
}
func (m *mockSOPStore) List(ctx context.Context, f models.SOPFilter, limit, offset int) ([]*models.SOP, int, error) {
	return nil, 0, nil
}
func (m *mockSOPStore) Update(ctx context.Context, s *models.SOP) error { return m.UpdateFn(ctx, s) }
func (m *mockSOPStore) Delete(ctx context.Context, id int) error       { return m.DeleteFn(ctx, id) }

type mockSOPStepStore struct {
	CreateFn    func(ctx context.Context, s *models.SOPStep) error
	GetFn       func(ctx context.Context, id int) (*models.SOPStep, error)
	ListBySOPFn func(ctx context.Context, sopID int) ([]*models.SOPStep, error)
	UpdateFn    func(ctx context.Context, s *models.SOPStep) error
	ReorderFn   func(ctx context.Context, sopID int, order []models.StepOrder) error
	DeleteFn    func(ctx context.Context, id int) error
}

func (m *mockSOPStepStore) Create(ctx context.Context, s *models.SOPStep) error {
	return m.CreateFn(ctx, s)
}
func (m *mockSOPStepStore) Get(ctx context.Context, id int) (*models.SOPStep, error) {
	return m.GetFn(ctx, id)
}
func (m *mockSOPStepStore) ListBySOP(ctx context.Context, sopID int) ([]*models.SOPStep, error) {
	return m.ListBySOPFn(ctx, sopID)
}
func (m *mockSOPStepStore) Update(ctx context.Context, s *models.SOPStep) error {
	return m.UpdateFn(ctx, s)
}
func (m *mockSOPStepStore) Reorder(ctx context.Context, sopID int, order []models.StepOrder) error {
	return m.ReorderFn(ctx, sopID, order)
}
func (m *mockSOPStepStore) Delete(ctx context.Context, id int) error { return m.DeleteFn(ctx, id) }

type mockFileStore struct {
	UploadFn   func(ctx context.Context, key string, body io.Reader, contentType string) error
	DownloadFn func(ctx context.Context, key string) (io.ReadCloser, string, error)
	DeleteFn   func(ctx context.Context, key string) error
}

func (m *mockFileStore) Upload(ctx context.Context, key string, body io.Reader, contentType string) error {
	return m.UploadFn(ctx, key, body, contentType)
}
func (m *mockFileStore) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	return m.DownloadFn(ctx, key)
}
func (m *mockFileStore) Delete(ctx context.Context, key string) error { return m.DeleteFn(ctx, key) }

func TestDurationToMinutes(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		unit     string
		want     int
		wantErr  bool
	}{
		{name: "explicit minutes", duration: 90, unit: models.DurationUnitMinutes, want: 90},
		{name: "empty unit defaults to minutes", duration: 45, unit: "", want: 45},
		{name: "days convert at eight working hours", duration: 2, unit: models.DurationUnitDays, want: 960},
		{name: "unknown unit rejected", duration: 5, unit: "weeks", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := durationToMinutes(tt.duration, tt.unit)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCreateSOP_DefaultsVersionAndStatus(t *testing.T) {
	var created *models.SOP
	store := &mockSOPStore{
		CreateFn: func(ctx context.Context, s *models.SOP) error {
			created = s
			return nil
		},
	}
	svc := NewSOPService(store, &mockSOPStepStore{}, &mockFileStore{})

	_, err := svc.CreateSOP(context.Background(), &models.CreateSOPRequest{
		ProcessID: 1,
		Name:      "ITR Preparation",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Version)
	assert.Equal(t, models.StatusActive, created.Status)
}

func TestCreateSOP_RejectsDuplicateNameVersion(t *testing.T) {
	store := &mockSOPStore{
		NameVersionExistsFn: func(ctx context.Context, name string, version, excludeID int) (bool, error) {
			return true, nil
		},
	}
	svc := NewSOPService(store, &mockSOPStepStore{}, &mockFileStore{})

	_, err := svc.CreateSOP(context.Background(), &models.CreateSOPRequest{
		ProcessID: 1,
		Name:      "ITR Preparation",
		Version:   2,
	})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "version")
}

func TestDeleteSOP_BlockedBySteps(t *testing.T) {
	steps := &mockSOPStepStore{
		ListBySOPFn: func(ctx context.Context, sopID int) ([]*models.SOPStep, error) {
			return []*models.SOPStep{{ID: 1}}, nil
		},
	}
	svc := NewSOPService(&mockSOPStore{}, steps, &mockFileStore{})

	err := svc.DeleteSOP(context.Background(), 3)
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "sop")
}

func TestCreateStep_ConvertsDays(t *testing.T) {
	var created *models.SOPStep
	sops := &mockSOPStore{
		GetFn: func(ctx context.Context, id int) (*models.SOP, error) {
			return &models.SOP{ID: id}, nil
		},
	}
	steps := &mockSOPStepStore{
		CreateFn: func(ctx context.Context, s *models.SOPStep) error {
			created = s
			return nil
		},
	}
	svc := NewSOPService(sops, steps, &mockFileStore{})

	_, err := svc.CreateStep(context.Background(), 3, &models.CreateSOPStepRequest{
		Title:        "Collect bank statements",
		Duration:     1,
		DurationUnit: models.DurationUnitDays,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, created.DurationMinutes)
	assert.Equal(t, 3, created.SOPID)
}

func TestAttachStepFile_KeyAndRecord(t *testing.T) {
	step := &models.SOPStep{ID: 5, SOPID: 3, Title: "Collect bank statements"}
	var uploadedKey string
	var updated *models.SOPStep

	steps := &mockSOPStepStore{
		GetFn: func(ctx context.Context, id int) (*models.SOPStep, error) { return step, nil },
		UpdateFn: func(ctx context.Context, s *models.SOPStep) error {
			updated = s
			return nil
		},
	}
	files := &mockFileStore{
		UploadFn: func(ctx context.Context, key string, body io.Reader, contentType string) error {
			uploadedKey = key
			return nil
		},
	}
	svc := NewSOPService(&mockSOPStore{}, steps, files)

	result, err := svc.AttachStepFile(context.Background(), 5, "checklist.pdf", "application/pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uploadedKey, "sop-steps/3/"))
	assert.True(t, strings.HasSuffix(uploadedKey, ".pdf"))
	assert.Equal(t, uploadedKey, updated.AttachmentKey)
	assert.Equal(t, "checklist.pdf", result.AttachmentName)
}

func reorderFixture(t *testing.T) (*SOPService, *[]models.StepOrder) {
	t.Helper()
	var applied []models.StepOrder
	steps := &mockSOPStepStore{
		ListBySOPFn: func(ctx context.Context, sopID int) ([]*models.SOPStep, error) {
			return []*models.SOPStep{
				{ID: 1, SOPID: sopID, Sequence: 1},
				{ID: 2, SOPID: sopID, Sequence: 2},
				{ID: 3, SOPID: sopID, Sequence: 3},
			}, nil
		},
		ReorderFn: func(ctx context.Context, sopID int, order []models.StepOrder) error {
			applied = order
			return nil
		},
	}
	return NewSOPService(&mockSOPStore{}, steps, &mockFileStore{}), &applied
}

func TestReorderSteps_AppliesFullPermutation(t *testing.T) {
	svc, applied := reorderFixture(t)

	order := []models.StepOrder{
		{StepID: 3, Sequence: 1},
		{StepID: 1, Sequence: 2},
		{StepID: 2, Sequence: 3},
	}
	result, err := svc.ReorderSteps(context.Background(), 7, order)
	require.NoError(t, err)
	assert.Equal(t, order, *applied)
	assert.Len(t, result, 3)
}

func TestReorderSteps_RejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name  string
		order []models.StepOrder
	}{
		{
			name:  "incomplete payload",
			order: []models.StepOrder{{StepID: 1, Sequence: 1}},
		},
		{
			name: "unknown step",
			order: []models.StepOrder{
				{StepID: 1, Sequence: 1}, {StepID: 2, Sequence: 2}, {StepID: 99, Sequence: 3},
			},
		},
		{
			name: "duplicate step",
			order: []models.StepOrder{
				{StepID: 1, Sequence: 1}, {StepID: 1, Sequence: 2}, {StepID: 2, Sequence: 3},
			},
		},
		{
			name: "duplicate sequence",
			order: []models.StepOrder{
				{StepID: 1, Sequence: 1}, {StepID: 2, Sequence: 1}, {StepID: 3, Sequence: 3},
			},
		},
		{
			name: "sequence out of range",
			order: []models.StepOrder{
				{StepID: 1, Sequence: 1}, {StepID: 2, Sequence: 2}, {StepID: 3, Sequence: 4},
			},
		},
		{
			name: "zero sequence",
			order: []models.StepOrder{
				{StepID: 1, Sequence: 0}, {StepID: 2, Sequence: 1}, {StepID: 3, Sequence: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, applied := reorderFixture(t)
			_, err := svc.ReorderSteps(context.Background(), 7, tt.order)
			require.Error(t, err)
			_, ok := AsValidationError(err)
			assert.True(t, ok)
			assert.Nil(t, *applied, "nothing may be written on a rejected payload")
		})
	}
}

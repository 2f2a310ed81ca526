package services

import (
	"context"
	"errors"
	"testing"

	"ca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProcessStore struct {
	GetFn    func(ctx context.Context, id int) (*models.Process, error)
	UpdateFn func(ctx context.Context, p *models.Process) error
	DeleteFn func(ctx context.Context, id int) error
}

func (m *mockProcessStore) Create(ctx context.Context, p *models.Process) error { return nil }
func (m *mockProcessStore) Get(ctx context.Context, id int) (*models.Process, error) {
	return m.GetFn(ctx, id)
}
func (m *mockProcessStore) List(ctx context.Context, status string, limit, offset int) ([]*models.Process, int, error) {
	return nil, 0, nil
}
func (m *mockProcessStore) Update(ctx context.Context, p *models.Process) error {
	return m.UpdateFn(ctx, p)
}
func (m *mockProcessStore) Delete(ctx context.Context, id int) error { return m.DeleteFn(ctx, id) }

type mockCascadeSOPStore struct {
	ListByProcessFn func(ctx context.Context, processID int) ([]*models.SOP, error)
	UpdateStatusFn  func(ctx context.Context, id int, status string) error
}

func (m *mockCascadeSOPStore) ListByProcess(ctx context.Context, processID int) ([]*models.SOP, error) {
	return m.ListByProcessFn(ctx, processID)
}
func (m *mockCascadeSOPStore) UpdateStatus(ctx context.Context, id int, status string) error {
	return m.UpdateStatusFn(ctx, id, status)
}

type mockCascadeCategoryStore struct {
	ListBySOPIDsFn func(ctx context.Context, sopIDs []int) ([]*models.ServiceCategory, error)
	UpdateStatusFn func(ctx context.Context, id int, status string) error
}

func (m *mockCascadeCategoryStore) ListBySOPIDs(ctx context.Context, sopIDs []int) ([]*models.ServiceCategory, error) {
	return m.ListBySOPIDsFn(ctx, sopIDs)
}
func (m *mockCascadeCategoryStore) UpdateStatus(ctx context.Context, id int, status string) error {
	return m.UpdateStatusFn(ctx, id, status)
}

// cascadeFixture wires a process at initialStatus with two SOPs and one
// category, recording which ids get status updates.
type cascadeFixture struct {
	svc             *ProcessService
	sopUpdates      map[int]string
	categoryUpdates map[int]string
	sopListCalls    int
}

func newCascadeFixture(initialStatus string) *cascadeFixture {
	f := &cascadeFixture{
		sopUpdates:      map[int]string{},
		categoryUpdates: map[int]string{},
	}
	current := &models.Process{ID: 1, Name: "GST Filing", Audience: models.AudienceBusiness, Status: initialStatus}

	processStore := &mockProcessStore{
		GetFn: func(ctx context.Context, id int) (*models.Process, error) { return current, nil },
		UpdateFn: func(ctx context.Context, p *models.Process) error {
			current = p
			return nil
		},
	}
	sopStore := &mockCascadeSOPStore{
		ListByProcessFn: func(ctx context.Context, processID int) ([]*models.SOP, error) {
			f.sopListCalls++
			return []*models.SOP{
				{ID: 10, ProcessID: 1, Status: models.StatusActive},
				{ID: 11, ProcessID: 1, Status: models.StatusInactive},
			}, nil
		},
		UpdateStatusFn: func(ctx context.Context, id int, status string) error {
			f.sopUpdates[id] = status
			return nil
		},
	}
	categoryStore := &mockCascadeCategoryStore{
		ListBySOPIDsFn: func(ctx context.Context, sopIDs []int) ([]*models.ServiceCategory, error) {
			return []*models.ServiceCategory{
				{ID: 20, SOPID: 10, Status: models.StatusActive},
			}, nil
		},
		UpdateStatusFn: func(ctx context.Context, id int, status string) error {
			f.categoryUpdates[id] = status
			return nil
		},
	}
	f.svc = NewProcessService(processStore, sopStore, categoryStore)
	return f
}

func TestUpdateProcess_DeactivationAlwaysCascades(t *testing.T) {
	f := newCascadeFixture(models.StatusActive)

	process, cascade, err := f.svc.UpdateProcess(context.Background(), 1, &models.UpdateProcessRequest{
		Name:     "GST Filing",
		Audience: models.AudienceBusiness,
		Status:   "inactive",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInactive, process.Status)

	// SOP 11 is already Inactive and must be skipped.
	assert.Equal(t, map[int]string{10: models.StatusInactive}, f.sopUpdates)
	assert.Equal(t, map[int]string{20: models.StatusInactive}, f.categoryUpdates)
	assert.Equal(t, 1, cascade.SOPsUpdated)
	assert.Equal(t, 1, cascade.CategoriesUpdated)
	assert.Empty(t, cascade.Failed)
}

func TestUpdateProcess_ReactivationNeedsOptIn(t *testing.T) {
	f := newCascadeFixture(models.StatusInactive)

	_, cascade, err := f.svc.UpdateProcess(context.Background(), 1, &models.UpdateProcessRequest{
		Name:     "GST Filing",
		Audience: models.AudienceBusiness,
		Status:   "Active",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.sopListCalls, "no cascade without the flag")
	assert.Equal(t, 0, cascade.SOPsUpdated)
	assert.Equal(t, 0, cascade.CategoriesUpdated)
}

func TestUpdateProcess_ReactivationCascadesWithOptIn(t *testing.T) {
	f := newCascadeFixture(models.StatusInactive)

	_, cascade, err := f.svc.UpdateProcess(context.Background(), 1, &models.UpdateProcessRequest{
		Name:     "GST Filing",
		Audience: models.AudienceBusiness,
		Status:   "Active",
		Cascade:  true,
	})
	require.NoError(t, err)

	// SOP 10 is already Active, so only SOP 11 flips. The category is already
	// Active and is skipped.
	assert.Equal(t, map[int]string{11: models.StatusActive}, f.sopUpdates)
	assert.Equal(t, 1, cascade.SOPsUpdated)
	assert.Equal(t, 0, cascade.CategoriesUpdated)
}

func TestUpdateProcess_NoCascadeWhenStatusUnchanged(t *testing.T) {
	f := newCascadeFixture(models.StatusInactive)

	_, _, err := f.svc.UpdateProcess(context.Background(), 1, &models.UpdateProcessRequest{
		Name:     "GST Filing",
		Audience: models.AudienceBusiness,
		Status:   "Inactive",
		Cascade:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.sopListCalls)
}

func TestUpdateProcess_CascadeRecordsPartialFailure(t *testing.T) {
	f := newCascadeFixture(models.StatusActive)
	sopStore := f.svc.SOPRepo.(*mockCascadeSOPStore)
	sopStore.UpdateStatusFn = func(ctx context.Context, id int, status string) error {
		return errors.New("deadlock detected")
	}

	process, cascade, err := f.svc.UpdateProcess(context.Background(), 1, &models.UpdateProcessRequest{
		Name:     "GST Filing",
		Audience: models.AudienceBusiness,
		Status:   "Inactive",
	})
	require.NoError(t, err, "the committed process update is not rolled back")
	assert.Equal(t, models.StatusInactive, process.Status)
	assert.Equal(t, 0, cascade.SOPsUpdated)
	require.Len(t, cascade.Failed, 1)
	assert.Equal(t, "sop", cascade.Failed[0].Kind)
	assert.Equal(t, 10, cascade.Failed[0].ID)
	assert.Contains(t, cascade.Failed[0].Error, "deadlock")

	// Category sweep still ran for the SOPs that were listed.
	assert.Equal(t, 1, cascade.CategoriesUpdated)
}

func TestUpdateProcess_RejectsUnknownStatus(t *testing.T) {
	f := newCascadeFixture(models.StatusActive)

	_, _, err := f.svc.UpdateProcess(context.Background(), 1, &models.UpdateProcessRequest{
		Name:     "GST Filing",
		Audience: models.AudienceBusiness,
		Status:   "archived",
	})
	require.Error(t, err)
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestDeleteProcess_BlockedBySOPs(t *testing.T) {
	f := newCascadeFixture(models.StatusActive)

	err := f.svc.DeleteProcess(context.Background(), 1)
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "process")
}

func TestCreateProcess_ValidatesAudience(t *testing.T) {
	svc := NewProcessService(&mockProcessStore{}, &mockCascadeSOPStore{}, &mockCascadeCategoryStore{})

	_, err := svc.CreateProcess(context.Background(), &models.CreateProcessRequest{
		Name:     "GST Filing",
		Audience: "Everyone",
	})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "audience")
}

package services

import (
	"context"
	"testing"

	"ca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAccessStore struct {
	GetGrantFn func(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error)
	ListFn     func(ctx context.Context) ([]*models.ModuleAccess, error)
	UpsertFn   func(ctx context.Context, g *models.ModuleAccess) error
	DeleteFn   func(ctx context.Context, id int) error
}

func (m *mockAccessStore) GetGrant(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error) {
	return m.GetGrantFn(ctx, role, moduleKey, featureKey)
}
func (m *mockAccessStore) List(ctx context.Context) ([]*models.ModuleAccess, error) {
	return m.ListFn(ctx)
}
func (m *mockAccessStore) Upsert(ctx context.Context, g *models.ModuleAccess) error {
	return m.UpsertFn(ctx, g)
}
func (m *mockAccessStore) Delete(ctx context.Context, id int) error { return m.DeleteFn(ctx, id) }

func TestCheckModule_AdminImplicitlyAllowed(t *testing.T) {
	store := &mockAccessStore{
		GetGrantFn: func(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error) {
			t.Fatal("admin checks must not hit the store")
			return false, false, nil
		},
	}
	svc := NewAccessService(store)

	allowed, err := svc.CheckModule(context.Background(), RoleAdmin, "customers")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckModule_MissingRowMeansDenied(t *testing.T) {
	store := &mockAccessStore{
		GetGrantFn: func(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error) {
			return false, false, nil
		},
	}
	svc := NewAccessService(store)

	allowed, err := svc.CheckModule(context.Background(), "staff", "reports")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCheckModule_GrantedRow(t *testing.T) {
	store := &mockAccessStore{
		GetGrantFn: func(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error) {
			assert.Equal(t, "manager", role)
			assert.Equal(t, "processes", moduleKey)
			assert.Equal(t, "", featureKey)
			return true, true, nil
		},
	}
	svc := NewAccessService(store)

	allowed, err := svc.CheckModule(context.Background(), "manager", "processes")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckFeature_RequiresModuleGrant(t *testing.T) {
	featureLookups := 0
	store := &mockAccessStore{
		GetGrantFn: func(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error) {
			if featureKey != "" {
				featureLookups++
				return true, true, nil
			}
			return false, false, nil // module itself denied
		},
	}
	svc := NewAccessService(store)

	allowed, err := svc.CheckFeature(context.Background(), "staff", "customers", "convert_lead")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, featureLookups, "feature lookup must be skipped when the module is denied")
}

func TestCheckFeature_BothGrantsPresent(t *testing.T) {
	store := &mockAccessStore{
		GetGrantFn: func(ctx context.Context, role, moduleKey, featureKey string) (bool, bool, error) {
			return true, true, nil
		},
	}
	svc := NewAccessService(store)

	allowed, err := svc.CheckFeature(context.Background(), "manager", "customers", "convert_lead")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestUpsertGrant_RejectsUnknownModule(t *testing.T) {
	svc := NewAccessService(&mockAccessStore{})

	_, err := svc.UpsertGrant(context.Background(), &models.UpsertModuleAccessRequest{
		Role:      "staff",
		ModuleKey: "payroll",
		Allowed:   true,
	})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "module_key")
}

func TestDeleteGrant_UnknownIDIsNotFound(t *testing.T) {
	store := &mockAccessStore{
		ListFn: func(ctx context.Context) ([]*models.ModuleAccess, error) {
			return []*models.ModuleAccess{{ID: 1, Role: "staff", ModuleKey: "customers"}}, nil
		},
	}
	svc := NewAccessService(store)

	err := svc.DeleteGrant(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGrant_RemovesGrant(t *testing.T) {
	deleted := 0
	store := &mockAccessStore{
		ListFn: func(ctx context.Context) ([]*models.ModuleAccess, error) {
			return []*models.ModuleAccess{{ID: 5, Role: "staff", ModuleKey: "customers"}}, nil
		},
		DeleteFn: func(ctx context.Context, id int) error {
			deleted = id
			return nil
		},
	}
	svc := NewAccessService(store)

	err := svc.DeleteGrant(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, deleted)
}

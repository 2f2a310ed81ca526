package services

import (
	"context"
	"fmt"

	"ca-backend/internal/cache"
	"ca-backend/internal/models"
)

const RoleAdmin = "admin"

// AccessStore is the repository surface for module/feature grants.
type AccessStore interface {
	GetGrant(ctx context.Context, role, moduleKey, featureKey string) (allowed, ok bool, err error)
	List(ctx context.Context) ([]*models.ModuleAccess, error)
	Upsert(ctx context.Context, g *models.ModuleAccess) error
	Delete(ctx context.Context, id int) error
}

// AccessService resolves role grants with a Redis-backed cache in front of
// the database. Missing rows mean denied; admins are allowed implicitly.
type AccessService struct {
	Repo AccessStore
}

func NewAccessService(repo AccessStore) *AccessService {
	return &AccessService{Repo: repo}
}

func (s *AccessService) check(ctx context.Context, role, moduleKey, featureKey string) (bool, error) {
	if role == RoleAdmin {
		return true, nil
	}

	if allowed, ok := cache.GetCachedAccess(ctx, role, moduleKey, featureKey); ok {
		return allowed, nil
	}

	allowed, found, err := s.Repo.GetGrant(ctx, role, moduleKey, featureKey)
	if err != nil {
		return false, err
	}
	if !found {
		allowed = false
	}
	cache.CacheAccess(ctx, role, moduleKey, featureKey, allowed)
	return allowed, nil
}

// CheckModule satisfies the route middleware's checker interface.
func (s *AccessService) CheckModule(ctx context.Context, role, moduleKey string) (bool, error) {
	return s.check(ctx, role, moduleKey, "")
}

// CheckFeature gates fine-grained actions such as lead conversion. A feature
// grant requires the module grant as well.
func (s *AccessService) CheckFeature(ctx context.Context, role, moduleKey, featureKey string) (bool, error) {
	moduleAllowed, err := s.check(ctx, role, moduleKey, "")
	if err != nil {
		return false, err
	}
	if !moduleAllowed {
		return false, nil
	}
	return s.check(ctx, role, moduleKey, featureKey)
}

func (s *AccessService) ListGrants(ctx context.Context) ([]*models.ModuleAccess, error) {
	return s.Repo.List(ctx)
}

func (s *AccessService) UpsertGrant(ctx context.Context, req *models.UpsertModuleAccessRequest) (*models.ModuleAccess, error) {
	fields := map[string]string{}
	if req.Role == "" {
		fields["role"] = "role is required"
	}
	validModule := false
	for _, k := range models.ModuleKeys {
		if req.ModuleKey == k {
			validModule = true
			break
		}
	}
	if !validModule {
		fields["module_key"] = fmt.Sprintf("unknown module key %q", req.ModuleKey)
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	grant := &models.ModuleAccess{
		Role:       req.Role,
		ModuleKey:  req.ModuleKey,
		FeatureKey: req.FeatureKey,
		Allowed:    req.Allowed,
	}
	if err := s.Repo.Upsert(ctx, grant); err != nil {
		return nil, err
	}
	cache.InvalidateAccess(ctx, req.Role)
	return grant, nil
}

func (s *AccessService) DeleteGrant(ctx context.Context, id int) error {
	grants, err := s.Repo.List(ctx)
	if err != nil {
		return err
	}
	role := ""
	for _, g := range grants {
		if g.ID == id {
			role = g.Role
			break
		}
	}
	if role == "" {
		return ErrNotFound
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateAccess(ctx, role)
	return nil
}

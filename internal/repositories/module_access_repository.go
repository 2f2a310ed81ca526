package repositories

import (
	"context"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ModuleAccessRepository struct {
	DB *pgxpool.Pool
}

func NewModuleAccessRepository(db *pgxpool.Pool) *ModuleAccessRepository {
	return &ModuleAccessRepository{DB: db}
}

// GetGrant looks up one grant row. ok=false when no row exists, which the
// access layer treats as denied.
func (r *ModuleAccessRepository) GetGrant(ctx context.Context, role, moduleKey, featureKey string) (allowed, ok bool, err error) {
	err = r.DB.QueryRow(ctx,
		`SELECT allowed FROM module_access WHERE role=$1 AND module_key=$2 AND feature_key=$3`,
		role, moduleKey, featureKey).Scan(&allowed)
	if err == pgx.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return allowed, true, nil
}

func (r *ModuleAccessRepository) List(ctx context.Context) ([]*models.ModuleAccess, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, role, module_key, feature_key, allowed, created_at, updated_at
         FROM module_access ORDER BY role, module_key, feature_key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var grants []*models.ModuleAccess
	for rows.Next() {
		var g models.ModuleAccess
		if err := rows.Scan(&g.ID, &g.Role, &g.ModuleKey, &g.FeatureKey, &g.Allowed, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		grants = append(grants, &g)
	}
	return grants, rows.Err()
}

// Upsert creates or replaces a grant row.
func (r *ModuleAccessRepository) Upsert(ctx context.Context, g *models.ModuleAccess) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO module_access(role, module_key, feature_key, allowed)
         VALUES($1, $2, $3, $4)
         ON CONFLICT (role, module_key, feature_key)
         DO UPDATE SET allowed=EXCLUDED.allowed, updated_at=CURRENT_TIMESTAMP
         RETURNING id, created_at, updated_at`,
		g.Role, g.ModuleKey, g.FeatureKey, g.Allowed,
	).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *ModuleAccessRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM module_access WHERE id=$1`, id)
	return err
}

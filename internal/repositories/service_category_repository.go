package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceCategoryRepository struct {
	DB *pgxpool.Pool
}

func NewServiceCategoryRepository(db *pgxpool.Pool) *ServiceCategoryRepository {
	return &ServiceCategoryRepository{DB: db}
}

func (r *ServiceCategoryRepository) Create(ctx context.Context, c *models.ServiceCategory) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO service_categories(sop_id, name, status)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		c.SOPID, c.Name, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ServiceCategoryRepository) Get(ctx context.Context, id int) (*models.ServiceCategory, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, sop_id, name, status, created_at, updated_at
         FROM service_categories WHERE id=$1`, id)

	var c models.ServiceCategory
	err := row.Scan(&c.ID, &c.SOPID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *ServiceCategoryRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.ServiceCategory, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM service_categories `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT id, sop_id, name, status, created_at, updated_at
         FROM service_categories %s ORDER BY name LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var categories []*models.ServiceCategory
	for rows.Next() {
		var c models.ServiceCategory
		if err := rows.Scan(&c.ID, &c.SOPID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, &c)
	}
	return categories, count, rows.Err()
}

// ListBySOPIDs returns every category referencing one of the given SOPs.
// Used by the cascade to resolve categories transitively from a process.
func (r *ServiceCategoryRepository) ListBySOPIDs(ctx context.Context, sopIDs []int) ([]*models.ServiceCategory, error) {
	if len(sopIDs) == 0 {
		return nil, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, sop_id, name, status, created_at, updated_at
         FROM service_categories WHERE sop_id = ANY($1) ORDER BY name`, sopIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.ServiceCategory
	for rows.Next() {
		var c models.ServiceCategory
		if err := rows.Scan(&c.ID, &c.SOPID, &c.Name, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *ServiceCategoryRepository) Update(ctx context.Context, c *models.ServiceCategory) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE service_categories SET sop_id=$1, name=$2, status=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		c.SOPID, c.Name, c.Status, c.ID)
	return err
}

func (r *ServiceCategoryRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE service_categories SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	return err
}

func (r *ServiceCategoryRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM service_categories WHERE id=$1`, id)
	return err
}

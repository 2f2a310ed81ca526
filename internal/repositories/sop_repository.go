package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SOPRepository struct {
	DB *pgxpool.Pool
}

func NewSOPRepository(db *pgxpool.Pool) *SOPRepository {
	return &SOPRepository{DB: db}
}

func (r *SOPRepository) Create(ctx context.Context, s *models.SOP) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO sops(process_id, name, version, status)
         VALUES($1, $2, $3, $4)
         RETURNING id, created_at, updated_at`,
		s.ProcessID, s.Name, s.Version, s.Status,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SOPRepository) Get(ctx context.Context, id int) (*models.SOP, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, process_id, name, version, status, created_at, updated_at
         FROM sops WHERE id=$1`, id)

	var s models.SOP
	err := row.Scan(&s.ID, &s.ProcessID, &s.Name, &s.Version, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

// NameVersionExists checks the (name, version) uniqueness constraint,
// ignoring excludeID so in-place updates of the same row pass.
func (r *SOPRepository) NameVersionExists(ctx context.Context, name string, version, excludeID int) (bool, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`SELECT id FROM sops WHERE name=$1 AND version=$2 AND id<>$3 LIMIT 1`,
		name, version, excludeID).Scan(&id)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SOPRepository) List(ctx context.Context, f models.SOPFilter, limit, offset int) ([]*models.SOP, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if f.ProcessID != 0 {
		args = append(args, f.ProcessID)
		where += fmt.Sprintf(" AND process_id=$%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM sops `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT id, process_id, name, version, status, created_at, updated_at
         FROM sops %s ORDER BY name, version LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sops []*models.SOP
	for rows.Next() {
		var s models.SOP
		if err := rows.Scan(&s.ID, &s.ProcessID, &s.Name, &s.Version, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, 0, err
		}
		sops = append(sops, &s)
	}
	return sops, count, rows.Err()
}

// ListByProcess returns every SOP of a process, unpaginated. The cascade
// walks the full set.
func (r *SOPRepository) ListByProcess(ctx context.Context, processID int) ([]*models.SOP, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, process_id, name, version, status, created_at, updated_at
         FROM sops WHERE process_id=$1 ORDER BY name, version`, processID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sops []*models.SOP
	for rows.Next() {
		var s models.SOP
		if err := rows.Scan(&s.ID, &s.ProcessID, &s.Name, &s.Version, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sops = append(sops, &s)
	}
	return sops, rows.Err()
}

func (r *SOPRepository) Update(ctx context.Context, s *models.SOP) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE sops SET name=$1, version=$2, status=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		s.Name, s.Version, s.Status, s.ID)
	return err
}

func (r *SOPRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE sops SET status=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		status, id)
	return err
}

func (r *SOPRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM sops WHERE id=$1`, id)
	return err
}

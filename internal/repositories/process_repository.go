package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ProcessRepository struct {
	DB *pgxpool.Pool
}

func NewProcessRepository(db *pgxpool.Pool) *ProcessRepository {
	return &ProcessRepository{DB: db}
}

func (r *ProcessRepository) Create(ctx context.Context, p *models.Process) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO processes(name, audience, status)
         VALUES($1, $2, $3)
         RETURNING id, created_at, updated_at`,
		p.Name, p.Audience, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProcessRepository) Get(ctx context.Context, id int) (*models.Process, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, audience, status, created_at, updated_at
         FROM processes WHERE id=$1`, id)

	var p models.Process
	err := row.Scan(&p.ID, &p.Name, &p.Audience, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *ProcessRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.Process, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM processes `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT id, name, audience, status, created_at, updated_at
         FROM processes %s ORDER BY name LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var processes []*models.Process
	for rows.Next() {
		var p models.Process
		if err := rows.Scan(&p.ID, &p.Name, &p.Audience, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		processes = append(processes, &p)
	}
	return processes, count, rows.Err()
}

func (r *ProcessRepository) Update(ctx context.Context, p *models.Process) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE processes SET name=$1, audience=$2, status=$3, updated_at=CURRENT_TIMESTAMP
         WHERE id=$4`,
		p.Name, p.Audience, p.Status, p.ID)
	return err
}

func (r *ProcessRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM processes WHERE id=$1`, id)
	return err
}

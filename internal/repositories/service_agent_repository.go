package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceAgentRepository struct {
	DB *pgxpool.Pool
}

func NewServiceAgentRepository(db *pgxpool.Pool) *ServiceAgentRepository {
	return &ServiceAgentRepository{DB: db}
}

const agentColumns = `id, first_name, last_name, email, COALESCE(phone, '') AS phone,
	expert_at, status, allow_portal_access, COALESCE(password_hash, '') AS password_hash,
	created_at, updated_at`

func scanAgent(row interface{ Scan(...interface{}) error }) (*models.ServiceAgent, error) {
	var a models.ServiceAgent
	var expertAt []int
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Phone,
		&expertAt, &a.Status, &a.AllowPortalAccess, &a.PasswordHash,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ExpertAt = expertAt
	return &a, nil
}

func (r *ServiceAgentRepository) Create(ctx context.Context, a *models.ServiceAgent) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO service_agents(first_name, last_name, email, phone, expert_at, status, allow_portal_access, password_hash)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING id, created_at, updated_at`,
		a.FirstName, a.LastName, a.Email, a.Phone, []int(a.ExpertAt), a.Status, a.AllowPortalAccess, a.PasswordHash,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ServiceAgentRepository) Get(ctx context.Context, id int) (*models.ServiceAgent, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+agentColumns+` FROM service_agents WHERE id=$1`, id)
	return scanAgent(row)
}

func (r *ServiceAgentRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.ServiceAgent, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if status != "" {
		args = append(args, status)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM service_agents `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+agentColumns+` FROM service_agents %s ORDER BY first_name, last_name LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var agents []*models.ServiceAgent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, 0, err
		}
		agents = append(agents, a)
	}
	return agents, count, rows.Err()
}

func (r *ServiceAgentRepository) Update(ctx context.Context, a *models.ServiceAgent) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE service_agents SET first_name=$1, last_name=$2, email=$3, phone=$4,
			expert_at=$5, status=$6, allow_portal_access=$7, password_hash=$8,
			updated_at=CURRENT_TIMESTAMP
         WHERE id=$9`,
		a.FirstName, a.LastName, a.Email, a.Phone, []int(a.ExpertAt), a.Status,
		a.AllowPortalAccess, a.PasswordHash, a.ID)
	return err
}

func (r *ServiceAgentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM service_agents WHERE id=$1`, id)
	return err
}

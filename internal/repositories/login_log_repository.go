package repositories

import (
	"context"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, l *models.LoginLog) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO login_logs(user_id, email, success, ip_address, user_agent)
         VALUES($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		l.UserID, l.Email, l.Success, l.IPAddress, l.UserAgent,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *LoginLogRepository) List(ctx context.Context, limit, offset int) ([]*models.LoginLog, int, error) {
	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM login_logs`).Scan(&count); err != nil {
		return nil, 0, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, email, success, COALESCE(ip_address, '') AS ip_address,
			COALESCE(user_agent, '') AS user_agent, created_at
         FROM login_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		var l models.LoginLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Email, &l.Success, &l.IPAddress, &l.UserAgent, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		logs = append(logs, &l)
	}
	return logs, count, rows.Err()
}

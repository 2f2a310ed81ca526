package repositories

import (
	"context"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TOTPRepository struct {
	DB *pgxpool.Pool
}

func NewTOTPRepository(db *pgxpool.Pool) *TOTPRepository {
	return &TOTPRepository{DB: db}
}

// Save stores a provisional secret, replacing any unconfirmed one.
func (r *TOTPRepository) Save(ctx context.Context, t *models.UserTOTP) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO user_totp(user_id, secret, confirmed)
         VALUES($1, $2, $3)
         ON CONFLICT (user_id)
         DO UPDATE SET secret=EXCLUDED.secret, confirmed=EXCLUDED.confirmed
         RETURNING created_at`,
		t.UserID, t.Secret, t.Confirmed,
	).Scan(&t.CreatedAt)
}

func (r *TOTPRepository) Get(ctx context.Context, userID int) (*models.UserTOTP, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT user_id, secret, confirmed, created_at FROM user_totp WHERE user_id=$1`, userID)

	var t models.UserTOTP
	err := row.Scan(&t.UserID, &t.Secret, &t.Confirmed, &t.CreatedAt)
	return &t, err
}

func (r *TOTPRepository) Confirm(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `UPDATE user_totp SET confirmed=true WHERE user_id=$1`, userID)
	return err
}

func (r *TOTPRepository) Delete(ctx context.Context, userID int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM user_totp WHERE user_id=$1`, userID)
	return err
}

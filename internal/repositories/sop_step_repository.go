package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type SOPStepRepository struct {
	DB *pgxpool.Pool
}

func NewSOPStepRepository(db *pgxpool.Pool) *SOPStepRepository {
	return &SOPStepRepository{DB: db}
}

const stepColumns = `id, sop_id, sequence, title, COALESCE(description, '') AS description,
	COALESCE(url, '') AS url, COALESCE(attachment_key, '') AS attachment_key,
	COALESCE(attachment_name, '') AS attachment_name, duration_minutes, created_at, updated_at`

func scanStep(row interface{ Scan(...interface{}) error }) (*models.SOPStep, error) {
	var s models.SOPStep
	err := row.Scan(&s.ID, &s.SOPID, &s.Sequence, &s.Title, &s.Description,
		&s.URL, &s.AttachmentKey, &s.AttachmentName, &s.DurationMinutes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create appends the step at the end of the SOP's sequence.
func (r *SOPStepRepository) Create(ctx context.Context, s *models.SOPStep) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO sop_steps(sop_id, sequence, title, description, url, attachment_key, attachment_name, duration_minutes)
         VALUES($1,
			COALESCE((SELECT MAX(sequence) FROM sop_steps WHERE sop_id=$1), 0) + 1,
			$2, $3, $4, $5, $6, $7)
         RETURNING id, sequence, created_at, updated_at`,
		s.SOPID, s.Title, s.Description, s.URL, s.AttachmentKey, s.AttachmentName, s.DurationMinutes,
	).Scan(&s.ID, &s.Sequence, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SOPStepRepository) Get(ctx context.Context, id int) (*models.SOPStep, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+stepColumns+` FROM sop_steps WHERE id=$1`, id)
	return scanStep(row)
}

func (r *SOPStepRepository) ListBySOP(ctx context.Context, sopID int) ([]*models.SOPStep, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+stepColumns+` FROM sop_steps WHERE sop_id=$1 ORDER BY sequence`, sopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []*models.SOPStep
	for rows.Next() {
		s, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}

func (r *SOPStepRepository) Update(ctx context.Context, s *models.SOPStep) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE sop_steps SET title=$1, description=$2, url=$3, attachment_key=$4,
			attachment_name=$5, duration_minutes=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		s.Title, s.Description, s.URL, s.AttachmentKey, s.AttachmentName, s.DurationMinutes, s.ID)
	return err
}

// Reorder applies a full permutation of a SOP's step sequence in one
// transaction. A failed item aborts the whole batch so the stored order is
// never left half-applied.
func (r *SOPStepRepository) Reorder(ctx context.Context, sopID int, order []models.StepOrder) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, o := range order {
		tag, err := tx.Exec(ctx,
			`UPDATE sop_steps SET sequence=$1, updated_at=CURRENT_TIMESTAMP
             WHERE id=$2 AND sop_id=$3`,
			o.Sequence, o.StepID, sopID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("step %d does not belong to sop %d", o.StepID, sopID)
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a step and closes the sequence gap it leaves.
func (r *SOPStepRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var sopID, seq int
	if err := tx.QueryRow(ctx,
		`DELETE FROM sop_steps WHERE id=$1 RETURNING sop_id, sequence`, id,
	).Scan(&sopID, &seq); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`UPDATE sop_steps SET sequence=sequence-1 WHERE sop_id=$1 AND sequence>$2`,
		sopID, seq); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

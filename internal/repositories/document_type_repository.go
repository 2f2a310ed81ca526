package repositories

import (
	"context"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentTypeRepository struct {
	DB *pgxpool.Pool
}

func NewDocumentTypeRepository(db *pgxpool.Pool) *DocumentTypeRepository {
	return &DocumentTypeRepository{DB: db}
}

func (r *DocumentTypeRepository) Create(ctx context.Context, t *models.DocumentType) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO document_types(name, description)
         VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		t.Name, t.Description,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *DocumentTypeRepository) Get(ctx context.Context, id int) (*models.DocumentType, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') AS description, created_at, updated_at
         FROM document_types WHERE id=$1`, id)

	var t models.DocumentType
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *DocumentTypeRepository) List(ctx context.Context) ([]*models.DocumentType, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(description, '') AS description, created_at, updated_at
         FROM document_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.DocumentType
	for rows.Next() {
		var t models.DocumentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

func (r *DocumentTypeRepository) Update(ctx context.Context, t *models.DocumentType) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE document_types SET name=$1, description=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=$3`,
		t.Name, t.Description, t.ID)
	return err
}

func (r *DocumentTypeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM document_types WHERE id=$1`, id)
	return err
}

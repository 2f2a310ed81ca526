package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DocumentRepository struct {
	DB *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

const documentColumns = `id, customer_id, document_type_id, version, status, visible_to_customer,
	file_name, file_key, content_type, size_bytes, uploaded_by, created_at`

func scanDocument(row interface{ Scan(...interface{}) error }) (*models.Document, error) {
	var d models.Document
	err := row.Scan(&d.ID, &d.CustomerID, &d.DocumentTypeID, &d.Version, &d.Status, &d.VisibleToCustomer,
		&d.FileName, &d.FileKey, &d.ContentType, &d.SizeBytes, &d.UploadedBy, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateVersion inserts the next version of a (customer, type) document and
// supersedes the previous Latest row in the same transaction, keeping the
// append-only versioning invariant intact under concurrent uploads.
func (r *DocumentRepository) CreateVersion(ctx context.Context, d *models.Document) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE documents SET status=$1
         WHERE customer_id=$2 AND document_type_id=$3 AND status=$4`,
		models.DocumentStatusSuperseded, d.CustomerID, d.DocumentTypeID, models.DocumentStatusLatest,
	); err != nil {
		return err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO documents(customer_id, document_type_id, version, status, visible_to_customer,
			file_name, file_key, content_type, size_bytes, uploaded_by)
         VALUES($1, $2,
			COALESCE((SELECT MAX(version) FROM documents WHERE customer_id=$1 AND document_type_id=$2), 0) + 1,
			$3, $4, $5, $6, $7, $8, $9)
         RETURNING id, version, created_at`,
		d.CustomerID, d.DocumentTypeID, models.DocumentStatusLatest, d.VisibleToCustomer,
		d.FileName, d.FileKey, d.ContentType, d.SizeBytes, d.UploadedBy,
	).Scan(&d.ID, &d.Version, &d.CreatedAt)
	if err != nil {
		return err
	}
	d.Status = models.DocumentStatusLatest

	return tx.Commit(ctx)
}

func (r *DocumentRepository) Get(ctx context.Context, id int) (*models.Document, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id=$1`, id)
	return scanDocument(row)
}

func (r *DocumentRepository) List(ctx context.Context, f models.DocumentFilter, limit, offset int) ([]*models.Document, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if f.CustomerID != 0 {
		args = append(args, f.CustomerID)
		where += fmt.Sprintf(" AND customer_id=$%d", len(args))
	}
	if f.DocumentTypeID != 0 {
		args = append(args, f.DocumentTypeID)
		where += fmt.Sprintf(" AND document_type_id=$%d", len(args))
	}
	if f.LatestOnly {
		args = append(args, models.DocumentStatusLatest)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM documents `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+documentColumns+` FROM documents %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}
	return docs, count, rows.Err()
}

func (r *DocumentRepository) SetVisibility(ctx context.Context, id int, visible bool) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE documents SET visible_to_customer=$1 WHERE id=$2`, visible, id)
	return err
}

func (r *DocumentRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	return err
}

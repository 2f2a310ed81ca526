package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CredentialTypeRepository struct {
	DB *pgxpool.Pool
}

func NewCredentialTypeRepository(db *pgxpool.Pool) *CredentialTypeRepository {
	return &CredentialTypeRepository{DB: db}
}

func (r *CredentialTypeRepository) Create(ctx context.Context, t *models.CredentialType) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO credential_types(name, description)
         VALUES($1, $2)
         RETURNING id, created_at, updated_at`,
		t.Name, t.Description,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *CredentialTypeRepository) Get(ctx context.Context, id int) (*models.CredentialType, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, COALESCE(description, '') AS description, created_at, updated_at
         FROM credential_types WHERE id=$1`, id)

	var t models.CredentialType
	err := row.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *CredentialTypeRepository) List(ctx context.Context) ([]*models.CredentialType, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(description, '') AS description, created_at, updated_at
         FROM credential_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []*models.CredentialType
	for rows.Next() {
		var t models.CredentialType
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		types = append(types, &t)
	}
	return types, rows.Err()
}

func (r *CredentialTypeRepository) Update(ctx context.Context, t *models.CredentialType) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE credential_types SET name=$1, description=$2, updated_at=CURRENT_TIMESTAMP
         WHERE id=$3`,
		t.Name, t.Description, t.ID)
	return err
}

func (r *CredentialTypeRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM credential_types WHERE id=$1`, id)
	return err
}

type CredentialRepository struct {
	DB *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{DB: db}
}

const credentialColumns = `id, customer_id, credential_type_id, username, password,
	COALESCE(otp_email, '') AS otp_email, COALESCE(otp_phone, '') AS otp_phone,
	COALESCE(notes, '') AS notes, created_at, updated_at`

func scanCredential(row interface{ Scan(...interface{}) error }) (*models.Credential, error) {
	var c models.Credential
	err := row.Scan(&c.ID, &c.CustomerID, &c.CredentialTypeID, &c.Username, &c.Password,
		&c.OTPEmail, &c.OTPPhone, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CredentialRepository) Create(ctx context.Context, c *models.Credential) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO credentials(customer_id, credential_type_id, username, password, otp_email, otp_phone, notes)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		c.CustomerID, c.CredentialTypeID, c.Username, c.Password, c.OTPEmail, c.OTPPhone, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CredentialRepository) Get(ctx context.Context, id int) (*models.Credential, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+credentialColumns+` FROM credentials WHERE id=$1`, id)
	return scanCredential(row)
}

func (r *CredentialRepository) List(ctx context.Context, customerID, typeID, limit, offset int) ([]*models.Credential, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if customerID > 0 {
		args = append(args, customerID)
		where += fmt.Sprintf(" AND customer_id=$%d", len(args))
	}
	if typeID > 0 {
		args = append(args, typeID)
		where += fmt.Sprintf(" AND credential_type_id=$%d", len(args))
	}

	var total int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM credentials`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.DB.Query(ctx,
		`SELECT `+credentialColumns+` FROM credentials`+where+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	creds := []*models.Credential{}
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, 0, err
		}
		creds = append(creds, c)
	}
	return creds, total, rows.Err()
}

func (r *CredentialRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Credential, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+credentialColumns+` FROM credentials WHERE customer_id=$1 ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var creds []*models.Credential
	for rows.Next() {
		c, err := scanCredential(rows)
		if err != nil {
			return nil, err
		}
		creds = append(creds, c)
	}
	return creds, rows.Err()
}

func (r *CredentialRepository) Update(ctx context.Context, c *models.Credential) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE credentials SET credential_type_id=$1, username=$2, password=$3,
			otp_email=$4, otp_phone=$5, notes=$6, updated_at=CURRENT_TIMESTAMP
         WHERE id=$7`,
		c.CredentialTypeID, c.Username, c.Password, c.OTPEmail, c.OTPPhone, c.Notes, c.ID)
	return err
}

func (r *CredentialRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM credentials WHERE id=$1`, id)
	return err
}

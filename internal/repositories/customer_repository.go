package repositories

import (
	"context"
	"fmt"
	"strings"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

// escapeLike neutralizes LIKE metacharacters in user input so a query such
// as "__" matches literally instead of acting as a wildcard.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

const customerColumns = `id, first_name, last_name, COALESCE(email, '') AS email, COALESCE(phone, '') AS phone,
	COALESCE(aadhaar_card, '') AS aadhaar_card, COALESCE(pan_card, '') AS pan_card,
	customer_type, source, COALESCE(referred_by, '') AS referred_by, COALESCE(channel_partner, '') AS channel_partner,
	allow_portal_access, email_verified, mobile_verified, COALESCE(password_hash, '') AS password_hash,
	account_owner_id, created_at, updated_at`

func scanCustomer(row interface{ Scan(...interface{}) error }) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.AadhaarCard, &c.PANCard, &c.CustomerType, &c.Source, &c.ReferredBy, &c.ChannelPartner,
		&c.AllowPortalAccess, &c.EmailVerified, &c.MobileVerified, &c.PasswordHash,
		&c.AccountOwnerID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c *models.Customer) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO customers(first_name, last_name, email, phone, aadhaar_card, pan_card,
			customer_type, source, referred_by, channel_partner,
			allow_portal_access, email_verified, mobile_verified, password_hash, account_owner_id)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
         RETURNING id, created_at, updated_at`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.AadhaarCard, c.PANCard,
		c.CustomerType, c.Source, c.ReferredBy, c.ChannelPartner,
		c.AllowPortalAccess, c.EmailVerified, c.MobileVerified, c.PasswordHash, c.AccountOwnerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id=$1`, id)
	return scanCustomer(row)
}

func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email=$1`, email)
	return scanCustomer(row)
}

// List returns one page of customers plus the unfiltered-match total for the
// pagination envelope.
func (r *CustomerRepository) List(ctx context.Context, f models.CustomerFilter, limit, offset int) ([]*models.Customer, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if f.CustomerType != "" {
		args = append(args, f.CustomerType)
		where += fmt.Sprintf(" AND customer_type=$%d", len(args))
	}
	if f.Source != "" {
		args = append(args, f.Source)
		where += fmt.Sprintf(" AND source=$%d", len(args))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		where += fmt.Sprintf(" AND (first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d)", n, n, n)
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+customerColumns+` FROM customers %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}

// SearchByEmail backs the type-ahead lookup used for referred-by and
// channel-partner fields. Caller enforces the minimum query length.
func (r *CustomerRepository) SearchByEmail(ctx context.Context, query string, limit int) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE email ILIKE $1 ORDER BY email LIMIT $2`,
		"%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE customers SET first_name=$1, last_name=$2, email=$3, phone=$4,
			aadhaar_card=$5, pan_card=$6, customer_type=$7, source=$8,
			referred_by=$9, channel_partner=$10, allow_portal_access=$11,
			email_verified=$12, mobile_verified=$13, account_owner_id=$14,
			updated_at=CURRENT_TIMESTAMP
         WHERE id=$15`,
		c.FirstName, c.LastName, c.Email, c.Phone,
		c.AadhaarCard, c.PANCard, c.CustomerType, c.Source,
		c.ReferredBy, c.ChannelPartner, c.AllowPortalAccess,
		c.EmailVerified, c.MobileVerified, c.AccountOwnerID, c.ID)
	return err
}

func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	return err
}

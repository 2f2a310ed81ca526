package repositories

import (
	"context"
	"fmt"

	"ca-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceTicketRepository struct {
	DB *pgxpool.Pool
}

func NewServiceTicketRepository(db *pgxpool.Pool) *ServiceTicketRepository {
	return &ServiceTicketRepository{DB: db}
}

const ticketColumns = `id, customer_id, service_category_id, assigned_agent_id, subject,
	COALESCE(description, '') AS description, status, due_date, created_at, updated_at`

func scanTicket(row interface{ Scan(...interface{}) error }) (*models.ServiceTicket, error) {
	var t models.ServiceTicket
	err := row.Scan(&t.ID, &t.CustomerID, &t.ServiceCategoryID, &t.AssignedAgentID, &t.Subject,
		&t.Description, &t.Status, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *ServiceTicketRepository) Create(ctx context.Context, t *models.ServiceTicket) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO service_tickets(customer_id, service_category_id, assigned_agent_id, subject, description, status, due_date)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING id, created_at, updated_at`,
		t.CustomerID, t.ServiceCategoryID, t.AssignedAgentID, t.Subject, t.Description, t.Status, t.DueDate,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *ServiceTicketRepository) Get(ctx context.Context, id int) (*models.ServiceTicket, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM service_tickets WHERE id=$1`, id)
	return scanTicket(row)
}

func (r *ServiceTicketRepository) List(ctx context.Context, f models.TicketFilter, limit, offset int) ([]*models.ServiceTicket, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}

	if f.CustomerID != 0 {
		args = append(args, f.CustomerID)
		where += fmt.Sprintf(" AND customer_id=$%d", len(args))
	}
	if f.ServiceCategoryID != 0 {
		args = append(args, f.ServiceCategoryID)
		where += fmt.Sprintf(" AND service_category_id=$%d", len(args))
	}
	if f.AssignedAgentID != 0 {
		args = append(args, f.AssignedAgentID)
		where += fmt.Sprintf(" AND assigned_agent_id=$%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status=$%d", len(args))
	}

	var count int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM service_tickets `+where, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT `+ticketColumns+` FROM service_tickets %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []*models.ServiceTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	return tickets, count, rows.Err()
}

func (r *ServiceTicketRepository) Update(ctx context.Context, t *models.ServiceTicket) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE service_tickets SET assigned_agent_id=$1, subject=$2, description=$3,
			status=$4, due_date=$5, updated_at=CURRENT_TIMESTAMP
         WHERE id=$6`,
		t.AssignedAgentID, t.Subject, t.Description, t.Status, t.DueDate, t.ID)
	return err
}

func (r *ServiceTicketRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM service_tickets WHERE id=$1`, id)
	return err
}

// Ticket tasks

func (r *ServiceTicketRepository) CreateTask(ctx context.Context, t *models.TicketTask) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO ticket_tasks(ticket_id, title, done)
         VALUES($1, $2, false)
         RETURNING id, done, created_at, updated_at`,
		t.TicketID, t.Title,
	).Scan(&t.ID, &t.Done, &t.CreatedAt, &t.UpdatedAt)
}

func (r *ServiceTicketRepository) ListTasks(ctx context.Context, ticketID int) ([]*models.TicketTask, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, ticket_id, title, done, created_at, updated_at
         FROM ticket_tasks WHERE ticket_id=$1 ORDER BY id`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.TicketTask
	for rows.Next() {
		var t models.TicketTask
		if err := rows.Scan(&t.ID, &t.TicketID, &t.Title, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}

func (r *ServiceTicketRepository) UpdateTask(ctx context.Context, t *models.TicketTask) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE ticket_tasks SET title=$1, done=$2, updated_at=CURRENT_TIMESTAMP WHERE id=$3`,
		t.Title, t.Done, t.ID)
	return err
}

func (r *ServiceTicketRepository) DeleteTask(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM ticket_tasks WHERE id=$1`, id)
	return err
}

package models

import "time"

// Service ticket statuses follow the engagement lifecycle, not the
// Active/Inactive pair used by master data.
const (
	TicketStatusOpen       = "Open"
	TicketStatusInProgress = "In Progress"
	TicketStatusOnHold     = "On Hold"
	TicketStatusClosed     = "Closed"
)

var TicketStatuses = []string{TicketStatusOpen, TicketStatusInProgress, TicketStatusOnHold, TicketStatusClosed}

// ServiceTicket is one engagement of a customer under a service category,
// optionally assigned to an agent.
type ServiceTicket struct {
	ID                int        `json:"id"`
	CustomerID        int        `json:"customer_id"`
	ServiceCategoryID int        `json:"service_category_id"`
	AssignedAgentID   *int       `json:"assigned_agent_id"`
	Subject           string     `json:"subject"`
	Description       string     `json:"description"`
	Status            string     `json:"status"`
	DueDate           *time.Time `json:"due_date"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type CreateServiceTicketRequest struct {
	CustomerID        int        `json:"customer_id"`
	ServiceCategoryID int        `json:"service_category_id"`
	AssignedAgentID   *int       `json:"assigned_agent_id"`
	Subject           string     `json:"subject"`
	Description       string     `json:"description"`
	DueDate           *time.Time `json:"due_date"`
}

type UpdateServiceTicketRequest struct {
	AssignedAgentID *int       `json:"assigned_agent_id"`
	Subject         string     `json:"subject"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	DueDate         *time.Time `json:"due_date"`
}

// TicketTask is one work item under a ticket, typically mirroring a SOP step.
type TicketTask struct {
	ID        int       `json:"id"`
	TicketID  int       `json:"ticket_id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateTicketTaskRequest struct {
	Title string `json:"title"`
}

type UpdateTicketTaskRequest struct {
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// TicketFilter narrows paginated ticket listings.
type TicketFilter struct {
	CustomerID        int
	ServiceCategoryID int
	AssignedAgentID   int
	Status            string
}

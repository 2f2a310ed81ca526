package services

import (
	"context"
	"fmt"

	"ca-backend/internal/models"
	"ca-backend/internal/repositories"
)

type ServiceTicketService struct {
	Repo         *repositories.ServiceTicketRepository
	CategoryRepo *repositories.ServiceCategoryRepository
	AgentRepo    *repositories.ServiceAgentRepository
	CustomerRepo *repositories.CustomerRepository
}

func NewServiceTicketService(
	repo *repositories.ServiceTicketRepository,
	categoryRepo *repositories.ServiceCategoryRepository,
	agentRepo *repositories.ServiceAgentRepository,
	customerRepo *repositories.CustomerRepository,
) *ServiceTicketService {
	return &ServiceTicketService{
		Repo:         repo,
		CategoryRepo: categoryRepo,
		AgentRepo:    agentRepo,
		CustomerRepo: customerRepo,
	}
}

func validTicketStatus(status string) bool {
	for _, s := range models.TicketStatuses {
		if status == s {
			return true
		}
	}
	return false
}

func (s *ServiceTicketService) CreateTicket(ctx context.Context, req *models.CreateServiceTicketRequest) (*models.ServiceTicket, error) {
	fields := map[string]string{}
	if req.Subject == "" {
		fields["subject"] = "subject is required"
	}
	if req.CustomerID <= 0 {
		fields["customer_id"] = "customer_id is required"
	}
	if req.ServiceCategoryID <= 0 {
		fields["service_category_id"] = "service_category_id is required"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.CustomerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, NewValidationError("customer_id", "unknown customer")
	}
	category, err := s.CategoryRepo.Get(ctx, req.ServiceCategoryID)
	if err != nil {
		return nil, NewValidationError("service_category_id", "unknown service category")
	}
	if category.Status != models.StatusActive {
		return nil, NewValidationError("service_category_id", "service category is inactive")
	}
	if req.AssignedAgentID != nil {
		if _, err := s.AgentRepo.Get(ctx, *req.AssignedAgentID); err != nil {
			return nil, NewValidationError("assigned_agent_id", "unknown service agent")
		}
	}

	ticket := &models.ServiceTicket{
		CustomerID:        req.CustomerID,
		ServiceCategoryID: req.ServiceCategoryID,
		AssignedAgentID:   req.AssignedAgentID,
		Subject:           req.Subject,
		Description:       req.Description,
		Status:            models.TicketStatusOpen,
		DueDate:           req.DueDate,
	}
	if err := s.Repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *ServiceTicketService) GetTicket(ctx context.Context, id int) (*models.ServiceTicket, error) {
	return s.Repo.Get(ctx, id)
}

func (s *ServiceTicketService) ListTickets(ctx context.Context, f models.TicketFilter, limit, offset int) ([]*models.ServiceTicket, int, error) {
	if f.Status != "" && !validTicketStatus(f.Status) {
		return nil, 0, NewValidationError("status", fmt.Sprintf("status must be one of %v", models.TicketStatuses))
	}
	return s.Repo.List(ctx, f, limit, offset)
}

func (s *ServiceTicketService) UpdateTicket(ctx context.Context, id int, req *models.UpdateServiceTicketRequest) (*models.ServiceTicket, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Subject == "" {
		return nil, NewValidationError("subject", "subject is required")
	}

	status := existing.Status
	if req.Status != "" {
		if !validTicketStatus(req.Status) {
			return nil, NewValidationError("status", fmt.Sprintf("status must be one of %v", models.TicketStatuses))
		}
		status = req.Status
	}

	if req.AssignedAgentID != nil {
		if _, err := s.AgentRepo.Get(ctx, *req.AssignedAgentID); err != nil {
			return nil, NewValidationError("assigned_agent_id", "unknown service agent")
		}
	}

	existing.AssignedAgentID = req.AssignedAgentID
	existing.Subject = req.Subject
	existing.Description = req.Description
	existing.Status = status
	existing.DueDate = req.DueDate
	if err := s.Repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *ServiceTicketService) DeleteTicket(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *ServiceTicketService) CreateTask(ctx context.Context, ticketID int, req *models.CreateTicketTaskRequest) (*models.TicketTask, error) {
	if req.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	if _, err := s.Repo.Get(ctx, ticketID); err != nil {
		return nil, err
	}
	task := &models.TicketTask{TicketID: ticketID, Title: req.Title}
	if err := s.Repo.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *ServiceTicketService) ListTasks(ctx context.Context, ticketID int) ([]*models.TicketTask, error) {
	return s.Repo.ListTasks(ctx, ticketID)
}

func (s *ServiceTicketService) UpdateTask(ctx context.Context, ticketID, taskID int, req *models.UpdateTicketTaskRequest) (*models.TicketTask, error) {
	if req.Title == "" {
		return nil, NewValidationError("title", "title is required")
	}
	task := &models.TicketTask{ID: taskID, TicketID: ticketID, Title: req.Title, Done: req.Done}
	if err := s.Repo.UpdateTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *ServiceTicketService) DeleteTask(ctx context.Context, taskID int) error {
	return s.Repo.DeleteTask(ctx, taskID)
}

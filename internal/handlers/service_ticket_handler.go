package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ca-backend/internal/models"
	"ca-backend/internal/services"
	"ca-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type ServiceTicketHandler struct {
	Service *services.ServiceTicketService
}

func NewServiceTicketHandler(s *services.ServiceTicketService) *ServiceTicketHandler {
	return &ServiceTicketHandler{Service: s}
}

func (h *ServiceTicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticket, err := h.Service.CreateTicket(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, ticket)
}

func (h *ServiceTicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	ticket, err := h.Service.GetTicket(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ticket)
}

func (h *ServiceTicketHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.TicketFilter{Status: q.Get("status")}
	if v := q.Get("customer_id"); v != "" {
		filter.CustomerID, _ = strconv.Atoi(v)
	}
	if v := q.Get("service_category_id"); v != "" {
		filter.ServiceCategoryID, _ = strconv.Atoi(v)
	}
	if v := q.Get("assigned_agent_id"); v != "" {
		filter.AssignedAgentID, _ = strconv.Atoi(v)
	}
	page := utils.PageFromQuery(r)

	tickets, count, err := h.Service.ListTickets(r.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if tickets == nil {
		tickets = []*models.ServiceTicket{}
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, count, page, tickets))
}

func (h *ServiceTicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateServiceTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticket, err := h.Service.UpdateTicket(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, ticket)
}

func (h *ServiceTicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteTicket(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Service ticket deleted"})
}

func (h *ServiceTicketHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	ticketID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateTicketTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.CreateTask(r.Context(), ticketID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, task)
}

func (h *ServiceTicketHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ticketID, _ := strconv.Atoi(mux.Vars(r)["id"])

	tasks, err := h.Service.ListTasks(r.Context(), ticketID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []*models.TicketTask{}
	}
	utils.JSON(w, http.StatusOK, tasks)
}

func (h *ServiceTicketHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ticketID, _ := strconv.Atoi(vars["id"])
	taskID, _ := strconv.Atoi(vars["task_id"])

	var req models.UpdateTicketTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.Service.UpdateTask(r.Context(), ticketID, taskID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, task)
}

func (h *ServiceTicketHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.Atoi(mux.Vars(r)["task_id"])

	if err := h.Service.DeleteTask(r.Context(), taskID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

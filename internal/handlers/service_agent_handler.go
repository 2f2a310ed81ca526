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

type ServiceAgentHandler struct {
	Service *services.ServiceAgentService
}

func NewServiceAgentHandler(s *services.ServiceAgentService) *ServiceAgentHandler {
	return &ServiceAgentHandler{Service: s}
}

func (h *ServiceAgentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	agent, err := h.Service.CreateAgent(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, agent)
}

func (h *ServiceAgentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	agent, err := h.Service.GetAgent(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, agent)
}

func (h *ServiceAgentHandler) List(w http.ResponseWriter, r *http.Request) {
	page := utils.PageFromQuery(r)

	agents, count, err := h.Service.ListAgents(r.Context(), r.URL.Query().Get("status"), page.Limit(), page.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if agents == nil {
		agents = []*models.ServiceAgent{}
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, count, page, agents))
}

func (h *ServiceAgentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateServiceAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	agent, err := h.Service.UpdateAgent(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, agent)
}

func (h *ServiceAgentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteAgent(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Service agent deleted"})
}

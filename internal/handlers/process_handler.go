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

type ProcessHandler struct {
	Service *services.ProcessService
}

func NewProcessHandler(s *services.ProcessService) *ProcessHandler {
	return &ProcessHandler{Service: s}
}

func (h *ProcessHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	process, err := h.Service.CreateProcess(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, process)
}

func (h *ProcessHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	process, err := h.Service.GetProcess(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, process)
}

func (h *ProcessHandler) List(w http.ResponseWriter, r *http.Request) {
	page := utils.PageFromQuery(r)

	processes, count, err := h.Service.ListProcesses(r.Context(), r.URL.Query().Get("status"), page.Limit(), page.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if processes == nil {
		processes = []*models.Process{}
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, count, page, processes))
}

// Update writes the process and reports what the status sweep touched.
func (h *ProcessHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	process, cascade, err := h.Service.UpdateProcess(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"process": process,
		"cascade": cascade,
	})
}

func (h *ProcessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteProcess(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Process deleted"})
}

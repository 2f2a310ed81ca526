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

// stepFileSizeLimit caps SOP step attachments at 20 MB.
const stepFileSizeLimit = 20 << 20

type SOPHandler struct {
	Service *services.SOPService
}

func NewSOPHandler(s *services.SOPService) *SOPHandler {
	return &SOPHandler{Service: s}
}

func (h *SOPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSOPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sop, err := h.Service.CreateSOP(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, sop)
}

func (h *SOPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	sop, err := h.Service.GetSOP(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sop)
}

func (h *SOPHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.SOPFilter{Status: q.Get("status")}
	if v := q.Get("process_id"); v != "" {
		filter.ProcessID, _ = strconv.Atoi(v)
	}
	page := utils.PageFromQuery(r)

	sops, count, err := h.Service.ListSOPs(r.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sops == nil {
		sops = []*models.SOP{}
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, count, page, sops))
}

func (h *SOPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateSOPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sop, err := h.Service.UpdateSOP(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, sop)
}

func (h *SOPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteSOP(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "SOP deleted"})
}

func (h *SOPHandler) CreateStep(w http.ResponseWriter, r *http.Request) {
	sopID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateSOPStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	step, err := h.Service.CreateStep(r.Context(), sopID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, step)
}

func (h *SOPHandler) ListSteps(w http.ResponseWriter, r *http.Request) {
	sopID, _ := strconv.Atoi(mux.Vars(r)["id"])

	steps, err := h.Service.ListSteps(r.Context(), sopID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if steps == nil {
		steps = []*models.SOPStep{}
	}
	utils.JSON(w, http.StatusOK, steps)
}

func (h *SOPHandler) UpdateStep(w http.ResponseWriter, r *http.Request) {
	stepID, _ := strconv.Atoi(mux.Vars(r)["step_id"])

	var req models.UpdateSOPStepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	step, err := h.Service.UpdateStep(r.Context(), stepID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, step)
}

// AttachStepFile accepts a multipart upload for a step attachment.
func (h *SOPHandler) AttachStepFile(w http.ResponseWriter, r *http.Request) {
	stepID, _ := strconv.Atoi(mux.Vars(r)["step_id"])

	if err := r.ParseMultipartForm(stepFileSizeLimit); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	step, err := h.Service.AttachStepFile(r.Context(), stepID, header.Filename,
		header.Header.Get("Content-Type"), file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, step)
}

func (h *SOPHandler) ReorderSteps(w http.ResponseWriter, r *http.Request) {
	sopID, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		Order []models.StepOrder `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	steps, err := h.Service.ReorderSteps(r.Context(), sopID, req.Order)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, steps)
}

func (h *SOPHandler) DeleteStep(w http.ResponseWriter, r *http.Request) {
	stepID, _ := strconv.Atoi(mux.Vars(r)["step_id"])

	if err := h.Service.DeleteStep(r.Context(), stepID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Step deleted"})
}

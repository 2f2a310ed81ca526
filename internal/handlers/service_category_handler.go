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

type ServiceCategoryHandler struct {
	Service *services.ServiceCategoryService
}

func NewServiceCategoryHandler(s *services.ServiceCategoryService) *ServiceCategoryHandler {
	return &ServiceCategoryHandler{Service: s}
}

func (h *ServiceCategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, category)
}

func (h *ServiceCategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	category, err := h.Service.GetCategory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, category)
}

func (h *ServiceCategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	page := utils.PageFromQuery(r)

	categories, count, err := h.Service.ListCategories(r.Context(), r.URL.Query().Get("status"), page.Limit(), page.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if categories == nil {
		categories = []*models.ServiceCategory{}
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, count, page, categories))
}

func (h *ServiceCategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateServiceCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.Service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, category)
}

func (h *ServiceCategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Service category deleted"})
}

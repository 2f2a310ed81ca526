package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ca-backend/internal/middleware"
	"ca-backend/internal/models"
	"ca-backend/internal/services"
	"ca-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// AccessHandler manages role grants (admin only) and lets any authenticated
// user ask what their own role may do.
type AccessHandler struct {
	Service *services.AccessService
}

func NewAccessHandler(s *services.AccessService) *AccessHandler {
	return &AccessHandler{Service: s}
}

func (h *AccessHandler) List(w http.ResponseWriter, r *http.Request) {
	grants, err := h.Service.ListGrants(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if grants == nil {
		grants = []*models.ModuleAccess{}
	}
	utils.JSON(w, http.StatusOK, grants)
}

func (h *AccessHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req models.UpsertModuleAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	grant, err := h.Service.UpsertGrant(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, grant)
}

func (h *AccessHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteGrant(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Grant deleted"})
}

// MyModules reports which modules the caller's role can use, so the frontend
// can hide navigation it would only get 403s from.
func (h *AccessHandler) MyModules(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	modules := map[string]bool{}
	for _, key := range models.ModuleKeys {
		allowed, err := h.Service.CheckModule(r.Context(), role, key)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		modules[key] = allowed
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"role": role, "modules": modules})
}

// CheckModule is the pre-check for a single module, used before rendering a
// screen the role might not have.
func (h *AccessHandler) CheckModule(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	key := mux.Vars(r)["key"]

	allowed, err := h.Service.CheckModule(r.Context(), role, key)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"module_key": key, "allowed": allowed})
}

// CheckFeature is the per-action pre-check (e.g. customers/convert_lead).
func (h *AccessHandler) CheckFeature(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.GetRoleFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	vars := mux.Vars(r)
	moduleKey, featureKey := vars["module"], vars["feature"]

	allowed, err := h.Service.CheckFeature(r.Context(), role, moduleKey, featureKey)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"module_key":  moduleKey,
		"feature_key": featureKey,
		"allowed":     allowed,
	})
}

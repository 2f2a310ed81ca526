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

type CredentialHandler struct {
	Service *services.CredentialService
}

func NewCredentialHandler(s *services.CredentialService) *CredentialHandler {
	return &CredentialHandler{Service: s}
}

func (h *CredentialHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cred, err := h.Service.CreateCredential(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, cred)
}

func (h *CredentialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	cred, err := h.Service.GetCredential(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, cred)
}

func (h *CredentialHandler) List(w http.ResponseWriter, r *http.Request) {
	p := utils.PageFromQuery(r)
	customerID, _ := strconv.Atoi(r.URL.Query().Get("customer_id"))
	typeID, _ := strconv.Atoi(r.URL.Query().Get("credential_type_id"))

	creds, total, err := h.Service.ListCredentials(r.Context(), customerID, typeID, p.Limit(), p.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, total, p, creds))
}

// ListByCustomer returns every credential stored for one customer.
func (h *CredentialHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, _ := strconv.Atoi(mux.Vars(r)["customer_id"])

	creds, err := h.Service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if creds == nil {
		creds = []*models.Credential{}
	}
	utils.JSON(w, http.StatusOK, creds)
}

func (h *CredentialHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.UpdateCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cred, err := h.Service.UpdateCredential(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, cred)
}

func (h *CredentialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCredential(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Credential deleted"})
}

func (h *CredentialHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCredentialTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.Service.CreateCredentialType(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, t)
}

func (h *CredentialHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListCredentialTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if types == nil {
		types = []*models.CredentialType{}
	}
	utils.JSON(w, http.StatusOK, types)
}

func (h *CredentialHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateCredentialTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.Service.UpdateCredentialType(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *CredentialHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteCredentialType(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Credential type deleted"})
}

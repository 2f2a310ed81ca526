package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"ca-backend/internal/middleware"
	"ca-backend/internal/models"
	"ca-backend/internal/services"
	"ca-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// documentSizeLimit caps uploads at 50 MB.
const documentSizeLimit = 50 << 20

type DocumentHandler struct {
	Service *services.DocumentService
}

func NewDocumentHandler(s *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{Service: s}
}

// Upload accepts a multipart form with customer_id, document_type_id and the
// file. Every upload creates a new version.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(documentSizeLimit); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	customerID, _ := strconv.Atoi(r.FormValue("customer_id"))
	documentTypeID, _ := strconv.Atoi(r.FormValue("document_type_id"))

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	uploadedBy, _ := middleware.GetUserIDFromContext(r.Context())

	doc, err := h.Service.Upload(r.Context(), customerID, documentTypeID, uploadedBy,
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, doc)
}

func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	doc, err := h.Service.GetDocument(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, doc)
}

// Download streams the stored file.
func (h *DocumentHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	doc, body, err := h.Service.Download(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer body.Close()

	if doc.ContentType != "" {
		w.Header().Set("Content-Type", doc.ContentType)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	io.Copy(w, body)
}

func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.DocumentFilter{}
	if v := q.Get("customer_id"); v != "" {
		filter.CustomerID, _ = strconv.Atoi(v)
	}
	if v := q.Get("document_type_id"); v != "" {
		filter.DocumentTypeID, _ = strconv.Atoi(v)
	}
	filter.LatestOnly = q.Get("latest") == "true"
	page := utils.PageFromQuery(r)

	docs, count, err := h.Service.ListDocuments(r.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}
	utils.JSON(w, http.StatusOK, utils.Paginate(r, count, page, docs))
}

func (h *DocumentHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req struct {
		VisibleToCustomer bool `json:"visible_to_customer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.Service.SetVisibility(r.Context(), id, req.VisibleToCustomer)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, doc)
}

func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteDocument(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Document deleted"})
}

func (h *DocumentHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDocumentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.Service.CreateDocumentType(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, t)
}

func (h *DocumentHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.ListDocumentTypes(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if types == nil {
		types = []*models.DocumentType{}
	}
	utils.JSON(w, http.StatusOK, types)
}

func (h *DocumentHandler) UpdateType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	var req models.CreateDocumentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	t, err := h.Service.UpdateDocumentType(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, t)
}

func (h *DocumentHandler) DeleteType(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	if err := h.Service.DeleteDocumentType(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Document type deleted"})
}

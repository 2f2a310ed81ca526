package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"ca-backend/internal/models"
	"ca-backend/internal/services"
	"ca-backend/internal/timeutil"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// CustomerCSV streams the filtered customer list as a CSV download.
func (h *ReportHandler) CustomerCSV(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.CustomerFilter{
		CustomerType: q.Get("customer_type"),
		Source:       q.Get("source"),
		Search:       q.Get("search"),
	}

	data, err := h.Service.CustomerCSV(r.Context(), filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("customers_%s.csv", timeutil.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// CustomerPDF renders a single customer's summary report.
func (h *ReportHandler) CustomerPDF(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	data, err := h.Service.CustomerPDF(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("customer_%d.pdf", id)))
	w.Write(data)
}

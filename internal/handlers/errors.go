package handlers

import (
	"errors"
	"log"
	"net/http"

	"ca-backend/internal/services"
	"ca-backend/pkg/utils"

	"github.com/jackc/pgx/v5"
)

// writeServiceError maps service errors onto HTTP responses. Validation
// failures carry their field map; missing rows become 404s; anything else is
// logged and hidden behind a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		utils.FieldErrors(w, ve.Fields)
		return
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, services.ErrNotFound) {
		utils.Error(w, http.StatusNotFound, "Record not found")
		return
	}
	log.Printf("[API] Internal error: %v", err)
	utils.Error(w, http.StatusInternalServerError, "Internal server error")
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ca-backend/internal/middleware"
	"ca-backend/internal/services"
	"ca-backend/pkg/utils"
)

// TOTPHandler manages authenticator app enrolment for the logged-in user.
type TOTPHandler struct {
	Service *services.TOTPService
	Users   *services.UserService
}

func NewTOTPHandler(s *services.TOTPService, users *services.UserService) *TOTPHandler {
	return &TOTPHandler{Service: s, Users: users}
}

func (h *TOTPHandler) Setup(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	user, err := h.Users.GetUser(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	setup, err := h.Service.GenerateSetup(r.Context(), user)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, setup)
}

func (h *TOTPHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.Service.Confirm(r.Context(), userID, req.Code)
	if errors.Is(err, services.ErrInvalidTOTPCode) {
		utils.Error(w, http.StatusBadRequest, "Invalid verification code")
		return
	}
	if errors.Is(err, services.ErrNoTOTPSecret) {
		utils.Error(w, http.StatusBadRequest, "2FA setup has not been started")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Two-factor authentication enabled"})
}

func (h *TOTPHandler) Disable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.Service.Disable(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Two-factor authentication disabled"})
}

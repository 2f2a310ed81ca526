package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"ca-backend/internal/auth"
	"ca-backend/internal/middleware"
	"ca-backend/internal/models"
	"ca-backend/internal/services"
	"ca-backend/pkg/utils"
)

type AuthHandler struct {
	Users      *services.UserService
	TOTP       *services.TOTPService
	JWTManager *auth.JWTManager
}

func NewAuthHandler(users *services.UserService, totp *services.TOTPService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{Users: users, TOTP: totp, JWTManager: jwtManager}
}

// clientIP prefers the forwarded address set by the reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Users.Signup(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Users.Login(r.Context(), &req, clientIP(r), r.UserAgent())
	if errors.Is(err, services.ErrTOTPRequired) {
		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"requires_2fa": true,
			"temp_token":   resp.Token,
		})
		return
	}
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Verify2FA finishes a 2FA login: temp token plus a valid code yields the
// full session token.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TempToken string `json:"temp_token"`
		Code      string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	claims, err := h.JWTManager.ValidateTempToken(req.TempToken)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid or expired login session")
		return
	}

	if err := h.TOTP.Verify(r.Context(), claims.UserID, req.Code); err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid verification code")
		return
	}

	resp, err := h.Users.CompleteLogin(r.Context(), claims.UserID, clientIP(r), r.UserAgent())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's own record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
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
	utils.JSON(w, http.StatusOK, user)
}

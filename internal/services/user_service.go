package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"ca-backend/internal/auth"
	"ca-backend/internal/mail"
	"ca-backend/internal/models"
	"ca-backend/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTOTPRequired signals that the password was correct but the account has
// 2FA enabled, so the login must finish with a code verification.
var ErrTOTPRequired = errors.New("totp verification required")

var userRoles = []string{"admin", "manager", "staff"}

type UserService struct {
	Repo       *repositories.UserRepository
	LogRepo    *repositories.LoginLogRepository
	JWTManager *auth.JWTManager
	Mailer     mail.Sender
}

func NewUserService(repo *repositories.UserRepository, logRepo *repositories.LoginLogRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{Repo: repo, LogRepo: logRepo, JWTManager: jwtManager}
}

// SetMailer enables the welcome email on signup.
func (s *UserService) SetMailer(m mail.Sender) {
	s.Mailer = m
}

func validRole(role string) bool {
	for _, r := range userRoles {
		if role == r {
			return true
		}
	}
	return false
}

func (s *UserService) Signup(ctx context.Context, req *models.SignupRequest) (*models.LoginResponse, error) {
	fields := map[string]string{}
	if req.Name == "" {
		fields["name"] = "name is required"
	}
	if req.Email == "" || !emailPattern.MatchString(req.Email) {
		fields["email"] = "a valid email is required"
	}
	if len(req.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	role := req.Role
	if role == "" {
		role = "staff"
	}
	if !validRole(role) {
		fields["role"] = "role must be admin, manager or staff"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if existing, _ := s.Repo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, NewValidationError("email", "a user with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.Mailer != nil {
		body := fmt.Sprintf("<p>Hi %s,</p><p>Your account has been created. Sign in with this email address to get started.</p>", user.Name)
		if err := s.Mailer.Send(user.Email, user.Name, "Your account is ready", body); err != nil {
			log.Printf("[Auth] Welcome email to %s failed: %v", user.Email, err)
		}
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{Token: token, User: user}, nil
}

// recordLogin is best effort; a logging failure never blocks the login.
func (s *UserService) recordLogin(ctx context.Context, userID *int, email string, success bool, ip, userAgent string) {
	entry := &models.LoginLog{
		UserID:    userID,
		Email:     email,
		Success:   success,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.LogRepo.Create(ctx, entry); err != nil {
		log.Printf("[Auth] Failed to record login attempt for %s: %v", email, err)
	}
}

// Login authenticates a user. When the account has 2FA enabled the returned
// token is a short-lived pending token and the error is ErrTOTPRequired; the
// caller must complete the login with VerifyLogin2FA.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest, ip, userAgent string) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, NewValidationError("email", "email and password are required")
	}

	user, err := s.Repo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.recordLogin(ctx, nil, req.Email, false, ip, userAgent)
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.recordLogin(ctx, &user.ID, req.Email, false, ip, userAgent)
		return nil, ErrInvalidCredentials
	}

	if user.TOTPEnabled {
		tempToken, err := s.JWTManager.GenerateTempToken(user)
		if err != nil {
			return nil, err
		}
		return &models.LoginResponse{Token: tempToken, User: user}, ErrTOTPRequired
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.recordLogin(ctx, &user.ID, req.Email, true, ip, userAgent)
	return &models.LoginResponse{Token: token, User: user}, nil
}

// CompleteLogin issues the full token after a successful 2FA verification.
func (s *UserService) CompleteLogin(ctx context.Context, userID int, ip, userAgent string) (*models.LoginResponse, error) {
	user, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	s.recordLogin(ctx, &user.ID, user.Email, true, ip, userAgent)
	return &models.LoginResponse{Token: token, User: user}, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		if !emailPattern.MatchString(req.Email) {
			return nil, NewValidationError("email", "invalid email address")
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		if !validRole(req.Role) {
			return nil, NewValidationError("role", "role must be admin, manager or staff")
		}
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *UserService) ListLoginLogs(ctx context.Context, limit, offset int) ([]*models.LoginLog, int, error) {
	return s.LogRepo.List(ctx, limit, offset)
}

package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"ca-backend/internal/models"
	"ca-backend/internal/repositories"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "CA Office"

var (
	ErrInvalidTOTPCode = errors.New("invalid verification code")
	ErrNoTOTPSecret    = errors.New("2FA setup has not been started")
)

// TOTPSetupResponse carries the provisioning data for an authenticator app.
type TOTPSetupResponse struct {
	Secret      string `json:"secret"`
	QRCode      string `json:"qr_code"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

type TOTPService struct {
	UserRepo *repositories.UserRepository
	Repo     *repositories.TOTPRepository
}

func NewTOTPService(userRepo *repositories.UserRepository, repo *repositories.TOTPRepository) *TOTPService {
	return &TOTPService{UserRepo: userRepo, Repo: repo}
}

// GenerateSetup creates a provisional TOTP secret and a QR code for the
// user's authenticator app. The secret stays provisional until Confirm
// verifies a code generated from it.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Save(ctx, &models.UserTOTP{UserID: user.ID, Secret: key.Secret()}); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// Confirm verifies a code against the provisional secret and enables 2FA.
func (s *TOTPService) Confirm(ctx context.Context, userID int, code string) error {
	record, err := s.Repo.Get(ctx, userID)
	if err != nil {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, record.Secret) {
		return ErrInvalidTOTPCode
	}
	if err := s.Repo.Confirm(ctx, userID); err != nil {
		return err
	}
	return s.UserRepo.SetTOTPEnabled(ctx, userID, true)
}

// Verify checks a login code for a user with confirmed 2FA.
func (s *TOTPService) Verify(ctx context.Context, userID int, code string) error {
	record, err := s.Repo.Get(ctx, userID)
	if err != nil || !record.Confirmed {
		return ErrNoTOTPSecret
	}
	if !totp.Validate(code, record.Secret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

// Disable removes the secret and turns 2FA off for the user.
func (s *TOTPService) Disable(ctx context.Context, userID int) error {
	if err := s.Repo.Delete(ctx, userID); err != nil {
		return err
	}
	return s.UserRepo.SetTOTPEnabled(ctx, userID, false)
}

package services

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"ca-backend/internal/auth"
	"ca-backend/internal/mail"
	"ca-backend/internal/models"
)

var (
	emailPattern   = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	panPattern     = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	aadhaarPattern = regexp.MustCompile(`^\d{12}$`)
)

const searchResultLimit = 10

// CustomerStore is the repository surface the customer service needs.
type CustomerStore interface {
	Create(ctx context.Context, c *models.Customer) error
	Get(ctx context.Context, id int) (*models.Customer, error)
	List(ctx context.Context, f models.CustomerFilter, limit, offset int) ([]*models.Customer, int, error)
	SearchByEmail(ctx context.Context, query string, limit int) ([]*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id int) error
}

type CustomerService struct {
	Repo   CustomerStore
	Mailer mail.Sender
}

func NewCustomerService(repo CustomerStore) *CustomerService {
	return &CustomerService{Repo: repo}
}

// SetMailer enables the portal-access notification email.
func (s *CustomerService) SetMailer(m mail.Sender) {
	s.Mailer = m
}

// notifyPortalAccess is best effort. A failed email never fails the write
// that triggered it.
func (s *CustomerService) notifyPortalAccess(c *models.Customer) {
	if s.Mailer == nil || c.Email == "" {
		return
	}
	body := fmt.Sprintf("<p>Hi %s,</p><p>Your client portal access is now active. Sign in with this email address to view your documents and engagements.</p>", c.FirstName)
	if err := s.Mailer.Send(c.Email, c.FirstName+" "+c.LastName, "Your client portal access", body); err != nil {
		log.Printf("[Customer] Portal access email to %s failed: %v", c.Email, err)
	}
}

// validateCustomer applies the requiredness matrix. Leads only need a first
// name and one way to reach them; full customer records need both contact
// channels. A channel partner source relaxes the contact rules entirely,
// the intermediary owns the relationship and must be named instead. Format
// rules apply to whatever was provided in either mode.
func validateCustomer(c *models.Customer) error {
	fields := map[string]string{}

	if c.FirstName == "" {
		fields["first_name"] = "first name is required"
	}

	validType := false
	for _, t := range models.CustomerTypes {
		if c.CustomerType == t {
			validType = true
			break
		}
	}
	if !validType {
		fields["customer_type"] = fmt.Sprintf("invalid customer type %q", c.CustomerType)
	}

	validSource := c.Source == ""
	for _, s := range models.CustomerSources {
		if c.Source == s {
			validSource = true
			break
		}
	}
	if !validSource {
		fields["source"] = fmt.Sprintf("invalid source %q", c.Source)
	}

	if validType {
		if c.IsLead() {
			if c.Source != models.SourceChannelPartner && c.Email == "" && c.Phone == "" {
				fields["email"] = "either email or phone is required"
			}
		} else {
			if c.LastName == "" {
				fields["last_name"] = "last name is required"
			}
			if c.Source == models.SourceChannelPartner {
				if c.ChannelPartner == "" {
					fields["channel_partner"] = "channel partner is required for this source"
				}
			} else {
				if c.Email == "" {
					fields["email"] = "email is required"
				}
				if c.Phone == "" {
					fields["phone"] = "phone is required"
				}
			}
		}
	}

	// A contact channel cannot be marked verified while empty.
	if c.EmailVerified && c.Email == "" {
		fields["email"] = "email is required when marked verified"
	}
	if c.MobileVerified && c.Phone == "" {
		fields["phone"] = "phone is required when marked verified"
	}

	if c.Email != "" && !emailPattern.MatchString(c.Email) {
		fields["email"] = "invalid email address"
	}
	if c.Phone != "" && !phonePattern.MatchString(c.Phone) {
		fields["phone"] = "phone must be exactly 10 digits"
	}
	if c.PANCard != "" && !panPattern.MatchString(c.PANCard) {
		fields["pan_card"] = "PAN must match AAAAA9999A"
	}
	if c.AadhaarCard != "" && !aadhaarPattern.MatchString(c.AadhaarCard) {
		fields["aadhaar_card"] = "Aadhaar must be exactly 12 digits"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	customer := &models.Customer{
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		AadhaarCard:       req.AadhaarCard,
		PANCard:           req.PANCard,
		CustomerType:      req.CustomerType,
		Source:            req.Source,
		ReferredBy:        req.ReferredBy,
		ChannelPartner:    req.ChannelPartner,
		AllowPortalAccess: req.AllowPortalAccess,
		EmailVerified:     req.EmailVerified,
		MobileVerified:    req.MobileVerified,
		AccountOwnerID:    req.AccountOwnerID,
	}
	if customer.CustomerType == "" {
		customer.CustomerType = models.CustomerTypeLead
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if req.AllowPortalAccess {
		if req.Password == "" {
			return nil, NewValidationError("password", "password is required when portal access is enabled")
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		customer.PasswordHash = hash
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	if customer.AllowPortalAccess {
		s.notifyPortalAccess(customer)
	}
	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context, f models.CustomerFilter, limit, offset int) ([]*models.Customer, int, error) {
	return s.Repo.List(ctx, f, limit, offset)
}

// SearchByEmail backs the type-ahead field on lead and customer forms.
// Queries shorter than two characters would match most of the table, so
// they are rejected.
func (s *CustomerService) SearchByEmail(ctx context.Context, query string) ([]*models.Customer, error) {
	if len(query) < 2 {
		return nil, NewValidationError("query", "search query must be at least 2 characters")
	}
	return s.Repo.SearchByEmail(ctx, query, searchResultLimit)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{
		ID:                id,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		AadhaarCard:       req.AadhaarCard,
		PANCard:           req.PANCard,
		CustomerType:      req.CustomerType,
		Source:            req.Source,
		ReferredBy:        req.ReferredBy,
		ChannelPartner:    req.ChannelPartner,
		AllowPortalAccess: req.AllowPortalAccess,
		EmailVerified:     req.EmailVerified,
		MobileVerified:    req.MobileVerified,
		AccountOwnerID:    req.AccountOwnerID,
		PasswordHash:      existing.PasswordHash,
	}
	if customer.CustomerType == "" {
		customer.CustomerType = existing.CustomerType
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return s.Repo.Get(ctx, id)
}

// ConvertLead promotes a lead to a New customer. The edits in the request are
// applied first, the type is forced to New regardless of input, and the
// result must pass full customer validation before anything is written.
func (s *CustomerService) ConvertLead(ctx context.Context, id int, req *models.ConvertLeadRequest) (*models.Customer, error) {
	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsLead() {
		return nil, NewValidationError("customer_type", "record is already a customer")
	}

	customer := &models.Customer{
		ID:                id,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Email:             req.Email,
		Phone:             req.Phone,
		AadhaarCard:       req.AadhaarCard,
		PANCard:           req.PANCard,
		CustomerType:      models.CustomerTypeNew,
		Source:            req.Source,
		ReferredBy:        req.ReferredBy,
		ChannelPartner:    req.ChannelPartner,
		AllowPortalAccess: req.AllowPortalAccess,
		EmailVerified:     existing.EmailVerified,
		MobileVerified:    existing.MobileVerified,
		AccountOwnerID:    req.AccountOwnerID,
		PasswordHash:      existing.PasswordHash,
	}
	if customer.Source == "" {
		customer.Source = existing.Source
	}

	if err := validateCustomer(customer); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	if customer.AllowPortalAccess && !existing.AllowPortalAccess {
		s.notifyPortalAccess(customer)
	}
	return s.Repo.Get(ctx, id)
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

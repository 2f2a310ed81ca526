package services

import (
	"context"
	"testing"

	"ca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCustomerStore struct {
	CreateFn        func(ctx context.Context, c *models.Customer) error
	GetFn           func(ctx context.Context, id int) (*models.Customer, error)
	ListFn          func(ctx context.Context, f models.CustomerFilter, limit, offset int) ([]*models.Customer, int, error)
	SearchByEmailFn func(ctx context.Context, query string, limit int) ([]*models.Customer, error)
	UpdateFn        func(ctx context.Context, c *models.Customer) error
	DeleteFn        func(ctx context.Context, id int) error
}

func (m *mockCustomerStore) Create(ctx context.Context, c *models.Customer) error {
	return m.CreateFn(ctx, c)
}
func (m *mockCustomerStore) Get(ctx context.Context, id int) (*models.Customer, error) {
	return m.GetFn(ctx, id)
}
func (m *mockCustomerStore) List(ctx context.Context, f models.CustomerFilter, limit, offset int) ([]*models.Customer, int, error) {
	return m.ListFn(ctx, f, limit, offset)
}
func (m *mockCustomerStore) SearchByEmail(ctx context.Context, query string, limit int) ([]*models.Customer, error) {
	return m.SearchByEmailFn(ctx, query, limit)
}
func (m *mockCustomerStore) Update(ctx context.Context, c *models.Customer) error {
	return m.UpdateFn(ctx, c)
}
func (m *mockCustomerStore) Delete(ctx context.Context, id int) error {
	return m.DeleteFn(ctx, id)
}

func TestValidateCustomer(t *testing.T) {
	tests := []struct {
		name       string
		customer   models.Customer
		wantErr    bool
		wantFields []string
	}{
		{
			name:     "lead with first name and phone",
			customer: models.Customer{FirstName: "Asha", Phone: "9876543210", CustomerType: models.CustomerTypeLead},
		},
		{
			name:     "lead with email only",
			customer: models.Customer{FirstName: "Asha", Email: "asha@example.com", CustomerType: models.CustomerTypeLead},
		},
		{
			name:       "lead with no contact channel",
			customer:   models.Customer{FirstName: "Asha", CustomerType: models.CustomerTypeLead},
			wantErr:    true,
			wantFields: []string{"email"},
		},
		{
			name:       "missing first name",
			customer:   models.Customer{Phone: "9876543210", CustomerType: models.CustomerTypeLead},
			wantErr:    true,
			wantFields: []string{"first_name"},
		},
		{
			name: "new customer requires last name email and phone",
			customer: models.Customer{
				FirstName:    "Asha",
				CustomerType: models.CustomerTypeNew,
			},
			wantErr:    true,
			wantFields: []string{"last_name", "email", "phone"},
		},
		{
			name: "new customer fully specified",
			customer: models.Customer{
				FirstName:    "Asha",
				LastName:     "Rao",
				Email:        "asha@example.com",
				Phone:        "9876543210",
				CustomerType: models.CustomerTypeNew,
			},
		},
		{
			name: "channel partner source relaxes contact requiredness",
			customer: models.Customer{
				FirstName:      "Asha",
				LastName:       "Rao",
				CustomerType:   models.CustomerTypeActive,
				Source:         models.SourceChannelPartner,
				ChannelPartner: "Mehta & Co",
			},
		},
		{
			name: "channel partner lead needs no contact channel",
			customer: models.Customer{
				FirstName:    "Asha",
				CustomerType: models.CustomerTypeLead,
				Source:       models.SourceChannelPartner,
			},
		},
		{
			name: "channel partner source requires partner name",
			customer: models.Customer{
				FirstName:    "Asha",
				LastName:     "Rao",
				Phone:        "9876543210",
				CustomerType: models.CustomerTypeActive,
				Source:       models.SourceChannelPartner,
			},
			wantErr:    true,
			wantFields: []string{"channel_partner"},
		},
		{
			name: "email verified requires email",
			customer: models.Customer{
				FirstName:     "Asha",
				Phone:         "9876543210",
				CustomerType:  models.CustomerTypeLead,
				EmailVerified: true,
			},
			wantErr:    true,
			wantFields: []string{"email"},
		},
		{
			name: "mobile verified requires phone",
			customer: models.Customer{
				FirstName:      "Asha",
				Email:          "asha@example.com",
				CustomerType:   models.CustomerTypeLead,
				MobileVerified: true,
			},
			wantErr:    true,
			wantFields: []string{"phone"},
		},
		{
			name: "verified flags with both channels present",
			customer: models.Customer{
				FirstName:      "Asha",
				Email:          "asha@example.com",
				Phone:          "9876543210",
				CustomerType:   models.CustomerTypeLead,
				EmailVerified:  true,
				MobileVerified: true,
			},
		},
		{
			name:       "invalid customer type",
			customer:   models.Customer{FirstName: "Asha", Phone: "9876543210", CustomerType: "Prospect"},
			wantErr:    true,
			wantFields: []string{"customer_type"},
		},
		{
			name:       "invalid source",
			customer:   models.Customer{FirstName: "Asha", Phone: "9876543210", CustomerType: models.CustomerTypeLead, Source: "Billboard"},
			wantErr:    true,
			wantFields: []string{"source"},
		},
		{
			name:       "malformed email",
			customer:   models.Customer{FirstName: "Asha", Email: "not-an-email", CustomerType: models.CustomerTypeLead},
			wantErr:    true,
			wantFields: []string{"email"},
		},
		{
			name:       "phone must be ten digits",
			customer:   models.Customer{FirstName: "Asha", Phone: "12345", CustomerType: models.CustomerTypeLead},
			wantErr:    true,
			wantFields: []string{"phone"},
		},
		{
			name: "malformed PAN",
			customer: models.Customer{
				FirstName: "Asha", Phone: "9876543210",
				CustomerType: models.CustomerTypeLead, PANCard: "ABC123",
			},
			wantErr:    true,
			wantFields: []string{"pan_card"},
		},
		{
			name: "valid PAN and Aadhaar",
			customer: models.Customer{
				FirstName: "Asha", Phone: "9876543210",
				CustomerType: models.CustomerTypeLead,
				PANCard:      "ABCDE1234F", AadhaarCard: "123456789012",
			},
		},
		{
			name: "malformed Aadhaar",
			customer: models.Customer{
				FirstName: "Asha", Phone: "9876543210",
				CustomerType: models.CustomerTypeLead, AadhaarCard: "12345",
			},
			wantErr:    true,
			wantFields: []string{"aadhaar_card"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCustomer(&tt.customer)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve, ok := AsValidationError(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			for _, field := range tt.wantFields {
				assert.Contains(t, ve.Fields, field)
			}
		})
	}
}

func TestCreateCustomer_DefaultsToLead(t *testing.T) {
	var created *models.Customer
	store := &mockCustomerStore{
		CreateFn: func(ctx context.Context, c *models.Customer) error {
			created = c
			c.ID = 42
			return nil
		},
	}
	svc := NewCustomerService(store)

	customer, err := svc.CreateCustomer(context.Background(), &models.CreateCustomerRequest{
		FirstName: "Asha",
		Phone:     "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerTypeLead, created.CustomerType)
	assert.Equal(t, 42, customer.ID)
}

func TestCreateCustomer_PortalAccessRequiresPassword(t *testing.T) {
	store := &mockCustomerStore{
		CreateFn: func(ctx context.Context, c *models.Customer) error { return nil },
	}
	svc := NewCustomerService(store)

	_, err := svc.CreateCustomer(context.Background(), &models.CreateCustomerRequest{
		FirstName:         "Asha",
		Phone:             "9876543210",
		AllowPortalAccess: true,
	})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "password")
}

func TestCreateCustomer_HashesPassword(t *testing.T) {
	var created *models.Customer
	store := &mockCustomerStore{
		CreateFn: func(ctx context.Context, c *models.Customer) error {
			created = c
			return nil
		},
	}
	svc := NewCustomerService(store)

	_, err := svc.CreateCustomer(context.Background(), &models.CreateCustomerRequest{
		FirstName:         "Asha",
		Phone:             "9876543210",
		AllowPortalAccess: true,
		Password:          "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
}

func TestSearchByEmail_RejectsShortQuery(t *testing.T) {
	svc := NewCustomerService(&mockCustomerStore{})

	_, err := svc.SearchByEmail(context.Background(), "a")
	require.Error(t, err)
	_, ok := AsValidationError(err)
	assert.True(t, ok)
}

func TestSearchByEmail_PassesQueryAndLimit(t *testing.T) {
	store := &mockCustomerStore{
		SearchByEmailFn: func(ctx context.Context, query string, limit int) ([]*models.Customer, error) {
			assert.Equal(t, "asha", query)
			assert.Equal(t, searchResultLimit, limit)
			return []*models.Customer{{ID: 1}}, nil
		},
	}
	svc := NewCustomerService(store)

	results, err := svc.SearchByEmail(context.Background(), "asha")
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestUpdateCustomer_PreservesPasswordHashAndType(t *testing.T) {
	existing := &models.Customer{
		ID: 7, FirstName: "Asha", LastName: "Rao",
		Email: "asha@example.com", Phone: "9876543210",
		CustomerType: models.CustomerTypeActive,
		PasswordHash: "existing-hash",
	}
	var updated *models.Customer
	store := &mockCustomerStore{
		GetFn: func(ctx context.Context, id int) (*models.Customer, error) {
			if updated != nil {
				return updated, nil
			}
			return existing, nil
		},
		UpdateFn: func(ctx context.Context, c *models.Customer) error {
			updated = c
			return nil
		},
	}
	svc := NewCustomerService(store)

	_, err := svc.UpdateCustomer(context.Background(), 7, &models.UpdateCustomerRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, "existing-hash", updated.PasswordHash)
	assert.Equal(t, models.CustomerTypeActive, updated.CustomerType)
}

func TestConvertLead_ForcesNewType(t *testing.T) {
	existing := &models.Customer{
		ID: 9, FirstName: "Asha",
		Phone:          "9876543210",
		CustomerType:   models.CustomerTypeLead,
		Source:         "Referral",
		EmailVerified:  true,
		MobileVerified: true,
		PasswordHash:   "hash",
	}
	var updated *models.Customer
	store := &mockCustomerStore{
		GetFn: func(ctx context.Context, id int) (*models.Customer, error) {
			if updated != nil {
				return updated, nil
			}
			return existing, nil
		},
		UpdateFn: func(ctx context.Context, c *models.Customer) error {
			updated = c
			return nil
		},
	}
	svc := NewCustomerService(store)

	result, err := svc.ConvertLead(context.Background(), 9, &models.ConvertLeadRequest{
		FirstName: "Asha",
		LastName:  "Rao",
		Email:     "asha@example.com",
		Phone:     "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CustomerTypeNew, result.CustomerType)
	assert.Equal(t, "Referral", updated.Source, "source should default to the existing record")
	assert.True(t, updated.EmailVerified, "verification flags carry over")
	assert.True(t, updated.MobileVerified)
	assert.Equal(t, "hash", updated.PasswordHash)
}

func TestConvertLead_RejectsNonLead(t *testing.T) {
	store := &mockCustomerStore{
		GetFn: func(ctx context.Context, id int) (*models.Customer, error) {
			return &models.Customer{ID: 9, CustomerType: models.CustomerTypeActive}, nil
		},
	}
	svc := NewCustomerService(store)

	_, err := svc.ConvertLead(context.Background(), 9, &models.ConvertLeadRequest{})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "customer_type")
}

func TestConvertLead_ValidatesBeforeWrite(t *testing.T) {
	store := &mockCustomerStore{
		GetFn: func(ctx context.Context, id int) (*models.Customer, error) {
			return &models.Customer{ID: 9, FirstName: "Asha", Phone: "9876543210", CustomerType: models.CustomerTypeLead}, nil
		},
		UpdateFn: func(ctx context.Context, c *models.Customer) error {
			t.Fatal("update must not be called when validation fails")
			return nil
		},
	}
	svc := NewCustomerService(store)

	// Missing last name fails full customer validation after the type flip.
	_, err := svc.ConvertLead(context.Background(), 9, &models.ConvertLeadRequest{
		FirstName: "Asha",
		Email:     "asha@example.com",
		Phone:     "9876543210",
	})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "last_name")
}

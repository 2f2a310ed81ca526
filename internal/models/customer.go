package models

import "time"

// Customer types. Lead and Disqualified Lead records use relaxed contact
// requiredness; the other three are full customer records.
const (
	CustomerTypeLead         = "Lead"
	CustomerTypeDisqualified = "Disqualified Lead"
	CustomerTypeNew          = "New"
	CustomerTypeActive       = "Active"
	CustomerTypeDormant      = "Dormant"
)

// SourceChannelPartner relaxes the Email/Phone requiredness rules because the
// intermediary owns the relationship.
const SourceChannelPartner = "Channel Partner/Relative"

var CustomerTypes = []string{
	CustomerTypeLead,
	CustomerTypeDisqualified,
	CustomerTypeNew,
	CustomerTypeActive,
	CustomerTypeDormant,
}

var CustomerSources = []string{
	"Existing",
	"Referral",
	"Google Ads",
	"Website",
	"Online Portal",
	SourceChannelPartner,
	"Others",
}

type Customer struct {
	ID                int       `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	AadhaarCard       string    `json:"aadhaar_card"`
	PANCard           string    `json:"pan_card"`
	CustomerType      string    `json:"customer_type"`
	Source            string    `json:"source"`
	ReferredBy        string    `json:"referred_by"`
	ChannelPartner    string    `json:"channel_partner"`
	AllowPortalAccess bool      `json:"allow_portal_access"`
	EmailVerified     bool      `json:"email_verified"`
	MobileVerified    bool      `json:"mobile_verified"`
	PasswordHash      string    `json:"-"`
	AccountOwnerID    *int      `json:"account_owner_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// IsLead reports whether the record is still in the lead pipeline.
func (c *Customer) IsLead() bool {
	return c.CustomerType == CustomerTypeLead || c.CustomerType == CustomerTypeDisqualified
}

// CreateCustomerRequest represents the request body for creating a customer
// or a lead. Password is only meaningful with AllowPortalAccess.
type CreateCustomerRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	AadhaarCard       string `json:"aadhaar_card"`
	PANCard           string `json:"pan_card"`
	CustomerType      string `json:"customer_type"`
	Source            string `json:"source"`
	ReferredBy        string `json:"referred_by"`
	ChannelPartner    string `json:"channel_partner"`
	AllowPortalAccess bool   `json:"allow_portal_access"`
	EmailVerified     bool   `json:"email_verified"`
	MobileVerified    bool   `json:"mobile_verified"`
	Password          string `json:"password"`
	AccountOwnerID    *int   `json:"account_owner_id"`
}

// UpdateCustomerRequest represents the request body for updating a customer
type UpdateCustomerRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	AadhaarCard       string `json:"aadhaar_card"`
	PANCard           string `json:"pan_card"`
	CustomerType      string `json:"customer_type"`
	Source            string `json:"source"`
	ReferredBy        string `json:"referred_by"`
	ChannelPartner    string `json:"channel_partner"`
	AllowPortalAccess bool   `json:"allow_portal_access"`
	EmailVerified     bool   `json:"email_verified"`
	MobileVerified    bool   `json:"mobile_verified"`
	AccountOwnerID    *int   `json:"account_owner_id"`
}

// ConvertLeadRequest carries the edits made during lead conversion. The
// customer type is forced to New server-side regardless of input.
type ConvertLeadRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	AadhaarCard       string `json:"aadhaar_card"`
	PANCard           string `json:"pan_card"`
	Source            string `json:"source"`
	ReferredBy        string `json:"referred_by"`
	ChannelPartner    string `json:"channel_partner"`
	AllowPortalAccess bool   `json:"allow_portal_access"`
	AccountOwnerID    *int   `json:"account_owner_id"`
}

// CustomerFilter narrows paginated customer listings.
type CustomerFilter struct {
	CustomerType string
	Source       string
	Search       string // matches name or email
}

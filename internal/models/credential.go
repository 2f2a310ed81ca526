package models

import "time"

type CredentialType struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateCredentialTypeRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Credential is a stored third-party portal login for a customer
// (income tax portal, GST portal and the like), scoped by type.
type Credential struct {
	ID               int       `json:"id"`
	CustomerID       int       `json:"customer_id"`
	CredentialTypeID int       `json:"credential_type_id"`
	Username         string    `json:"username"`
	Password         string    `json:"password"`
	OTPEmail         string    `json:"otp_email"`
	OTPPhone         string    `json:"otp_phone"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type CreateCredentialRequest struct {
	CustomerID       int    `json:"customer_id"`
	CredentialTypeID int    `json:"credential_type_id"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	OTPEmail         string `json:"otp_email"`
	OTPPhone         string `json:"otp_phone"`
	Notes            string `json:"notes"`
}

type UpdateCredentialRequest struct {
	CredentialTypeID int    `json:"credential_type_id"`
	Username         string `json:"username"`
	Password         string `json:"password"`
	OTPEmail         string `json:"otp_email"`
	OTPPhone         string `json:"otp_phone"`
	Notes            string `json:"notes"`
}

package models

import "time"

// Process audience values.
const (
	AudienceIndividual = "Individual"
	AudienceBusiness   = "Business"
	AudienceBoth       = "Both"
)

var ProcessAudiences = []string{AudienceIndividual, AudienceBusiness, AudienceBoth}

// Process is a top-level business process owning zero or more SOPs.
type Process struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Audience  string    `json:"audience"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateProcessRequest struct {
	Name     string `json:"name"`
	Audience string `json:"audience"`
	Status   string `json:"status"`
}

// UpdateProcessRequest drives the cascading status workflow. Cascade only
// matters on an Inactive to Active flip: reactivation of dependent SOPs and
// service categories requires the caller's explicit consent.
type UpdateProcessRequest struct {
	Name     string `json:"name"`
	Audience string `json:"audience"`
	Status   string `json:"status"`
	Cascade  bool   `json:"cascade"`
}

// CascadeFailure records one dependent entity that could not be updated
// during status propagation. The loop continues past failures.
type CascadeFailure struct {
	Kind  string `json:"kind"` // "sop" or "service_category"
	ID    int    `json:"id"`
	Error string `json:"error"`
}

// CascadeResult is the structured partial-success report for a status
// propagation run. The committed process update is never rolled back.
type CascadeResult struct {
	SOPsUpdated       int              `json:"sops_updated"`
	CategoriesUpdated int              `json:"categories_updated"`
	Failed            []CascadeFailure `json:"failed"`
}

package models

import "time"

// Module keys known to the access layer. Feature keys are free-form strings
// scoped by module (e.g. customers/convert_lead).
var ModuleKeys = []string{
	"customers",
	"documents",
	"credentials",
	"processes",
	"sops",
	"service_categories",
	"service_agents",
	"service_tickets",
	"reports",
}

// ModuleAccess grants a role access to a module, or to a single feature
// inside a module when FeatureKey is non-empty. Absence of a row means
// denied; the admin role is allowed implicitly.
type ModuleAccess struct {
	ID         int       `json:"id"`
	Role       string    `json:"role"`
	ModuleKey  string    `json:"module_key"`
	FeatureKey string    `json:"feature_key"`
	Allowed    bool      `json:"allowed"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UpsertModuleAccessRequest struct {
	Role       string `json:"role"`
	ModuleKey  string `json:"module_key"`
	FeatureKey string `json:"feature_key"`
	Allowed    bool   `json:"allowed"`
}

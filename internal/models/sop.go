package models

import "time"

// SOP is a standard operating procedure belonging to exactly one Process.
// (Name, Version) is unique across SOPs.
type SOP struct {
	ID        int       `json:"id"`
	ProcessID int       `json:"process_id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateSOPRequest struct {
	ProcessID int    `json:"process_id"`
	Name      string `json:"name"`
	Version   int    `json:"version"`
	Status    string `json:"status"`
}

type UpdateSOPRequest struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
	Status  string `json:"status"`
}

// SOPFilter narrows paginated SOP listings.
type SOPFilter struct {
	ProcessID int
	Status    string
}

package models

import "time"

// ServiceCategory references the SOP its engagements follow. Its status is
// independent of the SOP's but is swept by the process cascade.
type ServiceCategory struct {
	ID        int       `json:"id"`
	SOPID     int       `json:"sop_id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateServiceCategoryRequest struct {
	SOPID  int    `json:"sop_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type UpdateServiceCategoryRequest struct {
	SOPID  int    `json:"sop_id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

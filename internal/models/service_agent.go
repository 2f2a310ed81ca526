package models

import (
	"encoding/json"
	"time"
)

// CategoryIDList normalizes the two wire shapes legacy clients send for
// expert_at: a plain id array ([3,7]) or an object array ([{"id":3},...]).
// Internally it is always a list of service category ids.
type CategoryIDList []int

func (l *CategoryIDList) UnmarshalJSON(b []byte) error {
	var ids []int
	if err := json.Unmarshal(b, &ids); err == nil {
		*l = ids
		return nil
	}
	var objs []struct {
		ID int `json:"id"`
	}
	if err := json.Unmarshal(b, &objs); err != nil {
		return err
	}
	ids = make([]int, 0, len(objs))
	for _, o := range objs {
		ids = append(ids, o.ID)
	}
	*l = ids
	return nil
}

// ServiceAgent is a staff member who works engagements. ExpertAt lists the
// service categories the agent can be assigned to.
type ServiceAgent struct {
	ID                int            `json:"id"`
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	ExpertAt          CategoryIDList `json:"expert_at"`
	Status            string         `json:"status"`
	AllowPortalAccess bool           `json:"allow_portal_access"`
	PasswordHash      string         `json:"-"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type CreateServiceAgentRequest struct {
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	ExpertAt          CategoryIDList `json:"expert_at"`
	Status            string         `json:"status"`
	AllowPortalAccess bool           `json:"allow_portal_access"`
	Password          string         `json:"password"`
}

type UpdateServiceAgentRequest struct {
	FirstName         string         `json:"first_name"`
	LastName          string         `json:"last_name"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone"`
	ExpertAt          CategoryIDList `json:"expert_at"`
	Status            string         `json:"status"`
	AllowPortalAccess bool           `json:"allow_portal_access"`
	Password          string         `json:"password"`
}

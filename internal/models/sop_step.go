package models

import "time"

// Duration units accepted on step input. Storage is always minutes; the two
// source screens disagreed on the unit, so the API takes an explicit one.
const (
	DurationUnitMinutes = "minutes"
	DurationUnitDays    = "days"
)

// SOPStep is one ordered step of a SOP. Sequence is 1-based and contiguous
// within a SOP.
type SOPStep struct {
	ID              int       `json:"id"`
	SOPID           int       `json:"sop_id"`
	Sequence        int       `json:"sequence"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	URL             string    `json:"url"`
	AttachmentKey   string    `json:"attachment_key"`
	AttachmentName  string    `json:"attachment_name"`
	DurationMinutes int       `json:"duration_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateSOPStepRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Duration     int    `json:"duration"`
	DurationUnit string `json:"duration_unit"` // minutes (default) or days
}

type UpdateSOPStepRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	URL          string `json:"url"`
	Duration     int    `json:"duration"`
	DurationUnit string `json:"duration_unit"`
}

// StepOrder is one element of a batch reorder payload. The payload must be a
// complete 1-based contiguous permutation of the SOP's steps.
type StepOrder struct {
	StepID   int `json:"step_id"`
	Sequence int `json:"sequence"`
}

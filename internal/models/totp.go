package models

import "time"

// UserTOTP holds a user's TOTP secret. The secret is provisional until the
// user confirms enrolment with a valid code.
type UserTOTP struct {
	UserID    int       `json:"user_id"`
	Secret    string    `json:"-"`
	Confirmed bool      `json:"confirmed"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "strings"

// Canonical status values shared by processes, SOPs, service categories and
// service agents. Older clients send lowercase variants for service
// categories, so inputs are normalized case-insensitively at the API boundary.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// NormalizeStatus maps any casing of active/inactive onto the canonical
// values. The second return is false for anything else.
func NormalizeStatus(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive, true
	case "inactive":
		return StatusInactive, true
	}
	return "", false
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"Active", StatusActive, true},
		{"active", StatusActive, true},
		{"ACTIVE", StatusActive, true},
		{"  inactive ", StatusInactive, true},
		{"Inactive", StatusInactive, true},
		{"archived", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeStatus(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestCustomerIsLead(t *testing.T) {
	assert.True(t, (&Customer{CustomerType: CustomerTypeLead}).IsLead())
	assert.True(t, (&Customer{CustomerType: CustomerTypeDisqualified}).IsLead())
	assert.False(t, (&Customer{CustomerType: CustomerTypeNew}).IsLead())
	assert.False(t, (&Customer{CustomerType: CustomerTypeActive}).IsLead())
}

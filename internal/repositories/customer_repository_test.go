package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"asha", "asha"},
		{"__", `\_\_`},
		{"50%", `50\%`},
		{`a\b`, `a\\b`},
		{`_%\`, `\_\%\\`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.input), "input %q", tt.input)
	}
}

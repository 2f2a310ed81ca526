package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatIST(t *testing.T) {
	// 2026-03-31 20:30 UTC is 2026-04-01 02:00 IST, so the date rolls over.
	utc := time.Date(2026, time.March, 31, 20, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-04-01", FormatIST(utc, DateLayout))
	assert.Equal(t, "01 Apr 2026, 02:00 AM", FormatIST(utc, DisplayLayout))
}

func TestNowIsIST(t *testing.T) {
	assert.Equal(t, IST, Now().Location())
}

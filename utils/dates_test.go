package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want DateWindow
	}{
		{"leap february", time.Date(2024, 2, 14, 10, 0, 0, 0, time.UTC), DateWindow{"2024-02-01", "2024-02-29"}},
		{"plain february", time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), DateWindow{"2023-02-01", "2023-02-28"}},
		{"december", time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), DateWindow{"2026-12-01", "2026-12-31"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthWindow(tt.now))
		})
	}
}

func TestYearWindow(t *testing.T) {
	w := YearWindow(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, DateWindow{Start: "2026-01-01", End: "2026-12-31"}, w)
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29"))
	assert.False(t, IsValidDate("10/01/2024"))
	assert.False(t, IsValidDate(""))
}

func TestToday(t *testing.T) {
	assert.Equal(t, "2026-10-14", Today(time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)))
}

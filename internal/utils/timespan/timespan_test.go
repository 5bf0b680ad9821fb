package timespan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ecocomercial/farmops_backend/internal/utils/timespan"
)

func TestCompleted(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"full span", "08:15:00", "10:45:00", "2h 30m"},
		{"same minute", "08:15:00", "08:15:30", "0h 0m"},
		{"minutes floor to whole", "08:00:00", "09:30:59", "1h 30m"},
		{"exact hours", "06:00:00", "14:00:00", "8h 0m"},
		{"missing end", "08:15:00", "", timespan.NotAvailable},
		{"end before start", "10:00:00", "08:00:00", timespan.NotAvailable},
		{"garbage start", "junk", "10:00:00", timespan.NotAvailable},
		{"garbage end", "08:00:00", "later", timespan.NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timespan.Completed(tt.start, tt.end))
		})
	}
}

func TestElapsed(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		date  string
		start string
		want  string
	}{
		{"same day", "2025-06-10", "08:15:00", "3h 45m"},
		{"spans midnight", "2025-06-09", "22:00:00", "14h 0m"},
		{"start in the future", "2025-06-10", "13:00:00", timespan.NotAvailable},
		{"garbage date", "sometime", "08:15:00", timespan.NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timespan.Elapsed(tt.date, tt.start, now))
		})
	}
}

package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"utc with millis", "2025-03-01T10:20:30.123Z", time.Date(2025, 3, 1, 10, 20, 30, 123_000_000, time.UTC)},
		{"offset", "2025-03-01T12:00:00+02:00", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)},
		{"no zone", "2025-03-01T10:20:30", time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC)},
		{"minutes only", "2025-03-01T10:20", time.Date(2025, 3, 1, 10, 20, 0, 0, time.UTC)},
		{"date only", "2025-03-01", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"surrounding space", "  2025-03-01  ", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"minutes with zulu", "2025-12-31T23:59Z", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)},
		{"minutes with offset", "2025-12-31T23:59+02:00", time.Date(2025, 12, 31, 21, 59, 0, 0, time.UTC)},
		{"minutes with compact offset", "2025-12-31T23:59-0130", time.Date(2026, 1, 1, 1, 29, 0, 0, time.UTC)},
		{"compact offset", "2025-12-31T23:59:59+0200", time.Date(2025, 12, 31, 21, 59, 59, 0, time.UTC)},
		{"compact offset with millis", "2025-12-31T23:59:59.123+0200", time.Date(2025, 12, 31, 21, 59, 59, 123_000_000, time.UTC)},
		{"millis with offset", "2025-12-31T23:59:59.123+02:00", time.Date(2025, 12, 31, 21, 59, 59, 123_000_000, time.UTC)},
		{"basic", "20251231T235959Z", time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"basic with offset", "20251231T235959+0200", time.Date(2025, 12, 31, 21, 59, 59, 0, time.UTC)},
		{"basic with fraction", "20251231T235959.5Z", time.Date(2025, 12, 31, 23, 59, 59, 500_000_000, time.UTC)},
		{"basic no zone", "20251231T235959", time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"basic minutes", "20251231T2359Z", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)},
		{"basic date", "20251231", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateTime(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseDateTime_Invalid(t *testing.T) {
	for _, input := range []string{"", "   ", "not-a-date", "2025-13-01", "2025-02-30T00:00:00Z", "01/03/2025", "2025-12-31T23:59+2", "20251331T000000Z"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDateTime(input)
			assert.ErrorIs(t, err, ErrInvalidDateTime)
		})
	}
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" buy milk "))
}

package validator

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDateTime = errors.New("not an ISO-8601 date-time")

// dateTimeLayouts lists the ISO-8601 shapes clients send, most specific first.
// Values without an offset are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04",
	"2006-01-02",
	// basic format
	"20060102T150405.999999999Z0700",
	"20060102T150405.999999999",
	"20060102T1504Z0700",
	"20060102",
}

// IsBlank reports whether s is empty or whitespace only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ParseDateTime parses an ISO-8601 date or date-time into a UTC instant.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDateTime
	}

	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDateTime
}

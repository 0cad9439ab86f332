package request

import (
	"time"

	"github.com/elitemotors/detailing-api/pkg/apperror"
)

// DateLayout is the calendar-date format used in requests and queries
const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date or an RFC 3339 timestamp
func ParseDate(field, raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.NewValidationError([]apperror.FieldError{
		{Field: field, Message: "must be a date in YYYY-MM-DD format"},
	})
}

// ParseOptionalDate returns nil for a nil or empty value
func ParseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

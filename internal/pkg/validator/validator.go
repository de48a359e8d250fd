package validator

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

// ToMap returns field -> message. When a field has several messages the
// first one wins.
func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v))
	for _, err := range v {
		if _, exists := result[err.Field]; !exists {
			result[err.Field] = err.Message
		}
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID reports whether s is a version 7 UUID in canonical form.
func IsValidUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	id, err := uuid.Parse(s)
	return err == nil && id.Version() == 7
}

// IsValidDate parses a YYYY-MM-DD calendar date in UTC.
func IsValidDate(s string) (time.Time, bool) {
	date, err := time.Parse(dateLayout, s)
	return date, err == nil
}

// IsValidMonth parses YYYY-MM and returns the first day of that month.
func IsValidMonth(s string) (time.Time, bool) {
	month, err := time.Parse(monthLayout, s)
	return month, err == nil
}

// IsValidDateTime accepts RFC3339 timestamps, with or without fractional
// seconds.
func IsValidDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	return t, err == nil
}

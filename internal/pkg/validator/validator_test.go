package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty(" \t "))
	assert.False(t, IsEmpty(" abc "))
}

func TestIsValidUUID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", true},
		{"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", true},
		{"123e4567-e89b-12d3-a456-426614174000", false}, // v1
		{"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b", false},
		{"urn:uuid:0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", false},
		{"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidUUID(tt.in), tt.in)
	}
}

func TestIsValidDate(t *testing.T) {
	for _, s := range []string{"2024-02-29", "2000-12-31"} {
		_, ok := IsValidDate(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"2023-02-29", "2023-13-01", "2023/01/01", "01-01-2023", ""} {
		_, ok := IsValidDate(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidMonth(t *testing.T) {
	m, ok := IsValidMonth("2024-05")
	assert.True(t, ok)
	assert.Equal(t, 1, m.Day())

	for _, s := range []string{"2024-13", "2024-5-01", "May 2024", ""} {
		_, ok := IsValidMonth(s)
		assert.False(t, ok, s)
	}
}

func TestIsValidDateTime(t *testing.T) {
	for _, s := range []string{"2024-01-15T10:30:00Z", "2024-01-15T10:30:00+07:00", "2024-01-15T10:30:00.123456Z"} {
		_, ok := IsValidDateTime(s)
		assert.True(t, ok, s)
	}
	for _, s := range []string{"2024-01-15 10:30:00", "2024-01-15", ""} {
		_, ok := IsValidDateTime(s)
		assert.False(t, ok, s)
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "date", Message: "date is required"},
		{Field: "date", Message: "date must be in YYYY-MM-DD format"},
		{Field: "employee_id", Message: "employee_id is required"},
	}

	assert.Equal(t, map[string]string{
		"date":        "date is required",
		"employee_id": "employee_id is required",
	}, errs.ToMap())
	assert.Contains(t, errs.Error(), "employee_id: employee_id is required")
}

package domain

import (
	"strconv"
	"strings"
)

// RequiredText trims s and rejects what is left if it is empty.
// Length limits are declared on the request structs.
func RequiredText(field, label, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", Invalid(field, label+" is required")
	}
	return s, nil
}

// ParseID parses a positive integer identifier.
func ParseID(field, label, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, Invalid(field, "Invalid "+label)
	}
	return id, nil
}

// ParseDueDate accepts YYYY-MM-DD. An empty string means no due date.
func ParseDueDate(field, raw string) (*Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := ParseDate(raw)
	if err != nil {
		return nil, Invalid(field, "Due date must be in YYYY-MM-DD format")
	}
	return &d, nil
}

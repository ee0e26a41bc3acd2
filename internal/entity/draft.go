// Package entity holds the per-collection client state: the list
// snapshot, the filters over it and the editable drafts behind the
// create/edit forms.
package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Input layouts accepted by date fields.
const (
	InputDateTimeLayout = "2006-01-02 15:04"
	InputDateLayout     = "2006-01-02"
)

// ParseDateTime parses a date-time or a bare date in local time.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{InputDateTimeLayout, InputDateLayout} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, use YYYY-MM-DD HH:MM", s)
}

// parseOptionalDateTime returns nil for blank input.
func parseOptionalDateTime(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseDateTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// formatInput renders t the way date inputs expect it.
func formatInput(t time.Time) string {
	return t.Local().Format(InputDateTimeLayout)
}

// sameInput reports whether input still shows t unchanged.
func sameInput(input string, t time.Time) bool {
	return strings.TrimSpace(input) == formatInput(t)
}

// ValidateRequired returns a form validator rejecting blank input.
func ValidateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// ValidateDateTime checks a required date-time input.
func ValidateDateTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("date is required")
	}
	_, err := ParseDateTime(s)
	return err
}

// ValidateOptionalDateTime checks a date-time input that may be blank.
func ValidateOptionalDateTime(s string) error {
	_, err := parseOptionalDateTime(s)
	return err
}

// ValidateDuration checks a positive whole number of minutes.
func ValidateDuration(s string) error {
	_, err := parseDuration(s)
	return err
}

func parseDuration(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("duration must be a positive number of minutes")
	}
	return n, nil
}

// identity picks the ID and creation time for a record being built:
// kept from the existing record on edit, fresh otherwise.
func identity(existingID string, existingCreated time.Time, editing bool, newID string, now time.Time) (string, time.Time) {
	if editing {
		return existingID, existingCreated
	}
	return newID, now.UTC()
}

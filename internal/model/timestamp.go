package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are the ISO-8601 forms accepted on input, tried in
// order. Forms without an offset are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z07",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp with or without an offset.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// timestamp decodes any ParseTimestamp form from JSON.
type timestamp struct {
	time.Time
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// optionalTime converts a decoded optional timestamp.
func optionalTime(t *timestamp) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// UnmarshalJSON accepts timestamps with or without an offset.
func (m *Meeting) UnmarshalJSON(data []byte) error {
	type plain Meeting
	aux := struct {
		*plain
		Date      timestamp `json:"date"`
		CreatedAt timestamp `json:"createdAt"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Date = aux.Date.Time
	m.CreatedAt = aux.CreatedAt.Time
	return nil
}

// UnmarshalJSON accepts timestamps with or without an offset.
func (t *Todo) UnmarshalJSON(data []byte) error {
	type plain Todo
	aux := struct {
		*plain
		DueDate     *timestamp `json:"dueDate"`
		CompletedAt *timestamp `json:"completedAt"`
		CreatedAt   timestamp  `json:"createdAt"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.DueDate = optionalTime(aux.DueDate)
	t.CompletedAt = optionalTime(aux.CompletedAt)
	t.CreatedAt = aux.CreatedAt.Time
	return nil
}

// UnmarshalJSON accepts timestamps with or without an offset.
func (l *Learning) UnmarshalJSON(data []byte) error {
	type plain Learning
	aux := struct {
		*plain
		CompletedAt *timestamp `json:"completedAt"`
		CreatedAt   timestamp  `json:"createdAt"`
	}{plain: (*plain)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.CompletedAt = optionalTime(aux.CompletedAt)
	l.CreatedAt = aux.CreatedAt.Time
	return nil
}

package model

import (
	"errors"
	"strings"
	"time"
)

// DefaultMeetingDuration is the duration in minutes given to new meetings.
const DefaultMeetingDuration = 30

// Meeting is a scheduled conversation with free-text attendees and notes.
type Meeting struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Duration    int       `json:"duration" db:"duration"`
	Attendees   *string   `json:"attendees" db:"attendees"`
	Notes       *string   `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"createdAt" db:"createdAt"`
}

// Normalized returns a copy with defaults applied and blank optional
// fields cleared. Times are stored in UTC; ID and CreatedAt are left
// untouched.
func (m Meeting) Normalized(_ time.Time) Meeting {
	m.Title = strings.TrimSpace(m.Title)
	m.Description = normalizeOptional(m.Description)
	m.Attendees = normalizeOptional(m.Attendees)
	m.Notes = normalizeOptional(m.Notes)
	m.Date = m.Date.UTC()
	if m.Duration <= 0 {
		m.Duration = DefaultMeetingDuration
	}
	return m
}

// Validate reports the first missing required field.
func (m Meeting) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return errors.New("title is required")
	}
	if m.Date.IsZero() {
		return errors.New("date is required")
	}
	if m.Duration < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}

// WithID returns a copy carrying id.
func (m Meeting) WithID(id string) Meeting {
	m.ID = id
	return m
}

// WithCreatedAt returns a copy carrying the creation time.
func (m Meeting) WithCreatedAt(t time.Time) Meeting {
	m.CreatedAt = t
	return m
}

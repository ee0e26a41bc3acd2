package entity

import (
	"strconv"
	"time"

	"github.com/nhle/meeting-tracker/internal/model"
)

// MeetingDraft holds the editable meeting fields bound to the form.
// Keep it on the heap: form inputs write through pointers to its fields.
type MeetingDraft struct {
	Title       string
	Description string
	Date        string
	Duration    string
	Attendees   string
	Notes       string
}

// NewMeetingDraft returns a draft with default values.
func NewMeetingDraft() *MeetingDraft {
	d := &MeetingDraft{}
	d.Reset()
	return d
}

// Reset restores the defaults.
func (d *MeetingDraft) Reset() {
	*d = MeetingDraft{Duration: strconv.Itoa(model.DefaultMeetingDuration)}
}

// Load fills the draft from an existing meeting.
func (d *MeetingDraft) Load(m model.Meeting) {
	*d = MeetingDraft{
		Title:       m.Title,
		Description: model.Value(m.Description),
		Date:        formatInput(m.Date),
		Duration:    strconv.Itoa(m.Duration),
		Attendees:   model.Value(m.Attendees),
		Notes:       model.Value(m.Notes),
	}
	if m.Date.IsZero() {
		d.Date = ""
	}
	if m.Duration <= 0 {
		d.Duration = strconv.Itoa(model.DefaultMeetingDuration)
	}
}

// Build turns the draft into a meeting ready to store. existing is the
// meeting being edited, or nil for a new one.
func (d *MeetingDraft) Build(existing *model.Meeting, now time.Time, newID string) (model.Meeting, error) {
	var m model.Meeting
	if existing != nil {
		m = *existing
	}
	m.ID, m.CreatedAt = identity(m.ID, m.CreatedAt, existing != nil, newID, now)

	if existing == nil || !sameInput(d.Date, existing.Date) {
		date, err := ParseDateTime(d.Date)
		if err != nil {
			return model.Meeting{}, err
		}
		m.Date = date
	}

	duration, err := parseDuration(d.Duration)
	if err != nil {
		return model.Meeting{}, err
	}

	m.Title = d.Title
	m.Description = model.Optional(d.Description)
	m.Duration = duration
	m.Attendees = model.Optional(d.Attendees)
	m.Notes = model.Optional(d.Notes)

	m = m.Normalized(now)
	if err := m.Validate(); err != nil {
		return model.Meeting{}, err
	}
	return m, nil
}

package model

import (
	"strings"
	"time"
)

// Collection names as exposed by the data service.
const (
	CollectionMeetings  = "meetings"
	CollectionTodos     = "todos"
	CollectionLearnings = "learnings"
)

// Record is the common interface for the tracked entities.
// Meeting, Todo and Learning implement this interface.
type Record interface {
	GetID() string
	GetTitle() string
	GetCreatedAt() time.Time
	CollectionName() string
}

// Meeting implements Record.

func (m Meeting) GetID() string           { return m.ID }
func (m Meeting) GetTitle() string        { return m.Title }
func (m Meeting) GetCreatedAt() time.Time { return m.CreatedAt }
func (m Meeting) CollectionName() string  { return CollectionMeetings }

// Todo implements Record.

func (t Todo) GetID() string           { return t.ID }
func (t Todo) GetTitle() string        { return t.Title }
func (t Todo) GetCreatedAt() time.Time { return t.CreatedAt }
func (t Todo) CollectionName() string  { return CollectionTodos }

// Learning implements Record.

func (l Learning) GetID() string           { return l.ID }
func (l Learning) GetTitle() string        { return l.Title }
func (l Learning) GetCreatedAt() time.Time { return l.CreatedAt }
func (l Learning) CollectionName() string  { return CollectionLearnings }

// Optional returns nil for a blank string and a pointer to the trimmed
// value otherwise. Absent optional fields are never stored as "".
func Optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Value dereferences an optional string, returning "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// normalizeOptional re-applies Optional to an already populated field.
func normalizeOptional(p *string) *string {
	if p == nil {
		return nil
	}
	return Optional(*p)
}

// settleCompletion keeps completedAt consistent with the completed flag:
// set to now when newly completed, cleared when not completed.
func settleCompletion(completed bool, completedAt *time.Time, now time.Time) *time.Time {
	if !completed {
		return nil
	}
	if completedAt != nil {
		return completedAt
	}
	t := now.UTC()
	return &t
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

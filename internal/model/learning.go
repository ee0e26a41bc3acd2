package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Learning status constants.
const (
	LearningStatusInProgress = "in-progress"
	LearningStatusCompleted  = "completed"
)

// Learning type constants.
const (
	LearningTypeArticle = "article"
	LearningTypeBook    = "book"
	LearningTypeVideo   = "video"
	LearningTypeCourse  = "course"
	LearningTypePodcast = "podcast"
	LearningTypeOther   = "other"
)

// MaxRating is the highest rating a learning can receive.
const MaxRating = 5

// Allowed enum values, in display order.
var (
	LearningStatuses = []string{LearningStatusInProgress, LearningStatusCompleted}
	LearningTypes    = []string{
		LearningTypeArticle, LearningTypeBook, LearningTypeVideo,
		LearningTypeCourse, LearningTypePodcast, LearningTypeOther,
	}
)

// Learning is something read, watched or listened to.
// A nil Rating means unrated; a zero rating is never stored.
type Learning struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Type        string     `json:"type" db:"type"`
	Source      *string    `json:"source" db:"source"`
	Notes       *string    `json:"notes" db:"notes"`
	Status      string     `json:"status" db:"status"`
	Rating      *int       `json:"rating" db:"rating"`
	CompletedAt *time.Time `json:"completedAt" db:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt" db:"createdAt"`
}

// IsCompleted reports whether the learning is finished.
func (l Learning) IsCompleted() bool { return l.Status == LearningStatusCompleted }

// Complete returns a copy marked completed at now.
func (l Learning) Complete(now time.Time) Learning {
	l.Status = LearningStatusCompleted
	completedAt := now.UTC()
	l.CompletedAt = &completedAt
	return l
}

// Normalized returns a copy with defaults applied, blank optional fields
// cleared, non-positive ratings dropped and CompletedAt derived from Status.
func (l Learning) Normalized(now time.Time) Learning {
	l.Title = strings.TrimSpace(l.Title)
	l.Source = normalizeOptional(l.Source)
	l.Notes = normalizeOptional(l.Notes)
	if l.Type == "" {
		l.Type = LearningTypeArticle
	}
	if l.Status == "" {
		l.Status = LearningStatusInProgress
	}
	l.Rating = RatingPtr(RatingValue(l.Rating))
	l.CompletedAt = settleCompletion(l.IsCompleted(), l.CompletedAt, now)
	return l
}

// Validate reports the first invalid field.
func (l Learning) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return errors.New("title is required")
	}
	if !oneOf(l.Type, LearningTypes) {
		return fmt.Errorf("invalid type %q", l.Type)
	}
	if !oneOf(l.Status, LearningStatuses) {
		return fmt.Errorf("invalid status %q", l.Status)
	}
	if l.Rating != nil && (*l.Rating < 1 || *l.Rating > MaxRating) {
		return fmt.Errorf("rating must be between 1 and %d", MaxRating)
	}
	return nil
}

// WithID returns a copy carrying id.
func (l Learning) WithID(id string) Learning {
	l.ID = id
	return l
}

// WithCreatedAt returns a copy carrying the creation time.
func (l Learning) WithCreatedAt(c time.Time) Learning {
	l.CreatedAt = c
	return l
}

// RatingPtr converts a form rating to its stored form: nil when unrated.
func RatingPtr(r int) *int {
	if r <= 0 {
		return nil
	}
	return &r
}

// RatingValue converts a stored rating back to the form value, 0 for unrated.
func RatingValue(r *int) int {
	if r == nil {
		return 0
	}
	return *r
}

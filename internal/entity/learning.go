package entity

import (
	"time"

	"github.com/nhle/meeting-tracker/internal/model"
)

// LearningDraft holds the editable learning fields bound to the form.
// Rating 0 means unrated.
type LearningDraft struct {
	Title  string
	Type   string
	Source string
	Notes  string
	Status string
	Rating int
}

// NewLearningDraft returns a draft with default values.
func NewLearningDraft() *LearningDraft {
	d := &LearningDraft{}
	d.Reset()
	return d
}

// Reset restores the defaults.
func (d *LearningDraft) Reset() {
	*d = LearningDraft{
		Type:   model.LearningTypeArticle,
		Status: model.LearningStatusInProgress,
	}
}

// Load fills the draft from an existing learning.
func (d *LearningDraft) Load(l model.Learning) {
	*d = LearningDraft{
		Title:  l.Title,
		Type:   l.Type,
		Source: model.Value(l.Source),
		Notes:  model.Value(l.Notes),
		Status: l.Status,
		Rating: model.RatingValue(l.Rating),
	}
}

// Build turns the draft into a learning ready to store. existing is the
// learning being edited, or nil for a new one.
func (d *LearningDraft) Build(existing *model.Learning, now time.Time, newID string) (model.Learning, error) {
	var l model.Learning
	if existing != nil {
		l = *existing
	}
	l.ID, l.CreatedAt = identity(l.ID, l.CreatedAt, existing != nil, newID, now)

	l.Title = d.Title
	l.Type = d.Type
	l.Source = model.Optional(d.Source)
	l.Notes = model.Optional(d.Notes)
	l.Status = d.Status
	l.Rating = model.RatingPtr(d.Rating)

	l = l.Normalized(now)
	if err := l.Validate(); err != nil {
		return model.Learning{}, err
	}
	return l, nil
}

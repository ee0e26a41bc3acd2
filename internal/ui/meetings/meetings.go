// Package meetings adapts meeting records to the generic panel.
package meetings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/entity"
	"github.com/nhle/meeting-tracker/internal/keys"
	"github.com/nhle/meeting-tracker/internal/model"
	"github.com/nhle/meeting-tracker/internal/theme"
	"github.com/nhle/meeting-tracker/internal/ui"
	"github.com/nhle/meeting-tracker/internal/ui/panel"
)

// Adapter describes meetings to the panel.
type Adapter struct {
	draft *entity.MeetingDraft
}

// NewAdapter returns an adapter with a fresh draft.
func NewAdapter() *Adapter {
	return &Adapter{draft: entity.NewMeetingDraft()}
}

// New mounts the meetings panel.
func New(ctx context.Context, coll collection.Collection[model.Meeting], k *keys.KeyMap, width, height int) panel.Panel {
	return panel.New[model.Meeting](ctx, coll, NewAdapter(), k, width, height)
}

func (a *Adapter) Title() string        { return "Meetings" }
func (a *Adapter) Noun() string         { return "meeting" }
func (a *Adapter) EmptyMessage() string { return "No meetings yet. Press 'n' to add one." }
func (a *Adapter) OrderBy() string      { return "date" }

// Filters is nil: meetings have no filter bar.
func (a *Adapter) Filters() []entity.Filter[model.Meeting] { return nil }

func (a *Adapter) Reset()               { a.draft.Reset() }
func (a *Adapter) Load(m model.Meeting) { a.draft.Load(m) }

// Draft exposes the bound form state.
func (a *Adapter) Draft() *entity.MeetingDraft { return a.draft }

// Fields returns the meeting form.
func (a *Adapter) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("Weekly sync").
			Value(&a.draft.Title).
			Validate(entity.ValidateRequired("Title")),
		huh.NewInput().
			Title("Date").
			Placeholder("YYYY-MM-DD HH:MM").
			Value(&a.draft.Date).
			Validate(entity.ValidateDateTime),
		huh.NewInput().
			Title("Duration (minutes)").
			Placeholder("30").
			Value(&a.draft.Duration).
			Validate(entity.ValidateDuration),
		huh.NewInput().
			Title("Attendees").
			Placeholder("Optional, comma separated").
			Value(&a.draft.Attendees),
		huh.NewText().
			Title("Description").
			Placeholder("Optional").
			Lines(2).
			Value(&a.draft.Description),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional").
			Lines(3).
			Value(&a.draft.Notes),
	}
}

func (a *Adapter) Build(existing *model.Meeting, now time.Time, newID string) (model.Meeting, error) {
	return a.draft.Build(existing, now, newID)
}

// Completable is always false; meetings have no completion state.
func (a *Adapter) Completable(model.Meeting) bool { return false }

func (a *Adapter) Complete(m model.Meeting, _ time.Time) model.Meeting { return m }

// RenderCard shows the title, schedule and optional details.
func (a *Adapter) RenderCard(m model.Meeting, width int, now time.Time) string {
	lines := []string{theme.CardTitleStyle.Render(m.Title)}

	when := fmt.Sprintf("%s · %d min", model.FormatDateTime(m.Date), m.Duration)
	whenStyle := theme.MutedStyle
	if m.Date.After(now) {
		whenStyle = lipgloss.NewStyle().Foreground(theme.ColorBlue)
	}
	lines = append(lines, whenStyle.Render(when))

	if m.Attendees != nil {
		lines = append(lines, theme.MutedStyle.Render("With: "+*m.Attendees))
	}
	if m.Description != nil {
		lines = append(lines, ui.Truncate(*m.Description, width))
	}
	if m.Notes != nil {
		lines = append(lines, theme.HelpStyle.Render(ui.Truncate("Notes: "+*m.Notes, width)))
	}
	return strings.Join(lines, "\n")
}

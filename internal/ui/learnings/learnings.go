// Package learnings adapts learning records to the generic panel.
package learnings

import (
	"context"
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

// Adapter describes learnings to the panel.
type Adapter struct {
	draft *entity.LearningDraft
}

// NewAdapter returns an adapter with a fresh draft.
func NewAdapter() *Adapter {
	return &Adapter{draft: entity.NewLearningDraft()}
}

// New mounts the learnings panel.
func New(ctx context.Context, coll collection.Collection[model.Learning], k *keys.KeyMap, width, height int) panel.Panel {
	return panel.New[model.Learning](ctx, coll, NewAdapter(), k, width, height)
}

func (a *Adapter) Title() string                            { return "Learnings" }
func (a *Adapter) Noun() string                             { return "learning" }
func (a *Adapter) EmptyMessage() string                     { return "Nothing logged yet. Press 'n' to add a learning." }
func (a *Adapter) OrderBy() string                          { return "createdAt" }
func (a *Adapter) Filters() []entity.Filter[model.Learning] { return entity.LearningFilters() }
func (a *Adapter) Reset()                                   { a.draft.Reset() }
func (a *Adapter) Load(l model.Learning)                    { a.draft.Load(l) }

// Draft exposes the bound form state.
func (a *Adapter) Draft() *entity.LearningDraft { return a.draft }

// Fields returns the learning form.
func (a *Adapter) Fields() []huh.Field {
	ratings := []huh.Option[int]{huh.NewOption("Unrated", 0)}
	for r := 1; r <= model.MaxRating; r++ {
		ratings = append(ratings, huh.NewOption(Stars(r), r))
	}

	return []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What did you read, watch or hear?").
			Value(&a.draft.Title).
			Validate(entity.ValidateRequired("Title")),
		huh.NewSelect[string]().
			Title("Type").
			Options(ui.EnumOptions(model.LearningTypes)...).
			Value(&a.draft.Type),
		huh.NewInput().
			Title("Source").
			Placeholder("URL or author (optional)").
			Value(&a.draft.Source),
		huh.NewSelect[string]().
			Title("Status").
			Options(ui.EnumOptions(model.LearningStatuses)...).
			Value(&a.draft.Status),
		huh.NewSelect[int]().
			Title("Rating").
			Options(ratings...).
			Value(&a.draft.Rating),
		huh.NewText().
			Title("Notes").
			Placeholder("Key takeaways (optional)").
			Lines(3).
			Value(&a.draft.Notes),
	}
}

func (a *Adapter) Build(existing *model.Learning, now time.Time, newID string) (model.Learning, error) {
	return a.draft.Build(existing, now, newID)
}

// Completable hides the complete action on finished learnings.
func (a *Adapter) Completable(l model.Learning) bool { return !l.IsCompleted() }

func (a *Adapter) Complete(l model.Learning, now time.Time) model.Learning { return l.Complete(now) }

// RenderCard shows the title, badges, rating, source and notes.
func (a *Adapter) RenderCard(l model.Learning, width int, _ time.Time) string {
	title := theme.CardTitleStyle.Render(l.Title)
	if l.IsCompleted() {
		title = theme.CompletedTitleStyle.Render(l.Title)
	}

	badges := []string{
		theme.KindStyle(l.Type).Render(model.Label(l.Type)),
		theme.StatusStyle(l.Status).Render(model.Label(l.Status)),
	}
	if l.Rating != nil {
		badges = append(badges, lipgloss.NewStyle().Foreground(theme.ColorYellow).Render(Stars(*l.Rating)))
	}

	lines := []string{title, lipgloss.JoinHorizontal(lipgloss.Top, badges...)}
	if l.Source != nil {
		lines = append(lines, theme.MutedStyle.Render(ui.Truncate(*l.Source, width)))
	}
	if l.CompletedAt != nil {
		lines = append(lines, theme.MutedStyle.Render("Completed "+model.FormatDate(*l.CompletedAt)))
	}
	if l.Notes != nil {
		lines = append(lines, theme.HelpStyle.Render(ui.Truncate(*l.Notes, width)))
	}
	return strings.Join(lines, "\n")
}

// Stars renders a rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > model.MaxRating {
		rating = model.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", model.MaxRating-rating)
}

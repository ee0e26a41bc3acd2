// Package todos adapts todo records to the generic panel.
package todos

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

// Adapter describes todos to the panel.
type Adapter struct {
	draft *entity.TodoDraft
}

// NewAdapter returns an adapter with a fresh draft.
func NewAdapter() *Adapter {
	return &Adapter{draft: entity.NewTodoDraft()}
}

// New mounts the todos panel.
func New(ctx context.Context, coll collection.Collection[model.Todo], k *keys.KeyMap, width, height int) panel.Panel {
	return panel.New[model.Todo](ctx, coll, NewAdapter(), k, width, height)
}

func (a *Adapter) Title() string                        { return "Todos" }
func (a *Adapter) Noun() string                         { return "todo" }
func (a *Adapter) EmptyMessage() string                 { return "No todos here. Press 'n' to add one." }
func (a *Adapter) OrderBy() string                      { return "createdAt" }
func (a *Adapter) Filters() []entity.Filter[model.Todo] { return entity.TodoFilters() }
func (a *Adapter) Reset()                               { a.draft.Reset() }
func (a *Adapter) Load(t model.Todo)                    { a.draft.Load(t) }

// Draft exposes the bound form state.
func (a *Adapter) Draft() *entity.TodoDraft { return a.draft }

// Fields returns the todo form.
func (a *Adapter) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&a.draft.Title).
			Validate(entity.ValidateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Lines(2).
			Value(&a.draft.Description),
		huh.NewSelect[string]().
			Title("Category").
			Options(ui.EnumOptions(model.TodoCategories)...).
			Value(&a.draft.Category),
		huh.NewSelect[string]().
			Title("Priority").
			Options(ui.EnumOptions(model.TodoPriorities)...).
			Value(&a.draft.Priority),
		huh.NewSelect[string]().
			Title("Status").
			Options(ui.EnumOptions(model.TodoStatuses)...).
			Value(&a.draft.Status),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD HH:MM (optional)").
			Value(&a.draft.DueDate).
			Validate(entity.ValidateOptionalDateTime),
	}
}

func (a *Adapter) Build(existing *model.Todo, now time.Time, newID string) (model.Todo, error) {
	return a.draft.Build(existing, now, newID)
}

// Completable hides the complete action on finished todos.
func (a *Adapter) Completable(t model.Todo) bool { return !t.IsCompleted() }

func (a *Adapter) Complete(t model.Todo, now time.Time) model.Todo { return t.Complete(now) }

// RenderCard shows the title, badges, dates and description.
func (a *Adapter) RenderCard(t model.Todo, width int, now time.Time) string {
	title := theme.CardTitleStyle.Render(t.Title)
	if t.IsCompleted() {
		title = theme.CompletedTitleStyle.Render(t.Title)
	}

	badges := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.StatusStyle(t.Status).Render(model.Label(t.Status)),
		theme.PriorityStyle(t.Priority).Render(model.Label(t.Priority)),
		theme.KindStyle(t.Category).Render(model.Label(t.Category)),
	)

	lines := []string{title, badges}

	var dates []string
	if t.DueDate != nil {
		due := "Due " + model.FormatDateTime(*t.DueDate)
		if t.IsOverdue(now) {
			dates = append(dates, theme.ErrorStyle.Render(due+" (overdue)"))
		} else {
			dates = append(dates, theme.MutedStyle.Render(due))
		}
	}
	if t.CompletedAt != nil {
		dates = append(dates, theme.MutedStyle.Render("Completed "+model.FormatDate(*t.CompletedAt)))
	}
	if len(dates) > 0 {
		lines = append(lines, strings.Join(dates, theme.MutedStyle.Render(" · ")))
	}

	if t.Description != nil {
		lines = append(lines, ui.Truncate(*t.Description, width))
	}
	return strings.Join(lines, "\n")
}

package entity

import (
	"time"

	"github.com/nhle/meeting-tracker/internal/model"
)

// TodoDraft holds the editable todo fields bound to the form.
type TodoDraft struct {
	Title       string
	Description string
	Category    string
	Priority    string
	Status      string
	DueDate     string
}

// NewTodoDraft returns a draft with default values.
func NewTodoDraft() *TodoDraft {
	d := &TodoDraft{}
	d.Reset()
	return d
}

// Reset restores the defaults.
func (d *TodoDraft) Reset() {
	*d = TodoDraft{
		Category: model.CategoryPersonal,
		Priority: model.PriorityMedium,
		Status:   model.TodoStatusPending,
	}
}

// Load fills the draft from an existing todo.
func (d *TodoDraft) Load(t model.Todo) {
	*d = TodoDraft{
		Title:       t.Title,
		Description: model.Value(t.Description),
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.DueDate != nil {
		d.DueDate = formatInput(*t.DueDate)
	}
}

// Build turns the draft into a todo ready to store. existing is the todo
// being edited, or nil for a new one. CompletedAt follows Status.
func (d *TodoDraft) Build(existing *model.Todo, now time.Time, newID string) (model.Todo, error) {
	var t model.Todo
	if existing != nil {
		t = *existing
	}
	t.ID, t.CreatedAt = identity(t.ID, t.CreatedAt, existing != nil, newID, now)

	keepDue := existing != nil && existing.DueDate != nil && sameInput(d.DueDate, *existing.DueDate)
	if !keepDue {
		due, err := parseOptionalDateTime(d.DueDate)
		if err != nil {
			return model.Todo{}, err
		}
		t.DueDate = due
	}

	t.Title = d.Title
	t.Description = model.Optional(d.Description)
	t.Category = d.Category
	t.Priority = d.Priority
	t.Status = d.Status

	t = t.Normalized(now)
	if err := t.Validate(); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

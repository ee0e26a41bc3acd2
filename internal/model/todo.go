package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Todo status constants.
const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in-progress"
	TodoStatusCompleted  = "completed"
)

// Todo category constants.
const (
	CategoryPersonal = "personal"
	CategoryWork     = "work"
	CategoryHealth   = "health"
	CategoryLearning = "learning"
	CategoryOther    = "other"
)

// Todo priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Allowed enum values, in display order.
var (
	TodoStatuses   = []string{TodoStatusPending, TodoStatusInProgress, TodoStatusCompleted}
	TodoCategories = []string{CategoryPersonal, CategoryWork, CategoryHealth, CategoryLearning, CategoryOther}
	TodoPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
)

// Todo is a task the user intends to finish.
type Todo struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Category    string     `json:"category" db:"category"`
	Priority    string     `json:"priority" db:"priority"`
	Status      string     `json:"status" db:"status"`
	DueDate     *time.Time `json:"dueDate" db:"dueDate"`
	CompletedAt *time.Time `json:"completedAt" db:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt" db:"createdAt"`
}

// IsCompleted reports whether the todo is in the completed state.
func (t Todo) IsCompleted() bool { return t.Status == TodoStatusCompleted }

// IsOverdue reports whether the due date has passed on an unfinished todo.
func (t Todo) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && !t.IsCompleted()
}

// Complete returns a copy marked completed at now.
func (t Todo) Complete(now time.Time) Todo {
	t.Status = TodoStatusCompleted
	completedAt := now.UTC()
	t.CompletedAt = &completedAt
	return t
}

// Normalized returns a copy with enum defaults applied, blank optional
// fields cleared and CompletedAt derived from Status.
func (t Todo) Normalized(now time.Time) Todo {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = normalizeOptional(t.Description)
	if t.DueDate != nil {
		due := t.DueDate.UTC()
		t.DueDate = &due
	}
	if t.Category == "" {
		t.Category = CategoryPersonal
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = TodoStatusPending
	}
	t.CompletedAt = settleCompletion(t.IsCompleted(), t.CompletedAt, now)
	return t
}

// Validate reports the first invalid field.
func (t Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("title is required")
	}
	if !oneOf(t.Category, TodoCategories) {
		return fmt.Errorf("invalid category %q", t.Category)
	}
	if !oneOf(t.Priority, TodoPriorities) {
		return fmt.Errorf("invalid priority %q", t.Priority)
	}
	if !oneOf(t.Status, TodoStatuses) {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	return nil
}

// WithID returns a copy carrying id.
func (t Todo) WithID(id string) Todo {
	t.ID = id
	return t
}

// WithCreatedAt returns a copy carrying the creation time.
func (t Todo) WithCreatedAt(c time.Time) Todo {
	t.CreatedAt = c
	return t
}

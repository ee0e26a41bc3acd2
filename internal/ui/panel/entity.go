package panel

import (
	"time"

	"github.com/charmbracelet/huh"

	"github.com/nhle/meeting-tracker/internal/entity"
	"github.com/nhle/meeting-tracker/internal/model"
)

// Entity adapts one record type to the generic panel: how it is listed,
// edited and rendered.
type Entity[T model.Record] interface {
	// Title is the panel heading, e.g. "Meetings".
	Title() string

	// Noun names a single record in prompts, e.g. "meeting".
	Noun() string

	// EmptyMessage is shown when the filtered list is empty.
	EmptyMessage() string

	// OrderBy is the column the list is sorted on, descending.
	OrderBy() string

	// Filters returns the filter buckets, or nil when the panel has no
	// filter bar.
	Filters() []entity.Filter[T]

	// Reset restores the draft defaults.
	Reset()

	// Load fills the draft from a record being edited.
	Load(record T)

	// Fields returns form fields bound to the draft.
	Fields() []huh.Field

	// Build turns the draft into a record. existing is nil when creating.
	Build(existing *T, now time.Time, newID string) (T, error)

	// Completable reports whether the mark-complete action applies.
	Completable(record T) bool

	// Complete returns the record marked completed at now.
	Complete(record T, now time.Time) T

	// RenderCard renders the inside of a record card.
	RenderCard(record T, width int, now time.Time) string
}

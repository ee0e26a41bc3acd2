package collection

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_collection.go -package=mocks github.com/nhle/meeting-tracker/internal/collection Collection

import (
	"context"
	"errors"
	"io"

	"github.com/nhle/meeting-tracker/internal/model"
)

// ErrNotFound is returned by Update and Delete when no record has the
// given ID.
var ErrNotFound = errors.New("record not found")

// Collection is the data-access contract for one named collection.
// Every call is single-shot: no retry, no pagination.
type Collection[T model.Record] interface {
	// List returns every record ordered by one column.
	List(ctx context.Context, orderBy string, ascending bool) ([]T, error)

	// Insert stores a new record. The record carries its own ID.
	Insert(ctx context.Context, record T) error

	// Update replaces the stored record with the given ID. The full
	// record is written; CreatedAt is never overwritten.
	Update(ctx context.Context, id string, record T) error

	// Delete removes the record with the given ID.
	Delete(ctx context.Context, id string) error
}

// Client bundles the three collections of one data service.
type Client struct {
	Meetings  Collection[model.Meeting]
	Todos     Collection[model.Todo]
	Learnings Collection[model.Learning]

	// Backend describes where the data lives, for display.
	Backend string

	closer io.Closer
}

// Close releases the underlying connection, if any.
func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

package entity

import "errors"

// LoadState is the fetch state of a ListStore.
type LoadState int

const (
	StateLoading LoadState = iota
	StateReady
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ListStore holds the latest snapshot of one collection together with
// its fetch state. A failed fetch keeps the last good snapshot.
type ListStore[T any] struct {
	records []T
	state   LoadState
	err     string
}

// NewListStore returns an empty store in the loading state.
func NewListStore[T any]() *ListStore[T] {
	return &ListStore[T]{records: []T{}, state: StateLoading}
}

// Begin marks a fetch as in flight.
func (s *ListStore[T]) Begin() {
	s.state = StateLoading
}

// Resolve completes a fetch. On success the snapshot is replaced
// wholesale and any error cleared; on failure the error text is kept
// and the snapshot left alone.
func (s *ListStore[T]) Resolve(records []T, err error) {
	if err != nil {
		s.state = StateError
		s.err = Message(err)
		return
	}
	if records == nil {
		records = []T{}
	}
	s.records = records
	s.state = StateReady
	s.err = ""
}

// Report records a failed mutation without touching the fetch state.
func (s *ListStore[T]) Report(err error) {
	if err == nil {
		return
	}
	s.err = Message(err)
}

// Message returns the text of the innermost error in err's chain: the
// raw message from the failed operation, without the context added by
// each layer on the way up.
func Message(err error) string {
	if err == nil {
		return ""
	}
	for {
		inner := errors.Unwrap(err)
		if inner == nil {
			return err.Error()
		}
		err = inner
	}
}

// ClearErr drops the current error message.
func (s *ListStore[T]) ClearErr() {
	s.err = ""
	if s.state == StateError {
		s.state = StateReady
	}
}

// Records returns the current snapshot.
func (s *ListStore[T]) Records() []T { return s.records }

// State returns the fetch state.
func (s *ListStore[T]) State() LoadState { return s.state }

// Err returns the current error message, or "".
func (s *ListStore[T]) Err() string { return s.err }

// Loading reports whether a fetch is in flight.
func (s *ListStore[T]) Loading() bool { return s.state == StateLoading }

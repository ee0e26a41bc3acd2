package entity

import "github.com/nhle/meeting-tracker/internal/model"

// Filter is a named predicate over records.
type Filter[T any] struct {
	Name  string
	Label string
	Match func(T) bool
}

// Apply returns the records matching f, in their original order.
// A filter without a predicate matches everything.
func (f Filter[T]) Apply(records []T) []T {
	if f.Match == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterAll is the name of the identity filter.
const FilterAll = "all"

func all[T any]() Filter[T] {
	return Filter[T]{Name: FilterAll, Label: "All"}
}

// TodoFilters are the todo buckets. In-progress todos only show
// under "all".
func TodoFilters() []Filter[model.Todo] {
	return []Filter[model.Todo]{
		all[model.Todo](),
		{
			Name:  model.TodoStatusPending,
			Label: model.Label(model.TodoStatusPending),
			Match: func(t model.Todo) bool { return t.Status == model.TodoStatusPending },
		},
		{
			Name:  model.TodoStatusCompleted,
			Label: model.Label(model.TodoStatusCompleted),
			Match: func(t model.Todo) bool { return t.Status == model.TodoStatusCompleted },
		},
	}
}

// LearningFilters are the learning buckets.
func LearningFilters() []Filter[model.Learning] {
	return []Filter[model.Learning]{
		all[model.Learning](),
		{
			Name:  model.LearningStatusInProgress,
			Label: model.Label(model.LearningStatusInProgress),
			Match: func(l model.Learning) bool { return l.Status == model.LearningStatusInProgress },
		},
		{
			Name:  model.LearningStatusCompleted,
			Label: model.Label(model.LearningStatusCompleted),
			Match: func(l model.Learning) bool { return l.Status == model.LearningStatusCompleted },
		},
	}
}

package app

import (
	"context"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/keys"
	"github.com/nhle/meeting-tracker/internal/ui/learnings"
	"github.com/nhle/meeting-tracker/internal/ui/meetings"
	"github.com/nhle/meeting-tracker/internal/ui/panel"
	"github.com/nhle/meeting-tracker/internal/ui/todos"
)

// Tab identifies one of the panels in the tab bar.
type Tab int

const (
	TabMeetings Tab = iota
	TabTodos
	TabLearnings
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabMeetings, TabTodos, TabLearnings}

func (t Tab) String() string {
	switch t {
	case TabMeetings:
		return "Meetings"
	case TabTodos:
		return "Todos"
	case TabLearnings:
		return "Learnings"
	default:
		return "Unknown"
	}
}

// next returns the tab after t, wrapping around; step may be negative.
func (t Tab) next(step int) Tab {
	n := len(Tabs)
	return Tab(((int(t)+step)%n + n) % n)
}

// PanelFactory builds a fresh panel for a tab.
type PanelFactory func(tab Tab, width, height int) panel.Panel

// ClientPanels returns a factory mounting panels over client's
// collections.
func ClientPanels(ctx context.Context, client *collection.Client, k *keys.KeyMap) PanelFactory {
	return func(tab Tab, width, height int) panel.Panel {
		switch tab {
		case TabTodos:
			return todos.New(ctx, client.Todos, k, width, height)
		case TabLearnings:
			return learnings.New(ctx, client.Learnings, k, width, height)
		default:
			return meetings.New(ctx, client.Meetings, k, width, height)
		}
	}
}

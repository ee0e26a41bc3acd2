package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/meeting-tracker/internal/collection"
	"github.com/nhle/meeting-tracker/internal/ui"
	"github.com/nhle/meeting-tracker/internal/ui/command"
	helpview "github.com/nhle/meeting-tracker/internal/ui/help"
	"github.com/nhle/meeting-tracker/internal/ui/panel"
)

// overlay is what, if anything, is drawn over the active panel.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayCommand
)

// Model is the root Bubble Tea model: a tab bar over exactly one mounted
// panel, plus the help and command overlays.
type Model struct {
	active  Tab
	panel   panel.Panel
	factory PanelFactory
	backend string

	overlay     overlay
	layout      ui.Layout
	keys        *KeyMap
	helpView    helpview.Model
	commandView command.Model
	statusMsg   string
	ready       bool
}

// New creates the application over a collection client, starting on the
// meetings tab.
func New(ctx context.Context, client *collection.Client) Model {
	k := DefaultKeyMap()
	return NewWithFactory(ClientPanels(ctx, client, k), k, client.Backend)
}

// NewWithFactory creates the application with a custom panel factory.
func NewWithFactory(factory PanelFactory, k *KeyMap, backend string) Model {
	layout := ui.NewLayout(80, 24)
	return Model{
		active:      TabMeetings,
		panel:       factory(TabMeetings, layout.ContentWidth(), layout.ContentHeight()).Resize(layout.ContentWidth(), layout.ContentHeight(), layout.ContentTop()),
		factory:     factory,
		backend:     backend,
		layout:      layout,
		keys:        k,
		helpView:    helpview.New(k, layout.ContentWidth(), layout.ContentHeight()),
		commandView: command.New(layout.ContentWidth(), layout.ContentHeight()),
	}
}

// Init fetches the first tab.
func (m Model) Init() tea.Cmd {
	return m.panel.Init()
}

// Active returns the selected tab.
func (m Model) Active() Tab { return m.active }

// Update handles messages and dispatches to the active panel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.panel = m.panel.Resize(w, h, m.layout.ContentTop())
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		return m, nil

	case command.CommandMsg:
		m.overlay = overlayNone
		return m.execute(string(msg))

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.overlay != overlayNone {
			return m, nil
		}
	}

	return m.updatePanel(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case overlayHelp:
		if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) || msg.String() == "q" {
			m.overlay = overlayNone
		}
		return m, nil

	case overlayCommand:
		if key.Matches(msg, m.keys.Back) {
			m.overlay = overlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.commandView, cmd = m.commandView.Update(msg)
		return m, cmd
	}

	// An open editor or confirmation owns the keyboard.
	if m.panel.Capturing() {
		return m.updatePanel(msg)
	}

	m.statusMsg = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.Command):
		m.overlay = overlayCommand
		m.commandView = command.New(m.layout.ContentWidth(), m.layout.ContentHeight())
		return m, m.commandView.Init()

	case key.Matches(msg, m.keys.NextTab):
		return m.switchTo(m.active.next(1))

	case key.Matches(msg, m.keys.PrevTab):
		return m.switchTo(m.active.next(-1))

	case key.Matches(msg, m.keys.Tab1):
		return m.switchTo(TabMeetings)

	case key.Matches(msg, m.keys.Tab2):
		return m.switchTo(TabTodos)

	case key.Matches(msg, m.keys.Tab3):
		return m.switchTo(TabLearnings)
	}

	return m.updatePanel(msg)
}

// switchTo discards the mounted panel and mounts a fresh one for tab.
// Selecting the active tab does nothing.
func (m Model) switchTo(tab Tab) (tea.Model, tea.Cmd) {
	if tab == m.active {
		return m, nil
	}
	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
	m.active = tab
	m.panel = m.factory(tab, w, h).Resize(w, h, m.layout.ContentTop())
	return m, m.panel.Init()
}

// execute runs a command palette command.
func (m Model) execute(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case command.CmdMeetings:
		return m.switchTo(TabMeetings)
	case command.CmdTodos:
		return m.switchTo(TabTodos)
	case command.CmdLearnings:
		return m.switchTo(TabLearnings)
	case command.CmdRefresh:
		var c tea.Cmd
		m.panel, c = m.panel.Refresh()
		return m, c
	case command.CmdNew:
		var c tea.Cmd
		m.panel, c = m.panel.New()
		return m, c
	case command.CmdQuit:
		return m, tea.Quit
	default:
		m.statusMsg = "unknown command: " + cmd
		return m, nil
	}
}

func (m Model) updatePanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Meeting Tracker", m.backend)

	labels := make([]string, len(Tabs))
	for i, t := range Tabs {
		labels[i] = t.String()
	}
	tabs := m.layout.RenderTabs(labels, int(m.active))

	var content string
	switch m.overlay {
	case overlayHelp:
		content = m.helpView.View()
	case overlayCommand:
		content = m.commandView.View()
	default:
		content = m.panel.View()
	}

	statusBar := m.layout.RenderStatusBar(m.keyHints())
	return m.layout.RenderWithFrame(header, tabs, content, statusBar)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.overlay {
	case overlayHelp:
		return "? close help | esc back"
	case overlayCommand:
		return "enter execute | tab complete | esc back"
	}
	if m.statusMsg != "" {
		return m.statusMsg
	}
	return m.panel.KeyHints()
}

package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/meeting-tracker/internal/ui/command"
	"github.com/nhle/meeting-tracker/internal/ui/panel"
)

type initMsg struct{ tab Tab }

// fakePanel records what the shell asks of it.
type fakePanel struct {
	tab       Tab
	capturing bool
	got       *[]tea.Msg
	refreshes *int
	news      *int
	width     int
	height    int
	originY   int
}

func (p fakePanel) Init() tea.Cmd {
	tab := p.tab
	return func() tea.Msg { return initMsg{tab: tab} }
}

func (p fakePanel) Update(msg tea.Msg) (panel.Panel, tea.Cmd) {
	*p.got = append(*p.got, msg)
	return p, nil
}

func (p fakePanel) View() string { return "panel:" + p.tab.String() }

func (p fakePanel) Resize(w, h, originY int) panel.Panel {
	p.width, p.height, p.originY = w, h, originY
	return p
}

func (p fakePanel) Capturing() bool  { return p.capturing }
func (p fakePanel) KeyHints() string { return "hints:" + p.tab.String() }

func (p fakePanel) Refresh() (panel.Panel, tea.Cmd) {
	*p.refreshes++
	return p, nil
}

func (p fakePanel) New() (panel.Panel, tea.Cmd) {
	*p.news++
	return p, nil
}

type harness struct {
	mounted   []Tab
	got       []tea.Msg
	refreshes int
	news      int
	capturing bool
}

func newHarness() (*harness, Model) {
	h := &harness{}
	factory := func(tab Tab, width, height int) panel.Panel {
		h.mounted = append(h.mounted, tab)
		return fakePanel{tab: tab, capturing: h.capturing, got: &h.got, refreshes: &h.refreshes, news: &h.news}
	}
	m := NewWithFactory(factory, DefaultKeyMap(), "sqlite")
	return h, m
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartsOnMeetingsAndFetches(t *testing.T) {
	h, m := newHarness()
	assert.Equal(t, TabMeetings, m.Active())
	assert.Equal(t, []Tab{TabMeetings}, h.mounted)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Equal(t, initMsg{tab: TabMeetings}, cmd())
}

func TestSwitchRemountsAndFetches(t *testing.T) {
	h, m := newHarness()

	m, cmd := send(m, runes("2"))
	assert.Equal(t, TabTodos, m.Active())
	require.NotNil(t, cmd)
	assert.Equal(t, initMsg{tab: TabTodos}, cmd())

	m, cmd = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabLearnings, m.Active())
	assert.Equal(t, initMsg{tab: TabLearnings}, cmd())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabMeetings, m.Active(), "tab wraps around")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabLearnings, m.Active())

	assert.Equal(t, []Tab{TabMeetings, TabTodos, TabLearnings, TabMeetings, TabLearnings}, h.mounted)
}

func TestSelectingActiveTabDoesNothing(t *testing.T) {
	h, m := newHarness()
	m, cmd := send(m, runes("1"))
	assert.Nil(t, cmd)
	assert.Equal(t, TabMeetings, m.Active())
	assert.Len(t, h.mounted, 1)
}

func TestCapturingPanelOwnsKeys(t *testing.T) {
	h, m := newHarness()
	h.capturing = true
	m, _ = send(m, runes("3"))
	require.Equal(t, TabLearnings, m.Active())

	for _, k := range []string{"1", "q", "?", ":"} {
		m, _ = send(m, runes(k))
	}
	m, cmd := send(m, tea.KeyMsg{Type: tea.KeyTab})

	assert.Nil(t, cmd)
	assert.Equal(t, TabLearnings, m.Active())
	assert.Equal(t, overlayNone, m.overlay)
	assert.Len(t, h.got, 5, "every key went to the panel")
}

func TestQuit(t *testing.T) {
	_, m := newHarness()
	_, cmd := send(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestHelpOverlay(t *testing.T) {
	h, m := newHarness()
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = send(m, runes("?"))
	assert.Equal(t, overlayHelp, m.overlay)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m, _ = send(m, runes("2"))
	assert.Equal(t, TabMeetings, m.Active(), "keys do not leak through the help overlay")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, overlayNone, m.overlay)
	assert.Contains(t, m.View(), "panel:Meetings")
	assert.Empty(t, h.got)
}

func TestCommandPalette(t *testing.T) {
	h, m := newHarness()

	m, _ = send(m, runes(":"))
	assert.Equal(t, overlayCommand, m.overlay)

	m, cmd := send(m, command.CommandMsg(command.CmdTodos))
	assert.Equal(t, overlayNone, m.overlay)
	assert.Equal(t, TabTodos, m.Active())
	assert.Equal(t, initMsg{tab: TabTodos}, cmd())

	m, _ = send(m, command.CommandMsg(command.CmdRefresh))
	assert.Equal(t, 1, h.refreshes)

	m, _ = send(m, command.CommandMsg(command.CmdNew))
	assert.Equal(t, 1, h.news)

	m, _ = send(m, command.CommandMsg("bogus"))
	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Contains(t, m.View(), "unknown command: bogus")

	_, cmd = send(m, command.CommandMsg(command.CmdQuit))
	assert.Equal(t, tea.Quit(), cmd())
}

func TestResizePropagates(t *testing.T) {
	_, m := newHarness()
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	p := m.panel.(fakePanel)
	assert.Equal(t, 120, p.width)
	assert.Equal(t, m.layout.ContentHeight(), p.height)
	assert.Equal(t, m.layout.ContentTop(), p.originY)
}

func TestViewShowsHeaderTabsAndHints(t *testing.T) {
	_, m := newHarness()
	assert.Equal(t, "Loading...", m.View())

	m, _ = send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "Meeting Tracker")
	assert.Contains(t, view, "sqlite")
	assert.Contains(t, view, "Todos")
	assert.Contains(t, view, "hints:Meetings")
}

func TestOtherMessagesReachPanel(t *testing.T) {
	h, m := newHarness()
	type ping struct{}
	_, _ = send(m, ping{})
	assert.Equal(t, []tea.Msg{ping{}}, h.got)
}

func TestTabNext(t *testing.T) {
	assert.Equal(t, TabTodos, TabMeetings.next(1))
	assert.Equal(t, TabLearnings, TabMeetings.next(-1))
	assert.Equal(t, TabMeetings, TabLearnings.next(1))
	assert.Equal(t, "Unknown", Tab(7).String())
}

package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/meeting-tracker/internal/theme"
)

// Layout manages the multi-panel terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	TabBarHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// HeaderHeight and StatusBarHeight default to 1; the tab bar takes two
// rows including its underline.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		TabBarHeight:    2,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header, tab bar and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.ContentTop() - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// ContentTop returns the first screen row of the content area.
func (l Layout) ContentTop() int {
	return l.HeaderHeight + l.TabBarHeight
}

// RenderHeader renders the top header bar with a title and a right-aligned
// status such as the backend in use.
func (l Layout) RenderHeader(title string, syncStatus string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(syncStatus)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(statusRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		statusRendered,
	)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderTabs renders the tab bar with the active tab highlighted. The
// bar is padded to the full width.
func (l Layout) RenderTabs(labels []string, active int) string {
	rendered := make([]string, len(labels))
	for i, label := range labels {
		if i == active {
			rendered[i] = theme.ActiveTabStyle.Render(label)
		} else {
			rendered[i] = theme.TabStyle.Render(label)
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, rendered...)

	gap := l.Width - lipgloss.Width(row)
	if gap <= 0 {
		return row
	}
	filler := theme.TabStyle.UnsetPadding().Width(gap).Render("")
	return lipgloss.JoinHorizontal(lipgloss.Bottom, row, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, tab bar, content area and status bar. The content is
// padded to ContentHeight so the status bar stays at the bottom.
func (l Layout) RenderWithFrame(
	header string,
	tabs string,
	content string,
	statusBar string,
) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		tabs,
		content,
		statusBar,
	)
}

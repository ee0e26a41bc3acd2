package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/meeting-tracker/internal/theme"
)

// View renders the list, or the open modal centered over the panel area.
func (m Model[T]) View() string {
	if m.mode != modeList {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return m.listView()
}

func (m Model[T]) listView() string {
	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	visible := m.visible()
	heading := titleStyle.Render(m.entity.Title())
	if !m.store.Loading() {
		heading += theme.MutedStyle.Render(fmt.Sprintf("  %d of %d", len(visible), len(m.store.Records())))
	}
	sections = append(sections, heading)

	if len(m.filters) > 0 {
		sections = append(sections, m.filterBar())
	}
	if m.store.Loading() {
		sections = append(sections, m.spinner.View()+theme.MutedStyle.Render(" Loading "+strings.ToLower(m.entity.Title())+"..."))
	}
	if msg := m.store.Err(); msg != "" {
		sections = append(sections, theme.ErrorStyle.Render("Error: "+msg))
	}

	header := lipgloss.JoinVertical(lipgloss.Left, sections...)
	avail := m.height - lipgloss.Height(header) - 1

	var body string
	switch {
	case len(visible) == 0 && !m.store.Loading():
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		body = emptyStyle.Render(m.entity.EmptyMessage())
	default:
		body = m.cards(visible, avail)
	}

	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(m.width).
		Render(header + "\n\n" + body)
}

func (m Model[T]) filterBar() string {
	parts := make([]string, len(m.filters))
	for i, f := range m.filters {
		if i == m.filter {
			parts[i] = theme.ActiveFilterStyle.Render(f.Label)
		} else {
			parts[i] = theme.FilterStyle.Render(f.Label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// cards renders the records that fit in avail rows, scrolled so the
// selected record is visible.
func (m Model[T]) cards(records []T, avail int) string {
	if len(records) == 0 {
		return ""
	}

	now := m.now()
	cardWidth := m.width - 4
	if cardWidth < 20 {
		cardWidth = 20
	}

	rendered := make([]string, len(records))
	for i, r := range records {
		style := theme.CardStyle
		if i == m.selected {
			style = theme.SelectedCardStyle
		}
		rendered[i] = style.Width(cardWidth).Render(m.entity.RenderCard(r, cardWidth-4, now))
	}

	start := 0
	used := 0
	for i := 0; i <= m.selected && i < len(rendered); i++ {
		used += lipgloss.Height(rendered[i])
		for used > avail && start < i {
			used -= lipgloss.Height(rendered[start])
			start++
		}
	}

	var out []string
	used = 0
	for i := start; i < len(rendered); i++ {
		h := lipgloss.Height(rendered[i])
		if used+h > avail && len(out) > 0 {
			break
		}
		out = append(out, rendered[i])
		used += h
	}
	return lipgloss.JoinVertical(lipgloss.Left, out...)
}

// modalView renders the editor or confirmation box.
func (m Model[T]) modalView() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).MarginBottom(1)

	var title, body string
	switch m.mode {
	case modeConfirmDelete:
		title = "Delete " + capitalize(m.entity.Noun())
		if m.confirmForm != nil {
			body = m.confirmForm.View()
		}
	default:
		title = "New " + capitalize(m.entity.Noun())
		if m.editing != nil {
			title = "Edit " + capitalize(m.entity.Noun())
		}
		switch {
		case m.saving:
			body = m.spinner.View() + " Saving..."
		case m.form != nil:
			body = m.form.View()
		}
	}

	content := titleStyle.Render(title) + "\n" + body
	if msg := m.store.Err(); msg != "" && m.mode == modeEditor {
		content += "\n" + theme.ErrorStyle.Render("Error: "+msg)
	}
	content += "\n" + theme.HelpStyle.Render("esc or click outside to close")

	return theme.ModalStyle.Render(content)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the application title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ActiveTabStyle marks the selected tab.
var ActiveTabStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue).
	Padding(0, 2).
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(ColorBlue)

// TabStyle is used for the other tabs.
var TabStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Padding(0, 2).
	Border(lipgloss.NormalBorder(), false, false, true, false).
	BorderForeground(ColorBorder)

// CardStyle frames one record in a panel list.
var CardStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedCardStyle highlights the focused record.
var SelectedCardStyle = CardStyle.
	BorderForeground(ColorBlue)

// CardTitleStyle is the record title inside a card.
var CardTitleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite)

// CompletedTitleStyle dims the title of a finished record.
var CompletedTitleStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Strikethrough(true)

// MutedStyle is used for secondary text such as dates and sources.
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// ErrorStyle renders inline error messages.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// ModalStyle frames the editor and confirmation overlays.
var ModalStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBlue)

// FilterStyle and ActiveFilterStyle render the filter bar.
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)
	ActiveFilterStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorWhite).
				Background(ColorBlue).
				Padding(0, 1)
)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// BorderStyle provides a standard rounded border for panels.
var BorderStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// StatusStyle returns a color-coded badge style for a todo or learning
// status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "pending":
		return base.Foreground(ColorBlue)
	case "in-progress":
		return base.Foreground(ColorYellow)
	case "completed":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}

// PriorityStyle returns a color-coded style for a todo priority.
func PriorityStyle(priority string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch priority {
	case "high":
		return base.Foreground(ColorRed)
	case "medium":
		return base.Foreground(ColorOrange)
	case "low":
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// KindStyle returns a color-coded style for a todo category or a
// learning type.
func KindStyle(kind string) lipgloss.Style {
	base := lipgloss.NewStyle().Padding(0, 1)

	switch kind {
	case "work", "course":
		return base.Foreground(ColorBlue)
	case "health", "podcast":
		return base.Foreground(ColorGreen)
	case "learning", "book":
		return base.Foreground(ColorMagenta)
	case "video":
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorGray)
	}
}

package ui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nhle/meeting-tracker/internal/model"
)

// Truncate keeps the first line of s and cuts it to width cells.
func Truncate(s string, width int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i] + "…"
	}
	r := []rune(s)
	if width > 1 && len(r) > width {
		return string(r[:width-1]) + "…"
	}
	return s
}

// EnumOptions builds select options labelled with model.Label.
func EnumOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(model.Label(v), v)
	}
	return opts
}

package model

import (
	"strings"
	"time"
)

// Display layouts for dates shown in the UI.
const (
	DisplayDateLayout     = "Jan 02, 2006"
	DisplayDateTimeLayout = "Jan 02, 2006 15:04"
)

// FormatDate renders t as a date-only display string in local time.
func FormatDate(t time.Time) string {
	return t.Local().Format(DisplayDateLayout)
}

// FormatDateTime renders t as a date-time display string in local time.
func FormatDateTime(t time.Time) string {
	return t.Local().Format(DisplayDateTimeLayout)
}

// Label turns an enum value into its display label:
// "in-progress" becomes "In Progress".
func Label(value string) string {
	words := strings.Split(value, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"  todos ", CmdTodos},
		{"TODOS", CmdTodos},
		{"m", CmdMeetings},
		{"le", CmdLearnings},
		{"q", CmdQuit},
		{"r", CmdRefresh},
		{"n", CmdNew},
		{"zzz", "zzz"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.input))
		})
	}
}

func TestEnterEmitsCommand(t *testing.T) {
	m := New(60, 20)
	for _, r := range "lea" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, CommandMsg(CmdLearnings), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd, "empty input emits nothing")
}

package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m pickerModel, msg tea.Msg) pickerModel {
	t.Helper()
	updated, _ := m.Update(msg)
	next, ok := updated.(pickerModel)
	require.True(t, ok)
	return next
}

func TestPickerMoveAndSelect(t *testing.T) {
	m := newPickerModel([]string{"router-1", "switch-a", "switch-b"})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, keyRune('j'))
	assert.Equal(t, 2, m.cursor)

	// Cursor stops at the last entry.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor)

	m = update(t, m, keyRune('k'))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "switch-a", m.selected)
}

func TestPickerQuitWithoutSelection(t *testing.T) {
	m := newPickerModel([]string{"switch-a"})
	m = update(t, m, keyRune('q'))
	assert.Empty(t, m.selected)
}

func TestPickerFilterNarrowsList(t *testing.T) {
	m := newPickerModel([]string{"router-1", "switch-a", "switch-b"})

	m = update(t, m, keyRune('/'))
	require.True(t, m.filter.Focused())

	for _, r := range "switch" {
		m = update(t, m, keyRune(r))
	}
	assert.Equal(t, []string{"switch-a", "switch-b"}, m.filtered)

	// Leave the filter, then pick the first match.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, m.filter.Focused())
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "switch-a", m.selected)
}

func TestPickerFilterResetsCursorOutOfRange(t *testing.T) {
	m := newPickerModel([]string{"router-1", "switch-a", "switch-b"})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m = update(t, m, keyRune('/'))
	for _, r := range "router" {
		m = update(t, m, keyRune(r))
	}
	assert.Equal(t, []string{"router-1"}, m.filtered)
	assert.Equal(t, 0, m.cursor)
}

func TestPickDeviceRejectsEmptyList(t *testing.T) {
	_, ok, err := PickDevice(nil)
	assert.False(t, ok)
	assert.Error(t, err)
}

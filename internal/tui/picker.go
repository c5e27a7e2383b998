package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	helpStyle     = lipgloss.NewStyle().Faint(true)
)

// PickDevice presents an interactive selector over the given device names
// and returns the chosen one. ok is false when the user quit without
// selecting; the caller treats that as an abort before any execution
// begins.
func PickDevice(names []string) (selected string, ok bool, err error) {
	if len(names) == 0 {
		return "", false, fmt.Errorf("no devices to pick from")
	}

	final, err := tea.NewProgram(newPickerModel(names)).Run()
	if err != nil {
		return "", false, fmt.Errorf("device picker failed: %w", err)
	}

	m, castOK := final.(pickerModel)
	if !castOK || m.selected == "" {
		return "", false, nil
	}
	return m.selected, true, nil
}

// pickerModel is a minimal bubbletea model: a cursor over the device list
// plus a textinput that narrows it by substring.
type pickerModel struct {
	devices  []string
	filtered []string
	cursor   int
	filter   textinput.Model
	selected string
}

func newPickerModel(devices []string) pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return pickerModel{
		devices:  devices,
		filtered: devices,
		filter:   ti,
	}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m, nil
	}

	if m.filter.Focused() {
		switch keyMsg.String() {
		case "enter", "esc":
			m.filter.Blur()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		m.selected = ""
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "/":
		m.filter.Focus()
	case "enter":
		if len(m.filtered) > 0 {
			m.selected = m.filtered[m.cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *pickerModel) applyFilter() {
	needle := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if needle == "" {
		m.filtered = m.devices
	} else {
		var narrowed []string
		for _, name := range m.devices {
			if strings.Contains(strings.ToLower(name), needle) {
				narrowed = append(narrowed, name)
			}
		}
		m.filtered = narrowed
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = 0
	}
}

func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select a device"))
	b.WriteString("\n\n")

	if m.filter.Focused() || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	if len(m.filtered) == 0 {
		b.WriteString(helpStyle.Render("  no devices match the filter"))
		b.WriteString("\n")
	}
	for i, name := range m.filtered {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(name))
		} else {
			b.WriteString("  " + name)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move · / filter · enter select · q quit"))
	b.WriteString("\n")
	return b.String()
}

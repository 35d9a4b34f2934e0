package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/lockgemfile/pkg/rewrite"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle       = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Pin table
// =============================================================================

// renderPinTable renders pins as a table of gem, line and inserted specifier.
func renderPinTable(pins []rewrite.Pin, mode rewrite.Mode) string {
	rows := make([][]string, len(pins))
	for i, p := range pins {
		rows[i] = []string{p.Gem, strconv.Itoa(p.Line), p.Specifier(mode)}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Gem", "Line", "Requirement").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return listDimStyle
			case col == 2:
				return StyleNumber
			}
			return listNormalStyle
		})
	return t.Render()
}

// =============================================================================
// PinListModel - interactive pin selection
// =============================================================================

// PinListModel is the bubbletea model for choosing which planned pins to
// apply. Every pin starts selected.
type PinListModel struct {
	Pins      []rewrite.Pin
	Mode      rewrite.Mode
	Selected  []bool
	Cursor    int
	Height    int
	Offset    int
	Confirmed bool
}

// NewPinListModel creates a pin list model with all pins selected.
func NewPinListModel(pins []rewrite.Pin, mode rewrite.Mode) PinListModel {
	selected := make([]bool, len(pins))
	for i := range selected {
		selected[i] = true
	}
	return PinListModel{
		Pins:     pins,
		Mode:     mode,
		Selected: selected,
		Height:   15,
	}
}

func (m PinListModel) Init() tea.Cmd {
	return nil
}

func (m PinListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Pins)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Selected) > 0 {
				m.Selected[m.Cursor] = !m.Selected[m.Cursor]
			}
		case "a":
			all := m.count() < len(m.Pins)
			for i := range m.Selected {
				m.Selected[i] = all
			}
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m PinListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Gems to Pin"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ apply  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Pins))
	for i := m.Offset; i < end; i++ {
		p := m.Pins[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if m.Selected[i] {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, check, p.Gem, listDimStyle.Render(p.Specifier(m.Mode)))
		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case m.Selected[i]:
			b.WriteString(listNormalStyle.Render(line))
		default:
			b.WriteString(listDimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d of %d selected", m.count(), len(m.Pins))))
	return b.String()
}

// Chosen returns the selected pins in source order.
func (m PinListModel) Chosen() []rewrite.Pin {
	var out []rewrite.Pin
	for i, p := range m.Pins {
		if m.Selected[i] {
			out = append(out, p)
		}
	}
	return out
}

func (m PinListModel) count() int {
	n := 0
	for _, s := range m.Selected {
		if s {
			n++
		}
	}
	return n
}

// runPinSelection runs the pin list on the terminal. ok is false when the
// user quits without confirming.
func runPinSelection(pins []rewrite.Pin, mode rewrite.Mode) ([]rewrite.Pin, bool, error) {
	p := tea.NewProgram(NewPinListModel(pins, mode), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("interactive selection: %w", err)
	}
	m := final.(PinListModel)
	if !m.Confirmed {
		return nil, false, nil
	}
	return m.Chosen(), true, nil
}

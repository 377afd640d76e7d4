package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tagcloud/pkg/document"
)

// headerRow is the row index lipgloss tables pass for the header.
const headerRow = -1

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// InspectModel - Interactive layout browser
// =============================================================================

// InspectModel is the bubbletea model for browsing a layout's words.
type InspectModel struct {
	Name   string
	Layout document.Layout

	// ShowSkipped switches the table to the words that were not placed.
	ShowSkipped bool

	// BySize orders placed words by descending font size.
	BySize bool

	Cursor int
	Offset int
	Height int

	order []int // indices into Layout.Words in display order
}

// NewInspectModel creates a model over layout.
func NewInspectModel(name string, layout document.Layout) InspectModel {
	m := InspectModel{Name: name, Layout: layout, Height: 15}
	m.sort()
	return m
}

func (m *InspectModel) sort() {
	m.order = make([]int, len(m.Layout.Words))
	for i := range m.order {
		m.order[i] = i
	}
	if m.BySize {
		slices.SortStableFunc(m.order, func(a, b int) int {
			return cmp.Compare(m.Layout.Words[b].Size, m.Layout.Words[a].Size)
		})
	}
}

// rowCount returns the number of rows in the current view.
func (m InspectModel) rowCount() int {
	if m.ShowSkipped {
		return len(m.Layout.Skipped)
	}
	return len(m.Layout.Words)
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown":
			m.move(m.Height)
		case "home", "g":
			m.move(-m.rowCount())
		case "end", "G":
			m.move(m.rowCount())
		case "tab":
			m.ShowSkipped = !m.ShowSkipped
			m.Cursor, m.Offset = 0, 0
		case "s":
			m.BySize = !m.BySize
			m.sort()
			m.Cursor, m.Offset = 0, 0
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
		m.clampOffset()
	}
	return m, nil
}

func (m *InspectModel) move(delta int) {
	n := m.rowCount()
	if n == 0 {
		return
	}
	m.Cursor = max(0, min(n-1, m.Cursor+delta))
	m.clampOffset()
}

func (m *InspectModel) clampOffset() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%dx%d %s · %d placed · %d skipped",
		m.Layout.Width, m.Layout.Height, m.Layout.Mode, m.Layout.Placed(), len(m.Layout.Skipped))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab placed/skipped  s sort  q quit"))
	b.WriteString("\n\n")

	if m.rowCount() == 0 {
		b.WriteString(listDimStyle.Render("  (no words)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.Offset+m.Height, m.rowCount())
	var t *table.Table
	if m.ShowSkipped {
		t = m.skippedTable(end)
	} else {
		t = m.placedTable(end)
	}

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rowCount())))

	return b.String()
}

func (m InspectModel) placedTable(end int) *table.Table {
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		w := m.Layout.Words[m.order[i]]
		rows = append(rows, []string{
			m.cursorMark(i),
			w.Text,
			formatFloat(w.Size),
			formatFloat(w.Rotation),
			formatFloat(w.X),
			formatFloat(w.Y),
			w.Fill,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Text", "Size", "Rotate", "X", "Y", "Fill").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			idx := m.Offset + row
			base := lipgloss.NewStyle()
			if col == 6 && idx < end {
				if fill := m.Layout.Words[m.order[idx]].Fill; fill != "" {
					base = base.Foreground(lipgloss.Color(fill))
				}
			}
			if idx == m.Cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		})
}

func (m InspectModel) skippedTable(end int) *table.Table {
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		s := m.Layout.Skipped[i]
		rows = append(rows, []string{m.cursorMark(i), strconv.Itoa(s.Row), s.Text, s.Reason})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Row", "Text", "Reason").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
}

func (m InspectModel) cursorMark(i int) string {
	if i == m.Cursor {
		return "▸"
	}
	return " "
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

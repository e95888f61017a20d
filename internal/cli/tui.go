package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	boardPanel   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

// =============================================================================
// LevelBrowserModel - Interactive level browser
// =============================================================================

// levelRow is one bundled level as shown by the browser.
type levelRow struct {
	Level    int
	Name     string
	Vehicles int
	Estimate int
	Rows     []string
}

// LevelBrowserModel is the bubbletea model for browsing bundled levels. The
// selected level's board is drawn next to the list.
type LevelBrowserModel struct {
	Levels []levelRow
	Cursor int
	Height int
	Offset int

	// Chosen is the level picked with enter, or 0 when the browser was quit.
	Chosen int
}

// NewLevelBrowserModel creates a new level browser.
func NewLevelBrowserModel(levels []levelRow) LevelBrowserModel {
	return LevelBrowserModel{
		Levels: levels,
		Height: 15,
	}
}

func (m LevelBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LevelBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Levels)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Levels) > 0 {
				m.Chosen = m.Levels[m.Cursor].Level
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		if m.Cursor >= m.Offset+m.Height {
			m.Offset = m.Cursor - m.Height + 1
		}
	}
	return m, nil
}

func (m LevelBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Levels"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if len(m.Levels) == 0 {
		b.WriteString(listDimStyle.Render("no levels"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Levels) {
		end = len(m.Levels)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := m.Levels[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, strconv.Itoa(l.Level), strconv.Itoa(l.Vehicles), strconv.Itoa(l.Estimate)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Level", "Vehicles", "Estimate").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})

	current := m.Levels[m.Cursor]
	board := boardPanel.Render(StyleTitle.Render(current.Name) + "\n\n" + renderBoard(current.Rows))

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, t.Render(), "  ", board))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Levels))))

	return b.String()
}

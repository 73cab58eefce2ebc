package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/table"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	detailKeyStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	detailBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
	gridCellStyle   = lipgloss.NewStyle().Foreground(colorDim)
	gridActiveStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// browseCommand opens the placement browser.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [file]",
		Short: "Interactively browse a table's placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTable(args[0])
			if err != nil {
				return err
			}
			if t.Len() == 0 {
				printInfo("%s has no grobs", t.Name())
				return nil
			}
			_, err = tea.NewProgram(NewPlacementListModel(t), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// =============================================================================
// PlacementListModel - Interactive placement browser
// =============================================================================

// PlacementListModel lists a table's placements with a detail pane and a
// small grid map of the selected placement's cells.
type PlacementListModel struct {
	Table  *table.Table
	Cells  []table.Cell
	Order  []int // indices into Cells, in display order
	ByZ    bool  // display in drawing order instead of layout order
	Cursor int
	Height int
	Offset int
}

// NewPlacementListModel creates a browser for t, listed in layout order.
func NewPlacementListModel(t *table.Table) PlacementListModel {
	m := PlacementListModel{Table: t, Cells: t.Cells(), Height: 12}
	m.Order = m.order()
	return m
}

func (m PlacementListModel) order() []int {
	if m.ByZ {
		return m.Table.DrawOrder()
	}
	idx := make([]int, len(m.Cells))
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Selected returns the cell under the cursor.
func (m PlacementListModel) Selected() table.Cell {
	return m.Cells[m.Order[m.Cursor]]
}

func (m PlacementListModel) Init() tea.Cmd {
	return nil
}

func (m PlacementListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Order)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "z":
			// Keep the same placement selected across the reorder.
			current := m.Order[m.Cursor]
			m.ByZ = !m.ByZ
			m.Order = m.order()
			for i, idx := range m.Order {
				if idx == current {
					m.Cursor = i
				}
			}
			m.Offset = max(0, min(m.Offset, m.Cursor))
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-16)
	}
	return m, nil
}

func (m PlacementListModel) View() string {
	var b strings.Builder

	rows, cols := m.Table.Dim()
	b.WriteString(StyleTitle.Render(m.Table.Name()))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %d x %d, %d grobs", rows, cols, len(m.Cells))))
	b.WriteString("\n")
	sortLabel := "layout order"
	if m.ByZ {
		sortLabel = "drawing order"
	}
	b.WriteString(listDimStyle.Render("↑/↓ navigate  z toggle order (" + sortLabel + ")  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Order))
	var lines [][]string
	for i := m.Offset; i < end; i++ {
		c := m.Cells[m.Order[i]]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		lines = append(lines, []string{
			cursor,
			strconv.Itoa(m.Order[i] + 1),
			table.FormatZ(c.Z),
			fmt.Sprintf("(%d-%d,%d-%d)", c.T, c.B, c.L, c.R),
			c.Name,
			grobIdentity(c),
		})
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "z", "cells", "name", "grob").
		Rows(lines...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, t.Render(), " ", m.detail()))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Order))))

	return b.String()
}

// detail describes the selected placement and maps its cells.
func (m PlacementListModel) detail() string {
	c := m.Selected()
	kv := func(k, v string) string { return detailKeyStyle.Render(k) + " " + StyleValue.Render(v) }
	lines := []string{
		kv("viewport", c.ViewportName()),
		kv("span", fmt.Sprintf("%d rows x %d cols", c.Rows(), c.Cols())),
		kv("clip", string(c.Clip)),
		kv("z", table.FormatZ(c.Z)),
		"",
		gridMap(m.Table, c.Placement),
	}
	return detailBoxStyle.Render(strings.Join(lines, "\n"))
}

// gridMap draws the table grid with the cells covered by p highlighted.
func gridMap(t *table.Table, p table.Placement) string {
	rows, cols := t.Dim()
	var b strings.Builder
	for r := 1; r <= rows; r++ {
		for c := 1; c <= cols; c++ {
			if r >= p.T && r <= p.B && c >= p.L && c <= p.R {
				b.WriteString(gridActiveStyle.Render("■ "))
			} else {
				b.WriteString(gridCellStyle.Render("□ "))
			}
		}
		if r < rows {
			b.WriteString("\n")
		}
	}
	return b.String()
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/table"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// showCommand prints a table's structure.
func (c *CLI) showCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a table's dimensions, axes and placements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := c.loadTable(args[0])
			if err != nil {
				return err
			}
			if plain {
				fmt.Fprint(c.Out, t.Summary())
				return nil
			}
			fmt.Fprintln(c.Out, renderOverview(t))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the plain text summary")
	return cmd
}

// renderOverview formats t as a title, its axes and its placements in
// drawing order.
func renderOverview(t *table.Table) string {
	rows, cols := t.Dim()
	title := StyleTitle.Render(t.Name()) + " " +
		StyleDim.Render(fmt.Sprintf("(%d x %d, %d grobs", rows, cols, t.Len()))
	if t.Respect() {
		title += StyleDim.Render(", respect")
	}
	title += StyleDim.Render(")")

	rownames, colnames := t.Dimnames()
	parts := []string{
		title,
		axisTable("row", t.Heights(), rownames),
		axisTable("col", t.Widths(), colnames),
	}
	if t.Len() > 0 {
		parts = append(parts, placementTable(t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func axisTable(axis string, sizes []unit.Unit, names []string) string {
	rows := make([][]string, len(sizes))
	for i, u := range sizes {
		name := ""
		if names != nil {
			name = names[i]
		}
		rows[i] = []string{strconv.Itoa(i + 1), name, u.String()}
	}
	return newStyledTable(axis, "name", "size").Rows(rows...).Render()
}

func placementTable(t *table.Table) string {
	cells := t.Cells()
	order := t.DrawOrder()
	rows := make([][]string, len(order))
	for i, idx := range order {
		c := cells[idx]
		rows[i] = []string{
			strconv.Itoa(idx + 1),
			table.FormatZ(c.Z),
			fmt.Sprintf("(%d-%d,%d-%d)", c.T, c.B, c.L, c.R),
			string(c.Clip),
			c.Name,
			grobIdentity(c),
		}
	}
	return newStyledTable("#", "z", "cells", "clip", "name", "grob").Rows(rows...).Render()
}

func grobIdentity(c table.Cell) string {
	if c.Grob == nil {
		return ""
	}
	return c.Grob.Identity()
}

func newStyledTable(headers ...string) *ltable.Table {
	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return StyleNumber.Padding(0, 1)
			}
			return StyleValue.Padding(0, 1)
		})
}

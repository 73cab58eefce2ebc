package table

import (
	"math"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// NewMatrix builds a table with one grob per cell. grobs[i][j] goes into
// row i+1, column j+1; nil entries leave the cell empty.
//
// Without [WithZ], grobs are stacked in row-major order. Every placement is
// named after the table and uses the clip mode from [WithClip].
func NewMatrix(grobs [][]grob.Grob, widths, heights []unit.Unit, opts ...Option) (*Table, error) {
	c := newConfig(opts)
	if len(grobs) != len(heights) {
		return nil, errors.Validation("grob matrix has %d rows, want %d", len(grobs), len(heights))
	}
	for i, row := range grobs {
		if len(row) != len(widths) {
			return nil, errors.Validation("grob matrix row %d has %d columns, want %d", i+1, len(row), len(widths))
		}
	}
	if c.z != nil {
		if len(c.z) != len(grobs) {
			return nil, errors.Validation("z matrix has %d rows, want %d", len(c.z), len(grobs))
		}
		for i, row := range c.z {
			if len(row) != len(widths) {
				return nil, errors.Validation("z matrix row %d has %d columns, want %d", i+1, len(row), len(widths))
			}
		}
	}

	t, err := New(widths, heights, opts...)
	if err != nil {
		return nil, err
	}
	for i, row := range grobs {
		for j, g := range row {
			if g == nil {
				continue
			}
			z := math.Inf(1)
			if c.z != nil {
				z = c.z[i][j]
			}
			p := Placement{T: i + 1, L: j + 1, Z: z, Clip: c.clip, Name: t.name}
			if t, err = t.AddGrob(g, p); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}

// NewCol stacks grobs vertically in a single column of the given width.
// heights defaults to one null unit per grob.
func NewCol(grobs []grob.Grob, width unit.Unit, heights []unit.Unit, opts ...Option) (*Table, error) {
	if heights == nil {
		heights = unit.Repeat(unit.Null(1), len(grobs))
	}
	matrix := make([][]grob.Grob, len(grobs))
	for i, g := range grobs {
		matrix[i] = []grob.Grob{g}
	}
	return NewMatrix(matrix, []unit.Unit{width}, heights, opts...)
}

// NewRow lays grobs out horizontally in a single row of the given height.
// widths defaults to one null unit per grob.
func NewRow(grobs []grob.Grob, height unit.Unit, widths []unit.Unit, opts ...Option) (*Table, error) {
	if widths == nil {
		widths = unit.Repeat(unit.Null(1), len(grobs))
	}
	row := make([]grob.Grob, len(grobs))
	copy(row, grobs)
	return NewMatrix([][]grob.Grob{row}, widths, []unit.Unit{height}, opts...)
}

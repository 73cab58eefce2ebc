// Package table provides a grid layout model for placing drawable objects.
//
// # Overview
//
// A [Table] is a grid of rows and columns. Every row has a height and every
// column a width, both given as [unit.Unit] values that the table stores but
// never resolves. Drawable objects ([grob.Grob]) are placed into the grid by
// a [Placement]: an inclusive rectangle of rows (T..B) and columns (L..R),
// a z value that decides drawing order, a clip mode and a name.
//
// Each placement and its grob are kept together in one [Cell], so the layout
// record and the grob list can never disagree in length: [Table.Layout] and
// [Table.Grobs] always return index-aligned slices.
//
// # Structural Edits
//
// Tables are values. Every edit returns a new *Table and leaves the receiver
// untouched, so a derived table never shares slices with its parent:
//
//	t, _ := table.New(unit.Repeat(unit.Null(1), 3), unit.Repeat(unit.Null(1), 3))
//	t, _ = t.AddGrob(grob.NewRect("red"), table.Placement{T: 1, L: 1, B: 2, R: 3})
//	sub, _ := t.Subset(table.Positions(2, 3), table.All())
//	tt := t.Transpose()
//
// [Table.Subset] keeps a placement only when all four of its extents fall
// inside the kept rows and columns, and renumbers the survivors so that they
// point at the same rows and columns in the smaller grid. Placements that
// straddle a dropped row or column are removed together with their grob.
//
// Other edits insert rows and columns ([Table.AddRows], [Table.AddCols],
// [Table.AddPadding]), combine tables ([RBind], [CBind]) and prune them
// ([Table.Filter], [Table.Trim]).
//
// # Names
//
// Rows and columns may carry names. When present there is exactly one name
// per row/column and no name occurs twice; [New] and [Table.SetDimnames]
// reject anything else with an INVALID_INPUT error from
// [github.com/matzehuels/gridtable/pkg/errors]. Selectors that reference
// unknown names or positions fail with INDEX_OUT_OF_RANGE.
//
// # Drawing
//
// The package does not draw. [Table.Draw] hands the table to a [Renderer];
// the render package provides SVG, JSON and diagram renderers.
package table

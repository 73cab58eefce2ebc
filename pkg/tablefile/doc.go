// Package tablefile reads and writes table definitions as JSON or TOML.
//
// # Format
//
// A definition lists the grid sizes, optional names and the grobs placed
// into it. Sizes use the unit syntax of [unit.Parse]: "2cm", "1null",
// "max(1null,3lines)"; a bare number is a null unit.
//
//	name    = "figure"
//	respect = false
//	widths  = ["2cm", "1null"]
//	heights = ["1lines", "1null"]
//	colnames = ["axis", "panel"]
//
//	[[grobs]]
//	kind  = "text"
//	label = "Sales"
//	t = 1
//	l = 1
//	r = 2
//	name = "title"
//
//	[[grobs]]
//	kind = "rect"
//	fill = "steelblue"
//	t = 2
//	l = 2
//	z = 3
//	clip = "off"
//
// Grobs are added in file order with the rules of [table.Table.AddGrob]:
// b and r default to t and l, negative positions count from the end and an
// omitted z stacks the grob on top of everything before it. A grob of kind
// "table" carries a nested definition under its "table" key.
//
// The same structure is used for JSON, with identical key names.
//
// # Errors
//
// Malformed documents and unknown keys return INVALID_FORMAT errors. Valid
// documents that describe an invalid table return the table package's
// INVALID_INPUT or INDEX_OUT_OF_RANGE errors, wrapped with the grob number.
package tablefile

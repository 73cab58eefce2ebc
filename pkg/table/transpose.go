package table

// Transpose swaps rows and columns. Widths become heights, row names become
// column names, and every placement is mirrored across the diagonal.
// Transposing twice yields a table equal to the original.
func (t *Table) Transpose() *Table {
	out := t.clone()
	out.widths, out.heights = out.heights, out.widths
	out.rownames, out.colnames = out.colnames, out.rownames
	for i := range out.cells {
		p := &out.cells[i].Placement
		p.T, p.R, p.B, p.L = p.L, p.B, p.R, p.T
	}
	return out
}

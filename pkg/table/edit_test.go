package table

import (
	"context"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/unit"
)

func TestAddRows(t *testing.T) {
	tbl := grid(t, 3, 1)
	tbl = place(t, tbl, "above", 1, 1, 1, 1, 1)
	tbl = place(t, tbl, "span", 1, 1, 3, 1, 2)
	tbl = place(t, tbl, "below", 3, 1, 3, 1, 3)

	got, err := tbl.AddRows([]unit.Unit{unit.Cm(1), unit.Cm(2)}, 1)
	if err != nil {
		t.Fatalf("AddRows: %v", err)
	}
	if r, _ := got.Dim(); r != 5 {
		t.Fatalf("rows = %d, want 5", r)
	}
	want := []unit.Unit{unit.Null(1), unit.Cm(1), unit.Cm(2), unit.Null(1), unit.Null(1)}
	if !unit.EqualSlices(got.Heights(), want) {
		t.Errorf("heights = %v, want %v", got.Heights(), want)
	}

	checks := map[string][2]int{"above": {1, 1}, "span": {1, 5}, "below": {5, 5}}
	for name, tb := range checks {
		p := placementByName(t, got, name)
		if p.T != tb[0] || p.B != tb[1] {
			t.Errorf("%s = t%d b%d, want t%d b%d", name, p.T, p.B, tb[0], tb[1])
		}
	}
}

func TestAddRowsPositions(t *testing.T) {
	tbl := grid(t, 2, 1)

	tests := []struct {
		name string
		pos  int
		want int // index of the inserted row
	}{
		{"top", 0, 0},
		{"middle", 1, 1},
		{"bottom", 2, 2},
		{"from end", -1, 2},
		{"before last", -2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.AddRows([]unit.Unit{unit.Cm(5)}, tt.pos)
			if err != nil {
				t.Fatalf("AddRows: %v", err)
			}
			if h := got.Heights()[tt.want]; !h.Equal(unit.Cm(5)) {
				t.Errorf("heights = %v, inserted row not at %d", got.Heights(), tt.want)
			}
		})
	}

	for _, pos := range []int{3, -4} {
		if _, err := tbl.AddRows([]unit.Unit{unit.Cm(5)}, pos); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
			t.Errorf("AddRows(pos=%d) err = %v, want INDEX_OUT_OF_RANGE", pos, err)
		}
	}
}

func TestAddRowsNames(t *testing.T) {
	named := grid(t, 2, 1, WithRowNames("a", "b"))

	got, err := named.AddRows([]unit.Unit{unit.Cm(1)}, 1, "gap")
	if err != nil {
		t.Fatalf("AddRows: %v", err)
	}
	if rn, _ := got.Dimnames(); !slices.Equal(rn, []string{"a", "gap", "b"}) {
		t.Errorf("rownames = %v", rn)
	}

	if _, err := named.AddRows([]unit.Unit{unit.Cm(1)}, 1); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("missing names: err = %v", err)
	}
	if _, err := named.AddRows([]unit.Unit{unit.Cm(1)}, 1, "a"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate name: err = %v", err)
	}
	if _, err := grid(t, 2, 1).AddRows([]unit.Unit{unit.Cm(1)}, 1, "x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("names on unnamed axis: err = %v", err)
	}
}

func TestAddCols(t *testing.T) {
	tbl := grid(t, 1, 2, WithColNames("a", "b"))
	tbl = place(t, tbl, "right", 1, 2, 1, 2, 1)

	got, err := tbl.AddCols([]unit.Unit{unit.Mm(3)}, 0, "first")
	if err != nil {
		t.Fatalf("AddCols: %v", err)
	}
	if _, c := got.Dim(); c != 3 {
		t.Fatalf("cols = %d, want 3", c)
	}
	if _, cn := got.Dimnames(); !slices.Equal(cn, []string{"first", "a", "b"}) {
		t.Errorf("colnames = %v", cn)
	}
	if p := placementByName(t, got, "right"); p.L != 3 || p.R != 3 || p.T != 1 {
		t.Errorf("right = %+v", p)
	}
	if !got.Widths()[0].Equal(unit.Mm(3)) {
		t.Errorf("widths = %v", got.Widths())
	}
}

func TestAddRowSpace(t *testing.T) {
	tbl := place(t, grid(t, 3, 1), "last", 3, 1, 3, 1, 1)

	got, err := tbl.AddRowSpace(unit.Points(4))
	if err != nil {
		t.Fatalf("AddRowSpace: %v", err)
	}
	want := []unit.Unit{unit.Null(1), unit.Points(4), unit.Null(1), unit.Points(4), unit.Null(1)}
	if !unit.EqualSlices(got.Heights(), want) {
		t.Errorf("heights = %v", got.Heights())
	}
	if p := placementByName(t, got, "last"); p.T != 5 {
		t.Errorf("last.T = %d, want 5", p.T)
	}

	named, err := grid(t, 3, 1, WithRowNames("a", "b", "c")).AddRowSpace(unit.Points(4))
	if err != nil {
		t.Fatalf("AddRowSpace named: %v", err)
	}
	if rn, _ := named.Dimnames(); !slices.Equal(rn, []string{"a", ".space1", "b", ".space2", "c"}) {
		t.Errorf("rownames = %v", rn)
	}

	single, err := grid(t, 1, 1).AddRowSpace(unit.Points(4))
	if err != nil {
		t.Fatalf("single row: %v", err)
	}
	if r, _ := single.Dim(); r != 1 {
		t.Errorf("single row table grew to %d rows", r)
	}
}

func TestAddColSpace(t *testing.T) {
	got, err := grid(t, 1, 3).AddColSpace(unit.Points(2))
	if err != nil {
		t.Fatalf("AddColSpace: %v", err)
	}
	if _, c := got.Dim(); c != 5 {
		t.Errorf("cols = %d, want 5", c)
	}
}

func TestAddPadding(t *testing.T) {
	tbl := place(t, grid(t, 1, 1), "body", 1, 1, 1, 1, 1)

	got, err := tbl.AddPadding(unit.Cm(1), unit.Cm(2), unit.Cm(3), unit.Cm(4))
	if err != nil {
		t.Fatalf("AddPadding: %v", err)
	}
	if r, c := got.Dim(); r != 3 || c != 3 {
		t.Fatalf("Dim() = (%d, %d), want (3, 3)", r, c)
	}
	if !unit.EqualSlices(got.Heights(), []unit.Unit{unit.Cm(1), unit.Null(1), unit.Cm(3)}) {
		t.Errorf("heights = %v", got.Heights())
	}
	if !unit.EqualSlices(got.Widths(), []unit.Unit{unit.Cm(4), unit.Null(1), unit.Cm(2)}) {
		t.Errorf("widths = %v", got.Widths())
	}
	if p := placementByName(t, got, "body"); p.T != 2 || p.L != 2 || p.B != 2 || p.R != 2 {
		t.Errorf("body = %+v", p)
	}

	named := grid(t, 1, 1, WithRowNames("r"), WithColNames("c"))
	padded, err := named.AddPadding(unit.Cm(1), unit.Cm(1), unit.Cm(1), unit.Cm(1))
	if err != nil {
		t.Fatalf("AddPadding named: %v", err)
	}
	rn, cn := padded.Dimnames()
	if !slices.Equal(rn, []string{".pad.top", "r", ".pad.bottom"}) || !slices.Equal(cn, []string{".pad.left", "c", ".pad.right"}) {
		t.Errorf("Dimnames() = (%v, %v)", rn, cn)
	}
}

func TestNormalizeZ(t *testing.T) {
	tbl := grid(t, 1, 1)
	tbl = place(t, tbl, "a", 1, 1, 1, 1, 10)
	tbl = place(t, tbl, "b", 1, 1, 1, 1, -3)
	tbl = place(t, tbl, "c", 1, 1, 1, 1, 10)

	got := tbl.NormalizeZ()
	want := map[string]float64{"b": 1, "a": 2, "c": 3}
	for _, p := range got.Layout() {
		if p.Z != want[p.Name] {
			t.Errorf("%s z = %v, want %v", p.Name, p.Z, want[p.Name])
		}
	}
	if tbl.Layout()[0].Z != 10 {
		t.Error("NormalizeZ modified the receiver")
	}
}

func TestRBind(t *testing.T) {
	x := place(t, grid(t, 1, 2, WithRowNames("x1")), "x", 1, 1, 1, 2, 5)
	y, err := New([]unit.Unit{unit.Cm(1), unit.Null(1)}, []unit.Unit{unit.Cm(2), unit.Cm(3)}, WithRowNames("y1", "y2"), WithRespect(true))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	y = place(t, y, "y", 2, 1, 2, 1, 1)

	got, err := RBind(x, y, SizeMax)
	if err != nil {
		t.Fatalf("RBind: %v", err)
	}
	if r, c := got.Dim(); r != 3 || c != 2 {
		t.Fatalf("Dim() = (%d, %d), want (3, 2)", r, c)
	}
	wantWidths := []unit.Unit{unit.Max(unit.Null(1), unit.Cm(1)), unit.Null(1)}
	if !unit.EqualSlices(got.Widths(), wantWidths) {
		t.Errorf("widths = %v, want %v", got.Widths(), wantWidths)
	}
	if rn, _ := got.Dimnames(); !slices.Equal(rn, []string{"x1", "y1", "y2"}) {
		t.Errorf("rownames = %v", rn)
	}
	p := placementByName(t, got, "y")
	if p.T != 3 || p.B != 3 {
		t.Errorf("y = t%d b%d, want t3 b3", p.T, p.B)
	}
	if p.Z <= placementByName(t, got, "x").Z {
		t.Errorf("y z = %v not above x", p.Z)
	}
	if !got.Respect() || got.Name() != x.Name() {
		t.Error("respect or name not combined")
	}
}

func TestRBindSizes(t *testing.T) {
	x, _ := New([]unit.Unit{unit.Cm(1)}, []unit.Unit{unit.Null(1)})
	y, _ := New([]unit.Unit{unit.Cm(2)}, []unit.Unit{unit.Null(1)})

	tests := []struct {
		size Size
		want unit.Unit
	}{
		{SizeFirst, unit.Cm(1)},
		{SizeLast, unit.Cm(2)},
		{SizeMax, unit.Max(unit.Cm(1), unit.Cm(2))},
		{SizeMin, unit.Min(unit.Cm(1), unit.Cm(2))},
	}
	for _, tt := range tests {
		got, err := RBind(x, y, tt.size)
		if err != nil {
			t.Fatalf("RBind(%s): %v", tt.size, err)
		}
		if w := got.Widths()[0]; !w.Equal(tt.want) {
			t.Errorf("RBind(%s) width = %v, want %v", tt.size, w, tt.want)
		}
	}
}

func TestBindErrors(t *testing.T) {
	x := grid(t, 1, 2)
	y := grid(t, 1, 3)
	if _, err := RBind(x, y, SizeMax); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RBind mismatched columns: err = %v", err)
	}
	if _, err := CBind(grid(t, 2, 1), grid(t, 3, 1), SizeMax); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("CBind mismatched rows: err = %v", err)
	}
	if _, err := RBind(grid(t, 1, 1, WithRowNames("a")), grid(t, 1, 1, WithRowNames("a")), SizeMax); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RBind duplicate names: err = %v", err)
	}
	if _, err := RBind(x, grid(t, 1, 2), "widest"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RBind bad size: err = %v", err)
	}
}

func TestCBind(t *testing.T) {
	x := place(t, grid(t, 2, 1), "x", 1, 1, 2, 1, 1)
	y := place(t, grid(t, 2, 2), "y", 1, 2, 1, 2, 1)

	got, err := CBind(x, y, SizeFirst)
	if err != nil {
		t.Fatalf("CBind: %v", err)
	}
	if r, c := got.Dim(); r != 2 || c != 3 {
		t.Fatalf("Dim() = (%d, %d), want (2, 3)", r, c)
	}
	if p := placementByName(t, got, "y"); p.L != 3 || p.R != 3 || p.T != 1 {
		t.Errorf("y = %+v", p)
	}
	if p := placementByName(t, got, "x"); p.T != 1 || p.B != 2 || p.L != 1 {
		t.Errorf("x = %+v", p)
	}
}

func TestParseSize(t *testing.T) {
	for _, s := range []string{"", "max", "min", "first", "last"} {
		if _, err := ParseSize(s); err != nil {
			t.Errorf("ParseSize(%q): %v", s, err)
		}
	}
	if _, err := ParseSize("biggest"); err == nil {
		t.Error("ParseSize(biggest) expected error")
	}
}

func TestFilterAndTrim(t *testing.T) {
	tbl := grid(t, 4, 4)
	tbl = place(t, tbl, "axis-l", 2, 1, 3, 1, 1)
	tbl = place(t, tbl, "panel", 2, 2, 3, 3, 2)
	tbl = place(t, tbl, "title", 1, 1, 1, 4, 3)

	panels := tbl.Filter(regexp.MustCompile(`^panel$`), false, false)
	if want := []string{"panel"}; !slices.Equal(names(panels), want) {
		t.Errorf("Filter kept %v", names(panels))
	}
	if r, c := panels.Dim(); r != 4 || c != 4 {
		t.Errorf("untrimmed Dim() = (%d, %d)", r, c)
	}

	trimmed := tbl.Filter(regexp.MustCompile(`^panel$`), false, true)
	if r, c := trimmed.Dim(); r != 2 || c != 2 {
		t.Errorf("trimmed Dim() = (%d, %d), want (2, 2)", r, c)
	}
	if p := trimmed.Layout()[0]; p.T != 1 || p.L != 1 || p.B != 2 || p.R != 2 {
		t.Errorf("trimmed panel = %+v", p)
	}

	rest := tbl.Filter(regexp.MustCompile(`^axis`), true, false)
	if want := []string{"panel", "title"}; !slices.Equal(names(rest), want) {
		t.Errorf("inverted Filter kept %v", names(rest))
	}
}

func TestTrimEmpty(t *testing.T) {
	got := grid(t, 3, 2).Trim()
	if r, c := got.Dim(); r != 0 || c != 0 {
		t.Errorf("Dim() = (%d, %d), want (0, 0)", r, c)
	}
}

func TestNewMatrix(t *testing.T) {
	a, b, c := grob.NewRect("a"), grob.NewRect("b"), grob.NewRect("c")
	tbl, err := NewMatrix(
		[][]grob.Grob{{a, nil}, {b, c}},
		unit.Repeat(unit.Null(1), 2),
		unit.Repeat(unit.Null(1), 2),
		WithName("m"),
		WithClip(ClipOff),
	)
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}
	layout, grobs := tbl.Layout(), tbl.Grobs()
	want := []Placement{
		{T: 1, L: 1, B: 1, R: 1, Z: 1, Clip: ClipOff, Name: "m"},
		{T: 2, L: 1, B: 2, R: 1, Z: 2, Clip: ClipOff, Name: "m"},
		{T: 2, L: 2, B: 2, R: 2, Z: 3, Clip: ClipOff, Name: "m"},
	}
	if !slices.Equal(layout, want) {
		t.Errorf("layout = %+v", layout)
	}
	if grobs[0] != grob.Grob(a) || grobs[1] != grob.Grob(b) || grobs[2] != grob.Grob(c) {
		t.Error("grobs misaligned")
	}
}

func TestNewMatrixZAndErrors(t *testing.T) {
	g := grob.NewNull()
	tbl, err := NewMatrix([][]grob.Grob{{g}}, []unit.Unit{unit.Null(1)}, []unit.Unit{unit.Null(1)}, WithZ([][]float64{{7}}))
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	if z := tbl.Layout()[0].Z; z != 7 {
		t.Errorf("z = %v, want 7", z)
	}

	if _, err := NewMatrix([][]grob.Grob{{g}}, nil, []unit.Unit{unit.Null(1)}); err == nil {
		t.Error("expected shape error")
	}
	if _, err := NewMatrix([][]grob.Grob{{g}}, []unit.Unit{unit.Null(1)}, []unit.Unit{unit.Null(1)}, WithZ([][]float64{{1, 2}})); err == nil {
		t.Error("expected z shape error")
	}
}

func TestNewColRow(t *testing.T) {
	gs := []grob.Grob{grob.NewText("a"), grob.NewText("b"), grob.NewText("c")}

	col, err := NewCol(gs, unit.Cm(2), nil, WithName("col"))
	if err != nil {
		t.Fatalf("NewCol: %v", err)
	}
	if r, c := col.Dim(); r != 3 || c != 1 {
		t.Errorf("NewCol Dim() = (%d, %d)", r, c)
	}
	if p := col.Layout()[2]; p.T != 3 || p.L != 1 {
		t.Errorf("third placement = %+v", p)
	}

	row, err := NewRow(gs, unit.Cm(1), []unit.Unit{unit.Cm(1), unit.Cm(2), unit.Cm(3)})
	if err != nil {
		t.Fatalf("NewRow: %v", err)
	}
	if r, c := row.Dim(); r != 1 || c != 3 {
		t.Errorf("NewRow Dim() = (%d, %d)", r, c)
	}
	if p := row.Layout()[1]; p.T != 1 || p.L != 2 {
		t.Errorf("second placement = %+v", p)
	}
}

func TestSummary(t *testing.T) {
	empty, _ := New(nil, nil)
	if got, want := empty.Summary(), "TableGrob (0 x 0) \"layout\": 0 grobs\n"; got != want {
		t.Errorf("empty Summary() = %q, want %q", got, want)
	}

	tbl := grid(t, 2, 3)
	r1 := &grob.Rect{ID: "r1"}
	r2 := &grob.Rect{ID: "r2"}
	r3 := &grob.Rect{ID: "r3"}
	tbl, _ = tbl.AddGrob(r1, Placement{T: 1, L: 1, R: 3, Z: 2, Name: "late"})
	tbl, _ = tbl.AddGrob(r2, Placement{T: 2, L: 1, Z: 1, Name: "early"})
	tbl, _ = tbl.AddGrob(r3, Placement{T: 2, L: 2, Z: 1, Name: "early2"})

	lines := strings.Split(strings.TrimRight(tbl.Summary(), "\n"), "\n")
	if lines[0] != `TableGrob (2 x 3) "layout": 3 grobs` {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), tbl.Summary())
	}
	wantOrder := []string{"early ", "early2", "late"}
	for i, name := range wantOrder {
		if !strings.Contains(lines[i+2], name) {
			t.Errorf("line %d = %q, want %q", i+2, lines[i+2], name)
		}
	}
	if f := strings.Fields(lines[2]); f[0] != "2" || f[1] != "1" || f[2] != "(2-2,1-1)" || f[4] != "rect[r2]" {
		t.Errorf("line fields = %v", f)
	}
	if f := strings.Fields(lines[4]); f[2] != "(1-1,1-3)" {
		t.Errorf("span cells = %v", f)
	}
	if tbl.String() != tbl.Summary() {
		t.Error("String() differs from Summary()")
	}
}

type recordingRenderer struct{ got *Table }

func (r *recordingRenderer) Render(_ context.Context, t *Table) error {
	r.got = t
	return nil
}

func TestDraw(t *testing.T) {
	tbl := grid(t, 1, 1)
	r := &recordingRenderer{}
	if err := tbl.Draw(context.Background(), r); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if r.got != tbl {
		t.Error("renderer did not receive the table")
	}
	if err := tbl.Draw(context.Background(), nil); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Draw(nil) err = %v", err)
	}
}

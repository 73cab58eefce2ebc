package table

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
	"github.com/matzehuels/gridtable/pkg/unit"
)

// grid returns an r x c table of null units.
func grid(t *testing.T, r, c int, opts ...Option) *Table {
	t.Helper()
	tbl, err := New(unit.Repeat(unit.Null(1), c), unit.Repeat(unit.Null(1), r), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

// place adds a rect at the given extents and fails the test on error.
func place(t *testing.T, tbl *Table, name string, top, left, bottom, right int, z float64) *Table {
	t.Helper()
	out, err := tbl.AddGrob(grob.NewRect(""), Placement{T: top, L: left, B: bottom, R: right, Z: z, Name: name})
	if err != nil {
		t.Fatalf("AddGrob(%s): %v", name, err)
	}
	return out
}

func names(tbl *Table) []string {
	var out []string
	for _, p := range tbl.Layout() {
		out = append(out, p.Name)
	}
	return out
}

func placementByName(t *testing.T, tbl *Table, name string) Placement {
	t.Helper()
	for _, p := range tbl.Layout() {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no placement named %q", name)
	return Placement{}
}

func TestNewEmpty(t *testing.T) {
	tbl, err := New(nil, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r, c := tbl.Dim(); r != 0 || c != 0 {
		t.Errorf("Dim() = (%d, %d), want (0, 0)", r, c)
	}
	if tbl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tbl.Len())
	}
	if tbl.Name() != DefaultName {
		t.Errorf("Name() = %q, want %q", tbl.Name(), DefaultName)
	}
	rn, cn := tbl.Dimnames()
	if rn != nil || cn != nil {
		t.Errorf("Dimnames() = (%v, %v), want nil names", rn, cn)
	}
}

func TestNewOptions(t *testing.T) {
	tbl, err := New(
		[]unit.Unit{unit.Cm(1), unit.Null(1)},
		[]unit.Unit{unit.Null(2)},
		WithRespect(true),
		WithName("panel"),
		WithRowNames("top"),
		WithColNames("axis", "body"),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !tbl.Respect() {
		t.Error("Respect() = false, want true")
	}
	if tbl.Name() != "panel" {
		t.Errorf("Name() = %q, want panel", tbl.Name())
	}
	rn, cn := tbl.Dimnames()
	if !slices.Equal(rn, []string{"top"}) || !slices.Equal(cn, []string{"axis", "body"}) {
		t.Errorf("Dimnames() = (%v, %v)", rn, cn)
	}
	if !unit.EqualSlices(tbl.Widths(), []unit.Unit{unit.Cm(1), unit.Null(1)}) {
		t.Errorf("Widths() = %v", tbl.Widths())
	}
}

func TestNewValidation(t *testing.T) {
	widths := unit.Repeat(unit.Null(1), 2)
	heights := unit.Repeat(unit.Null(1), 3)

	tests := []struct {
		name string
		opts []Option
	}{
		{"colnames too short", []Option{WithColNames("a")}},
		{"colnames too long", []Option{WithColNames("a", "b", "c")}},
		{"rownames mismatch", []Option{WithRowNames("a", "b")}},
		{"duplicate rownames", []Option{WithRowNames("a", "b", "a")}},
		{"duplicate colnames", []Option{WithColNames("x", "x")}},
		{"empty name", []Option{WithName("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(widths, heights, tt.opts...)
			if err == nil {
				t.Fatal("New() expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestNewCopiesInputs(t *testing.T) {
	widths := []unit.Unit{unit.Cm(1)}
	tbl, err := New(widths, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	widths[0] = unit.Cm(9)
	if got := tbl.Widths()[0]; !got.Equal(unit.Cm(1)) {
		t.Errorf("table aliased caller slice: width = %v", got)
	}
}

func TestIs(t *testing.T) {
	tbl := grid(t, 1, 1)
	if !Is(tbl) {
		t.Error("Is(table) = false")
	}
	for _, v := range []any{nil, 1, "layout", grob.NewRect("")} {
		if Is(v) {
			t.Errorf("Is(%T) = true", v)
		}
	}
}

func TestLayoutGrobsAligned(t *testing.T) {
	tbl := grid(t, 2, 2)
	a, b := grob.NewRect("red"), grob.NewText("hi")
	tbl, _ = tbl.AddGrob(a, Placement{T: 1, L: 1, Name: "a"})
	tbl, _ = tbl.AddGrob(b, Placement{T: 2, L: 2, Name: "b"})

	layout, grobs := tbl.Layout(), tbl.Grobs()
	if len(layout) != len(grobs) || len(layout) != tbl.Len() {
		t.Fatalf("len(layout)=%d len(grobs)=%d Len()=%d", len(layout), len(grobs), tbl.Len())
	}
	if layout[0].Name != "a" || grobs[0] != a {
		t.Error("index 0 misaligned")
	}
	if layout[1].Name != "b" || grobs[1] != b {
		t.Error("index 1 misaligned")
	}
}

func TestSetDimnames(t *testing.T) {
	tbl := grid(t, 2, 2)

	named, err := tbl.SetDimnames([]string{"a", "b"}, []string{"x", "y"})
	if err != nil {
		t.Fatalf("SetDimnames: %v", err)
	}
	rn, cn := named.Dimnames()
	if !slices.Equal(rn, []string{"a", "b"}) || !slices.Equal(cn, []string{"x", "y"}) {
		t.Errorf("Dimnames() = (%v, %v)", rn, cn)
	}
	if rn, _ := tbl.Dimnames(); rn != nil {
		t.Error("SetDimnames modified the receiver")
	}

	unnamed, err := named.SetDimnames(nil, nil)
	if err != nil {
		t.Fatalf("SetDimnames(nil, nil): %v", err)
	}
	if rn, cn := unnamed.Dimnames(); rn != nil || cn != nil {
		t.Errorf("names not cleared: (%v, %v)", rn, cn)
	}
}

func TestSetDimnamesRejectsDuplicates(t *testing.T) {
	tbl := grid(t, 2, 2)

	if _, err := tbl.SetDimnames([]string{"a", "a"}, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("duplicate rownames: err = %v, want INVALID_INPUT", err)
	}
	if _, err := tbl.SetDimnames([]string{"a", "b"}, nil); err != nil {
		t.Errorf("unique rownames: %v", err)
	}
}

func TestSetDimnamesAtomic(t *testing.T) {
	tbl, err := grid(t, 2, 2).SetDimnames([]string{"r1", "r2"}, []string{"c1", "c2"})
	if err != nil {
		t.Fatalf("SetDimnames: %v", err)
	}

	// Valid rownames, invalid colnames: nothing may change.
	out, err := tbl.SetDimnames([]string{"new1", "new2"}, []string{"x", "x"})
	if err == nil {
		t.Fatal("expected error for duplicate colnames")
	}
	if out != nil {
		t.Error("failed SetDimnames returned a table")
	}
	rn, cn := tbl.Dimnames()
	if !slices.Equal(rn, []string{"r1", "r2"}) || !slices.Equal(cn, []string{"c1", "c2"}) {
		t.Errorf("receiver changed: (%v, %v)", rn, cn)
	}
}

func TestAddGrobDefaults(t *testing.T) {
	tbl := grid(t, 3, 3, WithName("plot"))
	tbl, err := tbl.AddGrob(grob.NewRect(""), Placement{T: 2, L: 3})
	if err != nil {
		t.Fatalf("AddGrob: %v", err)
	}
	p := tbl.Layout()[0]
	want := Placement{T: 2, L: 3, B: 2, R: 3, Z: 0, Clip: ClipOn, Name: "plot"}
	if p != want {
		t.Errorf("placement = %+v, want %+v", p, want)
	}
}

func TestAddGrobNegativePositions(t *testing.T) {
	tbl := grid(t, 3, 4)
	tbl, err := tbl.AddGrob(grob.NewRect(""), Placement{T: -1, L: 1, B: -1, R: -1})
	if err != nil {
		t.Fatalf("AddGrob: %v", err)
	}
	p := tbl.Layout()[0]
	if p.T != 3 || p.B != 3 || p.L != 1 || p.R != 4 {
		t.Errorf("placement = %+v, want t=b=3 l=1 r=4", p)
	}
}

func TestAddGrobInfiniteZ(t *testing.T) {
	tbl := grid(t, 1, 1)
	tbl = place(t, tbl, "first", 1, 1, 1, 1, math.Inf(1))
	tbl = place(t, tbl, "mid", 1, 1, 1, 1, 5)
	tbl = place(t, tbl, "top", 1, 1, 1, 1, math.Inf(1))
	tbl = place(t, tbl, "bottom", 1, 1, 1, 1, math.Inf(-1))

	want := map[string]float64{"first": 1, "mid": 5, "top": 6, "bottom": 0}
	for _, p := range tbl.Layout() {
		if p.Z != want[p.Name] {
			t.Errorf("%s z = %v, want %v", p.Name, p.Z, want[p.Name])
		}
	}
}

func TestAddGrobErrors(t *testing.T) {
	tbl := grid(t, 2, 2)

	tests := []struct {
		name string
		grob grob.Grob
		p    Placement
		code errors.Code
	}{
		{"nil grob", nil, Placement{T: 1, L: 1}, errors.ErrCodeInvalidInput},
		{"row out of range", grob.NewNull(), Placement{T: 3, L: 1}, errors.ErrCodeIndexOutOfRange},
		{"column out of range", grob.NewNull(), Placement{T: 1, L: 1, R: 5}, errors.ErrCodeIndexOutOfRange},
		{"zero top", grob.NewNull(), Placement{T: 0, L: 1, B: 1}, errors.ErrCodeIndexOutOfRange},
		{"top below bottom", grob.NewNull(), Placement{T: 2, L: 1, B: 1}, errors.ErrCodeInvalidInput},
		{"bad clip", grob.NewNull(), Placement{T: 1, L: 1, Clip: "sometimes"}, errors.ErrCodeInvalidInput},
		{"nan z", grob.NewNull(), Placement{T: 1, L: 1, Z: math.NaN()}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tbl.AddGrob(tt.grob, tt.p)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %v", err, tt.code)
			}
		})
	}
	if tbl.Len() != 0 {
		t.Error("failed AddGrob modified the receiver")
	}
}

func TestZOrderStable(t *testing.T) {
	tbl := grid(t, 1, 1)
	tbl = place(t, tbl, "c", 1, 1, 1, 1, 2)
	tbl = place(t, tbl, "a", 1, 1, 1, 1, 1)
	tbl = place(t, tbl, "d", 1, 1, 1, 1, 2)
	tbl = place(t, tbl, "b", 1, 1, 1, 1, 1)

	var got []string
	for _, c := range tbl.ZOrder() {
		got = append(got, c.Name)
	}
	if want := []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Errorf("ZOrder() = %v, want %v", got, want)
	}
	if want := []string{"c", "a", "d", "b"}; !slices.Equal(names(tbl), want) {
		t.Errorf("stored order changed: %v", names(tbl))
	}
}

func TestValidate(t *testing.T) {
	tbl := place(t, grid(t, 2, 2), "a", 1, 1, 2, 2, 1)
	if err := tbl.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	broken := tbl.clone()
	broken.cells[0].B = 5
	if err := broken.Validate(); !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("Validate() = %v, want INDEX_OUT_OF_RANGE", err)
	}

	broken = tbl.clone()
	broken.cells[0].Grob = nil
	if err := broken.Validate(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Validate() = %v, want INVALID_INPUT", err)
	}
}

func TestEqual(t *testing.T) {
	tbl := place(t, grid(t, 2, 2), "a", 1, 1, 1, 1, 1)
	if !tbl.Equal(tbl.clone()) {
		t.Error("clone should be equal")
	}
	other := place(t, grid(t, 2, 2), "a", 1, 1, 1, 1, 1)
	if tbl.Equal(other) {
		t.Error("tables with different grobs should differ")
	}
	var nilTable *Table
	if tbl.Equal(nilTable) || !nilTable.Equal(nil) {
		t.Error("nil handling")
	}
}

// polyline is a value grob whose type is not comparable.
type polyline struct{ xs []float64 }

func (p polyline) Identity() string { return "polyline" }

func TestEqualNonComparableGrob(t *testing.T) {
	add := func(g grob.Grob) *Table {
		t.Helper()
		tbl, err := grid(t, 1, 1).AddGrob(g, Placement{T: 1, L: 1})
		if err != nil {
			t.Fatalf("AddGrob: %v", err)
		}
		return tbl
	}
	a := add(polyline{xs: []float64{1, 2}})
	if !a.Equal(add(polyline{xs: []float64{1, 2}})) {
		t.Error("equal polylines should compare equal")
	}
	if a.Equal(add(polyline{xs: []float64{1, 3}})) {
		t.Error("different polylines should differ")
	}
	if a.Equal(add(grob.NewNull())) {
		t.Error("grobs of different types should differ")
	}
	if !a.Transpose().Transpose().Equal(a) {
		t.Error("transpose involution with a value grob")
	}
}

func TestWidthHeight(t *testing.T) {
	tbl, err := New([]unit.Unit{unit.Cm(1), unit.Null(1)}, []unit.Unit{unit.Points(3)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := tbl.Width(), unit.Sum(unit.Cm(1), unit.Null(1)); !got.Equal(want) {
		t.Errorf("Width() = %v, want %v", got, want)
	}
	if got := tbl.Height(); !got.Equal(unit.Points(3)) {
		t.Errorf("Height() = %v, want 3pt", got)
	}
}

func TestIdentityAndNesting(t *testing.T) {
	inner := grid(t, 1, 1, WithName("inner"))
	if inner.Identity() != "gtable[inner]" {
		t.Errorf("Identity() = %q", inner.Identity())
	}
	outer, err := grid(t, 1, 1).AddGrob(inner, Placement{T: 1, L: 1})
	if err != nil {
		t.Fatalf("AddGrob(table): %v", err)
	}
	if outer.Grobs()[0] != grob.Grob(inner) {
		t.Error("nested table not stored")
	}
}

func TestParseClip(t *testing.T) {
	tests := []struct {
		input   string
		want    Clip
		wantErr bool
	}{
		{"", ClipOn, false},
		{"on", ClipOn, false},
		{"off", ClipOff, false},
		{"inherit", ClipInherit, false},
		{"yes", "", true},
	}
	for _, tt := range tests {
		got, err := ParseClip(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseClip(%q) = %q, %v", tt.input, got, err)
		}
	}
}

func TestViewportName(t *testing.T) {
	p := Placement{T: 1, L: 2, B: 3, R: 4, Name: "panel"}
	if got := p.ViewportName(); got != "panel.1-4-3-2" {
		t.Errorf("ViewportName() = %q", got)
	}
	if p.Rows() != 3 || p.Cols() != 3 {
		t.Errorf("Rows()=%d Cols()=%d", p.Rows(), p.Cols())
	}
}

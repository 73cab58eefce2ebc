package table

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/gridtable/pkg/errors"
)

type selectorKind int

const (
	selectAll selectorKind = iota
	selectPositions
	selectNames
	selectMask
	selectDrop
)

// Selector chooses which rows or columns [Table.Subset] keeps.
// The zero value keeps everything.
//
// Selectors describe a set: kept rows and columns always retain their
// original relative order, and selecting the same position twice keeps it
// once.
type Selector struct {
	kind  selectorKind
	spans []span
	names []string
	mask  []bool
}

// span is an inclusive position range. Ranges stay unexpanded until they
// have been checked against the axis length.
type span struct{ from, to int }

func pointSpans(ps []int) []span {
	out := make([]span, len(ps))
	for i, p := range ps {
		out[i] = span{p, p}
	}
	return out
}

// All keeps every row or column.
func All() Selector { return Selector{} }

// Positions keeps the given 1-based positions. Positions() with no
// arguments keeps nothing.
func Positions(ps ...int) Selector {
	return Selector{kind: selectPositions, spans: pointSpans(ps)}
}

// Names keeps the rows or columns with the given names.
func Names(ns ...string) Selector {
	return Selector{kind: selectNames, names: slices.Clone(ns)}
}

// Mask keeps position i+1 when m[i] is true. The mask length must equal the
// number of rows or columns.
func Mask(m ...bool) Selector {
	return Selector{kind: selectMask, mask: slices.Clone(m)}
}

// Drop keeps every position except the given ones.
func Drop(ps ...int) Selector {
	return Selector{kind: selectDrop, spans: pointSpans(ps)}
}

// String describes the selector for logs and error messages.
func (s Selector) String() string {
	switch s.kind {
	case selectPositions:
		return "positions" + formatSpans(s.spans)
	case selectNames:
		return "names[" + strings.Join(s.names, ",") + "]"
	case selectMask:
		return "mask" + formatBools(s.mask)
	case selectDrop:
		return "drop" + formatSpans(s.spans)
	}
	return "all"
}

// ParseSelector parses the textual selector syntax used by the CLI and the
// HTTP service:
//
//	""  or "all"       every position
//	"none"             nothing
//	"1,3,5-7"          positions (ranges inclusive)
//	"!2,4"             every position except these
//	"mask:1,0,1"       a logical mask (1/0, t/f or true/false)
//	"names:a,b"        names, also when they look like numbers
//	"a,b"              names
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "all":
		return All(), nil
	case "none":
		return Positions(), nil
	}

	if rest, ok := strings.CutPrefix(s, "names:"); ok {
		return Names(splitList(rest)...), nil
	}
	if rest, ok := strings.CutPrefix(s, "mask:"); ok {
		var m []bool
		for _, tok := range splitList(rest) {
			b, err := strconv.ParseBool(tok)
			if err != nil {
				return Selector{}, errors.Validation("invalid mask value %q", tok)
			}
			m = append(m, b)
		}
		return Mask(m...), nil
	}
	if rest, ok := strings.CutPrefix(s, "!"); ok {
		spans, err := parseSpans(rest)
		if err != nil {
			return Selector{}, err
		}
		return Selector{kind: selectDrop, spans: spans}, nil
	}

	toks := splitList(s)
	if spans, err := parseSpans(s); err == nil {
		return Selector{kind: selectPositions, spans: spans}, nil
	} else if startsNumeric(toks) {
		return Selector{}, err
	}
	return Names(toks...), nil
}

func splitList(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func parseSpans(s string) ([]span, error) {
	var out []span
	for _, tok := range splitList(s) {
		lo, hi, isRange := strings.Cut(tok, "-")
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, errors.Validation("invalid position %q", tok)
		}
		to := from
		if isRange {
			if to, err = strconv.Atoi(hi); err != nil || to < from {
				return nil, errors.Validation("invalid position range %q", tok)
			}
		}
		out = append(out, span{from, to})
	}
	return out, nil
}

func formatSpans(spans []span) string {
	parts := make([]string, len(spans))
	for i, sp := range spans {
		parts[i] = strconv.Itoa(sp.from)
		if sp.to != sp.from {
			parts[i] += "-" + strconv.Itoa(sp.to)
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// startsNumeric reports whether the first token begins with a digit, in
// which case a malformed position list is an error rather than a name list.
func startsNumeric(toks []string) bool {
	return len(toks) > 0 && toks[0][0] >= '0' && toks[0][0] <= '9'
}

// resolve returns the kept 1-based positions in ascending order. axis is
// "row" or "column" and is used in error messages; names are the axis
// names (nil when unnamed).
func (s Selector) resolve(axis string, n int, names []string) ([]int, error) {
	switch s.kind {
	case selectAll:
		return seq(1, n), nil

	case selectPositions:
		if err := checkSpans(axis, s.spans, n); err != nil {
			return nil, err
		}
		kept := []int{}
		for _, sp := range s.spans {
			kept = append(kept, seq(sp.from, sp.to)...)
		}
		slices.Sort(kept)
		return slices.Compact(kept), nil

	case selectDrop:
		if err := checkSpans(axis, s.spans, n); err != nil {
			return nil, err
		}
		drop := make([]bool, n+1)
		for _, sp := range s.spans {
			for i := sp.from; i <= sp.to; i++ {
				drop[i] = true
			}
		}
		return slices.DeleteFunc(seq(1, n), func(i int) bool { return drop[i] }), nil

	case selectNames:
		if names == nil {
			return nil, errors.Index("table has no %s names to select %v from", axis, s.names)
		}
		index := make(map[string]int, len(names))
		for i, name := range names {
			index[name] = i + 1
		}
		kept := make([]int, 0, len(s.names))
		var missing []string
		for _, name := range s.names {
			pos, ok := index[name]
			if !ok {
				missing = append(missing, name)
				continue
			}
			kept = append(kept, pos)
		}
		if len(missing) > 0 {
			return nil, errors.Index("unknown %s names: %s", axis, strings.Join(missing, ", "))
		}
		slices.Sort(kept)
		return slices.Compact(kept), nil

	case selectMask:
		if len(s.mask) != n {
			return nil, errors.Index("%s mask has length %d, want %d", axis, len(s.mask), n)
		}
		kept := make([]int, 0, n)
		for i, keep := range s.mask {
			if keep {
				kept = append(kept, i+1)
			}
		}
		return kept, nil
	}
	return nil, errors.New(errors.ErrCodeInternal, "unknown selector kind %d", s.kind)
}

func checkSpans(axis string, spans []span, n int) error {
	for _, sp := range spans {
		for _, p := range []int{sp.from, sp.to} {
			if p < 1 || p > n {
				return errors.Index("%s %d out of range 1-%d", axis, p, n)
			}
		}
	}
	return nil
}

// seq returns from..to inclusive (empty when to < from).
func seq(from, to int) []int {
	if to < from {
		return []int{}
	}
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

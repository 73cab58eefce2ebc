package unit

import (
	"strconv"
	"strings"

	"github.com/matzehuels/gridtable/pkg/errors"
)

var simpleKinds = []Kind{KindLines, KindNull, KindNPC, KindCm, KindMm, KindInches, KindPoints}

// Parse reads a unit in the form produced by [Unit.String]. A bare number is
// read as a null unit.
func Parse(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unit{}, errors.New(errors.ErrCodeInvalidFormat, "empty unit")
	}

	for _, k := range []Kind{KindSum, KindMax, KindMin} {
		prefix := string(k) + "("
		if !strings.HasPrefix(s, prefix) {
			continue
		}
		if !strings.HasSuffix(s, ")") {
			return Unit{}, errors.New(errors.ErrCodeInvalidFormat, "unbalanced parentheses in unit %q", s)
		}
		parts, err := splitArgs(s[len(prefix) : len(s)-1])
		if err != nil {
			return Unit{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unit %q", s)
		}
		args := make([]Unit, len(parts))
		for i, p := range parts {
			if args[i], err = Parse(p); err != nil {
				return Unit{}, err
			}
		}
		return compound(k, args), nil
	}

	num, kind := s, KindNull
	for _, k := range simpleKinds {
		if strings.HasSuffix(s, string(k)) {
			num, kind = strings.TrimSpace(strings.TrimSuffix(s, string(k))), k
			break
		}
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Unit{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid unit %q", s)
	}
	return Unit{Value: v, Kind: kind}, nil
}

// ParseAll parses every element of ss.
func ParseAll(ss []string) ([]Unit, error) {
	out := make([]Unit, len(ss))
	for i, s := range ss {
		u, err := Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}

// Strings formats every unit of us.
func Strings(us []Unit) []string {
	out := make([]string, len(us))
	for i, u := range us {
		out[i] = u.String()
	}
	return out
}

// splitArgs splits a comma-separated argument list at depth zero.
func splitArgs(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unbalanced parentheses")
	}
	return append(parts, s[start:]), nil
}

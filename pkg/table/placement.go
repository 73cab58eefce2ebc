package table

import (
	"fmt"

	"github.com/matzehuels/gridtable/pkg/errors"
	"github.com/matzehuels/gridtable/pkg/grob"
)

// Clip controls whether a grob is clipped to its cell region.
type Clip string

// Clip modes.
const (
	ClipOn      Clip = "on"
	ClipOff     Clip = "off"
	ClipInherit Clip = "inherit"
)

// ParseClip converts a string to a Clip. The empty string means [ClipOn].
func ParseClip(s string) (Clip, error) {
	switch Clip(s) {
	case "", ClipOn:
		return ClipOn, nil
	case ClipOff:
		return ClipOff, nil
	case ClipInherit:
		return ClipInherit, nil
	}
	return "", errors.Validation("invalid clip mode %q (want on, off or inherit)", s)
}

// Placement records where one grob sits in the grid. Rows T..B and columns
// L..R are 1-based and inclusive.
type Placement struct {
	T, L, B, R int
	Z          float64
	Clip       Clip
	Name       string
}

// ViewportName returns the name of the child viewport a renderer creates for
// the placement: "name.t-r-b-l".
func (p Placement) ViewportName() string {
	return fmt.Sprintf("%s.%d-%d-%d-%d", p.Name, p.T, p.R, p.B, p.L)
}

// Rows returns the number of rows the placement spans.
func (p Placement) Rows() int { return p.B - p.T + 1 }

// Cols returns the number of columns the placement spans.
func (p Placement) Cols() int { return p.R - p.L + 1 }

// Cell pairs a placement with the grob it places.
type Cell struct {
	Placement
	Grob grob.Grob
}

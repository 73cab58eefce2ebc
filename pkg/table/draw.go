package table

import (
	"context"

	"github.com/matzehuels/gridtable/pkg/errors"
)

// Renderer draws tables. Implementations live in the render package.
type Renderer interface {
	Render(ctx context.Context, t *Table) error
}

// Draw hands t to r. No geometry is computed here.
func (t *Table) Draw(ctx context.Context, r Renderer) error {
	if r == nil {
		return errors.New(errors.ErrCodeUnsupported, "no renderer configured")
	}
	return r.Render(ctx, t)
}

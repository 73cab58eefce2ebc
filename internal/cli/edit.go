package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/table"
)

// editOpts holds the flags shared by the editing commands.
type editOpts struct {
	output string
	dryRun bool
}

func (o *editOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: overwrite the input; format from extension)")
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, "print the resulting summary instead of writing")
}

// runEdit loads input, applies fn and writes the result.
func (c *CLI) runEdit(ctx context.Context, op, input string, opts editOpts, fn func(*table.Table) (*table.Table, error)) error {
	logger := loggerFromContext(ctx)
	t, err := c.loadTable(input)
	if err != nil {
		return err
	}
	out, err := fn(t)
	if err != nil {
		return fmt.Errorf("%s %s: %w", op, input, err)
	}

	rows, cols := out.Dim()
	logger.Debug("edited table", "op", op, "rows", rows, "cols", cols, "grobs", out.Len())
	if opts.dryRun {
		fmt.Fprint(c.Out, out.Summary())
		return nil
	}

	path, err := c.saveTable(out, input, opts.output)
	if err != nil {
		return err
	}
	printSuccess("%s", op)
	printStats(rows, cols, out.Len(), false)
	printFile(path)
	return nil
}

func (c *CLI) transposeCommand() *cobra.Command {
	var opts editOpts
	cmd := &cobra.Command{
		Use:   "transpose [file]",
		Short: "Swap rows and columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), "transpose", args[0], opts, func(t *table.Table) (*table.Table, error) {
				return t.Transpose(), nil
			})
		},
	}
	opts.register(cmd)
	return cmd
}

func (c *CLI) subsetCommand() *cobra.Command {
	var (
		opts       editOpts
		rows, cols string
	)
	cmd := &cobra.Command{
		Use:   "subset [file]",
		Short: "Keep a subset of rows and columns",
		Long: `Keep a subset of rows and columns. Grobs that do not lie entirely inside
the kept rows and columns are removed.

Selectors:
  1,3,5-7      positions
  !2           every position except these
  a,b          names
  names:1,2    names that look like numbers
  mask:1,0,1   logical mask
  none         nothing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := table.ParseSelector(rows)
			if err != nil {
				return fmt.Errorf("--rows: %w", err)
			}
			cs, err := table.ParseSelector(cols)
			if err != nil {
				return fmt.Errorf("--cols: %w", err)
			}
			loggerFromContext(cmd.Context()).Debug("subset", "rows", rs, "cols", cs)
			return c.runEdit(cmd.Context(), "subset", args[0], opts, func(t *table.Table) (*table.Table, error) {
				return t.Subset(rs, cs)
			})
		},
	}
	cmd.Flags().StringVar(&rows, "rows", "", "rows to keep (default: all)")
	cmd.Flags().StringVar(&cols, "cols", "", "columns to keep (default: all)")
	opts.register(cmd)
	return cmd
}

func (c *CLI) trimCommand() *cobra.Command {
	var (
		opts      editOpts
		normalize bool
	)
	cmd := &cobra.Command{
		Use:   "trim [file]",
		Short: "Drop empty outer rows and columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(cmd.Context(), "trim", args[0], opts, func(t *table.Table) (*table.Table, error) {
				t = t.Trim()
				if normalize {
					t = t.NormalizeZ()
				}
				return t, nil
			})
		},
	}
	cmd.Flags().BoolVar(&normalize, "normalize-z", false, "also renumber z values to 1..n")
	opts.register(cmd)
	return cmd
}

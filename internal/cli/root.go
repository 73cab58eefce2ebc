package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands
// registered. The CLI's logger is attached to every command's context.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gridtable arranges graphical objects on a table grid",
		Long: `gridtable edits and renders table layouts: grids of rows and columns with
fixed or flexible sizes, holding objects that span rectangular cell ranges.

Tables are described in TOML or JSON definition files.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.showCommand())
	root.AddCommand(c.transposeCommand())
	root.AddCommand(c.subsetCommand())
	root.AddCommand(c.trimCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

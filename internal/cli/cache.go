package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridtable/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisAddr != "" {
				rc, err := cache.DialRedisCache(cmd.Context(), redisAddr)
				if err != nil {
					return err
				}
				defer rc.Close()
				for _, prefix := range []string{"artifact:", cache.TableScopePrefix} {
					if err := rc.DeletePrefix(cmd.Context(), prefix); err != nil {
						return fmt.Errorf("clear redis cache: %w", err)
					}
				}
				printSuccess("Cleared redis artifact cache")
				printDetail("Address: %s", redisAddr)
				return nil
			}

			dir := cache.DefaultDir()
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			n, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cleared %d cached artifacts", n)
			printDetail("Directory: %s", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&redisAddr, "redis", "", "clear the artifact cache on this redis server instead")
	return cmd
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(c.Out, cache.DefaultDir())
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the lookup result cache",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "stats",
			Short: "Show cache occupancy",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(func(d *Deps) error {
					stats, err := d.Cache.Stats(cmd.Context())
					if err != nil {
						return fmt.Errorf("reading cache stats: %w", err)
					}
					fmt.Printf("%d of %d entries used\n", stats.Count, stats.Capacity)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove all cached lookup results",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDeps(func(d *Deps) error {
					if err := d.Cache.Clear(cmd.Context()); err != nil {
						return fmt.Errorf("clearing cache: %w", err)
					}
					fmt.Println("Cache cleared.")
					return nil
				})
			},
		},
	)

	return cmd
}

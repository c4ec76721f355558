package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/chrono-core/internal/infrastructure/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration in the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			if config.Exists(cwd) {
				return fmt.Errorf("chrono already initialized in %s", cwd)
			}

			if err := config.WriteDefault(cwd); err != nil {
				return fmt.Errorf("writing default config: %w", err)
			}

			fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))
			return nil
		},
	}
}

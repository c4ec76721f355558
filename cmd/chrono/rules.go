package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/chrono-core/internal/infrastructure/config"
)

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Show the active buffer rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}

			cfg, err := config.Load(cwd)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			fmt.Println("Years        Tolerance")
			for _, rule := range cfg.BufferRules {
				fmt.Printf("%4d-%-6d  ±%d years\n", rule.FromYear, rule.ToYear, rule.ToleranceYears)
			}
			return nil
		},
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <event description>",
		Short: "Resolve free text into dated historical facts",
		Long:  "Runs the classification pipeline on the given text and prints the candidate facts it produces.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(func(d *Deps) error {
				result, err := d.Submit.Classify(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("looking up %q: %w", args[0], err)
				}

				if len(result.Candidates) == 0 {
					fmt.Println(result.Message)
					return nil
				}

				fmt.Printf("Found %d candidates:\n\n", len(result.Candidates))
				for i, fact := range result.Candidates {
					fmt.Printf("%d. %s — %s\n", i+1, fact.Title, fact.CalendarDate)
					if fact.Summary != "" {
						fmt.Printf("   %s\n", fact.Summary)
					}
					if fact.SourceURL != "" {
						fmt.Printf("   Source: %s\n", fact.SourceURL)
					}
					fmt.Println()
				}
				return nil
			})
		},
	}
}

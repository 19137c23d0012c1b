package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmerida/papeleo/internal/tui"
)

func reviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review flagged extractions interactively",
		Long: `Open the interactive review queue: step through documents with missing
critical fields or low confidence and approve the ones that look right.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStorage()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx := cmd.Context()
			if err := store.Migrate(ctx); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			return tui.Run(ctx, store)
		},
	}
}

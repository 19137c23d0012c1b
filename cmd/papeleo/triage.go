package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmerida/papeleo/internal/cli"
	"github.com/dmerida/papeleo/internal/engine"
	"github.com/dmerida/papeleo/internal/extract"
	"github.com/dmerida/papeleo/internal/ingest"
)

func triageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Process documents and emails in one run",
		Long: `Run extraction over a document directory and classification over a
mailbox export in a single pass, then print the combined summary.`,
		RunE: runTriage,
	}

	cmd.Flags().String("documents", "", "Directory of scanned documents")
	cmd.Flags().String("emails", "", "JSON export of emails")
	cmd.Flags().Int("workers", 4, "Number of parallel extraction workers")
	cmd.Flags().Int("review-threshold", 60, "Confidence below this flags the document for review")

	return cmd
}

func runTriage(cmd *cobra.Command, _ []string) error {
	documentsDir, _ := cmd.Flags().GetString("documents")
	emailsPath, _ := cmd.Flags().GetString("emails")
	workers, _ := cmd.Flags().GetInt("workers")
	threshold, _ := cmd.Flags().GetInt("review-threshold")

	if documentsDir == "" && emailsPath == "" {
		return fmt.Errorf("nothing to do: provide --documents and/or --emails")
	}

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	rs, err := loadRules()
	if err != nil {
		return err
	}

	eng := engine.NewWithConfig(store, extract.New(), newClassifier(rs), engine.Config{
		Workers:         workers,
		ReviewThreshold: threshold,
		ProgressWriter:  os.Stderr,
	})

	summary := ""

	if documentsDir != "" {
		paths, findErr := ingest.FindDocuments(documentsDir)
		if findErr != nil {
			return findErr
		}
		stats, extractErr := eng.ExtractDocuments(ctx, paths)
		if extractErr != nil {
			return extractErr
		}
		summary += fmt.Sprintf("Documentos: %d procesados, %d fallidos, %d por revisar\n",
			stats.Processed, stats.Failed, stats.NeedsReview)
	}

	if emailsPath != "" {
		emails, loadErr := ingest.LoadEmails(emailsPath)
		if loadErr != nil {
			return loadErr
		}
		stats, classifyErr := eng.ClassifyEmails(ctx, emails)
		if classifyErr != nil {
			return classifyErr
		}
		summary += fmt.Sprintf("Correos: %d clasificados, %d fallidos\n",
			stats.Processed, stats.Failed)
		alta := stats.ByPriority["alta"]
		if alta > 0 {
			summary += cli.WarningStyle.Render(fmt.Sprintf("%d correos de prioridad alta", alta)) + "\n"
		}
	}

	fmt.Println(cli.RenderBox("Triaje completado", summary))
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmerida/papeleo/internal/cli"
	"github.com/dmerida/papeleo/internal/engine"
	"github.com/dmerida/papeleo/internal/extract"
	"github.com/dmerida/papeleo/internal/ingest"
)

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file-or-directory>",
		Short: "Extract invoice data from scanned documents",
		Long: `Read PDF or plain-text documents, extract the invoice fields and store
the results. Documents with missing critical fields or low confidence are
flagged for manual review.`,
		Args: cobra.ExactArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().Int("workers", 4, "Number of parallel extraction workers")
	cmd.Flags().Int("review-threshold", 60, "Confidence below this flags the document for review")
	cmd.Flags().Bool("json", false, "Print the extraction result as JSON instead of storing it")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	threshold, _ := cmd.Flags().GetInt("review-threshold")
	asJSON, _ := cmd.Flags().GetBool("json")

	paths, err := ingest.FindDocuments(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found in %s", args[0])
	}

	if asJSON {
		return printExtractionJSON(paths)
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

	stats, err := eng.ExtractDocuments(ctx, paths)
	if err != nil {
		return err
	}

	summary := fmt.Sprintf("Procesados: %d\nFallidos: %d\nPendientes de revisión: %d",
		stats.Processed, stats.Failed, stats.NeedsReview)
	fmt.Println(cli.RenderBox("Extracción completada", summary))

	return nil
}

func printExtractionJSON(paths []string) error {
	extractor := extract.New()
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	for _, path := range paths {
		text, err := ingest.ReadDocumentText(path)
		if err != nil {
			return err
		}
		if err := encoder.Encode(extractor.Extract(text)); err != nil {
			return err
		}
	}
	return nil
}

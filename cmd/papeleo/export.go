package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmerida/papeleo/internal/cli"
	"github.com/dmerida/papeleo/internal/export"
	"github.com/dmerida/papeleo/internal/service"
	"github.com/dmerida/papeleo/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the invoice register",
		Long: `Export stored extractions and email classifications to an XLSX workbook,
or upload the register to Google Sheets with --sheets.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "registro.xlsx", "Output XLSX path")
	cmd.Flags().Bool("sheets", false, "Upload to Google Sheets instead of writing a file")
	cmd.Flags().Bool("review-only", false, "Export only documents pending review")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")
	toSheets, _ := cmd.Flags().GetBool("sheets")
	reviewOnly, _ := cmd.Flags().GetBool("review-only")

	store, err := openStorage()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	filter := service.DocumentFilter{}
	if reviewOnly {
		needsReview := true
		filter.NeedsReview = &needsReview
	}

	docs, err := store.ListDocuments(ctx, filter)
	if err != nil {
		return err
	}
	classifications, err := store.ListClassifications(ctx, "")
	if err != nil {
		return err
	}

	if len(docs) == 0 && len(classifications) == 0 {
		return fmt.Errorf("nothing to export")
	}

	if toSheets {
		cfg := sheets.DefaultConfig()
		if err := cfg.LoadFromEnv(); err != nil {
			return err
		}

		writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
		if err != nil {
			return err
		}
		if err := writer.Write(ctx, docs); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registro subido a Google Sheets (%d documentos)", len(docs))))
		return nil
	}

	writer := export.NewXLSXWriter(output)
	if err := writer.WriteAll(ctx, docs, classifications); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Registro exportado a %s (%d documentos, %d correos)",
		output, len(docs), len(classifications))))
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dmerida/papeleo/internal/classify"
	"github.com/dmerida/papeleo/internal/cli"
	"github.com/dmerida/papeleo/internal/engine"
	"github.com/dmerida/papeleo/internal/extract"
	"github.com/dmerida/papeleo/internal/ingest"
	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/rules"
)

func newClassifier(rs rules.Ruleset) *classify.Classifier {
	return classify.New(rs)
}

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <emails.json>",
		Short: "Classify a mailbox export",
		Long: `Read a JSON export of emails, assign each one a category, priority and
tags, and store the results.`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().Bool("json", false, "Print classifications as JSON instead of storing them")
	cmd.Flags().Bool("summaries", false, "Include heuristic summaries in JSON output")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	withSummaries, _ := cmd.Flags().GetBool("summaries")

	emails, err := ingest.LoadEmails(args[0])
	if err != nil {
		return err
	}
	if len(emails) == 0 {
		return fmt.Errorf("no emails found in %s", args[0])
	}

	rs, err := loadRules()
	if err != nil {
		return err
	}
	classifier := newClassifier(rs)

	if asJSON {
		return printClassificationJSON(classifier, emails, withSummaries)
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

	eng := engine.NewWithConfig(store, extract.New(), classifier, engine.Config{
		ProgressWriter: os.Stderr,
	})

	stats, err := eng.ClassifyEmails(ctx, emails)
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderBox("Clasificación completada", formatClassifyStats(stats)))
	return nil
}

func formatClassifyStats(stats *engine.ClassifyStats) string {
	out := fmt.Sprintf("Procesados: %d\nFallidos: %d\n\nPor categoría:", stats.Processed, stats.Failed)

	categories := make([]string, 0, len(stats.ByCategory))
	for category := range stats.ByCategory {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	for _, category := range categories {
		out += fmt.Sprintf("\n  %-10s %d", category, stats.ByCategory[model.EmailCategory(category)])
	}

	return out
}

func printClassificationJSON(classifier *classify.Classifier, emails []model.Email, withSummaries bool) error {
	type entry struct {
		Classification model.EmailClassification `json:"classification"`
		Attachments    model.AttachmentAnalysis  `json:"attachments"`
		Summary        *model.EmailSummary       `json:"summary,omitempty"`
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	for _, email := range emails {
		e := entry{
			Classification: classifier.Classify(email),
			Attachments:    classifier.AnalyzeAttachments(email),
		}
		if withSummaries {
			summary := classifier.Summarize(email)
			e.Summary = &summary
		}
		if err := encoder.Encode(e); err != nil {
			return err
		}
	}
	return nil
}

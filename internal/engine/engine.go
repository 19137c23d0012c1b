// Package engine orchestrates batch extraction and email triage runs.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/dmerida/papeleo/internal/classify"
	"github.com/dmerida/papeleo/internal/common"
	"github.com/dmerida/papeleo/internal/extract"
	"github.com/dmerida/papeleo/internal/ingest"
	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/service"
)

// Config holds configuration options for the triage engine.
type Config struct {
	ProgressWriter  io.Writer
	Workers         int
	ReviewThreshold int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Workers:         4,
		ReviewThreshold: 60,
		ProgressWriter:  io.Discard,
	}
}

// TriageEngine runs extraction and classification over batches of inputs
// and persists the results.
type TriageEngine struct {
	storage    service.Storage
	extractor  *extract.Extractor
	classifier *classify.Classifier
	config     Config
}

// New creates a new triage engine with the given dependencies.
func New(storage service.Storage, extractor *extract.Extractor, classifier *classify.Classifier) *TriageEngine {
	return NewWithConfig(storage, extractor, classifier, DefaultConfig())
}

// NewWithConfig creates a new triage engine with custom configuration.
func NewWithConfig(storage service.Storage, extractor *extract.Extractor, classifier *classify.Classifier, config Config) *TriageEngine {
	if config.Workers <= 0 {
		config.Workers = DefaultConfig().Workers
	}
	if config.ProgressWriter == nil {
		config.ProgressWriter = io.Discard
	}
	return &TriageEngine{
		storage:    storage,
		extractor:  extractor,
		classifier: classifier,
		config:     config,
	}
}

// ExtractDocuments reads, extracts and persists every document in paths.
// A document is flagged for review when a critical field is missing or the
// overall confidence falls below the configured threshold.
func (e *TriageEngine) ExtractDocuments(ctx context.Context, paths []string) (*ExtractStats, error) {
	if len(paths) == 0 {
		return nil, common.ErrNoDocuments
	}

	started := time.Now()
	slog.Info("Starting document extraction", "documents", len(paths), "workers", e.config.Workers)

	bar := e.newProgressBar(len(paths), "Extrayendo documentos...")

	jobs := make(chan string)
	outcomes := make(chan extractOutcome)

	var wg sync.WaitGroup
	for i := 0; i < e.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				outcomes <- e.extractOne(path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range paths {
			select {
			case <-ctx.Done():
				return
			case jobs <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	stats := &ExtractStats{}
	for out := range outcomes {
		_ = bar.Add(1)

		if out.err != nil {
			stats.Failed++
			slog.Warn("Extraction failed", "error", out.err)
			continue
		}

		if err := e.storage.SaveDocument(ctx, out.doc); err != nil {
			stats.Failed++
			slog.Warn("Failed to save document", "path", out.doc.SourcePath, "error", err)
			continue
		}

		stats.Processed++
		if out.doc.NeedsReview {
			stats.NeedsReview++
		}
	}

	stats.Elapsed = time.Since(started)
	slog.Info("Document extraction complete",
		"processed", stats.Processed,
		"failed", stats.Failed,
		"needs_review", stats.NeedsReview,
		"elapsed", stats.Elapsed)

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// extractOutcome is the result of processing a single document path.
type extractOutcome struct {
	doc *model.Document
	err error
}

func (e *TriageEngine) extractOne(path string) extractOutcome {
	text, err := ingest.ReadDocumentText(path)
	if err != nil {
		return extractOutcome{err: fmt.Errorf("%s: %w", path, err)}
	}

	result := e.extractor.Extract(text)
	doc := &model.Document{
		ID:         uuid.New().String(),
		SourcePath: path,
		Result:     *result,
		CreatedAt:  time.Now().UTC(),
	}
	doc.NeedsReview = !result.Success ||
		!result.Validation.IsComplete ||
		result.Confidence < e.config.ReviewThreshold

	return extractOutcome{doc: doc}
}

// ClassifyEmails classifies and persists every email in the batch.
func (e *TriageEngine) ClassifyEmails(ctx context.Context, emails []model.Email) (*ClassifyStats, error) {
	if len(emails) == 0 {
		return nil, common.ErrNoEmails
	}

	started := time.Now()
	slog.Info("Starting email classification", "emails", len(emails))

	bar := e.newProgressBar(len(emails), "Clasificando correos...")

	stats := &ClassifyStats{
		ByCategory: make(map[model.EmailCategory]int),
		ByPriority: make(map[model.Priority]int),
	}

	for _, email := range emails {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		_ = bar.Add(1)

		cls := e.classifier.Classify(email)

		if err := e.storage.SaveEmail(ctx, email); err != nil {
			stats.Failed++
			slog.Warn("Failed to save email", "email_id", email.ID, "error", err)
			continue
		}
		if err := e.storage.SaveClassification(ctx, &cls); err != nil {
			stats.Failed++
			slog.Warn("Failed to save classification", "email_id", email.ID, "error", err)
			continue
		}

		stats.Processed++
		stats.ByCategory[cls.Category]++
		stats.ByPriority[cls.Priority]++
	}

	stats.Elapsed = time.Since(started)
	slog.Info("Email classification complete",
		"processed", stats.Processed,
		"failed", stats.Failed,
		"elapsed", stats.Elapsed)

	return stats, nil
}

func (e *TriageEngine) newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(e.config.ProgressWriter),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(e.config.ProgressWriter)
		}),
	)
}

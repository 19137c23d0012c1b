// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/dmerida/papeleo/internal/model"
)

// DocumentFilter defines filtering options for stored document queries.
type DocumentFilter struct {
	NeedsReview *bool
	DocType     model.DocumentType
	Limit       int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Document operations
	SaveDocument(ctx context.Context, doc *model.Document) error
	GetDocument(ctx context.Context, id string) (*model.Document, error)
	ListDocuments(ctx context.Context, filter DocumentFilter) ([]model.Document, error)
	MarkReviewed(ctx context.Context, id string) error

	// Email operations
	SaveEmail(ctx context.Context, email model.Email) error
	SaveClassification(ctx context.Context, cls *model.EmailClassification) error
	GetClassification(ctx context.Context, emailID string) (*model.EmailClassification, error)
	ListClassifications(ctx context.Context, category model.EmailCategory) ([]model.EmailClassification, error)
	CountByCategory(ctx context.Context) (map[model.EmailCategory]int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter exports an invoice register to an external report target.
type ReportWriter interface {
	Write(ctx context.Context, docs []model.Document) error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmerida/papeleo/internal/common"
	"github.com/dmerida/papeleo/internal/model"
	"github.com/dmerida/papeleo/internal/service"
)

// SaveDocument persists a document and its extraction result.
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *model.Document) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDocument(doc); err != nil {
		return err
	}

	resultJSON, err := json.Marshal(doc.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal extraction result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (id, source_path, doc_type, confidence, needs_review, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ID,
		doc.SourcePath,
		string(doc.Result.DocumentType),
		doc.Result.Confidence,
		doc.NeedsReview,
		string(resultJSON),
		doc.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return fmt.Errorf("%w: document %s", common.ErrDuplicateEntry, doc.ID)
		}
		return fmt.Errorf("failed to insert document %s: %w", doc.ID, err)
	}

	return nil
}

// GetDocument retrieves a single document by ID.
func (s *SQLiteStorage) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, source_path, needs_review, result, created_at
		FROM documents
		WHERE id = ?
	`, id)

	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: document %s", common.ErrNotFound, id)
		}
		return nil, err
	}
	return doc, nil
}

// ListDocuments retrieves documents matching the filter, most recent first.
func (s *SQLiteStorage) ListDocuments(ctx context.Context, filter service.DocumentFilter) ([]model.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, source_path, needs_review, result, created_at
		FROM documents
	`
	var conditions []string
	var args []any

	if filter.NeedsReview != nil {
		conditions = append(conditions, "needs_review = ?")
		args = append(args, *filter.NeedsReview)
	}
	if filter.DocType != "" {
		conditions = append(conditions, "doc_type = ?")
		args = append(args, string(filter.DocType))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []model.Document
	for rows.Next() {
		doc, scanErr := scanDocument(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// MarkReviewed clears the review flag on a document.
func (s *SQLiteStorage) MarkReviewed(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE documents
		SET needs_review = 0, reviewed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark document reviewed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: document %s", common.ErrNotFound, id)
	}

	return nil
}

// scannable covers both sql.Row and sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

func scanDocument(row scannable) (*model.Document, error) {
	var doc model.Document
	var resultJSON string

	if err := row.Scan(&doc.ID, &doc.SourcePath, &doc.NeedsReview, &resultJSON, &doc.CreatedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(resultJSON), &doc.Result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extraction result for %s: %w", doc.ID, err)
	}

	return &doc, nil
}

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmerida/papeleo/internal/common"
	"github.com/dmerida/papeleo/internal/model"
)

// SaveEmail persists an inbound email. Saving the same email twice is a no-op.
func (s *SQLiteStorage) SaveEmail(ctx context.Context, email model.Email) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEmail(&email); err != nil {
		return err
	}

	attachmentsJSON := ""
	if len(email.Attachments) > 0 {
		data, err := json.Marshal(email.Attachments)
		if err != nil {
			return fmt.Errorf("failed to marshal attachments: %w", err)
		}
		attachmentsJSON = string(data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO emails (id, sender_email, subject, body_preview, snippet, attachments, received_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		email.ID,
		email.SenderEmail,
		email.Subject,
		email.BodyPreview,
		email.Snippet,
		attachmentsJSON,
		email.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert email %s: %w", email.ID, err)
	}

	return nil
}

// SaveClassification persists the classification for an email, replacing any
// previous one.
func (s *SQLiteStorage) SaveClassification(ctx context.Context, cls *model.EmailClassification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateClassification(cls); err != nil {
		return err
	}

	tagsJSON := ""
	if len(cls.Tags) > 0 {
		data, err := json.Marshal(cls.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		tagsJSON = string(data)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO email_classifications (email_id, category, sub_category, priority, tags, confidence, classified_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`,
		cls.EmailID,
		string(cls.Category),
		cls.SubCategory,
		string(cls.Priority),
		tagsJSON,
		cls.Confidence,
	)
	if err != nil {
		return fmt.Errorf("failed to save classification for %s: %w", cls.EmailID, err)
	}

	return nil
}

// GetClassification retrieves the stored classification for an email.
func (s *SQLiteStorage) GetClassification(ctx context.Context, emailID string) (*model.EmailClassification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(emailID, "emailID"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT email_id, category, sub_category, priority, tags, confidence
		FROM email_classifications
		WHERE email_id = ?
	`, emailID)

	cls, err := scanClassification(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: classification for email %s", common.ErrNotFound, emailID)
		}
		return nil, err
	}
	return cls, nil
}

// ListClassifications retrieves stored classifications, optionally limited to
// one category. An empty category returns everything.
func (s *SQLiteStorage) ListClassifications(ctx context.Context, category model.EmailCategory) ([]model.EmailClassification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT email_id, category, sub_category, priority, tags, confidence
		FROM email_classifications
	`
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, string(category))
	}
	query += " ORDER BY classified_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []model.EmailClassification
	for rows.Next() {
		cls, scanErr := scanClassification(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		results = append(results, *cls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classifications: %w", err)
	}

	return results, nil
}

// CountByCategory returns the number of classified emails per category.
func (s *SQLiteStorage) CountByCategory(ctx context.Context) (map[model.EmailCategory]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM email_classifications
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count classifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[model.EmailCategory]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[model.EmailCategory(category)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

func scanClassification(row scannable) (*model.EmailClassification, error) {
	var cls model.EmailClassification
	var category, priority, tagsJSON string

	if err := row.Scan(&cls.EmailID, &category, &cls.SubCategory, &priority, &tagsJSON, &cls.Confidence); err != nil {
		return nil, err
	}

	cls.Category = model.EmailCategory(category)
	cls.Priority = model.Priority(priority)

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &cls.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags for %s: %w", cls.EmailID, err)
		}
	}

	return &cls, nil
}

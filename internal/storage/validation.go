package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmerida/papeleo/internal/model"
)

// Validation errors.
var (
	ErrNilContext            = errors.New("context cannot be nil")
	ErrEmptyString           = errors.New("string parameter cannot be empty")
	ErrNilParameter          = errors.New("parameter cannot be nil")
	ErrInvalidDocument       = errors.New("invalid document")
	ErrInvalidEmail          = errors.New("invalid email")
	ErrInvalidClassification = errors.New("invalid classification")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDocument validates a document before persisting.
func validateDocument(doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document", ErrNilParameter)
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidDocument)
	}
	if doc.SourcePath == "" {
		return fmt.Errorf("%w: missing source path", ErrInvalidDocument)
	}
	return nil
}

// validateEmail validates an email before persisting.
func validateEmail(email *model.Email) error {
	if email == nil {
		return fmt.Errorf("%w: email", ErrNilParameter)
	}
	if email.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidEmail)
	}
	return nil
}

// validateClassification validates an email classification.
func validateClassification(cls *model.EmailClassification) error {
	if cls == nil {
		return fmt.Errorf("%w: classification", ErrNilParameter)
	}
	if cls.EmailID == "" {
		return fmt.Errorf("%w: missing email ID", ErrInvalidClassification)
	}
	if cls.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidClassification)
	}

	switch cls.Priority {
	case model.PriorityAlta, model.PriorityMedia, model.PriorityBaja:
		// Valid priority
	default:
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidClassification, cls.Priority)
	}

	if cls.Confidence < 0 || cls.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidClassification)
	}

	return nil
}

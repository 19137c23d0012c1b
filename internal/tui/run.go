package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dmerida/papeleo/internal/service"
)

// Run loads the review queue from storage and starts the interactive program.
func Run(ctx context.Context, storage service.Storage) error {
	needsReview := true
	docs, err := storage.ListDocuments(ctx, service.DocumentFilter{NeedsReview: &needsReview})
	if err != nil {
		return fmt.Errorf("failed to load review queue: %w", err)
	}

	program := tea.NewProgram(NewModel(ctx, storage, docs))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("review UI failed: %w", err)
	}
	return nil
}

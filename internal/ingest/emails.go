package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmerida/papeleo/internal/model"
)

// LoadEmails reads a mailbox export file: a JSON array of emails.
func LoadEmails(path string) ([]model.Email, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the user's own export
	if err != nil {
		return nil, fmt.Errorf("failed to read email export %s: %w", path, err)
	}

	var emails []model.Email
	if err := json.Unmarshal(data, &emails); err != nil {
		return nil, fmt.Errorf("failed to parse email export %s: %w", path, err)
	}

	for i, email := range emails {
		if email.ID == "" {
			return nil, fmt.Errorf("email at index %d has no id", i)
		}
	}

	return emails, nil
}

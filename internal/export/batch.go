package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"jsolano/mail-ledger/internal/models"
)

// SaveBatch writes a fetched email batch to a YAML file so a later process
// run can parse it without touching the mailbox again.
func SaveBatch(batch models.EmailBatch, path string) error {
	data, err := yaml.Marshal(batch)
	if err != nil {
		return fmt.Errorf("error marshaling email batch: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("error writing email batch: %w", err)
	}
	return nil
}

// LoadBatch reads an email batch previously written by SaveBatch.
func LoadBatch(path string) (models.EmailBatch, error) {
	var batch models.EmailBatch

	data, err := os.ReadFile(path)
	if err != nil {
		return batch, fmt.Errorf("error reading email batch: %w", err)
	}
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return batch, fmt.Errorf("error parsing email batch: %w", err)
	}
	return batch, nil
}

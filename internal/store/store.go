// Package store loads the static bank-sender and category tables. The tables
// ship as embedded YAML defaults and can be overridden by external files, so
// adding a bank or tuning keywords is a data change, never a code change.
package store

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jsolano/mail-ledger/internal/logging"
	"jsolano/mail-ledger/internal/models"
)

//go:embed banks.yaml
var defaultBanksYAML []byte

//go:embed categories.yaml
var defaultCategoriesYAML []byte

// Tables is the immutable configuration handle passed into the detector and
// categorizer. It is built once at startup and safe for concurrent reads.
type Tables struct {
	banks      []models.BankRule
	categories []models.CategoryConfig
}

// TableStore resolves table files and builds Tables. Empty file names mean
// "use the embedded defaults".
type TableStore struct {
	BanksFile      string
	CategoriesFile string

	logger logging.Logger
}

// NewTableStore creates a store reading from the given override files.
func NewTableStore(banksFile, categoriesFile string, logger logging.Logger) *TableStore {
	if logger == nil {
		logger = logging.NewMockLogger()
	}
	return &TableStore{
		BanksFile:      banksFile,
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// Load reads both tables and returns the immutable handle. A missing or
// unreadable override file is a hard error; use an empty path to get the
// embedded defaults.
func (s *TableStore) Load() (*Tables, error) {
	banksData, err := s.readOrDefault(s.BanksFile, defaultBanksYAML)
	if err != nil {
		return nil, fmt.Errorf("loading banks table: %w", err)
	}
	categoriesData, err := s.readOrDefault(s.CategoriesFile, defaultCategoriesYAML)
	if err != nil {
		return nil, fmt.Errorf("loading categories table: %w", err)
	}

	var banksConfig models.BanksConfig
	if err := yaml.Unmarshal(banksData, &banksConfig); err != nil {
		return nil, fmt.Errorf("parsing banks table: %w", err)
	}
	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(categoriesData, &categoriesConfig); err != nil {
		return nil, fmt.Errorf("parsing categories table: %w", err)
	}

	if len(banksConfig.Banks) == 0 {
		return nil, fmt.Errorf("banks table is empty")
	}
	if len(categoriesConfig.Categories) == 0 {
		return nil, fmt.Errorf("categories table is empty")
	}

	s.logger.Debug("Loaded static tables",
		logging.F("banks", len(banksConfig.Banks)),
		logging.F("categories", len(categoriesConfig.Categories)))

	return &Tables{
		banks:      banksConfig.Banks,
		categories: categoriesConfig.Categories,
	}, nil
}

// LoadDefault returns the embedded tables without any override.
func LoadDefault() (*Tables, error) {
	return NewTableStore("", "", nil).Load()
}

func (s *TableStore) readOrDefault(path string, fallback []byte) ([]byte, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Using table override file", logging.F("path", path))
	return data, nil
}

// Banks returns the ordered sender-substring rules. Callers must not modify
// the returned slice.
func (t *Tables) Banks() []models.BankRule {
	return t.banks
}

// Categories returns the ordered category definitions. Callers must not
// modify the returned slice.
func (t *Tables) Categories() []models.CategoryConfig {
	return t.categories
}

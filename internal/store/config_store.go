package store

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	colerr "github.com/amterp/colplot/internal/errors"
	"github.com/amterp/colplot/internal/model"
	"github.com/amterp/colplot/internal/version"
)

// FileConfigStore implements ConfigStore using TOML files.
type FileConfigStore struct{}

// NewConfigStore creates a new config store.
func NewConfigStore() *FileConfigStore {
	return &FileConfigStore{}
}

// Load reads and validates the config at path.
// Returns a NotFoundError if the file doesn't exist.
func (s *FileConfigStore) Load(path string) (*model.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, colerr.ConfigNotFound(path)
		}
		return nil, err
	}

	var cfg model.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Strict version validation (only if file exists)
	if cfg.ColplotSchema == "" {
		return nil, version.MissingConfigSchema(path)
	}
	if cfg.ColplotSchema != version.CurrentConfigSchema() {
		return nil, version.InvalidConfigSchema(path, cfg.ColplotSchema)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFirst loads the first candidate that exists. Returns a nil config and an
// empty path when none of them do.
func (s *FileConfigStore) LoadFirst(candidates []string) (*model.Config, string, error) {
	for _, path := range candidates {
		cfg, err := s.Load(path)
		if err == nil {
			return cfg, path, nil
		}
		if colerr.IsNotFound(err) {
			continue
		}
		return nil, path, err
	}
	return nil, "", nil
}

// Save writes the config to path, creating parent directories.
func (s *FileConfigStore) Save(path string, cfg *model.Config) error {
	// Stamp current schema version
	cfg.ColplotSchema = version.CurrentConfigSchema()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

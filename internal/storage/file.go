// Package storage provides file-based JSON persistence for the holdings
// configuration and the long-lived metadata cache.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nyontakai/Asset-Cockpit/internal/common"
	"github.com/nyontakai/Asset-Cockpit/internal/interfaces"
	"github.com/nyontakai/Asset-Cockpit/internal/models"
)

const (
	holdingsFile = "holdings.json"
	metadataFile = "metadata_db.json"
)

// FileStore persists the two JSON documents under a base directory.
// Reads of missing or corrupt files yield empty mappings: a fresh or
// damaged data directory behaves like an empty portfolio, never an error.
type FileStore struct {
	basePath string
	logger   *common.Logger
}

// NewFileStore creates a new FileStore and ensures the base directory exists.
func NewFileStore(logger *common.Logger, config *common.StorageConfig) (*FileStore, error) {
	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", config.Path, err)
	}

	fs := &FileStore{
		basePath: config.Path,
		logger:   logger,
	}

	logger.Debug().Str("path", config.Path).Msg("FileStore opened")
	return fs, nil
}

// readJSON reads and unmarshals a JSON file. Missing and corrupt files are
// reported via the ok return, not an error; callers substitute an empty map.
func (fs *FileStore) readJSON(name string, dest interface{}) bool {
	path := filepath.Join(fs.basePath, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fs.logger.Warn().Str("path", path).Err(err).Msg("Failed to read data file")
		}
		return false
	}
	if len(data) == 0 {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		fs.logger.Warn().Str("path", path).Err(err).Msg("Corrupt data file ignored")
		return false
	}
	return true
}

// writeJSON marshals data to indented JSON and writes it atomically via a
// temp file in the same directory followed by a rename.
func (fs *FileStore) writeJSON(name string, data interface{}) error {
	target := filepath.Join(fs.basePath, name)

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tmpFile, err := os.CreateTemp(fs.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(jsonData); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// LoadHoldings returns the persisted holdings configuration.
func (fs *FileStore) LoadHoldings(ctx context.Context) (models.Holdings, error) {
	holdings := models.Holdings{}
	fs.readJSON(holdingsFile, &holdings)
	return holdings, nil
}

// SaveHoldings persists the full holdings configuration, replacing the
// previous document.
func (fs *FileStore) SaveHoldings(ctx context.Context, holdings models.Holdings) error {
	if err := fs.writeJSON(holdingsFile, holdings); err != nil {
		return fmt.Errorf("failed to save holdings: %w", err)
	}
	fs.logger.Debug().Int("count", len(holdings)).Msg("Holdings saved")
	return nil
}

// LoadMetadataDB returns the persisted metadata cache.
func (fs *FileStore) LoadMetadataDB(ctx context.Context) (models.MetadataDB, error) {
	db := models.MetadataDB{}
	fs.readJSON(metadataFile, &db)
	return db, nil
}

// SaveMetadataDB persists the full metadata cache, replacing the previous
// document.
func (fs *FileStore) SaveMetadataDB(ctx context.Context, db models.MetadataDB) error {
	if err := fs.writeJSON(metadataFile, db); err != nil {
		return fmt.Errorf("failed to save metadata cache: %w", err)
	}
	fs.logger.Debug().Int("count", len(db)).Msg("Metadata cache saved")
	return nil
}

// DeleteMetadataDB removes the persisted metadata cache document.
func (fs *FileStore) DeleteMetadataDB(ctx context.Context) error {
	path := filepath.Join(fs.basePath, metadataFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete metadata cache: %w", err)
	}
	fs.logger.Debug().Msg("Metadata cache deleted")
	return nil
}

// Ensure FileStore implements ConfigStore
var _ interfaces.ConfigStore = (*FileStore)(nil)

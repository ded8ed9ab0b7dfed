package registry

import (
	"fmt"
	"log/slog"

	"github.com/shruggr/subjecttrie/journal"
	"github.com/shruggr/subjecttrie/journal/kv"
	"github.com/shruggr/subjecttrie/journal/sqlite"
	"github.com/shruggr/subjecttrie/kvstore/badger"
	"github.com/shruggr/subjecttrie/kvstore/memory"
)

// StorageConfig selects and configures a journal backend
type StorageConfig struct {
	Type    string // memory, badger or sqlite
	DataDir string // BadgerDB directory
	DBPath  string // SQLite database file
}

// OpenJournal opens the journal backend named by config.Type
func OpenJournal(config *StorageConfig, logger *slog.Logger) (journal.Store, error) {
	switch config.Type {
	case "memory":
		return kv.New(memory.New()), nil
	case "badger":
		store, err := badger.New(&badger.Config{
			DataDir: config.DataDir,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize BadgerDB: %w", err)
		}
		return kv.New(store), nil
	case "sqlite":
		store, err := sqlite.New(&sqlite.Config{DBPath: config.DBPath})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s (use 'memory', 'badger' or 'sqlite')", config.Type)
	}
}

package db

import (
	"errors"
	"fmt"
	"log/slog"

	"logsync/config"
	"logsync/interfaces"
	"logsync/model"
)

var (
	ErrPersistence   = errors.New("persistence error")
	ErrChainMismatch = errors.New("stored state belongs to another chain")
)

const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// document is the persisted layout: the owning chain, the cursor and the
// joined records, every number inside the records kept as a decimal string.
type document struct {
	ChainID      uint64             `json:"chainId"`
	CurrentBlock uint64             `json:"currentBlock"`
	PostEvents   []model.PostRecord `json:"postEvents"`
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

// NewStore opens the store selected by cfg.Driver for one chain. genesis is
// the cursor reported when nothing has been persisted yet.
func NewStore(cfg config.StoreConfig, chainID, genesis uint64) (interfaces.SyncStore, error) {
	slog.Info("opening sync store", "driver", cfg.Driver, "path", cfg.Path, "chain", chainID)
	switch cfg.Driver {
	case "", DriverFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("store.path is required for the %s driver", DriverFile)
		}
		return NewFileStore(cfg.Path, chainID, genesis), nil
	case DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("store.path is required for the %s driver", DriverSQLite)
		}
		return OpenSQLite(cfg.Path, chainID, genesis)
	case DriverMemory:
		return NewMemoryStore(chainID, genesis), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

var (
	_ interfaces.SyncStore = (*FileStore)(nil)
	_ interfaces.SyncStore = (*SQLiteStore)(nil)
	_ interfaces.SyncStore = (*MemoryStore)(nil)
)

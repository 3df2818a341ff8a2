package interfaces

import (
	"context"

	"logsync/model"
)

// SyncStore persists the cursor and the joined records of one chain.
// Save must write both or neither.
type SyncStore interface {
	Load(ctx context.Context) (model.SyncState, error)
	Save(ctx context.Context, state model.SyncState) error
	Close() error
}

type MetricsHandler interface {
	WriteCycle(stats model.CycleStats)
	Flush()
	Close()
}

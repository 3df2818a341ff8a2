package interfaces

import (
	"context"

	"logsync/model"
)

type Core interface {
	Sync(ctx context.Context) (model.SyncResult, error)
	Trigger(ctx context.Context) (model.SyncResult, error)
	Records(ctx context.Context) ([]model.PostRecord, error)
}

package interfaces

import (
	"context"

	ethereum "github.com/autonity/autonity"
	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"
)

// EthClient defines the methods needed from an ethclient.Client.
type EthClient interface {
	BlockNumber(ctx context.Context) (uint64, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

// RangeFetcher reads the chain head and one window of logs for one event.
type RangeFetcher interface {
	Head(ctx context.Context) (uint64, error)
	Fetch(ctx context.Context, address common.Address, eventID common.Hash, from, to uint64) ([]types.Log, error)
}

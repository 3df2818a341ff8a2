package net

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	ethereum "github.com/autonity/autonity"
	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"
	"github.com/autonity/autonity/rpc"

	"logsync/interfaces"
)

var (
	ErrSourceUnavailable = errors.New("log source unavailable")
	ErrRangeTooLarge     = errors.New("block range rejected by provider")
)

const (
	DefaultTimeout = 30 * time.Second

	// limitExceededCode is the JSON-RPC code providers use for oversized eth_getLogs windows.
	limitExceededCode = -32005
)

// rangeTooLargeMessages are the lowercased phrases providers return when an
// eth_getLogs window is too wide or yields too many logs.
var rangeTooLargeMessages = []string{
	"query returned more than",
	"log response size exceeded",
	"eth_getlogs is limited to a",
	"exceed maximum block range",
	"block range is too wide",
	"block range is too large",
	"block range too large",
	"range limit exceeded",
	"eth_getlogs block range too wide",
}

// ClientSource hands out a client for a single call.
type ClientSource func() (interfaces.EthClient, error)

// Fetcher performs exactly one round trip per call and never retries.
type Fetcher struct {
	client  ClientSource
	timeout time.Duration
}

func NewFetcher(source ClientSource, timeout time.Duration) interfaces.RangeFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: source, timeout: timeout}
}

func (f *Fetcher) Head(ctx context.Context) (uint64, error) {
	cl, err := f.client()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	head, err := cl.BlockNumber(ctx)
	if err != nil {
		return 0, classify(ctx, "eth_blockNumber", err)
	}
	return head, nil
}

func (f *Fetcher) Fetch(ctx context.Context, address common.Address, eventID common.Hash, from, to uint64) ([]types.Log, error) {
	cl, err := f.client()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	fq := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(from),
		ToBlock:   new(big.Int).SetUint64(to),
		Addresses: []common.Address{address},
		Topics:    [][]common.Hash{{eventID}},
	}
	logs, err := cl.FilterLogs(ctx, fq)
	if err != nil {
		return nil, classify(ctx, fmt.Sprintf("eth_getLogs %s [%d, %d]", address.Hex(), from, to), err)
	}
	return logs, nil
}

// classify maps a client error onto the fetcher taxonomy. Cancellation by the
// caller is passed through untouched.
func classify(ctx context.Context, call string, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() == context.Canceled {
		return fmt.Errorf("%s: %w", call, err)
	}
	if IsRangeTooLarge(err) {
		return fmt.Errorf("%w: %s: %w", ErrRangeTooLarge, call, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, call, err)
}

// IsRangeTooLarge reports whether a provider refused a window because of its size.
func IsRangeTooLarge(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRangeTooLarge) {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == limitExceededCode {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range rangeTooLargeMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

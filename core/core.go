package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"logsync/config"
	"logsync/interfaces"
	"logsync/model"
	"logsync/net"
	"logsync/schema"
)

var ErrHeadBehindCursor = errors.New("chain head is behind the sync cursor")

type core struct {
	chainID    uint64
	genesis    uint64
	chunkSize  uint64
	lensHub    common.Address
	helloWorld common.Address
	openAction common.Address

	fetcher interfaces.RangeFetcher
	parser  interfaces.ABIParser
	store   interfaces.SyncStore
	metrics interfaces.MetricsHandler

	// one cycle at a time; state is only touched while holding it
	mu sync.Mutex
}

func New(cfg config.Config, fetcher interfaces.RangeFetcher, parser interfaces.ABIParser, store interfaces.SyncStore, metrics interfaces.MetricsHandler) interfaces.Core {
	chunkSize := cfg.Sync.ChunkSize
	if chunkSize == 0 {
		chunkSize = DefaultChunkSize
	}
	return &core{
		chainID:    cfg.Chain.ChainID(),
		genesis:    cfg.Contracts.StartBlock,
		chunkSize:  chunkSize,
		lensHub:    common.HexToAddress(cfg.Contracts.LensHub),
		helloWorld: common.HexToAddress(cfg.Contracts.HelloWorld),
		openAction: common.HexToAddress(cfg.Contracts.OpenAction),
		fetcher:    fetcher,
		parser:     parser,
		store:      store,
		metrics:    metrics,
	}
}

// Sync runs one cycle, waiting for any cycle already in flight. On failure the
// previously persisted records are returned alongside the error.
func (c *core) Sync(ctx context.Context) (model.SyncResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cycle(ctx)
}

// Trigger runs a cycle unless one is already in flight, in which case it
// returns the persisted records flagged as loading.
func (c *core) Trigger(ctx context.Context) (model.SyncResult, error) {
	if !c.mu.TryLock() {
		records, err := c.Records(ctx)
		return model.SyncResult{Records: records, Loading: true}, err
	}
	defer c.mu.Unlock()
	return c.cycle(ctx)
}

// Records returns the committed records without touching the log source.
func (c *core) Records(ctx context.Context) ([]model.PostRecord, error) {
	state, err := c.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sync state: %w", err)
	}
	return model.SortRecords(state.Records), nil
}

func (c *core) cycle(ctx context.Context) (model.SyncResult, error) {
	started := time.Now()
	log := slog.With("cycle", uuid.NewString(), "chain", c.chainID)

	state, err := c.store.Load(ctx)
	if err != nil {
		return model.SyncResult{}, fmt.Errorf("load sync state: %w", err)
	}
	if state.Records == nil {
		state.Records = make(map[string]model.PostRecord)
	}
	previous := model.SyncResult{Records: model.SortRecords(state.Records), Cursor: state.Cursor}

	postID, err := c.parser.EventID(schema.PostCreated)
	if err != nil {
		return previous, err
	}
	mintID, err := c.parser.EventID(schema.IPAssetMinted)
	if err != nil {
		return previous, err
	}

	head, err := c.fetcher.Head(ctx)
	if err != nil {
		log.Error("Unable to get the latest block number", "error", err)
		return previous, fmt.Errorf("resolve head: %w", err)
	}
	if head < state.Cursor {
		log.Error("chain head behind cursor, check the configured network", "head", head, "cursor", state.Cursor)
		return previous, fmt.Errorf("%w: %w (head %d, cursor %d)", net.ErrSourceUnavailable, ErrHeadBehindCursor, head, state.Cursor)
	}
	if state.Cursor == head {
		log.Debug("already synced", "head", head)
		return previous, nil
	}

	stats := model.CycleStats{ChainID: c.chainID, From: state.Cursor, Head: head}
	records := maps.Clone(state.Records)
	log.Info("Starting sync", "from", state.Cursor, "head", head, "chunkSize", c.chunkSize)

	for chunk := range Chunks(state.Cursor, head, c.chunkSize) {
		if err := ctx.Err(); err != nil {
			log.Warn("sync cancelled", "at", chunk.From, "error", err)
			return previous, err
		}
		joined, err := c.processChunk(ctx, chunk, postID, mintID, &stats)
		if err != nil {
			log.Error("chunk failed, keeping previous state", "from", chunk.From, "to", chunk.To, "error", err)
			return previous, fmt.Errorf("chunk [%d, %d]: %w", chunk.From, chunk.To, err)
		}
		for _, rec := range joined {
			records[rec.TransactionHash] = rec
		}
		stats.Chunks++
		log.Debug("chunk complete", "from", chunk.From, "to", chunk.To, "records", len(joined))
	}

	next := model.SyncState{ChainID: c.chainID, Cursor: head, Records: records}
	if err := c.store.Save(ctx, next); err != nil {
		log.Error("unable to persist sync state", "error", err)
		return previous, fmt.Errorf("save sync state: %w", err)
	}

	stats.Records = len(records)
	stats.Duration = time.Since(started)
	stats.CompletedAt = time.Now()
	if c.metrics != nil {
		c.metrics.WriteCycle(stats)
	}
	log.Info("sync complete", "head", head, "chunks", stats.Chunks, "kept", stats.Kept,
		"records", stats.Records, "malformed", stats.Malformed, "time taken", stats.Duration.Seconds())
	return model.SyncResult{Records: model.SortRecords(records), Cursor: head}, nil
}

// processChunk fetches both streams for the same window concurrently, then
// decodes, filters and joins them.
func (c *core) processChunk(ctx context.Context, chunk Chunk, postID, mintID common.Hash, stats *model.CycleStats) ([]model.PostRecord, error) {
	var postLogs, mintLogs []types.Log
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		postLogs, err = c.fetcher.Fetch(gctx, c.lensHub, postID, chunk.From, chunk.To)
		return err
	})
	g.Go(func() error {
		var err error
		mintLogs, err = c.fetcher.Fetch(gctx, c.helloWorld, mintID, chunk.From, chunk.To)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	posts := make([]model.Post, 0, len(postLogs))
	for _, l := range postLogs {
		p, err := c.parser.DecodePost(l)
		if err != nil {
			slog.Warn("skipping malformed post", "tx", l.TxHash.Hex(), "block", l.BlockNumber, "error", err)
			stats.Malformed++
			continue
		}
		posts = append(posts, p)
	}
	mints := make([]model.IPAssetMinted, 0, len(mintLogs))
	for _, l := range mintLogs {
		m, err := c.parser.DecodeIPAssetMinted(l)
		if err != nil {
			slog.Warn("skipping malformed mint", "tx", l.TxHash.Hex(), "block", l.BlockNumber, "error", err)
			stats.Malformed++
			continue
		}
		mints = append(mints, m)
	}
	stats.Posts += len(posts)
	stats.Mints += len(mints)

	kept := FilterByModule(posts, c.openAction)
	stats.Kept += len(kept)
	return Join(kept, mints), nil
}

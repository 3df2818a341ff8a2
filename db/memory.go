package db

import (
	"context"
	"maps"
	"sync"

	"logsync/model"
)

// MemoryStore keeps state in process. Load and Save copy the record map so
// callers never share it with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	state   model.SyncState
	saved   bool
	chainID uint64
	genesis uint64
}

func NewMemoryStore(chainID, genesis uint64) *MemoryStore {
	return &MemoryStore{chainID: chainID, genesis: genesis}
}

func (s *MemoryStore) Load(ctx context.Context) (model.SyncState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.saved {
		return model.NewSyncState(s.chainID, s.genesis), nil
	}
	st := s.state
	st.Records = maps.Clone(s.state.Records)
	return st, nil
}

func (s *MemoryStore) Save(ctx context.Context, state model.SyncState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	records := maps.Clone(state.Records)
	if records == nil {
		records = make(map[string]model.PostRecord)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = model.SyncState{ChainID: s.chainID, Cursor: state.Cursor, Records: records}
	s.saved = true
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

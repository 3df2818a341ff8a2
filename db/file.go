package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"logsync/model"
)

// FileStore keeps the state of one chain in a JSON document. Saves go to a
// temporary file in the same directory which is then renamed over the target,
// so readers see either the old or the new document.
type FileStore struct {
	path    string
	chainID uint64
	genesis uint64
}

func NewFileStore(path string, chainID, genesis uint64) *FileStore {
	return &FileStore{path: path, chainID: chainID, genesis: genesis}
}

func (s *FileStore) Load(ctx context.Context) (model.SyncState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewSyncState(s.chainID, s.genesis), nil
	}
	if err != nil {
		return model.SyncState{}, persistenceError("read "+s.path, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.SyncState{}, persistenceError("decode "+s.path, err)
	}
	// documents written before the chain id was recorded carry 0
	if doc.ChainID != 0 && doc.ChainID != s.chainID {
		return model.SyncState{}, persistenceError("load "+s.path,
			fmt.Errorf("%w: document is for chain %d, configured chain is %d", ErrChainMismatch, doc.ChainID, s.chainID))
	}
	return model.SyncState{
		ChainID: s.chainID,
		Cursor:  doc.CurrentBlock,
		Records: model.RecordMap(doc.PostEvents),
	}, nil
}

func (s *FileStore) Save(ctx context.Context, state model.SyncState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := marshalDocument(s.chainID, state)
	if err != nil {
		return persistenceError("encode", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return persistenceError("create "+dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return persistenceError("create temp file", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return persistenceError("write "+tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return persistenceError("sync "+tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return persistenceError("close "+tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return persistenceError("rename to "+s.path, err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

func marshalDocument(chainID uint64, state model.SyncState) ([]byte, error) {
	doc := document{
		ChainID:      chainID,
		CurrentBlock: state.Cursor,
		PostEvents:   model.SortRecords(state.Records),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

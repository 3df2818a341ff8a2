package db

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"logsync/model"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore keeps the state of one chain in SQLite. Several chains can
// share a database file; rows are keyed by chain id.
type SQLiteStore struct {
	db      *sql.DB
	chainID uint64
	genesis uint64
}

func OpenSQLite(path string, chainID, genesis uint64) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, persistenceError("open "+path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, persistenceError("connect "+path, err)
	}
	// single writer avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, persistenceError(pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, persistenceError("apply schema", err)
	}
	return &SQLiteStore{db: db, chainID: chainID, genesis: genesis}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (model.SyncState, error) {
	var cursor int64
	err := s.db.QueryRowContext(ctx,
		`SELECT current_block FROM sync_cursor WHERE chain_id = ?`, int64(s.chainID)).Scan(&cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewSyncState(s.chainID, s.genesis), nil
	}
	if err != nil {
		return model.SyncState{}, persistenceError("read cursor", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT tx_hash, record FROM post_records WHERE chain_id = ?`, int64(s.chainID))
	if err != nil {
		return model.SyncState{}, persistenceError("read records", err)
	}
	defer rows.Close()

	state := model.NewSyncState(s.chainID, uint64(cursor))
	for rows.Next() {
		var txHash, raw string
		if err := rows.Scan(&txHash, &raw); err != nil {
			return model.SyncState{}, persistenceError("scan record", err)
		}
		var rec model.PostRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return model.SyncState{}, persistenceError(fmt.Sprintf("decode record %s", txHash), err)
		}
		state.Records[txHash] = rec
	}
	if err := rows.Err(); err != nil {
		return model.SyncState{}, persistenceError("read records", err)
	}
	return state, nil
}

// Save replaces the cursor and the record set of the chain in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, state model.SyncState) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistenceError("begin tx", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sync_cursor (chain_id, current_block, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(chain_id) DO UPDATE SET current_block = excluded.current_block, updated_at = excluded.updated_at
	`, int64(s.chainID), int64(state.Cursor), time.Now().Unix()); err != nil {
		return persistenceError("write cursor", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_records WHERE chain_id = ?`, int64(s.chainID)); err != nil {
		return persistenceError("clear records", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO post_records (chain_id, tx_hash, block_number, record) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return persistenceError("prepare insert", err)
	}
	defer stmt.Close()
	for txHash, rec := range state.Records {
		raw, err := json.Marshal(rec)
		if err != nil {
			return persistenceError("encode record "+txHash, err)
		}
		if _, err := stmt.ExecContext(ctx, int64(s.chainID), txHash, rec.BlockNumber, string(raw)); err != nil {
			return persistenceError("write record "+txHash, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return persistenceError("commit", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

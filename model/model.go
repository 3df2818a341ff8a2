package model

import (
	"math/big"
	"time"

	"github.com/autonity/autonity/common"
)

// PostParams mirrors the Types.PostParams tuple of the LensHub PostCreated event.
// Field names and order must match the tuple components for abi.ConvertType.
type PostParams struct {
	ProfileId               *big.Int
	ContentURI              string
	ActionModules           []common.Address
	ActionModulesInitDatas  [][]byte
	ReferenceModule         common.Address
	ReferenceModuleInitData []byte
}

// Post is a decoded PostCreated log.
type Post struct {
	PostParams                    PostParams
	PubId                         *big.Int
	ActionModulesInitReturnDatas  [][]byte
	ReferenceModuleInitReturnData []byte
	TransactionExecutor           common.Address
	Timestamp                     *big.Int
	BlockNumber                   uint64
	TxHash                        common.Hash
}

// IPAssetMinted is a decoded IPAssetMinted log.
type IPAssetMinted struct {
	IPOrgId     common.Address
	GlobalId    *big.Int
	LocalId     *big.Int
	BlockNumber uint64
	TxHash      common.Hash
}

// SyncState is what a store keeps between cycles: the cursor and every joined
// record keyed by transaction hash.
type SyncState struct {
	ChainID uint64
	Cursor  uint64
	Records map[string]PostRecord
}

// NewSyncState returns the state of a chain that has never been synced.
func NewSyncState(chainID, genesis uint64) SyncState {
	return SyncState{
		ChainID: chainID,
		Cursor:  genesis,
		Records: make(map[string]PostRecord),
	}
}

// SyncResult is handed back to whoever triggered a cycle.
type SyncResult struct {
	Records []PostRecord
	Cursor  uint64
	Loading bool
}

// CycleStats summarises one sync cycle for the metrics sink.
type CycleStats struct {
	ChainID     uint64
	From        uint64
	Head        uint64
	Chunks      int
	Posts       int
	Mints       int
	Kept        int
	Malformed   int
	Records     int
	Duration    time.Duration
	CompletedAt time.Time
}

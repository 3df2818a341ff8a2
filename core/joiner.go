package core

import (
	"github.com/autonity/autonity/common"

	"logsync/model"
)

// FilterByModule keeps, in order, the posts whose action modules include module.
func FilterByModule(posts []model.Post, module common.Address) []model.Post {
	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		for _, m := range p.PostParams.ActionModules {
			if m == module {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Join attaches to each post the mint emitted by the same transaction, if any.
// Mints without a post are dropped. When a transaction carries several mints
// the last one wins.
func Join(posts []model.Post, mints []model.IPAssetMinted) []model.PostRecord {
	byTx := make(map[common.Hash]model.IPAssetMinted, len(mints))
	for _, m := range mints {
		byTx[m.TxHash] = m
	}
	out := make([]model.PostRecord, 0, len(posts))
	for _, p := range posts {
		rec := p.Record()
		if m, ok := byTx[p.TxHash]; ok {
			mint := m.Record()
			rec.IPAssetMintedEvent = &mint
		}
		out = append(out, rec)
	}
	return out
}

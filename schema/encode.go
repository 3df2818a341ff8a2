package schema

import (
	"github.com/autonity/autonity/accounts/abi"
	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"

	"logsync/model"
)

// Encoding is the inverse of the decoders and only uses the embedded ABIs.
// It builds the logs a node would return, which is what fixtures need.

func defaultEvent(name string) (abi.Event, error) {
	ap := &abiParser{events: make(map[string]abi.Event)}
	if err := ap.loadDefaults(); err != nil {
		return abi.Event{}, err
	}
	return ap.event(name)
}

// EncodePost builds the PostCreated log for p as emitted by address.
func EncodePost(address common.Address, p model.Post) (types.Log, error) {
	ev, err := defaultEvent(PostCreated)
	if err != nil {
		return types.Log{}, err
	}
	data, err := ev.Inputs.NonIndexed().Pack(
		p.PostParams,
		p.ActionModulesInitReturnDatas,
		p.ReferenceModuleInitReturnData,
		p.TransactionExecutor,
		p.Timestamp,
	)
	if err != nil {
		return types.Log{}, err
	}
	return types.Log{
		Address:     address,
		Topics:      []common.Hash{ev.ID, common.BigToHash(p.PubId)},
		Data:        data,
		BlockNumber: p.BlockNumber,
		TxHash:      p.TxHash,
	}, nil
}

// EncodeIPAssetMinted builds the IPAssetMinted log for m as emitted by address.
func EncodeIPAssetMinted(address common.Address, m model.IPAssetMinted) (types.Log, error) {
	ev, err := defaultEvent(IPAssetMinted)
	if err != nil {
		return types.Log{}, err
	}
	data, err := ev.Inputs.NonIndexed().Pack(m.IPOrgId, m.GlobalId, m.LocalId)
	if err != nil {
		return types.Log{}, err
	}
	return types.Log{
		Address:     address,
		Topics:      []common.Hash{ev.ID},
		Data:        data,
		BlockNumber: m.BlockNumber,
		TxHash:      m.TxHash,
	}, nil
}

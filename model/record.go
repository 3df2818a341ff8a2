package model

import (
	"math/big"
	"sort"

	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/common/hexutil"
)

// PostRecord is the persisted form of a Post with its optional mint attached.
// All numbers are decimal strings so values past 64 bits survive JSON.
type PostRecord struct {
	Args               PostArgs             `json:"args"`
	BlockNumber        string               `json:"blockNumber"`
	TransactionHash    string               `json:"transactionHash"`
	IPAssetMintedEvent *IPAssetMintedRecord `json:"ipAssetMintedEvent,omitempty"`
}

type PostArgs struct {
	PostParams                    PostParamsRecord `json:"postParams"`
	PubId                         string           `json:"pubId"`
	ActionModulesInitReturnDatas  []string         `json:"actionModulesInitReturnDatas"`
	ReferenceModuleInitReturnData string           `json:"referenceModuleInitReturnData"`
	TransactionExecutor           string           `json:"transactionExecutor"`
	Timestamp                     string           `json:"timestamp"`
}

type PostParamsRecord struct {
	ProfileId               string   `json:"profileId"`
	ContentURI              string   `json:"contentURI"`
	ActionModules           []string `json:"actionModules"`
	ActionModulesInitDatas  []string `json:"actionModulesInitDatas"`
	ReferenceModule         string   `json:"referenceModule"`
	ReferenceModuleInitData string   `json:"referenceModuleInitData"`
}

// IPAssetMintedRecord is the persisted form of an IPAssetMinted event.
type IPAssetMintedRecord struct {
	Args            IPAssetMintedArgs `json:"args"`
	BlockNumber     string            `json:"blockNumber"`
	TransactionHash string            `json:"transactionHash"`
}

type IPAssetMintedArgs struct {
	IPOrgId  string `json:"ipOrgId"`
	GlobalId string `json:"globalId"`
	LocalId  string `json:"localId"`
}

// Record converts a decoded post into its persisted form without a mint.
func (p Post) Record() PostRecord {
	return PostRecord{
		Args: PostArgs{
			PostParams: PostParamsRecord{
				ProfileId:               decimal(p.PostParams.ProfileId),
				ContentURI:              p.PostParams.ContentURI,
				ActionModules:           addresses(p.PostParams.ActionModules),
				ActionModulesInitDatas:  hexes(p.PostParams.ActionModulesInitDatas),
				ReferenceModule:         p.PostParams.ReferenceModule.Hex(),
				ReferenceModuleInitData: hexutil.Encode(p.PostParams.ReferenceModuleInitData),
			},
			PubId:                         decimal(p.PubId),
			ActionModulesInitReturnDatas:  hexes(p.ActionModulesInitReturnDatas),
			ReferenceModuleInitReturnData: hexutil.Encode(p.ReferenceModuleInitReturnData),
			TransactionExecutor:           p.TransactionExecutor.Hex(),
			Timestamp:                     decimal(p.Timestamp),
		},
		BlockNumber:     new(big.Int).SetUint64(p.BlockNumber).String(),
		TransactionHash: p.TxHash.Hex(),
	}
}

func (m IPAssetMinted) Record() IPAssetMintedRecord {
	return IPAssetMintedRecord{
		Args: IPAssetMintedArgs{
			IPOrgId:  m.IPOrgId.Hex(),
			GlobalId: decimal(m.GlobalId),
			LocalId:  decimal(m.LocalId),
		},
		BlockNumber:     new(big.Int).SetUint64(m.BlockNumber).String(),
		TransactionHash: m.TxHash.Hex(),
	}
}

// SortRecords flattens a record map ordered by block number, then tx hash.
func SortRecords(records map[string]PostRecord) []PostRecord {
	out := make([]PostRecord, 0, len(records))
	for _, r := range records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		bi, _ := new(big.Int).SetString(out[i].BlockNumber, 10)
		bj, _ := new(big.Int).SetString(out[j].BlockNumber, 10)
		if bi != nil && bj != nil {
			if c := bi.Cmp(bj); c != 0 {
				return c < 0
			}
		}
		return out[i].TransactionHash < out[j].TransactionHash
	})
	return out
}

// RecordMap keys records by transaction hash; later entries win.
func RecordMap(records []PostRecord) map[string]PostRecord {
	m := make(map[string]PostRecord, len(records))
	for _, r := range records {
		m[r.TransactionHash] = r
	}
	return m
}

func decimal(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func addresses(in []common.Address) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		out = append(out, a.Hex())
	}
	return out
}

func hexes(in [][]byte) []string {
	out := make([]string, 0, len(in))
	for _, b := range in {
		out = append(out, hexutil.Encode(b))
	}
	return out
}

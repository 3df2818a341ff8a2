package schema

import (
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"
	"github.com/autonity/autonity/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsync/config"
	"logsync/model"
)

var (
	lensHub = common.HexToAddress("0x00000000000000000000000000000000000001e5")
	module  = common.HexToAddress("0x0000000000000000000000000000000000000a11")
)

func startedParser(t *testing.T, cfg config.ABIConfig) *abiParser {
	t.Helper()
	ap := NewABIParser(cfg).(*abiParser)
	require.NoError(t, ap.Start())
	t.Cleanup(func() { _ = ap.Stop() })
	return ap
}

func samplePost() model.Post {
	profile, _ := new(big.Int).SetString("79228162514264337593543950335", 10)
	return model.Post{
		PostParams: model.PostParams{
			ProfileId:               profile,
			ContentURI:              "ar://post",
			ActionModules:           []common.Address{module},
			ActionModulesInitDatas:  [][]byte{{0x01, 0x02}},
			ReferenceModule:         common.Address{},
			ReferenceModuleInitData: []byte{},
		},
		PubId:                         big.NewInt(17),
		ActionModulesInitReturnDatas:  [][]byte{{0xff}},
		ReferenceModuleInitReturnData: []byte{},
		TransactionExecutor:           common.HexToAddress("0x00000000000000000000000000000000000000e0"),
		Timestamp:                     big.NewInt(1700000000),
		BlockNumber:                   4242,
		TxHash:                        common.HexToHash("0xabc"),
	}
}

func TestEventIDs(t *testing.T) {
	ap := startedParser(t, config.ABIConfig{})

	id, err := ap.EventID(PostCreated)
	require.NoError(t, err)
	expected := crypto.Keccak256Hash([]byte("PostCreated((uint256,string,address[],bytes[],address,bytes),uint256,bytes[],bytes,address,uint256)"))
	assert.Equal(t, expected, id)

	id, err = ap.EventID(IPAssetMinted)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash([]byte("IPAssetMinted(address,uint256,uint256)")), id)

	_, err = ap.EventID("Transfer")
	assert.True(t, errors.Is(err, ErrUnknownEvent))
}

func TestDecodePost(t *testing.T) {
	ap := startedParser(t, config.ABIConfig{})
	want := samplePost()
	log, err := EncodePost(lensHub, want)
	require.NoError(t, err)

	got, err := ap.DecodePost(log)
	require.NoError(t, err)
	assert.Equal(t, "79228162514264337593543950335", got.PostParams.ProfileId.String())
	assert.Equal(t, want.PostParams.ContentURI, got.PostParams.ContentURI)
	assert.Equal(t, want.PostParams.ActionModules, got.PostParams.ActionModules)
	assert.Equal(t, want.PostParams.ActionModulesInitDatas, got.PostParams.ActionModulesInitDatas)
	assert.Equal(t, 0, want.PubId.Cmp(got.PubId))
	assert.Equal(t, want.ActionModulesInitReturnDatas, got.ActionModulesInitReturnDatas)
	assert.Equal(t, want.TransactionExecutor, got.TransactionExecutor)
	assert.Equal(t, 0, want.Timestamp.Cmp(got.Timestamp))
	assert.Equal(t, uint64(4242), got.BlockNumber)
	assert.Equal(t, want.TxHash, got.TxHash)

	rec := got.Record()
	assert.Equal(t, "79228162514264337593543950335", rec.Args.PostParams.ProfileId)
	assert.Equal(t, []string{"0x0102"}, rec.Args.PostParams.ActionModulesInitDatas)
	assert.Equal(t, "0x", rec.Args.ReferenceModuleInitReturnData)
	assert.Equal(t, "4242", rec.BlockNumber)
}

func TestDecodeIPAssetMinted(t *testing.T) {
	ap := startedParser(t, config.ABIConfig{})
	want := model.IPAssetMinted{
		IPOrgId:     common.HexToAddress("0x00000000000000000000000000000000000000c3"),
		GlobalId:    big.NewInt(9),
		LocalId:     big.NewInt(3),
		BlockNumber: 99,
		TxHash:      common.HexToHash("0xdef"),
	}
	log, err := EncodeIPAssetMinted(common.HexToAddress("0x0000000000000000000000000000000000000ae1"), want)
	require.NoError(t, err)

	got, err := ap.DecodeIPAssetMinted(log)
	require.NoError(t, err)
	assert.Equal(t, want.IPOrgId, got.IPOrgId)
	assert.Equal(t, int64(9), got.GlobalId.Int64())
	assert.Equal(t, int64(3), got.LocalId.Int64())
	assert.Equal(t, want.TxHash, got.TxHash)
}

func TestDecodeMalformed(t *testing.T) {
	ap := startedParser(t, config.ABIConfig{})
	good, err := EncodePost(lensHub, samplePost())
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(l *types.Log)
	}{
		{"truncated data", func(l *types.Log) { l.Data = l.Data[:40] }},
		{"empty data", func(l *types.Log) { l.Data = nil }},
		{"missing pubId topic", func(l *types.Log) { l.Topics = l.Topics[:1] }},
		{"no topics", func(l *types.Log) { l.Topics = nil }},
		{"wrong signature", func(l *types.Log) { l.Topics[0] = common.HexToHash("0x1234") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := good
			l.Topics = append([]common.Hash(nil), good.Topics...)
			l.Data = append([]byte(nil), good.Data...)
			tt.mutate(&l)
			post, err := ap.DecodePost(l)
			assert.True(t, errors.Is(err, ErrMalformedEvent), "got %v", err)
			assert.Nil(t, post.PubId)
		})
	}
}

func TestDecodeMintAsPost(t *testing.T) {
	ap := startedParser(t, config.ABIConfig{})
	mint, err := EncodeIPAssetMinted(lensHub, model.IPAssetMinted{GlobalId: big.NewInt(1), LocalId: big.NewInt(1)})
	require.NoError(t, err)
	_, err = ap.DecodePost(mint)
	assert.True(t, errors.Is(err, ErrMalformedEvent))
}

const transferABI = `[{"anonymous":false,"inputs":[{"indexed":true,"name":"from","type":"address"},{"indexed":true,"name":"to","type":"address"},{"indexed":false,"name":"value","type":"uint256"}],"name":"Transfer","type":"event"}]`

func TestLoadABIsFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Token.abi"), []byte(transferABI), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not an abi"), 0o644))

	ap := startedParser(t, config.ABIConfig{Dir: dir})
	id, err := ap.EventID("Transfer")
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")), id)

	_, err = ap.EventID(PostCreated)
	assert.NoError(t, err, "embedded definitions stay available")
}

func TestStartFailsOnBrokenABI(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.abi"), []byte("{not json"), 0o644))
	ap := NewABIParser(config.ABIConfig{Dir: dir})
	assert.Error(t, ap.Start())
}

func TestWatchPicksUpNewABIs(t *testing.T) {
	dir := t.TempDir()
	ap := startedParser(t, config.ABIConfig{Dir: dir})
	_, err := ap.EventID("Transfer")
	require.True(t, errors.Is(err, ErrUnknownEvent))

	// the watcher registers asynchronously, keep rewriting until it notices
	path := filepath.Join(dir, "Token.abi")
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(transferABI), 0o644)
		_, err := ap.EventID("Transfer")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
}

const reshapedPostABI = `[{"anonymous":false,"inputs":[{"indexed":true,"name":"pubId","type":"uint256"},{"indexed":false,"name":"contentURI","type":"string"}],"name":"PostCreated","type":"event"}]`

func TestOverrideCannotReshapeSyncedEvents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Lens.abi"), []byte(reshapedPostABI), 0o644))

	err := NewABIParser(config.ABIConfig{Dir: dir}).Start()
	assert.True(t, errors.Is(err, ErrIncompatibleABI), "got %v", err)
}

func TestReloadKeepsSyncedEventDefinition(t *testing.T) {
	ap := startedParser(t, config.ABIConfig{})
	before, err := ap.EventID(PostCreated)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Lens.abi")
	require.NoError(t, os.WriteFile(path, []byte(reshapedPostABI), 0o644))
	assert.True(t, errors.Is(ap.Parse(path), ErrIncompatibleABI))

	after, err := ap.EventID(PostCreated)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// posts still decode with the embedded layout
	log, err := EncodePost(lensHub, samplePost())
	require.NoError(t, err)
	_, err = ap.DecodePost(log)
	assert.NoError(t, err)
}

func TestOverrideWithSameSignatureIsAccepted(t *testing.T) {
	embedded, err := defaultABIs.ReadFile("abi/HelloWorld.abi")
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "HelloWorld.abi"), embedded, 0o644))

	ap := startedParser(t, config.ABIConfig{Dir: dir})
	_, err = ap.EventID(IPAssetMinted)
	assert.NoError(t, err)
}

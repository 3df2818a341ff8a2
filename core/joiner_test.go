package core

import (
	"math/big"
	"testing"

	"github.com/autonity/autonity/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsync/model"
)

var (
	targetModule = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	otherModule  = common.HexToAddress("0x0000000000000000000000000000000000000b22")
)

func testPost(tx string, block uint64, modules ...common.Address) model.Post {
	return model.Post{
		PostParams: model.PostParams{
			ProfileId:     big.NewInt(1),
			ContentURI:    "ipfs://" + tx,
			ActionModules: modules,
		},
		PubId:       big.NewInt(int64(block)),
		Timestamp:   big.NewInt(1700000000),
		BlockNumber: block,
		TxHash:      common.HexToHash(tx),
	}
}

func testMint(tx string, block uint64, globalID int64) model.IPAssetMinted {
	return model.IPAssetMinted{
		IPOrgId:     common.HexToAddress("0x00000000000000000000000000000000000000c3"),
		GlobalId:    big.NewInt(globalID),
		LocalId:     big.NewInt(1),
		BlockNumber: block,
		TxHash:      common.HexToHash(tx),
	}
}

func TestJoin_AttachesMatchingMint(t *testing.T) {
	out := Join([]model.Post{testPost("0xabc", 5, targetModule)}, []model.IPAssetMinted{testMint("0xabc", 5, 9)})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].IPAssetMintedEvent)
	assert.Equal(t, "9", out[0].IPAssetMintedEvent.Args.GlobalId)
	assert.Equal(t, common.HexToHash("0xabc").Hex(), out[0].IPAssetMintedEvent.TransactionHash)
}

func TestJoin_UnmatchedPostHasNoMint(t *testing.T) {
	out := Join([]model.Post{testPost("0xabc", 5, targetModule)}, []model.IPAssetMinted{testMint("0xdef", 5, 9)})
	require.Len(t, out, 1)
	assert.Nil(t, out[0].IPAssetMintedEvent)
}

func TestJoin_UnmatchedMintIsDropped(t *testing.T) {
	out := Join(nil, []model.IPAssetMinted{testMint("0xdef", 5, 9)})
	assert.Empty(t, out)
}

func TestJoin_LastMintWins(t *testing.T) {
	out := Join(
		[]model.Post{testPost("0xabc", 5, targetModule)},
		[]model.IPAssetMinted{testMint("0xabc", 5, 1), testMint("0xabc", 5, 2)},
	)
	require.Len(t, out, 1)
	assert.Equal(t, "2", out[0].IPAssetMintedEvent.Args.GlobalId)
}

func TestFilterByModule(t *testing.T) {
	posts := []model.Post{
		testPost("0x01", 1, targetModule),
		testPost("0x02", 2, otherModule),
		testPost("0x03", 3, otherModule, targetModule),
		testPost("0x04", 4),
	}
	kept := FilterByModule(posts, targetModule)
	require.Len(t, kept, 2)
	assert.Equal(t, common.HexToHash("0x01"), kept[0].TxHash)
	assert.Equal(t, common.HexToHash("0x03"), kept[1].TxHash)
}

func TestFilterThenJoin_ExcludesOtherModulesEvenWithMint(t *testing.T) {
	posts := []model.Post{testPost("0xabc", 5, otherModule)}
	mints := []model.IPAssetMinted{testMint("0xabc", 5, 9)}
	assert.Empty(t, Join(FilterByModule(posts, targetModule), mints))
}

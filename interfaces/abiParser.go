package interfaces

import (
	"github.com/autonity/autonity/common"
	"github.com/autonity/autonity/core/types"

	"logsync/model"
)

type ABIParser interface {
	Start() error
	Parse(filepath string) error
	EventID(name string) (common.Hash, error)
	DecodePost(log types.Log) (model.Post, error)
	DecodeIPAssetMinted(log types.Log) (model.IPAssetMinted, error)
	Stop() error
}

package helper

import (
	"fmt"
	"log/slog"

	"github.com/autonity/autonity/common"

	"logsync/config"
)

func PrintContractAddresses(cfg config.ContractsConfig) {
	slog.Info("Contract addresses",
		"LensHub", common.HexToAddress(cfg.LensHub).Hex(),
		"HelloWorld", common.HexToAddress(cfg.HelloWorld).Hex(),
		"OpenAction", common.HexToAddress(cfg.OpenAction).Hex(),
		"StartBlock", cfg.StartBlock,
	)
}

// ValidateContracts rejects missing or malformed contract addresses. A zero
// address would make eth_getLogs match nothing and the sync look healthy.
func ValidateContracts(cfg config.ContractsConfig) error {
	for name, addr := range map[string]string{
		"contracts.lensHub":    cfg.LensHub,
		"contracts.helloWorld": cfg.HelloWorld,
		"contracts.openAction": cfg.OpenAction,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("%s: %q is not a hex address", name, addr)
		}
		if common.HexToAddress(addr) == (common.Address{}) {
			return fmt.Errorf("%s: zero address", name)
		}
	}
	return nil
}

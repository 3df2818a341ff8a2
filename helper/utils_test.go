package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"logsync/config"
)

func TestValidateContracts(t *testing.T) {
	valid := config.ContractsConfig{
		LensHub:    "0x00000000000000000000000000000000000001e5",
		HelloWorld: "0x0000000000000000000000000000000000000ae1",
		OpenAction: "0x0000000000000000000000000000000000000a11",
	}
	assert.NoError(t, ValidateContracts(valid))

	missing := valid
	missing.OpenAction = ""
	assert.ErrorContains(t, ValidateContracts(missing), "contracts.openAction")

	zero := valid
	zero.LensHub = "0x0000000000000000000000000000000000000000"
	assert.ErrorContains(t, ValidateContracts(zero), "zero address")

	garbage := valid
	garbage.HelloWorld = "hello"
	assert.ErrorContains(t, ValidateContracts(garbage), "not a hex address")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChainID(t *testing.T) {
	tests := []struct {
		name  string
		chain ChainConfig
		want  uint64
	}{
		{"polygon", ChainConfig{Network: "polygon"}, 137},
		{"mumbai", ChainConfig{Network: "mumbai"}, 80001},
		{"unknown network falls back to testnet", ChainConfig{Network: "sepolia"}, 80001},
		{"explicit id wins", ChainConfig{ID: 31337, Network: "polygon"}, 31337},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chain.ChainID())
		})
	}
}

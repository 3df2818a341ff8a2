package config

import "time"

// Config holds the application configuration
type Config struct {
	Node      NodeConfig      `mapstructure:"node"`
	Chain     ChainConfig     `mapstructure:"chain"`
	Contracts ContractsConfig `mapstructure:"contracts"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Store     StoreConfig     `mapstructure:"store"`
	InfluxDB  InfluxDBConfig  `mapstructure:"db"`
	ABIs      ABIConfig       `mapstructure:"abis"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type NodeConfig struct {
	RPC     []string      `mapstructure:"rpc"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type ChainConfig struct {
	ID      uint64 `mapstructure:"id"`
	Network string `mapstructure:"network"`
}

// ChainID resolves the configured chain. An explicit id wins, otherwise the
// network name selects polygon mainnet or the mumbai testnet.
func (c ChainConfig) ChainID() uint64 {
	if c.ID != 0 {
		return c.ID
	}
	if c.Network == "polygon" {
		return 137
	}
	return 80001
}

// ContractsConfig names the two log sources and the module posts must carry.
type ContractsConfig struct {
	LensHub    string `mapstructure:"lensHub"`
	HelloWorld string `mapstructure:"helloWorld"`
	OpenAction string `mapstructure:"openAction"`
	StartBlock uint64 `mapstructure:"startBlock"`
}

type SyncConfig struct {
	ChunkSize uint64        `mapstructure:"chunkSize"`
	Interval  time.Duration `mapstructure:"interval"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type InfluxDBConfig struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Org    string `mapstructure:"org"`
	Bucket string `mapstructure:"bucket"`
}

type ABIConfig struct {
	Dir string `mapstructure:"dir"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

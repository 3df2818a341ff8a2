package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"

	"github.com/spf13/viper"

	"logsync/config"
	"logsync/core"
	"logsync/db"
	"logsync/helper"
	"logsync/interfaces"
	"logsync/model"
	"logsync/net"
	"logsync/schema"
)

func loadConfig() config.Config {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to unmarshal config: %v", err)
	}
	return cfg
}

// app wires one engine and everything it owns.
type app struct {
	engine interfaces.Core
	close  []func()
}

func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	if err := helper.ValidateContracts(cfg.Contracts); err != nil {
		return nil, err
	}
	if len(cfg.Node.RPC) == 0 {
		return nil, fmt.Errorf("node.rpc: at least one endpoint is required")
	}
	helper.PrintContractAddresses(cfg.Contracts)

	a := &app{}
	parser := schema.NewABIParser(cfg.ABIs)
	if err := parser.Start(); err != nil {
		return nil, fmt.Errorf("load abis: %w", err)
	}
	a.close = append(a.close, func() { _ = parser.Stop() })

	pool := net.NewConnectionPool(ctx, cfg.Node.RPC)
	a.close = append(a.close, pool.Close)
	fetcher := net.NewFetcher(pool.Client, cfg.Node.Timeout)

	store, err := db.NewStore(cfg.Store, cfg.Chain.ChainID(), cfg.Contracts.StartBlock)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.close = append(a.close, func() {
		if err := store.Close(); err != nil {
			slog.Error("unable to close store", "error", err)
		}
	})

	metrics := db.NewMetricsHandler(cfg.InfluxDB)
	a.close = append(a.close, metrics.Close)

	a.engine = core.New(cfg, fetcher, parser, store, metrics)
	return a, nil
}

func (a *app) Close() {
	for i := len(a.close) - 1; i >= 0; i-- {
		a.close[i]()
	}
}

func printRecords(w io.Writer, records []model.PostRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

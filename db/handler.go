package db

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"logsync/config"
	"logsync/interfaces"
	"logsync/model"
)

const SyncCycleMeasurement = "sync_cycle"

type handler struct {
	cfg    config.InfluxDBConfig
	client influxdb2.Client
	writer api.WriteAPIBlocking
}

// NewMetricsHandler reports cycle statistics to InfluxDB. Without a URL the
// statistics are only logged.
func NewMetricsHandler(dbConfig config.InfluxDBConfig) interfaces.MetricsHandler {
	if dbConfig.URL == "" {
		return logHandler{}
	}
	slog.Info("connecting to DB", "url", dbConfig.URL)
	h := &handler{cfg: dbConfig}
	h.client = influxdb2.NewClient(dbConfig.URL, dbConfig.Token)
	h.writer = h.client.WriteAPIBlocking(dbConfig.Org, dbConfig.Bucket)
	return h
}

func (h *handler) WriteCycle(stats model.CycleStats) {
	tags := map[string]string{"chain": strconv.FormatUint(stats.ChainID, 10)}
	point := influxdb2.NewPoint(SyncCycleMeasurement, tags, cycleFields(stats), stats.CompletedAt)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.writer.WritePoint(ctx, point); err != nil {
		slog.Error("unable to write sync cycle point", "error", err)
	}
}

func (h *handler) Flush() {
	// blocking writes are flushed per point
}

func (h *handler) Close() {
	h.client.Close()
}

func cycleFields(stats model.CycleStats) map[string]interface{} {
	return map[string]interface{}{
		"from":        int64(stats.From),
		"head":        int64(stats.Head),
		"chunks":      int64(stats.Chunks),
		"posts":       int64(stats.Posts),
		"mints":       int64(stats.Mints),
		"kept":        int64(stats.Kept),
		"malformed":   int64(stats.Malformed),
		"records":     int64(stats.Records),
		"duration_ms": stats.Duration.Milliseconds(),
	}
}

type logHandler struct{}

func (logHandler) WriteCycle(stats model.CycleStats) {
	slog.Debug("sync cycle", "chain", stats.ChainID, "fields", cycleFields(stats))
}

func (logHandler) Flush() {}

func (logHandler) Close() {}

package cli

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
)

var watchCommand = &cobra.Command{
	Use:   "watch",
	Short: "Run a sync cycle every sync.interval until interrupted",
	Run:   runWatch,
}

func init() {
	rootCmd.AddCommand(watchCommand)
}

func runWatch(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close()

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	// singleton mode skips a tick while the previous cycle is still running
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Sync.Interval),
		gocron.NewTask(func() {
			res, err := a.engine.Trigger(ctx)
			if err != nil {
				slog.Error("sync cycle failed", "error", err)
				return
			}
			slog.Info("sync cycle done", "cursor", res.Cursor, "posts", len(res.Records), "loading", res.Loading)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		log.Fatalf("Failed to schedule sync: %v", err)
	}

	slog.Info("watching", "interval", cfg.Sync.Interval)
	s.Start()
	<-ctx.Done()
	if err := s.Shutdown(); err != nil {
		slog.Error("scheduler shutdown", "error", err)
	}
}

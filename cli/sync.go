package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"logsync/interfaces"
)

var syncCommand = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync cycle and print the cached posts",
	Run:   runSync,
}

func init() {
	syncCommand.Flags().Bool("json", false, "print every cached post as json")
	rootCmd.AddCommand(syncCommand)
}

func runSync(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	a, err := newApp(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("Failed to start: %v", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	err = syncOnce(ctx, a.engine, os.Stdout, asJSON)
	a.Close()
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// syncOnce runs a single cycle and reports it on out. A failed cycle is logged
// and returned so the process can exit non-zero.
func syncOnce(ctx context.Context, engine interfaces.Core, out io.Writer, asJSON bool) error {
	res, err := engine.Sync(ctx)
	if err != nil {
		slog.Error("sync failed, cached posts are unchanged", "error", err, "posts", len(res.Records))
		return err
	}
	if asJSON {
		if err := printRecords(out, res.Records); err != nil {
			slog.Error("unable to print posts", "error", err)
			return err
		}
		return nil
	}
	_, err = fmt.Fprintf(out, "synced up to block %d, %d posts cached\n", res.Cursor, len(res.Records))
	return err
}

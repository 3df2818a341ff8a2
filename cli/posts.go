package cli

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"logsync/db"
	"logsync/model"
)

var postsCommand = &cobra.Command{
	Use:   "posts",
	Short: "Print the cached posts without contacting the node",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		store, err := db.NewStore(cfg.Store, cfg.Chain.ChainID(), cfg.Contracts.StartBlock)
		if err != nil {
			log.Fatalf("Failed to open store: %v", err)
		}
		defer store.Close()

		state, err := store.Load(context.Background())
		if err != nil {
			log.Fatalf("Failed to load state: %v", err)
		}
		if err := printRecords(os.Stdout, model.SortRecords(state.Records)); err != nil {
			log.Fatalf("Failed to print posts: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(postsCommand)
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Desarso/tradesummit/models"
	"github.com/Desarso/tradesummit/stores"
)

var (
	listAudience string
	listLimit    int
)

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "List archived conversations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := stores.NewStore(&cfg.Store)
		if err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("conversation archive is disabled")
		}
		defer store.Close()

		convs, err := store.ListConversations(models.Audience(listAudience), listLimit)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(convs)
	},
}

func init() {
	conversationsCmd.Flags().StringVar(&listAudience, "audience", "", "filter by audience")
	conversationsCmd.Flags().IntVar(&listLimit, "limit", 20, "maximum conversations to list")
}

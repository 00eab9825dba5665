package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Desarso/tradesummit"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "tradesummit",
	Short: "TradeSummit chat widget service",
	Long: `Serves the Aria (customer/prospect) and Atlas (admin) chat widgets:
transcripts, resolvers, action dispatch and the conversation archive.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.AddCommand(serveCmd, chatCmd, conversationsCmd)
}

// setup loads the config and builds the logger shared by every command.
func setup() (*tradesummit.Config, *zap.Logger, error) {
	cfg, err := tradesummit.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := tradesummit.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

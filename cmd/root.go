package cmd

import (
	"os"

	"github.com/klokku/finance-kanban/internal/config"
	"github.com/spf13/cobra"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "finance-kanban",
	Short: "Personal finance board game engine",
	Long:  "Run the finance-kanban game server or simulate games from the command line.",
	RunE:  runServe,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "./config/application.yaml", "Path to the YAML configuration file")
}

func loadConfig() (config.Application, error) {
	return config.Load(flagConfig)
}

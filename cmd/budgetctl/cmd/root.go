// Package cmd provides CLI commands for budgetctl.
package cmd

import (
	"log/slog"
	"os"
	// Embedded so --timezone works on hosts without a zoneinfo database.
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var debug bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "budgetctl",
	Short: "Offline tools for the budget tracker",
	Long: `budgetctl runs the budget tracker's aggregation engine against local data,
without a database or a running API server.

Example:
  budgetctl summarize --file transactions.json --granularity monthly`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if it exists so SUMMARY_* settings apply here too
		_ = godotenv.Load()

		logLevel := slog.LevelInfo
		if debug {
			logLevel = slog.LevelDebug
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newSummarizeCmd())
}

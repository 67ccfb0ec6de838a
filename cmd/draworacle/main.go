package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath, csvPath string

	var rootCmd = &cobra.Command{
		Use:           "draworacle",
		Short:         "4-digit draw statistics and forecast service",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (and Telegram bot when enabled)",
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	}

	var statsCmd = &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for a CSV draw history as JSON",
		RunE: func(c *cobra.Command, args []string) error {
			return runStats(c.OutOrStdout(), csvPath)
		},
	}

	var predictCmd = &cobra.Command{
		Use:   "predict",
		Short: "Print the next draw forecast for a CSV draw history as JSON",
		RunE: func(c *cobra.Command, args []string) error {
			return runPredict(c.OutOrStdout(), csvPath)
		},
	}

	serveCmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "Path to configuration file")

	for _, c := range []*cobra.Command{statsCmd, predictCmd} {
		c.Flags().StringVar(&csvPath, "csv", "", "CSV file with date,first,second,third columns (required)")
		_ = c.MarkFlagRequired("csv")
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(predictCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

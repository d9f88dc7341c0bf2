// Command screen runs the resume screening pipeline from the command line.
//
//	go run ./cmd/screen parse resume.pdf --tika-url http://localhost:9998
//	go run ./cmd/screen migrate
package main

import (
	"os"

	"github.com/spf13/cobra"

	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/telemetry"
)

const app = "screen"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string
	cfg := config.Load()

	root := &cobra.Command{
		Use:           app,
		Short:         "screen extracts candidate details from resumes and classifies them",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			telemetry.Init(logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			telemetry.Sync()
		},
	}
	// Keep stdout clean for JSON output unless asked otherwise.
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	root.AddCommand(newParseCmd(cfg), newMigrateCmd(cfg))
	return root
}

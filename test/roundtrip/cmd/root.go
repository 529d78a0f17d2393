package cmd

import (
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "roundtrip",
	Short: "Tools for testing contact file round-tripping",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		allow := level.AllowWarn()
		if verbose {
			allow = level.AllowDebug()
		}

		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger = level.NewFilter(logger, allow)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug messages too")
}

func Execute() error {
	return rootCmd.Execute()
}

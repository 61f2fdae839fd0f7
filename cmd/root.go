package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "linear-mcp",
	Short: "MCP server for batch operations against Linear",
	Long: `An MCP server and CLI for batch operations against Linear.

Run "linear-mcp serve" to expose the batch tools over MCP stdio, or
"linear-mcp batch -f items.yml" to run a batch directly from a file.

Every batch call:
- Accepts 1-50 items and processes them independently
- Resolves human-readable references (team keys, state names, labels,
  emails) to canonical ids before calling the API
- Retries transient failures and reports per-item success or failure`,
	Version: Version,
}

// Global flags
var (
	outputFormat string
	logLevel     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json, csv, quiet)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

// initLogger builds the process logger. Output goes to stderr so MCP
// stdio framing on stdout stays clean.
func initLogger(level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).With().Timestamp().Str("app", "linear-mcp").Logger()

	if level != "" {
		if parsed, err := zerolog.ParseLevel(level); err == nil {
			logger = logger.Level(parsed)
		}
	}

	log.Logger = logger
	return logger
}

func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/linearmcp/linear-mcp-go/pkg/config"
	"github.com/linearmcp/linear-mcp-go/pkg/linear"
	"github.com/linearmcp/linear-mcp-go/pkg/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the batch tools over MCP stdio",
	Long: `Start the MCP server on stdio.

The server exposes batch tools (create_issues, update_issues,
create_projects, update_projects, create_comments, update_comments) and
read-only listing tools (list_teams, list_projects, list_users,
get_issue). Configuration comes from ` + config.ConfigFileName + ` and the
` + config.EnvAPIKey + ` environment variable.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	logger := initLogger(level)

	client := linear.NewClient(cfg.APIKey)
	if cfg.Endpoint != "" {
		client = client.WithEndpoint(cfg.Endpoint)
	}

	s := tools.NewServer(client, cfg.Options(), Version, logger)

	logger.Info().Str("version", Version).Msg("serving MCP on stdio")
	if err := mcpserver.ServeStdio(s); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}

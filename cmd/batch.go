package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/linearmcp/linear-mcp-go/pkg/batch"
	"github.com/linearmcp/linear-mcp-go/pkg/config"
	"github.com/linearmcp/linear-mcp-go/pkg/linear"
	"github.com/linearmcp/linear-mcp-go/pkg/output"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of operations from a file",
	Long: `Run a batch of create/update operations described in a YAML file.

The file lists 1-50 items, each tagged with one operation:

  items:
    - issue_create:
        team: ENG
        title: Fix login timeout
        priority: high
        labels: [Bug]
    - issue_update:
        issue: ENG-123
        state: Done
    - comment_create:
        issue: ENG-124
        body: Deployed to staging.

Items are processed independently; a failed item never blocks the rest.`,
	RunE: runBatch,
}

var (
	batchFile     string
	batchDryRun   bool
	batchParallel bool
)

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "YAML file describing the batch (required)")
	batchCmd.Flags().BoolVar(&batchDryRun, "dry-run", false, "Validate the items without sending anything")
	batchCmd.Flags().BoolVar(&batchParallel, "parallel", false, "Dispatch all items concurrently")
	batchCmd.MarkFlagRequired("file")
}

// applyDefaults fills configured default team/priority/state into
// issue-create items that leave them blank.
func applyDefaults(req *batch.Request, defaults config.DefaultsConfig) {
	for i := range req.Items {
		in := req.Items[i].IssueCreate
		if in == nil {
			continue
		}
		if in.Team == "" && in.TeamID == "" {
			in.Team = defaults.Team
		}
		if in.Priority == nil && defaults.Priority != "" {
			in.Priority = defaults.Priority
		}
		if in.State == "" && in.StateID == "" {
			in.State = defaults.State
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level := logLevel
	if level == "" {
		level = cfg.Log.Level
	}
	logger := initLogger(level)

	data, err := os.ReadFile(batchFile)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}

	var req batch.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse batch file: %w", err)
	}
	if batchDryRun {
		req.DryRun = true
	}
	if batchParallel {
		req.Parallel = true
	}
	applyDefaults(&req, cfg.Defaults)

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	client := linear.NewClient(cfg.APIKey)
	if cfg.Endpoint != "" {
		client = client.WithEndpoint(cfg.Endpoint)
	}
	orc := batch.NewOrchestrator(client, logger, cfg.Options())

	outcome, err := orc.Run(cmd.Context(), &req)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(format)
	if err := formatter.FormatOutcome(outcome); err != nil {
		return err
	}

	if outcome.Summary.Failed > 0 {
		return fmt.Errorf("%d of %d items failed", outcome.Summary.Failed, outcome.Summary.Total)
	}
	return nil
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/bootstrap"
	"github.com/feral-file/ff-crm-sync/internal/config"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	temporal "github.com/feral-file/ff-crm-sync/internal/providers/temporal"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

// errUnitsFailed makes the process exit non-zero when any unit of the cycle failed
var errUnitsFailed = errors.New("sync finished with failed units")

func outboundCmd(opts *rootOptions) *cobra.Command {
	var (
		labels      []string
		viaTemporal bool
	)

	cmd := &cobra.Command{
		Use:   "outbound",
		Short: "Push new local records of every region and category to the platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "outbound")
			if err != nil {
				return err
			}

			regions, err := selectRegions(cfg.Sync.Regions, labels)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if viaTemporal {
				return launch(ctx, cfg, func(l workflows.Launcher, t workflows.Trigger) (*workflows.Execution, error) {
					return l.StartOutbound(ctx, t, regions)
				})
			}

			orch, cleanup, err := bootstrap.NewOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup.Run()

			return printReport(orch.RunOutbound(ctx, regions))
		},
	}

	cmd.Flags().StringSliceVar(&labels, "regions", nil, "Labels of the configured regions to sync (default all)")
	cmd.Flags().BoolVar(&viaTemporal, "via-temporal", false, "Start the workflow on the worker instead of running in process")

	return cmd
}

func inboundCmd(opts *rootOptions) *cobra.Command {
	var (
		firstRun    bool
		viaTemporal bool
	)

	cmd := &cobra.Command{
		Use:   "inbound",
		Short: "Pull new platform activities and page views into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, "inbound")
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if viaTemporal {
				return launch(ctx, cfg, func(l workflows.Launcher, t workflows.Trigger) (*workflows.Execution, error) {
					return l.StartInbound(ctx, t, firstRun)
				})
			}

			orch, cleanup, err := bootstrap.NewOrchestrator(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup.Run()

			return printReport(orch.RunInbound(ctx, firstRun))
		},
	}

	cmd.Flags().BoolVar(&firstRun, "first-run", false, "Export every contact with a CRM id instead of the recently modified ones")
	cmd.Flags().BoolVar(&viaTemporal, "via-temporal", false, "Start the workflow on the worker instead of running in process")

	return cmd
}

// selectRegions picks the configured regions named by labels, keeping the configured order
func selectRegions(configured []domain.Region, labels []string) ([]domain.Region, error) {
	if len(labels) == 0 {
		return configured, nil
	}

	wanted := make(map[string]bool, len(labels))
	for _, label := range labels {
		wanted[label] = true
	}

	var regions []domain.Region
	found := make(map[string]bool, len(labels))
	for _, r := range configured {
		if wanted[r.Label] {
			regions = append(regions, r)
			found[r.Label] = true
		}
	}
	for _, label := range labels {
		if !found[label] {
			return nil, fmt.Errorf("region %q is not configured", label)
		}
	}

	return regions, nil
}

func launch(ctx context.Context, cfg *config.JobConfig, start func(workflows.Launcher, workflows.Trigger) (*workflows.Execution, error)) error {
	temporalClient, err := client.Dial(temporal.ClientOptions(cfg.Temporal.HostPort, cfg.Temporal.Namespace))
	if err != nil {
		return fmt.Errorf("failed to connect to Temporal: %w", err)
	}
	defer temporalClient.Close()

	launcher := workflows.NewLauncher(temporalClient, cfg.Temporal.TaskQueue)
	exec, err := start(launcher, workflows.Trigger{At: adapter.NewClock().Now()})
	if err != nil {
		return err
	}

	logger.InfoCtx(ctx, "Started sync workflow", zap.String("workflow_id", exec.WorkflowID), zap.String("run_id", exec.RunID))
	return printJSON(exec)
}

func printReport(report *domain.SyncReport) error {
	if err := printJSON(report); err != nil {
		return err
	}
	if report.Failures() > 0 {
		return fmt.Errorf("%w: %d of %d", errUnitsFailed, report.Failures(), len(report.Units))
	}
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

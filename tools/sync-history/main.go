package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/api/enums/v1"
	workflowpb "go.temporal.io/api/workflow/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

const (
	defaultTemporalHost = "localhost:7233"
	defaultNamespace    = "crm-sync"
)

type Config struct {
	TemporalHost string
	Namespace    string
	Direction    string
	Days         int
	PageSize     int
	QueryTimeout time.Duration
	OutputFile   string // Output markdown file path (optional)
}

// Run is one sync workflow execution with its report when it completed
type Run struct {
	WorkflowID string
	RunID      string
	Type       string
	Status     enums.WorkflowExecutionStatus
	StartTime  time.Time
	CloseTime  *time.Time
	Report     *domain.SyncReport
}

// Duration is the wall time of the run, up to now while it is running
func (r *Run) Duration(now time.Time) time.Duration {
	if r.CloseTime != nil {
		return r.CloseTime.Sub(r.StartTime)
	}
	return now.Sub(r.StartTime)
}

func main() {
	cfg := parseFlags()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c, err := client.Dial(client.Options{
		HostPort:  cfg.TemporalHost,
		Namespace: cfg.Namespace,
	})
	if err != nil {
		fmt.Printf("Error creating Temporal client: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	fmt.Printf("Connected to Temporal at %s (namespace: %s)\n", cfg.TemporalHost, cfg.Namespace)

	runs, err := collectRuns(ctx, c, cfg, time.Now())
	if err != nil {
		fmt.Printf("Error collecting runs: %v\n", err)
		os.Exit(1)
	}

	printRuns(os.Stdout, runs, time.Now())

	if cfg.OutputFile != "" {
		if err := writeMarkdownReport(cfg.OutputFile, runs, time.Now()); err != nil {
			fmt.Printf("Error writing report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", cfg.OutputFile)
	}
}

func parseFlags() *Config {
	cfg := &Config{}

	flag.StringVar(&cfg.TemporalHost, "temporal-host", defaultTemporalHost, "Temporal host address")
	flag.StringVar(&cfg.Namespace, "namespace", defaultNamespace, "Temporal namespace")
	flag.StringVar(&cfg.Direction, "direction", "", "Only show inbound or outbound runs (default both)")
	flag.IntVar(&cfg.Days, "days", 7, "How many days back to list")
	flag.IntVar(&cfg.PageSize, "page-size", 100, "Page size for Temporal queries")
	flag.StringVar(&cfg.OutputFile, "output", "", "Output markdown file path (optional)")

	var queryTimeoutSeconds int
	flag.IntVar(&queryTimeoutSeconds, "query-timeout", 30, "Timeout for each Temporal query in seconds")

	flag.Parse()
	cfg.QueryTimeout = time.Duration(queryTimeoutSeconds) * time.Second

	return cfg
}

// workflowTypes maps a direction to the workflow type names it runs under
func workflowTypes(direction string) []string {
	switch domain.Direction(direction) {
	case domain.DirectionOutbound:
		return []string{"OutboundSync"}
	case domain.DirectionInbound:
		return []string{"InboundSync"}
	}
	return []string{"OutboundSync", "InboundSync"}
}

// buildQuery builds the visibility query selecting the sync runs started since the given time
func buildQuery(direction string, since time.Time) string {
	types := workflowTypes(direction)
	typeFilter := fmt.Sprintf("WorkflowType = '%s'", types[0])
	if len(types) > 1 {
		typeFilter = "WorkflowType IN ("
		for i, t := range types {
			if i > 0 {
				typeFilter += ", "
			}
			typeFilter += "'" + t + "'"
		}
		typeFilter += ")"
	}
	return fmt.Sprintf("%s AND StartTime >= '%s' ORDER BY StartTime DESC", typeFilter, since.UTC().Format(time.RFC3339))
}

func collectRuns(ctx context.Context, c client.Client, cfg *Config, now time.Time) ([]*Run, error) {
	since := now.AddDate(0, 0, -cfg.Days)

	var (
		runs      []*Run
		pageToken []byte
	)
	for {
		queryCtx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
		resp, err := c.ListWorkflow(queryCtx, &workflowservice.ListWorkflowExecutionsRequest{
			Namespace:     cfg.Namespace,
			Query:         buildQuery(cfg.Direction, since),
			PageSize:      int32(cfg.PageSize),
			NextPageToken: pageToken,
		})
		cancel()
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}

		for _, exec := range resp.Executions {
			run := newRun(exec)
			if run.Status == enums.WORKFLOW_EXECUTION_STATUS_COMPLETED {
				run.Report = fetchReport(ctx, c, cfg.QueryTimeout, run)
			}
			runs = append(runs, run)
		}

		pageToken = resp.NextPageToken
		if len(pageToken) == 0 {
			return runs, nil
		}
	}
}

func newRun(exec *workflowpb.WorkflowExecutionInfo) *Run {
	run := &Run{
		WorkflowID: exec.Execution.WorkflowId,
		RunID:      exec.Execution.RunId,
		Type:       exec.Type.Name,
		Status:     exec.Status,
		StartTime:  exec.StartTime.AsTime(),
	}
	if exec.CloseTime != nil {
		closeTime := exec.CloseTime.AsTime()
		run.CloseTime = &closeTime
	}
	return run
}

// fetchReport reads the report a completed run returned. A run whose history was archived has none.
func fetchReport(ctx context.Context, c client.Client, timeout time.Duration, run *Run) *domain.SyncReport {
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var report domain.SyncReport
	if err := c.GetWorkflow(queryCtx, run.WorkflowID, run.RunID).Get(queryCtx, &report); err != nil {
		return nil
	}
	return &report
}

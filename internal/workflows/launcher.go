package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	temporalProvider "github.com/feral-file/ff-crm-sync/internal/providers/temporal"
)

// ErrAlreadyStarted is returned when a scheduled cycle already ran for the day
var ErrAlreadyStarted = errors.New("sync already started for this day")

// Execution identifies a started workflow
type Execution struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// Trigger describes who starts a cycle and when
type Trigger struct {
	At time.Time
	// Scheduled runs use the bare day-scoped id and are rejected when the day already has one
	Scheduled bool
}

// DayWorkflowID is the id of a direction's scheduled cycle for a day: crm-sync-<direction>-YYYYMMDD
func DayWorkflowID(direction domain.Direction, day time.Time) string {
	return fmt.Sprintf("crm-sync-%s-%s", direction, day.UTC().Format("20060102"))
}

// Launcher starts the sync workflows
//
//go:generate mockgen -source=launcher.go -destination=../mocks/launcher.go -package=mocks -mock_names=Launcher=MockLauncher
type Launcher interface {
	StartOutbound(ctx context.Context, trigger Trigger, regions []domain.Region) (*Execution, error)
	StartInbound(ctx context.Context, trigger Trigger, firstRun bool) (*Execution, error)
}

type launcher struct {
	orchestrator temporalProvider.TemporalOrchestrator
	taskQueue    string
	workflows    WorkerCore
}

// NewLauncher creates a launcher starting workflows on the task queue
func NewLauncher(orchestrator temporalProvider.TemporalOrchestrator, taskQueue string) Launcher {
	return &launcher{
		orchestrator: orchestrator,
		taskQueue:    taskQueue,
		workflows:    NewWorkerCore(nil, WorkerCoreConfig{}),
	}
}

func (l *launcher) StartOutbound(ctx context.Context, trigger Trigger, regions []domain.Region) (*Execution, error) {
	return l.start(ctx, domain.DirectionOutbound, trigger, l.workflows.OutboundSync, regions)
}

func (l *launcher) StartInbound(ctx context.Context, trigger Trigger, firstRun bool) (*Execution, error) {
	return l.start(ctx, domain.DirectionInbound, trigger, l.workflows.InboundSync, firstRun)
}

func (l *launcher) start(ctx context.Context, direction domain.Direction, trigger Trigger, workflow interface{}, arg interface{}) (*Execution, error) {
	options := client.StartWorkflowOptions{
		ID:                       DayWorkflowID(direction, trigger.At),
		TaskQueue:                l.taskQueue,
		WorkflowExecutionTimeout: 24 * time.Hour,
	}
	if trigger.Scheduled {
		// the day-scoped id can never be reused
		options.WorkflowIDReusePolicy = enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE
		options.WorkflowExecutionErrorWhenAlreadyStarted = true
	} else {
		options.ID = fmt.Sprintf("%s-%s", options.ID, ulid.MustNewDefault(trigger.At).String())
		options.WorkflowIDReusePolicy = enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE
	}

	run, err := l.orchestrator.ExecuteWorkflow(ctx, options, workflow, arg)
	if err != nil {
		if temporal.IsWorkflowExecutionAlreadyStartedError(err) {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyStarted, options.ID)
		}
		return nil, fmt.Errorf("failed to start %s sync: %w", direction, err)
	}

	logger.InfoCtx(ctx, "Sync workflow started",
		zap.String("direction", string(direction)),
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()),
		zap.Bool("scheduled", trigger.Scheduled))

	return &Execution{WorkflowID: run.GetID(), RunID: run.GetRunID()}, nil
}

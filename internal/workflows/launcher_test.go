package workflows_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/mocks"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

var launchAt = time.Date(2024, 3, 10, 3, 0, 0, 0, time.UTC)

func TestLauncher_ScheduledOutbound(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	run := mocks.NewMockWorkflowRun(ctrl)
	l := workflows.NewLauncher(orchestrator, "crm-sync")
	ctx := context.Background()

	regions := []domain.Region{{Label: "UK", Pattern: "UK"}}
	orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), regions).
		DoAndReturn(func(_ context.Context, options client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.Equal(t, "crm-sync-outbound-20240310", options.ID)
			assert.Equal(t, "crm-sync", options.TaskQueue)
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE, options.WorkflowIDReusePolicy)
			assert.True(t, options.WorkflowExecutionErrorWhenAlreadyStarted)
			return run, nil
		})
	run.EXPECT().GetID().Return("crm-sync-outbound-20240310").AnyTimes()
	run.EXPECT().GetRunID().Return("run-1").AnyTimes()

	exec, err := l.StartOutbound(ctx, workflows.Trigger{At: launchAt, Scheduled: true}, regions)
	require.NoError(t, err)
	assert.Equal(t, &workflows.Execution{WorkflowID: "crm-sync-outbound-20240310", RunID: "run-1"}, exec)
}

func TestLauncher_ManualInboundGetsUniqueID(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	run := mocks.NewMockWorkflowRun(ctrl)
	l := workflows.NewLauncher(orchestrator, "crm-sync")
	ctx := context.Background()

	orchestrator.EXPECT().
		ExecuteWorkflow(ctx, gomock.Any(), gomock.Any(), true).
		DoAndReturn(func(_ context.Context, options client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
			assert.True(t, strings.HasPrefix(options.ID, "crm-sync-inbound-20240310-"))
			assert.Equal(t, enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE, options.WorkflowIDReusePolicy)
			assert.False(t, options.WorkflowExecutionErrorWhenAlreadyStarted)
			return run, nil
		})
	run.EXPECT().GetID().Return("crm-sync-inbound-20240310-x").AnyTimes()
	run.EXPECT().GetRunID().Return("run-2").AnyTimes()

	exec, err := l.StartInbound(ctx, workflows.Trigger{At: launchAt}, true)
	require.NoError(t, err)
	assert.Equal(t, "run-2", exec.RunID)
}

func TestLauncher_AlreadyStarted(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	l := workflows.NewLauncher(orchestrator, "crm-sync")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", "run-0"))

	_, err := l.StartInbound(context.Background(), workflows.Trigger{At: launchAt, Scheduled: true}, false)
	assert.ErrorIs(t, err, workflows.ErrAlreadyStarted)
}

func TestLauncher_StartError(t *testing.T) {
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockTemporalOrchestrator(ctrl)
	l := workflows.NewLauncher(orchestrator, "crm-sync")

	orchestrator.EXPECT().
		ExecuteWorkflow(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("unavailable"))

	_, err := l.StartOutbound(context.Background(), workflows.Trigger{At: launchAt}, nil)
	assert.ErrorContains(t, err, "unavailable")
	assert.NotErrorIs(t, err, workflows.ErrAlreadyStarted)
}

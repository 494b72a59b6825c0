package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/logger"
)

// NewActivityContextInterceptor creates the worker interceptor preparing activity contexts
func NewActivityContextInterceptor() interceptor.WorkerInterceptor {
	return &ActivityContextInterceptor{
		WorkerInterceptorBase: interceptor.WorkerInterceptorBase{},
	}
}

// ActivityContextInterceptor gives every activity its own Sentry hub and a logger
// tagged with the workflow it runs for
type ActivityContextInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (s *ActivityContextInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &activityContextInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{
			Next: next,
		},
	}
}

type activityContextInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

func (s *activityContextInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()
	ctx = sentry.SetHubOnContext(ctx, hub)

	info := activity.GetInfo(ctx)
	hub.Scope().SetTag("activity", info.ActivityType.Name)
	ctx = logger.WithFields(ctx,
		zap.String("activity", info.ActivityType.Name),
		zap.String("workflowID", info.WorkflowExecution.ID),
		zap.String("workflowRunID", info.WorkflowExecution.RunID),
		zap.Int32("attempt", info.Attempt))

	return s.Next.ExecuteActivity(ctx, in)
}

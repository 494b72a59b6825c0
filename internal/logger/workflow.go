package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies a workflow execution in log lines and sentry tags
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

// Fields renders the info as zap fields
func (i WorkflowInfo) Fields() []zap.Field {
	return []zap.Field{
		zap.String("workflow_type", i.WorkflowType),
		zap.String("workflow_id", i.WorkflowID),
		zap.String("run_id", i.RunID),
		zap.String("namespace", i.Namespace),
		zap.String("task_queue", i.TaskQueue),
	}
}

// GetWorkflowInfo extracts the execution identity from a workflow context, or nil if unavailable
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowTypeName := info.WorkflowType.Name
	if workflowTypeName == "" {
		workflowTypeName = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: workflowTypeName,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// WithWorkflowInfo returns the global logger tagged with the workflow execution
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return log.With(info.Fields()...)
}

// FromWorkflow returns a logger tagged with the workflow execution.
// Usage:
//
//	logger.FromWorkflow(ctx, nil).Info("Unit finished", ...)
func FromWorkflow(ctx workflow.Context, info *WorkflowInfo) *zap.Logger {
	if info == nil {
		info = GetWorkflowInfo(ctx)
	}
	if info == nil {
		return log
	}
	return WithWorkflowInfo(*info)
}

// workflowLogger returns nil while the workflow is replaying so history replays do not duplicate lines
func workflowLogger(ctx workflow.Context) *zap.Logger {
	if workflow.IsReplaying(ctx) {
		return nil
	}
	return FromWorkflow(ctx, nil)
}

// InfoWf logs an info message with workflow context
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if l := workflowLogger(ctx); l != nil {
		l.Info(msg, fields...)
	}
}

// ErrorWf logs an error message with workflow context
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if l := workflowLogger(ctx); l != nil {
		l.Error(errorMessage(err), fields...)
	}
}

// WarnWf logs a warning message with workflow context
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if l := workflowLogger(ctx); l != nil {
		l.Warn(msg, fields...)
	}
}

// DebugWf logs a debug message with workflow context
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if l := workflowLogger(ctx); l != nil {
		l.Debug(msg, fields...)
	}
}

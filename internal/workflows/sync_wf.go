package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
)

// unitActivityOptions runs each unit once: a failed unit is picked up by the next cycle
var unitActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: 4 * time.Hour,
	RetryPolicy: &temporal.RetryPolicy{
		MaximumAttempts: 1,
	},
}

var bookkeepingActivityOptions = workflow.ActivityOptions{
	StartToCloseTimeout: time.Minute,
	RetryPolicy: &temporal.RetryPolicy{
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaximumInterval:    30 * time.Second,
		MaximumAttempts:    3,
	},
}

func newReport(ctx workflow.Context, direction domain.Direction) *domain.SyncReport {
	return &domain.SyncReport{
		RunID:     workflow.GetInfo(ctx).WorkflowExecution.RunID,
		Direction: direction,
		StartedAt: workflow.Now(ctx),
	}
}

// OutboundSync pushes every (region, category) unit sequentially and rotates each pair
func (w *workerCore) OutboundSync(ctx workflow.Context, regions []domain.Region) (*domain.SyncReport, error) {
	if len(regions) == 0 {
		regions = w.config.Regions
	}
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return nil, temporal.NewNonRetryableApplicationError("invalid region", "InvalidRegion", err)
		}
	}

	logger.InfoWf(ctx, "Starting outbound sync", zap.Int("regions", len(regions)))

	report := newReport(ctx, domain.DirectionOutbound)
	unitCtx := workflow.WithActivityOptions(ctx, unitActivityOptions)

	for _, region := range regions {
		for _, category := range domain.OutboundCategories {
			var result domain.UnitResult
			err := workflow.ExecuteActivity(unitCtx, w.executor.SyncOutboundUnit, region, category).Get(unitCtx, &result)
			if err != nil {
				logger.ErrorWf(ctx, fmt.Errorf("outbound unit activity failed: %w", err),
					zap.String("region", region.String()),
					zap.String("category", category.String()))
				result = domain.UnitResult{
					Region:   region.Key(),
					Category: category,
					Error:    err.Error(),
					EndedAt:  workflow.Now(ctx),
				}
			}
			report.Add(result)
		}
	}

	w.publish(ctx, report)
	return report, nil
}

// InboundSync pulls both activity streams and advances the cursor when both succeed
func (w *workerCore) InboundSync(ctx workflow.Context, firstRun bool) (*domain.SyncReport, error) {
	logger.InfoWf(ctx, "Starting inbound sync", zap.Bool("firstRun", firstRun))

	report := newReport(ctx, domain.DirectionInbound)
	unitCtx := workflow.WithActivityOptions(ctx, unitActivityOptions)

	var activities domain.UnitResult
	if err := workflow.ExecuteActivity(unitCtx, w.executor.SyncActivities).Get(unitCtx, &activities); err != nil {
		activities = failedStream(ctx, domain.StreamActivities, err)
	}
	report.Add(activities)

	var pageViews domain.UnitResult
	if err := workflow.ExecuteActivity(unitCtx, w.executor.SyncPageViews, firstRun).Get(unitCtx, &pageViews); err != nil {
		pageViews = failedStream(ctx, domain.StreamPageViews, err)
	}
	report.Add(pageViews)

	if report.Failures() == 0 {
		bookCtx := workflow.WithActivityOptions(ctx, bookkeepingActivityOptions)
		if err := workflow.ExecuteActivity(bookCtx, w.executor.AdvanceInboundCursor, report.StartedAt).Get(bookCtx, nil); err != nil {
			logger.ErrorWf(ctx, fmt.Errorf("failed to advance inbound cursor: %w", err))
		}
	} else {
		logger.WarnWf(ctx, "Inbound cursor not advanced", zap.Int("failures", report.Failures()))
	}

	w.publish(ctx, report)
	return report, nil
}

func failedStream(ctx workflow.Context, stream string, err error) domain.UnitResult {
	logger.ErrorWf(ctx, fmt.Errorf("inbound stream activity failed: %w", err), zap.String("stream", stream))
	return domain.UnitResult{
		Category: domain.CategoryAllActivities,
		Stream:   stream,
		Error:    err.Error(),
		EndedAt:  workflow.Now(ctx),
	}
}

// publish closes the report and publishes it. A publish failure does not fail the workflow.
func (w *workerCore) publish(ctx workflow.Context, report *domain.SyncReport) {
	report.FinishedAt = workflow.Now(ctx)

	bookCtx := workflow.WithActivityOptions(ctx, bookkeepingActivityOptions)
	if err := workflow.ExecuteActivity(bookCtx, w.executor.PublishReport, report).Get(bookCtx, nil); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to publish sync report: %w", err), zap.String("runID", report.RunID))
		return
	}

	logger.InfoWf(ctx, "Sync finished",
		zap.String("direction", string(report.Direction)),
		zap.Int("units", len(report.Units)),
		zap.Int("failures", report.Failures()))
}

package workflows

import (
	"context"
	"time"

	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/orchestrator"
)

// Executor defines the activities of the sync workflows.
// Unit activities report failures in their result; an activity error means the unit never ran to completion.
//
//go:generate mockgen -source=activities.go -destination=../mocks/activities.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// SyncOutboundUnit pushes one (region, category) unit
	SyncOutboundUnit(ctx context.Context, region domain.Region, category domain.Category) (domain.UnitResult, error)
	// SyncActivities pulls the non page-view activity stream
	SyncActivities(ctx context.Context) (domain.UnitResult, error)
	// SyncPageViews pulls the page-view stream
	SyncPageViews(ctx context.Context, firstRun bool) (domain.UnitResult, error)
	// AdvanceInboundCursor records a successful inbound run
	AdvanceInboundCursor(ctx context.Context, at time.Time) error
	// PublishReport publishes a finished report
	PublishReport(ctx context.Context, report *domain.SyncReport) error
}

// executor is the concrete implementation of Executor
type executor struct {
	orchestrator orchestrator.Orchestrator
}

// NewExecutor creates a new executor instance
func NewExecutor(o orchestrator.Orchestrator) Executor {
	return &executor{orchestrator: o}
}

func (e *executor) SyncOutboundUnit(ctx context.Context, region domain.Region, category domain.Category) (domain.UnitResult, error) {
	return e.orchestrator.SyncOutboundUnit(ctx, region, category), nil
}

func (e *executor) SyncActivities(ctx context.Context) (domain.UnitResult, error) {
	return e.orchestrator.SyncActivities(ctx), nil
}

func (e *executor) SyncPageViews(ctx context.Context, firstRun bool) (domain.UnitResult, error) {
	return e.orchestrator.SyncPageViews(ctx, firstRun), nil
}

func (e *executor) AdvanceInboundCursor(ctx context.Context, at time.Time) error {
	return e.orchestrator.AdvanceInboundCursor(ctx, at)
}

func (e *executor) PublishReport(ctx context.Context, report *domain.SyncReport) error {
	return e.orchestrator.PublishReport(ctx, report)
}

package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/messaging"
	"github.com/feral-file/ff-crm-sync/internal/metrics"
	"github.com/feral-file/ff-crm-sync/internal/providers/eloqua"
	"github.com/feral-file/ff-crm-sync/internal/rotation"
	"github.com/feral-file/ff-crm-sync/internal/store"
	"github.com/feral-file/ff-crm-sync/internal/syncengine"
)

// CursorStream is the cursor key of the inbound cycle
const CursorStream = "inbound"

// Config holds the orchestrator configuration
type Config struct {
	// Regions are processed in order by the outbound cycle
	Regions []domain.Region
	// ActivityTypes are exported one by one by the inbound cycle
	ActivityTypes []string
	// PageViewWorkers bounds the per-contact page view exports
	PageViewWorkers int
}

// Orchestrator sequences the sync engine across regions and categories.
// Unit failures never surface as errors; they are recorded in the report.
//
//go:generate mockgen -source=orchestrator.go -destination=../mocks/orchestrator.go -package=mocks -mock_names=Orchestrator=MockOrchestrator
type Orchestrator interface {
	// RunOutbound pushes every (region, category) unit to the platform. Nil regions means the configured list.
	RunOutbound(ctx context.Context, regions []domain.Region) *domain.SyncReport
	// RunInbound pulls both activity streams and advances the cursor when both succeed
	RunInbound(ctx context.Context, firstRun bool) *domain.SyncReport

	// SyncOutboundUnit joins, diffs, uploads and rotates one (region, category) unit
	SyncOutboundUnit(ctx context.Context, region domain.Region, category domain.Category) domain.UnitResult
	// SyncActivities stores the activities of every configured type that are not stored yet
	SyncActivities(ctx context.Context) domain.UnitResult
	// SyncPageViews stores the page views of recently modified contacts and of the last window
	SyncPageViews(ctx context.Context, firstRun bool) domain.UnitResult
	// AdvanceInboundCursor records a successful inbound run
	AdvanceInboundCursor(ctx context.Context, at time.Time) error

	// PublishReport logs and publishes a finished report
	PublishReport(ctx context.Context, report *domain.SyncReport) error
}

type orchestrator struct {
	cfg       Config
	store     store.Store
	cursors   store.CursorStore
	joiner    syncengine.Joiner
	rotator   rotation.Manager
	platform  eloqua.Platform
	publisher messaging.Publisher
	clock     adapter.Clock
}

// New creates an orchestrator. A nil publisher drops reports.
func New(
	cfg Config,
	st store.Store,
	cursors store.CursorStore,
	joiner syncengine.Joiner,
	rotator rotation.Manager,
	platform eloqua.Platform,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Orchestrator {
	if len(cfg.Regions) == 0 {
		cfg.Regions = domain.DefaultRegions()
	}
	if len(cfg.ActivityTypes) == 0 {
		cfg.ActivityTypes = domain.DefaultActivityTypes
	}
	if cfg.PageViewWorkers <= 0 {
		cfg.PageViewWorkers = 1
	}
	if publisher == nil {
		publisher = messaging.NewNoopPublisher()
	}
	return &orchestrator{
		cfg:       cfg,
		store:     st,
		cursors:   cursors,
		joiner:    joiner,
		rotator:   rotator,
		platform:  platform,
		publisher: publisher,
		clock:     clock,
	}
}

// NewReport starts an empty report for a cycle
func NewReport(direction domain.Direction, at time.Time) *domain.SyncReport {
	return &domain.SyncReport{
		RunID:     ulid.MustNewDefault(at).String(),
		Direction: direction,
		StartedAt: at,
	}
}

func (o *orchestrator) RunOutbound(ctx context.Context, regions []domain.Region) *domain.SyncReport {
	if len(regions) == 0 {
		regions = o.cfg.Regions
	}

	report := NewReport(domain.DirectionOutbound, o.clock.Now())
	ctx = logger.WithFields(ctx, zap.String("runID", report.RunID), zap.String("direction", string(report.Direction)))
	logger.InfoCtx(ctx, "Starting outbound sync", zap.Int("regions", len(regions)))

	for _, region := range regions {
		for _, category := range domain.OutboundCategories {
			report.Add(o.SyncOutboundUnit(ctx, region, category))
		}
	}

	o.finish(ctx, report)
	return report
}

func (o *orchestrator) RunInbound(ctx context.Context, firstRun bool) *domain.SyncReport {
	report := NewReport(domain.DirectionInbound, o.clock.Now())
	ctx = logger.WithFields(ctx, zap.String("runID", report.RunID), zap.String("direction", string(report.Direction)))
	logger.InfoCtx(ctx, "Starting inbound sync", zap.Bool("firstRun", firstRun))

	report.Add(o.SyncActivities(ctx))
	report.Add(o.SyncPageViews(ctx, firstRun))

	if report.Failures() == 0 {
		if err := o.AdvanceInboundCursor(ctx, report.StartedAt); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("stream", CursorStream))
		}
	} else {
		logger.WarnCtx(ctx, "Inbound cursor not advanced", zap.Int("failures", report.Failures()))
	}

	o.finish(ctx, report)
	return report
}

func (o *orchestrator) AdvanceInboundCursor(ctx context.Context, at time.Time) error {
	if err := o.cursors.SetSyncCursor(ctx, CursorStream, at); err != nil {
		return fmt.Errorf("failed to advance inbound cursor: %w", err)
	}
	return nil
}

// finish closes the report and publishes it. Publishing is best effort.
func (o *orchestrator) finish(ctx context.Context, report *domain.SyncReport) {
	report.FinishedAt = o.clock.Now()
	if err := o.PublishReport(ctx, report); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("runID", report.RunID))
	}
}

func (o *orchestrator) PublishReport(ctx context.Context, report *domain.SyncReport) error {
	logger.InfoCtx(ctx, "Sync finished",
		zap.String("runID", report.RunID),
		zap.String("direction", string(report.Direction)),
		zap.Int("units", len(report.Units)),
		zap.Int("failures", report.Failures()),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))

	if err := o.publisher.PublishSyncReport(ctx, report); err != nil {
		return fmt.Errorf("failed to publish sync report: %w", err)
	}
	return nil
}

// unit tracks one isolated unit of work
type unit struct {
	direction domain.Direction
	result    domain.UnitResult
	start     time.Time
}

func (o *orchestrator) startUnit(direction domain.Direction, result domain.UnitResult) *unit {
	return &unit{direction: direction, result: result, start: o.clock.Now()}
}

// records counts rows reaching a stage
func (u *unit) records(stage string, n int) {
	metrics.RecordsTotal.WithLabelValues(string(u.direction), u.result.Category.String(), stage).Add(float64(n))
}

// done closes the unit, recording err as its failure
func (o *orchestrator) done(ctx context.Context, u *unit, err error) domain.UnitResult {
	end := o.clock.Now()
	u.result.EndedAt = end
	u.result.Duration = end.Sub(u.start).Seconds()

	category := u.result.Category.String()
	metrics.UnitsTotal.WithLabelValues(string(u.direction), category, metrics.Outcome(err)).Inc()
	metrics.UnitDuration.WithLabelValues(string(u.direction), category).Observe(u.result.Duration)

	fields := []zap.Field{
		zap.String("category", category),
		zap.Int("fetched", u.result.Fetched),
		zap.Int("new", u.result.New),
		zap.Bool("uploaded", u.result.Uploaded),
		zap.Bool("rotated", u.result.Rotated),
		zap.Int("stored", u.result.Stored),
	}
	if u.result.Region != "" {
		fields = append(fields, zap.String("region", u.result.Region))
	}
	if u.result.Stream != "" {
		fields = append(fields, zap.String("stream", u.result.Stream))
	}

	if err != nil {
		u.result.Error = err.Error()
		logger.ErrorCtx(ctx, fmt.Errorf("sync unit failed: %w", err), fields...)
		return u.result
	}
	logger.InfoCtx(ctx, "Sync unit finished", fields...)
	return u.result
}

package executor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-crm-sync/internal/adapter"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/constants"
	"github.com/feral-file/ff-crm-sync/internal/api/shared/dto"
	"github.com/feral-file/ff-crm-sync/internal/domain"
	"github.com/feral-file/ff-crm-sync/internal/logger"
	"github.com/feral-file/ff-crm-sync/internal/providers/eloqua"
	"github.com/feral-file/ff-crm-sync/internal/store"
	"github.com/feral-file/ff-crm-sync/internal/validation"
	"github.com/feral-file/ff-crm-sync/internal/workflows"
)

// Executor is the business logic behind the HTTP handlers
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// IngestRecords gates a batch against the category schema and stores the accepted records.
	// It returns how many were stored, or domain.ErrValidationFailed when none passed.
	IngestRecords(ctx context.Context, category domain.Category, records []domain.Record) (int, error)

	// ListActivities returns stored activities by ActivityDate bounds and contact id label
	ListActivities(ctx context.Context, query dto.RecordQuery) ([]domain.Record, error)

	// ListActivitiesByContact returns stored activities by contact modification bounds and contact id label.
	// Without bounds the last 24 hours are used.
	ListActivitiesByContact(ctx context.Context, query dto.RecordQuery) ([]domain.Record, error)

	// ExportContacts exports contacts of a security label live from the platform
	ExportContacts(ctx context.Context, query dto.RecordQuery) ([]domain.Record, error)

	// TriggerOutboundSync starts an outbound cycle. No regions means the configured regions.
	TriggerOutboundSync(ctx context.Context, regions []domain.Region) (*dto.TriggerSyncResponse, error)

	// TriggerInboundSync starts an inbound cycle
	TriggerInboundSync(ctx context.Context, firstRun bool) (*dto.TriggerSyncResponse, error)

	// Ping checks the store is reachable
	Ping(ctx context.Context) error
}

type executor struct {
	store    store.Store
	gate     validation.Gate
	platform eloqua.Platform
	launcher workflows.Launcher
	clock    adapter.Clock
	regions  []domain.Region
}

// NewExecutor creates the API executor. Regions are the default outbound regions.
func NewExecutor(
	st store.Store,
	gate validation.Gate,
	platform eloqua.Platform,
	launcher workflows.Launcher,
	clock adapter.Clock,
	regions []domain.Region,
) Executor {
	if len(regions) == 0 {
		regions = domain.DefaultRegions()
	}
	return &executor{
		store:    st,
		gate:     gate,
		platform: platform,
		launcher: launcher,
		clock:    clock,
		regions:  regions,
	}
}

func (e *executor) IngestRecords(ctx context.Context, category domain.Category, records []domain.Record) (int, error) {
	schema, err := validation.SchemaFor(category)
	if err != nil {
		return 0, err
	}
	spec, err := category.Spec()
	if err != nil {
		return 0, err
	}

	accepted := e.gate.Validate(records, schema)
	if len(accepted) == 0 {
		logger.WarnCtx(ctx, "Rejected ingested batch",
			zap.String("category", category.String()),
			zap.Int("received", len(records)),
		)
		return 0, fmt.Errorf("%w: no %s record passed %s", domain.ErrValidationFailed, category, schema.Name)
	}

	if err := e.store.Insert(ctx, spec.Working, accepted); err != nil {
		return 0, fmt.Errorf("failed to store %s records: %w", category, err)
	}

	logger.InfoCtx(ctx, "Ingested records",
		zap.String("category", category.String()),
		zap.Int("received", len(records)),
		zap.Int("stored", len(accepted)),
	)

	return len(accepted), nil
}

func (e *executor) ListActivities(ctx context.Context, query dto.RecordQuery) ([]domain.Record, error) {
	filter := activityFilter(domain.FieldActivityDate, query.DateFrom, query.DateTo, query.Label)

	records, err := e.store.Find(ctx, domain.CollectionAllActivities, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return records, nil
}

func (e *executor) ListActivitiesByContact(ctx context.Context, query dto.RecordQuery) ([]domain.Record, error) {
	from, to := query.DateFrom, query.DateTo
	if from == "" && to == "" {
		now := e.clock.Now().UTC()
		from = now.Add(-constants.DEFAULT_CONTACT_WINDOW_HOURS * time.Hour).Format(constants.QUERY_DATE_LAYOUT)
		to = now.Format(constants.QUERY_DATE_LAYOUT)
	}
	filter := activityFilter(domain.FieldContactDateModified, from, to, query.Label)

	records, err := e.store.Find(ctx, domain.CollectionAllActivities, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities by contact: %w", err)
	}
	return records, nil
}

// activityFilter bounds the date field exclusively and matches the label against the contact id
func activityFilter(dateField, from, to, label string) store.Filter {
	filter := store.MatchAll()
	if from != "" {
		filter = filter.WithAfter(dateField, from)
	}
	if to != "" {
		filter = filter.WithBefore(dateField, to)
	}
	if label != "" {
		filter = filter.WithRegex(domain.FieldContactCRMID, label)
	}
	return filter
}

func (e *executor) ExportContacts(ctx context.Context, query dto.RecordQuery) ([]domain.Record, error) {
	records, err := e.platform.ExportContacts(ctx, eloqua.ContactQuery{
		DateFrom: query.DateFrom,
		DateTo:   query.DateTo,
		Label:    query.Label,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export contacts: %w", err)
	}
	return records, nil
}

func (e *executor) TriggerOutboundSync(ctx context.Context, regions []domain.Region) (*dto.TriggerSyncResponse, error) {
	if len(regions) == 0 {
		regions = e.regions
	}

	execution, err := e.launcher.StartOutbound(ctx, workflows.Trigger{At: e.clock.Now()}, regions)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Outbound sync triggered",
		zap.String("workflowID", execution.WorkflowID),
		zap.String("runID", execution.RunID),
		zap.Int("regions", len(regions)),
	)

	return &dto.TriggerSyncResponse{WorkflowID: execution.WorkflowID, RunID: execution.RunID}, nil
}

func (e *executor) TriggerInboundSync(ctx context.Context, firstRun bool) (*dto.TriggerSyncResponse, error) {
	execution, err := e.launcher.StartInbound(ctx, workflows.Trigger{At: e.clock.Now()}, firstRun)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Inbound sync triggered",
		zap.String("workflowID", execution.WorkflowID),
		zap.String("runID", execution.RunID),
		zap.Bool("firstRun", firstRun),
	)

	return &dto.TriggerSyncResponse{WorkflowID: execution.WorkflowID, RunID: execution.RunID}, nil
}

func (e *executor) Ping(ctx context.Context) error {
	return e.store.Ping(ctx)
}

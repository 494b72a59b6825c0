package workflows

import (
	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-crm-sync/internal/domain"
)

// WorkerCore defines the sync workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockWorkerCore
type WorkerCore interface {
	// OutboundSync pushes every (region, category) unit sequentially and rotates each pair.
	// Nil regions means the configured list.
	OutboundSync(ctx workflow.Context, regions []domain.Region) (*domain.SyncReport, error)

	// InboundSync pulls both activity streams and advances the cursor when both succeed
	InboundSync(ctx workflow.Context, firstRun bool) (*domain.SyncReport, error)
}

type WorkerCoreConfig struct {
	// Regions is the outbound region list, in processing order
	Regions []domain.Region
}

// workerCore is the concrete implementation of WorkerCore
type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if len(config.Regions) == 0 {
		config.Regions = domain.DefaultRegions()
	}
	return &workerCore{
		executor: executor,
		config:   config,
	}
}

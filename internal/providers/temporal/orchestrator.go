package temporal

import (
	"context"

	"go.temporal.io/sdk/client"

	"github.com/feral-file/ff-crm-sync/internal/logger"
)

// TemporalOrchestrator starts workflows. client.Client satisfies it.
//
//go:generate mockgen -source=orchestrator.go -destination=../../mocks/temporal_orchestrator.go -package=mocks -mock_names=TemporalOrchestrator=MockTemporalOrchestrator
type TemporalOrchestrator interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// ClientOptions builds the client options shared by the API, the worker and the scheduler
func ClientOptions(hostPort, namespace string) client.Options {
	return client.Options{
		HostPort:  hostPort,
		Namespace: namespace,
		Logger:    NewZapLoggerAdapter(logger.Default()),
	}
}

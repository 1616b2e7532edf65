package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/consol"
)

// Enqueuer schedules background tasks from the HTTP layer. It satisfies
// consol.ReportEnqueuer.
type Enqueuer struct {
	client *asynq.Client
}

// NewEnqueuer wraps an asynq client.
func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueReportBuild schedules a consolidation report build and returns
// the cache key the report will land under.
func (e *Enqueuer) EnqueueReportBuild(ctx context.Context, refs []consol.DocumentRef) (string, error) {
	task, key, err := NewConsolReportTask(refs)
	if err != nil {
		return "", err
	}
	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return "", fmt.Errorf("jobs: enqueue report build: %w", err)
	}
	return key, nil
}

// Close releases the underlying client connection.
func (e *Enqueuer) Close() error {
	return e.client.Close()
}

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/consol"
	jobmetrics "github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/jobs"
)

// ConsolReportJob resolves a document set, consolidates it and caches
// the finished report for the API to serve.
type ConsolReportJob struct {
	service *consol.Service
	cache   *consol.Cache
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewConsolReportJob wires the job dependencies. metrics may be nil.
func NewConsolReportJob(service *consol.Service, cache *consol.Cache, logger *slog.Logger, metrics *jobmetrics.Metrics) *ConsolReportJob {
	return &ConsolReportJob{service: service, cache: cache, logger: logger, metrics: metrics}
}

// Handle processes TaskConsolReportBuild tasks.
func (j *ConsolReportJob) Handle(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("consol_report_build")

	var payload ConsolReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		j.logger.Error("consol report payload malformed", slog.Any("error", err))
		_ = tracker.End(err)
		return asynq.SkipRetry
	}

	report, err := j.service.BuildReport(ctx, payload.Refs)
	if err != nil {
		j.logger.Error("consol report build failed",
			slog.String("cache_key", payload.CacheKey), slog.Any("error", err))
		return tracker.End(err)
	}

	j.cache.Set(ctx, payload.CacheKey, report)
	j.logger.Info("consol report built",
		slog.String("cache_key", payload.CacheKey),
		slog.Int("requested", report.Requested),
		slog.Int("resolved", report.Resolved),
		slog.Int("groups", len(report.Lines)))
	return tracker.End(nil)
}

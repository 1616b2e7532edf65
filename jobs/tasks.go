package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/Netmow-PTY-LTD/erp-custom-sub001/internal/consol"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskConsolReportBuild builds and caches a consolidation report.
	TaskConsolReportBuild = "consol:report_build"
)

// ConsolReportPayload names the document set to consolidate and the
// cache key the finished report is stored under.
type ConsolReportPayload struct {
	Refs     []consol.DocumentRef `json:"refs"`
	CacheKey string               `json:"cache_key"`
}

// NewConsolReportTask constructs the report-build task.
func NewConsolReportTask(refs []consol.DocumentRef) (*asynq.Task, string, error) {
	if len(refs) == 0 {
		return nil, "", fmt.Errorf("jobs: at least one document reference required")
	}
	key := consol.CacheKey(refs)
	data, err := json.Marshal(ConsolReportPayload{Refs: refs, CacheKey: key})
	if err != nil {
		return nil, "", err
	}
	return asynq.NewTask(TaskConsolReportBuild, data, asynq.Queue(QueueDefault)), key, nil
}

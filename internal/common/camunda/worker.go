// internal/common/camunda/worker.go
package camunda

import (
	"loan-eligibility-workers/internal/common/config"
	"loan-eligibility-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Registration binds a task type to its job handler.
type Registration struct {
	TaskType string
	Handler  worker.JobHandler
}

// WorkerGroup opens job workers on one client and closes them together.
type WorkerGroup struct {
	client  zbc.Client
	logger  logger.Logger
	workers map[string]worker.JobWorker
}

func NewWorkerGroup(client zbc.Client, log logger.Logger) *WorkerGroup {
	return &WorkerGroup{
		client:  client,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for reg. Disabled workers are logged and skipped.
func (g *WorkerGroup) Start(reg Registration, wcfg config.WorkerConfig) {
	if !wcfg.Enabled {
		g.logger.Info("worker disabled", map[string]interface{}{"taskType": reg.TaskType})
		return
	}

	g.workers[reg.TaskType] = g.client.NewJobWorker().
		JobType(reg.TaskType).
		Handler(reg.Handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	g.logger.Info("worker started", map[string]interface{}{
		"taskType":      reg.TaskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeoutMs":     wcfg.Timeout,
	})
}

// Running lists the task types with an open worker.
func (g *WorkerGroup) Running() []string {
	out := make([]string, 0, len(g.workers))
	for taskType := range g.workers {
		out = append(out, taskType)
	}
	return out
}

// Close stops polling and waits for in-flight jobs to finish.
func (g *WorkerGroup) Close() {
	for taskType, w := range g.workers {
		w.Close()
		w.AwaitClose()
		g.logger.Info("worker stopped", map[string]interface{}{"taskType": taskType})
	}
}

package batch

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/mapcode/pkg/logger"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/storage"
	"github.com/ssargent/mapcode/pkg/territory"
)

// ErrTooManyPoints is returned by Submit for requests above the item limit.
var ErrTooManyPoints = errors.New("too many points in batch")

// Runner runs batch jobs in the background and keeps them in a JobStore.
type Runner struct {
	engine   *mapcode.Engine
	jobs     *storage.JobStore
	workers  int
	maxItems int

	// OnDone, when set, is called with every finished job.
	OnDone func(job *storage.Job)

	wg sync.WaitGroup
}

// NewRunner returns a runner. maxItems of zero or less means no limit.
func NewRunner(e *mapcode.Engine, jobs *storage.JobStore, workers, maxItems int) *Runner {
	return &Runner{engine: e, jobs: jobs, workers: workers, maxItems: maxItems}
}

// Jobs returns the store the runner writes to.
func (r *Runner) Jobs() *storage.JobStore { return r.jobs }

// Submit stores a pending job for req and starts it. The job keeps running
// when ctx ends; use Wait to drain.
func (r *Runner) Submit(ctx context.Context, req Request) (ksuid.KSUID, error) {
	if r.maxItems > 0 && len(req.Points) > r.maxItems {
		return ksuid.Nil, errors.Wrapf(ErrTooManyPoints, "%d > %d", len(req.Points), r.maxItems)
	}
	if req.Territory != "" {
		if _, err := r.engine.ResolveTerritory(req.Territory, territory.None); err != nil {
			return ksuid.Nil, err
		}
	}
	job := &storage.Job{
		Territory: req.Territory,
		Precision: req.Precision,
		Shortest:  req.Shortest,
		Points:    req.Points,
	}
	id, err := r.jobs.Create(job)
	if err != nil {
		return ksuid.Nil, err
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.run(context.WithoutCancel(ctx), job, req)
	}()
	return id, nil
}

func (r *Runner) run(ctx context.Context, job *storage.Job, req Request) {
	start := time.Now()
	l := logger.L().With("job", job.ID)

	job.Status = storage.StatusRunning
	if err := r.jobs.Update(job); err != nil {
		l.Error("batch_update_failed", "err", err)
		return
	}

	results, err := Encode(ctx, r.engine, req, r.workers)
	if err != nil {
		job.Status = storage.StatusFailed
		job.Error = err.Error()
	} else {
		job.Status = storage.StatusDone
		job.Results = results
	}
	if err := r.jobs.Update(job); err != nil {
		l.Error("batch_update_failed", "err", err)
		return
	}
	l.Info("batch_finished",
		"status", job.Status,
		"points", len(job.Points),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if r.OnDone != nil {
		r.OnDone(job)
	}
}

// Wait blocks until all submitted jobs have finished.
func (r *Runner) Wait() { r.wg.Wait() }

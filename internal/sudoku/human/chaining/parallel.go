package chaining

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// workerTask is one starting-cell's worth of work, fanned out to the
// pool built in getHintsParallel.
type workerTask struct {
	id   uuid.UUID
	cell int
}

// getHintsParallel implements spec.md §5's outer per-starting-cell
// fan-out: one worker per starting cell, each with a freshly cloned
// grid and a parallel=false child engine, feeding an order-preserving
// queue that the joiner sorts after every worker completes. Grounded on
// the dynamic-scaling, panic-recovering worker pool pattern used
// elsewhere in this corpus for CPU-bound fan-out.
func (e *Engine) getHintsParallel(ctx context.Context, grid GridView) ([]*Hint, error) {
	numWorkers := e.cfg.NumThreads
	if numWorkers < 1 {
		numWorkers = 1
	}

	tasks := make(chan workerTask)
	results := make([][]*Hint, 81)
	errs := make([]error, 81)

	var wg sync.WaitGroup
	childCfg := e.cfg
	childCfg.Parallel = false

	worker := func() {
		defer wg.Done()
		for task := range tasks {
			results[task.cell], errs[task.cell] = e.runWorkerTask(ctx, grid, task, childCfg)
		}
	}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker()
	}

	for cell := 0; cell < 81; cell++ {
		if grid.CellValue(cell) != 0 {
			continue
		}
		select {
		case tasks <- workerTask{id: uuid.New(), cell: cell}:
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			return nil, ErrCancelled
		}
	}
	close(tasks)
	wg.Wait()

	var all []*Hint
	for cell := 0; cell < 81; cell++ {
		if errs[cell] != nil {
			return nil, errs[cell]
		}
		all = append(all, results[cell]...)
	}
	return all, nil
}

// runWorkerTask executes hintsForCell in a freshly cloned grid and a
// child engine, recovering from any panic so one faulting worker cannot
// corrupt the joiner (spec.md §7's WorkerFailure policy).
func (e *Engine) runWorkerTask(ctx context.Context, grid GridView, task workerTask, childCfg Config) (hints []*Hint, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn().Int("cell", task.cell).Interface("panic", r).Msg("chaining: worker recovered from panic")
			err = wrapWorkerFailure(task.cell, r)
		}
	}()

	child := NewEngine(childCfg, WithLogger(e.logger), WithTracer(e.tracer))
	_, span := e.tracer.Start(ctx, "chaining.worker")
	defer span.End()

	return child.hintsForCell(ctx, grid.Clone(), task.cell)
}

package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Result is the outcome of one submitted job.
type Result struct {
	Name     string
	Err      error
	Duration time.Duration
	// Skipped is set when the job never ran because the pool was cancelled.
	Skipped bool
}

// WorkerPool manages concurrent job execution with bounded concurrency.
type WorkerPool struct {
	maxWorkers int
	semaphore  chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	results    []Result
	failFast   bool
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a new worker pool with bounded concurrency.
// If maxWorkers is 0, unlimited workers are allowed.
// If failFast is true, the context is cancelled on the first error.
func NewWorkerPool(ctx context.Context, maxWorkers int, failFast bool) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)
	return &WorkerPool{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
		failFast:   failFast,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit starts fn on its own goroutine. It blocks only while the pool is at
// capacity. Results keep submission order.
func (p *WorkerPool) Submit(name string, fn func(ctx context.Context) error) {
	p.mu.Lock()
	slot := len(p.results)
	p.results = append(p.results, Result{Name: name, Skipped: true})
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return
	default:
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		// Acquire semaphore slot
		if p.maxWorkers > 0 {
			select {
			case p.semaphore <- struct{}{}:
				defer func() { <-p.semaphore }()
			case <-p.ctx.Done():
				return
			}
		}

		select {
		case <-p.ctx.Done():
			return
		default:
		}

		start := time.Now()
		err := fn(p.ctx)
		duration := time.Since(start)

		p.mu.Lock()
		defer p.mu.Unlock()

		p.results[slot] = Result{Name: name, Err: err, Duration: duration}
		if err != nil && p.failFast {
			p.cancel()
		}
	}()
}

// Wait waits for all submitted jobs and returns their results along with
// the errors of the failed ones, both in submission order.
func (p *WorkerPool) Wait() ([]Result, []error) {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancel()

	results := make([]Result, len(p.results))
	copy(results, p.results)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, r.Err))
		}
	}
	return results, errs
}

// Cancel cancels all pending work in the pool.
func (p *WorkerPool) Cancel() {
	p.cancel()
}

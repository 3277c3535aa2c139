package worker

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/constant"
	"golang.org/x/sync/errgroup"
)

const cancelCheckEvery = 4096

// ErrSourcePanicked is returned by Run when iterating the source panicked.
// Batches handed out before the panic are still delivered.
var ErrSourcePanicked = errors.New("batch source panicked")

// Batch is one unit of work handed to a worker.
type Batch[T any] struct {
	ID    int
	Items []T
}

// Outcome is what a worker reports back for one batch. Err is set when the
// handler failed or panicked; in that case Results is nil and every item of
// the batch counts as unevaluated.
type Outcome[T, R any] struct {
	Batch    Batch[T]
	Results  []R
	Err      error
	WorkerID int
	Elapsed  time.Duration
}

// Handler processes one batch. It must only read shared inputs.
type Handler[T, R any] func(ctx context.Context, batch Batch[T]) ([]R, error)

type Config struct {
	Workers   int // default runtime.NumCPU()
	BatchSize int // default constant.DefaultBatchSize
	QueueSize int // pending batches; default 2 per worker
}

func (c Config) withDefaults() Config {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = constant.DefaultBatchSize
	}
	if c.QueueSize <= 0 {
		c.QueueSize = c.Workers * 2
	}
	return c
}

// BatchPool fans batches out to a fixed set of workers. Each Run owns its
// goroutines and returns only after all of them have exited.
type BatchPool[T, R any] struct {
	cfg     Config
	handler Handler[T, R]
	logger  *slog.Logger
}

func NewBatchPool[T, R any](cfg Config, handler Handler[T, R], logger *slog.Logger) *BatchPool[T, R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchPool[T, R]{
		cfg:     cfg.withDefaults(),
		handler: handler,
		logger:  logger,
	}
}

func (p *BatchPool[T, R]) Config() Config {
	return p.cfg
}

// Run chunks src into batches and processes them concurrently. collect is
// called on the caller's goroutine, once per finished batch, in completion
// order. Cancellation is checked between batches; batches already finished
// are still delivered and Run returns the context error.
func (p *BatchPool[T, R]) Run(ctx context.Context, src iter.Seq[T], collect func(Outcome[T, R])) error {
	g, gctx := errgroup.WithContext(ctx)
	tasks := make(chan Batch[T], p.cfg.QueueSize)
	outcomes := make(chan Outcome[T, R], p.cfg.QueueSize)

	g.Go(func() error {
		defer close(tasks)
		return p.produce(gctx, src, tasks)
	})

	workers, wctx := errgroup.WithContext(gctx)
	for i := 0; i < p.cfg.Workers; i++ {
		workers.Go(func() error {
			return p.work(wctx, i, tasks, outcomes)
		})
	}
	g.Go(func() error {
		defer close(outcomes)
		return workers.Wait()
	})

	for out := range outcomes {
		collect(out)
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (p *BatchPool[T, R]) produce(ctx context.Context, src iter.Seq[T], tasks chan<- Batch[T]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("Recovered source panic", "stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrSourcePanicked, r)
		}
	}()

	id := 0
	items := make([]T, 0, p.cfg.BatchSize)
	send := func() error {
		select {
		case tasks <- Batch[T]{ID: id, Items: items}:
			id++
			items = make([]T, 0, p.cfg.BatchSize)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	seen := 0
	for item := range src {
		// a selective filter upstream can keep src busy for long stretches
		if seen++; seen%cancelCheckEvery == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		items = append(items, item)
		if len(items) == p.cfg.BatchSize {
			if err := send(); err != nil {
				return err
			}
		}
	}
	if len(items) > 0 {
		return send()
	}
	return nil
}

func (p *BatchPool[T, R]) work(ctx context.Context, workerID int, tasks <-chan Batch[T], outcomes chan<- Outcome[T, R]) error {
	for b := range tasks {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("Context cancelled; dropping queued batch", "worker_id", workerID, "batch", b.ID)
			return err
		}

		start := time.Now()
		results, err := p.safeHandle(ctx, b)
		out := Outcome[T, R]{
			Batch:    b,
			Results:  results,
			Err:      err,
			WorkerID: workerID,
			Elapsed:  time.Since(start),
		}
		if err != nil {
			out.Results = nil
			p.logger.Warn("Batch failed", "worker_id", workerID, "batch", b.ID, "size", len(b.Items), "err", err)
		} else {
			p.logger.Debug("Batch done", "worker_id", workerID, "batch", b.ID, "size", len(b.Items), "elapsed", out.Elapsed)
		}
		outcomes <- out
	}
	return nil
}

func (p *BatchPool[T, R]) safeHandle(ctx context.Context, b Batch[T]) (results []R, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Debug("Recovered batch panic", "batch", b.ID, "stack", string(debug.Stack()))
			err = fmt.Errorf("batch %d panicked: %v", b.ID, r)
		}
	}()
	return p.handler(ctx, b)
}

package analysis

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/internal/combo"
	"github.com/kengiroy2-g/kenobase-sub007/internal/match"
	"github.com/kengiroy2-g/kenobase-sub007/internal/worker"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/constant"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/logger"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/types"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/ratelimiter"
)

const progressInterval = 5 * time.Second

// evaluate scores one batch. Tests replace it to inject batch failures.
var evaluate = evaluateBatch

// scored is the per-candidate output of a batch.
type scored struct {
	eval     Evaluation
	rejected bool
}

// Run evaluates every candidate of p on a worker pool. Input errors are
// returned before any work starts, with a nil report. When ctx is cancelled
// the report holds every completed batch, is marked Cancelled, and is
// returned together with the context error. A panic in p.Predicate stops the
// run the same way with worker.ErrSourcePanicked.
func Run(ctx context.Context, p Params) (*Report, error) {
	candidates, err := prepare(p)
	if err != nil {
		return nil, err
	}
	log := runLogger(p)

	pool := worker.NewBatchPool[combo.Combination, scored](p.Worker, func(ctx context.Context, b worker.Batch[combo.Combination]) ([]scored, error) {
		return evaluate(p, b.Items), nil
	}, log)
	cfg := pool.Config()

	rep := newReport(p)
	total, bounded := combo.CountUint64(p.Pool.Size(), p.K)
	log.Info("Starting run",
		"pool", p.Pool.Size(),
		"k", p.K,
		"combinations", combo.Count(p.Pool.Size(), p.K).String(),
		"max_shared", p.MaxShared,
		"workers", cfg.Workers,
		"batch_size", cfg.BatchSize,
	)

	progress := ratelimiter.NewRateLimiter(progressInterval, 1)
	progress.TryAcquire()

	var batchErrs types.MultiError
	runErr := pool.Run(ctx, candidates, func(out worker.Outcome[combo.Combination, scored]) {
		rep.Counters.Batches++
		rep.Counters.Generated += len(out.Batch.Items)
		if out.Err != nil {
			batchErrs.Add(fmt.Errorf("batch %d: %w", out.Batch.ID, out.Err))
			rep.addFailedBatch(out.Batch.Items, out.Err)
		} else {
			rep.collect(out.Results)
		}
		if progress.TryAcquire() {
			logProgress(log, rep, total, bounded)
		}
	})

	if err := batchErrs.ErrOrNil(); err != nil {
		log.Error("Some batches were not evaluated", "failed_batches", batchErrs.Len(), "err", err)
	}
	return finish(log, rep, runErr)
}

// RunSequential evaluates the same candidates as Run on the calling
// goroutine. Batching, failure isolation and cancellation checks match Run.
func RunSequential(ctx context.Context, p Params) (*Report, error) {
	candidates, err := prepare(p)
	if err != nil {
		return nil, err
	}
	log := runLogger(p)
	batchSize := p.Worker.BatchSize
	if batchSize <= 0 {
		batchSize = constant.DefaultBatchSize
	}

	rep := newReport(p)
	total, bounded := combo.CountUint64(p.Pool.Size(), p.K)
	log.Info("Starting sequential run", "pool", p.Pool.Size(), "k", p.K, "max_shared", p.MaxShared)

	progress := ratelimiter.NewRateLimiter(progressInterval, 1)
	progress.TryAcquire()

	batch := make([]combo.Combination, 0, batchSize)
	flush := func() {
		rep.Counters.Batches++
		rep.Counters.Generated += len(batch)
		results, err := safeEvaluate(p, batch)
		if err != nil {
			log.Warn("Batch failed", "batch", rep.Counters.Batches-1, "size", len(batch), "err", err)
			rep.addFailedBatch(batch, err)
		} else {
			rep.collect(results)
		}
		if progress.TryAcquire() {
			logProgress(log, rep, total, bounded)
		}
		batch = make([]combo.Combination, 0, batchSize)
	}

	runErr := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", worker.ErrSourcePanicked, r)
			}
		}()
		for c := range candidates {
			batch = append(batch, c)
			if len(batch) < batchSize {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			flush()
		}
		if len(batch) > 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			flush()
		}
		return nil
	}()
	return finish(log, rep, runErr)
}

func prepare(p Params) (iter.Seq[combo.Combination], error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	return combo.GenerateFiltered(p.Pool, p.K, p.Predicate)
}

func runLogger(p Params) *slog.Logger {
	name := p.Name
	if name == "" {
		name = "adhoc"
	}
	return logger.With(slog.String("run", name))
}

func newReport(p Params) *Report {
	return &Report{Name: p.Name, StartedAt: time.Now()}
}

func (r *Report) collect(results []scored) {
	evals := make([]Evaluation, 0, len(results))
	for _, s := range results {
		if s.rejected {
			r.Counters.Rejected++
			continue
		}
		evals = append(evals, s.eval)
	}
	r.add(evals)
}

func finish(log *slog.Logger, rep *Report, runErr error) (*Report, error) {
	rep.Elapsed = time.Since(rep.StartedAt)
	rep.Summary = summarize(rep.Evaluations)
	if runErr != nil {
		rep.Cancelled = true
		msg := "Run cancelled; returning partial report"
		if errors.Is(runErr, worker.ErrSourcePanicked) {
			msg = "Run aborted; returning partial report"
		}
		log.Warn(msg,
			"evaluated", rep.Counters.Evaluated,
			"elapsed", rep.Elapsed.Truncate(time.Millisecond),
			"err", runErr,
		)
		return rep, runErr
	}
	log.Info("Run completed",
		"generated", rep.Counters.Generated,
		"rejected", rep.Counters.Rejected,
		"evaluated", rep.Counters.Evaluated,
		"unevaluated", rep.Counters.Unevaluated,
		"covered", rep.Summary.Covered,
		"elapsed", rep.Elapsed.Truncate(time.Millisecond),
	)
	return rep, nil
}

func logProgress(log *slog.Logger, rep *Report, total uint64, bounded bool) {
	args := []any{
		"batches", rep.Counters.Batches,
		"generated", rep.Counters.Generated,
		"evaluated", rep.Counters.Evaluated,
		"elapsed", time.Since(rep.StartedAt).Truncate(time.Second),
	}
	if bounded && total > 0 {
		args = append(args, "progress", fmt.Sprintf("%.1f%%", float64(rep.Counters.Generated)/float64(total)*100))
	}
	log.Info("Run progress", args...)
}

// evaluateBatch applies the containment filter and the match engine to each
// candidate. A scan error degrades only its own candidate.
func evaluateBatch(p Params, items []combo.Combination) []scored {
	out := make([]scored, 0, len(items))
	for _, c := range items {
		if p.MaxShared != NoContainment && !match.Passes(c, p.History, p.MaxShared) {
			out = append(out, scored{eval: Evaluation{Combination: c}, rejected: true})
			continue
		}
		res, err := match.Scan(c, p.History, p.Window, p.Scan)
		if err != nil {
			out = append(out, scored{eval: Evaluation{Combination: c, Err: err.Error()}})
			continue
		}
		out = append(out, scored{eval: Evaluation{Combination: c, Result: res}})
	}
	return out
}

func safeEvaluate(p Params, items []combo.Combination) (results []scored, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("batch panicked: %v", r)
		}
	}()
	return evaluate(p, items), nil
}

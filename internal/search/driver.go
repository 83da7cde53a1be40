package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/hupe1980/binder/psm"
	"github.com/hupe1980/binder/resource"
	"golang.org/x/sync/errgroup"
)

// ErrUnbounded is returned when neither an iteration target nor a time limit
// bounds the search.
var ErrUnbounded = errors.New("search: no iteration target and no time limit")

// ErrMemoryLimit is returned when not even one worker fits the memory limit.
var ErrMemoryLimit = errors.New("search: worker does not fit memory limit")

// Config controls a search run. Zero values of TargetIterations and TimeLimit
// mean "unbounded", but at least one of them must be set.
type Config struct {
	// MaxClusters caps the number of clusters (1..N).
	MaxClusters int

	// TargetIterations is the per-worker iteration budget.
	TargetIterations int

	// MaxSweeteningPasses bounds Sweeten per iteration.
	MaxSweeteningPasses int

	// Threads is the maximum number of workers; 0 means GOMAXPROCS.
	Threads int

	// TimeLimit bounds wall-clock time, checked after every iteration.
	TimeLimit time.Duration

	// ExactSweetening uses the true reassignment gain in Sweeten.
	ExactSweetening bool

	// Seeded makes every worker draw orderings from Seed on its own stream.
	Seeded bool
	Seed   uint64

	// ProgressInterval throttles per-worker debug progress logs.
	// If 0, defaults to one second.
	ProgressInterval time.Duration

	// Memory, if set, bounds the memory reserved by workers. The first
	// worker waits for its reservation, further workers start only while
	// memory is available.
	Memory *resource.Controller

	Logger   *slog.Logger
	Observer Observer
}

// Observer receives per-iteration events. Implementations must be safe for
// concurrent use; they are called from every worker.
type Observer interface {
	ObserveIteration(worker int, score float64, stats SweetenStats, d time.Duration)
}

// Result is the reduction of all worker bests. Labels are dense ids in item
// index order, not yet canonicalized.
type Result struct {
	Labels           []int
	Score            float64
	NumClusters      int
	Iterations       int
	Elapsed          time.Duration
	TimeLimitReached bool
	Threads          int
}

// NumWorkers resolves the worker count for a configured maximum.
func NumWorkers(maxThreads int) int {
	procs := runtime.GOMAXPROCS(0)
	if maxThreads <= 0 || maxThreads > procs {
		return procs
	}
	return maxThreads
}

// WorkerBytes estimates the memory one worker reserves for n items: the
// permuted score matrix plus its label and order buffers.
func WorkerBytes(n int) int64 {
	return 8*int64(n)*int64(n) + 6*8*int64(n)
}

// Run searches for the labeling of s with the largest objective.
//
// Workers stop on their own budget. If ctx is canceled they stop after the
// iteration in flight; Run then returns the best result found so far together
// with the context error.
func Run(ctx context.Context, s *psm.ScoreMatrix, cfg Config) (*Result, error) {
	if cfg.TargetIterations <= 0 && cfg.TimeLimit <= 0 {
		return nil, ErrUnbounded
	}
	if cfg.MaxClusters <= 0 || cfg.MaxClusters > s.N() {
		cfg.MaxClusters = s.N()
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = time.Second
	}

	threads := NumWorkers(cfg.Threads)
	if cfg.Memory != nil {
		granted, err := reserve(ctx, cfg.Memory, WorkerBytes(s.N()), threads)
		if err != nil {
			return nil, err
		}
		defer cfg.Memory.ReleaseMemory(int64(granted) * WorkerBytes(s.N()))
		threads = granted
	}
	red := &reduction{threads: threads}
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	for id := 0; id < threads; id++ {
		w := newWorker(id, s, &cfg)
		g.Go(func() error {
			err := w.run(gctx, start)
			red.merge(w)
			return err
		})
	}
	err := g.Wait()

	res := red.result()
	if cfg.Logger != nil {
		cfg.Logger.Debug("search finished",
			"threads", res.Threads,
			"iterations", res.Iterations,
			"score", res.Score,
			"clusters", res.NumClusters,
			"elapsed", res.Elapsed,
			"time_limit_reached", res.TimeLimitReached,
		)
	}
	return res, err
}

// reserve acquires memory for between one and limit workers.
func reserve(ctx context.Context, mem *resource.Controller, perWorker int64, limit int) (int, error) {
	if !mem.Fits(perWorker) {
		return 0, fmt.Errorf("%w: %d bytes per worker, limit %d", ErrMemoryLimit, perWorker, mem.MemoryLimit())
	}
	if err := mem.AcquireMemory(ctx, perWorker); err != nil {
		return 0, err
	}
	granted := 1
	for granted < limit && mem.TryAcquireMemory(perWorker) {
		granted++
	}
	return granted, nil
}

// reduction accumulates worker bests. merge is the only synchronized step of
// a run and executes once per worker.
type reduction struct {
	mu      sync.Mutex
	threads int

	has              bool
	labels           []int
	score            float64
	clusters         int
	iterations       int
	elapsed          time.Duration
	timeLimitReached bool
}

func (r *reduction) merge(w *worker) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.iterations += w.iterations
	r.elapsed = max(r.elapsed, w.elapsed)
	r.timeLimitReached = r.timeLimitReached || w.timeLimitReached

	if w.hasBest && (!r.has || w.bestScore > r.score) {
		r.has = true
		r.labels = w.best
		r.score = w.bestScore
		r.clusters = w.bestClusters
	}
}

func (r *reduction) result() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Result{
		Labels:           r.labels,
		Score:            r.score,
		NumClusters:      r.clusters,
		Iterations:       r.iterations,
		Elapsed:          r.elapsed,
		TimeLimitReached: r.timeLimitReached,
		Threads:          r.threads,
	}
}

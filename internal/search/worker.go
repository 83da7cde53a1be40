package search

import (
	"context"
	"time"

	"github.com/hupe1980/binder/internal/kernel"
	"github.com/hupe1980/binder/internal/partition"
	"github.com/hupe1980/binder/internal/perm"
	"github.com/hupe1980/binder/psm"
	"golang.org/x/time/rate"
)

// worker owns all mutable search state of one goroutine.
type worker struct {
	id  int
	s   *psm.ScoreMatrix
	cfg *Config
	gen *perm.Generator

	order      []int
	qbuf       []float64
	part       *partition.Partition
	allocated  []int
	progress   rate.Sometimes
	iterations int

	hasBest      bool
	best         []int // labels in original item order
	bestScore    float64
	bestClusters int

	elapsed          time.Duration
	timeLimitReached bool
}

func newWorker(id int, s *psm.ScoreMatrix, cfg *Config) *worker {
	n := s.N()
	gen := perm.New()
	if cfg.Seeded {
		gen = perm.NewSeeded(cfg.Seed, uint64(id))
	}
	return &worker{
		id:        id,
		s:         s,
		cfg:       cfg,
		gen:       gen,
		order:     make([]int, n),
		qbuf:      make([]float64, n*n),
		part:      partition.New(n),
		allocated: make([]int, n),
		best:      make([]int, n),
		progress:  rate.Sometimes{Interval: cfg.ProgressInterval},
	}
}

// run iterates until the iteration target, the time limit or ctx stops it.
// A budget stop is not an error.
func (w *worker) run(ctx context.Context, start time.Time) error {
	for {
		w.iterate()
		w.iterations++
		w.elapsed = time.Since(start)

		if w.cfg.TimeLimit > 0 && w.elapsed >= w.cfg.TimeLimit {
			w.timeLimitReached = true
			return nil
		}
		if w.cfg.TargetIterations > 0 && w.iterations >= w.cfg.TargetIterations {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// iterate performs one restart: permute, allocate, sweeten, score, keep best.
func (w *worker) iterate() {
	began := time.Now()
	cfg := w.cfg

	w.order = w.gen.Perm(w.order)
	q := w.s.Permute(w.order, w.qbuf)
	w.qbuf = q.Data()

	Allocate(q, cfg.MaxClusters, w.part)
	allocScore := kernel.Evaluate(q, w.part.Labels())
	allocClusters := w.part.Count()
	copy(w.allocated, w.part.Labels())

	st := Sweeten(q, cfg.MaxClusters, cfg.MaxSweeteningPasses, cfg.ExactSweetening, w.part)
	score := kernel.Evaluate(q, w.part.Labels())
	labels, clusters := w.part.Labels(), w.part.Count()

	// Keep the allocation when the approximate sweetening made it worse.
	if allocScore > score {
		score, labels, clusters = allocScore, w.allocated, allocClusters
	}

	if !w.hasBest || score > w.bestScore {
		for k, item := range w.order {
			w.best[item] = labels[k]
		}
		w.hasBest = true
		w.bestScore = score
		w.bestClusters = clusters
	}

	if cfg.Observer != nil {
		cfg.Observer.ObserveIteration(w.id, score, st, time.Since(began))
	}
	if cfg.Logger != nil {
		w.progress.Do(func() {
			cfg.Logger.Debug("search progress",
				"worker", w.id,
				"iterations", w.iterations+1,
				"best_score", w.bestScore,
				"clusters", w.bestClusters,
			)
		})
	}
}

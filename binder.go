package binder

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/goccy/go-json"
	"github.com/hupe1980/binder/internal/kernel"
	"github.com/hupe1980/binder/internal/partition"
	"github.com/hupe1980/binder/internal/search"
	"github.com/hupe1980/binder/psm"
)

// Result is the outcome of a Run.
type Result struct {
	// Labels assigns every item a cluster in 1..NumClusters, numbered in
	// order of first appearance.
	Labels []int

	NumClusters int

	// Loss is the expected Binder loss of Labels (lower is better).
	Loss float64

	// Iterations is the total over all workers.
	Iterations int

	Elapsed          time.Duration
	TimeLimitReached bool
	NumThreads       int
}

// resultRecord is the JSON form of a Result. Elapsed time is stored in
// milliseconds.
type resultRecord struct {
	Labels           []int   `json:"labels"`
	NumClusters      int     `json:"num_clusters"`
	Loss             float64 `json:"binder_loss"`
	Iterations       int     `json:"iterations"`
	ElapsedMS        float64 `json:"elapsed_ms"`
	TimeLimitReached bool    `json:"time_limit_reached"`
	NumThreads       int     `json:"num_threads"`
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultRecord{
		Labels:           r.Labels,
		NumClusters:      r.NumClusters,
		Loss:             r.Loss,
		Iterations:       r.Iterations,
		ElapsedMS:        float64(r.Elapsed) / float64(time.Millisecond),
		TimeLimitReached: r.TimeLimitReached,
		NumThreads:       r.NumThreads,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	var rec resultRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*r = Result{
		Labels:           rec.Labels,
		NumClusters:      rec.NumClusters,
		Loss:             rec.Loss,
		Iterations:       rec.Iterations,
		Elapsed:          time.Duration(rec.ElapsedMS * float64(time.Millisecond)),
		TimeLimitReached: rec.TimeLimitReached,
		NumThreads:       rec.NumThreads,
	}
	return nil
}

// String returns a one-line summary.
func (r *Result) String() string {
	return fmt.Sprintf("clusters=%d loss=%.6g iterations=%d threads=%d elapsed=%s time_limit_reached=%t",
		r.NumClusters, r.Loss, r.Iterations, r.NumThreads, r.Elapsed.Round(time.Millisecond), r.TimeLimitReached)
}

// Run searches for the partition of m's items that minimizes the expected
// Binder loss.
//
// Configuration is validated before any work starts. Reaching the iteration
// budget or the time limit is not an error. If ctx is canceled, Run returns
// the best partition found so far together with ctx's error.
func Run(ctx context.Context, m *psm.Matrix, optFns ...Option) (*Result, error) {
	opts := applyOptions(optFns)
	if err := validate(m, &opts); err != nil {
		return nil, err
	}

	n := m.N()
	logger := opts.logger.WithItems(n)
	logger.LogRunStart(ctx, &opts)

	began := time.Now()
	sr, err := search.Run(ctx, m.Shift(opts.threshold), search.Config{
		MaxClusters:         int(opts.maxClusters),
		TargetIterations:    int(opts.targetIterations),
		MaxSweeteningPasses: int(opts.maxSweeteningPasses),
		Threads:             int(opts.maxThreads),
		TimeLimit:           opts.timeLimit,
		ExactSweetening:     opts.exactSweetening,
		Seeded:              opts.seeded,
		Seed:                opts.seed,
		ProgressInterval:    opts.progressInterval,
		Memory:              opts.resources,
		Logger:              logger.Logger,
		Observer:            observer{mc: opts.metricsCollector},
	})
	err = translateError(err)

	var res *Result
	if sr != nil && sr.Labels != nil {
		labels, k := partition.Canonical(sr.Labels)
		res = &Result{
			Labels:           labels,
			NumClusters:      k,
			Loss:             ReportedLoss(m.Sum(), opts.threshold, sr.Score),
			Iterations:       sr.Iterations,
			Elapsed:          sr.Elapsed,
			TimeLimitReached: sr.TimeLimitReached,
			NumThreads:       sr.Threads,
		}
	}

	logger.LogRunSummary(ctx, res, err)
	opts.metricsCollector.RecordRun(res, time.Since(began), err)
	return res, err
}

// ReportedLoss converts an internal objective score into the reported Binder
// loss, given the sum of all entries of the unshifted matrix.
func ReportedLoss(total, threshold, score float64) float64 {
	return (1-threshold)*total - 2*score
}

// ExpectedLoss returns the expected Binder loss of each partition under m,
// on the same scale as Result.Loss. Labels may be arbitrary integers; only
// equality between them matters.
func ExpectedLoss(m *psm.Matrix, threshold float64, partitions ...[]int) ([]float64, error) {
	opts := applyOptions([]Option{WithThreshold(threshold), WithTargetIterations(1)})
	if err := validate(m, &opts); err != nil {
		return nil, err
	}

	labelings := make([][]int, len(partitions))
	for i, p := range partitions {
		if len(p) != m.N() {
			return nil, &ConfigError{Field: fmt.Sprintf("partition[%d] length", i), Value: len(p), cause: ErrLabelCount}
		}
		labelings[i], _ = partition.CanonicalAny(p)
	}

	scores := make([]float64, len(labelings))
	kernel.EvaluateBatch(m.Shift(threshold), labelings, scores)

	total := m.Sum()
	for i, s := range scores {
		scores[i] = ReportedLoss(total, threshold, s)
	}
	return scores, nil
}

func validate(m *psm.Matrix, o *options) error {
	if m == nil || m.N() == 0 {
		return ErrEmptyMatrix
	}
	if math.IsNaN(o.threshold) || math.IsInf(o.threshold, 0) || o.threshold < 0 {
		return &ConfigError{Field: "threshold", Value: o.threshold, cause: ErrInvalidThreshold}
	}
	if o.maxClusters > uint(m.N()) {
		return &ConfigError{Field: "max clusters", Value: o.maxClusters, cause: ErrInvalidMaxClusters}
	}
	if o.targetIterations == 0 && o.timeLimit <= 0 {
		return &ConfigError{Field: "budget", Value: "unbounded", cause: ErrUnboundedSearch}
	}
	return nil
}

// observer forwards search iterations to a MetricsCollector.
type observer struct {
	mc MetricsCollector
}

func (o observer) ObserveIteration(worker int, score float64, st search.SweetenStats, d time.Duration) {
	o.mc.RecordIteration(worker, score, st.Moves, d)
}

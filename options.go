package binder

import (
	"log/slog"
	"time"

	"github.com/hupe1980/binder/resource"
)

const (
	// DefaultThreshold is the Binder loss constant c. With c = 0.5 separating
	// and joining mistakes cost the same.
	DefaultThreshold = 0.5

	// DefaultTargetIterations is the per-worker iteration budget.
	DefaultTargetIterations = 1000

	// DefaultMaxSweeteningPasses bounds the local search per iteration.
	DefaultMaxSweeteningPasses = 3
)

type options struct {
	maxClusters         uint
	threshold           float64
	targetIterations    uint
	maxSweeteningPasses uint
	maxThreads          uint
	timeLimit           time.Duration
	exactSweetening     bool
	seeded              bool
	seed                uint64
	progressInterval    time.Duration
	resources           *resource.Controller
	metricsCollector    MetricsCollector
	logger              *Logger
}

// Option configures Run.
type Option func(*options)

// WithMaxClusters caps the number of clusters. 0 means no cap (N clusters).
func WithMaxClusters(k uint) Option {
	return func(o *options) {
		o.maxClusters = k
	}
}

// WithThreshold sets the Binder loss constant c in [0, ∞).
//
// Pairs with co-clustering probability above c attract each other, pairs
// below repel. Larger values favor more, smaller clusters.
func WithThreshold(c float64) Option {
	return func(o *options) {
		o.threshold = c
	}
}

// WithTargetIterations sets the iteration budget of every worker.
// 0 means unbounded; a time limit must then be configured.
//
// The total number of iterations scales with the number of workers.
func WithTargetIterations(n uint) Option {
	return func(o *options) {
		o.targetIterations = n
	}
}

// WithMaxSweeteningPasses bounds the refinement passes per iteration.
func WithMaxSweeteningPasses(n uint) Option {
	return func(o *options) {
		o.maxSweeteningPasses = n
	}
}

// WithMaxThreads caps the number of workers. 0 uses runtime.GOMAXPROCS.
func WithMaxThreads(n uint) Option {
	return func(o *options) {
		o.maxThreads = n
	}
}

// WithTimeLimit bounds the wall-clock time of a run. 0 means no limit.
//
// The limit is checked after every completed iteration, so a run may overshoot
// it by up to one iteration.
func WithTimeLimit(d time.Duration) Option {
	return func(o *options) {
		o.timeLimit = d
	}
}

// WithExactSweetening makes refinement use the true reassignment gain instead
// of comparing candidates against a zero baseline for the current cluster.
func WithExactSweetening(enabled bool) Option {
	return func(o *options) {
		o.exactSweetening = enabled
	}
}

// WithSeed makes item orderings deterministic. Results are then reproducible
// for a fixed thread count and an iteration budget without time limit.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seeded = true
		o.seed = seed
	}
}

// WithProgressInterval sets how often each worker logs progress at debug level.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithResourceController bounds the memory reserved by search workers. Each
// worker holds a private copy of the shifted matrix, so with a tight limit
// fewer workers than WithMaxThreads allows may run. A controller may be
// shared by concurrent runs.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithMetricsCollector configures a metrics collector for monitoring runs.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &binder.BasicMetricsCollector{}
//	res, _ := binder.Run(ctx, m, binder.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Iterations: %d, Avg latency: %dns\n", stats.IterationCount, stats.IterationAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for runs.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := binder.NewJSONLogger(slog.LevelInfo)
//	res, _ := binder.Run(ctx, m, binder.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		threshold:           DefaultThreshold,
		targetIterations:    DefaultTargetIterations,
		maxSweeteningPasses: DefaultMaxSweeteningPasses,
		metricsCollector:    NoopMetricsCollector{},
		logger:              NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Package prommetrics exports binder run metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := prommetrics.New(reg)
//	res, err := binder.Run(ctx, m, binder.WithMetricsCollector(mc))
//	_ = prommetrics.WriteTextfile("binder.prom", reg)
package prommetrics

import (
	"strconv"
	"time"

	"github.com/hupe1980/binder"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector implements binder.MetricsCollector with Prometheus metrics.
type Collector struct {
	iterations       *prometheus.CounterVec
	iterationLatency prometheus.Histogram
	sweeteningMoves  prometheus.Counter
	runs             *prometheus.CounterVec
	runLatency       prometheus.Histogram
	timeLimitReached prometheus.Counter
	loss             prometheus.Gauge
	clusters         prometheus.Gauge
}

var _ binder.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "binder_iterations_total",
			Help: "Search iterations completed, by worker",
		}, []string{"worker"}),
		iterationLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "binder_iteration_duration_seconds",
			Help:    "Duration of one restart (allocation, sweetening and scoring)",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
		sweeteningMoves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "binder_sweetening_moves_total",
			Help: "Items reassigned by sweetening",
		}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "binder_runs_total",
			Help: "Search runs, by status",
		}, []string{"status"}),
		runLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "binder_run_duration_seconds",
			Help:    "Wall time of a search run",
			Buckets: prometheus.DefBuckets,
		}),
		timeLimitReached: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "binder_time_limit_reached_total",
			Help: "Runs stopped by the time limit",
		}),
		loss: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "binder_loss",
			Help: "Expected Binder loss of the last result",
		}),
		clusters: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "binder_clusters",
			Help: "Number of clusters of the last result",
		}),
	}

	reg.MustRegister(
		c.iterations,
		c.iterationLatency,
		c.sweeteningMoves,
		c.runs,
		c.runLatency,
		c.timeLimitReached,
		c.loss,
		c.clusters,
	)
	return c
}

// RecordIteration implements binder.MetricsCollector.
func (c *Collector) RecordIteration(worker int, _ float64, moves int, d time.Duration) {
	c.iterations.WithLabelValues(strconv.Itoa(worker)).Inc()
	c.iterationLatency.Observe(d.Seconds())
	c.sweeteningMoves.Add(float64(moves))
}

// RecordRun implements binder.MetricsCollector.
func (c *Collector) RecordRun(res *binder.Result, d time.Duration, err error) {
	status := "success"
	switch {
	case err != nil && res != nil:
		status = "interrupted"
	case err != nil:
		status = "error"
	}
	c.runs.WithLabelValues(status).Inc()
	c.runLatency.Observe(d.Seconds())

	if res == nil {
		return
	}
	if res.TimeLimitReached {
		c.timeLimitReached.Inc()
	}
	c.loss.Set(res.Loss)
	c.clusters.Set(float64(res.NumClusters))
}

// WriteTextfile writes all metrics of g in the text exposition format, for
// the node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/binder"
	"github.com/hupe1980/binder/codec"
	"github.com/hupe1980/binder/prommetrics"
	"github.com/hupe1980/binder/psmio"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type runFlags struct {
	input       string
	output      string
	metricsFile string
	json        bool

	threshold           float64
	maxClusters         uint
	targetIterations    uint
	maxSweeteningPasses uint
	maxThreads          uint
	timeLimit           time.Duration
	exactSweetening     bool
	seed                uint64
	progressInterval    time.Duration
	memoryLimit         string
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Search for the partition with the smallest expected Binder loss",
		Example: `  binder run --input psm.csv --time-limit 10s
  binder run --input s3://bucket/psm.json.zst --output s3://bucket/result.json
  binder run --config run.yaml --input minio://localhost:9000/runs/psm.csv --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.resolve(cmd)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			return runSearch(cmd, cfg, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.input, "input", "i", "", "posterior similarity matrix (.csv or .json, optionally .zst/.lz4)")
	fs.StringVarP(&f.output, "output", "o", "", "write the result (.json record or .csv labels)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics in text format")
	fs.BoolVar(&f.json, "json", false, "print the result as JSON")

	fs.Float64VarP(&f.threshold, "threshold", "c", binder.DefaultThreshold, "pairwise loss threshold")
	fs.UintVarP(&f.maxClusters, "max-clusters", "k", 0, "maximum number of clusters (0 = number of items)")
	fs.UintVarP(&f.targetIterations, "iterations", "n", binder.DefaultTargetIterations, "iterations per worker (0 = unbounded)")
	fs.UintVar(&f.maxSweeteningPasses, "sweetening-passes", binder.DefaultMaxSweeteningPasses, "maximum sweetening passes per iteration")
	fs.UintVarP(&f.maxThreads, "threads", "t", 0, "maximum number of workers (0 = GOMAXPROCS)")
	fs.DurationVar(&f.timeLimit, "time-limit", 0, "wall-clock limit (0 = none)")
	fs.BoolVar(&f.exactSweetening, "exact-sweetening", false, "use exact reassignment gains in sweetening")
	fs.Uint64Var(&f.seed, "seed", 0, "seed for reproducible runs")
	fs.DurationVar(&f.progressInterval, "progress-interval", 0, "interval of per-worker debug progress logs")
	fs.StringVar(&f.memoryLimit, "memory-limit", "", "cap worker memory, e.g. 2GiB (fewer workers run if needed)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

// apply overrides cfg with the flags set on the command line.
func (f *runFlags) apply(cmd *cobra.Command, cfg *Config) {
	fs := cmd.Flags()
	if fs.Changed("threshold") {
		cfg.Threshold = f.threshold
	}
	if fs.Changed("max-clusters") {
		cfg.MaxClusters = f.maxClusters
	}
	if fs.Changed("iterations") {
		cfg.TargetIterations = f.targetIterations
	}
	if fs.Changed("sweetening-passes") {
		cfg.MaxSweeteningPasses = f.maxSweeteningPasses
	}
	if fs.Changed("threads") {
		cfg.MaxThreads = f.maxThreads
	}
	if fs.Changed("time-limit") {
		cfg.TimeLimit = f.timeLimit
	}
	if fs.Changed("exact-sweetening") {
		cfg.ExactSweetening = f.exactSweetening
	}
	if fs.Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if fs.Changed("progress-interval") {
		cfg.ProgressInterval = f.progressInterval
	}
	if fs.Changed("memory-limit") {
		cfg.MemoryLimit = f.memoryLimit
	}
}

func runSearch(cmd *cobra.Command, cfg *Config, f *runFlags) error {
	ctx := cmd.Context()

	logger, err := cfg.logger(cmd)
	if err != nil {
		return err
	}
	codecOpt, cd, err := cfg.codecOption()
	if err != nil {
		return err
	}

	in, err := parseLocation(f.input)
	if err != nil {
		return err
	}
	var out location
	if f.output != "" {
		if out, err = parseLocation(f.output); err != nil {
			return err
		}
	}

	src, err := in.open(ctx, cfg)
	if err != nil {
		return err
	}
	m, err := psmio.Load(ctx, src, in.name, codecOpt)
	if err != nil {
		return err
	}

	opts, err := cfg.options()
	if err != nil {
		return err
	}
	opts = append(opts, binder.WithLogger(logger))

	var reg *prometheus.Registry
	if f.metricsFile != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, binder.WithMetricsCollector(prommetrics.New(reg)))
	}

	res, runErr := binder.Run(ctx, m, opts...)
	if res == nil {
		return runErr
	}

	if reg != nil {
		if err := prommetrics.WriteTextfile(f.metricsFile, reg); err != nil {
			return errors.Join(runErr, fmt.Errorf("write metrics: %w", err))
		}
	}

	if f.output != "" {
		dst, err := out.open(ctx, cfg)
		if err != nil {
			return errors.Join(runErr, err)
		}
		if err := psmio.SaveResult(ctx, dst, out.name, res, codecOpt); err != nil {
			return errors.Join(runErr, err)
		}
	}

	if err := printResult(cmd, cd, f.json, res); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

func printResult(cmd *cobra.Command, cd codec.Codec, asJSON bool, res *binder.Result) error {
	w := cmd.OutOrStdout()
	if !asJSON {
		_, err := fmt.Fprintln(w, res.String())
		return err
	}

	var (
		data []byte
		err  error
	)
	if gj, ok := cd.(codec.GoJSON); ok {
		data, err = gj.MarshalIndent(res)
	} else {
		data, err = cd.Marshal(res)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

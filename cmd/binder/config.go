package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hupe1980/binder"
	"github.com/hupe1980/binder/resource"
	"gopkg.in/yaml.v3"
)

// Config is the run configuration file. Flags set on the command line take
// precedence over its values.
type Config struct {
	Threshold           float64       `yaml:"threshold"`
	MaxClusters         uint          `yaml:"max_clusters"`
	TargetIterations    uint          `yaml:"target_iterations"`
	MaxSweeteningPasses uint          `yaml:"max_sweetening_passes"`
	MaxThreads          uint          `yaml:"max_threads"`
	TimeLimit           time.Duration `yaml:"time_limit"`
	ExactSweetening     bool          `yaml:"exact_sweetening"`
	Seed                *uint64       `yaml:"seed"`
	ProgressInterval    time.Duration `yaml:"progress_interval"`

	// MemoryLimit caps worker memory, e.g. "512MiB" or "2GB".
	MemoryLimit string `yaml:"memory_limit"`

	Codec     string `yaml:"codec"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	S3    S3Config    `yaml:"s3"`
	MinIO MinIOConfig `yaml:"minio"`
}

// S3Config configures s3:// locations.
type S3Config struct {
	Region   string `yaml:"region"`
	Endpoint string `yaml:"endpoint"`
}

// MinIOConfig configures minio:// locations. Empty keys fall back to the
// MINIO_ACCESS_KEY and MINIO_SECRET_KEY environment variables.
type MinIOConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

func defaultConfig() Config {
	return Config{
		Threshold:           binder.DefaultThreshold,
		TargetIterations:    binder.DefaultTargetIterations,
		MaxSweeteningPasses: binder.DefaultMaxSweeteningPasses,
		Codec:               "go-json",
		LogLevel:            "info",
		LogFormat:           "text",
	}
}

// loadConfig overlays the YAML file at path onto cfg.
func loadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) options() ([]binder.Option, error) {
	opts := []binder.Option{
		binder.WithThreshold(c.Threshold),
		binder.WithMaxClusters(c.MaxClusters),
		binder.WithTargetIterations(c.TargetIterations),
		binder.WithMaxSweeteningPasses(c.MaxSweeteningPasses),
		binder.WithMaxThreads(c.MaxThreads),
		binder.WithTimeLimit(c.TimeLimit),
		binder.WithExactSweetening(c.ExactSweetening),
	}
	if c.Seed != nil {
		opts = append(opts, binder.WithSeed(*c.Seed))
	}
	if c.ProgressInterval > 0 {
		opts = append(opts, binder.WithProgressInterval(c.ProgressInterval))
	}
	if c.MemoryLimit != "" {
		limit, err := humanize.ParseBytes(c.MemoryLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid memory limit %q: %w", c.MemoryLimit, err)
		}
		rc := resource.NewController(resource.Config{MemoryLimitBytes: int64(limit)})
		opts = append(opts, binder.WithResourceController(rc))
	}
	return opts, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

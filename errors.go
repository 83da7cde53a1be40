package binder

import (
	"errors"
	"fmt"

	"github.com/hupe1980/binder/internal/search"
	"github.com/hupe1980/binder/psm"
)

var (
	// ErrInvalidThreshold is returned for a negative or non-finite threshold.
	ErrInvalidThreshold = errors.New("threshold must be finite and non-negative")

	// ErrInvalidMaxClusters is returned when the cluster cap exceeds the item count.
	ErrInvalidMaxClusters = errors.New("max clusters exceeds number of items")

	// ErrUnboundedSearch is returned when neither an iteration target nor a
	// time limit is configured.
	ErrUnboundedSearch = errors.New("search needs an iteration target or a time limit")

	// ErrMemoryLimit is returned when the resource controller's memory
	// limit cannot hold even one search worker.
	ErrMemoryLimit = errors.New("memory limit too small for one search worker")

	// ErrLabelCount is returned when a partition does not label every item.
	ErrLabelCount = errors.New("partition length does not match number of items")

	// ErrEmptyMatrix is returned for a missing or zero-size matrix.
	ErrEmptyMatrix = psm.ErrEmpty
)

// ConfigError indicates a rejected configuration value.
//
// The original underlying error can be accessed via errors.Unwrap.
type ConfigError struct {
	Field string
	Value any
	cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.cause)
}

func (e *ConfigError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, search.ErrUnbounded) {
		return fmt.Errorf("%w: %w", ErrUnboundedSearch, err)
	}
	if errors.Is(err, search.ErrMemoryLimit) {
		return fmt.Errorf("%w: %w", ErrMemoryLimit, err)
	}
	return err
}

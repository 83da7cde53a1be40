package psmio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFormat is returned for a name without a .csv or .json extension.
	ErrUnknownFormat = errors.New("psmio: unknown file format")

	// ErrNoPartitions is returned when a labels file holds no partition.
	ErrNoPartitions = errors.New("psmio: no partitions")
)

// ParseError reports a malformed value in a CSV file.
type ParseError struct {
	Name  string
	Line  int
	Field int
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("psmio: %s:%d field %d: %v", e.Name, e.Line, e.Field, e.cause)
}

func (e *ParseError) Unwrap() error { return e.cause }

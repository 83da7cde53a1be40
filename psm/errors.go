package psm

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned for a zero-size matrix.
	ErrEmpty = errors.New("psm: matrix is empty")

	// ErrNotSquare is returned when the data does not describe an N×N matrix.
	ErrNotSquare = errors.New("psm: matrix is not square")

	// ErrNotSymmetric is returned when P[i][j] and P[j][i] differ.
	ErrNotSymmetric = errors.New("psm: matrix is not symmetric")

	// ErrOutOfRange is returned for entries that are not finite values in [0,1].
	ErrOutOfRange = errors.New("psm: entry out of range")
)

// EntryError describes the offending entry of a rejected matrix.
//
// The original sentinel can be matched via errors.Is.
type EntryError struct {
	Row   int
	Col   int
	Value float64
	cause error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%v: entry (%d,%d) = %g", e.cause, e.Row, e.Col, e.Value)
}

func (e *EntryError) Unwrap() error { return e.cause }

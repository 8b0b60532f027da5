package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyBatch reports a statistic, binning, or strongest-event query
// against a batch with zero records.
var ErrEmptyBatch = errors.New("batch has no records")

// ErrNonNumericFeature reports a statistics request for the time column,
// which is aggregated by DailyCounts rather than summarized.
var ErrNonNumericFeature = errors.New("feature is not numeric")

// UnknownColumnError reports a column request outside the five recognized
// features.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Name)
}

// MalformedTimestampError reports a feed time field that does not match
// TimestampLayout.
type MalformedTimestampError struct {
	Value string
	Err   error
}

func (e *MalformedTimestampError) Error() string {
	return fmt.Sprintf("malformed timestamp %q: %v", e.Value, e.Err)
}

func (e *MalformedTimestampError) Unwrap() error { return e.Err }

// SkippedRow reports one feed row that was rejected during parsing, by
// 1-based line number in the source CSV. Skipped rows never enter the batch,
// so aggregation always sees fully valid records.
type SkippedRow struct {
	Line int
	Err  error
}


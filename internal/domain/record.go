package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// TimestampLayout is the fixed time format used by the USGS CSV feeds:
// UTC with microsecond precision and a literal Z suffix.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// Feature names a column of the quake record table. The five recognized
// features match the CSV header names of the USGS feed.
type Feature string

const (
	FeatureTime      Feature = "time"
	FeatureLatitude  Feature = "latitude"
	FeatureLongitude Feature = "longitude"
	FeatureDepth     Feature = "depth"
	FeatureMagnitude Feature = "mag"
)

// QuakeRecord is one seismic detection from the feed. Records are immutable
// once parsed.
type QuakeRecord struct {
	Time      time.Time `json:"time"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Depth     float64   `json:"depth"` // kilometers
	Magnitude float64   `json:"mag"`
}

// EventID produces a deterministic ID from the record's key fields.
// Reprocessing the same feed yields the same IDs, so downstream consumers
// can upsert idempotently and replays are safe.
func (r QuakeRecord) EventID() string {
	input := fmt.Sprintf("%s|%.4f|%.4f|%.2f|%g",
		r.Time.UTC().Format(TimestampLayout), r.Latitude, r.Longitude, r.Depth, r.Magnitude)
	hash := sha256.Sum256([]byte(input))
	return "quake-" + hex.EncodeToString(hash[:8])
}

// Batch is an immutable ordered collection of quake records. Order is the
// source-feed order, which is not guaranteed chronological. Loading a new
// data set means constructing a new Batch; there is no incremental update.
type Batch struct {
	records []QuakeRecord
}

// NewBatch copies the given records into a fresh batch.
func NewBatch(records []QuakeRecord) Batch {
	cp := make([]QuakeRecord, len(records))
	copy(cp, records)
	return Batch{records: cp}
}

// Len returns the number of records in the batch.
func (b Batch) Len() int { return len(b.records) }

// Records returns a copy of the batch contents in feed order.
func (b Batch) Records() []QuakeRecord {
	cp := make([]QuakeRecord, len(b.records))
	copy(cp, b.records)
	return cp
}

// Column returns the ordered value sequence for one recognized feature.
// Time is encoded as Unix epoch seconds (fractional part preserved) so every
// column shares the float64 view. Unrecognized names fail with
// [UnknownColumnError].
func (b Batch) Column(f Feature) ([]float64, error) {
	extract, err := columnExtractor(f)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(b.records))
	for i, rec := range b.records {
		values[i] = extract(rec)
	}
	return values, nil
}

func columnExtractor(f Feature) (func(QuakeRecord) float64, error) {
	switch f {
	case FeatureTime:
		return func(r QuakeRecord) float64 {
			return float64(r.Time.UnixMicro()) / 1e6
		}, nil
	case FeatureLatitude:
		return func(r QuakeRecord) float64 { return r.Latitude }, nil
	case FeatureLongitude:
		return func(r QuakeRecord) float64 { return r.Longitude }, nil
	case FeatureDepth:
		return func(r QuakeRecord) float64 { return r.Depth }, nil
	case FeatureMagnitude:
		return func(r QuakeRecord) float64 { return r.Magnitude }, nil
	default:
		return nil, &UnknownColumnError{Name: string(f)}
	}
}

// ParseTimestamp parses a feed time field in the fixed layout. A field that
// does not match fails with [MalformedTimestampError]; the caller decides
// whether to reject the batch or skip the row.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, &MalformedTimestampError{Value: s, Err: err}
	}
	return t.UTC(), nil
}

// FilterByMagnitude returns the sub-batch of records with magnitude greater
// than or equal to threshold, preserving relative order. Filtering is pure
// and idempotent.
func FilterByMagnitude(b Batch, threshold float64) Batch {
	kept := make([]QuakeRecord, 0, len(b.records))
	for _, rec := range b.records {
		if rec.Magnitude >= threshold {
			kept = append(kept, rec)
		}
	}
	return Batch{records: kept}
}

// Strongest returns the record with the greatest magnitude. Ties resolve to
// the first such record in feed order. Fails with [ErrEmptyBatch] when the
// batch has no records.
func Strongest(b Batch) (QuakeRecord, error) {
	if len(b.records) == 0 {
		return QuakeRecord{}, fmt.Errorf("strongest event: %w", ErrEmptyBatch)
	}
	best := b.records[0]
	for _, rec := range b.records[1:] {
		if rec.Magnitude > best.Magnitude {
			best = rec
		}
	}
	return best, nil
}

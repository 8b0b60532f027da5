package domain

import (
	"fmt"
	"time"
)

// Report is the full analysis of one batch: the date span of the data set,
// depth and magnitude summaries, the strongest event, and the gap-free daily
// count series. Derived on demand, never stored.
type Report struct {
	DateMin     time.Time      `json:"date_min"`
	DateMax     time.Time      `json:"date_max"`
	RecordCount int            `json:"record_count"`
	Depth       FeatureSummary `json:"depth"`
	Magnitude   FeatureSummary `json:"mag"`
	Strongest   QuakeRecord    `json:"strongest"`
	DailyCounts []DailyCount   `json:"daily_counts"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// Analyze builds the report for a batch. Fails with [ErrEmptyBatch] for a
// zero-record batch; there is no partial report.
func Analyze(b Batch) (Report, error) {
	if b.Len() == 0 {
		return Report{}, fmt.Errorf("analyze: %w", ErrEmptyBatch)
	}

	depth, err := Stats(b, FeatureDepth)
	if err != nil {
		return Report{}, err
	}
	mag, err := Stats(b, FeatureMagnitude)
	if err != nil {
		return Report{}, err
	}
	strongest, err := Strongest(b)
	if err != nil {
		return Report{}, err
	}
	counts, err := DailyCounts(b)
	if err != nil {
		return Report{}, err
	}

	dateMin, dateMax := timeSpan(b)

	return Report{
		DateMin:     dateMin,
		DateMax:     dateMax,
		RecordCount: b.Len(),
		Depth:       depth,
		Magnitude:   mag,
		Strongest:   strongest,
		DailyCounts: counts,
		GeneratedAt: clock.Now().UTC(),
	}, nil
}

// timeSpan returns the earliest and latest record timestamps. The caller
// guarantees a non-empty batch.
func timeSpan(b Batch) (time.Time, time.Time) {
	minT, maxT := b.records[0].Time, b.records[0].Time
	for _, rec := range b.records[1:] {
		if rec.Time.Before(minT) {
			minT = rec.Time
		}
		if rec.Time.After(maxT) {
			maxT = rec.Time
		}
	}
	return minT, maxT
}

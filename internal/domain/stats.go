package domain

import (
	"fmt"
	"math"
)

// FeatureSummary holds descriptive statistics for one numeric feature.
type FeatureSummary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Stats computes min, max, mean, and standard deviation for a numeric
// feature over the batch. Standard deviation is the population form
// (divide by N, not N-1). The time column is excluded; request it and the
// call fails with [ErrNonNumericFeature]. Fails with [ErrEmptyBatch] for a
// zero-record batch.
func Stats(b Batch, f Feature) (FeatureSummary, error) {
	if f == FeatureTime {
		return FeatureSummary{}, fmt.Errorf("stats for %q: %w", f, ErrNonNumericFeature)
	}
	values, err := b.Column(f)
	if err != nil {
		return FeatureSummary{}, err
	}
	if len(values) == 0 {
		return FeatureSummary{}, fmt.Errorf("stats for %q: %w", f, ErrEmptyBatch)
	}

	s := FeatureSummary{Min: values[0], Max: values[0]}
	sum := 0.0
	for _, v := range values {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
		sum += v
	}
	s.Mean = sum / float64(len(values))

	var sqSum float64
	for _, v := range values {
		d := v - s.Mean
		sqSum += d * d
	}
	s.Std = math.Sqrt(sqSum / float64(len(values)))

	return s, nil
}

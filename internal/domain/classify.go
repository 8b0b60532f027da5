package domain

import "math"

// DepthTier is the discrete depth classification band of an event.
type DepthTier string

const (
	TierShallow      DepthTier = "shallow"      // depth < 70 km
	TierIntermediate DepthTier = "intermediate" // 70 km ≤ depth < 300 km
	TierDeep         DepthTier = "deep"         // depth ≥ 300 km
)

// Depth band boundaries in kilometers. Lower bound inclusive: an event at
// exactly 70 km is intermediate, at exactly 300 km deep.
const (
	intermediateDepthKm = 70.0
	deepDepthKm         = 300.0
)

// ClassifiedQuake pairs a record with its depth tier and the
// magnitude-derived marker weight used by renderers to size map markers.
type ClassifiedQuake struct {
	QuakeRecord
	Tier         DepthTier `json:"tier"`
	MarkerWeight float64   `json:"marker_weight"`
}

// TierForDepth maps a hypocenter depth to its band.
func TierForDepth(depthKm float64) DepthTier {
	switch {
	case depthKm < intermediateDepthKm:
		return TierShallow
	case depthKm < deepDepthKm:
		return TierIntermediate
	default:
		return TierDeep
	}
}

// MarkerWeight derives the marker sizing scalar (π·mag²)/2 from a magnitude.
// Monotonically increasing for non-negative magnitudes; the engine computes
// the value, renderers apply it.
func MarkerWeight(magnitude float64) float64 {
	return math.Pi * magnitude * magnitude / 2
}

// Classify maps every record in the batch to its depth tier and marker
// weight, preserving feed order. An empty batch classifies to an empty
// sequence; unlike statistics and binning that is a valid result, not an
// error.
func Classify(b Batch) []ClassifiedQuake {
	classified := make([]ClassifiedQuake, len(b.records))
	for i, rec := range b.records {
		classified[i] = ClassifiedQuake{
			QuakeRecord:  rec,
			Tier:         TierForDepth(rec.Depth),
			MarkerWeight: MarkerWeight(rec.Magnitude),
		}
	}
	return classified
}

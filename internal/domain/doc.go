// Package domain models United States Geological Survey (USGS) earthquake
// feed data and implements the aggregation engine over it.
//
// # Data Source
//
// Records originate from the USGS earthquake summary CSV feeds at
// https://earthquake.usgs.gov/earthquakes/feed/v1.0/csv.php. The feed is a
// comma-separated table with a header row; this service consumes the columns
//
//	time, latitude, longitude, depth, mag
//
// and ignores the rest. The fetch adapter downloads one feed per run (7-day
// or 30-day window) or reads a previously cached file; either way the engine
// receives a single immutable batch.
//
// # USGS Data Conventions
//
// Time format:
//
//	UTC timestamps with microsecond precision and a literal Z suffix,
//	e.g. "2014-03-20T15:10:05.123456Z". The layout is fixed; rows whose
//	time field does not match are rejected at parse time and reported,
//	never silently dropped (see [ParseTimestamp]).
//
// Depth:
//
//	Hypocenter depth in kilometers below the surface. Seismology groups
//	events into three bands, which this package exposes as tiers:
//
//	  depth < 70 km          shallow
//	  70 km ≤ depth < 300 km intermediate
//	  depth ≥ 300 km         deep
//
//	Boundaries are half-open with the lower bound inclusive: a 70.0 km
//	event is intermediate, a 300.0 km event is deep.
//
// Magnitude:
//
//	Dimensionless moment magnitude. Downstream renderers size map markers
//	proportionally to (π·mag²)/2; the engine computes that weight, it does
//	not render it. See [MarkerWeight].
//
// # Aggregation
//
// All engine functions are pure functions over a [Batch]: per-feature
// summaries ([Stats]), a gap-free per-calendar-day count series
// ([DailyCounts]), depth-tier classification ([Classify]), magnitude
// filtering ([FilterByMagnitude]), and the strongest-event lookup
// ([Strongest]). A batch with zero records has no date range and no defined
// statistics, so those queries fail with [ErrEmptyBatch]; classifying an
// empty batch is simply an empty result.
package domain

package domain

import (
	"fmt"
	"time"
)

// DailyCount is the number of events on one UTC calendar day. Date is
// midnight UTC of that day.
type DailyCount struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DailyCounts bins the batch into a per-calendar-day count series covering
// the inclusive span [min date, max date]. The result is ascending, one
// entry per day with no gaps; days without events carry a zero count. Every
// record is attributed to exactly one day, so the counts sum to the batch
// size. Fails with [ErrEmptyBatch] when there is no date range to enumerate.
//
// A single pass buckets records by day, then the day range is walked filling
// zeros for missing keys. Days are stepped with AddDate so the walk stays on
// calendar days across month and year boundaries.
func DailyCounts(b Batch) ([]DailyCount, error) {
	if len(b.records) == 0 {
		return nil, fmt.Errorf("daily counts: %w", ErrEmptyBatch)
	}

	buckets := make(map[time.Time]int, len(b.records))
	first := truncateToDay(b.records[0].Time)
	minDay, maxDay := first, first
	for _, rec := range b.records {
		day := truncateToDay(rec.Time)
		buckets[day]++
		if day.Before(minDay) {
			minDay = day
		}
		if day.After(maxDay) {
			maxDay = day
		}
	}

	counts := make([]DailyCount, 0, maxDay.Sub(minDay)/(24*time.Hour)+1)
	for day := minDay; !day.After(maxDay); day = day.AddDate(0, 0, 1) {
		counts = append(counts, DailyCount{Date: day, Count: buckets[day]})
	}
	return counts, nil
}

// truncateToDay drops the time-of-day portion, yielding midnight UTC.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	fixedTime := time.Date(2014, 3, 27, 9, 15, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixedTime))
	defer SetClock(nil)

	t.Run("full report", func(t *testing.T) {
		batch := NewBatch([]QuakeRecord{
			makeRecord("2014-03-20T06:30:00.000000Z", 10, 4.0),
			makeRecord("2014-03-22T18:45:00.000000Z", 80, 6.5),
		})

		report, err := Analyze(batch)
		require.NoError(t, err)

		assert.Equal(t, time.Date(2014, 3, 20, 6, 30, 0, 0, time.UTC), report.DateMin)
		assert.Equal(t, time.Date(2014, 3, 22, 18, 45, 0, 0, time.UTC), report.DateMax)
		assert.Equal(t, 2, report.RecordCount)
		assert.Equal(t, FeatureSummary{Min: 10, Max: 80, Mean: 45, Std: 35}, report.Depth)
		assert.Equal(t, FeatureSummary{Min: 4.0, Max: 6.5, Mean: 5.25, Std: 1.25}, report.Magnitude)
		assert.Equal(t, 6.5, report.Strongest.Magnitude)
		assert.Len(t, report.DailyCounts, 3)
		assert.Equal(t, fixedTime, report.GeneratedAt)
	})

	t.Run("span derived from timestamps, not feed order", func(t *testing.T) {
		batch := NewBatch([]QuakeRecord{
			makeRecord("2014-03-22T00:00:00.000000Z", 80, 6.5),
			makeRecord("2014-03-20T00:00:00.000000Z", 10, 4.0),
		})

		report, err := Analyze(batch)
		require.NoError(t, err)
		assert.True(t, report.DateMin.Before(report.DateMax))
		assert.Equal(t, time.Date(2014, 3, 20, 0, 0, 0, 0, time.UTC), report.DateMin)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := Analyze(NewBatch(nil))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyBatch))
	})
}

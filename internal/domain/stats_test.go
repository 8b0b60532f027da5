package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	batch := NewBatch([]QuakeRecord{
		makeRecord("2014-03-20T00:00:00.000000Z", 10, 4.0),
		makeRecord("2014-03-22T00:00:00.000000Z", 80, 6.5),
	})

	t.Run("magnitude summary uses population std", func(t *testing.T) {
		s, err := Stats(batch, FeatureMagnitude)
		require.NoError(t, err)
		assert.Equal(t, 4.0, s.Min)
		assert.Equal(t, 6.5, s.Max)
		assert.Equal(t, 5.25, s.Mean)
		assert.Equal(t, 1.25, s.Std) // ÷N, not N-1
	})

	t.Run("depth summary", func(t *testing.T) {
		s, err := Stats(batch, FeatureDepth)
		require.NoError(t, err)
		assert.Equal(t, 10.0, s.Min)
		assert.Equal(t, 80.0, s.Max)
		assert.Equal(t, 45.0, s.Mean)
		assert.Equal(t, 35.0, s.Std)
	})

	t.Run("single record has zero spread", func(t *testing.T) {
		one := NewBatch([]QuakeRecord{makeRecord("2014-03-20T00:00:00.000000Z", 33, 2.5)})
		s, err := Stats(one, FeatureDepth)
		require.NoError(t, err)
		assert.Equal(t, FeatureSummary{Min: 33, Max: 33, Mean: 33, Std: 0}, s)
	})

	t.Run("ordering invariant", func(t *testing.T) {
		for _, f := range []Feature{FeatureLatitude, FeatureLongitude, FeatureDepth, FeatureMagnitude} {
			s, err := Stats(batch, f)
			require.NoError(t, err)
			assert.LessOrEqual(t, s.Min, s.Mean, "feature %s", f)
			assert.LessOrEqual(t, s.Mean, s.Max, "feature %s", f)
			assert.GreaterOrEqual(t, s.Std, 0.0, "feature %s", f)
		}
	})

	t.Run("time column is excluded", func(t *testing.T) {
		_, err := Stats(batch, FeatureTime)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNonNumericFeature))
	})

	t.Run("unknown feature", func(t *testing.T) {
		_, err := Stats(batch, "velocity")
		var unknown *UnknownColumnError
		require.ErrorAs(t, err, &unknown)
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := Stats(NewBatch(nil), FeatureDepth)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyBatch))
	})
}

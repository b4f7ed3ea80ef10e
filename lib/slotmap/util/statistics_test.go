package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStats(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		stats := NewStats(nil)
		assert.Zero(t, stats.Mean)
		assert.Zero(t, stats.StdDeviation)
	})

	t.Run("Uniform", func(t *testing.T) {
		stats := NewStats([]float64{4, 4, 4, 4})
		assert.Equal(t, 4.0, stats.Mean)
		assert.Equal(t, 4.0, stats.Min)
		assert.Equal(t, 4.0, stats.Max)
		assert.Zero(t, stats.StdDeviation)
		assert.Equal(t, 1.0, stats.MinMaxRatio)
	})

	t.Run("Spread", func(t *testing.T) {
		stats := NewStats([]float64{2, 4, 4, 4, 5, 5, 7, 9})
		require.InDelta(t, 5.0, stats.Mean, 1e-9)
		require.InDelta(t, 2.0, stats.StdDeviation, 1e-9)
		assert.Equal(t, 2.0, stats.Min)
		assert.Equal(t, 9.0, stats.Max)
	})
}

func TestNewDistributionStats(t *testing.T) {
	t.Run("PerfectBalance", func(t *testing.T) {
		dist := NewDistributionStats([]float64{10, 10, 10, 10})
		assert.Equal(t, 1.0, dist.DistributionQuality)
	})

	t.Run("Skewed", func(t *testing.T) {
		balanced := NewDistributionStats([]float64{9, 10, 11, 10})
		skewed := NewDistributionStats([]float64{40, 0, 0, 0})
		assert.Greater(t, balanced.DistributionQuality, skewed.DistributionQuality)
	})

	t.Run("AllEmptyShards", func(t *testing.T) {
		dist := NewDistributionStats([]float64{0, 0, 0})
		// no entries means no variation, quality must not be NaN
		assert.False(t, dist.DistributionQuality != dist.DistributionQuality)
	})
}

func TestGenerateSeed(t *testing.T) {
	a := GenerateSeed()
	b := GenerateSeed()
	if a == b {
		t.Errorf("expected two generated seeds to differ, got %d twice", a)
	}
}

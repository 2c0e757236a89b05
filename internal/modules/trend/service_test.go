package trend

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeboard/internal/domain"
)

func entriesAt(start time.Time, weights ...float64) []domain.WeightEntry {
	entries := make([]domain.WeightEntry, len(weights))
	for i, w := range weights {
		entries[i] = domain.WeightEntry{Date: start.AddDate(0, 0, i), WeightKg: w}
	}
	return entries
}

func TestBuildTrend_RateFromLinearLoss(t *testing.T) {
	svc := NewService(zerolog.Nop())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	// Exactly 0.1 kg/day down
	entries := entriesAt(start, 90.0, 89.9, 89.8, 89.7, 89.6, 89.5, 89.4, 89.3)
	result := svc.BuildTrend(entries)
	require.NotNil(t, result)

	assert.InDelta(t, -0.7, result.RateKgPerWeek, 1e-9)
	require.Len(t, result.Points, 8)
}

func TestBuildTrend_SmoothingWarmup(t *testing.T) {
	svc := NewService(zerolog.Nop())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	entries := entriesAt(start, 90.0, 89.9, 89.8, 89.7, 89.6, 89.5, 89.4, 89.3)
	result := svc.BuildTrend(entries)
	require.NotNil(t, result)

	// First six points have no smoothed value yet
	for i := 0; i < smoothingPeriod-1; i++ {
		assert.Nil(t, result.Points[i].Smoothed, "point %d", i)
	}

	require.NotNil(t, result.Points[6].Smoothed)
	// Mean of 90.0 down to 89.4
	assert.InDelta(t, 89.7, *result.Points[6].Smoothed, 1e-9)
	require.NotNil(t, result.Points[7].Smoothed)
	assert.InDelta(t, 89.6, *result.Points[7].Smoothed, 1e-9)
}

func TestBuildTrend_ShortSeriesSkipsSmoothing(t *testing.T) {
	svc := NewService(zerolog.Nop())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	result := svc.BuildTrend(entriesAt(start, 90.0, 89.5, 89.2))
	require.NotNil(t, result)

	for _, p := range result.Points {
		assert.Nil(t, p.Smoothed)
	}
	assert.Less(t, result.RateKgPerWeek, 0.0)
}

func TestBuildTrend_HandlesIrregularSpacing(t *testing.T) {
	svc := NewService(zerolog.Nop())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	// Same 0.1 kg/day slope but a weigh-in gap in the middle
	entries := []domain.WeightEntry{
		{Date: start, WeightKg: 90.0},
		{Date: start.AddDate(0, 0, 2), WeightKg: 89.8},
		{Date: start.AddDate(0, 0, 7), WeightKg: 89.3},
	}
	result := svc.BuildTrend(entries)
	require.NotNil(t, result)
	assert.InDelta(t, -0.7, result.RateKgPerWeek, 1e-9)
}

func TestBuildTrend_InsufficientData(t *testing.T) {
	svc := NewService(zerolog.Nop())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, svc.BuildTrend(nil))
	assert.Nil(t, svc.BuildTrend(entriesAt(start, 90.0)))
}

func TestBuildTrend_SortsUnorderedInput(t *testing.T) {
	svc := NewService(zerolog.Nop())
	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	entries := []domain.WeightEntry{
		{Date: start.AddDate(0, 0, 3), WeightKg: 89.7},
		{Date: start, WeightKg: 90.0},
		{Date: start.AddDate(0, 0, 1), WeightKg: 89.9},
	}
	result := svc.BuildTrend(entries)
	require.NotNil(t, result)

	assert.Equal(t, start, result.Points[0].Date)
	assert.Equal(t, 90.0, result.Points[0].WeightKg)
	assert.InDelta(t, -0.7, result.RateKgPerWeek, 1e-6)
}

package projection

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifeboard/internal/domain"
)

func day(offset int) time.Time {
	return domain.Day(simToday).AddDate(0, 0, offset)
}

func serviceRequest() Request {
	return Request{
		Entries: []domain.WeightEntry{
			// Deliberately unordered: storage order is never trusted.
			{Date: day(-1), WeightKg: 90.2},
			{Date: day(-30), WeightKg: 93.0},
			{Date: day(-14), WeightKg: 91.5},
		},
		Logs: []domain.CalorieLog{
			{Date: day(-1), Calories: 2000},
			{Date: day(-2), Calories: 2000},
			{Date: day(-3), Calories: 2000},
		},
		Timeframe: Timeframe4Weeks,
		Adherence: 1.0,
		Today:     simToday,
	}
}

func TestBuildProjection(t *testing.T) {
	svc := NewService(zerolog.Nop())
	result := svc.BuildProjection(serviceRequest())

	require.NotNil(t, result)
	assert.Len(t, result.Points, 29, "4w timeframe is 28 days plus the anchor")
	assert.Equal(t, 90.2, result.StartWeightKg, "latest entry by date is the start, regardless of input order")
	assert.Equal(t, 2000.0, result.AvgDailyCalories)
	assert.Equal(t, 2435, result.BaseTDEE, "no profile falls back to weight x 27")
	assert.Equal(t, 435.0, result.InitialDeficit)
	assert.Equal(t, 90.2, result.Points[0].ProjectedWeight)
}

func TestBuildProjection_TimeframeHorizons(t *testing.T) {
	tests := []struct {
		tf   Timeframe
		days int
	}{
		{Timeframe4Weeks, 28},
		{Timeframe8Weeks, 56},
		{Timeframe12Weeks, 84},
		{Timeframe6Months, 182},
		{Timeframe1Year, 365},
	}

	svc := NewService(zerolog.Nop())
	for _, tt := range tests {
		t.Run(string(tt.tf), func(t *testing.T) {
			req := serviceRequest()
			req.Timeframe = tt.tf
			result := svc.BuildProjection(req)
			require.NotNil(t, result)
			assert.Len(t, result.Points, tt.days+1)
		})
	}
}

func TestBuildProjection_AbsentOnInsufficientData(t *testing.T) {
	svc := NewService(zerolog.Nop())

	t.Run("fewer than two weight entries", func(t *testing.T) {
		req := serviceRequest()
		req.Entries = req.Entries[:1]
		assert.Nil(t, svc.BuildProjection(req))
	})

	t.Run("no calorie logs in trailing window", func(t *testing.T) {
		req := serviceRequest()
		req.Logs = []domain.CalorieLog{{Date: day(-20), Calories: 2000}}
		assert.Nil(t, svc.BuildProjection(req))
	})

	t.Run("unknown timeframe", func(t *testing.T) {
		req := serviceRequest()
		req.Timeframe = "2d"
		assert.Nil(t, svc.BuildProjection(req))
	})
}

func TestBuildProjection_TrailingWindowExcludesStaleLogs(t *testing.T) {
	req := serviceRequest()
	req.Logs = append(req.Logs,
		domain.CalorieLog{Date: day(-20), Calories: 99999}, // outside the 14-day window
		domain.CalorieLog{Date: day(2), Calories: 99999},   // future-dated
	)

	result := NewService(zerolog.Nop()).BuildProjection(req)
	require.NotNil(t, result)
	assert.Equal(t, 2000.0, result.AvgDailyCalories)
}

func TestBuildProjection_DoesNotMutateInputs(t *testing.T) {
	req := serviceRequest()
	originalDates := []time.Time{req.Entries[0].Date, req.Entries[1].Date, req.Entries[2].Date}

	NewService(zerolog.Nop()).BuildProjection(req)

	for i, d := range originalDates {
		assert.True(t, req.Entries[i].Date.Equal(d), "caller slice order must be preserved")
	}
}

func TestBuildProjection_MarksMilestonesWhenGoalSet(t *testing.T) {
	req := serviceRequest()
	req.Timeframe = Timeframe12Weeks
	goal := 85.0
	req.GoalWeightKg = &goal

	result := NewService(zerolog.Nop()).BuildProjection(req)
	require.NotNil(t, result)

	var labels []string
	for _, p := range result.Points {
		if p.IsMilestone {
			labels = append(labels, p.MilestoneLabel)
		}
	}
	assert.NotEmpty(t, labels, "a steady deficit toward the goal must cross early milestones")
	assert.Contains(t, labels, "10% of the way")
}

func TestBuildProjection_Idempotent(t *testing.T) {
	svc := NewService(zerolog.Nop())
	req := serviceRequest()
	req.ShowBands = true
	goal := 85.0
	req.GoalWeightKg = &goal

	assert.Equal(t, svc.BuildProjection(req), svc.BuildProjection(req))
}

package scheduler

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/internal/modules/streaks"
	"github.com/lifeboard/internal/modules/tracking"
	"github.com/lifeboard/internal/modules/trend"
)

// DailySummaryJob logs a morning summary of the tracked data: current
// streak, observed weight trend, and how fresh the last weigh-in is.
type DailySummaryJob struct {
	log      zerolog.Logger
	weights  *tracking.WeightRepository
	habits   *streaks.Repository
	trend    *trend.Service
	lookback int
}

// NewDailySummaryJob creates a new daily summary job
func NewDailySummaryJob(
	weights *tracking.WeightRepository,
	habits *streaks.Repository,
	trendService *trend.Service,
	lookbackDays int,
	log zerolog.Logger,
) *DailySummaryJob {
	return &DailySummaryJob{
		log:      log.With().Str("job", "daily_summary").Logger(),
		weights:  weights,
		habits:   habits,
		trend:    trendService,
		lookback: lookbackDays,
	}
}

// Name returns the job name
func (j *DailySummaryJob) Name() string {
	return "daily_summary"
}

// Run computes and logs the summary
func (j *DailySummaryJob) Run() error {
	today := domain.Day(time.Now())

	dates, err := j.habits.LoggedDates(today.AddDate(0, 0, -j.lookback))
	if err != nil {
		return fmt.Errorf("daily summary: %w", err)
	}
	streak := streaks.CalculateStreak(dates, today, j.lookback)

	entries, err := j.weights.GetAll()
	if err != nil {
		return fmt.Errorf("daily summary: %w", err)
	}

	event := j.log.Info().
		Int("streak", streak.Count).
		Bool("grace_day_used", streak.GraceDayUsed).
		Int("weigh_ins", len(entries))

	if result := j.trend.BuildTrend(entries); result != nil {
		event = event.Float64("rate_kg_per_week", result.RateKgPerWeek)
	}
	if len(entries) > 0 {
		last := entries[len(entries)-1]
		event = event.Int("days_since_weigh_in", domain.DaysBetween(last.Date, today))
	}

	event.Msg("Daily summary")
	return nil
}

package trend

import (
	"time"

	"github.com/markcheno/go-talib"
	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/pkg/formulas"
)

// smoothingPeriod is the moving-average window over logged weights
const smoothingPeriod = 7

// Point is one observed weigh-in with its smoothed counterpart. Smoothed is
// nil inside the warmup window.
type Point struct {
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weight_kg"`
	Smoothed *float64  `json:"smoothed,omitempty"`
}

// Result is the observed weight trend: the smoothed series plus the
// regression-estimated rate of change
type Result struct {
	Points        []Point `json:"points"`
	RateKgPerWeek float64 `json:"rate_kg_per_week"`
}

// Service derives observed trends from logged weights
type Service struct {
	log zerolog.Logger
}

// NewService creates a trend service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "trend").Logger()}
}

// BuildTrend smooths the logged weights and fits the observed rate of
// change. Nil with fewer than two entries; a trend needs at least a pair.
func (s *Service) BuildTrend(entries []domain.WeightEntry) *Result {
	sorted := domain.SortedWeightEntries(entries)
	if len(sorted) < 2 {
		return nil
	}

	weights := make([]float64, len(sorted))
	days := make([]float64, len(sorted))
	for i, e := range sorted {
		weights[i] = e.WeightKg
		days[i] = float64(domain.DaysBetween(sorted[0].Date, e.Date))
	}

	var smoothed []float64
	if len(weights) >= smoothingPeriod {
		smoothed = talib.Sma(weights, smoothingPeriod)
	}

	points := make([]Point, len(sorted))
	for i, e := range sorted {
		points[i] = Point{Date: e.Date, WeightKg: e.WeightKg}
		if smoothed != nil && i >= smoothingPeriod-1 {
			v := smoothed[i]
			points[i].Smoothed = &v
		}
	}

	_, beta := formulas.LinearFit(days, weights)
	rate := beta * 7

	s.log.Debug().
		Int("entries", len(sorted)).
		Float64("rate_kg_per_week", rate).
		Msg("Trend built")

	return &Result{Points: points, RateKgPerWeek: rate}
}

package projection

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/internal/modules/metabolism"
	"github.com/lifeboard/internal/modules/trajectory"
	"github.com/lifeboard/pkg/formulas"
)

// Timeframe selects the projection horizon
type Timeframe string

const (
	Timeframe4Weeks  Timeframe = "4w"
	Timeframe8Weeks  Timeframe = "8w"
	Timeframe12Weeks Timeframe = "12w"
	Timeframe6Months Timeframe = "6m"
	Timeframe1Year   Timeframe = "1y"
)

// trailingIntakeDays is the window for the average-intake estimate
const trailingIntakeDays = 14

// ProjectionDays maps a timeframe selector to its horizon in days
func ProjectionDays(tf Timeframe) (int, bool) {
	switch tf {
	case Timeframe4Weeks:
		return 28, true
	case Timeframe8Weeks:
		return 56, true
	case Timeframe12Weeks:
		return 84, true
	case Timeframe6Months:
		return 182, true
	case Timeframe1Year:
		return 365, true
	}
	return 0, false
}

// Request carries the snapshots and knobs for one projection build.
// Today is explicit; the service has no ambient clock dependency.
type Request struct {
	Entries       []domain.WeightEntry
	Logs          []domain.CalorieLog
	Profile       *domain.UserProfile
	GoalWeightKg  *float64
	Timeframe     Timeframe
	Adherence     float64
	Adaptive      bool
	ShowBands     bool
	TargetDeficit *float64
	Today         time.Time
}

// Result is a finished projection plus the derived starting conditions
type Result struct {
	Points           []domain.ProjectionDataPoint `json:"points"`
	StartWeightKg    float64                      `json:"start_weight_kg"`
	BaseTDEE         int                          `json:"base_tdee"`
	AvgDailyCalories float64                      `json:"avg_daily_calories"`
	InitialDeficit   float64                      `json:"initial_deficit"`
}

// Service assembles simulator inputs from raw snapshots
type Service struct {
	log zerolog.Logger
}

// NewService creates a projection service
func NewService(log zerolog.Logger) *Service {
	return &Service{log: log.With().Str("service", "projection").Logger()}
}

// BuildProjection derives starting conditions from the supplied snapshots,
// runs the simulator, and attaches milestones when a goal is set.
//
// Nil means "not enough data yet": fewer than two weight entries, no calorie
// logs inside the trailing window, or an unknown timeframe. Input slices are
// never mutated.
func (s *Service) BuildProjection(req Request) *Result {
	days, ok := ProjectionDays(req.Timeframe)
	if !ok {
		return nil
	}

	entries := domain.SortedWeightEntries(req.Entries)
	if len(entries) < 2 {
		return nil
	}

	avgIntake, ok := trailingIntakeMean(req.Logs, req.Today)
	if !ok {
		return nil
	}

	startWeight := entries[len(entries)-1].WeightKg
	baseTDEE := metabolism.TDEEForProfile(startWeight, req.Profile, req.Today)

	input := SimulationInput{
		StartWeightKg:    startWeight,
		BaseTDEE:         baseTDEE,
		AvgDailyCalories: avgIntake,
		Adherence:        req.Adherence,
		Profile:          req.Profile,
		Days:             days,
		Adaptive:         req.Adaptive,
		TargetDeficit:    req.TargetDeficit,
		Today:            req.Today,
	}

	var points []domain.ProjectionDataPoint
	if req.ShowBands {
		points = SimulateWithBands(input)
	} else {
		points = Simulate(input)
	}

	if req.GoalWeightKg != nil {
		trajectory.MarkMilestones(points, startWeight, *req.GoalWeightKg)
	}

	s.log.Debug().
		Int("days", days).
		Float64("start_weight", startWeight).
		Int("base_tdee", baseTDEE).
		Float64("avg_intake", avgIntake).
		Msg("Projection built")

	return &Result{
		Points:           points,
		StartWeightKg:    startWeight,
		BaseTDEE:         baseTDEE,
		AvgDailyCalories: avgIntake,
		InitialDeficit:   input.InitialDeficit(),
	}
}

// trailingIntakeMean averages calorie logs dated within the trailing window
// ending today. False when the window holds no logs.
func trailingIntakeMean(logs []domain.CalorieLog, today time.Time) (float64, bool) {
	var calories []float64
	for _, l := range logs {
		age := domain.DaysBetween(l.Date, today)
		if age >= 0 && age < trailingIntakeDays {
			calories = append(calories, float64(l.Calories))
		}
	}
	if len(calories) == 0 {
		return 0, false
	}
	return formulas.Mean(calories), true
}

package trajectory

import (
	"math"
	"time"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/pkg/formulas"
)

// ProgressStatus classifies actual vs expected progress toward a goal
type ProgressStatus string

const (
	StatusAhead   ProgressStatus = "ahead"
	StatusOnTrack ProgressStatus = "on_track"
	StatusBehind  ProgressStatus = "behind"
	StatusNoGoal  ProgressStatus = "no_goal"
)

// onTrackToleranceKg is the band around the expected weight inside which
// progress counts as on track.
const onTrackToleranceKg = 0.5

// GoalETA is the estimated time until the goal weight is reached
type GoalETA struct {
	Days  int       `json:"days"`
	Weeks int       `json:"weeks"`
	Date  time.Time `json:"date"`
}

// TargetPoint is one day of the straight-line expected-weight trajectory
type TargetPoint struct {
	Date           time.Time `json:"date"`
	ExpectedWeight float64   `json:"expected_weight"`
}

// ProgressReport compares today's weight against the plan
type ProgressReport struct {
	TargetWeight float64        `json:"target_weight"`
	Difference   float64        `json:"difference"`
	Status       ProgressStatus `json:"status"`
}

// EstimateTimeToGoal returns the time needed to close the gap to the goal at
// the given daily deficit. Nil means the question is unanswerable: no goal,
// a zero deficit, or a deficit whose sign cannot move the weight in the
// required direction (a surplus cannot produce loss, and vice versa).
func EstimateTimeToGoal(currentWeight float64, goalWeight *float64, dailyDeficit float64, today time.Time) *GoalETA {
	if goalWeight == nil || dailyDeficit == 0 {
		return nil
	}

	toLose := currentWeight - *goalWeight
	if toLose > 0 && dailyDeficit < 0 {
		return nil
	}
	if toLose < 0 && dailyDeficit > 0 {
		return nil
	}

	days := int(math.Ceil(math.Abs(toLose) * formulas.EnergyPerKgKcal / math.Abs(dailyDeficit)))
	return &GoalETA{
		Days:  days,
		Weeks: int(math.Ceil(float64(days) / 7)),
		Date:  domain.Day(today).AddDate(0, 0, days),
	}
}

// TargetTrajectory builds the expected-weight-per-day line from the first
// ever weight entry toward the goal, assuming the daily deficit held from
// that first day forward. The line is clamped at the goal so it never
// overshoots. The series spans from the first entry through today plus
// horizonDays. Nil when there is no goal, no history, or the deficit cannot
// reach the goal.
func TargetTrajectory(entries []domain.WeightEntry, goalWeight *float64, dailyDeficit float64, horizonDays int, today time.Time) []TargetPoint {
	if goalWeight == nil || len(entries) == 0 || dailyDeficit == 0 {
		return nil
	}

	sorted := domain.SortedWeightEntries(entries)
	first := sorted[0]

	toLose := first.WeightKg - *goalWeight
	if (toLose > 0 && dailyDeficit < 0) || (toLose < 0 && dailyDeficit > 0) {
		return nil
	}

	start := domain.Day(first.Date)
	end := domain.Day(today).AddDate(0, 0, horizonDays)
	total := domain.DaysBetween(start, end)
	if total < 0 {
		return nil
	}

	points := make([]TargetPoint, 0, total+1)
	for d := 0; d <= total; d++ {
		points = append(points, TargetPoint{
			Date:           start.AddDate(0, 0, d),
			ExpectedWeight: expectedWeightAt(first.WeightKg, *goalWeight, dailyDeficit, d),
		})
	}
	return points
}

// CalculateTargetWeightToday classifies progress against the plan: where the
// weight should be today if the daily deficit had held since the first entry,
// versus where it actually is.
func CalculateTargetWeightToday(entries []domain.WeightEntry, goalWeight *float64, currentWeight, dailyDeficit float64, today time.Time) ProgressReport {
	if goalWeight == nil {
		return ProgressReport{TargetWeight: currentWeight, Difference: 0, Status: StatusNoGoal}
	}

	if len(entries) == 0 {
		return ProgressReport{TargetWeight: currentWeight, Difference: 0, Status: StatusOnTrack}
	}

	sorted := domain.SortedWeightEntries(entries)
	first := sorted[0]

	daysElapsed := domain.DaysBetween(first.Date, today)
	if daysElapsed <= 0 {
		return ProgressReport{TargetWeight: first.WeightKg, Difference: 0, Status: StatusOnTrack}
	}

	expected := expectedWeightAt(first.WeightKg, *goalWeight, dailyDeficit, daysElapsed)
	diff := currentWeight - expected

	status := StatusBehind
	switch {
	case math.Abs(diff) <= onTrackToleranceKg:
		status = StatusOnTrack
	case *goalWeight < first.WeightKg && currentWeight < expected:
		status = StatusAhead
	case *goalWeight > first.WeightKg && currentWeight > expected:
		status = StatusAhead
	}

	return ProgressReport{TargetWeight: expected, Difference: diff, Status: status}
}

// expectedWeightAt is the planned weight d days after the first entry,
// clamped so the line never passes the goal.
func expectedWeightAt(firstWeight, goalWeight, dailyDeficit float64, d int) float64 {
	expected := firstWeight - dailyDeficit*float64(d)/formulas.EnergyPerKgKcal
	if goalWeight < firstWeight && expected < goalWeight {
		return goalWeight
	}
	if goalWeight > firstWeight && expected > goalWeight {
		return goalWeight
	}
	return expected
}

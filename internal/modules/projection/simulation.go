package projection

import (
	"math"
	"time"

	"github.com/lifeboard/internal/domain"
	"github.com/lifeboard/internal/modules/metabolism"
	"github.com/lifeboard/pkg/formulas"
)

// Energy-balance constants.
const (
	// optimalDailySurplusKcal is the daily surplus at (or below) which lean
	// gain efficiency peaks.
	optimalDailySurplusKcal = 400.0

	// leanFractionAtOptimal and minLeanFraction bound the saturating curve
	// that splits surplus gains into lean vs fat mass.
	leanFractionAtOptimal = 0.70
	minLeanFraction       = 0.20
	leanFractionFalloff   = 1500.0

	// maxWeeklyLeanGainKg is the physiological weekly lean-gain ceiling at
	// five or more training days per week.
	maxWeeklyLeanGainKg = 0.2
)

// SimulationInput are the fully-determined inputs of one projection run.
// Today is explicit so runs are reproducible in tests and across renders.
type SimulationInput struct {
	StartWeightKg    float64
	BaseTDEE         int
	AvgDailyCalories float64
	Adherence        float64 // [0,1], scales the realized energy gap
	Profile          *domain.UserProfile
	Days             int // horizon; output has Days+1 points
	Adaptive         bool
	TargetDeficit    *float64 // overrides BaseTDEE − AvgDailyCalories as the anchored deficit
	Today            time.Time
}

// InitialDeficit is the deficit (positive) or surplus (negative) the run is
// anchored to when adaptive mode re-targets intake.
func (in SimulationInput) InitialDeficit() float64 {
	if in.TargetDeficit != nil {
		return *in.TargetDeficit
	}
	return float64(in.BaseTDEE) - in.AvgDailyCalories
}

// simState is the accumulator threaded through the day loop. All mutation
// during a run lives here; the package keeps no state between calls.
type simState struct {
	weight  float64
	tdee    int
	intake  float64
	cumLean float64
	cumFat  float64
}

// Simulate advances a day-by-day energy-balance projection over the horizon.
//
// Day 0 is the anchor: it emits the starting weight untouched. TDEE is
// re-estimated from the simulated weight every 7 days; in adaptive mode the
// intake target moves with it so the anchored deficit magnitude stays
// constant as expenditure drifts. In an overall surplus scenario each day's
// gain is partitioned into lean and fat mass; otherwise the whole gap is
// treated as fat-equivalent change.
func Simulate(in SimulationInput) []domain.ProjectionDataPoint {
	start := domain.Day(in.Today)
	initialDeficit := in.InitialDeficit()
	surplusScenario := in.AvgDailyCalories > float64(in.BaseTDEE)

	st := simState{
		weight: in.StartWeightKg,
		tdee:   in.BaseTDEE,
		intake: in.AvgDailyCalories,
	}

	points := make([]domain.ProjectionDataPoint, 0, in.Days+1)
	for d := 0; d <= in.Days; d++ {
		if d > 0 && d%7 == 0 {
			st.tdee = metabolism.ReestimateTDEE(st.weight, in.Profile, in.Today)
			if in.Adaptive {
				st.intake = float64(st.tdee) - initialDeficit
			}
		}

		gap := (float64(st.tdee) - st.intake) * in.Adherence

		if d > 0 {
			if surplusScenario && gap < 0 {
				applySurplusDay(&st, -gap, in.Profile)
			} else {
				st.weight -= gap / formulas.EnergyPerKgKcal
			}
		}

		point := domain.ProjectionDataPoint{
			Date:            start.AddDate(0, 0, d),
			ProjectedWeight: st.weight,
			TDEE:            st.tdee,
			TargetIntake:    int(math.Round(st.intake)),
		}
		if surplusScenario && d > 0 {
			lean, fat := st.cumLean, st.cumFat
			point.LeanMassEstimate = &lean
			point.FatMassEstimate = &fat
		}
		points = append(points, point)
	}

	return points
}

// applySurplusDay adds one day's surplus mass, split into lean and fat.
func applySurplusDay(st *simState, dailySurplus float64, profile *domain.UserProfile) {
	totalGain := dailySurplus / formulas.EnergyPerKgKcal

	leanGain := totalGain * leanFraction(dailySurplus)
	if leanCap := dailyLeanCap(trainingDays(profile)); leanGain > leanCap {
		leanGain = leanCap
	}
	fatGain := totalGain - leanGain

	st.weight += totalGain
	st.cumLean += leanGain
	st.cumFat += fatGain
}

// leanFraction is the saturating lean-gain efficiency curve: peak efficiency
// at or below the optimal surplus, then a linear falloff with a floor.
func leanFraction(dailySurplus float64) float64 {
	if dailySurplus <= optimalDailySurplusKcal {
		return leanFractionAtOptimal
	}
	frac := leanFractionAtOptimal - (dailySurplus-optimalDailySurplusKcal)/leanFractionFalloff
	return math.Max(minLeanFraction, frac)
}

// dailyLeanCap spreads the weekly lean-gain potential evenly across the
// week. Potential scales with training frequency, saturating at 5 days.
func dailyLeanCap(trainingDaysPerWeek int) float64 {
	scale := math.Min(float64(trainingDaysPerWeek)/5.0, 1.0)
	return maxWeeklyLeanGainKg * scale / 7.0
}

func trainingDays(profile *domain.UserProfile) int {
	if profile == nil {
		return 0
	}
	return profile.TrainingDaysPerWeek
}

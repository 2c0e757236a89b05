package metabolism

import (
	"math"
	"time"

	"github.com/lifeboard/internal/domain"
)

// activityMultipliers maps activity levels to their TDEE multiplier.
// Single source of truth for valid levels — also used for input validation
// at the profile endpoint.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// ValidActivityLevel reports whether level is a known activity level
func ValidActivityLevel(level domain.ActivityLevel) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// BMR computes basal metabolic rate via Mifflin-St Jeor.
// Pure arithmetic; assumes physically sensible inputs.
func BMR(weightKg, heightCm float64, ageYears int, sex domain.Sex) float64 {
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(ageYears)
	if sex == domain.SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr
}

// TDEE computes total daily energy expenditure in kcal/day.
// A positive override takes absolute precedence over the formula.
// Unknown activity levels fall back to the sedentary multiplier.
func TDEE(weightKg, heightCm float64, ageYears int, sex domain.Sex, activity domain.ActivityLevel, override *int) int {
	if override != nil && *override > 0 {
		return *override
	}
	mult, ok := activityMultipliers[activity]
	if !ok {
		mult = activityMultipliers[domain.ActivitySedentary]
	}
	return int(math.Round(BMR(weightKg, heightCm, ageYears, sex) * mult))
}

// EstimateBasicTDEE is the deliberately crude no-profile fallback:
// weight in kg times 27. It exists so the simulator never halts for
// lack of a profile.
func EstimateBasicTDEE(weightKg float64) int {
	return int(math.Round(weightKg * 27))
}

// Age returns calendar-correct age in whole years at the given date
func Age(birthDate, today time.Time) int {
	years := today.Year() - birthDate.Year()
	if today.Before(birthDate.AddDate(years, 0, 0)) {
		years--
	}
	return years
}

// TDEEForProfile resolves the starting TDEE for a body weight: the full
// formula when a profile is available (honoring any override), the basic
// estimate otherwise.
func TDEEForProfile(weightKg float64, profile *domain.UserProfile, today time.Time) int {
	if profile == nil {
		return EstimateBasicTDEE(weightKg)
	}
	return TDEE(weightKg, profile.HeightCm, Age(profile.BirthDate, today), profile.Sex, profile.ActivityLevel, profile.TDEEOverride)
}

// ReestimateTDEE recomputes TDEE from a simulated body weight.
// Only a profile without a manual override takes the formula path: an
// override pins the starting TDEE but carries no information about how
// expenditure shifts as weight changes, so re-estimation falls back to
// the weight-only heuristic, as does the no-profile case.
func ReestimateTDEE(weightKg float64, profile *domain.UserProfile, today time.Time) int {
	if profile != nil && profile.TDEEOverride == nil {
		return TDEE(weightKg, profile.HeightCm, Age(profile.BirthDate, today), profile.Sex, profile.ActivityLevel, nil)
	}
	return EstimateBasicTDEE(weightKg)
}

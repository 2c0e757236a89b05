package domain

import (
	"sort"
	"time"
)

// Sex is the biological sex used by the metabolic formulas
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel represents habitual daily activity
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// WeightEntry is a single weighed-in data point. The engine only reads these.
type WeightEntry struct {
	ID       string    `json:"id,omitempty"`
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weight_kg"`
}

// CalorieLog is one day's total calorie intake
type CalorieLog struct {
	ID       string    `json:"id,omitempty"`
	Date     time.Time `json:"date"`
	Calories int       `json:"calories"`
}

// UserProfile holds the body/profile data the metabolic calculator needs.
// A nil *UserProfile means the engine falls back to weight-only estimates.
type UserProfile struct {
	HeightCm            float64       `json:"height_cm"`
	BirthDate           time.Time     `json:"birth_date"`
	Sex                 Sex           `json:"sex"`
	ActivityLevel       ActivityLevel `json:"activity_level"`
	TrainingDaysPerWeek int           `json:"training_days_per_week"`
	TDEEOverride        *int          `json:"tdee_override,omitempty"`
}

// Day normalizes a timestamp to midnight UTC so calendar-day arithmetic
// is unambiguous regardless of the wall-clock time stored with an entry.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative if b < a)
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

// SortedWeightEntries returns a date-ascending copy of entries.
// Storage order is never trusted; callers' slices are never mutated.
func SortedWeightEntries(entries []WeightEntry) []WeightEntry {
	out := make([]WeightEntry, len(entries))
	copy(out, entries)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SortedCalorieLogs returns a date-ascending copy of logs
func SortedCalorieLogs(logs []CalorieLog) []CalorieLog {
	out := make([]CalorieLog, len(logs))
	copy(out, logs)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

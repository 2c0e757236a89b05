package streaks

import (
	"time"

	"github.com/lifeboard/internal/domain"
)

const (
	// DefaultLookbackDays bounds the backward scan
	DefaultLookbackDays = 30

	// displayDays bounds the recent-day detail returned for rendering
	displayDays = 14
)

// DayStatus tags one recent calendar day for display
type DayStatus struct {
	Date       time.Time `json:"date"`
	Logged     bool      `json:"logged"`
	IsGraceDay bool      `json:"is_grace_day"`
}

// StreakResult is the outcome of a continuity scan
type StreakResult struct {
	Count        int         `json:"count"`
	GraceDayUsed bool        `json:"grace_day_used"`
	RecentDays   []DayStatus `json:"recent_days"`
}

// CalculateStreak counts consecutive logged days scanning backward from
// today, forgiving at most one missed day.
//
// The scan is a linear state machine: streak count, a consecutive-miss
// counter, and a grace-spent flag. Today is checked first but an unlogged
// today never breaks anything — the day may simply not be over. A grace day
// bridges a single isolated gap only when a streak is already in progress
// and the day before the gap is itself logged; any other miss, or a second
// miss of any kind, terminates the scan.
func CalculateStreak(loggedDates []time.Time, today time.Time, lookbackDays int) StreakResult {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	logged := make(map[time.Time]bool, len(loggedDates))
	for _, d := range loggedDates {
		logged[domain.Day(d)] = true
	}

	anchor := domain.Day(today)

	var (
		streak    int
		missRun   int
		graceUsed bool
		graceDay  time.Time
	)

scan:
	for i := 0; i <= lookbackDays; i++ {
		day := anchor.AddDate(0, 0, -i)

		switch {
		case logged[day]:
			streak++
			missRun = 0
		case i == 0:
			// Today not yet logged: neither a miss nor a break.
		default:
			if streak == 0 {
				break scan
			}
			missRun++
			if missRun >= 2 || graceUsed {
				break scan
			}
			// Grace bridges the gap only when the day before it is logged.
			if !logged[anchor.AddDate(0, 0, -(i + 1))] {
				break scan
			}
			graceUsed = true
			graceDay = day
		}
	}

	recent := make([]DayStatus, 0, displayDays)
	for i := displayDays - 1; i >= 0; i-- {
		day := anchor.AddDate(0, 0, -i)
		recent = append(recent, DayStatus{
			Date:       day,
			Logged:     logged[day],
			IsGraceDay: graceUsed && day.Equal(graceDay),
		})
	}

	return StreakResult{
		Count:        streak,
		GraceDayUsed: graceUsed,
		RecentDays:   recent,
	}
}

package tracking

import (
	"time"

	"github.com/lifeboard/internal/domain"
)

// dateLayout is the storage format for calendar dates
const dateLayout = "2006-01-02"

// Profile is the stored user profile: the metabolic inputs plus the goal
// weight, which the engine takes separately from the profile itself.
type Profile struct {
	domain.UserProfile
	GoalWeightKg *float64 `json:"goal_weight_kg,omitempty"`
}

func formatDate(t time.Time) string {
	return domain.Day(t).Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

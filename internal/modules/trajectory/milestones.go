package trajectory

import (
	"fmt"
	"math"

	"github.com/lifeboard/internal/domain"
)

// milestoneFractions are the progress checkpoints flagged on a projection.
var milestoneFractions = []float64{0.10, 0.25, 0.50, 0.75, 1.00}

// milestoneTolerance is the ± window, in progress ratio, within which a
// point may claim a milestone. A simulation step that jumps clean over a
// window marks nothing for that milestone; that is the intended behavior,
// not a defect.
const milestoneTolerance = 0.05

// MarkMilestones flags at most one point per milestone fraction on the
// projected series. A point qualifies when the weight has moved in the goal
// direction and its progress ratio lands within the tolerance window; the
// first qualifying point claims the milestone and it is never reconsidered.
// Points already claimed by an earlier milestone are skipped, so each point
// carries at most one label.
func MarkMilestones(points []domain.ProjectionDataPoint, startWeight, goalWeight float64) {
	totalChange := goalWeight - startWeight
	if totalChange == 0 || len(points) == 0 {
		return
	}

	for _, fraction := range milestoneFractions {
		for i := range points {
			if points[i].IsMilestone {
				continue
			}
			// Positive when the weight has moved toward the goal.
			progress := (points[i].ProjectedWeight - startWeight) / totalChange
			if progress <= 0 {
				continue
			}
			if math.Abs(progress-fraction) <= milestoneTolerance {
				points[i].IsMilestone = true
				points[i].MilestoneLabel = milestoneLabel(fraction)
				break
			}
		}
	}
}

func milestoneLabel(fraction float64) string {
	if fraction >= 1.0 {
		return "Goal reached"
	}
	return fmt.Sprintf("%.0f%% of the way", fraction*100)
}

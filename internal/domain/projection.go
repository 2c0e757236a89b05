package domain

import "time"

// ProjectionDataPoint is one simulated day of a weight projection.
// TDEE and TargetIntake reflect the values in effect for that day — i.e.
// the most recent weekly re-estimation at or before it, not an
// instantaneous recalculation.
//
// Lean/fat running totals are present only in surplus scenarios (and never
// on day 0, the anchor point). Optimistic/pessimistic weights are present
// only when confidence bands were requested.
type ProjectionDataPoint struct {
	Date              time.Time `json:"date"`
	ProjectedWeight   float64   `json:"projected_weight"`
	TDEE              int       `json:"tdee"`
	TargetIntake      int       `json:"target_intake"`
	OptimisticWeight  *float64  `json:"optimistic_weight,omitempty"`
	PessimisticWeight *float64  `json:"pessimistic_weight,omitempty"`
	LeanMassEstimate  *float64  `json:"lean_mass_estimate,omitempty"`
	FatMassEstimate   *float64  `json:"fat_mass_estimate,omitempty"`
	IsMilestone       bool      `json:"is_milestone,omitempty"`
	MilestoneLabel    string    `json:"milestone_label,omitempty"`
}

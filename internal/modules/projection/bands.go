package projection

import "github.com/lifeboard/internal/domain"

// Confidence-band adherence offsets. Higher adherence realizes more of the
// planned gap, which is the favourable outcome in both deficit and surplus
// scenarios.
const (
	optimisticAdherenceDelta  = 0.10
	pessimisticAdherenceDelta = 0.25
)

// SimulateWithBands runs the realistic projection plus an optimistic and a
// pessimistic variant that share its starting conditions and differ only in
// adherence. The three series are merged into one: each day carries the
// realistic weight, TDEE, intake and body composition, with the alternate
// weights attached alongside.
func SimulateWithBands(in SimulationInput) []domain.ProjectionDataPoint {
	realistic := Simulate(in)

	optIn := in
	optIn.Adherence = clamp01(in.Adherence + optimisticAdherenceDelta)
	optimistic := Simulate(optIn)

	pessIn := in
	pessIn.Adherence = clamp01(in.Adherence - pessimisticAdherenceDelta)
	pessimistic := Simulate(pessIn)

	for i := range realistic {
		opt := optimistic[i].ProjectedWeight
		pess := pessimistic[i].ProjectedWeight
		realistic[i].OptimisticWeight = &opt
		realistic[i].PessimisticWeight = &pess
	}

	return realistic
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

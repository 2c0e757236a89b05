package formulas

import (
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// LinearFit fits y = alpha + beta*x by ordinary least squares.
// Used for observed weight-change rate estimation (x in days, y in kg).
func LinearFit(x, y []float64) (alpha, beta float64) {
	if len(x) < 2 || len(x) != len(y) {
		return 0, 0
	}
	return stat.LinearRegression(x, y, nil, false)
}

package sysmetrics

import "math"

// halfTolerance absorbs binary representation error when deciding whether a
// scaled value sits exactly on a .5 boundary (23.45*10 is 234.49999999999997).
const halfTolerance = 1e-9

// Round1 rounds v to the nearest 0.1, half away from zero.
func Round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scaled := v * 10
	whole := math.Trunc(scaled)
	frac := math.Abs(scaled - whole)
	if math.Abs(frac-0.5) < halfTolerance {
		return (whole + math.Copysign(1, scaled)) / 10
	}
	return math.Round(scaled) / 10
}

// Clamp bounds v to [0, 100]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Percent normalizes a raw percentage for storage: clamped to [0, 100]
// and rounded to one decimal.
func Percent(v float64) float64 {
	return Round1(Clamp(v))
}

// Ratio returns part/whole as a normalized percentage, or 0 when whole is
// not positive.
func Ratio(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return Percent(part / whole * 100)
}

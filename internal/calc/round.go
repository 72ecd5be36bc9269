package calc

import "math"

// snapLimit bounds the magnitudes for which representation error is snapped
// away before rounding; past it a float64 has no room left for nine extra
// decimal places.
const snapLimit = 1e6

// Round rounds x half away from zero to n decimal places.
//
// The scaled value is first snapped to nine decimal places so that results
// like 1.005*100 = 100.49999999999999 round the way the decimal input reads.
func Round(x float64, n int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	p := math.Pow(10, float64(n))
	scaled := x * p
	if math.Abs(scaled) < snapLimit {
		scaled = math.Round(scaled*1e9) / 1e9
	}
	return math.Round(scaled) / p
}

// RoundInt rounds x half away from zero to the nearest integer. It reports
// false when x is not finite or the result does not fit in an int.
func RoundInt(x float64) (int, bool) {
	r := Round(x, 0)
	if !finite(r) || r >= maxIntFloat || r < -maxIntFloat {
		return 0, false
	}
	return int(r), true
}

// maxIntFloat is 2^63, the first float64 past the int range.
const maxIntFloat = float64(1 << 63)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Package numeric holds the stateless math shared by every projection:
// angle normalization, eccentricity series, conformal latitude helpers,
// the iterative latitude solvers and the packed DMS angle codec.
package numeric

import "math"

const (
	// Epsilon is the general tolerance used by singularity tests.
	Epsilon = 1e-10

	HalfPi = math.Pi / 2
	TwoPi  = 2 * math.Pi

	// D2R converts degrees to radians, S2R arc seconds to radians.
	D2R = 1.745329251994328e-2
	R2D = 57.2957795131
	S2R = 4.848136811095359e-6

	maxLong = 2147483647
	dblLong = 4.61168601e18

	// maxAdjust caps the number of reduction passes in AdjustLon.
	maxAdjust = 4
)

// AdjustLon reduces an angle in radians to (-π, π].
//
// Small magnitudes are brought in by subtracting 2π; larger ones are divided
// by 2π scaled by one of three integer-safe tiers so the quotient never leaves
// the range of a 32-bit count. After maxAdjust passes the current value is
// returned as is: normalization never fails.
func AdjustLon(x float64) float64 {
	for i := 0; i < maxAdjust && math.Abs(x) > math.Pi; i++ {
		switch {
		case math.Trunc(math.Abs(x/math.Pi)) < 2:
			x -= Sign(x) * TwoPi
		case math.Trunc(math.Abs(x/TwoPi)) < maxLong:
			x -= math.Trunc(x/TwoPi) * TwoPi
		case math.Trunc(math.Abs(x/(maxLong*TwoPi))) < maxLong:
			x -= math.Trunc(x/(maxLong*TwoPi)) * (TwoPi * maxLong)
		case math.Trunc(math.Abs(x/(dblLong*TwoPi))) < maxLong:
			x -= math.Trunc(x/(dblLong*TwoPi)) * (TwoPi * dblLong)
		default:
			x -= Sign(x) * TwoPi
		}
	}
	if x == -math.Pi {
		x = math.Pi
	}
	return x
}

// Asinz is math.Asin with the argument clamped to [-1, 1], absorbing the
// roundoff that would otherwise yield NaN.
func Asinz(con float64) float64 {
	if math.Abs(con) > 1 {
		if con > 1 {
			con = 1
		} else {
			con = -1
		}
	}
	return math.Asin(con)
}

// Sign returns -1 for negative x and 1 otherwise.
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// CalcUTMZone returns the UTM zone containing the longitude, in degrees.
func CalcUTMZone(lon float64) int {
	return int((lon+180)/6 + 1)
}

package numeric

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoConvergence is returned when a latitude solver exhausts its
	// iteration cap.
	ErrNoConvergence = errors.New("latitude iteration did not converge")

	// ErrInfeasible is returned when a solver step would divide by zero.
	ErrInfeasible = errors.New("latitude iteration has no solution")
)

// fixedPointTol is the step size at which Phi2z and Phi3z stop.
const fixedPointTol = 1e-12

// Phi1z recovers latitude from the authalic q term (Albers inverse).
func Phi1z(eccent, qs float64) (float64, error) {
	phi := Asinz(0.5 * qs)
	if eccent < Epsilon {
		return phi, nil
	}
	eccnts := eccent * eccent
	for i := 1; i <= 25; i++ {
		sinpi, cospi := math.Sincos(phi)
		con := eccent * sinpi
		com := 1 - con*con
		dphi := 0.5 * com * com / cospi * (qs/(1-eccnts) - sinpi/com +
			0.5/eccent*math.Log((1-con)/(1+con)))
		phi += dphi
		if math.Abs(dphi) <= 1e-7 {
			return phi, nil
		}
	}
	return 0, fmt.Errorf("phi1z: %w", ErrNoConvergence)
}

// Phi2z recovers latitude from the small-t conformal term (Lambert
// conformal conic, Mercator, polar stereographic and oblique Mercator).
func Phi2z(eccent, ts float64) (float64, error) {
	eccnth := 0.5 * eccent
	phi := HalfPi - 2*math.Atan(ts)
	for i := 0; i <= 15; i++ {
		con := eccent * math.Sin(phi)
		dphi := HalfPi - 2*math.Atan(ts*math.Pow((1-con)/(1+con), eccnth)) - phi
		phi += dphi
		if math.Abs(dphi) <= fixedPointTol {
			return phi, nil
		}
	}
	return 0, fmt.Errorf("phi2z: %w", ErrNoConvergence)
}

// Phi3z inverts the meridian arc series: it finds phi with
// Mlfn(e0, e1, e2, e3, phi) == ml.
func Phi3z(ml, e0, e1, e2, e3 float64) (float64, error) {
	phi := ml
	for i := 0; i < 15; i++ {
		dphi := (ml+e1*math.Sin(2*phi)-e2*math.Sin(4*phi)+e3*math.Sin(6*phi))/e0 - phi
		phi += dphi
		if math.Abs(dphi) <= fixedPointTol {
			return phi, nil
		}
	}
	return 0, fmt.Errorf("phi3z: %w", ErrNoConvergence)
}

// Phi4z solves the polyconic inverse for latitude by Newton-Raphson. es is
// the squared eccentricity; a and b are the normalized inverse terms
// A = ml0 + y/a and B = A² + (x/a)². It also returns c = tanφ·√(1 − es·sin²φ),
// which the caller needs for the longitude.
func Phi4z(es, e0, e1, e2, e3, a, b float64) (phi, c float64, err error) {
	phi = a
	for i := 1; i <= 15; i++ {
		sinphi := math.Sin(phi)
		c = math.Tan(phi) * math.Sqrt(1-es*sinphi*sinphi)
		sin2ph := math.Sin(2 * phi)
		if c == 0 || sin2ph == 0 {
			return 0, 0, fmt.Errorf("phi4z: %w", ErrInfeasible)
		}
		ml := e0*phi - e1*sin2ph + e2*math.Sin(4*phi) - e3*math.Sin(6*phi)
		mlp := e0 - 2*e1*math.Cos(2*phi) + 4*e2*math.Cos(4*phi) - 6*e3*math.Cos(6*phi)
		con1 := 2*ml + c*(ml*ml+b) - 2*a*(c*ml+1)
		con2 := es * sin2ph * (ml*ml + b - 2*a*ml) / (2 * c)
		con3 := 2*(a-ml)*(c*mlp-2/sin2ph) - 2*mlp
		if con2+con3 == 0 {
			return 0, 0, fmt.Errorf("phi4z: %w", ErrInfeasible)
		}
		dphi := con1 / (con2 + con3)
		phi += dphi
		if math.Abs(dphi) <= 1e-10 {
			return phi, c, nil
		}
	}
	return 0, 0, fmt.Errorf("phi4z: %w", ErrNoConvergence)
}

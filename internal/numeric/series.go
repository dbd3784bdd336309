package numeric

import "math"

// E0fn through E3fn are the coefficients of the meridian arc series in the
// squared eccentricity x.
func E0fn(x float64) float64 { return 1 - 0.25*x*(1+x/16*(3+1.25*x)) }
func E1fn(x float64) float64 { return 0.375 * x * (1 + 0.25*x*(1+0.46875*x)) }
func E2fn(x float64) float64 { return 0.05859375 * x * x * (1 + 0.75*x) }
func E3fn(x float64) float64 { return x * x * x * (35.0 / 3072.0) }

// E4fn is the polar stereographic scale term for eccentricity x.
func E4fn(x float64) float64 {
	con := 1 + x
	com := 1 - x
	return math.Sqrt(math.Pow(con, con) * math.Pow(com, com))
}

// Mlfn is the meridian distance from the equator to phi, divided by the
// semi-major axis.
func Mlfn(e0, e1, e2, e3, phi float64) float64 {
	return e0*phi - e1*math.Sin(2*phi) + e2*math.Sin(4*phi) - e3*math.Sin(6*phi)
}

// Msfnz computes the small-m scale term from eccentricity, sin and cos of
// the latitude.
func Msfnz(eccent, sinphi, cosphi float64) float64 {
	con := eccent * sinphi
	return cosphi / math.Sqrt(1-con*con)
}

// Qsfnz computes the authalic q term used by the equal-area conics.
func Qsfnz(eccent, sinphi float64) float64 {
	if eccent > 1.0e-7 {
		con := eccent * sinphi
		return (1 - eccent*eccent) * (sinphi/(1-con*con) -
			(0.5/eccent)*math.Log((1-con)/(1+con)))
	}
	return 2 * sinphi
}

// Tsfnz computes the small-t conformal term at latitude phi.
func Tsfnz(eccent, phi, sinphi float64) float64 {
	con := eccent * sinphi
	com := 0.5 * eccent
	con = math.Pow((1-con)/(1+con), com)
	return math.Tan(0.5*(HalfPi-phi)) / con
}

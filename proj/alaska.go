package proj

import (
	"math"
	"math/cmplx"

	"github.com/pspoerri/gctp/internal/numeric"
)

// Alaska conformal is an oblique stereographic projection on the Clarke 1866
// eccentricity, followed by a sixth-order complex polynomial that spreads the
// scale error over the state.
var alaskaCoef = [6]complex128{
	complex(0.9945303, 0),
	complex(0.0052083, -0.0027404),
	complex(0.0072721, 0.0048181),
	complex(-0.0151089, -0.1932526),
	complex(0.0642675, -0.1381226),
	complex(0.3582802, -0.2884586),
}

const (
	alaskaEs      = 0.006768657997291094
	alaskaLon     = -152 * numeric.D2R
	alaskaLat     = 64 * numeric.D2R
	alaskaMaxIter = 20
)

type alaska struct {
	origin
	e          float64
	sinp, cosp float64 // of the conformal latitude of the center
}

func newAlaska(cfg *Config) *alaska {
	al := &alaska{origin: newOrigin(cfg), e: math.Sqrt(alaskaEs)}
	al.lon0, al.lat0 = alaskaLon, alaskaLat
	al.sinp, al.cosp = math.Sincos(al.conformal(al.lat0))
	return al
}

func (al *alaska) conformal(lat float64) float64 {
	esphi := al.e * math.Sin(lat)
	return 2*math.Atan(math.Tan((numeric.HalfPi+lat)/2)*
		math.Pow((1-esphi)/(1+esphi), al.e/2)) - numeric.HalfPi
}

// alaskaPoly evaluates the mapping polynomial and its derivative at z by
// Horner's rule.
func alaskaPoly(z complex128) (f, df complex128) {
	var p, dp complex128
	for k := len(alaskaCoef) - 1; k >= 0; k-- {
		dp = dp*z + p
		p = p*z + alaskaCoef[k]
	}
	return p * z, p + dp*z
}

func (al *alaska) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - al.lon0)
	sinlon, coslon := math.Sincos(dlon)
	sinphi, cosphi := math.Sincos(al.conformal(lat))
	g := al.sinp*sinphi + al.cosp*cosphi*coslon
	if math.Abs(g+1) <= numeric.Epsilon {
		return 0, 0, pointError(237, ErrAntipodalPoint)
	}
	s := 2 / (1 + g)
	z := complex(s*cosphi*sinlon, s*(al.cosp*sinphi-al.sinp*cosphi*coslon))

	w, _ := alaskaPoly(z)
	return real(w)*al.a + al.fe, imag(w)*al.a + al.fn, nil
}

func (al *alaska) inverse(x, y float64) (lon, lat float64, err error) {
	w := complex((x-al.fe)/al.a, (y-al.fn)/al.a)

	// Newton-Raphson on the polynomial to recover the stereographic point.
	z := w
	for n := 0; ; n++ {
		f, df := alaskaPoly(z)
		dz := -(f - w) / df
		z += dz
		if math.Abs(real(dz))+math.Abs(imag(dz)) <= numeric.Epsilon {
			break
		}
		if n >= alaskaMaxIter || cmplx.IsNaN(z) {
			return 0, 0, pointError(235, ErrNonConvergence)
		}
	}

	xp, yp := real(z), imag(z)
	rh := math.Hypot(xp, yp)
	if rh <= numeric.Epsilon {
		return al.lon0, al.lat0, nil
	}
	sinz, cosz := math.Sincos(2 * math.Atan(rh/2))
	chi := numeric.Asinz(cosz*al.sinp + yp*sinz*al.cosp/rh)

	phi := chi
	for n := 0; ; n++ {
		esphi := al.e * math.Sin(phi)
		dphi := 2*math.Atan(math.Tan((numeric.HalfPi+chi)/2)*
			math.Pow((1+esphi)/(1-esphi), al.e/2)) - numeric.HalfPi - phi
		phi += dphi
		if math.Abs(dphi) <= numeric.Epsilon {
			break
		}
		if n >= alaskaMaxIter {
			return 0, 0, pointError(236, ErrNonConvergence)
		}
	}

	lon = numeric.AdjustLon(al.lon0 + math.Atan2(xp*sinz, rh*al.cosp*cosz-yp*al.sinp*sinz))
	return lon, phi, nil
}

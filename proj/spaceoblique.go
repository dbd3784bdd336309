package proj

import (
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// landsatRatio bounds the transformed longitude of one orbit, in units of π.
const landsatRatio = 0.5201613

// spaceOblique is the Space Oblique Mercator projection for a near-polar
// satellite orbit. Mode 0 takes the orbit of a Landsat satellite and path;
// any other mode takes the inclination and period directly.
type spaceOblique struct {
	origin
	p21            float64 // period over the Earth's rotation period
	sa, ca         float64 // sine and cosine of the inclination
	w, q, t, u, xj float64
	a2, a4, bs     float64 // x series; bs is the linear term
	c1, c3         float64 // y series
	startLate      bool
}

func newSpaceOblique(cfg *Config) (formula, error) {
	so := &spaceOblique{origin: newOrigin(cfg), startLate: cfg.StartFlag}

	var alf float64
	if cfg.Mode != 0 {
		if !(cfg.Period > 0) {
			return nil, configError(213, fmt.Errorf("orbit period %v: %w", cfg.Period, ErrInvalidParameter))
		}
		alf = cfg.Inclination
		so.p21 = cfg.Period / 1440
	} else {
		if cfg.Satellite < 1 || cfg.Satellite > 5 || cfg.Path < 1 {
			return nil, configError(213, fmt.Errorf("satellite %d path %d: %w", cfg.Satellite, cfg.Path, ErrInvalidParameter))
		}
		if cfg.Satellite < 4 {
			if cfg.Path > 251 {
				return nil, configError(213, fmt.Errorf("path %d: %w", cfg.Path, ErrInvalidParameter))
			}
			alf = 99.092 * numeric.D2R
			so.p21 = 103.2669323 / 1440
			so.lon0 = (128.87 - 360.0/251*float64(cfg.Path)) * numeric.D2R
		} else {
			if cfg.Path > 233 {
				return nil, configError(213, fmt.Errorf("path %d: %w", cfg.Path, ErrInvalidParameter))
			}
			alf = 98.2 * numeric.D2R
			so.p21 = 98.8841202 / 1440
			so.lon0 = (129.30 - 360.0/233*float64(cfg.Path)) * numeric.D2R
		}
		so.startLate = false
	}

	so.sa, so.ca = math.Sincos(alf)
	if math.Abs(so.ca) < 1e-9 {
		so.ca = 1e-9
	}
	e2c := so.es * so.ca * so.ca
	e2s := so.es * so.sa * so.sa
	oneEs := 1 - so.es
	so.w = (1-e2c)/oneEs*((1-e2c)/oneEs) - 1
	so.q = e2s / oneEs
	so.t = e2s * (2 - so.es) / (oneEs * oneEs)
	so.u = e2c / oneEs
	so.xj = oneEs * oneEs * oneEs

	// Simpson's rule over 0..90° in 9° steps for the Fourier coefficients.
	var sumA2, sumA4, sumB, sumC1, sumC3 float64
	for i := 0; i <= 10; i++ {
		weight := 2.0
		switch {
		case i == 0 || i == 10:
			weight = 1
		case i%2 == 1:
			weight = 4
		}
		b, a2, a4, c1, c3 := so.series(float64(9*i) * numeric.D2R)
		sumA2 += weight * a2
		sumA4 += weight * a4
		sumB += weight * b
		sumC1 += weight * c1
		sumC3 += weight * c3
	}
	so.a2 = sumA2 / 30
	so.a4 = sumA4 / 60
	so.bs = sumB / 30
	so.c1 = sumC1 / 15
	so.c3 = sumC3 / 45
	return so, nil
}

// s is the orbit's skew term at transformed longitude tlam.
func (so *spaceOblique) s(tlam float64) float64 {
	sd := math.Sin(tlam)
	sdsq := sd * sd
	return so.p21 * so.sa * math.Cos(tlam) *
		math.Sqrt((1+so.t*sdsq)/((1+so.w*sdsq)*(1+so.q*sdsq)))
}

func (so *spaceOblique) series(dlam float64) (b, a2, a4, c1, c3 float64) {
	sd := math.Sin(dlam)
	sdsq := sd * sd
	s := so.s(dlam)
	h := math.Sqrt((1+so.q*sdsq)/(1+so.w*sdsq)) *
		((1+so.w*sdsq)/((1+so.q*sdsq)*(1+so.q*sdsq)) - so.p21*so.ca)
	sq := math.Sqrt(so.xj*so.xj + s*s)
	b = (h*so.xj - s*s) / sq
	a2 = b * math.Cos(2*dlam)
	a4 = b * math.Cos(4*dlam)
	fc := s * (h + so.xj) / sq
	c1 = fc * math.Cos(dlam)
	c3 = fc * math.Cos(3*dlam)
	return b, a2, a4, c1, c3
}

const spaceObliqueTol = 1e-12

func (so *spaceOblique) forward(lon, lat float64) (x, y float64, err error) {
	lat = max(-1.570796, min(lat, 1.570796))
	dlon := lon - so.lon0

	tlamp := numeric.HalfPi
	if so.startLate {
		tlamp = 2.5 * math.Pi
	}
	if lat < 0 {
		tlamp = 1.5 * math.Pi
	}

	rlm := math.Pi * landsatRatio
	rlm2 := rlm + numeric.TwoPi
	var tlam, xlamt float64
	for n := 0; ; {
		xlamp := dlon + so.p21*tlamp
		scl := 1.0
		if math.Cos(xlamp) < 0 {
			scl = -1
		}
		ab2 := tlamp - scl*math.Sin(tlamp)*numeric.HalfPi

		sav := tlamp
		for l := 0; ; l++ {
			if l > 50 {
				return 0, 0, pointError(216, ErrNonConvergence)
			}
			xlamt = dlon + so.p21*sav
			c := math.Cos(xlamt)
			if math.Abs(c) < 1e-7 {
				xlamt -= 1e-7
			}
			xlam := ((1-so.es)*math.Tan(lat)*so.sa + math.Sin(xlamt)*so.ca) / c
			tlam = math.Atan(xlam) + ab2
			if math.Abs(math.Abs(sav)-math.Abs(tlam)) < spaceObliqueTol {
				break
			}
			sav = tlam
		}

		n++
		if n >= 3 || (tlam > rlm && tlam < rlm2) {
			break
		}
		if tlam < rlm {
			tlamp = 2.5 * math.Pi
		}
		if tlam >= rlm2 {
			tlamp = numeric.HalfPi
		}
	}

	dp := math.Sin(lat)
	tphi := math.Asin(((1-so.es)*so.ca*dp - so.sa*math.Cos(lat)*math.Sin(xlamt)) /
		math.Sqrt(1-so.es*dp*dp))

	tanlg := math.Log(math.Tan(math.Pi/4 + tphi/2))
	s := so.s(tlam)
	d := math.Sqrt(so.xj*so.xj + s*s)
	x = so.a * (so.bs*tlam + so.a2*math.Sin(2*tlam) + so.a4*math.Sin(4*tlam) - tanlg*s/d)
	y = so.a * (so.c1*math.Sin(tlam) + so.c3*math.Sin(3*tlam) + tanlg*so.xj/d)
	return x + so.fe, y + so.fn, nil
}

func (so *spaceOblique) inverse(x, y float64) (lon, lat float64, err error) {
	x -= so.fe
	y -= so.fn

	tlon := x / (so.a * so.bs)
	var s float64
	for i := 0; ; i++ {
		if i >= 50 {
			return 0, 0, pointError(214, ErrNonConvergence)
		}
		sav := tlon
		s = so.s(tlon)
		blon := x/so.a + y/so.a*s/so.xj - so.a2*math.Sin(2*tlon) - so.a4*math.Sin(4*tlon) -
			s/so.xj*(so.c1*math.Sin(tlon)+so.c3*math.Sin(3*tlon))
		tlon = blon / so.bs
		if math.Abs(tlon-sav) < spaceObliqueTol {
			break
		}
	}

	st := math.Sin(tlon)
	defac := math.Exp(math.Sqrt(1+s*s/so.xj/so.xj) * (y/so.a - so.c1*st - so.c3*math.Sin(3*tlon)))
	tlat := 2 * (math.Atan(defac) - math.Pi/4)

	dd := st * st
	if math.Abs(math.Cos(tlon)) < 1e-7 {
		tlon -= 1e-7
	}
	bigk := math.Sin(tlat)
	bigk2 := bigk * bigk
	xlamt := math.Atan(((1-bigk2/(1-so.es))*math.Tan(tlon)*so.ca -
		bigk*so.sa*math.Sqrt((1+so.q*dd)*(1-bigk2)-bigk2*so.u)/math.Cos(tlon)) /
		(1 - bigk2*(1+so.u)))

	// Put xlamt in the quadrant of tlon.
	sl := 1.0
	if xlamt < 0 {
		sl = -1
	}
	scl := 1.0
	if math.Cos(tlon) < 0 {
		scl = -1
	}
	xlamt -= numeric.HalfPi * (1 - scl) * sl

	if math.Abs(so.sa) < 1e-7 {
		lat = math.Asin(bigk / math.Sqrt((1-so.es)*(1-so.es)+so.es*bigk2))
	} else {
		lat = math.Atan((math.Tan(tlon)*math.Cos(xlamt) - so.ca*math.Sin(xlamt)) / ((1 - so.es) * so.sa))
	}
	lon = numeric.AdjustLon(xlamt - so.p21*tlon + so.lon0)
	return lon, lat, nil
}

package proj

import (
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// Constants of the Mollweide ellipse: x = mollX·R·Δλ·cos θ, y = mollY·R·sin θ.
const (
	mollX = 0.900316316158
	mollY = 1.4142135623731
)

// auxTheta solves θ + sin θ = c·sin φ by Newton-Raphson and returns θ/2.
// At the poles the root is a triple one where Newton crawls, so it is
// answered directly when c is π.
func auxTheta(lat, c float64, maxIter int) (float64, bool) {
	if c == math.Pi && numeric.HalfPi-math.Abs(lat) < numeric.Epsilon {
		return numeric.Sign(lat) * numeric.HalfPi, true
	}
	theta := lat
	con := c * math.Sin(lat)
	for i := 0; ; i++ {
		d := -(theta + math.Sin(theta) - con) / (1 + math.Cos(theta))
		theta += d
		if math.Abs(d) < numeric.Epsilon {
			return theta / 2, true
		}
		if i >= maxIter {
			return 0, false
		}
	}
}

// sinusoidal is the Sanson-Flamsteed sinusoidal projection.
type sinusoidal struct{ origin }

func newSinusoidal(cfg *Config) *sinusoidal { return &sinusoidal{newOrigin(cfg)} }

func (s *sinusoidal) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - s.lon0)
	x = s.r*dlon*math.Cos(lat) + s.fe
	y = s.r*lat + s.fn
	return x, y, nil
}

func (s *sinusoidal) inverse(x, y float64) (lon, lat float64, err error) {
	x -= s.fe
	y -= s.fn
	lat = y / s.r
	if math.Abs(lat) > numeric.HalfPi {
		return 0, 0, pointError(164, ErrOutOfRange)
	}
	if math.Abs(math.Abs(lat)-numeric.HalfPi) <= numeric.Epsilon {
		return s.lon0, lat, nil
	}
	return numeric.AdjustLon(s.lon0 + x/(s.r*math.Cos(lat))), lat, nil
}

// mollweide is the Mollweide homolographic projection.
type mollweide struct{ origin }

func newMollweide(cfg *Config) *mollweide { return &mollweide{newOrigin(cfg)} }

func (m *mollweide) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - m.lon0)
	theta, ok := auxTheta(lat, math.Pi, 50)
	if !ok {
		return 0, 0, pointError(241, ErrNonConvergence)
	}
	if numeric.HalfPi-math.Abs(lat) < numeric.Epsilon {
		dlon = 0
	}
	x = mollX*m.r*dlon*math.Cos(theta) + m.fe
	y = mollY*m.r*math.Sin(theta) + m.fn
	return x, y, nil
}

func (m *mollweide) inverse(x, y float64) (lon, lat float64, err error) {
	x -= m.fe
	y -= m.fn
	arg := y / (mollY * m.r)
	if math.Abs(arg) > 1+numeric.Epsilon {
		return 0, 0, pointError(242, ErrOutOfRange)
	}
	if math.Abs(arg) > 0.999999999999 {
		arg = numeric.Sign(arg) * 0.999999999999
	}
	theta := math.Asin(arg)
	dlon := x / (mollX * m.r * math.Cos(theta))
	if math.Abs(dlon) > math.Pi+numeric.Epsilon {
		return 0, 0, pointError(242, ErrOutOfRange)
	}
	lon = numeric.AdjustLon(m.lon0 + dlon)
	lat = numeric.Asinz((2*theta + math.Sin(2*theta)) / math.Pi)
	return lon, lat, nil
}

// wagnerIV is the Wagner IV (Putnins P2') projection.
type wagnerIV struct{ origin }

const wagnerIVC = 2.9604205062

func newWagnerIV(cfg *Config) *wagnerIV { return &wagnerIV{newOrigin(cfg)} }

func (w *wagnerIV) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - w.lon0)
	theta, ok := auxTheta(lat, wagnerIVC, 30)
	if !ok {
		return 0, 0, pointError(2, ErrNonConvergence)
	}
	x = 0.86310*w.r*dlon*math.Cos(theta) + w.fe
	y = 1.56548*w.r*math.Sin(theta) + w.fn
	return x, y, nil
}

func (w *wagnerIV) inverse(x, y float64) (lon, lat float64, err error) {
	x -= w.fe
	y -= w.fn
	arg := y / (1.56548 * w.r)
	if math.Abs(arg) > 1 {
		return 0, 0, pointError(282, ErrOutOfRange)
	}
	theta := math.Asin(arg)
	lon = numeric.AdjustLon(w.lon0 + x/(0.86310*w.r*math.Cos(theta)))
	lat = numeric.Asinz((2*theta + math.Sin(2*theta)) / wagnerIVC)
	return lon, lat, nil
}

// wagnerVII is the Wagner VII (Hammer-Wagner) projection.
type wagnerVII struct{ origin }

func newWagnerVII(cfg *Config) *wagnerVII { return &wagnerVII{newOrigin(cfg)} }

func (w *wagnerVII) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon-w.lon0) / 3
	s := 0.90631 * math.Sin(lat)
	c0 := math.Sqrt(1 - s*s)
	c1 := math.Sqrt(2 / (1 + c0*math.Cos(dlon)))
	x = 2.66723*w.r*c0*c1*math.Sin(dlon) + w.fe
	y = 1.24104*w.r*s*c1 + w.fn
	return x, y, nil
}

func (w *wagnerVII) inverse(x, y float64) (lon, lat float64, err error) {
	t1 := (x - w.fe) / 2.66723 / w.r
	t2 := (y - w.fn) / 1.24104 / w.r
	p := math.Hypot(t1, t2)
	if p <= numeric.Epsilon {
		return w.lon0, 0, nil
	}
	if p > 2 {
		return 0, 0, pointError(291, ErrOutOfRange)
	}
	c := 2 * numeric.Asinz(p/2)
	sinc, cosc := math.Sincos(c)
	lat = numeric.Asinz(t2 * sinc / (0.90631 * p))
	lon = numeric.AdjustLon(w.lon0 + 3*math.Atan2(t1*sinc, p*cosc))
	return lon, lat, nil
}

// hammer is the Hammer-Aitoff equal-area projection.
type hammer struct{ origin }

func newHammer(cfg *Config) *hammer { return &hammer{newOrigin(cfg)} }

func (h *hammer) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - h.lon0)
	sinphi, cosphi := math.Sincos(lat)
	fac := h.r * math.Sqrt2 / math.Sqrt(1+cosphi*math.Cos(dlon/2))
	x = h.fe + fac*2*cosphi*math.Sin(dlon/2)
	y = h.fn + fac*sinphi
	return x, y, nil
}

func (h *hammer) inverse(x, y float64) (lon, lat float64, err error) {
	x -= h.fe
	y -= h.fn
	rr := h.r * h.r
	rad := 4*rr - x*x/4 - y*y
	if rad < 2*rr-numeric.Epsilon*rr {
		// Outside the bounding ellipse x²/8 + y²/2 = R².
		return 0, 0, pointError(271, ErrOutOfRange)
	}
	fac := math.Sqrt(rad) / 2
	lon = numeric.AdjustLon(h.lon0 + 2*math.Atan2(x*fac, 2*rr-x*x/4-y*y))
	lat = numeric.Asinz(y * fac / rr)
	return lon, lat, nil
}

// vanDerGrinten is the Van der Grinten I projection.
type vanDerGrinten struct{ origin }

func newVanDerGrinten(cfg *Config) *vanDerGrinten { return &vanDerGrinten{newOrigin(cfg)} }

func (v *vanDerGrinten) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - v.lon0)
	if math.Abs(lat) <= numeric.Epsilon {
		return v.fe + v.r*dlon, v.fn, nil
	}

	theta := numeric.Asinz(2 * math.Abs(lat/math.Pi))
	if math.Abs(dlon) <= numeric.Epsilon || math.Abs(math.Abs(lat)-numeric.HalfPi) <= numeric.Epsilon {
		y = math.Pi * v.r * math.Tan(0.5*theta)
		if lat < 0 {
			y = -y
		}
		return v.fe, v.fn + y, nil
	}

	al := 0.5 * math.Abs(math.Pi/dlon-dlon/math.Pi)
	asq := al * al
	sinth, costh := math.Sincos(theta)
	g := costh / (sinth + costh - 1)
	gsq := g * g
	m := g * (2/sinth - 1)
	msq := m * m
	con := math.Pi * v.r * (al*(g-msq) + math.Sqrt(asq*(g-msq)*(g-msq)-(msq+asq)*(gsq-msq))) / (msq + asq)
	if dlon < 0 {
		con = -con
	}
	x = v.fe + con
	con = math.Abs(con / (math.Pi * v.r))
	y = math.Pi * v.r * sqrtPos(1-con*con-2*al*con)
	if lat < 0 {
		y = -y
	}
	return x, v.fn + y, nil
}

func (v *vanDerGrinten) inverse(x, y float64) (lon, lat float64, err error) {
	x -= v.fe
	y -= v.fn
	con := math.Pi * v.r
	xx := x / con
	yy := y / con
	xys := xx*xx + yy*yy
	if xys > 1+numeric.Epsilon {
		return 0, 0, pointError(191, ErrOutOfRange)
	}

	if math.Abs(yy) > numeric.Epsilon {
		c1 := -math.Abs(yy) * (1 + xys)
		c2 := c1 - 2*yy*yy + xx*xx
		c3 := -2*c1 + 1 + 2*yy*yy + xys*xys
		d := yy*yy/c3 + (2*c2*c2*c2/c3/c3/c3-9*c1*c2/c3/c3)/27
		a1 := (c1 - c2*c2/3/c3) / c3
		m1 := 2 * math.Sqrt(-a1/3)
		con = math.Max(-1, math.Min(1, ((3*d)/a1)/m1))
		th1 := math.Acos(con) / 3
		lat = (-m1*math.Cos(th1+math.Pi/3) - c2/3/c3) * math.Pi
		if y < 0 {
			lat = -lat
		}
	}

	if math.Abs(xx) < numeric.Epsilon {
		return v.lon0, lat, nil
	}
	lon = numeric.AdjustLon(v.lon0 + math.Pi*(xys-1+math.Sqrt(1+2*(xx*xx-yy*yy)+xys*xys))/2/xx)
	return lon, lat, nil
}

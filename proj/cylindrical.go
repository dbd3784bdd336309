package proj

import (
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// mercator is the ellipsoidal Mercator projection. The center latitude is
// the latitude of true scale.
type mercator struct {
	origin
	m1 float64
}

func newMercator(cfg *Config) (formula, error) {
	m := &mercator{origin: newOrigin(cfg)}
	sinphi, cosphi := math.Sincos(m.lat0)
	m.m1 = cosphi / math.Sqrt(1-m.es*sinphi*sinphi)
	if m.m1 < numeric.Epsilon {
		return nil, configError(51, fmt.Errorf("latitude of true scale %v: %w", m.lat0, ErrInvalidParameter))
	}
	return m, nil
}

func (m *mercator) forward(lon, lat float64) (x, y float64, err error) {
	if math.Abs(math.Abs(lat)-numeric.HalfPi) <= numeric.Epsilon {
		return 0, 0, pointError(52, ErrPoleSingularity)
	}
	ts := numeric.Tsfnz(m.e, lat, math.Sin(lat))
	x = m.fe + m.a*m.m1*numeric.AdjustLon(lon-m.lon0)
	y = m.fn - m.a*m.m1*math.Log(ts)
	return x, y, nil
}

func (m *mercator) inverse(x, y float64) (lon, lat float64, err error) {
	x -= m.fe
	y -= m.fn
	ts := math.Exp(-y / (m.a * m.m1))
	if lat, err = numeric.Phi2z(m.e, ts); err != nil {
		return 0, 0, solverError(2, err)
	}
	return numeric.AdjustLon(m.lon0 + x/(m.a*m.m1)), lat, nil
}

// miller is the Miller cylindrical projection.
type miller struct{ origin }

func newMiller(cfg *Config) *miller { return &miller{newOrigin(cfg)} }

func (m *miller) forward(lon, lat float64) (x, y float64, err error) {
	x = m.fe + m.r*numeric.AdjustLon(lon-m.lon0)
	y = m.fn + m.r*math.Log(math.Tan(math.Pi/4+lat/2.5))*1.25
	return x, y, nil
}

func (m *miller) inverse(x, y float64) (lon, lat float64, err error) {
	x -= m.fe
	y -= m.fn
	lon = numeric.AdjustLon(m.lon0 + x/m.r)
	lat = 2.5 * (math.Atan(math.Exp(y/m.r/1.25)) - math.Pi/4)
	return lon, lat, nil
}

// equirectangular is the equidistant cylindrical projection with the
// center latitude as the standard parallel.
type equirectangular struct {
	origin
	cos1 float64
}

func newEquirectangular(cfg *Config) *equirectangular {
	eq := &equirectangular{origin: newOrigin(cfg)}
	eq.cos1 = math.Cos(eq.lat0)
	return eq
}

func (eq *equirectangular) forward(lon, lat float64) (x, y float64, err error) {
	x = eq.fe + eq.r*numeric.AdjustLon(lon-eq.lon0)*eq.cos1
	y = eq.fn + eq.r*lat
	return x, y, nil
}

func (eq *equirectangular) inverse(x, y float64) (lon, lat float64, err error) {
	x -= eq.fe
	y -= eq.fn
	lat = y / eq.r
	if math.Abs(lat) > numeric.HalfPi {
		return 0, 0, pointError(174, ErrOutOfRange)
	}
	if eq.cos1 < numeric.Epsilon {
		return eq.lon0, lat, nil
	}
	return numeric.AdjustLon(eq.lon0 + x/(eq.r*eq.cos1)), lat, nil
}

// transverseMercator serves both Transverse Mercator and UTM. A sphere (or
// nearly one) switches to the closed spherical form.
type transverseMercator struct {
	origin
	k0             float64
	e0, e1, e2, e3 float64
	ml0, esp       float64
	spherical      bool
}

func newTransverseMercator(cfg *Config) (formula, error) {
	tm := &transverseMercator{origin: newOrigin(cfg), k0: cfg.ScaleFactor}
	if cfg.Kind == UTM {
		zone := cfg.Zone
		if zone < 0 {
			zone = -zone
		}
		if zone < 1 || zone > 60 {
			return nil, configError(11, fmt.Errorf("UTM zone %d: %w", cfg.Zone, ErrInvalidParameter))
		}
		tm.lon0 = float64(6*zone-183) * numeric.D2R
		tm.lat0 = 0
		tm.k0 = 0.9996
		tm.fe = 500000
		tm.fn = 0
		if cfg.Zone < 0 {
			tm.fn = 10000000
		}
	}
	if !(tm.k0 > 0) {
		return nil, configError(91, fmt.Errorf("scale factor %v: %w", tm.k0, ErrInvalidParameter))
	}

	tm.e0, tm.e1 = numeric.E0fn(tm.es), numeric.E1fn(tm.es)
	tm.e2, tm.e3 = numeric.E2fn(tm.es), numeric.E3fn(tm.es)
	tm.ml0 = tm.a * numeric.Mlfn(tm.e0, tm.e1, tm.e2, tm.e3, tm.lat0)
	tm.esp = tm.es / (1 - tm.es)
	tm.spherical = tm.es < 1e-5
	return tm, nil
}

func (tm *transverseMercator) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - tm.lon0)
	sinphi, cosphi := math.Sincos(lat)

	if tm.spherical {
		b := cosphi * math.Sin(dlon)
		if math.Abs(math.Abs(b)-1) < 1e-10 {
			return 0, 0, pointError(93, ErrPoleSingularity)
		}
		x = 0.5 * tm.a * tm.k0 * math.Log((1+b)/(1-b))
		con := math.Acos(math.Max(-1, math.Min(1, cosphi*math.Cos(dlon)/math.Sqrt(1-b*b))))
		if lat < 0 {
			con = -con
		}
		y = tm.a * tm.k0 * (con - tm.lat0)
		return x + tm.fe, y + tm.fn, nil
	}

	al := cosphi * dlon
	als := al * al
	c := tm.esp * cosphi * cosphi
	tq := math.Tan(lat)
	t := tq * tq
	n := tm.a / math.Sqrt(1-tm.es*sinphi*sinphi)
	ml := tm.a * numeric.Mlfn(tm.e0, tm.e1, tm.e2, tm.e3, lat)

	x = tm.k0*n*al*(1+als/6*(1-t+c+als/20*
		(5-18*t+t*t+72*c-58*tm.esp))) + tm.fe
	y = tm.k0*(ml-tm.ml0+n*tq*(als*(0.5+als/24*
		(5-t+9*c+4*c*c+als/30*(61-58*t+t*t+600*c-330*tm.esp))))) + tm.fn
	return x, y, nil
}

func (tm *transverseMercator) inverse(x, y float64) (lon, lat float64, err error) {
	x -= tm.fe
	y -= tm.fn

	if tm.spherical {
		f := math.Exp(x / (tm.a * tm.k0))
		g := 0.5 * (f - 1/f)
		temp := tm.lat0 + y/(tm.a*tm.k0)
		h := math.Cos(temp)
		lat = numeric.Asinz(math.Sqrt((1 - h*h) / (1 + g*g)))
		if temp < 0 {
			lat = -lat
		}
		if g == 0 && h == 0 {
			return tm.lon0, lat, nil
		}
		return numeric.AdjustLon(math.Atan2(g, h) + tm.lon0), lat, nil
	}

	phi, err := numeric.Phi3z((tm.ml0+y/tm.k0)/tm.a, tm.e0, tm.e1, tm.e2, tm.e3)
	if err != nil {
		return 0, 0, pointError(95, ErrNonConvergence)
	}
	if math.Abs(phi) >= numeric.HalfPi {
		return tm.lon0, numeric.HalfPi * numeric.Sign(y), nil
	}

	sinphi, cosphi := math.Sincos(phi)
	tanphi := math.Tan(phi)
	c := tm.esp * cosphi * cosphi
	cs := c * c
	t := tanphi * tanphi
	ts := t * t
	con := 1 - tm.es*sinphi*sinphi
	n := tm.a / math.Sqrt(con)
	r := n * (1 - tm.es) / con
	d := x / (n * tm.k0)
	ds := d * d

	lat = phi - (n*tanphi*ds/r)*(0.5-ds/24*(5+3*t+
		10*c-4*cs-9*tm.esp-ds/30*(61+90*t+
		298*c+45*ts-252*tm.esp-3*cs)))
	lon = numeric.AdjustLon(tm.lon0 + (d*(1-ds/6*(1+2*t+
		c-ds/20*(5-2*c+28*t-3*cs+8*tm.esp+
		24*ts)))/cosphi))
	return lon, lat, nil
}

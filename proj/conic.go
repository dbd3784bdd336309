package proj

import (
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// parallelsCheck rejects standard parallels that are equal and opposite:
// the cone constant is then undefined.
func parallelsCheck(code int, lat1, lat2 float64) error {
	if math.Abs(lat1+lat2) < numeric.Epsilon {
		return configError(code, fmt.Errorf("%w: %v and %v", ErrDegenerateParallels, lat1, lat2))
	}
	return nil
}

// coneBearing returns the radius from the cone apex and the bearing for
// planar offsets already measured from the apex, honoring the cone sign.
func coneBearing(x, y, ns float64) (rh, theta float64) {
	con := 1.0
	rh = math.Hypot(x, y)
	if ns < 0 {
		rh, con = -rh, -1
	}
	if rh != 0 {
		theta = math.Atan2(con*x, con*y)
	}
	return rh, theta
}

// albers is the Albers conical equal-area projection.
type albers struct {
	origin
	ns0, c, rh float64
}

func newAlbers(cfg *Config) (formula, error) {
	al := &albers{origin: newOrigin(cfg)}
	lat1, lat2 := cfg.StdParallel1, cfg.StdParallel2
	if err := parallelsCheck(31, lat1, lat2); err != nil {
		return nil, err
	}

	sin1, cos1 := math.Sincos(lat1)
	ms1 := numeric.Msfnz(al.e, sin1, cos1)
	qs1 := numeric.Qsfnz(al.e, sin1)
	sin2, cos2 := math.Sincos(lat2)
	ms2 := numeric.Msfnz(al.e, sin2, cos2)
	qs2 := numeric.Qsfnz(al.e, sin2)
	qs0 := numeric.Qsfnz(al.e, math.Sin(al.lat0))

	if math.Abs(lat1-lat2) > numeric.Epsilon {
		al.ns0 = (ms1*ms1 - ms2*ms2) / (qs2 - qs1)
	} else {
		al.ns0 = sin1
	}
	al.c = ms1*ms1 + al.ns0*qs1
	al.rh = al.a * sqrtPos(al.c-al.ns0*qs0) / al.ns0
	return al, nil
}

func (al *albers) forward(lon, lat float64) (x, y float64, err error) {
	qs := numeric.Qsfnz(al.e, math.Sin(lat))
	rh1 := al.a * sqrtPos(al.c-al.ns0*qs) / al.ns0
	theta := al.ns0 * numeric.AdjustLon(lon-al.lon0)
	x = rh1*math.Sin(theta) + al.fe
	y = al.rh - rh1*math.Cos(theta) + al.fn
	return x, y, nil
}

func (al *albers) inverse(x, y float64) (lon, lat float64, err error) {
	rh1, theta := coneBearing(x-al.fe, al.rh-y+al.fn, al.ns0)
	con := rh1 * al.ns0 / al.a
	qs := (al.c - con*con) / al.ns0

	if al.e >= 1e-10 {
		pole := 1 - 0.5*(1-al.es)*math.Log((1-al.e)/(1+al.e))/al.e
		if math.Abs(math.Abs(pole)-math.Abs(qs)) > 1e-10 {
			if lat, err = numeric.Phi1z(al.e, qs); err != nil {
				return 0, 0, solverError(1, err)
			}
		} else {
			lat = numeric.Sign(qs) * numeric.HalfPi
		}
	} else if lat, err = numeric.Phi1z(al.e, qs); err != nil {
		return 0, 0, solverError(1, err)
	}
	return numeric.AdjustLon(theta/al.ns0 + al.lon0), lat, nil
}

// lambertConformal is the Lambert conformal conic projection.
type lambertConformal struct {
	origin
	ns, f0, rh float64
}

func newLambertConformal(cfg *Config) (formula, error) {
	lc := &lambertConformal{origin: newOrigin(cfg)}
	lat1, lat2 := cfg.StdParallel1, cfg.StdParallel2
	if err := parallelsCheck(41, lat1, lat2); err != nil {
		return nil, err
	}

	sin1, cos1 := math.Sincos(lat1)
	ms1 := numeric.Msfnz(lc.e, sin1, cos1)
	ts1 := numeric.Tsfnz(lc.e, lat1, sin1)
	sin2, cos2 := math.Sincos(lat2)
	ms2 := numeric.Msfnz(lc.e, sin2, cos2)
	ts2 := numeric.Tsfnz(lc.e, lat2, sin2)
	ts0 := numeric.Tsfnz(lc.e, lc.lat0, math.Sin(lc.lat0))

	if math.Abs(lat1-lat2) > numeric.Epsilon {
		lc.ns = math.Log(ms1/ms2) / math.Log(ts1/ts2)
	} else {
		lc.ns = sin1
	}
	if lc.ns == 0 || math.IsNaN(lc.ns) {
		return nil, configError(42, fmt.Errorf("%w: no cone constant", ErrDegenerateParallels))
	}
	lc.f0 = ms1 / (lc.ns * math.Pow(ts1, lc.ns))
	lc.rh = lc.a * lc.f0 * math.Pow(ts0, lc.ns)
	return lc, nil
}

func (lc *lambertConformal) forward(lon, lat float64) (x, y float64, err error) {
	var rh1 float64
	if math.Abs(math.Abs(lat)-numeric.HalfPi) > numeric.Epsilon {
		ts := numeric.Tsfnz(lc.e, lat, math.Sin(lat))
		rh1 = lc.a * lc.f0 * math.Pow(ts, lc.ns)
	} else if lat*lc.ns <= 0 {
		return 0, 0, pointError(44, ErrPoleSingularity)
	}
	theta := lc.ns * numeric.AdjustLon(lon-lc.lon0)
	x = rh1*math.Sin(theta) + lc.fe
	y = lc.rh - rh1*math.Cos(theta) + lc.fn
	return x, y, nil
}

func (lc *lambertConformal) inverse(x, y float64) (lon, lat float64, err error) {
	rh1, theta := coneBearing(x-lc.fe, lc.rh-y+lc.fn, lc.ns)
	if rh1 != 0 || lc.ns > 0 {
		ts := math.Pow(rh1/(lc.a*lc.f0), 1/lc.ns)
		if lat, err = numeric.Phi2z(lc.e, ts); err != nil {
			return 0, 0, solverError(2, err)
		}
	} else {
		lat = -numeric.HalfPi
	}
	return numeric.AdjustLon(theta/lc.ns + lc.lon0), lat, nil
}

// equidistantConic is the equidistant conic projection, with one standard
// parallel (mode 0) or two.
type equidistantConic struct {
	origin
	e0, e1, e2, e3 float64
	ns, g, rh      float64
}

func newEquidistantConic(cfg *Config) (formula, error) {
	ec := &equidistantConic{origin: newOrigin(cfg)}
	ec.e0, ec.e1 = numeric.E0fn(ec.es), numeric.E1fn(ec.es)
	ec.e2, ec.e3 = numeric.E2fn(ec.es), numeric.E3fn(ec.es)
	lat1, lat2 := cfg.StdParallel1, cfg.StdParallel2

	sin1, cos1 := math.Sincos(lat1)
	ms1 := numeric.Msfnz(ec.e, sin1, cos1)
	ml1 := numeric.Mlfn(ec.e0, ec.e1, ec.e2, ec.e3, lat1)
	ec.ns = sin1
	if cfg.Mode != 0 {
		if err := parallelsCheck(81, lat1, lat2); err != nil {
			return nil, err
		}
		sin2, cos2 := math.Sincos(lat2)
		ms2 := numeric.Msfnz(ec.e, sin2, cos2)
		ml2 := numeric.Mlfn(ec.e0, ec.e1, ec.e2, ec.e3, lat2)
		if math.Abs(lat1-lat2) >= numeric.Epsilon {
			ec.ns = (ms1 - ms2) / (ml2 - ml1)
		}
	}
	if math.Abs(ec.ns) < numeric.Epsilon {
		return nil, configError(82, fmt.Errorf("%w: standard parallel on the equator", ErrDegenerateParallels))
	}
	ec.g = ml1 + ms1/ec.ns
	ml0 := numeric.Mlfn(ec.e0, ec.e1, ec.e2, ec.e3, ec.lat0)
	ec.rh = ec.a * (ec.g - ml0)
	return ec, nil
}

func (ec *equidistantConic) forward(lon, lat float64) (x, y float64, err error) {
	ml := numeric.Mlfn(ec.e0, ec.e1, ec.e2, ec.e3, lat)
	rh1 := ec.a * (ec.g - ml)
	theta := ec.ns * numeric.AdjustLon(lon-ec.lon0)
	x = ec.fe + rh1*math.Sin(theta)
	y = ec.fn + ec.rh - rh1*math.Cos(theta)
	return x, y, nil
}

func (ec *equidistantConic) inverse(x, y float64) (lon, lat float64, err error) {
	rh1, theta := coneBearing(x-ec.fe, ec.rh-y+ec.fn, ec.ns)
	ml := ec.g - rh1/ec.a
	if lat, err = numeric.Phi3z(ml, ec.e0, ec.e1, ec.e2, ec.e3); err != nil {
		return 0, 0, solverError(3, err)
	}
	return numeric.AdjustLon(ec.lon0 + theta/ec.ns), lat, nil
}

// polarStereographic is the ellipsoidal polar stereographic projection. The
// center latitude is the latitude of true scale; its sign picks the pole.
type polarStereographic struct {
	origin
	fac      float64
	secant   bool
	mcs, tcs float64
	e4       float64
}

func newPolarStereographic(cfg *Config) (formula, error) {
	ps := &polarStereographic{origin: newOrigin(cfg), fac: 1}
	ps.e4 = numeric.E4fn(ps.e)
	if ps.lat0 < 0 {
		ps.fac = -1
	}
	if math.Abs(math.Abs(ps.lat0)-numeric.HalfPi) > numeric.Epsilon {
		ps.secant = true
		con := ps.fac * ps.lat0
		sinphi, cosphi := math.Sincos(con)
		ps.mcs = numeric.Msfnz(ps.e, sinphi, cosphi)
		ps.tcs = numeric.Tsfnz(ps.e, con, sinphi)
	}
	return ps, nil
}

func (ps *polarStereographic) forward(lon, lat float64) (x, y float64, err error) {
	con1 := ps.fac * numeric.AdjustLon(lon-ps.lon0)
	con2 := ps.fac * lat
	if con2 <= -numeric.HalfPi+numeric.Epsilon {
		return 0, 0, pointError(61, ErrPoleSingularity)
	}
	ts := numeric.Tsfnz(ps.e, con2, math.Sin(con2))
	var rh float64
	if ps.secant {
		rh = ps.a * ps.mcs * ts / ps.tcs
	} else {
		rh = 2 * ps.a * ts / ps.e4
	}
	x = ps.fac*rh*math.Sin(con1) + ps.fe
	y = -ps.fac*rh*math.Cos(con1) + ps.fn
	return x, y, nil
}

func (ps *polarStereographic) inverse(x, y float64) (lon, lat float64, err error) {
	x = (x - ps.fe) * ps.fac
	y = (y - ps.fn) * ps.fac
	rh := math.Hypot(x, y)
	var ts float64
	if ps.secant {
		ts = rh * ps.tcs / (ps.a * ps.mcs)
	} else {
		ts = rh * ps.e4 / (ps.a * 2)
	}
	phi, err := numeric.Phi2z(ps.e, ts)
	if err != nil {
		return 0, 0, solverError(2, err)
	}
	lat = ps.fac * phi
	if rh == 0 {
		return ps.lon0, lat, nil
	}
	return numeric.AdjustLon(ps.fac*math.Atan2(x, -y) + ps.lon0), lat, nil
}

// polyconic is the American polyconic projection.
type polyconic struct {
	origin
	e0, e1, e2, e3 float64
	ml0            float64
}

func newPolyconic(cfg *Config) (formula, error) {
	pc := &polyconic{origin: newOrigin(cfg)}
	pc.e0, pc.e1 = numeric.E0fn(pc.es), numeric.E1fn(pc.es)
	pc.e2, pc.e3 = numeric.E2fn(pc.es), numeric.E3fn(pc.es)
	pc.ml0 = numeric.Mlfn(pc.e0, pc.e1, pc.e2, pc.e3, pc.lat0)
	return pc, nil
}

func (pc *polyconic) forward(lon, lat float64) (x, y float64, err error) {
	con := numeric.AdjustLon(lon - pc.lon0)
	if math.Abs(lat) <= 1e-7 {
		return pc.fe + pc.a*con, pc.fn - pc.a*pc.ml0, nil
	}
	sinphi, cosphi := math.Sincos(lat)
	ml := numeric.Mlfn(pc.e0, pc.e1, pc.e2, pc.e3, lat)
	ms := numeric.Msfnz(pc.e, sinphi, cosphi)
	con *= sinphi
	x = pc.fe + pc.a*ms*math.Sin(con)/sinphi
	y = pc.fn + pc.a*(ml-pc.ml0+ms*(1-math.Cos(con))/sinphi)
	return x, y, nil
}

func (pc *polyconic) inverse(x, y float64) (lon, lat float64, err error) {
	x -= pc.fe
	y -= pc.fn
	al := pc.ml0 + y/pc.a
	if math.Abs(al) <= 1e-7 {
		return numeric.AdjustLon(x/pc.a + pc.lon0), 0, nil
	}
	b := al*al + (x/pc.a)*(x/pc.a)
	lat, c, err := numeric.Phi4z(pc.es, pc.e0, pc.e1, pc.e2, pc.e3, al, b)
	if err != nil {
		return 0, 0, solverError(4, err)
	}
	return numeric.AdjustLon(numeric.Asinz(x*c/pc.a)/math.Sin(lat) + pc.lon0), lat, nil
}

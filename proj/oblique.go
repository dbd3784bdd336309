package proj

import (
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// obliqueMercator is the Hotine oblique Mercator projection. The central
// line is given either by an azimuth through the center (Mode != 0) or by
// two points on it.
type obliqueMercator struct {
	origin
	k0             float64
	bl, al, el     float64
	u              float64
	singam, cosgam float64
	sinaz, cosaz   float64
}

func newObliqueMercator(cfg *Config) (formula, error) {
	om := &obliqueMercator{origin: newOrigin(cfg), k0: cfg.ScaleFactor}
	if !(om.k0 > 0) {
		return nil, configError(201, fmt.Errorf("scale factor %v: %w", om.k0, ErrInvalidParameter))
	}

	sinlat0, coslat0 := math.Sincos(om.lat0)
	con := 1 - om.es*sinlat0*sinlat0
	com := math.Sqrt(1 - om.es)
	om.bl = math.Sqrt(1 + om.es*math.Pow(coslat0, 4)/(1-om.es))
	om.al = om.a * om.bl * om.k0 * com / con

	var d, f float64
	if math.Abs(om.lat0) < numeric.Epsilon {
		d, f, om.el = 1, 1, 1
	} else {
		ts := numeric.Tsfnz(om.e, om.lat0, sinlat0)
		d = om.bl * com / (coslat0 * math.Sqrt(con))
		f = d
		if d*d > 1 {
			if om.lat0 >= 0 {
				f = d + math.Sqrt(d*d-1)
			} else {
				f = d - math.Sqrt(d*d-1)
			}
		}
		om.el = f * math.Pow(ts, om.bl)
	}

	var gama, azimuth float64
	if cfg.Mode != 0 {
		alat := math.Abs(om.lat0)
		if alat <= numeric.Epsilon || math.Abs(alat-numeric.HalfPi) <= numeric.Epsilon {
			return nil, configError(201, fmt.Errorf("center latitude %v with azimuth form: %w", om.lat0, ErrInvalidParameter))
		}
		azimuth = cfg.Azimuth
		g := 0.5 * (f - 1/f)
		gama = numeric.Asinz(math.Sin(azimuth) / d)
		om.lon0 -= numeric.Asinz(g*math.Tan(gama)) / om.bl
	} else {
		lon1, lat1, lon2, lat2 := cfg.Lon1, cfg.Lat1, cfg.Lon2, cfg.Lat2
		alat := math.Abs(lat1)
		switch {
		case math.Abs(lat1-lat2) <= numeric.Epsilon,
			alat <= numeric.Epsilon, math.Abs(alat-numeric.HalfPi) <= numeric.Epsilon,
			math.Abs(math.Abs(om.lat0)-numeric.HalfPi) <= numeric.Epsilon:
			return nil, configError(202, fmt.Errorf("central line points (%v, %v) (%v, %v): %w",
				lon1, lat1, lon2, lat2, ErrInvalidParameter))
		}
		h := math.Pow(numeric.Tsfnz(om.e, lat1, math.Sin(lat1)), om.bl)
		l := math.Pow(numeric.Tsfnz(om.e, lat2, math.Sin(lat2)), om.bl)
		f = om.el / h
		g := 0.5 * (f - 1/f)
		j := (om.el*om.el - l*h) / (om.el*om.el + l*h)
		p := (l - h) / (l + h)
		dlon := lon1 - lon2
		if dlon < -math.Pi {
			lon2 -= numeric.TwoPi
		}
		if dlon > math.Pi {
			lon2 += numeric.TwoPi
		}
		dlon = lon1 - lon2
		om.lon0 = 0.5*(lon1+lon2) - math.Atan(j*math.Tan(0.5*om.bl*dlon)/p)/om.bl
		dlon = numeric.AdjustLon(lon1 - om.lon0)
		gama = math.Atan(math.Sin(om.bl*dlon) / g)
		azimuth = numeric.Asinz(d * math.Sin(gama))
	}

	om.singam, om.cosgam = math.Sincos(gama)
	om.sinaz, om.cosaz = math.Sincos(azimuth)
	om.u = (om.al / om.bl) * math.Atan(sqrtPos(d*d-1)/om.cosaz)
	if om.lat0 < 0 {
		om.u = -om.u
	}
	return om, nil
}

func (om *obliqueMercator) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - om.lon0)
	vl := math.Sin(om.bl * dlon)

	var ul, us float64
	if math.Abs(math.Abs(lat)-numeric.HalfPi) > numeric.Epsilon {
		q := om.el / math.Pow(numeric.Tsfnz(om.e, lat, math.Sin(lat)), om.bl)
		s := 0.5 * (q - 1/q)
		t := 0.5 * (q + 1/q)
		ul = (s*om.singam - vl*om.cosgam) / t
		// A zero con gives atan(±Inf) = ±π/2, the correct limit.
		con := math.Cos(om.bl * dlon)
		us = om.al * math.Atan((s*om.cosgam+vl*om.singam)/con) / om.bl
		if con < 0 {
			us += math.Pi * om.al / om.bl
		}
	} else {
		ul = om.singam
		if lat < 0 {
			ul = -ul
		}
		us = om.al * lat / om.bl
	}
	if math.Abs(math.Abs(ul)-1) <= numeric.Epsilon {
		return 0, 0, pointError(205, ErrPoleSingularity)
	}

	vs := 0.5 * om.al * math.Log((1-ul)/(1+ul)) / om.bl
	us -= om.u
	x = om.fe + vs*om.cosaz + us*om.sinaz
	y = om.fn + us*om.cosaz - vs*om.sinaz
	return x, y, nil
}

func (om *obliqueMercator) inverse(x, y float64) (lon, lat float64, err error) {
	x -= om.fe
	y -= om.fn
	vs := x*om.cosaz - y*om.sinaz
	us := y*om.cosaz + x*om.sinaz + om.u
	q := math.Exp(-om.bl * vs / om.al)
	s := 0.5 * (q - 1/q)
	t := 0.5 * (q + 1/q)
	vl := math.Sin(om.bl * us / om.al)
	ul := (vl*om.cosgam + s*om.singam) / t
	if math.Abs(math.Abs(ul)-1) <= numeric.Epsilon {
		return om.lon0, numeric.HalfPi * numeric.Sign(ul), nil
	}

	ts := math.Pow(om.el/math.Sqrt((1+ul)/(1-ul)), 1/om.bl)
	if lat, err = numeric.Phi2z(om.e, ts); err != nil {
		return 0, 0, solverError(2, err)
	}
	con := math.Cos(om.bl * us / om.al)
	lon = numeric.AdjustLon(om.lon0 - math.Atan2(s*om.cosgam-vl*om.singam, con)/om.bl)
	return lon, lat, nil
}

// oblatedEqualArea is the oblated equal-area projection: a Lambert azimuthal
// equal-area map stretched into an oval by the shape parameters m and n and
// rotated by an angle.
type oblatedEqualArea struct {
	origin
	m, n       float64
	theta      float64
	sinp, cosp float64
}

func newOblatedEqualArea(cfg *Config) (formula, error) {
	if !(cfg.ShapeM > 0) || !(cfg.ShapeN > 0) {
		return nil, configError(301, fmt.Errorf("shape m=%v n=%v: %w", cfg.ShapeM, cfg.ShapeN, ErrInvalidParameter))
	}
	ob := &oblatedEqualArea{origin: newOrigin(cfg), m: cfg.ShapeM, n: cfg.ShapeN, theta: cfg.Angle}
	ob.sinp, ob.cosp = math.Sincos(ob.lat0)
	return ob, nil
}

func (ob *oblatedEqualArea) forward(lon, lat float64) (x, y float64, err error) {
	dlon := lon - ob.lon0
	sinphi, cosphi := math.Sincos(lat)
	sindl, cosdl := math.Sincos(dlon)
	z := math.Acos(math.Max(-1, math.Min(1, ob.sinp*sinphi+ob.cosp*cosphi*cosdl)))
	az := math.Atan2(cosphi*sindl, ob.cosp*sinphi-ob.sinp*cosphi*cosdl) + ob.theta
	sinaz, cosaz := math.Sincos(az)

	temp := 2 * math.Sin(z/2)
	xp := temp * sinaz
	yp := temp * cosaz
	m := math.Asin(xp / 2)
	temp = yp / 2 * math.Cos(m) / math.Cos(2*m/ob.m)
	if math.Abs(temp) > 1 {
		return 0, 0, pointError(302, ErrOutOfRange)
	}
	n := math.Asin(temp)
	x = ob.m*ob.r*math.Sin(2*m/ob.m)*math.Cos(n)/math.Cos(2*n/ob.n) + ob.fe
	y = ob.n*ob.r*math.Sin(2*n/ob.n) + ob.fn
	return x, y, nil
}

func (ob *oblatedEqualArea) inverse(x, y float64) (lon, lat float64, err error) {
	x -= ob.fe
	y -= ob.fn
	arg := y / (ob.n * ob.r)
	if math.Abs(arg) > 1 {
		return 0, 0, pointError(303, ErrOutOfRange)
	}
	n := ob.n / 2 * math.Asin(arg)
	temp := x / (ob.m * ob.r) * math.Cos(2*n/ob.n) / math.Cos(n)
	if math.Abs(temp) > 1 {
		return 0, 0, pointError(303, ErrOutOfRange)
	}
	m := ob.m / 2 * math.Asin(temp)
	xp := 2 * math.Sin(m)
	yp := 2 * math.Sin(n) * math.Cos(2*m/ob.m) / math.Cos(m)
	z := 2 * numeric.Asinz(math.Hypot(xp, yp)/2)
	az := math.Atan2(xp, yp) - ob.theta
	sinaz, cosaz := math.Sincos(az)
	sinz, cosz := math.Sincos(z)
	lat = numeric.Asinz(ob.sinp*cosz + ob.cosp*sinz*cosaz)
	lon = numeric.AdjustLon(ob.lon0 + math.Atan2(sinz*sinaz, ob.cosp*cosz-ob.sinp*sinz*cosaz))
	return lon, lat, nil
}

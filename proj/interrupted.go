package proj

import (
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// Interrupted Mollweide lobes: three north, three south.
var (
	imollCenter = [6]float64{
		1.0471975512, -2.96705972839, -0.523598776,
		1.57079632679, -2.44346095279, -0.34906585,
	}
	imollEasting = [6]float64{
		-2.19988776387, -0.15713484, 2.04275292359,
		-1.72848324304, 0.31426968, 2.19988776387,
	}
)

// Lobe boundaries in radians.
const (
	lon20E  = 0.34906585
	lon110E = 1.91986217719
	lon100W = 1.745329252
	lon140E = 2.44346095279
	lon70W  = 1.2217304764
)

type interruptedMollweide struct {
	origin
	easting [6]float64
}

func newInterruptedMollweide(cfg *Config) *interruptedMollweide {
	im := &interruptedMollweide{origin: newOrigin(cfg)}
	for i, e := range imollEasting {
		im.easting[i] = im.r * e
	}
	return im
}

func (im *interruptedMollweide) forward(lon, lat float64) (x, y float64, err error) {
	// The bounds are widened slightly so that ±180° falls in the Pacific lobe.
	const pi = math.Pi + 1e-14
	var lobe int
	if lat >= 0 {
		switch {
		case lon >= lon20E && lon < lon110E:
			lobe = 0
		case (lon >= lon110E && lon <= pi) || (lon >= -pi && lon < -lon100W):
			lobe = 1
		default:
			lobe = 2
		}
	} else {
		switch {
		case lon >= lon20E && lon < lon140E:
			lobe = 3
		case (lon >= lon140E && lon <= pi) || (lon >= -pi && lon < -lon70W):
			lobe = 4
		default:
			lobe = 5
		}
	}

	dlon := numeric.AdjustLon(lon - imollCenter[lobe])
	theta, ok := auxTheta(lat, math.Pi, 50)
	if !ok {
		return 0, 0, pointError(2, ErrNonConvergence)
	}
	if numeric.HalfPi-math.Abs(lat) < numeric.Epsilon {
		dlon = 0
	}
	x = im.fe + im.easting[lobe] + mollX*im.r*dlon*math.Cos(theta)
	y = im.fn + mollY*im.r*math.Sin(theta)
	return x, y, nil
}

func (im *interruptedMollweide) inverse(x, y float64) (lon, lat float64, err error) {
	x -= im.fe
	y -= im.fn

	var lobe int
	if y >= 0 {
		switch {
		case x <= im.r*-1.41421356248:
			lobe = 0
		case x <= im.r*0.942809042:
			lobe = 1
		default:
			lobe = 2
		}
	} else {
		switch {
		case x <= im.r*-0.942809042:
			lobe = 3
		case x <= im.r*1.41421356248:
			lobe = 4
		default:
			lobe = 5
		}
	}
	x -= im.easting[lobe]

	arg := y / (mollY * im.r)
	if math.Abs(arg) > 1 {
		return 0, 0, pointError(262, ErrOutOfRange)
	}
	theta := math.Asin(arg)
	if cos := math.Cos(theta); cos < numeric.Epsilon {
		lon = imollCenter[lobe]
	} else {
		lon = numeric.AdjustLon(imollCenter[lobe] + x/(mollX*im.r*cos))
	}
	lat = numeric.Asinz((2*theta + math.Sin(2*theta)) / math.Pi)

	var gap bool
	switch lobe {
	case 0:
		gap = lon < lon20E || lon > lon110E
	case 1:
		gap = (lon < lon110E && lon > lon20E) || (lon > -lon100W && lon < lon20E)
	case 2:
		gap = lon < -lon100W || lon > lon20E
	case 3:
		gap = lon < lon20E || lon > lon140E
	case 4:
		gap = (lon < lon140E && lon > lon20E) || (lon > -lon70W && lon < lon20E)
	case 5:
		gap = lon < -lon70W || lon > lon20E
	}
	if gap {
		return lon, lat, pointError(263, ErrInBreak)
	}
	return lon, lat, nil
}

// Goode homolosine lobes. Each lobe has one central meridian; the false
// easting of a lobe is R times its central meridian.
var goodeCenter = [12]float64{
	-1.74532925199, -1.74532925199, 0.523598775598, 0.523598775598,
	-2.79252680319, -1.0471975512, -2.79252680319, -1.0471975512,
	0.349065850399, 2.44346095279, 0.349065850399, 2.44346095279,
}

const (
	goodeLat   = 0.710987989993 // 40°44'11.8", where the sinusoid meets the homolograph
	goodeShift = 0.0528035274542
	lon40W     = 0.698131700798
	lon100Wg   = 1.74532925199
	lon20W     = 0.349065850399
	lon80E     = 1.3962634016
)

type goode struct {
	origin
	easting [12]float64
}

func newGoode(cfg *Config) *goode {
	g := &goode{origin: newOrigin(cfg)}
	for i, c := range goodeCenter {
		g.easting[i] = g.r * c
	}
	return g
}

// goodeSinusoidal reports whether a lobe uses the sinusoidal band.
func goodeSinusoidal(lobe int) bool {
	switch lobe {
	case 1, 3, 4, 5, 8, 9:
		return true
	}
	return false
}

// goodeLobe selects the lobe of a point given its latitude-like coordinate
// v against the band limit and its longitude-like coordinate u against the
// interruption meridians, both pre-scaled by the caller.
func goodeLobe(v, u, band, scale float64) int {
	switch {
	case v >= band:
		if u <= -lon40W*scale {
			return 0
		}
		return 2
	case v >= 0:
		if u <= -lon40W*scale {
			return 1
		}
		return 3
	}
	var lobe int
	switch {
	case u <= -lon100Wg*scale:
		lobe = 4
	case u <= -lon20W*scale:
		lobe = 5
	case u <= lon80E*scale:
		lobe = 8
	default:
		lobe = 9
	}
	if v < -band {
		lobe += 2
	}
	return lobe
}

func (g *goode) forward(lon, lat float64) (x, y float64, err error) {
	lobe := goodeLobe(lat, lon, goodeLat, 1)
	dlon := numeric.AdjustLon(lon - goodeCenter[lobe])

	if goodeSinusoidal(lobe) {
		x = g.easting[lobe] + g.r*dlon*math.Cos(lat)
		y = g.r * lat
		return x + g.fe, y + g.fn, nil
	}

	theta, ok := auxTheta(lat, math.Pi, 50)
	if !ok {
		return 0, 0, pointError(251, ErrNonConvergence)
	}
	if numeric.HalfPi-math.Abs(lat) < numeric.Epsilon {
		dlon = 0
	}
	x = g.easting[lobe] + mollX*g.r*dlon*math.Cos(theta)
	y = g.r * (mollY*math.Sin(theta) - goodeShift*numeric.Sign(lat))
	return x + g.fe, y + g.fn, nil
}

func (g *goode) inverse(x, y float64) (lon, lat float64, err error) {
	x -= g.fe
	y -= g.fn
	lobe := goodeLobe(y, x, g.r*goodeLat, g.r)
	x -= g.easting[lobe]

	if goodeSinusoidal(lobe) {
		lat = y / g.r
		if math.Abs(lat) > numeric.HalfPi {
			return 0, 0, pointError(252, ErrOutOfRange)
		}
		if math.Abs(math.Abs(lat)-numeric.HalfPi) > numeric.Epsilon {
			lon = numeric.AdjustLon(goodeCenter[lobe] + x/(g.r*math.Cos(lat)))
		} else {
			lon = goodeCenter[lobe]
		}
	} else {
		arg := (y + goodeShift*g.r*numeric.Sign(y)) / (mollY * g.r)
		if math.Abs(arg) > 1 {
			return 0, 0, pointError(252, ErrOutOfRange)
		}
		theta := math.Asin(arg)
		if cos := math.Cos(theta); cos < numeric.Epsilon {
			lon = goodeCenter[lobe]
		} else {
			lon = numeric.AdjustLon(goodeCenter[lobe] + x/(mollX*g.r*cos))
		}
		lat = numeric.Asinz((2*theta + math.Sin(2*theta)) / math.Pi)
	}

	// ±180° may come back with the wrong sign.
	if (x < 0 && math.Pi-lon < numeric.Epsilon) || (x > 0 && math.Pi+lon < numeric.Epsilon) {
		lon = -lon
	}

	lo, hi := goodeBounds(lobe)
	if lon < lo || lon > hi {
		return lon, lat, pointError(253, ErrInBreak)
	}
	return lon, lat, nil
}

// goodeBounds returns the longitude range a lobe covers.
func goodeBounds(lobe int) (lo, hi float64) {
	const west, east = -(math.Pi + numeric.Epsilon), math.Pi + numeric.Epsilon
	switch lobe {
	case 0, 1:
		return west, -lon40W
	case 2, 3:
		return -lon40W, east
	case 4, 6:
		return west, -lon100Wg
	case 5, 7:
		return -lon100Wg, -lon20W
	case 8, 10:
		return -lon20W, lon80E
	}
	return lon80E, east
}

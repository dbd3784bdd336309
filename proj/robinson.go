package proj

import (
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// Robinson's table at 5° steps starting one row below the equator, so that
// the second-difference interpolation can straddle 0°. robinsonX is scaled
// by 0.9858 on use.
var (
	robinsonY = [20]float64{
		-0.062, 0, 0.062, 0.124, 0.186, 0.248, 0.31, 0.372, 0.434, 0.4958,
		0.5571, 0.6176, 0.6769, 0.7346, 0.7903, 0.8435, 0.8936, 0.9394, 0.9761, 1,
	}
	robinsonX = [20]float64{
		0.9986, 1, 0.9986, 0.9954, 0.99, 0.9822, 0.973, 0.96, 0.9427, 0.9216,
		0.8962, 0.8679, 0.835, 0.7986, 0.7597, 0.7186, 0.6732, 0.6213, 0.5722, 0.5322,
	}
)

const robinsonScale = 0.9858

type robinson struct{ origin }

func newRobinson(cfg *Config) *robinson { return &robinson{newOrigin(cfg)} }

// stirling interpolates row i of tbl at fraction p using second differences.
func stirling(tbl *[20]float64, i int, p float64) float64 {
	return tbl[i+1] + p*(tbl[i+2]-tbl[i])/2 + p*p*(tbl[i+2]-2*tbl[i+1]+tbl[i])/2
}

// robinsonRow splits |latitude in degrees| into a table row and fraction.
func robinsonRow(deg float64) (int, float64) {
	p := math.Abs(deg / 5)
	i := int(p - numeric.Epsilon)
	i = max(0, min(i, 17))
	return i, p - float64(i)
}

func (rb *robinson) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - rb.lon0)
	i, p := robinsonRow(lat * numeric.R2D)
	x = rb.r*robinsonScale*stirling(&robinsonX, i, p)*dlon + rb.fe
	y = rb.r * stirling(&robinsonY, i, p) * numeric.HalfPi
	if lat < 0 {
		y = -y
	}
	return x, y + rb.fn, nil
}

func (rb *robinson) inverse(x, y float64) (lon, lat float64, err error) {
	x -= rb.fe
	y -= rb.fn

	yy := 2 * y / math.Pi / rb.r
	if math.Abs(yy) > 1+numeric.Epsilon {
		return 0, 0, pointError(233, ErrOutOfRange)
	}
	phid := yy * 90
	i, _ := robinsonRow(phid)
	if i == 0 {
		i = 1
	}

	// Reverse the interpolation for a first estimate of the latitude.
	var p float64
	for {
		u := robinsonY[i+2] - robinsonY[i]
		v := robinsonY[i+2] - 2*robinsonY[i+1] + robinsonY[i]
		t := 2 * (math.Abs(yy) - robinsonY[i+1]) / u
		c := v / u
		p = t * (1 - c*t*(1-2*c*t))
		if p >= 0 || i == 1 {
			break
		}
		i--
	}
	phid = (p + float64(i)) * 5
	if y < 0 {
		phid = -phid
	}

	// Adjust until the forward series reproduces y.
	for iter := 0; ; iter++ {
		i, p = robinsonRow(phid)
		y1 := rb.r * stirling(&robinsonY, i, p) * numeric.HalfPi
		if y < 0 {
			y1 = -y1
		}
		phid -= 180 * (y1 - y) / math.Pi / rb.r
		if math.Abs(y1-y) <= 1e-5 {
			break
		}
		if iter >= 75 {
			return 0, 0, pointError(234, ErrNonConvergence)
		}
	}

	i, p = robinsonRow(phid)
	lat = phid * numeric.D2R
	lon = numeric.AdjustLon(rb.lon0 + x/rb.r/(robinsonScale*stirling(&robinsonX, i, p)))
	return lon, lat, nil
}

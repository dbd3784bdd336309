package proj

import (
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// azimuthal implements the spherical azimuthal family. The members differ
// only in the radial scale derived from the great-circle cosine g and in
// how the angular distance z is recovered from the planar radius.
type azimuthal struct {
	origin
	kind       Kind
	rad        float64 // sphere radius used by the member
	sinp, cosp float64 // of the center latitude
	p          float64 // near-side perspective: 1 + height/radius
}

func newAzimuthal(cfg *Config) (formula, error) {
	az := &azimuthal{origin: newOrigin(cfg), kind: cfg.Kind}
	az.sinp, az.cosp = math.Sincos(az.lat0)
	switch cfg.Kind {
	case Stereographic, AzimuthalEquidistant, Orthographic:
		az.rad = az.a
	default:
		az.rad = az.r
	}
	if cfg.Kind == NearSidePerspective {
		if !(cfg.Height > 0) {
			return nil, configError(151, fmt.Errorf("perspective height %v: %w", cfg.Height, ErrInvalidParameter))
		}
		az.p = 1 + cfg.Height/az.rad
	}
	return az, nil
}

func (az *azimuthal) forward(lon, lat float64) (x, y float64, err error) {
	dlon := numeric.AdjustLon(lon - az.lon0)
	sinphi, cosphi := math.Sincos(lat)
	coslon := math.Cos(dlon)
	g := az.sinp*sinphi + az.cosp*cosphi*coslon

	var ksp float64
	switch az.kind {
	case Stereographic:
		if math.Abs(g+1) <= numeric.Epsilon {
			return 0, 0, pointError(103, ErrAntipodalPoint)
		}
		ksp = 2 / (1 + g)
	case Gnomonic:
		if g <= 0 {
			return 0, 0, pointError(133, ErrPoleSingularity)
		}
		ksp = 1 / g
	case AzimuthalEquidistant:
		if math.Abs(math.Abs(g)-1) < numeric.Epsilon {
			if g < 0 {
				return 0, 0, pointError(123, ErrAntipodalPoint)
			}
			ksp = 1
		} else {
			z := math.Acos(g)
			ksp = z / math.Sin(z)
		}
	case LambertAzimuthal:
		if math.Abs(g+1) <= numeric.Epsilon {
			return 0, 0, pointError(113, ErrAntipodalPoint)
		}
		ksp = math.Sqrt(2 / (1 + g))
	case Orthographic:
		if g < 0 && math.Abs(g) > numeric.Epsilon {
			return 0, 0, pointError(143, ErrPoleSingularity)
		}
		ksp = 1
	case NearSidePerspective:
		if g < 1/az.p {
			return 0, 0, pointError(153, ErrPoleSingularity)
		}
		ksp = (az.p - 1) / (az.p - g)
	}

	ksp *= az.rad
	x = az.fe + ksp*cosphi*math.Sin(dlon)
	y = az.fn + ksp*(az.cosp*sinphi-az.sinp*cosphi*coslon)
	return x, y, nil
}

func (az *azimuthal) inverse(x, y float64) (lon, lat float64, err error) {
	x -= az.fe
	y -= az.fn
	rh := math.Hypot(x, y)

	var z float64
	switch az.kind {
	case Stereographic:
		z = 2 * math.Atan(rh/(2*az.rad))
	case Gnomonic:
		z = math.Atan(rh / az.rad)
	case AzimuthalEquidistant:
		if rh > math.Pi*az.rad {
			return 0, 0, pointError(125, ErrOutOfRange)
		}
		z = rh / az.rad
	case LambertAzimuthal:
		t := rh / (2 * az.rad)
		if t > 1 {
			return 0, 0, pointError(115, ErrOutOfRange)
		}
		z = 2 * numeric.Asinz(t)
	case Orthographic:
		if rh > az.rad+1e-7 {
			return 0, 0, pointError(145, ErrOutOfRange)
		}
		z = numeric.Asinz(rh / az.rad)
	case NearSidePerspective:
		r := rh / az.rad
		if r > math.Sqrt((az.p-1)/(az.p+1)) {
			return 0, 0, pointError(155, ErrOutOfRange)
		}
		if rh > numeric.Epsilon {
			con := az.p - 1
			sinz := (az.p - math.Sqrt(1-r*r*(az.p+1)/con)) / (con/r + r/con)
			z = numeric.Asinz(sinz)
		}
	}
	lon, lat = az.back(x, y, rh, z)
	return lon, lat, nil
}

// back recovers longitude and latitude from planar offsets at radius rh and
// angular distance z from the center.
func (az *azimuthal) back(x, y, rh, z float64) (lon, lat float64) {
	if rh <= numeric.Epsilon {
		return az.lon0, az.lat0
	}
	sinz, cosz := math.Sincos(z)
	lat = numeric.Asinz(cosz*az.sinp + y*sinz*az.cosp/rh)

	if math.Abs(math.Abs(az.lat0)-numeric.HalfPi) <= numeric.Epsilon {
		if az.lat0 >= 0 {
			return numeric.AdjustLon(az.lon0 + math.Atan2(x, -y)), lat
		}
		return numeric.AdjustLon(az.lon0 - math.Atan2(-x, y)), lat
	}

	con := cosz - az.sinp*math.Sin(lat)
	if math.Abs(con) < numeric.Epsilon && math.Abs(x) < numeric.Epsilon {
		return az.lon0, lat
	}
	return numeric.AdjustLon(az.lon0 + math.Atan2(x*sinz*az.cosp, con*rh)), lat
}

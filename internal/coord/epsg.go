// Package coord maps EPSG codes onto projection configurations.
package coord

import (
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
	"github.com/pspoerri/gctp/proj"
)

// OriginShift is half the width of the Web Mercator plane in meters.
const OriginShift = math.Pi * 6378137

// Swiss oblique Mercator origin (Bern): 7°26'22.50" E, 46°57'08.66" N.
const (
	swissLon = (7 + 26.0/60 + 22.50/3600) * numeric.D2R
	swissLat = (46 + 57.0/60 + 8.66/3600) * numeric.D2R
)

// ForEPSG returns the configuration of a coordinate reference system by its
// EPSG code. Geographic systems use degrees.
//
// Supported: 4326, 4269, 3857, 3395, 2056, 21781, 5070, 3031, 3413 and the
// WGS 84 UTM zones 32601-32660 and 32701-32760.
func ForEPSG(epsg int) (proj.Config, error) {
	switch {
	case epsg > 32600 && epsg <= 32660:
		return proj.Config{Kind: proj.UTM, Datum: proj.WGS84, Zone: epsg - 32600}, nil
	case epsg > 32700 && epsg <= 32760:
		return proj.Config{Kind: proj.UTM, Datum: proj.WGS84, Zone: -(epsg - 32700)}, nil
	}

	switch epsg {
	case 4326:
		return proj.Config{Kind: proj.Geographic, Datum: proj.WGS84, Unit: proj.UnitDegree}, nil
	case 4269:
		return proj.Config{Kind: proj.Geographic, Datum: proj.GRS1980, Unit: proj.UnitDegree}, nil
	case 3857:
		return proj.Config{Kind: proj.Mercator, Ellipsoid: proj.Sphere(6378137)}, nil
	case 3395:
		return proj.Config{Kind: proj.Mercator, Datum: proj.WGS84}, nil
	case 2056:
		return swiss(2600000, 1200000), nil
	case 21781:
		return swiss(600000, 200000), nil
	case 5070:
		return proj.Config{
			Kind: proj.Albers, Datum: proj.GRS1980,
			StdParallel1: 29.5 * numeric.D2R, StdParallel2: 45.5 * numeric.D2R,
			CenterLon: -96 * numeric.D2R, CenterLat: 23 * numeric.D2R,
		}, nil
	case 3031:
		return proj.Config{Kind: proj.PolarStereographic, Datum: proj.WGS84, CenterLat: -71 * numeric.D2R}, nil
	case 3413:
		return proj.Config{Kind: proj.PolarStereographic, Datum: proj.WGS84,
			CenterLon: -45 * numeric.D2R, CenterLat: 70 * numeric.D2R}, nil
	}
	return proj.Config{}, fmt.Errorf("EPSG:%d: %w", epsg, proj.ErrUnsupported)
}

func swiss(fe, fn float64) proj.Config {
	return proj.Config{
		Kind:          proj.HotineObliqueMercator,
		Datum:         proj.Bessel,
		ScaleFactor:   1,
		Mode:          1,
		Azimuth:       numeric.HalfPi,
		CenterLon:     swissLon,
		CenterLat:     swissLat,
		FalseEasting:  fe,
		FalseNorthing: fn,
	}
}

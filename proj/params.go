package proj

import (
	"fmt"

	"github.com/pspoerri/gctp/internal/numeric"
)

// NumSlots is the length of the GCTP positional parameter array.
const NumSlots = 15

// Params is the positional GCTP parameter set. Angles in the slots are
// packed DDDMMMSSS.SS values; lengths are meters.
//
//	0  semi-major axis (or sphere radius)
//	1  semi-minor axis, or squared eccentricity when <= 1
//	2  standard parallel 1 | scale factor | perspective height | shape m | satellite
//	3  standard parallel 2 | azimuth | shape n | path | orbit inclination
//	4  center longitude
//	5  center latitude (latitude of origin or of true scale)
//	6  false easting
//	7  false northing
//	8  equidistant conic mode | rotation angle | two-point lon1 | orbit period
//	9  two-point lat1
//	10 two-point lon2 | late start flag
//	11 two-point lat2
//	12 oblique Mercator mode (non-zero selects the azimuth form, or the
//	   Landsat orbit for space oblique Mercator)
type Params struct {
	Slots [NumSlots]float64
	Unit  Unit
	Datum Datum
	Zone  int // UTM zone; negative for the southern hemisphere
}

// Config is the decoded, named form of a projection's parameters. Angles are
// radians and lengths meters. Fields a kind does not use are ignored.
type Config struct {
	Kind      Kind
	Datum     Datum
	Ellipsoid Ellipsoid // zero value resolves through Datum
	Unit      Unit

	CenterLon     float64
	CenterLat     float64
	FalseEasting  float64
	FalseNorthing float64

	StdParallel1 float64
	StdParallel2 float64

	ScaleFactor float64 // transverse and oblique Mercator
	Height      float64 // near-side perspective, above the surface
	Mode        int     // equidistant conic: 0 one parallel; oblique Mercator: 0 two-point; space oblique: 0 Landsat
	Zone        int     // UTM

	Azimuth                float64 // oblique Mercator azimuth form
	Lon1, Lat1, Lon2, Lat2 float64 // oblique Mercator two-point form

	ShapeM, ShapeN float64 // oblated equal area
	Angle          float64 // oblated equal area rotation

	Satellite, Path int     // space oblique Mercator, Landsat 1 to 5
	Inclination     float64 // space oblique Mercator, explicit orbit
	Period          float64 // minutes
	StartFlag       bool    // start the forward search one orbit later
}

// Decode turns a positional parameter set into a Config. Only the packed
// angle format is validated; geometric feasibility is left to Compile.
func Decode(kind Kind, p Params) (Config, error) {
	cfg := Config{Kind: kind, Datum: p.Datum, Unit: p.Unit}
	if err := decodeBase(&cfg, &p); err != nil {
		return Config{}, err
	}
	if err := decodeSpecific(&cfg, &p); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeBase(cfg *Config, p *Params) error {
	cfg.Ellipsoid = ResolveEllipsoid(p.Datum, p.Slots[0], p.Slots[1])

	var err error
	if cfg.CenterLon, err = slotAngle(cfg.Kind, p, 4); err != nil {
		return err
	}
	if cfg.CenterLat, err = slotAngle(cfg.Kind, p, 5); err != nil {
		return err
	}
	cfg.FalseEasting = p.Slots[6]
	cfg.FalseNorthing = p.Slots[7]

	if cfg.Kind.conic() {
		if cfg.StdParallel1, err = slotAngle(cfg.Kind, p, 2); err != nil {
			return err
		}
		if cfg.StdParallel2, err = slotAngle(cfg.Kind, p, 3); err != nil {
			return err
		}
	}
	return nil
}

func decodeSpecific(cfg *Config, p *Params) error {
	var err error
	switch cfg.Kind {
	case TransverseMercator:
		cfg.ScaleFactor = p.Slots[2]
	case UTM:
		cfg.Zone = p.Zone
		if cfg.Zone == 0 {
			// Zone from a geographic point in slots 0 and 1.
			lon, err := numeric.Paksz(p.Slots[0])
			if err != nil {
				return dmsError(cfg.Kind, 0, err)
			}
			lat, err := numeric.Paksz(p.Slots[1])
			if err != nil {
				return dmsError(cfg.Kind, 1, err)
			}
			cfg.Zone = numeric.CalcUTMZone(lon)
			if lat < 0 {
				cfg.Zone = -cfg.Zone
			}
		}
	case EquidistantConic:
		cfg.Mode = int(p.Slots[8])
	case NearSidePerspective:
		cfg.Height = p.Slots[2]
	case HotineObliqueMercator:
		cfg.ScaleFactor = p.Slots[2]
		if p.Slots[12] != 0 {
			cfg.Mode = 1
			if cfg.Azimuth, err = slotAngle(cfg.Kind, p, 3); err != nil {
				return err
			}
			break
		}
		for i, dst := range []*float64{&cfg.Lon1, &cfg.Lat1, &cfg.Lon2, &cfg.Lat2} {
			if *dst, err = slotAngle(cfg.Kind, p, 8+i); err != nil {
				return err
			}
		}
	case OblatedEqualArea:
		cfg.ShapeM = p.Slots[2]
		cfg.ShapeN = p.Slots[3]
		if cfg.Angle, err = slotAngle(cfg.Kind, p, 8); err != nil {
			return err
		}
	case SpaceObliqueMercator:
		if p.Slots[12] != 0 {
			cfg.Satellite = int(p.Slots[2])
			cfg.Path = int(p.Slots[3])
			break
		}
		cfg.Mode = 1
		if cfg.Inclination, err = slotAngle(cfg.Kind, p, 3); err != nil {
			return err
		}
		cfg.Period = p.Slots[8]
		cfg.StartFlag = p.Slots[10] != 0
	case AlaskaConformal:
		cfg.CenterLon = -152 * numeric.D2R
		cfg.CenterLat = 64 * numeric.D2R
	}
	return nil
}

// Encode packs a Config back into positional form; Decode(cfg.Kind,
// Encode(cfg)) reproduces cfg up to packed DMS rounding. An explicit
// ellipsoid is written to slots 0 and 1 only for DatumFromParams, and its
// sphere radius is not carried.
func Encode(cfg Config) Params {
	p := Params{Unit: cfg.Unit, Datum: cfg.Datum, Zone: cfg.Zone}
	if cfg.Datum == DatumFromParams && cfg.Ellipsoid != (Ellipsoid{}) {
		p.Slots[0] = cfg.Ellipsoid.SemiMajor
		p.Slots[1] = cfg.Ellipsoid.SemiMinor
	}
	p.Slots[4] = numeric.Pakr2dm(cfg.CenterLon)
	p.Slots[5] = numeric.Pakr2dm(cfg.CenterLat)
	p.Slots[6] = cfg.FalseEasting
	p.Slots[7] = cfg.FalseNorthing
	if cfg.Kind.conic() {
		p.Slots[2] = numeric.Pakr2dm(cfg.StdParallel1)
		p.Slots[3] = numeric.Pakr2dm(cfg.StdParallel2)
	}

	switch cfg.Kind {
	case TransverseMercator:
		p.Slots[2] = cfg.ScaleFactor
	case EquidistantConic:
		p.Slots[8] = float64(cfg.Mode)
	case NearSidePerspective:
		p.Slots[2] = cfg.Height
	case HotineObliqueMercator:
		p.Slots[2] = cfg.ScaleFactor
		if cfg.Mode != 0 {
			p.Slots[12] = 1
			p.Slots[3] = numeric.Pakr2dm(cfg.Azimuth)
			break
		}
		for i, v := range []float64{cfg.Lon1, cfg.Lat1, cfg.Lon2, cfg.Lat2} {
			p.Slots[8+i] = numeric.Pakr2dm(v)
		}
	case OblatedEqualArea:
		p.Slots[2] = cfg.ShapeM
		p.Slots[3] = cfg.ShapeN
		p.Slots[8] = numeric.Pakr2dm(cfg.Angle)
	case SpaceObliqueMercator:
		if cfg.Mode == 0 {
			p.Slots[12] = 1
			p.Slots[2] = float64(cfg.Satellite)
			p.Slots[3] = float64(cfg.Path)
			break
		}
		p.Slots[3] = numeric.Pakr2dm(cfg.Inclination)
		p.Slots[8] = cfg.Period
		if cfg.StartFlag {
			p.Slots[10] = 1
		}
	}
	return p
}

func slotAngle(kind Kind, p *Params, slot int) (float64, error) {
	v, err := numeric.DMSToRadians(p.Slots[slot])
	if err != nil {
		return 0, dmsError(kind, slot, err)
	}
	return v, nil
}

func dmsError(kind Kind, slot int, err error) error {
	return &ConfigError{Kind: kind, Code: 1116, Err: fmt.Errorf("slot %d: %w: %w", slot, ErrInvalidParameter, err)}
}

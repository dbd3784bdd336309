package proj

import (
	"errors"
	"fmt"
	"math"

	"github.com/pspoerri/gctp/internal/numeric"
)

// Transformer converts between geographic coordinates (radians) and
// projected coordinates. Both *Projection and *Instance implement it.
type Transformer interface {
	Forward(lon, lat float64) (x, y float64, err error)
	Inverse(x, y float64) (lon, lat float64, err error)
}

// formula is the derived-constant record of one projection kind.
// Lengths are meters and angles radians on both sides.
type formula interface {
	forward(lon, lat float64) (x, y float64, err error)
	inverse(x, y float64) (lon, lat float64, err error)
}

// Projection is a compiled projection. It is immutable and safe for
// concurrent use.
type Projection struct {
	cfg  Config
	f    formula
	unit float64 // meters (radians for Geographic) to output unit
}

// New decodes a positional parameter set and compiles it.
func New(kind Kind, p Params) (*Projection, error) {
	cfg, err := Decode(kind, p)
	if err != nil {
		return nil, err
	}
	return Compile(cfg)
}

// Compile derives the constants of a projection from its configuration.
// Errors are *ConfigError values.
func Compile(cfg Config) (*Projection, error) {
	if cfg.Ellipsoid == (Ellipsoid{}) {
		cfg.Ellipsoid = ResolveEllipsoid(cfg.Datum, 0, 0)
	}
	if cfg.Ellipsoid.Radius == 0 {
		cfg.Ellipsoid.Radius = cfg.Ellipsoid.SemiMajor
	}
	if err := cfg.Ellipsoid.validate(); err != nil {
		return nil, &ConfigError{Kind: cfg.Kind, Code: 1102, Err: err}
	}

	unit, err := outputFactor(cfg.Kind, cfg.Unit)
	if err != nil {
		return nil, &ConfigError{Kind: cfg.Kind, Code: 1101, Err: err}
	}

	f, err := build(&cfg)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Kind = cfg.Kind
		}
		return nil, err
	}
	return &Projection{cfg: cfg, f: f, unit: unit}, nil
}

func build(cfg *Config) (formula, error) {
	switch cfg.Kind {
	case Geographic:
		return geographic{}, nil
	case UTM, TransverseMercator:
		return newTransverseMercator(cfg)
	case Albers:
		return newAlbers(cfg)
	case LambertConformalConic:
		return newLambertConformal(cfg)
	case Mercator:
		return newMercator(cfg)
	case PolarStereographic:
		return newPolarStereographic(cfg)
	case Polyconic:
		return newPolyconic(cfg)
	case EquidistantConic:
		return newEquidistantConic(cfg)
	case Stereographic, LambertAzimuthal, AzimuthalEquidistant, Gnomonic,
		Orthographic, NearSidePerspective:
		return newAzimuthal(cfg)
	case Sinusoidal:
		return newSinusoidal(cfg), nil
	case Equirectangular:
		return newEquirectangular(cfg), nil
	case Miller:
		return newMiller(cfg), nil
	case VanDerGrinten:
		return newVanDerGrinten(cfg), nil
	case HotineObliqueMercator:
		return newObliqueMercator(cfg)
	case Robinson:
		return newRobinson(cfg), nil
	case AlaskaConformal:
		return newAlaska(cfg), nil
	case GoodeHomolosine:
		return newGoode(cfg), nil
	case Mollweide:
		return newMollweide(cfg), nil
	case InterruptedMollweide:
		return newInterruptedMollweide(cfg), nil
	case Hammer:
		return newHammer(cfg), nil
	case WagnerIV:
		return newWagnerIV(cfg), nil
	case WagnerVII:
		return newWagnerVII(cfg), nil
	case OblatedEqualArea:
		return newOblatedEqualArea(cfg)
	case SpaceObliqueMercator:
		return newSpaceOblique(cfg)
	}
	return nil, configError(0, fmt.Errorf("%w: %s", ErrUnsupported, cfg.Kind))
}

func outputFactor(kind Kind, u Unit) (float64, error) {
	from := UnitMeter
	if kind == Geographic {
		from = UnitRadian
	}
	if u == UnitDefault {
		return 1, nil
	}
	return UnitFactor(from, u)
}

// Kind returns the projection kind.
func (p *Projection) Kind() Kind { return p.cfg.Kind }

// Config returns the configuration the projection was compiled from.
func (p *Projection) Config() Config { return p.cfg }

// Forward projects a geographic point. On a singular input the error is a
// *PointError and x, y are zero.
func (p *Projection) Forward(lon, lat float64) (x, y float64, err error) {
	x, y, err = p.f.forward(lon, lat)
	if err == nil && !(finite(x) && finite(y)) {
		err = pointError(0, ErrOutOfRange)
	}
	if err != nil {
		return 0, 0, p.annotate("forward", lon, lat, err)
	}
	return x * p.unit, y * p.unit, nil
}

// Inverse recovers the geographic point of projected coordinates. The
// longitude is normalized to (-π, π]. An ErrInBreak error comes with valid
// coordinates; any other error leaves them zero.
func (p *Projection) Inverse(x, y float64) (lon, lat float64, err error) {
	lon, lat, err = p.f.inverse(x/p.unit, y/p.unit)
	if err == nil && !(finite(lon) && finite(lat)) {
		err = pointError(0, ErrOutOfRange)
	}
	if err != nil && !errors.Is(err, ErrInBreak) {
		return 0, 0, p.annotate("inverse", x, y, err)
	}
	lon = numeric.AdjustLon(lon)
	if err != nil {
		return lon, lat, p.annotate("inverse", x, y, err)
	}
	return lon, lat, nil
}

func (p *Projection) annotate(op string, x, y float64, err error) error {
	var pe *PointError
	if errors.As(err, &pe) {
		pe.Kind, pe.Op, pe.X, pe.Y = p.cfg.Kind, op, x, y
		return pe
	}
	return &PointError{Kind: p.cfg.Kind, Op: op, X: x, Y: y, Err: err}
}

// origin carries the ellipsoid and false origin every formula starts from.
type origin struct {
	a, b, r    float64 // semi-major, semi-minor, sphere radius
	es, e      float64
	lon0, lat0 float64
	fe, fn     float64
}

func newOrigin(cfg *Config) origin {
	o := origin{
		a:    cfg.Ellipsoid.SemiMajor,
		b:    cfg.Ellipsoid.SemiMinor,
		r:    cfg.Ellipsoid.Radius,
		es:   cfg.Ellipsoid.Es(),
		lon0: cfg.CenterLon,
		lat0: cfg.CenterLat,
		fe:   cfg.FalseEasting,
		fn:   cfg.FalseNorthing,
	}
	o.e = sqrtPos(o.es)
	return o
}

// solverError classifies a latitude solver failure.
func solverError(code int, err error) error {
	if errors.Is(err, numeric.ErrInfeasible) {
		return pointError(code, fmt.Errorf("%w: %w", ErrOutOfRange, err))
	}
	return pointError(code, fmt.Errorf("%w: %w", ErrNonConvergence, err))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sqrtPos is math.Sqrt with negative roundoff treated as zero.
func sqrtPos(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

// Package projconfig reads named projection definitions from YAML.
//
// A document lists projections with human-friendly fields. Angles are in
// decimal degrees and lengths in meters:
//
//	projections:
//	  - name: conus
//	    kind: lambert-conformal-conic
//	    datum: grs1980
//	    standard_parallels: [33, 45]
//	    center_lon: -96
//	    center_lat: 23
//	  - name: utm32n
//	    kind: utm
//	    datum: wgs84
//	    zone: 32
//	  - name: swiss
//	    epsg: 2056
package projconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/pspoerri/gctp/internal/coord"
	"github.com/pspoerri/gctp/proj"
)

// Document is the top-level YAML structure.
type Document struct {
	Projections []Definition `yaml:"projections"`
}

// Definition is one named projection.
type Definition struct {
	Name      string     `yaml:"name"`
	EPSG      int        `yaml:"epsg,omitempty"` // replaces kind and the geometry fields
	Kind      string     `yaml:"kind"`
	Datum     string     `yaml:"datum,omitempty"`
	Ellipsoid *Ellipsoid `yaml:"ellipsoid,omitempty"`
	Unit      string     `yaml:"unit,omitempty"`
	Zone      int        `yaml:"zone,omitempty"`

	CenterLon     float64 `yaml:"center_lon,omitempty"`
	CenterLat     float64 `yaml:"center_lat,omitempty"`
	FalseEasting  float64 `yaml:"false_easting,omitempty"`
	FalseNorthing float64 `yaml:"false_northing,omitempty"`

	// One parallel selects the single-parallel equidistant conic.
	StandardParallels []float64 `yaml:"standard_parallels,omitempty"`

	ScaleFactor float64 `yaml:"scale_factor,omitempty"`
	Height      float64 `yaml:"height,omitempty"`

	// Oblique Mercator takes either an azimuth or two points on the
	// central line, each [lon, lat].
	Azimuth *float64    `yaml:"azimuth,omitempty"`
	Points  [][]float64 `yaml:"points,omitempty"`

	Shape *Shape  `yaml:"shape,omitempty"`
	Angle float64 `yaml:"angle,omitempty"`

	Orbit *Orbit `yaml:"orbit,omitempty"`
}

// Orbit describes the satellite of a space oblique Mercator projection:
// either a Landsat satellite and path, or an inclination and period.
type Orbit struct {
	Satellite   int     `yaml:"satellite,omitempty"`
	Path        int     `yaml:"path,omitempty"`
	Inclination float64 `yaml:"inclination,omitempty"`
	Period      float64 `yaml:"period,omitempty"` // minutes
	LateStart   bool    `yaml:"late_start,omitempty"`
}

// Ellipsoid gives explicit axes in meters. Without a semi-minor axis or an
// eccentricity the figure is a sphere; the radius defaults to the
// semi-major axis.
type Ellipsoid struct {
	SemiMajor           float64 `yaml:"semi_major"`
	SemiMinor           float64 `yaml:"semi_minor,omitempty"`
	EccentricitySquared float64 `yaml:"eccentricity_squared,omitempty"`
	Radius              float64 `yaml:"radius,omitempty"`
}

// Shape holds the oblated equal area shape parameters.
type Shape struct {
	M float64 `yaml:"m"`
	N float64 `yaml:"n"`
}

// Set is a validated collection of definitions.
type Set struct {
	names   []string
	configs map[string]proj.Config
}

// Load reads a definition file.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a document held in memory.
func Parse(data []byte) (*Set, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a document and validates every definition. Unknown fields
// are rejected. All invalid definitions are reported together in a
// *multierror.Error.
func Decode(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding projections: %w", err)
	}
	return NewSet(doc.Projections)
}

// NewSet validates definitions and indexes them by name.
func NewSet(defs []Definition) (*Set, error) {
	s := &Set{configs: make(map[string]proj.Config, len(defs))}
	var merr *multierror.Error
	for i, d := range defs {
		if d.Name == "" {
			merr = multierror.Append(merr, fmt.Errorf("projection %d: missing name", i))
			continue
		}
		if _, dup := s.configs[d.Name]; dup {
			merr = multierror.Append(merr, fmt.Errorf("projection %q: duplicate name", d.Name))
			continue
		}
		cfg, err := d.Config()
		if err == nil {
			_, err = proj.Compile(cfg)
		}
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("projection %q: %w", d.Name, err))
			continue
		}
		s.names = append(s.names, d.Name)
		s.configs[d.Name] = cfg
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

// Names returns the definition names in document order.
func (s *Set) Names() []string {
	return append([]string(nil), s.names...)
}

// Lookup returns the configuration of a named projection.
func (s *Set) Lookup(name string) (proj.Config, bool) {
	cfg, ok := s.configs[name]
	return cfg, ok
}

// Projection compiles a named projection.
func (s *Set) Projection(name string) (*proj.Projection, error) {
	cfg, ok := s.configs[name]
	if !ok {
		return nil, fmt.Errorf("projection %q not defined", name)
	}
	return proj.Compile(cfg)
}

// Config converts the definition into a projection configuration. Only
// the names and the shape of the fields are checked here; proj.Compile
// decides whether the geometry is usable.
func (d Definition) Config() (proj.Config, error) {
	if d.EPSG != 0 {
		return d.epsgConfig()
	}

	var cfg proj.Config
	var err error
	if cfg.Kind, err = proj.ParseKind(d.Kind); err != nil {
		return proj.Config{}, err
	}
	if cfg.Datum, err = proj.ParseDatum(d.Datum); err != nil {
		return proj.Config{}, err
	}
	if cfg.Unit, err = proj.ParseUnit(d.Unit); err != nil {
		return proj.Config{}, err
	}
	if d.Ellipsoid != nil {
		if d.Datum != "" {
			return proj.Config{}, fmt.Errorf("both datum and ellipsoid given: %w", proj.ErrInvalidParameter)
		}
		cfg.Ellipsoid = d.Ellipsoid.resolve()
	}

	cfg.Zone = d.Zone
	cfg.CenterLon = radians(d.CenterLon)
	cfg.CenterLat = radians(d.CenterLat)
	cfg.FalseEasting = d.FalseEasting
	cfg.FalseNorthing = d.FalseNorthing
	cfg.ScaleFactor = d.ScaleFactor
	cfg.Height = d.Height
	cfg.Angle = radians(d.Angle)
	if d.Shape != nil {
		cfg.ShapeM, cfg.ShapeN = d.Shape.M, d.Shape.N
	}

	switch len(d.StandardParallels) {
	case 0:
	case 1:
		cfg.StdParallel1 = radians(d.StandardParallels[0])
	case 2:
		cfg.StdParallel1 = radians(d.StandardParallels[0])
		cfg.StdParallel2 = radians(d.StandardParallels[1])
		if cfg.Kind == proj.EquidistantConic {
			cfg.Mode = 1
		}
	default:
		return proj.Config{}, fmt.Errorf("%d standard parallels: %w", len(d.StandardParallels), proj.ErrInvalidParameter)
	}

	switch {
	case d.Azimuth != nil && d.Points != nil:
		return proj.Config{}, fmt.Errorf("both azimuth and points given: %w", proj.ErrInvalidParameter)
	case d.Azimuth != nil:
		cfg.Mode = 1
		cfg.Azimuth = radians(*d.Azimuth)
	case d.Points != nil:
		if len(d.Points) != 2 || len(d.Points[0]) != 2 || len(d.Points[1]) != 2 {
			return proj.Config{}, fmt.Errorf("points must be two [lon, lat] pairs: %w", proj.ErrInvalidParameter)
		}
		cfg.Lon1, cfg.Lat1 = radians(d.Points[0][0]), radians(d.Points[0][1])
		cfg.Lon2, cfg.Lat2 = radians(d.Points[1][0]), radians(d.Points[1][1])
	}

	if o := d.Orbit; o != nil {
		switch {
		case o.Satellite != 0 && o.Period != 0:
			return proj.Config{}, fmt.Errorf("both satellite and period given: %w", proj.ErrInvalidParameter)
		case o.Satellite != 0:
			cfg.Satellite, cfg.Path = o.Satellite, o.Path
		default:
			cfg.Mode = 1
			cfg.Inclination = radians(o.Inclination)
			cfg.Period = o.Period
			cfg.StartFlag = o.LateStart
		}
	}
	return cfg, nil
}

// epsgConfig takes the registered system; only the output unit may be
// overridden.
func (d Definition) epsgConfig() (proj.Config, error) {
	if d.Kind != "" {
		return proj.Config{}, fmt.Errorf("both epsg and kind given: %w", proj.ErrInvalidParameter)
	}
	cfg, err := coord.ForEPSG(d.EPSG)
	if err != nil {
		return proj.Config{}, err
	}
	if d.Unit != "" {
		if cfg.Unit, err = proj.ParseUnit(d.Unit); err != nil {
			return proj.Config{}, err
		}
	}
	return cfg, nil
}

func (e *Ellipsoid) resolve() proj.Ellipsoid {
	out := proj.Ellipsoid{SemiMajor: e.SemiMajor, SemiMinor: e.SemiMajor, Radius: e.Radius}
	switch {
	case e.SemiMinor != 0:
		out.SemiMinor = e.SemiMinor
	case e.EccentricitySquared != 0:
		out.SemiMinor = e.SemiMajor * math.Sqrt(1-e.EccentricitySquared)
	}
	if out.Radius == 0 {
		out.Radius = e.SemiMajor
	}
	return out
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

package proj

import "sync"

// State is the lifecycle state of an Instance.
type State int

const (
	// StateUninitialized means the configuration changed since the last
	// compile (or was never compiled).
	StateUninitialized State = iota
	// StateReady means a compiled projection is available.
	StateReady
	// StateErrored means the last compile failed. Transforms return that
	// error until a setter runs.
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateErrored:
		return "errored"
	}
	return "uninitialized"
}

// Instance is a mutable projection: a Config plus the projection compiled
// from it. Setters invalidate the compiled state, and the next transform (or
// Init) compiles again. Per-point errors never change the state.
//
// An Instance is safe for concurrent use, but every call takes its lock.
// Use Snapshot to transform many points in parallel.
type Instance struct {
	mu    sync.Mutex
	cfg   Config
	state State
	p     *Projection
	err   error
}

// NewInstance returns an uninitialized instance for cfg.
func NewInstance(cfg Config) *Instance {
	return &Instance{cfg: cfg}
}

// NewInstanceParams decodes a positional parameter set into an instance.
func NewInstanceParams(kind Kind, p Params) (*Instance, error) {
	cfg, err := Decode(kind, p)
	if err != nil {
		return nil, err
	}
	return NewInstance(cfg), nil
}

// State reports the current lifecycle state.
func (in *Instance) State() State {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.state
}

// Config returns a copy of the current configuration.
func (in *Instance) Config() Config {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.cfg
}

// Err returns the configuration error of an errored instance.
func (in *Instance) Err() error {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.err
}

// Update applies fn to the configuration and invalidates the instance.
func (in *Instance) Update(fn func(*Config)) {
	in.mu.Lock()
	defer in.mu.Unlock()
	fn(&in.cfg)
	in.state, in.p, in.err = StateUninitialized, nil, nil
}

// SetCenter sets the center longitude and latitude in radians.
func (in *Instance) SetCenter(lon, lat float64) {
	in.Update(func(c *Config) { c.CenterLon, c.CenterLat = lon, lat })
}

// SetFalseOrigin sets the false easting and northing in meters.
func (in *Instance) SetFalseOrigin(easting, northing float64) {
	in.Update(func(c *Config) { c.FalseEasting, c.FalseNorthing = easting, northing })
}

// SetStandardParallels sets both standard parallels in radians.
func (in *Instance) SetStandardParallels(lat1, lat2 float64) {
	in.Update(func(c *Config) { c.StdParallel1, c.StdParallel2 = lat1, lat2 })
}

// SetEllipsoid sets explicit ellipsoid axes.
func (in *Instance) SetEllipsoid(e Ellipsoid) {
	in.Update(func(c *Config) { c.Datum, c.Ellipsoid = DatumFromParams, e })
}

// SetDatum selects a table spheroid, replacing any explicit ellipsoid.
func (in *Instance) SetDatum(d Datum) {
	in.Update(func(c *Config) { c.Datum, c.Ellipsoid = d, Ellipsoid{} })
}

// SetUnit sets the unit of projected (or, for Geographic, output angular)
// coordinates.
func (in *Instance) SetUnit(u Unit) {
	in.Update(func(c *Config) { c.Unit = u })
}

// Init compiles the configuration if needed and returns the configuration
// error, if any.
func (in *Instance) Init() error {
	_, err := in.Snapshot()
	return err
}

// Snapshot returns the compiled projection, compiling it first if the
// instance is uninitialized. The result stays valid after later setters.
func (in *Instance) Snapshot() (*Projection, error) {
	in.mu.Lock()
	defer in.mu.Unlock()
	switch in.state {
	case StateReady:
		return in.p, nil
	case StateErrored:
		return nil, in.err
	}
	p, err := Compile(in.cfg)
	if err != nil {
		in.state, in.err = StateErrored, err
		return nil, err
	}
	in.state, in.p = StateReady, p
	return p, nil
}

// Forward projects a geographic point, compiling first if needed.
func (in *Instance) Forward(lon, lat float64) (x, y float64, err error) {
	p, err := in.Snapshot()
	if err != nil {
		return 0, 0, err
	}
	return p.Forward(lon, lat)
}

// Inverse recovers a geographic point, compiling first if needed.
func (in *Instance) Inverse(x, y float64) (lon, lat float64, err error) {
	p, err := in.Snapshot()
	if err != nil {
		return 0, 0, err
	}
	return p.Inverse(x, y)
}

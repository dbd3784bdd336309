package proj

import (
	"errors"
	"math"
	"sync"
	"testing"
)

func TestInstanceLifecycle(t *testing.T) {
	in := NewInstance(Config{Kind: LambertConformalConic, Datum: WGS84,
		StdParallel1: deg(33), StdParallel2: deg(45), CenterLon: deg(-96), CenterLat: deg(23)})
	if in.State() != StateUninitialized {
		t.Fatalf("State() = %v, want %v", in.State(), StateUninitialized)
	}

	x, y, err := in.Forward(deg(-100), deg(35))
	if err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if in.State() != StateReady {
		t.Errorf("State() after Forward = %v, want %v", in.State(), StateReady)
	}

	// A point singularity leaves the instance ready.
	if _, _, err := in.Forward(0, -math.Pi/2); !errors.Is(err, ErrPoleSingularity) {
		t.Errorf("Forward(south pole) error = %v, want %v", err, ErrPoleSingularity)
	}
	if in.State() != StateReady {
		t.Errorf("State() after point error = %v, want %v", in.State(), StateReady)
	}

	// A setter invalidates; bad parallels then make the instance errored.
	in.SetStandardParallels(deg(30), deg(-30))
	if in.State() != StateUninitialized {
		t.Errorf("State() after setter = %v, want %v", in.State(), StateUninitialized)
	}
	if err := in.Init(); !errors.Is(err, ErrDegenerateParallels) {
		t.Fatalf("Init() = %v, want %v", err, ErrDegenerateParallels)
	}
	if in.State() != StateErrored {
		t.Errorf("State() = %v, want %v", in.State(), StateErrored)
	}
	if _, _, err := in.Inverse(x, y); !errors.Is(err, ErrDegenerateParallels) {
		t.Errorf("Inverse on errored instance = %v, want %v", err, ErrDegenerateParallels)
	}
	if !errors.Is(in.Err(), ErrDegenerateParallels) {
		t.Errorf("Err() = %v, want %v", in.Err(), ErrDegenerateParallels)
	}

	// Any setter recovers.
	in.SetStandardParallels(deg(33), deg(45))
	if in.Err() != nil {
		t.Errorf("Err() after setter = %v, want nil", in.Err())
	}
	lon, lat, err := in.Inverse(x, y)
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if lonDiff(lon, deg(-100)) > 1e-9 || math.Abs(lat-deg(35)) > 1e-9 {
		t.Errorf("Inverse(%v, %v) = (%v, %v), want (-100°, 35°)", x, y, lon, lat)
	}
}

func TestInstanceSetters(t *testing.T) {
	in := NewInstance(Config{Kind: Sinusoidal, Ellipsoid: Sphere(1)})

	in.SetCenter(deg(10), 0)
	in.SetFalseOrigin(100, 200)
	x, y, err := in.Forward(deg(10), 0)
	if err != nil {
		t.Fatal(err)
	}
	if x != 100 || y != 200 {
		t.Errorf("Forward at center = (%v, %v), want (100, 200)", x, y)
	}

	in.SetEllipsoid(Sphere(2))
	x, _, _ = in.Forward(deg(10)+1, 0)
	if math.Abs(x-102) > 1e-12 {
		t.Errorf("Forward on radius 2 x = %v, want 102", x)
	}

	in.SetUnit(UnitIntFeet)
	x, _, _ = in.Forward(deg(10)+1, 0)
	if math.Abs(x-102/0.3048) > 1e-9 {
		t.Errorf("Forward in feet x = %v, want %v", x, 102/0.3048)
	}

	in.SetDatum(WGS84)
	if got := in.Config(); got.Datum != WGS84 || got.Ellipsoid != (Ellipsoid{}) {
		t.Errorf("Config() after SetDatum = %+v", got)
	}
	p, err := in.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	// Spherical kinds on a table datum use the reference sphere.
	if got := p.Config().Ellipsoid.Radius; got != SphereRadius {
		t.Errorf("Radius = %v, want %v", got, SphereRadius)
	}

	in.Update(func(c *Config) { c.Kind = Mollweide })
	if in.State() != StateUninitialized {
		t.Errorf("State() after Update = %v, want %v", in.State(), StateUninitialized)
	}
	// The earlier snapshot is unaffected.
	if p.Kind() != Sinusoidal {
		t.Errorf("snapshot Kind() = %v, want %v", p.Kind(), Sinusoidal)
	}
}

func TestInstanceFromParams(t *testing.T) {
	var p Params
	p.Zone = 31
	p.Datum = WGS84
	in, err := NewInstanceParams(UTM, p)
	if err != nil {
		t.Fatal(err)
	}
	x, y, err := in.Forward(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-166021.4431) > 1e-3 || y != 0 {
		t.Errorf("Forward(0, 0) = (%v, %v), want (166021.4431, 0)", x, y)
	}

	p.Slots[4] = 400000000
	if _, err := NewInstanceParams(UTM, p); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("NewInstanceParams with bad DMS = %v, want %v", err, ErrInvalidParameter)
	}
}

func TestInstanceConcurrent(t *testing.T) {
	in := NewInstance(Config{Kind: Robinson})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lon := deg(float64(i*10 - 40))
			x, y, err := in.Forward(lon, deg(20))
			if err != nil {
				t.Errorf("Forward: %v", err)
				return
			}
			got, _, err := in.Inverse(x, y)
			if err != nil || math.Abs(got-lon) > 1e-7 {
				t.Errorf("Inverse(%v, %v) = %v, %v, want %v", x, y, got, err, lon)
			}
		}(i)
	}
	wg.Wait()
}

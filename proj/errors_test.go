package proj

import (
	"errors"
	"math"
	"testing"
)

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		wantErr  error
		wantCode int
	}{
		{"lambert opposite parallels", Config{Kind: LambertConformalConic, Datum: WGS84,
			StdParallel1: deg(30), StdParallel2: deg(-30)}, ErrDegenerateParallels, 41},
		{"albers opposite parallels", Config{Kind: Albers, Datum: GRS1980,
			StdParallel1: deg(20), StdParallel2: deg(-20)}, ErrDegenerateParallels, 31},
		{"equidistant conic opposite parallels", Config{Kind: EquidistantConic, Datum: GRS1980, Mode: 1,
			StdParallel1: deg(20), StdParallel2: deg(-20)}, ErrDegenerateParallels, 81},
		{"equidistant conic on equator", Config{Kind: EquidistantConic, Datum: GRS1980}, ErrDegenerateParallels, 82},
		{"utm zone", Config{Kind: UTM, Datum: WGS84, Zone: 61}, ErrInvalidParameter, 11},
		{"utm no zone", Config{Kind: UTM, Datum: WGS84}, ErrInvalidParameter, 11},
		{"transverse mercator scale", Config{Kind: TransverseMercator, Datum: WGS84}, ErrInvalidParameter, 91},
		{"mercator true scale at pole", Config{Kind: Mercator, Datum: WGS84, CenterLat: deg(90)}, ErrInvalidParameter, 51},
		{"perspective height", Config{Kind: NearSidePerspective}, ErrInvalidParameter, 151},
		{"hotine azimuth on equator", Config{Kind: HotineObliqueMercator, Datum: WGS84, ScaleFactor: 1,
			Mode: 1, Azimuth: deg(30)}, ErrInvalidParameter, 201},
		{"hotine two equal latitudes", Config{Kind: HotineObliqueMercator, Datum: WGS84, ScaleFactor: 1,
			Lon1: deg(-100), Lat1: deg(40), Lon2: deg(-90), Lat2: deg(40)}, ErrInvalidParameter, 202},
		{"oblated shape", Config{Kind: OblatedEqualArea, ShapeM: 0, ShapeN: 1}, ErrInvalidParameter, 301},
		{"unit mismatch", Config{Kind: Mercator, Datum: WGS84, Unit: UnitDegree}, ErrInvalidParameter, 1101},
		{"unknown unit", Config{Kind: Mercator, Datum: WGS84, Unit: Unit(42)}, ErrInvalidParameter, 1101},
		{"inverted axes", Config{Kind: Mercator, Ellipsoid: Ellipsoid{SemiMajor: 1, SemiMinor: 2, Radius: 1}},
			ErrInvalidParameter, 1102},
		{"state plane", Config{Kind: StatePlane, Datum: Clarke1866}, ErrUnsupported, 0},
		{"space oblique without satellite", Config{Kind: SpaceObliqueMercator, Datum: WGS84}, ErrInvalidParameter, 213},
		{"space oblique landsat 5 path", Config{Kind: SpaceObliqueMercator, Datum: WGS84, Satellite: 5, Path: 234},
			ErrInvalidParameter, 213},
		{"space oblique orbit period", Config{Kind: SpaceObliqueMercator, Datum: WGS84, Mode: 1, Inclination: deg(98)},
			ErrInvalidParameter, 213},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.cfg)
			if err == nil {
				t.Fatalf("Compile(%+v) = %v, want error", tt.cfg, p)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Compile error = %v, want %v", err, tt.wantErr)
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Compile error %T is not a *ConfigError", err)
			}
			if ce.Code != tt.wantCode || ce.Kind != tt.cfg.Kind {
				t.Errorf("ConfigError = {Kind: %v, Code: %d}, want {Kind: %v, Code: %d}",
					ce.Kind, ce.Code, tt.cfg.Kind, tt.wantCode)
			}
		})
	}
}

func TestPointErrors(t *testing.T) {
	const r = SphereRadius
	tests := []struct {
		name     string
		cfg      Config
		inverse  bool
		a, b     float64
		wantErr  error
		wantCode int
	}{
		{"stereographic antipode", Config{Kind: Stereographic}, false, math.Pi, 0, ErrAntipodalPoint, 103},
		{"lambert azimuthal antipode", Config{Kind: LambertAzimuthal}, false, math.Pi, 0, ErrAntipodalPoint, 113},
		{"gnomonic horizon", Config{Kind: Gnomonic}, false, deg(120), 0, ErrPoleSingularity, 133},
		{"orthographic far side", Config{Kind: Orthographic}, false, deg(150), 0, ErrPoleSingularity, 143},
		{"mercator pole", Config{Kind: Mercator, Datum: WGS84}, false, 0, math.Pi / 2, ErrPoleSingularity, 52},
		{"lambert conformal south pole", Config{Kind: LambertConformalConic, Datum: WGS84,
			StdParallel1: deg(33), StdParallel2: deg(45)}, false, 0, -math.Pi / 2, ErrPoleSingularity, 44},
		{"polar stereographic opposite pole", Config{Kind: PolarStereographic, Datum: WGS84, CenterLat: deg(90)},
			false, 0, -math.Pi / 2, ErrPoleSingularity, 61},
		{"sinusoidal beyond pole", Config{Kind: Sinusoidal}, true, 0, 2 * r, ErrOutOfRange, 164},
		{"equirectangular beyond pole", Config{Kind: Equirectangular}, true, 0, -2 * r, ErrOutOfRange, 174},
		{"lambert azimuthal beyond disc", Config{Kind: LambertAzimuthal}, true, 3 * r, 0, ErrOutOfRange, 115},
		{"orthographic beyond disc", Config{Kind: Orthographic}, true, 0, 1.1 * r, ErrOutOfRange, 145},
		{"azimuthal equidistant beyond disc", Config{Kind: AzimuthalEquidistant}, true, 4 * r, 0, ErrOutOfRange, 125},
		{"mollweide beyond ellipse", Config{Kind: Mollweide}, true, 0, 1.5 * r, ErrOutOfRange, 242},
		{"hammer beyond ellipse", Config{Kind: Hammer}, true, 3 * r, 1.2 * r, ErrOutOfRange, 271},
		{"robinson beyond pole", Config{Kind: Robinson}, true, 0, 2 * r, ErrOutOfRange, 233},
		{"van der grinten beyond circle", Config{Kind: VanDerGrinten}, true, 3 * r, 3 * r, ErrOutOfRange, 191},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.cfg)
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			var u, v float64
			op := "forward"
			if tt.inverse {
				op = "inverse"
				u, v, err = p.Inverse(tt.a, tt.b)
			} else {
				u, v, err = p.Forward(tt.a, tt.b)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("%s(%v, %v) error = %v, want %v", op, tt.a, tt.b, err, tt.wantErr)
			}
			if u != 0 || v != 0 {
				t.Errorf("%s(%v, %v) = (%v, %v) with error, want zeros", op, tt.a, tt.b, u, v)
			}
			var pe *PointError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *PointError", err)
			}
			if pe.Code != tt.wantCode || pe.Op != op || pe.X != tt.a || pe.Y != tt.b || pe.Kind != tt.cfg.Kind {
				t.Errorf("PointError = %+v, want code %d op %s input (%v, %v)", pe, tt.wantCode, op, tt.a, tt.b)
			}
			if StatusOf(err) != StatusFailed {
				t.Errorf("StatusOf(%v) = %v, want %v", err, StatusOf(err), StatusFailed)
			}
		})
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want Status
	}{
		{nil, StatusOK},
		{ErrNonConvergence, StatusFailed},
		{&PointError{Err: ErrInBreak}, StatusInBreak},
		{&ConfigError{Err: ErrUnsupported}, StatusFailed},
	}
	for _, tt := range tests {
		if got := StatusOf(tt.err); got != tt.want {
			t.Errorf("StatusOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestTransverseMercatorInverseNonConvergence(t *testing.T) {
	p, err := Compile(Config{Kind: UTM, Datum: WGS84, Zone: 31})
	if err != nil {
		t.Fatal(err)
	}
	_, _, err = p.Inverse(500000, math.NaN())
	var pe *PointError
	if !errors.Is(err, ErrNonConvergence) || !errors.As(err, &pe) || pe.Code != 95 {
		t.Errorf("Inverse(500000, NaN) error = %v, want code 95 %v", err, ErrNonConvergence)
	}
}

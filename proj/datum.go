package proj

import (
	"fmt"
	"math"
	"strings"
)

// Datum selects a reference spheroid. The zero value reads the ellipsoid
// from parameter slots 0 and 1 instead.
type Datum int

const (
	DatumFromParams Datum = iota
	Clarke1866
	Clarke1880
	Bessel
	International1967
	International1909
	WGS72
	Everest
	WGS66
	GRS1980
	Airy
	ModifiedEverest
	ModifiedAiry
	WGS84
	SoutheastAsia
	AustralianNational
	Krassovsky
	Hough
	Mercury1960
	ModifiedMercury1968
	SphereDatum
	Bessel1841Namibia
	EverestSabah
	EverestIndia1956
	EverestMalaysia1969
	EverestMalay1948
	EverestPakistan
	Hayford
	Helmert1906
	Indonesian1974
	SouthAmerican1969
	WGS60
)

// SphereRadius is the radius of the GCTP reference sphere.
const SphereRadius = 6370997.0

var spheroids = [...]struct {
	name         string
	major, minor float64
}{
	Clarke1866:          {"clarke-1866", 6378206.4, 6356583.8},
	Clarke1880:          {"clarke-1880", 6378249.145, 6356514.86955},
	Bessel:              {"bessel", 6377397.155, 6356078.96284},
	International1967:   {"international-1967", 6378157.5, 6356772.2},
	International1909:   {"international-1909", 6378388.0, 6356911.94613},
	WGS72:               {"wgs72", 6378135.0, 6356750.519915},
	Everest:             {"everest", 6377276.3452, 6356075.4133},
	WGS66:               {"wgs66", 6378145.0, 6356759.769356},
	GRS1980:             {"grs1980", 6378137.0, 6356752.31414},
	Airy:                {"airy", 6377563.396, 6356256.91},
	ModifiedEverest:     {"modified-everest", 6377304.063, 6356103.039},
	ModifiedAiry:        {"modified-airy", 6377340.189, 6356034.448},
	WGS84:               {"wgs84", 6378137.0, 6356752.314245},
	SoutheastAsia:       {"southeast-asia", 6378155.0, 6356773.3205},
	AustralianNational:  {"australian-national", 6378160.0, 6356774.719},
	Krassovsky:          {"krassovsky", 6378245.0, 6356863.0188},
	Hough:               {"hough", 6378270.0, 6356794.343479},
	Mercury1960:         {"mercury-1960", 6378166.0, 6356784.283666},
	ModifiedMercury1968: {"modified-mercury-1968", 6378150.0, 6356768.337303},
	SphereDatum:         {"sphere", SphereRadius, SphereRadius},
	Bessel1841Namibia:   {"bessel-1841-namibia", 6377483.865, 6356165.382966},
	EverestSabah:        {"everest-sabah", 6377298.556, 6356097.5503},
	EverestIndia1956:    {"everest-india-1956", 6377301.243, 6356100.2284},
	EverestMalaysia1969: {"everest-malaysia-1969", 6377295.664, 6356094.6679},
	EverestMalay1948:    {"everest-malay-1948", 6377304.063, 6356103.0390},
	EverestPakistan:     {"everest-pakistan", 6377309.613, 6356170.5712},
	Hayford:             {"hayford", 6378388.0, 6356911.9461},
	Helmert1906:         {"helmert-1906", 6378200.0, 6356818.1693},
	Indonesian1974:      {"indonesian-1974", 6378160.0, 6356774.5041},
	SouthAmerican1969:   {"south-american-1969", 6378160.0, 6356774.7192},
	WGS60:               {"wgs60", 6378165.0, 6356783.2870},
}

func (d Datum) String() string {
	if d == DatumFromParams {
		return "params"
	}
	if d > 0 && int(d) < len(spheroids) {
		return spheroids[d].name
	}
	return fmt.Sprintf("datum(%d)", int(d))
}

// ParseDatum looks a datum up by its String name.
func ParseDatum(name string) (Datum, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "params" {
		return DatumFromParams, nil
	}
	for d := 1; d < len(spheroids); d++ {
		if spheroids[d].name == name {
			return Datum(d), nil
		}
	}
	return 0, fmt.Errorf("unknown datum %q: %w", name, ErrInvalidParameter)
}

// DatumFromCode maps a GCTP spheroid code: negative reads the parameter
// slots, 0..30 select the table, anything larger falls back to Clarke 1866.
func DatumFromCode(code int) Datum {
	switch {
	case code < 0:
		return DatumFromParams
	case code >= len(spheroids)-1:
		return Clarke1866
	}
	return Datum(code + 1)
}

// Code returns the GCTP spheroid code, -1 for DatumFromParams.
func (d Datum) Code() int { return int(d) - 1 }

// Ellipsoid describes the figure of the earth. Radius is the sphere used by
// the spherical-only projections.
type Ellipsoid struct {
	SemiMajor float64
	SemiMinor float64
	Radius    float64
}

// Sphere returns a spherical ellipsoid of radius r.
func Sphere(r float64) Ellipsoid {
	return Ellipsoid{SemiMajor: r, SemiMinor: r, Radius: r}
}

// Es returns the squared eccentricity.
func (e Ellipsoid) Es() float64 {
	t := e.SemiMinor / e.SemiMajor
	return 1 - t*t
}

func (e Ellipsoid) validate() error {
	switch {
	case !(e.SemiMajor > 0) || math.IsInf(e.SemiMajor, 0):
		return fmt.Errorf("semi-major axis %v: %w", e.SemiMajor, ErrInvalidParameter)
	case !(e.SemiMinor > 0) || e.SemiMinor > e.SemiMajor:
		return fmt.Errorf("semi-minor axis %v with semi-major %v: %w", e.SemiMinor, e.SemiMajor, ErrInvalidParameter)
	case !(e.Radius > 0) || math.IsInf(e.Radius, 0):
		return fmt.Errorf("sphere radius %v: %w", e.Radius, ErrInvalidParameter)
	}
	return nil
}

// ResolveEllipsoid picks the ellipsoid for a datum. For DatumFromParams the
// major value is the semi-major axis; minor is the semi-minor axis when
// greater than one, the squared eccentricity when in (0, 1], and zero means a
// sphere. With no major axis, a positive minor selects Clarke 1866 and
// otherwise the reference sphere is used.
func ResolveEllipsoid(d Datum, major, minor float64) Ellipsoid {
	if d != DatumFromParams {
		if d < 0 || int(d) >= len(spheroids) {
			d = Clarke1866
		}
		s := spheroids[d]
		return Ellipsoid{SemiMajor: s.major, SemiMinor: s.minor, Radius: SphereRadius}
	}

	major, minor = math.Abs(major), math.Abs(minor)
	switch {
	case major > 0 && minor > 1:
		return Ellipsoid{SemiMajor: major, SemiMinor: minor, Radius: major}
	case major > 0 && minor > 0:
		return Ellipsoid{SemiMajor: major, SemiMinor: math.Sqrt(1-minor) * major, Radius: major}
	case major > 0:
		return Sphere(major)
	case minor > 0:
		s := spheroids[Clarke1866]
		return Ellipsoid{SemiMajor: s.major, SemiMinor: s.minor, Radius: s.major}
	}
	return Sphere(SphereRadius)
}

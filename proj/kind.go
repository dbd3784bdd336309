package proj

import (
	"fmt"
	"strings"
)

// Kind identifies a projection. The values are the GCTP projection codes.
type Kind int

const (
	Geographic            Kind = 0
	UTM                   Kind = 1
	StatePlane            Kind = 2
	Albers                Kind = 3
	LambertConformalConic Kind = 4
	Mercator              Kind = 5
	PolarStereographic    Kind = 6
	Polyconic             Kind = 7
	EquidistantConic      Kind = 8
	TransverseMercator    Kind = 9
	Stereographic         Kind = 10
	LambertAzimuthal      Kind = 11
	AzimuthalEquidistant  Kind = 12
	Gnomonic              Kind = 13
	Orthographic          Kind = 14
	NearSidePerspective   Kind = 15
	Sinusoidal            Kind = 16
	Equirectangular       Kind = 17
	Miller                Kind = 18
	VanDerGrinten         Kind = 19
	HotineObliqueMercator Kind = 20
	Robinson              Kind = 21
	SpaceObliqueMercator  Kind = 22
	AlaskaConformal       Kind = 23
	GoodeHomolosine       Kind = 24
	Mollweide             Kind = 25
	InterruptedMollweide  Kind = 26
	Hammer                Kind = 27
	WagnerIV              Kind = 28
	WagnerVII             Kind = 29
	OblatedEqualArea      Kind = 30
)

var kindNames = [...]string{
	Geographic:            "geographic",
	UTM:                   "utm",
	StatePlane:            "state-plane",
	Albers:                "albers",
	LambertConformalConic: "lambert-conformal-conic",
	Mercator:              "mercator",
	PolarStereographic:    "polar-stereographic",
	Polyconic:             "polyconic",
	EquidistantConic:      "equidistant-conic",
	TransverseMercator:    "transverse-mercator",
	Stereographic:         "stereographic",
	LambertAzimuthal:      "lambert-azimuthal",
	AzimuthalEquidistant:  "azimuthal-equidistant",
	Gnomonic:              "gnomonic",
	Orthographic:          "orthographic",
	NearSidePerspective:   "near-side-perspective",
	Sinusoidal:            "sinusoidal",
	Equirectangular:       "equirectangular",
	Miller:                "miller",
	VanDerGrinten:         "van-der-grinten",
	HotineObliqueMercator: "hotine-oblique-mercator",
	Robinson:              "robinson",
	SpaceObliqueMercator:  "space-oblique-mercator",
	AlaskaConformal:       "alaska-conformal",
	GoodeHomolosine:       "goode-homolosine",
	Mollweide:             "mollweide",
	InterruptedMollweide:  "interrupted-mollweide",
	Hammer:                "hammer",
	WagnerIV:              "wagner-iv",
	WagnerVII:             "wagner-vii",
	OblatedEqualArea:      "oblated-equal-area",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind looks a kind up by its String name, ignoring case.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown projection %q: %w", name, ErrUnsupported)
}

// Kinds returns every kind that Compile can build.
func Kinds() []Kind {
	var out []Kind
	for k := range kindNames {
		if Kind(k).supported() {
			out = append(out, Kind(k))
		}
	}
	return out
}

func (k Kind) supported() bool {
	switch k {
	case StatePlane:
		return false
	}
	return k >= 0 && int(k) < len(kindNames)
}

// conic reports whether slots 2 and 3 hold standard parallels.
func (k Kind) conic() bool {
	return k == Albers || k == LambertConformalConic || k == EquidistantConic
}

package proj

import (
	"fmt"
	"strings"
)

// Unit selects the unit of projected (or, for Geographic, angular)
// coordinates. The zero value means meters for projected kinds and radians
// for Geographic.
type Unit int

const (
	UnitDefault Unit = iota
	UnitRadian
	UnitFeet // US survey foot
	UnitMeter
	UnitSecond
	UnitDegree
	UnitIntFeet // international foot
)

var unitNames = [...]string{
	UnitDefault: "default",
	UnitRadian:  "radian",
	UnitFeet:    "feet",
	UnitMeter:   "meter",
	UnitSecond:  "second",
	UnitDegree:  "degree",
	UnitIntFeet: "int-feet",
}

func (u Unit) String() string {
	if u >= 0 && int(u) < len(unitNames) {
		return unitNames[u]
	}
	return fmt.Sprintf("unit(%d)", int(u))
}

// ParseUnit looks a unit up by its String name.
func ParseUnit(name string) (Unit, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return UnitDefault, nil
	}
	for u, n := range unitNames {
		if n == name {
			return Unit(u), nil
		}
	}
	return 0, fmt.Errorf("unknown unit %q: %w", name, ErrInvalidParameter)
}

// UnitFromCode maps a GCTP unit code (0 radians … 5 international feet).
func UnitFromCode(code int) (Unit, error) {
	if code < 0 || code > 5 {
		return 0, fmt.Errorf("unit code %d: %w", code, ErrInvalidParameter)
	}
	return Unit(code + 1), nil
}

// unitFactors[from][to] multiplies a value in unit "from" into unit "to".
// Zero marks an incompatible pair. Rows and columns follow GCTP code order.
var unitFactors = [6][6]float64{
	{1, 0, 0, 206264.8062470963, 57.29577951308231, 0},
	{0, 1, .3048006096012192, 0, 0, 1.000002000004},
	{0, 3.280833333333333, 1, 0, 0, 3.280839895013124},
	{4.848136811095361e-6, 0, 0, 1, .2777777777777778e-3, 0},
	{.1745329251994330e-1, 0, 0, 3600, 1, 0},
	{0, .9999980000039999, .3048, 0, 0, 1},
}

// UnitFactor returns the multiplier converting a value in from into to.
func UnitFactor(from, to Unit) (float64, error) {
	if from <= UnitDefault || from > UnitIntFeet || to <= UnitDefault || to > UnitIntFeet {
		return 0, fmt.Errorf("unit conversion %s to %s: %w", from, to, ErrInvalidParameter)
	}
	f := unitFactors[from-1][to-1]
	if f == 0 {
		return 0, fmt.Errorf("units %s and %s are incompatible: %w", from, to, ErrInvalidParameter)
	}
	return f, nil
}

// Angular reports whether u measures angles.
func (u Unit) Angular() bool {
	return u == UnitRadian || u == UnitSecond || u == UnitDegree
}

package numeric

import (
	"errors"
	"fmt"
	"math"
)

// ErrPackedDMS reports a packed DMS value with an out-of-range field.
var ErrPackedDMS = errors.New("illegal packed DMS field")

// Paksz decodes a packed DDDMMMSSS.SS angle into decimal degrees. A field
// out of range (degrees > 360, minutes > 60, seconds > 60) is reported through
// the error; the returned value is then meaningless.
func Paksz(ang float64) (float64, error) {
	if math.IsNaN(ang) || math.IsInf(ang, 0) {
		return 0, fmt.Errorf("paksz %v: %w", ang, ErrPackedDMS)
	}
	fac := Sign(ang)
	sec := math.Abs(ang)

	deg := math.Trunc(sec / 1e6)
	if deg > 360 {
		return 0, fmt.Errorf("paksz %v: degrees: %w", ang, ErrPackedDMS)
	}
	sec -= deg * 1e6

	mins := math.Trunc(sec / 1000)
	if mins > 60 {
		return 0, fmt.Errorf("paksz %v: minutes: %w", ang, ErrPackedDMS)
	}
	sec -= mins * 1000

	if sec > 60 {
		return 0, fmt.Errorf("paksz %v: seconds: %w", ang, ErrPackedDMS)
	}
	return fac * (deg*3600 + mins*60 + sec) / 3600, nil
}

// DMSToRadians decodes a packed DMS angle straight to radians.
func DMSToRadians(ang float64) (float64, error) {
	deg, err := Paksz(ang)
	if err != nil {
		return 0, err
	}
	return deg * D2R, nil
}

// Pakr2dm packs an angle in radians as DDDMMMSSS.SS.
func Pakr2dm(rad float64) float64 {
	deg := rad * R2D
	con := math.Abs(deg)
	degs := math.Trunc(con)
	con = (con - degs) * 60
	mins := math.Trunc(con)
	secs := (con - mins) * 60
	con = degs*1e6 + mins*1000 + secs
	if deg < 0 {
		con = -con
	}
	return con
}

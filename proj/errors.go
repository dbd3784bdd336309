package proj

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by this package matches exactly one
// of them with errors.Is.
var (
	// ErrInvalidParameter reports a parameter that can never describe a
	// projection (bad packed angle, unknown unit, non-positive axis).
	ErrInvalidParameter = errors.New("invalid projection parameter")

	// ErrUnsupported reports a kind that cannot be compiled.
	ErrUnsupported = errors.New("unsupported projection")

	// ErrDegenerateParallels reports standard parallels that leave a conic
	// without a cone constant.
	ErrDegenerateParallels = errors.New("degenerate standard parallels")

	// ErrAntipodalPoint reports a point opposite the projection center.
	ErrAntipodalPoint = errors.New("point is antipodal to the projection center")

	// ErrPoleSingularity reports a pole or tangent-plane breakdown.
	ErrPoleSingularity = errors.New("point is at a singularity of the projection")

	// ErrNonConvergence reports an iterative solver hitting its cap.
	ErrNonConvergence = errors.New("iteration did not converge")

	// ErrOutOfRange reports planar coordinates outside the projected map.
	ErrOutOfRange = errors.New("coordinates outside the projection domain")

	// ErrInBreak reports that an interrupted projection recovered a point
	// belonging to a different lobe than the one selected. The returned
	// coordinates are still valid.
	ErrInBreak = errors.New("point lies in an interruption gap")
)

// ConfigError is returned when a parameter set cannot be compiled.
type ConfigError struct {
	Kind Kind
	Code int // GCTP error code
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: configuration error %d: %v", e.Kind, e.Code, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// PointError is returned when a single forward or inverse call fails. X and
// Y hold the offending input as passed by the caller.
type PointError struct {
	Kind Kind
	Op   string
	Code int
	X, Y float64
	Err  error
}

func (e *PointError) Error() string {
	return fmt.Sprintf("%s %s (%v, %v): error %d: %v", e.Kind, e.Op, e.X, e.Y, e.Code, e.Err)
}

func (e *PointError) Unwrap() error { return e.Err }

func configError(code int, err error) error {
	return &ConfigError{Code: code, Err: err}
}

func pointError(code int, err error) error {
	return &PointError{Code: code, Err: err}
}

// Status classifies the outcome of a transform call.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusInBreak
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusInBreak:
		return "in-break"
	}
	return "failed"
}

// StatusOf maps the error of a Forward or Inverse call to a Status.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrInBreak):
		return StatusInBreak
	}
	return StatusFailed
}

// Package proj implements the GCTP family of map projections.
//
// A projection is described either by the positional GCTP parameter array
// (Params, decoded with Decode and produced with Encode) or by a named
// Config. Compile turns a Config into an immutable *Projection whose Forward
// and Inverse methods convert between geographic coordinates in radians and
// projected coordinates in the configured unit:
//
//	cfg := proj.Config{Kind: proj.UTM, Datum: proj.WGS84, Zone: 31}
//	p, err := proj.Compile(cfg)
//	if err != nil {
//		return err
//	}
//	x, y, err := p.Forward(2*math.Pi/180, 48*math.Pi/180)
//
// Instance wraps a Config with setters and lazy compilation for callers that
// edit parameters in place.
//
// Errors match one of the package's sentinel values (ErrDegenerateParallels,
// ErrAntipodalPoint and so on) with errors.Is. Configuration failures are
// *ConfigError values and per-point failures *PointError values, both of
// which carry the GCTP numeric error code.
package proj

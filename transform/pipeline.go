package transform

import (
	"errors"
	"fmt"

	"github.com/pspoerri/gctp/proj"
)

// Pipeline couples two projections. Projected coordinates of In are taken
// to geographic coordinates and from there into Out.
type Pipeline struct {
	In  proj.Transformer
	Out proj.Transformer
}

// NewPipeline returns a pipeline from in to out.
func NewPipeline(in, out proj.Transformer) *Pipeline {
	return &Pipeline{In: in, Out: out}
}

// Transform converts a point in the input projection into the output
// projection. A point in an interruption gap of the input is still carried
// through; the proj.ErrInBreak error is returned with the result.
func (p *Pipeline) Transform(x, y float64) (float64, float64, error) {
	lon, lat, inErr := p.ToGeographic(x, y)
	if inErr != nil && !errors.Is(inErr, proj.ErrInBreak) {
		return 0, 0, inErr
	}
	ox, oy, err := p.FromGeographic(lon, lat)
	if err != nil {
		return 0, 0, err
	}
	return ox, oy, inErr
}

// ToGeographic runs the inverse half of the pipeline.
func (p *Pipeline) ToGeographic(x, y float64) (lon, lat float64, err error) {
	lon, lat, err = p.In.Inverse(x, y)
	if err != nil {
		err = fmt.Errorf("input projection: %w", err)
	}
	return lon, lat, err
}

// FromGeographic runs the forward half of the pipeline.
func (p *Pipeline) FromGeographic(lon, lat float64) (x, y float64, err error) {
	x, y, err = p.Out.Forward(lon, lat)
	if err != nil {
		err = fmt.Errorf("output projection: %w", err)
	}
	return x, y, err
}

// Reverse returns the pipeline running from Out back to In.
func (p *Pipeline) Reverse() *Pipeline {
	return &Pipeline{In: p.Out, Out: p.In}
}

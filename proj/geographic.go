package proj

// geographic passes coordinates through. Only the angular unit of the
// output, applied by Projection, distinguishes it from the identity.
type geographic struct{}

func (geographic) forward(lon, lat float64) (x, y float64, err error) { return lon, lat, nil }

func (geographic) inverse(x, y float64) (lon, lat float64, err error) { return x, y, nil }

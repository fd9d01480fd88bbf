package scene

// Camera holds the single smoothed dolly parameter of the render driver. The
// camera sits on the +Z axis at Distance from the origin and always looks at
// the world origin.
type Camera struct {
	// Distance is the current dolly distance from the origin.
	Distance float64

	// Focal scales the perspective projection. Larger values narrow the
	// field of view.
	Focal float64

	// Near is the minimum camera-space depth a vertex must have to be
	// projected; anything closer (or behind the camera) is culled.
	Near float64
}

// NewCamera creates a camera at the given baseline distance.
func NewCamera(distance float64) *Camera {
	return &Camera{
		Distance: distance,
		Focal:    420,
		Near:     1,
	}
}

// Approach moves the dolly distance toward target by the smoothing rate k.
// Same exponential smoothing law as the color transitions.
func (c *Camera) Approach(target, k float64) {
	c.Distance += (target - c.Distance) * k
}

// Project maps a scene-space point to screen coordinates for a w×h viewport.
// Returns the screen position, the perspective scale at the point's depth and
// whether the point is in front of the near plane.
func (c *Camera) Project(v Vec3, w, h int) (sx, sy, scale float64, ok bool) {
	depth := c.Distance - v.Z
	if depth < c.Near {
		return 0, 0, 0, false
	}
	scale = c.Focal / depth
	sx = v.X*scale + float64(w)/2
	sy = -v.Y*scale + float64(h)/2
	return sx, sy, scale, true
}

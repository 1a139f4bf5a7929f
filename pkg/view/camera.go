// Package view translates raw pointer input into camera transforms,
// drag/hover state, and smooth highlight transitions for the graph canvas.
package view

import "gonum.org/v1/gonum/spatial/r2"

// Zoom bounds for the camera. Wheel and pinch gestures are clamped to this
// range no matter how far the input scrolls.
const (
	MinZoom = 0.1
	MaxZoom = 10.0
)

// Camera is the pan/zoom transform applied to the whole graph view. It is
// mutated only by the Controller and read by the renderer and by
// screen-to-world mapping.
type Camera struct {
	Pan  r2.Vec
	Zoom float64
}

// NewCamera returns the identity transform.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

// ScreenToWorld maps a screen-space point into world coordinates through
// the inverse camera transform.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	return r2.Scale(1/c.Zoom, r2.Sub(s, c.Pan))
}

// WorldToScreen maps a world-space point onto the screen.
func (c *Camera) WorldToScreen(w r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(c.Zoom, w), c.Pan)
}

// ZoomAround scales the zoom by factor, keeping the given screen-space
// focal point fixed. The resulting zoom is clamped to [MinZoom, MaxZoom].
func (c *Camera) ZoomAround(focal r2.Vec, factor float64) {
	next := c.Zoom * factor
	if next < MinZoom {
		next = MinZoom
	}
	if next > MaxZoom {
		next = MaxZoom
	}
	ratio := next / c.Zoom
	c.Pan = r2.Sub(focal, r2.Scale(ratio, r2.Sub(focal, c.Pan)))
	c.Zoom = next
}

package view

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/impgraph/pkg/sim"
)

// Mode is the press state of the interaction machine. Hover is tracked
// independently of press state by the Highlight.
type Mode int

const (
	// Idle: no press in progress.
	Idle Mode = iota
	// Panning: a background press is moving the camera.
	Panning
	// Dragging: a node press is pinning and moving that node.
	Dragging
)

// Controller turns raw pointer and wheel events into camera transforms,
// per-node interaction state, and pinned-position overrides fed back to
// the simulation. One controller serves one view; events and frames run on
// the same logical thread, so no locking is needed.
type Controller struct {
	engine *sim.Engine
	camera *Camera
	scale  ScaleConfig

	mode     Mode
	dragSlot int

	panStartPointer r2.Vec
	panStartOffset  r2.Vec
	dragStartWorld  r2.Vec
	dragStartNode   r2.Vec

	highlight *Highlight
}

// NewController wires a controller to an engine and camera.
func NewController(engine *sim.Engine, camera *Camera, scale ScaleConfig) *Controller {
	return &Controller{
		engine:    engine,
		camera:    camera,
		scale:     scale,
		dragSlot:  -1,
		highlight: NewHighlight(),
	}
}

// Mode returns the current press state.
func (c *Controller) Mode() Mode { return c.mode }

// Highlight exposes the hover transition state for rendering.
func (c *Controller) Highlight() *Highlight { return c.highlight }

// DragSlot returns the slot being dragged, or -1.
func (c *Controller) DragSlot() int {
	if c.mode != Dragging {
		return -1
	}
	return c.dragSlot
}

// HitTest returns the slot of the nearest node whose scaled hit area
// contains the screen-space point, or -1. Ties on distance are broken by
// smallest node id so tests are reproducible.
func (c *Controller) HitTest(screen r2.Vec) int {
	world := c.camera.ScreenToWorld(screen)
	scaled := NewScaledValues(c.scale, c.camera.Zoom)

	best := -1
	bestDist := 0.0
	for i := 0; i < c.engine.Len(); i++ {
		body := c.engine.Body(i)
		dist := r2.Norm(r2.Sub(body.Pos, world))
		if dist >= scaled.HitRadius*body.Size {
			continue
		}
		if best < 0 || dist < bestDist ||
			(dist == bestDist && c.engine.Node(i).ID < c.engine.Node(best).ID) {
			best = i
			bestDist = dist
		}
	}
	return best
}

// PointerDown starts a drag when the press hits a node, otherwise a pan.
func (c *Controller) PointerDown(screen r2.Vec) {
	if c.mode != Idle {
		return
	}
	if slot := c.HitTest(screen); slot >= 0 {
		c.mode = Dragging
		c.dragSlot = slot
		c.dragStartWorld = c.camera.ScreenToWorld(screen)
		c.dragStartNode = c.engine.Body(slot).Pos
		c.engine.Pin(slot, c.dragStartNode)
		return
	}
	c.mode = Panning
	c.panStartPointer = screen
	c.panStartOffset = c.camera.Pan
}

// PointerMove updates hover, and advances whichever drag or pan is active.
// While dragging, the node's pinned position tracks the pointer exactly in
// world coordinates.
func (c *Controller) PointerMove(screen r2.Vec) {
	if c.mode != Dragging {
		c.highlight.SetHover(c.HitTest(screen), c.engine.Edges())
	}

	switch c.mode {
	case Dragging:
		delta := r2.Sub(c.camera.ScreenToWorld(screen), c.dragStartWorld)
		c.engine.Pin(c.dragSlot, r2.Add(c.dragStartNode, delta))
	case Panning:
		c.camera.Pan = r2.Add(c.panStartOffset, r2.Sub(screen, c.panStartPointer))
	}
}

// PointerUp releases the active drag or pan and returns to Idle. A dragged
// node is unpinned with zero velocity so it does not jump on release.
func (c *Controller) PointerUp() {
	if c.mode == Dragging && c.dragSlot >= 0 {
		c.engine.Unpin(c.dragSlot)
	}
	c.mode = Idle
	c.dragSlot = -1
}

// PointerLeave cancels any press and clears hover, for when the pointer
// leaves the drawing surface entirely.
func (c *Controller) PointerLeave() {
	c.PointerUp()
	c.highlight.SetHover(-1, nil)
}

// Wheel zooms the camera around the cursor. Positive deltaY zooms out.
func (c *Controller) Wheel(screen r2.Vec, deltaY float64) {
	factor := 1.1
	if deltaY > 0 {
		factor = 0.9
	}
	c.camera.ZoomAround(screen, factor)
}

// Package sim advances the force-directed layout: a Barnes-Hut quadtree for
// long-range repulsion, per-edge springs, weak centering, and damped
// semi-implicit Euler integration over an index-addressable node arena.
//
// The engine is deterministic: the same payload and tick count always yield
// the same positions, including the jitter substituted for degenerate
// geometry.
package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/impgraph/pkg/model"
)

// Params are the physical constants of the simulation. The defaults match
// the tuning the visualization shipped with.
type Params struct {
	Charge    float64 // repulsion strength between node pairs
	Spring    float64 // spring constant for edge attraction
	RestLen   float64 // spring rest length in world units
	ForceMax  float64 // per-axis clamp on the accumulated force
	Speed     float64 // velocity response to force
	Damping   float64 // multiplicative velocity decay per tick
	Centering float64 // weak pull toward the viewport center
	Mass      float64 // uniform node mass
	Theta     float64 // Barnes-Hut approximation threshold
	MaxStep   float64 // upper clamp on the integration time step
}

// DefaultParams returns the tuning used by the shipped viewer.
func DefaultParams() Params {
	return Params{
		Charge:    150,
		Spring:    0.05,
		RestLen:   30,
		ForceMax:  100,
		Speed:     3000,
		Damping:   0.9,
		Centering: 0.02,
		Mass:      10,
		Theta:     0.75,
		MaxStep:   0.05,
	}
}

// Body is the mutable simulation state of one node. Bodies live in the
// engine arena; edges address them by slot index, which safely represents
// cycles and shared references.
type Body struct {
	Pos    r2.Vec
	Vel    r2.Vec
	Pinned bool
	// Size is the radius multiplier derived from label presence and degree.
	Size   float64
	Degree int
}

// Engine owns the node arena, the edge list, and the spatial index, and
// advances them one discrete tick per call. Topology is fixed for the life
// of the engine; only body state changes.
type Engine struct {
	params  Params
	payload *model.Payload
	index   map[string]int
	bodies  []Body
	edges   [][2]int
	width   float64
	height  float64
	tick    uint64
}

// New validates the payload and builds an engine with nodes placed on a
// ring around the viewport center. A payload failing validation is fatal
// for the view: the error is returned and no engine is constructed.
func New(p *model.Payload, width, height float64, params Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		params:  params,
		payload: p,
		index:   make(map[string]int, len(p.Nodes)),
		bodies:  make([]Body, len(p.Nodes)),
		edges:   make([][2]int, 0, len(p.Links)),
		width:   width,
		height:  height,
	}
	for i, n := range p.Nodes {
		e.index[n.ID] = i
	}
	for _, l := range p.Links {
		e.edges = append(e.edges, [2]int{e.index[l.Source], e.index[l.Target]})
	}

	degree := make([]int, len(p.Nodes))
	maxDegree := 1
	for _, ed := range e.edges {
		degree[ed[0]]++
		degree[ed[1]]++
		if degree[ed[0]] > maxDegree {
			maxDegree = degree[ed[0]]
		}
		if degree[ed[1]] > maxDegree {
			maxDegree = degree[ed[1]]
		}
	}

	center := r2.Vec{X: width / 2, Y: height / 2}
	for i := range e.bodies {
		angle := float64(i) * 2 * math.Pi / float64(len(e.bodies))
		e.bodies[i] = Body{
			Pos: r2.Add(center, r2.Vec{
				X: 100 * math.Cos(angle),
				Y: 100 * math.Sin(angle),
			}),
			Size:   nodeSize(p.Nodes[i].Label != "", degree[i], maxDegree),
			Degree: degree[i],
		}
	}
	return e, nil
}

// nodeSize scales nodes by importance: labeled nodes render larger, and a
// sqrt of the degree ratio softens the connectivity boost.
func nodeSize(labeled bool, degree, maxDegree int) float64 {
	factor := math.Sqrt(float64(degree) / float64(maxDegree))
	if labeled {
		return 1.4 + 0.6*factor
	}
	return 0.7 + 0.5*factor
}

// Tick advances the simulation one step. Pinned bodies skip force
// accumulation entirely; their position is whatever the interaction layer
// set and their velocity stays zero so release carries no stale momentum.
func (e *Engine) Tick(dt float64) {
	e.tick++
	if len(e.bodies) == 0 {
		return
	}
	if dt > e.params.MaxStep {
		dt = e.params.MaxStep
	}

	positions := make([]r2.Vec, len(e.bodies))
	for i := range e.bodies {
		positions[i] = e.bodies[i].Pos
	}
	tree := buildQuadtree(positions, e.params.Mass)

	forces := make([]r2.Vec, len(e.bodies))
	for i := range e.bodies {
		if e.bodies[i].Pinned {
			continue
		}
		slot := i
		forces[i] = tree.repulsionAt(i, positions[i], e.params.Theta, e.params.Charge*e.params.Mass,
			func() r2.Vec { return jitterDir(slot, e.tick) })
	}

	for _, ed := range e.edges {
		a, b := ed[0], ed[1]
		d := r2.Sub(positions[b], positions[a])
		dist := r2.Norm(d)
		var dir r2.Vec
		if dist < 1e-9 {
			// Coincident endpoints have no direction; substitute a
			// deterministic jitter instead of dividing by zero.
			dir = jitterDir(a, e.tick)
			dist = 1e-9
		} else {
			dir = r2.Scale(1/dist, d)
		}
		mag := e.params.Spring * (dist - e.params.RestLen)
		pull := r2.Scale(mag, dir)
		if !e.bodies[a].Pinned {
			forces[a] = r2.Add(forces[a], pull)
		}
		if !e.bodies[b].Pinned {
			forces[b] = r2.Sub(forces[b], pull)
		}
	}

	center := r2.Vec{X: e.width / 2, Y: e.height / 2}
	for i := range e.bodies {
		body := &e.bodies[i]
		if body.Pinned {
			body.Vel = r2.Vec{}
			continue
		}

		f := r2.Add(forces[i], r2.Scale(e.params.Centering, r2.Sub(center, body.Pos)))
		f.X = clamp(f.X, -e.params.ForceMax, e.params.ForceMax)
		f.Y = clamp(f.Y, -e.params.ForceMax, e.params.ForceMax)

		// Semi-implicit Euler: velocity first, then position from the new
		// velocity. Keeps stiff springs stable at a fixed step.
		accel := r2.Scale(e.params.Speed/e.params.Mass, f)
		body.Vel = r2.Scale(e.params.Damping, r2.Add(body.Vel, r2.Scale(dt, accel)))
		body.Pos = r2.Add(body.Pos, r2.Scale(dt, body.Vel))
	}
}

// jitterDir returns a deterministic pseudo-random unit vector for slot i at
// the given tick, used in place of degenerate force directions.
func jitterDir(i int, tick uint64) r2.Vec {
	seed := float64(i)*12.9898 + float64(tick%4096)*78.233
	x := math.Sin(seed) * 43758.5453
	angle := (x - math.Floor(x)) * 2 * math.Pi
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Len returns the number of bodies in the arena.
func (e *Engine) Len() int { return len(e.bodies) }

// Body returns a pointer to the body at slot i.
func (e *Engine) Body(i int) *Body { return &e.bodies[i] }

// Node returns the payload node at slot i.
func (e *Engine) Node(i int) model.Node { return e.payload.Nodes[i] }

// Edges returns the (source, target) slot pairs. Callers must not modify
// the returned slice.
func (e *Engine) Edges() [][2]int { return e.edges }

// SlotOf resolves a node id to its arena slot.
func (e *Engine) SlotOf(id string) (int, bool) {
	i, ok := e.index[id]
	return i, ok
}

// Pin fixes the body at slot i to pos. While pinned the body ignores all
// forces and its velocity is held at zero.
func (e *Engine) Pin(i int, pos r2.Vec) {
	e.bodies[i].Pinned = true
	e.bodies[i].Pos = pos
	e.bodies[i].Vel = r2.Vec{}
}

// Unpin releases the body at slot i back to the simulation with zero
// velocity, so it does not fly off from stale momentum.
func (e *Engine) Unpin(i int) {
	e.bodies[i].Pinned = false
	e.bodies[i].Vel = r2.Vec{}
}

// Resize updates the viewport dimensions used by the centering force.
func (e *Engine) Resize(width, height float64) {
	e.width = width
	e.height = height
}

// Size returns the current viewport dimensions.
func (e *Engine) Size() (width, height float64) {
	return e.width, e.height
}

// Payload returns the immutable payload this engine was built from.
func (e *Engine) Payload() *model.Payload { return e.payload }

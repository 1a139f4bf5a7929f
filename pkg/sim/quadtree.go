package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// quadCell is one square cell of the Barnes-Hut quadtree. Internal cells
// carry the centroid and total mass of their subtree so distant regions can
// be treated as a single pseudo-node during force queries.
type quadCell struct {
	x, y, size float64 // bounds (square cells)

	centroid r2.Vec
	mass     float64

	body     int // slot index when leaf, -1 when empty/internal
	leaf     bool
	children [4]*quadCell // nw, ne, sw, se
}

// quadtree approximates aggregate repulsion from all nodes in sub-quadratic
// time. It is rebuilt from scratch every simulation tick; with zero or one
// node it degenerates to a no-op.
type quadtree struct {
	root     *quadCell
	bodyMass float64
}

func newQuadCell(x, y, size float64) *quadCell {
	return &quadCell{x: x, y: y, size: size, body: -1, leaf: true}
}

// buildQuadtree constructs the tree over the given positions with uniform
// per-node mass. Returns an empty tree for fewer than two nodes.
func buildQuadtree(positions []r2.Vec, mass float64) *quadtree {
	if len(positions) < 2 {
		return &quadtree{bodyMass: mass}
	}

	minX, maxX := positions[0].X, positions[0].X
	minY, maxY := positions[0].Y, positions[0].Y
	for _, p := range positions[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	// Pad and square the bounds so quadrant math stays simple and points on
	// the boundary always land inside a cell.
	side := math.Max(maxX-minX, maxY-minY)
	pad := side*0.1 + 1e-9
	side += 2 * pad
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	root := newQuadCell(cx-side/2, cy-side/2, side)
	for i, p := range positions {
		root.insert(i, p, mass)
	}
	return &quadtree{root: root, bodyMass: mass}
}

func (c *quadCell) insert(i int, p r2.Vec, m float64) {
	if c.leaf && c.body == -1 {
		c.body = i
		c.centroid = p
		c.mass = m
		return
	}

	if c.leaf {
		// Split: push the resident body down before adding the new one.
		// Coincident points would recurse forever, so stop subdividing at a
		// tiny cell size and just accumulate mass.
		if c.size < 1e-6 {
			total := c.mass + m
			c.centroid = r2.Add(r2.Scale(c.mass/total, c.centroid), r2.Scale(m/total, p))
			c.mass = total
			return
		}
		c.leaf = false
		half := c.size / 2
		c.children[0] = newQuadCell(c.x, c.y, half)
		c.children[1] = newQuadCell(c.x+half, c.y, half)
		c.children[2] = newQuadCell(c.x, c.y+half, half)
		c.children[3] = newQuadCell(c.x+half, c.y+half, half)
		old := c.body
		c.body = -1
		c.childFor(c.centroid).insert(old, c.centroid, c.mass)
	}

	total := c.mass + m
	c.centroid = r2.Add(r2.Scale(c.mass/total, c.centroid), r2.Scale(m/total, p))
	c.mass = total
	c.childFor(p).insert(i, p, m)
}

func (c *quadCell) childFor(p r2.Vec) *quadCell {
	half := c.size / 2
	idx := 0
	if p.X >= c.x+half {
		idx |= 1
	}
	if p.Y >= c.y+half {
		idx |= 2
	}
	return c.children[idx]
}

// repulsionAt accumulates the approximate repulsive force on the body at
// slot i located at p. Cells whose size-to-distance ratio falls below theta
// contribute as a single pseudo-node; closer cells are recursed into.
// degenerate supplies a direction for coincident points so adversarial
// geometry pushes apart instead of dividing by zero.
func (t *quadtree) repulsionAt(i int, p r2.Vec, theta, strength float64, degenerate func() r2.Vec) r2.Vec {
	if t.root == nil {
		return r2.Vec{}
	}
	return t.root.repulsion(i, p, theta, strength, t.bodyMass, degenerate)
}

func (c *quadCell) repulsion(i int, p r2.Vec, theta, strength, own float64, degenerate func() r2.Vec) r2.Vec {
	if c.mass == 0 {
		return r2.Vec{}
	}
	if c.leaf && c.body == i {
		// Coincident points collapse into one tiny leaf that keeps the first
		// resident's slot. The merged neighbors still repel the query body,
		// so subtract its own mass and push along the substitute direction.
		if rest := c.mass - own; rest > 1e-12 {
			return r2.Scale(strength*rest, degenerate())
		}
		return r2.Vec{}
	}

	d := r2.Sub(p, c.centroid)
	dist := r2.Norm(d)

	if c.leaf || c.size/dist < theta {
		if dist < 1e-9 {
			// Coincident points: bounded repulsion along the substitute
			// direction, never a fault.
			return r2.Scale(strength*c.mass, degenerate())
		}
		mag := strength * c.mass / (dist * dist)
		return r2.Scale(mag/dist, d)
	}

	var f r2.Vec
	for _, ch := range c.children {
		if ch != nil {
			f = r2.Add(f, ch.repulsion(i, p, theta, strength, own, degenerate))
		}
	}
	return f
}

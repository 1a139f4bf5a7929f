package render

import (
	"math"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/impgraph/pkg/sim"
	"github.com/vanderheijden86/impgraph/pkg/view"
)

// dimFloor is how far non-highlighted elements fade when a hover is
// active. 1 keeps full opacity, 0 would hide them entirely.
const dimFloor = 0.3

// Frame bundles the state needed to draw one frame. The renderer reads it
// and never writes back.
type Frame struct {
	Engine    *sim.Engine
	Camera    *view.Camera
	Scaled    view.ScaledValues
	Highlight *view.Highlight
	FlowTime  float64
}

// Renderer draws frames onto a gg context. It owns the theme, the cluster
// color map, and the ambient particle field; everything per-frame comes in
// through Frame.
type Renderer struct {
	theme         Theme
	scale         view.ScaleConfig
	clusterColors map[string]Color
	groupSlots    map[string]int
	particles     *ParticleField
}

// New builds a renderer. clusterColors maps group names to CSS color
// strings; groups without an entry get a stable palette color.
func New(theme Theme, scale view.ScaleConfig, clusterColors map[string]string, width, height float64) *Renderer {
	cc := make(map[string]Color, len(clusterColors))
	for k, v := range clusterColors {
		cc[k] = ParseColor(v)
	}
	return &Renderer{
		theme:         theme,
		scale:         scale,
		clusterColors: cc,
		groupSlots:    make(map[string]int),
		particles:     NewParticleField(theme.Particles, width, height),
	}
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return r.theme }

// Resize informs the renderer of a new viewport size.
func (r *Renderer) Resize(width, height float64) {
	r.particles.Resize(width, height)
}

// TickParticles advances the ambient particle animation.
func (r *Renderer) TickParticles(dt float64) {
	r.particles.Tick(dt)
}

// NodeColor resolves the fill color for a node's group. Unmapped groups
// are assigned palette slots in first-seen order, so the assignment is
// stable across frames.
func (r *Renderer) NodeColor(group string) Color {
	if c, ok := r.clusterColors[group]; ok {
		return c
	}
	slot, ok := r.groupSlots[group]
	if !ok {
		slot = len(r.groupSlots)
		r.groupSlots[group] = slot
	}
	return r.theme.Palette.At(slot)
}

// Draw renders a complete frame: background, particles, edges, arrows,
// nodes, rings, then labels.
func (r *Renderer) Draw(dc *gg.Context, f Frame) {
	w := float64(dc.Width())
	h := float64(dc.Height())

	r.drawBackground(dc, w, h)
	r.drawParticles(dc)

	maxI := f.Highlight.MaxIntensity()

	dc.Push()
	dc.Translate(f.Camera.Pan.X, f.Camera.Pan.Y)
	dc.Scale(f.Camera.Zoom, f.Camera.Zoom)

	r.drawEdges(dc, f, maxI)
	r.drawNodes(dc, f, maxI)

	dc.Pop()

	r.drawLabels(dc, f, maxI)
}

// --- background ---

func (r *Renderer) drawBackground(dc *gg.Context, w, h float64) {
	bg := r.theme.Background
	if bg.UseGradient {
		grad := gg.NewLinearGradient(0, 0, 0, h)
		grad.AddColorStop(0, bg.Color.NRGBA())
		grad.AddColorStop(1, bg.ColorSecondary.NRGBA())
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	} else {
		dc.SetColor(bg.Color.NRGBA())
		dc.Clear()
	}
	if bg.Vignette > 0 {
		radius := math.Hypot(w, h) / 2
		grad := gg.NewRadialGradient(w/2, h/2, radius*0.5, w/2, h/2, radius)
		grad.AddColorStop(0, RGBA(0, 0, 0, 0).NRGBA())
		grad.AddColorStop(1, RGBA(0, 0, 0, bg.Vignette).NRGBA())
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, w, h)
		dc.Fill()
	}
}

func (r *Renderer) drawParticles(dc *gg.Context) {
	ps := r.theme.Particles
	if !ps.Enabled {
		return
	}
	dc.SetColor(ps.Color.WithAlpha(ps.Color.A * ps.Opacity).NRGBA())
	for _, p := range r.particles.Particles() {
		dc.DrawCircle(p.X, p.Y, p.Size)
		dc.Fill()
	}
}

// --- edges ---

func (r *Renderer) drawEdges(dc *gg.Context, f Frame, maxI float64) {
	es := r.theme.Edge
	sv := f.Scaled
	dc.SetLineWidth(sv.EdgeLineWidth)

	// Edges keep payload link order, so index i addresses both.
	for i, e := range f.Engine.Edges() {
		a := f.Engine.Body(e[0])
		b := f.Engine.Body(e[1])
		intensity := f.Highlight.EdgeIntensity(e[0], e[1])
		alpha := es.Color.A * dimAlpha(intensity, maxI)
		if alpha <= 0.003 {
			continue
		}

		link := f.Engine.Payload().Links[i]
		dashed := link.Strategy == "lazy"
		if dashed && sv.DashAlpha <= 0.003 {
			dashed = false
		}

		dc.SetColor(es.Color.WithAlpha(alpha).NRGBA())
		if dashed {
			dc.SetDash(sv.DashPattern[0]/sv.K, sv.DashPattern[1]/sv.K)
			dc.SetDashOffset(sv.DashOffset(f.FlowTime, r.scale.FlowSpeed) / sv.K)
			dc.SetColor(es.Color.WithAlpha(alpha * sv.DashAlpha).NRGBA())
		}
		dc.DrawLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y)
		dc.Stroke()
		if dashed {
			dc.SetDash()
			dc.SetDashOffset(0)
		}

		if !sv.CullArrows {
			r.drawArrow(dc, f, a.Pos, b.Pos, nodeWorldRadius(sv, b.Size), alpha*sv.ArrowAlpha)
		}
	}
}

// drawArrow places an arrowhead on the target end of an edge, just
// outside the target node's circle.
func (r *Renderer) drawArrow(dc *gg.Context, f Frame, from, to r2.Vec, targetRadius, alpha float64) {
	if alpha <= 0.003 {
		return
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	dist := math.Hypot(dx, dy)
	if dist < 1e-9 {
		return
	}
	ux, uy := dx/dist, dy/dist
	size := f.Scaled.ArrowSize
	tipX := to.X - ux*(targetRadius+f.Scaled.RingOffset)
	tipY := to.Y - uy*(targetRadius+f.Scaled.RingOffset)
	baseX := tipX - ux*size
	baseY := tipY - uy*size
	halfW := size * 0.5

	dc.SetColor(r.theme.Edge.Color.WithAlpha(alpha).NRGBA())
	dc.NewSubPath()
	dc.MoveTo(tipX, tipY)
	dc.LineTo(baseX-uy*halfW, baseY+ux*halfW)
	dc.LineTo(baseX+uy*halfW, baseY-ux*halfW)
	dc.ClosePath()
	dc.Fill()
}

// --- nodes ---

func (r *Renderer) drawNodes(dc *gg.Context, f Frame, maxI float64) {
	ns := r.theme.Node
	sv := f.Scaled

	for i := 0; i < f.Engine.Len(); i++ {
		body := f.Engine.Body(i)
		node := f.Engine.Node(i)
		radius := nodeWorldRadius(sv, body.Size)
		intensity := f.Highlight.Intensity(i)
		alpha := dimAlpha(intensity, maxI)
		fill := r.NodeColor(node.Group)

		if ns.GlowIntensity > 0 || intensity > 0.01 {
			glowAlpha := (ns.GlowIntensity*0.3 + intensity*0.35) * alpha
			if glowAlpha > 0.003 {
				dc.SetColor(fill.WithAlpha(glowAlpha).NRGBA())
				dc.DrawCircle(body.Pos.X, body.Pos.Y, radius*1.8)
				dc.Fill()
			}
		}

		if ns.UseGradient {
			grad := gg.NewRadialGradient(
				body.Pos.X-radius*0.3, body.Pos.Y-radius*0.3, 0,
				body.Pos.X, body.Pos.Y, radius,
			)
			grad.AddColorStop(0, fill.Lighten(0.25).WithAlpha(alpha).NRGBA())
			grad.AddColorStop(1, fill.Darken(0.1).WithAlpha(alpha).NRGBA())
			dc.SetFillStyle(grad)
		} else {
			dc.SetColor(fill.WithAlpha(alpha).NRGBA())
		}
		dc.DrawCircle(body.Pos.X, body.Pos.Y, radius)
		dc.Fill()

		if ns.BorderWidth > 0 {
			dc.SetColor(ns.BorderColor.WithAlpha(ns.BorderColor.A * alpha).NRGBA())
			dc.SetLineWidth(ns.BorderWidth / sv.K)
			dc.DrawCircle(body.Pos.X, body.Pos.Y, radius)
			dc.Stroke()
		}

		ring := f.Highlight.RingIntensity(i)
		if ring > 0.01 {
			dc.SetColor(fill.Lighten(0.4).WithAlpha(ring).NRGBA())
			dc.SetLineWidth(sv.RingWidth)
			dc.DrawCircle(body.Pos.X, body.Pos.Y, radius+sv.RingOffset)
			dc.Stroke()
		}
	}
}

// --- labels ---

// Labels draw in screen space with a fixed face, so they stay readable at
// any zoom. Below the minimum zoom they are skipped entirely.
func (r *Renderer) drawLabels(dc *gg.Context, f Frame, maxI float64) {
	if f.Camera.Zoom < r.scale.LabelMinK {
		return
	}
	dc.SetFontFace(basicfont.Face7x13)
	for i := 0; i < f.Engine.Len(); i++ {
		node := f.Engine.Node(i)
		if node.Label == "" {
			continue
		}
		alpha := dimAlpha(f.Highlight.Intensity(i), maxI)
		body := f.Engine.Body(i)
		radius := nodeWorldRadius(f.Scaled, body.Size)
		s := f.Camera.WorldToScreen(body.Pos)
		dc.SetColor(RGBA(220, 225, 232, 0.85*alpha).NRGBA())
		dc.DrawStringAnchored(node.Label, s.X, s.Y+(radius+f.Scaled.RingOffset)*f.Camera.Zoom+9, 0.5, 0.5)
	}
}

// --- helpers ---

// nodeWorldRadius applies the node's relative size to the scaled base
// radius.
func nodeWorldRadius(sv view.ScaledValues, size float64) float64 {
	return sv.NodeRadius * size
}

// dimAlpha fades elements not involved in the active highlight. With no
// highlight everything draws at full opacity; with one, uninvolved
// elements sink toward dimFloor while involved ones brighten with their
// own intensity.
func dimAlpha(intensity, maxIntensity float64) float64 {
	if maxIntensity <= 0.01 {
		return 1
	}
	base := 1 - (1-dimFloor)*maxIntensity
	return base + (1-base)*clamp01(intensity/maxIntensity)
}

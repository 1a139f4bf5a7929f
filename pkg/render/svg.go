package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
)

// WriteSVG renders the current frame as a standalone SVG document. The
// scene matches the raster renderer: background, edges with arrows, then
// nodes and labels. Camera pan and zoom are baked into the coordinates so
// the snapshot shows exactly what the viewport showed.
func (r *Renderer) WriteSVG(w io.Writer, f Frame, width, height int) error {
	canvas := svg.New(w)
	canvas.Start(width, height)

	bg := r.theme.Background
	if bg.UseGradient {
		canvas.Def()
		canvas.LinearGradient("bg", 0, 0, 0, 100, []svg.Offcolor{
			{Offset: 0, Color: bg.Color.Hex(), Opacity: 1},
			{Offset: 100, Color: bg.ColorSecondary.Hex(), Opacity: 1},
		})
		canvas.DefEnd()
		canvas.Rect(0, 0, width, height, "fill:url(#bg)")
	} else {
		canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", bg.Color.Hex()))
	}

	maxI := f.Highlight.MaxIntensity()
	sv := f.Scaled
	k := f.Camera.Zoom

	toScreen := func(i int) (float64, float64) {
		s := f.Camera.WorldToScreen(f.Engine.Body(i).Pos)
		return s.X, s.Y
	}

	for i, e := range f.Engine.Edges() {
		x1, y1 := toScreen(e[0])
		x2, y2 := toScreen(e[1])
		alpha := r.theme.Edge.Color.A * dimAlpha(f.Highlight.EdgeIntensity(e[0], e[1]), maxI)
		if alpha <= 0.003 {
			continue
		}
		style := fmt.Sprintf("stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f",
			r.theme.Edge.Color.Hex(), alpha, sv.EdgeLineWidth*k)
		if f.Engine.Payload().Links[i].Strategy == "lazy" && sv.DashAlpha > 0.003 {
			style += fmt.Sprintf(";stroke-dasharray:%.1f %.1f", sv.DashPattern[0], sv.DashPattern[1])
		}
		canvas.Line(int(x1), int(y1), int(x2), int(y2), style)
	}

	for i := 0; i < f.Engine.Len(); i++ {
		body := f.Engine.Body(i)
		node := f.Engine.Node(i)
		x, y := toScreen(i)
		radius := nodeWorldRadius(sv, body.Size) * k
		alpha := dimAlpha(f.Highlight.Intensity(i), maxI)
		fill := r.NodeColor(node.Group)

		canvas.Circle(int(x), int(y), int(radius+0.5),
			fmt.Sprintf("fill:%s;fill-opacity:%.3f", fill.Hex(), alpha))

		if ring := f.Highlight.RingIntensity(i); ring > 0.01 {
			canvas.Circle(int(x), int(y), int(radius+(sv.RingOffset*k)+0.5),
				fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%.3f;stroke-width:%.2f",
					fill.Lighten(0.4).Hex(), ring, sv.RingWidth*k))
		}
	}

	if k >= r.scale.LabelMinK {
		for i := 0; i < f.Engine.Len(); i++ {
			node := f.Engine.Node(i)
			if node.Label == "" {
				continue
			}
			body := f.Engine.Body(i)
			x, y := toScreen(i)
			offset := (nodeWorldRadius(sv, body.Size)+sv.RingOffset)*k + 11
			alpha := 0.85 * dimAlpha(f.Highlight.Intensity(i), maxI)
			canvas.Text(int(x), int(y+offset), node.Label,
				fmt.Sprintf("fill:#dce1e8;fill-opacity:%.3f;font-size:%.0fpx;font-family:monospace;text-anchor:middle",
					alpha, r.scale.LabelSize))
		}
	}

	canvas.End()
	return nil
}

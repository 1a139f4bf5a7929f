package render

import (
	"math"
	"strings"
	"testing"

	"git.sr.ht/~sbinet/gg"

	"github.com/vanderheijden86/impgraph/pkg/model"
	"github.com/vanderheijden86/impgraph/pkg/sim"
	"github.com/vanderheijden86/impgraph/pkg/view"
)

func testFrame(t *testing.T, p *model.Payload, width, height float64) Frame {
	t.Helper()
	eng, err := sim.New(p, width, height, sim.DefaultParams())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	cam := view.NewCamera()
	return Frame{
		Engine:    eng,
		Camera:    cam,
		Scaled:    view.NewScaledValues(view.DefaultScaleConfig(), cam.Zoom),
		Highlight: view.NewHighlight(),
	}
}

func lazyPayload() *model.Payload {
	return &model.Payload{
		Nodes: []model.Node{
			{ID: "core", Label: "core", Group: "lib"},
			{ID: "app", Label: "app", Group: "app"},
			{ID: "opt", Label: "opt", Group: "lib"},
		},
		Links: []model.Link{
			{Source: "app", Target: "core"},
			{Source: "app", Target: "opt", Strategy: "lazy"},
		},
	}
}

func TestNodeColorPrefersClusterMap(t *testing.T) {
	r := New(DefaultTheme(), view.DefaultScaleConfig(), map[string]string{"lib": "#102030"}, 800, 600)
	c := r.NodeColor("lib")
	if c.R != 0x10 || c.G != 0x20 || c.B != 0x30 {
		t.Errorf("mapped group resolved to %+v", c)
	}
}

func TestNodeColorSlotsAreStable(t *testing.T) {
	r := New(DefaultTheme(), view.DefaultScaleConfig(), nil, 800, 600)
	first := r.NodeColor("alpha")
	r.NodeColor("beta")
	r.NodeColor("gamma")
	if r.NodeColor("alpha") != first {
		t.Error("group color changed after other groups were seen")
	}
	if r.NodeColor("beta") == first {
		t.Error("distinct groups share a palette slot")
	}
}

func TestDimAlphaNoHighlight(t *testing.T) {
	if got := dimAlpha(0, 0); got != 1 {
		t.Errorf("dimAlpha with no highlight = %v, want 1", got)
	}
}

func TestDimAlphaActiveHighlight(t *testing.T) {
	// Uninvolved element at full highlight sinks to the floor.
	if got := dimAlpha(0, 1); math.Abs(got-dimFloor) > 1e-9 {
		t.Errorf("uninvolved alpha = %v, want %v", got, dimFloor)
	}
	// Fully involved element draws at full opacity.
	if got := dimAlpha(1, 1); math.Abs(got-1) > 1e-9 {
		t.Errorf("involved alpha = %v, want 1", got)
	}
	// Partial involvement sits strictly between.
	mid := dimAlpha(0.5, 1)
	if mid <= dimFloor || mid >= 1 {
		t.Errorf("partial alpha = %v, want between %v and 1", mid, dimFloor)
	}
}

func TestDrawSmoke(t *testing.T) {
	for _, name := range []string{"default", "midnight", "ember", "minimal"} {
		theme := ThemeByName(name)
		theme.Particles = ParticleStyle{Enabled: true, Count: 8, SizeMin: 0.5, SizeMax: 1, Speed: 6, Opacity: 0.25, Color: RGBA(180, 195, 210, 1)}
		r := New(theme, view.DefaultScaleConfig(), nil, 160, 120)
		f := testFrame(t, lazyPayload(), 160, 120)
		dc := gg.NewContext(160, 120)
		r.Draw(dc, f)
		if dc.Image().Bounds().Dx() != 160 {
			t.Fatalf("%s: context lost its size", name)
		}
	}
}

func TestDrawWithActiveHighlight(t *testing.T) {
	r := New(DefaultTheme(), view.DefaultScaleConfig(), nil, 160, 120)
	f := testFrame(t, lazyPayload(), 160, 120)
	f.Highlight.SetHover(0, f.Engine.Edges())
	for i := 0; i < 30; i++ {
		f.Highlight.Tick(1.0 / 60)
	}
	dc := gg.NewContext(160, 120)
	r.Draw(dc, f) // dimming path must not panic
}

func TestDrawAtExtremeZoom(t *testing.T) {
	r := New(DefaultTheme(), view.DefaultScaleConfig(), nil, 160, 120)
	f := testFrame(t, lazyPayload(), 160, 120)
	dc := gg.NewContext(160, 120)
	for _, zoom := range []float64{view.MinZoom, view.MaxZoom} {
		f.Camera.Zoom = zoom
		f.Scaled = view.NewScaledValues(view.DefaultScaleConfig(), zoom)
		r.Draw(dc, f)
	}
}

func TestBackgroundCoversCanvas(t *testing.T) {
	r := New(DefaultTheme(), view.DefaultScaleConfig(), nil, 32, 32)
	f := testFrame(t, &model.Payload{}, 32, 32)
	dc := gg.NewContext(32, 32)
	r.Draw(dc, f)
	_, _, _, a := dc.Image().At(0, 0).RGBA()
	if a == 0 {
		t.Error("corner pixel is transparent, background not drawn")
	}
}

func TestWriteSVGContainsScene(t *testing.T) {
	r := New(DefaultTheme(), view.DefaultScaleConfig(), map[string]string{"lib": "#406080"}, 400, 300)
	f := testFrame(t, lazyPayload(), 400, 300)
	var sb strings.Builder
	if err := r.WriteSVG(&sb, f, 400, 300); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"<svg", "</svg>", "circle", "line", "#406080"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
	if n := strings.Count(out, "<circle"); n < 3 {
		t.Errorf("svg has %d circles, want at least one per node", n)
	}
}

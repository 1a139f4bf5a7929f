// Package render draws the current graph state: a raster renderer on a gg
// context for interactive frames and PNG export, and an SVG snapshot of
// the same scene. Rendering is a pure function of engine, view state, and
// theme; it never mutates either.
package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// Color is an RGBA value with a float alpha, convenient for the blend and
// fade math the renderer does per frame.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns the color with a replaced alpha.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lighten blends toward white: 0 is unchanged, 1 is white.
func (c Color) Lighten(factor float64) Color {
	f := clamp01(factor)
	return Color{
		R: uint8(float64(c.R) + (255-float64(c.R))*f),
		G: uint8(float64(c.G) + (255-float64(c.G))*f),
		B: uint8(float64(c.B) + (255-float64(c.B))*f),
		A: c.A,
	}
}

// Darken blends toward black: 0 is unchanged, 1 is black.
func (c Color) Darken(factor float64) Color {
	f := 1 - clamp01(factor)
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Lerp linearly interpolates toward other by t in [0, 1].
func (c Color) Lerp(other Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: uint8(float64(c.R)*(1-t) + float64(other.R)*t),
		G: uint8(float64(c.G)*(1-t) + float64(other.G)*t),
		B: uint8(float64(c.B)*(1-t) + float64(other.B)*t),
		A: c.A*(1-t) + other.A*t,
	}
}

// Hex formats the color as #rrggbb, dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA converts to the std image color with premultiplied-free alpha.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(c.A) * 255)}
}

// ParseColor parses #RRGGBB hex and rgb()/rgba() functional notation.
// Anything unparseable falls back to mid gray rather than failing; colors
// are display data, not structural.
func ParseColor(s string) Color {
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, errR := strconv.ParseUint(s[1:3], 16, 8)
		g, errG := strconv.ParseUint(s[3:5], 16, 8)
		b, errB := strconv.ParseUint(s[5:7], 16, 8)
		if errR != nil || errG != nil || errB != nil {
			return RGB(128, 128, 128)
		}
		return RGB(uint8(r), uint8(g), uint8(b))
	}
	if strings.HasPrefix(s, "rgb") {
		body := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(s, "rgba("), "rgb("), ")")
		parts := strings.Split(body, ",")
		get := func(i int, def float64) float64 {
			if i >= len(parts) {
				return def
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
			if err != nil {
				return def
			}
			return v
		}
		return RGBA(uint8(get(0, 128)), uint8(get(1, 128)), uint8(get(2, 128)), get(3, 1))
	}
	return RGB(128, 128, 128)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Palette is a cycling list of node colors used when a node's cluster has
// no entry in the color map.
type Palette []Color

// At returns the color for index i, wrapping around the palette.
func (p Palette) At(i int) Color {
	return p[i%len(p)]
}

// Curated palettes. Slate is the default.
func PaletteSlate() Palette {
	return Palette{
		RGB(94, 129, 172), RGB(129, 161, 193), RGB(100, 148, 160), RGB(136, 160, 175),
		RGB(108, 142, 173), RGB(119, 158, 165), RGB(143, 163, 180), RGB(122, 153, 168),
	}
}

func PaletteEarth() Palette {
	return Palette{
		RGB(180, 136, 100), RGB(160, 125, 100), RGB(170, 145, 115), RGB(145, 120, 95),
		RGB(175, 150, 120), RGB(155, 130, 105), RGB(165, 140, 110), RGB(150, 125, 100),
	}
}

func PaletteOcean() Palette {
	return Palette{
		RGB(70, 110, 140), RGB(80, 130, 150), RGB(100, 145, 160), RGB(90, 125, 145),
		RGB(85, 135, 155), RGB(95, 120, 140), RGB(75, 115, 135), RGB(88, 128, 148),
	}
}

func PaletteAurora() Palette {
	return Palette{
		RGB(100, 145, 135), RGB(115, 135, 155), RGB(130, 120, 150), RGB(105, 140, 145),
		RGB(120, 130, 160), RGB(125, 145, 140), RGB(110, 125, 155), RGB(135, 140, 150),
	}
}

// BackgroundStyle controls the backdrop fill.
type BackgroundStyle struct {
	Color          Color
	ColorSecondary Color
	UseGradient    bool
	Vignette       float64
}

// EdgeStyle controls edge strokes.
type EdgeStyle struct {
	Color        Color
	GlowColor    Color
	GlowIntensity float64
}

// NodeStyle controls node fills and effects.
type NodeStyle struct {
	UseGradient    bool
	GlowIntensity  float64
	GlowSaturation float64
	BorderWidth    float64
	BorderColor    Color
	PulseIntensity float64
	PulseSpeed     float64
}

// ParticleStyle configures the ambient background particles.
type ParticleStyle struct {
	Enabled bool
	Count   int
	Color   Color
	SizeMin float64
	SizeMax float64
	Speed   float64
	Opacity float64
}

// Theme is the complete visual configuration for a view.
type Theme struct {
	Name       string
	Background BackgroundStyle
	Edge       EdgeStyle
	Node       NodeStyle
	Particles  ParticleStyle
	Palette    Palette
}

// DefaultTheme is a clean dark theme with subtle effects.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Background: BackgroundStyle{
			Color:          RGB(22, 27, 34),
			ColorSecondary: RGB(30, 35, 42),
			UseGradient:    true,
			Vignette:       0.15,
		},
		Edge: EdgeStyle{
			Color:     RGBA(140, 160, 180, 0.5),
			GlowColor: RGBA(140, 160, 180, 0.1),
		},
		Node: NodeStyle{
			UseGradient: true,
		},
		Palette: PaletteSlate(),
	}
}

// MidnightTheme is a darker variant on the aurora palette.
func MidnightTheme() Theme {
	t := DefaultTheme()
	t.Name = "midnight"
	t.Background.Color = RGB(18, 20, 28)
	t.Background.ColorSecondary = RGB(25, 28, 38)
	t.Background.Vignette = 0.2
	t.Edge.Color = RGBA(100, 120, 150, 0.45)
	t.Palette = PaletteAurora()
	return t
}

// EmberTheme uses warm earth tones.
func EmberTheme() Theme {
	t := DefaultTheme()
	t.Name = "ember"
	t.Background.Color = RGB(28, 24, 22)
	t.Background.ColorSecondary = RGB(35, 30, 28)
	t.Background.Vignette = 0.18
	t.Edge.Color = RGBA(160, 130, 110, 0.45)
	t.Palette = PaletteEarth()
	return t
}

// MinimalTheme has a flat background and no effects.
func MinimalTheme() Theme {
	return Theme{
		Name: "minimal",
		Background: BackgroundStyle{
			Color:          RGB(25, 28, 35),
			ColorSecondary: RGB(25, 28, 35),
		},
		Edge: EdgeStyle{
			Color: RGBA(130, 145, 165, 0.4),
		},
		Palette: PaletteOcean(),
	}
}

// ThemeByName resolves a configured theme name, falling back to the
// default for anything unknown.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "midnight":
		return MidnightTheme()
	case "ember":
		return EmberTheme()
	case "minimal":
		return MinimalTheme()
	default:
		return DefaultTheme()
	}
}

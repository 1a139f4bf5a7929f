package ui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// rasterize converts an image to terminal half-block cells. Each text row
// carries two pixel rows: the upper pixel becomes the foreground of "▀",
// the lower pixel the background. The image should be 1 pixel per column
// and 2 per row of the target cell grid.
func rasterize(img image.Image) string {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var b strings.Builder
	b.Grow(w * h * 8)

	for y := 0; y < h-1; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		var runStyle lipgloss.Style
		var run strings.Builder
		var runKey string
		flush := func() {
			if run.Len() > 0 {
				b.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < w; x++ {
			top := hexAt(img, bounds.Min.X+x, bounds.Min.Y+y)
			bot := hexAt(img, bounds.Min.X+x, bounds.Min.Y+y+1)
			key := top + bot
			if key != runKey {
				flush()
				runKey = key
				runStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color(top)).
					Background(lipgloss.Color(bot))
			}
			run.WriteRune('▀')
		}
		flush()
	}
	return b.String()
}

// hexAt reads a pixel as a #rrggbb string.
func hexAt(img image.Image, x, y int) string {
	r, g, b, _ := img.At(x, y).RGBA()
	const hexdigits = "0123456789abcdef"
	out := [7]byte{'#'}
	v := [3]uint32{r >> 8, g >> 8, b >> 8}
	for i, c := range v {
		out[1+i*2] = hexdigits[c>>4]
		out[2+i*2] = hexdigits[c&0xf]
	}
	return string(out[:])
}

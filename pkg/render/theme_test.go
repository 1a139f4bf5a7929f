package render

import "testing"

func TestParseColorHex(t *testing.T) {
	c := ParseColor("#5e81ac")
	if c.R != 0x5e || c.G != 0x81 || c.B != 0xac || c.A != 1 {
		t.Errorf("parsed %+v", c)
	}
}

func TestParseColorFunctional(t *testing.T) {
	c := ParseColor("rgb(10, 20, 30)")
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 1 {
		t.Errorf("rgb() parsed %+v", c)
	}
	c = ParseColor("rgba(10, 20, 30, 0.5)")
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 0.5 {
		t.Errorf("rgba() parsed %+v", c)
	}
}

func TestParseColorFallsBackToGray(t *testing.T) {
	for _, s := range []string{"", "blue", "#xyzxyz", "#fff", "rgb(a,b,c,"} {
		c := ParseColor(s)
		if c.R != 128 || c.G != 128 || c.B != 128 {
			t.Errorf("ParseColor(%q) = %+v, want mid gray", s, c)
		}
	}
}

func TestLightenDarkenEndpoints(t *testing.T) {
	c := RGB(100, 150, 200)
	if got := c.Lighten(0); got != c {
		t.Errorf("Lighten(0) changed the color: %+v", got)
	}
	if got := c.Lighten(1); got != RGB(255, 255, 255) {
		t.Errorf("Lighten(1) = %+v, want white", got)
	}
	if got := c.Darken(0); got != c {
		t.Errorf("Darken(0) changed the color: %+v", got)
	}
	if got := c.Darken(1); got != RGB(0, 0, 0) {
		t.Errorf("Darken(1) = %+v, want black", got)
	}
}

func TestLerpEndpointsAndMidpoint(t *testing.T) {
	a := RGBA(0, 0, 0, 0)
	b := RGBA(200, 100, 50, 1)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v", got)
	}
	mid := a.Lerp(b, 0.5)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 || mid.A != 0.5 {
		t.Errorf("Lerp(0.5) = %+v", mid)
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB(0x12, 0xab, 0xef)
	if c.Hex() != "#12abef" {
		t.Errorf("Hex() = %s", c.Hex())
	}
	if ParseColor(c.Hex()) != c {
		t.Error("hex did not round trip")
	}
}

func TestNRGBAAlphaClamped(t *testing.T) {
	if got := RGBA(1, 2, 3, 2.0).NRGBA().A; got != 255 {
		t.Errorf("alpha above 1 maps to %d, want 255", got)
	}
	if got := RGBA(1, 2, 3, -1).NRGBA().A; got != 0 {
		t.Errorf("negative alpha maps to %d, want 0", got)
	}
}

func TestPaletteWraps(t *testing.T) {
	p := PaletteSlate()
	if p.At(0) != p.At(len(p)) {
		t.Error("palette did not wrap at its length")
	}
}

func TestThemeByName(t *testing.T) {
	cases := map[string]string{
		"midnight": "midnight",
		"Ember":    "ember",
		"MINIMAL":  "minimal",
		"default":  "default",
		"nope":     "default",
		"":         "default",
	}
	for in, want := range cases {
		if got := ThemeByName(in).Name; got != want {
			t.Errorf("ThemeByName(%q) = %s, want %s", in, got, want)
		}
	}
}

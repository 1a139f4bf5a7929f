package view

import (
	"math"
	"testing"
)

func TestScaleBehaviorModes(t *testing.T) {
	world := ScaleBehavior{Mode: ScaleWorld}
	if got := world.Apply(5, 2); got != 5 {
		t.Errorf("world mode should ignore zoom, got %v", got)
	}

	screen := ScaleBehavior{Mode: ScaleScreen}
	if got := screen.Apply(12, 4); got != 3 {
		t.Errorf("screen mode should divide by zoom, got %v", got)
	}

	clamped := ScaleBehavior{Mode: ScaleClamped, MinScreen: 5, MaxScreen: math.Inf(1)}
	// At zoom 1 the base 5 equals the 5px floor.
	if got := clamped.Apply(5, 1); got != 5 {
		t.Errorf("clamped at zoom 1: got %v", got)
	}
	// Zoomed out, the floor dominates: 5px screen = 50 world at 0.1x.
	if got := clamped.Apply(5, 0.1); got != 50 {
		t.Errorf("clamped floor should win when zoomed out, got %v", got)
	}
	// Zoomed in, the world size holds.
	if got := clamped.Apply(5, 4); got != 5 {
		t.Errorf("clamped zoomed in: got %v", got)
	}
}

func TestAlphaBehaviorModes(t *testing.T) {
	constant := AlphaBehavior{Mode: AlphaConstant}
	if got := constant.Apply(0.2); got != 1 {
		t.Errorf("constant alpha: got %v", got)
	}

	withZoom := AlphaBehavior{Mode: AlphaScaleWithZoom}
	if got := withZoom.Apply(0.5); got != 0.5 {
		t.Errorf("scale-with-zoom at 0.5: got %v", got)
	}
	if got := withZoom.Apply(3); got != 1 {
		t.Errorf("scale-with-zoom should clamp at 1, got %v", got)
	}

	fade := AlphaBehavior{Mode: AlphaFade, ZeroAlphaK: 0.4, FullAlphaK: 0.9}
	if got := fade.Apply(0.4); got != 0 {
		t.Errorf("fade at zero threshold: got %v", got)
	}
	if got := fade.Apply(0.9); got != 1 {
		t.Errorf("fade at full threshold: got %v", got)
	}
	mid := fade.Apply(0.65)
	if math.Abs(mid-0.5) > 1e-9 {
		t.Errorf("fade midpoint: got %v, want 0.5", mid)
	}
	if got := fade.Apply(0.1); got != 0 {
		t.Errorf("fade below range should clamp to 0, got %v", got)
	}
}

func TestNewScaledValuesPrecomputes(t *testing.T) {
	cfg := DefaultScaleConfig()
	sv := NewScaledValues(cfg, 2)

	if sv.K != 2 {
		t.Errorf("K = %v", sv.K)
	}
	if sv.EdgeLineWidth != cfg.EdgeLineWidth/2 {
		t.Errorf("edge width = %v", sv.EdgeLineWidth)
	}
	if sv.LabelSize != cfg.LabelSize/2 {
		t.Errorf("label size = %v", sv.LabelSize)
	}
	if sv.RingWidth != cfg.RingWidth/2 {
		t.Errorf("ring width = %v", sv.RingWidth)
	}
	if sv.CullArrows {
		t.Error("arrows should not cull at zoom 2")
	}

	// Deep zoom-out: arrows fade below the cull threshold.
	out := NewScaledValues(cfg, 0.04)
	if !out.CullArrows {
		t.Error("arrows should cull at zoom 0.04")
	}
}

func TestLabelSizeRespectsMinK(t *testing.T) {
	cfg := DefaultScaleConfig()
	// Below LabelMinK the divisor saturates so labels stop growing.
	a := NewScaledValues(cfg, cfg.LabelMinK)
	b := NewScaledValues(cfg, cfg.LabelMinK/4)
	if a.LabelSize != b.LabelSize {
		t.Errorf("label size should saturate below min zoom: %v vs %v", a.LabelSize, b.LabelSize)
	}
}

func TestDashOffsetAdvancesWithTime(t *testing.T) {
	sv := NewScaledValues(DefaultScaleConfig(), 1)
	if o1, o2 := sv.DashOffset(1, 12), sv.DashOffset(2, 12); o2 >= o1 {
		t.Errorf("dash offset should advance (negative direction): %v then %v", o1, o2)
	}
}

package view

import "math"

// Coordinate spaces: world-space sizes scale with zoom (larger when zoomed
// in), screen-space sizes are fixed pixels. Clamped behaves as world-space
// but bounds the resulting screen size.

// ScaleMode selects how a visual size responds to zoom.
type ScaleMode int

const (
	// ScaleWorld keeps a constant world-space size.
	ScaleWorld ScaleMode = iota
	// ScaleScreen keeps a constant screen-space (pixel) size.
	ScaleScreen
	// ScaleClamped scales in world-space within min/max screen bounds.
	ScaleClamped
)

// ScaleBehavior is a zoom response for one visual size.
type ScaleBehavior struct {
	Mode      ScaleMode
	MinScreen float64
	MaxScreen float64
}

// Apply returns the world-space value for base at zoom level k, ready to
// use after the camera transform.
func (b ScaleBehavior) Apply(base, k float64) float64 {
	switch b.Mode {
	case ScaleScreen:
		return base / k
	case ScaleClamped:
		minWorld := b.MinScreen / k
		maxWorld := b.MaxScreen / k
		return math.Max(minWorld, math.Min(maxWorld, base))
	default:
		return base
	}
}

// AlphaMode selects how opacity responds to zoom.
type AlphaMode int

const (
	// AlphaConstant ignores zoom.
	AlphaConstant AlphaMode = iota
	// AlphaScaleWithZoom multiplies alpha by k, clamped to [0, 1].
	AlphaScaleWithZoom
	// AlphaFade interpolates between two zoom thresholds.
	AlphaFade
)

// AlphaBehavior is a zoom response for one opacity value.
type AlphaBehavior struct {
	Mode       AlphaMode
	ZeroAlphaK float64 // zoom at which the element is fully faded out
	FullAlphaK float64 // zoom at which the element is fully visible
}

// Apply returns the alpha multiplier for zoom level k.
func (b AlphaBehavior) Apply(k float64) float64 {
	switch b.Mode {
	case AlphaScaleWithZoom:
		return math.Max(0, math.Min(1, k))
	case AlphaFade:
		if b.ZeroAlphaK == b.FullAlphaK {
			return 1
		}
		t := (k - b.ZeroAlphaK) / (b.FullAlphaK - b.ZeroAlphaK)
		return math.Max(0, math.Min(1, t))
	default:
		return 1
	}
}

// ScaleConfig centralizes every zoom-dependent visual parameter.
type ScaleConfig struct {
	NodeRadius         float64
	NodeRadiusBehavior ScaleBehavior
	HitRadius          float64
	HitBehavior        ScaleBehavior
	LabelSize          float64
	LabelMinK          float64

	EdgeLineWidth     float64
	DashPattern       [2]float64
	FlowSpeed         float64
	DashAlphaBehavior AlphaBehavior

	ArrowSize          float64
	ArrowSizeBehavior  ScaleBehavior
	ArrowAlphaBehavior AlphaBehavior
	ArrowCullAlpha     float64

	RingWidth  float64
	RingOffset float64
}

// DefaultScaleConfig returns the shipped tuning.
func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{
		NodeRadius:         5,
		NodeRadiusBehavior: ScaleBehavior{Mode: ScaleClamped, MinScreen: 5, MaxScreen: math.Inf(1)},
		HitRadius:          12,
		HitBehavior:        ScaleBehavior{Mode: ScaleClamped, MinScreen: 5, MaxScreen: math.Inf(1)},
		LabelSize:          10,
		LabelMinK:          0.5,

		EdgeLineWidth:     1.5,
		DashPattern:       [2]float64{8, 4},
		FlowSpeed:         12,
		DashAlphaBehavior: AlphaBehavior{Mode: AlphaFade, ZeroAlphaK: 0.4, FullAlphaK: 0.9},

		ArrowSize:          5,
		ArrowSizeBehavior:  ScaleBehavior{Mode: ScaleClamped, MinScreen: 0, MaxScreen: 18},
		ArrowAlphaBehavior: AlphaBehavior{Mode: AlphaScaleWithZoom},
		ArrowCullAlpha:     0.05,

		RingWidth:  1.5,
		RingOffset: 2,
	}
}

// ScaledValues are the per-frame precomputed sizes for one zoom level. All
// lengths are in world-space, ready to draw after the camera transform.
type ScaledValues struct {
	K             float64
	NodeRadius    float64
	HitRadius     float64
	LabelSize     float64
	EdgeLineWidth float64
	DashPattern   [2]float64
	DashAlpha     float64
	ArrowSize     float64
	ArrowAlpha    float64
	CullArrows    bool
	RingWidth     float64
	RingOffset    float64
}

// NewScaledValues precomputes scaled sizes for zoom level k. Create one per
// frame and share it across rendering and hit-testing.
func NewScaledValues(cfg ScaleConfig, k float64) ScaledValues {
	arrowAlpha := cfg.ArrowAlphaBehavior.Apply(k)
	return ScaledValues{
		K:             k,
		NodeRadius:    cfg.NodeRadiusBehavior.Apply(cfg.NodeRadius, k),
		HitRadius:     cfg.HitBehavior.Apply(cfg.HitRadius, k),
		LabelSize:     cfg.LabelSize / math.Max(k, cfg.LabelMinK),
		EdgeLineWidth: cfg.EdgeLineWidth / k,
		DashPattern:   cfg.DashPattern,
		DashAlpha:     cfg.DashAlphaBehavior.Apply(k),
		ArrowSize:     cfg.ArrowSizeBehavior.Apply(cfg.ArrowSize, k),
		ArrowAlpha:    arrowAlpha,
		CullArrows:    arrowAlpha < cfg.ArrowCullAlpha,
		RingWidth:     cfg.RingWidth / k,
		RingOffset:    cfg.RingOffset / k,
	}
}

// DashOffset returns the dash phase for the edge flow animation at the
// given elapsed time.
func (s ScaledValues) DashOffset(flowTime, flowSpeed float64) float64 {
	return -flowTime * flowSpeed
}

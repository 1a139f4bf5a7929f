package view

import "math"

// Highlight tuning. Smoothing factors are per-second response speeds: at
// 60fps a speed of 6 reaches ~95% in roughly 150ms, a speed of 4 in
// roughly 250ms.
const (
	fadeInSpeed  = 6.0
	fadeOutSpeed = 4.0
	// minHoldTime is how long a highlight is held before it may fade out,
	// so skirting the edge of a hover zone does not flash.
	minHoldTime = 0.12
	// intensityFloor is where a fading highlight is considered invisible
	// and dropped from tracking.
	intensityFloor = 0.005
)

// Highlight manages smooth hover transitions with per-node intensity.
// Rather than discrete current/previous sets, every node carries its own
// intensity in [0, 1] animated toward membership in the target set with
// exponential smoothing, which eases out naturally as it approaches the
// target.
type Highlight struct {
	// HoveredSlot is the currently hovered node, or -1.
	HoveredSlot int

	targetSet     map[int]bool
	intensity     map[int]float64
	ringIntensity map[int]float64
	holdTimer     map[int]float64
	cachedMax     float64
}

// NewHighlight returns an empty highlight tracker.
func NewHighlight() *Highlight {
	return &Highlight{
		HoveredSlot:   -1,
		targetSet:     make(map[int]bool),
		intensity:     make(map[int]float64),
		ringIntensity: make(map[int]float64),
		holdTimer:     make(map[int]float64),
	}
}

// SetHover updates the hovered slot (-1 for none) and recomputes the
// target set as the hovered node plus its direct neighbors.
func (h *Highlight) SetHover(slot int, edges [][2]int) {
	if h.HoveredSlot == slot {
		return
	}
	h.HoveredSlot = slot
	h.targetSet = make(map[int]bool)

	if slot < 0 {
		return
	}
	h.targetSet[slot] = true
	for _, e := range edges {
		if e[0] == slot {
			h.targetSet[e[1]] = true
		} else if e[1] == slot {
			h.targetSet[e[0]] = true
		}
	}
	for s := range h.targetSet {
		h.holdTimer[s] = minHoldTime
	}
}

// Tick animates all intensities toward their targets by elapsed time dt
// (seconds). Called once per frame, independent of input event rate.
func (h *Highlight) Tick(dt float64) {
	fadeIn := 1 - math.Exp(-fadeInSpeed*dt)
	fadeOutDecay := math.Exp(-fadeOutSpeed * dt)

	for s := range h.targetSet {
		h.intensity[s] += (1 - h.intensity[s]) * fadeIn
	}
	if h.HoveredSlot >= 0 {
		h.ringIntensity[h.HoveredSlot] += (1 - h.ringIntensity[h.HoveredSlot]) * fadeIn
	}

	for s, timer := range h.holdTimer {
		if h.targetSet[s] {
			continue
		}
		timer -= dt
		if timer <= 0 {
			delete(h.holdTimer, s)
		} else {
			h.holdTimer[s] = timer
		}
	}

	max := 0.0
	for s, v := range h.intensity {
		if !h.targetSet[s] {
			if _, held := h.holdTimer[s]; !held {
				v *= fadeOutDecay
			}
			if v <= intensityFloor {
				delete(h.intensity, s)
				continue
			}
			h.intensity[s] = v
		}
		if v > max {
			max = v
		}
	}
	h.cachedMax = max

	for s, v := range h.ringIntensity {
		if s == h.HoveredSlot {
			continue
		}
		if _, held := h.holdTimer[s]; !held {
			v *= fadeOutDecay
		}
		if v <= intensityFloor {
			delete(h.ringIntensity, s)
			continue
		}
		h.ringIntensity[s] = v
	}
}

// Intensity returns the smoothed highlight intensity for a node.
func (h *Highlight) Intensity(slot int) float64 {
	return h.intensity[slot]
}

// RingIntensity returns the smoothed hover-ring intensity for a node.
func (h *Highlight) RingIntensity(slot int) float64 {
	return h.ringIntensity[slot]
}

// EdgeIntensity returns the highlight intensity for an edge. The geometric
// mean tracks node transitions more smoothly than a min.
func (h *Highlight) EdgeIntensity(a, b int) float64 {
	return math.Sqrt(h.intensity[a] * h.intensity[b])
}

// MaxIntensity returns the strongest node intensity, used to dim
// non-highlighted elements.
func (h *Highlight) MaxIntensity() float64 {
	return h.cachedMax
}

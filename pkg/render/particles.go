package render

import "math"

// Particle is one ambient background speck. Particles live in screen
// space and drift upward, wrapping at the edges.
type Particle struct {
	X, Y  float64
	Size  float64
	Phase float64
	Speed float64
}

// ParticleField holds a deterministic set of particles for a given
// viewport. The layout is a pure function of index, so two fields of the
// same size and count are identical.
type ParticleField struct {
	particles []Particle
	style     ParticleStyle
	width     float64
	height    float64
}

// NewParticleField seeds count particles across the viewport.
func NewParticleField(style ParticleStyle, width, height float64) *ParticleField {
	f := &ParticleField{style: style, width: width, height: height}
	if !style.Enabled || style.Count <= 0 {
		return f
	}
	f.particles = make([]Particle, style.Count)
	for i := range f.particles {
		fi := float64(i)
		f.particles[i] = Particle{
			X:     hash01(fi*12.9898) * width,
			Y:     hash01(fi*78.233) * height,
			Size:  style.SizeMin + hash01(fi*37.719)*(style.SizeMax-style.SizeMin),
			Phase: hash01(fi*93.989) * 2 * math.Pi,
			Speed: 0.5 + hash01(fi*53.713),
		}
	}
	return f
}

// Tick advances every particle by dt seconds.
func (f *ParticleField) Tick(dt float64) {
	for i := range f.particles {
		p := &f.particles[i]
		p.Y -= p.Speed * f.style.Speed * dt
		p.X += math.Sin(p.Phase+p.Y*0.01) * 0.2 * f.style.Speed * dt
		if p.Y < -p.Size {
			p.Y = f.height + p.Size
		}
		if p.X < -p.Size {
			p.X = f.width + p.Size
		} else if p.X > f.width+p.Size {
			p.X = -p.Size
		}
	}
}

// Resize rescales particle positions into the new viewport.
func (f *ParticleField) Resize(width, height float64) {
	if f.width > 0 && f.height > 0 {
		sx := width / f.width
		sy := height / f.height
		for i := range f.particles {
			f.particles[i].X *= sx
			f.particles[i].Y *= sy
		}
	}
	f.width = width
	f.height = height
}

// Particles returns the live slice for drawing.
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// hash01 maps a seed to a deterministic value in [0, 1).
func hash01(seed float64) float64 {
	v := math.Sin(seed) * 43758.5453
	return v - math.Floor(v)
}

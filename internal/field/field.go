// Package field animates a set of drifting points over a drawing surface and
// connects the ones that come close to each other.
package field

import (
	"image/color"
	"math"
	"math/rand/v2"
)

const (
	// DefaultDensity is the surface area, in units², per particle.
	DefaultDensity = 15000
	// DefaultLinkDistance is the distance under which two particles are connected.
	DefaultLinkDistance = 120
	// LinkWidth is the stroke width of a connection.
	LinkWidth = 1
)

// Surface is anything the field can paint on.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, clr color.Color)
	StrokeLine(x0, y0, x1, y1, width float64, clr color.Color)
}

// Style holds the colors of a field.
type Style struct {
	Particle color.Color
	Link     color.Color
}

// DefaultStyle is rgba(0,242,255,0.7) particles with rgba(0,242,255,0.08) links.
var DefaultStyle = Style{
	Particle: color.NRGBA{R: 0, G: 242, B: 255, A: 179},
	Link:     color.NRGBA{R: 0, G: 242, B: 255, A: 20},
}

// Particle is a single moving point.
type Particle struct {
	X, Y   float64
	Radius float64
	VX, VY float64
}

// Update advances p by its velocity and reflects it off the [0,w]×[0,h] box.
// A particle may sit outside the box for one frame; the reflected velocity
// brings it back on the next step.
func (p *Particle) Update(w, h float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > w {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > h {
		p.VY = -p.VY
	}
}

// Draw paints p as a filled circle.
func (p *Particle) Draw(s Surface, clr color.Color) {
	s.FillCircle(p.X, p.Y, p.Radius, clr)
}

// Animator owns a particle field and the surface bounds it lives in.
type Animator struct {
	Density        float64
	LinkDistance   float64
	ReseedOnResize bool
	Style          Style

	particles []Particle
	width     float64
	height    float64
	rng       *rand.Rand
}

// New creates an animator for a w×h surface and seeds its field.
func New(w, h float64, rng *rand.Rand) *Animator {
	a := &Animator{
		Density:        DefaultDensity,
		LinkDistance:   DefaultLinkDistance,
		ReseedOnResize: true,
		Style:          DefaultStyle,
		rng:            rng,
	}
	a.Init(w, h)
	return a
}

// Count returns floor(w*h/density), or 0 for an empty surface.
func Count(w, h, density float64) int {
	if w <= 0 || h <= 0 || density <= 0 {
		return 0
	}
	return int(math.Floor(w * h / density))
}

// Init discards the current field and seeds a new one for a w×h surface.
func (a *Animator) Init(w, h float64) {
	a.width, a.height = w, h

	n := Count(w, h, a.Density)
	a.particles = make([]Particle, n)
	for i := range a.particles {
		a.particles[i] = Particle{
			X:      a.rng.Float64() * w,
			Y:      a.rng.Float64() * h,
			Radius: a.rng.Float64()*2 + 1,
			VX:     a.rng.Float64() - 0.5,
			VY:     a.rng.Float64() - 0.5,
		}
	}
}

// Resize updates the surface bounds. The field is reseeded only when
// ReseedOnResize is set; otherwise particles left outside the new bounds
// are pulled onto its edge so they keep bouncing inside it.
func (a *Animator) Resize(w, h float64) {
	if w == a.width && h == a.height {
		return
	}
	if a.ReseedOnResize {
		a.Init(w, h)
		return
	}
	a.width, a.height = w, h
	for i := range a.particles {
		p := &a.particles[i]
		p.X = math.Min(math.Max(p.X, 0), w)
		p.Y = math.Min(math.Max(p.Y, 0), h)
	}
}

// Size returns the current surface bounds.
func (a *Animator) Size() (w, h float64) {
	return a.width, a.height
}

// Particles exposes the field. Callers must not keep the slice across Init.
func (a *Animator) Particles() []Particle {
	return a.particles
}

// SetParticles replaces the field, mostly for tests and replays.
func (a *Animator) SetParticles(ps []Particle) {
	a.particles = ps
}

// Update advances every particle by one frame.
func (a *Animator) Update() {
	for i := range a.particles {
		a.particles[i].Update(a.width, a.height)
	}
}

// Draw paints every particle.
func (a *Animator) Draw(s Surface) {
	for i := range a.particles {
		a.particles[i].Draw(s, a.Style.Particle)
	}
}

// Connect draws one line between every pair of distinct particles closer
// than LinkDistance and returns how many lines it drew.
func (a *Animator) Connect(s Surface) int {
	return a.connect(s, a.Style.Link)
}

// ConnectWith is Connect using clr instead of the style's link color.
func (a *Animator) ConnectWith(s Surface, clr color.Color) int {
	return a.connect(s, clr)
}

func (a *Animator) connect(s Surface, clr color.Color) int {
	lines := 0
	ps := a.particles
	for i := 0; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			dx := ps[i].X - ps[j].X
			dy := ps[i].Y - ps[j].Y
			if math.Sqrt(dx*dx+dy*dy) < a.LinkDistance {
				s.StrokeLine(ps[i].X, ps[i].Y, ps[j].X, ps[j].Y, LinkWidth, clr)
				lines++
			}
		}
	}
	return lines
}

// Frame clears s, steps and paints the field, then runs the connection pass.
func (a *Animator) Frame(s Surface) {
	s.Clear()
	for i := range a.particles {
		a.particles[i].Update(a.width, a.height)
		a.particles[i].Draw(s, a.Style.Particle)
	}
	a.Connect(s)
}

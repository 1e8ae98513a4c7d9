package page

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// settle is how close the scroller must get before it snaps to its target.
const settle = 0.5

// Scroller eases a scroll offset towards a target.
type Scroller struct {
	pos    float64
	vel    float64
	target float64
	max    float64
	spring harmonica.Spring
}

// NewScroller returns a critically damped scroller ticking at fps.
func NewScroller(fps int) *Scroller {
	return &Scroller{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

// Pos is the current scroll offset.
func (s *Scroller) Pos() float64 { return s.pos }

// Target is where the scroller is heading.
func (s *Scroller) Target() float64 { return s.target }

// Max is the largest reachable offset.
func (s *Scroller) Max() float64 { return s.max }

// SetMax bounds the scroll range to [0, max], pulling the offset back in.
func (s *Scroller) SetMax(max float64) {
	s.max = math.Max(0, max)
	s.target = s.clamp(s.target)
	s.pos = s.clamp(s.pos)
}

// ScrollTo sets the target offset.
func (s *Scroller) ScrollTo(y float64) { s.target = s.clamp(y) }

// ScrollBy moves the target by dy.
func (s *Scroller) ScrollBy(dy float64) { s.target = s.clamp(s.target + dy) }

// JumpTo moves to y immediately.
func (s *Scroller) JumpTo(y float64) {
	s.target = s.clamp(y)
	s.pos = s.target
	s.vel = 0
}

// Moving reports whether the scroller has not settled yet.
func (s *Scroller) Moving() bool { return s.pos != s.target }

// Update advances the scroller by one frame.
func (s *Scroller) Update() {
	if !s.Moving() {
		return
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < settle && math.Abs(s.vel) < settle {
		s.pos = s.target
		s.vel = 0
	}
}

func (s *Scroller) clamp(y float64) float64 {
	return math.Min(math.Max(y, 0), s.max)
}

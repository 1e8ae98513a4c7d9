package page

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	tiltDivisor = 25
	tiltLift    = -6
	perspective = 1000
)

// Point is a position on the surface.
type Point struct{ X, Y float64 }

// Rect is an axis-aligned box.
type Rect struct{ X, Y, W, H float64 }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Tilt is a card transform: rotations in degrees and a vertical lift.
type Tilt struct {
	RotateX float64
	RotateY float64
	Lift    float64
}

// TiltAt returns the transform of card r for a pointer at (px, py). The card
// leans away from the pointer: one degree per 25 units from its center.
func TiltAt(px, py float64, r Rect) Tilt {
	x := px - r.X
	y := py - r.Y
	return Tilt{
		RotateX: -((y - r.H/2) / tiltDivisor),
		RotateY: (x - r.W/2) / tiltDivisor,
		Lift:    tiltLift,
	}
}

// Project returns the corners of r (top-left, top-right, bottom-right,
// bottom-left) after applying t around the card's center.
func Project(r Rect, t Tilt) [4]Point {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	ax := t.RotateX * math.Pi / 180
	ay := t.RotateY * math.Pi / 180
	sinX, cosX := math.Sincos(ax)
	sinY, cosY := math.Sincos(ay)

	corners := [4]Point{
		{-r.W / 2, -r.H / 2},
		{r.W / 2, -r.H / 2},
		{r.W / 2, r.H / 2},
		{-r.W / 2, r.H / 2},
	}
	var out [4]Point
	for i, c := range corners {
		// rotateY then rotateX, z towards the viewer
		x1 := c.X * cosY
		z1 := -c.X * sinY
		y2 := c.Y*cosX - z1*sinX
		z2 := c.Y*sinX + z1*cosX
		scale := perspective / (perspective - z2)
		out[i] = Point{X: cx + x1*scale, Y: cy + y2*scale + t.Lift}
	}
	return out
}

// Card is a project card that tilts under the pointer.
type Card struct {
	Title string
	Blurb string
	Rect  Rect // page coordinates

	hovered bool
	target  Tilt
	cur     Tilt
	vel     Tilt
	spring  harmonica.Spring
}

func newCard(title, blurb string, fps int) *Card {
	return &Card{
		Title:  title,
		Blurb:  blurb,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 12.0, 0.8),
	}
}

// Pointer aims the card at the pointer (page coordinates). A pointer
// outside the card resets it flat.
func (c *Card) Pointer(px, py float64) {
	if c.Rect.Contains(px, py) {
		c.hovered = true
		c.target = TiltAt(px, py, c.Rect)
		return
	}
	c.Leave()
}

// Leave resets the card.
func (c *Card) Leave() {
	c.hovered = false
	c.target = Tilt{}
}

// Hovered reports whether the pointer is over the card.
func (c *Card) Hovered() bool { return c.hovered }

// Target is the transform the card is easing towards.
func (c *Card) Target() Tilt { return c.target }

// Tilt is the current, eased transform.
func (c *Card) Tilt() Tilt { return c.cur }

// Update eases the current transform one frame towards the target.
func (c *Card) Update() {
	c.cur.RotateX, c.vel.RotateX = c.spring.Update(c.cur.RotateX, c.vel.RotateX, c.target.RotateX)
	c.cur.RotateY, c.vel.RotateY = c.spring.Update(c.cur.RotateY, c.vel.RotateY, c.target.RotateY)
	c.cur.Lift, c.vel.Lift = c.spring.Update(c.cur.Lift, c.vel.Lift, c.target.Lift)
}

// Package snapshot renders a particle field without a window, onto an
// in-memory image that can be saved as PNG.
package snapshot

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/iburimskiy/particle-backdrop/internal/field"
)

// circleSegments is how many edges approximate a circle.
const circleSegments = 24

// Canvas is a field.Surface backed by an RGBA image.
type Canvas struct {
	img *image.RGBA
	bg  *image.Uniform
	z   *vector.Rasterizer
}

// New returns a w×h canvas filled with bg.
func New(w, h int, bg color.Color) *Canvas {
	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		bg:  image.NewUniform(bg),
		z:   vector.NewRasterizer(w, h),
	}
	c.Clear()
	return c
}

// Image returns the rendered image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Clear() {
	draw.Draw(c.img, c.img.Bounds(), c.bg, image.Point{}, draw.Src)
}

func (c *Canvas) FillCircle(x, y, r float64, clr color.Color) {
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.MoveTo(float32(x+r), float32(y))
	for i := 1; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		c.z.LineTo(float32(x+r*math.Cos(a)), float32(y+r*math.Sin(a)))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(clr), image.Point{})
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// half-width normal
	nx := -dy / length * width / 2
	ny := dx / length * width / 2

	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
	c.z.MoveTo(float32(x0+nx), float32(y0+ny))
	c.z.LineTo(float32(x1+nx), float32(y1+ny))
	c.z.LineTo(float32(x1-nx), float32(y1-ny))
	c.z.LineTo(float32(x0-nx), float32(y0-ny))
	c.z.ClosePath()
	c.z.Draw(c.img, b, image.NewUniform(clr), image.Point{})
}

// Render runs frames frames of a onto c.
func Render(ctx context.Context, a *field.Animator, frames int, c *Canvas) error {
	if frames <= 0 {
		return fmt.Errorf("snapshot: frame count %d must be positive", frames)
	}
	return field.NewLoop(a, frames).Run(ctx, c)
}

// WritePNG encodes the canvas to path.
func (c *Canvas) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

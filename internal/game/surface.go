package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-backdrop/internal/page"
)

// screenSurface paints the particle field onto an ebiten image.
type screenSurface struct {
	dst *ebiten.Image
	bg  color.Color
}

func (s *screenSurface) Clear() {
	s.dst.Fill(s.bg)
}

func (s *screenSurface) FillCircle(x, y, r float64, clr color.Color) {
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), clr, true)
}

func (s *screenSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}

var whiteSubImage *ebiten.Image

// white returns a 1×1 opaque white source for DrawTriangles, created on
// first use so the package can be loaded without a graphics context.
func white() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// fillQuad fills the convex quad q with clr.
func fillQuad(dst *ebiten.Image, q [4]page.Point, clr color.NRGBA) {
	r := float32(clr.R) / 0xff
	g := float32(clr.G) / 0xff
	b := float32(clr.B) / 0xff
	a := float32(clr.A) / 0xff

	vs := make([]ebiten.Vertex, len(q))
	for i, p := range q {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: g, ColorB: b, ColorA: a,
		}
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, white(), op)
}

// strokeQuad outlines q with clr.
func strokeQuad(dst *ebiten.Image, q [4]page.Point, width float32, clr color.Color) {
	for i := range q {
		a, b := q[i], q[(i+1)%len(q)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}

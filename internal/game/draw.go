package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-backdrop/internal/config"
	"github.com/iburimskiy/particle-backdrop/internal/page"
)

const (
	charWidth   = 6 // debug font glyph width
	margin      = 48
	linkPadding = 12
	revealShift = 40 // how far a section slides up while fading in
	shadowDepth = 18
)

// navRects lays out the header links right-aligned in a surface w wide.
func navRects(links []page.Link, w int) []page.Rect {
	rects := make([]page.Rect, len(links))
	x := float64(w - margin)
	for i := len(links) - 1; i >= 0; i-- {
		lw := float64(len(links[i].Label)*charWidth + 2*linkPadding)
		x -= lw
		rects[i] = page.Rect{X: x, Y: 0, W: lw, H: config.HeaderHeight}
	}
	return rects
}

// linkAt returns the index of the rect under (x, y), or -1.
func linkAt(rects []page.Rect, x, y float64) int {
	for i, r := range rects {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// buttonRect places the soundtrack button in the bottom right corner.
func buttonRect(w, h int) page.Rect {
	return page.Rect{
		X: float64(w - config.ButtonWidth - config.ButtonMargin),
		Y: float64(h - config.ButtonHeight - config.ButtonMargin),
		W: config.ButtonWidth,
		H: config.ButtonHeight,
	}
}

func (g *Game) drawSections(screen *ebiten.Image) {
	scroll := g.page.ScrollY()
	w := float64(g.width)
	for _, s := range g.page.Sections {
		top := s.Top - scroll
		if top > float64(g.height) || top+s.Height < 0 {
			continue
		}
		o := clamp01(s.Opacity())
		if o == 0 {
			continue
		}
		y := top + (1-o)*revealShift

		panel := withAlpha(g.text, 0.05*o)
		vector.DrawFilledRect(screen, margin, float32(y+24), float32(w-2*margin), float32(s.Height-48), panel, false)
		vector.StrokeRect(screen, margin, float32(y+24), float32(w-2*margin), float32(s.Height-48), 1, withAlpha(g.accent, 0.15*o), false)

		// the debug font has no alpha; text appears once the panel is mostly in
		if o < 0.5 {
			continue
		}
		ebitenutil.DebugPrintAt(screen, s.Title, margin+24, int(y)+48)
		if s.Body != "" {
			ebitenutil.DebugPrintAt(screen, s.Body, margin+24, int(y)+72)
		}
		switch s.Kind {
		case page.KindStats:
			g.drawCounters(screen, y)
		case page.KindProjects:
			g.drawCards(screen, scroll)
		}
	}
}

func (g *Game) drawCounters(screen *ebiten.Image, top float64) {
	n := len(g.page.Counters)
	if n == 0 {
		return
	}
	col := float64(g.width-2*margin) / float64(n)
	for i, c := range g.page.Counters {
		x := margin + float64(i)*col + col/2
		text := c.Text()
		ebitenutil.DebugPrintAt(screen, text, int(x)-len(text)*charWidth/2, int(top)+140)
		ebitenutil.DebugPrintAt(screen, c.Label, int(x)-len(c.Label)*charWidth/2, int(top)+164)
		if c.Done() {
			vector.StrokeLine(screen, float32(x-24), float32(top+186), float32(x+24), float32(top+186), 2, g.accent, true)
		}
	}
}

func (g *Game) drawCards(screen *ebiten.Image, scroll float64) {
	for _, c := range g.page.Cards {
		r := c.Rect
		r.Y -= scroll
		q := page.Project(r, c.Tilt())

		fillQuad(screen, q, withAlpha(g.background, 0.9))
		edge := withAlpha(g.accent, 0.3)
		if c.Hovered() {
			edge = shiftHue(g.accent, g.colorPhase)
		}
		strokeQuad(screen, q, 1.5, edge)

		ebitenutil.DebugPrintAt(screen, c.Title, int(q[0].X)+16, int(q[0].Y)+16)
		ebitenutil.DebugPrintAt(screen, c.Blurb, int(q[0].X)+16, int(q[0].Y)+40)
	}
}

func (g *Game) drawHeader(screen *ebiten.Image) {
	w := float32(g.width)
	hh := float32(g.page.HeaderHeight)
	vector.DrawFilledRect(screen, 0, 0, w, hh, withAlpha(g.background, 0.85), false)

	if g.page.HeaderShadow() {
		for i := 0; i < shadowDepth; i++ {
			a := uint8(115 * (shadowDepth - i) / shadowDepth)
			vector.DrawFilledRect(screen, 0, hh+float32(i), w, 1, color.NRGBA{A: a}, false)
		}
	}

	if len(g.page.Sections) > 0 {
		ebitenutil.DebugPrintAt(screen, g.page.Sections[0].Title, margin, int(hh)/2-8)
	}

	active := g.page.ActiveHref()
	for i, r := range navRects(g.page.Links, g.width) {
		link := g.page.Links[i]
		ebitenutil.DebugPrintAt(screen, link.Label, int(r.X)+linkPadding, int(r.H)/2-8)

		underline := float32(r.H/2 + 12)
		x0, x1 := float32(r.X+linkPadding), float32(r.X+r.W-linkPadding)
		switch {
		case link.Href == active:
			vector.StrokeLine(screen, x0, underline, x1, underline, 2, shiftHue(g.accent, g.colorPhase), true)
		case i == g.hoveredLink:
			vector.StrokeLine(screen, x0, underline, x1, underline, 1, withAlpha(g.text, 0.4), true)
		}
	}
}

func (g *Game) drawButton(screen *ebiten.Image) {
	if g.track == nil {
		return
	}
	r := buttonRect(g.width, g.height)

	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 20, G: 60, B: 80, A: 255} // Pressed
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 30, G: 80, B: 100, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 20, G: 40, B: 60, A: 220} // Normal
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bgColor, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, g.accent, false)

	text := "Open Track"
	textX := int(r.X) + (int(r.W)-len(text)*charWidth)/2
	textY := int(r.Y) + (int(r.H)-16)/2
	ebitenutil.DebugPrintAt(screen, text, textX, textY)
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := "Wheel/arrows: scroll | Esc/Q: quit"
	if g.track != nil {
		switch {
		case !g.track.Loaded():
			status = "Open a track to pulse the field | " + status
		case g.track.Paused():
			status = "Paused " + g.track.Name() + " - Space to play | " + status
		default:
			status = "Playing " + g.track.Name() + " " + formatDuration(g.track.Position()) + " - Space to pause | " + status
		}
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, g.height-config.ButtonMargin-20)
}

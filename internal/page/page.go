// Package page models the scroll-driven effects of a single-page site:
// header shadow, active navigation link, reveal on scroll, stat counters,
// smooth scrolling to anchors and tilting project cards.
package page

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/iburimskiy/particle-backdrop/internal/config"
)

const (
	ShadowThreshold = 20   // scroll offset past which the header casts a shadow
	ActiveOffset    = 200  // a section is current once scrolled within this of its top
	RevealRatio     = 0.12 // visible fraction that reveals a section
	StatsRatio      = 0.4  // visible fraction of the stats section that starts counters
)

// Section kinds with special content.
const (
	KindText     = ""
	KindStats    = "stats"
	KindProjects = "projects"
)

// Card layout inside a projects section.
const (
	cardHeight = 220
	cardGap    = 24
	cardTop    = 120
	pageMargin = 48
)

// Section is a block of the page.
type Section struct {
	ID     string
	Title  string
	Body   string
	Kind   string
	Top    float64
	Height float64

	revealed bool
	opacity  float64
	fadeVel  float64
}

// Revealed reports whether the section has been scrolled into view once.
func (s *Section) Revealed() bool { return s.revealed }

// Opacity is the eased reveal opacity in [0, 1].
func (s *Section) Opacity() float64 { return s.opacity }

// Link is a navigation entry pointing at an anchor.
type Link struct {
	Label string
	Href  string
}

// Page holds the page content and its scroll state.
type Page struct {
	HeaderHeight float64
	Sections     []*Section
	Links        []Link
	Counters     []*Counter
	Cards        []*Card

	viewW, viewH float64
	scroll       *Scroller
	fade         harmonica.Spring
	frame        time.Duration
	pointerX     float64
	pointerY     float64
	pointerIn    bool
}

// New builds a page from the config content for a viewport of w×h.
func New(cfg *config.Config, w, h float64) *Page {
	p := &Page{
		HeaderHeight: config.HeaderHeight,
		scroll:       NewScroller(cfg.TPS),
		fade:         harmonica.NewSpring(harmonica.FPS(cfg.TPS), 4.0, 1.0),
		frame:        time.Second / time.Duration(cfg.TPS),
	}
	for _, s := range cfg.Sections {
		p.Sections = append(p.Sections, &Section{
			ID:     s.ID,
			Title:  s.Title,
			Body:   s.Body,
			Kind:   s.Kind,
			Height: s.Height,
		})
		p.Links = append(p.Links, Link{Label: s.ID, Href: "#" + s.ID})
	}
	for _, st := range cfg.Stats {
		p.Counters = append(p.Counters, NewCounter(st.Label, st.Value))
	}
	for _, pr := range cfg.Projects {
		p.Cards = append(p.Cards, newCard(pr.Title, pr.Blurb, cfg.TPS))
	}
	p.Layout(w, h)
	return p
}

// Layout places sections and cards for a viewport of w×h.
func (p *Page) Layout(w, h float64) {
	p.viewW, p.viewH = w, h

	top := 0.0
	for _, s := range p.Sections {
		s.Top = top
		top += s.Height
	}
	p.scroll.SetMax(top - h)

	projects := p.Section(KindProjects)
	if projects == nil || len(p.Cards) == 0 {
		return
	}
	n := float64(len(p.Cards))
	cardW := (w - 2*pageMargin - (n-1)*cardGap) / n
	for i, c := range p.Cards {
		c.Rect = Rect{
			X: pageMargin + float64(i)*(cardW+cardGap),
			Y: projects.Top + cardTop,
			W: math.Max(cardW, 0),
			H: cardHeight,
		}
	}
}

// Viewport returns the viewport size the page was laid out for.
func (p *Page) Viewport() (w, h float64) { return p.viewW, p.viewH }

// ContentHeight is the total height of all sections.
func (p *Page) ContentHeight() float64 {
	if len(p.Sections) == 0 {
		return 0
	}
	last := p.Sections[len(p.Sections)-1]
	return last.Top + last.Height
}

// Section returns the first section of the given kind, or nil.
func (p *Page) Section(kind string) *Section {
	for _, s := range p.Sections {
		if s.Kind == kind {
			return s
		}
	}
	return nil
}

// Find returns the section with the given id, or nil.
func (p *Page) Find(id string) *Section {
	for _, s := range p.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Scroller exposes the scroll state.
func (p *Page) Scroller() *Scroller { return p.scroll }

// ScrollY is the current scroll offset.
func (p *Page) ScrollY() float64 { return p.scroll.Pos() }

// ScrollBy moves the scroll target by dy.
func (p *Page) ScrollBy(dy float64) { p.scroll.ScrollBy(dy) }

// ScrollTo smoothly scrolls to the section an anchor href names. Hrefs
// that are not "#id" or name no section are ignored and return false.
func (p *Page) ScrollTo(href string) bool {
	id, ok := strings.CutPrefix(href, "#")
	if !ok || id == "" {
		return false
	}
	s := p.Find(id)
	if s == nil {
		return false
	}
	p.scroll.ScrollTo(s.Top)
	return true
}

// HeaderShadow reports whether the header casts a shadow at scrollY.
func HeaderShadow(scrollY float64) bool {
	return scrollY > ShadowThreshold
}

// HeaderShadow reports whether the header casts a shadow at the current offset.
func (p *Page) HeaderShadow() bool { return HeaderShadow(p.ScrollY()) }

// ActiveSection returns the id of the last section whose top, less
// ActiveOffset, has been scrolled past; "" when none has.
func (p *Page) ActiveSection(scrollY float64) string {
	current := ""
	for _, s := range p.Sections {
		if scrollY >= s.Top-ActiveOffset {
			current = s.ID
		}
	}
	return current
}

// ActiveHref is the href of the link to highlight at the current offset.
func (p *Page) ActiveHref() string {
	id := p.ActiveSection(p.ScrollY())
	if id == "" {
		return ""
	}
	return "#" + id
}

// Visibility returns the fraction of a [top, top+height) block that lies in
// the viewport [scrollY, scrollY+viewH).
func Visibility(top, height, scrollY, viewH float64) float64 {
	if height <= 0 {
		return 0
	}
	overlap := math.Min(top+height, scrollY+viewH) - math.Max(top, scrollY)
	if overlap <= 0 {
		return 0
	}
	return math.Min(overlap/height, 1)
}

// Pointer records the pointer position in viewport coordinates.
func (p *Page) Pointer(x, y float64) {
	p.pointerX, p.pointerY, p.pointerIn = x, y, true
}

// PointerLeave forgets the pointer, flattening every card.
func (p *Page) PointerLeave() {
	p.pointerIn = false
}

// Update advances scrolling, reveals, counters and cards by one frame.
func (p *Page) Update() {
	p.scroll.Update()
	y := p.ScrollY()

	for _, s := range p.Sections {
		vis := Visibility(s.Top, s.Height, y, p.viewH)
		if !s.revealed && vis >= RevealRatio {
			s.revealed = true
		}
		if s.revealed {
			s.opacity, s.fadeVel = p.fade.Update(s.opacity, s.fadeVel, 1)
			s.opacity = math.Min(math.Max(s.opacity, 0), 1)
		}
		if s.Kind == KindStats && vis >= StatsRatio {
			for _, c := range p.Counters {
				c.Start()
			}
		}
	}
	for _, c := range p.Counters {
		c.Advance(p.frame)
	}

	for _, c := range p.Cards {
		if p.pointerIn {
			c.Pointer(p.pointerX, p.pointerY+y)
		} else {
			c.Leave()
		}
		c.Update()
	}
}

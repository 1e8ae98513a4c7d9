package game

import (
	"errors"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/particle-backdrop/internal/config"
	"github.com/iburimskiy/particle-backdrop/internal/field"
	"github.com/iburimskiy/particle-backdrop/internal/page"
	"github.com/iburimskiy/particle-backdrop/internal/soundtrack"
)

const (
	lineScroll = 80  // arrow keys
	wheelScale = 60  // per wheel notch
	pageScroll = 0.9 // fraction of the viewport per PageUp/PageDown
)

// Game is the ebiten game: a particle backdrop under a scrolling page.
type Game struct {
	cfg   *config.Config
	anim  *field.Animator
	loop  *field.Loop
	page  *page.Page
	track *soundtrack.Player

	// current surface size and the size Layout last reported
	width, height  int
	outerW, outerH int

	background color.NRGBA
	linkBase   color.NRGBA
	accent     color.NRGBA
	text       color.NRGBA

	level      float64
	colorPhase float64

	buttonHovered bool
	buttonPressed bool
	hoveredLink   int
	lastErr       error
}

// NewAnimator builds a field animator tuned by cfg for a w×h surface.
func NewAnimator(cfg *config.Config, w, h float64, rng *rand.Rand) *field.Animator {
	a := field.New(0, 0, rng)
	a.Density = cfg.Density
	a.LinkDistance = cfg.LinkDistance
	a.ReseedOnResize = cfg.ReseedOnResize
	a.Style = field.Style{
		Particle: config.MustColor(cfg.Theme.Particle),
		Link:     config.MustColor(cfg.Theme.Link),
	}
	a.Init(w, h)
	return a
}

// New returns a game for cfg. maxFrames stops the game after that many
// frames; 0 runs until the window is closed.
func New(cfg *config.Config, rng *rand.Rand, track *soundtrack.Player, maxFrames int) *Game {
	w, h := cfg.Width, cfg.Height
	anim := NewAnimator(cfg, float64(w), float64(h), rng)
	return &Game{
		cfg:         cfg,
		anim:        anim,
		loop:        field.NewLoop(anim, maxFrames),
		page:        page.New(cfg, float64(w), float64(h)),
		track:       track,
		width:       w,
		height:      h,
		outerW:      w,
		outerH:      h,
		background:  config.MustColor(cfg.Theme.Background),
		linkBase:    config.MustColor(cfg.Theme.Link),
		accent:      config.MustColor(cfg.Theme.Accent),
		text:        config.MustColor(cfg.Theme.Text),
		hoveredLink: -1,
	}
}

// Animator exposes the particle field.
func (g *Game) Animator() *field.Animator { return g.anim }

// Page exposes the page model.
func (g *Game) Page() *page.Page { return g.page }

func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}
	return g.step()
}

// step advances everything that does not read input by one frame.
func (g *Game) step() error {
	g.applyResize()
	if err := g.loop.Step(); err != nil {
		if errors.Is(err, field.ErrStopped) {
			return ebiten.Termination
		}
		return err
	}
	g.page.Update()
	g.colorPhase += config.ColorShiftSpeed
	if g.track != nil {
		g.level = g.track.Level()
	}
	return nil
}

// applyResize carries the size reported by Layout over to the field and
// the page. It runs at the start of a frame so a resize never lands mid-draw.
func (g *Game) applyResize() {
	if g.outerW == g.width && g.outerH == g.height {
		return
	}
	g.width, g.height = g.outerW, g.outerH
	g.anim.Resize(float64(g.width), float64(g.height))
	g.page.Layout(float64(g.width), float64(g.height))
}

func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) && g.track != nil {
		g.track.TogglePause()
	}

	h := float64(g.height)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.page.ScrollBy(lineScroll)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.page.ScrollBy(-lineScroll)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.page.ScrollBy(h * pageScroll)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.page.ScrollBy(-h * pageScroll)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.page.Scroller().ScrollTo(0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.page.Scroller().ScrollTo(g.page.Scroller().Max())
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.page.ScrollBy(-dy * wheelScale)
	}

	mx, my := ebiten.CursorPosition()
	inside := mx >= 0 && my >= 0 && mx < g.width && my < g.height
	if inside && float64(my) > g.page.HeaderHeight {
		g.page.Pointer(float64(mx), float64(my))
	} else {
		g.page.PointerLeave()
	}

	g.hoveredLink = linkAt(navRects(g.page.Links, g.width), float64(mx), float64(my))
	if g.hoveredLink >= 0 && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.page.ScrollTo(g.page.Links[g.hoveredLink].Href)
	}

	btn := buttonRect(g.width, g.height)
	g.buttonHovered = inside && btn.Contains(float64(mx), float64(my))
	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered && g.track != nil {
			if err := g.track.OpenDialog(); err != nil {
				g.lastErr = err
			}
		}
		g.buttonPressed = false
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := &screenSurface{dst: screen, bg: g.background}
	s.Clear()
	g.anim.Draw(s)
	g.anim.ConnectWith(s, pulse(g.linkBase, g.cfg.Pulse, g.level))

	g.drawSections(screen)
	g.drawHeader(screen)
	g.drawButton(screen)
	g.drawStatus(screen)
}

// Layout follows the window: the surface is always as large as the viewport.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// a minimized window reports 0; keep the last real size
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return g.outerW, g.outerH
	}
	g.outerW, g.outerH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

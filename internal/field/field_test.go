package field

import (
	"context"
	"errors"
	"image/color"
	"math"
	"math/rand/v2"
	"testing"
)

type line struct{ x0, y0, x1, y1 float64 }

// recorder is a Surface that remembers what was painted since the last Clear.
type recorder struct {
	clears  int
	circles int
	lines   []line
	calls   []string
}

func (r *recorder) Clear() {
	r.clears++
	r.circles = 0
	r.lines = nil
	r.calls = append(r.calls, "clear")
}

func (r *recorder) FillCircle(x, y, rad float64, clr color.Color) {
	r.circles++
	r.calls = append(r.calls, "circle")
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.lines = append(r.lines, line{x0, y0, x1, y1})
	r.calls = append(r.calls, "line")
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestCount(t *testing.T) {
	tests := []struct {
		w, h float64
		want int
	}{
		{1500, 1000, 100},
		{1920, 1080, 138},
		{100, 100, 0},
		{150, 100, 1},
		{0, 1000, 0},
		{-10, 1000, 0},
	}
	for _, tt := range tests {
		if got := Count(tt.w, tt.h, DefaultDensity); got != tt.want {
			t.Errorf("Count(%v, %v) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestInitSeedsWithinRanges(t *testing.T) {
	a := New(1500, 1000, testRand())
	ps := a.Particles()
	if len(ps) != 100 {
		t.Fatalf("len(Particles()) = %d, want 100", len(ps))
	}
	for i, p := range ps {
		if p.X < 0 || p.X >= 1500 || p.Y < 0 || p.Y >= 1000 {
			t.Errorf("particle %d at (%v, %v) outside surface", i, p.X, p.Y)
		}
		if p.Radius < 1 || p.Radius >= 3 {
			t.Errorf("particle %d radius %v outside [1, 3)", i, p.Radius)
		}
		if p.VX < -0.5 || p.VX >= 0.5 || p.VY < -0.5 || p.VY >= 0.5 {
			t.Errorf("particle %d velocity (%v, %v) outside [-0.5, 0.5)", i, p.VX, p.VY)
		}
	}
}

func TestUpdateReflectsAtBounds(t *testing.T) {
	const w, h = 300.0, 200.0
	a := New(w, h, testRand())
	for frame := 0; frame < 2000; frame++ {
		before := append([]Particle(nil), a.Particles()...)
		a.Update()
		for i, p := range a.Particles() {
			b := before[i]
			if p.X != b.X+b.VX || p.Y != b.Y+b.VY {
				t.Fatalf("frame %d particle %d did not move by its velocity", frame, i)
			}
			outX := p.X < 0 || p.X > w
			if outX != (p.VX == -b.VX && b.VX != 0) && b.VX != 0 {
				t.Fatalf("frame %d particle %d: x=%v vx %v -> %v", frame, i, p.X, b.VX, p.VX)
			}
			outY := p.Y < 0 || p.Y > h
			if outY != (p.VY == -b.VY && b.VY != 0) && b.VY != 0 {
				t.Fatalf("frame %d particle %d: y=%v vy %v -> %v", frame, i, p.Y, b.VY, p.VY)
			}
			// one frame of overshoot at most
			if p.X < -1 || p.X > w+1 || p.Y < -1 || p.Y > h+1 {
				t.Fatalf("frame %d particle %d escaped to (%v, %v)", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestParticleUpdateCases(t *testing.T) {
	tests := []struct {
		name   string
		in     Particle
		wantVX float64
		wantVY float64
	}{
		{"inside", Particle{X: 50, Y: 50, VX: 0.3, VY: -0.2}, 0.3, -0.2},
		{"crosses left", Particle{X: 0.1, Y: 50, VX: -0.3, VY: 0.1}, 0.3, 0.1},
		{"crosses right", Particle{X: 99.9, Y: 50, VX: 0.3, VY: 0.1}, -0.3, 0.1},
		{"crosses bottom", Particle{X: 50, Y: 99.8, VX: 0.1, VY: 0.4}, 0.1, -0.4},
		{"corner", Particle{X: 0.1, Y: 0.1, VX: -0.2, VY: -0.2}, 0.2, 0.2},
		{"on edge stays", Particle{X: 99.5, Y: 50, VX: 0.5, VY: 0}, 0.5, 0},
	}
	for _, tt := range tests {
		p := tt.in
		p.Update(100, 100)
		if p.VX != tt.wantVX || p.VY != tt.wantVY {
			t.Errorf("%s: velocity = (%v, %v), want (%v, %v)", tt.name, p.VX, p.VY, tt.wantVX, tt.wantVY)
		}
	}
}

func TestConnectTwoParticles(t *testing.T) {
	tests := []struct {
		name  string
		x1    float64
		lines int
	}{
		{"near", 100, 1},
		{"far", 200, 0},
		{"exactly at distance", 120, 0},
		{"just under", 119.99, 1},
	}
	for _, tt := range tests {
		a := New(0, 0, testRand())
		a.SetParticles([]Particle{{X: 0, Y: 0, Radius: 1}, {X: tt.x1, Y: 0, Radius: 1}})
		r := &recorder{}
		if got := a.Connect(r); got != tt.lines {
			t.Errorf("%s: Connect() = %d, want %d", tt.name, got, tt.lines)
		}
		if len(r.lines) != tt.lines {
			t.Errorf("%s: drew %d lines, want %d", tt.name, len(r.lines), tt.lines)
		}
		if tt.lines == 1 && r.lines[0] != (line{0, 0, tt.x1, 0}) {
			t.Errorf("%s: line = %+v", tt.name, r.lines[0])
		}
	}
}

func TestConnectDrawsEachNearPairOnce(t *testing.T) {
	a := New(600, 400, testRand())
	r := &recorder{}
	a.Connect(r)

	ps := a.Particles()
	want := 0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			if math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y) < DefaultLinkDistance {
				want++
			}
		}
	}
	if len(r.lines) != want {
		t.Fatalf("drew %d lines, want %d", len(r.lines), want)
	}

	seen := map[line]bool{}
	for _, l := range r.lines {
		if l.x0 == l.x1 && l.y0 == l.y1 {
			t.Errorf("zero-length line at (%v, %v)", l.x0, l.y0)
		}
		if math.Hypot(l.x0-l.x1, l.y0-l.y1) >= DefaultLinkDistance {
			t.Errorf("line %+v is too long", l)
		}
		rev := line{l.x1, l.y1, l.x0, l.y0}
		if seen[l] || seen[rev] {
			t.Errorf("pair %+v drawn twice", l)
		}
		seen[l] = true
	}
}

func TestFrameOrder(t *testing.T) {
	a := New(0, 0, testRand())
	a.Init(400, 400)
	a.SetParticles([]Particle{
		{X: 10, Y: 10, Radius: 1, VX: 0.1},
		{X: 20, Y: 10, Radius: 1, VX: 0.1},
		{X: 390, Y: 390, Radius: 1},
	})
	r := &recorder{}
	a.Frame(r)

	want := []string{"clear", "circle", "circle", "circle", "line"}
	if len(r.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", r.calls, want)
	}
	for i := range want {
		if r.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", r.calls, want)
		}
	}
	if got := a.Particles()[0].X; got != 10.1 {
		t.Errorf("particle 0 x = %v, want 10.1", got)
	}
}

func TestResize(t *testing.T) {
	a := New(1500, 1000, testRand())
	a.Resize(3000, 1000)
	if got := len(a.Particles()); got != 200 {
		t.Errorf("after reseeding resize: %d particles, want 200", got)
	}

	a.ReseedOnResize = false
	a.Resize(150, 100)
	if got := len(a.Particles()); got != 200 {
		t.Errorf("after bounds-only resize: %d particles, want 200", got)
	}
	if w, h := a.Size(); w != 150 || h != 100 {
		t.Errorf("Size() = %vx%v, want 150x100", w, h)
	}
	for i, p := range a.Particles() {
		if p.X < 0 || p.X > 150 || p.Y < 0 || p.Y > 100 {
			t.Fatalf("particle %d at (%v, %v) outside 150x100 after resize", i, p.X, p.Y)
		}
	}
}

func TestResizeShrinkKeepsParticlesInBounds(t *testing.T) {
	a := New(1000, 1000, testRand())
	a.ReseedOnResize = false
	a.SetParticles([]Particle{
		{X: 900, Y: 500, Radius: 1, VX: 0.4, VY: 0.1},
		{X: 300, Y: 950, Radius: 1, VX: -0.3, VY: 0.5},
		{X: 100, Y: 100, Radius: 1, VX: 0.2, VY: -0.2},
	})
	before := a.Particles()[2]

	a.Resize(500, 600)
	if a.Particles()[2] != before {
		t.Error("resize moved a particle that was already inside")
	}
	for frame := 0; frame < 10000; frame++ {
		a.Update()
		for i, p := range a.Particles() {
			if p.X < -math.Abs(p.VX) || p.X > 500+math.Abs(p.VX) ||
				p.Y < -math.Abs(p.VY) || p.Y > 600+math.Abs(p.VY) {
				t.Fatalf("frame %d: particle %d at (%v, %v) beyond one step of 500x600", frame, i, p.X, p.Y)
			}
		}
	}
}

func TestLoopStopsAfterMaxFrames(t *testing.T) {
	l := NewLoop(New(300, 300, testRand()), 3)
	r := &recorder{}
	for i := 0; i < 3; i++ {
		if err := l.Tick(r); err != nil {
			t.Fatalf("Tick %d error = %v", i, err)
		}
	}
	if err := l.Tick(r); !errors.Is(err, ErrStopped) {
		t.Fatalf("Tick after MaxFrames error = %v, want ErrStopped", err)
	}
	if l.Frames() != 3 || r.clears != 3 {
		t.Errorf("frames = %d, clears = %d, want 3 and 3", l.Frames(), r.clears)
	}
}

func TestLoopRun(t *testing.T) {
	l := NewLoop(New(300, 300, testRand()), 5)
	if err := l.Run(context.Background(), &recorder{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", l.Frames())
	}

	forever := NewLoop(New(300, 300, testRand()), 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := forever.Run(ctx, &recorder{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Run(cancelled) error = %v, want context.Canceled", err)
	}

	stopped := NewLoop(New(300, 300, testRand()), 0)
	stopped.Stop()
	if err := stopped.Step(); !errors.Is(err, ErrStopped) {
		t.Errorf("Step() after Stop error = %v, want ErrStopped", err)
	}
}

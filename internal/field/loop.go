package field

import (
	"context"
	"errors"
)

// ErrStopped is returned by Loop.Tick once the stop condition is met.
var ErrStopped = errors.New("field: loop stopped")

// Loop drives an Animator one frame per tick until it is told to stop.
// Ticks are supplied by the host (a display refresh, a test, a headless
// renderer); Loop never schedules anything itself.
type Loop struct {
	Animator *Animator
	// MaxFrames stops the loop after that many frames. Zero runs forever.
	MaxFrames int

	frames  int
	stopped bool
}

// NewLoop returns a loop over a that stops after maxFrames (0 = never).
func NewLoop(a *Animator, maxFrames int) *Loop {
	return &Loop{Animator: a, MaxFrames: maxFrames}
}

// Frames returns how many frames have run.
func (l *Loop) Frames() int { return l.frames }

// Stop makes the next Tick return ErrStopped.
func (l *Loop) Stop() { l.stopped = true }

// Done reports whether the stop condition has been reached.
func (l *Loop) Done() bool {
	return l.stopped || (l.MaxFrames > 0 && l.frames >= l.MaxFrames)
}

// Tick runs one full frame on s.
func (l *Loop) Tick(s Surface) error {
	if l.Done() {
		return ErrStopped
	}
	l.Animator.Frame(s)
	l.frames++
	return nil
}

// Step advances the simulation by one frame without painting. Hosts that
// split update and draw (ebiten) call Step from Update and paint separately.
func (l *Loop) Step() error {
	if l.Done() {
		return ErrStopped
	}
	l.Animator.Update()
	l.frames++
	return nil
}

// Run ticks until the loop is done or ctx is cancelled. A loop with no
// MaxFrames only returns on cancellation.
func (l *Loop) Run(ctx context.Context, s Surface) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Tick(s); err != nil {
			if errors.Is(err, ErrStopped) {
				return nil
			}
			return err
		}
	}
}

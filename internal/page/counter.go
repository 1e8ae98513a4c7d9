package page

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// CounterInterval is the time between two counter increments.
	CounterInterval = 30 * time.Millisecond
	// CounterSteps is how many increments a counter takes to reach its target.
	CounterSteps = 60
)

// Counter animates a number from 0 up to the value it was created with.
type Counter struct {
	Label string

	text    string
	target  int
	valid   bool
	value   int
	step    int
	started bool
	done    bool
	elapsed time.Duration
}

// NewCounter parses the target out of text ("120+" counts up to 120).
func NewCounter(label, text string) *Counter {
	target, ok := ParseTarget(text)
	return &Counter{Label: label, text: text, target: target, valid: ok}
}

// ParseTarget reads the leading integer of s, ignoring leading spaces and
// anything after the digits.
func ParseTarget(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Target returns the parsed target and whether the text held a number.
func (c *Counter) Target() (int, bool) { return c.target, c.valid }

// Text is what the counter currently displays.
func (c *Counter) Text() string { return c.text }

// Started reports whether Start has been called.
func (c *Counter) Started() bool { return c.started }

// Done reports whether the counter reached its target.
func (c *Counter) Done() bool { return c.done }

// Start begins the animation. It returns false when the counter already
// ran; a counter never runs twice.
func (c *Counter) Start() bool {
	if c.started {
		return false
	}
	c.started = true
	switch {
	case !c.valid:
		c.done = true
	case c.target <= 0:
		c.text = strconv.Itoa(c.target) + "+"
		c.done = true
	default:
		c.step = int(math.Ceil(float64(c.target) / CounterSteps))
	}
	return true
}

// Advance feeds elapsed wall time to a running counter, ticking once per
// CounterInterval.
func (c *Counter) Advance(elapsed time.Duration) {
	if !c.started || c.done {
		return
	}
	c.elapsed += elapsed
	for c.elapsed >= CounterInterval && !c.done {
		c.elapsed -= CounterInterval
		c.Tick()
	}
}

// Tick performs one increment.
func (c *Counter) Tick() {
	if !c.started || c.done {
		return
	}
	if c.value >= c.target-c.step {
		c.value = c.target
		c.done = true
	} else {
		c.value += c.step
	}
	c.text = strconv.Itoa(c.value) + "+"
}

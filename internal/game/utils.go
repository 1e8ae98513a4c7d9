package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// shiftHue rotates the hue of c by phase turns, keeping its alpha.
func shiftHue(c color.NRGBA, phase float64) color.NRGBA {
	base, ok := colorful.MakeColor(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	if !ok {
		return c
	}
	h, s, v := base.Hsv()
	h = math.Mod(h+phase*360, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsv(h, s, v).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

// pulse scales the alpha of c by 1+gain*level, saturating at opaque.
func pulse(c color.NRGBA, gain, level float64) color.NRGBA {
	a := float64(c.A) * (1 + gain*clamp01(level))
	c.A = uint8(math.Min(math.Round(a), 255))
	return c
}

// withAlpha returns c with its alpha multiplied by f in [0, 1].
func withAlpha(c color.NRGBA, f float64) color.NRGBA {
	c.A = uint8(math.Round(float64(c.A) * clamp01(f)))
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

package config

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800

	VisualRingSize  = 8192
	SmoothingFactor = 0.6

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 28
	ButtonMargin = 16

	// Field parameters
	Density      = 15000
	LinkDistance = 120

	HeaderHeight    = 64
	ColorShiftSpeed = 0.002
)

// Theme holds the colors used to paint the backdrop and the page.
type Theme struct {
	Background string `toml:"background"`
	Particle   string `toml:"particle"`
	Link       string `toml:"link"`
	Accent     string `toml:"accent"`
	Text       string `toml:"text"`
}

// Section is one page section as written in the config file.
type Section struct {
	ID     string  `toml:"id"`
	Title  string  `toml:"title"`
	Body   string  `toml:"body"`
	Height float64 `toml:"height"`
	Kind   string  `toml:"kind"` // "", "stats" or "projects"
}

// Stat is a counter shown in the stats section.
type Stat struct {
	Label string `toml:"label"`
	Value string `toml:"value"`
}

// Project is a tiltable card shown in the projects section.
type Project struct {
	Title string `toml:"title"`
	Blurb string `toml:"blurb"`
}

// Config holds every tunable of a run.
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
	TPS    int `toml:"tps"`

	Seed           uint64  `toml:"seed"` // 0 picks a random seed
	ReseedOnResize bool    `toml:"reseed_on_resize"`
	Density        float64 `toml:"density"`       // surface units² per particle
	LinkDistance   float64 `toml:"link_distance"` // surface units

	Pulse float64 `toml:"pulse"` // link alpha gain from the soundtrack level
	Track string  `toml:"track"`

	Theme    Theme     `toml:"theme"`
	Sections []Section `toml:"section"`
	Stats    []Stat    `toml:"stat"`
	Projects []Project `toml:"project"`
}

// Default returns the parameters used when no config file is given.
func Default() *Config {
	return &Config{
		Width:          WindowWidth,
		Height:         WindowHeight,
		TPS:            60,
		ReseedOnResize: true,
		Density:        Density,
		LinkDistance:   LinkDistance,
		Pulse:          1.5,
		Theme: Theme{
			Background: "#0b0f1aff",
			Particle:   "#00f2ffb3",
			Link:       "#00f2ff14",
			Accent:     "#00f2ffff",
			Text:       "#e6edf3ff",
		},
		Sections: []Section{
			{ID: "home", Title: "Hello, I build things", Body: "Scroll down or use the links above.", Height: 720},
			{ID: "about", Title: "About", Body: "Systems, tooling and the occasional pretty background.", Height: 560},
			{ID: "stats", Title: "Numbers", Height: 420, Kind: "stats"},
			{ID: "projects", Title: "Projects", Height: 640, Kind: "projects"},
			{ID: "contact", Title: "Contact", Body: "hello@example.com", Height: 480},
		},
		Stats: []Stat{
			{Label: "Projects", Value: "42+"},
			{Label: "Commits", Value: "1200+"},
			{Label: "Coffees", Value: "999+"},
		},
		Projects: []Project{
			{Title: "Particle Field", Blurb: "Canvas backdrop"},
			{Title: "Scroll Kit", Blurb: "Reveal and counters"},
			{Title: "Tilt Cards", Blurb: "Pointer driven 3D"},
		},
	}
}

// Load parses the TOML config file at path over the defaults.
// Keys not understood by Config are reported as an error.
func Load(path string) (*Config, error) {
	conf := Default()
	def := *conf
	// page content replaces the defaults as a whole, never element by element
	conf.Sections, conf.Stats, conf.Projects = nil, nil, nil

	md, err := toml.DecodeFile(path, conf)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if !md.IsDefined("section") {
		conf.Sections = def.Sections
	}
	if !md.IsDefined("stat") {
		conf.Stats = def.Stats
	}
	if !md.IsDefined("project") {
		conf.Projects = def.Projects
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return conf, nil
}

// Validate reports the first parameter that cannot drive a run.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height)
	case c.TPS <= 0:
		return errors.New("tps must be positive")
	case c.Density <= 0:
		return errors.New("density must be positive")
	case c.LinkDistance < 0:
		return errors.New("link_distance must not be negative")
	case c.Pulse < 0:
		return errors.New("pulse must not be negative")
	}
	seen := map[string]bool{}
	for _, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %q has no id", s.Title)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
		if s.Height <= 0 {
			return fmt.Errorf("section %q: height must be positive", s.ID)
		}
	}
	for _, hex := range []string{c.Theme.Background, c.Theme.Particle, c.Theme.Link, c.Theme.Accent, c.Theme.Text} {
		if _, err := ParseColor(hex); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor reads "#rrggbb" or "#rrggbbaa" into a non-premultiplied color.
func ParseColor(hex string) (color.NRGBA, error) {
	alpha := uint8(0xff)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("color %q: bad alpha: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:7]
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// MustColor is ParseColor for values already checked by Validate.
func MustColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

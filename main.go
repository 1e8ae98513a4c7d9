// Command particle-backdrop shows an animated particle field behind a small
// scrolling single-page layout.
//
// Usage:
//
//	particle-backdrop [-config file.toml] [-track song.mp3] [-seed n] [-frames n]
//	particle-backdrop -snapshot out.png [-size 1500x1000] [-frames n]
//
// With -snapshot nothing is shown: the field is stepped headlessly for
// -frames frames and the last one is written as PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-backdrop/internal/config"
	"github.com/iburimskiy/particle-backdrop/internal/game"
	"github.com/iburimskiy/particle-backdrop/internal/snapshot"
	"github.com/iburimskiy/particle-backdrop/internal/soundtrack"
)

const title = "Particle Backdrop - Wheel: scroll, Space: play/pause, Esc/Q: quit"

func main() {
	var (
		confPath = flag.String("config", "", "TOML config `file`")
		track    = flag.String("track", "", "audio `file` to loop (.wav, .mp3, .flac)")
		seed     = flag.Uint64("seed", 0, "random seed, 0 for a time based one")
		frames   = flag.Int("frames", 0, "stop after n frames, 0 to run until closed")
		shot     = flag.String("snapshot", "", "render headlessly and write a PNG `file`")
		size     = flag.String("size", "", "surface size `WxH` overriding the config")
	)
	flag.Parse()
	log.SetFlags(log.Ltime)

	headless := *shot != ""
	cfg, err := loadConfig(*confPath, *size)
	if err != nil {
		fatal(err, headless)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *track != "" {
		cfg.Track = *track
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	if headless {
		n := *frames
		if n == 0 {
			n = 1
		}
		if err := renderSnapshot(cfg, rng, n, *shot); err != nil {
			fatal(err, true)
		}
		return
	}

	player := soundtrack.New()
	defer player.Close()
	g := game.New(cfg, rng, player, *frames)
	if cfg.Track != "" {
		if err := player.Play(cfg.Track); err != nil {
			log.Printf("soundtrack: %v", err)
		}
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		fatal(err, false)
	}
}

func loadConfig(path, size string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
		log.Printf("config: loaded %s", path)
	}
	if size != "" {
		var w, h int
		if _, err := fmt.Sscanf(size, "%dx%d", &w, &h); err != nil {
			return nil, fmt.Errorf("size %q: want WxH: %w", size, err)
		}
		cfg.Width, cfg.Height = w, h
	}
	return cfg, cfg.Validate()
}

func renderSnapshot(cfg *config.Config, rng *rand.Rand, frames int, path string) error {
	anim := game.NewAnimator(cfg, float64(cfg.Width), float64(cfg.Height), rng)
	canvas := snapshot.New(cfg.Width, cfg.Height, config.MustColor(cfg.Theme.Background))
	if err := snapshot.Render(context.Background(), anim, frames, canvas); err != nil {
		return err
	}
	if err := canvas.WritePNG(path); err != nil {
		return err
	}
	log.Printf("snapshot: %d particles, %d frames, wrote %s", len(anim.Particles()), frames, path)
	return nil
}

// fatal reports err and exits. Windowed runs also get a dialog since they
// are often started without a terminal.
func fatal(err error, headless bool) {
	if !headless {
		_ = zenity.Error(err.Error(), zenity.Title("Particle Backdrop"), zenity.ErrorIcon)
	}
	log.Fatalf("Error: %v", err)
}

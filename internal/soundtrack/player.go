// Package soundtrack plays an optional backing track and reports how loud it
// currently is.
package soundtrack

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-backdrop/internal/config"
)

// levelWindow is how many recent samples Level averages over.
const levelWindow = 2048

// ErrUnsupported is returned for files whose extension no decoder handles.
var ErrUnsupported = errors.New("unsupported file type")

// Player owns the speaker and the currently looping track.
type Player struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *Tap
	smoothed float64
	initDone bool
	paused   bool
	name     string
}

// New returns an idle player.
func New() *Player {
	return &Player{}
}

// Decode opens path with the decoder matching its extension.
func Decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// OpenDialog asks for a track with a native file dialog and plays it.
// Cancelling the dialog is not an error.
func (p *Player) OpenDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	return p.Play(filename)
}

// Play decodes path and loops it, replacing whatever was playing.
func (p *Player) Play(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	streamer, format, err := Decode(f, path)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	// streamer -> loop -> tap -> ctrl
	t := NewTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t}

	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !p.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		p.initDone = true
	case p.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	p.release()

	p.file = f
	p.streamer = streamer
	p.format = format
	p.ctrl = ctrl
	p.tap = t
	p.paused = false
	p.smoothed = 0
	p.name = filepath.Base(path)

	speaker.Play(ctrl)
	log.Printf("soundtrack: playing %s (%d Hz)", p.name, format.SampleRate)
	return nil
}

// Loaded reports whether a track is playing or paused.
func (p *Player) Loaded() bool { return p.ctrl != nil }

// Name is the file name of the current track.
func (p *Player) Name() string { return p.name }

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.paused }

// TogglePause pauses or resumes the current track.
func (p *Player) TogglePause() {
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.paused = !p.paused
	p.ctrl.Paused = p.paused
	speaker.Unlock()
}

// Level returns the smoothed loudness of the track in [0, 1]; 0 when
// nothing plays.
func (p *Player) Level() float64 {
	if p.tap == nil || p.paused {
		p.smoothed *= config.SmoothingFactor
		return p.smoothed
	}
	level := p.tap.Level(levelWindow)
	p.smoothed = config.SmoothingFactor*p.smoothed + (1-config.SmoothingFactor)*level
	return p.smoothed
}

// Position returns how far into the loop the track is.
func (p *Player) Position() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

// Close stops playback and releases the track.
func (p *Player) Close() {
	if p.initDone {
		speaker.Clear()
	}
	p.release()
	p.ctrl = nil
	p.tap = nil
}

func (p *Player) release() {
	if p.streamer != nil {
		_ = p.streamer.Close()
		p.streamer = nil
	}
	if p.file != nil {
		_ = p.file.Close()
		p.file = nil
	}
}

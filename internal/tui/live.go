package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/san-kum/algoviz/internal/player"
	"github.com/san-kum/algoviz/internal/render"
)

const (
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// Live redraws frames in place while a store autoplays outside the full
// screen UI. OnStep matches player.AutoplayOptions.OnStep.
type Live struct {
	w         io.Writer
	opts      render.Options
	frameRate int
	lastFrame time.Time
	frames    int
}

// NewLive returns a renderer drawing at most frameRate frames per second.
// A non-positive frameRate draws every step.
func NewLive(w io.Writer, opts render.Options, frameRate int) *Live {
	return &Live{w: w, opts: opts, frameRate: frameRate}
}

func (l *Live) OnStep(s *player.Store) {
	if l.frameRate > 0 && !s.IsAtEnd() {
		if time.Since(l.lastFrame) < time.Second/time.Duration(l.frameRate) {
			return
		}
	}
	l.lastFrame = time.Now()
	l.Draw(s)
}

// Draw renders the current frame unconditionally.
func (l *Live) Draw(s *player.Store) {
	l.frames++
	fmt.Fprint(l.w, clearScreen)
	fmt.Fprint(l.w, render.Frame(s, l.opts))
	fmt.Fprintln(l.w, render.Status(s))
}

// Frames is the number of frames drawn so far.
func (l *Live) Frames() int { return l.frames }

func (l *Live) Start() { fmt.Fprint(l.w, hideCursor) }
func (l *Live) Stop()  { fmt.Fprint(l.w, showCursor) }

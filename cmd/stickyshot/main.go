// Command stickyshot plays a scripted pull on the sticky circle and writes
// every frame as a PNG.
package main

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/geom"
	"github.com/iburimskiy/sticky-circle/internal/raster"
	"github.com/iburimskiy/sticky-circle/internal/sticky"
)

const frameDuration = time.Second / 60

// script is a pull from one point to another followed by free running
// frames.
type script struct {
	from, to   geom.Point
	moveFrames int
	frames     int
	release    bool
}

// step feeds the pointer events of frame i to v.
func (s script) step(v *sticky.View, i int) {
	switch {
	case i == 0:
		v.DispatchPointerEvent(sticky.PointerDown, s.from.X, s.from.Y)
	case i <= s.moveFrames:
		t := float64(i) / float64(s.moveFrames)
		p := s.from.Add(s.to.Sub(s.from).Mul(t))
		v.DispatchPointerEvent(sticky.PointerMove, p.X, p.Y)
	case i == s.moveFrames+1 && s.release:
		v.DispatchPointerEvent(sticky.PointerUp, s.to.X, s.to.Y)
	}
}

// run renders every frame of s into dir and returns the number of reloads.
func run(cfg *config.Config, s script, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, errors.Wrap(err, "output dir")
	}
	v := sticky.New(cfg, sticky.WithLogger(log.With().Str("module", "sticky").Logger()))
	v.OnSizeChanged(cfg.WindowWidth, cfg.WindowHeight)
	reloads := 0
	v.SetOnReloadListener(func() { reloads++ })

	r := raster.New(cfg, cfg.WindowWidth, cfg.WindowHeight)
	for i := 0; i < s.frames; i++ {
		s.step(v, i)
		path := filepath.Join(dir, "frame_"+pad(i)+".png")
		if err := r.RenderFile(v.Geometry(), path); err != nil {
			return reloads, err
		}
		v.Advance(frameDuration)
	}
	return reloads, nil
}

func pad(i int) string {
	s := strconv.Itoa(i)
	if len(s) < 4 {
		s = strings.Repeat("0", 4-len(s)) + s
	}
	return s
}

func parsePoint(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, errors.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return geom.Point{}, errors.Wrapf(err, "point %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return geom.Point{}, errors.Wrapf(err, "point %q", s)
	}
	return geom.Pt(x, y), nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	fs := flag.NewFlagSet("stickyshot", flag.ExitOnError)
	out := fs.String("out", "frames", "output directory")
	frames := fs.Int("frames", 120, "number of frames to write")
	from := fs.String("from", "240,100", "pointer down position")
	to := fs.String("to", "240,500", "pointer position at the end of the drag")
	moveFrames := fs.Int("move-frames", 20, "frames spent dragging")
	release := fs.Bool("release", true, "release the pointer after the drag")

	cfg, _, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}
	s := script{frames: *frames, moveFrames: *moveFrames, release: *release}
	if s.from, err = parsePoint(*from); err != nil {
		log.Fatal().Err(err).Msg("Bad -from")
	}
	if s.to, err = parsePoint(*to); err != nil {
		log.Fatal().Err(err).Msg("Bad -to")
	}
	if s.moveFrames < 1 {
		s.moveFrames = 1
	}

	reloads, err := run(cfg, s, *out)
	if err != nil {
		log.Fatal().Err(err).Msg("Render failed")
	}
	log.Info().Int("frames", s.frames).Int("reloads", reloads).Str("out", *out).Msg("Done")
}

// Package game hosts the sticky circle in an ebiten window.
package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/render"
	"github.com/iburimskiy/sticky-circle/internal/sticky"
)

// Notifier is told about every triggered reload. It must not block.
type Notifier interface {
	Notify()
}

// Game implements ebiten.Game around a sticky.View.
type Game struct {
	cfg     *config.Config
	pending *config.Config
	log     zerolog.Logger

	view       *sticky.View
	painter    *render.Painter
	background color.RGBA

	width, height int

	// input edge detection
	pointer  pointerTracker
	events   []pointerEvent
	prevKey  map[ebiten.Key]bool
	captured *button

	buttons   []*button
	pickSound func() error

	notifier   Notifier
	updates    <-chan *config.Config
	configErrs <-chan error

	reloads int
	lastErr error
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger of the game and its view.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Game) { g.log = l }
}

// WithNotifier forwards reloads to n.
func WithNotifier(n Notifier) Option {
	return func(g *Game) { g.notifier = n }
}

// WithConfigUpdates applies configs from updates once the view is idle and
// reports errors from errs on the status line.
func WithConfigUpdates(updates <-chan *config.Config, errs <-chan error) Option {
	return func(g *Game) {
		g.updates = updates
		g.configErrs = errs
	}
}

// WithSoundPicker adds a Sound button and the O key, both calling pick.
func WithSoundPicker(pick func() error) Option {
	return func(g *Game) { g.pickSound = pick }
}

// New returns a game showing a view configured by cfg.
func New(cfg *config.Config, opts ...Option) *Game {
	g := &Game{
		cfg:     cfg,
		log:     zerolog.Nop(),
		prevKey: map[ebiten.Key]bool{},
	}
	for _, opt := range opts {
		opt(g)
	}
	g.view = sticky.New(cfg, sticky.WithLogger(g.log))
	g.view.SetOnReloadListener(g.onReload)
	g.painter = render.NewPainter(cfg)
	_, _, g.background = cfg.Colors()

	g.buttons = append(g.buttons, &button{label: "Stop", onClick: g.stop})
	if g.pickSound != nil {
		g.buttons = append(g.buttons, &button{label: "Sound", onClick: g.pickSound})
	}
	return g
}

func (g *Game) onReload() {
	g.reloads++
	if g.notifier != nil {
		g.notifier.Notify()
	}
}

func (g *Game) stop() error {
	g.view.StopReload()
	return nil
}

func (g *Game) justPressed(k ebiten.Key) bool {
	pressed := isKeyPressed(k)
	jp := pressed && !g.prevKey[k]
	g.prevKey[k] = pressed
	return jp
}

func (g *Game) Update() error {
	if g.justPressed(ebiten.KeyEscape) || g.justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.justPressed(ebiten.KeyS) {
		g.run(g.stop)
	}
	if g.pickSound != nil && g.justPressed(ebiten.KeyO) {
		g.run(g.pickSound)
	}

	g.drainConfig()

	mouseX, mouseY := cursorPosition()
	for _, b := range g.buttons {
		b.hovered = b.contains(float64(mouseX), float64(mouseY))
	}

	g.events = g.pointer.poll(g.events[:0])
	for _, ev := range g.events {
		g.handlePointer(ev)
	}

	g.view.Advance(time.Second / time.Duration(ticksPerSecond()))
	return nil
}

// handlePointer routes a gesture that starts on a button to that button and
// everything else to the view.
func (g *Game) handlePointer(ev pointerEvent) {
	if ev.kind == sticky.PointerDown {
		for _, b := range g.buttons {
			if b.contains(ev.x, ev.y) {
				b.pressed = true
				g.captured = b
				return
			}
		}
	}
	if b := g.captured; b != nil {
		switch ev.kind {
		case sticky.PointerUp:
			if b.contains(ev.x, ev.y) {
				g.run(b.onClick)
			}
			fallthrough
		case sticky.PointerCancel:
			b.pressed = false
			g.captured = nil
		}
		return
	}
	g.view.DispatchPointerEvent(ev.kind, ev.x, ev.y)
}

func (g *Game) run(fn func() error) {
	if err := fn(); err != nil {
		g.log.Error().Err(err).Msg("action failed")
		g.lastErr = err
	}
}

// drainConfig takes the newest config off the watcher and applies it as
// soon as the view is idle.
func (g *Game) drainConfig() {
	for {
		select {
		case c, ok := <-g.updates:
			if !ok {
				g.updates = nil
				continue
			}
			g.pending = c
			g.lastErr = nil
			continue
		case err, ok := <-g.configErrs:
			if !ok {
				g.configErrs = nil
				continue
			}
			g.lastErr = err
			continue
		default:
		}
		break
	}
	if g.pending == nil || !g.view.Reconfigure(g.pending) {
		return
	}
	g.cfg, g.pending = g.pending, nil
	g.painter.SetColors(g.cfg)
	_, _, g.background = g.cfg.Colors()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.background)
	g.painter.Draw(screen, g.view.Geometry())
	for _, b := range g.buttons {
		b.draw(screen)
	}
	ebitenutil.DebugPrintAt(screen, g.status(), 12, g.height-statusHeight+8)
}

// status is the help line under the buttons.
func (g *Game) status() string {
	var s string
	switch st := g.view.State(); {
	case st == sticky.Loading && g.view.Animating():
		s = "Loading " + formatDuration(g.view.LoadingElapsed()) + " - S to stop"
	case st == sticky.Loading:
		s = "Stopped - pull again to reload"
	case st == sticky.Idle:
		s = "Pull the circle down to reload"
	default:
		s = st.String()
	}
	s += fmt.Sprintf(" | reloads: %d", g.reloads)
	if g.pending != nil {
		s += " | config pending"
	}
	if g.lastErr != nil {
		s += " | Error: " + g.lastErr.Error()
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.view.OnSizeChanged(g.width, g.height)
		layoutButtons(g.buttons, g.height)
	}
	return g.width, g.height
}

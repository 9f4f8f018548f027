// Package sticky is the gesture machine behind the sticky circle
// pull-to-refresh control.
//
// A View owns the drag state, the anchor and drag circles and the two
// animations. It never blocks and never starts goroutines: the host feeds it
// pointer events and frame ticks on one thread and pulls a Geometry snapshot
// to paint.
package sticky

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/iburimskiy/sticky-circle/internal/anim"
	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/geom"
)

// State is the phase of the gesture machine.
type State int

const (
	Idle State = iota
	Dragging
	AnimatingReturn
	Loading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case AnimatingReturn:
		return "returning"
	case Loading:
		return "loading"
	default:
		return "unknown"
	}
}

// PointerKind is the kind of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// View is the sticky circle core. The zero value is not usable; call New.
type View struct {
	cfg *config.Config
	log zerolog.Logger

	state         State
	reloadPending bool // the running return ends in Loading

	drag      geom.Drag
	pair      geom.Pair
	returnDir geom.Point

	width, height int

	sticky  *anim.Tween
	loading *anim.Loop

	onReload func()
}

// Option configures a View.
type Option func(*View)

// WithLogger sets the logger for state transitions. The default discards.
func WithLogger(l zerolog.Logger) Option {
	return func(v *View) { v.log = l }
}

// New returns an idle View on a copy of cfg, which must be valid.
func New(cfg *config.Config, opts ...Option) *View {
	v := &View{
		cfg:     cfg.Clone(),
		log:     zerolog.Nop(),
		sticky:  anim.NewTween(cfg.StickyDuration.Duration, anim.AccelerateDecelerate),
		loading: anim.NewLoop(cfg.LoadingDuration.Duration, anim.AccelerateDecelerate),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.resetCircles()
	return v
}

func (v *View) resetCircles() {
	c := geom.Circle{Radius: v.cfg.Radius}
	v.pair = geom.Pair{Start: c, End: c}
}

// OnSizeChanged moves the anchor to the top center of a width x height area.
func (v *View) OnSizeChanged(width, height int) {
	v.width, v.height = width, height
	anchor := geom.Pt(float64(width)/2, v.cfg.TopOffset+v.cfg.Radius)
	v.pair.Start.Center = anchor
	v.pair.End.Center = anchor
	v.updateCircles()
	v.log.Debug().Int("width", width).Int("height", height).Msg("size changed")
}

// SetOnReloadListener registers the callback fired once per completed
// trigger, right after the return animation ends. nil removes it.
func (v *View) SetOnReloadListener(fn func()) {
	v.onReload = fn
}

// IsLoading reports whether the current gesture triggered a reload. It
// stays true after StopReload until the next accepted pointer down.
func (v *View) IsLoading() bool {
	return v.state == Loading || (v.state == AnimatingReturn && v.reloadPending)
}

// State returns the current phase.
func (v *View) State() State { return v.state }

// Drag returns the current down and move points.
func (v *View) Drag() geom.Drag { return v.drag }

// Animating reports whether either animation is running.
func (v *View) Animating() bool {
	return v.sticky.IsRunning() || v.loading.IsRunning()
}

// LoadingElapsed returns how long the loading animation has been running.
func (v *View) LoadingElapsed() time.Duration {
	if !v.loading.IsRunning() {
		return 0
	}
	return v.loading.Elapsed()
}

// StopReload cancels the loading animation if it runs. The gesture stays
// in Loading until the next pointer down re-arms it.
func (v *View) StopReload() {
	if !v.loading.IsRunning() {
		return
	}
	v.loading.Cancel()
	v.log.Info().Dur("elapsed", v.loading.Elapsed()).Msg("reload stopped")
}

// DispatchPointerEvent feeds one pointer event to the machine. Every event
// is consumed, so it always reports true.
func (v *View) DispatchPointerEvent(kind PointerKind, x, y float64) bool {
	p := geom.Pt(x, y)
	switch kind {
	case PointerDown:
		if v.Animating() {
			v.log.Debug().Stringer("state", v.state).Msg("down ignored while animating")
			return true
		}
		v.drag = geom.Drag{Down: p, Move: p}
		v.reloadPending = false
		v.setState(Dragging)

	case PointerMove:
		if v.state != Dragging {
			return true
		}
		v.drag.Move = p
		v.updateCircles()
		distance := v.drag.Distance()
		if v.cfg.InTriggerZone(distance) {
			v.reloadPending = true
			v.startReturn(distance)
		}

	case PointerUp, PointerCancel:
		if v.state != Dragging {
			return true
		}
		v.drag.Move = p
		v.updateCircles()
		distance := v.drag.Distance()
		if v.cfg.InTriggerZone(distance) {
			v.reloadPending = true
		}
		v.startReturn(distance)
	}
	return true
}

// startReturn retracts the move point from distance back to the down point.
func (v *View) startReturn(distance float64) {
	if distance == 0 {
		v.reloadPending = false
		v.setState(Idle)
		return
	}
	v.returnDir = v.drag.Offset().Mul(1 / distance)
	v.sticky.Start(distance, 0)
	v.setState(AnimatingReturn)
	v.log.Debug().Float64("distance", distance).Bool("reload", v.reloadPending).Msg("sticky return")
}

// Advance moves the animations forward by dt and reports whether anything
// visible changed.
func (v *View) Advance(dt time.Duration) bool {
	changed := false
	started := false

	if v.sticky.IsRunning() {
		d, done := v.sticky.Advance(dt)
		if done {
			v.drag.Move = v.drag.Down
		} else {
			v.drag.Move = v.drag.Down.Add(v.returnDir.Mul(d))
		}
		v.updateCircles()
		changed = true
		if done {
			started = v.finishReturn()
		}
	}

	if v.loading.IsRunning() && !started {
		v.loading.Advance(dt)
		changed = true
	}
	return changed
}

// finishReturn ends the return animation and reports whether loading started.
func (v *View) finishReturn() bool {
	if !v.reloadPending {
		v.setState(Idle)
		return false
	}
	v.reloadPending = false
	v.setState(Loading)
	v.loading.Start()
	v.log.Info().Msg("reload triggered")
	if v.onReload != nil {
		v.onReload()
	}
	return true
}

// Reconfigure swaps in a copy of cfg when no gesture or animation is active
// and reports whether it did.
func (v *View) Reconfigure(cfg *config.Config) bool {
	if v.Animating() || v.state == Dragging || v.state == AnimatingReturn {
		return false
	}
	v.cfg = cfg.Clone()
	v.sticky.SetDuration(cfg.StickyDuration.Duration)
	v.loading.SetCycle(cfg.LoadingDuration.Duration)
	v.resetCircles()
	v.OnSizeChanged(v.width, v.height)
	v.log.Info().Msg("config applied")
	return true
}

func (v *View) updateCircles() {
	v.pair = geom.UpdateCircleSizes(v.pair, v.drag, v.cfg.MaxDistance, v.cfg.Radius)
}

func (v *View) setState(s State) {
	if s == v.state {
		return
	}
	v.log.Debug().Stringer("from", v.state).Stringer("to", s).Msg("state")
	v.state = s
}

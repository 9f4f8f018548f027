// Package anim provides the two frame-driven tweens of the sticky circle.
//
// Nothing here owns a clock. The host advances each animation with the time
// elapsed since the previous frame and reads the value back, so every update
// runs on the caller's thread.
package anim

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AccelerateDecelerate starts slow, speeds up through the middle and ends slow.
var AccelerateDecelerate ease.TweenFunc = ease.InOutSine

// seconds converts d to the float32 seconds gween works in.
func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// Tween animates a scalar once from one value to another.
type Tween struct {
	duration time.Duration
	easing   ease.TweenFunc

	tween   *gween.Tween
	to      float64
	elapsed time.Duration
	value   float64
	running bool
}

// NewTween returns a stopped tween. A nil easing means ease.Linear.
func NewTween(d time.Duration, easing ease.TweenFunc) *Tween {
	if easing == nil {
		easing = ease.Linear
	}
	return &Tween{duration: d, easing: easing}
}

// Start (re)starts the tween at from.
func (t *Tween) Start(from, to float64) {
	t.tween = gween.New(float32(from), float32(to), seconds(t.duration), t.easing)
	t.to = to
	t.elapsed = 0
	t.value = from
	t.running = true
}

// Advance moves the tween forward by dt. done is true only on the frame the
// tween reaches its end value; a stopped tween reports its last value.
func (t *Tween) Advance(dt time.Duration) (value float64, done bool) {
	if !t.running {
		return t.value, false
	}
	t.elapsed += dt
	// The end is decided on the Duration, float32 seconds drift over frames.
	if t.elapsed >= t.duration {
		t.value = t.to
		t.running = false
		return t.value, true
	}
	v, _ := t.tween.Set(seconds(t.elapsed))
	t.value = float64(v)
	return t.value, false
}

// Cancel stops the tween where it is. Cancelling a stopped tween does nothing.
func (t *Tween) Cancel() {
	t.running = false
}

// IsRunning reports whether the tween is between Start and its end.
func (t *Tween) IsRunning() bool { return t.running }

// Value returns the last computed value.
func (t *Tween) Value() float64 { return t.value }

// SetDuration changes the duration used by the next Start.
func (t *Tween) SetDuration(d time.Duration) { t.duration = d }

// Loop animates 0→1 over a cycle and repeats until cancelled.
type Loop struct {
	cycle  time.Duration
	easing ease.TweenFunc

	tween   *gween.Tween
	elapsed time.Duration
	cycles  int
	value   float64
	running bool
}

// NewLoop returns a stopped loop. A nil easing means ease.Linear.
func NewLoop(cycle time.Duration, easing ease.TweenFunc) *Loop {
	if easing == nil {
		easing = ease.Linear
	}
	return &Loop{cycle: cycle, easing: easing}
}

// Start restarts the loop at value 0.
func (l *Loop) Start() {
	l.tween = gween.New(0, 1, seconds(l.cycle), l.easing)
	l.elapsed = 0
	l.cycles = 0
	l.value = 0
	l.running = true
}

// Advance moves the loop forward by dt and returns the new value.
// A stopped loop keeps returning its last value.
func (l *Loop) Advance(dt time.Duration) float64 {
	if !l.running {
		return l.value
	}
	if l.cycle <= 0 {
		l.value = 1
		return l.value
	}
	l.elapsed += dt
	for l.elapsed >= l.cycle {
		l.elapsed -= l.cycle
		l.cycles++
		l.tween.Reset()
	}
	v, _ := l.tween.Set(seconds(l.elapsed))
	l.value = float64(v)
	return l.value
}

// Cancel stops the loop, keeping its last value. Cancelling a stopped loop
// does nothing.
func (l *Loop) Cancel() {
	l.running = false
}

// IsRunning reports whether the loop is animating.
func (l *Loop) IsRunning() bool { return l.running }

// Value returns the last computed value.
func (l *Loop) Value() float64 { return l.value }

// Elapsed returns the total running time since Start.
func (l *Loop) Elapsed() time.Duration {
	return time.Duration(l.cycles)*l.cycle + l.elapsed
}

// SetCycle changes the cycle duration used from the next Start.
func (l *Loop) SetCycle(d time.Duration) { l.cycle = d }

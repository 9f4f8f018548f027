package anim

import (
	"math"
	"testing"
	"time"
)

const frame = time.Second / 60

func TestAccelerateDecelerate(t *testing.T) {
	for i := 0; i <= 20; i++ {
		p := float64(i) / 20
		want := math.Cos((p+1)*math.Pi)/2 + 0.5
		got := float64(AccelerateDecelerate(float32(p), 0, 1, 1))
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("AccelerateDecelerate(%v) = %v, want %v", p, got, want)
		}
	}
	// slow start and slow end.
	if v := AccelerateDecelerate(0.1, 0, 1, 1); v >= 0.1 {
		t.Errorf("expected slow start, got %v", v)
	}
	if v := AccelerateDecelerate(0.9, 0, 1, 1); v <= 0.9 {
		t.Errorf("expected slow end, got %v", v)
	}
}

func TestTween_ScalesToRange(t *testing.T) {
	tw := NewTween(time.Second, AccelerateDecelerate)
	tw.Start(400, 0)
	if v, done := tw.Advance(500 * time.Millisecond); done || math.Abs(v-200) > 1e-3 {
		t.Errorf("halfway = %v done=%v, want 200", v, done)
	}
}

func TestTween_RunsToTarget(t *testing.T) {
	tw := NewTween(300*time.Millisecond, AccelerateDecelerate)
	tw.Start(400, 0)
	if !tw.IsRunning() || tw.Value() != 400 {
		t.Fatalf("after Start: running=%v value=%v", tw.IsRunning(), tw.Value())
	}

	prev := 400.0
	frames := 0
	for {
		v, done := tw.Advance(frame)
		frames++
		if v > prev {
			t.Fatalf("frame %d: value went up from %v to %v", frames, prev, v)
		}
		prev = v
		if done {
			break
		}
		if frames > 100 {
			t.Fatal("tween never finished")
		}
	}
	if prev != 0 {
		t.Errorf("final value = %v, want 0", prev)
	}
	if tw.IsRunning() {
		t.Error("tween still running after done")
	}
	if want := int((300*time.Millisecond + frame - 1) / frame); frames != want {
		t.Errorf("frames = %d, want %d", frames, want)
	}

	// done fires once.
	if v, done := tw.Advance(frame); done || v != 0 {
		t.Errorf("advance after end: value=%v done=%v", v, done)
	}
}

func TestTween_CancelIsIdempotent(t *testing.T) {
	tw := NewTween(time.Second, nil)
	tw.Cancel()
	if tw.IsRunning() {
		t.Fatal("cancel on stopped tween started it")
	}

	tw.Start(0, 10)
	tw.Advance(500 * time.Millisecond)
	tw.Cancel()
	tw.Cancel()
	if tw.IsRunning() {
		t.Fatal("tween still running after cancel")
	}
	if v, done := tw.Advance(time.Second); done || v != 5 {
		t.Errorf("cancelled tween advanced: value=%v done=%v", v, done)
	}
}

func TestTween_ZeroDuration(t *testing.T) {
	tw := NewTween(0, nil)
	tw.Start(3, 7)
	if v, done := tw.Advance(0); !done || v != 7 {
		t.Fatalf("value=%v done=%v, want 7 true", v, done)
	}
}

func TestLoop_RepeatsUntilCancelled(t *testing.T) {
	l := NewLoop(2*time.Second, nil)
	l.Start()

	if v := l.Advance(500 * time.Millisecond); math.Abs(v-0.25) > 1e-12 {
		t.Fatalf("value = %v, want 0.25", v)
	}
	if v := l.Advance(2 * time.Second); math.Abs(v-0.25) > 1e-12 {
		t.Fatalf("value after a full cycle = %v, want 0.25", v)
	}
	if !l.IsRunning() {
		t.Fatal("loop stopped on its own")
	}
	if l.Elapsed() != 2500*time.Millisecond {
		t.Errorf("elapsed = %v", l.Elapsed())
	}

	for i := 0; i < 1000; i++ {
		v := l.Advance(frame)
		if v < 0 || v > 1 {
			t.Fatalf("value %v out of [0,1]", v)
		}
	}
	if !l.IsRunning() {
		t.Fatal("loop stopped on its own")
	}

	l.Cancel()
	last := l.Value()
	if v := l.Advance(time.Second); v != last {
		t.Errorf("cancelled loop moved from %v to %v", last, v)
	}
	l.Cancel()
	if l.IsRunning() {
		t.Error("second cancel restarted the loop")
	}
}

func TestLoop_StartResets(t *testing.T) {
	l := NewLoop(time.Second, AccelerateDecelerate)
	l.Start()
	l.Advance(700 * time.Millisecond)
	l.Start()
	if l.Value() != 0 || l.Elapsed() != 0 {
		t.Fatalf("restart kept state: value=%v elapsed=%v", l.Value(), l.Elapsed())
	}
}

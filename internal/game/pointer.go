package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/sticky-circle/internal/sticky"
)

// Engine hooks. Tests replace them.
var (
	ticksPerSecond            = ebiten.TPS
	cursorPosition            = ebiten.CursorPosition
	isMouseButtonJustPressed  = inpututil.IsMouseButtonJustPressed
	isMouseButtonJustReleased = inpututil.IsMouseButtonJustReleased
	appendJustPressedTouchIDs = inpututil.AppendJustPressedTouchIDs
	appendTouchIDs            = ebiten.AppendTouchIDs
	isTouchJustReleased       = inpututil.IsTouchJustReleased
	touchPosition             = ebiten.TouchPosition
	isFocused                 = ebiten.IsFocused
	isKeyPressed              = ebiten.IsKeyPressed
)

type pointerEvent struct {
	kind sticky.PointerKind
	x, y float64
}

type pointerSource int

const (
	sourceNone pointerSource = iota
	sourceMouse
	sourceTouch
)

// pointerTracker turns mouse and touch state into a single stream of
// pointer events. Only one pointer is tracked at a time: while the left
// button or a touch is held, other touches and clicks are ignored.
type pointerTracker struct {
	source pointerSource
	touch  ebiten.TouchID
	x, y   int

	touches []ebiten.TouchID
}

// poll appends the events since the previous tick to events.
func (t *pointerTracker) poll(events []pointerEvent) []pointerEvent {
	if t.source == sourceNone {
		return t.pollDown(events)
	}

	if !isFocused() {
		t.source = sourceNone
		return append(events, t.event(sticky.PointerCancel))
	}

	x, y := t.x, t.y
	released := false
	switch t.source {
	case sourceMouse:
		x, y = cursorPosition()
		released = isMouseButtonJustReleased(ebiten.MouseButtonLeft)
	case sourceTouch:
		// a released touch no longer reports a position.
		if released = isTouchJustReleased(t.touch); !released {
			if !t.touchAlive() {
				t.source = sourceNone
				return append(events, t.event(sticky.PointerCancel))
			}
			x, y = touchPosition(t.touch)
		}
	}
	if x != t.x || y != t.y {
		t.x, t.y = x, y
		events = append(events, t.event(sticky.PointerMove))
	}
	if released {
		t.source = sourceNone
		events = append(events, t.event(sticky.PointerUp))
	}
	return events
}

func (t *pointerTracker) touchAlive() bool {
	t.touches = appendTouchIDs(t.touches[:0])
	for _, id := range t.touches {
		if id == t.touch {
			return true
		}
	}
	return false
}

func (t *pointerTracker) pollDown(events []pointerEvent) []pointerEvent {
	t.touches = appendJustPressedTouchIDs(t.touches[:0])
	if len(t.touches) > 0 {
		t.source, t.touch = sourceTouch, t.touches[0]
		t.x, t.y = touchPosition(t.touch)
		return append(events, t.event(sticky.PointerDown))
	}
	if !isMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return events
	}
	t.source = sourceMouse
	t.x, t.y = cursorPosition()
	events = append(events, t.event(sticky.PointerDown))
	if isMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		t.source = sourceNone
		events = append(events, t.event(sticky.PointerUp))
	}
	return events
}

func (t *pointerTracker) event(kind sticky.PointerKind) pointerEvent {
	return pointerEvent{kind: kind, x: float64(t.x), y: float64(t.y)}
}

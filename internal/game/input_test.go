package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// fakeInput stands in for ebiten input during a test. Set the fields, then
// poll once per simulated tick.
type fakeInput struct {
	x, y          int
	mousePressed  bool // just pressed this tick
	mouseReleased bool // just released this tick
	focused       bool

	touches   map[ebiten.TouchID][2]int
	justTouch []ebiten.TouchID
	released  map[ebiten.TouchID]bool

	keys map[ebiten.Key]bool
}

func stubInput(t *testing.T) *fakeInput {
	t.Helper()
	in := &fakeInput{
		focused:  true,
		touches:  map[ebiten.TouchID][2]int{},
		released: map[ebiten.TouchID]bool{},
		keys:     map[ebiten.Key]bool{},
	}

	saved := []func(){}
	swap := func(restore func()) { saved = append(saved, restore) }

	oldCursor := cursorPosition
	cursorPosition = func() (int, int) { return in.x, in.y }
	swap(func() { cursorPosition = oldCursor })

	oldJP := isMouseButtonJustPressed
	isMouseButtonJustPressed = func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.mousePressed }
	swap(func() { isMouseButtonJustPressed = oldJP })

	oldJR := isMouseButtonJustReleased
	isMouseButtonJustReleased = func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.mouseReleased }
	swap(func() { isMouseButtonJustReleased = oldJR })

	oldTouchIDs := appendJustPressedTouchIDs
	appendJustPressedTouchIDs = func(ids []ebiten.TouchID) []ebiten.TouchID { return append(ids, in.justTouch...) }
	swap(func() { appendJustPressedTouchIDs = oldTouchIDs })

	oldAllTouches := appendTouchIDs
	appendTouchIDs = func(ids []ebiten.TouchID) []ebiten.TouchID {
		for id := range in.touches {
			ids = append(ids, id)
		}
		return ids
	}
	swap(func() { appendTouchIDs = oldAllTouches })

	oldTouchReleased := isTouchJustReleased
	isTouchJustReleased = func(id ebiten.TouchID) bool { return in.released[id] }
	swap(func() { isTouchJustReleased = oldTouchReleased })

	oldTouchPos := touchPosition
	touchPosition = func(id ebiten.TouchID) (int, int) {
		p := in.touches[id]
		return p[0], p[1]
	}
	swap(func() { touchPosition = oldTouchPos })

	oldFocused := isFocused
	isFocused = func() bool { return in.focused }
	swap(func() { isFocused = oldFocused })

	oldTPS := ticksPerSecond
	ticksPerSecond = func() int { return 60 }
	swap(func() { ticksPerSecond = oldTPS })

	oldKey := isKeyPressed
	isKeyPressed = func(k ebiten.Key) bool { return in.keys[k] }
	swap(func() { isKeyPressed = oldKey })

	t.Cleanup(func() {
		for _, restore := range saved {
			restore()
		}
	})
	return in
}

// tick clears the one-tick edges after a poll.
func (in *fakeInput) tick() {
	in.mousePressed = false
	in.mouseReleased = false
	in.justTouch = nil
	for id := range in.released {
		delete(in.released, id)
		delete(in.touches, id)
	}
}

package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	// Button dimensions
	buttonWidth   = 120
	buttonHeight  = 40
	buttonMargin  = 20
	buttonSpacing = 12

	statusHeight = 28
)

type button struct {
	label   string
	onClick func() error

	x, y int

	hovered bool
	pressed bool
}

func (b *button) contains(x, y float64) bool {
	return contains(b.x, b.y, buttonWidth, buttonHeight, x, y)
}

// layoutButtons lines the buttons up from the left above the status line.
func layoutButtons(buttons []*button, height int) {
	x := buttonMargin
	y := height - statusHeight - buttonHeight
	for _, b := range buttons {
		b.x, b.y = x, y
		x += buttonWidth + buttonSpacing
	}
}

func (b *button) draw(screen *ebiten.Image) {
	// Button background
	var bgColor color.Color
	if b.pressed {
		bgColor = color.RGBA{R: 60, G: 80, B: 120, A: 255} // Pressed
	} else if b.hovered {
		bgColor = color.RGBA{R: 80, G: 100, B: 140, A: 255} // Hovered
	} else {
		bgColor = color.RGBA{R: 100, G: 120, B: 160, A: 255} // Normal
	}
	vector.DrawFilledRect(screen, float32(b.x), float32(b.y), buttonWidth, buttonHeight, bgColor, false)

	borderColor := color.RGBA{R: 150, G: 170, B: 200, A: 255}
	vector.StrokeRect(screen, float32(b.x), float32(b.y), buttonWidth, buttonHeight, 2, borderColor, false)

	textWidth := len(b.label) * 6 // debug font glyphs are 6px wide
	textX := b.x + (buttonWidth-textWidth)/2
	textY := b.y + (buttonHeight-16)/2
	ebitenutil.DebugPrintAt(screen, b.label, textX, textY)
}

package main

import (
	"image/color"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/raster"
	"github.com/iburimskiy/sticky-circle/internal/sticky"
)

// upperHalf paints the top pixel of a cell in the foreground color and the
// bottom one in the background color.
const upperHalf = '▀'

// host drives a sticky.View from terminal events. Every cell shows two
// square pixels of a virtual canvas that is cellSize times larger than the
// terminal in each direction.
type host struct {
	screen tcell.Screen
	cfg    *config.Config
	view   *sticky.View
	raster *raster.Renderer
	log    zerolog.Logger

	cols, rows int
	cellSize   int

	down    bool
	lastX   int
	lastY   int
	reloads int
	lastErr error

	notify func()
}

func newHost(screen tcell.Screen, cfg *config.Config, log zerolog.Logger) *host {
	h := &host{
		screen: screen,
		cfg:    cfg,
		log:    log,
		view:   sticky.New(cfg, sticky.WithLogger(log)),
	}
	h.view.SetOnReloadListener(func() {
		h.reloads++
		if h.notify != nil {
			h.notify()
		}
	})
	h.resize()
	return h
}

// resize fits the virtual canvas to the terminal, keeping the last row for
// the status line.
func (h *host) resize() {
	h.cols, h.rows = h.screen.Size()
	h.cols, h.rows = max(h.cols, 1), max(h.rows-1, 1)
	h.cellSize = max(1, h.cfg.WindowHeight/(2*h.rows))
	w, ht := h.canvasSize()
	h.view.OnSizeChanged(w, ht)
	h.raster = raster.New(h.cfg, w, ht)
	h.log.Debug().Int("cols", h.cols).Int("rows", h.rows).Int("cell", h.cellSize).Msg("resized")
}

func (h *host) canvasSize() (int, int) {
	return h.cols * h.cellSize, 2 * h.rows * h.cellSize
}

// toCanvas maps the center of a terminal cell to canvas coordinates.
func (h *host) toCanvas(col, row int) (float64, float64) {
	k := float64(h.cellSize)
	return (float64(col) + 0.5) * k, (float64(row) + 0.5) * 2 * k
}

// handle reacts to one terminal event and reports false when the user quits.
func (h *host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev.Key(), ev.Rune())

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
	return true
}

func (h *host) handleKey(key tcell.Key, r rune) bool {
	switch {
	case key == tcell.KeyEscape || key == tcell.KeyCtrlC:
		return false
	case key == tcell.KeyRune && r == 'q':
		return false
	case key == tcell.KeyRune && r == 's':
		h.view.StopReload()
	}
	return true
}

func (h *host) handleMouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	x, y := h.toCanvas(col, row)
	pressed := ev.Buttons()&tcell.Button1 != 0
	switch {
	case pressed && !h.down:
		h.down = true
		h.view.DispatchPointerEvent(sticky.PointerDown, x, y)
	case pressed && (col != h.lastX || row != h.lastY):
		h.view.DispatchPointerEvent(sticky.PointerMove, x, y)
	case !pressed && h.down:
		h.down = false
		h.view.DispatchPointerEvent(sticky.PointerUp, x, y)
	}
	h.lastX, h.lastY = col, row
}

// frame advances the view by dt and repaints.
func (h *host) frame(dt time.Duration) {
	h.view.Advance(dt)
	if err := h.draw(); err != nil && h.lastErr == nil {
		h.log.Error().Err(err).Msg("draw failed")
		h.lastErr = err
	}
	h.screen.Show()
}

func (h *host) draw() error {
	img, err := h.raster.Render(h.view.Geometry())
	if err != nil {
		return errors.Wrap(err, "render")
	}
	k := h.cellSize
	for row := 0; row < h.rows; row++ {
		for col := 0; col < h.cols; col++ {
			x := col*k + k/2
			top := img.RGBAAt(x, 2*row*k+k/2)
			bottom := img.RGBAAt(x, (2*row+1)*k+k/2)
			style := tcell.StyleDefault.Foreground(termColor(top)).Background(termColor(bottom))
			h.screen.SetContent(col, row, upperHalf, nil, style)
		}
	}
	h.drawStatus()
	return nil
}

func (h *host) drawStatus() {
	status := h.status()
	style := tcell.StyleDefault.Reverse(true)
	i := 0
	for _, r := range status {
		if i >= h.cols {
			break
		}
		h.screen.SetContent(i, h.rows, r, nil, style)
		i++
	}
	for ; i < h.cols; i++ {
		h.screen.SetContent(i, h.rows, ' ', nil, style)
	}
}

func (h *host) status() string {
	s := h.view.State().String()
	if h.view.State() == sticky.Loading && !h.view.Animating() {
		s = "stopped"
	}
	s += " | reloads: " + strconv.Itoa(h.reloads) + " | s: stop  q: quit"
	if h.lastErr != nil {
		s += " | " + h.lastErr.Error()
	}
	return s
}

func termColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// run reads events on a goroutine and ticks the view at 60 fps until the
// user quits.
func (h *host) run() {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !h.handle(ev) {
				return
			}

		case now := <-ticker.C:
			h.frame(now.Sub(last))
			last = now
		}
	}
}

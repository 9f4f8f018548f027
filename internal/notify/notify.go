// Package notify delivers reload notifications off the UI thread.
package notify

import (
	"sync"
	"time"

	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/sticky-circle/internal/config"
)

// Event describes one triggered reload.
type Event struct {
	At    time.Time
	Count int
}

// Sink reacts to a reload.
type Sink interface {
	Reload(ev Event) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ev Event) error

func (f SinkFunc) Reload(ev Event) error { return f(ev) }

// Dispatcher fans reload events out to sinks on its own goroutine, so a
// slow toast or audio device never stalls a frame.
type Dispatcher struct {
	sinks  []Sink
	events chan Event
	log    zerolog.Logger

	count int
	wg    sync.WaitGroup
	once  sync.Once
}

// NewDispatcher starts a dispatcher over sinks.
func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks:  sinks,
		events: make(chan Event, 1),
		log:    log.With().Str("module", "notify").Logger(),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ev := range d.events {
		for _, s := range d.sinks {
			if err := s.Reload(ev); err != nil {
				d.log.Warn().Err(err).Int("count", ev.Count).Msg("reload notification failed")
			}
		}
	}
}

// Notify queues a reload event. It never blocks: when the previous event is
// still queued the new one is dropped.
func (d *Dispatcher) Notify() {
	d.count++
	ev := Event{At: time.Now(), Count: d.count}
	select {
	case d.events <- ev:
	default:
		d.log.Debug().Int("count", ev.Count).Msg("notification dropped, sinks busy")
	}
}

// Close stops the worker after the queued event is delivered.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.events) })
	d.wg.Wait()
}

// Toast shows a desktop notification.
type Toast struct {
	Title string
	Text  string
}

func (t Toast) Reload(ev Event) error {
	err := zenity.Notify(t.Text, zenity.Title(t.Title), zenity.InfoIcon)
	return errors.Wrap(err, "toast")
}

// FromConfig builds the sinks cfg enables. When the chime cannot start the
// error is returned along with the remaining sinks.
func FromConfig(cfg *config.Config) ([]Sink, *Chime, error) {
	var sinks []Sink
	if cfg.Toast {
		sinks = append(sinks, Toast{Title: "Sticky circle", Text: "Refresh started"})
	}
	if cfg.Mute {
		return sinks, nil, nil
	}
	chime, err := NewChime(cfg.Sound)
	if err != nil {
		return sinks, nil, err
	}
	return append(sinks, chime), chime, nil
}

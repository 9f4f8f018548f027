// Package watch reloads a config file when it changes on disk.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/sticky-circle/internal/config"
)

// Watcher delivers the newest valid config after every write to its file.
// Only the latest value is kept: a reader that falls behind skips
// intermediate versions.
type Watcher struct {
	w    *fsnotify.Watcher
	path string
	log  zerolog.Logger

	updates chan *config.Config
	errs    chan error
	done    chan struct{}
}

// New watches the file at path. The parent directory is watched so editors
// that replace the file by rename are still seen.
func New(path string) (*Watcher, error) {
	path = filepath.Clean(path)
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, errors.Wrapf(err, "watch %s", path)
	}
	w := &Watcher{
		w:       fw,
		path:    path,
		log:     log.With().Str("module", "watch").Str("path", path).Logger(),
		updates: make(chan *config.Config, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.eventLoop()
	return w, nil
}

// Updates yields freshly loaded and validated configs.
func (w *Watcher) Updates() <-chan *config.Config { return w.updates }

// Errors yields load failures. The previous config stays in effect.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops watching. Updates and Errors are closed once the loop exits.
func (w *Watcher) Close() error {
	err := w.w.Close()
	<-w.done
	return errors.Wrap(err, "close watcher")
}

func (w *Watcher) eventLoop() {
	defer close(w.done)
	defer close(w.updates)
	defer close(w.errs)
	for {
		select {
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watch error")

		case ev, ok := <-w.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	c, err := config.Load(w.path)
	if err != nil {
		w.log.Warn().Err(err).Msg("config rejected")
		sendLatest(w.errs, err)
		return
	}
	w.log.Info().Msg("config changed")
	sendLatest(w.updates, c)
}

// sendLatest puts v in the one slot of ch, replacing an unread value.
// ch must have a single sender.
func sendLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}

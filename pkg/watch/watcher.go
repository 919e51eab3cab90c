// Package watch reports quote documents dropped into a directory.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Operation is the kind of change seen on a file
type Operation int

const (
	Created Operation = iota
	Modified
)

func (o Operation) String() string {
	if o == Modified {
		return "modified"
	}
	return "created"
}

// Event is emitted once a watched file has been quiet for the debounce delay
type Event struct {
	Path      string
	Operation Operation
}

// Option configures a Watcher
type Option func(*Watcher)

// WithExtensions sets the file extensions to report, compared case-insensitively
func WithExtensions(extensions ...string) Option {
	return func(w *Watcher) {
		if len(extensions) > 0 {
			w.extensions = extensions
		}
	}
}

// WithDebounce sets how long a file must stay unchanged before it is
// reported. Zero reports every change immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// WithLogger sets the logger for watcher errors
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// Watcher reports created or modified files in a directory using fsnotify
type Watcher struct {
	fs         *fsnotify.Watcher
	extensions []string
	debounce   time.Duration
	logger     *slog.Logger
}

// New creates a watcher reporting ".pdf" files by default
func New(opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:         fw,
		extensions: []string{".pdf"},
		debounce:   500 * time.Millisecond,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch starts monitoring dir. The returned channel is closed when ctx is
// done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan Event, error) {
	if err := w.fs.Add(dir); err != nil {
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan Event, 16)
	go w.loop(ctx, events)
	return events, nil
}

type pending struct {
	op   Operation
	seen time.Time
}

func (w *Watcher) loop(ctx context.Context, events chan<- Event) {
	defer close(events)

	waiting := make(map[string]pending)
	var tick <-chan time.Time
	if w.debounce > 0 {
		ticker := time.NewTicker(w.debounce / 2)
		defer ticker.Stop()
		tick = ticker.C
	}

	emit := func(ev Event) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.isWatched(event.Name) {
				continue
			}

			var op Operation
			switch {
			case event.Has(fsnotify.Create):
				op = Created
			case event.Has(fsnotify.Write):
				op = Modified
			case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
				delete(waiting, event.Name)
				continue
			default:
				continue
			}

			if w.debounce <= 0 {
				if !emit(Event{Path: event.Name, Operation: op}) {
					return
				}
				continue
			}

			// a file written after its creation is still reported as created
			if prev, ok := waiting[event.Name]; ok && prev.op == Created {
				op = Created
			}
			waiting[event.Name] = pending{op: op, seen: time.Now()}

		case now := <-tick:
			for path, p := range waiting {
				if now.Sub(p.seen) < w.debounce {
					continue
				}
				delete(waiting, path)
				if !emit(Event{Path: path, Operation: p.op}) {
					return
				}
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) isWatched(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

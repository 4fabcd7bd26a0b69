package organize

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"
)

// WatcherConfig controls watch mode.
type WatcherConfig struct {
	// Debounce is the quiet period after the last filesystem event
	// before an organize run triggers (default 2s).
	Debounce time.Duration

	// RescanSchedule is an optional cron expression (standard five
	// fields, or @every syntax) for periodic full rescans. Empty
	// disables scheduled rescans.
	RescanSchedule string

	// DryRun makes triggered runs report without moving files.
	DryRun bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultDebounce is the watch-mode debounce interval.
const DefaultDebounce = 2 * time.Second

// Watcher keeps a directory organized: filesystem events debounce
// into organize runs, and an optional cron schedule forces periodic
// rescans regardless of event activity.
type Watcher struct {
	organizer *Organizer
	config    WatcherConfig
	logger    *slog.Logger
	fs        *fsnotify.Watcher
	debounce  *debouncer
	schedule  cron.Schedule

	mu      sync.Mutex
	running bool
}

// NewWatcher builds a watcher over an organizer's source directory.
func NewWatcher(o *Organizer, cfg WatcherConfig) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var schedule cron.Schedule
	if cfg.RescanSchedule != "" {
		parser := cron.NewParser(
			cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		var err error
		schedule, err = parser.Parse(cfg.RescanSchedule)
		if err != nil {
			return nil, fmt.Errorf("parse rescan schedule %q: %w", cfg.RescanSchedule, err)
		}
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		organizer: o,
		config:    cfg,
		logger:    logger.With("component", "organize.watcher"),
		fs:        fs,
		debounce:  newDebouncer(cfg.Debounce),
		schedule:  schedule,
	}, nil
}

// Watch blocks, organizing the directory whenever file activity
// settles, until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()
	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.debounce.stop()
		w.fs.Close()
	}()

	if err := w.fs.Add(w.organizer.Source()); err != nil {
		return fmt.Errorf("watch %s: %w", w.organizer.Source(), err)
	}

	w.logger.Info("watching directory",
		"path", w.organizer.Source(),
		"debounce_ms", w.config.Debounce.Milliseconds(),
		"rescan", w.config.RescanSchedule,
	)

	rescan := w.rescanTimer()
	defer func() { stopTimer(rescan) }()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}
			metrics().watchEvents.Inc()
			w.logger.Debug("file event", "path", event.Name, "op", event.Op.String())
			w.debounce.trigger(w.runOrganize)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			metrics().watchErrors.Inc()
			w.logger.Error("watcher error", "error", err)

		case <-timerChan(rescan):
			w.logger.Info("scheduled rescan")
			w.runOrganize()
			rescan = w.rescanTimer()
		}
	}
}

// runOrganize performs one organize run, logging instead of failing
// so the watch loop survives transient errors.
func (w *Watcher) runOrganize() {
	result, err := w.organizer.Organize(w.config.DryRun)
	if err != nil {
		w.logger.Error("organize run failed", "error", err)
		return
	}
	if result.MovedFiles > 0 || len(result.Errors) > 0 {
		w.logger.Info("organize run",
			"moved", result.MovedFiles,
			"skipped", result.SkippedFiles,
			"errors", len(result.Errors),
		)
	}
}

// shouldProcess filters events down to file creations and writes in
// the watched directory itself, ignoring hidden files and whatever
// the organizer just moved into category subdirectories.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return filepath.Dir(event.Name) == w.organizer.Source()
}

func (w *Watcher) rescanTimer() *time.Timer {
	if w.schedule == nil {
		return nil
	}
	return time.NewTimer(time.Until(w.schedule.Next(time.Now())))
}

func stopTimer(t *time.Timer) {
	if t != nil {
		t.Stop()
	}
}

func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// debouncer collapses rapid event bursts into a single callback
// after a quiet period.
type debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, func() {
		d.mu.Lock()
		cb := d.callback
		stopped := d.stopped
		d.mu.Unlock()
		if cb != nil && !stopped {
			cb()
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

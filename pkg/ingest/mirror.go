package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"mercator-hq/callisto/pkg/config"
)

// ImportFunc runs one import cycle. The mirror does not care how the cycle
// is wired, only that it is safe to call repeatedly.
type ImportFunc func(ctx context.Context) error

// Mirror keeps a local sink in sync with a registry dump file. Imports run
// on a cron schedule, on filesystem changes to the source, or both.
// Filesystem events are debounced so an rsync-style replace triggers one
// import rather than one per write.
type Mirror struct {
	cfg      config.MirrorConfig
	source   string
	runner   ImportFunc
	cron     *cron.Cron
	watcher  *fsnotify.Watcher
	debounce *Debouncer
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewMirror creates a mirror for the given source file. At least one of
// cfg.Schedule and cfg.Watch must be set.
func NewMirror(cfg config.MirrorConfig, sourcePath string, run ImportFunc) (*Mirror, error) {
	if cfg.Schedule == "" && !cfg.Watch {
		return nil, fmt.Errorf("mirror needs a schedule, watch mode, or both")
	}
	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return nil, fmt.Errorf("invalid cron schedule %q: %w", cfg.Schedule, err)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = 2 * time.Second
	}

	return &Mirror{
		cfg:      cfg,
		source:   sourcePath,
		runner:   run,
		cron:     cron.New(),
		debounce: NewDebouncer(debounce),
		logger:   slog.Default().With("component", "mirror"),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start runs an initial import, then begins the schedule and the watcher.
// It returns after startup; imports run in background goroutines until the
// context is cancelled or Stop is called.
func (m *Mirror) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return fmt.Errorf("mirror already running")
	}
	m.running = true
	m.mu.Unlock()

	m.runImport(ctx, "startup")

	if m.cfg.Schedule != "" {
		_, err := m.cron.AddFunc(m.cfg.Schedule, func() {
			m.runImport(ctx, "schedule")
		})
		if err != nil {
			return fmt.Errorf("failed to schedule imports: %w", err)
		}
		m.cron.Start()
		m.logger.Info("scheduled imports enabled", "schedule", m.cfg.Schedule)
	}

	if m.cfg.Watch {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			m.abortStart()
			return fmt.Errorf("failed to create fsnotify watcher: %w", err)
		}
		m.watcher = watcher

		// Watch the parent directory: replacing the dump via rename would
		// silently detach a watch on the file itself.
		dir := filepath.Dir(m.source)
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			m.watcher = nil
			m.abortStart()
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}

		go m.watchLoop(ctx)
		m.logger.Info("source watch enabled",
			"path", m.source,
			"debounce", m.cfg.Debounce,
		)
	} else {
		close(m.doneCh)
	}

	go func() {
		<-ctx.Done()
		m.Stop()
	}()

	return nil
}

// abortStart unwinds a failed Start so that a deferred Stop cannot block.
func (m *Mirror) abortStart() {
	m.mu.Lock()
	m.running = false
	m.mu.Unlock()
	if m.cfg.Schedule != "" {
		<-m.cron.Stop().Done()
	}
	close(m.doneCh)
	close(m.stopCh)
}

func (m *Mirror) watchLoop(ctx context.Context) {
	defer close(m.doneCh)

	base := filepath.Base(m.source)
	for {
		select {
		case <-ctx.Done():
			return

		case <-m.stopCh:
			return

		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			m.logger.Debug("source file event", "path", event.Name, "op", event.Op.String())
			m.debounce.Trigger(func() {
				m.runImport(ctx, "watch")
			})

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.logger.Error("watcher error", "error", err)
		}
	}
}

func (m *Mirror) runImport(ctx context.Context, trigger string) {
	m.logger.Info("import triggered", "trigger", trigger)
	if err := m.runner(ctx); err != nil {
		m.logger.Error("import failed", "trigger", trigger, "error", err)
	}
}

// Stop halts the schedule and the watcher and waits for them to wind down.
// Safe to call more than once.
func (m *Mirror) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	if m.cfg.Schedule != "" {
		stopCtx := m.cron.Stop()
		<-stopCtx.Done()
	}

	close(m.stopCh)
	if m.watcher != nil {
		m.watcher.Close()
	}
	<-m.doneCh
	m.debounce.Stop()

	m.logger.Info("mirror stopped")
}

// IsRunning reports whether the mirror has been started and not stopped.
func (m *Mirror) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// NextRun returns the next scheduled import time, nil without a schedule.
func (m *Mirror) NextRun() *time.Time {
	entries := m.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

// Debouncer coalesces rapid events and fires the callback only after a
// quiet period.
type Debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopped  bool
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger arms the debouncer. The callback fires after the quiet period
// unless Trigger is called again first.
func (d *Debouncer) Trigger(callback func()) {
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

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}

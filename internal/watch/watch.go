// Package watch revalidates documents when they change on disk, and
// optionally sweeps whole directories on a cron schedule.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/robfig/cron/v3"

	"github.com/docverify/docverify/internal/invoker"
	"github.com/docverify/docverify/internal/schema"
	"github.com/docverify/docverify/internal/validator"
)

// DefaultDebounce coalesces the burst of write events editors and office
// suites produce while saving a single document.
const DefaultDebounce = 500 * time.Millisecond

// Handler receives the outcome of each triggered validation. err is non-nil
// only for pipeline failures (see validator.Validate).
type Handler func(path string, result schema.ValidationResult, err error)

// Options configures a Watcher.
type Options struct {
	Dirs      []string
	Schedule  string // optional cron spec for periodic full sweeps
	Debounce  time.Duration
	Validator *validator.Validator
	Handler   Handler
	Logger    *slog.Logger
}

// Watcher drives validations from filesystem events.
type Watcher struct {
	dirs      []string
	schedule  string
	debounce  time.Duration
	validator *validator.Validator
	handler   Handler
	logger    *slog.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func New(opts Options) *Watcher {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		dirs:      opts.Dirs,
		schedule:  opts.Schedule,
		debounce:  debounce,
		validator: opts.Validator,
		handler:   opts.Handler,
		logger:    logger,
		pending:   make(map[string]*time.Timer),
	}
}

// Run blocks until ctx is cancelled, validating documents as they change.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.dirs) == 0 {
		return fmt.Errorf("watch: no directories configured")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch: adding %s: %w", dir, err)
		}
		w.logger.Info("watching directory", "dir", dir)
	}

	if w.schedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(w.schedule, func() { w.Sweep(ctx) }); err != nil {
			return fmt.Errorf("watch: invalid schedule %q: %w", w.schedule, err)
		}
		c.Start()
		defer c.Stop()
		w.logger.Info("scheduled sweeps enabled", "schedule", w.schedule)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !wantEvent(ev) {
				continue
			}
			w.logger.Debug("document changed", "file", ev.Name, "op", ev.Op.String())
			w.schedulePath(ctx, ev.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("watch error", "error", err)
		}
	}
}

// Sweep validates every supported document under the watched directories.
func (w *Watcher) Sweep(ctx context.Context) {
	for _, doc := range w.CollectDocuments() {
		if ctx.Err() != nil {
			return
		}
		w.process(ctx, doc)
	}
}

// CollectDocuments lists the supported documents under the watched
// directories, sorted by filepath.WalkDir order.
func (w *Watcher) CollectDocuments() []string {
	var docs []string
	for _, dir := range w.dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if invoker.SupportedExtension(path) {
				docs = append(docs, path)
			}
			return nil
		})
	}
	return docs
}

// schedulePath (re)arms the debounce timer for one document. Only the last
// event in a burst triggers a validation.
func (w *Watcher) schedulePath(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()

		// The file may have been removed between the event and the timer.
		if _, err := os.Stat(path); err != nil {
			return
		}
		w.process(ctx, path)
	})
}

func (w *Watcher) process(ctx context.Context, path string) {
	result, err := w.validator.Validate(ctx, path)
	if w.handler != nil {
		w.handler(path, result, err)
	}
}

// wantEvent reports whether a filesystem event should trigger a validation:
// a create or write of a supported document type.
func wantEvent(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
		return false
	}
	return invoker.SupportedExtension(ev.Name)
}

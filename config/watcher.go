package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/ariaclab/workcell/logging"
	"github.com/ariaclab/workcell/utils"
)

// ReloadDelay is how long the watcher waits for a burst of writes to settle before rereading.
const ReloadDelay = 50 * time.Millisecond

// A Watcher rereads a config file whenever it changes and hands every valid result to a callback.
// Each reload is a full rebuild; invalid intermediate states are logged and skipped.
type Watcher struct {
	path     string
	logger   logging.Logger
	fsw      *fsnotify.Watcher
	onChange func(*Config)

	debounced func(func())
	reload    chan struct{}

	workers   utils.StoppableWorkers
	closeOnce sync.Once
}

// NewWatcher starts watching path until ctx is done or Close is called.
func NewWatcher(ctx context.Context, path string, logger logging.Logger, onChange func(*Config)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// editors often replace the file, so watch its directory
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		return nil, multierr.Combine(errors.Wrapf(err, "watching %s", path), fsw.Close())
	}

	w := &Watcher{
		path:     abs,
		logger:   logger,
		fsw:      fsw,
		onChange: onChange,

		debounced: debounce.New(ReloadDelay),
		reload:    make(chan struct{}, 1),
	}
	w.workers = utils.NewStoppableWorkers(ctx, w.loop)
	return w, nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			w.debounced(w.requestReload)
		case <-w.reload:
			cfg, err := Read(ctx, w.path, w.logger)
			if err != nil {
				w.logger.Warnw("ignoring unreadable config", "path", w.path, "error", err)
				continue
			}
			w.logger.Infow("config changed", "path", w.path)
			w.onChange(cfg)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Errorw("config watcher error", "error", err)
		}
	}
}

// requestReload runs on the debounce timer and must not block.
func (w *Watcher) requestReload() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

// Close stops the watcher and waits for the in-flight reload, if any.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.workers.Stop()
		err = w.fsw.Close()
	})
	return err
}

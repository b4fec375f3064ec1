// Package watch monitors a tmux configuration file and re-parses it when
// it changes on disk.
package watch

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	errs "tmuxtutor/internal/errors"
	"tmuxtutor/internal/log"
	"tmuxtutor/internal/tmux"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher re-parses a tmux config whenever it is written. Editors often
// replace the file instead of writing in place, so the parent directory is
// watched and events are filtered by base name.
type Watcher struct {
	configPath string
	debounce   time.Duration
	onChange   func(*tmux.Config)

	fsWatcher *fsnotify.Watcher
	stopChan  chan struct{}

	mutex   sync.Mutex
	running bool
}

// New creates a watcher for the given tmux config path. The callback runs
// with the freshly parsed config after each debounced change.
func New(configPath string, onChange func(*tmux.Config)) (*Watcher, error) {
	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errs.Wrap(err, "could not determine home directory")
		}
		configPath = filepath.Join(home, ".tmux.conf")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errs.Wrap(err, "failed to create fsnotify watcher")
	}

	return &Watcher{
		configPath: configPath,
		debounce:   defaultDebounce,
		onChange:   onChange,
		fsWatcher:  fsWatcher,
	}, nil
}

// SetDebounce overrides the debounce interval. Must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching. The config's parent directory must exist.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.running {
		return errs.New("watcher already running")
	}

	dir := filepath.Dir(w.configPath)
	if _, err := os.Stat(dir); err != nil {
		return errs.NewFileError("watch directory not accessible", dir, errs.FileNotFound, err)
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errs.Wrapf(err, "failed to watch %s", dir)
	}

	w.running = true
	w.stopChan = make(chan struct{})
	go w.loop()

	log.LogWithFields(log.F("path", w.configPath)).Info("Watching tmux config")
	return nil
}

// Stop halts the watcher and releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	close(w.stopChan)
	w.fsWatcher.Close()
	w.running = false
}

func (w *Watcher) loop() {
	base := filepath.Base(w.configPath)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			log.Debugf("config event: %s", event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.reload)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Errorf("watcher error: %v", err)

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg := tmux.ParseFile(w.configPath)
	if w.onChange != nil {
		w.onChange(cfg)
	}
}

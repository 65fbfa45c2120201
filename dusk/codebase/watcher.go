package codebase

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"
)

// FileWatcher polls the root directory and keeps the codebase in step with
// the Dusk files on disk.
type FileWatcher struct {
	codebase     *Codebase
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnUpdate, when set, is called after a file was reparsed.
	OnUpdate func(*File)
	// OnRemove, when set, is called after a file disappeared.
	OnRemove func(path string)
}

func NewFileWatcher(c *Codebase, interval time.Duration) *FileWatcher {
	return &FileWatcher{
		codebase:     c,
		stopCh:       make(chan struct{}),
		pollInterval: interval,
		modTimes:     make(map[string]time.Time),
	}
}

func (w *FileWatcher) Start() {
	go w.run()
}

func (w *FileWatcher) Stop() {
	close(w.stopCh)
}

func (w *FileWatcher) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.Scan()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Scan()
		}
	}
}

// Scan runs one polling round. It is not safe to call concurrently with a
// started watcher.
func (w *FileWatcher) Scan() {
	current := make(map[string]bool)

	filepath.WalkDir(w.codebase.RootDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != w.codebase.RootDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Extension {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}

		current[path] = true

		lastMod, known := w.modTimes[path]
		if known && !info.ModTime().After(lastMod) {
			return nil
		}
		w.modTimes[path] = info.ModTime()
		f, err := w.codebase.ScanFile(path)
		if err != nil {
			log.Warningf("rescan %s: %s", path, err)
			return nil
		}
		if w.OnUpdate != nil {
			w.OnUpdate(f)
		}
		return nil
	})

	for path := range w.modTimes {
		if current[path] {
			continue
		}
		delete(w.modTimes, path)
		w.codebase.RemoveFile(path)
		if w.OnRemove != nil {
			w.OnRemove(path)
		}
	}
}

// Package watcher monitors a drop folder for finished image files so playctl
// can validate them as they land.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a directory tree and fires a callback once an image file
// has been quiescent (no writes) for the configured duration.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	tracker   *QuiescenceTracker
	done      chan struct{}
}

// Options tunes a Watcher. The zero value uses DefaultQuiescenceDuration.
type Options struct {
	Quiescence time.Duration
}

// New watches root recursively and calls back with the path of each image
// that finishes writing.
func New(root string, opts Options, callback func(filePath string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	quiescence := opts.Quiescence
	if quiescence <= 0 {
		quiescence = DefaultQuiescenceDuration
	}

	w := &Watcher{
		fsWatcher: fsw,
		tracker:   NewQuiescenceTracker(quiescence, callback),
		done:      make(chan struct{}),
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", root, err)
	}

	go w.loop()

	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if IsImageFile(event.Name) {
					w.tracker.Touch(event.Name)
				}

				// Watch newly created directories
				if event.Has(fsnotify.Create) {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						w.fsWatcher.Add(event.Name)
					}
				}
			}

		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

		case <-w.done:
			return
		}
	}
}

// IsImageFile reports whether the path looks like an image the validation
// endpoint accepts.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}

// Close stops the watcher.
func (w *Watcher) Close() {
	w.tracker.Stop()
	close(w.done)
	w.fsWatcher.Close()
}

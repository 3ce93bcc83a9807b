// Package effects keeps the audio service's expert effect profiles in sync
// with a directory of profile files.
//
// A profile file is named after the effect it configures: "<id>.<ext>" or
// "<id>-<label>.<ext>", e.g. "2.bin" or "2-concert-hall.bin".
package effects

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Target is the effect surface of the audio proxy.
type Target interface {
	AvailableExpertAudioEffects() []int
	AddExpertAudioEffect(effect int, path string, apply bool)
}

// Watcher registers profile files with a Target and follows changes to the
// directory.
type Watcher struct {
	dir           string
	target        Target
	applyOnChange bool

	mu       sync.RWMutex
	profiles map[int]string
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// ParseName extracts the effect id from a profile file name.
func ParseName(name string) (int, bool) {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return 0, false
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if i := strings.IndexByte(stem, '-'); i >= 0 {
		stem = stem[:i]
	}
	id, err := strconv.Atoi(stem)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// New watches dir. A missing directory is not an error; the watcher then
// does nothing until the daemon is restarted.
// Files written after startup are pushed with apply set to applyOnChange.
func New(dir string, target Target, applyOnChange bool) (*Watcher, error) {
	w := &Watcher{
		dir:           dir,
		target:        target,
		applyOnChange: applyOnChange,
		profiles:      make(map[int]string),
		done:          make(chan struct{}),
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("effects: could not create fsnotify watcher", "err", err)
		close(w.done)
		return w, nil
	}
	if err := fw.Add(dir); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fw.Close()
			return nil, err
		}
		slog.Warn("effects: profile directory missing", "dir", dir)
	}
	w.watcher = fw

	go w.watchLoop()
	return w, nil
}

// Rescan registers, without applying, every profile in the directory whose
// effect id the service advertises. It returns how many were registered.
// When several files name the same effect, the first in name order wins.
func (w *Watcher) Rescan() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	found := make(map[int]string)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := ParseName(e.Name())
		if !ok {
			continue
		}
		if prev, dup := found[id]; dup {
			slog.Debug("effects: duplicate profile ignored", "effect", id, "file", e.Name(), "using", prev)
			continue
		}
		found[id] = filepath.Join(w.dir, e.Name())
	}

	w.mu.Lock()
	w.profiles = found
	w.mu.Unlock()

	n := 0
	for _, id := range w.target.AvailableExpertAudioEffects() {
		path, ok := found[id]
		if !ok {
			continue
		}
		w.target.AddExpertAudioEffect(id, path, false)
		n++
	}
	slog.Info("effects: profiles registered", "dir", w.dir, "count", n)
	return n, nil
}

// Profiles returns the known profile file per effect id.
func (w *Watcher) Profiles() map[int]string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make(map[int]string, len(w.profiles))
	for id, path := range w.profiles {
		out[id] = path
	}
	return out
}

// Close stops the file watcher.
func (w *Watcher) Close() {
	if w.watcher != nil {
		w.watcher.Close()
	}
	<-w.done
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("effects: watcher error", "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	id, ok := ParseName(event.Name)
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.mu.Lock()
		if w.profiles[id] == event.Name {
			delete(w.profiles, id)
		}
		w.mu.Unlock()
		slog.Info("effects: profile removed", "effect", id, "file", event.Name)

	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		w.mu.Lock()
		w.profiles[id] = event.Name
		w.mu.Unlock()

		if !slices.Contains(w.target.AvailableExpertAudioEffects(), id) {
			slog.Debug("effects: effect not offered by service", "effect", id, "file", event.Name)
			return
		}
		w.target.AddExpertAudioEffect(id, event.Name, w.applyOnChange)
		slog.Info("effects: profile updated", "effect", id, "file", event.Name, "apply", w.applyOnChange)
	}
}

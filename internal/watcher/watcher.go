// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/dadrus/rtrie/internal/apperr"
	"github.com/dadrus/rtrie/internal/x/errorchain"
)

type ChangeListener interface {
	OnChanged(logger zerolog.Logger)
}

type ChangeListenerFunc func(logger zerolog.Logger)

func (f ChangeListenerFunc) OnChanged(logger zerolog.Logger) { f(logger) }

// Watcher notifies listeners about modifications of the files they registered for.
type Watcher interface {
	Add(path string, cl ChangeListener) error
	Start(ctx context.Context)
	Stop() error
}

type listenerEntry struct {
	listeners    []ChangeListener
	resolvedPath string
}

type watcher struct {
	w *fsnotify.Watcher
	m map[string]*listenerEntry
	l zerolog.Logger

	mut sync.Mutex
}

func New(logger zerolog.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errorchain.NewWithMessage(apperr.ErrInternal, "failed to instantiate file watcher").
			CausedBy(err)
	}

	return &watcher{w: fsw, m: make(map[string]*listenerEntry), l: logger}, nil
}

func (w *watcher) Add(path string, cl ChangeListener) error {
	w.mut.Lock()
	defer w.mut.Unlock()

	entry := w.m[path]
	if entry != nil {
		entry.listeners = append(entry.listeners, cl)

		return nil
	}

	if err := w.w.Add(path); err != nil {
		return errorchain.NewWithMessagef(apperr.ErrInternal,
			"listener registration for file %s failed", path).CausedBy(err)
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return errorchain.NewWithMessagef(apperr.ErrInternal,
			"listener registration for file %s failed", path).CausedBy(err)
	}

	w.m[path] = &listenerEntry{listeners: []ChangeListener{cl}, resolvedPath: resolvedPath}

	return nil
}

func (w *watcher) Start(ctx context.Context) {
	w.l.Debug().Msg("Starting watching files for changes")

	go w.watch(ctx)
}

func (w *watcher) Stop() error {
	w.l.Debug().Msg("Stopping watching files for changes")

	return w.w.Close()
}

func (w *watcher) watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-w.w.Events:
			if !ok {
				w.l.Debug().Msg("File watcher closed")

				return
			}

			var (
				changed bool
				err     error
			)

			// symlink swaps, like done for mounted config maps, are reported as chmod only
			if evt.Has(fsnotify.Chmod) {
				if changed, err = w.checkForUpdate(evt.Name); err != nil {
					w.l.Warn().Err(err).Msgf("Handling modification for %s failed", evt.Name)
				}
			}

			// editors saving via rename replace the watched inode, which drops the watch
			if evt.Has(fsnotify.Remove) || evt.Has(fsnotify.Rename) {
				changed = w.rewatch(evt.Name)
			}

			if evt.Has(fsnotify.Write) || changed {
				w.fireOnChange(evt.Name)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				w.l.Debug().Msg("File watcher error channel closed")

				return
			}

			w.l.Warn().Err(err).Msg("File watcher error received")
		}
	}
}

func (w *watcher) checkForUpdate(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			_ = w.w.Remove(path)

			return false, nil
		}

		return false, err
	}

	resolvedPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false, err
	}

	w.mut.Lock()
	defer w.mut.Unlock()

	entry := w.m[path]
	if entry == nil || entry.resolvedPath == resolvedPath {
		return false, nil
	}

	_ = w.w.Remove(path)
	entry.resolvedPath = resolvedPath
	_ = w.w.Add(path)

	return true, nil
}

// rewatch registers path again after the file it referred to has been replaced or
// removed. It reports whether path is watched again.
func (w *watcher) rewatch(path string) bool {
	w.mut.Lock()
	defer w.mut.Unlock()

	entry := w.m[path]
	if entry == nil {
		return false
	}

	if _, err := os.Stat(path); err != nil {
		w.l.Warn().Err(err).Str("_file", path).
			Msg("Watched file disappeared, further modifications are not tracked")

		return false
	}

	// the old watch might still be around for a rename
	_ = w.w.Remove(path)

	if err := w.w.Add(path); err != nil {
		w.l.Warn().Err(err).Str("_file", path).
			Msg("Watching replaced file failed, further modifications are not tracked")

		return false
	}

	if resolvedPath, err := filepath.EvalSymlinks(path); err == nil {
		entry.resolvedPath = resolvedPath
	}

	return true
}

func (w *watcher) fireOnChange(path string) {
	w.mut.Lock()

	var listeners []ChangeListener
	if entry := w.m[path]; entry != nil {
		listeners = entry.listeners
	}

	w.mut.Unlock()

	for _, listener := range listeners {
		go listener.OnChanged(w.l)
	}
}

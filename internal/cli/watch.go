// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/albertocavalcante/antsy/internal/config"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/logging"
)

// watch runs build once, then again after every burst of changes to the
// configured inputs. Builds never overlap. It returns when ctx is done.
func watch(ctx context.Context, cfg *config.Config, build func(context.Context) error) error {
	log := logging.Named("watch")

	var exclude []string
	if cfg.Dest != "" {
		exclude = append(exclude, cfg.Dest)
	}
	w, err := newInputWatcher(cfg.Sources(), exclude)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := build(ctx); err != nil {
		log.Errorw("build failed", "error", err)
	}
	log.Infow("watching", "paths", cfg.Sources(), "debounce", cfg.Debounce)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Warnw("cannot watch new directory", "dir", ev.Name, "error", err)
					}
				}
			}
			log.Debugw("change", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(cfg.Debounce)
			} else {
				timer.Reset(cfg.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := build(ctx); err != nil {
				log.Errorw("build failed", "error", err)
			}
		}
	}
}

// inputWatcher watches model files and source trees. Files are watched
// through their directory so that editors replacing them are noticed.
// Paths are absolute. Excluded directories, usually the output directory,
// are neither watched nor reported.
type inputWatcher struct {
	fs      *fsnotify.Watcher
	files   map[string]bool
	trees   []string
	exclude []string
}

func newInputWatcher(paths, exclude []string) (*inputWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create watcher")
	}
	w := &inputWatcher{fs: fw, files: make(map[string]bool)}
	for _, p := range exclude {
		w.exclude = append(w.exclude, absPath(p))
	}

	for _, p := range paths {
		p = absPath(p)
		info, err := os.Stat(p)
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watch %s", p)
		}
		if info.IsDir() {
			w.trees = append(w.trees, p)
			err = w.addTree(p)
		} else {
			w.files[p] = true
			err = fw.Add(filepath.Dir(p))
		}
		if err != nil {
			fw.Close()
			return nil, errors.Wrapf(err, "watch %s", p)
		}
	}
	return w, nil
}

func (w *inputWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (strings.HasPrefix(d.Name(), ".") || w.excluded(path)) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

// relevant reports whether ev changes an input: a watched file, or a Java
// source, a new directory or a removal inside a source tree. Attribute
// changes, hidden files and excluded directories never count.
func (w *inputWatcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := absPath(ev.Name)
	if w.files[name] {
		return true
	}
	if w.excluded(name) || strings.HasPrefix(filepath.Base(name), ".") || !w.inTree(name) {
		return false
	}
	switch {
	case filepath.Ext(name) == ".java":
		return true
	case ev.Has(fsnotify.Create):
		info, err := os.Stat(name)
		return err == nil && info.IsDir()
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		return filepath.Ext(name) == ""
	}
	return false
}

func (w *inputWatcher) inTree(name string) bool {
	for _, t := range w.trees {
		if within(name, t) {
			return true
		}
	}
	return false
}

func (w *inputWatcher) excluded(name string) bool {
	for _, x := range w.exclude {
		if within(name, x) {
			return true
		}
	}
	return false
}

func within(name, dir string) bool {
	return name == dir || strings.HasPrefix(name, dir+string(filepath.Separator))
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return filepath.Clean(p)
}

func (w *inputWatcher) Close() error {
	return w.fs.Close()
}

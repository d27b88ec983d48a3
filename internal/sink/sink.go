// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package sink provides destinations for generated units.
//
// A unit is a slash separated relative path plus its content. Sinks decide
// where units land; the generator never touches the filesystem itself.
package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/logging"
)

// Sink receives generated units. Implementations are safe for concurrent use.
type Sink interface {
	WriteFile(ctx context.Context, path string, content []byte) error
}

// Filesystem writes units below Root. Parent directories are created on
// demand and every write goes through a temporary file and a rename.
type Filesystem struct {
	Root string

	// Mode is the permission of written files (default 0644).
	Mode os.FileMode

	mu    sync.Mutex
	count int
	bytes int
}

// NewFilesystem returns a sink writing below root.
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{Root: root, Mode: 0o644}
}

// WriteFile writes content to Root/path, replacing any existing file.
func (s *Filesystem) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := s.contains(full); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, ".antsy-*.tmp")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpPath := tmp.Name()
	discard := func() { _ = os.Remove(tmpPath) }

	_, werr := tmp.Write(content)
	cerr := tmp.Close()
	switch {
	case werr != nil:
		discard()
		return errors.Wrapf(werr, "write %s", path)
	case cerr != nil:
		discard()
		return errors.Wrapf(cerr, "close %s", path)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		discard()
		return errors.Wrapf(err, "chmod %s", path)
	}
	if err := ctx.Err(); err != nil {
		discard()
		return err
	}
	if err := os.Rename(tmpPath, full); err != nil {
		discard()
		return errors.Wrapf(err, "rename %s", path)
	}

	s.mu.Lock()
	s.count++
	s.bytes += len(content)
	s.mu.Unlock()
	return nil
}

// Stats returns the number of units and bytes written so far.
func (s *Filesystem) Stats() (units, bytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, s.bytes
}

func (s *Filesystem) contains(full string) error {
	root, err := filepath.Abs(s.Root)
	if err != nil {
		return errors.Wrap(err, "resolve root")
	}
	abs, err := filepath.Abs(full)
	if err != nil {
		return errors.Wrap(err, "resolve path")
	}
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return errors.New("path escapes output directory")
	}
	return nil
}

// Memory keeps units in memory.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
	order []string
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// WriteFile stores a copy of content under path.
func (s *Memory) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	if _, ok := s.files[path]; !ok {
		s.order = append(s.order, path)
	}
	s.files[path] = append([]byte(nil), content...)
	return nil
}

// Get returns the content written to path and whether it exists.
func (s *Memory) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.files[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), content...), true
}

// Paths returns the written paths in first-write order.
func (s *Memory) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Files returns a copy of every stored unit.
func (s *Memory) Files() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]byte, len(s.files))
	for p, c := range s.files {
		out[p] = append([]byte(nil), c...)
	}
	return out
}

// Len returns the number of stored units.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// DryRun validates and logs units without writing them.
type DryRun struct {
	mu    sync.Mutex
	count int
	bytes int
}

// WriteFile logs the unit that would have been written.
func (s *DryRun) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ValidatePath(path); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.count++
	s.bytes += len(content)
	s.mu.Unlock()
	logging.Logger.Infow("dry run", "path", path, "bytes", len(content))
	return nil
}

// Stats returns the number of units and bytes seen so far.
func (s *DryRun) Stats() (units, bytes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count, s.bytes
}

// ValidatePath rejects empty, absolute, unclean and escaping paths.
func ValidatePath(path string) error {
	switch {
	case path == "":
		return errors.New("empty path")
	case filepath.IsAbs(path) || strings.HasPrefix(path, "/") || isDrivePath(path):
		return errors.Newf("absolute path %q", path)
	}
	for seg := range strings.SplitSeq(path, "/") {
		if seg == ".." {
			return errors.Newf("path %q escapes output directory", path)
		}
	}
	if clean := filepath.ToSlash(filepath.Clean(path)); clean != path {
		return errors.WithHintf(errors.Newf("path %q is not clean", path), "use %q", clean)
	}
	return nil
}

func isDrivePath(path string) bool {
	if len(path) < 2 || path[1] != ':' {
		return false
	}
	c := path[0] | 0x20
	return c >= 'a' && c <= 'z'
}

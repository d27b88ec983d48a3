// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"slices"
	"strings"
	"sync"

	"github.com/albertocavalcante/antsy/internal/errors"
)

// ErrRegistered is returned when a generator name is already taken.
var ErrRegistered = errors.New("generator already registered")

// entry pairs a generator with the metadata captured when it registered,
// so listing never calls back into the generators.
type entry struct {
	meta Metadata
	gen  Generator
}

var (
	mu      sync.RWMutex
	entries []entry // sorted by name
)

// Register adds g under its metadata name. Names must be non-empty and
// unique; a taken name yields ErrRegistered.
func Register(g Generator) error {
	meta := g.Metadata()
	if strings.TrimSpace(meta.Name) == "" {
		return errors.InvalidConfigf("generator has no name")
	}

	mu.Lock()
	defer mu.Unlock()
	i, found := slices.BinarySearchFunc(entries, meta.Name, byName)
	if found {
		return errors.Wrapf(ErrRegistered, "%q", meta.Name)
	}
	entries = slices.Insert(entries, i, entry{meta: meta, gen: g})
	return nil
}

// Lookup returns the generator registered under name. The error for an
// unknown name carries a hint listing the registered ones.
func Lookup(name string) (Generator, error) {
	mu.RLock()
	defer mu.RUnlock()
	if i, found := slices.BinarySearchFunc(entries, name, byName); found {
		return entries[i].gen, nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.meta.Name
	}
	return nil, errors.WithHintf(errors.Wrapf(errors.ErrUnknownGenerator, "%q", name),
		"available generators: %v", names)
}

// Catalog returns the metadata of every registered generator, sorted by name.
func Catalog() []Metadata {
	mu.RLock()
	defer mu.RUnlock()
	metas := make([]Metadata, len(entries))
	for i, e := range entries {
		metas[i] = e.meta
	}
	return metas
}

// Reset clears the registry (for testing).
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	entries = nil
}

func byName(e entry, name string) int {
	return strings.Compare(e.meta.Name, name)
}

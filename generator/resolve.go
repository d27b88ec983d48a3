// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import (
	"slices"

	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/model"
)

// ResolveDeps expands a type filter to include every type reachable from it
// through superclasses, enclosing types and member signatures. Returns nil if
// filter is nil (meaning "all types").
func ResolveDeps(m *model.Model, filter map[string]bool) map[string]bool {
	if filter == nil {
		return nil
	}

	expanded := make(map[string]bool)
	for name := range filter {
		collectDeps(m, name, expanded)
	}
	return expanded
}

// collectDeps recursively collects all types referenced by typeName.
func collectDeps(m *model.Model, typeName string, visited map[string]bool) {
	if typeName == "" || visited[typeName] {
		return
	}
	t, ok := m.Lookup(typeName)
	if !ok {
		return
	}
	visited[typeName] = true

	collectDeps(m, t.Superclass, visited)
	collectDeps(m, t.Enclosing, visited)
	for _, c := range t.Constructors {
		for _, p := range c.Params {
			collectTypeRefs(m, p.Type, visited)
		}
	}
	for _, meth := range t.Methods {
		collectTypeRefs(m, meth.Returns, visited)
		for _, p := range meth.Params {
			collectTypeRefs(m, p.Type, visited)
		}
	}
}

// collectTypeRefs collects the declared types a reference mentions.
func collectTypeRefs(m *model.Model, r model.TypeRef, visited map[string]bool) {
	switch r.Kind {
	case model.RefDeclared:
		collectDeps(m, r.Name, visited)
	case model.RefArray:
		if r.Element != nil {
			collectTypeRefs(m, *r.Element, visited)
		}
	}
}

// Restrict returns a copy of m holding the named types and their
// dependencies. Only the named types stay generation roots; dependencies are
// kept for resolution. Names may be qualified or unambiguous simple names.
// A nil or empty list returns m itself.
func Restrict(m *model.Model, names []string) (*model.Model, error) {
	if len(names) == 0 {
		return m, nil
	}

	filter := make(map[string]bool, len(names))
	for _, name := range names {
		qualified, err := qualify(m, name)
		if err != nil {
			return nil, err
		}
		filter[qualified] = true
	}
	keep := ResolveDeps(m, filter)

	var types []*model.Type
	for _, t := range m.Types {
		if !keep[t.Name] {
			continue
		}
		c := *t
		c.External = t.External || !filter[t.Name]
		c.Methods = make([]*model.Method, len(t.Methods))
		for i, meth := range t.Methods {
			mc := *meth
			c.Methods[i] = &mc
		}
		types = append(types, &c)
	}

	out, err := model.New(types...)
	if err != nil {
		return nil, err
	}
	out.Version = m.Version
	return out, nil
}

func qualify(m *model.Model, name string) (string, error) {
	if _, ok := m.Lookup(name); ok {
		return name, nil
	}
	var matches []string
	for _, t := range m.Types {
		if t.SimpleName() == name {
			matches = append(matches, t.Name)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", errors.InvalidConfigf("type %q is not in the model", name)
	default:
		slices.Sort(matches)
		return "", errors.WithHintf(errors.InvalidConfigf("type name %q is ambiguous", name),
			"use one of %v", matches)
	}
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/antsy/internal/errors"
)

// New builds an indexed model from types.
func New(types ...*Type) (*Model, error) {
	m := &Model{Types: types}
	if err := m.Index(); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeJSON parses a JSON model and indexes it.
func DecodeJSON(data []byte) (*Model, error) {
	var m Model
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&m); err != nil {
		return nil, errors.Wrap(errors.InvalidModelf("decode json: %v", err), "parse model")
	}
	if err := m.Index(); err != nil {
		return nil, err
	}
	return &m, nil
}

// DecodeYAML parses a YAML model and indexes it.
func DecodeYAML(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.InvalidModelf("decode yaml: %v", err), "parse model")
	}
	if err := m.Index(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Index validates the model, fills derived fields and builds the
// qualified-name index. Decoders call it; models built by hand must too.
func (m *Model) Index() error {
	m.index = make(map[string]*Type, len(m.Types))
	for i, t := range m.Types {
		if t == nil || t.Name == "" {
			return errors.InvalidModelf("type #%d has no name", i)
		}
		if _, dup := m.index[t.Name]; dup {
			return errors.InvalidModelf("duplicate type %s", t.Name)
		}
		m.index[t.Name] = t
	}

	for _, t := range m.Types {
		if t.Kind == "" {
			t.Kind = KindClass
		}
		if t.Package == "" {
			t.Package = m.packageOf(t, len(m.Types))
		}
		for j, meth := range t.Methods {
			if meth == nil || meth.Name == "" {
				return errors.InvalidModelf("%s: method #%d has no name", t.Name, j)
			}
			meth.owner = t
		}
	}
	return nil
}

// packageOf derives the package of a type that did not declare one.
// depth bounds the walk over malformed enclosing cycles.
func (m *Model) packageOf(t *Type, depth int) string {
	if t.Package != "" {
		return t.Package
	}
	if t.Enclosing != "" && depth > 0 {
		if enc, ok := m.index[t.Enclosing]; ok {
			return m.packageOf(enc, depth-1)
		}
		qualifier, _ := splitLast(t.Enclosing)
		return qualifier
	}
	qualifier, _ := splitLast(t.Name)
	return qualifier
}

func splitLast(name string) (string, string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i], name[i+1:]
		}
	}
	return "", name
}

// Lookup returns the type with the given qualified name.
func (m *Model) Lookup(name string) (*Type, bool) {
	if m == nil || name == "" {
		return nil, false
	}
	if m.index == nil {
		m.index = make(map[string]*Type, len(m.Types))
		for _, t := range m.Types {
			if t != nil {
				m.index[t.Name] = t
			}
		}
	}
	t, ok := m.index[name]
	return t, ok
}

// Resolve returns the type a declared reference points to, or nil.
func (m *Model) Resolve(ref TypeRef) *Type {
	if !ref.IsDeclared() {
		return nil
	}
	t, _ := m.Lookup(ref.Name)
	return t
}

// SuperclassOf returns the resolved superclass of t, or nil.
func (m *Model) SuperclassOf(t *Type) *Type {
	if t == nil {
		return nil
	}
	s, _ := m.Lookup(t.Superclass)
	return s
}

// EnclosingOf returns the resolved enclosing type of t, or nil.
func (m *Model) EnclosingOf(t *Type) *Type {
	if t == nil {
		return nil
	}
	e, _ := m.Lookup(t.Enclosing)
	return e
}

// Roots returns the non-external types in model order.
func (m *Model) Roots() []*Type {
	roots := make([]*Type, 0, len(m.Types))
	for _, t := range m.Types {
		if !t.External {
			roots = append(roots, t)
		}
	}
	return roots
}

// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package classify

import "github.com/albertocavalcante/antsy/model"

// Predicates answers type questions against one model and framework.
type Predicates struct {
	Model     *model.Model
	Framework Framework
}

// NewPredicates returns predicates over m.
func NewPredicates(m *model.Model, fw Framework) *Predicates {
	return &Predicates{Model: m, Framework: fw}
}

// IsFrameworkType reports whether ref is a declared type inside the framework
// namespace. Primitives, void, arrays and type variables never are.
func (p *Predicates) IsFrameworkType(ref model.TypeRef) bool {
	return ref.IsDeclared() && p.Framework.Contains(ref.Name)
}

// IsTaskLike reports whether t is the base task type or descends from it.
// A superclass named like the base task counts even when the model does not
// carry the base task itself.
func (p *Predicates) IsTaskLike(t *model.Type) bool {
	visited := make(map[string]bool)
	for t != nil && !visited[t.Name] {
		if t.Name == p.Framework.Task || t.Superclass == p.Framework.Task {
			return true
		}
		visited[t.Name] = true
		t = p.Model.SuperclassOf(t)
	}
	return false
}

// IsConstructable reports whether a facade may instantiate t with a public
// no-argument constructor.
func (p *Predicates) IsConstructable(t *model.Type) bool {
	switch {
	case t == nil:
		return false
	case t.Kind != model.KindClass && t.Kind != "":
		return false
	case t.Is(model.Abstract):
		return false
	case t.IsNested() && !t.Is(model.Static):
		return false
	}
	if len(t.Constructors) == 0 {
		return true
	}
	for _, c := range t.Constructors {
		if c.Modifiers.Has(model.Public) && len(c.Params) == 0 {
			return true
		}
	}
	return false
}

// IsRoot reports whether t is a task that gets a catalog entry and a task facade.
func (p *Predicates) IsRoot(t *model.Type) bool {
	return t != nil &&
		!t.External &&
		t.Is(model.Public) &&
		t.Kind.IsClass() &&
		!t.Is(model.Abstract) &&
		!t.IsNested() &&
		p.Framework.Contains(t.Name) &&
		!t.IsDeprecated() &&
		p.IsTaskLike(t) &&
		p.IsConstructable(t)
}

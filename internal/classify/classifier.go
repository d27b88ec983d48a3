// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package classify

import (
	"strings"

	"github.com/albertocavalcante/antsy/internal/naming"
	"github.com/albertocavalcante/antsy/model"
)

// Classification is the outcome of classifying one method.
type Classification struct {
	Kind   Kind
	Method *model.Method

	// Name is the fluent member name. Depending on Kind it is derived
	// from the method name or the method name itself.
	Name string

	// Param is the resolved parameter type for the add rules that wrap it.
	Param *model.Type

	// ParamTaskLike is set when Param is task-like, whose facade takes no type argument.
	ParamTaskLike bool

	// Dependency is the type whose facade the member refers to, or nil.
	Dependency *model.Type

	// Reason explains an Ignore.
	Reason string
}

type rule struct {
	kind  Kind
	apply func(*Classifier, *model.Method) (Classification, bool)
}

// chain is tried in order; the first accepting rule wins.
var chain = []rule{
	{Ignore, (*Classifier).ignore},
	{Create, (*Classifier).create},
	{AddConfigured, (*Classifier).addConfigured},
	{AddNonFramework, (*Classifier).addNonFramework},
	{AddNew, (*Classifier).addNew},
	{AddFramework, (*Classifier).addFramework},
	{Set, (*Classifier).set},
}

// ignorePrefixes name accessors and lifecycle methods that never get a fluent member.
var ignorePrefixes = []string{"get", "is", "execute", "handle", "log"}

// Classifier runs the rule chain.
type Classifier struct {
	*Predicates
}

// New returns a classifier over m.
func New(m *model.Model, fw Framework) *Classifier {
	return &Classifier{Predicates: NewPredicates(m, fw)}
}

// Classify returns the first rule accepting m, or Unhandled.
func (c *Classifier) Classify(m *model.Method) Classification {
	for _, r := range chain {
		if cl, ok := r.apply(c, m); ok {
			cl.Kind = r.kind
			cl.Method = m
			return cl
		}
	}
	return Classification{Kind: Unhandled, Method: m, Name: m.Name}
}

func (c *Classifier) ignore(m *model.Method) (Classification, bool) {
	var reason string
	switch {
	case !m.Is(model.Public):
		reason = "not public"
	case m.Is(model.Abstract):
		reason = "abstract"
	case m.Is(model.Static):
		reason = "static"
	case len(m.Params) == 0 && m.Returns.IsVoid():
		reason = "no parameters and no result"
	case !m.Returns.IsVoid() && !c.IsFrameworkType(m.Returns):
		reason = "returns a non-framework type"
	case c.isHook(m):
		reason = "framework hook"
	default:
		if _, ok := naming.Derive(m.Name, "", ignorePrefixes...); ok {
			reason = "accessor or lifecycle method"
		}
	}
	if reason == "" {
		return Classification{}, false
	}
	return Classification{Name: m.Name, Reason: reason}, true
}

// isHook matches setters the framework itself calls while configuring elements.
func (c *Classifier) isHook(m *model.Method) bool {
	sig := m.Signature()
	fw := c.Framework
	return strings.HasSuffix(sig, "("+fw.Location+")") ||
		strings.HasSuffix(sig, "("+fw.Project+")") ||
		strings.HasSuffix(sig, "bindToOwner("+fw.Task+")")
}

func (c *Classifier) create(m *model.Method) (Classification, bool) {
	name, ok := naming.Derive(m.Name, "with", "create")
	if !ok || len(m.Params) != 0 || !c.IsFrameworkType(m.Returns) {
		return Classification{}, false
	}
	ret := c.Model.Resolve(m.Returns)
	if ret == nil || c.IsTaskLike(ret) {
		return Classification{}, false
	}
	return Classification{Name: name, Dependency: ret}, true
}

func (c *Classifier) addConfigured(m *model.Method) (Classification, bool) {
	name, ok := naming.Derive(m.Name, "", "addConfigured")
	if !ok || len(m.Params) != 1 {
		return Classification{}, false
	}
	param := c.Model.Resolve(m.Params[0].Type)
	if param == nil || c.IsTaskLike(param) || !c.IsConstructable(param) {
		return Classification{}, false
	}
	return Classification{Name: name, Param: param, Dependency: param}, true
}

func (c *Classifier) addNonFramework(m *model.Method) (Classification, bool) {
	if _, ok := naming.Derive(m.Name, "", "add", "append"); !ok {
		return Classification{}, false
	}
	if !m.Returns.IsVoid() || len(m.Params) != 1 || c.IsFrameworkType(m.Params[0].Type) {
		return Classification{}, false
	}
	return Classification{Name: m.Name}, true
}

func (c *Classifier) addNew(m *model.Method) (Classification, bool) {
	name, ok := naming.Derive(m.Name, "with", "add")
	if !ok || name == "" || len(m.Params) != 1 {
		return Classification{}, false
	}
	ref := m.Params[0].Type
	if !c.IsFrameworkType(ref) {
		return Classification{}, false
	}
	param := c.Model.Resolve(ref)
	if c.IsTaskLike(param) || !c.IsConstructable(param) {
		return Classification{}, false
	}
	return Classification{Name: name, Param: param, Dependency: param}, true
}

func (c *Classifier) addFramework(m *model.Method) (Classification, bool) {
	if _, ok := naming.Derive(m.Name, "", "add", "append"); !ok {
		return Classification{}, false
	}
	if !m.Returns.IsVoid() || len(m.Params) != 1 {
		return Classification{}, false
	}
	ref := m.Params[0].Type
	if !c.IsFrameworkType(ref) {
		return Classification{}, false
	}
	param := c.Model.Resolve(ref)
	if !c.IsConstructable(param) {
		return Classification{}, false
	}
	return Classification{
		Name:          m.Name,
		Param:         param,
		ParamTaskLike: c.IsTaskLike(param),
		Dependency:    param,
	}, true
}

func (c *Classifier) set(m *model.Method) (Classification, bool) {
	name, ok := naming.Derive(m.Name, "", "set")
	if !ok || !m.Returns.IsVoid() || len(m.Params) != 1 {
		return Classification{}, false
	}
	return Classification{Name: name}, true
}

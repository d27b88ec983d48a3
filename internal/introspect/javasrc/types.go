// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package javasrc

import (
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/albertocavalcante/antsy/model"
)

// javaLang lists the java.lang types that source code uses unqualified.
var javaLang = map[string]bool{
	"Object": true, "String": true, "Class": true, "Enum": true, "Record": true,
	"Boolean": true, "Byte": true, "Character": true, "Short": true, "Integer": true,
	"Long": true, "Float": true, "Double": true, "Number": true, "Void": true,
	"CharSequence": true, "Iterable": true, "Comparable": true, "Runnable": true,
	"Cloneable": true, "AutoCloseable": true, "Thread": true, "ClassLoader": true,
	"StringBuilder": true, "StringBuffer": true, "Math": true, "System": true,
	"Process": true, "Runtime": true, "Throwable": true, "Exception": true, "Error": true,
	"RuntimeException": true, "IllegalArgumentException": true, "IllegalStateException": true,
	"NullPointerException": true, "UnsupportedOperationException": true,
	"InterruptedException": true, "ClassNotFoundException": true,
	"Deprecated": true, "Override": true, "SuppressWarnings": true, "FunctionalInterface": true,
}

func isType(n *sitter.Node) bool {
	switch n.Type() {
	case "void_type", "integral_type", "floating_point_type", "boolean_type",
		"type_identifier", "scoped_type_identifier", "generic_type", "array_type", "annotated_type":
		return true
	}
	return false
}

// typeRef converts a type node seen inside d. vars are the method type variables.
func (l *loader) typeRef(d *decl, vars []string, n *sitter.Node) model.TypeRef {
	if n == nil {
		return model.Void()
	}
	src := d.file.src
	switch n.Type() {
	case "void_type":
		return model.Void()
	case "integral_type", "floating_point_type", "boolean_type":
		return model.Primitive(n.Content(src))
	case "type_identifier", "scoped_type_identifier":
		return l.resolve(d, vars, scopedName(n, src))
	case "generic_type":
		return l.typeRef(d, vars, firstType(n))
	case "array_type":
		return arrayOf(l.typeRef(d, vars, n.ChildByFieldName("element")), dims(n.ChildByFieldName("dimensions"), src))
	case "annotated_type":
		var inner *sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); isType(c) {
				inner = c
			}
		}
		return l.typeRef(d, vars, inner)
	default:
		l.log.Debugw("unsupported type node", "node", n.Type(), "file", d.file.path, "line", line(n))
		return model.Declared("java.lang.Object")
	}
}

// scopedName returns the dotted name of a possibly scoped or parameterized
// type identifier, without type arguments or annotations.
func scopedName(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "type_identifier":
		return n.Content(src)
	case "generic_type":
		if c := firstType(n); c != nil {
			return scopedName(c, src)
		}
		return ""
	}
	var parts []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		switch c.Type() {
		case "type_identifier", "scoped_type_identifier", "generic_type":
			parts = append(parts, scopedName(c, src))
		}
	}
	return strings.Join(parts, ".")
}

// resolve qualifies a type name as written in d's file.
func (l *loader) resolve(d *decl, vars []string, name string) model.TypeRef {
	head, rest, scoped := strings.Cut(name, ".")
	if !scoped {
		if l.isTypeVar(d, vars, name) {
			return model.TypeVar(name)
		}
		if q, ok := l.lookup(d, name); ok {
			return model.Declared(q)
		}
		if javaLang[name] {
			return model.Declared("java.lang." + name)
		}
		if d.file.pkg == "" {
			return model.Declared(name)
		}
		return model.Declared(d.file.pkg + "." + name)
	}

	// Outer.Inner resolves Outer first; otherwise the name is already qualified.
	if q, ok := l.lookup(d, head); ok {
		return model.Declared(q + "." + rest)
	}
	if javaLang[head] {
		return model.Declared("java.lang." + name)
	}
	return model.Declared(name)
}

func (l *loader) isTypeVar(d *decl, vars []string, name string) bool {
	if slices.Contains(vars, name) {
		return true
	}
	for e := d; e != nil; e = e.enclosing {
		if slices.Contains(e.typeParams, name) {
			return true
		}
	}
	return false
}

// lookup finds a simple name among the types visible from d.
func (l *loader) lookup(d *decl, simple string) (string, bool) {
	for e := d; e != nil; e = e.enclosing {
		if e.simple == simple {
			return e.name, true
		}
		if q, ok := e.nested[simple]; ok {
			return q, true
		}
		if q, ok := l.inherited(e, simple); ok {
			return q, true
		}
	}

	f := d.file
	if q, ok := f.imports[simple]; ok {
		return q, true
	}
	if q, ok := l.packages[f.pkg][simple]; ok {
		return q, true
	}
	for _, p := range f.onDemand {
		if q, ok := l.packages[p][simple]; ok {
			return q, true
		}
		if owner, ok := l.byName[p]; ok {
			if q, ok := owner.nested[simple]; ok {
				return q, true
			}
		}
	}
	return "", false
}

// inherited finds a member type declared by a parsed superclass of d.
func (l *loader) inherited(d *decl, simple string) (string, bool) {
	seen := map[string]bool{d.name: true}
	for cur := d; ; {
		sc := cur.node.ChildByFieldName("superclass")
		if sc == nil {
			return "", false
		}
		n := firstType(sc)
		if n == nil {
			return "", false
		}
		name := scopedName(n, cur.file.src)
		q, ok := l.lookupDirect(cur, name)
		if !ok || seen[q] {
			return "", false
		}
		seen[q] = true
		next, ok := l.byName[q]
		if !ok {
			return "", false
		}
		if q, ok := next.nested[simple]; ok {
			return q, true
		}
		cur = next
	}
}

// lookupDirect resolves a superclass name without consulting inherited
// member types, which would recurse.
func (l *loader) lookupDirect(d *decl, name string) (string, bool) {
	head, rest, scoped := strings.Cut(name, ".")
	f := d.file
	var q string
	var ok bool
	for e := d.enclosing; e != nil && !ok; e = e.enclosing {
		if e.simple == head {
			q, ok = e.name, true
		} else {
			q, ok = e.nested[head]
		}
	}
	if !ok {
		q, ok = f.imports[head]
	}
	if !ok {
		q, ok = l.packages[f.pkg][head]
	}
	for _, p := range f.onDemand {
		if ok {
			break
		}
		q, ok = l.packages[p][head]
	}
	if !ok {
		if scoped {
			_, known := l.byName[name]
			return name, known
		}
		return "", false
	}
	if scoped {
		q += "." + rest
	}
	return q, true
}

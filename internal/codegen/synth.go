// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"fmt"
	"strings"

	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/internal/naming"
	"github.com/albertocavalcante/antsy/model"
)

// namer maps reflected types to facade class names.
type namer struct {
	model   *model.Model
	fw      classify.Framework
	base    string
	runtime string
}

// name returns the qualified facade name of t. Nested types are flattened
// into their enclosing facade's name with an underscore, and the framework
// root package is replaced by the output package.
func (n *namer) name(t *model.Type) string {
	return n.nameDepth(t, len(n.model.Types)+1)
}

func (n *namer) nameDepth(t *model.Type, depth int) string {
	if t.IsNested() {
		if enc := n.model.EnclosingOf(t); enc != nil && depth > 0 {
			return n.nameDepth(enc, depth-1) + "_" + t.SimpleName()
		}
		return n.detached(t)
	}
	if t.Name == n.fw.Task {
		return n.runtime + ".AntTask<" + t.Name + ">"
	}
	return qualify(naming.RebasePackage(t.Package, n.fw.Root, n.base), t.SimpleName())
}

// detached names a nested type whose enclosing type is not in the model.
func (n *namer) detached(t *model.Type) string {
	pkg, outer := t.Package, t.Enclosing
	if pkg != "" && strings.HasPrefix(outer, pkg+".") {
		outer = outer[len(pkg)+1:]
	} else {
		pkg, outer = naming.SplitQualified(outer)
	}
	simple := strings.ReplaceAll(outer, ".", "_") + "_" + t.SimpleName()
	return qualify(naming.RebasePackage(pkg, n.fw.Root, n.base), simple)
}

func (n *namer) facade(t *model.Type, task bool) Facade {
	name := n.name(t)
	return Facade{Type: t, Name: name, Path: unitPath(name), Task: task}
}

func qualify(pkg, simple string) string {
	if pkg == "" {
		return simple
	}
	return pkg + "." + simple
}

func unitPath(qualified string) string {
	pkg, simple := naming.SplitQualified(qualified)
	if pkg == "" {
		return simple + ".java"
	}
	return naming.PackagePath(pkg) + "/" + simple + ".java"
}

// taskFacade renders the facade of a catalogued task type.
func (g *Generator) taskFacade(f Facade) []byte {
	pkg, simple := naming.SplitQualified(f.Name)
	q := f.Type.Name

	w := g.newUnit(pkg)
	w.doc(f.Type.Documentation)
	w.linef("public class %s extends %s.AntTask<%s> {", simple, g.config.RuntimePackage, q)
	w.indent++
	w.linef("public %s(String name, %s project) {super(name, %s.class, project);}",
		simple, g.config.Framework.Project, q)
	g.walk(w, f, f.Name)
	w.indent--
	w.line("}")
	return w.bytes()
}

// elementFacade renders the generic facade of a queued element type.
func (g *Generator) elementFacade(f Facade) []byte {
	pkg, simple := naming.SplitQualified(f.Name)
	q := f.Type.Name

	w := g.newUnit(pkg)
	w.doc(f.Type.Documentation)
	w.linef("public class %s<P> extends %s.AntElement<%s, P> {", simple, g.config.RuntimePackage, q)
	w.indent++
	if g.classifier.IsConstructable(f.Type) {
		w.linef("public static %[1]s<Void> create() {return new %[1]s<Void>(new %[2]s(), null);}", simple, q)
	}
	w.linef("public %s(%s element, P parent) {super(element, parent);}", simple, q)
	g.walk(w, f, f.Name+"<P>")
	w.indent--
	w.line("}")
	return w.bytes()
}

// catalog accumulates the task constants interface.
type catalog struct {
	path string
	w    *writer
	used map[string]int
}

func (g *Generator) newCatalog() *catalog {
	pkg, simple := naming.SplitQualified(g.config.Catalog)
	c := &catalog{
		path: unitPath(g.config.Catalog),
		w:    g.newUnit(pkg),
		used: make(map[string]int),
	}
	c.w.doc("Class constants for Ant Task facades")
	c.w.linef("public interface %s {", simple)
	c.w.indent++
	return c
}

// add appends the constant for task t whose facade is named facade.
// Tasks sharing a simple name get numbered constants after the first.
func (c *catalog) add(t *model.Type, facade string) {
	constant := naming.CatalogConstant(t.SimpleName())
	if n := c.used[constant]; n > 0 {
		c.used[constant]++
		constant = fmt.Sprintf("%s_%d", constant, n+1)
	} else {
		c.used[constant] = 1
	}
	c.w.doc(t.Documentation)
	c.w.linef("static Class<%[1]s> %[2]s = %[1]s.class;", facade, constant)
}

func (c *catalog) unit() (string, []byte) {
	c.w.indent--
	c.w.line("}")
	return c.path, c.w.bytes()
}

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

	"github.com/albertocavalcante/antsy/internal/naming"
	"github.com/albertocavalcante/antsy/model"
)

// build converts a declaration into a model type.
func (l *loader) build(d *decl) *model.Type {
	src := d.file.src
	mods, annotations := modifiers(d.node, src)

	t := &model.Type{
		Name:          d.name,
		Package:       d.file.pkg,
		Kind:          d.kind,
		Modifiers:     mods,
		Annotations:   annotations,
		Documentation: javadoc(d.node, src),
		External:      !naming.InNamespace(d.name, l.framework),
		Line:          line(d.node),
	}
	if d.enclosing != nil {
		t.Enclosing = d.enclosing.name
		if d.enclosing.iface {
			t.Modifiers = with(t.Modifiers, model.Public)
		}
		if d.enclosing.iface || d.kind != model.KindClass || d.node.Type() == "record_declaration" {
			t.Modifiers = with(t.Modifiers, model.Static)
		}
	}
	if sc := d.node.ChildByFieldName("superclass"); sc != nil {
		if n := firstType(sc); n != nil {
			ref := l.typeRef(d, nil, n)
			if ref.IsDeclared() {
				t.Superclass = ref.Name
			}
		}
	}

	for _, m := range members(d.node.ChildByFieldName("body")) {
		switch m.Type() {
		case "constructor_declaration":
			t.Constructors = append(t.Constructors, l.constructor(d, m))
		case "method_declaration", "annotation_type_element_declaration":
			t.Methods = append(t.Methods, l.method(d, m))
		}
	}
	if d.node.Type() == "record_declaration" {
		l.addCanonical(d, t)
	}
	return t
}

// addCanonical adds the implicit canonical constructor of a record: one
// parameter per component, with the record's own access. A constructor
// declared with the same parameter types replaces it.
func (l *loader) addCanonical(d *decl, t *model.Type) {
	var vars []string
	if tp := d.node.ChildByFieldName("type_parameters"); tp != nil {
		vars = typeParamNames(tp, d.file.src)
	}
	params := l.params(d, vars, d.node.ChildByFieldName("parameters"))
	for _, c := range t.Constructors {
		if sameTypes(c.Params, params) {
			return
		}
	}
	var mods model.Modifiers
	for _, m := range []model.Modifier{model.Public, model.Protected, model.Private} {
		if t.Is(m) {
			mods = append(mods, m)
		}
	}
	canonical := model.Constructor{Modifiers: mods, Params: params, Line: t.Line}
	t.Constructors = append([]model.Constructor{canonical}, t.Constructors...)
}

func sameTypes(a, b []model.Param) bool {
	return slices.EqualFunc(a, b, func(x, y model.Param) bool {
		return x.Type.String() == y.Type.String()
	})
}

func (l *loader) constructor(d *decl, n *sitter.Node) model.Constructor {
	mods, _ := modifiers(n, d.file.src)
	var vars []string
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		vars = typeParamNames(tp, d.file.src)
	}
	return model.Constructor{
		Modifiers: mods,
		Params:    l.params(d, vars, n.ChildByFieldName("parameters")),
		Line:      line(n),
	}
}

func (l *loader) method(d *decl, n *sitter.Node) *model.Method {
	src := d.file.src
	mods, annotations := modifiers(n, src)

	var vars []string
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		vars = typeParamNames(tp, src)
	}

	m := &model.Method{
		Name:          n.ChildByFieldName("name").Content(src),
		Modifiers:     mods,
		Annotations:   annotations,
		Documentation: javadoc(n, src),
		Params:        l.params(d, vars, n.ChildByFieldName("parameters")),
		Line:          line(n),
	}
	if rt := n.ChildByFieldName("type"); rt != nil {
		m.Returns = arrayOf(l.typeRef(d, vars, rt), dims(n.ChildByFieldName("dimensions"), src))
	}
	if th := childOfType(n, "throws"); th != nil {
		for i := 0; i < int(th.NamedChildCount()); i++ {
			if ref := l.typeRef(d, vars, th.NamedChild(i)); ref.IsDeclared() {
				m.Throws = append(m.Throws, ref.Name)
			}
		}
	}

	if d.iface {
		if !m.Is(model.Private) {
			m.Modifiers = with(m.Modifiers, model.Public)
		}
		if n.ChildByFieldName("body") == nil && !m.Is(model.Static) {
			m.Modifiers = with(m.Modifiers, model.Abstract)
		}
	}
	return m
}

func (l *loader) params(d *decl, vars []string, list *sitter.Node) []model.Param {
	if list == nil {
		return nil
	}
	src := d.file.src
	var out []model.Param
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		switch p.Type() {
		case "formal_parameter":
			ref := l.typeRef(d, vars, p.ChildByFieldName("type"))
			out = append(out, model.Param{
				Name: contentOf(p.ChildByFieldName("name"), src),
				Type: arrayOf(ref, dims(p.ChildByFieldName("dimensions"), src)),
			})
		case "spread_parameter":
			var param model.Param
			for j := 0; j < int(p.NamedChildCount()); j++ {
				c := p.NamedChild(j)
				switch {
				case c.Type() == "variable_declarator":
					param.Name = contentOf(c.ChildByFieldName("name"), src)
				case isType(c) && param.Type.IsVoid():
					param.Type = model.ArrayOf(l.typeRef(d, vars, c))
				}
			}
			out = append(out, param)
		}
	}
	return out
}

// modifiers returns the keyword modifiers and annotation names of a declaration.
func modifiers(n *sitter.Node, src []byte) (model.Modifiers, []string) {
	mn := childOfType(n, "modifiers")
	if mn == nil {
		return nil, nil
	}
	var mods model.Modifiers
	var annotations []string
	for i := 0; i < int(mn.ChildCount()); i++ {
		c := mn.Child(i)
		switch {
		case c.Type() == "marker_annotation" || c.Type() == "annotation":
			annotations = append(annotations, contentOf(c.ChildByFieldName("name"), src))
		case !c.IsNamed():
			mods = append(mods, model.Modifier(c.Type()))
		}
	}
	return mods, annotations
}

// javadoc returns the cleaned text of the doc comment directly before n.
func javadoc(n *sitter.Node, src []byte) string {
	prev := n.PrevNamedSibling()
	if prev == nil || (prev.Type() != "block_comment" && prev.Type() != "comment") {
		return ""
	}
	text := prev.Content(src)
	if !strings.HasPrefix(text, "/**") || text == "/**/" {
		return ""
	}
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")

	var lines []string
	for l := range strings.SplitSeq(text, "\n") {
		l = strings.TrimSpace(l)
		l = strings.TrimPrefix(l, "*")
		l = strings.TrimPrefix(l, " ")
		lines = append(lines, strings.TrimRight(l, " \t\r"))
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func firstType(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); isType(c) {
			return c
		}
	}
	return nil
}

func contentOf(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return n.Content(src)
}

// dims counts the brackets of a dimensions node.
func dims(n *sitter.Node, src []byte) int {
	if n == nil {
		return 0
	}
	return strings.Count(n.Content(src), "[")
}

func arrayOf(ref model.TypeRef, n int) model.TypeRef {
	for range n {
		ref = model.ArrayOf(ref)
	}
	return ref
}

func with(mods model.Modifiers, m model.Modifier) model.Modifiers {
	if slices.Contains(mods, m) {
		return mods
	}
	return append(mods, m)
}

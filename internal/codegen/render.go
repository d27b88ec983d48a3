// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/model"
)

const (
	indentUnit = "    "

	// cont starts a continuation line one level deeper than its member.
	cont = "\n" + indentUnit

	shimOpen  = "try {"
	shimClose = "} catch (Exception e) {throw new RuntimeException(e);}"
)

// writer accumulates Java source lines at an indentation level.
type writer struct {
	buf    bytes.Buffer
	indent int
}

// newUnit starts a compilation unit in package pkg.
func (g *Generator) newUnit(pkg string) *writer {
	w := &writer{}
	for _, h := range g.config.Header {
		w.line("// " + h)
	}
	if pkg != "" {
		w.linef("package %s;", pkg)
	}
	w.line("")
	return w
}

// line writes s at the current indentation. Embedded newlines keep it.
func (w *writer) line(s string) {
	if s == "" {
		w.buf.WriteByte('\n')
		return
	}
	align := strings.Repeat(indentUnit, w.indent)
	w.buf.WriteString(align)
	w.buf.WriteString(strings.ReplaceAll(s, "\n", "\n"+align))
	w.buf.WriteByte('\n')
}

func (w *writer) linef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...))
}

// doc writes text as a javadoc block. Blank lines are dropped and nothing is
// written for empty text.
func (w *writer) doc(text string) {
	var lines []string
	for l := range strings.SplitSeq(strings.ReplaceAll(text, "\r", "\n"), "\n") {
		l = strings.TrimRight(l, " \t")
		if strings.TrimSpace(l) == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(l, "*/", "*&#47;"))
	}
	if len(lines) == 0 {
		return
	}
	w.line("/**")
	for _, l := range lines {
		w.line(" * " + l)
	}
	w.line(" */")
}

func (w *writer) bytes() []byte {
	return w.buf.Bytes()
}

// member renders one classified method. container is the facade type as
// written inside its own body, e.g. "a.b.Echo" or "a.b.Path<P>".
func (g *Generator) member(w *writer, container string, cl classify.Classification) {
	m := cl.Method
	switch cl.Kind {
	case classify.Ignore:
		w.linef("//IGNORE: %s - %s", m.Signature(), m.Returns)
		return
	case classify.Unhandled:
		w.linef("// unhandled: %s - %s", m.Signature(), m.Returns)
		return
	}

	try, catch := "", ""
	if m.MayThrow() {
		try, catch = shimOpen, shimClose
	}

	w.doc(m.Documentation)
	switch cl.Kind {
	case classify.Create:
		w.linef("public %[1]s<%[2]s> %[3]s() //CREATE"+cont+
			"{%[5]sreturn new %[1]s<%[2]s>(is().%[4]s(), this);%[6]s}",
			g.names.name(cl.Dependency), container, cl.Name, m.Name, try, catch)

	case classify.AddConfigured:
		plain, _, _ := strings.Cut(container, "<")
		w.linef("public %[1]s<%[2]s> %[3]s() //ADD_CONFIGURED"+cont+
			"{return new %[1]s<%[2]s>(new %[4]s(), this) {"+cont+indentUnit+
			"public %[2]s end() {%[6]s%[5]s.this.is().%[7]s(is()); return super.end();%[8]s}};}",
			g.names.name(cl.Param), container, cl.Name, cl.Param.Name, plain, try, m.Name, catch)

	case classify.AddNonFramework:
		p := m.Params[0]
		w.linef("public %[1]s %[2]s(%[3]s %[4]s) //ADD_NON_ANT"+cont+
			"{%[5]sis().%[2]s(%[4]s); return this;%[6]s}",
			container, m.Name, javaType(p.Type), paramName(p), try, catch)

	case classify.AddNew:
		w.linef("public %[1]s<%[2]s> %[3]s() //ADD_NEW"+cont+
			"{%[4]s _obj_ = new %[4]s(); %[5]sis().%[6]s(_obj_);%[7]s return new %[1]s<%[2]s>(_obj_, this);}",
			g.names.name(cl.Param), container, cl.Name, cl.Param.Name, try, m.Name, catch)

	case classify.AddFramework:
		wildcard := "<?>"
		if cl.ParamTaskLike {
			wildcard = ""
		}
		w.linef("public %[1]s %[2]s(%[3]s%[4]s %[5]s) //ADD_ANT"+cont+
			"{%[6]sis().%[2]s(%[5]s.is()); return this;%[7]s}",
			container, m.Name, g.names.name(cl.Param), wildcard, paramName(m.Params[0]), try, catch)

	case classify.Set:
		p := m.Params[0]
		w.linef("public %[1]s %[2]s(%[3]s %[4]s) //SET"+cont+
			"{%[5]sis().%[6]s(%[4]s); return this;%[7]s}",
			container, cl.Name, javaType(p.Type), paramName(p), try, m.Name, catch)
	}
}

func paramName(p model.Param) string {
	if p.Name == "" {
		return "p"
	}
	return p.Name
}

// javaType renders a parameter type. A top-level array becomes varargs and
// type variables are erased to Object.
func javaType(r model.TypeRef) string {
	if r.Kind == model.RefArray {
		return componentType(r.Element) + "..."
	}
	return componentType(&r)
}

func componentType(r *model.TypeRef) string {
	switch {
	case r == nil:
		return "java.lang.Object"
	case r.Kind == model.RefArray:
		return componentType(r.Element) + "[]"
	case r.Kind == model.RefTypeVar:
		return "java.lang.Object"
	default:
		return r.String()
	}
}

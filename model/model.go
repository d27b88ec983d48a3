// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package model defines the reflected class model the facade generator consumes.
//
// A Model is a read-only snapshot of Java type metadata: types with their
// modifiers, constructors, declared methods, superclass links and javadoc.
// It is produced by a reflection service (a JSON or YAML model file, or the
// javasrc introspector) and indexed by qualified name after loading.
//
// Type identity is the qualified name. Two descriptors with the same name are
// interchangeable, so references between types are stored as names and
// resolved through the Model.
package model

import (
	"slices"
	"strings"
)

// Model is a reflected class hierarchy.
type Model struct {
	// Version describes where the model came from.
	Version Metadata `json:"metaData" yaml:"metaData"`

	// Types lists every known type, nested types included.
	Types []*Type `json:"types" yaml:"types"`

	// Line is the source line number in the model file (for debugging).
	Line int `json:"line,omitempty" yaml:"-"`

	index map[string]*Type
}

// Metadata describes the origin of a model.
type Metadata struct {
	// Framework is the root namespace the model was extracted for (e.g., "org.apache.tools.ant").
	Framework string `json:"framework,omitempty" yaml:"framework,omitempty"`

	// Source is a free-form description of the reflection source.
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	Line int `json:"line,omitempty" yaml:"-"`
}

// Kind is the declaration kind of a type.
type Kind string

// Declaration kinds.
const (
	KindClass      Kind = "class"
	KindInterface  Kind = "interface"
	KindEnum       Kind = "enum"
	KindAnnotation Kind = "annotation"
)

// IsClass reports whether instances of the kind are classes (plain classes and enums).
func (k Kind) IsClass() bool {
	return k == KindClass || k == KindEnum || k == ""
}

// Modifier is a Java declaration modifier.
type Modifier string

// Modifiers recognized by the generator. Others are carried but ignored.
const (
	Public    Modifier = "public"
	Protected Modifier = "protected"
	Private   Modifier = "private"
	Abstract  Modifier = "abstract"
	Static    Modifier = "static"
	Final     Modifier = "final"
)

// Modifiers is a set of modifiers in declaration order.
type Modifiers []Modifier

// Has reports whether m is present.
func (ms Modifiers) Has(m Modifier) bool {
	return slices.Contains(ms, m)
}

// Type is a reflected class, interface, enum or annotation type.
type Type struct {
	// Name is the qualified name (e.g., "org.apache.tools.ant.taskdefs.Echo").
	// Nested types use dots: "org.apache.tools.ant.taskdefs.Echo.EchoLevel".
	Name string `json:"name" yaml:"name"`

	// Package is the enclosing package. Derived from Name or Enclosing when empty.
	Package string `json:"package,omitempty" yaml:"package,omitempty"`

	// Enclosing is the qualified name of the enclosing type, empty at package scope.
	Enclosing string `json:"enclosing,omitempty" yaml:"enclosing,omitempty"`

	// Kind is the declaration kind. Empty means class.
	Kind Kind `json:"kind,omitempty" yaml:"kind,omitempty"`

	Modifiers Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`

	// Superclass is the qualified name of the direct superclass, empty for none.
	Superclass string `json:"superclass,omitempty" yaml:"superclass,omitempty"`

	// Constructors lists declared constructors. Empty means only the implicit default one.
	Constructors []Constructor `json:"constructors,omitempty" yaml:"constructors,omitempty"`

	// Methods lists declared methods in declaration order.
	Methods []*Method `json:"methods,omitempty" yaml:"methods,omitempty"`

	// Annotations lists annotation type names as written (e.g., "Deprecated").
	Annotations []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`

	Deprecated    bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Documentation string `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	// External marks types known only for resolution (library or JDK types).
	// External types are never generation roots.
	External bool `json:"external,omitempty" yaml:"external,omitempty"`

	Line int `json:"line,omitempty" yaml:"-"`
}

// SimpleName returns the last segment of the qualified name.
func (t *Type) SimpleName() string {
	return t.Name[strings.LastIndexByte(t.Name, '.')+1:]
}

// IsNested reports whether the type is declared inside another type.
func (t *Type) IsNested() bool {
	return t.Enclosing != ""
}

// Is reports whether the type carries modifier m.
func (t *Type) Is(m Modifier) bool {
	return t.Modifiers.Has(m)
}

// Constructor is a declared constructor.
type Constructor struct {
	Modifiers Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Params    []Param   `json:"params,omitempty" yaml:"params,omitempty"`
	Line      int       `json:"line,omitempty" yaml:"-"`
}

// Method is a declared method.
type Method struct {
	Name    string  `json:"name" yaml:"name"`
	Params  []Param `json:"params,omitempty" yaml:"params,omitempty"`
	Returns TypeRef `json:"returns,omitempty" yaml:"returns,omitempty"`

	Modifiers Modifiers `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`

	// Throws lists declared exception types. Only emptiness matters to the generator.
	Throws []string `json:"throws,omitempty" yaml:"throws,omitempty"`

	Annotations   []string `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Deprecated    bool     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Documentation string   `json:"documentation,omitempty" yaml:"documentation,omitempty"`

	Line int `json:"line,omitempty" yaml:"-"`

	owner *Type
}

// Owner returns the declaring type. Set by Model.Index.
func (m *Method) Owner() *Type {
	return m.owner
}

// Is reports whether the method carries modifier mod.
func (m *Method) Is(mod Modifier) bool {
	return m.Modifiers.Has(mod)
}

// MayThrow reports whether the method declares checked exceptions.
func (m *Method) MayThrow() bool {
	return len(m.Throws) > 0
}

// Signature returns the erased signature used for override detection,
// e.g. "setMessage(java.lang.String)".
func (m *Method) Signature() string {
	var b strings.Builder
	b.WriteString(m.Name)
	b.WriteByte('(')
	for i, p := range m.Params {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Type.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Param is a method or constructor parameter.
type Param struct {
	Name string  `json:"name" yaml:"name"`
	Type TypeRef `json:"type" yaml:"type"`
}

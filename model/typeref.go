// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/antsy/internal/errors"
)

// RefKind determines which TypeRef fields are relevant.
type RefKind string

// Reference kinds.
const (
	RefVoid      RefKind = "void"      // no fields
	RefPrimitive RefKind = "primitive" // Name is int, boolean, ...
	RefArray     RefKind = "array"     // Element is the component type
	RefDeclared  RefKind = "declared"  // Name is a qualified class name
	RefTypeVar   RefKind = "typevar"   // Name is the type variable
)

var primitives = map[string]bool{
	"boolean": true, "byte": true, "char": true, "short": true,
	"int": true, "long": true, "float": true, "double": true,
}

// TypeRef is a parameter or return type.
//
// In model files a TypeRef is either an object ({"kind": "declared", "name": "java.io.File"})
// or a shorthand string: "void", a primitive name, a qualified class name, or any of
// those followed by "[]" or "...".
type TypeRef struct {
	Kind    RefKind  `json:"kind" yaml:"kind"`
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Element *TypeRef `json:"element,omitempty" yaml:"element,omitempty"`
}

// Void returns the void type.
func Void() TypeRef { return TypeRef{Kind: RefVoid} }

// Primitive returns a primitive type reference.
func Primitive(name string) TypeRef { return TypeRef{Kind: RefPrimitive, Name: name} }

// Declared returns a reference to a class by qualified name.
func Declared(name string) TypeRef { return TypeRef{Kind: RefDeclared, Name: name} }

// TypeVar returns a reference to a type variable.
func TypeVar(name string) TypeRef { return TypeRef{Kind: RefTypeVar, Name: name} }

// ArrayOf returns an array of elem.
func ArrayOf(elem TypeRef) TypeRef { return TypeRef{Kind: RefArray, Element: &elem} }

// IsVoid reports whether the reference is void. The zero TypeRef is void.
func (r TypeRef) IsVoid() bool {
	return r.Kind == RefVoid || r.Kind == ""
}

// IsDeclared reports whether the reference names a class.
func (r TypeRef) IsDeclared() bool {
	return r.Kind == RefDeclared
}

// String returns the Java display form ("void", "int", "java.io.File[]").
func (r TypeRef) String() string {
	switch r.Kind {
	case RefArray:
		if r.Element == nil {
			return "java.lang.Object[]"
		}
		return r.Element.String() + "[]"
	case RefPrimitive, RefDeclared, RefTypeVar:
		return r.Name
	default:
		return "void"
	}
}

// ParseTypeRef parses the shorthand string form.
func ParseTypeRef(s string) (TypeRef, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return TypeRef{}, errors.InvalidModelf("empty type reference")
	case strings.HasSuffix(s, "[]"):
		elem, err := ParseTypeRef(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return TypeRef{}, err
		}
		return ArrayOf(elem), nil
	case strings.HasSuffix(s, "..."):
		elem, err := ParseTypeRef(strings.TrimSuffix(s, "..."))
		if err != nil {
			return TypeRef{}, err
		}
		return ArrayOf(elem), nil
	case s == "void":
		return Void(), nil
	case primitives[s]:
		return Primitive(s), nil
	default:
		return Declared(s), nil
	}
}

// typeRefFields avoids recursion into the custom unmarshalers.
type typeRefFields TypeRef

func (r *TypeRef) validate() error {
	switch r.Kind {
	case RefVoid, "":
		return nil
	case RefPrimitive:
		if !primitives[r.Name] {
			return errors.InvalidModelf("unknown primitive type %q", r.Name)
		}
	case RefDeclared, RefTypeVar:
		if r.Name == "" {
			return errors.InvalidModelf("%s type reference without name", r.Kind)
		}
	case RefArray:
		if r.Element == nil {
			return errors.InvalidModelf("array type reference without element")
		}
	default:
		return errors.InvalidModelf("unknown type reference kind: %q", r.Kind)
	}
	return nil
}

// UnmarshalJSON accepts both the object and the shorthand string form.
func (r *TypeRef) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		ref, err := ParseTypeRef(s)
		if err != nil {
			return err
		}
		*r = ref
		return nil
	}

	var raw typeRefFields
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "unmarshal type reference")
	}
	*r = TypeRef(raw)
	return r.validate()
}

// UnmarshalYAML accepts both the mapping and the shorthand scalar form.
func (r *TypeRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		ref, err := ParseTypeRef(value.Value)
		if err != nil {
			return errors.Wrapf(err, "line %d", value.Line)
		}
		*r = ref
		return nil
	}

	var raw typeRefFields
	if err := value.Decode(&raw); err != nil {
		return errors.Wrap(err, "unmarshal type reference")
	}
	*r = TypeRef(raw)
	return r.validate()
}

// MarshalYAML writes the shorthand form when it round-trips.
func (r TypeRef) MarshalYAML() (any, error) {
	if r.Kind == RefTypeVar {
		return typeRefFields(r), nil
	}
	return r.String(), nil
}

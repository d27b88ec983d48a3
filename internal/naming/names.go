// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package naming turns Java member and type names into fluent facade identifiers.
package naming

import (
	"regexp"
	"strings"
	"unicode"
)

var javaName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

// reserved holds the Java reserved identifiers, literals included.
var reserved = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "false": true, "final": true, "finally": true,
	"float": true, "for": true, "goto": true, "if": true, "implements": true,
	"import": true, "instanceof": true, "int": true, "interface": true, "long": true,
	"native": true, "new": true, "null": true, "package": true, "private": true,
	"protected": true, "public": true, "return": true, "short": true, "static": true,
	"strictfp": true, "super": true, "switch": true, "synchronized": true, "this": true,
	"throw": true, "throws": true, "transient": true, "true": true, "try": true,
	"void": true, "volatile": true, "while": true,
}

// IsReserved reports whether name is a Java reserved identifier.
func IsReserved(name string) bool {
	return reserved[name]
}

// Derive builds a fluent identifier from a method name.
//
// The first prefix that raw starts with is stripped, verb is prepended to a
// non-empty remainder and the leading character is lower-cased. Later prefixes
// are not consulted once one matches. When the result is empty or reserved,
// raw is returned unchanged. ok is false only when no prefix matches.
func Derive(raw, verb string, prefixes ...string) (name string, ok bool) {
	for _, prefix := range prefixes {
		if !strings.HasPrefix(raw, prefix) {
			continue
		}
		name = raw[len(prefix):]
		if name != "" {
			name = Decapitalize(verb + name)
		}
		if name == "" || IsReserved(name) {
			return raw, true
		}
		return name, true
	}
	return "", false
}

// Decapitalize returns name with the first letter lowercased.
// Returns empty string for empty input.
func Decapitalize(name string) string {
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// CatalogConstant returns the catalog field name for a task's simple name.
// Reserved results get a trailing underscore ("Import" -> "import_").
func CatalogConstant(simple string) string {
	name := strings.ToLower(simple)
	if IsReserved(name) {
		return name + "_"
	}
	return name
}

// SplitQualified splits "a.b.C" into ("a.b", "C").
// A name without dots has an empty qualifier.
func SplitQualified(name string) (qualifier, simple string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}

// PackagePath converts a package name to a slash separated directory path.
func PackagePath(pkg string) string {
	return strings.ReplaceAll(pkg, ".", "/")
}

// RebasePackage replaces the root prefix of pkg with base. Packages outside
// root are returned unchanged.
func RebasePackage(pkg, root, base string) string {
	switch {
	case pkg == root:
		return base
	case strings.HasPrefix(pkg, root+"."):
		return base + pkg[len(root):]
	default:
		return pkg
	}
}

// InNamespace reports whether a qualified name is root itself or lies below it.
func InNamespace(name, root string) bool {
	return name == root || strings.HasPrefix(name, root+".")
}

// IsJavaName reports whether s is a dotted Java name without reserved segments.
func IsJavaName(s string) bool {
	if !javaName.MatchString(s) {
		return false
	}
	for seg := range strings.SplitSeq(s, ".") {
		if reserved[seg] {
			return false
		}
	}
	return true
}

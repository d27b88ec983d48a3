// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package javasrc builds a reflected model from Java source trees.
//
// Files are parsed with the tree-sitter Java grammar. Only declarations are
// read: packages, imports, types (nested included), constructors and methods
// with their modifiers, annotations and javadoc. Method bodies are skipped.
//
// Loading happens in two passes. The first parses every file and records the
// declared types so that the second pass can resolve simple type names across
// files the way javac would for the common cases:
//
//  1. type variables in scope
//  2. the enclosing types and their member types
//  3. single-type imports
//  4. types of the same package
//  5. on-demand imports of parsed packages or types
//  6. well-known java.lang types
//
// Anything else is assumed to live in the current package. Generic type
// arguments are erased.
package javasrc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
	"go.uber.org/zap"

	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/logging"
	"github.com/albertocavalcante/antsy/internal/naming"
	"github.com/albertocavalcante/antsy/model"
)

// DefaultFramework is the namespace used when Options.Framework is empty.
const DefaultFramework = "org.apache.tools.ant"

// Options configures Load.
type Options struct {
	// Dirs are source roots, scanned recursively for .java files.
	Dirs []string

	// Framework is the root namespace. Types outside it are marked external.
	Framework string
}

// Load parses every .java file below opts.Dirs and returns the indexed model.
func Load(ctx context.Context, opts Options) (*model.Model, error) {
	if len(opts.Dirs) == 0 {
		return nil, errors.InvalidConfigf("no source directories")
	}
	if opts.Framework == "" {
		opts.Framework = DefaultFramework
	}

	l := newLoader(opts.Framework)
	defer l.close()

	for _, dir := range opts.Dirs {
		if err := l.scan(ctx, dir); err != nil {
			return nil, err
		}
	}
	if len(l.decls) == 0 {
		return nil, errors.WithHintf(errors.InvalidModelf("no Java types found in %s", strings.Join(opts.Dirs, ", ")),
			"point --src at a source root such as src/main")
	}

	types := make([]*model.Type, 0, len(l.decls))
	for _, d := range l.decls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		types = append(types, l.build(d))
	}

	m := &model.Model{
		Version: model.Metadata{Framework: opts.Framework, Source: "javasrc:" + strings.Join(opts.Dirs, ",")},
		Types:   types,
	}
	if err := m.Index(); err != nil {
		return nil, err
	}
	l.log.Debugw("loaded sources", "files", len(l.files), "types", len(types))
	return m, nil
}

// file is one parsed compilation unit.
type file struct {
	path string
	src  []byte
	tree *sitter.Tree

	pkg      string
	imports  map[string]string
	onDemand []string
}

// decl is a type declaration found in the first pass.
type decl struct {
	file      *file
	node      *sitter.Node
	name      string
	simple    string
	kind      model.Kind
	enclosing *decl

	// iface is set for interfaces and annotation types, whose members are implicitly public.
	iface bool

	typeParams []string
	nested     map[string]string
}

type loader struct {
	framework string
	parser    *sitter.Parser
	log       *zap.SugaredLogger

	files []*file
	decls []*decl

	byName   map[string]*decl
	packages map[string]map[string]string
}

func newLoader(framework string) *loader {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &loader{
		framework: framework,
		parser:    p,
		log:       logging.Named("javasrc"),
		byName:    make(map[string]*decl),
		packages:  make(map[string]map[string]string),
	}
}

func (l *loader) close() {
	for _, f := range l.files {
		f.tree.Close()
	}
	l.parser.Close()
}

// scan parses the files below dir in lexical order.
func (l *loader) scan(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return errors.Wrapf(err, "source directory %s", dir)
	}
	if !info.IsDir() {
		return errors.InvalidConfigf("source path %s is not a directory", dir)
	}

	return filepath.WalkDir(dir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if de.IsDir() || !strings.HasSuffix(path, ".java") {
			return nil
		}
		return l.parse(ctx, path)
	})
}

func (l *loader) parse(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	tree, err := l.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}

	f := &file{path: path, src: src, tree: tree, imports: make(map[string]string)}
	l.files = append(l.files, f)

	root := tree.RootNode()
	if root.HasError() {
		l.log.Warnw("syntax errors, extracting what parsed", "file", path)
	}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "package_declaration":
			f.pkg = qualifiedText(n, src)
		case "import_declaration":
			f.addImport(n)
		default:
			if kind, ok := declKinds[n.Type()]; ok {
				l.collect(f, n, kind, nil)
			}
		}
	}
	return nil
}

var declKinds = map[string]model.Kind{
	"class_declaration":           model.KindClass,
	"record_declaration":          model.KindClass,
	"interface_declaration":       model.KindInterface,
	"enum_declaration":            model.KindEnum,
	"annotation_type_declaration": model.KindAnnotation,
}

func (f *file) addImport(n *sitter.Node) {
	var static, wildcard bool
	var name string
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		switch c.Type() {
		case "static":
			static = true
		case "asterisk":
			wildcard = true
		case "identifier", "scoped_identifier":
			name = c.Content(f.src)
		}
	}
	switch {
	case name == "" || static:
	case wildcard:
		f.onDemand = append(f.onDemand, name)
	default:
		_, simple := naming.SplitQualified(name)
		f.imports[simple] = name
	}
}

// collect records n and its member types.
func (l *loader) collect(f *file, n *sitter.Node, kind model.Kind, enclosing *decl) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	simple := nameNode.Content(f.src)

	d := &decl{
		file:      f,
		node:      n,
		simple:    simple,
		kind:      kind,
		enclosing: enclosing,
		iface:     kind == model.KindInterface || kind == model.KindAnnotation,
		nested:    make(map[string]string),
	}
	switch {
	case enclosing != nil:
		d.name = enclosing.name + "." + simple
		enclosing.nested[simple] = d.name
	case f.pkg != "":
		d.name = f.pkg + "." + simple
	default:
		d.name = simple
	}
	if _, dup := l.byName[d.name]; dup {
		l.log.Warnw("duplicate type, keeping the first", "type", d.name, "file", f.path)
		return
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		d.typeParams = typeParamNames(tp, f.src)
	}

	l.decls = append(l.decls, d)
	l.byName[d.name] = d
	if enclosing == nil {
		pkg := l.packages[f.pkg]
		if pkg == nil {
			pkg = make(map[string]string)
			l.packages[f.pkg] = pkg
		}
		pkg[simple] = d.name
	}

	for _, m := range members(n.ChildByFieldName("body")) {
		if k, ok := declKinds[m.Type()]; ok {
			l.collect(f, m, k, d)
		}
	}
}

// members returns the declarations of a class, interface, enum or
// annotation body. Enum constants are skipped.
func members(body *sitter.Node) []*sitter.Node {
	if body == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		if c.Type() == "enum_body_declarations" {
			out = append(out, members(c)...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func typeParamNames(n *sitter.Node, src []byte) []string {
	var names []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p := n.NamedChild(i)
		if p.Type() != "type_parameter" {
			continue
		}
		for j := 0; j < int(p.NamedChildCount()); j++ {
			if c := p.NamedChild(j); c.Type() == "type_identifier" || c.Type() == "identifier" {
				names = append(names, c.Content(src))
				break
			}
		}
	}
	return names
}

// qualifiedText returns the dotted name of a package declaration.
func qualifiedText(n *sitter.Node, src []byte) string {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == "identifier" || c.Type() == "scoped_identifier" {
			return c.Content(src)
		}
	}
	return ""
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

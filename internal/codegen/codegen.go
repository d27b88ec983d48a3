// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package codegen synthesizes fluent Java facades from a reflected class model.
//
// A run has two phases. Every concrete task type in the framework namespace
// gets a catalog constant and a task facade. Types those facades refer to are
// queued and get plain element facades until the queue drains. Members are
// chosen by the classify rule chain; anything it cannot place is left as a
// comment in the generated source.
package codegen

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/logging"
	"github.com/albertocavalcante/antsy/internal/naming"
	"github.com/albertocavalcante/antsy/internal/sink"
	"github.com/albertocavalcante/antsy/model"
)

// DefaultRuntimePackage holds AntTask and AntElement, the base classes of generated facades.
const DefaultRuntimePackage = "org.copalis.antsy"

// Config controls facade generation.
type Config struct {
	// Framework names the reflected framework. Zero means Apache Ant.
	Framework classify.Framework

	// Catalog is the qualified name of the generated catalog interface
	// (e.g., "org.copalis.antsy.Tasks").
	Catalog string

	// OutPackage replaces the framework root in facade package names
	// (e.g., "org.copalis.antsy.ant").
	OutPackage string

	// RuntimePackage holds the facade base classes. Default: DefaultRuntimePackage.
	RuntimePackage string

	// Header lines are written as line comments above each package clause.
	Header []string

	// Observer, when set, is told about every facade and member.
	Observer Observer
}

// Validate reports a missing or malformed setting.
func (c Config) Validate() error {
	pkg, _ := naming.SplitQualified(c.Catalog)
	switch {
	case c.Catalog == "":
		return errors.InvalidConfigf("catalog class is required")
	case pkg == "":
		return errors.WithHint(errors.InvalidConfigf("catalog class %q has no package", c.Catalog),
			"use a qualified name such as org.copalis.antsy.Tasks")
	case c.OutPackage == "":
		return errors.InvalidConfigf("output package is required")
	case strings.HasSuffix(c.OutPackage, ".") || strings.HasPrefix(c.OutPackage, "."):
		return errors.InvalidConfigf("output package %q is malformed", c.OutPackage)
	}
	return nil
}

// Facade describes one generated unit.
type Facade struct {
	Type *model.Type

	// Name is the qualified facade class name.
	Name string

	// Path is the slash separated unit path.
	Path string

	// Task is set for task facades, unset for element facades.
	Task bool
}

// Observer receives generation events in output order.
type Observer interface {
	Facade(f Facade)
	Member(f Facade, cl classify.Classification)
}

// Result summarizes a run.
type Result struct {
	// Roots lists the qualified names of catalogued task types.
	Roots []string

	// Units lists written paths in write order, catalog included.
	Units []string

	// Catalog is the catalog unit path.
	Catalog string

	// Kinds counts classified members per rule.
	Kinds map[classify.Kind]int

	// Deprecated counts skipped deprecated members.
	Deprecated int
}

// Facades returns the number of facade units written.
func (r *Result) Facades() int {
	if r.Catalog == "" {
		return len(r.Units)
	}
	return len(r.Units) - 1
}

// Generator produces facades from a model. A Generator may be run any number
// of times; every run starts from an empty queue.
type Generator struct {
	model  *model.Model
	config Config

	classifier *classify.Classifier
	names      *namer
	log        *zap.SugaredLogger

	// per run
	queue  *Worklist
	result *Result
}

// New creates a Generator for m.
func New(m *model.Model, cfg Config) (*Generator, error) {
	if m == nil {
		return nil, errors.InvalidModelf("no model")
	}
	if cfg.Framework.Root == "" {
		cfg.Framework = classify.Ant()
	}
	if cfg.RuntimePackage == "" {
		cfg.RuntimePackage = DefaultRuntimePackage
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cls := classify.New(m, cfg.Framework)
	return &Generator{
		model:      m,
		config:     cfg,
		classifier: cls,
		names: &namer{
			model:   m,
			fw:      cfg.Framework,
			base:    cfg.OutPackage,
			runtime: cfg.RuntimePackage,
		},
		log: logging.Named("codegen"),
	}, nil
}

// Roots returns the task types that get catalog entries, ordered by simple
// name with ties broken by qualified name.
func (g *Generator) Roots() []*model.Type {
	var roots []*model.Type
	for _, t := range g.model.Roots() {
		if g.classifier.IsRoot(t) {
			roots = append(roots, t)
		}
	}
	slices.SortStableFunc(roots, func(a, b *model.Type) int {
		return cmp.Or(cmp.Compare(a.SimpleName(), b.SimpleName()), cmp.Compare(a.Name, b.Name))
	})
	return roots
}

// Run generates every facade and the catalog into out. Units are written as
// soon as they are complete; a failed write stops the run and leaves earlier
// units in place.
func (g *Generator) Run(ctx context.Context, out sink.Sink) (*Result, error) {
	g.queue = NewWorklist(g.classifier.Predicates)
	g.result = &Result{Kinds: make(map[classify.Kind]int)}

	catalog := g.newCatalog()
	for _, t := range g.Roots() {
		if err := ctx.Err(); err != nil {
			return g.result, err
		}
		f := g.names.facade(t, true)
		catalog.add(t, f.Name)
		g.result.Roots = append(g.result.Roots, t.Name)
		if err := g.emit(ctx, out, f, g.taskFacade); err != nil {
			return g.result, err
		}
	}

	path, content := catalog.unit()
	g.result.Catalog = path
	if err := g.write(ctx, out, path, content); err != nil {
		return g.result, err
	}

	for {
		t, ok := g.queue.Pop()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return g.result, err
		}
		f := g.names.facade(t, false)
		if err := g.emit(ctx, out, f, g.elementFacade); err != nil {
			return g.result, err
		}
	}

	g.log.Debugw("run complete",
		"roots", len(g.result.Roots),
		"units", len(g.result.Units),
		"deprecated", g.result.Deprecated)
	return g.result, nil
}

func (g *Generator) emit(ctx context.Context, out sink.Sink, f Facade, synth func(Facade) []byte) error {
	if g.config.Observer != nil {
		g.config.Observer.Facade(f)
	}
	g.log.Debugw("synthesize", "type", f.Type.Name, "facade", f.Name)
	return g.write(ctx, out, f.Path, synth(f))
}

func (g *Generator) write(ctx context.Context, out sink.Sink, path string, content []byte) error {
	if err := out.WriteFile(ctx, path, content); err != nil {
		return errors.Wrapf(err, "write unit %s", path)
	}
	g.result.Units = append(g.result.Units, path)
	return nil
}

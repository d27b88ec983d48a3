// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package report is the generator that writes a YAML classification report.
//
// The report is built from a full facade run whose units are discarded.
// It lists every facade in output order with the classification of each
// walked method, which makes it a convenient way to review what the facade
// generator would do with a new framework release.
package report

import (
	"bytes"
	"context"

	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/antsy/generator"
	"github.com/albertocavalcante/antsy/generators/facade"
	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/internal/codegen"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/sink"
	"github.com/albertocavalcante/antsy/model"
)

// Name is the registry name of the report generator.
const Name = "report"

// FileName is the path of the single unit the generator writes.
const FileName = "antsy-report.yaml"

// Report is the document written to FileName.
type Report struct {
	Source     string         `yaml:"source,omitempty"`
	Ref        string         `yaml:"ref,omitempty"`
	Commit     string         `yaml:"commit,omitempty"`
	Catalog    string         `yaml:"catalog"`
	Roots      []string       `yaml:"roots"`
	Kinds      map[string]int `yaml:"kinds"`
	Deprecated int            `yaml:"deprecated,omitempty"`
	Facades    []*Facade      `yaml:"facades"`
}

// Facade is one synthesized unit.
type Facade struct {
	Type    string    `yaml:"type"`
	Name    string    `yaml:"name"`
	Path    string    `yaml:"path"`
	Task    bool      `yaml:"task,omitempty"`
	Members []*Member `yaml:"members,omitempty"`
}

// Member is the classification of one walked method.
type Member struct {
	Method     string        `yaml:"method"`
	Owner      string        `yaml:"owner,omitempty"`
	Kind       classify.Kind `yaml:"kind"`
	Name       string        `yaml:"name,omitempty"`
	Dependency string        `yaml:"dependency,omitempty"`
	Reason     string        `yaml:"reason,omitempty"`
}

// Generator implements [generator.Generator] for classification reports.
type Generator struct{}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           Name,
		Version:        "1.0.0",
		Description:    "Write a YAML report of facade classification decisions",
		FileExtensions: []string{".yaml"},
		URL:            "https://github.com/albertocavalcante/antsy",
	}
}

// Generate runs the facade engine and writes the report to out.
func (g *Generator) Generate(ctx context.Context, m *model.Model, cfg generator.Config, out sink.Sink) error {
	rep, err := Build(ctx, m, cfg)
	if err != nil {
		return err
	}
	data, err := rep.Marshal()
	if err != nil {
		return err
	}
	return out.WriteFile(ctx, FileName, data)
}

// Build runs the facade engine over m and collects the report.
func Build(ctx context.Context, m *model.Model, cfg generator.Config) (*Report, error) {
	rec := &recorder{}
	fg := &facade.Generator{Observer: rec}

	res, err := fg.Run(ctx, m, cfg, sink.NewMemory())
	if err != nil {
		return nil, err
	}

	rep := &Report{
		Source:     cfg.Source,
		Ref:        cfg.Ref,
		Commit:     cfg.CommitHash,
		Catalog:    res.Catalog,
		Roots:      res.Roots,
		Kinds:      make(map[string]int, len(res.Kinds)),
		Deprecated: res.Deprecated,
		Facades:    rec.facades,
	}
	for k, n := range res.Kinds {
		rep.Kinds[k.String()] = n
	}
	return rep, nil
}

// Marshal encodes the report as YAML with two-space indentation.
func (r *Report) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, errors.Wrap(err, "encode report")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode report")
	}
	return buf.Bytes(), nil
}

// recorder is the codegen.Observer that builds the facade list.
type recorder struct {
	facades []*Facade
	current *Facade
}

var _ codegen.Observer = (*recorder)(nil)

func (r *recorder) Facade(f codegen.Facade) {
	r.current = &Facade{
		Type: f.Type.Name,
		Name: f.Name,
		Path: f.Path,
		Task: f.Task,
	}
	r.facades = append(r.facades, r.current)
}

func (r *recorder) Member(f codegen.Facade, cl classify.Classification) {
	if r.current == nil || r.current.Path != f.Path {
		r.Facade(f)
	}
	m := &Member{
		Method: cl.Method.Signature(),
		Kind:   cl.Kind,
		Reason: cl.Reason,
	}
	if cl.Kind != classify.Ignore && cl.Kind != classify.Unhandled {
		m.Name = cl.Name
	}
	if owner := cl.Method.Owner(); owner != nil && owner != f.Type {
		m.Owner = owner.Name
	}
	if cl.Dependency != nil {
		m.Dependency = cl.Dependency.Name
	}
	r.current.Members = append(r.current.Members, m)
}

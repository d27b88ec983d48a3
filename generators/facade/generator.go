// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package facade is the generator that writes fluent Java facades.
package facade

import (
	"context"
	"fmt"

	"github.com/albertocavalcante/antsy/generator"
	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/internal/codegen"
	"github.com/albertocavalcante/antsy/internal/logging"
	"github.com/albertocavalcante/antsy/internal/sink"
	"github.com/albertocavalcante/antsy/model"
)

// Name is the registry name of the facade generator.
const Name = "facade"

// Generator implements [generator.Generator] for Java facades.
type Generator struct {
	// Observer receives engine events. Used by generators built on top of this one.
	Observer codegen.Observer
}

// NewGenerator creates a new facade generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Metadata returns information about this generator.
func (g *Generator) Metadata() generator.Metadata {
	return generator.Metadata{
		Name:           Name,
		Version:        "1.0.0",
		Description:    "Generate fluent Java facades for build framework tasks",
		FileExtensions: []string{".java"},
		URL:            "https://github.com/albertocavalcante/antsy",
	}
}

// Generate writes the catalog and every facade to out.
func (g *Generator) Generate(ctx context.Context, m *model.Model, cfg generator.Config, out sink.Sink) error {
	_, err := g.Run(ctx, m, cfg, out)
	return err
}

// Run is Generate returning the engine summary.
func (g *Generator) Run(ctx context.Context, m *model.Model, cfg generator.Config, out sink.Sink) (*codegen.Result, error) {
	opts, err := DecodeOptions(cfg)
	if err != nil {
		return nil, err
	}

	m, err = generator.Restrict(m, cfg.Types)
	if err != nil {
		return nil, err
	}

	ccfg := codegen.Config{
		Framework:      cfg.Framework(),
		Catalog:        firstNonEmpty(opts.Catalog, cfg.Catalog),
		OutPackage:     firstNonEmpty(opts.OutPackage, cfg.OutPackage),
		RuntimePackage: firstNonEmpty(opts.RuntimePackage, cfg.RuntimePackage),
		Observer:       g.Observer,
	}
	if opts.Header {
		ccfg.Header = fileHeader(cfg)
	}

	gen, err := codegen.New(m, ccfg)
	if err != nil {
		return nil, err
	}
	res, err := gen.Run(ctx, out)
	if err != nil {
		return res, err
	}

	logging.Logger.Infow("facades generated",
		"tasks", len(res.Roots),
		"facades", res.Facades(),
		"unhandled", res.Kinds[classify.Unhandled])
	return res, nil
}

func fileHeader(cfg generator.Config) []string {
	lines := []string{"Code generated by antsy. DO NOT EDIT."}
	if cfg.Source != "" {
		lines = append(lines, fmt.Sprintf("Source: %s", cfg.Source))
	}
	if cfg.Ref != "" {
		lines = append(lines, fmt.Sprintf("Ref: %s", cfg.Ref))
	}
	if cfg.CommitHash != "" {
		lines = append(lines, fmt.Sprintf("Commit: %s", cfg.CommitHash))
	}
	return lines
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

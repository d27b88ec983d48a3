// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generator defines the interface for facade model generators.
package generator

import (
	"context"

	"github.com/albertocavalcante/antsy/internal/sink"
	"github.com/albertocavalcante/antsy/model"
)

// Generator is the interface that all generators must implement.
type Generator interface {
	// Metadata returns information about this generator.
	Metadata() Metadata

	// Generate writes its units for the model to out.
	Generate(ctx context.Context, m *model.Model, cfg Config, out sink.Sink) error
}

// Metadata describes a generator.
type Metadata struct {
	// Name is the short identifier (e.g., "facade", "report").
	Name string

	// Version is the generator version (semver).
	Version string

	// Description is a human-readable description.
	Description string

	// FileExtensions lists typical output extensions (e.g., [".java"]).
	FileExtensions []string

	// URL is the homepage/documentation URL (optional).
	URL string
}

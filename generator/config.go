// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package generator

import "github.com/albertocavalcante/antsy/internal/classify"

// Config contains generator configuration.
type Config struct {
	// OutputDir is the output directory (informational; units go to the sink).
	OutputDir string

	// Catalog is the qualified name of the task catalog interface.
	Catalog string

	// OutPackage replaces the framework root in facade packages.
	OutPackage string

	// RuntimePackage holds the facade base classes.
	RuntimePackage string

	// FrameworkRoot, TaskType and ProjectType name the reflected framework.
	// Empty values select Apache Ant.
	FrameworkRoot string
	TaskType      string
	ProjectType   string

	// Types limits catalogued tasks to these names (empty = all).
	Types []string

	// Source is the model source (for headers and reports).
	Source string

	// Ref is the git ref used.
	Ref string

	// CommitHash is the git commit.
	CommitHash string

	// Options contains generator-specific options.
	Options map[string]string
}

// Framework returns the configured framework.
func (c Config) Framework() classify.Framework {
	return classify.NewFramework(c.FrameworkRoot, c.TaskType, c.ProjectType)
}

// Option returns a generator-specific option with default.
func (c Config) Option(key, defaultValue string) string {
	if v, ok := c.Options[key]; ok {
		return v
	}
	return defaultValue
}

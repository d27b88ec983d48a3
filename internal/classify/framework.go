// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package classify decides how each reflected method is exposed on a fluent facade.
//
// The Predicates answer questions about types (framework membership, task
// ancestry, constructability). The Classifier runs an ordered rule chain over
// a single method and returns a Classification without side effects; callers
// render it and enqueue its dependency.
package classify

import "github.com/albertocavalcante/antsy/internal/naming"

// DefaultRoot is the Apache Ant root namespace.
const DefaultRoot = "org.apache.tools.ant"

// Framework names the build framework the model was reflected from.
type Framework struct {
	// Root is the framework namespace, e.g. "org.apache.tools.ant".
	Root string
	// Task is the base unit-of-work type.
	Task string
	// Project is the project type passed to task facade constructors.
	Project string
	// Location is the source location type. Setters taking it are hooks.
	Location string
}

// NewFramework returns the framework rooted at root with Ant's conventional
// type names. Empty task or project names default to root.Task and root.Project.
func NewFramework(root, task, project string) Framework {
	if root == "" {
		root = DefaultRoot
	}
	if task == "" {
		task = root + ".Task"
	}
	if project == "" {
		project = root + ".Project"
	}
	return Framework{
		Root:     root,
		Task:     task,
		Project:  project,
		Location: root + ".Location",
	}
}

// Ant returns the Apache Ant framework.
func Ant() Framework {
	return NewFramework(DefaultRoot, "", "")
}

// Contains reports whether a qualified name belongs to the framework namespace.
func (f Framework) Contains(name string) bool {
	return naming.InNamespace(name, f.Root)
}

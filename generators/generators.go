// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package generators registers the built-in generators.
package generators

import (
	"github.com/albertocavalcante/antsy/generator"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/generators/facade"
	"github.com/albertocavalcante/antsy/generators/report"
)

// Builtin returns new instances of the built-in generators.
func Builtin() []generator.Generator {
	return []generator.Generator{
		facade.NewGenerator(),
		report.NewGenerator(),
	}
}

// Register adds the built-in generators that are not registered yet.
// It is safe to call more than once.
func Register() {
	for _, g := range Builtin() {
		if err := generator.Register(g); err != nil && !errors.Is(err, generator.ErrRegistered) {
			panic(err)
		}
	}
}

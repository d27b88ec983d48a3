// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

// walk renders the members of t and its superclasses into w.
// Methods are visited in declaration order, subclass first; an ancestor
// method whose signature was already visited is shadowed.
func (g *Generator) walk(w *writer, f Facade, container string) {
	seen := make(map[string]bool)
	visited := make(map[string]bool)

	for t := f.Type; t != nil && !visited[t.Name]; t = g.model.SuperclassOf(t) {
		visited[t.Name] = true
		for _, m := range t.Methods {
			if m.IsDeprecated() {
				g.result.Deprecated++
				continue
			}
			sig := m.Signature()
			if seen[sig] {
				continue
			}

			cl := g.classifier.Classify(m)
			g.member(w, container, cl)
			if cl.Dependency != nil && g.queue.Enqueue(cl.Dependency) {
				g.log.Debugw("enqueue", "type", cl.Dependency.Name, "from", m.Owner().Name+"."+m.Name)
			}
			seen[sig] = true

			g.result.Kinds[cl.Kind]++
			if g.config.Observer != nil {
				g.config.Observer.Member(f, cl)
			}
		}
	}
}

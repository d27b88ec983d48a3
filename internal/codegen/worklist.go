// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/model"
)

// Worklist is the FIFO of types still waiting for an element facade.
// A type is marked seen when it is enqueued and is never queued twice.
type Worklist struct {
	pred  *classify.Predicates
	queue []*model.Type
	seen  map[string]bool
}

// NewWorklist returns an empty worklist.
func NewWorklist(p *classify.Predicates) *Worklist {
	return &Worklist{pred: p, seen: make(map[string]bool)}
}

// Enqueue appends t if it is an unseen framework type that is not task-like.
// It reports whether t was added.
func (w *Worklist) Enqueue(t *model.Type) bool {
	if t == nil || w.seen[t.Name] {
		return false
	}
	if !w.pred.Framework.Contains(t.Name) || w.pred.IsTaskLike(t) {
		return false
	}
	w.seen[t.Name] = true
	w.queue = append(w.queue, t)
	return true
}

// Pop removes and returns the oldest queued type.
func (w *Worklist) Pop() (*model.Type, bool) {
	if len(w.queue) == 0 {
		return nil, false
	}
	t := w.queue[0]
	w.queue[0] = nil
	w.queue = w.queue[1:]
	return t, true
}

// Len returns the number of queued types.
func (w *Worklist) Len() int {
	return len(w.queue)
}

// Seen reports whether the named type was ever enqueued.
func (w *Worklist) Seen(name string) bool {
	return w.seen[name]
}

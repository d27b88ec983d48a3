// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package classify

import "fmt"

// Kind is the rule that accepted a method.
type Kind int

// Kinds in rule chain order. Unhandled is the fallback.
const (
	Unhandled Kind = iota
	Ignore
	Create
	AddConfigured
	AddNonFramework
	AddNew
	AddFramework
	Set
)

var kindNames = [...]string{
	Unhandled:       "UNHANDLED",
	Ignore:          "IGNORE",
	Create:          "CREATE",
	AddConfigured:   "ADD_CONFIGURED",
	AddNonFramework: "ADD_NON_ANT",
	AddNew:          "ADD_NEW",
	AddFramework:    "ADD_ANT",
	Set:             "SET",
}

// String returns the marker written next to generated members.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by its marker.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Kinds returns every kind in rule chain order, Unhandled last.
func Kinds() []Kind {
	return []Kind{Ignore, Create, AddConfigured, AddNonFramework, AddNew, AddFramework, Set, Unhandled}
}

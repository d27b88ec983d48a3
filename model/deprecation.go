// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package model

import "strings"

// IsDeprecated reports whether the type is marked deprecated by flag,
// annotation or javadoc tag.
func (t *Type) IsDeprecated() bool {
	return t != nil && deprecated(t.Deprecated, t.Annotations, t.Documentation)
}

// IsDeprecated reports whether the method is marked deprecated by flag,
// annotation or javadoc tag.
func (m *Method) IsDeprecated() bool {
	return m != nil && deprecated(m.Deprecated, m.Annotations, m.Documentation)
}

func deprecated(flag bool, annotations []string, doc string) bool {
	if flag {
		return true
	}
	for _, a := range annotations {
		a = strings.TrimPrefix(a, "@")
		if a == "Deprecated" || a == "java.lang.Deprecated" {
			return true
		}
	}
	for line := range strings.SplitSeq(doc, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "* \t")
		if line == "@deprecated" || strings.HasPrefix(line, "@deprecated ") || strings.HasPrefix(line, "@deprecated\t") {
			return true
		}
	}
	return false
}

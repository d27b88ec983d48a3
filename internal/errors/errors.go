// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package errors re-exports github.com/cockroachdb/errors for antsy.
//
// Errors created here carry stack traces and support hints, which the CLI
// prints under the error message:
//
//	if err := v.ReadInConfig(); err != nil {
//	    return errors.WithHint(errors.Wrap(err, "read config"), "pass --config or remove the file")
//	}
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing details
var (
	WithHint       = crdb.WithHint
	WithHintf      = crdb.WithHintf
	WithDetail     = crdb.WithDetail
	WithDetailf    = crdb.WithDetailf
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Inspection
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
)

// Sentinels. Wrap them to add context; match them with Is.
var (
	// ErrInvalidConfig marks a missing or malformed configuration option.
	ErrInvalidConfig = New("invalid configuration")

	// ErrInvalidModel marks a reflected model that cannot be decoded or indexed.
	ErrInvalidModel = New("invalid model")

	// ErrUnknownGenerator is returned when a generator name is not registered.
	ErrUnknownGenerator = New("unknown generator")
)

// InvalidConfigf wraps ErrInvalidConfig with a formatted message.
func InvalidConfigf(format string, args ...any) error {
	return Wrapf(ErrInvalidConfig, format, args...)
}

// InvalidModelf wraps ErrInvalidModel with a formatted message.
func InvalidModelf(format string, args ...any) error {
	return Wrapf(ErrInvalidModel, format, args...)
}

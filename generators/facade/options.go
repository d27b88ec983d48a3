// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package facade

import (
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/albertocavalcante/antsy/generator"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/naming"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(false)
	_ = validate.RegisterValidation("javaname", func(fl validator.FieldLevel) bool {
		return naming.IsJavaName(fl.Field().String())
	})
}

// Options are the facade generator options given as -O key=value.
type Options struct {
	// RuntimePackage overrides the package holding AntTask and AntElement.
	RuntimePackage string `schema:"runtime_package" validate:"omitempty,javaname"`

	// Catalog overrides the catalog interface name.
	Catalog string `schema:"catalog" validate:"omitempty,javaname,contains=."`

	// OutPackage overrides the output base package.
	OutPackage string `schema:"out_package" validate:"omitempty,javaname"`

	// Header prefixes every unit with a generated-code comment.
	Header bool `schema:"header"`
}

// DecodeOptions reads and validates the generator options in cfg.
func DecodeOptions(cfg generator.Config) (Options, error) {
	values := make(url.Values, len(cfg.Options))
	for k, v := range cfg.Options {
		values.Set(k, v)
	}

	var opts Options
	if err := schemaDecoder.Decode(&opts, values); err != nil {
		return opts, errors.WithHint(errors.InvalidConfigf("facade options: %v", err),
			"known options: runtime_package, catalog, out_package, header")
	}
	if err := validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return opts, errors.InvalidConfigf("facade option %s: %q is not a valid %s",
				fe.Field(), fe.Value(), fe.Tag())
		}
		return opts, errors.InvalidConfigf("facade options: %v", err)
	}
	return opts, nil
}

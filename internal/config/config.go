// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package config loads antsy settings from a config file, ANTSY_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/naming"
)

// EnvPrefix prefixes environment overrides, e.g. ANTSY_OUT_PACKAGE.
const EnvPrefix = "ANTSY"

// FileName is the config file base name searched in the working directory.
const FileName = "antsy"

// Config holds the settings of a generate run.
type Config struct {
	// Dest is the output directory.
	Dest string `mapstructure:"dest" validate:"required_unless=DryRun true"`

	// Catalog is the qualified name of the catalog interface.
	Catalog string `mapstructure:"catalog" validate:"required,javaname,contains=."`

	// OutPackage is the base package of generated facades.
	OutPackage string `mapstructure:"out_package" validate:"required,javaname"`

	RuntimePackage string `mapstructure:"runtime_package" validate:"required,javaname"`
	Framework      string `mapstructure:"framework" validate:"required,javaname"`
	TaskType       string `mapstructure:"task_type" validate:"omitempty,javaname"`
	ProjectType    string `mapstructure:"project_type" validate:"omitempty,javaname"`

	// Model sources, tried in this order.
	Model string   `mapstructure:"model"`
	Src   []string `mapstructure:"src" validate:"dive,required"`
	Repo  string   `mapstructure:"repo"`
	Ref   string   `mapstructure:"ref"`

	// Types restricts generation to the named tasks.
	Types []string `mapstructure:"types" validate:"dive,required"`

	Generator string            `mapstructure:"generator" validate:"required"`
	Options   map[string]string `mapstructure:"options"`

	DryRun   bool          `mapstructure:"dry_run"`
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce" validate:"gte=0"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`

	Verbose bool `mapstructure:"verbose"`
	LogJSON bool `mapstructure:"log_json"`
}

// SetDefaults registers every key with its default value. Keys must be
// known to viper for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dest", "")
	v.SetDefault("catalog", "")
	v.SetDefault("out_package", "")
	v.SetDefault("runtime_package", "org.copalis.antsy")
	v.SetDefault("framework", "org.apache.tools.ant")
	v.SetDefault("task_type", "")
	v.SetDefault("project_type", "")

	v.SetDefault("model", "")
	v.SetDefault("src", []string{})
	v.SetDefault("repo", "")
	v.SetDefault("ref", "")
	v.SetDefault("types", []string{})

	v.SetDefault("generator", "facade")
	v.SetDefault("options", map[string]string{})

	v.SetDefault("dry_run", false)
	v.SetDefault("watch", false)
	v.SetDefault("debounce", 300*time.Millisecond)
	v.SetDefault("timeout", 5*time.Minute)

	v.SetDefault("verbose", false)
	v.SetDefault("log_json", false)
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadFile merges a config file into v. An empty path searches the
// working directory for antsy.toml or antsy.yaml and is fine when none exists.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.WithHint(errors.Wrapf(err, "read config %s", path),
				"pass --config with a .toml or .yaml file")
		}
		return nil
	}

	v.SetConfigName(FileName)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "read config")
	}
	return nil
}

// Load unmarshals and validates the settings held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(errors.InvalidConfigf("%v", err), "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("javaname", func(fl validator.FieldLevel) bool {
		return naming.IsJavaName(fl.Field().String())
	})
	return v
}

// Validate checks required settings and their shape.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errors.WithHint(errors.InvalidConfigf("%s", describe(verrs[0])), hint(verrs[0].Field()))
		}
		return errors.InvalidConfigf("%v", err)
	}
	if c.Watch && c.Model == "" && len(c.Src) == 0 && c.Repo == "" {
		return errors.WithHint(errors.InvalidConfigf("watch needs local inputs"),
			"pass --model, --src or --repo")
	}
	if c.Watch && c.DryRun {
		return errors.InvalidConfigf("watch and dry-run cannot be combined")
	}
	if c.Watch && (strings.HasPrefix(c.Model, "http://") || strings.HasPrefix(c.Model, "https://")) {
		return errors.InvalidConfigf("cannot watch remote model %s", c.Model)
	}
	return nil
}

// Sources returns the local paths a watcher should observe.
func (c *Config) Sources() []string {
	var paths []string
	if c.Model != "" {
		paths = append(paths, c.Model)
	}
	paths = append(paths, c.Src...)
	if c.Repo != "" {
		paths = append(paths, c.Repo)
	}
	return paths
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return fe.Field() + " is required"
	case "contains":
		return fe.Field() + " must be a qualified name"
	case "javaname":
		return fe.Field() + " must be a dotted Java name"
	default:
		return fe.Field() + " failed " + fe.Tag()
	}
}

var flagNames = map[string]string{
	"Dest":           "--dest",
	"Catalog":        "--catalog",
	"OutPackage":     "--out-package",
	"RuntimePackage": "--runtime-package",
	"Framework":      "--framework",
	"Generator":      "--generator",
}

func hint(field string) string {
	if flag, ok := flagNames[field]; ok {
		return "set " + flag + ", the matching " + EnvPrefix + "_ variable or the config file"
	}
	return "check the config file and " + EnvPrefix + "_ variables"
}

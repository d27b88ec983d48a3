// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package cli implements the antsy command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/albertocavalcante/antsy/generators"
	"github.com/albertocavalcante/antsy/internal/config"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/fetch"
	"github.com/albertocavalcante/antsy/internal/logging"
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// flagKeys maps config keys to generate flag names.
var flagKeys = map[string]string{
	"dest":            "dest",
	"catalog":         "catalog",
	"out_package":     "out-package",
	"runtime_package": "runtime-package",
	"framework":       "framework",
	"task_type":       "task-type",
	"project_type":    "project-type",
	"model":           "model",
	"src":             "src",
	"repo":            "repo",
	"ref":             "ref",
	"types":           "types",
	"generator":       "generator",
	"options":         "option",
	"dry_run":         "dry-run",
	"watch":           "watch",
	"debounce":        "debounce",
	"timeout":         "timeout",
	"verbose":         "verbose",
	"log_json":        "log-json",
}

// NewRootCmd builds the command tree. Running the root is the same as
// running generate.
func NewRootCmd(info BuildInfo) *cobra.Command {
	generators.Register()
	v := config.New()

	root := &cobra.Command{
		Use:   "antsy",
		Short: "Generate fluent Java facades for Apache Ant tasks",
		Long: `antsy reads the Ant class hierarchy and writes one fluent Java facade per
task and nested element, plus a catalog interface listing every task.

The class hierarchy comes from a model file (--model), Java sources (--src),
an Ant checkout (--repo) or a fresh clone of Apache Ant at --ref.

Examples:
  antsy -d gen --catalog org.copalis.antsy.Tasks --out-package org.copalis.antsy.ant
  antsy --model ant.yaml -d gen --catalog org.example.Tasks --out-package org.example.ant
  antsy generate --src ant/src/main --watch -d gen --catalog org.example.Tasks --out-package org.example.ant`,
		Version:       info.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v)
		},
	}
	root.PersistentFlags().String("config", "", "config file (default: ./antsy.toml or ./antsy.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log debug output")
	root.PersistentFlags().Bool("log-json", false, "log as JSON")
	addGenerateFlags(root)

	gen := &cobra.Command{
		Use:   "generate",
		Short: "Generate facades (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, v)
		},
	}
	addGenerateFlags(gen)

	root.AddCommand(gen, newGeneratorsCmd(), newVersionCmd(info))
	return root
}

func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("dest", "d", "", "output directory")
	f.String("catalog", "", "qualified name of the catalog interface")
	f.String("out-package", "", "base package of the generated facades")
	f.String("runtime-package", "", "package of AntTask and AntElement")
	f.String("framework", "", "root namespace of the framework")
	f.String("task-type", "", "qualified name of the task base class")
	f.String("project-type", "", "qualified name of the project class")
	f.String("model", "", "model file or http(s) URL (.json, .yaml)")
	f.StringSlice("src", nil, "Java source roots")
	f.String("repo", "", "existing Ant checkout")
	f.String("ref", "", fmt.Sprintf("git ref to clone (default %s)", fetch.DefaultRef))
	f.StringSliceP("types", "t", nil, "only generate these tasks")
	f.StringP("generator", "g", "", "generator to run (see antsy generators)")
	f.StringToStringP("option", "O", nil, "generator option key=value")
	f.Bool("dry-run", false, "log units instead of writing them")
	f.Bool("watch", false, "regenerate when local inputs change")
	f.Duration("debounce", 0, "quiet period before a watch rebuild")
	f.Duration("timeout", 0, "network timeout")
}

// setup merges the config file and flags into v and configures logging.
func setup(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.Flags()
	for key, name := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return errors.Wrapf(err, "bind --%s", name)
			}
		}
	}

	path, _ := flags.GetString("config")
	if err := config.ReadFile(v, path); err != nil {
		return err
	}
	return logging.Initialize(logging.Options{
		Verbose: v.GetBool("verbose"),
		JSON:    v.GetBool("log_json"),
	})
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd(info)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	logging.Sync()
	if err == nil {
		return 0
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		for line := range strings.SplitSeq(hint, "\n") {
			fmt.Fprintf(stderr, "hint: %s\n", line)
		}
	}
	return 1
}

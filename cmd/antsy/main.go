// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Command antsy generates fluent Java facades for Apache Ant tasks.
//
// Usage:
//
//	antsy [generate] [flags]
//	antsy generators
//	antsy version
//
// Run antsy --help for the flags.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/albertocavalcante/antsy/internal/cli"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date},
		os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

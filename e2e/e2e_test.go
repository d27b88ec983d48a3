// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package e2e provides end-to-end tests for the antsy CLI.
package e2e

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/albertocavalcante/antsy/internal/cli"
	"github.com/albertocavalcante/antsy/internal/testutil"
)

var info = cli.BuildInfo{Version: "e2e", Commit: "none", Date: "unknown"}

func TestE2E(t *testing.T) {
	for _, c := range testutil.LoadCases(t, "testdata") {
		t.Run(c.Name, func(t *testing.T) {
			c.Run(t, func(c *testutil.Case) (map[string][]byte, error) {
				return runCLI(t, c)
			})
		})
	}
}

// runCLI writes the case model to a temp dir, runs the CLI against it
// and returns every file written to the destination.
func runCLI(t *testing.T, c *testutil.Case) (map[string][]byte, error) {
	t.Helper()

	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, c.InputName)
	if err := os.WriteFile(input, c.Input, 0o644); err != nil {
		t.Fatalf("write %s: %v", c.InputName, err)
	}
	dest := filepath.Join(tmpDir, "out")

	args := append([]string{"--model", input, "-d", dest}, c.Flags...)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var stdout, stderr bytes.Buffer
	if code := cli.Execute(ctx, info, args, &stdout, &stderr); code != 0 {
		t.Logf("args: %q", args)
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	return readTree(t, dest), nil
}

func readTree(t *testing.T, root string) map[string][]byte {
	t.Helper()
	got := make(map[string][]byte)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		got[filepath.ToSlash(rel)] = data
		return nil
	})
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	return got
}

func TestE2E_DryRunWritesNothing(t *testing.T) {
	c := testutil.LoadCases(t, "testdata")[0]
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, c.InputName)
	if err := os.WriteFile(input, c.Input, 0o644); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(tmpDir, "out")

	args := append([]string{"--model", input, "-d", dest, "--dry-run"}, c.Flags...)
	var stdout, stderr bytes.Buffer
	if code := cli.Execute(context.Background(), info, args, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !bytes.HasPrefix(stdout.Bytes(), []byte("dry run: ")) {
		t.Errorf("stdout = %q, want dry run summary", stdout.String())
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("dry run created %s", dest)
	}
}

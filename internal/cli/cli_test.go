// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/albertocavalcante/antsy/generator"
	"github.com/albertocavalcante/antsy/internal/config"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/sink"
	"github.com/albertocavalcante/antsy/model"
)

const modelYAML = `metaData:
  framework: org.apache.tools.ant
types:
  - name: org.apache.tools.ant.Task
    modifiers: [public, abstract]
  - name: org.apache.tools.ant.taskdefs.Echo
    superclass: org.apache.tools.ant.Task
    modifiers: [public]
    methods:
      - name: setMessage
        modifiers: [public]
        params:
          - {name: msg, type: java.lang.String}
`

func writeModel(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ant.yaml")
	require.NoError(t, os.WriteFile(path, []byte(modelYAML), 0o644))
	return path
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Execute(context.Background(), BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"}, args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func baseArgs(modelPath, dest string) []string {
	return []string{
		"--model", modelPath,
		"-d", dest,
		"--catalog", "org.copalis.antsy.Tasks",
		"--out-package", "org.copalis.antsy.ant",
	}
}

func TestGenerate(t *testing.T) {
	dest := t.TempDir()
	for _, args := range [][]string{
		baseArgs(writeModel(t), dest),
		append([]string{"generate"}, baseArgs(writeModel(t), dest)...),
	} {
		code, stdout, stderr := run(t, args...)
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "wrote 2 files to "+dest+"\n", stdout)

		echo, err := os.ReadFile(filepath.Join(dest, "org/copalis/antsy/ant/taskdefs/Echo.java"))
		require.NoError(t, err)
		assert.Contains(t, string(echo), "public org.copalis.antsy.ant.taskdefs.Echo message(java.lang.String msg) //SET")
		assert.FileExists(t, filepath.Join(dest, "org/copalis/antsy/Tasks.java"))
	}
}

func TestGenerate_Report(t *testing.T) {
	dest := t.TempDir()
	code, _, stderr := run(t, append(baseArgs(writeModel(t), dest), "-g", "report")...)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(dest, "antsy-report.yaml"))
	require.NoError(t, err)
	var doc struct {
		Roots []string `yaml:"roots"`
	}
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, []string{"org.apache.tools.ant.taskdefs.Echo"}, doc.Roots)
}

func TestGenerate_Options(t *testing.T) {
	dest := t.TempDir()
	code, _, stderr := run(t, append(baseArgs(writeModel(t), dest), "-O", "header=true", "-O", "runtime_package=org.example.rt")...)
	require.Equal(t, 0, code, stderr)

	echo, err := os.ReadFile(filepath.Join(dest, "org/copalis/antsy/ant/taskdefs/Echo.java"))
	require.NoError(t, err)
	assert.Contains(t, string(echo), "// Code generated by antsy. DO NOT EDIT.")
	assert.Contains(t, string(echo), "extends org.example.rt.AntTask<")
}

func TestGenerate_DryRun(t *testing.T) {
	code, stdout, stderr := run(t,
		"--model", writeModel(t),
		"--catalog", "org.copalis.antsy.Tasks",
		"--out-package", "org.copalis.antsy.ant",
		"--dry-run")
	require.Equal(t, 0, code, stderr)
	assert.Regexp(t, `^dry run: 2 files, \d+ bytes\n$`, stdout)
}

func TestGenerate_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "gen")
	cfgPath := filepath.Join(dir, "antsy.toml")
	content := "catalog = \"org.example.Tasks\"\nout_package = \"org.example.ant\"\ndest = \"" + filepath.ToSlash(dest) + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o644))

	code, _, stderr := run(t, "--config", cfgPath, "--model", writeModel(t), "--out-package", "org.flag.ant")
	require.Equal(t, 0, code, stderr)
	assert.FileExists(t, filepath.Join(dest, "org/example/Tasks.java"))
	assert.FileExists(t, filepath.Join(dest, "org/flag/ant/taskdefs/Echo.java"))
}

func TestGenerate_Errors(t *testing.T) {
	modelPath := writeModel(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing catalog",
			args: []string{"--model", modelPath, "-d", t.TempDir(), "--out-package", "org.example.ant"},
			want: "error: Catalog is required",
		},
		{
			name: "unknown generator",
			args: append(baseArgs(modelPath, t.TempDir()), "-g", "kotlin"),
			want: "unknown generator",
		},
		{
			name: "missing model",
			args: baseArgs(filepath.Join(t.TempDir(), "none.yaml"), t.TempDir()),
			want: "load model",
		},
		{
			name: "unknown task",
			args: append(baseArgs(modelPath, t.TempDir()), "-t", "Zip"),
			want: "not in the model",
		},
		{
			name: "unknown command",
			args: []string{"frobnicate"},
			want: "unknown command",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := run(t, tc.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stderr, tc.want)
		})
	}
}

// failingGenerator writes one unit, then fails.
type failingGenerator struct{}

func (failingGenerator) Metadata() generator.Metadata { return generator.Metadata{Name: "failing"} }

func (failingGenerator) Generate(ctx context.Context, _ *model.Model, _ generator.Config, out sink.Sink) error {
	if err := out.WriteFile(ctx, "org/example/First.java", []byte("class First {}")); err != nil {
		return err
	}
	return errors.New("second unit failed")
}

func TestGenerate_KeepsWrittenUnits(t *testing.T) {
	dest := t.TempDir()
	cfg := &config.Config{Model: writeModel(t), Dest: dest}

	var out bytes.Buffer
	err := generate(context.Background(), cfg, failingGenerator{}, &out)
	require.ErrorContains(t, err, "second unit failed")
	assert.ErrorContains(t, err, "1 files written")
	assert.FileExists(t, filepath.Join(dest, "org", "example", "First.java"))
	assert.Empty(t, out.String())
}

func TestGenerate_Hint(t *testing.T) {
	_, _, stderr := run(t, "--model", writeModel(t), "-d", t.TempDir(), "--out-package", "org.example.ant")
	assert.Contains(t, stderr, "hint: set --catalog")
}

func TestGeneratorsCmd(t *testing.T) {
	code, stdout, _ := run(t, "generators")
	require.Equal(t, 0, code)
	assert.Regexp(t, `(?m)^NAME\s+VERSION\s+OUTPUT\s+DESCRIPTION$`, stdout)
	assert.Regexp(t, `(?m)^facade\s+1\.0\.0\s+\.java\s+`, stdout)
	assert.Regexp(t, `(?m)^report\s+1\.0\.0\s+\.yaml\s+`, stdout)
}

func TestVersionCmd(t *testing.T) {
	code, stdout, _ := run(t, "version")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "antsy 1.2.3 (commit abc, built today,")

	code, stdout, _ = run(t, "version", "--json")
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"version":"1.2.3","commit":"abc","date":"today"}`, stdout)
}

func TestWatch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "org"), 0o755))
	modelPath := filepath.Join(dir, "ant.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(modelYAML), 0o644))

	cfg := &config.Config{Model: modelPath, Src: []string{src}, Debounce: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, cfg, func(context.Context) error {
			builds.Add(1)
			return nil
		})
	}()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 5*time.Millisecond)

	// A burst of writes is one rebuild.
	for range 3 {
		require.NoError(t, os.WriteFile(modelPath, []byte(modelYAML+"\n"), 0o644))
	}
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 5*time.Millisecond)

	// Files in nested source directories count.
	require.NoError(t, os.WriteFile(filepath.Join(src, "org", "Echo.java"), []byte("class Echo {}"), 0o644))
	require.Eventually(t, func() bool { return builds.Load() == 3 }, 2*time.Second, 5*time.Millisecond)

	// Unrelated siblings of the model file do not.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(3), builds.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatch_MissingInput(t *testing.T) {
	cfg := &config.Config{Src: []string{filepath.Join(t.TempDir(), "missing")}}
	err := watch(context.Background(), cfg, func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "watch")
}

func TestWatch_IgnoresOwnOutput(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "org"), 0o755))
	cfg := &config.Config{Src: []string{dir}, Dest: filepath.Join(dir, "gen"), Debounce: 20 * time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var builds atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, cfg, func(ctx context.Context) error {
			builds.Add(1)
			return sink.NewFilesystem(cfg.Dest).WriteFile(ctx, "org/copalis/Echo.java", []byte("class Echo {}"))
		})
	}()

	require.Eventually(t, func() bool { return builds.Load() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load(), "writing the output must not trigger a rebuild")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "org", "Echo.java"), []byte("class Echo {}"), 0o644))
	require.Eventually(t, func() bool { return builds.Load() == 2 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(2), builds.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestInputWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "ant.yaml")
	src := filepath.Join(dir, "src")
	gen := filepath.Join(src, "gen")
	newDir := filepath.Join(src, "org")
	require.NoError(t, os.MkdirAll(newDir, 0o755))

	w := &inputWatcher{
		files:   map[string]bool{modelPath: true},
		trees:   []string{src},
		exclude: []string{gen},
	}

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"model write", fsnotify.Event{Name: modelPath, Op: fsnotify.Write}, true},
		{"model chmod", fsnotify.Event{Name: modelPath, Op: fsnotify.Chmod}, false},
		{"model sibling", fsnotify.Event{Name: filepath.Join(dir, "notes.txt"), Op: fsnotify.Write}, false},
		{"java source", fsnotify.Event{Name: filepath.Join(src, "Echo.java"), Op: fsnotify.Write}, true},
		{"other file in tree", fsnotify.Event{Name: filepath.Join(src, "README.md"), Op: fsnotify.Write}, false},
		{"new directory", fsnotify.Event{Name: newDir, Op: fsnotify.Create}, true},
		{"removed directory", fsnotify.Event{Name: filepath.Join(src, "old"), Op: fsnotify.Remove}, true},
		{"output file", fsnotify.Event{Name: filepath.Join(gen, "org", "Echo.java"), Op: fsnotify.Create}, false},
		{"output dir", fsnotify.Event{Name: gen, Op: fsnotify.Create}, false},
		{"temp file", fsnotify.Event{Name: filepath.Join(src, ".antsy-1.tmp"), Op: fsnotify.Create}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.relevant(tc.ev))
		})
	}
}

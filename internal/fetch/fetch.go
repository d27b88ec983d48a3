// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

// Package fetch loads the reflected model from a model file, a Java source
// tree, an existing framework checkout or a fresh clone of the framework.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/introspect/javasrc"
	"github.com/albertocavalcante/antsy/internal/logging"
	"github.com/albertocavalcante/antsy/model"
)

const (
	// AntRepo is the repository of the build framework.
	AntRepo = "https://github.com/apache/ant"

	// DefaultRef is the default git reference (tag/branch) to use.
	DefaultRef = "rel/1.10.15"

	// SourcePath is the source root within the repository.
	SourcePath = "src/main"

	// maxModelSize bounds model downloads.
	maxModelSize = 64 << 20
)

// Options configures where the model comes from.
type Options struct {
	// Ref is the git reference (tag or branch) to use.
	// If empty, DefaultRef is used.
	Ref string

	// ModelPath is a model file path or an http(s) URL. YAML is used for
	// .yaml and .yml names, JSON otherwise.
	ModelPath string

	// SourceDirs are Java source roots parsed directly.
	SourceDirs []string

	// RepoDir is a path to an existing clone of the framework.
	RepoDir string

	// Framework is the root namespace handed to the source introspector.
	Framework string

	// Timeout for network operations.
	Timeout time.Duration
}

// Result contains the model and where it came from.
type Result struct {
	Model *model.Model

	// Ref is the git reference that was used.
	Ref string

	// CommitHash is the git commit hash (if loaded from git).
	CommitHash string

	// Source describes where the model was loaded from.
	Source string
}

// Fetch loads the model.
func Fetch(ctx context.Context, opts Options) (*Result, error) {
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Minute
	}

	// Priority: ModelPath > SourceDirs > RepoDir > Clone
	switch {
	case opts.ModelPath != "":
		if isURL(opts.ModelPath) {
			return fetchFromURL(ctx, opts.ModelPath, opts.Timeout)
		}
		return fetchFromFile(opts.ModelPath)
	case len(opts.SourceDirs) > 0:
		return fetchFromSources(ctx, opts.SourceDirs, opts.Framework)
	case opts.RepoDir != "":
		return fetchFromRepo(ctx, opts.RepoDir, opts.Ref, opts.Framework)
	default:
		return fetchFromGit(ctx, opts)
	}
}

// fetchFromFile reads the model from a local file.
func fetchFromFile(name string) (*Result, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read model")
	}

	m, err := parseModel(name, data)
	if err != nil {
		return nil, err
	}

	return &Result{
		Model:  m,
		Source: fmt.Sprintf("file://%s", name),
	}, nil
}

// fetchFromURL downloads the model.
func fetchFromURL(ctx context.Context, rawURL string, timeout time.Duration) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.InvalidConfigf("model url %q: %v", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download model")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("download model: HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxModelSize))
	if err != nil {
		return nil, errors.Wrap(err, "download model")
	}

	m, err := parseModel(u.Path, data)
	if err != nil {
		return nil, err
	}
	return &Result{Model: m, Source: rawURL}, nil
}

// fetchFromSources parses Java source roots.
func fetchFromSources(ctx context.Context, dirs []string, framework string) (*Result, error) {
	m, err := javasrc.Load(ctx, javasrc.Options{Dirs: dirs, Framework: framework})
	if err != nil {
		return nil, err
	}
	return &Result{
		Model:  m,
		Source: "src://" + strings.Join(dirs, ","),
	}, nil
}

// fetchFromRepo parses the sources of an existing framework checkout.
func fetchFromRepo(ctx context.Context, repoDir, ref, framework string) (*Result, error) {
	src := filepath.Join(repoDir, filepath.FromSlash(SourcePath))
	if _, err := os.Stat(src); err != nil {
		return nil, errors.WithHintf(errors.Wrap(err, "read from repo"),
			"%s should be a checkout of %s", repoDir, AntRepo)
	}

	m, err := javasrc.Load(ctx, javasrc.Options{Dirs: []string{src}, Framework: framework})
	if err != nil {
		return nil, err
	}

	return &Result{
		Model:      m,
		Ref:        ref,
		CommitHash: getGitHash(repoDir),
		Source:     fmt.Sprintf("repo://%s", repoDir),
	}, nil
}

// fetchFromGit clones the framework repository and parses its sources.
func fetchFromGit(ctx context.Context, opts Options) (*Result, error) {
	ref := opts.Ref
	if ref == "" {
		ref = DefaultRef
	}
	log := logging.Named("fetch")

	tmpDir, err := os.MkdirTemp("", "antsy-*")
	if err != nil {
		return nil, errors.Wrap(err, "create temp dir")
	}
	defer os.RemoveAll(tmpDir)

	// Clone with shallow depth and sparse checkout
	cloneCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	log.Infow("cloning", "repo", AntRepo, "ref", ref)
	cmd := exec.CommandContext(cloneCtx, "git", "clone",
		"--quiet",
		"--depth=1",
		"--filter=blob:none",
		"--sparse",
		"--branch="+ref,
		"--single-branch",
		AntRepo,
		tmpDir,
	)
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return nil, errors.WithHint(errors.Wrap(err, "git clone"),
			"check --ref, or pass --repo or --src to work offline")
	}

	cmd = exec.CommandContext(cloneCtx, "git", "-C", tmpDir, "sparse-checkout", "set", SourcePath)
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(err, "sparse checkout")
	}

	res, err := fetchFromRepo(ctx, tmpDir, ref, opts.Framework)
	if err != nil {
		return nil, err
	}
	res.Source = fmt.Sprintf("%s@%s", AntRepo, ref)
	return res, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// parseModel decodes a model file. JSON gets line numbers injected for debugging.
func parseModel(name string, data []byte) (*model.Model, error) {
	switch strings.ToLower(path.Ext(filepath.ToSlash(name))) {
	case ".yaml", ".yml":
		return model.DecodeYAML(data)
	default:
		return model.DecodeJSON(injectLineNumbers(data))
	}
}

// injectLineNumbers adds a "line" field to each JSON object that opens a line.
func injectLineNumbers(data []byte) []byte {
	var result []byte
	lineNum := 1

	for i := 0; i < len(data); i++ {
		result = append(result, data[i])
		switch data[i] {
		case '{':
			// Only inject if followed by newline (not inline objects in strings)
			if i+1 < len(data) && data[i+1] == '\n' {
				result = append(result, fmt.Sprintf(`"line":%d,`, lineNum)...)
			}
		case '\n':
			lineNum++
		}
	}
	return result
}

// getGitHash returns the current commit hash for a repository.
func getGitHash(repoDir string) string {
	headPath := filepath.Join(repoDir, ".git", "HEAD")
	data, err := os.ReadFile(headPath)
	if err != nil {
		return ""
	}

	content := strings.TrimSpace(string(data))

	// Direct hash (detached HEAD)
	if len(content) == 40 && isHex(content) {
		return content
	}

	// Reference (e.g., "ref: refs/heads/master")
	if ref, ok := strings.CutPrefix(content, "ref: "); ok {
		data, err := os.ReadFile(filepath.Join(repoDir, ".git", filepath.FromSlash(ref)))
		if err != nil {
			return ""
		}
		hash := strings.TrimSpace(string(data))
		if len(hash) >= 40 && isHex(hash[:40]) {
			return hash[:40]
		}
	}

	return ""
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

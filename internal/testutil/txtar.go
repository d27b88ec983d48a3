// SPDX-License-Identifier: MIT

// Package testutil provides golden-archive helpers for antsy tests.
package testutil

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Update rewrites golden archives with the generated output when set.
var Update = flag.Bool("update", false, "update golden files")

// Case is a golden test case parsed from a txtar archive.
type Case struct {
	// Name is the archive file name without extension.
	Name string

	// File is the archive path, used when updating.
	File string

	// Description is the archive comment.
	Description string

	// Flags holds the values of a "Flags: a, b" description line.
	Flags []string

	// InputName is "model.json" or "model.yaml".
	InputName string
	Input     []byte

	// Want maps unit paths to expected content.
	Want map[string][]byte

	archive *txtar.Archive
}

// ParseCase parses an archive holding one model file and want/* units.
func ParseCase(name string, ar *txtar.Archive) (*Case, error) {
	c := &Case{
		Name:        name,
		Description: string(ar.Comment),
		Want:        make(map[string][]byte),
		archive:     ar,
	}
	c.parseFlags()

	for _, f := range ar.Files {
		switch {
		case f.Name == "model.json" || f.Name == "model.yaml":
			if c.Input != nil {
				return nil, fmt.Errorf("%s: more than one model file", name)
			}
			c.InputName, c.Input = f.Name, f.Data
		case strings.HasPrefix(f.Name, "want/"):
			c.Want[strings.TrimPrefix(f.Name, "want/")] = f.Data
		default:
			return nil, fmt.Errorf("unexpected file in archive: %q (expected model.json, model.yaml or want/*)", f.Name)
		}
	}

	if c.Input == nil {
		return nil, fmt.Errorf("missing model.json or model.yaml in archive")
	}
	if len(c.Want) == 0 && !*Update {
		return nil, fmt.Errorf("missing want/* files in archive")
	}
	return c, nil
}

func (c *Case) parseFlags() {
	for line := range strings.SplitSeq(c.Description, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Flags:")
		if !ok {
			continue
		}
		for f := range strings.SplitSeq(rest, ",") {
			if f = strings.TrimSpace(f); f != "" {
				c.Flags = append(c.Flags, f)
			}
		}
		return
	}
}

// GenerateFunc produces units from a case.
type GenerateFunc func(c *Case) (map[string][]byte, error)

// Run generates the case and compares every unit with the archive. With
// -update the archive is rewritten instead.
func (c *Case) Run(t *testing.T, generate GenerateFunc) {
	t.Helper()

	got, err := generate(c)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if *Update && c.File != "" {
		if err := os.WriteFile(c.File, txtar.Format(UpdateArchive(c.archive, got)), 0o644); err != nil {
			t.Fatalf("update %s: %v", c.File, err)
		}
		t.Logf("updated %s", c.File)
		return
	}

	Compare(t, c.Want, got)
}

// Compare reports missing, unexpected and differing units.
func Compare(t *testing.T, want, got map[string][]byte) {
	t.Helper()
	for name := range want {
		if _, ok := got[name]; !ok {
			t.Errorf("missing output file: %q", name)
		}
	}
	for name := range got {
		if _, ok := want[name]; !ok {
			t.Errorf("unexpected output file: %q", name)
		}
	}
	for name, w := range want {
		g, ok := got[name]
		if !ok {
			continue
		}
		if diff := cmp.Diff(normalize(w), normalize(g)); diff != "" {
			t.Errorf("file %q mismatch (-want +got):\n%s", name, diff)
		}
	}
}

// normalize trims trailing whitespace per line and trailing newlines.
func normalize(content []byte) string {
	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// UpdateArchive returns ar with its want/* files replaced by got.
func UpdateArchive(ar *txtar.Archive, got map[string][]byte) *txtar.Archive {
	out := &txtar.Archive{Comment: ar.Comment}
	for _, f := range ar.Files {
		if !strings.HasPrefix(f.Name, "want/") {
			out.Files = append(out.Files, f)
		}
	}

	names := make([]string, 0, len(got))
	for name := range got {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		content := got[name]
		if len(content) > 0 && content[len(content)-1] != '\n' {
			content = append(content, '\n')
		}
		out.Files = append(out.Files, txtar.File{Name: "want/" + name, Data: content})
	}
	return out
}

// LoadCases loads every *.txtar case in dir, sorted by name.
func LoadCases(t *testing.T, dir string) []*Case {
	t.Helper()

	pattern := filepath.Join(dir, "*.txtar")
	files, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("glob %q: %v", pattern, err)
	}
	if len(files) == 0 {
		t.Fatalf("no txtar files found in %q", dir)
	}

	var cases []*Case
	for _, file := range files {
		ar, err := txtar.ParseFile(file)
		if err != nil {
			t.Fatalf("parse %q: %v", file, err)
		}
		name := strings.TrimSuffix(filepath.Base(file), ".txtar")
		c, err := ParseCase(name, ar)
		if err != nil {
			t.Fatalf("parse case %q: %v", name, err)
		}
		c.File = file
		cases = append(cases, c)
	}

	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases
}

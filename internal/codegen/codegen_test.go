// SPDX-License-Identifier: MIT
//
// Copyright 2026 Alberto Cavalcante. All rights reserved.
// Use of this source code is governed by a MIT-style license
// that can be found in the LICENSE file.

package codegen

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/albertocavalcante/antsy/internal/classify"
	"github.com/albertocavalcante/antsy/internal/errors"
	"github.com/albertocavalcante/antsy/internal/sink"
	"github.com/albertocavalcante/antsy/internal/testutil"
	"github.com/albertocavalcante/antsy/model"
)

const (
	ant         = "org.apache.tools.ant"
	out         = "org.copalis.antsy.ant"
	catalogName = "org.copalis.antsy.Tasks"
)

func testConfig() Config {
	return Config{Catalog: catalogName, OutPackage: out}
}

func ref(t *testing.T, s string) model.TypeRef {
	t.Helper()
	r, err := model.ParseTypeRef(s)
	if err != nil {
		t.Fatalf("ParseTypeRef(%q): %v", s, err)
	}
	return r
}

func method(t *testing.T, name, returns string, params ...string) *model.Method {
	t.Helper()
	m := &model.Method{Name: name, Returns: ref(t, returns), Modifiers: model.Modifiers{model.Public}}
	for i, p := range params {
		m.Params = append(m.Params, model.Param{Name: fmt.Sprintf("p%d", i), Type: ref(t, p)})
	}
	return m
}

func task(name string, methods ...*model.Method) *model.Type {
	return &model.Type{
		Name:       name,
		Modifiers:  model.Modifiers{model.Public},
		Superclass: ant + ".Task",
		Methods:    methods,
	}
}

func element(name string, methods ...*model.Method) *model.Type {
	return &model.Type{Name: name, Modifiers: model.Modifiers{model.Public}, Methods: methods}
}

func newModel(t *testing.T, types ...*model.Type) *model.Model {
	t.Helper()
	base := &model.Type{Name: ant + ".Task", Modifiers: model.Modifiers{model.Public, model.Abstract}}
	m, err := model.New(append([]*model.Type{base}, types...)...)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return m
}

func run(t *testing.T, m *model.Model, cfg Config) (*sink.Memory, *Result) {
	t.Helper()
	g, err := New(m, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mem := sink.NewMemory()
	res, err := g.Run(context.Background(), mem)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return mem, res
}

func unit(t *testing.T, mem *sink.Memory, path string) string {
	t.Helper()
	content, ok := mem.Get(path)
	if !ok {
		t.Fatalf("unit %s not written; have %v", path, mem.Paths())
	}
	return string(content)
}

func TestGolden(t *testing.T) {
	for _, c := range testutil.LoadCases(t, "testdata") {
		t.Run(c.Name, func(t *testing.T) {
			c.Run(t, func(c *testutil.Case) (map[string][]byte, error) {
				var m *model.Model
				var err error
				if filepath.Ext(c.InputName) == ".yaml" {
					m, err = model.DecodeYAML(c.Input)
				} else {
					m, err = model.DecodeJSON(c.Input)
				}
				if err != nil {
					return nil, err
				}

				var cfg Config
				for _, f := range c.Flags {
					k, v, _ := strings.Cut(f, "=")
					switch k {
					case "catalog":
						cfg.Catalog = v
					case "out":
						cfg.OutPackage = v
					case "runtime":
						cfg.RuntimePackage = v
					}
				}

				g, err := New(m, cfg)
				if err != nil {
					return nil, err
				}
				mem := sink.NewMemory()
				if _, err := g.Run(context.Background(), mem); err != nil {
					return nil, err
				}
				return mem.Files(), nil
			})
		})
	}
}

func TestRun_Scenario(t *testing.T) {
	demo := task(ant+".taskdefs.Demo",
		method(t, "setName", "void", "java.lang.String"),
		method(t, "createChild", ant+".types.Child"),
		method(t, "addConfiguredItem", "void", ant+".types.Item"),
	)
	m := newModel(t, demo, element(ant+".types.Child"), element(ant+".types.Item"))

	mem, res := run(t, m, testConfig())

	wantUnits := []string{
		"org/copalis/antsy/ant/taskdefs/Demo.java",
		"org/copalis/antsy/Tasks.java",
		"org/copalis/antsy/ant/types/Child.java",
		"org/copalis/antsy/ant/types/Item.java",
	}
	if diff := cmp.Diff(wantUnits, res.Units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}

	facade := unit(t, mem, "org/copalis/antsy/ant/taskdefs/Demo.java")
	for _, want := range []string{
		"public org.copalis.antsy.ant.taskdefs.Demo name(java.lang.String p0) //SET",
		"public org.copalis.antsy.ant.types.Child<org.copalis.antsy.ant.taskdefs.Demo> withChild() //CREATE",
		"public org.copalis.antsy.ant.types.Item<org.copalis.antsy.ant.taskdefs.Demo> item() //ADD_CONFIGURED",
		"org.copalis.antsy.ant.taskdefs.Demo.this.is().addConfiguredItem(is()); return super.end();",
	} {
		if !strings.Contains(facade, want) {
			t.Errorf("facade missing %q:\n%s", want, facade)
		}
	}

	if got := res.Kinds[classify.Set]; got != 1 {
		t.Errorf("Set count = %d, want 1", got)
	}
	if diff := cmp.Diff([]string{ant + ".taskdefs.Demo"}, res.Roots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}
	if res.Facades() != 3 {
		t.Errorf("Facades() = %d, want 3", res.Facades())
	}
}

func TestRun_Idempotent(t *testing.T) {
	m := newModel(t,
		task(ant+".taskdefs.Copy", method(t, "addFileset", "void", ant+".types.FileSet")),
		element(ant+".types.FileSet", method(t, "setDir", "void", "java.io.File")),
	)
	g, err := New(m, testConfig())
	if err != nil {
		t.Fatal(err)
	}

	first, second := sink.NewMemory(), sink.NewMemory()
	if _, err := g.Run(context.Background(), first); err != nil {
		t.Fatal(err)
	}
	if _, err := g.Run(context.Background(), second); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Files(), second.Files()); diff != "" {
		t.Errorf("second run differs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Paths(), second.Paths()); diff != "" {
		t.Errorf("write order differs (-first +second):\n%s", diff)
	}
}

func TestRun_NoDuplicateFacades(t *testing.T) {
	fileSet := ant + ".types.FileSet"
	m := newModel(t,
		task(ant+".taskdefs.Copy", method(t, "addFileset", "void", fileSet)),
		task(ant+".taskdefs.Delete", method(t, "addFileset", "void", fileSet), method(t, "createFileSet", fileSet)),
		element(fileSet, method(t, "appendOther", "void", fileSet)),
	)
	_, res := run(t, m, testConfig())

	seen := make(map[string]bool)
	for _, u := range res.Units {
		if seen[u] {
			t.Errorf("unit %s written twice", u)
		}
		seen[u] = true
	}
	if !seen["org/copalis/antsy/ant/types/FileSet.java"] {
		t.Error("FileSet facade not written")
	}
}

func TestRun_Shadowing(t *testing.T) {
	base := &model.Type{
		Name:       ant + ".taskdefs.Base",
		Modifiers:  model.Modifiers{model.Public, model.Abstract},
		Superclass: ant + ".Task",
		Methods: []*model.Method{
			{Name: "setMessage", Modifiers: model.Modifiers{model.Public}, Documentation: "Base doc.",
				Params: []model.Param{{Name: "m", Type: model.Declared("java.lang.String")}}},
			{Name: "setLevel", Modifiers: model.Modifiers{model.Public},
				Params: []model.Param{{Name: "l", Type: model.Primitive("int")}}},
		},
	}
	sub := task(ant+".taskdefs.Sub", &model.Method{
		Name: "setMessage", Modifiers: model.Modifiers{model.Public}, Documentation: "Sub doc.",
		Params: []model.Param{{Name: "m", Type: model.Declared("java.lang.String")}},
	})
	sub.Superclass = base.Name

	mem, _ := run(t, newModel(t, base, sub), testConfig())
	facade := unit(t, mem, "org/copalis/antsy/ant/taskdefs/Sub.java")

	if n := strings.Count(facade, " message(java.lang.String m) //SET"); n != 1 {
		t.Errorf("message setter rendered %d times, want 1:\n%s", n, facade)
	}
	if !strings.Contains(facade, "Sub doc.") || strings.Contains(facade, "Base doc.") {
		t.Errorf("subclass method did not shadow ancestor:\n%s", facade)
	}
	if !strings.Contains(facade, " level(int l) //SET") {
		t.Errorf("inherited setter missing:\n%s", facade)
	}
}

func TestRun_Catalog(t *testing.T) {
	a := task(ant + ".taskdefs.A")
	b := task(ant + ".taskdefs.B")
	b.Modifiers = append(b.Modifiers, model.Abstract)
	c := task(ant + ".taskdefs.C")
	c.Deprecated = true
	outside := task("com.example.D")
	nested := task(ant + ".taskdefs.A.Inner")
	nested.Enclosing = a.Name
	nested.Modifiers = append(nested.Modifiers, model.Static)

	mem, res := run(t, newModel(t, a, b, c, outside, nested), testConfig())
	cat := unit(t, mem, "org/copalis/antsy/Tasks.java")

	want := `package org.copalis.antsy;

/**
 * Class constants for Ant Task facades
 */
public interface Tasks {
    static Class<org.copalis.antsy.ant.taskdefs.A> a = org.copalis.antsy.ant.taskdefs.A.class;
}
`
	if diff := cmp.Diff(want, cat); diff != "" {
		t.Errorf("catalog mismatch (-want +got):\n%s", diff)
	}
	if res.Catalog != "org/copalis/antsy/Tasks.java" {
		t.Errorf("Catalog = %q", res.Catalog)
	}
	for _, path := range []string{"org/copalis/antsy/ant/taskdefs/B.java", "org/copalis/antsy/ant/taskdefs/C.java"} {
		if _, ok := mem.Get(path); ok {
			t.Errorf("unexpected facade %s", path)
		}
	}
}

func TestRun_CatalogOrderAndCollisions(t *testing.T) {
	m := newModel(t,
		task(ant+".taskdefs.Zip"),
		task(ant+".taskdefs.optional.Echo"),
		task(ant+".taskdefs.Echo"),
		task(ant+".taskdefs.Import"),
	)
	mem, res := run(t, m, testConfig())

	wantRoots := []string{
		ant + ".taskdefs.Echo",
		ant + ".taskdefs.optional.Echo",
		ant + ".taskdefs.Import",
		ant + ".taskdefs.Zip",
	}
	if diff := cmp.Diff(wantRoots, res.Roots); diff != "" {
		t.Errorf("roots mismatch (-want +got):\n%s", diff)
	}

	cat := unit(t, mem, "org/copalis/antsy/Tasks.java")
	for _, want := range []string{
		"Class<org.copalis.antsy.ant.taskdefs.Echo> echo =",
		"Class<org.copalis.antsy.ant.taskdefs.optional.Echo> echo_2 =",
		"Class<org.copalis.antsy.ant.taskdefs.Import> import_ =",
		"Class<org.copalis.antsy.ant.taskdefs.Zip> zip =",
	} {
		if !strings.Contains(cat, want) {
			t.Errorf("catalog missing %q:\n%s", want, cat)
		}
	}
}

func TestRun_SkipsDeprecatedMembers(t *testing.T) {
	old := method(t, "setOld", "void", "java.lang.String")
	old.Annotations = []string{"Deprecated"}
	m := newModel(t, task(ant+".taskdefs.T", old, method(t, "setNew", "void", "java.lang.String")))

	mem, res := run(t, m, testConfig())
	facade := unit(t, mem, "org/copalis/antsy/ant/taskdefs/T.java")
	if strings.Contains(facade, "setOld") {
		t.Errorf("deprecated method rendered:\n%s", facade)
	}
	if res.Deprecated != 1 {
		t.Errorf("Deprecated = %d, want 1", res.Deprecated)
	}
}

func TestRun_TryShim(t *testing.T) {
	throws := method(t, "setFile", "void", "java.io.File")
	throws.Throws = []string{"java.io.IOException"}
	m := newModel(t, task(ant+".taskdefs.T", throws, method(t, "setName", "void", "java.lang.String")))

	mem, _ := run(t, m, testConfig())
	facade := unit(t, mem, "org/copalis/antsy/ant/taskdefs/T.java")
	if !strings.Contains(facade, "{try {is().setFile(p0); return this;} catch (Exception e) {throw new RuntimeException(e);}}") {
		t.Errorf("missing shim:\n%s", facade)
	}
	if !strings.Contains(facade, "{is().setName(p0); return this;}") {
		t.Errorf("unexpected shim on non-throwing method:\n%s", facade)
	}
}

func TestRun_UnhandledComment(t *testing.T) {
	m := newModel(t, task(ant+".taskdefs.T", method(t, "resolve", ant+".types.Thing")))
	mem, res := run(t, m, testConfig())
	facade := unit(t, mem, "org/copalis/antsy/ant/taskdefs/T.java")
	if !strings.Contains(facade, "    // unhandled: resolve() - org.apache.tools.ant.types.Thing\n") {
		t.Errorf("missing unhandled marker:\n%s", facade)
	}
	if res.Kinds[classify.Unhandled] != 1 {
		t.Errorf("Unhandled count = %d, want 1", res.Kinds[classify.Unhandled])
	}
}

func TestRun_ElementWithoutPublicConstructor(t *testing.T) {
	path := element(ant + ".types.Path")
	path.Constructors = []model.Constructor{{
		Modifiers: model.Modifiers{model.Public},
		Params:    []model.Param{{Name: "p", Type: model.Declared(ant + ".Project")}},
	}}
	m := newModel(t, task(ant+".taskdefs.T", method(t, "createPath", ant+".types.Path")), path)

	mem, _ := run(t, m, testConfig())
	facade := unit(t, mem, "org/copalis/antsy/ant/types/Path.java")
	if strings.Contains(facade, "create()") {
		t.Errorf("non-constructable element got a create() factory:\n%s", facade)
	}
	if !strings.Contains(facade, "public Path(org.apache.tools.ant.types.Path element, P parent) {super(element, parent);}") {
		t.Errorf("missing constructor:\n%s", facade)
	}
}

type recorder struct {
	facades []string
	members []string
}

func (r *recorder) Facade(f Facade) { r.facades = append(r.facades, f.Name) }

func (r *recorder) Member(f Facade, cl classify.Classification) {
	r.members = append(r.members, f.Name+"#"+cl.Method.Name+"="+cl.Kind.String())
}

func TestRun_Observer(t *testing.T) {
	m := newModel(t,
		task(ant+".taskdefs.T", method(t, "createChild", ant+".types.Child"), method(t, "getX", "int")),
		element(ant+".types.Child", method(t, "setY", "void", "int")),
	)
	rec := &recorder{}
	cfg := testConfig()
	cfg.Observer = rec
	run(t, m, cfg)

	if diff := cmp.Diff([]string{out + ".taskdefs.T", out + ".types.Child"}, rec.facades); diff != "" {
		t.Errorf("facades mismatch (-want +got):\n%s", diff)
	}
	wantMembers := []string{
		out + ".taskdefs.T#createChild=CREATE",
		out + ".taskdefs.T#getX=IGNORE",
		out + ".types.Child#setY=SET",
	}
	if diff := cmp.Diff(wantMembers, rec.members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

type failingSink struct{ after int }

func (s *failingSink) WriteFile(context.Context, string, []byte) error {
	if s.after == 0 {
		return errors.New("disk full")
	}
	s.after--
	return nil
}

func TestRun_SinkFailure(t *testing.T) {
	m := newModel(t, task(ant+".taskdefs.A"), task(ant+".taskdefs.B"))
	g, err := New(m, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	res, err := g.Run(context.Background(), &failingSink{after: 1})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "org/copalis/antsy/ant/taskdefs/B.java") {
		t.Errorf("error does not name the unit: %v", err)
	}
	if diff := cmp.Diff([]string{"org/copalis/antsy/ant/taskdefs/A.java"}, res.Units); diff != "" {
		t.Errorf("units mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_Cancelled(t *testing.T) {
	g, err := New(newModel(t, task(ant+".taskdefs.A")), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Run(ctx, sink.NewMemory()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", testConfig(), false},
		{"no catalog", Config{OutPackage: out}, true},
		{"unqualified catalog", Config{Catalog: "Tasks", OutPackage: out}, true},
		{"no package", Config{Catalog: catalogName}, true},
		{"trailing dot", Config{Catalog: catalogName, OutPackage: "org.copalis."}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("error %v is not ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New(nil, testConfig()); !errors.Is(err, errors.ErrInvalidModel) {
		t.Errorf("New(nil) error = %v", err)
	}
}

func TestFacadeNames(t *testing.T) {
	outer := element(ant + ".types.Outer")
	inner := element(ant + ".types.Outer.Inner")
	inner.Enclosing = outer.Name
	deep := element(ant + ".types.Outer.Inner.Deep")
	deep.Enclosing = inner.Name
	detached := element(ant + ".types.Gone.Child")
	detached.Enclosing = ant + ".types.Gone"
	foreign := element("com.example.Widget")
	m := newModel(t, outer, inner, deep, detached, foreign)

	n := &namer{model: m, fw: classify.Ant(), base: out, runtime: DefaultRuntimePackage}
	base, _ := m.Lookup(ant + ".Task")

	tests := []struct {
		typ      *model.Type
		want     string
		wantPath string
	}{
		{outer, out + ".types.Outer", "org/copalis/antsy/ant/types/Outer.java"},
		{inner, out + ".types.Outer_Inner", "org/copalis/antsy/ant/types/Outer_Inner.java"},
		{deep, out + ".types.Outer_Inner_Deep", "org/copalis/antsy/ant/types/Outer_Inner_Deep.java"},
		{detached, out + ".types.Gone_Child", "org/copalis/antsy/ant/types/Gone_Child.java"},
		{foreign, "com.example.Widget", "com/example/Widget.java"},
		{base, "org.copalis.antsy.AntTask<org.apache.tools.ant.Task>", ""},
	}
	for _, tc := range tests {
		t.Run(tc.typ.Name, func(t *testing.T) {
			f := n.facade(tc.typ, false)
			if f.Name != tc.want {
				t.Errorf("name = %q, want %q", f.Name, tc.want)
			}
			if tc.wantPath != "" && f.Path != tc.wantPath {
				t.Errorf("path = %q, want %q", f.Path, tc.wantPath)
			}
		})
	}
}

func TestJavaType(t *testing.T) {
	tests := []struct {
		ref  model.TypeRef
		want string
	}{
		{model.Primitive("int"), "int"},
		{model.Declared("java.io.File"), "java.io.File"},
		{model.ArrayOf(model.Declared("java.lang.String")), "java.lang.String..."},
		{model.ArrayOf(model.ArrayOf(model.Primitive("int"))), "int[]..."},
		{model.TypeVar("T"), "java.lang.Object"},
		{model.ArrayOf(model.TypeVar("T")), "java.lang.Object..."},
	}
	for _, tc := range tests {
		if got := javaType(tc.ref); got != tc.want {
			t.Errorf("javaType(%v) = %q, want %q", tc.ref, got, tc.want)
		}
	}
}

func TestWriterDoc(t *testing.T) {
	w := &writer{indent: 1}
	w.doc("First line.\r\n\r\n  Indented */ text   \n\n")
	w.doc("   ")
	want := "    /**\n     * First line.\n     *   Indented *&#47; text\n     */\n"
	if got := string(w.bytes()); got != want {
		t.Errorf("doc = %q, want %q", got, want)
	}
}

func TestWorklist(t *testing.T) {
	m := newModel(t,
		task(ant+".taskdefs.Echo"),
		element(ant+".types.A"),
		element(ant+".types.B"),
		element("com.example.C"),
	)
	lookup := func(name string) *model.Type {
		typ, _ := m.Lookup(name)
		return typ
	}
	w := NewWorklist(classify.NewPredicates(m, classify.Ant()))

	if w.Enqueue(nil) {
		t.Error("enqueued nil")
	}
	if w.Enqueue(lookup(ant + ".taskdefs.Echo")) {
		t.Error("enqueued a task")
	}
	if w.Enqueue(lookup("com.example.C")) {
		t.Error("enqueued a foreign type")
	}
	if !w.Enqueue(lookup(ant+".types.B")) || !w.Enqueue(lookup(ant+".types.A")) {
		t.Fatal("framework types rejected")
	}
	if w.Enqueue(lookup(ant + ".types.B")) {
		t.Error("enqueued B twice")
	}
	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}

	var order []string
	for {
		typ, ok := w.Pop()
		if !ok {
			break
		}
		order = append(order, typ.SimpleName())
	}
	if !slices.Equal(order, []string{"B", "A"}) {
		t.Errorf("pop order = %v, want [B A]", order)
	}
	if w.Enqueue(lookup(ant + ".types.A")) {
		t.Error("re-enqueued a popped type")
	}
	if !w.Seen(ant + ".types.A") {
		t.Error("Seen(A) = false")
	}
}

func TestRun_Header(t *testing.T) {
	cfg := testConfig()
	cfg.Header = []string{"Code generated by antsy. DO NOT EDIT.", "Source: test"}
	mem, _ := run(t, newModel(t, task(ant+".taskdefs.A")), cfg)

	want := "// Code generated by antsy. DO NOT EDIT.\n// Source: test\npackage org.copalis.antsy.ant.taskdefs;\n\n"
	if got := unit(t, mem, "org/copalis/antsy/ant/taskdefs/A.java"); !strings.HasPrefix(got, want) {
		t.Errorf("unit does not start with header:\n%s", got)
	}
}

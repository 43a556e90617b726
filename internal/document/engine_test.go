/*
MIT License

Copyright (c) 2025 Yuval Adar <adary@adary.org>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/

package document

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func decode(t *testing.T, data []byte) any {
	t.Helper()
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("Failed to decode %s: %v", data, err)
	}
	return v
}

func load(t *testing.T, src string) *Engine {
	t.Helper()
	e := New()
	if err := e.Load([]byte(src)); err != nil {
		t.Fatalf("Failed to load document: %v", err)
	}
	return e
}

func exportJSON(t *testing.T, e *Engine) []byte {
	t.Helper()
	data, err := e.ExportClean().JSON()
	if err != nil {
		t.Fatalf("Failed to export: %v", err)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	src := `[
		{"name": "prod", "env": {"account": "123", "region": "us-east-1"}, "style": {"navigationBackgroundColor": "#112233"}},
		{"env": [{"account": "1", "region": "eu-west-1"}, {"account": "", "region": ""}, {"account": "2", "region": ""}], "_cache": {"x": 1}},
		{"style": {}, "extra": [1, 2, {"deep": null}]},
		{"_collapsed": true, "env": []}
	]`
	want := `[
		{"name": "prod", "env": {"account": "123", "region": "us-east-1"}, "style": {"navigationBackgroundColor": "#112233"}},
		{"env": [{"account": "1", "region": "eu-west-1"}, {"account": "2", "region": ""}]},
		{"style": {}, "extra": [1, 2, {"deep": null}]},
		{"env": []}
	]`

	got := decode(t, exportJSON(t, load(t, src)))
	if !reflect.DeepEqual(got, decode(t, []byte(want))) {
		t.Errorf("Expected %s, got %v", want, got)
	}
}

func TestKeyOrderPreserved(t *testing.T) {
	e := load(t, `[{"zeta": 1, "env": [], "alpha": "a", "style": {"b": "#000000", "a": "#ffffff"}}]`)

	got, err := e.ExportClean().MarshalJSON()
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	want := `[{"zeta":1,"env":[],"alpha":"a","style":{"b":"#000000","a":"#ffffff"}}]`
	if string(got) != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestBlockKeysFollowFileOrder(t *testing.T) {
	e := load(t, `[{"style": {}, "name": "x"}, {}]`)

	first, err := e.Block(0)
	if err != nil {
		t.Fatalf("Failed to get block: %v", err)
	}
	if got := first.Keys(); !reflect.DeepEqual(got, []string{"style", "name"}) {
		t.Errorf("Expected [style name], got %v", got)
	}
	second, _ := e.Block(1)
	if got := second.Keys(); len(got) != 0 {
		t.Errorf("Expected no keys for an empty block, got %v", got)
	}
}

func TestSingularShapeKept(t *testing.T) {
	e := load(t, `[{"env": {"account": "123", "region": "us-east-1"}, "style": {}}]`)

	b, _ := e.Block(0)
	if b.Environments().Shape != ShapeSingular {
		t.Errorf("Expected singular shape, got %s", b.Environments().Shape)
	}
	if len(b.Bindings()) != 1 {
		t.Fatalf("Expected 1 binding, got %d", len(b.Bindings()))
	}

	if err := e.Sync(e.Snapshot()); err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}
	got := decode(t, exportJSON(t, e))
	env := got.([]any)[0].(map[string]any)["env"]
	if _, ok := env.(map[string]any); !ok {
		t.Errorf("Expected env to stay an object, got %v", env)
	}
}

func TestSingularEmptiedBecomesList(t *testing.T) {
	e := load(t, `[{"env": {"account": "123", "region": "us-east-1"}, "style": {}}]`)

	err := e.Sync([]BlockEdit{{Bindings: []Binding{{Account: "", Region: "  "}}}})
	if err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}
	got := decode(t, exportJSON(t, e))
	want := decode(t, []byte(`[{"env": [], "style": {}}]`))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSingularGrowsToList(t *testing.T) {
	e := load(t, `[{"env": {"account": "1", "region": "us-east-1"}}]`)
	if _, err := e.AddEnvironment(0, Binding{Account: "2", Region: "eu-west-1"}); err != nil {
		t.Fatalf("Failed to add environment: %v", err)
	}

	got := decode(t, exportJSON(t, e))
	want := decode(t, []byte(`[{"env": [{"account": "1", "region": "us-east-1"}, {"account": "2", "region": "eu-west-1"}]}]`))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEmptySingularBindingExportsEmptyList(t *testing.T) {
	e := load(t, `[{"env": {"account": "", "region": ""}, "style": {}}]`)

	got := decode(t, exportJSON(t, e))
	want := decode(t, []byte(`[{"env": [], "style": {}}]`))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestAbsentEnv(t *testing.T) {
	e := load(t, `[{"style": {"a": "#000000"}}]`)

	b, _ := e.Block(0)
	if b.Environments().Shape != ShapeAbsent {
		t.Errorf("Expected absent shape, got %s", b.Environments().Shape)
	}
	if len(b.Bindings()) != 0 {
		t.Errorf("Expected no bindings, got %d", len(b.Bindings()))
	}
	if strings.Contains(string(exportJSON(t, e)), "env") {
		t.Errorf("Expected env to stay absent, got %s", exportJSON(t, e))
	}

	if _, err := e.AddEnvironment(0, Binding{Account: "9"}); err != nil {
		t.Fatalf("Failed to add environment: %v", err)
	}
	got := decode(t, exportJSON(t, e))
	want := decode(t, []byte(`[{"style": {"a": "#000000"}, "env": [{"account": "9", "region": ""}]}]`))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestInternalKeysStripped(t *testing.T) {
	e := load(t, `[{"_collapsed": true, "_style_widgets": [], "env": [], "collapsed": "kept"}]`)

	b, _ := e.Block(0)
	if b.Collapsed() {
		t.Error("Expected block to start expanded")
	}
	keys := b.Keys()
	want := []string{"env", "collapsed"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Expected keys %v, got %v", want, keys)
	}
}

func TestLoadJSON5(t *testing.T) {
	e := load(t, `[
		// production
		{"env": [{"account": "1", "region": "us-east-1",},], "style": {},},
	]`)
	if e.Len() != 1 {
		t.Errorf("Expected 1 block, got %d", e.Len())
	}
}

func TestLoadMalformedKeepsDocument(t *testing.T) {
	e := load(t, `[{"env": []}, {"env": []}]`)

	inputs := []string{
		``,
		`not json`,
		`{}`,
		`[1]`,
		`[{"env": "us-east-1"}]`,
		`[{"env": [1]}]`,
		`[{"env": {"account": 123}}]`,
		`[{"style": {"nav": 1}}]`,
		`[{"style": []}]`,
	}
	for _, input := range inputs {
		err := e.Load([]byte(input))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("Expected ErrMalformedDocument for %q, got %v", input, err)
		}
		if e.Len() != 2 {
			t.Errorf("Expected document to keep 2 blocks after %q, got %d", input, e.Len())
		}
	}
}

func TestLoadResetsCollapsed(t *testing.T) {
	e := load(t, `[{"env": []}]`)
	e.CollapseAll()
	if err := e.Load([]byte(`[{"env": []}]`)); err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	b, _ := e.Block(0)
	if b.Collapsed() {
		t.Error("Expected reload to reset collapsed state")
	}
}

func TestAppendBlock(t *testing.T) {
	e := load(t, `[{"env": []}]`)

	idx := e.AppendBlock()
	if idx != 1 || e.Len() != 2 {
		t.Fatalf("Expected new block at index 1 of 2, got %d of %d", idx, e.Len())
	}
	b, _ := e.Block(idx)
	if b.Collapsed() {
		t.Error("Expected new block to be expanded")
	}
	if len(b.Bindings()) != 0 {
		t.Errorf("Expected no bindings, got %d", len(b.Bindings()))
	}

	got := decode(t, exportJSON(t, e)).([]any)[1]
	want := decode(t, []byte(`{"env": [], "style": {"navigationBackgroundColor": "#ffffff", "accountMenuButtonBackgroundColor": "#ffffff"}}`))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDeleteBlock(t *testing.T) {
	e := load(t, `[{"name": "a"}, {"name": "b"}, {"name": "c"}]`)

	if err := e.DeleteBlock(5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	if err := e.DeleteBlock(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	if e.Len() != 3 {
		t.Fatalf("Expected 3 blocks, got %d", e.Len())
	}

	if err := e.DeleteBlock(1); err != nil {
		t.Fatalf("Failed to delete block: %v", err)
	}
	got := decode(t, exportJSON(t, e))
	want := decode(t, []byte(`[{"name": "a"}, {"name": "c"}]`))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestEnvironmentEntries(t *testing.T) {
	e := load(t, `[{"env": [{"account": "1", "region": "a"}]}]`)

	j, err := e.AddEnvironment(0, Binding{})
	if err != nil || j != 1 {
		t.Fatalf("Expected entry 1, got %d (%v)", j, err)
	}
	if _, err := e.AddEnvironment(3, Binding{}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	if err := e.RemoveEnvironment(0, 2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}

	b, _ := e.Block(0)
	if len(b.Bindings()) != 2 {
		t.Fatalf("Expected 2 bindings, got %d", len(b.Bindings()))
	}

	if err := e.RemoveEnvironment(0, 0); err != nil {
		t.Fatalf("Failed to remove environment: %v", err)
	}
	b, _ = e.Block(0)
	if len(b.Bindings()) != 1 || !b.Bindings()[0].IsEmpty() {
		t.Errorf("Expected the empty binding to remain, got %v", b.Bindings())
	}
	if got := string(exportJSON(t, e)); !strings.Contains(got, `"env": []`) {
		t.Errorf("Expected empty binding to be dropped on export, got %s", got)
	}
}

func TestCollapseNotSerialized(t *testing.T) {
	e := load(t, `[{"env": []}, {"env": []}]`)
	before := exportJSON(t, e)

	if err := e.SetCollapsed(0, true); err != nil {
		t.Fatalf("Failed to collapse: %v", err)
	}
	if err := e.ToggleCollapsed(1); err != nil {
		t.Fatalf("Failed to toggle: %v", err)
	}
	if err := e.SetCollapsed(2, true); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
	for i := 0; i < 2; i++ {
		b, _ := e.Block(i)
		if !b.Collapsed() {
			t.Errorf("Expected block %d collapsed", i)
		}
	}
	if string(exportJSON(t, e)) != string(before) {
		t.Errorf("Expected collapse to leave export unchanged, got %s", exportJSON(t, e))
	}

	e.ExpandAll()
	for _, b := range e.Blocks() {
		if b.Collapsed() {
			t.Error("Expected every block expanded")
		}
	}
	e.CollapseAll()
	for _, b := range e.Blocks() {
		if !b.Collapsed() {
			t.Error("Expected every block collapsed")
		}
	}
}

func TestSync(t *testing.T) {
	e := load(t, `[{"env": [{"account": "1", "region": "a"}], "style": {"nav": "#000000", "menu": "#111111"}}, {"name": "x"}]`)

	edits := e.Snapshot()
	edits[0].Bindings = []Binding{
		{Account: " 2 ", Region: " us-west-2 "},
		{Account: " ", Region: ""},
		{Account: "", Region: "eu-west-1"},
	}
	edits[0].Style = map[string]string{"menu": "#222222", "link": "#333333", "accent": "#444444"}

	if err := e.Sync(edits); err != nil {
		t.Fatalf("Failed to sync: %v", err)
	}

	b, _ := e.Block(0)
	wantBindings := []Binding{{Account: "2", Region: "us-west-2"}, {Account: "", Region: "eu-west-1"}}
	if !reflect.DeepEqual(b.Bindings(), wantBindings) {
		t.Errorf("Expected %v, got %v", wantBindings, b.Bindings())
	}
	wantStyle := []StyleEntry{
		{Key: "nav", Value: "#000000"},
		{Key: "menu", Value: "#222222"},
		{Key: "accent", Value: "#444444"},
		{Key: "link", Value: "#333333"},
	}
	if !reflect.DeepEqual(b.Style(), wantStyle) {
		t.Errorf("Expected %v, got %v", wantStyle, b.Style())
	}

	second, _ := e.Block(1)
	if !reflect.DeepEqual(second.Keys(), []string{"name"}) {
		t.Errorf("Expected untouched block keys [name], got %v", second.Keys())
	}
}

func TestSyncMismatch(t *testing.T) {
	e := load(t, `[{"env": [{"account": "1", "region": "a"}]}, {"env": []}]`)

	err := e.Sync([]BlockEdit{{Bindings: nil}})
	if !errors.Is(err, ErrSnapshotMismatch) {
		t.Errorf("Expected ErrSnapshotMismatch, got %v", err)
	}
	b, _ := e.Block(0)
	if len(b.Bindings()) != 1 {
		t.Errorf("Expected document untouched, got %v", b.Bindings())
	}
}

func TestSetStyle(t *testing.T) {
	e := load(t, `[{"env": []}]`)

	if err := e.SetStyle(0, map[string]string{"accountMenuButtonBackgroundColor": "#00ffff", "navigationBackgroundColor": "#ff0000"}); err != nil {
		t.Fatalf("Failed to set style: %v", err)
	}
	b, _ := e.Block(0)
	if v, _ := b.StyleValue("navigationBackgroundColor"); v != "#ff0000" {
		t.Errorf("Expected #ff0000, got %s", v)
	}
	if _, ok := b.StyleValue("missing"); ok {
		t.Error("Expected missing key to be absent")
	}
	if err := e.SetStyle(1, map[string]string{"a": "#000000"}); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestBlockIsCopy(t *testing.T) {
	e := load(t, `[{"env": [{"account": "1", "region": "a"}]}]`)

	b, _ := e.Block(0)
	b.Bindings()[0].Account = "changed"
	b.env.Bindings[0].Account = "changed"

	fresh, _ := e.Block(0)
	if fresh.Bindings()[0].Account != "1" {
		t.Errorf("Expected engine state untouched, got %s", fresh.Bindings()[0].Account)
	}
	if _, err := e.Block(1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestExportMatchesSchema(t *testing.T) {
	e := load(t, `[{"env": {"account": "1", "region": "a"}, "style": {"x": "#000000"}}, {"env": [{"account": "", "region": ""}]}]`)
	e.AppendBlock()

	if err := Validate(exportJSON(t, e)); err != nil {
		t.Errorf("Expected export to satisfy the schema, got %v", err)
	}
}

func TestExportIndentation(t *testing.T) {
	e := load(t, `[{"env": []}]`)

	want := "[\n  {\n    \"env\": []\n  }\n]\n"
	if got := string(exportJSON(t, e)); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	empty, err := New().ExportClean().JSON()
	if err != nil {
		t.Fatalf("Failed to export empty document: %v", err)
	}
	if string(empty) != "[]\n" {
		t.Errorf("Expected empty array, got %q", empty)
	}
}

func TestExportYAML(t *testing.T) {
	e := load(t, `[{"name": "prod", "env": [{"account": "123", "region": "us-east-1"}], "style": {"navigationBackgroundColor": "#112233"}}]`)

	data, err := e.ExportClean().YAML()
	if err != nil {
		t.Fatalf("Failed to export YAML: %v", err)
	}
	if strings.Contains(string(data), "{") {
		t.Errorf("Expected block style YAML, got %s", data)
	}

	var got any
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("Failed to parse YAML: %v", err)
	}
	want := decode(t, exportJSON(t, e))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	e := load(t, `[{"env": {"account": "1", "region": "a"}, "_tmp": 1}]`)
	if err := e.Save(path); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if strings.Contains(string(data), "_tmp") {
		t.Errorf("Expected internal key stripped, got %s", data)
	}

	reloaded := New()
	if err := reloaded.LoadFile(path); err != nil {
		t.Fatalf("Failed to load saved file: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Errorf("Expected 1 block, got %d", reloaded.Len())
	}

	if err := reloaded.LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
	if reloaded.Len() != 1 {
		t.Errorf("Expected document kept after failed load, got %d blocks", reloaded.Len())
	}
}

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

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/adaryorg/peacock/internal/config"
	"github.com/adaryorg/peacock/internal/picklist"
	"github.com/adaryorg/peacock/internal/storage"
)

const sampleDocument = `[
  {
    "name": "prod",
    "env": {"account": "123", "region": "us-east-1"},
    "style": {"navigationBackgroundColor": "#112233"},
    "_note": "internal"
  }
]`

type testEnv struct {
	home       string
	configPath string
	docPath    string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	docPath := filepath.Join(home, "doc.json")
	if err := os.WriteFile(docPath, []byte(sampleDocument), 0644); err != nil {
		t.Fatal(err)
	}
	return testEnv{
		home:       home,
		configPath: filepath.Join(home, "peacock.toml"),
		docPath:    docPath,
	}
}

func (e testEnv) execute(sub *cobra.Command, args ...string) (string, error) {
	root := &cobra.Command{Use: "peacock", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.AddCommand(sub)
	root.SetArgs(append(args, "--config", e.configPath))
	out := bytes.NewBuffer(nil)
	root.SetOut(out)
	root.SetErr(bytes.NewBuffer(nil))
	err := root.Execute()
	return out.String(), err
}

func (e testEnv) config(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(e.configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func TestSetupCreatesConfig(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.execute(VersionCmd(), "version"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// version does not load config
	if _, err := os.Stat(env.configPath); err == nil {
		t.Errorf("Expected no config file for version")
	}

	if _, err := env.execute(ThemeCmd(), "theme"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := env.execute(PicklistCmd(), "picklist", "regions", "list"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := os.Stat(env.configPath); err != nil {
		t.Errorf("Expected config file to be created, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.execute(ExportCmd(), "export", env.docPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var got any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("Expected JSON output, got %q: %v", out, err)
	}
	var want any
	json.Unmarshal([]byte(`[{"name":"prod","env":{"account":"123","region":"us-east-1"},"style":{"navigationBackgroundColor":"#112233"}}]`), &want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if !strings.HasPrefix(out, "[\n  {\n    \"name\"") {
		t.Errorf("Expected 2-space indentation, got %q", out)
	}
}

func TestExportYAML(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.execute(ExportCmd(), "export", env.docPath, "--format", "yaml")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, want := range []string{"name: prod", "account: \"123\"", "region: us-east-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected YAML to contain %q, got:\n%s", want, out)
		}
	}
	if strings.Contains(out, "_note") {
		t.Errorf("Expected internal keys to be stripped, got:\n%s", out)
	}
}

func TestExportErrors(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.execute(ExportCmd(), "export", env.docPath, "--format", "xml"); err == nil {
		t.Errorf("Expected error for unknown format")
	}
	if _, err := env.execute(ExportCmd(), "export", filepath.Join(env.home, "missing.json")); err == nil {
		t.Errorf("Expected error for missing document")
	}
	if _, err := env.execute(ExportCmd(), "export"); err == nil {
		t.Errorf("Expected error without a file argument")
	}
}

func TestExportCopyRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	var copied string
	orig := copyToClipboard
	copyToClipboard = func(content string) error {
		copied = content
		return nil
	}
	defer func() { copyToClipboard = orig }()

	out, err := env.execute(ExportCmd(), "export", env.docPath, "--copy")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if copied != out {
		t.Errorf("Expected clipboard to receive the printed export")
	}

	cfg := env.config(t)
	history, err := storage.New(cfg.Files.History, cfg.History.MaxEntries)
	if err != nil {
		t.Fatalf("Failed to open history: %v", err)
	}
	entries, err := history.List()
	history.Close()
	if err != nil {
		t.Fatalf("Failed to list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(entries))
	}
	if entries[0].Target != storage.TargetClipboard {
		t.Errorf("Expected target %q, got %q", storage.TargetClipboard, entries[0].Target)
	}

	listed, err := env.execute(HistoryCmd(), "history", "list")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(listed, entries[0].ID) {
		t.Errorf("Expected history list to contain %s, got %q", entries[0].ID, listed)
	}

	shown, err := env.execute(HistoryCmd(), "history", "show", entries[0].ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if shown != out {
		t.Errorf("Expected history show to print the export, got %q", shown)
	}
}

func TestExportCopyFailure(t *testing.T) {
	env := newTestEnv(t)
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no display") }
	defer func() { copyToClipboard = orig }()

	if _, err := env.execute(ExportCmd(), "export", env.docPath, "--copy"); err == nil {
		t.Errorf("Expected copy failure to be reported")
	}
}

func TestHistoryEmptyAndMissing(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.execute(HistoryCmd(), "history", "list")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "No exports recorded") {
		t.Errorf("Expected empty history message, got %q", out)
	}

	_, err = env.execute(HistoryCmd(), "history", "show", "nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.execute(SummaryCmd(), "summary", env.docPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "Block 1\n  123 - us-east-1\n" {
		t.Errorf("Expected raw id summary, got %q", out)
	}

	if _, err := env.execute(PicklistCmd(), "picklist", "accounts", "add", "123", "Prod"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, err = env.execute(SummaryCmd(), "summary", env.docPath)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "Block 1\n  Prod (123) - us-east-1\n" {
		t.Errorf("Expected named summary, got %q", out)
	}
}

func TestSummaryEmptyBlock(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.home, "empty.json")
	os.WriteFile(path, []byte(`[{"env": []}]`), 0644)

	out, err := env.execute(SummaryCmd(), "summary", path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "Block 1\n  Empty Configuration\n" {
		t.Errorf("Expected placeholder, got %q", out)
	}
}

func TestThemeSeeded(t *testing.T) {
	env := newTestEnv(t)
	first, err := env.execute(ThemeCmd(), "theme", "--seed", "7")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, _ := env.execute(ThemeCmd(), "theme", "--seed", "7")
	if first != second {
		t.Errorf("Expected identical output for the same seed, got %q and %q", first, second)
	}
	if !strings.Contains(first, "navigationBackgroundColor: #") ||
		!strings.Contains(first, "accountMenuButtonBackgroundColor: #") {
		t.Errorf("Expected both style keys, got %q", first)
	}
}

func TestPicklistRegions(t *testing.T) {
	env := newTestEnv(t)
	for _, region := range []string{"us-west-2", "eu-west-1"} {
		if _, err := env.execute(PicklistCmd(), "picklist", "regions", "add", region); err != nil {
			t.Fatalf("Unexpected error adding %s: %v", region, err)
		}
	}
	_, err := env.execute(PicklistCmd(), "picklist", "regions", "add", "us-west-2")
	if !errors.Is(err, picklist.ErrDuplicateRegion) {
		t.Errorf("Expected ErrDuplicateRegion, got %v", err)
	}

	out, err := env.execute(PicklistCmd(), "picklist", "regions", "list")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "eu-west-1\nus-west-2\n" {
		t.Errorf("Expected sorted regions, got %q", out)
	}

	if _, err := env.execute(PicklistCmd(), "picklist", "regions", "remove", "eu-west-1"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	_, err = env.execute(PicklistCmd(), "picklist", "regions", "remove", "eu-west-1")
	if !errors.Is(err, picklist.ErrRegionNotFound) {
		t.Errorf("Expected ErrRegionNotFound, got %v", err)
	}

	store := picklist.Open(env.config(t).Files.Picklists)
	if got := store.Regions(); !reflect.DeepEqual(got, []string{"us-west-2"}) {
		t.Errorf("Expected [us-west-2] on disk, got %v", got)
	}
}

func TestPicklistAccounts(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.execute(PicklistCmd(), "picklist", "accounts", "list")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out != "No accounts\n" {
		t.Errorf("Expected empty message, got %q", out)
	}

	if _, err := env.execute(PicklistCmd(), "picklist", "accounts", "add", "456", "Staging"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out, _ = env.execute(PicklistCmd(), "picklist", "accounts", "list")
	if out != "456\tStaging\n" {
		t.Errorf("Expected one account, got %q", out)
	}

	_, err = env.execute(PicklistCmd(), "picklist", "accounts", "remove", "999")
	if !errors.Is(err, picklist.ErrAccountNotFound) {
		t.Errorf("Expected ErrAccountNotFound, got %v", err)
	}
}

func TestIndent(t *testing.T) {
	if got := indent("a\nb"); got != "  a\n  b" {
		t.Errorf("Expected indented lines, got %q", got)
	}
}

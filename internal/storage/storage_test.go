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

package storage

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func createTestStorage(t *testing.T, maxEntries int) *Storage {
	t.Helper()
	storage, err := New(filepath.Join(t.TempDir(), "nested", "history.db"), maxEntries)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() {
		storage.Close()
	})
	return storage
}

func TestNew(t *testing.T) {
	storage := createTestStorage(t, 10)

	if storage.maxEntries != 10 {
		t.Errorf("Expected maxEntries to be 10, got %d", storage.maxEntries)
	}
	if storage.Count() != 0 {
		t.Errorf("Expected empty history, got %d entries", storage.Count())
	}
}

func TestRecord(t *testing.T) {
	storage := createTestStorage(t, 10)

	entry, err := storage.Record(TargetFile, "/tmp/config.json", "[]\n")
	if err != nil {
		t.Fatalf("Failed to record export: %v", err)
	}
	if entry.ID == "" {
		t.Error("Expected entry to get an id")
	}

	entries, err := storage.List()
	if err != nil {
		t.Fatalf("Failed to list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.ID != entry.ID || got.Target != TargetFile || got.Location != "/tmp/config.json" || got.Content != "[]\n" {
		t.Errorf("Expected %+v, got %+v", entry, got)
	}
}

func TestRecordDuplicate(t *testing.T) {
	storage := createTestStorage(t, 10)

	first, err := storage.Record(TargetClipboard, "", "[1]")
	if err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	if _, err := storage.Record(TargetClipboard, "", "[2]"); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	again, err := storage.Record(TargetClipboard, "", "[1]")
	if err != nil {
		t.Fatalf("Failed to record: %v", err)
	}

	if again.ID != first.ID {
		t.Errorf("Expected duplicate to reuse id %s, got %s", first.ID, again.ID)
	}
	if storage.Count() != 2 {
		t.Errorf("Expected 2 entries, got %d", storage.Count())
	}

	entries, _ := storage.List()
	if entries[0].Content != "[1]" {
		t.Errorf("Expected refreshed entry first, got %q", entries[0].Content)
	}

	if _, err := storage.Record(TargetFile, "a.json", "[1]"); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	if storage.Count() != 3 {
		t.Errorf("Expected a different target to add an entry, got %d", storage.Count())
	}
}

func TestMaxEntries(t *testing.T) {
	storage := createTestStorage(t, 3)

	for i := 0; i < 5; i++ {
		if _, err := storage.Record(TargetFile, "c.json", fmt.Sprintf("[%d]", i)); err != nil {
			t.Fatalf("Failed to record: %v", err)
		}
	}

	entries, _ := storage.List()
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if entries[0].Content != "[4]" || entries[2].Content != "[2]" {
		t.Errorf("Expected newest three, got %q..%q", entries[0].Content, entries[2].Content)
	}
}

func TestGetAndDelete(t *testing.T) {
	storage := createTestStorage(t, 0)

	entry, err := storage.Record(TargetFile, "c.json", "[]")
	if err != nil {
		t.Fatalf("Failed to record: %v", err)
	}

	got, err := storage.Get(entry.ID)
	if err != nil {
		t.Fatalf("Failed to get: %v", err)
	}
	if got.Content != "[]" {
		t.Errorf("Expected content '[]', got %q", got.Content)
	}

	if err := storage.Delete(entry.ID); err != nil {
		t.Fatalf("Failed to delete: %v", err)
	}
	if _, err := storage.Get(entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if err := storage.Delete(entry.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	storage, err := New(path, 10)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	if _, err := storage.Record(TargetFile, "c.json", "[]"); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}
	storage.Close()

	reopened, err := New(path, 10)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer reopened.Close()

	if reopened.Count() != 1 {
		t.Errorf("Expected 1 entry after reopen, got %d", reopened.Count())
	}
}

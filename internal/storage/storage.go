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

// Package storage keeps a history of every document export in sqlite.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Export targets recorded in the history.
const (
	TargetFile      = "file"
	TargetClipboard = "clipboard"
)

var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded export.
type Entry struct {
	ID        string    `json:"id"`
	Target    string    `json:"target"`
	Location  string    `json:"location"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Storage struct {
	db         *sql.DB
	maxEntries int
}

// New opens the history database at path, creating it if needed.
// maxEntries <= 0 keeps every entry.
func New(path string, maxEntries int) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Storage{
		db:         db,
		maxEntries: maxEntries,
	}

	if err := s.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return s, nil
}

func (s *Storage) createTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS exports (
			id TEXT PRIMARY KEY,
			target TEXT NOT NULL,
			location TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)
	`
	_, err := s.db.Exec(query)
	return err
}

// Record stores an export. Recording the same content to the same target
// and location again only refreshes the existing entry's timestamp.
func (s *Storage) Record(target, location, content string) (*Entry, error) {
	now := time.Now()

	var existingID string
	query := "SELECT id FROM exports WHERE target = ? AND location = ? AND content = ? LIMIT 1"
	err := s.db.QueryRow(query, target, location, content).Scan(&existingID)
	if err == nil {
		if _, err := s.db.Exec("UPDATE exports SET timestamp = ? WHERE id = ?", now, existingID); err != nil {
			return nil, err
		}
		return &Entry{ID: existingID, Target: target, Location: location, Content: content, Timestamp: now}, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	entry := &Entry{
		ID:        uuid.NewString(),
		Target:    target,
		Location:  location,
		Content:   content,
		Timestamp: now,
	}
	insert := "INSERT INTO exports (id, target, location, content, timestamp) VALUES (?, ?, ?, ?, ?)"
	if _, err := s.db.Exec(insert, entry.ID, entry.Target, entry.Location, entry.Content, entry.Timestamp); err != nil {
		return nil, err
	}

	if s.maxEntries > 0 {
		// Keep only the latest maxEntries exports
		deleteQuery := `
			DELETE FROM exports
			WHERE id NOT IN (
				SELECT id FROM exports
				ORDER BY timestamp DESC
				LIMIT ?
			)
		`
		if _, err := s.db.Exec(deleteQuery, s.maxEntries); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

// List returns every entry, newest first.
func (s *Storage) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT id, target, location, content, timestamp FROM exports ORDER BY timestamp DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Target, &e.Location, &e.Content, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with id, or ErrNotFound.
func (s *Storage) Get(id string) (*Entry, error) {
	row := s.db.QueryRow("SELECT id, target, location, content, timestamp FROM exports WHERE id = ?", id)

	var e Entry
	err := row.Scan(&e.ID, &e.Target, &e.Location, &e.Content, &e.Timestamp)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Count returns the number of stored entries.
func (s *Storage) Count() int {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&count); err != nil {
		return 0
	}
	return count
}

func (s *Storage) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM exports WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

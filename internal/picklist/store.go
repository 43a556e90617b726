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

package picklist

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/adaryorg/peacock/internal/jsonfile"
	"github.com/adaryorg/peacock/internal/logging"
)

var (
	ErrEmptyRegion      = errors.New("region is empty")
	ErrDuplicateRegion  = errors.New("region already exists")
	ErrRegionNotFound   = errors.New("region not found")
	ErrEmptyAccountID   = errors.New("account id is empty")
	ErrDuplicateAccount = errors.New("account id already exists")
	ErrAccountNotFound  = errors.New("account not found")
)

// Account is a selectable account; ID is the unique key.
type Account struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Display returns the "Name (ID)" form offered in account pickers.
func (a Account) Display() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

type fileFormat struct {
	Regions  []string  `json:"regions"`
	Accounts []Account `json:"accounts"`
}

// Store holds the region and account picklists backed by a JSON file.
// Every successful mutation is written back immediately.
type Store struct {
	path     string
	regions  []string
	accounts []Account
}

// Open loads the picklists at path. A missing file yields empty picklists;
// a malformed one is logged and also treated as empty.
func Open(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

// NewMemory creates a store that is never persisted.
func NewMemory() *Store {
	return &Store{}
}

func (s *Store) load() {
	s.regions = []string{}
	s.accounts = []Account{}
	if s.path == "" {
		return
	}

	var data fileFormat
	exists, err := jsonfile.Read(s.path, &data)
	if err != nil {
		logging.Error("Error loading picklists: %v", err)
		return
	}
	if !exists {
		return
	}
	s.regions = normalizeRegions(data.Regions)
	s.accounts = normalizeAccounts(data.Accounts)
	logging.Debug("Loaded %d regions and %d accounts from %s", len(s.regions), len(s.accounts), s.path)
}

// normalizeRegions drops empty and repeated regions and sorts the rest.
func normalizeRegions(in []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(in))
	for _, region := range in {
		if region == "" || seen[region] {
			continue
		}
		seen[region] = true
		out = append(out, region)
	}
	sort.Strings(out)
	return out
}

// normalizeAccounts keeps the first account for each non-empty id, sorted by name.
func normalizeAccounts(in []Account) []Account {
	out := []Account{}
	seen := make(map[string]bool, len(in))
	for _, acc := range in {
		if acc.ID == "" || seen[acc.ID] {
			continue
		}
		seen[acc.ID] = true
		out = append(out, acc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Path returns the backing file, "" for memory stores.
func (s *Store) Path() string {
	return s.path
}

// Save writes the picklists to the backing file.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	if err := jsonfile.Write(s.path, fileFormat{Regions: s.regions, Accounts: s.accounts}); err != nil {
		logging.Error("Error saving picklists: %v", err)
		return fmt.Errorf("failed to save picklists: %w", err)
	}
	return nil
}

// Regions returns the region codes in sorted order.
func (s *Store) Regions() []string {
	return append([]string(nil), s.regions...)
}

// Accounts returns the accounts sorted by name.
func (s *Store) Accounts() []Account {
	return append([]Account(nil), s.accounts...)
}

// AddRegion inserts region keeping the list sorted.
func (s *Store) AddRegion(region string) error {
	if region == "" {
		return ErrEmptyRegion
	}
	for _, existing := range s.regions {
		if existing == region {
			return ErrDuplicateRegion
		}
	}
	s.regions = append(s.regions, region)
	sort.Strings(s.regions)
	return s.Save()
}

// RemoveRegion deletes region.
func (s *Store) RemoveRegion(region string) error {
	for i, existing := range s.regions {
		if existing == region {
			s.regions = append(s.regions[:i], s.regions[i+1:]...)
			return s.Save()
		}
	}
	return ErrRegionNotFound
}

// HasRegion reports whether region is in the picklist.
func (s *Store) HasRegion(region string) bool {
	for _, existing := range s.regions {
		if existing == region {
			return true
		}
	}
	return false
}

// AddAccount inserts an account. IDs are compared exactly, without trimming
// or case folding.
func (s *Store) AddAccount(id, name string) error {
	if id == "" {
		return ErrEmptyAccountID
	}
	for _, acc := range s.accounts {
		if acc.ID == id {
			return ErrDuplicateAccount
		}
	}
	s.accounts = append(s.accounts, Account{ID: id, Name: name})
	sort.SliceStable(s.accounts, func(i, j int) bool {
		return s.accounts[i].Name < s.accounts[j].Name
	})
	return s.Save()
}

// RemoveAccount deletes the account with id.
func (s *Store) RemoveAccount(id string) error {
	for i, acc := range s.accounts {
		if acc.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return s.Save()
		}
	}
	return ErrAccountNotFound
}

// AccountName resolves id to its display name, "" when unknown.
func (s *Store) AccountName(id string) string {
	if id == "" {
		return ""
	}
	for _, acc := range s.accounts {
		if acc.ID == id {
			return acc.Name
		}
	}
	return ""
}

// AccountDisplayList returns "Name (ID)" for every account.
func (s *Store) AccountDisplayList() []string {
	out := make([]string, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.Display())
	}
	return out
}

// AccountDisplay returns the picker form of id, or id itself when unknown.
func (s *Store) AccountDisplay(id string) string {
	for _, acc := range s.accounts {
		if acc.ID == id {
			return acc.Display()
		}
	}
	return id
}

// AccountIDFromDisplay extracts the id from a "Name (ID)" value. Any other
// value is returned unchanged as a raw id.
func AccountIDFromDisplay(display string) string {
	if display == "" {
		return ""
	}
	if strings.Contains(display, "(") && strings.HasSuffix(display, ")") {
		parts := strings.Split(display, "(")
		return strings.Trim(parts[len(parts)-1], ")")
	}
	return display
}

// MatchRegions returns the regions fuzzily matching query, best first.
func (s *Store) MatchRegions(query string) []string {
	return match(query, s.regions)
}

// MatchAccounts returns the account display strings fuzzily matching query.
func (s *Store) MatchAccounts(query string) []string {
	return match(query, s.AccountDisplayList())
}

func match(query string, candidates []string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]string(nil), candidates...)
	}
	matches := fuzzy.Find(query, candidates)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

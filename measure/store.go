// Copyright 2025 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2025 Department of Linguistics,
// Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package measure

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Store is an append-only collection of measurement rows.
// It has a single writer (the acquisition phase); once the acquisition
// is finished, any number of readers can use it. Rows cannot be removed
// or updated - to fix something, the affected trials must be re-run.
type Store struct {
	rows []Row
}

func (store *Store) Append(rows ...Row) {
	store.rows = append(store.rows, rows...)
}

func (store *Store) Len() int {
	return len(store.rows)
}

// Rows returns a copy of all the rows matching the filter
// in their insertion order.
func (store *Store) Rows(filter Filter) []Row {
	ans := make([]Row, 0, len(store.rows))
	for _, row := range store.rows {
		if filter.Matches(row) {
			ans = append(ans, row)
		}
	}
	return ans
}

// SaveTable writes the store as a CSV table. An existing
// file is overwritten.
func (store *Store) SaveTable(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save measurement table: %w", err)
	}
	defer f.Close()
	if err := WriteCSV(f, store.rows); err != nil {
		return fmt.Errorf("failed to save measurement table: %w", err)
	}
	log.Info().
		Str("path", path).
		Int("numRows", len(store.rows)).
		Msg("saved measurement table")
	return nil
}

type snapshot struct {
	Columns []string `msgpack:"columns"`
	Rows    []Row    `msgpack:"rows"`
}

// SaveSnapshot stores rows in a binary (msgpack) form which is
// much faster to load than the CSV table.
func (store *Store) SaveSnapshot(path string) error {
	srz, err := msgpack.Marshal(snapshot{Columns: Columns, Rows: store.rows})
	if err != nil {
		return fmt.Errorf("failed to serialize measurement snapshot: %w", err)
	}
	if err := os.WriteFile(path, srz, 0644); err != nil {
		return fmt.Errorf("failed to save measurement snapshot: %w", err)
	}
	return nil
}

// ------

func NewStore(rows ...Row) *Store {
	store := &Store{rows: make([]Row, 0, len(rows))}
	store.Append(rows...)
	return store
}

// LoadTable reads a CSV table created by SaveTable (or by
// any other tool respecting the same columns).
func LoadTable(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load measurement table: %w", err)
	}
	defer f.Close()
	rows, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load measurement table %s: %w", path, err)
	}
	return NewStore(rows...), nil
}

func LoadSnapshot(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load measurement snapshot: %w", err)
	}
	var snp snapshot
	if err := msgpack.Unmarshal(data, &snp); err != nil {
		return nil, fmt.Errorf("failed to load measurement snapshot: %w", err)
	}
	if err := validateHeader(snp.Columns); err != nil {
		return nil, fmt.Errorf("failed to load measurement snapshot %s: %w", path, err)
	}
	for i, row := range snp.Rows {
		if !row.Algorithm.IsValid() {
			return nil, fmt.Errorf(
				"failed to load measurement snapshot %s: %w: invalid algorithm %d in row %d",
				path, ErrSchemaMismatch, row.Algorithm, i)
		}
	}
	return NewStore(snp.Rows...), nil
}

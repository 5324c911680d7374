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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
)

var (
	// ErrSchemaMismatch means a persisted table does not have
	// the expected columns (or their order differs).
	ErrSchemaMismatch = errors.New("measurement table schema mismatch")

	// ErrMalformedTable means the header is fine but some
	// value cannot be interpreted.
	ErrMalformedTable = errors.New("malformed measurement table")
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes a header and all the rows. The algorithm
// is stored using its display name.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	rec := make([]string, len(Columns))
	for _, row := range rows {
		rec[0] = row.Algorithm.DisplayName()
		rec[1] = strconv.Itoa(row.Source)
		rec[2] = strconv.Itoa(row.Target)
		rec[3] = formatFloat(row.Time)
		rec[4] = formatFloat(row.PreprocessTime)
		rec[5] = formatFloat(row.ComputationTime)
		rec[6] = strconv.Itoa(row.Dist)
		rec[7] = strconv.Itoa(row.NumVertices)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func validateHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf(
			"%w: expected columns [%s], got [%s]",
			ErrSchemaMismatch, strings.Join(Columns, ", "), strings.Join(header, ", "))
	}
	for i, col := range Columns {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf(
				"%w: expected column '%s' at position %d, got '%s'",
				ErrSchemaMismatch, col, i, header[i])
		}
	}
	return nil
}

// parseInt accepts also integral float notation ("55.0") as written
// by some dataframe libraries.
func parseInt(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("value %s is not an integer", v)
	}
	return int(f), nil
}

func parseRecord(rec []string) (Row, error) {
	var row Row
	var err error
	row.Algorithm, err = algo.FromDisplayName(rec[0])
	if err != nil {
		return row, fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	if row.Source, err = parseInt(rec[1]); err != nil {
		return row, fmt.Errorf("invalid source: %w", err)
	}
	if row.Target, err = parseInt(rec[2]); err != nil {
		return row, fmt.Errorf("invalid target: %w", err)
	}
	if row.Time, err = strconv.ParseFloat(rec[3], 64); err != nil {
		return row, fmt.Errorf("invalid time: %w", err)
	}
	if row.PreprocessTime, err = strconv.ParseFloat(rec[4], 64); err != nil {
		return row, fmt.Errorf("invalid preprocess_time: %w", err)
	}
	if row.ComputationTime, err = strconv.ParseFloat(rec[5], 64); err != nil {
		return row, fmt.Errorf("invalid computation_time: %w", err)
	}
	if row.Dist, err = parseInt(rec[6]); err != nil {
		return row, fmt.Errorf("invalid dist: %w", err)
	}
	if row.NumVertices, err = parseInt(rec[7]); err != nil {
		return row, fmt.Errorf("invalid num_vertices: %w", err)
	}
	return row, nil
}

// ReadCSV reads a table written by WriteCSV. The header is validated
// before any row is read so a wrong file fails early.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: missing header", ErrSchemaMismatch)

	} else if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}
	ans := make([]Row, 0, 1000)
	for lineNum := 2; ; lineNum++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break

		} else if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrMalformedTable, lineNum, err)
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedTable, lineNum, err)
		}
		ans = append(ans, row)
	}
	return ans, nil
}

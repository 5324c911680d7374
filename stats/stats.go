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

package stats

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// LatestRun can be used instead of a run ID to address the most recent run
const LatestRun = "latest"

var ErrNoRuns = errors.New("no runs stored")

type Database struct {
	db *sql.DB
}

func (database *Database) createRunTable() error {
	_, err := database.db.Exec(
		"CREATE TABLE bench_run (" +
			"id TEXT PRIMARY KEY NOT NULL, " +
			"datetime INTEGER NOT NULL, " +
			"graph_data_path TEXT NOT NULL, " +
			"sample_seed TEXT NOT NULL, " +
			"num_repeat INTEGER NOT NULL" +
			")",
	)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	log.Info().Msg("created table `bench_run`")
	return nil
}

func (database *Database) createMeasurementTable() error {
	_, err := database.db.Exec(
		"CREATE TABLE measurement (" +
			"run_id TEXT NOT NULL REFERENCES bench_run(id), " +
			"algorithm INTEGER NOT NULL, " +
			"source INTEGER NOT NULL, " +
			"target INTEGER NOT NULL, " +
			"time FLOAT NOT NULL, " +
			"preprocess_time FLOAT NOT NULL, " +
			"computation_time FLOAT NOT NULL, " +
			"dist INTEGER NOT NULL, " +
			"num_vertices INTEGER NOT NULL" +
			")",
	)
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	_, err = database.db.Exec("CREATE INDEX measurement_run_id_idx ON measurement(run_id)")
	if err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	log.Info().Msg("created table `measurement`")
	return nil
}

func (database *Database) tableExists(tn string) (bool, error) {
	ans := database.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", tn)
	var nm sql.NullString
	err := ans.Scan(&nm)
	if err == sql.ErrNoRows {
		return false, nil

	} else if err != nil {
		return false, fmt.Errorf("failed to determine existence of table %s: %w", tn, err)
	}
	return true, nil
}

func (database *Database) Init() error {
	ex, err := database.tableExists("bench_run")
	if err != nil {
		return fmt.Errorf("failed to init table bench_run: %w", err)
	}
	if ex {
		log.Info().Str("table", "bench_run").Msg("table already exists")

	} else {
		if err := database.createRunTable(); err != nil {
			return fmt.Errorf("failed to create table bench_run: %w", err)
		}
	}

	ex, err = database.tableExists("measurement")
	if err != nil {
		return fmt.Errorf("failed to init table measurement: %w", err)
	}
	if ex {
		log.Info().Str("table", "measurement").Msg("table already exists")

	} else {
		if err := database.createMeasurementTable(); err != nil {
			return fmt.Errorf("failed to create table measurement: %w", err)
		}
	}
	return nil
}

// AddRun stores a new run and returns its generated ID.
// If info.Datetime is zero, the current time is used.
func (database *Database) AddRun(info RunInfo) (string, error) {
	info.ID = uuid.New().String()
	if info.Datetime == 0 {
		info.Datetime = time.Now().Unix()
	}
	_, err := database.db.Exec(
		"INSERT INTO bench_run (id, datetime, graph_data_path, sample_seed, num_repeat) "+
			"VALUES (?, ?, ?, ?, ?)",
		info.ID,
		info.Datetime,
		info.GraphDataPath,
		strconv.FormatUint(info.SampleSeed, 10),
		info.NumRepeat,
	)
	if err != nil {
		return "", fmt.Errorf("failed to add run: %w", err)
	}
	return info.ID, nil
}

// AddRows inserts all the rows of a run within a single transaction
func (database *Database) AddRows(runID string, rows []measure.Row) error {
	tx, err := database.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to add rows: %w", err)
	}
	stmt, err := tx.Prepare(
		"INSERT INTO measurement (run_id, algorithm, source, target, time, " +
			"preprocess_time, computation_time, dist, num_vertices) " +
			"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to add rows: %w", err)
	}
	defer stmt.Close()
	for _, row := range rows {
		_, err := stmt.Exec(
			runID,
			row.Algorithm.ID(),
			row.Source,
			row.Target,
			row.Time,
			row.PreprocessTime,
			row.ComputationTime,
			row.Dist,
			row.NumVertices,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to add rows: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to add rows: %w", err)
	}
	return nil
}

// GetRows loads rows of a run in the order they have been stored
func (database *Database) GetRows(runID string, filter measure.Filter) ([]measure.Row, error) {
	query := "SELECT algorithm, source, target, time, preprocess_time, computation_time, " +
		"dist, num_vertices FROM measurement WHERE %s ORDER BY rowid"
	whereChunks := make([]string, 0, 2)
	args := make([]any, 0, 2)
	whereChunks = append(whereChunks, "run_id = ?")
	args = append(args, runID)
	if filter.Algorithm != nil {
		whereChunks = append(whereChunks, "algorithm = ?")
		args = append(args, filter.Algorithm.ID())
	}
	rows, err := database.db.Query(fmt.Sprintf(query, strings.Join(whereChunks, " AND ")), args...)
	if err != nil {
		return []measure.Row{}, fmt.Errorf("failed to fetch rows: %w", err)
	}
	defer rows.Close()
	ans := make([]measure.Row, 0, 500)
	for rows.Next() {
		var row measure.Row
		var algID int
		err := rows.Scan(
			&algID,
			&row.Source,
			&row.Target,
			&row.Time,
			&row.PreprocessTime,
			&row.ComputationTime,
			&row.Dist,
			&row.NumVertices,
		)
		if err != nil {
			return []measure.Row{}, fmt.Errorf("failed to fetch rows: %w", err)
		}
		row.Algorithm, err = algo.FromID(algID)
		if err != nil {
			return []measure.Row{}, fmt.Errorf("failed to fetch rows: %w", err)
		}
		ans = append(ans, row)
	}
	if err := rows.Err(); err != nil {
		return []measure.Row{}, fmt.Errorf("failed to fetch rows: %w", err)
	}
	return ans, nil
}

func (database *Database) GetRun(runID string) (RunInfo, error) {
	row := database.db.QueryRow(
		"SELECT id, datetime, graph_data_path, sample_seed, num_repeat FROM bench_run WHERE id = ?",
		runID,
	)
	var ans RunInfo
	var seed string
	if err := row.Scan(&ans.ID, &ans.Datetime, &ans.GraphDataPath, &seed, &ans.NumRepeat); err != nil {
		return RunInfo{}, fmt.Errorf("failed to fetch run %s: %w", runID, err)
	}
	var err error
	ans.SampleSeed, err = strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return RunInfo{}, fmt.Errorf("failed to fetch run %s: %w", runID, err)
	}
	return ans, nil
}

// GetLatestRunID returns ID of the most recently stored run
// or ErrNoRuns if there is none.
func (database *Database) GetLatestRunID() (string, error) {
	row := database.db.QueryRow("SELECT id FROM bench_run ORDER BY datetime DESC, rowid DESC LIMIT 1")
	var ans string
	err := row.Scan(&ans)
	if err == sql.ErrNoRows {
		return "", ErrNoRuns

	} else if err != nil {
		return "", fmt.Errorf("failed to fetch latest run: %w", err)
	}
	return ans, nil
}

// DeleteRun removes a run including all its rows
func (database *Database) DeleteRun(runID string) error {
	tx, err := database.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM measurement WHERE run_id = ?", runID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bench_run WHERE id = ?", runID); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// LoadRun reads all the rows of a run into a measurement store.
// The value LatestRun selects the most recently stored run.
func (database *Database) LoadRun(runID string) (*measure.Store, RunInfo, error) {
	if runID == LatestRun {
		var err error
		runID, err = database.GetLatestRunID()
		if err != nil {
			return nil, RunInfo{}, fmt.Errorf("failed to load run: %w", err)
		}
	}
	info, err := database.GetRun(runID)
	if err != nil {
		return nil, RunInfo{}, fmt.Errorf("failed to load run: %w", err)
	}
	rows, err := database.GetRows(runID, measure.Filter{})
	if err != nil {
		return nil, RunInfo{}, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	log.Info().
		Str("runId", info.ID).
		Str("graph", info.GraphDataPath).
		Uint64("sampleSeed", info.SampleSeed).
		Int("numRows", len(rows)).
		Msg("loaded run from database")
	return measure.NewStore(rows...), info, nil
}

func (database *Database) Close() error {
	return database.db.Close()
}

func NewDatabase(path string) (*Database, error) {
	dbConn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats datase: %w", err)
	}
	return &Database{db: dbConn}, nil
}

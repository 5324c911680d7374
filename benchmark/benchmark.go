package benchmark

import (
	"context"
	"fmt"
	"os"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/cnf"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/parser"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/solver"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/stats"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/sweep"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

const tmpSuffix = ".tmp"

// Result summarizes a finished (and persisted) acquisition run
type Result struct {
	Vertices []int
	NumRows  int
	RunID    string
}

// Executor runs the whole sweep of trials one by one (the solver
// is never run concurrently so the measured times are not affected
// by other trials).
type Executor struct {
	conf         *cnf.Conf
	runner       *solver.Runner
	showProgress bool
}

func (e *Executor) trials() ([]sweep.Trial, []int, error) {
	n, err := sweep.ReadVertexCount(e.conf.GraphDataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare trials: %w", err)
	}
	vertices, err := sweep.SampleVertices(n, e.conf.SampleSize, e.conf.SampleSeed)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to prepare trials: %w", err)
	}
	log.Info().
		Int("numVertices", n).
		Uint64("seed", e.conf.SampleSeed).
		Ints("sample", vertices).
		Msg("sampled vertices")
	return sweep.Generate(e.conf.SelectedAlgorithms(), vertices, e.conf.NumRepeat), vertices, nil
}

func (e *Executor) newBar(size int) *progressbar.ProgressBar {
	if e.showProgress {
		return progressbar.Default(int64(size), "running trials")
	}
	return progressbar.DefaultSilent(int64(size), "running trials")
}

// Acquire runs all the trials and collects their measurements.
// The first failing trial stops the whole sweep. The context is
// checked between trials, a running solver is never interrupted.
func (e *Executor) Acquire(ctx context.Context) (*measure.Store, []int, error) {
	trials, vertices, err := e.trials()
	if err != nil {
		return nil, nil, err
	}
	store := measure.NewStore()
	bar := e.newBar(len(trials))
	for _, trial := range trials {
		select {
		case <-ctx.Done():
			return nil, nil, fmt.Errorf("acquisition interrupted: %w", ctx.Err())
		default:
		}
		log.Debug().
			Str("algorithm", trial.Algorithm.DisplayName()).
			Int("source", trial.Source).
			Int("target", trial.Target).
			Msg("starting trial")
		output, err := e.runner.Run(trial)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to run trial: %w", err)
		}
		rows, err := parser.ParseTrial(output, trial)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to process trial: %w", err)
		}
		log.Debug().
			Str("algorithm", trial.Algorithm.DisplayName()).
			Int("source", trial.Source).
			Int("target", trial.Target).
			Int("repeats", len(rows)).
			Msg("finished trial")
		store.Append(rows...)
		bar.Add(1)
	}
	bar.Finish()
	return store, vertices, nil
}

// ExportToDB mirrors rows into the stats database as a new run
func ExportToDB(conf *cnf.Conf, rows []measure.Row) (string, error) {
	db, err := stats.NewDatabase(conf.StatsDBPath)
	if err != nil {
		return "", fmt.Errorf("failed to export to database: %w", err)
	}
	defer db.Close()
	if err := db.Init(); err != nil {
		return "", fmt.Errorf("failed to export to database: %w", err)
	}
	runID, err := db.AddRun(stats.RunInfo{
		GraphDataPath: conf.GraphDataPath,
		SampleSeed:    conf.SampleSeed,
		NumRepeat:     conf.NumRepeat,
	})
	if err != nil {
		return "", fmt.Errorf("failed to export to database: %w", err)
	}
	if err := db.AddRows(runID, rows); err != nil {
		return "", fmt.Errorf("failed to export to database: %w", err)
	}
	log.Info().Str("runId", runID).Int("numRows", len(rows)).Msg("exported rows to database")
	return runID, nil
}

func removeRun(conf *cnf.Conf, runID string) {
	db, err := stats.NewDatabase(conf.StatsDBPath)
	if err != nil {
		log.Error().Err(err).Str("runId", runID).Msg("failed to remove exported run")
		return
	}
	defer db.Close()
	if err := db.DeleteRun(runID); err != nil {
		log.Error().Err(err).Str("runId", runID).Msg("failed to remove exported run")
	}
}

// persist writes the table and the snapshot into temporary files
// which replace the target files only once everything (including
// the database export) is stored. On error, nothing is left behind.
func (e *Executor) persist(store *measure.Store) (string, error) {
	tmpTable := e.conf.TablePath + tmpSuffix
	tmpSnapshot := e.conf.SnapshotPath + tmpSuffix
	cleanup := func() {
		os.Remove(tmpTable)
		if e.conf.SnapshotPath != "" {
			os.Remove(tmpSnapshot)
		}
	}
	if err := store.SaveTable(tmpTable); err != nil {
		cleanup()
		return "", err
	}
	if e.conf.SnapshotPath != "" {
		if err := store.SaveSnapshot(tmpSnapshot); err != nil {
			cleanup()
			return "", err
		}
	}
	var runID string
	if e.conf.StatsDBPath != "" {
		var err error
		runID, err = ExportToDB(e.conf, store.Rows(measure.Filter{}))
		if err != nil {
			cleanup()
			return "", err
		}
	}
	if e.conf.SnapshotPath != "" {
		if err := os.Rename(tmpSnapshot, e.conf.SnapshotPath); err != nil {
			cleanup()
			if runID != "" {
				removeRun(e.conf, runID)
			}
			return "", fmt.Errorf("failed to store snapshot: %w", err)
		}
	}
	if err := os.Rename(tmpTable, e.conf.TablePath); err != nil {
		cleanup()
		if e.conf.SnapshotPath != "" {
			os.Remove(e.conf.SnapshotPath)
		}
		if runID != "" {
			removeRun(e.conf, runID)
		}
		return "", fmt.Errorf("failed to store measurement table: %w", err)
	}
	return runID, nil
}

// RunFull acquires all the measurements and, only if all the trials
// succeeded, stores them.
func (e *Executor) RunFull(ctx context.Context) (Result, error) {
	store, vertices, err := e.Acquire(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to run benchmark: %w", err)
	}
	runID, err := e.persist(store)
	if err != nil {
		return Result{}, fmt.Errorf("failed to run benchmark: %w", err)
	}
	return Result{Vertices: vertices, NumRows: store.Len(), RunID: runID}, nil
}

func NewExecutor(conf *cnf.Conf, showProgress bool) *Executor {
	return &Executor{
		conf:         conf,
		runner:       solver.NewRunner(conf.SolverPath, conf.GraphDataPath, conf.ModeMarker),
		showProgress: showProgress,
	}
}

package benchmark

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/cnf"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/parser"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/solver"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSolver reports a two-vertex path with fixed times, the path length
// is source + target
const fakeSolver = `#!/bin/sh
read mode; read src; read tgt; read rep; read alg
echo "Enter the source vertex:"
echo "Path: $src $tgt"
echo "Length: $((src + tgt))"
t=""; p=""; c=""
i=0
while [ $i -lt $rep ]; do
	t="$t $((alg * 100))"; p="$p 10"; c="$c $((alg * 100 - 10))"
	i=$((i + 1))
done
echo "Times (in ns):$t"
echo "Preprocess Times (in ns):$p"
echo "Computation Times (in ns):$c"
`

const brokenSolver = `#!/bin/sh
read mode; read src; read tgt; read rep; read alg
if [ "$alg" = "2" ]; then
	echo "Path: $src $tgt"
	exit 0
fi
echo "Path: $src $tgt"
echo "Length: 1"
echo "Times (in ns): 1"
echo "Preprocess Times (in ns): 1"
echo "Computation Times (in ns): 0"
`

func prepareConf(t *testing.T, script string) *cnf.Conf {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	dir := t.TempDir()
	solverPath := filepath.Join(dir, "solver.sh")
	require.NoError(t, os.WriteFile(solverPath, []byte(script), 0755))
	graphPath := filepath.Join(dir, "graph.txt")
	require.NoError(t, os.WriteFile(graphPath, []byte("20 40\n1 2 5 1\n"), 0644))
	return &cnf.Conf{
		SolverPath:    solverPath,
		GraphDataPath: graphPath,
		ModeMarker:    solver.DefaultModeMarker,
		NumRepeat:     3,
		SampleSize:    4,
		SampleSeed:    11,
		Algorithms:    []int{1, 2},
		TablePath:     filepath.Join(dir, "benchmark_task_2.csv"),
		SnapshotPath:  filepath.Join(dir, "snapshot.msgpack"),
	}
}

func TestRunFull(t *testing.T) {
	conf := prepareConf(t, fakeSolver)
	conf.StatsDBPath = filepath.Join(filepath.Dir(conf.TablePath), "stats.sqlite")
	ex := NewExecutor(conf, false)
	res, err := ex.RunFull(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Vertices, 4)
	// 2 algorithms * 4 * 3 pairs * 3 repeats
	assert.Equal(t, 72, res.NumRows)
	assert.NotEmpty(t, res.RunID)

	store, err := measure.LoadTable(conf.TablePath)
	require.NoError(t, err)
	assert.Equal(t, 72, store.Len())
	bf := store.Rows(measure.Filter{}.SetAlgorithm(algo.ConstrainedBellmanFord))
	require.Len(t, bf, 36)
	for _, row := range bf {
		assert.Equal(t, 200.0, row.Time)
		assert.Equal(t, 10.0, row.PreprocessTime)
		assert.Equal(t, 190.0, row.ComputationTime)
		assert.Equal(t, row.Source+row.Target, row.Dist)
		assert.Equal(t, 2, row.NumVertices)
	}

	snap, err := measure.LoadSnapshot(conf.SnapshotPath)
	require.NoError(t, err)
	assert.Equal(t, store.Rows(measure.Filter{}), snap.Rows(measure.Filter{}))

	db, err := stats.NewDatabase(conf.StatsDBPath)
	require.NoError(t, err)
	defer db.Close()
	dbRows, err := db.GetRows(res.RunID, measure.Filter{})
	require.NoError(t, err)
	assert.Equal(t, store.Rows(measure.Filter{}), dbRows)
}

func TestRunFullIsReproducible(t *testing.T) {
	conf := prepareConf(t, fakeSolver)
	conf.SnapshotPath = ""
	res1, err := NewExecutor(conf, false).RunFull(context.Background())
	require.NoError(t, err)
	res2, err := NewExecutor(conf, false).RunFull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, res1.Vertices, res2.Vertices)
}

func TestRunFullParseFailurePersistsNothing(t *testing.T) {
	conf := prepareConf(t, brokenSolver)
	_, err := NewExecutor(conf, false).RunFull(context.Background())
	require.Error(t, err)
	var perr *parser.ParseError
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, algo.ConstrainedBellmanFord, perr.Trial.Algorithm)
	assert.NoFileExists(t, conf.TablePath)
	assert.NoFileExists(t, conf.SnapshotPath)
}

func TestRunFullProcessFailure(t *testing.T) {
	conf := prepareConf(t, "#!/bin/sh\necho boom >&2\nexit 3\n")
	_, err := NewExecutor(conf, false).RunFull(context.Background())
	assert.ErrorIs(t, err, solver.ErrProcessFailed)
	assert.NoFileExists(t, conf.TablePath)
}

func TestRunFullCancelled(t *testing.T) {
	conf := prepareConf(t, fakeSolver)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExecutor(conf, false).RunFull(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, conf.TablePath)
}

func TestRunFullSampleTooLarge(t *testing.T) {
	conf := prepareConf(t, fakeSolver)
	conf.SampleSize = 21
	_, err := NewExecutor(conf, false).RunFull(context.Background())
	assert.Error(t, err)
}

func TestRunFullExportFailurePersistsNothing(t *testing.T) {
	conf := prepareConf(t, fakeSolver)
	conf.StatsDBPath = filepath.Join(filepath.Dir(conf.TablePath), "missing", "stats.sqlite")
	_, err := NewExecutor(conf, false).RunFull(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, conf.TablePath)
	assert.NoFileExists(t, conf.SnapshotPath)
	assert.NoFileExists(t, conf.TablePath+tmpSuffix)
	assert.NoFileExists(t, conf.SnapshotPath+tmpSuffix)
}

func TestRunFullSnapshotFailurePersistsNothing(t *testing.T) {
	conf := prepareConf(t, fakeSolver)
	conf.SnapshotPath = filepath.Join(filepath.Dir(conf.TablePath), "missing", "snapshot.msgpack")
	_, err := NewExecutor(conf, false).RunFull(context.Background())
	require.Error(t, err)
	assert.NoFileExists(t, conf.TablePath)
	assert.NoFileExists(t, conf.TablePath+tmpSuffix)
}

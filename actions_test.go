package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/cnf"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRows() []measure.Row {
	return []measure.Row{
		{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, Time: 100, PreprocessTime: 10, ComputationTime: 90, Dist: 55, NumVertices: 3},
		{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, Time: 200, PreprocessTime: 20, ComputationTime: 180, Dist: 55, NumVertices: 3},
	}
}

func TestWriteHeatmapSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHeatmapSummary(&buf, aggregate.Heatmap(testRows())))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "algorithm\tsource\ttarget\tn\ttime\tpreprocess_time\tcomputation_time", lines[0])
	assert.Equal(t, "Constrained Dijkstra\t1\t7\t2\t150.00\t15.00\t135.00", lines[1])
}

func TestWriteGroupSummary(t *testing.T) {
	dims, err := parseDimensions("algorithm,dist")
	require.NoError(t, err)
	groups := aggregate.Summarize(testRows(), aggregate.DefaultCIConf(), dims...)
	var buf bytes.Buffer
	require.NoError(t, writeGroupSummary(&buf, groups, dims))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "algorithm\tdist\tn\ttime\ttime_low\ttime_high"))
	assert.True(t, strings.HasPrefix(lines[1], "Constrained Dijkstra\t55\t2\t150.00\t"))
}

func TestParseDimensionsInvalid(t *testing.T) {
	_, err := parseDimensions("algorithm,colour")
	assert.Error(t, err)
}

func TestCleanVersionInfo(t *testing.T) {
	assert.Equal(t, "1.2.3", cleanVersionInfo("'v1.2.3'"))
}

func TestChartFormatOverrideIsValidated(t *testing.T) {
	conf := &cnf.Conf{}
	chartFormatOverride("gif")(conf)
	assert.Error(t, cnf.DefaultsAndValidate(conf))

	conf = &cnf.Conf{ChartFormat: "pdf"}
	chartFormatOverride("png")(conf)
	assert.NoError(t, cnf.DefaultsAndValidate(conf))
	assert.Equal(t, "png", conf.ChartFormat)

	conf = &cnf.Conf{ChartFormat: "svg"}
	chartFormatOverride("")(conf)
	assert.Equal(t, "svg", conf.ChartFormat)
}

func TestLoadRunFromDatabase(t *testing.T) {
	conf := &cnf.Conf{StatsDBPath: filepath.Join(t.TempDir(), "stats.sqlite")}
	db, err := stats.NewDatabase(conf.StatsDBPath)
	require.NoError(t, err)
	require.NoError(t, db.Init())
	runID, err := db.AddRun(stats.RunInfo{SampleSeed: 9})
	require.NoError(t, err)
	require.NoError(t, db.AddRows(runID, testRows()))
	require.NoError(t, db.Close())

	store, err := loadRun(conf, stats.LatestRun)
	require.NoError(t, err)
	assert.Equal(t, testRows(), store.Rows(measure.Filter{}))

	store, err = loadRun(conf, runID)
	require.NoError(t, err)
	assert.Equal(t, 2, store.Len())
}

func TestLoadRunWithoutDatabase(t *testing.T) {
	_, err := loadRun(&cnf.Conf{}, stats.LatestRun)
	assert.Error(t, err)
}

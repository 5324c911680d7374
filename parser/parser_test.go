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

package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleOutput = "Path: 1 4 7\n" +
	"Times (in ns): 100 200\n" +
	"Preprocess Times (in ns): 10 20\n" +
	"Computation Times (in ns): 90 180\n" +
	"Length: 55\n"

func TestParseTrialSimple(t *testing.T) {
	trial := sweep.Trial{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, RepeatCount: 2}
	rows, err := ParseTrial([]byte(simpleOutput), trial)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]measure.Row{
			{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, Time: 100, PreprocessTime: 10, ComputationTime: 90, Dist: 55, NumVertices: 3},
			{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, Time: 200, PreprocessTime: 20, ComputationTime: 180, Dist: 55, NumVertices: 3},
		},
		rows,
	)
}

func TestParseRealSolverOutput(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "solver_output.txt"))
	require.NoError(t, err)
	out, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []int{12, 40, 33, 71, 90}, out.Path)
	assert.Equal(t, 214, out.Length)
	assert.Equal(t, []float64{51234, 48810, 47002}, out.Times)
	assert.Equal(t, []float64{1200, 1105, 998}, out.PreprocessTimes)
	assert.Equal(t, []float64{50034, 47705, 46004}, out.ComputationTimes)
	assert.Equal(t, 3, out.NumRepeats())

	trial := sweep.Trial{Algorithm: algo.ConstrainedBellmanFord, Source: 12, Target: 90, RepeatCount: 3}
	rows := out.Rows(trial)
	require.Len(t, rows, 3)
	for _, row := range rows {
		assert.Equal(t, 214, row.Dist)
		assert.Equal(t, 5, row.NumVertices)
		assert.Equal(t, algo.ConstrainedBellmanFord, row.Algorithm)
	}
}

func TestParseFloatTimes(t *testing.T) {
	output := "Times (in ns): 1.5e3 2000.25\n" +
		"Preprocess Times (in ns): 10 20\n" +
		"Computation Times (in ns): 90 180\n" +
		"Path: 3 5\r\n" +
		"Length: 0\n"
	out, err := Parse([]byte(output))
	require.NoError(t, err)
	assert.Equal(t, []float64{1500, 2000.25}, out.Times)
	assert.Equal(t, 0, out.Length)
	assert.Equal(t, []int{3, 5}, out.Path)
}

func TestParseUnequalTimingSequences(t *testing.T) {
	output := "Path: 1 4 7\n" +
		"Times (in ns): 100 200\n" +
		"Preprocess Times (in ns): 10\n" +
		"Computation Times (in ns): 90 180\n" +
		"Length: 55\n"
	trial := sweep.Trial{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, RepeatCount: 2}
	rows, err := ParseTrial([]byte(output), trial)
	assert.Empty(t, rows)
	assert.True(t, errors.Is(err, ErrMalformedOutput))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, trial, perr.Trial)
}

func TestParseShorterThanRequested(t *testing.T) {
	trial := sweep.Trial{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 7, RepeatCount: 50}
	rows, err := ParseTrial([]byte(simpleOutput), trial)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseMissingSections(t *testing.T) {
	for _, missing := range []string{
		LabelPath, LabelLength, LabelTimes, LabelPreprocessTimes, LabelComputationTimes} {
		output := ""
		for _, line := range []string{
			"Path: 1 4 7",
			"Times (in ns): 100 200",
			"Preprocess Times (in ns): 10 20",
			"Computation Times (in ns): 90 180",
			"Length: 55",
		} {
			if len(line) >= len(missing) && line[:len(missing)] == missing {
				continue
			}
			output += line + "\n"
		}
		_, err := Parse([]byte(output))
		assert.True(t, errors.Is(err, ErrMalformedOutput), "missing %s", missing)
	}
}

func TestParseEmptyPath(t *testing.T) {
	output := "Path:\n" +
		"Times (in ns): 100\n" +
		"Preprocess Times (in ns): 10\n" +
		"Computation Times (in ns): 90\n" +
		"Length: 55\n"
	_, err := Parse([]byte(output))
	assert.True(t, errors.Is(err, ErrMalformedOutput))
}

func TestParseNonNumeric(t *testing.T) {
	outputs := []string{
		"Path: 1 x 7\nTimes (in ns): 100\nPreprocess Times (in ns): 10\nComputation Times (in ns): 90\nLength: 55\n",
		"Path: 1 7\nTimes (in ns): 100\nPreprocess Times (in ns): ten\nComputation Times (in ns): 90\nLength: 55\n",
		"Path: 1 7\nTimes (in ns): 100\nPreprocess Times (in ns): 10\nComputation Times (in ns): 90\nLength: far\n",
		"Path: 1 7\nTimes (in ns): 100\nPreprocess Times (in ns): 10\nComputation Times (in ns): 90\nLength: -3\n",
		"Path: 1 7\nTimes (in ns):\nPreprocess Times (in ns):\nComputation Times (in ns):\nLength: 3\n",
		"Path: 1 7\nTimes (in ns): NaN\nPreprocess Times (in ns): 10\nComputation Times (in ns): 90\nLength: 55\n",
		"Path: 1 7\nTimes (in ns): 100\nPreprocess Times (in ns): 10\nComputation Times (in ns): +Inf\nLength: 55\n",
		"Path: 1 7\nTimes (in ns): Inf\nPreprocess Times (in ns): 10\nComputation Times (in ns): 90\nLength: 55\n",
		"Path: 1 7\nTimes (in ns): 100\nPreprocess Times (in ns): -5\nComputation Times (in ns): 90\nLength: 55\n",
	}
	for _, output := range outputs {
		_, err := Parse([]byte(output))
		assert.True(t, errors.Is(err, ErrMalformedOutput), output)
	}
}

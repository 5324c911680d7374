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

package solver

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/sweep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoSolver repeats its input and the graph path so we can check
// what the runner passed to it
const echoSolver = `#!/bin/sh
read mode
read src
read tgt
read rep
read alg
echo "mode=$mode src=$src tgt=$tgt rep=$rep alg=$alg graph=$1"
`

const failingSolver = `#!/bin/sh
echo "cannot open file" 1>&2
exit 3
`

func writeScript(t *testing.T, body string) string {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "main")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func TestEncodeInput(t *testing.T) {
	trial := sweep.Trial{Algorithm: algo.ConstrainedBellmanFord, Source: 12, Target: 40, RepeatCount: 50}
	assert.Equal(t, "2\n12\n40\n50\n2\n", EncodeInput(trial, DefaultModeMarker))
}

func TestRunPassesInputAndGraph(t *testing.T) {
	runner := NewRunner(writeScript(t, echoSolver), "data/rcsp1.txt", DefaultModeMarker)
	trial := sweep.Trial{Algorithm: algo.ConstrainedDijkstra, Source: 3, Target: 9, RepeatCount: 5}
	out, err := runner.Run(trial)
	require.NoError(t, err)
	assert.Equal(
		t,
		"mode=2 src=3 tgt=9 rep=5 alg=1 graph=data/rcsp1.txt",
		strings.TrimSpace(string(out)),
	)
}

func TestRunNonzeroExit(t *testing.T) {
	runner := NewRunner(writeScript(t, failingSolver), "data/rcsp1.txt", DefaultModeMarker)
	_, err := runner.Run(sweep.Trial{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 2, RepeatCount: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProcessFailed))
	assert.Contains(t, err.Error(), "cannot open file")
}

func TestRunMissingExecutable(t *testing.T) {
	runner := NewRunner(filepath.Join(t.TempDir(), "no-such-solver"), "data/rcsp1.txt", DefaultModeMarker)
	_, err := runner.Run(sweep.Trial{Algorithm: algo.ConstrainedDijkstra, Source: 1, Target: 2, RepeatCount: 1})
	assert.True(t, errors.Is(err, ErrProcessFailed))
}

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
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/sweep"
)

// DefaultModeMarker selects the constrained shortest path task of the solver.
const DefaultModeMarker = 2

var ErrProcessFailed = errors.New("solver process failed")

// EncodeInput serializes a trial into the line oriented input
// the solver reads from its standard input: mode marker, source,
// target, number of repeats, algorithm selector.
func EncodeInput(trial sweep.Trial, modeMarker int) string {
	lines := []string{
		strconv.Itoa(modeMarker),
		strconv.Itoa(trial.Source),
		strconv.Itoa(trial.Target),
		strconv.Itoa(trial.RepeatCount),
		strconv.Itoa(trial.Algorithm.ID()),
	}
	return strings.Join(lines, "\n") + "\n"
}

// Runner invokes the external solver executable.
// Each invocation is synchronous and there is no timeout - the solver
// may legitimately run for a long time on some inputs.
type Runner struct {
	SolverPath    string
	GraphDataPath string
	ModeMarker    int
}

// Run executes the solver for a single trial and returns its full
// standard output. A solver which cannot be started or which exits
// with a nonzero status produces ErrProcessFailed.
func (runner *Runner) Run(trial sweep.Trial) ([]byte, error) {
	cmd := exec.Command(runner.SolverPath, runner.GraphDataPath)
	cmd.Stdin = strings.NewReader(EncodeInput(trial, runner.ModeMarker))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf(
			"%w: %s (%s): %w\nStderr: %s",
			ErrProcessFailed, runner.SolverPath, trial, err, stderr.String(),
		)
	}
	return stdout.Bytes(), nil
}

func NewRunner(solverPath, graphDataPath string, modeMarker int) *Runner {
	return &Runner{
		SolverPath:    solverPath,
		GraphDataPath: graphDataPath,
		ModeMarker:    modeMarker,
	}
}

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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/sweep"
	"github.com/rs/zerolog/log"
)

// Labels of the solver output sections. They are part of the contract
// with the solver and must not change.
const (
	LabelPath             = "Path:"
	LabelLength           = "Length:"
	LabelTimes            = "Times (in ns):"
	LabelPreprocessTimes  = "Preprocess Times (in ns):"
	LabelComputationTimes = "Computation Times (in ns):"
)

var ErrMalformedOutput = errors.New("malformed solver output")

// ParseError binds a parsing problem to the trial which produced
// the output so the problem can be reproduced.
type ParseError struct {
	Trial sweep.Trial
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse solver output of %s: %s", e.Trial, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ---------------------------

// Output contains all the values extracted from a single solver invocation.
type Output struct {
	Path             []int
	Length           int
	Times            []float64
	PreprocessTimes  []float64
	ComputationTimes []float64
}

// NumRepeats is the realized number of repeated measurements.
func (out *Output) NumRepeats() int {
	return len(out.Times)
}

// Rows zips the three timing sequences into measurement rows
// (one per repeated run).
func (out *Output) Rows(trial sweep.Trial) []measure.Row {
	ans := make([]measure.Row, len(out.Times))
	for i := range out.Times {
		ans[i] = measure.Row{
			Algorithm:       trial.Algorithm,
			Source:          trial.Source,
			Target:          trial.Target,
			Time:            out.Times[i],
			PreprocessTime:  out.PreprocessTimes[i],
			ComputationTime: out.ComputationTimes[i],
			Dist:            out.Length,
			NumVertices:     len(out.Path),
		}
	}
	return ans
}

// ---------------------------

// findSections finds the first line starting with each of the labels
// and returns the rest of the line (i.e. the values).
// Matching at the line start prevents the total times label from
// matching the preprocess/computation lines.
func findSections(output string, labels ...string) map[string]string {
	ans := make(map[string]string, len(labels))
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		for _, label := range labels {
			if _, ok := ans[label]; ok {
				continue
			}
			if strings.HasPrefix(line, label) {
				ans[label] = strings.TrimPrefix(line, label)
			}
		}
	}
	return ans
}

func parseInts(label, v string) ([]int, error) {
	items := strings.Fields(v)
	ans := make([]int, len(items))
	for i, item := range items {
		n, err := strconv.Atoi(item)
		if err != nil {
			return nil, fmt.Errorf("%w: non-integer value '%s' in '%s'", ErrMalformedOutput, item, label)
		}
		ans[i] = n
	}
	return ans, nil
}

func parseFloats(label, v string) ([]float64, error) {
	items := strings.Fields(v)
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no values in '%s'", ErrMalformedOutput, label)
	}
	ans := make([]float64, len(items))
	for i, item := range items {
		n, err := strconv.ParseFloat(item, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: non-numeric value '%s' in '%s'", ErrMalformedOutput, item, label)
		}
		if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
			return nil, fmt.Errorf("%w: invalid time '%s' in '%s'", ErrMalformedOutput, item, label)
		}
		ans[i] = n
	}
	return ans, nil
}

// Parse extracts path, path length and timing sequences from a raw
// solver output. Any missing section, non-numeric value, empty path
// or timing sequences of different lengths are reported as ErrMalformedOutput.
func Parse(output []byte) (*Output, error) {
	sections := findSections(
		string(output),
		LabelPath, LabelLength, LabelTimes, LabelPreprocessTimes, LabelComputationTimes,
	)
	for _, label := range []string{
		LabelPath, LabelLength, LabelTimes, LabelPreprocessTimes, LabelComputationTimes} {
		if _, ok := sections[label]; !ok {
			return nil, fmt.Errorf("%w: missing section '%s'", ErrMalformedOutput, label)
		}
	}
	var ans Output
	var err error
	ans.Path, err = parseInts(LabelPath, sections[LabelPath])
	if err != nil {
		return nil, err
	}
	if len(ans.Path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrMalformedOutput)
	}

	length, err := parseInts(LabelLength, sections[LabelLength])
	if err != nil {
		return nil, err
	}
	if len(length) != 1 {
		return nil, fmt.Errorf(
			"%w: expected a single value in '%s', got %d", ErrMalformedOutput, LabelLength, len(length))
	}
	if length[0] < 0 {
		return nil, fmt.Errorf("%w: negative path length %d", ErrMalformedOutput, length[0])
	}
	ans.Length = length[0]

	if ans.Times, err = parseFloats(LabelTimes, sections[LabelTimes]); err != nil {
		return nil, err
	}
	if ans.PreprocessTimes, err = parseFloats(LabelPreprocessTimes, sections[LabelPreprocessTimes]); err != nil {
		return nil, err
	}
	if ans.ComputationTimes, err = parseFloats(LabelComputationTimes, sections[LabelComputationTimes]); err != nil {
		return nil, err
	}
	if len(ans.Times) != len(ans.PreprocessTimes) || len(ans.Times) != len(ans.ComputationTimes) {
		return nil, fmt.Errorf(
			"%w: timing sequences differ in length (total: %d, preprocess: %d, computation: %d)",
			ErrMalformedOutput, len(ans.Times), len(ans.PreprocessTimes), len(ans.ComputationTimes),
		)
	}
	return &ans, nil
}

// ParseTrial parses an output of the trial and converts it into
// measurement rows. A realized number of repeats different from the
// requested one is tolerated (and logged), the realized count is used.
func ParseTrial(output []byte, trial sweep.Trial) ([]measure.Row, error) {
	out, err := Parse(output)
	if err != nil {
		return nil, &ParseError{Trial: trial, Err: err}
	}
	if out.NumRepeats() != trial.RepeatCount {
		log.Warn().
			Str("algorithm", trial.Algorithm.DisplayName()).
			Int("source", trial.Source).
			Int("target", trial.Target).
			Int("requested", trial.RepeatCount).
			Int("realized", out.NumRepeats()).
			Msg("solver returned unexpected number of repeated measurements")
	}
	return out.Rows(trial), nil
}

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

package sweep

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
)

// Trial is a single unit of work for the solver.
type Trial struct {
	Algorithm   algo.Algorithm
	Source      int
	Target      int
	RepeatCount int
}

func (t Trial) String() string {
	return fmt.Sprintf("%s [%d -> %d, repeat: %d]", t.Algorithm.DisplayName(), t.Source, t.Target, t.RepeatCount)
}

// ReadVertexCount reads the number of vertices from a graph data file.
// Only the first token of the first line is interpreted, the rest
// of the file is left to the solver.
func ReadVertexCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read vertex count: %w", err)
	}
	defer f.Close()
	scnr := bufio.NewScanner(f)
	if !scnr.Scan() {
		if err := scnr.Err(); err != nil {
			return 0, fmt.Errorf("failed to read vertex count: %w", err)
		}
		return 0, fmt.Errorf("failed to read vertex count: empty graph file %s", path)
	}
	items := strings.Fields(scnr.Text())
	if len(items) == 0 {
		return 0, fmt.Errorf("failed to read vertex count: empty header in %s", path)
	}
	n, err := strconv.Atoi(items[0])
	if err != nil {
		return 0, fmt.Errorf("failed to read vertex count: %w", err)
	}
	if n < 1 {
		return 0, fmt.Errorf("failed to read vertex count: invalid value %d", n)
	}
	return n, nil
}

// SampleVertices draws k distinct vertex ids from [1, n] (without replacement).
// For the same seed the result is always the same. The returned
// ids are sorted in ascending order.
func SampleVertices(n, k int, seed uint64) ([]int, error) {
	if k < 0 || k > n {
		return nil, fmt.Errorf("invalid sample size %d for %d vertices", k, n)
	}
	rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	// Floyd's sampling - we do not want to allocate n items for huge graphs
	selected := make(map[int]struct{}, k)
	ans := make([]int, 0, k)
	for j := n - k + 1; j <= n; j++ {
		v := rnd.IntN(j) + 1
		if _, ok := selected[v]; ok {
			v = j
		}
		selected[v] = struct{}{}
		ans = append(ans, v)
	}
	slices.Sort(ans)
	return ans, nil
}

// Generate creates the full cross product of algorithms and ordered
// pairs of distinct vertices. All the algorithms share the same vertex
// sample so their results are comparable.
func Generate(algorithms []algo.Algorithm, vertices []int, repeat int) []Trial {
	numPairs := len(vertices) * (len(vertices) - 1)
	if numPairs < 0 {
		numPairs = 0
	}
	ans := make([]Trial, 0, len(algorithms)*numPairs)
	for _, a := range algorithms {
		for _, src := range vertices {
			for _, tgt := range vertices {
				if src == tgt {
					continue
				}
				ans = append(ans, Trial{
					Algorithm:   a,
					Source:      src,
					Target:      tgt,
					RepeatCount: repeat,
				})
			}
		}
	}
	return ans
}

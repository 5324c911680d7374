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
	"os"
	"path/filepath"
	"testing"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleVerticesDistinctAndInRange(t *testing.T) {
	smpl, err := SampleVertices(100, 30, 42)
	require.NoError(t, err)
	assert.Len(t, smpl, 30)
	seen := make(map[int]bool)
	for i, v := range smpl {
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 100)
		assert.False(t, seen[v], "duplicate vertex %d", v)
		seen[v] = true
		if i > 0 {
			assert.Less(t, smpl[i-1], v)
		}
	}
}

func TestSampleVerticesReproducible(t *testing.T) {
	s1, err := SampleVertices(1000, 20, 7)
	require.NoError(t, err)
	s2, err := SampleVertices(1000, 20, 7)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestSampleVerticesFull(t *testing.T) {
	smpl, err := SampleVertices(5, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, smpl)
}

func TestSampleVerticesTooLarge(t *testing.T) {
	_, err := SampleVertices(5, 6, 1)
	assert.Error(t, err)
}

func TestGenerateCrossProduct(t *testing.T) {
	vertices := []int{3, 8, 11, 20}
	algs := algo.All()
	trials := Generate(algs, vertices, 50)
	assert.Len(t, trials, len(algs)*len(vertices)*(len(vertices)-1))

	type key struct {
		a        algo.Algorithm
		src, tgt int
	}
	seen := make(map[key]bool)
	for _, tr := range trials {
		assert.NotEqual(t, tr.Source, tr.Target)
		assert.Equal(t, 50, tr.RepeatCount)
		k := key{tr.Algorithm, tr.Source, tr.Target}
		assert.False(t, seen[k])
		seen[k] = true
	}
	for _, a := range algs {
		for _, src := range vertices {
			for _, tgt := range vertices {
				if src != tgt {
					assert.True(t, seen[key{a, src, tgt}])
				}
			}
		}
	}
}

func TestGenerateOrder(t *testing.T) {
	trials := Generate([]algo.Algorithm{algo.ConstrainedDijkstra}, []int{1, 2, 3}, 1)
	require.Len(t, trials, 6)
	assert.Equal(t, 1, trials[0].Source)
	assert.Equal(t, 2, trials[0].Target)
	assert.Equal(t, 1, trials[1].Source)
	assert.Equal(t, 3, trials[1].Target)
	assert.Equal(t, 3, trials[5].Source)
	assert.Equal(t, 2, trials[5].Target)
}

func TestGenerateSingleVertex(t *testing.T) {
	assert.Empty(t, Generate(algo.All(), []int{4}, 10))
}

func TestReadVertexCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rcsp1.txt")
	require.NoError(t, os.WriteFile(path, []byte("100 955 10\n1 2 3 4\n"), 0644))
	n, err := ReadVertexCount(path)
	assert.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestReadVertexCountInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc 1 2\n"), 0644))
	_, err := ReadVertexCount(path)
	assert.Error(t, err)

	_, err = ReadVertexCount(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

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

package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayNames(t *testing.T) {
	assert.Equal(t, "Constrained Dijkstra", ConstrainedDijkstra.DisplayName())
	assert.Equal(t, "Constrained Bellman-Ford", ConstrainedBellmanFord.DisplayName())
	assert.Equal(t, "Algorithm 7", Algorithm(7).DisplayName())
}

func TestFromDisplayNameRoundTrip(t *testing.T) {
	for _, a := range All() {
		b, err := FromDisplayName(a.DisplayName())
		assert.NoError(t, err)
		assert.Equal(t, a, b)
	}
	_, err := FromDisplayName("Dijkstra")
	assert.Error(t, err)
}

func TestFromID(t *testing.T) {
	a, err := FromID(2)
	assert.NoError(t, err)
	assert.Equal(t, ConstrainedBellmanFord, a)
	_, err = FromID(3)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	a, err := Parse("1")
	assert.NoError(t, err)
	assert.Equal(t, ConstrainedDijkstra, a)
	a, err = Parse(" constrained bellman-ford ")
	assert.NoError(t, err)
	assert.Equal(t, ConstrainedBellmanFord, a)
	_, err = Parse("foo")
	assert.Error(t, err)
}

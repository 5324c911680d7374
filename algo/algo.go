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
	"fmt"
	"strconv"
	"strings"
)

// Algorithm identifies an algorithm variant of the external solver.
// The numeric value is the selector id the solver expects on its input.
type Algorithm int

const (
	ConstrainedDijkstra    Algorithm = 1
	ConstrainedBellmanFord Algorithm = 2
)

var displayNames = map[Algorithm]string{
	ConstrainedDijkstra:    "Constrained Dijkstra",
	ConstrainedBellmanFord: "Constrained Bellman-Ford",
}

// All returns all the supported variants ordered by their selector id.
func All() []Algorithm {
	return []Algorithm{ConstrainedDijkstra, ConstrainedBellmanFord}
}

func (a Algorithm) ID() int {
	return int(a)
}

// DisplayName is the human readable name used both in charts
// and in the `algorithm` column of the measurement table.
func (a Algorithm) DisplayName() string {
	name, ok := displayNames[a]
	if !ok {
		return fmt.Sprintf("Algorithm %d", a)
	}
	return name
}

func (a Algorithm) String() string {
	return a.DisplayName()
}

func (a Algorithm) IsValid() bool {
	_, ok := displayNames[a]
	return ok
}

func FromID(id int) (Algorithm, error) {
	a := Algorithm(id)
	if !a.IsValid() {
		return 0, fmt.Errorf("unknown algorithm id %d", id)
	}
	return a, nil
}

func FromDisplayName(name string) (Algorithm, error) {
	for _, a := range All() {
		if a.DisplayName() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm name '%s'", name)
}

// Parse accepts either a selector id or a display name (case insensitive).
// It is meant for user provided values (URL arguments etc.).
func Parse(v string) (Algorithm, error) {
	v = strings.TrimSpace(v)
	if id, err := strconv.Atoi(v); err == nil {
		return FromID(id)
	}
	for _, a := range All() {
		if strings.EqualFold(a.DisplayName(), v) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm '%s'", v)
}

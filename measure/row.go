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

package measure

import (
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
)

// Columns lists the persisted table columns in their exact order.
// Any downstream consumer depends on these names.
var Columns = []string{
	"algorithm",
	"source",
	"target",
	"time",
	"preprocess_time",
	"computation_time",
	"dist",
	"num_vertices",
}

// Row is a single repeated observation of a trial. Rows produced by
// one solver invocation share everything except the three times.
type Row struct {
	Algorithm algo.Algorithm `msgpack:"algorithm" json:"algorithm"`
	Source    int            `msgpack:"source" json:"source"`
	Target    int            `msgpack:"target" json:"target"`

	// Time is the total time of the run in nanoseconds
	Time float64 `msgpack:"time" json:"time"`

	PreprocessTime  float64 `msgpack:"preprocessTime" json:"preprocessTime"`
	ComputationTime float64 `msgpack:"computationTime" json:"computationTime"`

	// Dist is the path weight (length) found by the solver
	Dist int `msgpack:"dist" json:"dist"`

	// NumVertices is the number of vertices of the found path
	NumVertices int `msgpack:"numVertices" json:"numVertices"`
}

// ------------------------

type Filter struct {
	Algorithm *algo.Algorithm
}

func (filter Filter) SetAlgorithm(v algo.Algorithm) Filter {
	filter.Algorithm = &v
	return filter
}

func (filter Filter) Matches(row Row) bool {
	if filter.Algorithm != nil && *filter.Algorithm != row.Algorithm {
		return false
	}
	return true
}

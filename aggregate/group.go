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

package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
)

// Dimension is a measurement attribute rows can be grouped by.
type Dimension int

const (
	DimAlgorithm Dimension = iota
	DimPathWeight
	DimSource
	DimTarget
	DimNumVertices
)

func (d Dimension) Column() string {
	switch d {
	case DimAlgorithm:
		return "algorithm"
	case DimPathWeight:
		return "dist"
	case DimSource:
		return "source"
	case DimTarget:
		return "target"
	case DimNumVertices:
		return "num_vertices"
	}
	return fmt.Sprintf("dim%d", int(d))
}

func ParseDimension(v string) (Dimension, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	for _, d := range []Dimension{DimAlgorithm, DimPathWeight, DimSource, DimTarget, DimNumVertices} {
		if d.Column() == v {
			return d, nil
		}
	}
	if v == "path_weight" {
		return DimPathWeight, nil
	}
	return 0, fmt.Errorf("unknown grouping dimension '%s'", v)
}

// GroupKey identifies a group. Attributes not used for grouping
// are left zero.
type GroupKey struct {
	Algorithm   algo.Algorithm
	PathWeight  int
	Source      int
	Target      int
	NumVertices int
}

// Value returns a printable value of the key for a dimension
func (key GroupKey) Value(d Dimension) string {
	switch d {
	case DimAlgorithm:
		return key.Algorithm.DisplayName()
	case DimPathWeight:
		return strconv.Itoa(key.PathWeight)
	case DimSource:
		return strconv.Itoa(key.Source)
	case DimTarget:
		return strconv.Itoa(key.Target)
	case DimNumVertices:
		return strconv.Itoa(key.NumVertices)
	}
	return ""
}

func keyOf(row measure.Row, dims []Dimension) GroupKey {
	var key GroupKey
	for _, d := range dims {
		switch d {
		case DimAlgorithm:
			key.Algorithm = row.Algorithm
		case DimPathWeight:
			key.PathWeight = row.Dist
		case DimSource:
			key.Source = row.Source
		case DimTarget:
			key.Target = row.Target
		case DimNumVertices:
			key.NumVertices = row.NumVertices
		}
	}
	return key
}

func compareKeys(k1, k2 GroupKey) int {
	return cmp.Or(
		cmp.Compare(k1.Algorithm, k2.Algorithm),
		cmp.Compare(k1.PathWeight, k2.PathWeight),
		cmp.Compare(k1.Source, k2.Source),
		cmp.Compare(k1.Target, k2.Target),
		cmp.Compare(k1.NumVertices, k2.NumVertices),
	)
}

// Group holds all the observed values of rows sharing the same key.
// The values are indexed by Metric and keep the rows' order.
type Group struct {
	Key    GroupKey
	Values [numMetrics][]float64
}

func (g *Group) Size() int {
	return len(g.Values[MetricTotal])
}

// GroupBy splits rows into groups by the provided dimensions.
// The groups are sorted by their keys so the result does not depend
// on map iteration order.
func GroupBy(rows []measure.Row, dims ...Dimension) []*Group {
	index := make(map[GroupKey]*Group)
	for _, row := range rows {
		key := keyOf(row, dims)
		grp, ok := index[key]
		if !ok {
			grp = &Group{Key: key}
			index[key] = grp
		}
		for _, m := range AllMetrics() {
			grp.Values[m] = append(grp.Values[m], m.Value(row))
		}
	}
	ans := make([]*Group, 0, len(index))
	for _, grp := range index {
		ans = append(ans, grp)
	}
	slices.SortFunc(ans, func(g1, g2 *Group) int {
		return compareKeys(g1.Key, g2.Key)
	})
	return ans
}

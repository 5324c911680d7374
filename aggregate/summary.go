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
	"math"
	"slices"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"gonum.org/v1/gonum/stat"
)

// GroupSummary contains statistics of all the metrics for a group
// of rows defined by arbitrary dimensions.
type GroupSummary struct {
	Key   GroupKey
	N     int
	Stats [numMetrics]Interval
}

// Summarize groups rows by dims and calculates means and confidence
// intervals of all the metrics.
func Summarize(rows []measure.Row, conf CIConf, dims ...Dimension) []GroupSummary {
	groups := GroupBy(rows, dims...)
	ans := make([]GroupSummary, len(groups))
	for i, grp := range groups {
		ans[i] = GroupSummary{Key: grp.Key, N: grp.Size()}
		for _, m := range AllMetrics() {
			ans[i].Stats[m] = ConfidenceInterval(grp.Values[m], conf)
		}
	}
	return ans
}

// -------------------------

// HeatmapCell is an aggregated (source, target) pair of an algorithm.
type HeatmapCell struct {
	Algorithm algo.Algorithm
	Source    int
	Target    int
	N         int
	Means     [numMetrics]float64
}

func (cell HeatmapCell) Mean(m Metric) float64 {
	return cell.Means[m]
}

// Heatmap calculates per-metric means for each (algorithm, source, target).
// Cells are sorted by algorithm, source and target.
func Heatmap(rows []measure.Row) []HeatmapCell {
	groups := GroupBy(rows, DimAlgorithm, DimSource, DimTarget)
	ans := make([]HeatmapCell, len(groups))
	for i, grp := range groups {
		ans[i] = HeatmapCell{
			Algorithm: grp.Key.Algorithm,
			Source:    grp.Key.Source,
			Target:    grp.Key.Target,
			N:         grp.Size(),
		}
		for _, m := range AllMetrics() {
			ans[i].Means[m] = stat.Mean(grp.Values[m], nil)
		}
	}
	return ans
}

// Matrix is a source x target grid of a single metric.
// Values[i][j] belongs to Sources[i] and Targets[j], missing
// combinations (e.g. self-pairs) are NaN.
type Matrix struct {
	Algorithm algo.Algorithm
	Metric    Metric
	Sources   []int
	Targets   []int
	Values    [][]float64
}

// HeatmapMatrix pivots cells of an algorithm into a matrix.
func HeatmapMatrix(cells []HeatmapCell, alg algo.Algorithm, metric Metric) Matrix {
	ans := Matrix{Algorithm: alg, Metric: metric}
	srcIdx := make(map[int]int)
	tgtIdx := make(map[int]int)
	for _, cell := range cells {
		if cell.Algorithm != alg {
			continue
		}
		if _, ok := srcIdx[cell.Source]; !ok {
			srcIdx[cell.Source] = -1
			ans.Sources = append(ans.Sources, cell.Source)
		}
		if _, ok := tgtIdx[cell.Target]; !ok {
			tgtIdx[cell.Target] = -1
			ans.Targets = append(ans.Targets, cell.Target)
		}
	}
	slices.Sort(ans.Sources)
	slices.Sort(ans.Targets)
	for i, v := range ans.Sources {
		srcIdx[v] = i
	}
	for j, v := range ans.Targets {
		tgtIdx[v] = j
	}
	ans.Values = make([][]float64, len(ans.Sources))
	for i := range ans.Values {
		ans.Values[i] = make([]float64, len(ans.Targets))
		for j := range ans.Values[i] {
			ans.Values[i][j] = math.NaN()
		}
	}
	for _, cell := range cells {
		if cell.Algorithm != alg {
			continue
		}
		ans.Values[srcIdx[cell.Source]][tgtIdx[cell.Target]] = cell.Mean(metric)
	}
	return ans
}

// -------------------------

// LinePoint is a point of a line chart: all the trials of an algorithm
// sharing the same path weight collapsed into one point.
type LinePoint struct {
	Algorithm  algo.Algorithm
	PathWeight int
	N          int
	Stats      [numMetrics]Interval
}

func (p LinePoint) Stat(m Metric) Interval {
	return p.Stats[m]
}

// Line groups rows by (algorithm, path weight). The points are sorted
// by algorithm and path weight.
func Line(rows []measure.Row, conf CIConf) []LinePoint {
	summ := Summarize(rows, conf, DimAlgorithm, DimPathWeight)
	ans := make([]LinePoint, len(summ))
	for i, s := range summ {
		ans[i] = LinePoint{
			Algorithm:  s.Key.Algorithm,
			PathWeight: s.Key.PathWeight,
			N:          s.N,
			Stats:      s.Stats,
		}
	}
	return ans
}

// LineSeries returns points of a single algorithm.
func LineSeries(points []LinePoint, alg algo.Algorithm) []LinePoint {
	ans := make([]LinePoint, 0, len(points))
	for _, p := range points {
		if p.Algorithm == alg {
			ans = append(ans, p)
		}
	}
	return ans
}

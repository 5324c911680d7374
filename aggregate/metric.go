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
	"fmt"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
)

// Metric is one of the three measured times.
type Metric int

const (
	MetricTotal Metric = iota
	MetricPreprocess
	MetricComputation
)

const numMetrics = 3

func AllMetrics() []Metric {
	return []Metric{MetricTotal, MetricPreprocess, MetricComputation}
}

// Name is a short identifier used e.g. in chart file names.
func (m Metric) Name() string {
	switch m {
	case MetricTotal:
		return "total"
	case MetricPreprocess:
		return "preprocess"
	case MetricComputation:
		return "computation"
	}
	return fmt.Sprintf("metric%d", int(m))
}

// Column is the name of the measurement table column the metric is stored in.
func (m Metric) Column() string {
	switch m {
	case MetricTotal:
		return "time"
	case MetricPreprocess:
		return "preprocess_time"
	case MetricComputation:
		return "computation_time"
	}
	return ""
}

func (m Metric) Title() string {
	switch m {
	case MetricTotal:
		return "total running time"
	case MetricPreprocess:
		return "preprocessing time"
	case MetricComputation:
		return "computation time"
	}
	return m.Name()
}

// Value extracts the metric from a row (in nanoseconds).
func (m Metric) Value(row measure.Row) float64 {
	switch m {
	case MetricPreprocess:
		return row.PreprocessTime
	case MetricComputation:
		return row.ComputationTime
	default:
		return row.Time
	}
}

func (m Metric) String() string {
	return m.Name()
}

// ParseMetric accepts both the short name and the column name.
func ParseMetric(v string) (Metric, error) {
	v = strings.TrimSpace(strings.ToLower(v))
	for _, m := range AllMetrics() {
		if v == m.Name() || v == m.Column() {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown metric '%s'", v)
}

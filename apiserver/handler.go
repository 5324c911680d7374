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

package apiserver

import (
	"fmt"
	"math"
	"net/http"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
)

func (api *apiServer) handleVersion(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, api.version)
}

// algorithmArg reads an optional algorithm (id or display name).
// In case of an invalid value, an error response is written and false returned.
func algorithmArg(ctx *gin.Context) (*algo.Algorithm, bool) {
	v := ctx.Query("algorithm")
	if v == "" {
		return nil, true
	}
	a, err := algo.Parse(v)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return nil, false
	}
	return &a, true
}

func metricArg(ctx *gin.Context) (aggregate.Metric, bool) {
	v := ctx.Query("metric")
	if v == "" {
		return aggregate.MetricTotal, true
	}
	m, err := aggregate.ParseMetric(v)
	if err != nil {
		uniresp.RespondWithErrorJSON(ctx, fmt.Errorf("invalid request: %w", err), http.StatusBadRequest)
		return 0, false
	}
	return m, true
}

func (api *apiServer) handleRows(ctx *gin.Context) {
	alg, ok := algorithmArg(ctx)
	if !ok {
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", 0)
	if !ok {
		return
	}
	if limit < 0 {
		uniresp.RespondWithErrorJSON(
			ctx, fmt.Errorf("invalid request: negative limit"), http.StatusBadRequest)
		return
	}
	var filter measure.Filter
	if alg != nil {
		filter = filter.SetAlgorithm(*alg)
	}
	rows := api.store.Rows(filter)
	resp := rowsResponse{Total: len(rows)}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	resp.Rows = make([]rowView, len(rows))
	for i, row := range rows {
		resp.Rows[i] = newRowView(row)
	}
	uniresp.WriteJSONResponse(ctx.Writer, resp)
}

func (api *apiServer) handleHeatmap(ctx *gin.Context) {
	alg, ok := algorithmArg(ctx)
	if !ok {
		return
	}
	metric, ok := metricArg(ctx)
	if !ok {
		return
	}
	resp := heatmapResponse{
		Metric: metric.Name(),
		Cells:  make([]heatmapCellView, 0, len(api.heatmap)),
	}
	for _, cell := range api.heatmap {
		if alg != nil && cell.Algorithm != *alg {
			continue
		}
		resp.Cells = append(resp.Cells, heatmapCellView{
			Algorithm: cell.Algorithm.DisplayName(),
			Source:    cell.Source,
			Target:    cell.Target,
			N:         cell.N,
			Mean:      jsonSafe(cell.Mean(metric)),
		})
	}
	uniresp.WriteJSONResponse(ctx.Writer, resp)
}

// jsonSafe replaces values JSON cannot encode
func jsonSafe(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (api *apiServer) handleLine(ctx *gin.Context) {
	alg, ok := algorithmArg(ctx)
	if !ok {
		return
	}
	metric, ok := metricArg(ctx)
	if !ok {
		return
	}
	ciConf := api.conf.CIConf()
	resp := lineResponse{
		Metric:          metric.Name(),
		ConfidenceLevel: ciConf.Level,
		CIMethod:        ciConf.Method,
		Points:          make([]linePointView, 0, len(api.line)),
	}
	for _, pt := range api.line {
		if alg != nil && pt.Algorithm != *alg {
			continue
		}
		stat := pt.Stat(metric)
		resp.Points = append(resp.Points, linePointView{
			Algorithm:  pt.Algorithm.DisplayName(),
			PathWeight: pt.PathWeight,
			N:          pt.N,
			Mean:       jsonSafe(stat.Mean),
			Low:        jsonSafe(stat.Low),
			High:       jsonSafe(stat.High),
		})
	}
	uniresp.WriteJSONResponse(ctx.Writer, resp)
}

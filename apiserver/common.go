package apiserver

import (
	"context"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/cnf"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/gin-gonic/gin"
)

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

// ------

type rowView struct {
	Algorithm       string  `json:"algorithm"`
	AlgorithmID     int     `json:"algorithmId"`
	Source          int     `json:"source"`
	Target          int     `json:"target"`
	Time            float64 `json:"time"`
	PreprocessTime  float64 `json:"preprocessTime"`
	ComputationTime float64 `json:"computationTime"`
	Dist            int     `json:"dist"`
	NumVertices     int     `json:"numVertices"`
}

func newRowView(row measure.Row) rowView {
	return rowView{
		Algorithm:       row.Algorithm.DisplayName(),
		AlgorithmID:     row.Algorithm.ID(),
		Source:          row.Source,
		Target:          row.Target,
		Time:            row.Time,
		PreprocessTime:  row.PreprocessTime,
		ComputationTime: row.ComputationTime,
		Dist:            row.Dist,
		NumVertices:     row.NumVertices,
	}
}

type rowsResponse struct {
	Total int       `json:"total"`
	Rows  []rowView `json:"rows"`
}

type heatmapCellView struct {
	Algorithm string  `json:"algorithm"`
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	N         int     `json:"n"`
	Mean      float64 `json:"mean"`
}

type heatmapResponse struct {
	Metric string            `json:"metric"`
	Cells  []heatmapCellView `json:"cells"`
}

type linePointView struct {
	Algorithm  string  `json:"algorithm"`
	PathWeight int     `json:"pathWeight"`
	N          int     `json:"n"`
	Mean       float64 `json:"mean"`
	Low        float64 `json:"low"`
	High       float64 `json:"high"`
}

type lineResponse struct {
	Metric          string             `json:"metric"`
	ConfidenceLevel float64            `json:"confidenceLevel"`
	CIMethod        aggregate.CIMethod `json:"ciMethod"`
	Points          []linePointView    `json:"points"`
}

// -----

func corsMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {

		var allowedOrigin string
		currOrigin := ctx.Request.Header.Get("Origin")
		for _, origin := range conf.CorsAllowedOrigins {
			if currOrigin == origin || origin == "*" {
				allowedOrigin = origin
				break
			}
		}
		if allowedOrigin != "" {
			ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			ctx.Writer.Header().Set(
				"Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With",
			)
			ctx.Writer.Header().Set("Access-Control-Allow-Methods", "OPTIONS, GET")
		}

		if ctx.Request.Method == "OPTIONS" {
			ctx.AbortWithStatus(204)
			return
		}
		ctx.Next()
	}
}

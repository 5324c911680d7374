package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/rs/zerolog/log"
)

const DefaultFormat = "pdf"

// RenderConf describes where and how all the charts are rendered.
type RenderConf struct {
	Dir    string
	Format string
	CI     aggregate.CIConf
	Scale  HeatmapScale
}

func (conf RenderConf) ext() string {
	if conf.Format == "" {
		return DefaultFormat
	}
	return conf.Format
}

// LineChartPath returns a stable path of a line chart so repeated
// runs overwrite previous charts.
func LineChartPath(dir string, metric aggregate.Metric, format string) string {
	return filepath.Join(dir, fmt.Sprintf("benchmark_plot_%s.%s", metric.Name(), format))
}

func HeatmapPath(dir string, metric aggregate.Metric, alg algo.Algorithm, format string) string {
	return filepath.Join(dir, fmt.Sprintf("benchmark_%s_%d.%s", metric.Name(), alg.ID(), format))
}

// heatmapJob is a single heatmap to render - one per algorithm and metric
type heatmapJob struct {
	algorithm algo.Algorithm
	metric    aggregate.Metric
	path      string
}

func (job heatmapJob) render(cells []aggregate.HeatmapCell, scale HeatmapScale) error {
	mtx := aggregate.HeatmapMatrix(cells, job.algorithm, job.metric)
	return Heatmap(mtx, scale, job.path)
}

func algorithmsOfCells(cells []aggregate.HeatmapCell) []algo.Algorithm {
	ans := make([]algo.Algorithm, 0, 2)
	for _, c := range cells {
		if len(ans) == 0 || ans[len(ans)-1] != c.Algorithm {
			ans = append(ans, c.Algorithm)
		}
	}
	return ans
}

// RenderAll aggregates rows and renders line charts (one per metric)
// and heatmaps (one per algorithm and metric). It returns paths of
// all the created files.
func RenderAll(rows []measure.Row, conf RenderConf) ([]string, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to render charts: no measurements")
	}
	if err := os.MkdirAll(conf.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}
	ans := make([]string, 0, 12)
	points := aggregate.Line(rows, conf.CI)
	for _, metric := range aggregate.AllMetrics() {
		path := LineChartPath(conf.Dir, metric, conf.ext())
		if err := LineChart(points, metric, conf.CI.Level, path); err != nil {
			return ans, fmt.Errorf("failed to render charts: %w", err)
		}
		log.Info().Str("path", path).Msg("created line chart")
		ans = append(ans, path)
	}

	cells := aggregate.Heatmap(rows)
	for _, alg := range algorithmsOfCells(cells) {
		for _, metric := range aggregate.AllMetrics() {
			job := heatmapJob{
				algorithm: alg,
				metric:    metric,
				path:      HeatmapPath(conf.Dir, metric, alg, conf.ext()),
			}
			if err := job.render(cells, conf.Scale); err != nil {
				return ans, fmt.Errorf("failed to render charts: %w", err)
			}
			log.Info().Str("path", job.path).Msg("created heatmap")
			ans = append(ans, job.path)
		}
	}
	return ans, nil
}

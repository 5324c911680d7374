package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/apiserver"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/benchmark"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/chart"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/cnf"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/measure"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/stats"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

const (
	errColor = color.FgHiRed
)

func exitWithError(err error, code int) {
	color.New(errColor).Fprintln(os.Stderr, err)
	os.Exit(code)
}

// dataSource selects where measurements are loaded from (table by default)
type dataSource struct {
	fromSnapshot bool
	runID        string
}

func loadRun(conf *cnf.Conf, runID string) (*measure.Store, error) {
	if conf.StatsDBPath == "" {
		return nil, fmt.Errorf("statsDBPath not configured")
	}
	db, err := stats.NewDatabase(conf.StatsDBPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	store, _, err := db.LoadRun(runID)
	return store, err
}

func loadStore(conf *cnf.Conf, src dataSource) *measure.Store {
	var store *measure.Store
	var err error
	if src.runID != "" {
		store, err = loadRun(conf, src.runID)

	} else if src.fromSnapshot {
		if conf.SnapshotPath == "" {
			exitWithError(fmt.Errorf("snapshotPath not configured"), exitErrorFailedToLoadTable)
		}
		store, err = measure.LoadSnapshot(conf.SnapshotPath)

	} else {
		store, err = measure.LoadTable(conf.TablePath)
	}
	if err != nil {
		exitWithError(err, exitErrorFailedToLoadTable)
	}
	log.Info().Int("numRows", store.Len()).Msg("loaded measurements")
	return store
}

func runActionVersion(ver cnf.VersionInfo) {
	fmt.Fprintln(os.Stderr, "spbench version: ", ver)
}

func runActionRun(conf *cnf.Conf, showProgress bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	exe := benchmark.NewExecutor(conf, showProgress)
	res, err := exe.RunFull(ctx)
	if err != nil {
		exitWithError(err, exitErrorAcquisitionFailed)
	}
	log.Info().
		Ints("vertices", res.Vertices).
		Int("numRows", res.NumRows).
		Str("table", conf.TablePath).
		Str("runId", res.RunID).
		Msg("benchmark finished")
}

func runActionCharts(conf *cnf.Conf, src dataSource) {
	store := loadStore(conf, src)
	paths, err := chart.RenderAll(store.Rows(measure.Filter{}), conf.RenderConf())
	if err != nil {
		exitWithError(err, exitErrorFailedToRenderCharts)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func writeHeatmapSummary(w io.Writer, cells []aggregate.HeatmapCell) error {
	bw := bufio.NewWriter(w)
	header := []string{"algorithm", "source", "target", "n"}
	for _, m := range aggregate.AllMetrics() {
		header = append(header, m.Column())
	}
	fmt.Fprintln(bw, strings.Join(header, "\t"))
	for _, cell := range cells {
		items := []string{
			cell.Algorithm.DisplayName(),
			fmt.Sprint(cell.Source),
			fmt.Sprint(cell.Target),
			fmt.Sprint(cell.N),
		}
		for _, m := range aggregate.AllMetrics() {
			items = append(items, formatFloat(cell.Mean(m)))
		}
		fmt.Fprintln(bw, strings.Join(items, "\t"))
	}
	return bw.Flush()
}

func writeGroupSummary(w io.Writer, groups []aggregate.GroupSummary, dims []aggregate.Dimension) error {
	bw := bufio.NewWriter(w)
	header := make([]string, 0, len(dims)+10)
	for _, d := range dims {
		header = append(header, d.Column())
	}
	header = append(header, "n")
	for _, m := range aggregate.AllMetrics() {
		header = append(header, m.Column(), m.Column()+"_low", m.Column()+"_high")
	}
	fmt.Fprintln(bw, strings.Join(header, "\t"))
	for _, grp := range groups {
		items := make([]string, 0, len(header))
		for _, d := range dims {
			items = append(items, grp.Key.Value(d))
		}
		items = append(items, fmt.Sprint(grp.N))
		for _, m := range aggregate.AllMetrics() {
			st := grp.Stats[m]
			items = append(items, formatFloat(st.Mean), formatFloat(st.Low), formatFloat(st.High))
		}
		fmt.Fprintln(bw, strings.Join(items, "\t"))
	}
	return bw.Flush()
}

func parseDimensions(v string) ([]aggregate.Dimension, error) {
	items := strings.Split(v, ",")
	ans := make([]aggregate.Dimension, 0, len(items))
	for _, item := range items {
		d, err := aggregate.ParseDimension(item)
		if err != nil {
			return nil, err
		}
		ans = append(ans, d)
	}
	return ans, nil
}

func runActionSummary(conf *cnf.Conf, src dataSource, group string) {
	store := loadStore(conf, src)
	rows := store.Rows(measure.Filter{})
	if group == "" {
		if err := writeHeatmapSummary(os.Stdout, aggregate.Heatmap(rows)); err != nil {
			exitWithError(err, exitErrorGeneralFailure)
		}
		return
	}
	dims, err := parseDimensions(group)
	if err != nil {
		exitWithError(err, exitErrorGeneralFailure)
	}
	summaries := aggregate.Summarize(rows, conf.CIConf(), dims...)
	if err := writeGroupSummary(os.Stdout, summaries, dims); err != nil {
		exitWithError(err, exitErrorGeneralFailure)
	}
}

func runActionServe(conf *cnf.Conf, src dataSource, ver cnf.VersionInfo) {
	store := loadStore(conf, src)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	apiserver.Run(ctx, conf, store, ver)
}

func runActionExportDB(conf *cnf.Conf) {
	if conf.StatsDBPath == "" {
		exitWithError(fmt.Errorf("statsDBPath not configured"), exitErrorFailedToExport)
	}
	store := loadStore(conf, dataSource{})
	runID, err := benchmark.ExportToDB(conf, store.Rows(measure.Filter{}))
	if err != nil {
		exitWithError(err, exitErrorFailedToExport)
	}
	fmt.Println(runID)
}

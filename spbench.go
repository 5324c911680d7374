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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/cnf"
	"github.com/czcorpus/cnc-gokit/logging"
)

const (
	actionRun      = "run"
	actionCharts   = "charts"
	actionSummary  = "summary"
	actionServe    = "serve"
	actionExportDB = "export-db"
	actionVersion  = "version"
	actionHelp     = "help"
)

const (
	exitErrorGeneralFailure = iota + 1
	exitErrorAcquisitionFailed
	exitErrorFailedToLoadTable
	exitErrorFailedToRenderCharts
	exitErrorFailedToExport
)

var (
	version   string
	buildDate string
	gitCommit string
)

func topLevelUsage() {
	fmt.Fprintf(os.Stderr, "SPBENCH - a benchmark harness for constrained shortest path solvers\n")
	fmt.Fprintf(os.Stderr, "-----------------------------\n\n")
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tshow version info\n", actionVersion)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\trun the benchmark sweep and store the measurement table\n", actionRun)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\trender line charts and heatmaps from a stored table\n", actionCharts)
	fmt.Fprintf(os.Stderr, "\t%s\t\tprint aggregated results as a tab separated table\n", actionSummary)
	fmt.Fprintf(os.Stderr, "\t%s\t\t\tserve aggregated results via HTTP API\n", actionServe)
	fmt.Fprintf(os.Stderr, "\t%s\t\tmirror a stored table into the sqlite database\n", actionExportDB)
	fmt.Fprintf(os.Stderr, "\nUse `spbench help ACTION` for information about a specific action\n\n")
}

// setup loads and validates the configuration, overrides (typically
// from command line options) are applied before the validation
func setup(confPath string, overrides ...func(*cnf.Conf)) *cnf.Conf {
	conf := cnf.LoadConfig(confPath)
	if conf.Logging.Level == "" {
		conf.Logging.Level = "info"
	}
	logging.SetupLogging(conf.Logging)
	for _, fn := range overrides {
		fn(conf)
	}
	cnf.ValidateAndDefaults(conf)
	return conf
}

func chartFormatOverride(format string) func(*cnf.Conf) {
	return func(conf *cnf.Conf) {
		if format != "" {
			conf.ChartFormat = format
		}
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func usageOf(fs *flag.FlagSet, args, desc string) func() {
	return func() {
		fmt.Fprintf(
			os.Stderr,
			"Usage:\t%s %s [options] %s\n\t",
			filepath.Base(os.Args[0]), fs.Name(), args)
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n%s\n", desc)
	}
}

func main() {
	ver := cnf.VersionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}

	cmdRun := flag.NewFlagSet(actionRun, flag.ExitOnError)
	noProgress := cmdRun.Bool("no-progress", false, "do not show the progress bar")
	cmdRun.Usage = usageOf(cmdRun, "config.json", "Run all the trials and store the measurement table")

	cmdCharts := flag.NewFlagSet(actionCharts, flag.ExitOnError)
	chartsFromSnapshot := cmdCharts.Bool("snapshot", false, "load measurements from the msgpack snapshot instead of the table")
	chartsFormat := cmdCharts.String("format", "", "override configured chart format (pdf, png, svg)")
	chartsRun := cmdCharts.String("run", "", "load measurements of a run (ID or 'latest') from the stats database")
	cmdCharts.Usage = usageOf(cmdCharts, "config.json", "Render line charts and heatmaps of a stored table")

	cmdSummary := flag.NewFlagSet(actionSummary, flag.ExitOnError)
	summaryFromSnapshot := cmdSummary.Bool("snapshot", false, "load measurements from the msgpack snapshot instead of the table")
	summaryRun := cmdSummary.String("run", "", "load measurements of a run (ID or 'latest') from the stats database")
	summaryGroup := cmdSummary.String(
		"group", "", "comma separated grouping dimensions (algorithm, dist, source, target, num_vertices); "+
			"if empty, the heatmap summary is printed")
	cmdSummary.Usage = usageOf(cmdSummary, "config.json", "Print aggregated results as a tab separated table")

	cmdServe := flag.NewFlagSet(actionServe, flag.ExitOnError)
	serveFromSnapshot := cmdServe.Bool("snapshot", false, "load measurements from the msgpack snapshot instead of the table")
	serveRun := cmdServe.String("run", "", "load measurements of a run (ID or 'latest') from the stats database")
	cmdServe.Usage = usageOf(cmdServe, "config.json", "Serve aggregated results of a stored table via HTTP API")

	cmdExportDB := flag.NewFlagSet(actionExportDB, flag.ExitOnError)
	cmdExportDB.Usage = usageOf(cmdExportDB, "config.json", "Mirror a stored table into the sqlite database as a new run")

	cmdVersion := flag.NewFlagSet(actionVersion, flag.ExitOnError)
	cmdVersion.Usage = func() {
		cmdVersion.PrintDefaults()
	}

	cmdHelp := flag.NewFlagSet(actionHelp, flag.ExitOnError)
	cmdHelp.Usage = func() {
		topLevelUsage()
	}

	action := actionHelp
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	switch action {
	case actionHelp:
		var subj string
		if len(os.Args) > 2 {
			cmdHelp.Parse(os.Args[2:])
			subj = cmdHelp.Arg(0)
		}
		switch subj {
		case actionRun:
			cmdRun.Usage()
		case actionCharts:
			cmdCharts.Usage()
		case actionSummary:
			cmdSummary.Usage()
		case actionServe:
			cmdServe.Usage()
		case actionExportDB:
			cmdExportDB.Usage()
		default:
			topLevelUsage()
		}
	case actionVersion:
		cmdVersion.Parse(os.Args[2:])
		runActionVersion(ver)
	case actionRun:
		cmdRun.Parse(os.Args[2:])
		conf := setup(cmdRun.Arg(0))
		runActionRun(conf, !*noProgress)
	case actionCharts:
		cmdCharts.Parse(os.Args[2:])
		conf := setup(cmdCharts.Arg(0), chartFormatOverride(*chartsFormat))
		runActionCharts(conf, dataSource{fromSnapshot: *chartsFromSnapshot, runID: *chartsRun})
	case actionSummary:
		cmdSummary.Parse(os.Args[2:])
		conf := setup(cmdSummary.Arg(0))
		runActionSummary(
			conf, dataSource{fromSnapshot: *summaryFromSnapshot, runID: *summaryRun}, *summaryGroup)
	case actionServe:
		cmdServe.Parse(os.Args[2:])
		conf := setup(cmdServe.Arg(0))
		runActionServe(conf, dataSource{fromSnapshot: *serveFromSnapshot, runID: *serveRun}, ver)
	case actionExportDB:
		cmdExportDB.Parse(os.Args[2:])
		conf := setup(cmdExportDB.Arg(0))
		runActionExportDB(conf)
	default:
		fmt.Fprintf(os.Stderr, "Unknown action, please use 'help' to get more information\n")
		os.Exit(exitErrorGeneralFailure)
	}
}

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

package cnf

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/aggregate"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/algo"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/chart"
	"github.com/abderr03/On-Constrained-and-k-Shortest-Paths/solver"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltNumRepeat              = 50
	dfltSampleSize             = 30
	dfltTablePath              = "benchmark_task_2.csv"
	dfltChartsDir              = "."
	dfltHeatmapMaxMicros       = 300
)

type Conf struct {
	srcPath       string
	Logging       logging.LoggingConf `json:"logging"`
	SolverPath    string              `json:"solverPath"`
	GraphDataPath string              `json:"graphDataPath"`

	// ModeMarker is the first line of each solver input selecting
	// the constrained shortest path mode
	ModeMarker int `json:"modeMarker"`
	NumRepeat  int `json:"numRepeat"`
	SampleSize int `json:"sampleSize"`

	// SampleSeed makes the vertex sample reproducible. If zero,
	// a time-based seed is generated (and logged).
	SampleSeed uint64 `json:"sampleSeed"`
	Algorithms []int  `json:"algorithms"`

	TablePath    string `json:"tablePath"`
	SnapshotPath string `json:"snapshotPath"`
	StatsDBPath  string `json:"statsDBPath"`

	ChartsDir        string             `json:"chartsDir"`
	ChartFormat      string             `json:"chartFormat"`
	ConfidenceLevel  float64            `json:"confidenceLevel"`
	CIMethod         aggregate.CIMethod `json:"ciMethod"`
	BootstrapSamples int                `json:"bootstrapSamples"`
	BootstrapSeed    uint64             `json:"bootstrapSeed"`
	HeatmapMinMicros float64            `json:"heatmapMinMicros"`
	HeatmapMaxMicros float64            `json:"heatmapMaxMicros"`

	ListenAddress          string   `json:"listenAddress"`
	ListenPort             int      `json:"listenPort"`
	ServerReadTimeoutSecs  int      `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int      `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string `json:"corsAllowedOrigins"`
}

// SourcePath returns the path the configuration has been loaded from
func (conf *Conf) SourcePath() string {
	return conf.srcPath
}

// SelectedAlgorithms converts configured algorithm ids into typed values.
// Ids are expected to be validated already.
func (conf *Conf) SelectedAlgorithms() []algo.Algorithm {
	ans := make([]algo.Algorithm, 0, len(conf.Algorithms))
	for _, id := range conf.Algorithms {
		a, err := algo.FromID(id)
		if err != nil {
			continue
		}
		ans = append(ans, a)
	}
	return ans
}

func (conf *Conf) CIConf() aggregate.CIConf {
	return aggregate.CIConf{
		Level:            conf.ConfidenceLevel,
		Method:           conf.CIMethod,
		BootstrapSamples: conf.BootstrapSamples,
		Seed:             conf.BootstrapSeed,
	}
}

func (conf *Conf) RenderConf() chart.RenderConf {
	return chart.RenderConf{
		Dir:    conf.ChartsDir,
		Format: conf.ChartFormat,
		CI:     conf.CIConf(),
		Scale: chart.HeatmapScale{
			Min:    conf.HeatmapMinMicros,
			Max:    conf.HeatmapMaxMicros,
			Method: chart.Linear,
		},
	}
}

func LoadConfig(path string) *Conf {
	if path == "" {
		log.Fatal().Msg("Cannot load config - path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	var conf Conf
	conf.srcPath = path
	err = json.Unmarshal(rawData, &conf)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return &conf
}

func applyDefaults(conf *Conf) {
	if conf.ModeMarker == 0 {
		conf.ModeMarker = solver.DefaultModeMarker
		log.Warn().Msgf("modeMarker not specified, using default: %d", conf.ModeMarker)
	}
	if conf.NumRepeat == 0 {
		conf.NumRepeat = dfltNumRepeat
		log.Warn().Msgf("numRepeat not specified, using default: %d", dfltNumRepeat)
	}
	if conf.SampleSize == 0 {
		conf.SampleSize = dfltSampleSize
		log.Warn().Msgf("sampleSize not specified, using default: %d", dfltSampleSize)
	}
	if conf.SampleSeed == 0 {
		conf.SampleSeed = uint64(time.Now().UnixNano())
		log.Warn().
			Uint64("sampleSeed", conf.SampleSeed).
			Msg("sampleSeed not specified, using a time based seed")
	}
	if len(conf.Algorithms) == 0 {
		for _, a := range algo.All() {
			conf.Algorithms = append(conf.Algorithms, a.ID())
		}
		log.Warn().Ints("algorithms", conf.Algorithms).Msg("algorithms not specified, using all")
	}
	if conf.TablePath == "" {
		conf.TablePath = dfltTablePath
		log.Warn().Msgf("tablePath not specified, using default: %s", dfltTablePath)
	}
	if conf.ChartsDir == "" {
		conf.ChartsDir = dfltChartsDir
		log.Warn().Msgf("chartsDir not specified, using default: %s", dfltChartsDir)
	}
	if conf.ChartFormat == "" {
		conf.ChartFormat = chart.DefaultFormat
		log.Warn().Msgf("chartFormat not specified, using default: %s", chart.DefaultFormat)
	}
	if conf.ConfidenceLevel == 0 {
		conf.ConfidenceLevel = aggregate.DefaultConfidenceLevel
		log.Warn().Msgf(
			"confidenceLevel not specified, using default: %.2f", aggregate.DefaultConfidenceLevel)
	}
	if conf.CIMethod == "" {
		conf.CIMethod = aggregate.CIMethodNormal
		log.Warn().Msgf("ciMethod not specified, using default: %s", aggregate.CIMethodNormal)
	}
	if conf.CIMethod == aggregate.CIMethodBootstrap && conf.BootstrapSamples == 0 {
		conf.BootstrapSamples = aggregate.DefaultBootstrapSamples
		log.Warn().Msgf(
			"bootstrapSamples not specified, using default: %d", aggregate.DefaultBootstrapSamples)
	}
	if conf.HeatmapMaxMicros == 0 {
		conf.HeatmapMaxMicros = dfltHeatmapMaxMicros
		log.Warn().Msgf("heatmapMaxMicros not specified, using default: %d", dfltHeatmapMaxMicros)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
}

func validate(conf *Conf) error {
	if conf.NumRepeat < 1 {
		return fmt.Errorf("numRepeat must be at least 1, got %d", conf.NumRepeat)
	}
	if conf.SampleSize < 2 {
		return fmt.Errorf("sampleSize must be at least 2, got %d", conf.SampleSize)
	}
	for _, id := range conf.Algorithms {
		if _, err := algo.FromID(id); err != nil {
			return fmt.Errorf("invalid algorithms: %w", err)
		}
	}
	if conf.ConfidenceLevel <= 0 || conf.ConfidenceLevel >= 1 {
		return fmt.Errorf("confidenceLevel must be in (0, 1), got %v", conf.ConfidenceLevel)
	}
	if err := conf.CIMethod.Validate(); err != nil {
		return fmt.Errorf("invalid ciMethod: %w", err)
	}
	if conf.CIMethod == aggregate.CIMethodBootstrap && conf.BootstrapSamples < 2 {
		return fmt.Errorf("bootstrapSamples must be at least 2, got %d", conf.BootstrapSamples)
	}
	if conf.HeatmapMaxMicros <= conf.HeatmapMinMicros {
		return fmt.Errorf(
			"heatmapMaxMicros (%v) must be greater than heatmapMinMicros (%v)",
			conf.HeatmapMaxMicros, conf.HeatmapMinMicros)
	}
	switch conf.ChartFormat {
	case "pdf", "png", "svg", "eps", "jpg", "jpeg", "tif", "tiff":
	default:
		return fmt.Errorf("unsupported chartFormat %s", conf.ChartFormat)
	}
	return nil
}

// DefaultsAndValidate fills in missing values and returns the first
// invalid configuration value found (if any).
func DefaultsAndValidate(conf *Conf) error {
	applyDefaults(conf)
	return validate(conf)
}

func ValidateAndDefaults(conf *Conf) {
	if err := DefaultsAndValidate(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}

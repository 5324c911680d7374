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
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultConfidenceLevel  = 0.95
	DefaultBootstrapSamples = 1000
)

type CIMethod string

const (
	// CIMethodNormal uses the normal approximation: mean ± z * s / sqrt(n)
	CIMethodNormal CIMethod = "normal"

	// CIMethodBootstrap estimates the standard error of the mean
	// from resampled means: mean ± z * SE_boot
	CIMethodBootstrap CIMethod = "bootstrap"
)

func (m CIMethod) Validate() error {
	if m != CIMethodNormal && m != CIMethodBootstrap {
		return fmt.Errorf("unknown confidence interval method '%s'", m)
	}
	return nil
}

// CIConf configures the confidence interval calculation. The same
// configuration must be used for all the compared algorithms.
type CIConf struct {
	Level            float64  `json:"level"`
	Method           CIMethod `json:"method"`
	BootstrapSamples int      `json:"bootstrapSamples"`
	Seed             uint64   `json:"seed"`
}

func DefaultCIConf() CIConf {
	return CIConf{
		Level:            DefaultConfidenceLevel,
		Method:           CIMethodNormal,
		BootstrapSamples: DefaultBootstrapSamples,
	}
}

// Interval is a symmetric confidence interval around a mean.
type Interval struct {
	Mean float64 `json:"mean"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (iv Interval) HalfWidth() float64 {
	return iv.High - iv.Mean
}

func zScore(level float64) float64 {
	return distuv.UnitNormal.Quantile(0.5 + level/2)
}

func bootstrapStdErr(values []float64, conf CIConf) float64 {
	numSamples := conf.BootstrapSamples
	if numSamples <= 0 {
		numSamples = DefaultBootstrapSamples
	}
	rnd := rand.New(rand.NewPCG(conf.Seed, uint64(len(values))))
	means := make([]float64, numSamples)
	for i := range means {
		var sum float64
		for range values {
			sum += values[rnd.IntN(len(values))]
		}
		means[i] = sum / float64(len(values))
	}
	return stat.StdDev(means, nil)
}

// ConfidenceInterval calculates a mean of values along with its
// confidence interval. For less than two values, the interval
// has zero width.
func ConfidenceInterval(values []float64, conf CIConf) Interval {
	if len(values) == 0 {
		return Interval{Mean: math.NaN(), Low: math.NaN(), High: math.NaN()}
	}
	mean := stat.Mean(values, nil)
	if len(values) < 2 {
		return Interval{Mean: mean, Low: mean, High: mean}
	}
	var stdErr float64
	switch conf.Method {
	case CIMethodBootstrap:
		stdErr = bootstrapStdErr(values, conf)
	default:
		stdErr = stat.StdDev(values, nil) / math.Sqrt(float64(len(values)))
	}
	halfWidth := zScore(conf.Level) * stdErr
	return Interval{Mean: mean, Low: mean - halfWidth, High: mean + halfWidth}
}

package main

import (
	"math"
	"slices"
	"sync"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/probe"
	"github.com/pthm-cable/itemfield/telemetry"
)

// Targets are the grid statistics the calibrated item should reach.
type Targets struct {
	Mean float64
	Std  float64
}

// FitnessEvaluator probes candidate configurations and scores them.
type FitnessEvaluator struct {
	params     *ParamVector
	targets    Targets
	opts       probe.Options
	baseConfig *config.Config
	pool       *probe.Pool

	mu        sync.Mutex
	lastStats telemetry.FieldStats
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, targets Targets, baseCfg *config.Config, pool *probe.Pool) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		targets:    targets,
		opts:       probe.Options{Radius: baseCfg.Probe.Radius, Step: baseCfg.Probe.Step},
		baseConfig: baseCfg,
		pool:       pool,
	}
}

// LastStats returns the grid summary from the most recent evaluation.
func (fe *FitnessEvaluator) LastStats() telemetry.FieldStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastStats
}

// Evaluate returns the squared distance between the probed mean and
// standard deviation and the targets (lower = better). Configurations that
// fail to build score +Inf.
func (fe *FitnessEvaluator) Evaluate(raw []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, raw)

	reg, err := cfg.BuildRegistry()
	if err != nil {
		return math.Inf(1)
	}
	samples, err := probe.New(reg, nil, fe.pool).Grid(fe.opts)
	if err != nil {
		return math.Inf(1)
	}

	item := cfg.Items[fe.params.Item].Name
	values := make([]float64, 0, len(samples)/reg.Len())
	for _, s := range samples {
		if s.Type == item {
			values = append(values, s.Intensity)
		}
	}
	stats := telemetry.ComputeFieldStats(telemetry.KindIntensity, item, values)

	fe.mu.Lock()
	fe.lastStats = stats
	fe.mu.Unlock()

	dm := stats.Mean - fe.targets.Mean
	ds := stats.Std - fe.targets.Std
	return dm*dm + ds*ds
}

// copyConfig returns a copy of the base config whose items can be modified.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Items = slices.Clone(fe.baseConfig.Items)
	return &cfg
}

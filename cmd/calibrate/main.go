// Package main calibrates an item type's intensity arguments with CMA-ES so
// that its probed intensity field reaches a target mean and spread.
//
// Usage: go run ./cmd/calibrate -item banana -target-mean -4 -output out/
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/probe"
)

// logRow is one evaluation in calibrate_log.csv.
type logRow struct {
	Eval    int     `csv:"eval"`
	Fitness float64 `csv:"fitness"`
	Mean    float64 `csv:"mean"`
	Std     float64 `csv:"std"`
	Params  string  `csv:"params"`
}

// calibration tracks the search: evaluation count, the best clamped
// parameters seen and the per-evaluation log.
type calibration struct {
	params    *ParamVector
	evaluator *FitnessEvaluator
	maxEvals  int
	log       io.Writer
	header    bool

	evals       int
	bestFitness float64
	best        []float64
	started     time.Time
}

func newCalibration(params *ParamVector, evaluator *FitnessEvaluator, maxEvals int, log io.Writer) *calibration {
	return &calibration{
		params:      params,
		evaluator:   evaluator,
		maxEvals:    maxEvals,
		log:         log,
		bestFitness: math.Inf(1),
		started:     time.Now(),
	}
}

// objective scores a normalized candidate and records it.
func (c *calibration) objective(x []float64) float64 {
	raw := c.params.Clamp(c.params.Denormalize(x))
	fitness := c.evaluator.Evaluate(raw)
	c.evals++
	if fitness < c.bestFitness || c.best == nil {
		c.bestFitness = fitness
		c.best = raw
	}

	stats := c.evaluator.LastStats()
	c.record(logRow{
		Eval:    c.evals,
		Fitness: fitness,
		Mean:    stats.Mean,
		Std:     stats.Std,
		Params:  formatParams(c.params.Specs, raw),
	})

	elapsed := time.Since(c.started)
	eta := time.Duration(c.maxEvals-c.evals) * (elapsed / time.Duration(c.evals))
	slog.Info("eval",
		"n", c.evals,
		"of", c.maxEvals,
		"mean", stats.Mean,
		"std", stats.Std,
		"fitness", fitness,
		"best", c.bestFitness,
		"elapsed", elapsed.Round(time.Second).String(),
		"eta", eta.Round(time.Second).String(),
	)
	return fitness
}

func (c *calibration) record(row logRow) {
	rows := []logRow{row}
	var err error
	if c.header {
		err = gocsv.MarshalWithoutHeaders(rows, c.log)
	} else {
		err = gocsv.Marshal(rows, c.log)
		c.header = true
	}
	if err != nil {
		slog.Warn("failed to log evaluation", "eval", row.Eval, "error", err)
	}
}

func formatParams(specs []ParamSpec, values []float64) string {
	parts := make([]string, len(specs))
	for i, spec := range specs {
		parts[i] = fmt.Sprintf("%s=%.6f", spec.Name, values[i])
	}
	return strings.Join(parts, ";")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}

func main() {
	configPath := flag.String("config", "", "World config YAML to start from (empty = use defaults)")
	item := flag.String("item", "", "Item type whose intensity is calibrated")
	targetMean := flag.Float64("target-mean", -2, "Target mean intensity over the probe grid")
	targetStd := flag.Float64("target-std", 0.5, "Target intensity standard deviation")
	maxEvals := flag.Int("max-evals", 200, "Evaluation budget")
	population := flag.Int("population", 0, "CMA-ES population size (0 = 4 + 3*dim/2)")
	workers := flag.Int("workers", 0, "Probe workers (0 = use config)")
	outputDir := flag.String("output", "", "Directory for calibrate_log.csv and best_config.yaml")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if *outputDir == "" || *item == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fatal("creating output directory", err)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		fatal("loading config", err)
	}
	params, err := NewParamVector(baseCfg, *item)
	if err != nil {
		fatal("selecting parameters", err)
	}

	nWorkers := baseCfg.Derived.ProbeWorkers
	if *workers > 0 {
		nWorkers = *workers
	}
	pool := probe.NewPool(nWorkers)
	defer pool.Close()

	logFile, err := os.Create(filepath.Join(*outputDir, "calibrate_log.csv"))
	if err != nil {
		fatal("creating log file", err)
	}
	defer logFile.Close()

	evaluator := NewFitnessEvaluator(params, Targets{Mean: *targetMean, Std: *targetStd}, baseCfg, pool)
	cal := newCalibration(params, evaluator, *maxEvals, logFile)

	popSize := *population
	if popSize <= 0 {
		popSize = 4 + 3*params.Dim()/2
	}

	slog.Info("calibrating",
		"item", *item,
		"fn", params.Fn,
		"dim", params.Dim(),
		"population", popSize,
		"max_evals", *maxEvals,
	)

	// Evaluations run one at a time; each probe already uses the pool.
	_, err = optimize.Minimize(
		optimize.Problem{Func: cal.objective},
		params.Normalize(params.DefaultVector()),
		&optimize.Settings{FuncEvaluations: *maxEvals},
		&optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize},
	)
	if err != nil {
		slog.Warn("optimization stopped", "error", err)
	}
	if cal.best == nil {
		fatal("calibration", fmt.Errorf("no evaluation completed"))
	}

	fmt.Printf("Calibrated %s after %d evaluations in %s (fitness %.6f)\n",
		*item, cal.evals, time.Since(cal.started).Round(time.Second), cal.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s = %.6f (was %.6f)\n", spec.Name, cal.best[i], spec.Default)
	}

	// The best candidate goes into a fresh copy of the starting config.
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		fatal("reloading config", err)
	}
	params.ApplyToConfig(bestCfg, cal.best)
	outPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(outPath); err != nil {
		fatal("writing best config", err)
	}
	fmt.Printf("Best config saved to %s\n", outPath)
}

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/items"
	"github.com/pthm-cable/itemfield/probe"
	"github.com/pthm-cable/itemfield/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to world config YAML (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV files and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log per-type summaries via slog")
	seed := flag.Int64("seed", -1, "World seed override (-1 = use config)")
	radius := flag.Int64("radius", -1, "Probe radius override (-1 = use config)")
	step := flag.Int64("step", 0, "Probe grid step override (0 = use config)")
	ticks := flag.Int64("ticks", -1, "Timeline length override (-1 = use config)")
	workers := flag.Int("workers", 0, "Worker count override (0 = use config)")
	repeat := flag.Int("repeat", 1, "Repeat the probe N times for timing")
	cached := flag.Bool("cached", false, "Evaluate through the stationary cache")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed >= 0 {
		cfg.World.Seed = uint32(*seed)
	}
	if *radius >= 0 {
		cfg.Probe.Radius = *radius
	}
	if *step > 0 {
		cfg.Probe.Step = *step
	}
	if *ticks >= 0 {
		cfg.Probe.Ticks = uint64(*ticks)
	}
	nWorkers := cfg.Derived.ProbeWorkers
	if *workers > 0 {
		nWorkers = *workers
	}
	if *repeat < 1 {
		*repeat = 1
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	slog.Info("starting probe",
		"seed", cfg.World.Seed,
		"items", len(cfg.Items),
		"radius", cfg.Probe.Radius,
		"step", cfg.Probe.Step,
		"ticks", cfg.Probe.Ticks,
		"workers", nWorkers,
		"repeat", *repeat,
		"cached", *cached,
	)

	r := &runner{
		cfg:    cfg,
		out:    out,
		perf:   telemetry.NewPerfCollector(*repeat),
		pool:   probe.NewPool(nWorkers),
		cached: *cached,
	}
	defer r.pool.Close()

	for i := 0; i < *repeat; i++ {
		// Only the last run writes output.
		if err := r.run(i == *repeat-1, *logStats); err != nil {
			slog.Error("probe failed", "error", err)
			os.Exit(1)
		}
	}

	stats := r.perf.Stats(r.evals)
	stats.LogStats()
	if err := out.WritePerf(stats, nWorkers); err != nil {
		slog.Error("failed to write perf", "error", err)
		os.Exit(1)
	}

	slog.Info("probe complete", "output_dir", out.Dir())
}

// runner holds state shared by repeated probe runs.
type runner struct {
	cfg    *config.Config
	out    *telemetry.OutputManager
	perf   *telemetry.PerfCollector
	pool   *probe.Pool
	cached bool
	evals  int
}

func (r *runner) run(final, logStats bool) error {
	r.perf.StartRun()
	defer r.perf.EndRun()

	r.perf.StartPhase(telemetry.PhaseBuild)
	reg, err := r.cfg.BuildRegistry()
	if err != nil {
		return err
	}

	var eval probe.Evaluator
	if r.cached {
		r.perf.StartPhase(telemetry.PhaseCache)
		cache, err := items.NewCache(reg, r.cfg.World.PatchSize)
		if err != nil {
			return err
		}
		eval = cache
	}
	p := probe.New(reg, eval, r.pool)
	opts := probe.Options{Radius: r.cfg.Probe.Radius, Step: r.cfg.Probe.Step}

	r.perf.StartPhase(telemetry.PhaseGrid)
	grid, err := p.Grid(opts)
	if err != nil {
		return err
	}

	r.perf.StartPhase(telemetry.PhasePairs)
	pairs, err := p.Pairs(opts)
	if err != nil {
		return err
	}

	r.perf.StartPhase(telemetry.PhaseTimeline)
	timeline, err := p.Timeline(r.cfg.Probe.Ticks)
	if err != nil {
		return err
	}
	r.evals = len(grid) + len(pairs) + len(timeline)

	r.perf.StartPhase(telemetry.PhaseSummary)
	names := reg.Names()
	var summary []telemetry.FieldStats
	summary = append(summary, telemetry.SummarizeIntensity(grid, names)...)
	summary = append(summary, telemetry.SummarizePairs(pairs, names)...)
	summary = append(summary, telemetry.SummarizeTimeline(timeline, names)...)
	bookmarks := telemetry.Detect(timeline, 10)

	if !final {
		return nil
	}

	if logStats {
		for _, s := range summary {
			s.LogStats()
		}
		for _, b := range bookmarks {
			b.LogBookmark()
		}
	}

	if err := r.out.WriteIntensity(grid); err != nil {
		return err
	}
	if err := r.out.WritePairs(pairs); err != nil {
		return err
	}
	if err := r.out.WriteTimeline(timeline); err != nil {
		return err
	}
	if err := r.out.WriteSummary(summary); err != nil {
		return err
	}
	return r.out.WriteBookmarks(bookmarks)
}

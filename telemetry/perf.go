package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one probe run.
const (
	PhaseBuild    = "build"
	PhaseCache    = "cache"
	PhaseGrid     = "grid"
	PhasePairs    = "pairs"
	PhaseTimeline = "timeline"
	PhaseSummary  = "summary"
)

// phases lists the phases in run order.
var phases = []string{PhaseBuild, PhaseCache, PhaseGrid, PhasePairs, PhaseTimeline, PhaseSummary}

// PerfSample holds timing data for a single run.
type PerfSample struct {
	RunDuration time.Duration
	Phases      map[string]time.Duration
}

// PerfCollector tracks probe timings over a rolling window of runs.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	runStart      time.Time
	phaseStart    time.Time
	lastPhase     string
}

// NewPerfCollector creates a new performance collector averaging over
// windowSize runs.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 1
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartRun begins timing a new probe run.
func (p *PerfCollector) StartRun() {
	p.runStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndRun finishes timing the current run and records the sample.
func (p *PerfCollector) EndRun() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		RunDuration: now.Sub(p.runStart),
		Phases:      p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	Runs           int
	AvgRunDuration time.Duration
	MinRunDuration time.Duration
	MaxRunDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total run time
	PhasePct map[string]float64

	// Evaluations per second over the grid, pairs and timeline phases
	EvalsPerSecond float64
}

// Stats computes aggregated statistics over the current window. evals is the
// number of function evaluations one run performs.
func (p *PerfCollector) Stats(evals int) PerfStats {
	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg: make(map[string]time.Duration),
			PhasePct: make(map[string]float64),
		}
	}

	var total time.Duration
	var minRun, maxRun time.Duration
	phaseSum := make(map[string]time.Duration)

	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.RunDuration

		if i == 0 || s.RunDuration < minRun {
			minRun = s.RunDuration
		}
		if s.RunDuration > maxRun {
			maxRun = s.RunDuration
		}

		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	var evalsPerSec float64
	evalTime := phaseAvg[PhaseGrid] + phaseAvg[PhasePairs] + phaseAvg[PhaseTimeline]
	if evalTime > 0 {
		evalsPerSec = float64(evals) / evalTime.Seconds()
	}

	return PerfStats{
		Runs:           p.sampleCount,
		AvgRunDuration: avg,
		MinRunDuration: minRun,
		MaxRunDuration: maxRun,
		PhaseAvg:       phaseAvg,
		PhasePct:       phasePct,
		EvalsPerSecond: evalsPerSec,
	}
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"runs", s.Runs,
		"avg_run_us", s.AvgRunDuration.Microseconds(),
		"min_run_us", s.MinRunDuration.Microseconds(),
		"max_run_us", s.MaxRunDuration.Microseconds(),
		"evals_per_sec", int(s.EvalsPerSecond),
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}

	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("runs", s.Runs),
		slog.Int64("avg_run_us", s.AvgRunDuration.Microseconds()),
		slog.Int64("min_run_us", s.MinRunDuration.Microseconds()),
		slog.Int64("max_run_us", s.MaxRunDuration.Microseconds()),
		slog.Float64("evals_per_sec", s.EvalsPerSecond),
	}

	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Runs        int     `csv:"runs"`
	Workers     int     `csv:"workers"`
	AvgRunUS    int64   `csv:"avg_run_us"`
	MinRunUS    int64   `csv:"min_run_us"`
	MaxRunUS    int64   `csv:"max_run_us"`
	EvalsPerSec float64 `csv:"evals_per_sec"`
	BuildPct    float64 `csv:"build_pct"`
	CachePct    float64 `csv:"cache_pct"`
	GridPct     float64 `csv:"grid_pct"`
	PairsPct    float64 `csv:"pairs_pct"`
	TimelinePct float64 `csv:"timeline_pct"`
	SummaryPct  float64 `csv:"summary_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(workers int) PerfStatsCSV {
	return PerfStatsCSV{
		Runs:        s.Runs,
		Workers:     workers,
		AvgRunUS:    s.AvgRunDuration.Microseconds(),
		MinRunUS:    s.MinRunDuration.Microseconds(),
		MaxRunUS:    s.MaxRunDuration.Microseconds(),
		EvalsPerSec: s.EvalsPerSecond,
		BuildPct:    s.PhasePct[PhaseBuild],
		CachePct:    s.PhasePct[PhaseCache],
		GridPct:     s.PhasePct[PhaseGrid],
		PairsPct:    s.PhasePct[PhasePairs],
		TimelinePct: s.PhasePct[PhaseTimeline],
		SummaryPct:  s.PhasePct[PhaseSummary],
	}
}

package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Value kinds summarized by the probe.
const (
	KindIntensity     = "intensity"
	KindPairEnergy    = "pair_energy"
	KindRegeneration  = "regeneration"
	KindPrecipitation = "precipitation"
)

// FieldStats summarizes one kind of energy value for one source (an item
// type, a type pair, or the climate).
type FieldStats struct {
	Kind   string `csv:"kind"`
	Source string `csv:"source"`
	Count  int    `csv:"count"`

	Mean float64 `csv:"mean"`
	Std  float64 `csv:"std"` // Population standard deviation
	Min  float64 `csv:"min"`
	Max  float64 `csv:"max"`
	P10  float64 `csv:"p10"`
	P50  float64 `csv:"p50"`
	P90  float64 `csv:"p90"`

	// Share of values below zero; negative energy favours placement.
	NegativeFrac float64 `csv:"negative_frac"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeFieldStats calculates moments, range and percentiles of values.
func ComputeFieldStats(kind, source string, values []float64) FieldStats {
	s := FieldStats{Kind: kind, Source: source, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	s.Mean, s.Std = stat.PopMeanStdDev(values, nil)
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)

	neg, _ := slices.BinarySearch(sorted, 0)
	s.NegativeFrac = float64(neg) / float64(len(sorted))
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("kind", s.Kind),
		slog.String("source", s.Source),
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("max", s.Max),
		slog.Float64("p10", s.P10),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("negative_frac", s.NegativeFrac),
	)
}

// LogStats logs the summary using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats",
		"kind", s.Kind,
		"source", s.Source,
		"count", s.Count,
		"mean", s.Mean,
		"std", s.Std,
		"min", s.Min,
		"max", s.Max,
		"p50", s.P50,
		"negative_frac", s.NegativeFrac,
	)
}

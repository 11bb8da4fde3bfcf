package telemetry

import "github.com/pthm-cable/itemfield/probe"

// SummarizeIntensity returns one summary per type, in the order of names.
func SummarizeIntensity(samples []probe.IntensitySample, names []string) []FieldStats {
	groups := make(map[string][]float64, len(names))
	for _, s := range samples {
		groups[s.Type] = append(groups[s.Type], s.Intensity)
	}
	out := make([]FieldStats, 0, len(names))
	for _, name := range names {
		out = append(out, ComputeFieldStats(KindIntensity, name, groups[name]))
	}
	return out
}

// SummarizePairs returns one summary per ordered type pair, sources named
// "a/b", with A in the outer loop.
func SummarizePairs(samples []probe.PairSample, names []string) []FieldStats {
	groups := make(map[string][]float64, len(names)*len(names))
	for _, s := range samples {
		key := s.A + "/" + s.B
		groups[key] = append(groups[key], s.Energy)
	}
	out := make([]FieldStats, 0, len(names)*len(names))
	for _, a := range names {
		for _, b := range names {
			key := a + "/" + b
			out = append(out, ComputeFieldStats(KindPairEnergy, key, groups[key]))
		}
	}
	return out
}

// SummarizeTimeline returns the precipitation summary followed by one
// regeneration summary per type.
func SummarizeTimeline(samples []probe.TimelineSample, names []string) []FieldStats {
	groups := make(map[string][]float64, len(names)+1)
	for _, s := range samples {
		groups[s.Source] = append(groups[s.Source], s.Value)
	}
	out := make([]FieldStats, 0, len(names)+1)
	out = append(out, ComputeFieldStats(KindPrecipitation, probe.SourcePrecipitation, groups[probe.SourcePrecipitation]))
	for _, name := range names {
		out = append(out, ComputeFieldStats(KindRegeneration, name, groups[name]))
	}
	return out
}

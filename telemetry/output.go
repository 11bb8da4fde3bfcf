package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/probe"
)

// csvFile is an output file that writes its header once.
type csvFile struct {
	name          string
	f             *os.File
	headerWritten bool
}

// write appends records, which must be a slice of csv-tagged structs.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}
		c.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, c.f); err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// OutputManager handles probe output as CSV files in one directory.
type OutputManager struct {
	dir string

	intensity   *csvFile
	interaction *csvFile
	timeline    *csvFile
	summary     *csvFile
	perf        *csvFile
	bookmarks   *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		name string
		dst  **csvFile
	}{
		{"intensity.csv", &om.intensity},
		{"interaction.csv", &om.interaction},
		{"timeline.csv", &om.timeline},
		{"summary.csv", &om.summary},
		{"perf.csv", &om.perf},
		{"bookmarks.csv", &om.bookmarks},
	}
	for _, spec := range files {
		f, err := os.Create(filepath.Join(dir, spec.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", spec.name, err)
		}
		*spec.dst = &csvFile{name: spec.name, f: f}
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteIntensity appends grid samples to intensity.csv.
func (om *OutputManager) WriteIntensity(samples []probe.IntensitySample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}
	return om.intensity.write(samples)
}

// WritePairs appends pair samples to interaction.csv.
func (om *OutputManager) WritePairs(samples []probe.PairSample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}
	return om.interaction.write(samples)
}

// WriteTimeline appends timeline samples to timeline.csv.
func (om *OutputManager) WriteTimeline(samples []probe.TimelineSample) error {
	if om == nil || len(samples) == 0 {
		return nil
	}
	return om.timeline.write(samples)
}

// WriteSummary appends summaries to summary.csv.
func (om *OutputManager) WriteSummary(stats []FieldStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	return om.summary.write(stats)
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, workers int) error {
	if om == nil {
		return nil
	}
	return om.perf.write([]PerfStatsCSV{stats.ToCSV(workers)})
}

// WriteBookmarks appends bookmarks to bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bookmarks []Bookmark) error {
	if om == nil || len(bookmarks) == 0 {
		return nil
	}
	return om.bookmarks.write(bookmarks)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.intensity, om.interaction, om.timeline, om.summary, om.perf, om.bookmarks} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

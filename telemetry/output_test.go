package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/probe"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}
	// Nil manager methods are no-ops.
	if err := om.WriteIntensity([]probe.IntensitySample{{Type: "x"}}); err != nil {
		t.Errorf("WriteIntensity on nil: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() on nil = %q", om.Dir())
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	batch := []probe.IntensitySample{{Type: "banana", X: -1, Y: 2, Intensity: -2}}
	if err := om.WriteIntensity(batch); err != nil {
		t.Fatalf("WriteIntensity: %v", err)
	}
	if err := om.WriteIntensity(batch); err != nil {
		t.Fatalf("WriteIntensity: %v", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "intensity.csv"))
	if err != nil {
		t.Fatalf("reading intensity.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("intensity.csv has %d lines, want 3:\n%s", len(lines), data)
	}
	if lines[0] != "type,x,y,intensity" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "banana,-1,2,-2" || lines[2] != lines[1] {
		t.Errorf("rows = %q, %q", lines[1], lines[2])
	}

	for _, name := range []string{"interaction.csv", "timeline.csv", "summary.csv", "perf.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

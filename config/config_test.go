package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/itemfield/energy"
	"github.com/pthm-cable/itemfield/items"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Seed != 1234567890 {
		t.Errorf("seed = %d, want 1234567890", cfg.World.Seed)
	}
	if len(cfg.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(cfg.Items))
	}
	if i := cfg.Derived.ItemIndex["lake"]; i != 2 {
		t.Errorf("ItemIndex[lake] = %d, want 2", i)
	}
	if cfg.Derived.ProbeWorkers < 1 {
		t.Errorf("ProbeWorkers = %d, want >= 1", cfg.Derived.ProbeWorkers)
	}
	if cfg.Derived.GridSide != 65 {
		t.Errorf("GridSide = %d, want 65", cfg.Derived.GridSide)
	}
}

func TestDefaultsBuildRegistry(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}

	lake, _ := reg.Index("lake")
	origin := energy.Pos(0, 0)
	if got := reg.Intensity(lake, origin); got != -9 {
		t.Errorf("lake intensity = %v, want -9", got)
	}
	if got := reg.Interaction(lake, lake, origin, energy.Pos(12, 0)); got != -200 {
		t.Errorf("lake-lake at (12,0) = %v, want -200", got)
	}
	if got := reg.Regeneration(lake, origin, 99); got != 5 {
		t.Errorf("lake regeneration = %v, want 5", got)
	}

	banana, _ := reg.Index("banana")
	if got := reg.Interaction(banana, lake, origin, energy.Pos(1, 0)); got != 0 {
		t.Errorf("unlisted interaction = %v, want 0", got)
	}
	if got := reg.Interaction(banana, banana, origin, energy.Pos(10, 0)); got != -0.2 {
		t.Errorf("banana-banana at distance 10 = %v, want -0.2", got)
	}
	if got := reg.Climate().At(30); got != 80 {
		t.Errorf("precipitation at tick 30 = %v, want 80", got)
	}
}

func TestOmittedInteractionsAreZero(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	reg, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	lake, _ := reg.Index("lake")
	for _, name := range []string{"banana", "tree"} {
		i, _ := reg.Index(name)
		if got := reg.Type(i).Interaction(lake).Tag(); got != energy.InteractionZero {
			t.Errorf("%s-lake tag = %v, want ZERO", name, got)
		}
		if got := reg.Type(lake).Interaction(i).Tag(); got != energy.InteractionZero {
			t.Errorf("lake-%s tag = %v, want ZERO", name, got)
		}
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
world:
  seed: 9
probe:
  radius: 4
  step: 2
  ticks: 10
  workers: 3
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Seed != 9 {
		t.Errorf("seed = %d, want 9", cfg.World.Seed)
	}
	if cfg.World.PatchSize != 32 {
		t.Errorf("patch_size = %d, want default 32", cfg.World.PatchSize)
	}
	if len(cfg.Items) != 3 {
		t.Errorf("items = %d, want defaults kept", len(cfg.Items))
	}
	if cfg.Derived.ProbeWorkers != 3 || cfg.Derived.GridSide != 5 {
		t.Errorf("derived = %+v", cfg.Derived)
	}
}

func TestLoadSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero update frequency", "climate:\n  update_frequency: 0\n"},
		{"zero patch size", "world:\n  patch_size: 0\n"},
		{"negative occlusion", `
items:
  - name: rock
    intensity: {fn: ZERO}
    visual_occlusion: -1
`},
		{"empty items", "items: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, energy.ErrConfig) {
				t.Errorf("Load err = %v, want schema ConfigError", err)
			}
		})
	}
}

func TestBuildRegistryErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		is   error
	}{
		{"bad arity", `
items:
  - name: rock
    scent: [0, 0, 0]
    color: [0, 0, 0]
    required_item_counts: [0]
    required_item_costs: [0]
    intensity: {fn: CONSTANT, args: [1, 2]}
`, energy.ErrArity},
		{"unknown tag", `
items:
  - name: rock
    scent: [0, 0, 0]
    color: [0, 0, 0]
    required_item_counts: [0]
    required_item_costs: [0]
    intensity: {fn: SPIRAL}
`, energy.ErrUnknownTag},
		{"crenel", `
items:
  - name: rock
    scent: [0, 0, 0]
    color: [0, 0, 0]
    required_item_counts: [0]
    required_item_costs: [0]
    intensity: {fn: ZERO}
    regeneration: {fn: CRENEL, args: [1, 2, 3]}
`, energy.ErrNotImplemented},
		{"unknown neighbour", `
items:
  - name: rock
    scent: [0, 0, 0]
    color: [0, 0, 0]
    required_item_counts: [0]
    required_item_costs: [0]
    intensity: {fn: ZERO}
    interactions:
      pebble: {fn: MOORE}
`, energy.ErrConfig},
		{"short counts", `
items:
  - name: rock
    scent: [0, 0, 0]
    color: [0, 0, 0]
    required_item_counts: []
    required_item_costs: [0]
    intensity: {fn: ZERO}
`, energy.ErrConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			_, err = cfg.BuildRegistry()
			if !errors.Is(err, energy.ErrConfig) {
				t.Fatalf("err = %v, want ErrConfig", err)
			}
			if !errors.Is(err, tt.is) {
				t.Errorf("err = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load(snapshot): %v", err)
	}

	r1, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	r2, err := again.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry(snapshot): %v", err)
	}
	assertSameRegistry(t, r1, r2)
}

func assertSameRegistry(t *testing.T, r1, r2 *items.Registry) {
	t.Helper()
	if r1.Len() != r2.Len() || r1.Seed() != r2.Seed() {
		t.Fatalf("registries differ: len %d/%d seed %d/%d", r1.Len(), r2.Len(), r1.Seed(), r2.Seed())
	}
	for a := 0; a < r1.Len(); a++ {
		for x := int64(-16); x <= 16; x += 4 {
			p := energy.Pos(x, -x)
			if r1.Intensity(a, p) != r2.Intensity(a, p) {
				t.Errorf("intensity %d differs at %v", a, p)
			}
			for b := 0; b < r1.Len(); b++ {
				if r1.Interaction(a, b, p, energy.Pos(0, 0)) != r2.Interaction(a, b, p, energy.Pos(0, 0)) {
					t.Errorf("interaction %d,%d differs at %v", a, b, p)
				}
			}
		}
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Errorf("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}

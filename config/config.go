// Package config provides configuration loading and access for item worlds.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds a world's item types, climate and probe settings.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Climate ClimateConfig `yaml:"climate"`
	Items   []ItemConfig  `yaml:"items"`
	Probe   ProbeConfig   `yaml:"probe"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world-wide parameters shared by every item type.
type WorldConfig struct {
	Seed      uint32 `yaml:"seed"`       // Seeds the pseudorandom field
	PatchSize int    `yaml:"patch_size"` // Patch side, sizes the interaction cache
	ScentDim  int    `yaml:"scent_dim"`  // Scent channels per item
	ColorDim  int    `yaml:"color_dim"`  // Color channels per item
}

// FunctionConfig is a tagged function with positional arguments.
type FunctionConfig struct {
	Fn   string    `yaml:"fn"`
	Args []float64 `yaml:"args,omitempty"`
}

// ClimateConfig holds the world's precipitation.
type ClimateConfig struct {
	Precipitation   FunctionConfig `yaml:"precipitation"`
	UpdateFrequency uint64         `yaml:"update_frequency"` // Ticks per precipitation step
}

// ItemConfig declares one item type. Interactions is a sparse map keyed by
// the other type's name: a type left out of the map gets an explicit ZERO
// interaction, so the built descriptor always has one entry per type. An
// unknown name is rejected. Required item counts and costs are positional and
// must have one entry per type.
type ItemConfig struct {
	Name               string                    `yaml:"name"`
	Scent              []float64                 `yaml:"scent"`
	Color              []float64                 `yaml:"color"`
	RequiredItemCounts []uint32                  `yaml:"required_item_counts"` // Per type, in items order
	RequiredItemCosts  []uint32                  `yaml:"required_item_costs"`  // Per type, in items order
	BlocksMovement     bool                      `yaml:"blocks_movement"`
	VisualOcclusion    float64                   `yaml:"visual_occlusion"`
	Intensity          FunctionConfig            `yaml:"intensity"`
	Interactions       map[string]FunctionConfig `yaml:"interactions,omitempty"`
	Regeneration       *FunctionConfig           `yaml:"regeneration,omitempty"` // Omitted means ZERO
	Lifetime           uint64                    `yaml:"lifetime"`               // Ticks, 0 = unbounded
}

// ProbeConfig holds field probe parameters.
type ProbeConfig struct {
	Radius  int64  `yaml:"radius"`  // Grid covers [-radius, radius] on both axes
	Step    int64  `yaml:"step"`    // Grid spacing
	Ticks   uint64 `yaml:"ticks"`   // Timeline length
	Workers int    `yaml:"workers"` // 0 = GOMAXPROCS
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ItemIndex    map[string]int // name -> type index
	ProbeWorkers int            // Probe.Workers, or GOMAXPROCS when unset
	GridSide     int            // Grid points per axis
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used. The merged document is
// checked against the embedded schema.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Parse overlays a YAML document onto cfg. Only fields present in data are
// overwritten; a present items list replaces the defaults' list.
func Parse(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ItemIndex = make(map[string]int, len(c.Items))
	for i, item := range c.Items {
		c.Derived.ItemIndex[item.Name] = i
	}

	c.Derived.ProbeWorkers = c.Probe.Workers
	if c.Derived.ProbeWorkers <= 0 {
		c.Derived.ProbeWorkers = runtime.GOMAXPROCS(0)
	}

	step := c.Probe.Step
	if step <= 0 {
		step = 1
	}
	c.Derived.GridSide = int(2*c.Probe.Radius/step) + 1
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

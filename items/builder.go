package items

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/itemfield/energy"
)

// Climate binds the world's precipitation function to the number of ticks
// between advances of its step.
type Climate struct {
	Precipitation   energy.Precipitation
	UpdateFrequency uint64
}

// DefaultClimate is a dry world advancing every tick.
func DefaultClimate() Climate {
	return Climate{Precipitation: energy.ZeroPrecipitation{}, UpdateFrequency: 1}
}

// At returns the precipitation at tick using the bound update frequency.
func (c Climate) At(tick uint64) float64 {
	return c.Precipitation.Evaluate(tick, c.UpdateFrequency)
}

// Validate checks the function and that the frequency is at least one.
func (c Climate) Validate() error {
	if c.Precipitation == nil {
		return energy.Configf("climate", "precipitation function is nil")
	}
	if c.UpdateFrequency == 0 {
		return energy.Configf("climate", "update frequency must be at least 1")
	}
	return c.Precipitation.Validate()
}

// Builder collects item type declarations. It is single-writer; Seal turns
// it into an immutable Registry.
type Builder struct {
	seed     uint32
	scentDim int
	colorDim int
	climate  Climate
	types    []ItemType
	index    map[string]int
	sealed   bool
}

// NewBuilder starts a registry for a world with the given seed and scent and
// color channel counts.
func NewBuilder(seed uint32, scentDim, colorDim int) *Builder {
	return &Builder{
		seed:     seed,
		scentDim: scentDim,
		colorDim: colorDim,
		climate:  DefaultClimate(),
		index:    make(map[string]int),
	}
}

// SetClimate binds the world's precipitation function.
func (b *Builder) SetClimate(fn energy.Precipitation, updateFrequency uint64) error {
	if b.sealed {
		return energy.Configf("climate", "registry is already sealed")
	}
	c := Climate{Precipitation: fn, UpdateFrequency: updateFrequency}
	if err := c.Validate(); err != nil {
		return err
	}
	c.Precipitation = energy.ClonePrecipitation(fn)
	b.climate = c
	return nil
}

// Declare validates a descriptor and appends it, returning its type index.
// Checks that depend on the final registry size run at Seal.
func (b *Builder) Declare(s Spec) (int, error) {
	if b.sealed {
		return -1, energy.Configf("item "+s.Name, "registry is already sealed")
	}
	if err := b.validateSpec(s); err != nil {
		return -1, err
	}
	i := len(b.types)
	b.types = append(b.types, newItemType(i, s))
	b.index[s.Name] = i
	return i, nil
}

func (b *Builder) validateSpec(s Spec) error {
	if b.scentDim < 0 || b.colorDim < 0 {
		return energy.Configf("world", "negative channel count (scent %d, color %d)", b.scentDim, b.colorDim)
	}
	if s.Name == "" {
		return energy.Configf("item", "name is empty")
	}
	scope := "item " + s.Name
	if _, dup := b.index[s.Name]; dup {
		return energy.Configf(scope, "duplicate name")
	}
	if len(s.Scent) != b.scentDim {
		return energy.Configf(scope+" scent", "length %d, want %d", len(s.Scent), b.scentDim)
	}
	if len(s.Color) != b.colorDim {
		return energy.Configf(scope+" color", "length %d, want %d", len(s.Color), b.colorDim)
	}
	if math.IsNaN(s.VisualOcclusion) || math.IsInf(s.VisualOcclusion, 0) || s.VisualOcclusion < 0 {
		return energy.Configf(scope+" visual_occlusion", "%v is not a finite non-negative value", s.VisualOcclusion)
	}
	if s.Intensity == nil {
		return energy.Configf(scope+" intensity", "function is nil")
	}
	if err := s.Intensity.Validate(); err != nil {
		return fmt.Errorf("%s intensity: %w", scope, err)
	}
	if s.Regeneration != nil {
		if err := s.Regeneration.Validate(); err != nil {
			return fmt.Errorf("%s regeneration: %w", scope, err)
		}
	}
	for j, fn := range s.Interactions {
		if fn == nil {
			return energy.Configf(fmt.Sprintf("%s interactions[%d]", scope, j), "function is nil")
		}
		if err := fn.Validate(); err != nil {
			return fmt.Errorf("%s interactions[%d]: %w", scope, j, err)
		}
	}
	return nil
}

// Seal checks every per-type array against the final registry size and
// returns the immutable registry. On failure the builder stays unsealed and
// every mismatch is reported.
func (b *Builder) Seal() (*Registry, error) {
	if b.sealed {
		return nil, energy.Configf("registry", "already sealed")
	}
	n := len(b.types)
	var errs []error
	for i := range b.types {
		t := &b.types[i]
		scope := "item " + t.name
		if len(t.interactions) != n {
			errs = append(errs, energy.Configf(scope+" interactions", "length %d, want %d", len(t.interactions), n))
		}
		if len(t.requiredCounts) != n {
			errs = append(errs, energy.Configf(scope+" required_item_counts", "length %d, want %d", len(t.requiredCounts), n))
		}
		if len(t.requiredCosts) != n {
			errs = append(errs, energy.Configf(scope+" required_item_costs", "length %d, want %d", len(t.requiredCosts), n))
		}
	}
	if err := b.climate.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	b.sealed = true
	return &Registry{
		field:    energy.NewField(b.seed),
		scentDim: b.scentDim,
		colorDim: b.colorDim,
		climate:  b.climate,
		types:    b.types,
		index:    b.index,
	}, nil
}

// Sealed reports whether Seal has succeeded.
func (b *Builder) Sealed() bool {
	return b.sealed
}

// Len returns the number of declared types.
func (b *Builder) Len() int {
	return len(b.types)
}

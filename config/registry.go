package config

import (
	"fmt"

	"github.com/pthm-cable/itemfield/energy"
	"github.com/pthm-cable/itemfield/items"
)

// BuildRegistry declares every configured item type and seals the result.
// All errors match energy.ErrConfig.
func (c *Config) BuildRegistry() (*items.Registry, error) {
	b := items.NewBuilder(c.World.Seed, c.World.ScentDim, c.World.ColorDim)

	precip, err := c.Climate.Precipitation.precipitation()
	if err != nil {
		return nil, fmt.Errorf("climate: %w", err)
	}
	if err := b.SetClimate(precip, c.Climate.UpdateFrequency); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(c.Items))
	for i, item := range c.Items {
		index[item.Name] = i
	}
	for _, item := range c.Items {
		spec, err := item.spec(index)
		if err != nil {
			return nil, err
		}
		if _, err := b.Declare(spec); err != nil {
			return nil, err
		}
	}
	return b.Seal()
}

func (it ItemConfig) spec(index map[string]int) (items.Spec, error) {
	scope := "item " + it.Name
	intensity, err := it.Intensity.intensity()
	if err != nil {
		return items.Spec{}, fmt.Errorf("%s intensity: %w", scope, err)
	}

	interactions := make([]energy.Interaction, len(index))
	for i := range interactions {
		interactions[i] = energy.ZeroInteraction{}
	}
	for other, fc := range it.Interactions {
		j, ok := index[other]
		if !ok {
			return items.Spec{}, energy.Configf(scope+" interactions", "unknown item type %q", other)
		}
		fn, err := fc.interaction()
		if err != nil {
			return items.Spec{}, fmt.Errorf("%s interactions[%s]: %w", scope, other, err)
		}
		interactions[j] = fn
	}

	var regen energy.Regeneration
	if it.Regeneration != nil {
		regen, err = it.Regeneration.regeneration()
		if err != nil {
			return items.Spec{}, fmt.Errorf("%s regeneration: %w", scope, err)
		}
	}

	return items.Spec{
		Name:               it.Name,
		Scent:              it.Scent,
		Color:              it.Color,
		RequiredItemCounts: it.RequiredItemCounts,
		RequiredItemCosts:  it.RequiredItemCosts,
		BlocksMovement:     it.BlocksMovement,
		VisualOcclusion:    it.VisualOcclusion,
		Intensity:          intensity,
		Interactions:       interactions,
		Regeneration:       regen,
		Lifetime:           it.Lifetime,
	}, nil
}

func (f FunctionConfig) intensity() (energy.Intensity, error) {
	tag, err := energy.ParseIntensityTag(f.Fn)
	if err != nil {
		return nil, err
	}
	return energy.NewIntensity(tag, f.Args)
}

func (f FunctionConfig) interaction() (energy.Interaction, error) {
	tag, err := energy.ParseInteractionTag(f.Fn)
	if err != nil {
		return nil, err
	}
	return energy.NewInteraction(tag, f.Args)
}

func (f FunctionConfig) regeneration() (energy.Regeneration, error) {
	tag, err := energy.ParseRegenerationTag(f.Fn)
	if err != nil {
		return nil, err
	}
	return energy.NewRegeneration(tag, f.Args)
}

func (f FunctionConfig) precipitation() (energy.Precipitation, error) {
	tag, err := energy.ParsePrecipitationTag(f.Fn)
	if err != nil {
		return nil, err
	}
	return energy.NewPrecipitation(tag, f.Args)
}

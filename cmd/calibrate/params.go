package main

import (
	"fmt"

	"github.com/pthm-cable/itemfield/config"
	"github.com/pthm-cable/itemfield/energy"
)

// ParamSpec defines a single calibratable argument.
type ParamSpec struct {
	Name    string  // Argument name
	Index   int     // Position in the function's argument list
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value
}

// ParamVector holds the calibratable arguments of one item's intensity.
type ParamVector struct {
	Item  int // Index into config items
	Fn    string
	Args  []float64 // Full argument list; calibrated entries are overwritten
	Specs []ParamSpec
}

// intensityBounds lists the tunable arguments per intensity tag.
var intensityBounds = map[energy.IntensityTag][]ParamSpec{
	energy.IntensityConstant: {
		{Name: "c", Index: 0, Min: -20, Max: 20},
	},
	energy.IntensityRadialHash: {
		{Name: "c", Index: 0, Min: -20, Max: 20},
		{Name: "k", Index: 1, Min: 0, Max: 20},
		{Name: "s", Index: 2, Min: 0.5, Max: 100},
		{Name: "D", Index: 3, Min: 0, Max: 100},
	},
}

// NewParamVector selects the intensity arguments of the named item.
func NewParamVector(cfg *config.Config, item string) (*ParamVector, error) {
	i, ok := cfg.Derived.ItemIndex[item]
	if !ok {
		return nil, fmt.Errorf("unknown item %q", item)
	}
	fc := cfg.Items[i].Intensity
	tag, err := energy.ParseIntensityTag(fc.Fn)
	if err != nil {
		return nil, err
	}
	bounds, ok := intensityBounds[tag]
	if !ok {
		return nil, fmt.Errorf("item %q: intensity %v has no tunable arguments", item, tag)
	}

	pv := &ParamVector{Item: i, Fn: fc.Fn, Args: append([]float64(nil), fc.Args...)}
	for _, b := range bounds {
		if b.Index >= len(pv.Args) {
			return nil, fmt.Errorf("item %q: intensity %v is missing argument %s", item, tag, b.Name)
		}
		b.Default = pv.Args[b.Index]
		pv.Specs = append(pv.Specs, b)
	}
	pv.Specs = clampDefaults(pv.Specs)
	return pv, nil
}

func clampDefaults(specs []ParamSpec) []ParamSpec {
	for i := range specs {
		specs[i].Default = min(max(specs[i].Default, specs[i].Min), specs[i].Max)
	}
	return specs
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the starting values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig writes clamped values into the item's intensity arguments.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	args := append([]float64(nil), pv.Args...)
	for i, spec := range pv.Specs {
		args[spec.Index] = clamped[i]
	}
	cfg.Items[pv.Item].Intensity = config.FunctionConfig{Fn: pv.Fn, Args: args}
}

// Package items binds energy functions to item types. A Builder collects
// declarations and seals them into an immutable Registry, the surface the
// world sampler evaluates.
package items

import (
	"slices"

	"github.com/pthm-cable/itemfield/energy"
)

// Spec declares one item type. Slices are copied on Declare; the caller may
// reuse or modify a Spec afterwards without affecting the registry.
type Spec struct {
	Name  string
	Scent []float64
	Color []float64

	// Indexed by item type, self included. Lengths are checked at Seal.
	RequiredItemCounts []uint32 // minimum held to auto-collect this type
	RequiredItemCosts  []uint32 // consumed from the inventory on collection

	BlocksMovement  bool
	VisualOcclusion float64

	Intensity    energy.Intensity
	Interactions []energy.Interaction // one per item type, self included
	Regeneration energy.Regeneration  // nil means no regrowth

	Lifetime uint64 // ticks before removal; 0 = unbounded
}

// ItemType is a sealed item descriptor. It is immutable; accessors that
// return slices return copies.
type ItemType struct {
	index int
	name  string
	scent []float64
	color []float64

	requiredCounts []uint32
	requiredCosts  []uint32

	blocksMovement  bool
	visualOcclusion float64

	intensity    energy.Intensity
	interactions []energy.Interaction
	regeneration energy.Regeneration

	lifetime uint64
}

// newItemType copies a spec into a descriptor. Functions with backing tables
// are cloned and a missing regeneration becomes a fresh zero function.
func newItemType(index int, s Spec) ItemType {
	regen := s.Regeneration
	if regen == nil {
		regen = energy.ZeroRegeneration{}
	}
	return ItemType{
		index:           index,
		name:            s.Name,
		scent:           slices.Clone(s.Scent),
		color:           slices.Clone(s.Color),
		requiredCounts:  slices.Clone(s.RequiredItemCounts),
		requiredCosts:   slices.Clone(s.RequiredItemCosts),
		blocksMovement:  s.BlocksMovement,
		visualOcclusion: s.VisualOcclusion,
		intensity:       s.Intensity,
		interactions:    slices.Clone(s.Interactions),
		regeneration:    energy.CloneRegeneration(regen),
		lifetime:        s.Lifetime,
	}
}

func (t *ItemType) Index() int                        { return t.index }
func (t *ItemType) Name() string                      { return t.name }
func (t *ItemType) Scent() []float64                  { return slices.Clone(t.scent) }
func (t *ItemType) Color() []float64                  { return slices.Clone(t.color) }
func (t *ItemType) RequiredItemCounts() []uint32      { return slices.Clone(t.requiredCounts) }
func (t *ItemType) RequiredItemCosts() []uint32       { return slices.Clone(t.requiredCosts) }
func (t *ItemType) BlocksMovement() bool              { return t.blocksMovement }
func (t *ItemType) VisualOcclusion() float64          { return t.visualOcclusion }
func (t *ItemType) Intensity() energy.Intensity       { return t.intensity }
func (t *ItemType) Regeneration() energy.Regeneration { return t.regeneration }
func (t *ItemType) Lifetime() uint64                  { return t.lifetime }

// Interaction returns the function between this type and type j.
func (t *ItemType) Interaction(j int) energy.Interaction {
	return t.interactions[j]
}

// Spec returns a declaration equivalent to this descriptor.
func (t *ItemType) Spec() Spec {
	return Spec{
		Name:               t.name,
		Scent:              t.Scent(),
		Color:              t.Color(),
		RequiredItemCounts: t.RequiredItemCounts(),
		RequiredItemCosts:  t.RequiredItemCosts(),
		BlocksMovement:     t.blocksMovement,
		VisualOcclusion:    t.visualOcclusion,
		Intensity:          t.intensity,
		Interactions:       slices.Clone(t.interactions),
		Regeneration:       energy.CloneRegeneration(t.regeneration),
		Lifetime:           t.lifetime,
	}
}

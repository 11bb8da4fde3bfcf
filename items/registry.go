package items

import "github.com/pthm-cable/itemfield/energy"

// Registry is a sealed, immutable set of item types. All methods are pure
// and safe for concurrent use. Type indices must be in [0, Len()); an out of
// range index panics like a slice access.
type Registry struct {
	field    energy.Field
	scentDim int
	colorDim int
	climate  Climate
	types    []ItemType
	index    map[string]int
}

func (r *Registry) Len() int             { return len(r.types) }
func (r *Registry) Seed() uint32         { return r.field.Seed() }
func (r *Registry) Field() energy.Field  { return r.field }
func (r *Registry) ScentDim() int        { return r.scentDim }
func (r *Registry) ColorDim() int        { return r.colorDim }
func (r *Registry) Climate() Climate     { return r.climate }
func (r *Registry) Type(i int) *ItemType { return &r.types[i] }

// Index returns the index of the named type.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Names returns type names in index order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.types))
	for i := range r.types {
		names[i] = r.types[i].name
	}
	return names
}

// Intensity is the single-item energy of an item of type t at p.
func (r *Registry) Intensity(t int, p energy.Position) float64 {
	return r.types[t].intensity.Evaluate(r.field, p)
}

// Interaction evaluates type a's function for neighbours of type b, with the
// a item at pa and the b item at pb. It is directional; see PairEnergy.
func (r *Registry) Interaction(a, b int, pa, pb energy.Position) float64 {
	return r.types[a].interactions[b].Evaluate(r.field, pa, pb)
}

// PairEnergy is the symmetric pair energy f_ab(pa, pb) + f_ba(pb, pa).
func (r *Registry) PairEnergy(a, b int, pa, pb energy.Position) float64 {
	return r.Interaction(a, b, pa, pb) + r.Interaction(b, a, pb, pa)
}

// Regeneration is the regrowth energy of type t at p after elapsed ticks.
func (r *Registry) Regeneration(t int, p energy.Position, elapsed uint64) float64 {
	return r.types[t].regeneration.Evaluate(p, elapsed)
}

// Precipitation evaluates the world's precipitation with an explicit update
// frequency. Use Climate().At for the bound one.
func (r *Registry) Precipitation(tick, updateFrequency uint64) float64 {
	return r.climate.Precipitation.Evaluate(tick, updateFrequency)
}

// IsStationary reports whether type t's regeneration is position-independent.
func (r *Registry) IsStationary(t int) bool {
	return r.types[t].regeneration.Stationary()
}

// IsIntensityStationary reports whether type t's intensity is
// position-independent.
func (r *Registry) IsIntensityStationary(t int) bool {
	return r.types[t].intensity.Stationary()
}

// IsTimeIndependent reports whether type t's regeneration is independent of
// elapsed time.
func (r *Registry) IsTimeIndependent(t int) bool {
	return r.types[t].regeneration.TimeIndependent()
}

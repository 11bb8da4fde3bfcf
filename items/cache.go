package items

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pthm-cable/itemfield/energy"
)

// Cache precomputes the stationary parts of a registry for a sampler working
// on patches of side n. Interaction tables cover offsets in [-2n, 2n) on each
// axis; anything outside falls back to direct evaluation.
type Cache struct {
	reg  *Registry
	half int64 // 2n, the table origin
	size int   // 4n

	intensity       []float64
	intensityCached []bool
	regen           []float64
	regenCached     []bool

	// tables[a*len+b] is nil when the pair is evaluated directly.
	tables []*mat.Dense
}

// NewCache builds the cache for a patch size n >= 1.
func NewCache(reg *Registry, patchSize int) (*Cache, error) {
	if patchSize < 1 {
		return nil, energy.Configf("cache", "patch size %d must be at least 1", patchSize)
	}
	k := reg.Len()
	c := &Cache{
		reg:             reg,
		half:            2 * int64(patchSize),
		size:            4 * patchSize,
		intensity:       make([]float64, k),
		intensityCached: make([]bool, k),
		regen:           make([]float64, k),
		regenCached:     make([]bool, k),
		tables:          make([]*mat.Dense, k*k),
	}

	origin := energy.Pos(0, 0)
	for t := 0; t < k; t++ {
		typ := reg.Type(t)
		if typ.intensity.Stationary() {
			c.intensity[t] = typ.intensity.Evaluate(reg.field, origin)
			c.intensityCached[t] = true
		}
		if typ.regeneration.Stationary() && typ.regeneration.TimeIndependent() {
			c.regen[t] = typ.regeneration.Evaluate(origin, 0)
			c.regenCached[t] = true
		}
		for u := 0; u < k; u++ {
			fn := typ.interactions[u]
			if fn.Constant() || !fn.Stationary() {
				continue
			}
			c.tables[t*k+u] = c.tabulate(fn)
		}
	}
	return c, nil
}

// tabulate stores fn at every offset, indexed by offset + (2n, 2n).
func (c *Cache) tabulate(fn energy.Interaction) *mat.Dense {
	m := mat.NewDense(c.size, c.size, nil)
	origin := energy.Pos(0, 0)
	for i := 0; i < c.size; i++ {
		for j := 0; j < c.size; j++ {
			diff := energy.Pos(int64(i)-c.half, int64(j)-c.half)
			m.Set(i, j, fn.Evaluate(c.reg.field, diff, origin))
		}
	}
	return m
}

// Registry returns the registry the cache was built from.
func (c *Cache) Registry() *Registry {
	return c.reg
}

// PatchSize returns n.
func (c *Cache) PatchSize() int {
	return c.size / 4
}

// Tabulated reports whether the pair (a, b) is served from a table.
func (c *Cache) Tabulated(a, b int) bool {
	return c.tables[a*c.reg.Len()+b] != nil
}

func (c *Cache) Intensity(t int, p energy.Position) float64 {
	if c.intensityCached[t] {
		return c.intensity[t]
	}
	return c.reg.Intensity(t, p)
}

func (c *Cache) Regeneration(t int, p energy.Position, elapsed uint64) float64 {
	if c.regenCached[t] {
		return c.regen[t]
	}
	return c.reg.Regeneration(t, p, elapsed)
}

// Interaction matches Registry.Interaction except that an item never
// interacts with itself: coincident positions contribute 0.
func (c *Cache) Interaction(a, b int, pa, pb energy.Position) float64 {
	if pa == pb {
		return 0
	}
	table := c.tables[a*c.reg.Len()+b]
	if table == nil {
		return c.reg.Interaction(a, b, pa, pb)
	}
	d := pa.Sub(pb)
	i, j := d.X+c.half, d.Y+c.half
	if i < 0 || j < 0 || i >= int64(c.size) || j >= int64(c.size) {
		return c.reg.Interaction(a, b, pa, pb)
	}
	return table.At(int(i), int(j))
}

// PairEnergy is the cached counterpart of Registry.PairEnergy.
func (c *Cache) PairEnergy(a, b int, pa, pb energy.Position) float64 {
	return c.Interaction(a, b, pa, pb) + c.Interaction(b, a, pb, pa)
}

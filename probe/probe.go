// Package probe evaluates a sealed item registry over grids of positions and
// ranges of ticks. Output order is fixed by position and type index, so the
// result does not depend on how many workers computed it.
package probe

import (
	"math"

	"github.com/pthm-cable/itemfield/energy"
	"github.com/pthm-cable/itemfield/items"
)

// maxSamples bounds a single probe's output.
const maxSamples = 1 << 26

// Evaluator is the evaluation surface shared by items.Registry and
// items.Cache.
type Evaluator interface {
	Intensity(t int, p energy.Position) float64
	PairEnergy(a, b int, pa, pb energy.Position) float64
	Regeneration(t int, p energy.Position, elapsed uint64) float64
}

// Options selects the square [-Radius, Radius]² sampled every Step cells.
type Options struct {
	Radius int64
	Step   int64
}

func (o Options) side() (int, error) {
	if o.Radius < 0 {
		return 0, energy.Configf("probe", "radius %d is negative", o.Radius)
	}
	if o.Step < 1 {
		return 0, energy.Configf("probe", "step %d must be at least 1", o.Step)
	}
	side := 2*o.Radius/o.Step + 1
	if side > math.MaxInt32 {
		return 0, energy.Configf("probe", "radius %d too large for step %d", o.Radius, o.Step)
	}
	return int(side), nil
}

// coord returns the i-th grid coordinate along one axis.
func (o Options) coord(i int) int64 {
	return -o.Radius + int64(i)*o.Step
}

// IntensitySample is one type's intensity at one grid position.
type IntensitySample struct {
	Type      string  `csv:"type"`
	X         int64   `csv:"x"`
	Y         int64   `csv:"y"`
	Intensity float64 `csv:"intensity"`
}

// PairSample is the pair energy between a type A item at the origin and a
// type B item at (DX, DY).
type PairSample struct {
	A      string  `csv:"type_a"`
	B      string  `csv:"type_b"`
	DX     int64   `csv:"dx"`
	DY     int64   `csv:"dy"`
	Energy float64 `csv:"pair_energy"`
}

// TimelineSample is one time series value. Source is "precipitation" or an
// item type name for its regeneration at the origin.
type TimelineSample struct {
	Tick   uint64  `csv:"tick"`
	Source string  `csv:"source"`
	Value  float64 `csv:"value"`
}

// SourcePrecipitation labels precipitation rows in a timeline.
const SourcePrecipitation = "precipitation"

// Prober runs probes for one registry on a worker pool.
type Prober struct {
	reg   *items.Registry
	eval  Evaluator
	pool  *Pool
	names []string
}

// New returns a prober evaluating through eval, or through the registry
// itself when eval is nil.
func New(reg *items.Registry, eval Evaluator, pool *Pool) *Prober {
	if eval == nil {
		eval = reg
	}
	return &Prober{reg: reg, eval: eval, pool: pool, names: reg.Names()}
}

// Grid evaluates every type's intensity at every grid position. Samples are
// ordered by type, then y, then x.
func (p *Prober) Grid(opts Options) ([]IntensitySample, error) {
	side, err := opts.side()
	if err != nil {
		return nil, err
	}
	k := p.reg.Len()
	if err := checkSize(k, side, side); err != nil {
		return nil, err
	}

	out := make([]IntensitySample, k*side*side)
	p.pool.Run(k*side, func(start, end int) {
		for row := start; row < end; row++ {
			t, yi := row/side, row%side
			y := opts.coord(yi)
			base := row * side
			for xi := 0; xi < side; xi++ {
				x := opts.coord(xi)
				out[base+xi] = IntensitySample{
					Type:      p.names[t],
					X:         x,
					Y:         y,
					Intensity: p.eval.Intensity(t, energy.Pos(x, y)),
				}
			}
		}
	})
	return out, nil
}

// Pairs evaluates the pair energy for every ordered type pair at every grid
// offset. Samples are ordered by A, B, dy, dx.
func (p *Prober) Pairs(opts Options) ([]PairSample, error) {
	side, err := opts.side()
	if err != nil {
		return nil, err
	}
	k := p.reg.Len()
	if err := checkSize(k*k, side, side); err != nil {
		return nil, err
	}

	origin := energy.Pos(0, 0)
	out := make([]PairSample, k*k*side*side)
	p.pool.Run(k*k*side, func(start, end int) {
		for row := start; row < end; row++ {
			pair, yi := row/side, row%side
			a, b := pair/k, pair%k
			dy := opts.coord(yi)
			base := row * side
			for xi := 0; xi < side; xi++ {
				dx := opts.coord(xi)
				out[base+xi] = PairSample{
					A:      p.names[a],
					B:      p.names[b],
					DX:     dx,
					DY:     dy,
					Energy: p.eval.PairEnergy(a, b, origin, energy.Pos(dx, dy)),
				}
			}
		}
	})
	return out, nil
}

// Timeline evaluates precipitation under the bound climate and every type's
// regeneration at the origin for ticks [0, ticks). Each tick yields the
// precipitation sample followed by one sample per type.
func (p *Prober) Timeline(ticks uint64) ([]TimelineSample, error) {
	k := p.reg.Len()
	if ticks > maxSamples/uint64(k+1) {
		return nil, energy.Configf("probe", "%d ticks exceed the sample limit", ticks)
	}
	n := int(ticks)
	width := k + 1
	climate := p.reg.Climate()
	origin := energy.Pos(0, 0)

	out := make([]TimelineSample, n*width)
	p.pool.Run(n, func(start, end int) {
		for i := start; i < end; i++ {
			tick := uint64(i)
			base := i * width
			out[base] = TimelineSample{Tick: tick, Source: SourcePrecipitation, Value: climate.At(tick)}
			for t := 0; t < k; t++ {
				out[base+1+t] = TimelineSample{
					Tick:   tick,
					Source: p.names[t],
					Value:  p.eval.Regeneration(t, origin, tick),
				}
			}
		}
	})
	return out, nil
}

func checkSize(groups, rows, cols int) error {
	if groups == 0 {
		return nil
	}
	if rows > maxSamples/cols || rows*cols > maxSamples/groups {
		return energy.Configf("probe", "%d x %d grid for %d groups exceeds the sample limit", rows, cols, groups)
	}
	return nil
}

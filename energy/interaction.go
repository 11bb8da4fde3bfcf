package energy

import (
	"math"
	"strconv"
)

// Interaction is a pairwise energy f_ij(a, b) between an item of type i at a
// and an item of type j at b. Functions are directional: the registry stores
// one per ordered type pair and never symmetrizes.
type Interaction interface {
	Tag() InteractionTag
	Args() []float64
	Evaluate(f Field, a, b Position) float64
	// Constant reports whether the value is the same for every pair.
	Constant() bool
	// Stationary reports whether the value depends only on a - b, so it can be
	// tabulated by offset.
	Stationary() bool
	Validate() error
	interaction()
}

// ZeroInteraction is f(a, b) = 0.
type ZeroInteraction struct{}

// PiecewiseBoxInteraction is two boxes over the squared distance d = |a-b|²:
// C1 when d < L1, C2 when d < L2, else 0.
type PiecewiseBoxInteraction struct {
	L1, L2 float64
	C1, C2 float64
}

// CrossInteraction is a cross-shaped kernel over the Chebyshev distance m.
// Within D1 it returns A1 on the axes through a and B1 off them; within D2 it
// returns A2 and B2; beyond D2 it returns 0.
type CrossInteraction struct {
	D1, D2 float64
	A1, A2 float64
	B1, B2 float64
}

// CrossHashInteraction is CrossInteraction with hashed radii:
// D1 = C + K*M'(Δx / S) and D2 = D1 + Delta, where Δ = a - b.
type CrossHashInteraction struct {
	S, C, K, Delta float64
	A1, A2         float64
	B1, B2         float64
}

// MooreInteraction returns 1 inside the 3x3 Moore neighbourhood and -200
// outside it.
type MooreInteraction struct{}

// FourInteraction returns 1 inside the von Neumann neighbourhood (the cell and
// its four edge neighbours) and -200 outside it.
type FourInteraction struct{}

// GaussianInteraction is A * exp(-|a-b|² / (2 Sigma²)).
type GaussianInteraction struct {
	Sigma, A float64
}

const neighbourhoodPenalty = -200.0

func (ZeroInteraction) Tag() InteractionTag                        { return InteractionZero }
func (ZeroInteraction) Args() []float64                            { return []float64{} }
func (ZeroInteraction) Evaluate(Field, Position, Position) float64 { return 0 }
func (ZeroInteraction) Constant() bool                             { return true }
func (ZeroInteraction) Stationary() bool                           { return true }
func (ZeroInteraction) Validate() error                            { return nil }
func (ZeroInteraction) interaction()                               {}

func (p PiecewiseBoxInteraction) Tag() InteractionTag { return InteractionPiecewiseBox }
func (p PiecewiseBoxInteraction) Args() []float64     { return []float64{p.L1, p.L2, p.C1, p.C2} }
func (PiecewiseBoxInteraction) Constant() bool        { return false }
func (PiecewiseBoxInteraction) Stationary() bool      { return true }
func (PiecewiseBoxInteraction) interaction()          {}

func (p PiecewiseBoxInteraction) Evaluate(_ Field, a, b Position) float64 {
	d := a.Sub(b).SquaredLength()
	if d < p.L1 {
		return p.C1
	} else if d < p.L2 {
		return p.C2
	}
	return 0
}

func (p PiecewiseBoxInteraction) Validate() error {
	return requireFinite("interaction PIECEWISE_BOX", "l1", p.L1, "l2", p.L2, "c1", p.C1, "c2", p.C2)
}

func (c CrossInteraction) Tag() InteractionTag { return InteractionCross }
func (c CrossInteraction) Args() []float64 {
	return []float64{c.D1, c.D2, c.A1, c.A2, c.B1, c.B2}
}
func (CrossInteraction) Constant() bool   { return false }
func (CrossInteraction) Stationary() bool { return true }
func (CrossInteraction) interaction()     {}

func (c CrossInteraction) Evaluate(_ Field, a, b Position) float64 {
	return cross(a.Sub(b), c.D1, c.D2, c.A1, c.A2, c.B1, c.B2)
}

func (c CrossInteraction) Validate() error {
	return requireFinite("interaction CROSS",
		"d1", c.D1, "d2", c.D2, "a1", c.A1, "a2", c.A2, "b1", c.B1, "b2", c.B2)
}

func (c CrossHashInteraction) Tag() InteractionTag { return InteractionCrossHash }
func (c CrossHashInteraction) Args() []float64 {
	return []float64{c.S, c.C, c.K, c.Delta, c.A1, c.A2, c.B1, c.B2}
}
func (CrossHashInteraction) Constant() bool   { return false }
func (CrossHashInteraction) Stationary() bool { return false }
func (CrossHashInteraction) interaction()     {}

func (c CrossHashInteraction) Evaluate(f Field, a, b Position) float64 {
	diff := a.Sub(b)
	d1 := c.C + c.K*f.Lerp(float64(diff.X)/c.S)
	return cross(diff, d1, d1+c.Delta, c.A1, c.A2, c.B1, c.B2)
}

func (c CrossHashInteraction) Validate() error {
	const scope = "interaction CROSS_HASH"
	err := requireFinite(scope, "s", c.S, "c", c.C, "k", c.K, "delta", c.Delta,
		"a1", c.A1, "a2", c.A2, "b1", c.B1, "b2", c.B2)
	if err != nil {
		return err
	}
	if c.S == 0 {
		return Configf(scope, "scale s must be non-zero")
	}
	return nil
}

// cross selects the on-axis or off-axis constant of the band that the
// Chebyshev distance of diff falls in.
func cross(diff Position, d1, d2, a1, a2, b1, b2 float64) float64 {
	m := float64(diff.Chebyshev())
	switch {
	case m <= d1:
		if diff.OnAxis() {
			return a1
		}
		return b1
	case m <= d2:
		if diff.OnAxis() {
			return a2
		}
		return b2
	}
	return 0
}

func (MooreInteraction) Tag() InteractionTag { return InteractionMoore }
func (MooreInteraction) Args() []float64     { return []float64{} }
func (MooreInteraction) Constant() bool      { return false }
func (MooreInteraction) Stationary() bool    { return true }
func (MooreInteraction) Validate() error     { return nil }
func (MooreInteraction) interaction()        {}

func (MooreInteraction) Evaluate(_ Field, a, b Position) float64 {
	if a.Sub(b).Chebyshev() < 2 {
		return 1
	}
	return neighbourhoodPenalty
}

func (FourInteraction) Tag() InteractionTag { return InteractionFour }
func (FourInteraction) Args() []float64     { return []float64{} }
func (FourInteraction) Constant() bool      { return false }
func (FourInteraction) Stationary() bool    { return true }
func (FourInteraction) Validate() error     { return nil }
func (FourInteraction) interaction()        {}

func (FourInteraction) Evaluate(_ Field, a, b Position) float64 {
	d := a.Sub(b)
	if ax, ay := absInt64(d.X), absInt64(d.Y); ax <= 1 && ay <= 1 && ax+ay <= 1 {
		return 1
	}
	return neighbourhoodPenalty
}

func (g GaussianInteraction) Tag() InteractionTag { return InteractionGaussian }
func (g GaussianInteraction) Args() []float64     { return []float64{g.Sigma, g.A} }
func (GaussianInteraction) Constant() bool        { return false }
func (GaussianInteraction) Stationary() bool      { return true }
func (GaussianInteraction) interaction()          {}

func (g GaussianInteraction) Evaluate(_ Field, a, b Position) float64 {
	d := a.Sub(b).SquaredLength()
	return g.A * math.Exp(-d/(2*g.Sigma*g.Sigma))
}

func (g GaussianInteraction) Validate() error {
	const scope = "interaction GAUSSIAN"
	if err := requireFinite(scope, "sigma", g.Sigma, "a", g.A); err != nil {
		return err
	}
	if g.Sigma == 0 {
		return Configf(scope, "sigma must be non-zero")
	}
	return nil
}

// NewInteraction builds and validates an interaction variant from a tag and
// its positional arguments.
func NewInteraction(tag InteractionTag, args []float64) (Interaction, error) {
	want := map[InteractionTag]int{
		InteractionZero:         0,
		InteractionPiecewiseBox: 4,
		InteractionCross:        6,
		InteractionCrossHash:    8,
		InteractionMoore:        0,
		InteractionGaussian:     2,
		InteractionFour:         0,
	}
	n, ok := want[tag]
	if !ok {
		return nil, &ConfigError{Scope: "interaction", Reason: tag.String(), Err: ErrUnknownTag}
	}
	if len(args) != n {
		return nil, arityError("interaction "+tag.String(), strconv.Itoa(n), len(args))
	}

	var fn Interaction
	switch tag {
	case InteractionZero:
		fn = ZeroInteraction{}
	case InteractionPiecewiseBox:
		fn = PiecewiseBoxInteraction{L1: args[0], L2: args[1], C1: args[2], C2: args[3]}
	case InteractionCross:
		fn = CrossInteraction{D1: args[0], D2: args[1], A1: args[2], A2: args[3], B1: args[4], B2: args[5]}
	case InteractionCrossHash:
		fn = CrossHashInteraction{
			S: args[0], C: args[1], K: args[2], Delta: args[3],
			A1: args[4], A2: args[5], B1: args[6], B2: args[7],
		}
	case InteractionMoore:
		fn = MooreInteraction{}
	case InteractionGaussian:
		fn = GaussianInteraction{Sigma: args[0], A: args[1]}
	case InteractionFour:
		fn = FourInteraction{}
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return fn, nil
}

package energy

import (
	"math"
	"slices"
)

// Precipitation is the world-global climate signal. It advances once every
// updateFrequency ticks: Evaluate sees only step = tick / updateFrequency.
// An updateFrequency of 0 is read as 1.
type Precipitation interface {
	Tag() PrecipitationTag
	Args() []float64
	Evaluate(tick, updateFrequency uint64) float64
	Validate() error
	precipitation()
}

// ZeroPrecipitation is always 0.
type ZeroPrecipitation struct{}

// ConstantPrecipitation is always C.
type ConstantPrecipitation struct {
	C float64
}

// CyclePrecipitation is a two-phase wave with period T1+T2 steps: A1 for the
// first T1 steps of each period, then A2 for the next T2.
type CyclePrecipitation struct {
	A1, A2 float64
	T1, T2 uint64
}

// CustomPrecipitation replays Values, one entry per step, wrapping at the end.
type CustomPrecipitation struct {
	Values []float64
}

func (ZeroPrecipitation) Tag() PrecipitationTag           { return PrecipitationZero }
func (ZeroPrecipitation) Args() []float64                 { return []float64{} }
func (ZeroPrecipitation) Evaluate(uint64, uint64) float64 { return 0 }
func (ZeroPrecipitation) Validate() error                 { return nil }
func (ZeroPrecipitation) precipitation()                  {}

func (c ConstantPrecipitation) Tag() PrecipitationTag           { return PrecipitationConstant }
func (c ConstantPrecipitation) Args() []float64                 { return []float64{c.C} }
func (c ConstantPrecipitation) Evaluate(uint64, uint64) float64 { return c.C }
func (ConstantPrecipitation) precipitation()                    {}

func (c ConstantPrecipitation) Validate() error {
	return requireFinite("precipitation CONSTANT", "c", c.C)
}

func (c CyclePrecipitation) Tag() PrecipitationTag { return PrecipitationCycle }
func (c CyclePrecipitation) Args() []float64 {
	return []float64{c.A1, c.A2, float64(c.T1), float64(c.T2)}
}
func (CyclePrecipitation) precipitation() {}

func (c CyclePrecipitation) Evaluate(tick, updateFrequency uint64) float64 {
	phase := step(tick, updateFrequency) % (c.T1 + c.T2)
	if phase < c.T1 {
		return c.A1
	}
	return c.A2
}

func (c CyclePrecipitation) Validate() error {
	const scope = "precipitation CYCLE"
	if err := requireFinite(scope, "a1", c.A1, "a2", c.A2); err != nil {
		return err
	}
	if c.T1+c.T2 == 0 {
		return Configf(scope, "period t1+t2 must be at least 1")
	}
	if c.T1+c.T2 < c.T1 {
		return Configf(scope, "period t1+t2 overflows")
	}
	return nil
}

func (c CustomPrecipitation) Tag() PrecipitationTag { return PrecipitationCustom }
func (c CustomPrecipitation) Args() []float64       { return slices.Clone(c.Values) }
func (CustomPrecipitation) precipitation()          {}

func (c CustomPrecipitation) Evaluate(tick, updateFrequency uint64) float64 {
	return c.Values[step(tick, updateFrequency)%uint64(len(c.Values))]
}

func (c CustomPrecipitation) Validate() error {
	const scope = "precipitation CUSTOM"
	if len(c.Values) == 0 {
		return arityError(scope, "at least 1", 0)
	}
	return requireFiniteSlice(scope, c.Values)
}

func step(tick, updateFrequency uint64) uint64 {
	if updateFrequency == 0 {
		return tick
	}
	return tick / updateFrequency
}

// NewPrecipitation builds and validates a precipitation variant from a tag
// and its positional arguments. CYCLE durations must be non-negative
// integers. The argument slice is copied.
func NewPrecipitation(tag PrecipitationTag, args []float64) (Precipitation, error) {
	var fn Precipitation
	switch tag {
	case PrecipitationZero:
		if len(args) != 0 {
			return nil, arityError("precipitation ZERO", "0", len(args))
		}
		fn = ZeroPrecipitation{}
	case PrecipitationConstant:
		if len(args) != 1 {
			return nil, arityError("precipitation CONSTANT", "1", len(args))
		}
		fn = ConstantPrecipitation{C: args[0]}
	case PrecipitationCycle:
		if len(args) != 4 {
			return nil, arityError("precipitation CYCLE", "4", len(args))
		}
		t1, err := tickCount("precipitation CYCLE", "t1", args[2])
		if err != nil {
			return nil, err
		}
		t2, err := tickCount("precipitation CYCLE", "t2", args[3])
		if err != nil {
			return nil, err
		}
		fn = CyclePrecipitation{A1: args[0], A2: args[1], T1: t1, T2: t2}
	case PrecipitationCustom:
		fn = CustomPrecipitation{Values: slices.Clone(args)}
	default:
		return nil, &ConfigError{Scope: "precipitation", Reason: tag.String(), Err: ErrUnknownTag}
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return fn, nil
}

// ClonePrecipitation returns fn with any backing table copied.
func ClonePrecipitation(fn Precipitation) Precipitation {
	if c, ok := fn.(CustomPrecipitation); ok {
		return CustomPrecipitation{Values: slices.Clone(c.Values)}
	}
	return fn
}

// tickCount converts a positional argument to a tick count.
func tickCount(scope, name string, v float64) (uint64, error) {
	if math.IsNaN(v) || v < 0 || v != math.Trunc(v) || v >= math.MaxUint32 {
		return 0, Configf(scope, "%s must be a non-negative integer tick count, got %v", name, v)
	}
	return uint64(v), nil
}

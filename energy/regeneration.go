package energy

import (
	"slices"
	"strconv"
)

// Regeneration is a per-type regrowth-rate field f_i(x, t) over position and
// elapsed ticks. Variants: ZeroRegeneration, ConstantRegeneration and
// CustomRegeneration. The CRENEL tag is recognized but has no closed form;
// NewRegeneration rejects it.
type Regeneration interface {
	Tag() RegenerationTag
	Args() []float64
	Evaluate(p Position, elapsed uint64) float64
	// Stationary reports whether the value is the same at every position.
	Stationary() bool
	// TimeIndependent reports whether the value is the same at every tick.
	TimeIndependent() bool
	Validate() error
	regeneration()
}

// ZeroRegeneration is f(x, t) = 0.
type ZeroRegeneration struct{}

// ConstantRegeneration is f(x, t) = C.
type ConstantRegeneration struct {
	C float64
}

// CustomRegeneration is a per-tick lookup table, f(x, t) = Values[t mod n].
type CustomRegeneration struct {
	Values []float64
}

func (ZeroRegeneration) Tag() RegenerationTag              { return RegenerationZero }
func (ZeroRegeneration) Args() []float64                   { return []float64{} }
func (ZeroRegeneration) Evaluate(Position, uint64) float64 { return 0 }
func (ZeroRegeneration) Stationary() bool                  { return true }
func (ZeroRegeneration) TimeIndependent() bool             { return true }
func (ZeroRegeneration) Validate() error                   { return nil }
func (ZeroRegeneration) regeneration()                     {}

func (c ConstantRegeneration) Tag() RegenerationTag              { return RegenerationConstant }
func (c ConstantRegeneration) Args() []float64                   { return []float64{c.C} }
func (c ConstantRegeneration) Evaluate(Position, uint64) float64 { return c.C }
func (ConstantRegeneration) Stationary() bool                    { return true }
func (ConstantRegeneration) TimeIndependent() bool               { return true }
func (ConstantRegeneration) regeneration()                       {}

func (c ConstantRegeneration) Validate() error {
	return requireFinite("regeneration CONSTANT", "c", c.C)
}

func (c CustomRegeneration) Tag() RegenerationTag { return RegenerationCustom }
func (c CustomRegeneration) Args() []float64      { return slices.Clone(c.Values) }
func (CustomRegeneration) Stationary() bool       { return false }
func (CustomRegeneration) TimeIndependent() bool  { return false }
func (CustomRegeneration) regeneration()          {}

func (c CustomRegeneration) Evaluate(_ Position, elapsed uint64) float64 {
	return c.Values[elapsed%uint64(len(c.Values))]
}

func (c CustomRegeneration) Validate() error {
	const scope = "regeneration CUSTOM"
	if len(c.Values) == 0 {
		return arityError(scope, "at least 1", 0)
	}
	return requireFiniteSlice(scope, c.Values)
}

// NewRegeneration builds and validates a regeneration variant from a tag and
// its positional arguments. The argument slice is copied.
func NewRegeneration(tag RegenerationTag, args []float64) (Regeneration, error) {
	var fn Regeneration
	switch tag {
	case RegenerationZero:
		if len(args) != 0 {
			return nil, arityError("regeneration ZERO", "0", len(args))
		}
		fn = ZeroRegeneration{}
	case RegenerationConstant:
		if len(args) != 1 {
			return nil, arityError("regeneration CONSTANT", "1", len(args))
		}
		fn = ConstantRegeneration{C: args[0]}
	case RegenerationCustom:
		fn = CustomRegeneration{Values: slices.Clone(args)}
	case RegenerationCrenel:
		return nil, &ConfigError{
			Scope:  "regeneration CRENEL",
			Reason: "seasonal waveform has no closed form",
			Err:    ErrNotImplemented,
		}
	default:
		return nil, &ConfigError{Scope: "regeneration", Reason: tag.String(), Err: ErrUnknownTag}
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return fn, nil
}

// CloneRegeneration returns fn with any backing table copied, so the result
// shares no memory with the caller.
func CloneRegeneration(fn Regeneration) Regeneration {
	if c, ok := fn.(CustomRegeneration); ok {
		return CustomRegeneration{Values: slices.Clone(c.Values)}
	}
	return fn
}

func requireFiniteSlice(scope string, values []float64) error {
	for i, v := range values {
		if err := requireFinite(scope, "v"+strconv.Itoa(i), v); err != nil {
			return err
		}
	}
	return nil
}

package energy

import "math"

// Intensity is a per-type spatial bias field f_i(x). It is a closed set:
// the variants are ZeroIntensity, ConstantIntensity and RadialHashIntensity.
type Intensity interface {
	Tag() IntensityTag
	// Args returns the positional parameter list for this variant.
	Args() []float64
	Evaluate(f Field, p Position) float64
	// Stationary reports whether the value is the same at every position.
	Stationary() bool
	Validate() error
	intensity()
}

// ZeroIntensity is f(x) = 0.
type ZeroIntensity struct{}

// ConstantIntensity is f(x) = C.
type ConstantIntensity struct {
	C float64
}

// RadialHashIntensity is f(x) = C - K * M'(|x| / S + D). It depends on the
// position only through its distance to the origin.
type RadialHashIntensity struct {
	C, K, S, D float64
}

func (ZeroIntensity) Tag() IntensityTag                      { return IntensityZero }
func (ZeroIntensity) Args() []float64                        { return []float64{} }
func (ZeroIntensity) Evaluate(Field, Position) float64       { return 0 }
func (ZeroIntensity) Stationary() bool                       { return true }
func (ZeroIntensity) Validate() error                        { return nil }
func (ZeroIntensity) intensity()                             {}
func (c ConstantIntensity) Tag() IntensityTag                { return IntensityConstant }
func (c ConstantIntensity) Args() []float64                  { return []float64{c.C} }
func (c ConstantIntensity) Evaluate(Field, Position) float64 { return c.C }
func (c ConstantIntensity) Stationary() bool                 { return true }
func (ConstantIntensity) intensity()                         {}

func (c ConstantIntensity) Validate() error {
	return requireFinite("intensity CONSTANT", "c", c.C)
}

func (r RadialHashIntensity) Tag() IntensityTag { return IntensityRadialHash }
func (r RadialHashIntensity) Args() []float64   { return []float64{r.C, r.K, r.S, r.D} }
func (r RadialHashIntensity) Stationary() bool  { return false }
func (RadialHashIntensity) intensity()          {}

func (r RadialHashIntensity) Evaluate(f Field, p Position) float64 {
	return r.C - r.K*f.Lerp(p.Length()/r.S+r.D)
}

func (r RadialHashIntensity) Validate() error {
	const scope = "intensity RADIAL_HASH"
	if err := requireFinite(scope, "c", r.C, "k", r.K, "s", r.S, "D", r.D); err != nil {
		return err
	}
	if r.S == 0 {
		return Configf(scope, "scale s must be non-zero")
	}
	return nil
}

// NewIntensity builds and validates an intensity variant from a tag and its
// positional arguments.
func NewIntensity(tag IntensityTag, args []float64) (Intensity, error) {
	var fn Intensity
	switch tag {
	case IntensityZero:
		if len(args) != 0 {
			return nil, arityError("intensity ZERO", "0", len(args))
		}
		fn = ZeroIntensity{}
	case IntensityConstant:
		if len(args) != 1 {
			return nil, arityError("intensity CONSTANT", "1", len(args))
		}
		fn = ConstantIntensity{C: args[0]}
	case IntensityRadialHash:
		if len(args) != 4 {
			return nil, arityError("intensity RADIAL_HASH", "4", len(args))
		}
		fn = RadialHashIntensity{C: args[0], K: args[1], S: args[2], D: args[3]}
	default:
		return nil, &ConfigError{Scope: "intensity", Reason: tag.String(), Err: ErrUnknownTag}
	}
	if err := fn.Validate(); err != nil {
		return nil, err
	}
	return fn, nil
}

// requireFinite checks name/value pairs and rejects NaN or infinite values.
func requireFinite(scope string, pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		name, _ := pairs[i].(string)
		v, _ := pairs[i+1].(float64)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Configf(scope, "%s must be finite, got %v", name, v)
		}
	}
	return nil
}

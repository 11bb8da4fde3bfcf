package energy

import "math"

// mixScale normalizes a 32-bit hash into [0, 1].
const mixScale = 1.0 / float64(math.MaxUint32)

// mix32 is the final avalanche step of a 32-bit MurmurHash-style hash.
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x45d9f3b
	x ^= x >> 16
	x *= 0x45d9f3b
	x ^= x >> 16
	return x
}

// Field is the seeded pseudorandom field M over the integers and its linear
// extension M' to the reals. A Field holds no stream state: M(n) depends only
// on n and the seed, so the same seed always yields the same world.
type Field struct {
	seed uint32
	key  uint32
}

// NewField returns the field for a world seed. Seed 0 reproduces the raw
// finalizer, M(n) = mix32(n) / MaxUint32.
func NewField(seed uint32) Field {
	return Field{seed: seed, key: mix32(seed)}
}

// Seed returns the world seed the field was built from.
func (f Field) Seed() uint32 {
	return f.seed
}

// At returns M(n) in [0, 1].
func (f Field) At(n uint32) float64 {
	return float64(mix32(n^f.key)) * mixScale
}

// Lerp returns M'(t), the linear interpolation of M between floor(t) and
// floor(t)+1. The integer part is reduced modulo 2^32, which makes M' total
// over negative and very large arguments. At integral t, Lerp(t) == At(t).
func (f Field) Lerp(t float64) float64 {
	fl := math.Floor(t)
	frac := t - fl
	n := latticeIndex(fl)
	lo := f.At(n)
	if frac == 0 {
		return lo
	}
	return lo*(1-frac) + f.At(n+1)*frac
}

// latticeIndex wraps an integral float into the uint32 index space.
func latticeIndex(fl float64) uint32 {
	if math.IsNaN(fl) || math.IsInf(fl, 0) {
		return 0
	}
	return uint32(int64(math.Mod(fl, 1<<32)))
}

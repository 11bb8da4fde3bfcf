// Package energy defines the spatial and temporal energy functions used to
// populate and evolve a tiled item world: intensity, interaction,
// regeneration and precipitation.
//
// Every function is a pure value. Evaluating the same variant with the same
// inputs returns bit-identical results on any goroutine, so callers may share
// variants freely across sampler workers.
package energy

import "math"

// Position is a lattice coordinate in world space.
type Position struct {
	X, Y int64
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int64) Position {
	return Position{X: x, Y: y}
}

// Sub returns p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q.
func (p Position) Add(q Position) Position {
	return Position{X: p.X + q.X, Y: p.Y + q.Y}
}

// SquaredLength returns X² + Y², computed in float64 so it cannot wrap.
func (p Position) SquaredLength() float64 {
	x, y := float64(p.X), float64(p.Y)
	return x*x + y*y
}

// Length returns the Euclidean norm.
func (p Position) Length() float64 {
	return math.Hypot(float64(p.X), float64(p.Y))
}

// Chebyshev returns max(|X|, |Y|).
func (p Position) Chebyshev() int64 {
	return max(absInt64(p.X), absInt64(p.Y))
}

// OnAxis reports whether either coordinate is exactly zero.
func (p Position) OnAxis() bool {
	return p.X == 0 || p.Y == 0
}

// absInt64 saturates at math.MaxInt64 for math.MinInt64.
func absInt64(v int64) int64 {
	if v == math.MinInt64 {
		return math.MaxInt64
	}
	if v < 0 {
		return -v
	}
	return v
}

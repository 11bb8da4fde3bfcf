package items

import (
	"errors"
	"testing"

	"github.com/pthm-cable/itemfield/energy"
)

func TestCacheMatchesRegistry(t *testing.T) {
	reg := threeTypes(t)
	const n = 4
	c, err := NewCache(reg, n)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	base := energy.Pos(101, -37)
	for a := 0; a < reg.Len(); a++ {
		for b := 0; b < reg.Len(); b++ {
			for dx := int64(-3 * n); dx <= 3*n; dx++ {
				for dy := int64(-3 * n); dy <= 3*n; dy++ {
					if dx == 0 && dy == 0 {
						continue
					}
					other := base.Sub(energy.Pos(dx, dy))
					got := c.Interaction(a, b, base, other)
					want := reg.Interaction(a, b, base, other)
					if got != want {
						t.Fatalf("(%d,%d) at offset (%d,%d): cache %v, direct %v", a, b, dx, dy, got, want)
					}
				}
			}
		}
	}
}

func TestCacheCoincidentIsZero(t *testing.T) {
	reg := threeTypes(t)
	c, err := NewCache(reg, 2)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	p := energy.Pos(3, 3)
	// MOORE between trees is 1 at zero offset when evaluated directly.
	if reg.Interaction(1, 2, p, p) != 1 {
		t.Fatalf("direct MOORE at zero offset = %v", reg.Interaction(1, 2, p, p))
	}
	for a := 0; a < reg.Len(); a++ {
		for b := 0; b < reg.Len(); b++ {
			if got := c.Interaction(a, b, p, p); got != 0 {
				t.Errorf("Interaction(%d,%d) at same position = %v, want 0", a, b, got)
			}
		}
	}
}

func TestCacheTabulation(t *testing.T) {
	reg := threeTypes(t)
	c, err := NewCache(reg, 2)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	tests := []struct {
		a, b int
		want bool
	}{
		{0, 0, true},  // PIECEWISE_BOX
		{0, 1, true},  // CROSS
		{0, 2, false}, // ZERO
		{1, 0, true},  // GAUSSIAN
		{1, 1, false}, // CROSS_HASH
		{1, 2, true},  // MOORE
		{2, 2, true},  // FOUR
	}
	for _, tt := range tests {
		if got := c.Tabulated(tt.a, tt.b); got != tt.want {
			t.Errorf("Tabulated(%d,%d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if c.PatchSize() != 2 {
		t.Errorf("PatchSize() = %d, want 2", c.PatchSize())
	}
}

func TestCacheIntensityAndRegeneration(t *testing.T) {
	reg := threeTypes(t)
	c, err := NewCache(reg, 1)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	for _, p := range []energy.Position{energy.Pos(0, 0), energy.Pos(17, -4), energy.Pos(-300, 2)} {
		for typ := 0; typ < reg.Len(); typ++ {
			if got, want := c.Intensity(typ, p), reg.Intensity(typ, p); got != want {
				t.Errorf("Intensity(%d, %v) = %v, want %v", typ, p, got, want)
			}
			for _, elapsed := range []uint64{0, 1, 5} {
				if got, want := c.Regeneration(typ, p, elapsed), reg.Regeneration(typ, p, elapsed); got != want {
					t.Errorf("Regeneration(%d, %v, %d) = %v, want %v", typ, p, elapsed, got, want)
				}
			}
		}
	}
}

func TestNewCacheRejectsPatchSize(t *testing.T) {
	reg := threeTypes(t)
	if _, err := NewCache(reg, 0); !errors.Is(err, energy.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
}

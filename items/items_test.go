package items

import (
	"errors"
	"testing"

	"github.com/pthm-cable/itemfield/energy"
)

func zeros(n int) []energy.Interaction {
	fns := make([]energy.Interaction, n)
	for i := range fns {
		fns[i] = energy.ZeroInteraction{}
	}
	return fns
}

func spec(name string, n int) Spec {
	return Spec{
		Name:               name,
		Scent:              []float64{1, 0},
		Color:              []float64{0, 1, 0},
		RequiredItemCounts: make([]uint32, n),
		RequiredItemCosts:  make([]uint32, n),
		Intensity:          energy.ConstantIntensity{C: -2},
		Interactions:       zeros(n),
	}
}

// threeTypes mirrors a small world: banana, tree, lake.
func threeTypes(t *testing.T) *Registry {
	t.Helper()
	b := NewBuilder(7, 2, 3)
	if err := b.SetClimate(energy.CyclePrecipitation{A1: 5, A2: 80, T1: 3, T2: 2}, 10); err != nil {
		t.Fatalf("SetClimate: %v", err)
	}

	banana := spec("banana", 3)
	banana.Intensity = energy.RadialHashIntensity{C: 1.5, K: 2, S: 10, D: 0.5}
	banana.Interactions[0] = energy.PiecewiseBoxInteraction{L1: 10, L2: 200, C1: 0, C2: -6}
	banana.Interactions[1] = energy.CrossInteraction{D1: 10, D2: 15, A1: 20, A2: -200, B1: -20, B2: 10}
	banana.Regeneration = energy.ConstantRegeneration{C: 0.1}

	tree := spec("tree", 3)
	tree.BlocksMovement = true
	tree.Interactions[0] = energy.GaussianInteraction{Sigma: 3, A: 1}
	tree.Interactions[1] = energy.CrossHashInteraction{S: 4, C: 6, K: 2, Delta: 3, A1: 1, A2: -1, B1: 2, B2: -2}
	tree.Interactions[2] = energy.MooreInteraction{}

	lake := spec("lake", 3)
	lake.Interactions[2] = energy.FourInteraction{}
	lake.Regeneration = energy.CustomRegeneration{Values: []float64{1, 2, 3}}

	for _, s := range []Spec{banana, tree, lake} {
		if _, err := b.Declare(s); err != nil {
			t.Fatalf("Declare(%s): %v", s.Name, err)
		}
	}
	reg, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	return reg
}

func TestDeclareAndSeal(t *testing.T) {
	reg := threeTypes(t)
	if reg.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", reg.Len())
	}
	if i, ok := reg.Index("tree"); !ok || i != 1 {
		t.Errorf("Index(tree) = %d, %v", i, ok)
	}
	if _, ok := reg.Index("rock"); ok {
		t.Errorf("Index(rock) found")
	}
	if reg.Seed() != 7 {
		t.Errorf("Seed() = %d, want 7", reg.Seed())
	}
	if !reg.Type(1).BlocksMovement() {
		t.Errorf("tree does not block movement")
	}
}

func TestDeclareRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Spec)
	}{
		{"empty name", func(s *Spec) { s.Name = "" }},
		{"duplicate name", func(s *Spec) { s.Name = "first" }},
		{"short scent", func(s *Spec) { s.Scent = []float64{1} }},
		{"long color", func(s *Spec) { s.Color = []float64{0, 0, 0, 0} }},
		{"negative occlusion", func(s *Spec) { s.VisualOcclusion = -0.5 }},
		{"nil intensity", func(s *Spec) { s.Intensity = nil }},
		{"invalid intensity", func(s *Spec) { s.Intensity = energy.RadialHashIntensity{S: 0} }},
		{"nil interaction", func(s *Spec) { s.Interactions[1] = nil }},
		{"invalid regeneration", func(s *Spec) { s.Regeneration = energy.CustomRegeneration{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(0, 2, 3)
			if _, err := b.Declare(spec("first", 2)); err != nil {
				t.Fatalf("Declare: %v", err)
			}
			s := spec("second", 2)
			tt.mutate(&s)
			if _, err := b.Declare(s); !errors.Is(err, energy.ErrConfig) {
				t.Errorf("err = %v, want ErrConfig", err)
			}
			if b.Len() != 1 {
				t.Errorf("Len() = %d after rejected declare, want 1", b.Len())
			}
		})
	}
}

func TestSealLengthMismatch(t *testing.T) {
	tests := []struct {
		name   string
		modify func(s *Spec)
	}{
		{"all arrays sized for two", func(s *Spec) { *s = spec("c", 2) }},
		{"required item counts", func(s *Spec) { s.RequiredItemCounts = make([]uint32, 2) }},
		{"required item costs", func(s *Spec) { s.RequiredItemCosts = make([]uint32, 4) }},
		{"interactions", func(s *Spec) { s.Interactions = zeros(2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(0, 2, 3)
			for _, name := range []string{"a", "b"} {
				if _, err := b.Declare(spec(name, 3)); err != nil {
					t.Fatalf("Declare(%s): %v", name, err)
				}
			}
			c := spec("c", 3)
			tt.modify(&c)
			if _, err := b.Declare(c); err != nil {
				t.Fatalf("Declare(c): %v", err)
			}

			reg, err := b.Seal()
			if !errors.Is(err, energy.ErrConfig) {
				t.Fatalf("Seal err = %v, want ErrConfig", err)
			}
			if reg != nil {
				t.Errorf("Seal returned a registry on failure")
			}
			if b.Sealed() {
				t.Errorf("builder sealed after failed Seal")
			}
		})
	}
}

func TestSealedBuilderRejectsChanges(t *testing.T) {
	b := NewBuilder(0, 2, 3)
	if _, err := b.Declare(spec("a", 1)); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if _, err := b.Seal(); err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if !b.Sealed() {
		t.Fatalf("Sealed() = false after Seal")
	}
	if _, err := b.Declare(spec("b", 1)); !errors.Is(err, energy.ErrConfig) {
		t.Errorf("Declare after seal err = %v, want ErrConfig", err)
	}
	if _, err := b.Seal(); !errors.Is(err, energy.ErrConfig) {
		t.Errorf("second Seal err = %v, want ErrConfig", err)
	}
	if err := b.SetClimate(energy.ZeroPrecipitation{}, 1); !errors.Is(err, energy.ErrConfig) {
		t.Errorf("SetClimate after seal err = %v, want ErrConfig", err)
	}
}

func TestSetClimateRejectsZeroFrequency(t *testing.T) {
	b := NewBuilder(0, 0, 0)
	if err := b.SetClimate(energy.ConstantPrecipitation{C: 1}, 0); !errors.Is(err, energy.ErrConfig) {
		t.Errorf("err = %v, want ErrConfig", err)
	}
	if err := b.SetClimate(nil, 1); !errors.Is(err, energy.ErrConfig) {
		t.Errorf("nil function err = %v, want ErrConfig", err)
	}
}

func TestDeclareCopiesInput(t *testing.T) {
	b := NewBuilder(0, 2, 3)
	s := spec("a", 1)
	s.Regeneration = energy.CustomRegeneration{Values: []float64{4, 5}}
	custom := s.Regeneration.(energy.CustomRegeneration)
	if _, err := b.Declare(s); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	s.Scent[0] = 99
	s.RequiredItemCounts[0] = 7
	s.Interactions[0] = energy.MooreInteraction{}
	custom.Values[0] = 100

	reg, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	typ := reg.Type(0)
	if typ.Scent()[0] != 1 {
		t.Errorf("scent mutated through caller slice")
	}
	if typ.RequiredItemCounts()[0] != 0 {
		t.Errorf("required counts mutated through caller slice")
	}
	if typ.Interaction(0).Tag() != energy.InteractionZero {
		t.Errorf("interaction replaced through caller slice")
	}
	if got := reg.Regeneration(0, energy.Pos(0, 0), 0); got != 4 {
		t.Errorf("regeneration table mutated through caller slice: %v", got)
	}

	typ.Scent()[0] = 50
	if typ.Scent()[0] != 1 {
		t.Errorf("accessor exposed internal slice")
	}
}

func TestDefaultRegenerationPerDescriptor(t *testing.T) {
	b := NewBuilder(0, 2, 3)
	for _, name := range []string{"a", "b"} {
		if _, err := b.Declare(spec(name, 2)); err != nil {
			t.Fatalf("Declare: %v", err)
		}
	}
	reg, err := b.Seal()
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	for i := 0; i < reg.Len(); i++ {
		fn := reg.Type(i).Regeneration()
		if fn.Tag() != energy.RegenerationZero {
			t.Errorf("type %d regeneration = %v, want ZERO", i, fn.Tag())
		}
		if !reg.IsTimeIndependent(i) {
			t.Errorf("type %d not time independent", i)
		}
	}
}

func TestRegistryEvaluation(t *testing.T) {
	reg := threeTypes(t)
	f := reg.Field()

	p := energy.Pos(12, -5)
	want := energy.RadialHashIntensity{C: 1.5, K: 2, S: 10, D: 0.5}.Evaluate(f, p)
	if got := reg.Intensity(0, p); got != want {
		t.Errorf("Intensity(banana) = %v, want %v", got, want)
	}
	if got := reg.Intensity(1, p); got != -2 {
		t.Errorf("Intensity(tree) = %v, want -2", got)
	}

	// Directional: banana sees tree through CROSS, tree sees banana through
	// GAUSSIAN.
	a, b := energy.Pos(0, 0), energy.Pos(8, 0)
	if got := reg.Interaction(0, 1, a, b); got != 20 {
		t.Errorf("Interaction(banana, tree) = %v, want 20", got)
	}
	back := energy.GaussianInteraction{Sigma: 3, A: 1}.Evaluate(f, b, a)
	if got := reg.PairEnergy(0, 1, a, b); got != 20+back {
		t.Errorf("PairEnergy = %v, want %v", got, 20+back)
	}
	if reg.PairEnergy(0, 1, a, b) != reg.PairEnergy(1, 0, b, a) {
		t.Errorf("PairEnergy not symmetric")
	}

	if got := reg.Regeneration(2, p, 4); got != 2 {
		t.Errorf("Regeneration(lake, 4) = %v, want 2", got)
	}
	if got := reg.Climate().At(35); got != 80 {
		t.Errorf("Climate().At(35) = %v, want 80", got)
	}
	if got := reg.Precipitation(35, 1); got != 5 {
		t.Errorf("Precipitation(35, 1) = %v, want 5", got)
	}
}

func TestRegistryClassification(t *testing.T) {
	reg := threeTypes(t)
	tests := []struct {
		name                        string
		stationary, timeIndependent bool
		intensityStationary         bool
	}{
		{"banana", true, true, false},
		{"tree", true, true, true},
		{"lake", false, false, true},
	}
	for i, tt := range tests {
		if got := reg.IsStationary(i); got != tt.stationary {
			t.Errorf("IsStationary(%s) = %v, want %v", tt.name, got, tt.stationary)
		}
		if got := reg.IsIntensityStationary(i); got != tt.intensityStationary {
			t.Errorf("IsIntensityStationary(%s) = %v, want %v", tt.name, got, tt.intensityStationary)
		}
		if got := reg.IsTimeIndependent(i); got != tt.timeIndependent {
			t.Errorf("IsTimeIndependent(%s) = %v, want %v", tt.name, got, tt.timeIndependent)
		}
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	r1, r2 := threeTypes(t), threeTypes(t)
	for x := int64(-30); x <= 30; x += 3 {
		p := energy.Pos(x, 2*x)
		if r1.Intensity(0, p) != r2.Intensity(0, p) {
			t.Fatalf("intensity differs at %v", p)
		}
		if r1.Interaction(1, 1, p, energy.Pos(0, 0)) != r2.Interaction(1, 1, p, energy.Pos(0, 0)) {
			t.Fatalf("interaction differs at %v", p)
		}
	}
}

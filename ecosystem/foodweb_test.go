package ecosystem

import (
	"math"
	"testing"

	"github.com/pthm-cable/trophic/species"
)

func TestEnergyModifier(t *testing.T) {
	tests := []struct {
		level int
		want  float64
	}{
		{1, 1.0},
		{2, 0.1},
		{3, 0.01},
		{0, 1.0}, // clamped to level 1
	}
	for _, tt := range tests {
		if got := EnergyModifier(tt.level); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EnergyModifier(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestCascadeEffects(t *testing.T) {
	cat := species.NewCatalog()
	cat.Register(species.NewBuilder("wolf").TrophicLevel(3).Diet(species.Carnivore).Prey("rabbit", 0.8, 30).Build())
	cat.Register(species.NewBuilder("rabbit").TrophicLevel(2).Build())

	// Rabbit boom: wolves gain, rabbit's prey (none) unaffected.
	effects := CascadeEffects(cat, "rabbit", 10)
	if got := effects["wolf"]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("wolf effect = %v, want 1.0", got)
	}

	// Wolf boom: rabbits come under pressure.
	effects = CascadeEffects(cat, "wolf", 10)
	if got := effects["rabbit"]; got >= 0 {
		t.Errorf("rabbit effect = %v, want negative", got)
	}

	// Unregistered species cascades to nothing.
	if got := CascadeEffects(cat, "ghost", 10); len(got) != 0 {
		t.Errorf("ghost cascade = %v, want empty", got)
	}
}

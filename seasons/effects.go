package seasons

import (
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/species"
)

// Effects derives per-species modifiers from the clock. Stateless; one
// shared instance per world.
type Effects struct {
	clock *Clock
}

// NewEffects creates the modifier table for a clock.
func NewEffects(clock *Clock) *Effects {
	return &Effects{clock: clock}
}

// Clock returns the underlying season clock.
func (e *Effects) Clock() *Clock {
	return e.clock
}

// ActivityModifier scales how active a species is given the ambient
// temperature, falling off with distance from the species' optimal band.
func (e *Effects) ActivityModifier(def *species.Definition, ambientTemp float64) float64 {
	optimal := (def.Habitat.MinTemp + def.Habitat.MaxTemp) / 2
	dist := ambientTemp - optimal
	if dist < 0 {
		dist = -dist
	}
	return geom.Clamp(1-dist/40, 0.2, 1)
}

// HuntingSuccessModifier scales predator success per season. Lean seasons
// make prey weaker and hunts more decisive.
func (e *Effects) HuntingSuccessModifier(worldTime int64) float64 {
	switch e.clock.Season(worldTime) {
	case Spring:
		return 1.0
	case Summer:
		return 0.9
	case Autumn:
		return 1.1
	default:
		return 1.2
	}
}

// ForagingSuccessModifier scales vegetation availability per season.
func (e *Effects) ForagingSuccessModifier(worldTime int64) float64 {
	switch e.clock.Season(worldTime) {
	case Spring:
		return 1.2
	case Summer:
		return 1.0
	case Autumn:
		return 0.8
	default:
		return 0.3
	}
}

// MetabolismModifier scales hunger decay; colder seasons burn faster.
func (e *Effects) MetabolismModifier(worldTime int64) float64 {
	return 1 + (1-e.clock.Temperature(worldTime))*0.5
}

// BreedingModifier scales breeding eagerness per season.
func (e *Effects) BreedingModifier(worldTime int64) float64 {
	switch e.clock.Season(worldTime) {
	case Spring:
		return 1.5
	case Summer:
		return 1.0
	case Autumn:
		return 0.7
	default:
		return 0.2
	}
}

// DayLengthModifier scales diurnal activity windows per season.
func (e *Effects) DayLengthModifier(worldTime int64) float64 {
	switch e.clock.Season(worldTime) {
	case Spring:
		return 1.0
	case Summer:
		return 1.2
	case Autumn:
		return 0.9
	default:
		return 0.7
	}
}

// MigrationUrge combines a species' migration tendency with the seasonal
// pressure into a [0,1] urge.
func (e *Effects) MigrationUrge(def *species.Definition, worldTime int64) float64 {
	return def.Population.MigrationTendency * e.clock.MigrationPressure(worldTime)
}

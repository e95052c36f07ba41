package ecosystem

import (
	"math"

	"github.com/pthm-cable/trophic/seasons"
	"github.com/pthm-cable/trophic/species"
)

// TransferEfficiency is the fraction of energy passed up each trophic
// level (the ecological 10% rule).
const TransferEfficiency = 0.1

// EnergyModifier returns the energy available to a trophic level relative
// to primary production: efficiency^(level-1).
func EnergyModifier(trophicLevel int) float64 {
	if trophicLevel < 1 {
		trophicLevel = 1
	}
	return math.Pow(TransferEfficiency, float64(trophicLevel-1))
}

// CascadeEffects estimates the knock-on population pressure of a change in
// one species: predators gain or lose food in proportion to the transfer
// efficiency, prey feel the inverse of the predation pressure. Returns a
// map of species id to signed pressure; absent means unaffected.
func CascadeEffects(cat *species.Catalog, speciesID string, populationDelta float64) map[string]float64 {
	effects := make(map[string]float64)
	for predID := range cat.PredatorsOf(speciesID) {
		effects[predID] += populationDelta * TransferEfficiency
	}
	for preyID := range cat.PreyOf(speciesID) {
		effects[preyID] -= populationDelta * 0.5
	}
	return effects
}

// SeasonalProductionModifier scales primary production with the foraging
// season; vegetation-driven regions grow in spring and stall in winter.
func SeasonalProductionModifier(e *seasons.Effects, worldTime int64) float64 {
	return e.ForagingSuccessModifier(worldTime)
}

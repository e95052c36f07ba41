// Package species holds the species data model and catalog: diet, habitat,
// reproduction, social and population parameters, plus the derived
// predator/prey adjacency used by perception and breeding checks.
package species

import "github.com/pthm-cable/trophic/geom"

// PreyInfo describes one entry in a predator's prey table.
type PreyInfo struct {
	// Preference in [0,1]; higher means the predator favors this prey.
	Preference float64
	// NutritionalValue restored on a kill, divided by 100 before being
	// added to hunger.
	NutritionalValue float64
}

// Diet holds what a species eats and how often it may hunt.
type Diet struct {
	Type              DietType
	Prey              map[string]PreyInfo
	HuntCooldownTicks int
}

// Habitat holds where a species can live.
type Habitat struct {
	PreferredBiomes map[string]bool
	AvoidedBiomes   map[string]bool
	MinTemp         float64
	MaxTemp         float64
}

// tempFalloff is the temperature band outside tolerance over which
// suitability drops linearly to zero.
const tempFalloff = 20.0

// BiomeFactor scores a biome for this habitat: 1.0 preferred, 0.0 avoided,
// 0.3 when a preference list exists but does not match, 0.5 when the
// species has no biome preferences at all.
func (h Habitat) BiomeFactor(biome string) float64 {
	if h.AvoidedBiomes[biome] {
		return 0
	}
	if h.PreferredBiomes[biome] {
		return 1
	}
	if len(h.PreferredBiomes) > 0 {
		return 0.3
	}
	return 0.5
}

// TempFactor scores a temperature: 1.0 inside tolerance, linear falloff to
// zero over tempFalloff degrees outside it.
func (h Habitat) TempFactor(temp float64) float64 {
	if temp >= h.MinTemp && temp <= h.MaxTemp {
		return 1
	}
	var excess float64
	if temp < h.MinTemp {
		excess = h.MinTemp - temp
	} else {
		excess = temp - h.MaxTemp
	}
	return geom.Clamp(1-excess/tempFalloff, 0, 1)
}

// Suitability combines biome and temperature factors into a [0,1] score.
func (h Habitat) Suitability(biome string, temp float64) float64 {
	return h.BiomeFactor(biome) * h.TempFactor(temp)
}

// Reproduction holds breeding parameters.
type Reproduction struct {
	// SeasonStart and SeasonEnd are year-progress fractions in [0,1).
	// The window wraps across the year boundary when start > end.
	SeasonStart float64
	SeasonEnd   float64
	MinLitter   int
	MaxLitter   int
	// FoodThreshold is the minimum hunger level required to breed.
	FoodThreshold float64
	// GestationTicks and MaturityAgeTicks are surfaced to hosts that model
	// pregnancy and juveniles; the breed machine itself only consults the
	// season window and food threshold.
	GestationTicks   int
	MaturityAgeTicks int
}

// InSeason reports whether a year-progress value falls inside the breeding
// window, handling windows that wrap across the year boundary.
func (r Reproduction) InSeason(yearProgress float64) bool {
	if r.SeasonStart <= r.SeasonEnd {
		return yearProgress >= r.SeasonStart && yearProgress <= r.SeasonEnd
	}
	return yearProgress >= r.SeasonStart || yearProgress <= r.SeasonEnd
}

// Social holds pack and territory parameters.
type Social struct {
	IsPack          bool
	MinPackSize     int
	MaxPackSize     int
	TerritoryRadius float64
	Aggression      float64
}

// Population holds density and migration parameters.
type Population struct {
	BaseDensity             float64
	CarryingCapacityPerCell float64
	MigrationTendency       float64
}

// Definition is the immutable per-species record. Register copies it into
// the catalog; mutate only before registration.
type Definition struct {
	ID           string
	TrophicLevel int
	Diet         Diet
	Habitat      Habitat
	Reproduction Reproduction
	Social       Social
	Population   Population
	// FleeDistance is how far prey keep from this species when fleeing.
	// Zero means use the configured default.
	FleeDistance float64
}

// PreyValue returns the preference and nutritional value for a prey
// species, falling back to the given defaults when the prey is not in the
// table.
func (d *Definition) PreyValue(preyID string, defPref, defNutrition float64) (preference, nutrition float64) {
	if info, ok := d.Diet.Prey[preyID]; ok {
		return info.Preference, info.NutritionalValue
	}
	return defPref, defNutrition
}

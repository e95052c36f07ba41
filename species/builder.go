package species

// Builder assembles a Definition programmatically. Pure data; call Build to
// get the record, then Catalog.Register to install it.
type Builder struct {
	def Definition
}

// NewBuilder starts a builder for a species id.
func NewBuilder(id string) *Builder {
	return &Builder{def: Definition{
		ID:           id,
		TrophicLevel: 1,
		Diet:         Diet{Type: Herbivore, Prey: map[string]PreyInfo{}},
		Habitat: Habitat{
			PreferredBiomes: map[string]bool{},
			AvoidedBiomes:   map[string]bool{},
			MinTemp:         -1e9,
			MaxTemp:         1e9,
		},
		Reproduction: Reproduction{MinLitter: 1, MaxLitter: 1},
	}}
}

// TrophicLevel sets the food chain rank (1 = producer).
func (b *Builder) TrophicLevel(level int) *Builder {
	b.def.TrophicLevel = level
	return b
}

// Diet sets the diet type.
func (b *Builder) Diet(t DietType) *Builder {
	b.def.Diet.Type = t
	return b
}

// Prey adds an entry to the prey table.
func (b *Builder) Prey(id string, preference, nutritionalValue float64) *Builder {
	b.def.Diet.Prey[id] = PreyInfo{Preference: preference, NutritionalValue: nutritionalValue}
	return b
}

// HuntCooldown sets the post-kill cooldown in ticks.
func (b *Builder) HuntCooldown(ticks int) *Builder {
	b.def.Diet.HuntCooldownTicks = ticks
	return b
}

// PreferredBiomes adds biomes the species thrives in.
func (b *Builder) PreferredBiomes(biomes ...string) *Builder {
	for _, biome := range biomes {
		b.def.Habitat.PreferredBiomes[biome] = true
	}
	return b
}

// AvoidedBiomes adds biomes the species cannot live in.
func (b *Builder) AvoidedBiomes(biomes ...string) *Builder {
	for _, biome := range biomes {
		b.def.Habitat.AvoidedBiomes[biome] = true
	}
	return b
}

// TemperatureTolerance sets the comfortable temperature band.
func (b *Builder) TemperatureTolerance(min, max float64) *Builder {
	b.def.Habitat.MinTemp = min
	b.def.Habitat.MaxTemp = max
	return b
}

// BreedingSeason sets the year-progress breeding window.
func (b *Builder) BreedingSeason(start, end float64) *Builder {
	b.def.Reproduction.SeasonStart = start
	b.def.Reproduction.SeasonEnd = end
	return b
}

// LitterSize sets the litter size range.
func (b *Builder) LitterSize(min, max int) *Builder {
	b.def.Reproduction.MinLitter = min
	b.def.Reproduction.MaxLitter = max
	return b
}

// FoodThreshold sets the minimum hunger level required to breed.
func (b *Builder) FoodThreshold(t float64) *Builder {
	b.def.Reproduction.FoodThreshold = t
	return b
}

// Gestation sets gestation and maturity durations.
func (b *Builder) Gestation(gestationTicks, maturityAgeTicks int) *Builder {
	b.def.Reproduction.GestationTicks = gestationTicks
	b.def.Reproduction.MaturityAgeTicks = maturityAgeTicks
	return b
}

// PackAnimal marks the species as pack-forming with a size range.
func (b *Builder) PackAnimal(minSize, maxSize int) *Builder {
	b.def.Social.IsPack = true
	b.def.Social.MinPackSize = minSize
	b.def.Social.MaxPackSize = maxSize
	return b
}

// TerritoryRadius sets the claimed territory radius (0 = no territory).
func (b *Builder) TerritoryRadius(r float64) *Builder {
	b.def.Social.TerritoryRadius = r
	return b
}

// Aggression sets the aggression level in [0,1].
func (b *Builder) Aggression(a float64) *Builder {
	b.def.Social.Aggression = a
	return b
}

// PopulationDensity sets density and carrying capacity parameters.
func (b *Builder) PopulationDensity(baseDensity, capacityPerCell float64) *Builder {
	b.def.Population.BaseDensity = baseDensity
	b.def.Population.CarryingCapacityPerCell = capacityPerCell
	return b
}

// MigrationTendency sets the species' willingness to migrate in [0,1].
func (b *Builder) MigrationTendency(t float64) *Builder {
	b.def.Population.MigrationTendency = t
	return b
}

// FleeDistance sets how far prey keep from this species when fleeing
// (0 = configured default).
func (b *Builder) FleeDistance(d float64) *Builder {
	b.def.FleeDistance = d
	return b
}

// Build returns the assembled definition.
func (b *Builder) Build() Definition {
	return b.def
}

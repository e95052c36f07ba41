package species

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
)

//go:embed species.yaml
var defaultSpeciesYAML []byte

// recordFile is the on-disk shape of a species data file.
type recordFile struct {
	Species []record `yaml:"species"`
}

type record struct {
	Entity       string             `yaml:"entity"`
	TrophicLevel int                `yaml:"trophic_level"`
	Diet         dietRecord         `yaml:"diet"`
	Habitat      habitatRecord      `yaml:"habitat"`
	Reproduction reproductionRecord `yaml:"reproduction"`
	Social       socialRecord       `yaml:"social"`
	Population   populationRecord   `yaml:"population"`
	FleeDistance float64            `yaml:"flee_distance"`
}

type dietRecord struct {
	Type         string                `yaml:"type"`
	Prey         map[string]preyRecord `yaml:"prey"`
	HuntCooldown int                   `yaml:"hunt_cooldown"`
}

type preyRecord struct {
	Preference       float64 `yaml:"preference"`
	NutritionalValue float64 `yaml:"nutritional_value"`
}

type habitatRecord struct {
	PreferredBiomes []string   `yaml:"preferred_biomes"`
	Avoids          []string   `yaml:"avoids"`
	Temperature     tempRecord `yaml:"temperature_tolerance"`
}

type tempRecord struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type reproductionRecord struct {
	BreedingSeason   rangeRecord `yaml:"breeding_season"`
	LitterSize       intRange    `yaml:"litter_size"`
	GestationTicks   int         `yaml:"gestation_ticks"`
	MaturityAgeTicks int         `yaml:"maturity_age_ticks"`
	FoodThreshold    float64     `yaml:"food_threshold"`
}

type rangeRecord struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

type intRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type socialRecord struct {
	PackAnimal bool     `yaml:"pack_animal"`
	PackSize   intRange `yaml:"pack_size"`
	// A record that omits territory_radius gets the configured default;
	// an explicit 0 marks the species non-territorial.
	TerritoryRadius *float64 `yaml:"territory_radius"`
	Aggression      float64  `yaml:"aggression"`
}

type populationRecord struct {
	BaseDensity              float64 `yaml:"base_density"`
	CarryingCapacityPerChunk float64 `yaml:"carrying_capacity_per_chunk"`
	MigrationTendency        float64 `yaml:"migration_tendency"`
}

// LoadFile reads a species data file and registers every valid record into
// the catalog. Malformed records are skipped with a warning; the returned
// count is the number registered. A file-level parse failure is an error.
func LoadFile(cat *Catalog, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading species file: %w", err)
	}
	return LoadRecords(cat, data)
}

// LoadDefaults registers the embedded default species set.
func LoadDefaults(cat *Catalog) (int, error) {
	return LoadRecords(cat, defaultSpeciesYAML)
}

// LoadRecords parses YAML species records and registers the valid ones.
func LoadRecords(cat *Catalog, data []byte) (int, error) {
	var file recordFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return 0, fmt.Errorf("parsing species records: %w", err)
	}

	loaded := 0
	for i, rec := range file.Species {
		def, err := rec.toDefinition()
		if err != nil {
			slog.Warn("skipping invalid species record", "index", i, "entity", rec.Entity, "error", err)
			continue
		}
		cat.Register(def)
		loaded++
	}
	return loaded, nil
}

// toDefinition validates a record and converts it into a Definition,
// applying the documented defaulting rules.
func (r record) toDefinition() (Definition, error) {
	if r.Entity == "" {
		return Definition{}, fmt.Errorf("missing entity id")
	}
	if r.TrophicLevel < 1 {
		return Definition{}, fmt.Errorf("trophic_level must be >= 1, got %d", r.TrophicLevel)
	}
	dietType, err := ParseDietType(r.Diet.Type)
	if err != nil {
		return Definition{}, err
	}

	prey := make(map[string]PreyInfo, len(r.Diet.Prey))
	for id, p := range r.Diet.Prey {
		nutrition := p.NutritionalValue
		if nutrition <= 0 {
			nutrition = 50
		}
		prey[id] = PreyInfo{
			Preference:       geom.Clamp(p.Preference, 0, 1),
			NutritionalValue: nutrition,
		}
	}

	minLitter, maxLitter := r.Reproduction.LitterSize.Min, r.Reproduction.LitterSize.Max
	if minLitter < 1 {
		minLitter = 1
	}
	if maxLitter < minLitter {
		maxLitter = minLitter
	}

	territoryRadius := config.Cfg().Territory.DefaultRadius
	if r.Social.TerritoryRadius != nil {
		territoryRadius = *r.Social.TerritoryRadius
	}

	minPack, maxPack := r.Social.PackSize.Min, r.Social.PackSize.Max
	if r.Social.PackAnimal {
		if minPack < 2 {
			minPack = 2
		}
		if maxPack < minPack {
			maxPack = minPack
		}
	}

	preferred := make(map[string]bool, len(r.Habitat.PreferredBiomes))
	for _, b := range r.Habitat.PreferredBiomes {
		preferred[b] = true
	}
	avoided := make(map[string]bool, len(r.Habitat.Avoids))
	for _, b := range r.Habitat.Avoids {
		avoided[b] = true
	}
	minTemp, maxTemp := r.Habitat.Temperature.Min, r.Habitat.Temperature.Max
	if minTemp == 0 && maxTemp == 0 {
		// No tolerance declared: accept everything.
		minTemp, maxTemp = -1e9, 1e9
	}
	if minTemp > maxTemp {
		return Definition{}, fmt.Errorf("temperature_tolerance min %v > max %v", minTemp, maxTemp)
	}

	return Definition{
		ID:           r.Entity,
		TrophicLevel: r.TrophicLevel,
		Diet: Diet{
			Type:              dietType,
			Prey:              prey,
			HuntCooldownTicks: r.Diet.HuntCooldown,
		},
		Habitat: Habitat{
			PreferredBiomes: preferred,
			AvoidedBiomes:   avoided,
			MinTemp:         minTemp,
			MaxTemp:         maxTemp,
		},
		Reproduction: Reproduction{
			SeasonStart:      geom.Clamp(r.Reproduction.BreedingSeason.Start, 0, 1),
			SeasonEnd:        geom.Clamp(r.Reproduction.BreedingSeason.End, 0, 1),
			MinLitter:        minLitter,
			MaxLitter:        maxLitter,
			FoodThreshold:    geom.Clamp(r.Reproduction.FoodThreshold, 0, 1),
			GestationTicks:   r.Reproduction.GestationTicks,
			MaturityAgeTicks: r.Reproduction.MaturityAgeTicks,
		},
		Social: Social{
			IsPack:          r.Social.PackAnimal,
			MinPackSize:     minPack,
			MaxPackSize:     maxPack,
			TerritoryRadius: territoryRadius,
			Aggression:      geom.Clamp(r.Social.Aggression, 0, 1),
		},
		Population: Population{
			BaseDensity:             r.Population.BaseDensity,
			CarryingCapacityPerCell: r.Population.CarryingCapacityPerChunk,
			MigrationTendency:       geom.Clamp(r.Population.MigrationTendency, 0, 1),
		},
		FleeDistance: r.FleeDistance,
	}, nil
}

// Package migration plans long-range moves: deciding when a species
// should leave, which direction to bias, and which destination is
// habitable enough to accept.
package migration

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/seasons"
	"github.com/pthm-cable/trophic/species"
)

// Reason is why a migration is being attempted.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonSeasonal: the seasonal urge crossed its threshold.
	ReasonSeasonal
	// ReasonResource: local foraging has collapsed.
	ReasonResource
)

func (r Reason) String() string {
	switch r {
	case ReasonSeasonal:
		return "seasonal"
	case ReasonResource:
		return "resource"
	}
	return "none"
}

// Planner picks migration destinations. One per world.
type Planner struct {
	cat     *species.Catalog
	world   host.World
	effects *seasons.Effects
	rng     *rand.Rand
}

// NewPlanner creates a planner using the given random source.
func NewPlanner(cat *species.Catalog, world host.World, effects *seasons.Effects, rng *rand.Rand) *Planner {
	return &Planner{cat: cat, world: world, effects: effects, rng: rng}
}

// ReasonFor decides whether a species should migrate right now.
func (p *Planner) ReasonFor(def *species.Definition, now int64) Reason {
	cfg := config.Cfg().Migration
	if p.effects.MigrationUrge(def, now) > cfg.UrgeThreshold {
		return ReasonSeasonal
	}
	if def.Population.MigrationTendency > 0 && p.effects.ForagingSuccessModifier(now) < cfg.ForageThreshold {
		return ReasonResource
	}
	return ReasonNone
}

// biasDirection returns the unit direction candidates are sampled around.
// Seasonal migrations head south (positive Z) in autumn and winter and
// north in spring and summer; resource migrations pick a random heading.
func (p *Planner) biasDirection(reason Reason, now int64) geom.Vec3 {
	if reason == ReasonResource {
		return geom.Vec3{Z: 1}.RotateY(p.rng.Float64() * 2 * math.Pi)
	}
	switch p.effects.Clock().Season(now) {
	case seasons.Autumn, seasons.Winter:
		return geom.Vec3{Z: 1}
	default:
		return geom.Vec3{Z: -1}
	}
}

// PlanDestination samples candidate destinations around the bias
// direction with angular jitter, snaps each to ground level and scores
// habitat suitability, accepting the first candidate above threshold.
// ok is false when no attempt qualifies; the caller retries later.
func (p *Planner) PlanDestination(agent host.Agent, reason Reason) (geom.Vec3, bool) {
	cfg := config.Cfg().Migration
	def := p.cat.Get(agent.SpeciesID())
	if def == nil || reason == ReasonNone {
		return geom.Vec3{}, false
	}

	bias := p.biasDirection(reason, p.world.Time())
	origin := agent.Position()

	for i := 0; i < cfg.Attempts; i++ {
		dist := cfg.MinDistance + p.rng.Float64()*cfg.DistanceSpread
		jitter := (p.rng.Float64()*2 - 1) * cfg.AngleJitter
		dir := bias.RotateY(jitter)
		candidate := origin.Add(dir.Scale(dist))

		ground, ok := p.world.GroundLevel(candidate.X, candidate.Z)
		if !ok {
			continue
		}
		candidate.Y = ground

		biome, temp := p.world.BiomeAt(candidate)
		if def.Habitat.Suitability(biome, temp) >= cfg.SuitabilityThreshold {
			return candidate, true
		}
	}
	return geom.Vec3{}, false
}

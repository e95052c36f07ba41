// Package perception provides the stateless queries behaviors use to find
// prey and assess threats: scored target selection and predator awareness.
package perception

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/species"
)

// Perception answers read-only queries over nearby agents. One instance
// per simulated world.
type Perception struct {
	cat   *species.Catalog
	world host.World
}

// New creates a perception layer over a catalog and host world.
func New(cat *species.Catalog, world host.World) *Perception {
	return &Perception{cat: cat, world: world}
}

// ScorePrey scores a candidate for a predator: distance squared discounted
// by preference. Lower is better. Preference defaults for prey outside the
// predator's table; callers must filter with IsValidPrey first.
func (p *Perception) ScorePrey(predator, prey host.Agent) float64 {
	cfg := config.Cfg()
	pref := cfg.Hunt.DefaultPreyPreference
	if def := p.cat.Get(predator.SpeciesID()); def != nil {
		if info, ok := def.Diet.Prey[prey.SpeciesID()]; ok {
			pref = info.Preference
		}
	}
	distSq := predator.Position().DistSq(prey.Position())
	return distSq * (1 - pref*cfg.Perception.PreferenceScoreWeight)
}

// IsValidPrey reports whether a candidate is huntable by the predator:
// alive, not itself, adult, in the predator's prey set, and visible.
func (p *Perception) IsValidPrey(predator, candidate host.Agent) bool {
	if !candidate.Alive() || candidate.ID() == predator.ID() {
		return false
	}
	if !candidate.Adult() {
		return false
	}
	def := p.cat.Get(predator.SpeciesID())
	if def == nil || !def.Diet.Type.CanHunt() {
		return false
	}
	if !p.cat.IsPrey(predator.SpeciesID(), candidate.SpeciesID()) {
		return false
	}
	return p.world.LineOfSight(predator.Position(), candidate.Position())
}

// FindBestPrey returns the minimum-score valid prey within radius, or nil
// if none. adjust, when non-nil, rescores candidates (used by the hunt
// machine's directional commitment).
func (p *Perception) FindBestPrey(predator host.Agent, radius float64, adjust func(candidate host.Agent, score float64) float64) host.Agent {
	var best host.Agent
	bestScore := 0.0
	for _, candidate := range p.world.AgentsWithin(predator.Position(), radius) {
		if !p.IsValidPrey(predator, candidate) {
			continue
		}
		score := p.ScorePrey(predator, candidate)
		if adjust != nil {
			score = adjust(candidate, score)
		}
		if best == nil || score < bestScore {
			best = candidate
			bestScore = score
		}
	}
	return best
}

// FindNearestPredator returns the closest live predator of the agent's
// species that currently has the agent in its line of sight, or nil.
// Line of sight is what promotes "nearby" to "threat".
func (p *Perception) FindNearestPredator(agent host.Agent, radius float64) host.Agent {
	predators := p.cat.PredatorsOf(agent.SpeciesID())
	if len(predators) == 0 {
		return nil
	}

	var nearest host.Agent
	nearestDistSq := 0.0
	for _, candidate := range p.world.AgentsWithin(agent.Position(), radius) {
		if !candidate.Alive() || !predators[candidate.SpeciesID()] {
			continue
		}
		if !p.world.LineOfSight(candidate.Position(), agent.Position()) {
			continue
		}
		distSq := agent.Position().DistSq(candidate.Position())
		if nearest == nil || distSq < nearestDistSq {
			nearest = candidate
			nearestDistSq = distSq
		}
	}
	return nearest
}

// ShouldBeAlert reports whether predators are within radius without yet
// being a visible threat. Hosts use this for alert postures.
func (p *Perception) ShouldBeAlert(agent host.Agent, radius float64) bool {
	predators := p.cat.PredatorsOf(agent.SpeciesID())
	if len(predators) == 0 {
		return false
	}
	for _, candidate := range p.world.AgentsWithin(agent.Position(), radius) {
		if candidate.Alive() && predators[candidate.SpeciesID()] {
			return true
		}
	}
	return false
}

// ThreatLevel rates a predator's danger to an agent in [0,1]: the product
// of inverse normalized distance, visibility and approach factors.
func (p *Perception) ThreatLevel(agent, predator host.Agent, radius float64) float64 {
	cfg := config.Cfg()

	dist := agent.Position().Dist(predator.Position())
	distFactor := geom.Clamp(1-dist/radius, 0, 1)

	visibility := cfg.Perception.ThreatBaseVisibility
	if p.world.LineOfSight(predator.Position(), agent.Position()) {
		visibility = 1
	}

	approach := cfg.Perception.ThreatBaseApproach
	toAgent := agent.Position().Sub(predator.Position())
	if predator.Velocity().Dot(toAgent) > 0 {
		approach = 1
	}

	return distFactor * visibility * approach
}

// FleeDistance returns how far prey keep from a predator species, falling
// back to the configured default for unregistered or unspecified species.
func (p *Perception) FleeDistance(predatorSpeciesID string) float64 {
	if def := p.cat.Get(predatorSpeciesID); def != nil && def.FleeDistance > 0 {
		return def.FleeDistance
	}
	return config.Cfg().Flee.DefaultFleeDistance
}

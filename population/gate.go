// Package population aggregates region counters into spawn-admission
// decisions and global population queries.
package population

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/ecosystem"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/species"
)

// Gate owns the spawn-admission decision for one world. Natural spawns
// ask CanSpawn before adding an agent; the host's own spawn machinery
// multiplies its probabilities by SpawnWeightModifier.
type Gate struct {
	cat     *species.Catalog
	regions *ecosystem.Tracker
	world   host.World

	lastScanTick int64
	scanned      bool
	counts       map[string]int
}

// NewGate creates a gate over the given catalog and region tracker.
func NewGate(cat *species.Catalog, regions *ecosystem.Tracker, world host.World) *Gate {
	return &Gate{
		cat:     cat,
		regions: regions,
		world:   world,
		counts:  make(map[string]int),
	}
}

// ShouldScan reports whether the periodic census is due.
func (g *Gate) ShouldScan(now int64) bool {
	return !g.scanned || now-g.lastScanTick >= int64(config.Cfg().Population.ScanInterval)
}

// Scan counts live agents by species within the configured radius of the
// given center. The census backs Count until the next scan.
func (g *Gate) Scan(center geom.Vec3, now int64) {
	counts := make(map[string]int)
	for _, a := range g.world.AgentsWithin(center, config.Cfg().Population.ScanRadius) {
		if a.Alive() {
			counts[a.SpeciesID()]++
		}
	}
	g.counts = counts
	g.lastScanTick = now
	g.scanned = true
}

// Count returns the census count for a species from the last scan.
func (g *Gate) Count(speciesID string) int {
	return g.counts[speciesID]
}

// Counts returns a copy of the full census.
func (g *Gate) Counts() map[string]int {
	out := make(map[string]int, len(g.counts))
	for id, n := range g.counts {
		out[id] = n
	}
	return out
}

// capacity returns the effective regional carrying capacity for a species
// at a position: its per-cell capacity scaled by local conditions.
func (g *Gate) capacity(speciesID string, pos geom.Vec3) float64 {
	perCell := config.Cfg().Population.CapacityPerCell
	if def := g.cat.Get(speciesID); def != nil && def.Population.CarryingCapacityPerCell > 0 {
		perCell = def.Population.CarryingCapacityPerCell
	}
	return perCell * g.regions.CapacityModifier(pos)
}

// CanSpawn reports whether a region has room for one more agent of the
// species.
func (g *Gate) CanSpawn(speciesID string, pos geom.Vec3) bool {
	return float64(g.regions.Population(pos, speciesID)) < g.capacity(speciesID, pos)
}

// SpawnWeightModifier scales the host's natural spawn probability: 1 in an
// empty region, falling linearly to 0 at carrying capacity.
func (g *Gate) SpawnWeightModifier(speciesID string, pos geom.Vec3) float64 {
	capacity := g.capacity(speciesID, pos)
	if capacity <= 0 {
		return 0
	}
	n := float64(g.regions.Population(pos, speciesID))
	return geom.Clamp(1-n/capacity, 0, 1)
}

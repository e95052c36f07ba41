// Package ecosystem tracks per-region population, vegetation and hunting
// pressure, and provides the food-web energy helpers.
package ecosystem

import (
	"math"

	"github.com/pthm-cable/trophic/geom"
)

// Cell identifies one fixed-size spatial region.
type Cell struct {
	X, Z int
}

// CellAt maps a world position to its region cell.
func CellAt(pos geom.Vec3, cellSize float64) Cell {
	return Cell{
		X: int(math.Floor(pos.X / cellSize)),
		Z: int(math.Floor(pos.Z / cellSize)),
	}
}

// Region holds the mutable counters for one cell. Created lazily on first
// access and never destroyed; the set is bounded by active world regions.
type Region struct {
	Cell Cell
	// Populations counts live agents per species. Entries are removed
	// when they reach zero.
	Populations map[string]int
	// Vegetation is the local plant cover in [0,1], regenerating toward 1.
	Vegetation float64
	// HuntingPressure rises with kills and decays toward 0.
	HuntingPressure float64

	lastUpdate int64
}

// CapacityModifier scales carrying capacity by local conditions. Floors
// at zero: pressure above 2 cannot make capacity negative.
func (r *Region) CapacityModifier() float64 {
	return math.Max(0, r.Vegetation*(1-r.HuntingPressure*0.5))
}

// Population returns the live count for a species in this region.
func (r *Region) Population(speciesID string) int {
	return r.Populations[speciesID]
}

// TotalPopulation returns the live count across all species.
func (r *Region) TotalPopulation() int {
	total := 0
	for _, n := range r.Populations {
		total += n
	}
	return total
}

func (r *Region) add(speciesID string, delta int) {
	n := r.Populations[speciesID] + delta
	if n <= 0 {
		delete(r.Populations, speciesID)
		return
	}
	r.Populations[speciesID] = n
}

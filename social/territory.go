// Package social owns pack membership and territory claims, the two
// shared mutable structures behaviors coordinate through.
package social

import (
	"math"

	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
)

// Territory is a claimed circular zone owned by one agent.
type Territory struct {
	Owner     host.AgentID
	SpeciesID string
	Center    geom.Vec3
	Radius    float64
	ClaimTick int64
}

// Contains reports whether a position falls inside the territory.
func (t *Territory) Contains(pos geom.Vec3) bool {
	return pos.HorizDistSq(t.Center) <= t.Radius*t.Radius
}

// BoundaryDistance returns the signed horizontal distance from pos to the
// territory edge; negative means inside.
func (t *Territory) BoundaryDistance(pos geom.Vec3) float64 {
	return math.Sqrt(pos.HorizDistSq(t.Center)) - t.Radius
}

type cell struct {
	x, z int
}

// territoryIndex buckets territories by fixed-size cells overlapping each
// territory's bounding circle, giving O(1) point containment lookups.
type territoryIndex struct {
	cellSize float64
	buckets  map[cell][]*Territory
	byOwner  map[host.AgentID]*Territory
}

func newTerritoryIndex(cellSize float64) *territoryIndex {
	return &territoryIndex{
		cellSize: cellSize,
		buckets:  make(map[cell][]*Territory),
		byOwner:  make(map[host.AgentID]*Territory),
	}
}

func (idx *territoryIndex) cellsFor(t *Territory) []cell {
	minX := int(math.Floor((t.Center.X - t.Radius) / idx.cellSize))
	maxX := int(math.Floor((t.Center.X + t.Radius) / idx.cellSize))
	minZ := int(math.Floor((t.Center.Z - t.Radius) / idx.cellSize))
	maxZ := int(math.Floor((t.Center.Z + t.Radius) / idx.cellSize))

	cells := make([]cell, 0, (maxX-minX+1)*(maxZ-minZ+1))
	for x := minX; x <= maxX; x++ {
		for z := minZ; z <= maxZ; z++ {
			cells = append(cells, cell{x, z})
		}
	}
	return cells
}

func (idx *territoryIndex) insert(t *Territory) {
	idx.remove(t.Owner)
	idx.byOwner[t.Owner] = t
	for _, c := range idx.cellsFor(t) {
		idx.buckets[c] = append(idx.buckets[c], t)
	}
}

func (idx *territoryIndex) remove(owner host.AgentID) {
	t, ok := idx.byOwner[owner]
	if !ok {
		return
	}
	delete(idx.byOwner, owner)
	for _, c := range idx.cellsFor(t) {
		bucket := idx.buckets[c]
		for i, other := range bucket {
			if other == t {
				bucket[i] = bucket[len(bucket)-1]
				bucket = bucket[:len(bucket)-1]
				break
			}
		}
		if len(bucket) == 0 {
			delete(idx.buckets, c)
		} else {
			idx.buckets[c] = bucket
		}
	}
}

func (idx *territoryIndex) at(pos geom.Vec3) *Territory {
	c := cell{
		x: int(math.Floor(pos.X / idx.cellSize)),
		z: int(math.Floor(pos.Z / idx.cellSize)),
	}
	for _, t := range idx.buckets[c] {
		if t.Contains(pos) {
			return t
		}
	}
	return nil
}

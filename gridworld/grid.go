package gridworld

import (
	"github.com/mlange-42/ark/ecs"
)

// SpatialGrid provides O(1) neighbor lookups using a cell-based grid over
// a bounded square world. Rebuilt every step; out-of-bounds positions
// clamp into the edge cells.
type SpatialGrid struct {
	cellSize float64
	cols     int
	size     float64
	cells    [][]ecs.Entity
}

// MaxQueryResults caps the number of entities returned by spatial
// queries, bounding the work a density spike can cause.
const MaxQueryResults = 256

// NewSpatialGrid creates a grid covering a size-by-size world.
func NewSpatialGrid(size, cellSize float64) *SpatialGrid {
	cols := int(size/cellSize) + 1
	cells := make([][]ecs.Entity, cols*cols)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}
	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		size:     size,
		cells:    cells,
	}
}

// Clear removes all entities from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the grid at the given position.
func (g *SpatialGrid) Insert(e ecs.Entity, x, z float64) {
	g.cells[g.cellIndex(x, z)] = append(g.cells[g.cellIndex(x, z)], e)
}

// QueryRadiusInto appends entities within radius of (x,z) to dst, up to
// MaxQueryResults. Reuse dst across calls to avoid allocations. The
// radius test is horizontal; callers filter further.
func (g *SpatialGrid) QueryRadiusInto(dst []ecs.Entity, x, z, radius float64, posMap *ecs.Map1[Position]) []ecs.Entity {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol := g.clampCol(int(x / g.cellSize))
	centerRow := g.clampCol(int(z / g.cellSize))
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.cols {
				continue
			}
			for _, e := range g.cells[row*g.cols+col] {
				pos := posMap.Get(e)
				if pos == nil {
					continue
				}
				dx := pos.X - x
				dz := pos.Z - z
				if dx*dx+dz*dz <= radiusSq {
					dst = append(dst, e)
					if len(dst) >= MaxQueryResults {
						return dst
					}
				}
			}
		}
	}
	return dst
}

func (g *SpatialGrid) cellIndex(x, z float64) int {
	return g.clampCol(int(z/g.cellSize))*g.cols + g.clampCol(int(x/g.cellSize))
}

func (g *SpatialGrid) clampCol(c int) int {
	if c < 0 {
		return 0
	}
	if c >= g.cols {
		return g.cols - 1
	}
	return c
}

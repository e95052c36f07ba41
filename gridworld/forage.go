package gridworld

import (
	"math"

	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
)

// forageCellSize is the edge length of one grass cell in world units.
const forageCellSize = 8.0

const (
	grassRegrowPerTick = 0.0005
	grassEatable       = 0.6 // preferred food threshold
	shrubEatable       = 0.2 // fallback food threshold
)

type forageKey struct {
	X, Z int
}

type forageCell struct {
	value    float64
	barren   bool
	lastTick int64
}

// ForageField is the edible ground cover: a lazy grid of grass cells
// seeded from the biome and regrowing linearly. Fallback food (shrubs)
// is the low remnant of a grazed cell; consuming it leaves the cell
// barren for good.
type ForageField struct {
	terrain *Terrain
	cells   map[forageKey]*forageCell
}

// NewForageField creates an empty field over the given terrain.
func NewForageField(terrain *Terrain) *ForageField {
	return &ForageField{
		terrain: terrain,
		cells:   make(map[forageKey]*forageCell),
	}
}

func (f *ForageField) cell(key forageKey, now int64) *forageCell {
	c, ok := f.cells[key]
	if !ok {
		x, z := f.cellCenter(key)
		c = &forageCell{value: f.baseCover(x, z), lastTick: now}
		f.cells[key] = c
		return c
	}
	if !c.barren && now > c.lastTick {
		c.value = math.Min(1, c.value+grassRegrowPerTick*float64(now-c.lastTick))
	}
	c.lastTick = now
	return c
}

// baseCover is the initial grass value by biome.
func (f *ForageField) baseCover(x, z float64) float64 {
	switch f.terrain.Biome(x, z) {
	case "plains", "forest":
		return 1
	case "swamp":
		return 0.7
	case "mountain":
		return 0.3
	case "desert":
		return 0.1
	}
	return 0
}

func (f *ForageField) cellCenter(key forageKey) (x, z float64) {
	return (float64(key.X) + 0.5) * forageCellSize, (float64(key.Z) + 0.5) * forageCellSize
}

func keyAt(x, z float64) forageKey {
	return forageKey{
		X: int(math.Floor(x / forageCellSize)),
		Z: int(math.Floor(z / forageCellSize)),
	}
}

// Find searches the box around center for edible cover. Preferred food
// first; a grazed-down cell still counts as fallback food.
func (f *ForageField) Find(center geom.Vec3, radius float64, now int64) (host.ForageTarget, bool) {
	cellRadius := int(radius/forageCellSize) + 1
	origin := keyAt(center.X, center.Z)

	var fallback host.ForageTarget
	haveFallback := false

	for dz := -cellRadius; dz <= cellRadius; dz++ {
		for dx := -cellRadius; dx <= cellRadius; dx++ {
			key := forageKey{X: origin.X + dx, Z: origin.Z + dz}
			x, z := f.cellCenter(key)
			if math.Abs(x-center.X) > radius || math.Abs(z-center.Z) > radius {
				continue
			}
			if f.terrain.IsWater(x, z) {
				continue
			}
			c := f.cell(key, now)
			if c.barren {
				continue
			}
			pos := geom.Vec3{X: x, Y: f.terrain.Elevation(x, z), Z: z}
			if c.value >= grassEatable {
				return host.ForageTarget{Pos: pos}, true
			}
			if !haveFallback && c.value >= shrubEatable {
				fallback = host.ForageTarget{Pos: pos, Fallback: true}
				haveFallback = true
			}
		}
	}
	return fallback, haveFallback
}

// Consume eats the cover at the target cell. Preferred food is grazed to
// zero and regrows; fallback food leaves the cell barren.
func (f *ForageField) Consume(target host.ForageTarget, now int64) bool {
	c := f.cell(keyAt(target.Pos.X, target.Pos.Z), now)
	if c.barren || c.value < shrubEatable {
		return false
	}
	c.value = 0
	if target.Fallback {
		c.barren = true
	}
	return true
}

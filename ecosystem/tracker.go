package ecosystem

import (
	"math"

	"github.com/pthm-cable/trophic/geom"
)

// TrackerConfig holds region upkeep rates.
type TrackerConfig struct {
	CellSize           float64
	UpdateInterval     int
	VegetationRegen    float64 // per tick toward 1.0
	PressureDecay      float64 // per tick toward 0
	KillPressure       float64
	GrazeVegetationHit float64
}

// Tracker owns all regions of one simulated world.
type Tracker struct {
	cfg     TrackerConfig
	regions map[Cell]*Region
}

// NewTracker creates an empty tracker.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{
		cfg:     cfg,
		regions: make(map[Cell]*Region),
	}
}

// RegionAt returns the region containing pos, creating it on first access.
func (t *Tracker) RegionAt(pos geom.Vec3) *Region {
	return t.region(CellAt(pos, t.cfg.CellSize))
}

func (t *Tracker) region(c Cell) *Region {
	r, ok := t.regions[c]
	if !ok {
		r = &Region{
			Cell:        c,
			Populations: make(map[string]int),
			Vegetation:  1.0,
		}
		t.regions[c] = r
	}
	return r
}

// Update runs the periodic upkeep pass: vegetation regenerates linearly
// toward 1.0 and hunting pressure decays toward 0, both scaled by ticks
// elapsed since each region's last update. Call once per UpdateInterval.
func (t *Tracker) Update(now int64) {
	for _, r := range t.regions {
		elapsed := float64(now - r.lastUpdate)
		if elapsed <= 0 {
			r.lastUpdate = now
			continue
		}
		r.Vegetation = geom.Clamp(r.Vegetation+t.cfg.VegetationRegen*elapsed, 0, 1)
		r.HuntingPressure = math.Max(0, r.HuntingPressure-t.cfg.PressureDecay*elapsed)
		r.lastUpdate = now
	}
}

// RecordKill notes a predation event: the prey's regional count drops and
// hunting pressure rises. Pressure has no upper bound; heavily hunted
// regions just take proportionally longer to recover.
func (t *Tracker) RecordKill(pos geom.Vec3, preySpeciesID string) {
	r := t.RegionAt(pos)
	r.add(preySpeciesID, -1)
	r.HuntingPressure += t.cfg.KillPressure
}

// RecordGrazing notes a foraging event, nudging vegetation down.
func (t *Tracker) RecordGrazing(pos geom.Vec3) {
	r := t.RegionAt(pos)
	r.Vegetation = geom.Clamp(r.Vegetation-t.cfg.GrazeVegetationHit, 0, 1)
}

// RecordSpawn increments a species' regional count.
func (t *Tracker) RecordSpawn(pos geom.Vec3, speciesID string) {
	t.RegionAt(pos).add(speciesID, 1)
}

// RecordDeath decrements a species' regional count.
func (t *Tracker) RecordDeath(pos geom.Vec3, speciesID string) {
	t.RegionAt(pos).add(speciesID, -1)
}

// CapacityModifier returns the carrying-capacity scale at a position.
func (t *Tracker) CapacityModifier(pos geom.Vec3) float64 {
	return t.RegionAt(pos).CapacityModifier()
}

// Population returns the regional count for a species at a position.
func (t *Tracker) Population(pos geom.Vec3, speciesID string) int {
	return t.RegionAt(pos).Population(speciesID)
}

// GlobalPopulation sums a species' count over all regions.
func (t *Tracker) GlobalPopulation(speciesID string) int {
	total := 0
	for _, r := range t.regions {
		total += r.Population(speciesID)
	}
	return total
}

// AverageConditions returns the mean vegetation and hunting pressure over
// all tracked regions. Both are 1 and 0 respectively when no region has
// been touched yet.
func (t *Tracker) AverageConditions() (vegetation, pressure float64) {
	if len(t.regions) == 0 {
		return 1, 0
	}
	for _, r := range t.regions {
		vegetation += r.Vegetation
		pressure += r.HuntingPressure
	}
	n := float64(len(t.regions))
	return vegetation / n, pressure / n
}

// Regions returns the number of regions created so far.
func (t *Tracker) Regions() int {
	return len(t.regions)
}

// CellSize returns the configured region edge length.
func (t *Tracker) CellSize() float64 {
	return t.cfg.CellSize
}

// UpdateInterval returns the configured upkeep interval in ticks.
func (t *Tracker) UpdateInterval() int {
	return t.cfg.UpdateInterval
}

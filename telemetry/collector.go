package telemetry

// Collector accumulates behavior events within time windows and produces
// WindowStats. It satisfies the behavior package's Events interface; all
// methods run on the tick thread.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	kills             int
	grazes            int
	huntStarts        int
	huntAbandons      int
	breeds            int
	litterTotal       int
	migrationStarts   int
	migrationArrivals int
	starvations       int
}

// NewCollector creates a collector with the given window length in ticks.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

func (c *Collector) RecordKill()             { c.kills++ }
func (c *Collector) RecordGraze()            { c.grazes++ }
func (c *Collector) RecordHuntStart()        { c.huntStarts++ }
func (c *Collector) RecordHuntAbandon()      { c.huntAbandons++ }
func (c *Collector) RecordMigrationStart()   { c.migrationStarts++ }
func (c *Collector) RecordMigrationArrival() { c.migrationArrivals++ }
func (c *Collector) RecordStarvation()       { c.starvations++ }

func (c *Collector) RecordBreed(litterSize int) {
	c.breeds++
	c.litterTotal += litterSize
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

// Sample carries the world state measured at the window boundary; the
// collector only counts events and cannot observe it directly.
type Sample struct {
	Agents       int
	Season       string
	YearProgress float64
	Hungers      []float64

	VegetationMean      float64
	HuntingPressureMean float64
}

// Flush produces a WindowStats for the closing window and resets the
// counters for the next one.
func (c *Collector) Flush(currentTick int64, sample Sample) WindowStats {
	var successRate float64
	if c.huntStarts > 0 {
		successRate = float64(c.kills) / float64(c.huntStarts)
	}

	mean, std, p10, p50, p90 := ComputeHungerStats(sample.Hungers)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Season:          sample.Season,
		YearProgress:    sample.YearProgress,

		Agents: sample.Agents,

		Kills:             c.kills,
		Grazes:            c.grazes,
		HuntStarts:        c.huntStarts,
		HuntAbandons:      c.huntAbandons,
		HuntSuccessRate:   successRate,
		Breeds:            c.breeds,
		LitterTotal:       c.litterTotal,
		MigrationStarts:   c.migrationStarts,
		MigrationArrivals: c.migrationArrivals,
		Starvations:       c.starvations,

		HungerMean: mean,
		HungerStd:  std,
		HungerP10:  p10,
		HungerP50:  p50,
		HungerP90:  p90,

		VegetationMean:      sample.VegetationMean,
		HuntingPressureMean: sample.HuntingPressureMean,
	}

	c.windowStartTick = currentTick
	c.kills = 0
	c.grazes = 0
	c.huntStarts = 0
	c.huntAbandons = 0
	c.breeds = 0
	c.litterTotal = 0
	c.migrationStarts = 0
	c.migrationArrivals = 0
	c.starvations = 0

	return stats
}

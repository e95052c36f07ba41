// Package sim assembles the engine: one Simulation per hosted world owns
// the catalog, clocks, trackers and per-agent controllers, and drives them
// from the host's tick.
package sim

import (
	"log/slog"
	"math/rand"
	"sort"

	"github.com/pthm-cable/trophic/behavior"
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/ecosystem"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/migration"
	"github.com/pthm-cable/trophic/perception"
	"github.com/pthm-cable/trophic/population"
	"github.com/pthm-cable/trophic/seasons"
	"github.com/pthm-cable/trophic/social"
	"github.com/pthm-cable/trophic/species"
	"github.com/pthm-cable/trophic/telemetry"
)

// Options configures a Simulation.
type Options struct {
	Seed int64
	// Output receives CSV telemetry. Nil disables file output; window
	// stats still go to the log when configured.
	Output *telemetry.OutputManager
}

// Simulation is the engine context for one hosted world. All state is
// owned here rather than in package globals, so multiple worlds and tests
// run isolated instances. Single-threaded; every method runs on the
// host's tick thread.
type Simulation struct {
	world   host.World
	catalog *species.Catalog

	clock      *seasons.Clock
	effects    *seasons.Effects
	regions    *ecosystem.Tracker
	social     *social.Coordinator
	perception *perception.Perception
	planner    *migration.Planner
	gate       *population.Gate
	collector  *telemetry.Collector
	output     *telemetry.OutputManager
	rng        *rand.Rand

	ctx         *behavior.Context
	controllers map[host.AgentID]*behavior.Controller
	order       []host.AgentID
	tickOrder   []host.AgentID

	lastRegionUpdate int64
}

// New builds a Simulation over a host world and a species catalog, using
// the global configuration.
func New(world host.World, catalog *species.Catalog, opts Options) *Simulation {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(opts.Seed))

	clock := seasons.NewClock(cfg.Seasons.YearLengthTicks)
	effects := seasons.NewEffects(clock)
	regions := ecosystem.NewTracker(ecosystem.TrackerConfig{
		CellSize:           cfg.Regions.CellSize,
		UpdateInterval:     cfg.Regions.UpdateInterval,
		VegetationRegen:    cfg.Regions.VegetationRegen,
		PressureDecay:      cfg.Regions.PressureDecay,
		KillPressure:       cfg.Regions.KillPressure,
		GrazeVegetationHit: cfg.Regions.GrazeVegetationHit,
	})

	s := &Simulation{
		world:       world,
		catalog:     catalog,
		clock:       clock,
		effects:     effects,
		regions:     regions,
		social:      social.NewCoordinator(catalog, world, cfg.Territory.CellSize),
		perception:  perception.New(catalog, world),
		planner:     migration.NewPlanner(catalog, world, effects, rng),
		gate:        population.NewGate(catalog, regions, world),
		output:      opts.Output,
		rng:         rng,
		controllers: make(map[host.AgentID]*behavior.Controller),
	}

	var events behavior.Events = behavior.NopEvents{}
	if cfg.Telemetry.Enabled {
		s.collector = telemetry.NewCollector(int64(cfg.Telemetry.WindowTicks))
		events = s.collector
	}

	s.ctx = &behavior.Context{
		World:      world,
		Catalog:    catalog,
		Perception: s.perception,
		Social:     s.social,
		Regions:    regions,
		Seasons:    effects,
		Migration:  s.planner,
		Events:     events,
		RNG:        rng,
	}
	return s
}

// Catalog returns the species catalog.
func (s *Simulation) Catalog() *species.Catalog { return s.catalog }

// Clock returns the season clock.
func (s *Simulation) Clock() *seasons.Clock { return s.clock }

// Regions returns the ecosystem region tracker.
func (s *Simulation) Regions() *ecosystem.Tracker { return s.regions }

// Social returns the pack and territory coordinator.
func (s *Simulation) Social() *social.Coordinator { return s.social }

// Gate returns the population spawn gate.
func (s *Simulation) Gate() *population.Gate { return s.gate }

// Managed returns the number of agents under engine control.
func (s *Simulation) Managed() int { return len(s.controllers) }

// OnSpawn adopts a newly created agent: its ecological state is seeded, a
// controller is built for its species, and the region census is updated.
// The returned options tell the host how to attach the agent. Adopting an
// already managed agent is a no-op.
func (s *Simulation) OnSpawn(agent host.Agent) host.AttachOptions {
	cfg := config.Cfg()
	def := s.catalog.Get(agent.SpeciesID())
	opts := host.AttachOptions{
		SuppressNativeTargeting: cfg.Behavior.SuppressHostTargeting && def != nil && def.Diet.Type.CanHunt(),
	}
	if _, ok := s.controllers[agent.ID()]; ok {
		return opts
	}

	state := agent.State()
	state.Hunger = cfg.Hunger.InitialMin + s.rng.Float64()*cfg.Hunger.InitialSpread
	state.HomePos = agent.Position()
	state.HomeSet = true

	s.controllers[agent.ID()] = behavior.NewController(s.ctx, agent)
	s.order = append(s.order, agent.ID())
	s.regions.RecordSpawn(agent.Position(), agent.SpeciesID())

	if def == nil {
		slog.Warn("adopted agent of unregistered species", "species", agent.SpeciesID(), "agent", agent.ID())
	}
	return opts
}

// OnDeath handles an agent dying in place: census decrement and removal
// from engine control.
func (s *Simulation) OnDeath(agent host.Agent) {
	s.remove(agent.ID(), agent.SpeciesID(), agent.Position())
}

// OnEntityRemoved handles an agent leaving the world without dying
// (despawn, chunk unload). Same bookkeeping as death.
func (s *Simulation) OnEntityRemoved(agent host.Agent) {
	s.remove(agent.ID(), agent.SpeciesID(), agent.Position())
}

func (s *Simulation) remove(id host.AgentID, speciesID string, pos geom.Vec3) {
	if _, ok := s.controllers[id]; !ok {
		return
	}
	delete(s.controllers, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.regions.RecordDeath(pos, speciesID)
	s.social.OnEntityRemoved(id)
}

// CanSpawn is the host's natural-spawn admission check.
func (s *Simulation) CanSpawn(speciesID string, pos geom.Vec3) bool {
	return s.gate.CanSpawn(speciesID, pos)
}

// SpawnWeight scales the host's natural spawn probability by region
// saturation and season.
func (s *Simulation) SpawnWeight(speciesID string, pos geom.Vec3) float64 {
	return s.gate.SpawnWeightModifier(speciesID, pos) * s.clock.SpawnRateModifier(s.world.Time())
}

// Tick runs one engine step: region upkeep and the population census on
// their intervals, then every controller in stable ID order, then the
// telemetry window flush.
func (s *Simulation) Tick() {
	now := s.world.Time()

	if now-s.lastRegionUpdate >= int64(s.regions.UpdateInterval()) {
		s.regions.Update(now)
		s.lastRegionUpdate = now
	}
	if s.gate.ShouldScan(now) {
		s.gate.Scan(s.scanCenter(), now)
	}

	// A controller's update can remove agents later in the order: a fatal
	// attack runs the host's death hook synchronously. Iterate a snapshot
	// and skip ids whose controller is already gone.
	s.tickOrder = append(s.tickOrder[:0], s.order...)
	for _, id := range s.tickOrder {
		if c, ok := s.controllers[id]; ok {
			c.Update(s.ctx)
		}
	}

	if s.collector != nil && s.collector.ShouldFlush(now) {
		s.flushTelemetry(now)
	}
}

// scanCenter is the centroid of managed agents, or the origin when none
// can be located.
func (s *Simulation) scanCenter() geom.Vec3 {
	var sum geom.Vec3
	n := 0
	for _, id := range s.order {
		agent, ok := s.world.AgentByID(id)
		if !ok || !agent.Alive() {
			continue
		}
		sum = sum.Add(agent.Position())
		n++
	}
	if n == 0 {
		return geom.Vec3{}
	}
	return sum.Scale(1 / float64(n))
}

func (s *Simulation) flushTelemetry(now int64) {
	cfg := config.Cfg()

	hungers := make([]float64, 0, len(s.order))
	live := 0
	for _, id := range s.order {
		agent, ok := s.world.AgentByID(id)
		if !ok || !agent.Alive() {
			continue
		}
		hungers = append(hungers, agent.State().Hunger)
		live++
	}
	vegetation, pressure := s.regions.AverageConditions()

	stats := s.collector.Flush(now, telemetry.Sample{
		Agents:              live,
		Season:              s.clock.Season(now).String(),
		YearProgress:        s.clock.YearProgress(now),
		Hungers:             hungers,
		VegetationMean:      vegetation,
		HuntingPressureMean: pressure,
	})

	if cfg.Telemetry.LogWindows {
		stats.LogStats()
	}
	if err := s.output.WriteWindow(stats); err != nil {
		slog.Error("writing telemetry window", "err", err)
	}

	counts := s.gate.Counts()
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([]telemetry.PopulationRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, telemetry.PopulationRow{WindowEndTick: now, SpeciesID: id, Count: counts[id]})
	}
	if err := s.output.WritePopulations(rows); err != nil {
		slog.Error("writing population rows", "err", err)
	}
}

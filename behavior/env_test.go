package behavior

import (
	"math/rand"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/ecosystem"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/migration"
	"github.com/pthm-cable/trophic/perception"
	"github.com/pthm-cable/trophic/seasons"
	"github.com/pthm-cable/trophic/social"
	"github.com/pthm-cable/trophic/species"
)

func init() {
	if err := config.Init(""); err != nil {
		panic(err)
	}
}

type stubNav struct {
	agent      *stubAgent
	dest       geom.Vec3
	speed      float64
	moving     bool
	pathFailed bool
	moveCalls  int
}

func (n *stubNav) HasPathTo(geom.Vec3) bool { return !n.pathFailed }
func (n *stubNav) MoveTo(dest geom.Vec3, speed float64) bool {
	if n.pathFailed {
		return false
	}
	n.dest = dest
	n.speed = speed
	n.moving = true
	n.moveCalls++
	return true
}
func (n *stubNav) Following() bool { return n.moving }
func (n *stubNav) Stop()           { n.moving = false }

type stubAgent struct {
	id          host.AgentID
	species     string
	pos         geom.Vec3
	vel         geom.Vec3
	alive       bool
	adult       bool
	state       host.State
	nav         stubNav
	attackFatal bool
}

func (a *stubAgent) ID() host.AgentID          { return a.id }
func (a *stubAgent) SpeciesID() string         { return a.species }
func (a *stubAgent) Position() geom.Vec3       { return a.pos }
func (a *stubAgent) Velocity() geom.Vec3       { return a.vel }
func (a *stubAgent) Alive() bool               { return a.alive }
func (a *stubAgent) Adult() bool               { return a.adult }
func (a *stubAgent) State() *host.State        { return &a.state }
func (a *stubAgent) Navigator() host.Navigator { return &a.nav }

func (a *stubAgent) TryAttack(target host.Agent) bool {
	if !a.attackFatal {
		return false
	}
	if t, ok := target.(*stubAgent); ok {
		t.alive = false
	}
	return true
}

type spawnRequest struct {
	speciesID string
	near      geom.Vec3
	count     int
}

type stubWorld struct {
	agents     []*stubAgent
	time       int64
	losBlocked bool

	forage   host.ForageTarget
	hasFood  bool
	consumed int

	spawns []spawnRequest
	hurts  int
}

func (w *stubWorld) AgentsWithin(center geom.Vec3, radius float64) []host.Agent {
	var out []host.Agent
	for _, a := range w.agents {
		if a.pos.DistSq(center) <= radius*radius {
			out = append(out, a)
		}
	}
	return out
}

func (w *stubWorld) AgentByID(id host.AgentID) (host.Agent, bool) {
	for _, a := range w.agents {
		if a.id == id {
			return a, true
		}
	}
	return nil, false
}

func (w *stubWorld) LineOfSight(geom.Vec3, geom.Vec3) bool    { return !w.losBlocked }
func (w *stubWorld) GroundLevel(x, z float64) (float64, bool) { return 0, true }
func (w *stubWorld) BiomeAt(geom.Vec3) (string, float64)      { return "plains", 15 }
func (w *stubWorld) Time() int64                              { return w.time }

func (w *stubWorld) SpawnLitter(speciesID string, near geom.Vec3, count int) {
	w.spawns = append(w.spawns, spawnRequest{speciesID, near, count})
}

func (w *stubWorld) Hurt(host.Agent, float64) { w.hurts++ }

func (w *stubWorld) FindForage(geom.Vec3, float64, float64, string) (host.ForageTarget, bool) {
	return w.forage, w.hasFood
}

func (w *stubWorld) ConsumeForage(host.ForageTarget) bool {
	w.consumed++
	return true
}

type countEvents struct {
	kills, grazes                      int
	huntStarts, huntAbandons           int
	migrationStarts, migrationArrivals int
	starvations                        int
	breeds, litterTotal                int
}

func (e *countEvents) RecordKill()             { e.kills++ }
func (e *countEvents) RecordGraze()            { e.grazes++ }
func (e *countEvents) RecordHuntStart()        { e.huntStarts++ }
func (e *countEvents) RecordHuntAbandon()      { e.huntAbandons++ }
func (e *countEvents) RecordMigrationStart()   { e.migrationStarts++ }
func (e *countEvents) RecordMigrationArrival() { e.migrationArrivals++ }
func (e *countEvents) RecordStarvation()       { e.starvations++ }
func (e *countEvents) RecordBreed(litter int)  { e.breeds++; e.litterTotal += litter }

func testCatalog() *species.Catalog {
	cat := species.NewCatalog()
	cat.Register(species.NewBuilder("wolf").
		TrophicLevel(3).
		Diet(species.Carnivore).
		Prey("rabbit", 0.5, 30).
		Prey("sheep", 0.8, 60).
		HuntCooldown(6000).
		PackAnimal(3, 8).
		TerritoryRadius(48).
		BreedingSeason(0, 0.25).
		LitterSize(2, 6).
		FoodThreshold(0.6).
		PopulationDensity(0.2, 2).
		FleeDistance(20).
		Build())
	cat.Register(species.NewBuilder("rabbit").
		TrophicLevel(2).
		Diet(species.Herbivore).
		BreedingSeason(0, 0.5).
		LitterSize(3, 8).
		FoodThreshold(0.4).
		PopulationDensity(1.5, 12).
		Build())
	cat.Register(species.NewBuilder("sheep").
		TrophicLevel(2).
		Diet(species.Herbivore).
		PackAnimal(3, 12).
		BreedingSeason(0.05, 0.3).
		LitterSize(1, 2).
		FoodThreshold(0.5).
		PopulationDensity(1.0, 8).
		MigrationTendency(0.3).
		Build())
	return cat
}

type testEnv struct {
	world  *stubWorld
	cat    *species.Catalog
	events *countEvents
	ctx    *Context
}

func newEnv() *testEnv {
	world := &stubWorld{}
	cat := testCatalog()
	clock := seasons.NewClock(config.Cfg().Seasons.YearLengthTicks)
	effects := seasons.NewEffects(clock)
	rng := rand.New(rand.NewSource(7))
	regions := ecosystem.NewTracker(ecosystem.TrackerConfig{
		CellSize:           config.Cfg().Regions.CellSize,
		UpdateInterval:     config.Cfg().Regions.UpdateInterval,
		VegetationRegen:    config.Cfg().Regions.VegetationRegen,
		PressureDecay:      config.Cfg().Regions.PressureDecay,
		KillPressure:       config.Cfg().Regions.KillPressure,
		GrazeVegetationHit: config.Cfg().Regions.GrazeVegetationHit,
	})
	events := &countEvents{}
	ctx := &Context{
		World:      world,
		Catalog:    cat,
		Perception: perception.New(cat, world),
		Social:     social.NewCoordinator(cat, world, config.Cfg().Territory.CellSize),
		Regions:    regions,
		Seasons:    effects,
		Migration:  migration.NewPlanner(cat, world, effects, rng),
		Events:     events,
		RNG:        rng,
	}
	return &testEnv{world: world, cat: cat, events: events, ctx: ctx}
}

func (e *testEnv) addAgent(id int64, speciesID string, pos geom.Vec3) *stubAgent {
	a := &stubAgent{
		id:      host.AgentID(id),
		species: speciesID,
		pos:     pos,
		alive:   true,
		adult:   true,
	}
	a.state.Hunger = 1
	e.world.agents = append(e.world.agents, a)
	return a
}

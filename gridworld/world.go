// Package gridworld is the reference host: a bounded square world with
// simplex-noise terrain, ECS-backed animal storage, straight-line
// navigation and a grass cover for foraging. It exists for the CLI and
// integration tests; a production embedding replaces it wholesale.
package gridworld

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/species"
)

// Engine is the slice of the simulation the world drives: agent adoption,
// death bookkeeping and the per-tick engine step.
type Engine interface {
	OnSpawn(host.Agent) host.AttachOptions
	OnDeath(host.Agent)
	Tick()
}

// Config sizes the world.
type Config struct {
	Size         float64 // Edge length in world units
	GridCellSize float64 // Spatial grid bucket edge length
	Seed         int64
}

// DefaultConfig returns a world large enough for migration distances.
func DefaultConfig() Config {
	return Config{Size: 2048, GridCellSize: 32, Seed: 1}
}

type spawnOrder struct {
	speciesID string
	near      geom.Vec3
	count     int
}

// World implements host.World over an ark ECS store. Single-threaded;
// Step drives movement, the engine tick and lifecycle flushes in order.
type World struct {
	cfg     Config
	catalog *species.Catalog
	terrain *Terrain
	forage  *ForageField
	rng     *rand.Rand

	ecs       *ecs.World
	mapper    *ecs.Map3[Position, Velocity, Animal]
	filter    *ecs.Filter3[Position, Velocity, Animal]
	posMap    *ecs.Map1[Position]
	velMap    *ecs.Map1[Velocity]
	animalMap *ecs.Map1[Animal]
	grid      *SpatialGrid

	agents map[host.AgentID]*Agent
	nextID host.AgentID
	time   int64
	engine Engine

	pendingSpawns []spawnOrder
	queryBuf      []ecs.Entity
}

// NewWorld creates a world for a catalog and seed.
func NewWorld(cfg Config, catalog *species.Catalog) *World {
	world := ecs.NewWorld()
	w := &World{
		cfg:       cfg,
		catalog:   catalog,
		terrain:   NewTerrain(cfg.Seed),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
		ecs:       world,
		mapper:    ecs.NewMap3[Position, Velocity, Animal](world),
		filter:    ecs.NewFilter3[Position, Velocity, Animal](world),
		posMap:    ecs.NewMap1[Position](world),
		velMap:    ecs.NewMap1[Velocity](world),
		animalMap: ecs.NewMap1[Animal](world),
		grid:      NewSpatialGrid(cfg.Size, cfg.GridCellSize),
		agents:    make(map[host.AgentID]*Agent),
		nextID:    1,
	}
	w.forage = NewForageField(w.terrain)
	return w
}

// SetEngine attaches the simulation driven by this world.
func (w *World) SetEngine(e Engine) {
	w.engine = e
}

// Terrain returns the terrain fields.
func (w *World) Terrain() *Terrain { return w.terrain }

// Agents returns the number of stored animals, dead ones included until
// the end-of-step reap.
func (w *World) Agents() int { return len(w.agents) }

// Spawn creates one animal at a position, snapped to ground, and hands it
// to the engine. Returns nil when the position has no standable ground.
func (w *World) Spawn(speciesID string, at geom.Vec3) *Agent {
	ground, ok := w.GroundLevel(at.X, at.Z)
	if !ok {
		return nil
	}

	maturity := 0
	health := 20.0
	if def := w.catalog.Get(speciesID); def != nil {
		maturity = def.Reproduction.MaturityAgeTicks
	}

	id := w.nextID
	w.nextID++
	pos := Position{X: at.X, Y: ground, Z: at.Z}
	vel := Velocity{}
	ani := Animal{
		ID:            id,
		SpeciesID:     speciesID,
		Alive:         true,
		Health:        health,
		MaxHealth:     health,
		BornTick:      w.time,
		MaturityTicks: int64(maturity),
	}
	entity := w.mapper.NewEntity(&pos, &vel, &ani)

	agent := &Agent{w: w, entity: entity, id: id}
	w.agents[id] = agent
	w.grid.Insert(entity, pos.X, pos.Z)

	if w.engine != nil {
		// The engine returns attach options; this host has no native
		// targeting to suppress, so they carry no effect here.
		w.engine.OnSpawn(agent)
	}
	return agent
}

// Step advances the world one tick: movement, spatial index rebuild, the
// engine tick, then queued litters and the dead reap.
func (w *World) Step() {
	w.time++
	w.moveAnimals()
	w.rebuildGrid()
	if w.engine != nil {
		w.engine.Tick()
	}
	w.flushSpawns()
	w.reapDead()
}

func (w *World) moveAnimals() {
	query := w.filter.Query()
	for query.Next() {
		pos, vel, ani := query.Get()
		vel.X, vel.Y, vel.Z = 0, 0, 0
		if !ani.Alive || !ani.HasDest {
			continue
		}

		to := ani.Dest.Sub(pos.Vec()).Horizontal()
		step := baseMoveSpeed * ani.Speed
		if to.Length() <= step {
			pos.X, pos.Z = ani.Dest.X, ani.Dest.Z
			ani.HasDest = false
		} else {
			d := to.Normalized().Scale(step)
			pos.X += d.X
			pos.Z += d.Z
			vel.X, vel.Z = d.X, d.Z
		}
		if ground, ok := w.GroundLevel(pos.X, pos.Z); ok {
			pos.Y = ground
		}
	}
}

func (w *World) rebuildGrid() {
	w.grid.Clear()
	query := w.filter.Query()
	for query.Next() {
		pos, _, ani := query.Get()
		if ani.Alive {
			w.grid.Insert(query.Entity(), pos.X, pos.Z)
		}
	}
}

func (w *World) flushSpawns() {
	orders := w.pendingSpawns
	w.pendingSpawns = w.pendingSpawns[:0]
	for _, order := range orders {
		for i := 0; i < order.count; i++ {
			jitter := geom.Vec3{
				X: (w.rng.Float64()*2 - 1) * 4,
				Z: (w.rng.Float64()*2 - 1) * 4,
			}
			w.Spawn(order.speciesID, order.near.Add(jitter))
		}
	}
}

func (w *World) reapDead() {
	for id, agent := range w.agents {
		if ani := w.animalMap.Get(agent.entity); ani.Alive {
			continue
		}
		w.ecs.RemoveEntity(agent.entity)
		delete(w.agents, id)
	}
}

// AgentsWithin returns live animals within radius of center.
func (w *World) AgentsWithin(center geom.Vec3, radius float64) []host.Agent {
	w.queryBuf = w.grid.QueryRadiusInto(w.queryBuf[:0], center.X, center.Z, radius, w.posMap)
	out := make([]host.Agent, 0, len(w.queryBuf))
	for _, e := range w.queryBuf {
		ani := w.animalMap.Get(e)
		if agent, ok := w.agents[ani.ID]; ok {
			out = append(out, agent)
		}
	}
	return out
}

// AgentByID returns the agent handle for an id.
func (w *World) AgentByID(id host.AgentID) (host.Agent, bool) {
	agent, ok := w.agents[id]
	if !ok {
		return nil, false
	}
	return agent, true
}

// losStep is the sampling interval for sight and walkability checks.
const losStep = 4.0

// LineOfSight reports whether terrain stays below the sight line between
// two points at eye height.
func (w *World) LineOfSight(from, to geom.Vec3) bool {
	const eyeHeight = 1.0
	delta := to.Sub(from)
	dist := delta.Horizontal().Length()
	steps := int(dist / losStep)
	for i := 1; i < steps; i++ {
		f := float64(i) / float64(steps)
		p := from.Add(delta.Scale(f))
		if w.terrain.Elevation(p.X, p.Z) > p.Y+eyeHeight {
			return false
		}
	}
	return true
}

// GroundLevel samples the walkable surface height. Water columns have no
// standable ground.
func (w *World) GroundLevel(x, z float64) (float64, bool) {
	if x < 0 || z < 0 || x > w.cfg.Size || z > w.cfg.Size {
		return 0, false
	}
	if w.terrain.IsWater(x, z) {
		return 0, false
	}
	return w.terrain.Elevation(x, z), true
}

// BiomeAt returns the biome id and ambient temperature at a position.
func (w *World) BiomeAt(pos geom.Vec3) (string, float64) {
	return w.terrain.Biome(pos.X, pos.Z), w.terrain.Temperature(pos.X, pos.Z)
}

// Time returns the world time in ticks.
func (w *World) Time() int64 { return w.time }

// SpawnLitter queues newborns; they are created after the engine tick.
func (w *World) SpawnLitter(speciesID string, near geom.Vec3, count int) {
	w.pendingSpawns = append(w.pendingSpawns, spawnOrder{speciesID: speciesID, near: near, count: count})
}

// Hurt applies damage. Death is reported to the engine immediately; the
// entity itself is reaped at the end of the step.
func (w *World) Hurt(a host.Agent, amount float64) {
	agent, ok := w.agents[a.ID()]
	if !ok {
		return
	}
	ani := w.animalMap.Get(agent.entity)
	if !ani.Alive {
		return
	}
	ani.Health -= amount
	if ani.Health > 0 {
		return
	}
	ani.Alive = false
	if w.engine != nil {
		w.engine.OnDeath(agent)
	}
}

// FindForage searches the grass cover around center.
func (w *World) FindForage(center geom.Vec3, radius, height float64, speciesID string) (host.ForageTarget, bool) {
	return w.forage.Find(center, radius, w.time)
}

// ConsumeForage eats the cover at the target.
func (w *World) ConsumeForage(target host.ForageTarget) bool {
	return w.forage.Consume(target, w.time)
}

// walkable samples the straight line for water gaps.
func (w *World) walkable(from, to geom.Vec3) bool {
	if _, ok := w.GroundLevel(to.X, to.Z); !ok {
		return false
	}
	delta := to.Sub(from).Horizontal()
	dist := delta.Length()
	steps := int(dist / losStep)
	for i := 1; i < steps; i++ {
		f := float64(i) / float64(steps)
		p := from.Add(delta.Scale(f))
		if w.terrain.IsWater(p.X, p.Z) {
			return false
		}
	}
	return true
}

// Package behavior holds the per-agent state machines and the controller
// that schedules them: hunt, flee, forage, seasonal breeding, pack follow,
// territory patrol and migration.
package behavior

import (
	"math/rand"

	"github.com/pthm-cable/trophic/ecosystem"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/migration"
	"github.com/pthm-cable/trophic/perception"
	"github.com/pthm-cable/trophic/seasons"
	"github.com/pthm-cable/trophic/social"
	"github.com/pthm-cable/trophic/species"
)

// Behavior is one state machine owned by one agent. The controller calls
// CanStart on idle behaviors and ShouldContinue plus Tick on the active
// one, every simulation tick. Returning false from either guard cancels
// the behavior; Stop must clear all held references.
type Behavior interface {
	Name() string
	CanStart(ctx *Context, agent host.Agent) bool
	ShouldContinue(ctx *Context, agent host.Agent) bool
	Start(ctx *Context, agent host.Agent)
	Stop(ctx *Context, agent host.Agent)
	Tick(ctx *Context, agent host.Agent)
}

// Context bundles the world-scoped collaborators behaviors consult. One
// per simulated world, shared by every controller.
type Context struct {
	World      host.World
	Catalog    *species.Catalog
	Perception *perception.Perception
	Social     *social.Coordinator
	Regions    *ecosystem.Tracker
	Seasons    *seasons.Effects
	Migration  *migration.Planner
	Events     Events
	RNG        *rand.Rand
}

// Now returns the current world time in ticks.
func (ctx *Context) Now() int64 {
	return ctx.World.Time()
}

// Def returns the agent's species definition, or nil if unregistered.
func (ctx *Context) Def(agent host.Agent) *species.Definition {
	return ctx.Catalog.Get(agent.SpeciesID())
}

// Events receives behavior outcomes for telemetry. All methods are called
// on the tick thread.
type Events interface {
	RecordKill()
	RecordGraze()
	RecordHuntStart()
	RecordHuntAbandon()
	RecordMigrationStart()
	RecordMigrationArrival()
	RecordStarvation()
	RecordBreed(litterSize int)
}

// NopEvents discards all events.
type NopEvents struct{}

func (NopEvents) RecordKill()             {}
func (NopEvents) RecordGraze()            {}
func (NopEvents) RecordHuntStart()        {}
func (NopEvents) RecordHuntAbandon()      {}
func (NopEvents) RecordMigrationStart()   {}
func (NopEvents) RecordMigrationArrival() {}
func (NopEvents) RecordStarvation()       {}
func (NopEvents) RecordBreed(int)         {}

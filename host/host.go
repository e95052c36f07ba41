// Package host defines the interfaces the embedding world must provide.
// The engine decides what each agent should do; the host owns entity
// lifecycle, pathfinding, movement execution and damage.
package host

import "github.com/pthm-cable/trophic/geom"

// AgentID identifies an agent for the lifetime of the simulated world.
type AgentID int64

// Agent is the engine's handle on one live animal. The host creates and
// destroys agents; the engine reads and writes ecological state through
// this interface.
type Agent interface {
	ID() AgentID
	SpeciesID() string
	Position() geom.Vec3
	Velocity() geom.Vec3
	Alive() bool
	// Adult reports whether the agent is past its species' maturity age.
	// Juveniles neither breed nor count as valid prey.
	Adult() bool
	// State returns the ecological state attached when the agent was
	// adopted by the engine. Never nil for a managed agent.
	State() *State
	Navigator() Navigator
	// TryAttack performs one attack against the target and reports
	// whether it was fatal. Combat resolution belongs to the host.
	TryAttack(target Agent) bool
}

// Navigator is the host's pathfinding and movement capability for one
// agent. A failed MoveTo means no route exists; behaviors treat that as
// "abandon this attempt", never as fatal.
type Navigator interface {
	HasPathTo(dest geom.Vec3) bool
	MoveTo(dest geom.Vec3, speed float64) bool
	// Following reports whether a path is currently being executed.
	Following() bool
	Stop()
}

// World is the spatial and environmental surface the engine consumes.
type World interface {
	// AgentsWithin returns live agents within radius of center, excluding
	// none. Callers filter by species and predicate.
	AgentsWithin(center geom.Vec3, radius float64) []Agent
	AgentByID(id AgentID) (Agent, bool)
	LineOfSight(from, to geom.Vec3) bool
	// GroundLevel samples the walkable surface height at a column.
	// ok is false where there is no standable ground.
	GroundLevel(x, z float64) (y float64, ok bool)
	// BiomeAt returns the biome id and ambient temperature at a position.
	BiomeAt(pos geom.Vec3) (biome string, temp float64)
	// Time returns the current world time in ticks.
	Time() int64
	// SpawnLitter asks the host to create count newborns of a species
	// near a position. The host calls the engine's OnSpawn for each.
	SpawnLitter(speciesID string, near geom.Vec3, count int)
	// Hurt applies damage to an agent (starvation, territorial fights).
	Hurt(a Agent, amount float64)
	// FindForage searches a box of the given half-extent and height
	// around center for an edible resource: preferred food first, the
	// lower-value fallback second.
	FindForage(center geom.Vec3, radius, height float64, speciesID string) (ForageTarget, bool)
	// ConsumeForage eats the resource. Fallback food transforms the
	// substrate irreversibly instead of depleting it.
	ConsumeForage(target ForageTarget) bool
}

// ForageTarget is an edible resource located by the host.
type ForageTarget struct {
	Pos      geom.Vec3
	Fallback bool
}

// AttachOptions carries per-agent flags the host consults when adopting
// an agent into the engine.
type AttachOptions struct {
	// SuppressNativeTargeting disables the host's built-in target
	// selection so the engine's hunt machine is the only driver.
	SuppressNativeTargeting bool
}

package gridworld

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
)

// Position is the ECS position component.
type Position struct {
	X, Y, Z float64
}

// Vec returns the position as a vector.
func (p Position) Vec() geom.Vec3 {
	return geom.Vec3{X: p.X, Y: p.Y, Z: p.Z}
}

// Velocity is the ECS velocity component, the displacement of the last
// step in world units per tick.
type Velocity struct {
	X, Y, Z float64
}

// Animal is the ECS component holding identity, vitals and the current
// navigation order for one animal.
type Animal struct {
	ID            host.AgentID
	SpeciesID     string
	Alive         bool
	Health        float64
	MaxHealth     float64
	BornTick      int64
	MaturityTicks int64

	State host.State

	HasDest bool
	Dest    geom.Vec3
	Speed   float64
}

// baseMoveSpeed is one speed unit in world units per tick.
const baseMoveSpeed = 0.25

// attackDamage is the health removed by one landed attack.
const attackDamage = 4.0

// Agent is the host.Agent handle over one ECS entity. It doubles as the
// entity's navigator.
type Agent struct {
	w      *World
	entity ecs.Entity
	id     host.AgentID
}

func (a *Agent) animal() *Animal {
	return a.w.animalMap.Get(a.entity)
}

func (a *Agent) ID() host.AgentID  { return a.id }
func (a *Agent) SpeciesID() string { return a.animal().SpeciesID }

func (a *Agent) Position() geom.Vec3 {
	return a.w.posMap.Get(a.entity).Vec()
}

func (a *Agent) Velocity() geom.Vec3 {
	v := a.w.velMap.Get(a.entity)
	return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func (a *Agent) Alive() bool {
	return a.w.ecs.Alive(a.entity) && a.animal().Alive
}

func (a *Agent) Adult() bool {
	ani := a.animal()
	return a.w.time-ani.BornTick >= ani.MaturityTicks
}

func (a *Agent) State() *host.State {
	return &a.animal().State
}

func (a *Agent) Navigator() host.Navigator { return a }

// TryAttack lands one hit when the target is within reach. Fatal when the
// target's health is exhausted.
func (a *Agent) TryAttack(target host.Agent) bool {
	const attackReach = 2.5
	if !target.Alive() {
		return false
	}
	if a.Position().HorizDistSq(target.Position()) > attackReach*attackReach {
		return false
	}
	a.w.Hurt(target, attackDamage)
	return !target.Alive()
}

// HasPathTo reports whether a straight walk to dest stays on standable
// ground. The world has no obstructions besides water.
func (a *Agent) HasPathTo(dest geom.Vec3) bool {
	return a.w.walkable(a.Position(), dest)
}

// MoveTo orders a straight-line walk. speed is a multiplier over the
// animal's base speed.
func (a *Agent) MoveTo(dest geom.Vec3, speed float64) bool {
	if !a.HasPathTo(dest) {
		return false
	}
	ani := a.animal()
	ani.HasDest = true
	ani.Dest = dest
	ani.Speed = speed
	return true
}

func (a *Agent) Following() bool {
	return a.animal().HasDest
}

func (a *Agent) Stop() {
	ani := a.animal()
	ani.HasDest = false
	ani.Speed = 0
}

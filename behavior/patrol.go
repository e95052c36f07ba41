package behavior

import (
	"math"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
)

// Patrol is the low-frequency territory walk: claim a territory if none
// is held, lay out evenly spaced perimeter waypoints slightly inset from
// the boundary, and visit them in order with a per-point dwell budget.
type Patrol struct {
	waypoints []geom.Vec3
	current   int
	timer     int
}

// NewPatrol creates an idle patrol machine.
func NewPatrol() *Patrol {
	return &Patrol{}
}

func (p *Patrol) Name() string { return "patrol" }

func (p *Patrol) CanStart(ctx *Context, agent host.Agent) bool {
	def := ctx.Def(agent)
	if def == nil || def.Social.TerritoryRadius <= 0 {
		return false
	}
	return ctx.RNG.Float64() < config.Cfg().Patrol.StartChance
}

func (p *Patrol) Start(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	def := ctx.Def(agent)

	territory := ctx.Social.TerritoryOf(agent.ID())
	if territory == nil {
		territory = ctx.Social.ClaimTerritory(agent, def.Social.TerritoryRadius)
	}

	radius := territory.Radius * (1 - cfg.Patrol.InsetFraction)
	n := cfg.Patrol.Waypoints
	if n < 2 {
		n = 2
	}
	p.waypoints = p.waypoints[:0]
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		wp := territory.Center.Add(geom.Vec3{
			X: math.Cos(angle) * radius,
			Z: math.Sin(angle) * radius,
		})
		ground, ok := ctx.World.GroundLevel(wp.X, wp.Z)
		if !ok {
			// No reachable ground under this point; skip it.
			continue
		}
		wp.Y = ground
		p.waypoints = append(p.waypoints, wp)
	}
	p.current = 0
	p.timer = 0
}

func (p *Patrol) ShouldContinue(ctx *Context, agent host.Agent) bool {
	return p.current < len(p.waypoints)
}

func (p *Patrol) Stop(ctx *Context, agent host.Agent) {
	p.waypoints = p.waypoints[:0]
	p.current = 0
	agent.Navigator().Stop()
}

func (p *Patrol) Tick(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	if p.current >= len(p.waypoints) {
		return
	}
	wp := p.waypoints[p.current]

	p.timer++
	arrived := agent.Position().DistSq(wp) <= cfg.Patrol.ArriveRadius*cfg.Patrol.ArriveRadius
	if arrived || p.timer >= cfg.Patrol.DwellTicks {
		p.current++
		p.timer = 0
		return
	}
	agent.Navigator().MoveTo(wp, cfg.Patrol.MoveSpeed)
}

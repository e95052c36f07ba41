package behavior

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/migration"
)

// Migrate executes a planned long-range move, following waypoints toward
// the destination and recalculating when stuck. It gives up on timeout or
// persistent stuckness.
type Migrate struct {
	dest      geom.Vec3
	active    bool
	reason    migration.Reason
	startTick int64

	windowStart    int64
	windowStartPos geom.Vec3
	replans        int
}

// NewMigrate creates an idle migrate machine.
func NewMigrate() *Migrate {
	return &Migrate{}
}

func (m *Migrate) Name() string { return "migrate" }

func (m *Migrate) CanStart(ctx *Context, agent host.Agent) bool {
	def := ctx.Def(agent)
	if def == nil {
		return false
	}
	reason := ctx.Migration.ReasonFor(def, ctx.Now())
	if reason == migration.ReasonNone {
		return false
	}
	dest, ok := ctx.Migration.PlanDestination(agent, reason)
	if !ok {
		return false
	}
	m.dest = dest
	m.reason = reason
	return true
}

func (m *Migrate) Start(ctx *Context, agent host.Agent) {
	m.active = true
	m.startTick = ctx.Now()
	m.windowStart = ctx.Now()
	m.windowStartPos = agent.Position()
	m.replans = 0
	ctx.Events.RecordMigrationStart()
}

func (m *Migrate) ShouldContinue(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg().Migration
	if !m.active {
		return false
	}
	if ctx.Now()-m.startTick > int64(cfg.MaxDurationTicks) {
		return false
	}
	if m.replans > cfg.MaxReplans {
		return false
	}
	return agent.Position().HorizDistSq(m.dest) > cfg.ArriveRadius*cfg.ArriveRadius
}

func (m *Migrate) Stop(ctx *Context, agent host.Agent) {
	cfg := config.Cfg().Migration
	if m.active && agent.Position().HorizDistSq(m.dest) <= cfg.ArriveRadius*cfg.ArriveRadius {
		ctx.Events.RecordMigrationArrival()
	}
	m.active = false
	agent.Navigator().Stop()
}

func (m *Migrate) Tick(ctx *Context, agent host.Agent) {
	cfg := config.Cfg().Migration
	now := ctx.Now()

	// Stuck detection over a sliding window of net displacement.
	if now-m.windowStart >= int64(cfg.StuckWindowTicks) {
		moved := agent.Position().HorizDistSq(m.windowStartPos)
		if moved < cfg.StuckDistance*cfg.StuckDistance {
			m.replans++
			agent.Navigator().Stop()
		}
		m.windowStart = now
		m.windowStartPos = agent.Position()
	}

	wp := m.nextWaypoint(ctx, agent)
	agent.Navigator().MoveTo(wp, cfg.MoveSpeed)
}

// nextWaypoint steps a bounded distance toward the destination, snapped
// to ground level where possible.
func (m *Migrate) nextWaypoint(ctx *Context, agent host.Agent) geom.Vec3 {
	cfg := config.Cfg().Migration
	toDest := m.dest.Sub(agent.Position()).Horizontal()
	if toDest.Length() <= cfg.WaypointDistance {
		return m.dest
	}
	wp := agent.Position().Add(toDest.Normalized().Scale(cfg.WaypointDistance))
	if ground, ok := ctx.World.GroundLevel(wp.X, wp.Z); ok {
		wp.Y = ground
	}
	return wp
}

package behavior

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/host"
)

// Forage walks to an edible resource, dwells over it, then consumes it.
// Failed searches back off with a short cooldown to avoid repeated scans.
type Forage struct {
	target    host.ForageTarget
	hasTarget bool
	eating    int
	startTick int64
}

// NewForage creates an idle forage machine.
func NewForage() *Forage {
	return &Forage{}
}

func (f *Forage) Name() string { return "forage" }

func (f *Forage) CanStart(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	def := ctx.Def(agent)
	if def == nil || !def.Diet.Type.CanForage() {
		return false
	}
	state := agent.State()
	if state.ForageCooldownTicks > 0 || state.Hunger >= cfg.Hunger.HungryThreshold {
		return false
	}

	target, ok := ctx.World.FindForage(agent.Position(), cfg.Forage.SearchRadius, cfg.Forage.SearchHeight, agent.SpeciesID())
	if !ok {
		state.ForageCooldownTicks = cfg.Forage.FailCooldownTicks
		return false
	}
	f.target = target
	f.hasTarget = true
	return true
}

func (f *Forage) Start(ctx *Context, agent host.Agent) {
	f.eating = 0
	f.startTick = ctx.Now()
}

func (f *Forage) ShouldContinue(ctx *Context, agent host.Agent) bool {
	return f.hasTarget && ctx.Now()-f.startTick <= int64(config.Cfg().Forage.MaxDurationTicks)
}

func (f *Forage) Stop(ctx *Context, agent host.Agent) {
	f.hasTarget = false
	f.eating = 0
	agent.Navigator().Stop()
}

func (f *Forage) Tick(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	if !f.hasTarget {
		return
	}

	if agent.Position().DistSq(f.target.Pos) > 4 {
		if !agent.Navigator().MoveTo(f.target.Pos, cfg.Forage.MoveSpeed) {
			// Unreachable; abandon and back off.
			f.hasTarget = false
			agent.State().ForageCooldownTicks = cfg.Forage.FailCooldownTicks
		}
		return
	}

	f.eating++
	if f.eating < cfg.Forage.EatDurationTicks {
		return
	}

	if ctx.World.ConsumeForage(f.target) {
		agent.State().Restore(cfg.Forage.Nutrition, ctx.Now())
		ctx.Regions.RecordGrazing(agent.Position())
		ctx.Events.RecordGraze()
	}
	f.hasTarget = false
}

package behavior

import (
	"math"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
)

// Flee is the flight response: pick a destination that balances distance
// from the predator against staying near home, re-evaluated while
// running.
type Flee struct {
	predator  host.Agent
	dest      geom.Vec3
	hasDest   bool
	startTick int64
	lastPlan  int64
}

// NewFlee creates an idle flee machine.
func NewFlee() *Flee {
	return &Flee{}
}

func (f *Flee) Name() string { return "flee" }

func (f *Flee) CanStart(ctx *Context, agent host.Agent) bool {
	if len(ctx.Catalog.PredatorsOf(agent.SpeciesID())) == 0 {
		return false
	}
	f.predator = ctx.Perception.FindNearestPredator(agent, config.Cfg().Flee.DetectionRadius)
	return f.predator != nil
}

func (f *Flee) Start(ctx *Context, agent host.Agent) {
	f.startTick = ctx.Now()
	f.lastPlan = ctx.Now()
	f.plan(ctx, agent)
}

func (f *Flee) ShouldContinue(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	if f.predator == nil || !f.predator.Alive() {
		return false
	}
	if ctx.Now()-f.startTick > int64(cfg.Flee.MaxDurationTicks) {
		return false
	}
	safe := ctx.Perception.FleeDistance(f.predator.SpeciesID()) * cfg.Flee.SafetyMultiplier
	return agent.Position().DistSq(f.predator.Position()) < safe*safe
}

func (f *Flee) Stop(ctx *Context, agent host.Agent) {
	f.predator = nil
	f.hasDest = false
	agent.Navigator().Stop()
}

func (f *Flee) Tick(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	if ctx.Now()-f.lastPlan >= int64(cfg.Flee.ReplanInterval) {
		f.plan(ctx, agent)
		f.lastPlan = ctx.Now()
	}
	if f.hasDest {
		agent.Navigator().MoveTo(f.dest, cfg.Flee.MoveSpeed)
	}
}

// plan samples directions rotated from the direct away-from-predator
// vector and keeps the best-scoring reachable destination: far from the
// predator, near home, heavily penalized beyond the home range.
func (f *Flee) plan(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	if f.predator == nil {
		return
	}

	away := agent.Position().Sub(f.predator.Position()).Horizontal().Normalized()
	if away == (geom.Vec3{}) {
		away = geom.Vec3{X: 1}
	}
	state := agent.State()
	home := state.HomePos
	if !state.HomeSet {
		home = agent.Position()
	}

	f.hasDest = false
	bestScore := math.Inf(1)
	n := cfg.Flee.SampleDirections
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		candidate := agent.Position().Add(away.RotateY(angle).Scale(cfg.Flee.SampleDistance))
		if ground, ok := ctx.World.GroundLevel(candidate.X, candidate.Z); ok {
			candidate.Y = ground
		} else {
			continue
		}
		if !agent.Navigator().HasPathTo(candidate) {
			continue
		}

		homeDistSq := candidate.HorizDistSq(home)
		score := homeDistSq
		if homeDistSq > cfg.Flee.HomeRange*cfg.Flee.HomeRange {
			score *= cfg.Flee.HomePenalty
		}
		score -= candidate.HorizDistSq(f.predator.Position()) * cfg.Flee.PredatorWeight

		if score < bestScore {
			bestScore = score
			f.dest = candidate
			f.hasDest = true
		}
	}
}

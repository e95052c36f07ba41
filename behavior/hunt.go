package behavior

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
)

type huntState int

const (
	huntSearching huntState = iota
	huntStalking
	huntChasing
)

// Hunt is the predator state machine: Searching, then Stalking a target,
// then Chasing until a kill, a timeout or target loss.
type Hunt struct {
	state     huntState
	target    host.Agent
	candidate host.Agent

	// Directional commitment: after starting, re-selection within the
	// window penalizes candidates opposite the committed direction so
	// the predator does not oscillate between prey clusters.
	commitDir   geom.Vec3
	commitUntil int64

	startTick    int64
	lastRetarget int64
}

// NewHunt creates an idle hunt machine.
func NewHunt() *Hunt {
	return &Hunt{}
}

func (h *Hunt) Name() string { return "hunt" }

func (h *Hunt) CanStart(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	def := ctx.Def(agent)
	if def == nil || !def.Diet.Type.CanHunt() {
		return false
	}
	state := agent.State()
	if state.HuntCooldownTicks > 0 || state.Hunger >= cfg.Hunger.HungryThreshold {
		return false
	}
	h.candidate = ctx.Perception.FindBestPrey(agent, cfg.Hunt.SearchRadius, h.commitAdjust(ctx, agent))
	return h.candidate != nil
}

func (h *Hunt) Start(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	h.state = huntStalking
	h.target = h.candidate
	h.candidate = nil
	h.startTick = ctx.Now()
	h.lastRetarget = ctx.Now()
	h.commitDir = h.target.Position().Sub(agent.Position()).Horizontal().Normalized()
	h.commitUntil = ctx.Now() + int64(cfg.Hunt.CommitmentTicks)
	ctx.Events.RecordHuntStart()
}

func (h *Hunt) ShouldContinue(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	if h.target == nil || !h.target.Alive() {
		return false
	}
	if ctx.Now()-h.startTick > int64(cfg.Hunt.MaxDurationTicks) {
		return false
	}
	limit := cfg.Hunt.SearchRadius
	if h.state == huntChasing {
		limit += cfg.Hunt.ChaseRadiusBonus
	}
	return agent.Position().DistSq(h.target.Position()) <= limit*limit
}

func (h *Hunt) Stop(ctx *Context, agent host.Agent) {
	if h.target != nil {
		// Reaching Stop with a live target means the hunt was abandoned.
		if h.target.Alive() {
			ctx.Events.RecordHuntAbandon()
		}
		h.target = nil
	}
	// commitDir and commitUntil survive the hunt: the next target search
	// stays biased away from the cluster the predator just turned from.
	h.state = huntSearching
	agent.Navigator().Stop()
}

func (h *Hunt) Tick(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	now := ctx.Now()

	if now-h.lastRetarget >= int64(cfg.Hunt.RetargetInterval) {
		h.retarget(ctx, agent)
		h.lastRetarget = now
	}
	if h.target == nil {
		return
	}

	distSq := agent.Position().DistSq(h.target.Position())

	switch h.state {
	case huntStalking:
		evasive := h.target.Velocity().Horizontal().Length() > 0.1
		if distSq <= cfg.Hunt.StalkDistance*cfg.Hunt.StalkDistance || evasive {
			h.state = huntChasing
		} else {
			agent.Navigator().MoveTo(h.target.Position(), cfg.Hunt.StalkSpeed)
		}
	}

	if h.state == huntChasing {
		if distSq <= cfg.Hunt.AttackRange*cfg.Hunt.AttackRange {
			h.attemptKill(ctx, agent)
		} else {
			agent.Navigator().MoveTo(h.target.Position(), cfg.Hunt.ChaseSpeed)
		}
	}
}

// commitAdjust returns the prey rescoring function for the directional
// commitment, or nil when no commitment is active. Aligned candidates get
// up to a 30% score reduction; opposed candidates take a multiplicative
// penalty.
func (h *Hunt) commitAdjust(ctx *Context, agent host.Agent) func(candidate host.Agent, score float64) float64 {
	cfg := config.Cfg()
	if ctx.Now() >= h.commitUntil || h.commitDir == (geom.Vec3{}) {
		return nil
	}
	return func(candidate host.Agent, score float64) float64 {
		dir := candidate.Position().Sub(agent.Position()).Horizontal().Normalized()
		alignment := dir.Dot(h.commitDir)
		if alignment >= 0 {
			return score * (1 - cfg.Hunt.DirectionPreference*alignment)
		}
		return score * (1 + cfg.Hunt.OppositeDirectionPenalty*(-alignment))
	}
}

// retarget re-selects prey under the directional commitment bias.
func (h *Hunt) retarget(ctx *Context, agent host.Agent) {
	best := ctx.Perception.FindBestPrey(agent, config.Cfg().Hunt.SearchRadius, h.commitAdjust(ctx, agent))
	if best != nil {
		h.target = best
	}
}

func (h *Hunt) attemptKill(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	target := h.target
	if !agent.TryAttack(target) {
		// Not fatal; keep chasing.
		return
	}

	def := ctx.Def(agent)
	nutrition := cfg.Hunt.DefaultNutritionalValue
	cooldown := cfg.Hunt.DefaultCooldownTicks
	if def != nil {
		_, nutrition = def.PreyValue(target.SpeciesID(), cfg.Hunt.DefaultPreyPreference, cfg.Hunt.DefaultNutritionalValue)
		if def.Diet.HuntCooldownTicks > 0 {
			cooldown = def.Diet.HuntCooldownTicks
		}
	}

	state := agent.State()
	state.Feed(nutrition, ctx.Now())
	state.HuntCooldownTicks = cooldown

	ctx.Regions.RecordKill(target.Position(), target.SpeciesID())
	ctx.Events.RecordKill()
	h.target = nil
}

package behavior

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/social"
)

// PackFollow is the low-priority regroup behavior: when well fed and far
// from the pack leader, drift back toward the pack centroid. A per-agent
// offset keeps members from stacking on one point, and the stop distance
// sits inside the start distance so the behavior does not flap.
type PackFollow struct {
	pack   *social.Pack
	offset geom.Vec3
}

// NewPackFollow creates an idle regroup machine with a random per-agent
// centroid offset.
func NewPackFollow(rng *rand.Rand) *PackFollow {
	r := config.Cfg().Pack.OffsetRadius
	angle := rng.Float64() * 2 * math.Pi
	dist := rng.Float64() * r
	return &PackFollow{
		offset: geom.Vec3{X: math.Cos(angle) * dist, Z: math.Sin(angle) * dist},
	}
}

func (p *PackFollow) Name() string { return "pack_follow" }

func (p *PackFollow) CanStart(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	def := ctx.Def(agent)
	if def == nil || !def.Social.IsPack {
		return false
	}
	// Hunting and foraging take precedence; regroup only when fed.
	if agent.State().Hunger < cfg.Hunger.HungryThreshold {
		return false
	}

	pack := ctx.Social.GetOrAssignPack(agent)
	if pack == nil || pack.Size() < 2 {
		return false
	}
	leader, ok := ctx.World.AgentByID(pack.Leader)
	if !ok || !leader.Alive() || leader.ID() == agent.ID() {
		return false
	}
	if agent.Position().DistSq(leader.Position()) <= cfg.Pack.StartDistance*cfg.Pack.StartDistance {
		return false
	}
	p.pack = pack
	return true
}

func (p *PackFollow) Start(ctx *Context, agent host.Agent) {}

func (p *PackFollow) ShouldContinue(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	if p.pack == nil || p.pack.Size() < 2 {
		return false
	}
	centroid, ok := ctx.Social.PackCentroid(p.pack)
	if !ok {
		return false
	}
	return agent.Position().DistSq(centroid) > cfg.Pack.StopDistance*cfg.Pack.StopDistance
}

func (p *PackFollow) Stop(ctx *Context, agent host.Agent) {
	p.pack = nil
	agent.Navigator().Stop()
}

func (p *PackFollow) Tick(ctx *Context, agent host.Agent) {
	centroid, ok := ctx.Social.PackCentroid(p.pack)
	if !ok {
		return
	}
	agent.Navigator().MoveTo(centroid.Add(p.offset), config.Cfg().Pack.MoveSpeed)
}

package behavior

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/host"
)

// Controller owns one agent's behavior list and per-tick upkeep. Exactly
// one behavior is active at a time; higher-priority behaviors preempt
// lower ones between ticks.
type Controller struct {
	agent     host.Agent
	behaviors []Behavior
	active    Behavior
}

// NewController builds the standard behavior list for an agent, in
// priority order, based on its species definition. Unregistered species
// get an empty list and only upkeep runs.
func NewController(ctx *Context, agent host.Agent) *Controller {
	c := &Controller{agent: agent}
	def := ctx.Def(agent)
	if def == nil {
		return c
	}

	c.behaviors = append(c.behaviors, NewFlee())
	if def.Diet.Type.CanHunt() {
		c.behaviors = append(c.behaviors, NewHunt())
	}
	if def.Diet.Type.CanForage() {
		c.behaviors = append(c.behaviors, NewForage())
	}
	c.behaviors = append(c.behaviors, NewBreed())
	if def.Population.MigrationTendency > 0 {
		c.behaviors = append(c.behaviors, NewMigrate())
	}
	if def.Social.TerritoryRadius > 0 {
		c.behaviors = append(c.behaviors, NewPatrol())
	}
	if def.Social.IsPack {
		c.behaviors = append(c.behaviors, NewPackFollow(ctx.RNG))
	}
	return c
}

// Behaviors returns the priority-ordered behavior list.
func (c *Controller) Behaviors() []Behavior {
	return c.behaviors
}

// Active returns the currently running behavior, or nil.
func (c *Controller) Active() Behavior {
	return c.active
}

// Update runs one tick: state upkeep, then behavior scheduling.
func (c *Controller) Update(ctx *Context) {
	if !c.agent.Alive() {
		return
	}
	c.upkeep(ctx)

	// A higher-priority behavior may preempt the active one.
	for _, b := range c.behaviors {
		if b == c.active {
			break
		}
		if b.CanStart(ctx, c.agent) {
			c.switchTo(ctx, b)
			break
		}
	}

	if c.active != nil && !c.active.ShouldContinue(ctx, c.agent) {
		c.active.Stop(ctx, c.agent)
		c.active = nil
	}

	if c.active == nil {
		for _, b := range c.behaviors {
			if b.CanStart(ctx, c.agent) {
				c.active = b
				b.Start(ctx, c.agent)
				break
			}
		}
	}

	if c.active != nil {
		c.active.Tick(ctx, c.agent)
	}
}

func (c *Controller) switchTo(ctx *Context, b Behavior) {
	if c.active != nil {
		c.active.Stop(ctx, c.agent)
	}
	c.active = b
	b.Start(ctx, c.agent)
}

// upkeep performs the per-tick state maintenance every managed agent
// gets: home capture, hunger decay, cooldowns and starvation damage.
func (c *Controller) upkeep(ctx *Context) {
	cfg := config.Cfg()
	state := c.agent.State()
	now := ctx.Now()

	if !state.HomeSet {
		state.HomePos = c.agent.Position()
		state.HomeSet = true
	}

	decay := cfg.Hunger.BaseDecayPerTick
	if def := ctx.Def(c.agent); def != nil && def.TrophicLevel > 1 {
		decay *= 1 + cfg.Hunger.TrophicDecayScale*float64(def.TrophicLevel-1)
	}
	decay *= ctx.Seasons.MetabolismModifier(now)
	state.Drain(decay)

	if state.HuntCooldownTicks > 0 {
		state.HuntCooldownTicks--
	}
	if state.BreedCooldownTicks > 0 {
		state.BreedCooldownTicks--
	}
	if state.ForageCooldownTicks > 0 {
		state.ForageCooldownTicks--
	}

	if state.Hunger <= cfg.Hunger.StarvationThreshold {
		if now-state.LastStarveTick >= int64(cfg.Hunger.StarvationInterval) {
			ctx.World.Hurt(c.agent, 1)
			state.LastStarveTick = now
			ctx.Events.RecordStarvation()
		}
	}
}

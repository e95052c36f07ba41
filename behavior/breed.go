package behavior

import (
	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/host"
)

// Breed is seasonal reproduction: gated on season window, satiety, local
// carrying capacity and (for hunters) the prey-to-predator ratio, then a
// dwell next to a mate before the host spawns the litter.
type Breed struct {
	mate      host.Agent
	dwell     int
	startTick int64
}

// NewBreed creates an idle breed machine.
func NewBreed() *Breed {
	return &Breed{}
}

func (b *Breed) Name() string { return "breed" }

func (b *Breed) CanStart(ctx *Context, agent host.Agent) bool {
	def := ctx.Def(agent)
	if def == nil || def.Reproduction.MaxLitter < 1 {
		return false
	}
	state := agent.State()
	if !agent.Adult() || state.BreedCooldownTicks > 0 {
		return false
	}
	clock := ctx.Seasons.Clock()
	if !clock.IsBreedingSeason(ctx.Now(), def.Reproduction.SeasonStart, def.Reproduction.SeasonEnd) {
		return false
	}
	if state.Hunger < def.Reproduction.FoodThreshold {
		return false
	}
	if !b.underCapacity(ctx, agent) {
		return false
	}
	if def.Diet.Type.CanHunt() && !b.preyRatioMet(ctx, agent) {
		return false
	}

	b.mate = b.findMate(ctx, agent)
	return b.mate != nil
}

// underCapacity samples the local same-species population against the
// species' per-cell carrying capacity times the sampled cell count.
func (b *Breed) underCapacity(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	def := ctx.Def(agent)

	perCell := def.Population.CarryingCapacityPerCell
	if perCell <= 0 {
		perCell = cfg.Population.CapacityPerCell
	}
	capacity := perCell * float64(cfg.Breeding.CapacityCells)

	count := 0
	for _, other := range ctx.World.AgentsWithin(agent.Position(), cfg.Breeding.CrowdSampleRadius) {
		if other.Alive() && other.SpeciesID() == agent.SpeciesID() {
			count++
		}
	}
	return float64(count) < capacity
}

// preyRatioMet requires enough local prey per predator before a hunting
// species may breed.
func (b *Breed) preyRatioMet(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	preySet := ctx.Catalog.PreyOf(agent.SpeciesID())
	if len(preySet) == 0 {
		return true
	}

	prey, predators := 0, 0
	for _, other := range ctx.World.AgentsWithin(agent.Position(), cfg.Breeding.CrowdSampleRadius) {
		if !other.Alive() {
			continue
		}
		switch {
		case preySet[other.SpeciesID()]:
			prey++
		case other.SpeciesID() == agent.SpeciesID():
			predators++
		}
	}
	if predators == 0 {
		return true
	}
	return float64(prey) >= float64(predators)*cfg.Breeding.PreyRatioRequired
}

// findMate returns the nearest adult, fed, off-cooldown same-species
// agent in range, or nil.
func (b *Breed) findMate(ctx *Context, agent host.Agent) host.Agent {
	cfg := config.Cfg()
	def := ctx.Def(agent)

	var best host.Agent
	bestDistSq := 0.0
	for _, other := range ctx.World.AgentsWithin(agent.Position(), cfg.Breeding.MateSearchRadius) {
		if other.ID() == agent.ID() || other.SpeciesID() != agent.SpeciesID() {
			continue
		}
		if !other.Alive() || !other.Adult() {
			continue
		}
		st := other.State()
		if st.BreedCooldownTicks > 0 || st.Hunger < def.Reproduction.FoodThreshold {
			continue
		}
		distSq := agent.Position().DistSq(other.Position())
		if best == nil || distSq < bestDistSq {
			best = other
			bestDistSq = distSq
		}
	}
	return best
}

func (b *Breed) Start(ctx *Context, agent host.Agent) {
	b.dwell = 0
	b.startTick = ctx.Now()
}

func (b *Breed) ShouldContinue(ctx *Context, agent host.Agent) bool {
	cfg := config.Cfg()
	if b.mate == nil || !b.mate.Alive() {
		return false
	}
	if ctx.Now()-b.startTick > int64(cfg.Breeding.MaxDurationTicks) {
		return false
	}
	def := ctx.Def(agent)
	if def == nil {
		return false
	}
	clock := ctx.Seasons.Clock()
	if !clock.IsBreedingSeason(ctx.Now(), def.Reproduction.SeasonStart, def.Reproduction.SeasonEnd) {
		return false
	}
	limit := cfg.Breeding.MateSearchRadius * 2
	return agent.Position().DistSq(b.mate.Position()) <= limit*limit
}

func (b *Breed) Stop(ctx *Context, agent host.Agent) {
	b.mate = nil
	b.dwell = 0
	agent.Navigator().Stop()
}

func (b *Breed) Tick(ctx *Context, agent host.Agent) {
	cfg := config.Cfg()
	if b.mate == nil {
		return
	}

	if agent.Position().DistSq(b.mate.Position()) > cfg.Breeding.AdjacentRange*cfg.Breeding.AdjacentRange {
		agent.Navigator().MoveTo(b.mate.Position(), cfg.Breeding.MoveSpeed)
		b.dwell = 0
		return
	}

	b.dwell++
	if b.dwell < cfg.Breeding.DwellTicks {
		return
	}

	def := ctx.Def(agent)
	litter := def.Reproduction.MinLitter
	if span := def.Reproduction.MaxLitter - def.Reproduction.MinLitter; span > 0 {
		litter += ctx.RNG.Intn(span + 1)
	}
	ctx.World.SpawnLitter(agent.SpeciesID(), agent.Position(), litter)

	cooldown := cfg.Breeding.CooldownTicks
	cost := cfg.Breeding.HungerCost
	if def.Diet.Type.CanHunt() {
		cooldown = int(float64(cooldown) * cfg.Breeding.HunterCooldownScale)
		cost = cfg.Breeding.HunterHungerCost
	}
	for _, parent := range [2]host.Agent{agent, b.mate} {
		st := parent.State()
		st.BreedCooldownTicks = cooldown
		st.Drain(cost)
	}

	ctx.Events.RecordBreed(litter)
	b.mate = nil
}

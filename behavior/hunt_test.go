package behavior

import (
	"math"
	"testing"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
)

func TestHuntCanStartGuards(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	env.addAgent(2, "rabbit", geom.Vec3{X: 10})
	h := NewHunt()

	// Well fed: no hunt.
	wolf.state.Hunger = 1
	if h.CanStart(env.ctx, wolf) {
		t.Error("full wolf should not hunt")
	}

	// Hungry but on cooldown.
	wolf.state.Hunger = 0.3
	wolf.state.HuntCooldownTicks = 100
	if h.CanStart(env.ctx, wolf) {
		t.Error("cooldown blocks hunting")
	}

	// Hungry, off cooldown.
	wolf.state.HuntCooldownTicks = 0
	if !h.CanStart(env.ctx, wolf) {
		t.Error("hungry wolf with prey in range should hunt")
	}

	// Herbivores never hunt.
	rabbit := env.world.agents[1]
	rabbit.state.Hunger = 0.3
	if NewHunt().CanStart(env.ctx, rabbit) {
		t.Error("herbivore should not hunt")
	}
}

func TestHuntKillFeedsAndCoolsDown(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	wolf.state.Hunger = 0.3
	wolf.attackFatal = true
	rabbit := env.addAgent(2, "rabbit", geom.Vec3{X: 1})
	env.ctx.Regions.RecordSpawn(rabbit.pos, "rabbit")

	h := NewHunt()
	if !h.CanStart(env.ctx, wolf) {
		t.Fatal("hunt should start")
	}
	h.Start(env.ctx, wolf)
	if env.events.huntStarts != 1 {
		t.Error("hunt start not recorded")
	}

	// Within stalk and attack range: one tick escalates and kills.
	h.Tick(env.ctx, wolf)

	if rabbit.alive {
		t.Fatal("rabbit should be dead")
	}
	if got := wolf.state.Hunger; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("hunger = %v, want 0.6 (+nutritionalValue/100)", got)
	}
	if got := wolf.state.HuntCooldownTicks; got != 6000 {
		t.Errorf("cooldown = %d, want species value 6000", got)
	}
	if env.events.kills != 1 {
		t.Error("kill not recorded")
	}
	if got := env.ctx.Regions.Population(rabbit.pos, "rabbit"); got != 0 {
		t.Errorf("regional rabbit population = %d, want 0", got)
	}
	if env.ctx.Regions.RegionAt(rabbit.pos).HuntingPressure <= 0 {
		t.Error("kill should raise hunting pressure")
	}
}

func TestHuntFeedCappedAtFull(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	wolf.state.Hunger = 0.9
	wolf.attackFatal = true
	env.addAgent(2, "sheep", geom.Vec3{X: 1}) // nutritional value 60

	h := NewHunt()
	wolf.state.Hunger = 0.55 // hungry enough to start
	if !h.CanStart(env.ctx, wolf) {
		t.Fatal("hunt should start")
	}
	h.Start(env.ctx, wolf)
	wolf.state.Hunger = 0.9 // fed in the meantime
	h.Tick(env.ctx, wolf)

	if wolf.state.Hunger != 1 {
		t.Errorf("hunger = %v, want capped at 1", wolf.state.Hunger)
	}
}

func TestHuntTimeoutAbandons(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	wolf.state.Hunger = 0.3
	env.addAgent(2, "rabbit", geom.Vec3{X: 20})

	h := NewHunt()
	if !h.CanStart(env.ctx, wolf) {
		t.Fatal("hunt should start")
	}
	h.Start(env.ctx, wolf)

	env.world.time = int64(config.Cfg().Hunt.MaxDurationTicks) + 1
	if h.ShouldContinue(env.ctx, wolf) {
		t.Error("hunt should time out")
	}
	h.Stop(env.ctx, wolf)
	if env.events.huntAbandons != 1 {
		t.Error("abandonment not recorded")
	}
}

func TestHuntTargetLost(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	wolf.state.Hunger = 0.3
	rabbit := env.addAgent(2, "rabbit", geom.Vec3{X: 20})

	h := NewHunt()
	if !h.CanStart(env.ctx, wolf) {
		t.Fatal("hunt should start")
	}
	h.Start(env.ctx, wolf)

	// Target escapes beyond the chase limit.
	rabbit.pos = geom.Vec3{X: 500}
	if h.ShouldContinue(env.ctx, wolf) {
		t.Error("out-of-range target should end the hunt")
	}

	// Dead target ends it too.
	rabbit.pos = geom.Vec3{X: 20}
	rabbit.alive = false
	if h.ShouldContinue(env.ctx, wolf) {
		t.Error("dead target should end the hunt")
	}
}

func TestHuntDirectionalCommitment(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	wolf.state.Hunger = 0.3
	ahead := env.addAgent(2, "rabbit", geom.Vec3{X: 10})
	behind := env.addAgent(3, "rabbit", geom.Vec3{X: -8})

	h := NewHunt()
	// Unbiased selection would pick the nearer rabbit behind; force the
	// initial target to be the one ahead to establish commitment.
	h.candidate = ahead
	h.Start(env.ctx, wolf)

	// Within the commitment window the opposed candidate is penalized
	// roughly threefold and the committed direction wins.
	env.world.time = int64(config.Cfg().Hunt.RetargetInterval)
	h.Tick(env.ctx, wolf)
	if h.target != ahead {
		t.Error("commitment should hold the target ahead")
	}

	// After the window expires the nearer candidate wins again.
	env.world.time = int64(config.Cfg().Hunt.CommitmentTicks + config.Cfg().Hunt.RetargetInterval*2)
	h.Tick(env.ctx, wolf)
	if h.target != behind {
		t.Error("expired commitment should release the target")
	}
}

func TestHuntCommitmentSurvivesHuntEnd(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	wolf.state.Hunger = 0.3
	ahead := env.addAgent(2, "rabbit", geom.Vec3{X: 10})
	behind := env.addAgent(3, "rabbit", geom.Vec3{X: -8})

	h := NewHunt()
	h.candidate = ahead
	h.Start(env.ctx, wolf)
	// Target escapes; the hunt ends but the commitment window does not.
	h.Stop(env.ctx, wolf)

	env.world.time = 10
	if !h.CanStart(env.ctx, wolf) {
		t.Fatal("hunt should restart")
	}
	if h.candidate != ahead {
		t.Error("next search should stay biased toward the committed direction")
	}

	// Once the window expires the nearer opposed candidate wins again.
	env.world.time = int64(config.Cfg().Hunt.CommitmentTicks) + 1
	if !h.CanStart(env.ctx, wolf) {
		t.Fatal("hunt should restart")
	}
	if h.candidate != behind {
		t.Error("expired commitment should not bias the search")
	}
}

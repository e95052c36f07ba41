package behavior

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/trophic/geom"
)

func TestPackFollowRegroups(t *testing.T) {
	env := newEnv()
	leader := env.addAgent(1, "wolf", geom.Vec3{})
	straggler := env.addAgent(2, "wolf", geom.Vec3{X: 2})
	env.addAgent(3, "wolf", geom.Vec3{X: 4})

	// Form the pack while everyone is close, then let one drift.
	pack := env.ctx.Social.GetOrAssignPack(leader)
	if pack.Size() != 3 {
		t.Fatalf("pack size = %d, want 3", pack.Size())
	}

	pf := NewPackFollow(rand.New(rand.NewSource(3)))

	// Close to the leader: no regroup.
	if pf.CanStart(env.ctx, straggler) {
		t.Error("nearby member should not regroup")
	}

	straggler.pos = geom.Vec3{X: 40}
	if !pf.CanStart(env.ctx, straggler) {
		t.Fatal("distant member should regroup")
	}
	pf.Start(env.ctx, straggler)
	if !pf.ShouldContinue(env.ctx, straggler) {
		t.Fatal("regroup should run while far from the centroid")
	}

	pf.Tick(env.ctx, straggler)
	if straggler.nav.moveCalls != 1 {
		t.Fatal("regroup should navigate")
	}
	if straggler.nav.dest.X >= straggler.pos.X {
		t.Errorf("dest.X = %v, want toward the pack (less than %v)", straggler.nav.dest.X, straggler.pos.X)
	}

	// Back near the centroid: done.
	straggler.pos = geom.Vec3{X: 5}
	if pf.ShouldContinue(env.ctx, straggler) {
		t.Error("regroup should stop near the centroid")
	}
}

func TestPackFollowGuards(t *testing.T) {
	env := newEnv()
	lone := env.addAgent(1, "wolf", geom.Vec3{})
	if NewPackFollow(rand.New(rand.NewSource(3))).CanStart(env.ctx, lone) {
		t.Error("singleton pack should not regroup")
	}

	// Hungry members leave regrouping to hunting and foraging.
	leader := env.addAgent(2, "wolf", geom.Vec3{X: 2})
	env.addAgent(3, "wolf", geom.Vec3{X: 4})
	env.ctx.Social.GetOrAssignPack(leader)
	member := env.world.agents[0]
	member.pos = geom.Vec3{X: 40}
	member.state.Hunger = 0.3
	if NewPackFollow(rand.New(rand.NewSource(3))).CanStart(env.ctx, member) {
		t.Error("hungry member should not regroup")
	}

	// The leader itself never follows.
	if NewPackFollow(rand.New(rand.NewSource(3))).CanStart(env.ctx, leader) {
		t.Error("leader should not follow itself")
	}
}

package behavior

import (
	"math"
	"testing"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
)

func TestPatrolOnlyTerritorialSpecies(t *testing.T) {
	env := newEnv()
	rabbit := env.addAgent(1, "rabbit", geom.Vec3{})
	p := NewPatrol()
	for i := 0; i < 1000; i++ {
		if p.CanStart(env.ctx, rabbit) {
			t.Fatal("species without a territory radius should never patrol")
		}
	}
}

func TestPatrolClaimsTerritoryAndWalksPerimeter(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{X: 10, Z: 10})

	p := NewPatrol()
	p.Start(env.ctx, wolf)

	territory := env.ctx.Social.TerritoryOf(wolf.ID())
	if territory == nil {
		t.Fatal("starting a patrol should claim a territory")
	}
	if territory.Center != wolf.pos {
		t.Errorf("territory center = %v, want %v", territory.Center, wolf.pos)
	}
	if territory.Radius != 48 {
		t.Errorf("territory radius = %v, want species value 48", territory.Radius)
	}

	cfg := config.Cfg().Patrol
	if len(p.waypoints) != cfg.Waypoints {
		t.Fatalf("waypoints = %d, want %d", len(p.waypoints), cfg.Waypoints)
	}
	wantDist := territory.Radius * (1 - cfg.InsetFraction)
	for i, wp := range p.waypoints {
		d := wp.Sub(territory.Center).Horizontal().Length()
		if math.Abs(d-wantDist) > 1e-9 {
			t.Errorf("waypoint %d at distance %v from center, want %v", i, d, wantDist)
		}
	}

	// Walk the loop by teleporting onto each waypoint in turn.
	for p.ShouldContinue(env.ctx, wolf) {
		wolf.pos = p.waypoints[p.current]
		p.Tick(env.ctx, wolf)
	}
	if p.current != len(p.waypoints) {
		t.Errorf("visited %d waypoints, want %d", p.current, len(p.waypoints))
	}
}

func TestPatrolReclaimsExistingTerritory(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})
	held := env.ctx.Social.ClaimTerritory(wolf, 48)

	wolf.pos = geom.Vec3{X: 100}
	p := NewPatrol()
	p.Start(env.ctx, wolf)

	// An existing claim is patrolled, not replaced.
	if got := env.ctx.Social.TerritoryOf(wolf.ID()); got != held {
		t.Error("patrol should reuse the held territory")
	}
}

func TestPatrolDwellAdvancesStalledWaypoint(t *testing.T) {
	env := newEnv()
	wolf := env.addAgent(1, "wolf", geom.Vec3{})

	p := NewPatrol()
	p.Start(env.ctx, wolf)

	// Never arriving: the dwell budget forces progress anyway.
	for i := 0; i < config.Cfg().Patrol.DwellTicks; i++ {
		p.Tick(env.ctx, wolf)
	}
	if p.current != 1 {
		t.Errorf("current = %d, want 1 after the dwell budget expires", p.current)
	}
}

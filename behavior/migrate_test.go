package behavior

import (
	"testing"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
)

// Early winter: foraging has collapsed, which gives migratory species a
// resource reason to move.
const winterTick = 121000

func TestMigrateCanStart(t *testing.T) {
	env := newEnv()
	sheep := env.addAgent(1, "sheep", geom.Vec3{})
	rabbit := env.addAgent(2, "rabbit", geom.Vec3{X: 50})

	// Midsummer: plenty of forage, no urge.
	env.world.time = 50000
	if NewMigrate().CanStart(env.ctx, sheep) {
		t.Error("no migration in summer")
	}

	env.world.time = winterTick
	m := NewMigrate()
	if !m.CanStart(env.ctx, sheep) {
		t.Fatal("sheep should migrate when forage collapses")
	}
	cfg := config.Cfg().Migration
	if d := m.dest.Sub(sheep.pos).Horizontal().Length(); d < cfg.MinDistance {
		t.Errorf("destination %v units away, want at least %v", d, cfg.MinDistance)
	}

	// Non-migratory species never move.
	if NewMigrate().CanStart(env.ctx, rabbit) {
		t.Error("species without migration tendency should stay")
	}
}

func TestMigrateTravelsAndArrives(t *testing.T) {
	env := newEnv()
	env.world.time = winterTick
	sheep := env.addAgent(1, "sheep", geom.Vec3{})

	m := NewMigrate()
	if !m.CanStart(env.ctx, sheep) {
		t.Fatal("migration should start")
	}
	m.Start(env.ctx, sheep)
	if env.events.migrationStarts != 1 {
		t.Error("start not recorded")
	}
	if !m.ShouldContinue(env.ctx, sheep) {
		t.Fatal("migration should run while far from the destination")
	}

	cfg := config.Cfg().Migration
	m.Tick(env.ctx, sheep)
	if sheep.nav.moveCalls != 1 {
		t.Fatal("migration should navigate")
	}
	// The first waypoint is a bounded step, not the whole journey.
	step := sheep.nav.dest.Sub(sheep.pos).Horizontal().Length()
	if step > cfg.WaypointDistance+1e-9 {
		t.Errorf("waypoint step = %v, want at most %v", step, cfg.WaypointDistance)
	}

	sheep.pos = m.dest
	if m.ShouldContinue(env.ctx, sheep) {
		t.Error("migration should end on arrival")
	}
	m.Stop(env.ctx, sheep)
	if env.events.migrationArrivals != 1 {
		t.Error("arrival not recorded")
	}
}

func TestMigrateTimesOut(t *testing.T) {
	env := newEnv()
	env.world.time = winterTick
	sheep := env.addAgent(1, "sheep", geom.Vec3{})

	m := NewMigrate()
	if !m.CanStart(env.ctx, sheep) {
		t.Fatal("migration should start")
	}
	m.Start(env.ctx, sheep)
	env.world.time += int64(config.Cfg().Migration.MaxDurationTicks) + 1
	if m.ShouldContinue(env.ctx, sheep) {
		t.Error("migration should time out")
	}
	m.Stop(env.ctx, sheep)
	if env.events.migrationArrivals != 0 {
		t.Error("timeout is not an arrival")
	}
}

func TestMigrateGivesUpWhenStuck(t *testing.T) {
	env := newEnv()
	env.world.time = winterTick
	sheep := env.addAgent(1, "sheep", geom.Vec3{})

	m := NewMigrate()
	if !m.CanStart(env.ctx, sheep) {
		t.Fatal("migration should start")
	}
	m.Start(env.ctx, sheep)

	cfg := config.Cfg().Migration
	// The sheep never moves: every stuck window adds a replan until the
	// budget runs out.
	for i := 0; i <= cfg.MaxReplans; i++ {
		env.world.time += int64(cfg.StuckWindowTicks)
		m.Tick(env.ctx, sheep)
	}
	if m.ShouldContinue(env.ctx, sheep) {
		t.Error("persistent stuckness should end the migration")
	}
}

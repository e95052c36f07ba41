package migration

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/trophic/config"
	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/seasons"
	"github.com/pthm-cable/trophic/species"
)

func init() {
	if err := config.Init(""); err != nil {
		panic(err)
	}
}

type stubNav struct{}

func (stubNav) HasPathTo(geom.Vec3) bool       { return true }
func (stubNav) MoveTo(geom.Vec3, float64) bool { return true }
func (stubNav) Following() bool                { return false }
func (stubNav) Stop()                          {}

type stubAgent struct {
	species string
	pos     geom.Vec3
	state   host.State
}

func (a *stubAgent) ID() host.AgentID          { return 1 }
func (a *stubAgent) SpeciesID() string         { return a.species }
func (a *stubAgent) Position() geom.Vec3       { return a.pos }
func (a *stubAgent) Velocity() geom.Vec3       { return geom.Vec3{} }
func (a *stubAgent) Alive() bool               { return true }
func (a *stubAgent) Adult() bool               { return true }
func (a *stubAgent) State() *host.State        { return &a.state }
func (a *stubAgent) Navigator() host.Navigator { return stubNav{} }
func (a *stubAgent) TryAttack(host.Agent) bool { return false }

// stubWorld returns a biome split along the Z axis: plains to the south,
// wasteland to the north.
type stubWorld struct {
	time     int64
	noGround bool
}

func (w *stubWorld) AgentsWithin(geom.Vec3, float64) []host.Agent { return nil }
func (w *stubWorld) AgentByID(host.AgentID) (host.Agent, bool)    { return nil, false }
func (w *stubWorld) LineOfSight(geom.Vec3, geom.Vec3) bool        { return true }
func (w *stubWorld) GroundLevel(x, z float64) (float64, bool) {
	if w.noGround {
		return 0, false
	}
	return 7, true
}
func (w *stubWorld) BiomeAt(pos geom.Vec3) (string, float64) {
	if pos.Z > 0 {
		return "plains", 15
	}
	return "wasteland", 15
}
func (w *stubWorld) Time() int64                        { return w.time }
func (w *stubWorld) SpawnLitter(string, geom.Vec3, int) {}
func (w *stubWorld) Hurt(host.Agent, float64)           {}
func (w *stubWorld) FindForage(geom.Vec3, float64, float64, string) (host.ForageTarget, bool) {
	return host.ForageTarget{}, false
}
func (w *stubWorld) ConsumeForage(host.ForageTarget) bool { return false }

func migratoryCatalog() *species.Catalog {
	cat := species.NewCatalog()
	cat.Register(species.NewBuilder("goose").
		TrophicLevel(2).
		PreferredBiomes("plains").
		AvoidedBiomes("wasteland").
		TemperatureTolerance(0, 30).
		MigrationTendency(0.8).
		Build())
	cat.Register(species.NewBuilder("snail").TrophicLevel(2).MigrationTendency(0).Build())
	return cat
}

const yearLength = 160000

func newPlanner(w *stubWorld) (*Planner, *species.Catalog) {
	cat := migratoryCatalog()
	clock := seasons.NewClock(yearLength)
	return NewPlanner(cat, w, seasons.NewEffects(clock), rand.New(rand.NewSource(1))), cat
}

func TestReasonSeasonal(t *testing.T) {
	w := &stubWorld{time: 3*yearLength/4 - 1} // late autumn, pressure ~1
	p, cat := newPlanner(w)

	goose := cat.Get("goose")
	if got := p.ReasonFor(goose, w.time); got != ReasonSeasonal {
		t.Errorf("late autumn reason = %v, want seasonal", got)
	}

	// Mid-summer: no pressure, good foraging, no reason.
	summer := int64(yearLength/4 + yearLength/8)
	if got := p.ReasonFor(goose, summer); got != ReasonNone {
		t.Errorf("summer reason = %v, want none", got)
	}

	// Sedentary species never migrates, even in winter famine.
	snail := cat.Get("snail")
	winter := int64(3*yearLength/4 + yearLength/8)
	if got := p.ReasonFor(snail, winter); got != ReasonNone {
		t.Errorf("snail reason = %v, want none", got)
	}
}

func TestReasonResource(t *testing.T) {
	// Mid-winter past the early urge window: foraging modifier 0.3 is
	// below threshold, so resource migration kicks in.
	w := &stubWorld{time: 3*yearLength/4 + yearLength/8}
	p, cat := newPlanner(w)
	if got := p.ReasonFor(cat.Get("goose"), w.time); got != ReasonResource {
		t.Errorf("mid-winter reason = %v, want resource", got)
	}
}

func TestPlanDestinationSouthInAutumn(t *testing.T) {
	w := &stubWorld{time: 3*yearLength/4 - 1} // autumn biases south (+Z)
	p, _ := newPlanner(w)
	goose := &stubAgent{species: "goose"}

	dest, ok := p.PlanDestination(goose, ReasonSeasonal)
	if !ok {
		t.Fatal("expected a destination; plains lie south")
	}
	if dest.Z <= 0 {
		t.Errorf("dest.Z = %v, want south (positive)", dest.Z)
	}
	if dest.Y != 7 {
		t.Errorf("dest.Y = %v, want snapped to ground 7", dest.Y)
	}
	dist := dest.Horizontal().Length()
	cfg := config.Cfg().Migration
	if dist < cfg.MinDistance || dist > cfg.MinDistance+cfg.DistanceSpread {
		t.Errorf("dest distance = %v, want within [%v, %v]", dist, cfg.MinDistance, cfg.MinDistance+cfg.DistanceSpread)
	}
}

func TestPlanDestinationFailsWithoutHabitat(t *testing.T) {
	// Spring biases north, where only wasteland lies; every attempt
	// scores 0 and planning fails.
	w := &stubWorld{time: 0}
	p, _ := newPlanner(w)
	goose := &stubAgent{species: "goose"}

	if _, ok := p.PlanDestination(goose, ReasonSeasonal); ok {
		t.Error("expected no destination northward into wasteland")
	}
}

func TestPlanDestinationNoGround(t *testing.T) {
	w := &stubWorld{time: 3*yearLength/4 - 1, noGround: true}
	p, _ := newPlanner(w)
	goose := &stubAgent{species: "goose"}
	if _, ok := p.PlanDestination(goose, ReasonSeasonal); ok {
		t.Error("expected failure when no candidate has ground")
	}
}

func TestPlanDestinationUnregisteredSpecies(t *testing.T) {
	w := &stubWorld{}
	p, _ := newPlanner(w)
	ghost := &stubAgent{species: "ghost"}
	if _, ok := p.PlanDestination(ghost, ReasonSeasonal); ok {
		t.Error("unregistered species cannot plan")
	}
}

package host

import "github.com/pthm-cable/trophic/geom"

// State is the ecological state attached to each managed agent. The
// engine owns these fields; the host only allocates and stores them.
type State struct {
	// Hunger is satiety in [0,1]; 1 is full.
	Hunger float64
	// HuntCooldownTicks counts down after a kill.
	HuntCooldownTicks int
	// BreedCooldownTicks counts down after breeding.
	BreedCooldownTicks int
	// ForageCooldownTicks counts down after a failed food search.
	ForageCooldownTicks int
	// HomePos is the spawn location, captured at the first tick the
	// engine sees the agent.
	HomePos geom.Vec3
	HomeSet bool
	// LastMealTick is the world time of the last feed.
	LastMealTick int64
	// LastStarveTick is the world time starvation damage last applied.
	LastStarveTick int64
}

// Feed adds nutritionalValue/100 to hunger, capped at 1.0.
func (s *State) Feed(nutritionalValue float64, now int64) {
	s.Hunger = geom.Clamp(s.Hunger+nutritionalValue/100, 0, 1)
	s.LastMealTick = now
}

// Restore adds a direct hunger amount, capped at 1.0.
func (s *State) Restore(amount float64, now int64) {
	s.Hunger = geom.Clamp(s.Hunger+amount, 0, 1)
	s.LastMealTick = now
}

// Drain subtracts a hunger cost, floored at 0.
func (s *State) Drain(cost float64) {
	s.Hunger = geom.Clamp(s.Hunger-cost, 0, 1)
}

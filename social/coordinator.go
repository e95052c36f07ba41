package social

import (
	"log/slog"

	"github.com/pthm-cable/trophic/geom"
	"github.com/pthm-cable/trophic/host"
	"github.com/pthm-cable/trophic/species"
)

// PackID identifies a pack within one coordinator.
type PackID int64

// Pack is a leader and its member set. Invariant: every member's pack
// pointer resolves here and Members contains the leader; empty packs are
// deleted.
type Pack struct {
	ID      PackID
	Leader  host.AgentID
	Members map[host.AgentID]bool
}

// Size returns the member count.
func (p *Pack) Size() int {
	return len(p.Members)
}

// Coordinator owns pack membership and territory claims for one world.
// All mutation happens on the tick thread.
type Coordinator struct {
	cat   *species.Catalog
	world host.World

	packs      map[PackID]*Pack
	memberPack map[host.AgentID]PackID
	nextPackID PackID

	territories *territoryIndex
}

// NewCoordinator creates an empty coordinator. territoryCellSize is the
// spatial index bucket edge length.
func NewCoordinator(cat *species.Catalog, world host.World, territoryCellSize float64) *Coordinator {
	return &Coordinator{
		cat:         cat,
		world:       world,
		packs:       make(map[PackID]*Pack),
		memberPack:  make(map[host.AgentID]PackID),
		nextPackID:  1,
		territories: newTerritoryIndex(territoryCellSize),
	}
}

// PackOf returns the pack an agent belongs to, or nil.
func (c *Coordinator) PackOf(id host.AgentID) *Pack {
	packID, ok := c.memberPack[id]
	if !ok {
		return nil
	}
	pack := c.packs[packID]
	if pack == nil || !pack.Members[id] {
		// Self-heal a dangling pointer rather than erroring.
		delete(c.memberPack, id)
		return nil
	}
	return pack
}

// GetOrAssignPack returns the agent's pack, assigning one if needed.
// Non-social species are singleton packs. Social species join the first
// nearby pack with room, form a new pack when enough packless neighbors
// exist to meet the minimum size, and otherwise stay singleton.
func (c *Coordinator) GetOrAssignPack(agent host.Agent) *Pack {
	if pack := c.PackOf(agent.ID()); pack != nil && pack.Size() > 0 {
		return pack
	}

	def := c.cat.Get(agent.SpeciesID())
	if def == nil || !def.Social.IsPack {
		return c.newPack(agent.ID())
	}

	radius := def.Social.TerritoryRadius
	if radius <= 0 {
		radius = defaultPackScanRadius
	}

	var packless []host.AgentID
	for _, other := range c.world.AgentsWithin(agent.Position(), radius) {
		if other.ID() == agent.ID() || other.SpeciesID() != agent.SpeciesID() || !other.Alive() {
			continue
		}
		if pack := c.PackOf(other.ID()); pack != nil && pack.Size() > 1 {
			if pack.Size() < def.Social.MaxPackSize {
				c.join(pack, agent.ID())
				return pack
			}
			continue
		}
		packless = append(packless, other.ID())
	}

	// Enough loose neighbors to found a pack of minimum size.
	if len(packless)+1 >= def.Social.MinPackSize {
		pack := c.newPack(agent.ID())
		for _, id := range packless {
			if pack.Size() >= def.Social.MaxPackSize {
				break
			}
			c.leave(id)
			c.join(pack, id)
		}
		return pack
	}

	return c.newPack(agent.ID())
}

// LeaveCurrentPack removes an agent from its pack. If the leader leaves
// and members remain, leadership transfers to an arbitrary member and all
// members stay pointed at the same pack.
func (c *Coordinator) LeaveCurrentPack(id host.AgentID) {
	c.leave(id)
}

func (c *Coordinator) newPack(leader host.AgentID) *Pack {
	c.leave(leader)
	pack := &Pack{
		ID:      c.nextPackID,
		Leader:  leader,
		Members: map[host.AgentID]bool{leader: true},
	}
	c.nextPackID++
	c.packs[pack.ID] = pack
	c.memberPack[leader] = pack.ID
	return pack
}

func (c *Coordinator) join(pack *Pack, id host.AgentID) {
	pack.Members[id] = true
	c.memberPack[id] = pack.ID
}

func (c *Coordinator) leave(id host.AgentID) {
	packID, ok := c.memberPack[id]
	if !ok {
		return
	}
	delete(c.memberPack, id)
	pack := c.packs[packID]
	if pack == nil {
		return
	}
	delete(pack.Members, id)

	if len(pack.Members) == 0 {
		delete(c.packs, packID)
		return
	}
	if pack.Leader == id {
		for member := range pack.Members {
			pack.Leader = member
			break
		}
		slog.Debug("pack leadership transferred", "pack", pack.ID, "leader", pack.Leader)
	}
}

// PackCentroid returns the mean position of all live, located members.
// ok is false when no member can be located.
func (c *Coordinator) PackCentroid(pack *Pack) (geom.Vec3, bool) {
	var sum geom.Vec3
	n := 0
	for id := range pack.Members {
		agent, ok := c.world.AgentByID(id)
		if !ok || !agent.Alive() {
			continue
		}
		sum = sum.Add(agent.Position())
		n++
	}
	if n == 0 {
		return geom.Vec3{}, false
	}
	return sum.Scale(1 / float64(n)), true
}

// ClaimTerritory replaces any prior claim by the agent with a new
// territory centered at its current position.
func (c *Coordinator) ClaimTerritory(agent host.Agent, radius float64) *Territory {
	t := &Territory{
		Owner:     agent.ID(),
		SpeciesID: agent.SpeciesID(),
		Center:    agent.Position(),
		Radius:    radius,
		ClaimTick: c.world.Time(),
	}
	c.territories.insert(t)
	return t
}

// ReleaseTerritory removes an agent's claim, if any.
func (c *Coordinator) ReleaseTerritory(owner host.AgentID) {
	c.territories.remove(owner)
}

// TerritoryOf returns an agent's territory, or nil.
func (c *Coordinator) TerritoryOf(owner host.AgentID) *Territory {
	return c.territories.byOwner[owner]
}

// TerritoryAt returns the territory containing a position, or nil.
func (c *Coordinator) TerritoryAt(pos geom.Vec3) *Territory {
	return c.territories.at(pos)
}

// IsIntruding reports whether an agent stands inside a same-species
// territory it does not own.
func (c *Coordinator) IsIntruding(agent host.Agent) bool {
	t := c.territories.at(agent.Position())
	return t != nil && t.SpeciesID == agent.SpeciesID() && t.Owner != agent.ID()
}

// OnEntityRemoved purges pack membership and territory claims for an
// agent leaving the world. The host must call this on despawn and death.
func (c *Coordinator) OnEntityRemoved(id host.AgentID) {
	c.leave(id)
	c.territories.remove(id)
}

// Packs returns the number of live packs.
func (c *Coordinator) Packs() int {
	return len(c.packs)
}

// defaultPackScanRadius bounds the neighbor scan for species that declare
// no territory radius.
const defaultPackScanRadius = 24.0

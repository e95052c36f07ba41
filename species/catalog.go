package species

import "log/slog"

// Catalog stores species definitions and the derived predator/prey
// adjacency. One catalog per simulated world; registration happens during
// load, never mid-tick, so no locking is needed.
type Catalog struct {
	defs        map[string]*Definition
	preyOf      map[string]map[string]bool // predator -> prey ids
	predatorsOf map[string]map[string]bool // prey -> predator ids
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		defs:        make(map[string]*Definition),
		preyOf:      make(map[string]map[string]bool),
		predatorsOf: make(map[string]map[string]bool),
	}
}

// Register stores a definition by id and rebuilds its adjacency entries.
// Registering an id twice overwrites the earlier definition with a warning.
func (c *Catalog) Register(def Definition) {
	if _, exists := c.defs[def.ID]; exists {
		slog.Warn("species registered twice, overwriting", "species", def.ID)
		c.removeAdjacency(def.ID)
	}

	stored := def
	c.defs[def.ID] = &stored

	prey := make(map[string]bool, len(def.Diet.Prey))
	for preyID := range def.Diet.Prey {
		prey[preyID] = true
		preds := c.predatorsOf[preyID]
		if preds == nil {
			preds = make(map[string]bool)
			c.predatorsOf[preyID] = preds
		}
		preds[def.ID] = true
	}
	c.preyOf[def.ID] = prey
}

// Get returns the definition for an id, or nil if unregistered.
func (c *Catalog) Get(id string) *Definition {
	return c.defs[id]
}

// PreyOf returns the set of species the given species hunts.
// The returned map is shared; callers must not mutate it.
func (c *Catalog) PreyOf(id string) map[string]bool {
	return c.preyOf[id]
}

// PredatorsOf returns the set of species that hunt the given species.
func (c *Catalog) PredatorsOf(id string) map[string]bool {
	return c.predatorsOf[id]
}

// IsPrey reports whether prey is in predator's prey table.
func (c *Catalog) IsPrey(predator, prey string) bool {
	return c.preyOf[predator][prey]
}

// ByTrophicLevel returns all definitions at the given trophic level.
func (c *Catalog) ByTrophicLevel(level int) []*Definition {
	var out []*Definition
	for _, def := range c.defs {
		if def.TrophicLevel == level {
			out = append(out, def)
		}
	}
	return out
}

// All returns every registered definition.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, 0, len(c.defs))
	for _, def := range c.defs {
		out = append(out, def)
	}
	return out
}

// Len returns the number of registered species.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Clear removes all definitions and adjacency. Used for bulk reload.
func (c *Catalog) Clear() {
	c.defs = make(map[string]*Definition)
	c.preyOf = make(map[string]map[string]bool)
	c.predatorsOf = make(map[string]map[string]bool)
}

func (c *Catalog) removeAdjacency(id string) {
	for preyID := range c.preyOf[id] {
		delete(c.predatorsOf[preyID], id)
		if len(c.predatorsOf[preyID]) == 0 {
			delete(c.predatorsOf, preyID)
		}
	}
	delete(c.preyOf, id)
}

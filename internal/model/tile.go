package model

// TileKind discriminates the two tile families. Rendering and behavior are
// data-driven off the kind rather than subtyping.
type TileKind string

const (
	TileKindResource TileKind = "resource"
	TileKindCulture  TileKind = "culture"
)

// ResourceType is a resource tag carried by resource tiles and demanded by
// placement costs.
type ResourceType string

const (
	ResourceWood  ResourceType = "wood"
	ResourceWheat ResourceType = "wheat"
	ResourceStone ResourceType = "stone"
	ResourceGold  ResourceType = "gold"
)

// TileDefinition is an immutable catalog entry. Count is how many instances
// the deck holds.
type TileDefinition struct {
	Kind      TileKind       `json:"kind"`
	Name      string         `json:"name"`
	Cost      []ResourceType `json:"cost"`
	Resources []ResourceType `json:"resources,omitempty"`
	Score     int            `json:"score,omitempty"`
	Count     int            `json:"count"`
}

// Materialize produces an independent TileInstance from the definition.
// Slices are deep-copied so sessions never share mutable catalog state.
func (d TileDefinition) Materialize() *TileInstance {
	t := &TileInstance{
		Kind:  d.Kind,
		Name:  d.Name,
		Score: d.Score,
		Cost:  make([]ResourceType, len(d.Cost)),
	}
	copy(t.Cost, d.Cost)
	if len(d.Resources) > 0 {
		t.Resources = make([]ResourceType, len(d.Resources))
		copy(t.Resources, d.Resources)
	}
	return t
}

// TileInstance is a materialized tile. It is owned by exactly one of the deck,
// a player's hand, or a board cell; draws and placements move it, never copy.
// A resource tile's Resources list is drained in place by cost payments; a
// culture tile's Score never changes.
type TileInstance struct {
	Kind      TileKind       `json:"kind"`
	Name      string         `json:"name"`
	Cost      []ResourceType `json:"cost"`
	Resources []ResourceType `json:"resources,omitempty"`
	Score     int            `json:"score,omitempty"`
	OwnerID   PlayerID       `json:"owner_id,omitempty"`
}

// Clone returns an independent copy of the tile.
func (t *TileInstance) Clone() *TileInstance {
	if t == nil {
		return nil
	}
	c := *t
	c.Cost = cloneResourceList(t.Cost)
	c.Resources = cloneResourceList(t.Resources)
	return &c
}

func cloneResourceList(src []ResourceType) []ResourceType {
	if src == nil {
		return nil
	}
	out := make([]ResourceType, len(src))
	copy(out, src)
	return out
}

// ZeroCost reports whether the tile can be placed without adjacent resources.
func (t *TileInstance) ZeroCost() bool {
	return len(t.Cost) == 0
}

// RemoveResource removes the first occurrence of res from the tile's resource
// list. It reports whether a unit was removed.
func (t *TileInstance) RemoveResource(res ResourceType) bool {
	for i, r := range t.Resources {
		if r == res {
			t.Resources = append(t.Resources[:i], t.Resources[i+1:]...)
			return true
		}
	}
	return false
}

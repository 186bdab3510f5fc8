package session

import "github.com/realmforge/realmforge/pkg/actor"

// heroes returns the combatants currently flagged HERO. Loot goes to the
// whole party: every hero receives a copy.
func (s *Session) heroes() []*actor.Combatant {
	var hs []*actor.Combatant
	for _, c := range s.Combatants {
		if c.Disposition == actor.DispositionHero {
			hs = append(hs, c)
		}
	}
	return hs
}

// LootAll moves the source's entire inventory and gold to every HERO
// combatant and empties the source. Looting an unknown or already-empty
// source is a no-op.
func (s *Session) LootAll(sourceID string) {
	src := s.Combatant(sourceID)
	if src == nil {
		return
	}
	if len(src.Inventory) == 0 && src.Gold == 0 {
		return
	}
	items := src.Inventory
	gold := src.Gold
	for _, h := range s.heroes() {
		if h.ID == src.ID {
			continue
		}
		h.Inventory = append(h.Inventory, items...)
		h.Gold += gold
	}
	src.Inventory = nil
	src.Gold = 0
	s.Log("[LOOT] Everything was claimed from %s.", src.Name)
}

// LootItem moves the item at index from the source to every HERO
// combatant. The index is re-validated against the source's current
// inventory; a stale index is a silent no-op.
func (s *Session) LootItem(sourceID string, index int) {
	src := s.Combatant(sourceID)
	if src == nil {
		return
	}
	if index < 0 || index >= len(src.Inventory) {
		return
	}
	item := src.Inventory[index]
	src.Inventory = append(src.Inventory[:index], src.Inventory[index+1:]...)
	for _, h := range s.heroes() {
		if h.ID == src.ID {
			continue
		}
		h.Inventory = append(h.Inventory, item)
	}
	s.Log("[LOOT] Claimed %q from the remains.", item)
}

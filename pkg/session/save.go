package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/dice"
)

// Save is the serializable snapshot of a session, the shape persisted in
// the adventure-save collection. Transient effects are not part of it.
type Save struct {
	ID                  uuid.UUID          `json:"id"`
	WorldID             string             `json:"world_id,omitempty"`
	CharacterID         string             `json:"character_id,omitempty"`
	Combatants          []*actor.Combatant `json:"combatants"`
	Round               int                `json:"round"`
	CurrentTurnID       string             `json:"current_turn_id,omitempty"`
	CurrentLocationName string             `json:"current_location_name,omitempty"`
	LocationHistory     []Location         `json:"location_history,omitempty"`
	Chronicle           []string           `json:"chronicle,omitempty"`
	LastUpdated         time.Time          `json:"last_updated"`
}

// Snapshot captures the session for persistence.
func (s *Session) Snapshot() *Save {
	save := &Save{
		ID:              s.ID,
		WorldID:         s.WorldID,
		CharacterID:     s.CharacterID,
		Combatants:      s.Combatants,
		Round:           s.Round,
		CurrentTurnID:   s.CurrentTurnID,
		LocationHistory: s.LocationHistory,
		Chronicle:       s.Chronicle,
		LastUpdated:     time.Now(),
	}
	if s.CurrentLocation != nil {
		save.CurrentLocationName = s.CurrentLocation.Name
	}
	return save
}

// Restore rebuilds a session from a snapshot. A missing current-location
// name falls back to the most recent history entry.
func Restore(save *Save, r dice.Roller) *Session {
	s := New(r)
	s.ID = save.ID
	s.WorldID = save.WorldID
	s.CharacterID = save.CharacterID
	s.Combatants = save.Combatants
	s.Round = save.Round
	s.CurrentTurnID = save.CurrentTurnID
	s.LocationHistory = save.LocationHistory
	s.Chronicle = save.Chronicle
	for i := range s.LocationHistory {
		if s.LocationHistory[i].Name == save.CurrentLocationName {
			s.CurrentLocation = &s.LocationHistory[i]
			break
		}
	}
	if s.CurrentLocation == nil && len(s.LocationHistory) > 0 {
		s.CurrentLocation = &s.LocationHistory[0]
	}
	return s
}

// Package world holds campaign-setting models and the shared community
// library item shape.
package world

import (
	"encoding/json"
	"fmt"
	"time"
)

// World is a campaign setting: read-only input to location generation.
type World struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Tags        []string  `json:"tags,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// Validate enforces the world-builder finalization rules.
func (w *World) Validate() error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	if w.Name == "" {
		return fmt.Errorf("world name is required")
	}
	return nil
}

// Tags available in the world builder. Open set; custom tags carry through.
var Tags = []string{
	"High Fantasy", "Dark Fantasy", "Steampunk", "Seafaring", "Desert",
	"Frozen North", "Underdark", "Feywild", "Post-Apocalyptic", "Political Intrigue",
	"Horror", "Ancient Ruins",
}

// Premade worlds offered alongside the player's own.
var Premade = []World{
	{
		ID:          "world-emberfall",
		Name:        "Embersfall",
		Tags:        []string{"High Fantasy", "Ancient Ruins"},
		Description: "A realm rebuilt atop the cinders of a fallen empire, where buried vaults still hum with old magic.",
	},
	{
		ID:          "world-saltmarrow",
		Name:        "The Saltmarrow Isles",
		Tags:        []string{"Seafaring", "Horror"},
		Description: "A scattered archipelago of whaling towns and drowned temples, haunted by things the tide brings in.",
	},
	{
		ID:          "world-gloamreach",
		Name:        "Gloamreach",
		Tags:        []string{"Dark Fantasy", "Political Intrigue"},
		Description: "A city-state of perpetual dusk ruled by rival lantern-guilds, where light itself is currency.",
	},
}

// Community item types.
const (
	ItemTypeCharacter = "character"
	ItemTypeWorld     = "world"
)

// CommunityItem is a shared character or world snapshot in the community
// library. Data holds the original record verbatim; readers decode it by
// Type and tolerate missing fields.
type CommunityItem struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Author    string          `json:"author"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Validate rejects items that cannot be listed.
func (i *CommunityItem) Validate() error {
	if i == nil {
		return fmt.Errorf("community item is nil")
	}
	if i.Type != ItemTypeCharacter && i.Type != ItemTypeWorld {
		return fmt.Errorf("unknown community item type: %q", i.Type)
	}
	if len(i.Data) == 0 {
		return fmt.Errorf("community item has no data")
	}
	return nil
}

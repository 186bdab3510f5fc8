// Package character holds the player-character and world-building models
// produced by the creator flow and stored in the vault.
package character

import (
	"fmt"
	"time"

	"github.com/jwebster45206/d20"

	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/dice"
)

// Weapon describes a character's weapon stat block.
type Weapon struct {
	Name       string   `json:"name"`
	Damage     string   `json:"damage"` // damage die, e.g. "1d8"
	Type       string   `json:"type"`   // damage type, e.g. "Slashing"
	Properties []string `json:"properties"`
}

// Validate rejects weapons missing their required stat-block fields.
// Generated weapons pass through here before being accepted.
func (w *Weapon) Validate() error {
	if w == nil {
		return fmt.Errorf("weapon is nil")
	}
	if w.Name == "" {
		return fmt.Errorf("weapon missing name")
	}
	if w.Damage == "" {
		return fmt.Errorf("weapon %q missing damage die", w.Name)
	}
	if w.Type == "" {
		return fmt.Errorf("weapon %q missing damage type", w.Name)
	}
	return nil
}

// HomebrewTraits captures free-text lore for custom races.
type HomebrewTraits struct {
	AvgHeight      string `json:"avg_height,omitempty"`
	Ancestors      string `json:"ancestors,omitempty"`
	RaceBackstory  string `json:"race_backstory,omitempty"`
	Speed          string `json:"speed,omitempty"`
	Size           string `json:"size,omitempty"`
	SpecialAttacks string `json:"special_attacks,omitempty"`
	Resistances    string `json:"resistances,omitempty"`
	Abilities      string `json:"abilities,omitempty"`
}

// SpellSlotData tracks one spell level's slots.
type SpellSlotData struct {
	Max  int `json:"max"`
	Used int `json:"used"`
}

// Character is a vault-persisted player character.
type Character struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Race            string                `json:"race"`
	CustomRaceName  string                `json:"custom_race_name,omitempty"`
	Class           string                `json:"class"`
	CustomClassName string                `json:"custom_class_name,omitempty"`
	Appearance      Appearance            `json:"appearance"`
	Backstory       string                `json:"backstory,omitempty"`
	Stats           actor.Stats           `json:"stats"`
	ManualModifiers map[string]int        `json:"manual_modifiers,omitempty"`
	Weapon          Weapon                `json:"weapon"`
	Alignment       string                `json:"alignment,omitempty"`
	Level           int                   `json:"level,omitempty"`
	Gold            int                   `json:"gold"`
	HomebrewTraits  *HomebrewTraits       `json:"homebrew_traits,omitempty"`
	Inventory       map[string][]string   `json:"inventory,omitempty"`
	SpellSlots      map[int]SpellSlotData `json:"spell_slots,omitempty"`
	CreatedAt       time.Time             `json:"created_at,omitempty"`
}

// Hero combat defaults: base HP before the constitution modifier and
// unarmored AC before the dexterity modifier.
const (
	heroBaseHP = 15
	heroBaseAC = 10
)

// FlatInventory collapses the categorized inventory into a single ordered
// list, the shape a combatant carries.
func (c *Character) FlatInventory() []string {
	var items []string
	for _, cat := range inventoryCategories {
		items = append(items, c.Inventory[cat]...)
	}
	// Categories outside the curated list still get carried.
	for cat, group := range c.Inventory {
		if !isKnownCategory(cat) {
			items = append(items, group...)
		}
	}
	return items
}

// BuildActor materializes the character as a d20 actor, the runtime
// representation used for HP/AC bookkeeping.
func (c *Character) BuildActor() (*d20.Actor, error) {
	if c.ID == "" {
		return nil, fmt.Errorf("character has no id")
	}
	hp := heroBaseHP + c.Stats.ConModifier()
	if hp < 1 {
		hp = 1
	}
	a, err := d20.NewActor(c.ID).
		WithHP(hp).
		WithAC(heroBaseAC + c.Stats.DexModifier()).
		WithAttributes(c.Stats.ToAttributes()).
		WithCombatModifiers(c.ManualModifiers).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}
	return a, nil
}

// HeroCombatant materializes the character as a HERO combatant anchored at
// the hero spawn point. The session reads this once at adventure start;
// later mutations stay on the combatant, not the character.
func (c *Character) HeroCombatant() (*actor.Combatant, error) {
	a, err := c.BuildActor()
	if err != nil {
		return nil, err
	}
	return &actor.Combatant{
		ID:          c.ID,
		Name:        c.Name,
		HP:          a.HP(),
		MaxHP:       a.MaxHP(),
		AC:          a.AC(),
		Disposition: actor.DispositionHero,
		X:           50,
		Y:           85,
		Stats:       c.Stats,
		Inventory:   c.FlatInventory(),
		Gold:        c.Gold,
	}, nil
}

// RaceName returns the display race, resolving homebrew to its custom name.
func (c *Character) RaceName() string {
	if c.Race == RaceHomebrew && c.CustomRaceName != "" {
		return c.CustomRaceName
	}
	return c.Race
}

// ClassName returns the display class, resolving homebrew to its custom name.
func (c *Character) ClassName() string {
	if c.Class == ClassHomebrew && c.CustomClassName != "" {
		return c.CustomClassName
	}
	return c.Class
}

// WeaponModifier returns the formatted attack modifier for the character's
// weapon, using dexterity for finesse weapons and strength otherwise.
func (c *Character) WeaponModifier() string {
	score := c.Stats.Strength
	for _, p := range c.Weapon.Properties {
		if p == "Finesse" {
			if c.Stats.Dexterity > score {
				score = c.Stats.Dexterity
			}
			break
		}
	}
	return dice.FormatModifier(dice.Modifier(score))
}

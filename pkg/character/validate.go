package character

import (
	"fmt"
	"sort"
)

// Homebrew markers: a race or class set to Homebrew requires a custom name.
const (
	RaceHomebrew  = "Homebrew"
	ClassHomebrew = "Homebrew"
)

// Races and Classes available in the creator, plus Homebrew.
var (
	Races = []string{
		"Human", "Elf", "Dwarf", "Halfling", "Dragonborn", "Gnome",
		"Half-Elf", "Half-Orc", "Tiefling", "Aasimar", "Tabaxi", "Goliath",
		"Firbolg", "Kenku", "Lizardfolk", "Tortle", "Genasi", "Gith",
		"Astral Elf", "Owlin", "Harengon", RaceHomebrew,
	}
	Classes = []string{
		"Barbarian", "Bard", "Cleric", "Druid", "Fighter", "Monk",
		"Paladin", "Ranger", "Rogue", "Sorcerer", "Warlock", "Wizard",
		"Artificer", "Blood Hunter", ClassHomebrew,
	}
)

// StandardArray is the fixed pool of ability scores. Each value is assigned
// to exactly one ability during creation.
var StandardArray = []int{15, 14, 13, 12, 10, 8}

// inventoryCategories is the display order for the categorized inventory.
var inventoryCategories = []string{"Weapons", "Armor", "Adventuring Gear", "Consumables", "Treasure"}

func isKnownCategory(cat string) bool {
	for _, c := range inventoryCategories {
		if c == cat {
			return true
		}
	}
	return false
}

// Validate enforces the finalization rules of the creator flow. A failed
// validation blocks the save; it never mutates the character.
func (c *Character) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("character name is required")
	}
	if c.Race == RaceHomebrew && c.CustomRaceName == "" {
		return fmt.Errorf("homebrew race requires a custom race name")
	}
	if c.Class == ClassHomebrew && c.CustomClassName == "" {
		return fmt.Errorf("homebrew class requires a custom class name")
	}
	if err := ValidateStandardArray(c.Stats.ToAttributes()); err != nil {
		return err
	}
	return nil
}

// ValidateStandardArray checks that the six ability scores are exactly the
// standard array: every score assigned, no pool value used twice.
func ValidateStandardArray(scores map[string]int) error {
	if len(scores) != len(StandardArray) {
		return fmt.Errorf("expected %d ability scores, got %d", len(StandardArray), len(scores))
	}
	assigned := make([]int, 0, len(scores))
	for ability, score := range scores {
		if score == 0 {
			return fmt.Errorf("ability %s is unassigned", ability)
		}
		assigned = append(assigned, score)
	}
	sort.Ints(assigned)
	pool := append([]int(nil), StandardArray...)
	sort.Ints(pool)
	for i := range pool {
		if assigned[i] != pool[i] {
			return fmt.Errorf("ability scores must use each standard array value exactly once")
		}
	}
	return nil
}

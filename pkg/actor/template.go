package actor

import "fmt"

// MonsterAction is a single stat-block action.
type MonsterAction struct {
	Name        string `json:"name"`
	Desc        string `json:"desc"`
	AttackBonus int    `json:"attack_bonus,omitempty"`
	DamageDice  string `json:"damage_dice,omitempty"`
	DamageBonus int    `json:"damage_bonus,omitempty"`
}

// Template is a static stat-block definition used to spawn a Combatant.
// Templates come from the bundled bestiary or from structured generation,
// so required fields are validated before spawning.
type Template struct {
	Name            string          `json:"name"`
	HP              int             `json:"hp"`
	AC              int             `json:"ac"`
	Stats           Stats           `json:"stats"`
	Size            string          `json:"size,omitempty"`
	Speed           string          `json:"speed,omitempty"`
	Resistances     []string        `json:"resistances,omitempty"`
	Vulnerabilities []string        `json:"vulnerabilities,omitempty"`
	Immunities      []string        `json:"immunities,omitempty"`
	Actions         []MonsterAction `json:"actions,omitempty"`
	Inventory       []string        `json:"inventory,omitempty"`

	// Gold is nil when unspecified; spawning rolls a random hoard instead.
	Gold *int `json:"gold,omitempty"`
}

// Validate rejects templates missing the fields a spawn depends on.
func (t *Template) Validate() error {
	if t == nil {
		return fmt.Errorf("template is nil")
	}
	if t.Name == "" {
		return fmt.Errorf("template missing name")
	}
	if t.HP <= 0 {
		return fmt.Errorf("template %q missing hp", t.Name)
	}
	if t.AC <= 0 {
		return fmt.Errorf("template %q missing ac", t.Name)
	}
	return nil
}

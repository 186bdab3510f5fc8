package actor

import "github.com/realmforge/realmforge/pkg/dice"

// Stats represents the six core ability scores.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// ToAttributes converts Stats to a map for d20.Actor compatibility.
func (s *Stats) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// DexModifier returns the dexterity modifier, used for initiative.
func (s *Stats) DexModifier() int {
	return dice.Modifier(s.Dexterity)
}

// ConModifier returns the constitution modifier, used for hero HP.
func (s *Stats) ConModifier() int {
	return dice.Modifier(s.Constitution)
}

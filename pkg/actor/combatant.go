package actor

// Disposition classifies a combatant's allegiance, independent of identity.
type Disposition string

const (
	DispositionHero  Disposition = "HERO"
	DispositionAlly  Disposition = "ALLY"
	DispositionNPC   Disposition = "NPC"
	DispositionEnemy Disposition = "ENEMY"
)

// dispositionCycle is the fixed order the toggle walks through.
var dispositionCycle = []Disposition{
	DispositionHero,
	DispositionAlly,
	DispositionNPC,
	DispositionEnemy,
}

// Next returns the following disposition in the HERO→ALLY→NPC→ENEMY cycle.
// Unknown values restart at HERO.
func (d Disposition) Next() Disposition {
	for i, v := range dispositionCycle {
		if v == d {
			return dispositionCycle[(i+1)%len(dispositionCycle)]
		}
	}
	return DispositionHero
}

// Valid reports whether d is one of the four known dispositions.
func (d Disposition) Valid() bool {
	for _, v := range dispositionCycle {
		if v == d {
			return true
		}
	}
	return false
}

// Combatant is a participant placed on the encounter map.
// Defeated combatants (HP 0) stay in the roster and become loot-only.
type Combatant struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	HP    int `json:"hp"`
	MaxHP int `json:"max_hp"`
	AC    int `json:"ac"`

	Disposition Disposition `json:"disposition"`

	// Percentage placement on the encounter map image, [0,100].
	X float64 `json:"x"`
	Y float64 `json:"y"`

	Stats Stats `json:"stats"`

	// Initiative is nil until rolled.
	Initiative *int `json:"initiative,omitempty"`

	Size    string          `json:"size,omitempty"`
	Speed   string          `json:"speed,omitempty"`
	Actions []MonsterAction `json:"actions,omitempty"`

	Inventory []string `json:"inventory,omitempty"`
	Gold      int      `json:"gold"`

	ImageURL string `json:"image_url,omitempty"`
}

// AdjustHP applies a signed delta, clamping the result into [0, MaxHP].
// The clamped value is authoritative; the applied delta is returned.
func (c *Combatant) AdjustHP(delta int) int {
	prev := c.HP
	next := prev + delta
	if next < 0 {
		next = 0
	}
	if next > c.MaxHP {
		next = c.MaxHP
	}
	c.HP = next
	return next - prev
}

// IsDefeated reports whether the combatant is at 0 HP.
func (c *Combatant) IsDefeated() bool {
	return c.HP <= 0
}

// MoveTo places the token, clamping both coordinates into [0,100].
func (c *Combatant) MoveTo(x, y float64) {
	c.X = clampPercent(x)
	c.Y = clampPercent(y)
}

// mapGridStep is the snap granularity in percent of the map edge.
const mapGridStep = 5.0

// SnapToGrid centers the token in its grid cell, matching the drag-release
// behavior of the map view.
func (c *Combatant) SnapToGrid() {
	c.X = snap(c.X)
	c.Y = snap(c.Y)
}

func snap(v float64) float64 {
	cell := float64(int(v / mapGridStep))
	return clampPercent(cell*mapGridStep + mapGridStep/2)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

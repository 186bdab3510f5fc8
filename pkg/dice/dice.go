// Package dice provides die rolls and ability-score modifier math.
package dice

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Roller is the die-rolling dependency. Production code uses Default;
// tests inject a deterministic implementation.
type Roller = dice.Roller

// Default rolls with rpg-toolkit's standard randomness source.
var Default Roller = dice.DefaultRoller

// Roll returns a uniform value in [1, sides].
func Roll(r Roller, sides int) (int, error) {
	if sides < 1 {
		return 0, fmt.Errorf("invalid die size: %d", sides)
	}
	v, err := r.Roll(sides)
	if err != nil {
		return 0, fmt.Errorf("roll d%d: %w", sides, err)
	}
	return v, nil
}

// Modifier returns the 5e ability modifier floor((score-10)/2).
// Integer division truncates toward zero, so negative deltas are
// floored by hand.
func Modifier(score int) int {
	d := score - 10
	if d < 0 {
		return -((-d + 1) / 2)
	}
	return d / 2
}

// FormatModifier renders a modifier with an explicit leading sign,
// e.g. "+2", "+0", "-1".
func FormatModifier(mod int) string {
	if mod >= 0 {
		return fmt.Sprintf("+%d", mod)
	}
	return fmt.Sprintf("%d", mod)
}

// DieName renders a die label for display, with d100 shown as "d%".
func DieName(sides int) string {
	if sides == 100 {
		return "d%"
	}
	return fmt.Sprintf("d%d", sides)
}

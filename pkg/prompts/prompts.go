// Package prompts builds the text sent to the generation provider. Each
// flow has one builder; handlers never assemble prompt strings inline, so
// the wording lives in one place.
package prompts

import (
	"fmt"
	"strings"
)

// BackstoryPrompt is the base instruction for character backstories.
const BackstoryPrompt = "Write a short backstory (3-4 sentences) for %s, a %s %s."

// NarrationPrompt is the base instruction for combat action narration.
const NarrationPrompt = "Narrate in two vivid sentences: %s attempts to %s"

// WeaponPrompt is the base instruction for signature weapon generation.
const WeaponPrompt = "Forge a signature starting weapon for a %s."

// LocationPrompt is the base instruction for location manifests.
const LocationPrompt = "Conjure a battle location: %s."

// MapImagePrompt is the base instruction for battle map images.
const MapImagePrompt = "Top-down fantasy battle map of %s. %s"

// AppearancePrompt is the base instruction for extracting appearance
// fields from freeform description.
const AppearancePrompt = "Extract the character's appearance from this description, choosing the closest fit for each field: %s"

// MonsterPrompt is the base instruction for scrying unknown monsters.
const MonsterPrompt = "Scry a balanced low-level stat block for a monster called %q."

// PortraitPrompt prefixes character portrait image prompts.
const PortraitPrompt = "Fantasy character portrait, painterly style. "

// Backstory builds the backstory prompt. Alignment and world name are
// optional flavor.
func Backstory(name, race, class, alignment, worldName string) string {
	prompt := fmt.Sprintf(BackstoryPrompt, name, race, class)
	if alignment != "" {
		prompt += fmt.Sprintf(" Their alignment is %s.", alignment)
	}
	if worldName != "" {
		prompt += fmt.Sprintf(" They live in the world of %s.", worldName)
	}
	return prompt
}

// Narration builds the action narration prompt. Target is optional.
func Narration(actorName, action, target string) string {
	prompt := fmt.Sprintf(NarrationPrompt, actorName, action)
	if target != "" {
		prompt += " against " + target
	}
	return prompt + "."
}

// Weapon builds the signature weapon prompt, appending any freeform
// player request.
func Weapon(class, extra string) string {
	prompt := fmt.Sprintf(WeaponPrompt, class)
	if extra != "" {
		prompt += " " + extra
	}
	return prompt
}

// Location builds the location manifest prompt.
func Location(request, worldName string) string {
	prompt := fmt.Sprintf(LocationPrompt, strings.TrimSpace(request))
	if worldName != "" {
		prompt += fmt.Sprintf(" Set in the world of %s.", worldName)
	}
	return prompt
}

// MapImage builds the battle map image prompt from a generated manifest.
func MapImage(name, environmentState string) string {
	return fmt.Sprintf(MapImagePrompt, name, environmentState)
}

// Appearance builds the appearance extraction prompt.
func Appearance(description string) string {
	return fmt.Sprintf(AppearancePrompt, strings.TrimSpace(description))
}

// Monster builds the scrying prompt for an unknown monster name.
func Monster(name string) string {
	return fmt.Sprintf(MonsterPrompt, name)
}

// Portrait builds the character portrait image prompt.
func Portrait(description string) string {
	return PortraitPrompt + description
}

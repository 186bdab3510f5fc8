package prompts

import (
	"strings"
	"testing"
)

func TestBackstory(t *testing.T) {
	p := Backstory("Sera", "Elf", "Fighter", "", "")
	if p != "Write a short backstory (3-4 sentences) for Sera, a Elf Fighter." {
		t.Errorf("unexpected prompt: %q", p)
	}

	p = Backstory("Sera", "Elf", "Fighter", "Chaotic Good", "Aeltheria")
	if !strings.Contains(p, "Their alignment is Chaotic Good.") {
		t.Errorf("alignment missing from prompt: %q", p)
	}
	if !strings.Contains(p, "the world of Aeltheria") {
		t.Errorf("world missing from prompt: %q", p)
	}
}

func TestNarration(t *testing.T) {
	p := Narration("Sera", "leap the chasm", "")
	if p != "Narrate in two vivid sentences: Sera attempts to leap the chasm." {
		t.Errorf("unexpected prompt: %q", p)
	}

	p = Narration("Sera", "swing her blade", "the goblin")
	if !strings.HasSuffix(p, "against the goblin.") {
		t.Errorf("target not appended: %q", p)
	}
}

func TestWeapon(t *testing.T) {
	p := Weapon("Rogue", "")
	if p != "Forge a signature starting weapon for a Rogue." {
		t.Errorf("unexpected prompt: %q", p)
	}

	p = Weapon("Rogue", "Something with a curse on it.")
	if !strings.HasSuffix(p, "Something with a curse on it.") {
		t.Errorf("extra request not appended: %q", p)
	}
}

func TestLocation(t *testing.T) {
	p := Location("  a sunken temple  ", "")
	if p != "Conjure a battle location: a sunken temple." {
		t.Errorf("request not trimmed: %q", p)
	}

	p = Location("a sunken temple", "Aeltheria")
	if !strings.Contains(p, "Set in the world of Aeltheria.") {
		t.Errorf("world missing from prompt: %q", p)
	}
}

func TestMapImage(t *testing.T) {
	p := MapImage("The Sunken Temple", "Knee-deep brine, toppled idols.")
	if !strings.Contains(p, "battle map of The Sunken Temple") {
		t.Errorf("name missing from prompt: %q", p)
	}
	if !strings.Contains(p, "Knee-deep brine") {
		t.Errorf("environment missing from prompt: %q", p)
	}
}

func TestAppearance(t *testing.T) {
	p := Appearance("  a towering half-orc with a braided topknot ")
	if !strings.HasSuffix(p, "a towering half-orc with a braided topknot") {
		t.Errorf("description not trimmed and appended: %q", p)
	}
}

func TestMonster(t *testing.T) {
	p := Monster("gloom stalker")
	if !strings.Contains(p, `"gloom stalker"`) {
		t.Errorf("name not quoted in prompt: %q", p)
	}
}

func TestPortrait(t *testing.T) {
	p := Portrait("A scarred elf with silver hair.")
	if !strings.HasPrefix(p, PortraitPrompt) {
		t.Errorf("missing style prefix: %q", p)
	}
	if !strings.HasSuffix(p, "silver hair.") {
		t.Errorf("description not appended: %q", p)
	}
}

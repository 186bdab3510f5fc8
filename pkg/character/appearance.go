package character

// Appearance is the cosmetic description assembled by the creator flow.
// Field vocabularies are open string sets; the curated defaults below seed
// the pickers but carry no behavioral contract.
type Appearance struct {
	Gender            string   `json:"gender,omitempty"`
	HairColor         string   `json:"hair_color,omitempty"`
	HairStyle         string   `json:"hair_style,omitempty"`
	HairTexture       string   `json:"hair_texture,omitempty"`
	SkinTone          string   `json:"skin_tone,omitempty"`
	SkinTexture       string   `json:"skin_texture,omitempty"`
	EyeColor          string   `json:"eye_color,omitempty"`
	EyeShape          string   `json:"eye_shape,omitempty"`
	Build             string   `json:"build,omitempty"`
	Height            string   `json:"height,omitempty"`
	ClothingAesthetic string   `json:"clothing_aesthetic,omitempty"`
	Features          []string `json:"features,omitempty"`

	Narrative AppearanceNarrative `json:"narrative,omitempty"`
}

// AppearanceNarrative holds free-text descriptions by body region.
type AppearanceNarrative struct {
	Head string `json:"head,omitempty"`
	Body string `json:"body,omitempty"`
	Legs string `json:"legs,omitempty"`
}

// Curated picker defaults.
var (
	Genders    = []string{"Masculine", "Feminine", "Non-Binary", "Androgynous", "Other-worldly", "Unknown"}
	HairColors = []string{"Midnight Black", "Platinum Blonde", "Fiery Red", "Chestnut Brown", "Silver Grey", "Emerald Green", "Deep Blue", "None/Scales", "Unknown"}
	HairStyles = []string{"Short & Messy", "Long & Flowing", "Braided", "Bald", "Top Knot", "Wild Waves", "Mohawk", "Shaved Sides", "Unknown"}
	SkinTones  = []string{"Pale Alabaster", "Sun-kissed Bronze", "Rich Ebony", "Olive", "Deep Copper", "Dusky Blue", "Stone Grey", "Emerald Green", "Obsidian Black", "Unknown"}
	EyeColors  = []string{"Steel Blue", "Forest Green", "Golden Amber", "Deep Violet", "Blood Red", "Obsidian", "Glowing White", "Silver", "Unknown"}
	EyeShapes  = []string{"Sharp/Eagle", "Round/Gentle", "Slanted/Cunning", "Wide/Curious", "Glowy/Monstrous", "Unknown"}
	Builds     = []string{"Athletic", "Slender", "Burly", "Wiry", "Stocky", "Towering", "Unknown"}
	Features   = []string{"Facial Scar", "Mystic Tattoos", "Eye Patch", "Pointed Ears", "Freckles", "Glowing Runes", "Mechanical Limb", "Piercings", "Beard/Facial Hair", "War Paint"}
	Alignments = []string{"Lawful Good", "Neutral Good", "Chaotic Good", "Lawful Neutral", "True Neutral", "Chaotic Neutral", "Lawful Evil", "Neutral Evil", "Chaotic Evil"}
)

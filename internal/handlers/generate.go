package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/realmforge/realmforge/internal/services"
	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/character"
	"github.com/realmforge/realmforge/pkg/prompts"
	"github.com/realmforge/realmforge/pkg/textfilter"
)

// Canned fallbacks served when the generation provider fails. The caller
// gets a usable payload either way; fallback=true marks it.
const (
	fallbackBackstory = "Their past is a closed book, its pages waiting to be written in deeds rather than words."
	fallbackNarration = "The attempt unfolds without flourish, and the moment passes."
)

type GenerateHandler struct {
	gen    services.GenService
	filter *textfilter.Filter
	logger *slog.Logger
}

func NewGenerateHandler(gen services.GenService, logger *slog.Logger) *GenerateHandler {
	return &GenerateHandler{
		gen:    gen,
		filter: textfilter.New(),
		logger: logger,
	}
}

// ServeHTTP handles HTTP requests for generation flows
// Routes:
// POST /v1/generate/backstory - Character backstory prose
// POST /v1/generate/narration - Action narration prose
// POST /v1/generate/appearance - Appearance fields from freeform description
// POST /v1/generate/weapon    - Signature weapon stat block
// POST /v1/generate/location  - Location manifest with map image
// POST /v1/generate/monster   - Unknown-monster stat template ("scry")
// POST /v1/generate/portrait  - Character portrait image
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	flow := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/generate"), "/")
	switch flow {
	case "backstory":
		h.handleBackstory(w, r)
	case "narration":
		h.handleNarration(w, r)
	case "appearance":
		h.handleAppearance(w, r)
	case "weapon":
		h.handleWeapon(w, r)
	case "location":
		h.handleLocation(w, r)
	case "monster":
		h.handleMonster(w, r)
	case "portrait":
		h.handlePortrait(w, r)
	default:
		writeError(w, h.logger, http.StatusNotFound, "Unknown generation flow")
	}
}

func (h *GenerateHandler) writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

type BackstoryRequest struct {
	Name      string `json:"name"`
	Race      string `json:"race"`
	Class     string `json:"class"`
	Alignment string `json:"alignment,omitempty"`
	WorldName string `json:"world_name,omitempty"`
}

type TextResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback,omitempty"`
}

func (h *GenerateHandler) handleBackstory(w http.ResponseWriter, r *http.Request) {
	var req BackstoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "name is required")
		return
	}

	prompt := prompts.Backstory(req.Name, req.Race, req.Class, req.Alignment, req.WorldName)

	text, err := h.gen.GenerateText(r.Context(), prompt)
	if err != nil {
		h.logger.Warn("Backstory generation failed, serving fallback", "error", err)
		h.writeJSON(w, TextResponse{Text: fallbackBackstory, Fallback: true})
		return
	}
	h.writeJSON(w, TextResponse{Text: h.filter.Clean(text)})
}

type NarrationRequest struct {
	Actor  string `json:"actor"`
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
}

func (h *GenerateHandler) handleNarration(w http.ResponseWriter, r *http.Request) {
	var req NarrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Actor == "" || req.Action == "" {
		writeError(w, h.logger, http.StatusBadRequest, "actor and action are required")
		return
	}

	prompt := prompts.Narration(req.Actor, req.Action, req.Target)

	text, err := h.gen.GenerateText(r.Context(), prompt)
	if err != nil {
		h.logger.Warn("Narration generation failed, serving fallback", "error", err)
		h.writeJSON(w, TextResponse{Text: fallbackNarration, Fallback: true})
		return
	}
	h.writeJSON(w, TextResponse{Text: h.filter.Clean(text)})
}

type AppearanceRequest struct {
	Description string `json:"description"`
}

type AppearanceResponse struct {
	Appearance character.Appearance `json:"appearance"`
	Fallback   bool                 `json:"fallback,omitempty"`
}

// fallbackAppearance leaves every picker on Unknown.
func fallbackAppearance() character.Appearance {
	return character.Appearance{
		Gender:    "Unknown",
		HairColor: "Unknown",
		SkinTone:  "Unknown",
		EyeColor:  "Unknown",
		Build:     "Unknown",
	}
}

var appearanceSchema = services.Schema{
	Name: "character_appearance",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"gender":     map[string]interface{}{"type": "string"},
			"hair_color": map[string]interface{}{"type": "string"},
			"hair_style": map[string]interface{}{"type": "string"},
			"skin_tone":  map[string]interface{}{"type": "string"},
			"eye_color":  map[string]interface{}{"type": "string"},
			"eye_shape":  map[string]interface{}{"type": "string"},
			"build":      map[string]interface{}{"type": "string"},
			"features": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"gender", "hair_color", "skin_tone", "eye_color", "build"},
	},
	Required: []string{"gender", "hair_color", "skin_tone", "eye_color", "build"},
}

func (h *GenerateHandler) handleAppearance(w http.ResponseWriter, r *http.Request) {
	var req AppearanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" {
		writeError(w, h.logger, http.StatusBadRequest, "description is required")
		return
	}

	raw, err := h.gen.GenerateStructured(r.Context(), prompts.Appearance(req.Description), appearanceSchema)
	if err == nil {
		var appearance character.Appearance
		if jsonErr := json.Unmarshal(raw, &appearance); jsonErr == nil {
			h.writeJSON(w, AppearanceResponse{Appearance: appearance})
			return
		}
	}
	h.logger.Warn("Appearance generation failed, serving fallback", "error", err)
	h.writeJSON(w, AppearanceResponse{Appearance: fallbackAppearance(), Fallback: true})
}

type WeaponRequest struct {
	Class  string `json:"class"`
	Prompt string `json:"prompt,omitempty"`
}

type WeaponResponse struct {
	Weapon   character.Weapon `json:"weapon"`
	Fallback bool             `json:"fallback,omitempty"`
}

// fallbackWeapon is a plain blade every class can hold.
func fallbackWeapon() character.Weapon {
	return character.Weapon{
		Name:       "Well-Worn Shortsword",
		Damage:     "1d6",
		Type:       "Piercing",
		Properties: []string{"Light", "Finesse"},
	}
}

var weaponSchema = services.Schema{
	Name: "signature_weapon",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":   map[string]interface{}{"type": "string"},
			"damage": map[string]interface{}{"type": "string"},
			"type":   map[string]interface{}{"type": "string"},
			"properties": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
		"required": []string{"name", "damage", "type", "properties"},
	},
	Required: []string{"name", "damage", "type", "properties"},
}

func (h *GenerateHandler) handleWeapon(w http.ResponseWriter, r *http.Request) {
	var req WeaponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	raw, err := h.gen.GenerateStructured(r.Context(), prompts.Weapon(req.Class, req.Prompt), weaponSchema)
	if err == nil {
		var weapon character.Weapon
		if jsonErr := json.Unmarshal(raw, &weapon); jsonErr == nil {
			if valErr := weapon.Validate(); valErr == nil {
				h.writeJSON(w, WeaponResponse{Weapon: weapon})
				return
			}
		}
	}
	h.logger.Warn("Weapon generation failed, serving fallback", "error", err)
	h.writeJSON(w, WeaponResponse{Weapon: fallbackWeapon(), Fallback: true})
}

type LocationRequest struct {
	WorldName string `json:"world_name,omitempty"`
	Prompt    string `json:"prompt"`
}

type LocationManifest struct {
	Name             string `json:"name"`
	EnvironmentState string `json:"environment_state"`
}

type LocationResponse struct {
	Name             string `json:"name"`
	EnvironmentState string `json:"environment_state"`
	MapURL           string `json:"map_url,omitempty"`
	Fallback         bool   `json:"fallback,omitempty"`
}

var locationSchema = services.Schema{
	Name: "location_manifest",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name":              map[string]interface{}{"type": "string"},
			"environment_state": map[string]interface{}{"type": "string"},
		},
		"required": []string{"name", "environment_state"},
	},
	Required: []string{"name", "environment_state"},
}

func (h *GenerateHandler) handleLocation(w http.ResponseWriter, r *http.Request) {
	var req LocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, h.logger, http.StatusBadRequest, "prompt is required")
		return
	}

	raw, err := h.gen.GenerateStructured(r.Context(), prompts.Location(req.Prompt, req.WorldName), locationSchema)
	if err != nil {
		h.logger.Warn("Location generation failed, serving fallback", "error", err)
		h.writeJSON(w, LocationResponse{
			Name:             strings.TrimSpace(req.Prompt),
			EnvironmentState: "An unremarkable stretch of ground.",
			Fallback:         true,
		})
		return
	}

	var manifest LocationManifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		h.logger.Warn("Location manifest unreadable, serving fallback", "error", err)
		h.writeJSON(w, LocationResponse{
			Name:             strings.TrimSpace(req.Prompt),
			EnvironmentState: "An unremarkable stretch of ground.",
			Fallback:         true,
		})
		return
	}

	resp := LocationResponse{
		Name:             manifest.Name,
		EnvironmentState: h.filter.Clean(manifest.EnvironmentState),
	}

	// The map is best-effort; a missing image never sinks the manifest.
	mapURL, err := h.gen.GenerateImage(r.Context(), prompts.MapImage(manifest.Name, manifest.EnvironmentState))
	if err != nil {
		h.logger.Warn("Map generation failed", "error", err, "location", manifest.Name)
	} else {
		resp.MapURL = mapURL
	}

	h.writeJSON(w, resp)
}

type MonsterRequest struct {
	Name string `json:"name"`
}

type MonsterResponse struct {
	Template actor.Template `json:"template"`
	Fallback bool           `json:"fallback,omitempty"`
}

// fallbackMonster covers scrying failures with a generic shade.
func fallbackMonster(name string) actor.Template {
	return actor.Template{
		Name:  name,
		HP:    10,
		AC:    12,
		Stats: actor.Stats{Strength: 10, Dexterity: 10, Constitution: 10, Intelligence: 10, Wisdom: 10, Charisma: 10},
		Size:  "Medium",
		Speed: "30 ft.",
	}
}

var monsterSchema = services.Schema{
	Name: "monster_template",
	Schema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"name": map[string]interface{}{"type": "string"},
			"hp":   map[string]interface{}{"type": "integer"},
			"ac":   map[string]interface{}{"type": "integer"},
			"stats": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"strength":     map[string]interface{}{"type": "integer"},
					"dexterity":    map[string]interface{}{"type": "integer"},
					"constitution": map[string]interface{}{"type": "integer"},
					"intelligence": map[string]interface{}{"type": "integer"},
					"wisdom":       map[string]interface{}{"type": "integer"},
					"charisma":     map[string]interface{}{"type": "integer"},
				},
			},
			"size":  map[string]interface{}{"type": "string"},
			"speed": map[string]interface{}{"type": "string"},
		},
		"required": []string{"name", "hp", "ac", "stats"},
	},
	Required: []string{"name", "hp", "ac", "stats"},
}

func (h *GenerateHandler) handleMonster(w http.ResponseWriter, r *http.Request) {
	var req MonsterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, h.logger, http.StatusBadRequest, "name is required")
		return
	}

	raw, err := h.gen.GenerateStructured(r.Context(), prompts.Monster(req.Name), monsterSchema)
	if err == nil {
		var tmpl actor.Template
		if jsonErr := json.Unmarshal(raw, &tmpl); jsonErr == nil {
			if valErr := tmpl.Validate(); valErr == nil {
				h.writeJSON(w, MonsterResponse{Template: tmpl})
				return
			}
		}
	}
	h.logger.Warn("Monster generation failed, serving fallback", "error", err, "name", req.Name)
	h.writeJSON(w, MonsterResponse{Template: fallbackMonster(req.Name), Fallback: true})
}

type PortraitRequest struct {
	Description string `json:"description"`
}

type PortraitResponse struct {
	Image    string `json:"image,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

func (h *GenerateHandler) handlePortrait(w http.ResponseWriter, r *http.Request) {
	var req PortraitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" {
		writeError(w, h.logger, http.StatusBadRequest, "description is required")
		return
	}

	image, err := h.gen.GenerateImage(r.Context(), prompts.Portrait(req.Description))
	if err != nil {
		h.logger.Warn("Portrait generation failed, serving fallback", "error", err)
		h.writeJSON(w, PortraitResponse{Fallback: true})
		return
	}
	h.writeJSON(w, PortraitResponse{Image: image})
}

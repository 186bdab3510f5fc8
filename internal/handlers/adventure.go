package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/internal/storage"
	"github.com/realmforge/realmforge/pkg/session"
)

type AdventureHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewAdventureHandler(storage storage.Storage, logger *slog.Logger) *AdventureHandler {
	return &AdventureHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for adventure saves
// Routes:
// POST /v1/adventures        - Create a new adventure from a character
// PUT /v1/adventures/{id}    - Persist a session snapshot
// GET /v1/adventures/{id}    - Read a snapshot by ID
// DELETE /v1/adventures/{id} - Delete a snapshot by ID
func (h *AdventureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/adventures"), "/")
	var adventureID uuid.UUID
	var err error

	if path != "" {
		adventureID, err = uuid.Parse(path)
		if err != nil {
			h.logger.Warn("Invalid adventure ID", "id", path, "error", err)
			writeError(w, h.logger, http.StatusBadRequest, "Invalid adventure ID format")
			return
		}
	}

	switch r.Method {
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodPut:
		if adventureID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Adventure ID is required for PUT requests")
			return
		}
		h.handleSave(w, r, adventureID)
	case http.MethodGet:
		if adventureID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Adventure ID is required for GET requests")
			return
		}
		h.handleRead(w, r, adventureID)
	case http.MethodDelete:
		if adventureID == uuid.Nil {
			writeError(w, h.logger, http.StatusBadRequest, "Adventure ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, adventureID)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type CreateAdventureRequest struct {
	CharacterID  string `json:"character_id"`
	WorldID      string `json:"world_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
}

// handleCreate materializes the character as a hero combatant and opens
// a fresh session at the starting location.
func (h *AdventureHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateAdventureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CharacterID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "character_id is required")
		return
	}

	c, err := h.storage.LoadCharacter(r.Context(), req.CharacterID)
	if err != nil {
		h.logger.Error("Failed to load character", "error", err, "id", req.CharacterID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load character")
		return
	}
	if c == nil {
		writeError(w, h.logger, http.StatusNotFound, "Character not found")
		return
	}

	heroCombatant, err := c.HeroCombatant()
	if err != nil {
		h.logger.Error("Failed to materialize hero", "error", err, "id", c.ID)
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	locationName := req.LocationName
	if locationName == "" {
		locationName = "The Gates of Adventure"
	}

	s := session.New(nil)
	s.WorldID = req.WorldID
	s.CharacterID = c.ID
	s.StartAdventure(heroCombatant, session.Location{Name: locationName})

	save := s.Snapshot()
	if err := h.storage.SaveAdventure(r.Context(), save); err != nil {
		h.logger.Error("Failed to save adventure", "error", err, "id", save.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save adventure")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(save); err != nil {
		h.logger.Error("Failed to encode adventure save", "error", err)
	}
}

func (h *AdventureHandler) handleSave(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	var save session.Save
	if err := json.NewDecoder(r.Body).Decode(&save); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}
	save.ID = id

	if err := h.storage.SaveAdventure(r.Context(), &save); err != nil {
		h.logger.Error("Failed to save adventure", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save adventure")
		return
	}

	if err := json.NewEncoder(w).Encode(&save); err != nil {
		h.logger.Error("Failed to encode adventure save", "error", err)
	}
}

func (h *AdventureHandler) handleRead(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	save, err := h.storage.LoadAdventure(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load adventure", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load adventure")
		return
	}
	if save == nil {
		writeError(w, h.logger, http.StatusNotFound, "Adventure not found")
		return
	}

	if err := json.NewEncoder(w).Encode(save); err != nil {
		h.logger.Error("Failed to encode adventure save", "error", err)
	}
}

func (h *AdventureHandler) handleDelete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	if err := h.storage.DeleteAdventure(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete adventure", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete adventure")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/internal/storage"
	"github.com/realmforge/realmforge/pkg/character"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: msg}); err != nil {
		logger.Error("Failed to encode error response", "error", err)
	}
}

type CharacterHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewCharacterHandler(storage storage.Storage, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for the character vault
// Routes:
// POST /v1/characters        - Create or update a character
// GET /v1/characters         - List all characters
// GET /v1/characters/{id}    - Read a character by ID
// DELETE /v1/characters/{id} - Delete a character by ID
func (h *CharacterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/characters"), "/")

	switch r.Method {
	case http.MethodPost:
		h.handleSave(w, r)
	case http.MethodGet:
		if id == "" {
			h.handleList(w, r)
			return
		}
		h.handleRead(w, r, id)
	case http.MethodDelete:
		if id == "" {
			writeError(w, h.logger, http.StatusBadRequest, "Character ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, id)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *CharacterHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var c character.Character
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := c.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	created := c.ID == ""
	if created {
		c.ID = uuid.NewString()
	}

	if err := h.storage.SaveCharacter(r.Context(), &c); err != nil {
		h.logger.Error("Failed to save character", "error", err, "id", c.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save character")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&c); err != nil {
		h.logger.Error("Failed to encode character", "error", err)
	}
}

func (h *CharacterHandler) handleList(w http.ResponseWriter, r *http.Request) {
	characters, err := h.storage.ListCharacters(r.Context())
	if err != nil {
		h.logger.Error("Failed to list characters", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list characters")
		return
	}

	response := map[string]interface{}{
		"characters": characters,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *CharacterHandler) handleRead(w http.ResponseWriter, r *http.Request, id string) {
	c, err := h.storage.LoadCharacter(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load character", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load character")
		return
	}
	if c == nil {
		writeError(w, h.logger, http.StatusNotFound, "Character not found")
		return
	}

	if err := json.NewEncoder(w).Encode(c); err != nil {
		h.logger.Error("Failed to encode character", "error", err)
	}
}

func (h *CharacterHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteCharacter(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete character", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete character")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/internal/storage"
	"github.com/realmforge/realmforge/pkg/world"
)

type WorldHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewWorldHandler(storage storage.Storage, logger *slog.Logger) *WorldHandler {
	return &WorldHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for the world vault
// Routes:
// POST /v1/worlds        - Create or update a world
// GET /v1/worlds         - List all worlds (premade first)
// GET /v1/worlds/{id}    - Read a world by ID
// DELETE /v1/worlds/{id} - Delete a world by ID
func (h *WorldHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/worlds"), "/")

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
			writeError(w, h.logger, http.StatusBadRequest, "World ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, id)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *WorldHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var wld world.World
	if err := json.NewDecoder(r.Body).Decode(&wld); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := wld.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	created := wld.ID == ""
	if created {
		wld.ID = uuid.NewString()
	}

	if err := h.storage.SaveWorld(r.Context(), &wld); err != nil {
		h.logger.Error("Failed to save world", "error", err, "id", wld.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save world")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&wld); err != nil {
		h.logger.Error("Failed to encode world", "error", err)
	}
}

// handleList returns the premade worlds followed by stored ones.
func (h *WorldHandler) handleList(w http.ResponseWriter, r *http.Request) {
	stored, err := h.storage.ListWorlds(r.Context())
	if err != nil {
		h.logger.Error("Failed to list worlds", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list worlds")
		return
	}

	worlds := make([]*world.World, 0, len(world.Premade)+len(stored))
	for i := range world.Premade {
		worlds = append(worlds, &world.Premade[i])
	}
	worlds = append(worlds, stored...)

	response := map[string]interface{}{
		"worlds": worlds,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *WorldHandler) handleRead(w http.ResponseWriter, r *http.Request, id string) {
	for i := range world.Premade {
		if world.Premade[i].ID == id {
			if err := json.NewEncoder(w).Encode(&world.Premade[i]); err != nil {
				h.logger.Error("Failed to encode world", "error", err)
			}
			return
		}
	}

	wld, err := h.storage.LoadWorld(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load world", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load world")
		return
	}
	if wld == nil {
		writeError(w, h.logger, http.StatusNotFound, "World not found")
		return
	}

	if err := json.NewEncoder(w).Encode(wld); err != nil {
		h.logger.Error("Failed to encode world", "error", err)
	}
}

func (h *WorldHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteWorld(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete world", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete world")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

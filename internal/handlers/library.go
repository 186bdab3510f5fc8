package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/realmforge/realmforge/internal/storage"
	"github.com/realmforge/realmforge/pkg/world"
)

type LibraryHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewLibraryHandler(storage storage.Storage, logger *slog.Logger) *LibraryHandler {
	return &LibraryHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles HTTP requests for the community library
// Routes:
// POST /v1/library           - Publish a character or world snapshot
// GET /v1/library?type=WORLD - List published items, optionally by type
// DELETE /v1/library/{id}    - Remove a published item
func (h *LibraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/library"), "/")

	switch r.Method {
	case http.MethodPost:
		h.handlePublish(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodDelete:
		if id == "" {
			writeError(w, h.logger, http.StatusBadRequest, "Library item ID is required for DELETE requests")
			return
		}
		h.handleDelete(w, r, id)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *LibraryHandler) handlePublish(w http.ResponseWriter, r *http.Request) {
	var item world.CommunityItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Timestamp == 0 {
		item.Timestamp = time.Now().UnixMilli()
	}

	if err := item.Validate(); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.storage.SaveLibraryItem(r.Context(), &item); err != nil {
		h.logger.Error("Failed to publish library item", "error", err, "id", item.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to publish item")
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&item); err != nil {
		h.logger.Error("Failed to encode library item", "error", err)
	}
}

func (h *LibraryHandler) handleList(w http.ResponseWriter, r *http.Request) {
	itemType := r.URL.Query().Get("type")
	if itemType != "" && itemType != world.ItemTypeCharacter && itemType != world.ItemTypeWorld {
		writeError(w, h.logger, http.StatusBadRequest, "Unknown library item type")
		return
	}

	items, err := h.storage.ListLibraryItems(r.Context(), itemType)
	if err != nil {
		h.logger.Error("Failed to list library items", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list items")
		return
	}

	response := map[string]interface{}{
		"items": items,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *LibraryHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteLibraryItem(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete library item", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

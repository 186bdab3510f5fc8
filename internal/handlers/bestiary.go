package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/realmforge/realmforge/internal/storage"
)

type BestiaryHandler struct {
	logger  *slog.Logger
	storage storage.Storage
}

func NewBestiaryHandler(logger *slog.Logger, storage storage.Storage) *BestiaryHandler {
	return &BestiaryHandler{
		logger:  logger,
		storage: storage,
	}
}

func (h *BestiaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if r.URL.Path == "/v1/bestiary" || r.URL.Path == "/v1/bestiary/" {
			h.ListTemplates(w, r)
		} else {
			h.GetTemplate(w, r)
		}
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BestiaryHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.storage.ListTemplates(r.Context())
	if err != nil {
		h.logger.Error("Failed to list bestiary templates", "error", err)
		http.Error(w, "Failed to list bestiary templates", http.StatusInternalServerError)
		return
	}

	response := map[string]interface{}{
		"templates": templates,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

func (h *BestiaryHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/v1/bestiary/"))

	if name == "" {
		http.Error(w, "Template name is required", http.StatusBadRequest)
		return
	}
	if strings.Contains(name, "..") || strings.Contains(name, "/") {
		http.Error(w, "Invalid template name", http.StatusBadRequest)
		return
	}

	tmpl, err := h.storage.GetTemplate(r.Context(), name)
	if err != nil {
		h.logger.Error("Failed to get bestiary template", "error", err, "name", name)
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tmpl); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

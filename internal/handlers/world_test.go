package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/realmforge/realmforge/internal/storage"
	"github.com/realmforge/realmforge/pkg/world"
)

func TestWorldHandler_CreateAndRead(t *testing.T) {
	handler := NewWorldHandler(storage.NewMockStorage(), testLogger())

	rec := postJSON(t, handler, "/v1/worlds", world.World{
		Name:        "Cinderwilds",
		Tags:        []string{"Dark Fantasy"},
		Description: "Ash-choked forests under a dead sun.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var created world.World
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("expected an assigned ID")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/worlds/"+created.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got world.World
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Cinderwilds" {
		t.Errorf("unexpected world %+v", got)
	}
}

func TestWorldHandler_RejectsUnnamed(t *testing.T) {
	handler := NewWorldHandler(storage.NewMockStorage(), testLogger())

	rec := postJSON(t, handler, "/v1/worlds", world.World{Description: "nameless"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWorldHandler_ListPremadesFirst(t *testing.T) {
	handler := NewWorldHandler(storage.NewMockStorage(), testLogger())

	rec := postJSON(t, handler, "/v1/worlds", world.World{Name: "Cinderwilds"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/worlds", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Worlds []world.World `json:"worlds"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Worlds) != len(world.Premade)+1 {
		t.Fatalf("expected %d worlds, got %d", len(world.Premade)+1, len(resp.Worlds))
	}
	for i := range world.Premade {
		if resp.Worlds[i].ID != world.Premade[i].ID {
			t.Errorf("premade %q not first in list", world.Premade[i].Name)
		}
	}
	if resp.Worlds[len(resp.Worlds)-1].Name != "Cinderwilds" {
		t.Errorf("stored world should follow premades")
	}
}

func TestWorldHandler_ReadPremade(t *testing.T) {
	handler := NewWorldHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/worlds/"+world.Premade[0].ID, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got world.World
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if got.Name != world.Premade[0].Name {
		t.Errorf("expected premade %q, got %q", world.Premade[0].Name, got.Name)
	}
}

func TestWorldHandler_DeleteAndMiss(t *testing.T) {
	handler := NewWorldHandler(storage.NewMockStorage(), testLogger())

	rec := postJSON(t, handler, "/v1/worlds", world.World{Name: "Cinderwilds"})
	var created world.World
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/v1/worlds/"+created.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/worlds/"+created.ID, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

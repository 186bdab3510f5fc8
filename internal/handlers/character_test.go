package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/realmforge/realmforge/internal/storage"
	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/character"
)

func validCharacter() *character.Character {
	return &character.Character{
		Name:  "Sera Dawnblade",
		Race:  "Elf",
		Class: "Fighter",
		Stats: actor.Stats{
			Strength:     15,
			Dexterity:    14,
			Constitution: 13,
			Intelligence: 12,
			Wisdom:       10,
			Charisma:     8,
		},
		Weapon: character.Weapon{Name: "Longsword", Damage: "1d8", Type: "Slashing", Properties: []string{"Versatile (1d10)"}},
		Gold:   120,
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCharacterHandler_Create(t *testing.T) {
	mock := storage.NewMockStorage()
	handler := NewCharacterHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/characters", validCharacter())

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var saved character.Character
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected an assigned ID")
	}

	stored, _ := mock.LoadCharacter(context.Background(), saved.ID)
	if stored == nil || stored.Name != "Sera Dawnblade" {
		t.Errorf("character not persisted: %+v", stored)
	}
}

func TestCharacterHandler_UpdateKeepsID(t *testing.T) {
	mock := storage.NewMockStorage()
	handler := NewCharacterHandler(mock, testLogger())

	c := validCharacter()
	c.ID = "char-1"
	rec := postJSON(t, handler, "/v1/characters", c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for update, got %d", rec.Code)
	}

	var saved character.Character
	if err := json.NewDecoder(rec.Body).Decode(&saved); err != nil {
		t.Fatal(err)
	}
	if saved.ID != "char-1" {
		t.Errorf("expected ID preserved, got %q", saved.ID)
	}
}

func TestCharacterHandler_CreateInvalid(t *testing.T) {
	handler := NewCharacterHandler(storage.NewMockStorage(), testLogger())

	c := validCharacter()
	c.Name = ""
	rec := postJSON(t, handler, "/v1/characters", c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if errResp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestCharacterHandler_CreateBadStandardArray(t *testing.T) {
	handler := NewCharacterHandler(storage.NewMockStorage(), testLogger())

	c := validCharacter()
	c.Stats.Wisdom = 15 // duplicates the pool value already on Strength
	rec := postJSON(t, handler, "/v1/characters", c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCharacterHandler_ReadAndDelete(t *testing.T) {
	mock := storage.NewMockStorage()
	handler := NewCharacterHandler(mock, testLogger())

	c := validCharacter()
	c.ID = "char-1"
	_ = mock.SaveCharacter(context.Background(), c)

	req := httptest.NewRequest(http.MethodGet, "/v1/characters/char-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/v1/characters/char-1", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/characters/char-1", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestCharacterHandler_List(t *testing.T) {
	mock := storage.NewMockStorage()
	handler := NewCharacterHandler(mock, testLogger())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b"} {
		c := validCharacter()
		c.ID = id
		c.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		_ = mock.SaveCharacter(context.Background(), c)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/characters", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Characters []*character.Character `json:"characters"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Characters) != 2 {
		t.Fatalf("expected 2 characters, got %d", len(resp.Characters))
	}
	if resp.Characters[0].ID != "b" || resp.Characters[1].ID != "a" {
		t.Errorf("expected newest first, got %s then %s", resp.Characters[0].ID, resp.Characters[1].ID)
	}
}

func TestCharacterHandler_MethodNotAllowed(t *testing.T) {
	handler := NewCharacterHandler(storage.NewMockStorage(), testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/v1/characters", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

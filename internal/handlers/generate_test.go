package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/realmforge/realmforge/internal/services"
)

func TestGenerateHandler_Backstory(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		if !strings.Contains(prompt, "Sera") {
			t.Errorf("prompt should mention the character, got %q", prompt)
		}
		return "Born under a red moon.", nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/backstory", BackstoryRequest{
		Name: "Sera", Race: "Elf", Class: "Fighter",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp TextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Text != "Born under a red moon." || resp.Fallback {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(mock.GenerateTextCalls) != 1 {
		t.Errorf("expected 1 text call, got %d", len(mock.GenerateTextCalls))
	}
}

func TestGenerateHandler_BackstorySanitized(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		return "A damn fine duelist from the coast.", nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/backstory", BackstoryRequest{
		Name: "Sera", Race: "Elf", Class: "Fighter",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp TextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Text != "A dang fine duelist from the coast." {
		t.Errorf("expected cleaned prose, got %q", resp.Text)
	}
}

func TestGenerateHandler_BackstoryFallback(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("provider down")
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/backstory", BackstoryRequest{
		Name: "Sera", Race: "Elf", Class: "Fighter",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("provider failure must not surface as 5xx, got %d", rec.Code)
	}

	var resp TextResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Fallback || resp.Text == "" {
		t.Errorf("expected fallback payload, got %+v", resp)
	}
}

func TestGenerateHandler_BackstoryRequiresName(t *testing.T) {
	handler := NewGenerateHandler(services.NewMockGenService(), testLogger())
	rec := postJSON(t, handler, "/v1/generate/backstory", BackstoryRequest{Race: "Elf"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGenerateHandler_Weapon(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		return json.RawMessage(`{"name":"Duskfang","damage":"1d8","type":"Slashing","properties":["Versatile"]}`), nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/weapon", WeaponRequest{Class: "Fighter"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp WeaponResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Weapon.Name != "Duskfang" || resp.Fallback {
		t.Errorf("unexpected response: %+v", resp)
	}

	if len(mock.GenerateStructuredCalls) != 1 {
		t.Fatalf("expected 1 structured call, got %d", len(mock.GenerateStructuredCalls))
	}
	if mock.GenerateStructuredCalls[0].Schema.Name != "signature_weapon" {
		t.Errorf("unexpected schema %q", mock.GenerateStructuredCalls[0].Schema.Name)
	}
}

func TestGenerateHandler_WeaponFallbackOnInvalid(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		// Shape-valid JSON that fails weapon validation (no damage).
		return json.RawMessage(`{"name":"Duskfang","damage":"","type":"Slashing","properties":[]}`), nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/weapon", WeaponRequest{Class: "Fighter"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp WeaponResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Fallback {
		t.Error("invalid weapon should fall back")
	}
	if err := resp.Weapon.Validate(); err != nil {
		t.Errorf("fallback weapon must validate: %v", err)
	}
}

func TestGenerateHandler_Appearance(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		if !strings.Contains(prompt, "braided topknot") {
			t.Errorf("prompt should carry the description, got %q", prompt)
		}
		return json.RawMessage(`{"gender":"Masculine","hair_color":"Midnight Black","hair_style":"Top Knot","skin_tone":"Olive","eye_color":"Golden Amber","build":"Burly","features":["Facial Scar"]}`), nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/appearance", AppearanceRequest{
		Description: "a towering warrior with a braided topknot and a scarred cheek",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp AppearanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Appearance.HairStyle != "Top Knot" || resp.Fallback {
		t.Errorf("unexpected response: %+v", resp)
	}
	if mock.GenerateStructuredCalls[0].Schema.Name != "character_appearance" {
		t.Errorf("unexpected schema %q", mock.GenerateStructuredCalls[0].Schema.Name)
	}
}

func TestGenerateHandler_AppearanceFallback(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		return nil, errors.New("provider down")
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/appearance", AppearanceRequest{Description: "a wiry elf"})
	if rec.Code != http.StatusOK {
		t.Fatalf("provider failure must not surface as 5xx, got %d", rec.Code)
	}

	var resp AppearanceResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Fallback || resp.Appearance.Gender != "Unknown" {
		t.Errorf("expected Unknown fallback appearance, got %+v", resp)
	}
}

func TestGenerateHandler_AppearanceRequiresDescription(t *testing.T) {
	handler := NewGenerateHandler(services.NewMockGenService(), testLogger())
	rec := postJSON(t, handler, "/v1/generate/appearance", AppearanceRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGenerateHandler_Location(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		return json.RawMessage(`{"name":"The Sunken Crypt","environment_state":"Flooded and silent"}`), nil
	}
	mock.GenerateImageFunc = func(ctx context.Context, prompt string) (string, error) {
		return "data:image/png;base64,QUJD", nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/location", LocationRequest{Prompt: "a sunken crypt"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp LocationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "The Sunken Crypt" || resp.EnvironmentState != "Flooded and silent" {
		t.Errorf("unexpected manifest: %+v", resp)
	}
	if resp.MapURL != "data:image/png;base64,QUJD" {
		t.Errorf("unexpected map URL %q", resp.MapURL)
	}
}

func TestGenerateHandler_LocationImageFailureIsPartial(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		return json.RawMessage(`{"name":"The Sunken Crypt","environment_state":"Flooded"}`), nil
	}
	mock.GenerateImageFunc = func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("image provider down")
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/location", LocationRequest{Prompt: "a sunken crypt"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp LocationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Name != "The Sunken Crypt" {
		t.Errorf("manifest should survive image failure: %+v", resp)
	}
	if resp.MapURL != "" {
		t.Errorf("expected empty map URL, got %q", resp.MapURL)
	}
}

func TestGenerateHandler_LocationFallback(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		return nil, errors.New("provider down")
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/location", LocationRequest{Prompt: "a sunken crypt"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp LocationResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Fallback || resp.Name != "a sunken crypt" {
		t.Errorf("expected prompt-named fallback, got %+v", resp)
	}
}

func TestGenerateHandler_Monster(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		return json.RawMessage(`{"name":"Gloom Wisp","hp":9,"ac":13,"stats":{"strength":6,"dexterity":16,"constitution":8,"intelligence":10,"wisdom":12,"charisma":14}}`), nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/monster", MonsterRequest{Name: "Gloom Wisp"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp MonsterResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Fallback || resp.Template.HP != 9 || resp.Template.AC != 13 {
		t.Errorf("unexpected template: %+v", resp)
	}
}

func TestGenerateHandler_MonsterFallback(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateStructuredFunc = func(ctx context.Context, prompt string, schema services.Schema) (json.RawMessage, error) {
		// hp missing -> fails template validation
		return json.RawMessage(`{"name":"Gloom Wisp","hp":0,"ac":13,"stats":{}}`), nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/monster", MonsterRequest{Name: "Gloom Wisp"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp MonsterResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Fallback {
		t.Error("invalid template should fall back")
	}
	if resp.Template.Name != "Gloom Wisp" {
		t.Errorf("fallback should keep the requested name, got %q", resp.Template.Name)
	}
	if err := resp.Template.Validate(); err != nil {
		t.Errorf("fallback template must validate: %v", err)
	}
}

func TestGenerateHandler_Portrait(t *testing.T) {
	mock := services.NewMockGenService()
	mock.GenerateImageFunc = func(ctx context.Context, prompt string) (string, error) {
		return "data:image/png;base64,QUJD", nil
	}
	handler := NewGenerateHandler(mock, testLogger())

	rec := postJSON(t, handler, "/v1/generate/portrait", PortraitRequest{Description: "an elf fighter"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp PortraitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Image == "" || resp.Fallback {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestGenerateHandler_UnknownFlow(t *testing.T) {
	handler := NewGenerateHandler(services.NewMockGenService(), testLogger())
	rec := postJSON(t, handler, "/v1/generate/prophecy", struct{}{})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewVeniceService(t *testing.T) {
	service := NewVeniceService("test-api-key", "test-model", "test-image-model")

	if service.apiKey != "test-api-key" {
		t.Errorf("Expected apiKey test-api-key, got %s", service.apiKey)
	}
	if service.modelName != "test-model" {
		t.Errorf("Expected modelName test-model, got %s", service.modelName)
	}
	if service.imageModel != "test-image-model" {
		t.Errorf("Expected imageModel test-image-model, got %s", service.imageModel)
	}
	if service.httpClient == nil {
		t.Error("Expected httpClient to be initialized")
	}
}

func TestVeniceService_GenerateText(t *testing.T) {
	var gotReq VeniceChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		resp := VeniceChatResponse{}
		resp.Choices = []VeniceChatChoice{{}}
		resp.Choices[0].Message.Content = "A windswept moor."
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	service := NewVeniceService("test-key", "test-model", "test-image-model")
	service.baseURL = server.URL

	out, err := service.GenerateText(context.Background(), "Describe a moor.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "A windswept moor." {
		t.Errorf("unexpected output %q", out)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("unexpected model %q", gotReq.Model)
	}
	if gotReq.ResponseFormat != nil {
		t.Error("plain text request must not carry a response format")
	}
}

func TestVeniceService_GenerateStructured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req VeniceChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_schema" {
			t.Error("expected json_schema response format")
		}
		resp := VeniceChatResponse{}
		resp.Choices = []VeniceChatChoice{{}}
		resp.Choices[0].Message.Content = `{"name":"The Sunken Crypt","environment_state":"Flooded"}`
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	service := NewVeniceService("test-key", "test-model", "test-image-model")
	service.baseURL = server.URL

	schema := Schema{Name: "location_manifest", Required: []string{"name", "environment_state"}}
	raw, err := service.GenerateStructured(context.Background(), "Conjure a location.", schema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("result not JSON: %v", err)
	}
	if out["name"] != "The Sunken Crypt" {
		t.Errorf("unexpected name %q", out["name"])
	}
}

func TestVeniceService_GenerateStructured_MissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := VeniceChatResponse{}
		resp.Choices = []VeniceChatChoice{{}}
		resp.Choices[0].Message.Content = `{"name":"The Sunken Crypt"}`
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	service := NewVeniceService("test-key", "test-model", "test-image-model")
	service.baseURL = server.URL

	schema := Schema{Name: "location_manifest", Required: []string{"name", "environment_state"}}
	if _, err := service.GenerateStructured(context.Background(), "Conjure a location.", schema); err == nil {
		t.Fatal("expected error for missing required field")
	}
}

func TestVeniceService_GenerateImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req VeniceImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-image-model" {
			t.Errorf("unexpected image model %q", req.Model)
		}
		_ = json.NewEncoder(w).Encode(VeniceImageResponse{Images: []string{"QUJD"}})
	}))
	defer server.Close()

	service := NewVeniceService("test-key", "test-model", "test-image-model")
	service.baseURL = server.URL

	uri, err := service.GenerateImage(context.Background(), "A ruined tower at dusk.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/webp;base64,") {
		t.Errorf("expected data URI, got %q", uri)
	}
	if !strings.HasSuffix(uri, "QUJD") {
		t.Errorf("expected payload preserved, got %q", uri)
	}
}

func TestVeniceService_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	service := NewVeniceService("test-key", "test-model", "test-image-model")
	service.baseURL = server.URL

	if _, err := service.GenerateText(context.Background(), "anything"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/realmforge/realmforge/pkg/actor"
	"github.com/realmforge/realmforge/pkg/character"
	"github.com/realmforge/realmforge/pkg/session"
)

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func listCharacters(client *http.Client, baseURL string) ([]character.Character, error) {
	resp, err := client.Get(baseURL + "/v1/characters")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var listResp struct {
		Characters []character.Character `json:"characters"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to parse character list: %w", err)
	}

	// The API returns newest first; keep that order for the picker.
	return listResp.Characters, nil
}

// CreateAdventureRequest matches the API request structure
type CreateAdventureRequest struct {
	CharacterID  string `json:"character_id"`
	WorldID      string `json:"world_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
}

func createAdventure(client *http.Client, baseURL string, characterID string) (*session.Save, error) {
	req := CreateAdventureRequest{
		CharacterID: characterID,
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/adventures",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusCreated {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to create adventure: %s", errorResp.Error)
	}

	var save session.Save
	if err := json.Unmarshal(body, &save); err != nil {
		return nil, fmt.Errorf("failed to parse adventure response: %w", err)
	}
	return &save, nil
}

func getAdventure(client *http.Client, baseURL string, id uuid.UUID) (*session.Save, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/adventures/%s", baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get adventure: %s", errorResp.Error)
	}

	var save session.Save
	if err := json.Unmarshal(body, &save); err != nil {
		return nil, fmt.Errorf("failed to parse adventure response: %w", err)
	}
	return &save, nil
}

func putAdventure(client *http.Client, baseURL string, save *session.Save) error {
	jsonData, err := json.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal adventure: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/v1/adventures/%s", baseURL, save.ID),
		bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("failed to save adventure: %s", errorResp.Error)
	}
	return nil
}

func listTemplates(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/v1/bestiary")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var listResp struct {
		Templates []string `json:"templates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listResp); err != nil {
		return nil, fmt.Errorf("failed to parse bestiary list: %w", err)
	}
	return listResp.Templates, nil
}

func getTemplate(client *http.Client, baseURL string, name string) (*actor.Template, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/bestiary/%s", baseURL, name))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to get template: %s", errorResp.Error)
	}

	var tmpl actor.Template
	if err := json.Unmarshal(body, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse template response: %w", err)
	}
	return &tmpl, nil
}

// GenerateLocationRequest matches the API request structure
type GenerateLocationRequest struct {
	WorldName string `json:"world_name,omitempty"`
	Prompt    string `json:"prompt"`
}

// GeneratedLocation is the manifest returned by the location generator.
type GeneratedLocation struct {
	Name             string `json:"name"`
	EnvironmentState string `json:"environment_state"`
	MapURL           string `json:"map_url,omitempty"`
	Fallback         bool   `json:"fallback,omitempty"`
}

func generateLocation(client *http.Client, baseURL string, prompt string) (*GeneratedLocation, error) {
	req := GenerateLocationRequest{Prompt: prompt}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		baseURL+"/v1/generate/location",
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("failed to generate location: %s", errorResp.Error)
	}

	var loc GeneratedLocation
	if err := json.Unmarshal(body, &loc); err != nil {
		return nil, fmt.Errorf("failed to parse location response: %w", err)
	}
	return &loc, nil
}
